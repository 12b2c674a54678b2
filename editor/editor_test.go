package editor

import (
	"testing"

	"github.com/tombi-toml/tombi/ast"
	"github.com/tombi-toml/tombi/parser"
	"github.com/tombi-toml/tombi/schema"
	"github.com/tombi-toml/tombi/syntax"
)

func firstArray(t *testing.T, src string) ast.Array {
	t.Helper()
	result := parser.Parse(src, parser.V1_0)
	root := ast.NewRoot(result.Tree.Root())
	for _, it := range root.Items() {
		kv, ok := it.AsKeyValue()
		if !ok {
			continue
		}
		val, ok := kv.Value()
		if !ok {
			continue
		}
		if arr, ok := val.AsArray(); ok {
			return arr
		}
	}
	t.Fatal("no array found in source")
	return ast.Array{}
}

func TestApplyAppliesChangesInReverseOrder(t *testing.T) {
	src := "abcdef"
	changes := []Change{
		{Kind: ReplaceRange, Range: byteRange(0, 1), NewText: "X"},
		{Kind: ReplaceRange, Range: byteRange(4, 6), NewText: "YZ"},
	}
	got := Apply(src, changes)
	if got != "XbcdYZ" {
		t.Errorf("Apply() = %q, want %q", got, "XbcdYZ")
	}
}

func TestSortArrayValuesAscendingIntegers(t *testing.T) {
	arr := firstArray(t, "values = [3, 1, 2]\n")
	changes, err := SortArrayValues(arr, schema.OrderAscending)
	if err != nil {
		t.Fatalf("SortArrayValues: %v", err)
	}
	if len(changes) != 1 {
		t.Fatalf("expected 1 change, got %d", len(changes))
	}
	got := Apply("values = [3, 1, 2]\n", changes)
	if got != "values = [1, 2, 3]\n" {
		t.Errorf("got %q", got)
	}
}

func TestSortArrayValuesNoopWhenAlreadySorted(t *testing.T) {
	arr := firstArray(t, "values = [1, 2, 3]\n")
	changes, err := SortArrayValues(arr, schema.OrderAscending)
	if err != nil {
		t.Fatalf("SortArrayValues: %v", err)
	}
	if changes != nil {
		t.Errorf("expected no changes for an already-sorted array, got %v", changes)
	}
}

func TestSortArrayValuesMixedKindIsNotSortable(t *testing.T) {
	arr := firstArray(t, "values = [1, \"two\", 3]\n")
	_, err := SortArrayValues(arr, schema.OrderAscending)
	if err != ErrNotSortable {
		t.Errorf("expected ErrNotSortable for a mixed-kind array, got %v", err)
	}
}

func TestVersionCompareOrdersNumericChunks(t *testing.T) {
	if VersionCompare("1.9.0", "1.10.0") >= 0 {
		t.Error("expected 1.9.0 < 1.10.0 under numeric chunk comparison")
	}
	if VersionCompare("2.0.0", "1.10.0") <= 0 {
		t.Error("expected 2.0.0 > 1.10.0")
	}
}

func TestReorderTableKeysNilSchemaIsNoop(t *testing.T) {
	result := parser.Parse("b = 1\na = 2\n", parser.V1_0)
	root := ast.NewRoot(result.Tree.Root())
	var entries []TableEntry
	for _, it := range root.Items() {
		kv, ok := it.AsKeyValue()
		if !ok {
			continue
		}
		keys, _ := kv.Keys()
		tok, _ := keys.Segments()[0].Token()
		entries = append(entries, TableEntry{Key: tok.Text(), Node: kv})
	}
	changes, err := ReorderTableKeys(entries, nil)
	if err != nil || changes != nil {
		t.Errorf("expected (nil, nil) with no table schema, got (%v, %v)", changes, err)
	}
}

func TestReorderTableKeysUniformAscending(t *testing.T) {
	src := "b = 1\na = 2\nc = 3\n"
	result := parser.Parse(src, parser.V1_0)
	root := ast.NewRoot(result.Tree.Root())
	var entries []TableEntry
	for _, it := range root.Items() {
		kv, ok := it.AsKeyValue()
		if !ok {
			continue
		}
		keys, _ := kv.Keys()
		tok, _ := keys.Segments()[0].Token()
		entries = append(entries, TableEntry{Key: tok.Text(), Node: kv})
	}
	ts := &schema.ValueSchema{
		KeysOrder: &schema.TableKeysOrder{Uniform: schema.OrderAscending},
	}
	changes, err := ReorderTableKeys(entries, ts)
	if err != nil {
		t.Fatalf("ReorderTableKeys: %v", err)
	}
	got := Apply(src, changes)
	want := "a = 2\nb = 1\nc = 3\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func byteRange(start, end uint32) syntax.ByteRange {
	return syntax.ByteRange{Start: start, End: end}
}
