package document

import (
	"testing"

	"github.com/tombi-toml/tombi/ast"
	"github.com/tombi-toml/tombi/parser"
)

func build(t *testing.T, src string) *Document {
	t.Helper()
	result := parser.Parse(src, parser.V1_0)
	if len(result.Diagnostics) != 0 {
		t.Fatalf("unexpected syntax diagnostics: %v", result.Diagnostics)
	}
	root := ast.NewRoot(result.Tree.Root())
	return Build(root)
}

func TestBuildFlatKeyValue(t *testing.T) {
	doc := build(t, "name = \"tombi\"\ncount = 3\n")
	v, ok := doc.Root.Get("name")
	if !ok || v.Kind != String || v.Str != "tombi" {
		t.Fatalf("name: got %+v, ok=%v", v, ok)
	}
	v, ok = doc.Root.Get("count")
	if !ok || v.Kind != Integer || v.Int != 3 {
		t.Fatalf("count: got %+v, ok=%v", v, ok)
	}
}

func TestBuildDottedKeyCreatesIntermediateTables(t *testing.T) {
	doc := build(t, "a.b.c = 1\n")
	a, ok := doc.Root.Get("a")
	if !ok || a.Kind != TableValue {
		t.Fatalf("a: got %+v, ok=%v", a, ok)
	}
	b, ok := a.Table.Get("b")
	if !ok || b.Kind != TableValue {
		t.Fatalf("a.b: got %+v, ok=%v", b, ok)
	}
	c, ok := b.Table.Get("c")
	if !ok || c.Kind != Integer || c.Int != 1 {
		t.Fatalf("a.b.c: got %+v, ok=%v", c, ok)
	}
}

func TestBuildTableHeaderAndBody(t *testing.T) {
	doc := build(t, "[server]\nhost = \"localhost\"\nport = 8080\n")
	server, ok := doc.Root.Get("server")
	if !ok || server.Kind != TableValue {
		t.Fatalf("server: got %+v, ok=%v", server, ok)
	}
	if server.Table.Len() != 2 {
		t.Fatalf("expected 2 entries under [server], got %d", server.Table.Len())
	}
	host, _ := server.Table.Get("host")
	if host.Str != "localhost" {
		t.Errorf("host = %q, want localhost", host.Str)
	}
}

func TestBuildArrayOfTablesIndexesEachElement(t *testing.T) {
	doc := build(t, "[[items]]\nid = 1\n\n[[items]]\nid = 2\n")
	items, ok := doc.Root.Get("items")
	if !ok || items.Kind != ArrayValue {
		t.Fatalf("items: got %+v, ok=%v", items, ok)
	}
	if len(items.Array.Elements) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(items.Array.Elements))
	}
	for i, want := range []int64{1, 2} {
		el := items.Array.Elements[i]
		if el.Kind != TableValue {
			t.Fatalf("items[%d] is not a table: %+v", i, el)
		}
		id, _ := el.Table.Get("id")
		if id.Int != want {
			t.Errorf("items[%d].id = %d, want %d", i, id.Int, want)
		}
	}
}

func TestValueAtWalksKeysAndIndices(t *testing.T) {
	doc := build(t, "[[servers]]\nname = \"a\"\n\n[[servers]]\nname = \"b\"\n")
	path := Path{KeyAccessor("servers"), IndexAccessor(1), KeyAccessor("name")}
	v, ok := ValueAt(doc.Root, path)
	if !ok || v.Kind != String || v.Str != "b" {
		t.Fatalf("ValueAt(servers[1].name) = %+v, ok=%v", v, ok)
	}
}

func TestValueAtMissingPathFails(t *testing.T) {
	doc := build(t, "a = 1\n")
	if _, ok := ValueAt(doc.Root, Path{KeyAccessor("nope")}); ok {
		t.Error("expected ValueAt to fail for a missing key")
	}
}
