package editor

import (
	"errors"
	"strconv"
	"strings"

	"github.com/tombi-toml/tombi/ast"
	"github.com/tombi-toml/tombi/schema"
	"github.com/tombi-toml/tombi/syntax"
)

// ErrNotSortable is the single "not sortable" signal spec.md §9 asks to
// collapse the original's two ambiguous sentinels (an empty array, and a
// first element of unsupported/mixed kind) into: both cases abort the
// sort silently from the caller's point of view, so one error value
// suffices.
var ErrNotSortable = errors.New("editor: array is not sortable")

type sortKey struct {
	idx      int
	elem     ast.ArrayValue
	lexKey   string
	intKey   int64
	isString bool
}

// SortArrayValues classifies every element by a single sortable kind
// (Boolean, Integer, String, the four datetime kinds — spec.md glossary
// "Sortable type"), then emits one ReplaceRange spanning the array's
// element list with the values reordered and rejoined by rebuildArray
// (spec.md §4.6 "sort_array_values"). A mixed-kind array, or one
// whose values_order names nothing, returns ErrNotSortable and emits no
// Change — sort is best-effort.
func SortArrayValues(arr ast.Array, order schema.OrderKind) ([]Change, error) {
	if order == schema.OrderNone {
		return nil, ErrNotSortable
	}
	elems := arr.Elements()
	if len(elems) == 0 {
		return nil, ErrNotSortable
	}

	keys := make([]sortKey, len(elems))
	var kind syntax.Kind
	for i, e := range elems {
		v, ok := e.Value()
		if !ok || !v.IsLiteral() {
			return nil, ErrNotSortable
		}
		if i == 0 {
			kind = v.Kind()
			if !isSortableKind(kind) {
				return nil, ErrNotSortable
			}
		} else if v.Kind() != kind {
			return nil, ErrNotSortable
		}
		keys[i] = sortKeyFor(i, e, v)
	}

	original := append([]sortKey{}, keys...)
	sortKeys(keys, order)
	if unchanged(original, keys) {
		return nil, nil
	}

	return []Change{rebuildArray(arr, keys)}, nil
}

func isSortableKind(k syntax.Kind) bool {
	switch k {
	case syntax.BOOLEAN_VALUE, syntax.INTEGER_VALUE,
		syntax.BASIC_STRING_VALUE, syntax.LITERAL_STRING_VALUE,
		syntax.OFFSET_DATE_TIME_VALUE, syntax.LOCAL_DATE_TIME_VALUE,
		syntax.LOCAL_DATE_VALUE, syntax.LOCAL_TIME_VALUE:
		return true
	}
	return false
}

func sortKeyFor(i int, e ast.ArrayValue, v ast.Value) sortKey {
	tok, _ := v.Token()
	text := tok.Text()
	k := sortKey{idx: i, elem: e}
	switch v.Kind() {
	case syntax.INTEGER_VALUE:
		iv, _ := strconv.ParseInt(strings.ReplaceAll(text, "_", ""), 0, 64)
		k.intKey = iv
	case syntax.BOOLEAN_VALUE:
		if text == "true" {
			k.intKey = 1
		}
	case syntax.BASIC_STRING_VALUE, syntax.LITERAL_STRING_VALUE:
		k.lexKey = unquoteOnce(text)
		k.isString = true
	default: // datetime kinds
		k.lexKey = text
		k.isString = true
	}
	return k
}

func unquoteOnce(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}

func sortKeys(keys []sortKey, order schema.OrderKind) {
	less := func(a, b sortKey) bool {
		if order == schema.OrderVersionSort && a.isString {
			return VersionCompare(a.lexKey, b.lexKey) < 0
		}
		if a.isString {
			return a.lexKey < b.lexKey
		}
		return a.intKey < b.intKey
	}
	stableSort(keys, func(i, j int) bool {
		if order == schema.OrderDescending {
			return less(keys[j], keys[i])
		}
		return less(keys[i], keys[j])
	})
}

func stableSort(keys []sortKey, less func(i, j int) bool) {
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && less(j, j-1); j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
}

func unchanged(a, b []sortKey) bool {
	for i := range a {
		if a[i].idx != b[i].idx {
			return false
		}
	}
	return true
}

// rebuildArray produces one ReplaceRange over the span from the first to
// the last array element, joining reordered element texts with ", ".
// A trailing comma is written only when the array's last element in
// source order (before sorting) carried one.
func rebuildArray(arr ast.Array, keys []sortKey) Change {
	elems := arr.Elements()
	start := elems[0].SyntaxNode().ByteRange().Start
	end := elems[len(elems)-1].SyntaxNode().ByteRange().End

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		v, _ := k.elem.Value()
		b.WriteString(v.SyntaxNode().Text())
	}
	if elems[len(elems)-1].HasComma() {
		b.WriteString(",")
	}

	return Change{Kind: ReplaceRange, Range: syntax.ByteRange{Start: start, End: end}, NewText: b.String()}
}

// VersionCompare ranks two strings by dotted-integer precedence: numeric
// chunks compare numerically, alphabetic chunks lexicographically, and a
// prefix match ranks the shorter string first (spec.md §4.6
// "VersionSort").
func VersionCompare(a, b string) int {
	ac, bc := splitVersionChunks(a), splitVersionChunks(b)
	for i := 0; i < len(ac) && i < len(bc); i++ {
		if c := compareChunk(ac[i], bc[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(ac) < len(bc):
		return -1
	case len(ac) > len(bc):
		return 1
	}
	return 0
}

func splitVersionChunks(s string) []string {
	var chunks []string
	var cur strings.Builder
	var curIsDigit bool
	for i, r := range s {
		isDigit := r >= '0' && r <= '9'
		if i > 0 && isDigit != curIsDigit {
			chunks = append(chunks, cur.String())
			cur.Reset()
		}
		cur.WriteRune(r)
		curIsDigit = isDigit
	}
	if cur.Len() > 0 {
		chunks = append(chunks, cur.String())
	}
	return chunks
}

func compareChunk(a, b string) int {
	an, aErr := strconv.ParseInt(a, 10, 64)
	bn, bErr := strconv.ParseInt(b, 10, 64)
	if aErr == nil && bErr == nil {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		}
		return 0
	}
	return strings.Compare(a, b)
}
