package document

import "github.com/tombi-toml/tombi/syntax"

// TableKind tags why a Table exists (spec.md §3 "Table").
type TableKind int

const (
	RootTable TableKind = iota
	StdTable            // `[x]`
	ArrayOfTableElement // one element of `[[x]]`
	InlineTableKind
	KeyValueTable  // synthetic parent of a dotted key
	ParentKeyTable // synthetic for intermediate dotted segments
	ParentTable    // synthetic for `[a.b]` when `a` was implicit
)

// entry is one key/value pair in table insertion order.
type entry struct {
	key Key
	val *Value
}

// Table is an ordered mapping from Key to Value plus a kind tag (spec.md
// §3 "Table"). Insertion order is preserved; lookups are O(1) via index.
type Table struct {
	Kind    TableKind
	Range   syntax.Range
	entries []entry
	index   map[string]int

	// Directive is the inline directive trailing this table's header
	// line, if any.
	Directive *Directive
}

func newTable(kind TableKind, rng syntax.Range) *Table {
	return &Table{Kind: kind, Range: rng, index: map[string]int{}}
}

// Keys returns the table's keys in insertion order.
func (t *Table) Keys() []Key {
	out := make([]Key, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.key
	}
	return out
}

// Get returns the value stored at key, if any.
func (t *Table) Get(key string) (*Value, bool) {
	i, ok := t.index[key]
	if !ok {
		return nil, false
	}
	return t.entries[i].val, true
}

// Entries returns the table's (Key, *Value) pairs in insertion order.
func (t *Table) Entries() []struct {
	Key   Key
	Value *Value
} {
	out := make([]struct {
		Key   Key
		Value *Value
	}, len(t.entries))
	for i, e := range t.entries {
		out[i] = struct {
			Key   Key
			Value *Value
		}{e.key, e.val}
	}
	return out
}

// Len reports the number of entries (used by minProperties/maxProperties).
func (t *Table) Len() int { return len(t.entries) }

func (t *Table) set(key Key, val *Value) {
	if i, ok := t.index[key.Text]; ok {
		t.entries[i].val = val
		return
	}
	t.index[key.Text] = len(t.entries)
	t.entries = append(t.entries, entry{key: key, val: val})
}

// isTableLike reports whether v wraps a Table (plain or synthetic),
// which governs whether dotted-key traversal or header merging may
// descend into it.
func (v *Value) isTableLike() bool { return v.Kind == TableValue && v.Table != nil }
