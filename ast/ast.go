// Package ast provides typed wrappers over syntax.SyntaxNode (C3). Each
// wrapper is a thin view, not a copy: it holds the underlying node and
// exposes named accessors for its children instead of requiring callers
// to know Kind-indexed child order.
package ast

import "github.com/tombi-toml/tombi/syntax"

// Node is satisfied by every AST wrapper.
type Node interface {
	SyntaxNode() syntax.SyntaxNode
}

// Root wraps the tree's ROOT node: the top-level sequence of key-values
// and table/array-of-table headers in source order.
type Root struct{ n syntax.SyntaxNode }

func NewRoot(n syntax.SyntaxNode) Root { return Root{n} }

func (r Root) SyntaxNode() syntax.SyntaxNode { return r.n }

// Items returns the top-level productions in source order.
func (r Root) Items() []Item {
	var out []Item
	for _, c := range r.n.ChildNodes() {
		if it, ok := AsItem(c); ok {
			out = append(out, it)
		}
	}
	return out
}

// Item is one top-level production: a key-value line, a table header, or
// an array-of-table header.
type Item struct{ n syntax.SyntaxNode }

func AsItem(n syntax.SyntaxNode) (Item, bool) {
	switch n.Kind() {
	case syntax.KEY_VALUE, syntax.TABLE, syntax.ARRAY_OF_TABLE:
		return Item{n}, true
	}
	return Item{}, false
}

func (it Item) SyntaxNode() syntax.SyntaxNode { return it.n }
func (it Item) Kind() syntax.Kind             { return it.n.Kind() }

func (it Item) AsKeyValue() (KeyValue, bool) {
	if it.n.Kind() != syntax.KEY_VALUE {
		return KeyValue{}, false
	}
	return KeyValue{it.n}, true
}

func (it Item) AsTable() (Table, bool) {
	if it.n.Kind() != syntax.TABLE {
		return Table{}, false
	}
	return Table{it.n}, true
}

func (it Item) AsArrayOfTable() (ArrayOfTable, bool) {
	if it.n.Kind() != syntax.ARRAY_OF_TABLE {
		return ArrayOfTable{}, false
	}
	return ArrayOfTable{it.n}, true
}

// KeyValue wraps a KEY_VALUE node: `keys = value`.
type KeyValue struct{ n syntax.SyntaxNode }

func (kv KeyValue) SyntaxNode() syntax.SyntaxNode { return kv.n }

func (kv KeyValue) Keys() (Keys, bool) {
	n, ok := kv.n.FirstChildOfKind(syntax.KEYS)
	if !ok {
		return Keys{}, false
	}
	return Keys{n}, true
}

func (kv KeyValue) Value() (Value, bool) {
	for _, c := range kv.n.ChildNodes() {
		if v, ok := AsValue(c); ok {
			return v, true
		}
	}
	return Value{}, false
}

// Table wraps a TABLE node: `[a.b.c]` plus the key-values that follow it
// until the next header (those are siblings in Root, not children here —
// the document builder re-associates them by walking Root.Items in order).
type Table struct{ n syntax.SyntaxNode }

func (t Table) SyntaxNode() syntax.SyntaxNode { return t.n }

func (t Table) Keys() (Keys, bool) {
	n, ok := t.n.FirstChildOfKind(syntax.KEYS)
	if !ok {
		return Keys{}, false
	}
	return Keys{n}, true
}

// ArrayOfTable wraps an ARRAY_OF_TABLE node: `[[a.b]]`.
type ArrayOfTable struct{ n syntax.SyntaxNode }

func (a ArrayOfTable) SyntaxNode() syntax.SyntaxNode { return a.n }

func (a ArrayOfTable) Keys() (Keys, bool) {
	n, ok := a.n.FirstChildOfKind(syntax.KEYS)
	if !ok {
		return Keys{}, false
	}
	return Keys{n}, true
}

// Keys wraps a KEYS node: one or more dotted KEY children.
type Keys struct{ n syntax.SyntaxNode }

func (k Keys) SyntaxNode() syntax.SyntaxNode { return k.n }

// Segments returns each dotted segment in source order.
func (k Keys) Segments() []Key {
	var out []Key
	for _, c := range k.n.ChildNodes() {
		if c.Kind() == syntax.KEY {
			out = append(out, Key{c})
		}
	}
	return out
}

// Key wraps a single KEY node: one bare or quoted key token.
type Key struct{ n syntax.SyntaxNode }

func (k Key) SyntaxNode() syntax.SyntaxNode { return k.n }

// Token returns the underlying leaf token, if the key was well-formed.
func (k Key) Token() (syntax.SyntaxToken, bool) {
	for _, c := range k.n.ChildTokens() {
		return c, true
	}
	return syntax.SyntaxToken{}, false
}

// Array wraps a VALUE_ARRAY node: `[ ... ]`.
type Array struct{ n syntax.SyntaxNode }

func (a Array) SyntaxNode() syntax.SyntaxNode { return a.n }

// Values returns each element's value, skipping elements that failed to
// parse (the parser already recorded a diagnostic for those).
func (a Array) Values() []Value {
	var out []Value
	for _, av := range a.n.ChildNodes() {
		if av.Kind() != syntax.ARRAY_VALUE {
			continue
		}
		for _, c := range av.ChildNodes() {
			if v, ok := AsValue(c); ok {
				out = append(out, v)
				break
			}
		}
	}
	return out
}

// Elements returns each ARRAY_VALUE child directly, giving the editor
// driver (C8) access to each element's trailing comma alongside its
// value (spec.md §4.6 "sort_array_values(values_with_comma, ...)").
func (a Array) Elements() []ArrayValue {
	var out []ArrayValue
	for _, c := range a.n.ChildNodes() {
		if c.Kind() == syntax.ARRAY_VALUE {
			out = append(out, ArrayValue{c})
		}
	}
	return out
}

// ArrayValue wraps one ARRAY_VALUE node, giving access to its trailing
// comma so the editor driver (C8) can rebuild the element list exactly.
type ArrayValue struct{ n syntax.SyntaxNode }

func (av ArrayValue) SyntaxNode() syntax.SyntaxNode { return av.n }

func (av ArrayValue) Value() (Value, bool) {
	for _, c := range av.n.ChildNodes() {
		if v, ok := AsValue(c); ok {
			return v, true
		}
	}
	return Value{}, false
}

func (av ArrayValue) HasComma() bool {
	_, ok := av.n.FirstTokenOfKind(syntax.COMMA)
	return ok
}

// InlineTable wraps an INLINE_TABLE node: `{ k = v, ... }`.
type InlineTable struct{ n syntax.SyntaxNode }

func (it InlineTable) SyntaxNode() syntax.SyntaxNode { return it.n }

func (it InlineTable) KeyValues() []KeyValue {
	var out []KeyValue
	for _, c := range it.n.ChildNodes() {
		if c.Kind() == syntax.KEY_VALUE {
			out = append(out, KeyValue{c})
		}
	}
	return out
}

// Value is any value-producing node: a literal wrapper, an Array, or an
// InlineTable. Literal kinds (BOOLEAN_VALUE, INTEGER_VALUE, ...) all wrap
// exactly one leaf token; Token exposes it uniformly.
type Value struct{ n syntax.SyntaxNode }

func AsValue(n syntax.SyntaxNode) (Value, bool) {
	switch n.Kind() {
	case syntax.BOOLEAN_VALUE, syntax.INTEGER_VALUE, syntax.FLOAT_VALUE,
		syntax.BASIC_STRING_VALUE, syntax.LITERAL_STRING_VALUE,
		syntax.MULTI_LINE_BASIC_STRING_VALUE, syntax.MULTI_LINE_LITERAL_STRING_VALUE,
		syntax.OFFSET_DATE_TIME_VALUE, syntax.LOCAL_DATE_TIME_VALUE,
		syntax.LOCAL_DATE_VALUE, syntax.LOCAL_TIME_VALUE,
		syntax.VALUE_ARRAY, syntax.INLINE_TABLE:
		return Value{n}, true
	}
	return Value{}, false
}

func (v Value) SyntaxNode() syntax.SyntaxNode { return v.n }
func (v Value) Kind() syntax.Kind             { return v.n.Kind() }

// IsLiteral reports whether v wraps a single leaf token (as opposed to an
// Array or InlineTable).
func (v Value) IsLiteral() bool {
	switch v.n.Kind() {
	case syntax.VALUE_ARRAY, syntax.INLINE_TABLE:
		return false
	}
	return true
}

// Token returns the single leaf token a literal value wraps.
func (v Value) Token() (syntax.SyntaxToken, bool) {
	for _, c := range v.n.ChildTokens() {
		return c, true
	}
	return syntax.SyntaxToken{}, false
}

func (v Value) AsArray() (Array, bool) {
	if v.n.Kind() != syntax.VALUE_ARRAY {
		return Array{}, false
	}
	return Array{v.n}, true
}

func (v Value) AsInlineTable() (InlineTable, bool) {
	if v.n.Kind() != syntax.INLINE_TABLE {
		return InlineTable{}, false
	}
	return InlineTable{v.n}, true
}
