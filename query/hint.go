package query

import (
	"github.com/tombi-toml/tombi/ast"
	"github.com/tombi-toml/tombi/document"
	"github.com/tombi-toml/tombi/syntax"
)

// Hint classifies what kind of completion the cursor sits in (spec.md
// §4.7 "DotTrigger, EqualTrigger, SpaceTrigger, InTableHeader,
// InArray{leading/trailing-comma}, Comma").
type Hint int

const (
	HintNone Hint = iota
	HintDotTrigger
	HintEqualTrigger
	HintSpaceTrigger
	HintInTableHeader
	HintInArrayLeading
	HintInArrayTrailing
	HintComma
)

// Located is the result of walking the AST down to the cursor: the
// accessor path of the enclosing value and the completion hint at that
// point.
type Located struct {
	Path document.Path
	Hint Hint
}

// Locate walks root's items in source order, tracking the accessor path
// the same way document.Build tracks its current table (spec.md §4.2),
// and returns the path and hint for the item enclosing pos. Array index
// accessors use the element's source position among its siblings
// written so far; SchemaPath collapses them anyway, so only ValueAt
// callers (Hover) depend on the exact index being right.
func Locate(root ast.Root, pos syntax.Position) Located {
	var tablePath document.Path
	arrayCounts := map[string]int{}

	for _, it := range root.Items() {
		r := it.SyntaxNode().Range()
		switch it.Kind() {
		case syntax.TABLE:
			t, _ := it.AsTable()
			if containsPos(r, pos) {
				return Located{Path: headerPath(nil, t.Keys, pos), Hint: HintInTableHeader}
			}
			tablePath = headerFullPath(t.Keys)
		case syntax.ARRAY_OF_TABLE:
			a, _ := it.AsArrayOfTable()
			full := headerFullPath(a.Keys)
			name := full.String()
			idx := arrayCounts[name]
			if containsPos(r, pos) {
				return Located{Path: headerPath(nil, a.Keys, pos), Hint: HintInTableHeader}
			}
			tablePath = full.Append(document.IndexAccessor(idx))
			arrayCounts[name] = idx + 1
		case syntax.KEY_VALUE:
			if !containsPos(r, pos) {
				continue
			}
			return locateInKeyValue(tablePath, it, pos)
		}
	}
	return Located{Path: tablePath, Hint: HintNone}
}

func headerFullPath(keysFn func() (ast.Keys, bool)) document.Path {
	keys, ok := keysFn()
	if !ok {
		return nil
	}
	var p document.Path
	for _, seg := range keys.Segments() {
		tok, ok := seg.Token()
		if !ok {
			continue
		}
		p = p.Append(document.KeyAccessor(unquoteKey(tok.Text())))
	}
	return p
}

// headerPath returns only the key segments up to and including pos, so
// completion inside a partially-typed `[a.b.<cursor>]` offers children
// of `a.b`, not of the finished header.
func headerPath(parent document.Path, keysFn func() (ast.Keys, bool), pos syntax.Position) document.Path {
	keys, ok := keysFn()
	if !ok {
		return parent
	}
	p := parent
	for _, seg := range keys.Segments() {
		tok, ok := seg.Token()
		if !ok {
			continue
		}
		if tok.Range().Start.After(pos) {
			break
		}
		p = p.Append(document.KeyAccessor(unquoteKey(tok.Text())))
	}
	return p
}

func locateInKeyValue(parent document.Path, it ast.Item, pos syntax.Position) Located {
	kv, ok := it.AsKeyValue()
	if !ok {
		return Located{Path: parent, Hint: HintNone}
	}
	keys, hasKeys := kv.Keys()
	keyPath := parent
	if hasKeys {
		for _, seg := range keys.Segments() {
			tok, ok := seg.Token()
			if !ok {
				continue
			}
			if pos.Before(tok.Range().Start) {
				// Between the previous segment (or the key's start) and
				// this one: sitting on the dot separator.
				return Located{Path: keyPath, Hint: HintDotTrigger}
			}
			if containsPos(tok.Range(), pos) {
				return Located{Path: keyPath, Hint: HintNone}
			}
			keyPath = keyPath.Append(document.KeyAccessor(unquoteKey(tok.Text())))
		}
	}

	val, hasVal := kv.Value()
	if !hasVal {
		return Located{Path: keyPath, Hint: HintEqualTrigger}
	}
	vr := val.SyntaxNode().Range()
	if pos.Before(vr.Start) {
		return Located{Path: keyPath, Hint: HintSpaceTrigger}
	}
	if arr, ok := val.AsArray(); ok {
		return locateInArray(keyPath, arr, pos)
	}
	return Located{Path: keyPath, Hint: HintNone}
}

func locateInArray(parent document.Path, arr ast.Array, pos syntax.Position) Located {
	elems := arr.Elements()
	for i, e := range elems {
		v, ok := e.Value()
		if !ok {
			continue
		}
		r := v.SyntaxNode().Range()
		if containsPos(r, pos) {
			if varr, ok := v.AsArray(); ok {
				return locateInArray(parent.Append(document.IndexAccessor(i)), varr, pos)
			}
			return Located{Path: parent.Append(document.IndexAccessor(i)), Hint: HintNone}
		}
		if pos.Before(r.Start) {
			hint := HintInArrayLeading
			if i > 0 {
				hint = HintComma
			}
			return Located{Path: parent.Append(document.IndexAccessor(i)), Hint: hint}
		}
	}
	return Located{Path: parent.Append(document.IndexAccessor(len(elems))), Hint: HintInArrayTrailing}
}

func containsPos(r syntax.Range, pos syntax.Position) bool {
	return !pos.Before(r.Start) && pos.Before(r.End)
}

func unquoteKey(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
