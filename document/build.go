// Package document implements the semantic document tree (C4): merged
// tables, typed values, source ranges, and comment-directive attachment,
// built by walking the C3 AST (spec.md §4.2).
package document

import (
	"github.com/tombi-toml/tombi/ast"
	"github.com/tombi-toml/tombi/diagnostic"
	"github.com/tombi-toml/tombi/syntax"
)

// Document is the result of building a document tree: the Root-kinded
// Table, any document-build diagnostics (KeyRedefined, TableRedefined,
// ...), and the file-header directives (schema hint, document-level
// lint/format config) collected while walking.
type Document struct {
	Root        *Table
	Diagnostics []diagnostic.Diagnostic

	// SchemaURI is set from a leading `#:schema <uri>` comment, if any
	// (spec.md §4.3 "Sub-schema comment hint").
	SchemaURI string
	// DocumentDirective is the leading `#:tombi ...` comment's parsed
	// body, if any.
	DocumentDirective *Directive
}

// Build walks an AST root and produces a Document. The returned table is
// a strict superset of the syntactic information needed to re-emit the
// source (spec.md §4.2 invariant).
func Build(root ast.Root) *Document {
	b := &builder{root: newTable(RootTable, root.SyntaxNode().Range())}
	b.current = b.root
	children := root.SyntaxNode().Children()
	atFileHead := true
	for i, c := range children {
		node, isNode := c.AsNode()
		if !isNode {
			if tok, isTok := c.AsToken(); isTok && tok.Kind() == syntax.COMMENT {
				if d, ok := ParseDirective(tok, atFileHead); ok && d.Kind != ValueDirective {
					b.fileDirectives = append(b.fileDirectives, d)
				}
			}
			continue
		}
		switch node.Kind() {
		case syntax.KEY_VALUE:
			if kv, ok := ast.AsItem(node); ok {
				if kvn, ok2 := kv.AsKeyValue(); ok2 {
					b.lastValue = nil
					b.addKeyValue(b.current, kvn)
					atFileHead = false
					b.attachTrailing(children, i)
				}
			}
		case syntax.TABLE:
			if t, ok := ast.AsItem(node); ok {
				if tn, ok2 := t.AsTable(); ok2 {
					b.enterTable(tn)
					atFileHead = false
					b.attachTrailingTable(children, i)
				}
			}
		case syntax.ARRAY_OF_TABLE:
			if a, ok := ast.AsItem(node); ok {
				if an, ok2 := a.AsArrayOfTable(); ok2 {
					b.enterArrayOfTable(an)
					atFileHead = false
					b.attachTrailingTable(children, i)
				}
			}
		}
	}
	doc := &Document{Root: b.root, Diagnostics: b.diags}
	for _, d := range b.fileDirectives {
		switch d.Kind {
		case SchemaHint:
			doc.SchemaURI = d.SchemaURI
		case DocumentDirective:
			dd := d
			doc.DocumentDirective = &dd
		}
	}
	return doc
}

// attachTrailing looks for a `# tombi: ...` comment on the same line as
// the item just processed (children[idx]) and attaches it to the value
// that item produced.
func (b *builder) attachTrailing(children []syntax.Element, idx int) {
	if b.lastValue == nil {
		return
	}
	for j := idx + 1; j < len(children); j++ {
		tok, ok := children[j].AsToken()
		if !ok {
			return
		}
		switch tok.Kind() {
		case syntax.WHITESPACE:
			continue
		case syntax.COMMENT:
			if d, ok := ParseDirective(tok, false); ok {
				b.lastValue.Directive = &d
			}
			return
		default:
			return
		}
	}
}

func (b *builder) attachTrailingTable(children []syntax.Element, idx int) {
	if b.lastTable == nil {
		return
	}
	for j := idx + 1; j < len(children); j++ {
		tok, ok := children[j].AsToken()
		if !ok {
			return
		}
		switch tok.Kind() {
		case syntax.WHITESPACE:
			continue
		case syntax.COMMENT:
			if d, ok := ParseDirective(tok, false); ok {
				b.lastTable.Directive = &d
			}
			return
		default:
			return
		}
	}
}

type builder struct {
	root    *Table
	current *Table // insertion target for bare key-value lines
	diags   []diagnostic.Diagnostic

	lastValue      *Value // value produced by the item just processed
	lastTable      *Table // table entered by the item just processed
	fileDirectives []Directive
}

func (b *builder) diag(kind diagnostic.Kind, rng syntax.Range, msg string) {
	b.diags = append(b.diags, diagnostic.New(kind, rng, msg))
}

func keysOf(k ast.Keys) []Key {
	segs := k.Segments()
	out := make([]Key, 0, len(segs))
	for _, s := range segs {
		tok, ok := s.Token()
		if !ok {
			continue
		}
		out = append(out, NewKey(tok))
	}
	return out
}

// addKeyValue inserts one `keys = value` production under base, creating
// intermediate synthetic tables for any dotted segments (spec.md §4.2.1).
func (b *builder) addKeyValue(base *Table, kv ast.KeyValue) {
	keysNode, ok := kv.Keys()
	if !ok {
		return
	}
	keys := keysOf(keysNode)
	if len(keys) == 0 {
		return
	}
	for _, k := range keys {
		if k.Text == "" {
			b.diag(diagnostic.KeyEmpty, k.Range, "empty key")
		}
	}

	target := base
	for i, k := range keys[:len(keys)-1] {
		kind := ParentKeyTable
		if i == len(keys)-2 {
			kind = KeyValueTable
		}
		target = b.descendOrCreateKeyTable(target, k, kind)
		if target == nil {
			return
		}
	}

	leaf := keys[len(keys)-1]
	if existing, ok := target.Get(leaf.Text); ok {
		b.diag(diagnostic.KeyRedefined, leaf.Range, "key '"+leaf.Text+"' is already defined")
		_ = existing
	}

	av, ok := kv.Value()
	var val *Value
	var ds []diagnostic.Diagnostic
	if ok {
		val, ds = buildValue(av)
	} else {
		val = newIncomplete(kv.SyntaxNode().Range())
	}
	b.diags = append(b.diags, ds...)
	target.set(leaf, val)
	b.lastValue = val
}

// descendOrCreateKeyTable returns the sub-table at key under t, creating
// one of the given kind if absent, and reporting a conflict if key
// already holds a non-table value.
func (b *builder) descendOrCreateKeyTable(t *Table, key Key, kind TableKind) *Table {
	if existing, ok := t.Get(key.Text); ok {
		if sub := tableBehind(existing); sub != nil {
			return sub
		}
		b.diag(diagnostic.KeyRedefined, key.Range, "key '"+key.Text+"' is not a table")
		return nil
	}
	sub := newTable(kind, key.Range)
	t.set(key, &Value{Kind: TableValue, Range: key.Range, Table: sub})
	return sub
}

// tableBehind returns the *Table a value ultimately denotes: itself if
// it is table-like, or the last element's table if it is an
// array-of-tables (so `[[a.b]]` under `[[a]]` nests inside the most
// recent `a` element).
func tableBehind(v *Value) *Table {
	if v.isTableLike() {
		return v.Table
	}
	if v.Kind == ArrayValue && v.Array != nil && v.Array.Kind != PlainArray && len(v.Array.Elements) > 0 {
		last := v.Array.Elements[len(v.Array.Elements)-1]
		if last.isTableLike() {
			return last.Table
		}
	}
	return nil
}

// enterTable processes a `[a.b.c]` header: ensures intermediate tables
// exist, then makes `a.b.c` the insertion target for following
// key-values (spec.md §4.2.2).
func (b *builder) enterTable(t ast.Table) {
	keysNode, ok := t.Keys()
	if !ok {
		return
	}
	keys := keysOf(keysNode)
	if len(keys) == 0 {
		return
	}

	cur := b.root
	for _, k := range keys[:len(keys)-1] {
		cur = b.descendOrCreateHeaderTable(cur, k)
		if cur == nil {
			return
		}
	}

	leaf := keys[len(keys)-1]
	if existing, ok := cur.Get(leaf.Text); ok {
		sub := tableBehind(existing)
		if sub == nil {
			b.diag(diagnostic.TableRedefined, leaf.Range, "'"+leaf.Text+"' is not a table")
			return
		}
		if sub.Kind == InlineTableKind {
			b.diag(diagnostic.InlineTableExt, leaf.Range, "inline table '"+leaf.Text+"' cannot be extended")
			return
		}
		if sub.Kind == StdTable {
			b.diag(diagnostic.TableRedefined, leaf.Range, "table '"+leaf.Text+"' is already defined")
		}
		sub.Kind = StdTable
		b.current = sub
		b.lastTable = sub
		return
	}

	sub := newTable(StdTable, t.SyntaxNode().Range())
	cur.set(leaf, &Value{Kind: TableValue, Range: t.SyntaxNode().Range(), Table: sub})
	b.current = sub
	b.lastTable = sub
}

func (b *builder) descendOrCreateHeaderTable(t *Table, key Key) *Table {
	if existing, ok := t.Get(key.Text); ok {
		sub := tableBehind(existing)
		if sub == nil {
			b.diag(diagnostic.TableRedefined, key.Range, "'"+key.Text+"' is not a table")
			return nil
		}
		if sub.Kind == InlineTableKind {
			b.diag(diagnostic.InlineTableExt, key.Range, "inline table '"+key.Text+"' cannot be extended")
			return nil
		}
		return sub
	}
	sub := newTable(ParentTable, key.Range)
	t.set(key, &Value{Kind: TableValue, Range: key.Range, Table: sub})
	return sub
}

// enterArrayOfTable processes a `[[a.b]]` header: appends a new element
// table to the array at `a.b`, creating the array and any intermediate
// tables as needed (spec.md §4.2.3).
func (b *builder) enterArrayOfTable(a ast.ArrayOfTable) {
	keysNode, ok := a.Keys()
	if !ok {
		return
	}
	keys := keysOf(keysNode)
	if len(keys) == 0 {
		return
	}

	cur := b.root
	for _, k := range keys[:len(keys)-1] {
		cur = b.descendOrCreateHeaderTable(cur, k)
		if cur == nil {
			return
		}
	}

	leaf := keys[len(keys)-1]
	rng := a.SyntaxNode().Range()
	var arr *Array
	if existing, ok := cur.Get(leaf.Text); ok {
		if existing.Kind != ArrayValue || existing.Array == nil || existing.Array.Kind == PlainArray {
			b.diag(diagnostic.TableRedefined, leaf.Range, "'"+leaf.Text+"' is not an array of tables")
			return
		}
		arr = existing.Array
	} else {
		arr = newArray(ArrayOfTableArray, rng)
		cur.set(leaf, &Value{Kind: ArrayValue, Range: rng, Array: arr})
	}

	elemTable := newTable(ArrayOfTableElement, rng)
	arr.push(&Value{Kind: TableValue, Range: rng, Table: elemTable})
	b.current = elemTable
	b.lastTable = elemTable
}

// buildArray converts an ast.Array (inline `[ ... ]`) into a document
// Array, recursing into each element.
func buildArray(av ast.Value) (*Array, []diagnostic.Diagnostic) {
	an, ok := av.AsArray()
	if !ok {
		return newArray(PlainArray, av.SyntaxNode().Range()), nil
	}
	arr := newArray(PlainArray, av.SyntaxNode().Range())
	var diags []diagnostic.Diagnostic
	for _, elemVal := range an.Values() {
		v, ds := buildValue(elemVal)
		diags = append(diags, ds...)
		arr.push(v)
	}
	return arr, diags
}

// buildInlineTable converts an ast.InlineTable into a document Table of
// kind InlineTableKind.
func buildInlineTable(av ast.Value) (*Table, []diagnostic.Diagnostic) {
	n, ok := av.AsInlineTable()
	if !ok {
		return newTable(InlineTableKind, av.SyntaxNode().Range()), nil
	}
	t := newTable(InlineTableKind, av.SyntaxNode().Range())
	var diags []diagnostic.Diagnostic
	ib := &builder{root: t, current: t}
	for _, kv := range n.KeyValues() {
		ib.addKeyValue(ib.current, kv)
	}
	diags = append(diags, ib.diags...)
	return t, diags
}
