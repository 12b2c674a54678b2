// Package editor implements C8: schema-guided structural transforms over
// the AST (not the document tree, so trailing commas and comments stay
// exact) that emit a list of Changes rather than mutating in place
// (spec.md §4.6). Grounded on the shape original_source/crates/
// tombi-ast-editor/src/rule/{array_values_order,table_keys_order}.rs
// name (array_values_order, table_keys_order), reimplemented against
// this repo's own AST/schema types rather than translated line-by-line.
package editor

import (
	"sort"

	"github.com/tombi-toml/tombi/syntax"
)

// ChangeKind tags a Change's operation (spec.md §4.6 "Both transforms
// emit Change::ReplaceRange ... plus ... Change::Remove").
type ChangeKind int

const (
	ReplaceRange ChangeKind = iota
	Remove
)

// Change is one edit over a syntax-element byte range. NewText is the
// exact replacement source text for ReplaceRange; Remove ignores it.
// Applying a Change list in reverse source order (spec.md §4.6 "The
// caller applies changes in reverse source order to keep ranges valid")
// keeps every earlier Change's range valid since later text hasn't
// shifted yet.
type Change struct {
	Kind    ChangeKind
	Range   syntax.ByteRange
	NewText string
}

// Apply rewrites src by applying changes in reverse source order
// (spec.md §4.6).
func Apply(src string, changes []Change) string {
	ordered := append([]Change{}, changes...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Range.Start > ordered[j].Range.Start })
	out := src
	for _, c := range ordered {
		start, end := int(c.Range.Start), int(c.Range.End)
		if start < 0 || end > len(out) || start > end {
			continue
		}
		repl := ""
		if c.Kind == ReplaceRange {
			repl = c.NewText
		}
		out = out[:start] + repl + out[end:]
	}
	return out
}
