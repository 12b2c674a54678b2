package editor

import (
	"regexp"
	"strings"

	"github.com/tombi-toml/tombi/ast"
	"github.com/tombi-toml/tombi/schema"
	"github.com/tombi-toml/tombi/syntax"
)

// TableEntry is one key-value row belonging to a single table: its key
// text and the full KEY_VALUE node (so the whole line, comments
// included, moves together). Grouping the flat sibling KEY_VALUE items
// that belong under one `[header]` block is the caller's job (the same
// header-to-body association document.Build already performs while
// constructing the document tree) — ReorderTableKeys only reorders a
// slice it's already been handed.
type TableEntry struct {
	Key  string
	Node ast.KeyValue
}

// ReorderTableKeys sorts entries per the table schema's
// `x-tombi-table-keys-order` extension (spec.md §4.6
// "reorder_table_keys"). A uniform order sorts every entry together; a
// per-group order partitions entries into schema-named / pattern-matched
// / additional classes and sorts each independently, concatenated in
// the declared group order. No order on the schema is a no-op (nil,
// nil), not an error — most tables simply keep source order.
func ReorderTableKeys(entries []TableEntry, tableSchema *schema.ValueSchema) ([]Change, error) {
	if tableSchema == nil || tableSchema.KeysOrder == nil || len(entries) == 0 {
		return nil, nil
	}
	ko := tableSchema.KeysOrder

	var ordered []TableEntry
	if ko.Uniform != schema.OrderNone {
		ordered = sortEntries(entries, ko.Uniform, tableSchema)
	} else {
		ordered = reorderByGroups(entries, ko.Groups, tableSchema)
	}

	if sameOrder(entries, ordered) {
		return nil, nil
	}
	return []Change{rebuildTable(entries, ordered)}, nil
}

func classify(e TableEntry, ts *schema.ValueSchema) schema.KeyGroup {
	if _, ok := ts.PropertyByName(e.Key); ok {
		return schema.GroupSchemaKeys
	}
	for _, pp := range ts.PatternProperties {
		if re, err := regexp.Compile(pp.Pattern); err == nil && re.MatchString(e.Key) {
			return schema.GroupPatternKeys
		}
	}
	return schema.GroupAdditionalKeys
}

func reorderByGroups(entries []TableEntry, groups []schema.GroupOrder, ts *schema.ValueSchema) []TableEntry {
	buckets := map[schema.KeyGroup][]TableEntry{}
	for _, e := range entries {
		g := classify(e, ts)
		buckets[g] = append(buckets[g], e)
	}
	var out []TableEntry
	seen := map[schema.KeyGroup]bool{}
	for _, gord := range groups {
		seen[gord.Group] = true
		out = append(out, sortEntries(buckets[gord.Group], gord.Order, ts)...)
	}
	// Any group not named in the declared list keeps its entries, in
	// source order, appended after the declared groups.
	for _, g := range []schema.KeyGroup{schema.GroupSchemaKeys, schema.GroupPatternKeys, schema.GroupAdditionalKeys} {
		if !seen[g] {
			out = append(out, buckets[g]...)
		}
	}
	return out
}

func sortEntries(entries []TableEntry, order schema.OrderKind, ts *schema.ValueSchema) []TableEntry {
	out := append([]TableEntry{}, entries...)
	schemaPos := map[string]int{}
	for i, p := range ts.Properties {
		schemaPos[p.Name] = i
	}
	less := func(a, b TableEntry) bool {
		switch order {
		case schema.OrderVersionSort:
			return VersionCompare(a.Key, b.Key) < 0
		case schema.OrderSchema:
			pa, oka := schemaPos[a.Key]
			pb, okb := schemaPos[b.Key]
			if oka && okb {
				return pa < pb
			}
			if oka != okb {
				return oka
			}
			return a.Key < b.Key
		default:
			return a.Key < b.Key
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0; j-- {
			swap := less(out[j], out[j-1])
			if order == schema.OrderDescending {
				swap = less(out[j-1], out[j])
			}
			if !swap {
				break
			}
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

func sameOrder(a, b []TableEntry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Key != b[i].Key {
			return false
		}
	}
	return true
}

func rebuildTable(original, ordered []TableEntry) Change {
	start := original[0].Node.SyntaxNode().ByteRange().Start
	end := original[len(original)-1].Node.SyntaxNode().ByteRange().End

	var b strings.Builder
	for i, e := range ordered {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(e.Node.SyntaxNode().Text())
	}
	return Change{Kind: ReplaceRange, Range: syntax.ByteRange{Start: start, End: end}, NewText: b.String()}
}
