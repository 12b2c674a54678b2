package query

import (
	"context"
	"sort"
	"strconv"

	"github.com/tombi-toml/tombi/schema"
	"github.com/tombi-toml/tombi/schemastore"
)

// CompletionKind tags why a candidate was offered, and doubles as its
// sort key (spec.md §4.7 "Completion priority (low = shown first):
// Custom, Default, Const, Enum, RequiredKey, OptionalKey, AdditionalKey,
// TypeHint, TypeHintKey, TypeHintTrue, TypeHintFalse").
type CompletionKind int

const (
	KindCustom CompletionKind = iota
	KindDefault
	KindConst
	KindEnum
	KindRequiredKey
	KindOptionalKey
	KindAdditionalKey
	KindTypeHint
	KindTypeHintKey
	KindTypeHintTrue
	KindTypeHintFalse
)

// CompletionItem is one candidate. Label is what's matched/deduped on;
// InsertText is what gets typed (may differ from Label for key
// candidates, which insert `key = `).
type CompletionItem struct {
	Label      string
	InsertText string
	Detail     string
	Kind       CompletionKind
}

// Completion resolves the schema at loc.Path and produces candidates per
// spec.md §4.7, deduplicated by label (highest priority — lowest
// CompletionKind value — wins) and stable-sorted by priority.
func Completion(ctx context.Context, req *Request, store *schemastore.Store, rootRef *schema.Referable, rootURI string, defs map[string]*schema.Referable, loc Located) ([]CompletionItem, error) {
	req.log("completion", "path", loc.Path.String())
	cur, err := resolveSchemaAt(ctx, store, rootRef, rootURI, defs, loc.Path)
	if err != nil || cur == nil || cur.Value == nil {
		return nil, err
	}
	vs := cur.Value

	var items []CompletionItem
	if vs.HasDefault {
		items = append(items, CompletionItem{Label: literalLabel(vs.Default), InsertText: literalLabel(vs.Default), Kind: KindDefault, Detail: "default"})
	}
	if vs.HasConst {
		items = append(items, CompletionItem{Label: literalLabel(vs.Const), InsertText: literalLabel(vs.Const), Kind: KindConst, Detail: "const"})
	}
	for _, e := range vs.Enum {
		items = append(items, CompletionItem{Label: literalLabel(e), InsertText: literalLabel(e), Kind: KindEnum})
	}

	switch loc.Hint {
	case HintInTableHeader, HintDotTrigger, HintEqualTrigger, HintSpaceTrigger, HintNone:
		if vs.Kind == schema.KTable {
			items = append(items, tableKeyCandidates(vs)...)
		}
	}
	items = append(items, typeHintCandidates(vs)...)

	return dedupeByLabel(items), nil
}

func tableKeyCandidates(vs *schema.ValueSchema) []CompletionItem {
	required := map[string]bool{}
	for _, r := range vs.Required {
		required[r] = true
	}
	var out []CompletionItem
	for _, p := range vs.Properties {
		kind := KindOptionalKey
		if required[p.Name] {
			kind = KindRequiredKey
		}
		out = append(out, CompletionItem{Label: p.Name, InsertText: p.Name + " = ", Kind: kind})
	}
	if vs.AdditionalKeyLabel != "" {
		out = append(out, CompletionItem{Label: vs.AdditionalKeyLabel, InsertText: vs.AdditionalKeyLabel + " = ", Kind: KindAdditionalKey})
	}
	return out
}

// typeHintCandidates offers the bare-syntax templates for the schema's
// kind (spec.md §4.7 "type-hint templates (`[]`, `{}`, `\"\"`,
// `true`/`false`)").
func typeHintCandidates(vs *schema.ValueSchema) []CompletionItem {
	switch vs.Kind {
	case schema.KArray:
		return []CompletionItem{{Label: "[]", InsertText: "[]", Kind: KindTypeHint}}
	case schema.KTable:
		return []CompletionItem{{Label: "{}", InsertText: "{}", Kind: KindTypeHint}}
	case schema.KString:
		return []CompletionItem{{Label: `""`, InsertText: `""`, Kind: KindTypeHint}}
	case schema.KBoolean:
		return []CompletionItem{
			{Label: "true", InsertText: "true", Kind: KindTypeHintTrue},
			{Label: "false", InsertText: "false", Kind: KindTypeHintFalse},
		}
	}
	return nil
}

func literalLabel(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return `"` + t + `"`
	case bool:
		if t {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	default:
		return ""
	}
}

func dedupeByLabel(items []CompletionItem) []CompletionItem {
	best := map[string]CompletionItem{}
	var order []string
	for _, it := range items {
		cur, ok := best[it.Label]
		if !ok || it.Kind < cur.Kind {
			if !ok {
				order = append(order, it.Label)
			}
			best[it.Label] = it
		}
	}
	out := make([]CompletionItem, len(order))
	for i, label := range order {
		out[i] = best[label]
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out
}
