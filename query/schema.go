// Package query implements C9: thin read-only services over the
// document tree (C4) and schema store (C5) — completion, hover,
// goto-definition/type-definition, and document links (spec.md §4.7).
// None of these mutate anything; each is a lookup keyed by an accessor
// Path or a cursor Position, grounded on
// original_source/crates/server/src/completion.rs and
// crates/tombi-lsp/src/completion.rs for the shape of the walk, reworked
// against this repo's own document/schema types rather than translated.
package query

import (
	"context"

	"github.com/tombi-toml/tombi/document"
	"github.com/tombi-toml/tombi/schema"
	"github.com/tombi-toml/tombi/schemastore"
)

// resolveSchemaAt descends rootRef along path. A OneOf/AnyOf/AllOf member
// is entered by choosing the first member whose Kind is consistent with
// the next accessor step (Table for a key step, Array for an index step);
// unlike the validator, which checks the value against every member, this
// does not test which member the value validates against
// (spec.md §9 Open Question), since query services
// have no document value in hand at some call sites (e.g. completion
// past the end of an array). Recorded in DESIGN.md.
// ResolveSchemaAt exports resolveSchemaAt for callers outside the
// package (cmd/tombi's sort subcommand resolves table/array schemas the
// same way completion and hover do).
func ResolveSchemaAt(ctx context.Context, store *schemastore.Store, rootRef *schema.Referable, rootURI string, defs map[string]*schema.Referable, path document.Path) (*schemastore.CurrentSchema, error) {
	return resolveSchemaAt(ctx, store, rootRef, rootURI, defs, path)
}

func resolveSchemaAt(ctx context.Context, store *schemastore.Store, rootRef *schema.Referable, rootURI string, defs map[string]*schema.Referable, path document.Path) (*schemastore.CurrentSchema, error) {
	cur, err := store.Resolve(ctx, rootRef, rootURI, defs)
	if err != nil || cur == nil {
		return cur, err
	}
	for _, a := range path {
		cur, err = descend(ctx, store, cur, a)
		if err != nil || cur == nil {
			return cur, err
		}
	}
	return cur, nil
}

func descend(ctx context.Context, store *schemastore.Store, cur *schemastore.CurrentSchema, a document.Accessor) (*schemastore.CurrentSchema, error) {
	vs := cur.Value
	if vs == nil {
		return nil, nil
	}
	if vs.Kind == schema.KOneOf || vs.Kind == schema.KAnyOf || vs.Kind == schema.KAllOf {
		want := schema.KTable
		if a.Kind == document.AccessorIndex {
			want = schema.KArray
		}
		for _, m := range vs.Members {
			sub, err := store.Resolve(ctx, m, cur.SchemaURI, cur.Definitions)
			if err != nil {
				return nil, err
			}
			if sub != nil && sub.Value != nil && sub.Value.Kind == want {
				return descend(ctx, store, sub, a)
			}
		}
		return nil, nil
	}

	switch a.Kind {
	case document.AccessorKey:
		if vs.Kind != schema.KTable {
			return nil, nil
		}
		var ref *schema.Referable
		if p, ok := vs.PropertyByName(a.Key); ok {
			ref = p
		} else {
			for _, pp := range vs.PatternProperties {
				if patternMatches(pp.Pattern, a.Key) {
					ref = pp.Schema
					break
				}
			}
		}
		if ref == nil {
			ref = vs.AdditionalPropertySchema
		}
		if ref == nil {
			return nil, nil
		}
		return store.Resolve(ctx, ref, cur.SchemaURI, cur.Definitions)
	case document.AccessorIndex:
		if vs.Kind != schema.KArray || vs.Items == nil {
			return nil, nil
		}
		return store.Resolve(ctx, vs.Items, cur.SchemaURI, cur.Definitions)
	}
	return nil, nil
}
