package schemastore

import (
	"context"
	"fmt"
	"strings"

	"github.com/tombi-toml/tombi/schema"
)

// Resolve chases ref's `$ref` (if any) to a concrete CurrentSchema,
// updating schemaURI/definitions when the reference crosses documents
// (spec.md §4.3 "resolve"). Cycle safety: visiting is a per-call visit
// set keyed by "schemaURI#pointer"; a revisit returns an unresolved
// marker (Value == nil) instead of recursing forever.
func (s *Store) Resolve(ctx context.Context, ref *schema.Referable, owningURI string, definitions map[string]*schema.Referable) (*CurrentSchema, error) {
	return s.resolveVisit(ctx, ref, owningURI, definitions, map[string]bool{})
}

func (s *Store) resolveVisit(ctx context.Context, ref *schema.Referable, owningURI string, definitions map[string]*schema.Referable, visited map[string]bool) (*CurrentSchema, error) {
	if ref == nil {
		return nil, nil
	}
	if v, ok := ref.Peek(); ok {
		return &CurrentSchema{Value: v, SchemaURI: owningURI, Definitions: definitions}, nil
	}

	target, refURI, ok := ref.RefTarget()
	if !ok {
		v, _ := ref.Peek()
		return &CurrentSchema{Value: v, SchemaURI: owningURI, Definitions: definitions}, nil
	}

	visitKey := refURI + "#" + target
	if visited[visitKey] {
		return &CurrentSchema{Value: nil, SchemaURI: owningURI, Definitions: definitions}, nil
	}
	visited[visitKey] = true

	docURI, fragment := splitRef(target, refURI)

	defs := definitions
	if docURI != refURI {
		doc, err := s.TryGetDocumentSchema(ctx, docURI)
		if err != nil {
			return nil, err
		}
		if doc == nil {
			return nil, fmt.Errorf("%s: %s", "schema-fetch-failed", docURI)
		}
		defs = doc.Definitions
		if fragment == "" || fragment == "/" {
			cur, err := s.resolveVisit(ctx, doc.Root, docURI, defs, visited)
			if err != nil {
				return nil, err
			}
			if cur != nil && cur.Value != nil {
				ref.SetResolved(cur.Value)
			}
			return &CurrentSchema{Value: cur.Value, SchemaURI: docURI, Definitions: defs}, nil
		}
	}

	sub, ok := defs[fragment]
	if !ok {
		return &CurrentSchema{Value: nil, SchemaURI: docURI, Definitions: defs}, nil
	}
	cur, err := s.resolveVisit(ctx, sub, docURI, defs, visited)
	if err != nil {
		return nil, err
	}
	if cur != nil && cur.Value != nil {
		ref.SetResolved(cur.Value)
	}
	return &CurrentSchema{Value: cur.Value, SchemaURI: docURI, Definitions: defs}, nil
}

// splitRef splits a `$ref` value into the document URI it points at
// (owningURI itself for a same-document `#/...` pointer) and the
// fragment after `#`.
func splitRef(ref, owningURI string) (docURI, fragment string) {
	if strings.HasPrefix(ref, "#") {
		return owningURI, strings.TrimPrefix(ref, "#")
	}
	parts := strings.SplitN(ref, "#", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return parts[0], ""
}
