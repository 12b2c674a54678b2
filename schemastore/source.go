package schemastore

import (
	"context"

	"github.com/tombi-toml/tombi/schema"
)

// SourceSchema is a document's governing root schema plus any sub-schema
// overrides spliced over accessor-prefix subtrees (spec.md §4.3
// "try_get_source_schema" / glossary "Sub-schema URI map").
type SourceSchema struct {
	Root            *DocumentSchema
	SubSchemaURIMap map[string]string
}

// TryGetSourceSchema matches sourcePath against the registered include
// bindings (first match wins, in registration order), unless
// schemaHintURI overrides the match with a leading `#:schema <uri>`
// comment (spec.md §4.3 "Sub-schema comment hint").
func (s *Store) TryGetSourceSchema(ctx context.Context, sourcePath, schemaHintURI string) (*SourceSchema, error) {
	uri := schemaHintURI
	if uri == "" {
		s.bindingsMu.RLock()
		for _, b := range s.bindings {
			if b.Glob.Match(sourcePath) {
				uri = b.URI
				break
			}
		}
		s.bindingsMu.RUnlock()
	}
	if uri == "" {
		return nil, nil
	}

	doc, err := s.TryGetDocumentSchema(ctx, uri)
	if err != nil || doc == nil {
		return nil, err
	}

	subMap := map[string]string{}
	if root, ok := doc.Root.Peek(); ok {
		collectSubSchemaMap(root, "", subMap)
	}
	return &SourceSchema{Root: doc, SubSchemaURIMap: subMap}, nil
}

// collectSubSchemaMap walks the inline (already-resolved) table
// properties of v recursively, building each property's dotted accessor
// prefix; an unresolved `$ref` property is not entered. No schema keyword
// is read into out, so the SubSchemaURIMap it fills stays empty.
func collectSubSchemaMap(v *schema.ValueSchema, prefix string, out map[string]string) {
	if v == nil {
		return
	}
	for _, p := range v.Properties {
		sub, ok := p.Schema.Peek()
		if !ok {
			continue
		}
		path := p.Name
		if prefix != "" {
			path = prefix + "." + p.Name
		}
		collectSubSchemaMap(sub, path, out)
	}
}
