package validator

import (
	"github.com/tombi-toml/tombi/diagnostic"
	"github.com/tombi-toml/tombi/document"
	"github.com/tombi-toml/tombi/schema"
	"github.com/tombi-toml/tombi/schemastore"
)

// validateArray applies minItems/maxItems/uniqueItems and pushes each
// element for recursive validation under the item schema (spec.md §4.5
// "Array": "items validated recursively under the item schema").
func (w *walker) validateArray(f frame, vs *schema.ValueSchema, cur *schemastore.CurrentSchema) {
	elems := f.value.Array.Elements
	n := len(elems)

	if vs.MinItems != nil && n < *vs.MinItems {
		w.report(diagnostic.ArrayMinItems, f.value.Range, "array has fewer than minItems elements", f.value.Directive)
	}
	if vs.MaxItems != nil && n > *vs.MaxItems {
		w.report(diagnostic.ArrayMaxItems, f.value.Range, "array has more than maxItems elements", f.value.Directive)
	}
	if vs.UniqueItems {
		// Non-composite items compare by literal source text, not decoded
		// value — 1 and 1.0 decode to the same float64 but must not count
		// as duplicates (spec.md §4.5 "comparing literal text of
		// non-composite items"). Arrays and tables are excluded entirely.
		seen := make([]string, 0, n)
		duplicate := false
		for _, e := range elems {
			if e.Kind == document.ArrayValue || e.Kind == document.TableValue {
				continue
			}
			for _, s := range seen {
				if s == e.Literal {
					duplicate = true
					break
				}
			}
			if duplicate {
				break
			}
			seen = append(seen, e.Literal)
		}
		if duplicate {
			w.report(diagnostic.ArrayUniqueItems, f.value.Range, "array elements are not unique", f.value.Directive)
		}
	}

	if vs.Items == nil {
		return
	}
	frames := make([]frame, 0, n)
	for i, e := range elems {
		frames = append(frames, frame{
			value:       e,
			accessors:   f.accessors.Append(document.IndexAccessor(i)),
			schemaRef:   vs.Items,
			schemaURI:   cur.SchemaURI,
			definitions: cur.Definitions,
		})
	}
	w.pushAll(frames)
}
