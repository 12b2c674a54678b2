package validator

import (
	"github.com/tombi-toml/tombi/diagnostic"
	"github.com/tombi-toml/tombi/document"
	"github.com/tombi-toml/tombi/schema"
	"github.com/tombi-toml/tombi/schemastore"
)

// validateTable matches each entry to a declared property, a
// pattern-property, or the additional-property policy, then checks
// required/min/maxProperties (spec.md §4.5 "Table").
func (w *walker) validateTable(f frame, vs *schema.ValueSchema, cur *schemastore.CurrentSchema) {
	entries := f.value.Table.Entries()

	if vs.MinProperties != nil && len(entries) < *vs.MinProperties {
		w.report(diagnostic.TableMinKeys, f.value.Range, "table has fewer than minProperties keys", f.value.Directive)
	}
	if vs.MaxProperties != nil && len(entries) > *vs.MaxProperties {
		w.report(diagnostic.TableMaxKeys, f.value.Range, "table has more than maxProperties keys", f.value.Directive)
	}
	for _, req := range vs.Required {
		if _, ok := f.value.Table.Get(req); !ok {
			w.report(diagnostic.KeyRequired, f.value.Range, "required key '"+req+"' is missing", f.value.Directive)
		}
	}

	var frames []frame
	for _, e := range entries {
		sub, subOK := vs.PropertyByName(e.Key.Text)
		if !subOK {
			for _, pp := range vs.PatternProperties {
				re, err := compilePattern(pp.Pattern)
				if err == nil && re.MatchString(e.Key.Text) {
					sub, subOK = pp.Schema, true
					break
				}
			}
		}
		if !subOK {
			switch {
			case vs.AdditionalPropertySchema != nil:
				sub, subOK = vs.AdditionalPropertySchema, true
			case vs.AdditionalPropsDeclared && vs.AdditionalPropsAllowed:
				// additionalProperties: true — extra keys pass with no
				// diagnostic and no further schema to validate against.
				continue
			case vs.AdditionalPropsDeclared && !vs.AdditionalPropsAllowed:
				// additionalProperties: false — always rejected, strict or not.
				w.report(diagnostic.KeyNotAllowed, e.Value.Range, "key '"+e.Key.Text+"' is not allowed", e.Value.Directive)
				continue
			case w.vctx.Strict:
				// additionalProperties omitted entirely: strict mode treats
				// an undeclared policy as rejecting extra keys (spec.md
				// §4.5, §9 scenario 3).
				w.report(diagnostic.StrictAdditionalProps, e.Value.Range, "key '"+e.Key.Text+"' is not allowed", e.Value.Directive)
				continue
			default:
				continue
			}
		}
		frames = append(frames, frame{
			value:       e.Value,
			accessors:   f.accessors.Append(document.KeyAccessor(e.Key.Text)),
			schemaRef:   sub,
			schemaURI:   cur.SchemaURI,
			definitions: cur.Definitions,
		})
	}
	w.pushAll(frames)
}
