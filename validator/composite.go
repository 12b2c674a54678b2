package validator

import (
	"strings"

	"github.com/tombi-toml/tombi/diagnostic"
	"github.com/tombi-toml/tombi/schema"
	"github.com/tombi-toml/tombi/schemastore"
)

// validateOneOf requires exactly one member to validate cleanly (spec.md
// §4.5 "OneOf"). Each member is tried independently with its own
// sub-walker so one member's diagnostics never leak into another's.
func (w *walker) validateOneOf(f frame, vs *schema.ValueSchema, cur *schemastore.CurrentSchema) {
	matches := 0
	var tried []string
	for _, m := range vs.Members {
		sub := w.tryMember(f, m, cur)
		tried = append(tried, memberName(m))
		if len(sub) == 0 {
			matches++
		}
	}
	if matches != 1 {
		w.report(diagnostic.OneOfUnmatched, f.value.Range, "value matches "+pluralMatches(matches)+" of oneOf alternatives: "+strings.Join(tried, ", "), f.value.Directive)
	}
}

// validateAnyOf requires at least one member to validate (spec.md §4.5
// "AnyOf").
func (w *walker) validateAnyOf(f frame, vs *schema.ValueSchema, cur *schemastore.CurrentSchema) {
	for _, m := range vs.Members {
		if sub := w.tryMember(f, m, cur); len(sub) == 0 {
			return
		}
	}
	w.report(diagnostic.OneOfUnmatched, f.value.Range, "value matches none of the anyOf alternatives", f.value.Directive)
}

// validateAllOf requires every member to validate; the union of every
// member's diagnostics is reported (spec.md §4.5 "AllOf").
func (w *walker) validateAllOf(f frame, vs *schema.ValueSchema, cur *schemastore.CurrentSchema) {
	anyFailed := false
	for _, m := range vs.Members {
		sub := w.tryMember(f, m, cur)
		if len(sub) > 0 {
			anyFailed = true
			w.diags = append(w.diags, sub...)
		}
	}
	if anyFailed {
		w.report(diagnostic.AllOfUnmatched, f.value.Range, "value does not match every allOf member", f.value.Directive)
	}
}

// tryMember runs a nested Validate pass for one composite member,
// returning its diagnostics without mutating the parent walker's output.
func (w *walker) tryMember(f frame, member *schema.Referable, cur *schemastore.CurrentSchema) []diagnostic.Diagnostic {
	sub := &walker{ctx: w.ctx, vctx: w.vctx}
	sub.push(frame{value: f.value, accessors: f.accessors, schemaRef: member, schemaURI: cur.SchemaURI, definitions: cur.Definitions})
	for len(sub.stack) > 0 {
		sf := sub.stack[len(sub.stack)-1]
		sub.stack = sub.stack[:len(sub.stack)-1]
		if err := sub.step(sf); err != nil {
			break
		}
	}
	return sub.diags
}

func memberName(m *schema.Referable) string {
	if v, ok := m.Peek(); ok {
		return kindName(v.Kind)
	}
	return "Unresolved"
}

func pluralMatches(n int) string {
	if n == 1 {
		return "exactly one"
	}
	if n == 0 {
		return "none"
	}
	return "more than one"
}
