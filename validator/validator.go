// Package validator implements C7: walking a document tree against a
// resolved schema and emitting typed diagnostics (spec.md §4.5). The
// walk is expressed as an explicit work stack of (value, accessors,
// schema) frames rather than recursion, per spec.md §9 "Async
// recursion... implement via a work stack", since Go has no native
// async/await to suspend at a schema-resolution point — the stack plays
// the role the original's recursive-async walker filled, grounded on
// original_source/crates/tombi-validator/src/validate/table.rs's
// per-kind dispatch shape.
package validator

import (
	"context"
	"log/slog"

	"github.com/tombi-toml/tombi/diagnostic"
	"github.com/tombi-toml/tombi/document"
	"github.com/tombi-toml/tombi/internal/tlog"
	"github.com/tombi-toml/tombi/schema"
	"github.com/tombi-toml/tombi/schemastore"
	"github.com/tombi-toml/tombi/syntax"
)

// Context bundles the collaborators a validation run needs: the schema
// store for lazy $ref resolution and sub-schema splicing, and the
// strict option that gates KeyNotAllowed vs
// StrictAdditionalProperties (spec.md §4.5 "Table").
type Context struct {
	Store           *schemastore.Store
	SubSchemaURIMap map[string]string
	Strict          bool
	Logger          *slog.Logger
}

// frame is one unit of the work stack: a value to check against a
// schema, at a given accessor path, carrying the $ref-definitions table
// needed to keep resolving if the value itself nests a $ref.
type frame struct {
	value       *document.Value
	accessors   document.Path
	schemaRef   *schema.Referable
	schemaURI   string
	definitions map[string]*schema.Referable
}

// Validate walks root against rootSchema, returning every diagnostic
// found (spec.md §4.5 contract). Diagnostics are appended in source
// order within a value and in insertion order across table siblings
// (spec.md §4.5 "Ordering guarantee"), because the stack always pushes a
// table's children in their Entries() order and pops depth-first.
func Validate(ctx context.Context, vctx Context, root *document.Table, rootSchema *schema.Referable, rootSchemaURI string, definitions map[string]*schema.Referable) ([]diagnostic.Diagnostic, error) {
	if vctx.Logger == nil {
		vctx.Logger = tlog.Discard()
	}
	w := &walker{ctx: ctx, vctx: vctx}
	rootValue := &document.Value{Kind: document.TableValue, Table: root}
	w.push(frame{value: rootValue, schemaRef: rootSchema, schemaURI: rootSchemaURI, definitions: definitions})
	for len(w.stack) > 0 {
		f := w.stack[len(w.stack)-1]
		w.stack = w.stack[:len(w.stack)-1]
		if err := w.step(f); err != nil {
			return w.diags, err
		}
	}
	return w.diags, nil
}

type walker struct {
	ctx   context.Context
	vctx  Context
	stack []frame
	diags []diagnostic.Diagnostic
}

func (w *walker) push(f frame) { w.stack = append(w.stack, f) }

// pushAll pushes fs in reverse so the first one pops (and therefore
// validates) first, preserving source/insertion order on a LIFO stack.
func (w *walker) pushAll(fs []frame) {
	for i := len(fs) - 1; i >= 0; i-- {
		w.push(fs[i])
	}
}

func (w *walker) report(kind diagnostic.Kind, rng syntax.Range, msg string, directive *document.Directive) {
	d := diagnostic.New(kind, rng, msg)
	if directive != nil {
		if setting, ok := directive.LookupRuleOverride(string(kind)); ok {
			switch setting {
			case "off":
				return
			case "warn":
				d.Severity = diagnostic.Warning
			case "error":
				d.Severity = diagnostic.Error
			}
		}
	}
	w.diags = append(w.diags, d)
}

func (w *walker) step(f frame) error {
	if f.schemaRef == nil {
		return nil
	}

	// Sub-schema splice: if a distinct schema governs this accessor
	// path, switch to it before applying any rule (spec.md §4.5 "Before
	// any rule fires the validator queries the schema store for a
	// sub-schema keyed by the current accessor chain").
	if uri, ok := w.vctx.SubSchemaURIMap[f.accessors.String()]; ok && uri != f.schemaURI {
		doc, err := w.vctx.Store.TryGetDocumentSchema(w.ctx, uri)
		if err != nil {
			return err
		}
		if doc != nil {
			f.schemaRef = doc.Root
			f.schemaURI = doc.SchemaURI
			f.definitions = doc.Definitions
		}
	}

	cur, err := w.vctx.Store.Resolve(w.ctx, f.schemaRef, f.schemaURI, f.definitions)
	if err != nil {
		return err
	}
	if cur == nil || cur.Value == nil {
		return nil
	}
	vs := cur.Value

	switch vs.Kind {
	case schema.KOneOf:
		w.validateOneOf(f, vs, cur)
		return nil
	case schema.KAnyOf:
		w.validateAnyOf(f, vs, cur)
		return nil
	case schema.KAllOf:
		w.validateAllOf(f, vs, cur)
		return nil
	}

	if vs.Kind == schema.KNull {
		return nil
	}

	if !kindMatches(vs.Kind, f.value) {
		if f.value.Kind == document.Incomplete {
			return nil
		}
		w.report(diagnostic.TypeMismatch, f.value.Range, "expected "+kindName(vs.Kind)+", found "+valueKindName(f.value.Kind), f.value.Directive)
		return nil
	}

	if vs.HasConst && !constMatches(vs.Const, f.value) {
		w.report(diagnostic.Const, f.value.Range, "value does not match const", f.value.Directive)
	}
	if len(vs.Enum) > 0 && !enumMatches(vs.Enum, f.value) {
		w.report(diagnostic.Enumerate, f.value.Range, "value is not one of the enumerated values", f.value.Directive)
	}
	if vs.Deprecated {
		w.report(diagnostic.Deprecated, f.value.Range, "value is deprecated", f.value.Directive)
	}

	switch f.value.Kind {
	case document.Integer, document.Float:
		w.validateNumber(f, vs)
	case document.String:
		w.validateString(f, vs)
	case document.ArrayValue:
		w.validateArray(f, vs, cur)
	case document.TableValue:
		w.validateTable(f, vs, cur)
	}
	return nil
}

func kindName(k schema.Kind) string {
	switch k {
	case schema.KBoolean:
		return "Boolean"
	case schema.KInteger:
		return "Integer"
	case schema.KFloat:
		return "Float"
	case schema.KString:
		return "String"
	case schema.KOffsetDateTime:
		return "OffsetDateTime"
	case schema.KLocalDateTime:
		return "LocalDateTime"
	case schema.KLocalDate:
		return "LocalDate"
	case schema.KLocalTime:
		return "LocalTime"
	case schema.KArray:
		return "Array"
	case schema.KTable:
		return "Table"
	case schema.KNull:
		return "Null"
	}
	return "Unknown"
}

func valueKindName(k document.ValueKind) string {
	switch k {
	case document.Boolean:
		return "Boolean"
	case document.Integer:
		return "Integer"
	case document.Float:
		return "Float"
	case document.String:
		return "String"
	case document.OffsetDateTime:
		return "OffsetDateTime"
	case document.LocalDateTime:
		return "LocalDateTime"
	case document.LocalDate:
		return "LocalDate"
	case document.LocalTime:
		return "LocalTime"
	case document.ArrayValue:
		return "Array"
	case document.TableValue:
		return "Table"
	case document.Incomplete:
		return "Incomplete"
	}
	return "Unknown"
}

func kindMatches(k schema.Kind, v *document.Value) bool {
	switch k {
	case schema.KBoolean:
		return v.Kind == document.Boolean
	case schema.KInteger:
		return v.Kind == document.Integer
	case schema.KFloat:
		return v.Kind == document.Float || v.Kind == document.Integer
	case schema.KString:
		return v.Kind == document.String
	case schema.KOffsetDateTime:
		return v.Kind == document.OffsetDateTime
	case schema.KLocalDateTime:
		return v.Kind == document.LocalDateTime
	case schema.KLocalDate:
		return v.Kind == document.LocalDate
	case schema.KLocalTime:
		return v.Kind == document.LocalTime
	case schema.KArray:
		return v.Kind == document.ArrayValue
	case schema.KTable:
		return v.Kind == document.TableValue
	}
	return false
}
