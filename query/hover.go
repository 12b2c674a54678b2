package query

import (
	"context"

	"github.com/tombi-toml/tombi/document"
	"github.com/tombi-toml/tombi/schema"
	"github.com/tombi-toml/tombi/schemastore"
	"github.com/tombi-toml/tombi/valuetype"
)

// HoverResult is the resolved type, title, description, constraints and
// schema URI for the value under the cursor (spec.md §4.7 "Hover").
type HoverResult struct {
	Type        string // simplified display, per §4.4
	Title       string
	Description string
	SchemaURI   string
	Deprecated  bool
	Const       any
	HasConst    bool
	Enum        []any
}

// Hover resolves the schema and the document value at path and reports
// on whichever is available — a value with no governing schema still
// reports its document-inferred type.
func Hover(ctx context.Context, req *Request, store *schemastore.Store, root *document.Table, rootRef *schema.Referable, rootURI string, defs map[string]*schema.Referable, path document.Path) (*HoverResult, error) {
	req.log("hover", "path", path.String())
	val, hasVal := document.ValueAt(root, path)

	cur, err := resolveSchemaAt(ctx, store, rootRef, rootURI, defs, path)
	if err != nil {
		return nil, err
	}
	if cur == nil || cur.Value == nil {
		if !hasVal {
			return nil, nil
		}
		return &HoverResult{Type: documentKindName(val.Kind)}, nil
	}
	vs := cur.Value
	t, err := schemaToType(ctx, store, vs, cur.SchemaURI, cur.Definitions)
	if err != nil {
		return nil, err
	}
	return &HoverResult{
		Type:        t.Simplify().Display(),
		Title:       vs.Title,
		Description: vs.Description,
		SchemaURI:   cur.SchemaURI,
		Deprecated:  vs.Deprecated,
		Const:       vs.Const,
		HasConst:    vs.HasConst,
		Enum:        vs.Enum,
	}, nil
}

func documentKindName(k document.ValueKind) string {
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
	}
	return "Unknown"
}

// schemaToType converts a resolved ValueSchema into the C6 lattice,
// recursing into OneOf/AnyOf/AllOf members at every depth so Hover can show
// the simplified composite display (spec.md §4.4, §4.7 "for composite
// schemas it shows the simplified display from §4.4").
func schemaToType(ctx context.Context, store *schemastore.Store, vs *schema.ValueSchema, uri string, defs map[string]*schema.Referable) (valuetype.Type, error) {
	switch vs.Kind {
	case schema.KOneOf, schema.KAnyOf, schema.KAllOf:
		kind := compositeKind(vs.Kind)
		members := make([]valuetype.Type, 0, len(vs.Members))
		for _, m := range vs.Members {
			sub, err := store.Resolve(ctx, m, uri, defs)
			if err != nil {
				return valuetype.Type{}, err
			}
			if sub == nil || sub.Value == nil {
				continue
			}
			mt, err := schemaToType(ctx, store, sub.Value, sub.SchemaURI, sub.Definitions)
			if err != nil {
				return valuetype.Type{}, err
			}
			members = append(members, mt)
		}
		return valuetype.Composite(kind, members...), nil
	default:
		return valuetype.Prim(schemaKindToLattice(vs.Kind)), nil
	}
}

func compositeKind(k schema.Kind) valuetype.Kind {
	switch k {
	case schema.KOneOf:
		return valuetype.OneOf
	case schema.KAnyOf:
		return valuetype.AnyOf
	}
	return valuetype.AllOf
}

func schemaKindToLattice(k schema.Kind) valuetype.Kind {
	switch k {
	case schema.KBoolean:
		return valuetype.Boolean
	case schema.KInteger:
		return valuetype.Integer
	case schema.KFloat:
		return valuetype.Float
	case schema.KString:
		return valuetype.String
	case schema.KOffsetDateTime:
		return valuetype.OffsetDateTime
	case schema.KLocalDateTime:
		return valuetype.LocalDateTime
	case schema.KLocalDate:
		return valuetype.LocalDate
	case schema.KLocalTime:
		return valuetype.LocalTime
	case schema.KArray:
		return valuetype.Array
	case schema.KTable:
		return valuetype.Table
	case schema.KNull:
		return valuetype.Null
	}
	return valuetype.Null
}
