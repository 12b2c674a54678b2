package query

import (
	"context"

	"github.com/tombi-toml/tombi/document"
	"github.com/tombi-toml/tombi/schema"
	"github.com/tombi-toml/tombi/schemastore"
	"github.com/tombi-toml/tombi/syntax"
)

// Location is a position in some document, core or schema (spec.md
// §4.7 "all thin readers over C4+C5+C7").
type Location struct {
	URI   string
	Range syntax.Range
}

// GotoDefinition jumps from a value back to the table header that
// declares its enclosing table, since that's the closest TOML analogue
// to "definition site" the document tree can answer without a
// domain extension (Cargo/uv path references are the named Non-goal —
// spec.md §4.7 "no Cargo/uv domain extension"). Returns ok=false for a
// path with no enclosing table (the document root) or a path that
// doesn't resolve at all.
func GotoDefinition(req *Request, root *document.Table, path document.Path) (*Location, bool) {
	req.log("goto_definition", "path", path.String())
	if len(path) == 0 {
		return nil, false
	}
	parent := path[:len(path)-1]
	v, found := document.ValueAt(root, parent)
	if !found || v == nil || v.Table == nil {
		return nil, false
	}
	return &Location{Range: v.Table.Range}, true
}

// GotoTypeDefinition resolves the schema governing path and reports the
// schema document's URI — the location a reader would open to see the
// type's declaration. The decoded schema.ValueSchema carries no
// node-level position (schema/decode.go's hand-written JSON decode
// tracks keywords, not source spans — see DESIGN.md), so the Location
// always points at the schema document as a whole, not a specific line.
func GotoTypeDefinition(ctx context.Context, req *Request, store *schemastore.Store, rootRef *schema.Referable, rootURI string, defs map[string]*schema.Referable, path document.Path) (*Location, error) {
	req.log("goto_type_definition", "path", path.String())
	cur, err := resolveSchemaAt(ctx, store, rootRef, rootURI, defs, path)
	if err != nil || cur == nil {
		return nil, err
	}
	return &Location{URI: cur.SchemaURI}, nil
}
