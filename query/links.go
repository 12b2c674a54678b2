package query

import (
	"github.com/tombi-toml/tombi/document"
)

// DocumentLink is a clickable span in the source pointing at an external
// target (spec.md §4.7 "generic DocumentLink { target, range, tooltip }
// collector"; domain extensions layer Cargo/uv-specific links on top —
// named Non-goal for this core collector).
type DocumentLink struct {
	Target  string
	Range   Location
	Tooltip string
}

// DocumentLinks walks root and collects a link for every String value
// that looks like an http(s)/file URI. The core collector has no domain
// extension to consult (Cargo workspace-member paths, uv registry URLs)
// per spec.md §4.7, so it only recognizes the scheme prefix itself
// rather than threading a schema `format` lookup through the walk.
func DocumentLinks(req *Request, root *document.Table) []DocumentLink {
	req.log("document_links")
	var out []DocumentLink
	walkTableLinks(root, &out)
	return out
}

func walkTableLinks(t *document.Table, out *[]DocumentLink) {
	for _, e := range t.Entries() {
		walkValueLinks(e.Value, out)
	}
}

func walkValueLinks(v *document.Value, out *[]DocumentLink) {
	if v == nil {
		return
	}
	switch v.Kind {
	case document.TableValue:
		if v.Table != nil {
			walkTableLinks(v.Table, out)
		}
	case document.ArrayValue:
		if v.Array != nil {
			for _, e := range v.Array.Elements {
				walkValueLinks(e, out)
			}
		}
	case document.String:
		if looksLikeURI(v.Str) {
			*out = append(*out, DocumentLink{
				Target:  v.Str,
				Range:   Location{Range: v.UnquotedRange},
				Tooltip: v.Str,
			})
		}
	}
}

func looksLikeURI(s string) bool {
	for _, scheme := range []string{"https://", "http://", "file://"} {
		if len(s) >= len(scheme) && s[:len(scheme)] == scheme {
			return true
		}
	}
	return false
}
