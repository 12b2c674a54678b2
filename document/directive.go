package document

import (
	"strings"

	"github.com/tombi-toml/tombi/ast"
	"github.com/tombi-toml/tombi/parser"
	"github.com/tombi-toml/tombi/syntax"
)

// DirectiveKind tags which of the three comment-directive forms (spec.md
// §4.2 "Comment directive", §6) a comment was recognized as.
type DirectiveKind int

const (
	// ValueDirective is an inline `# tombi: key = value` comment
	// governing the value, key, array, or table it trails.
	ValueDirective DirectiveKind = iota
	// DocumentDirective is a file-header `#:tombi key = value` comment.
	DocumentDirective
	// SchemaHint is a file-header `#:schema <uri>` comment.
	SchemaHint
)

// Directive is a parsed comment directive: its body is itself TOML
// fragment text (spec.md §3), parsed with a fixed version so lint-rule
// and format overrides can be read out of it as ordinary key-values.
type Directive struct {
	Kind     DirectiveKind
	Range    syntax.Range
	RawBody  string
	SchemaURI string // set only for SchemaHint
	Table    *Table  // parsed body, nil for SchemaHint
}

// ParseDirective recognizes one comment token as a directive, returning
// ok=false for an ordinary comment.
func ParseDirective(tok syntax.SyntaxToken, atFileHead bool) (Directive, bool) {
	text := strings.TrimPrefix(tok.Text(), "#")
	trimmed := strings.TrimSpace(text)

	if atFileHead && strings.HasPrefix(trimmed, ":schema") {
		uri := strings.TrimSpace(strings.TrimPrefix(trimmed, ":schema"))
		return Directive{Kind: SchemaHint, Range: tok.Range(), SchemaURI: uri}, true
	}
	if atFileHead && strings.HasPrefix(trimmed, ":tombi") {
		body := strings.TrimSpace(strings.TrimPrefix(trimmed, ":tombi"))
		tbl, raw := parseDirectiveBody(body)
		return Directive{Kind: DocumentDirective, Range: tok.Range(), RawBody: raw, Table: tbl}, true
	}
	if strings.HasPrefix(trimmed, "tombi:") {
		body := strings.TrimSpace(strings.TrimPrefix(trimmed, "tombi:"))
		tbl, raw := parseDirectiveBody(body)
		return Directive{Kind: ValueDirective, Range: tok.Range(), RawBody: raw, Table: tbl}, true
	}
	return Directive{}, false
}

// parseDirectiveBody parses a directive's body as a one-line TOML
// fragment (e.g. `lint.rules.type-mismatch.disabled = true`) using the
// same C2/C3/C4 pipeline as a full document, discarding its diagnostics:
// a malformed directive is silently inert rather than surfaced as a
// document error.
func parseDirectiveBody(body string) (*Table, string) {
	res := parser.Parse(body+"\n", parser.V1_0)
	root := ast.NewRoot(res.Tree.Root())
	doc := Build(root)
	return doc.Root, body
}

// LookupRuleOverride reads `lint.rules.<kind>.disabled` / `.severity`
// style overrides out of a directive's parsed body (spec.md §7 "Severity
// may be lowered or raised ... by an enclosing comment directive").
func (d Directive) LookupRuleOverride(ruleKey string) (string, bool) {
	if d.Table == nil {
		return "", false
	}
	lintV, ok := d.Table.Get("lint")
	if !ok || !lintV.isTableLike() {
		return "", false
	}
	rulesV, ok := lintV.Table.Get("rules")
	if !ok || !rulesV.isTableLike() {
		return "", false
	}
	ruleV, ok := rulesV.Table.Get(ruleKey)
	if !ok || !ruleV.isTableLike() {
		return "", false
	}
	if disabled, ok := ruleV.Table.Get("disabled"); ok && disabled.Kind == Boolean && disabled.Bool {
		return "off", true
	}
	if sev, ok := ruleV.Table.Get("severity"); ok && sev.Kind == String {
		return sev.Str, true
	}
	return "", false
}
