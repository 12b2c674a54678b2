package query

import (
	"context"
	"testing"

	"github.com/tombi-toml/tombi/ast"
	"github.com/tombi-toml/tombi/document"
	"github.com/tombi-toml/tombi/parser"
	"github.com/tombi-toml/tombi/schema"
	"github.com/tombi-toml/tombi/schemastore"
	"github.com/tombi-toml/tombi/syntax"
)

func parseRoot(t *testing.T, src string) ast.Root {
	t.Helper()
	result := parser.Parse(src, parser.V1_0)
	return ast.NewRoot(result.Tree.Root())
}

func posAt(line, col int) syntax.Position {
	return syntax.Position{Line: uint32(line), Column: uint32(col)}
}

func TestLocateDotTriggerBetweenKeySegments(t *testing.T) {
	root := parseRoot(t, "a.b = 1\n")
	// Cursor sitting right after "a" and before the dot.
	loc := Locate(root, posAt(0, 1))
	if loc.Hint != HintDotTrigger {
		t.Fatalf("hint = %v, want HintDotTrigger", loc.Hint)
	}
}

func TestLocateEqualTriggerBeforeValue(t *testing.T) {
	root := parseRoot(t, "key = \n")
	loc := Locate(root, posAt(0, 4))
	if loc.Hint != HintEqualTrigger && loc.Hint != HintSpaceTrigger {
		t.Fatalf("hint = %v, want EqualTrigger or SpaceTrigger", loc.Hint)
	}
	if loc.Path.String() != "key" {
		t.Errorf("path = %q, want %q", loc.Path.String(), "key")
	}
}

func TestLocateInsideTableHeaderTracksParentPath(t *testing.T) {
	root := parseRoot(t, "[a.b]\n")
	loc := Locate(root, posAt(0, 1))
	if loc.Hint != HintInTableHeader {
		t.Fatalf("hint = %v, want HintInTableHeader", loc.Hint)
	}
	if loc.Path.String() != "a" {
		t.Errorf("path = %q, want %q", loc.Path.String(), "a")
	}
}

func TestCompletionOffersRequiredAndOptionalKeys(t *testing.T) {
	tableSchema := &schema.ValueSchema{
		Kind:     schema.KTable,
		Required: []string{"name"},
		Properties: []schema.Property{
			{Name: "name", Schema: schema.Inline(&schema.ValueSchema{Kind: schema.KString})},
			{Name: "port", Schema: schema.Inline(&schema.ValueSchema{Kind: schema.KInteger})},
		},
	}
	rootRef := schema.Inline(tableSchema)
	store := schemastore.New(schemastore.Options{}, nil)

	items, err := Completion(context.Background(), NewRequest(nil), store, rootRef, "inline://root", nil, Located{Hint: HintNone})
	if err != nil {
		t.Fatalf("Completion: %v", err)
	}

	var sawRequired, sawOptional bool
	for _, it := range items {
		if it.Label == "name" && it.Kind == KindRequiredKey {
			sawRequired = true
		}
		if it.Label == "port" && it.Kind == KindOptionalKey {
			sawOptional = true
		}
	}
	if !sawRequired {
		t.Error("expected \"name\" offered as a required key")
	}
	if !sawOptional {
		t.Error("expected \"port\" offered as an optional key")
	}
}

func TestCompletionDedupesByLabelKeepingHighestPriority(t *testing.T) {
	vs := &schema.ValueSchema{
		Kind:     schema.KString,
		HasConst: true,
		Const:    "fixed",
		Enum:     []any{"fixed", "other"},
	}
	store := schemastore.New(schemastore.Options{}, nil)
	items, err := Completion(context.Background(), NewRequest(nil), store, schema.Inline(vs), "inline://root", nil, Located{Hint: HintNone})
	if err != nil {
		t.Fatalf("Completion: %v", err)
	}
	count := 0
	for _, it := range items {
		if it.Label == "\"fixed\"" {
			count++
			if it.Kind != KindConst {
				t.Errorf("expected the const variant of %q to win, got kind %v", it.Label, it.Kind)
			}
		}
	}
	if count != 1 {
		t.Fatalf("expected \"fixed\" to appear exactly once after dedup, got %d", count)
	}
}

func TestHoverReportsSchemaType(t *testing.T) {
	rootSchema := &schema.ValueSchema{
		Kind: schema.KTable,
		Properties: []schema.Property{
			{Name: "port", Schema: schema.Inline(&schema.ValueSchema{Kind: schema.KInteger, Description: "listen port"})},
		},
	}
	doc := document.Build(parseRoot(t, "port = 8080\n"))
	store := schemastore.New(schemastore.Options{}, nil)

	result, err := Hover(context.Background(), NewRequest(nil), store, doc.Root, schema.Inline(rootSchema), "inline://root", nil, document.Path{document.KeyAccessor("port")})
	if err != nil {
		t.Fatalf("Hover: %v", err)
	}
	if result == nil {
		t.Fatal("expected a hover result")
	}
	if result.Type != "Integer" {
		t.Errorf("type = %q, want %q", result.Type, "Integer")
	}
	if result.Description != "listen port" {
		t.Errorf("description = %q, want %q", result.Description, "listen port")
	}
}

func TestDocumentLinksFindsHTTPURLs(t *testing.T) {
	doc := document.Build(parseRoot(t, "home = \"https://example.com\"\nother = \"not a link\"\n"))
	links := DocumentLinks(NewRequest(nil), doc.Root)
	if len(links) != 1 {
		t.Fatalf("expected 1 link, got %d", len(links))
	}
	if links[0].Target != "https://example.com" {
		t.Errorf("target = %q", links[0].Target)
	}
}
