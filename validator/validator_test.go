package validator

import (
	"context"
	"testing"

	"github.com/tombi-toml/tombi/ast"
	"github.com/tombi-toml/tombi/diagnostic"
	"github.com/tombi-toml/tombi/document"
	"github.com/tombi-toml/tombi/parser"
	"github.com/tombi-toml/tombi/schema"
	"github.com/tombi-toml/tombi/schemastore"
)

func buildDoc(t *testing.T, src string) *document.Document {
	t.Helper()
	result := parser.Parse(src, parser.V1_0)
	root := ast.NewRoot(result.Tree.Root())
	return document.Build(root)
}

func hasKind(diags []diagnostic.Diagnostic, k diagnostic.Kind) bool {
	for _, d := range diags {
		if d.Kind == k {
			return true
		}
	}
	return false
}

func TestValidateReportsMissingRequiredKey(t *testing.T) {
	doc := buildDoc(t, "name = \"app\"\n")
	rootSchema := schema.Inline(&schema.ValueSchema{
		Kind:     schema.KTable,
		Required: []string{"name", "version"},
		Properties: []schema.Property{
			{Name: "name", Schema: schema.Inline(&schema.ValueSchema{Kind: schema.KString})},
			{Name: "version", Schema: schema.Inline(&schema.ValueSchema{Kind: schema.KString})},
		},
	})
	store := schemastore.New(schemastore.Options{}, nil)
	diags, err := Validate(context.Background(), Context{Store: store}, doc.Root, rootSchema, "inline://root", nil)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !hasKind(diags, diagnostic.KeyRequired) {
		t.Errorf("expected a KeyRequired diagnostic for the missing 'version' key, got %v", diags)
	}
}

func TestValidatePassesWhenSchemaSatisfied(t *testing.T) {
	doc := buildDoc(t, "name = \"app\"\nversion = \"1.0.0\"\n")
	rootSchema := schema.Inline(&schema.ValueSchema{
		Kind:     schema.KTable,
		Required: []string{"name", "version"},
		Properties: []schema.Property{
			{Name: "name", Schema: schema.Inline(&schema.ValueSchema{Kind: schema.KString})},
			{Name: "version", Schema: schema.Inline(&schema.ValueSchema{Kind: schema.KString})},
		},
	})
	store := schemastore.New(schemastore.Options{}, nil)
	diags, err := Validate(context.Background(), Context{Store: store}, doc.Root, rootSchema, "inline://root", nil)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(diags) != 0 {
		t.Errorf("expected no diagnostics, got %v", diags)
	}
}

func TestValidateReportsTypeMismatch(t *testing.T) {
	doc := buildDoc(t, "port = \"not a number\"\n")
	rootSchema := schema.Inline(&schema.ValueSchema{
		Kind: schema.KTable,
		Properties: []schema.Property{
			{Name: "port", Schema: schema.Inline(&schema.ValueSchema{Kind: schema.KInteger})},
		},
	})
	store := schemastore.New(schemastore.Options{}, nil)
	diags, err := Validate(context.Background(), Context{Store: store}, doc.Root, rootSchema, "inline://root", nil)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !hasKind(diags, diagnostic.TypeMismatch) {
		t.Errorf("expected a TypeMismatch diagnostic, got %v", diags)
	}
}

func TestValidateStrictRejectsAdditionalProperties(t *testing.T) {
	doc := buildDoc(t, "name = \"app\"\nextra = 1\n")
	rootSchema := schema.Inline(&schema.ValueSchema{
		Kind: schema.KTable,
		Properties: []schema.Property{
			{Name: "name", Schema: schema.Inline(&schema.ValueSchema{Kind: schema.KString})},
		},
	})
	store := schemastore.New(schemastore.Options{}, nil)
	diags, err := Validate(context.Background(), Context{Store: store, Strict: true}, doc.Root, rootSchema, "inline://root", nil)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !hasKind(diags, diagnostic.StrictAdditionalProps) {
		t.Errorf("expected a StrictAdditionalProps diagnostic under strict mode, got %v", diags)
	}
}

// TestValidateDecodedSchemaStrictRejectsUndeclaredAdditionalProperties
// decodes the schema from real JSON bytes through schema.Parse rather
// than building a schema.ValueSchema struct literal directly, so it
// exercises fromWire's additionalProperties tri-state (omitted vs.
// explicit true vs. explicit false) the same way a fetched JSON Schema
// document would. Reproduces spec.md §9 scenario 3 verbatim: a schema
// with properties: {name: string}, no additionalProperties keyword,
// strict mode on, input "name = \"a\"\nextra = 1" → one
// StrictAdditionalProperties diagnostic for "extra".
func TestValidateDecodedSchemaStrictRejectsUndeclaredAdditionalProperties(t *testing.T) {
	rootRef, _, err := schema.Parse([]byte(`{
		"type": "object",
		"properties": {"name": {"type": "string"}}
	}`), "inline://root")
	if err != nil {
		t.Fatalf("schema.Parse: %v", err)
	}
	doc := buildDoc(t, "name = \"a\"\nextra = 1\n")
	store := schemastore.New(schemastore.Options{}, nil)
	diags, err := Validate(context.Background(), Context{Store: store, Strict: true}, doc.Root, rootRef, "inline://root", nil)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(diags) != 1 {
		t.Fatalf("expected exactly 1 diagnostic, got %d: %v", len(diags), diags)
	}
	if diags[0].Kind != diagnostic.StrictAdditionalProps {
		t.Errorf("kind = %v, want StrictAdditionalProps", diags[0].Kind)
	}
}

// TestValidateDecodedSchemaExplicitAdditionalPropertiesTrueAllowsExtras
// guards the other half of the tri-state: additionalProperties: true
// written explicitly must stay silent even under strict mode, unlike
// an omitted keyword.
func TestValidateDecodedSchemaExplicitAdditionalPropertiesTrueAllowsExtras(t *testing.T) {
	rootRef, _, err := schema.Parse([]byte(`{
		"type": "object",
		"properties": {"name": {"type": "string"}},
		"additionalProperties": true
	}`), "inline://root")
	if err != nil {
		t.Fatalf("schema.Parse: %v", err)
	}
	doc := buildDoc(t, "name = \"a\"\nextra = 1\n")
	store := schemastore.New(schemastore.Options{}, nil)
	diags, err := Validate(context.Background(), Context{Store: store, Strict: true}, doc.Root, rootRef, "inline://root", nil)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(diags) != 0 {
		t.Errorf("expected no diagnostics with additionalProperties: true, got %v", diags)
	}
}
