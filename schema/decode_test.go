package schema

import "testing"

func TestParsePreservesPropertyDeclarationOrder(t *testing.T) {
	ref, _, err := Parse([]byte(`{
		"type": "object",
		"properties": {
			"zebra": {"type": "string"},
			"apple": {"type": "string"},
			"mango": {"type": "string"}
		}
	}`), "inline://root")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	v, ok := ref.Peek()
	if !ok {
		t.Fatal("expected an already-resolved inline schema")
	}
	want := []string{"zebra", "apple", "mango"}
	if len(v.Properties) != len(want) {
		t.Fatalf("got %d properties, want %d", len(v.Properties), len(want))
	}
	for i, name := range want {
		if v.Properties[i].Name != name {
			t.Errorf("Properties[%d] = %q, want %q (alphabetical sort would give zebra last)", i, v.Properties[i].Name, name)
		}
	}
}

func TestParsePreservesPatternPropertyDeclarationOrder(t *testing.T) {
	ref, _, err := Parse([]byte(`{
		"type": "object",
		"patternProperties": {
			"^z-": {"type": "string"},
			"^a-": {"type": "string"}
		}
	}`), "inline://root")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	v, _ := ref.Peek()
	if len(v.PatternProperties) != 2 {
		t.Fatalf("got %d pattern properties, want 2", len(v.PatternProperties))
	}
	if v.PatternProperties[0].Pattern != "^z-" || v.PatternProperties[1].Pattern != "^a-" {
		t.Errorf("patternProperties order = %q, %q; want declared order ^z-, ^a-",
			v.PatternProperties[0].Pattern, v.PatternProperties[1].Pattern)
	}
}

func TestParseAdditionalPropertiesTriState(t *testing.T) {
	cases := []struct {
		name         string
		json         string
		declared     bool
		allowed      bool
		subSchemaSet bool
	}{
		{"omitted", `{"type": "object"}`, false, true, false},
		{"explicit true", `{"type": "object", "additionalProperties": true}`, true, true, false},
		{"explicit false", `{"type": "object", "additionalProperties": false}`, true, false, false},
		{"sub-schema", `{"type": "object", "additionalProperties": {"type": "string"}}`, true, true, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ref, _, err := Parse([]byte(c.json), "inline://root")
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			v, _ := ref.Peek()
			if v.AdditionalPropsDeclared != c.declared {
				t.Errorf("AdditionalPropsDeclared = %v, want %v", v.AdditionalPropsDeclared, c.declared)
			}
			if v.AdditionalPropsAllowed != c.allowed {
				t.Errorf("AdditionalPropsAllowed = %v, want %v", v.AdditionalPropsAllowed, c.allowed)
			}
			if (v.AdditionalPropertySchema != nil) != c.subSchemaSet {
				t.Errorf("AdditionalPropertySchema set = %v, want %v", v.AdditionalPropertySchema != nil, c.subSchemaSet)
			}
		})
	}
}
