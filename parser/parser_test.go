package parser

import "testing"

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty document", ""},
		{"simple key-value", "key = \"value\"\n"},
		{"table header", "[a.b]\nkey = 1\n"},
		{"array of tables", "[[items]]\nid = 1\n\n[[items]]\nid = 2\n"},
		{"inline table and array", "point = { x = 1, y = 2 }\nvalues = [1, 2, 3]\n"},
		{"comment only", "# just a comment\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Parse(tt.input, V1_0)
			if got := result.Tree.Root().Text(); got != tt.input {
				t.Errorf("round-trip mismatch: got %q, want %q", got, tt.input)
			}
		})
	}
}

func TestParseReportsDiagnosticsWithoutAborting(t *testing.T) {
	result := Parse("key = \nkey2 = 2\n", V1_0)
	if len(result.Diagnostics) == 0 {
		t.Fatal("expected at least one diagnostic for a missing value")
	}
	if result.Tree == nil || result.Tree.Root().Text() != "key = \nkey2 = 2\n" {
		t.Error("parser must still return a usable, lossless tree on malformed input")
	}
}

func TestParseV1_1PreviewAcceptsV1_0Input(t *testing.T) {
	result := Parse("key = 1\n", V1_1Preview)
	if len(result.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics for plain v1.0 input under v1.1 preview: %v", result.Diagnostics)
	}
}
