package globset

import "testing"

func TestCompileMatchesAnywhereWithoutStar(t *testing.T) {
	g, err := Compile("Cargo.toml")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !g.Match("Cargo.toml") {
		t.Error("expected a bare filename pattern to match at the root")
	}
	if !g.Match("crates/foo/Cargo.toml") {
		t.Error("expected a bare filename pattern to match in a subdirectory")
	}
	if g.Match("Cargo.lock") {
		t.Error("did not expect a mismatched filename to match")
	}
}

func TestCompileStarMatchesWithinSegment(t *testing.T) {
	g, err := Compile("configs/*.toml")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !g.Match("configs/app.toml") {
		t.Error("expected configs/app.toml to match")
	}
	if g.Match("configs/nested/app.toml") {
		t.Error("single * must not cross a path separator")
	}
}

func TestCompileDoubleStarCrossesSeparators(t *testing.T) {
	g, err := Compile("**/schema/*.json")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !g.Match("a/b/schema/x.json") {
		t.Error("expected ** to cross directory separators")
	}
}
