package document

import "github.com/tombi-toml/tombi/syntax"

// ArrayKind tags why an Array exists (spec.md §3 "Array").
type ArrayKind int

const (
	PlainArray ArrayKind = iota
	ArrayOfTableArray
	ParentArrayOfTableArray // synthetic
)

// Array is a sequence of Values with a kind tag. Empty literal arrays are
// legal (spec.md §3 "Array").
type Array struct {
	Kind     ArrayKind
	Range    syntax.Range
	Elements []*Value
}

func newArray(kind ArrayKind, rng syntax.Range) *Array {
	return &Array{Kind: kind, Range: rng}
}

func (a *Array) push(v *Value) { a.Elements = append(a.Elements, v) }
