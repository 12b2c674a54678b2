// Package valuetype implements the value-type lattice (C6): the closed
// set of schema value kinds, including the OneOf/AnyOf/AllOf composite
// algebra, with nullable tracking, simplification, and display (spec.md
// §4.4).
package valuetype

import "strings"

// Kind is the closed variant tag (spec.md §4.4).
type Kind int

const (
	Null Kind = iota
	Boolean
	Integer
	Float
	String
	OffsetDateTime
	LocalDateTime
	LocalDate
	LocalTime
	Array
	Table
	OneOf
	AnyOf
	AllOf
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "Null"
	case Boolean:
		return "Boolean"
	case Integer:
		return "Integer"
	case Float:
		return "Float"
	case String:
		return "String"
	case OffsetDateTime:
		return "OffsetDateTime"
	case LocalDateTime:
		return "LocalDateTime"
	case LocalDate:
		return "LocalDate"
	case LocalTime:
		return "LocalTime"
	case Array:
		return "Array"
	case Table:
		return "Table"
	case OneOf:
		return "OneOf"
	case AnyOf:
		return "AnyOf"
	case AllOf:
		return "AllOf"
	}
	return "Unknown"
}

func (k Kind) isComposite() bool { return k == OneOf || k == AnyOf || k == AllOf }

// Type is one node of the value-type lattice. Primitive kinds carry no
// Members; composite kinds (OneOf/AnyOf/AllOf) carry an ordered,
// possibly-nested Members slice.
type Type struct {
	Kind    Kind
	Members []Type
}

func Prim(k Kind) Type { return Type{Kind: k} }

func Composite(k Kind, members ...Type) Type { return Type{Kind: k, Members: members} }

// IsNullable reports whether t admits Null (spec.md §4.4 "is_nullable").
func (t Type) IsNullable() bool {
	switch t.Kind {
	case Null:
		return true
	case OneOf, AnyOf:
		for _, m := range t.Members {
			if m.IsNullable() {
				return true
			}
		}
		return false
	case AllOf:
		if len(t.Members) == 0 {
			return false
		}
		for _, m := range t.Members {
			if !m.IsNullable() {
				return false
			}
		}
		return true
	}
	return false
}

// SetNullable injects Null so that t becomes nullable, per spec.md §4.4
// "set_nullable": Null is merged into an existing OneOf/AnyOf, and an
// AllOf that was not already nullable is wrapped as AnyOf(AllOf, Null).
func (t Type) SetNullable() Type {
	if t.IsNullable() {
		return t
	}
	switch t.Kind {
	case OneOf, AnyOf:
		return Type{Kind: t.Kind, Members: append(append([]Type{}, t.Members...), Prim(Null))}
	case AllOf:
		return Composite(AnyOf, t, Prim(Null))
	default:
		return Composite(AnyOf, t, Prim(Null))
	}
}

// Simplify flattens nested same-kind composites, dedupes members
// (preserving first-seen order), extracts Null to the outermost level,
// and collapses single-member composites (spec.md §4.4 "simplify").
// simplify(simplify(x)) == simplify(x): flattening and dedup are both
// idempotent once applied, and Null extraction leaves the (now
// non-nullable) core already in its flattened, deduped, single-collapsed
// form, so a second pass is a no-op.
func (t Type) Simplify() Type {
	if !t.Kind.isComposite() {
		return t
	}
	nullable := t.IsNullable()
	core := stripNull(t)
	core = flatten(core)
	core = dedupe(core)
	core = collapseSingle(core)
	if nullable && core.Kind != Null {
		return core.SetNullable()
	}
	if nullable {
		return Prim(Null)
	}
	return core
}

// stripNull removes any direct Null member from a composite (Null is
// re-added once, at the outermost level, by Simplify).
func stripNull(t Type) Type {
	if !t.Kind.isComposite() {
		return t
	}
	out := make([]Type, 0, len(t.Members))
	for _, m := range t.Members {
		sm := stripNull(m)
		if sm.Kind == Null {
			continue
		}
		out = append(out, sm)
	}
	return Type{Kind: t.Kind, Members: out}
}

// flatten inlines nested composites of the same Kind as their parent.
func flatten(t Type) Type {
	if !t.Kind.isComposite() {
		return t
	}
	var out []Type
	for _, m := range t.Members {
		fm := flatten(m)
		if fm.Kind == t.Kind {
			out = append(out, fm.Members...)
		} else {
			out = append(out, fm)
		}
	}
	return Type{Kind: t.Kind, Members: out}
}

func dedupe(t Type) Type {
	if !t.Kind.isComposite() {
		return t
	}
	seen := map[string]bool{}
	var out []Type
	for _, m := range t.Members {
		key := m.Display()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, m)
	}
	return Type{Kind: t.Kind, Members: out}
}

func collapseSingle(t Type) Type {
	if t.Kind.isComposite() && len(t.Members) == 1 {
		return t.Members[0]
	}
	return t
}

// Display renders t per spec.md §4.4: OneOf joins with ` ^ `, AnyOf with
// ` | `, AllOf with ` & `; nested composites parenthesize except at the
// root; a nullable composite of one is `X?`, of many is `(A | B)?`.
func (t Type) Display() string { return display(t, true) }

func display(t Type, root bool) string {
	if !t.Kind.isComposite() {
		return t.Kind.String()
	}
	nullable := t.IsNullable()
	core := stripNull(t)
	core = flatten(core)
	core = dedupe(core)

	var sep string
	switch core.Kind {
	case OneOf:
		sep = " ^ "
	case AnyOf:
		sep = " | "
	case AllOf:
		sep = " & "
	}

	parts := make([]string, len(core.Members))
	for i, m := range core.Members {
		parts[i] = display(m, false)
	}
	inner := strings.Join(parts, sep)
	if len(core.Members) > 1 && !root {
		inner = "(" + inner + ")"
	}
	if nullable {
		if len(core.Members) > 1 {
			inner = "(" + inner + ")?"
		} else {
			inner = inner + "?"
		}
	}
	return inner
}
