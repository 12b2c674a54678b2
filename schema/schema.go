// Package schema implements the value-schema model (C5): the closed
// polymorphic variant set spec.md §3 "Schema (C5)" describes, plus the
// referable cell that lazily resolves `$ref` in place.
//
// decode.go decodes the JSON-Schema wire format by hand rather than
// through `github.com/google/jsonschema-go`'s `jsonschema.Schema`:
// MacroPower-x's schema generator builds that type's `Properties` field
// as a plain `map[string]*jsonschema.Schema`, so borrowing the struct
// would not recover the properties/patternProperties declaration order
// spec.md §4.6 needs — a raw-JSON rescan is required either way, see
// DESIGN.md.
package schema

import "sync"

// Kind is the closed variant tag (spec.md §3 "Schema (C5)").
type Kind int

const (
	KBoolean Kind = iota
	KInteger
	KFloat
	KString
	KOffsetDateTime
	KLocalDateTime
	KLocalDate
	KLocalTime
	KArray
	KTable
	KOneOf
	KAnyOf
	KAllOf
	KNull
)

// OrderKind is a `values_order`/uniform `x-tombi-table-keys-order` value
// (spec.md §4.6).
type OrderKind int

const (
	OrderNone OrderKind = iota
	OrderAscending
	OrderDescending
	OrderSchema
	OrderVersionSort
)

func ParseOrderKind(s string) OrderKind {
	switch s {
	case "ascending":
		return OrderAscending
	case "descending":
		return OrderDescending
	case "schema":
		return OrderSchema
	case "version-sort":
		return OrderVersionSort
	}
	return OrderNone
}

// KeyGroup is one of the three partitions `reorder_table_keys` sorts
// independently when `x-tombi-table-keys-order` names per-group orders
// (spec.md §4.6 "Groups(list)").
type KeyGroup int

const (
	GroupSchemaKeys KeyGroup = iota
	GroupPatternKeys
	GroupAdditionalKeys
)

// TableKeysOrder is the parsed `x-tombi-table-keys-order` extension: either
// one order for every entry, or a per-group order list applied in the
// recorded group order.
type TableKeysOrder struct {
	Uniform OrderKind // set (non-OrderNone) when this is the "All(order)" form
	Groups  []GroupOrder
}

type GroupOrder struct {
	Group KeyGroup
	Order OrderKind
}

// Property is one entry of a table schema's ordered `properties` map:
// source position (insertion order is the slice order itself) plus the
// referable sub-schema.
type Property struct {
	Name   string
	Schema *Referable
}

// PatternProperty is one entry of a table schema's `patternProperties`
// map, kept in the object's declaration order so that a key matching
// more than one pattern always resolves to the same sub-schema
// (spec.md §9 invariant "the diagnostic sequence is identical across
// runs").
type PatternProperty struct {
	Pattern string
	Schema  *Referable
}

// ValueSchema is the polymorphic schema node spec.md §3 describes. Only
// the fields relevant to Kind are populated; the rest are the zero value.
type ValueSchema struct {
	Kind Kind

	Title       string
	Description string
	Deprecated  bool
	HasDefault  bool
	Default     any
	HasConst    bool
	Const       any
	Enum        []any

	// String.
	MinLength *int
	MaxLength *int
	Pattern   string
	Format    string

	// Integer / Float.
	Minimum          *float64
	Maximum          *float64
	ExclusiveMinimum *float64
	ExclusiveMaximum *float64
	MultipleOf       *float64

	// Array.
	Items         *Referable
	MinItems      *int
	MaxItems      *int
	UniqueItems   bool
	ValuesOrderBy OrderKind // x-tombi-array-values-order-by

	// Table.
	Properties        []Property
	PatternProperties []PatternProperty

	// AdditionalPropsDeclared is true when the schema wrote an explicit
	// `additionalProperties` keyword (bool or sub-schema), false when it
	// was omitted. validateTable needs this third state: an omitted
	// keyword and an explicit `additionalProperties: true` both leave
	// AdditionalPropsAllowed true, but only the latter should silence a
	// strict-mode diagnostic for an undeclared key (spec.md §4.5).
	AdditionalPropsDeclared  bool
	AdditionalPropsAllowed   bool
	AdditionalPropertySchema *Referable
	AdditionalKeyLabel       string // x-tombi-additional-key-label
	Required                 []string
	MinProperties            *int
	MaxProperties            *int
	KeysOrder                *TableKeysOrder

	// OneOf / AnyOf / AllOf.
	Members []*Referable
}

// PropertyByName looks up a table schema's declared property by name,
// preserving the schema's own declared order (spec.md §4.6 "Schema order
// means the order in which keys appear in the schema's properties map").
func (v *ValueSchema) PropertyByName(name string) (*Referable, bool) {
	for _, p := range v.Properties {
		if p.Name == name {
			return p.Schema, true
		}
	}
	return nil, false
}

// Referable is a schema slot that holds either an inline ValueSchema or
// an unresolved `$ref` pointer (spec.md §3 "Referable schema", §9 "Lazy
// schema resolution with interior mutation"). Resolution replaces the
// slot's cached form in place on first access, guarded by a read-write
// lock so concurrent validators/completions may read freely once
// resolved.
type Referable struct {
	mu sync.RWMutex

	// resolved is non-nil once this slot holds (or has resolved to) a
	// concrete ValueSchema.
	resolved *ValueSchema

	// ref is the raw `$ref` target text; empty once resolved or if this
	// slot was never a reference.
	ref string
	// refSchemaURI is the document URI the $ref was written in,
	// needed to resolve a relative pointer against the right document.
	refSchemaURI string
}

func Inline(v *ValueSchema) *Referable { return &Referable{resolved: v} }

func Ref(ref, owningURI string) *Referable { return &Referable{ref: ref, refSchemaURI: owningURI} }

// Peek returns the currently cached concrete schema without attempting
// resolution, and whether one is present yet.
func (r *Referable) Peek() (*ValueSchema, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.resolved, r.resolved != nil
}

// RefTarget returns the unresolved `$ref` text and owning URI, or
// ok=false if this slot is already resolved.
func (r *Referable) RefTarget() (ref, owningURI string, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.resolved != nil {
		return "", "", false
	}
	return r.ref, r.refSchemaURI, true
}

// SetResolved caches the resolved form in place (schemastore.Resolve
// calls this exactly once per slot, the first time the reference is
// chased; later callers observe the cached ValueSchema directly).
func (r *Referable) SetResolved(v *ValueSchema) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.resolved == nil {
		r.resolved = v
	}
	r.ref = ""
}
