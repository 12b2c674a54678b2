package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// wireSchema mirrors the JSON-Schema keyword subset spec.md §6 honours,
// decoded with encoding/json field-by-field rather than via a
// third-party schema struct (see schema.go doc comment for why).
//
// properties and patternProperties are captured as raw JSON rather than
// decoded directly into maps: a plain Go map discards the object's key
// order, and spec.md §4.6 defines "schema order" as the order keys
// appear in the schema's properties map, so the raw bytes are rescanned
// by orderedKeys to recover that order alongside the decoded values.
type wireSchema struct {
	Ref         string            `json:"$ref"`
	Type        json.RawMessage   `json:"type"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Deprecated  bool              `json:"deprecated"`
	Default     *json.RawMessage  `json:"default"`
	Const       *json.RawMessage  `json:"const"`
	Enum        []json.RawMessage `json:"enum"`

	MinLength *int   `json:"minLength"`
	MaxLength *int   `json:"maxLength"`
	Pattern   string `json:"pattern"`
	Format    string `json:"format"`

	Minimum          *float64 `json:"minimum"`
	Maximum          *float64 `json:"maximum"`
	ExclusiveMinimum *float64 `json:"exclusiveMinimum"`
	ExclusiveMaximum *float64 `json:"exclusiveMaximum"`
	MultipleOf       *float64 `json:"multipleOf"`

	Items       *wireSchema `json:"items"`
	MinItems    *int        `json:"minItems"`
	MaxItems    *int        `json:"maxItems"`
	UniqueItems bool        `json:"uniqueItems"`

	PropertiesRaw        json.RawMessage       `json:"properties"`
	PatternPropertiesRaw json.RawMessage       `json:"patternProperties"`
	AdditionalProperties *additionalProperties `json:"additionalProperties"`
	Required             []string              `json:"required"`
	MinProperties        *int                  `json:"minProperties"`
	MaxProperties        *int                  `json:"maxProperties"`

	OneOf []*wireSchema `json:"oneOf"`
	AnyOf []*wireSchema `json:"anyOf"`
	AllOf []*wireSchema `json:"allOf"`

	Definitions map[string]*wireSchema `json:"definitions"`
	Defs        map[string]*wireSchema `json:"$defs"`

	XTombiTableKeysOrder     json.RawMessage `json:"x-tombi-table-keys-order"`
	XTombiArrayValuesOrderBy string          `json:"x-tombi-array-values-order-by"`
	XTombiAdditionalKeyLabel string          `json:"x-tombi-additional-key-label"`
}

// additionalProperties decodes the JSON-Schema `additionalProperties`
// keyword, which is either a bool or a sub-schema.
type additionalProperties struct {
	Bool   *bool
	Schema *wireSchema
}

func (a *additionalProperties) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		a.Bool = &b
		return nil
	}
	var s wireSchema
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("additionalProperties: %w", err)
	}
	a.Schema = &s
	return nil
}

// Parse decodes a JSON-Schema document (the wire format fetched by
// schemastore) into a root Referable plus its `definitions`/`$defs`
// table (keyed by the JSON-pointer fragment a `$ref` would use, e.g.
// "/definitions/Foo"), resolving nothing yet — `$ref` slots stay
// unresolved until schemastore.Resolve chases them.
func Parse(data []byte, owningURI string) (*Referable, map[string]*Referable, error) {
	var w wireSchema
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, nil, fmt.Errorf("schema: decode: %w", err)
	}
	defs := map[string]*Referable{}
	for name, sub := range w.Definitions {
		defs["/definitions/"+name] = fromWire(sub, owningURI)
	}
	for name, sub := range w.Defs {
		defs["/$defs/"+name] = fromWire(sub, owningURI)
	}
	return fromWire(&w, owningURI), defs, nil
}

func fromWire(w *wireSchema, owningURI string) *Referable {
	if w == nil {
		return nil
	}
	if w.Ref != "" {
		return Ref(w.Ref, owningURI)
	}

	v := &ValueSchema{
		Title:       w.Title,
		Description: w.Description,
		Deprecated:  w.Deprecated,
	}
	if w.Default != nil {
		v.HasDefault = true
		_ = json.Unmarshal(*w.Default, &v.Default)
	}
	if w.Const != nil {
		v.HasConst = true
		_ = json.Unmarshal(*w.Const, &v.Const)
	}
	for _, raw := range w.Enum {
		var e any
		_ = json.Unmarshal(raw, &e)
		v.Enum = append(v.Enum, e)
	}

	types := decodeTypes(w.Type)
	v.Kind = kindFor(types, w)

	switch v.Kind {
	case KString:
		v.MinLength = w.MinLength
		v.MaxLength = w.MaxLength
		v.Pattern = w.Pattern
		v.Format = w.Format
	case KInteger, KFloat:
		v.Minimum = w.Minimum
		v.Maximum = w.Maximum
		v.ExclusiveMinimum = w.ExclusiveMinimum
		v.ExclusiveMaximum = w.ExclusiveMaximum
		v.MultipleOf = w.MultipleOf
	case KArray:
		v.Items = fromWire(w.Items, owningURI)
		v.MinItems = w.MinItems
		v.MaxItems = w.MaxItems
		v.UniqueItems = w.UniqueItems
		v.ValuesOrderBy = ParseOrderKind(w.XTombiArrayValuesOrderBy)
	case KTable:
		props, order := decodeOrderedSchemas(w.PropertiesRaw, owningURI)
		for _, name := range order {
			v.Properties = append(v.Properties, Property{Name: name, Schema: props[name]})
		}
		pats, patOrder := decodeOrderedSchemas(w.PatternPropertiesRaw, owningURI)
		for _, pat := range patOrder {
			v.PatternProperties = append(v.PatternProperties, PatternProperty{Pattern: pat, Schema: pats[pat]})
		}
		if w.AdditionalProperties == nil {
			v.AdditionalPropsDeclared = false
			v.AdditionalPropsAllowed = true
		} else if w.AdditionalProperties.Bool != nil {
			v.AdditionalPropsDeclared = true
			v.AdditionalPropsAllowed = *w.AdditionalProperties.Bool
		} else {
			v.AdditionalPropsDeclared = true
			v.AdditionalPropsAllowed = true
			v.AdditionalPropertySchema = fromWire(w.AdditionalProperties.Schema, owningURI)
		}
		v.AdditionalKeyLabel = w.XTombiAdditionalKeyLabel
		v.Required = w.Required
		v.MinProperties = w.MinProperties
		v.MaxProperties = w.MaxProperties
		v.KeysOrder = decodeKeysOrder(w.XTombiTableKeysOrder)
	case KOneOf:
		v.Members = fromWireList(w.OneOf, owningURI)
	case KAnyOf:
		v.Members = fromWireList(w.AnyOf, owningURI)
	case KAllOf:
		v.Members = fromWireList(w.AllOf, owningURI)
	}

	return Inline(v)
}

func fromWireList(ws []*wireSchema, owningURI string) []*Referable {
	out := make([]*Referable, len(ws))
	for i, w := range ws {
		out[i] = fromWire(w, owningURI)
	}
	return out
}

// decodeOrderedSchemas decodes a `properties`/`patternProperties` object
// into its sub-schemas plus the key order the object was written in
// (spec.md §4.6 "schema order means the order in which keys appear in
// the schema's properties map").
func decodeOrderedSchemas(raw json.RawMessage, owningURI string) (map[string]*Referable, []string) {
	if len(raw) == 0 {
		return nil, nil
	}
	var wireMap map[string]*wireSchema
	if err := json.Unmarshal(raw, &wireMap); err != nil {
		return nil, nil
	}
	out := make(map[string]*Referable, len(wireMap))
	for name, sub := range wireMap {
		out[name] = fromWire(sub, owningURI)
	}
	return out, orderedKeys(raw)
}

// orderedKeys walks a JSON object's token stream to recover its
// immediate member names in declaration order. encoding/json's
// reflection-based decode into a map loses this order, and object key
// order is otherwise unrecoverable once decoded.
func orderedKeys(raw json.RawMessage) []string {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil
	}
	var keys []string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return keys
		}
		key, ok := keyTok.(string)
		if !ok {
			return keys
		}
		keys = append(keys, key)
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return keys
		}
	}
	return keys
}

func decodeTypes(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return []string{single}
	}
	var many []string
	_ = json.Unmarshal(raw, &many)
	return many
}

func kindFor(types []string, w *wireSchema) Kind {
	if len(w.OneOf) > 0 {
		return KOneOf
	}
	if len(w.AnyOf) > 0 {
		return KAnyOf
	}
	if len(w.AllOf) > 0 {
		return KAllOf
	}
	t := ""
	if len(types) > 0 {
		t = types[0]
	}
	switch t {
	case "boolean":
		return KBoolean
	case "integer":
		return KInteger
	case "number":
		return KFloat
	case "string":
		return stringKindFor(w.Format)
	case "array":
		return KArray
	case "object":
		return KTable
	case "null":
		return KNull
	}
	if len(w.PropertiesRaw) > 0 {
		return KTable
	}
	if w.Items != nil {
		return KArray
	}
	return KString
}

// stringKindFor distinguishes the four datetime string kinds by the
// `format` keyword, falling back to plain String.
func stringKindFor(format string) Kind {
	switch format {
	case "date-time":
		return KOffsetDateTime
	case "local-date-time":
		return KLocalDateTime
	case "date":
		return KLocalDate
	case "time":
		return KLocalTime
	}
	return KString
}

func decodeKeysOrder(raw json.RawMessage) *TableKeysOrder {
	if len(raw) == 0 {
		return nil
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		if k := ParseOrderKind(single); k != OrderNone {
			return &TableKeysOrder{Uniform: k}
		}
		return nil
	}
	var groups []struct {
		Group string `json:"group"`
		Order string `json:"order"`
	}
	if err := json.Unmarshal(raw, &groups); err != nil {
		return nil
	}
	to := &TableKeysOrder{}
	for _, g := range groups {
		var gk KeyGroup
		switch g.Group {
		case "keys":
			gk = GroupSchemaKeys
		case "pattern-keys":
			gk = GroupPatternKeys
		case "additional-keys":
			gk = GroupAdditionalKeys
		default:
			continue
		}
		to.Groups = append(to.Groups, GroupOrder{Group: gk, Order: ParseOrderKind(g.Order)})
	}
	return to
}
