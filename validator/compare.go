package validator

import (
	"reflect"

	"github.com/tombi-toml/tombi/document"
)

// literalValueOf projects a document.Value into the plain Go value a
// decoded JSON const/enum would compare equal to (schema.go's wire
// decoder stores JSON numbers as float64, strings as string, bools as
// bool, arrays/objects as []any/map[string]any).
func literalValueOf(v *document.Value) any {
	switch v.Kind {
	case document.Boolean:
		return v.Bool
	case document.Integer:
		return float64(v.Int)
	case document.Float:
		return v.Flt
	case document.String:
		return v.Str
	case document.OffsetDateTime, document.LocalDateTime, document.LocalDate, document.LocalTime:
		return v.DateTime
	case document.ArrayValue:
		out := make([]any, 0, len(v.Array.Elements))
		for _, e := range v.Array.Elements {
			out = append(out, literalValueOf(e))
		}
		return out
	case document.TableValue:
		out := map[string]any{}
		for _, e := range v.Table.Entries() {
			out[e.Key.Text] = literalValueOf(e.Value)
		}
		return out
	}
	return nil
}

func constMatches(want any, v *document.Value) bool {
	return reflect.DeepEqual(want, literalValueOf(v))
}

func enumMatches(options []any, v *document.Value) bool {
	got := literalValueOf(v)
	for _, o := range options {
		if reflect.DeepEqual(o, got) {
			return true
		}
	}
	return false
}
