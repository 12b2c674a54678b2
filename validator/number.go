package validator

import (
	"strconv"

	"github.com/tombi-toml/tombi/diagnostic"
	"github.com/tombi-toml/tombi/document"
	"github.com/tombi-toml/tombi/schema"
)

// validateNumber applies min/max/exclusive-min/exclusive-max/multipleOf
// (spec.md §4.5 "Integer/Float"). An Integer validated against a Float
// schema is widened to float64, matching the original's "Integer
// validated against Float schemas uses the integer's value as an f64".
func (w *walker) validateNumber(f frame, vs *schema.ValueSchema) {
	var fv float64
	if f.value.Kind == document.Integer {
		fv = float64(f.value.Int)
	} else {
		fv = f.value.Flt
	}

	minKind, maxKind, exclMinKind, exclMaxKind, multKind := diagnostic.IntegerMinimum, diagnostic.IntegerMaximum, diagnostic.IntegerExclusiveMinimum, diagnostic.IntegerExclusiveMaximum, diagnostic.IntegerMultipleOf
	if f.value.Kind == document.Float {
		minKind, maxKind, exclMinKind, exclMaxKind, multKind = diagnostic.FloatMinimum, diagnostic.FloatMaximum, diagnostic.FloatExclusiveMinimum, diagnostic.FloatExclusiveMaximum, diagnostic.FloatMultipleOf
	}

	if vs.Minimum != nil && fv < *vs.Minimum {
		w.report(minKind, f.value.Range, "value "+formatNum(fv)+" is below minimum "+formatNum(*vs.Minimum), f.value.Directive)
	}
	if vs.Maximum != nil && fv > *vs.Maximum {
		w.report(maxKind, f.value.Range, "value "+formatNum(fv)+" is above maximum "+formatNum(*vs.Maximum), f.value.Directive)
	}
	if vs.ExclusiveMinimum != nil && fv <= *vs.ExclusiveMinimum {
		w.report(exclMinKind, f.value.Range, "value "+formatNum(fv)+" is not above exclusive minimum "+formatNum(*vs.ExclusiveMinimum), f.value.Directive)
	}
	if vs.ExclusiveMaximum != nil && fv >= *vs.ExclusiveMaximum {
		w.report(exclMaxKind, f.value.Range, "value "+formatNum(fv)+" is not below exclusive maximum "+formatNum(*vs.ExclusiveMaximum), f.value.Directive)
	}
	if vs.MultipleOf != nil && *vs.MultipleOf != 0 {
		q := fv / *vs.MultipleOf
		if q != float64(int64(q)) {
			w.report(multKind, f.value.Range, "value "+formatNum(fv)+" is not a multiple of "+formatNum(*vs.MultipleOf), f.value.Directive)
		}
	}
}

func formatNum(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }
