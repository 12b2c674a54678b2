package document

import (
	"strconv"
	"strings"

	"github.com/tombi-toml/tombi/ast"
	"github.com/tombi-toml/tombi/diagnostic"
	"github.com/tombi-toml/tombi/syntax"
)

// ValueKind is the tag of a document Value (spec.md §3 "Value").
type ValueKind int

const (
	Boolean ValueKind = iota
	Integer
	Float
	String
	OffsetDateTime
	LocalDateTime
	LocalDate
	LocalTime
	ArrayValue
	TableValue
	Incomplete
)

// IntegerBase tags the lexical base an Integer value was written in.
type IntegerBase int

const (
	Dec IntegerBase = iota
	Bin
	Oct
	Hex
)

// StringQuote tags the quote style a String value was written in.
type StringQuote int

const (
	Basic StringQuote = iota
	Literal
	MultiLineBasic
	MultiLineLiteral
)

// Value is the tagged variant described in spec.md §3. Every value
// carries its source Range regardless of kind.
type Value struct {
	Kind  ValueKind
	Range syntax.Range

	Bool  bool
	Int   int64
	Base  IntegerBase
	Flt   float64
	Str   string      // decoded text
	Quote StringQuote
	// UnquotedRange is the source range of the string body, excluding
	// delimiters — the range editor features operate on (spec.md §4.2).
	UnquotedRange syntax.Range

	DateTime string // raw RFC-3339-ish text, kind-tagged by Kind

	// Literal is the exact source text of a non-composite value's
	// token (quotes included for strings), used to compare uniqueItems
	// elements by literal text rather than decoded value — 1 and 1.0
	// decode to the same float64 but must not compare equal (spec.md
	// §4.5 "comparing literal text of non-composite items"). Left empty
	// for ArrayValue/TableValue, which that comparison excludes.
	Literal string

	Array *Array
	Table *Table

	// Directive is the inline `# tombi: ...` comment trailing this
	// value's line, if any (spec.md §3 "Comment directive").
	Directive *Directive
}

func newIncomplete(rng syntax.Range) *Value {
	return &Value{Kind: Incomplete, Range: rng}
}

// IsSortable reports whether v's kind is one of the types array-value
// sort can classify (spec.md glossary "Sortable type").
func (v *Value) IsSortable() bool {
	switch v.Kind {
	case Boolean, Integer, String, OffsetDateTime, LocalDateTime, LocalDate, LocalTime:
		return true
	}
	return false
}

func buildValue(an ast.Value) (*Value, []diagnostic.Diagnostic) {
	var diags []diagnostic.Diagnostic
	switch an.Kind() {
	case syntax.BOOLEAN_VALUE:
		tok, ok := an.Token()
		if !ok {
			return newIncomplete(an.SyntaxNode().Range()), diags
		}
		return &Value{Kind: Boolean, Range: an.SyntaxNode().Range(), Bool: tok.Text() == "true", Literal: tok.Text()}, diags
	case syntax.INTEGER_VALUE:
		tok, ok := an.Token()
		if !ok {
			return newIncomplete(an.SyntaxNode().Range()), diags
		}
		base, bitBase := parseIntBase(tok.Kind())
		iv, _ := strconv.ParseInt(cleanIntText(tok.Text(), base), bitBase, 64)
		return &Value{Kind: Integer, Range: an.SyntaxNode().Range(), Int: iv, Base: base, Literal: tok.Text()}, diags
	case syntax.FLOAT_VALUE:
		tok, ok := an.Token()
		if !ok {
			return newIncomplete(an.SyntaxNode().Range()), diags
		}
		fv, _ := strconv.ParseFloat(strings.ReplaceAll(tok.Text(), "_", ""), 64)
		return &Value{Kind: Float, Range: an.SyntaxNode().Range(), Flt: fv, Literal: tok.Text()}, diags
	case syntax.BASIC_STRING_VALUE, syntax.LITERAL_STRING_VALUE,
		syntax.MULTI_LINE_BASIC_STRING_VALUE, syntax.MULTI_LINE_LITERAL_STRING_VALUE:
		return buildStringValue(an)
	case syntax.OFFSET_DATE_TIME_VALUE, syntax.LOCAL_DATE_TIME_VALUE,
		syntax.LOCAL_DATE_VALUE, syntax.LOCAL_TIME_VALUE:
		tok, ok := an.Token()
		if !ok {
			return newIncomplete(an.SyntaxNode().Range()), diags
		}
		kind := map[syntax.Kind]ValueKind{
			syntax.OFFSET_DATE_TIME_VALUE: OffsetDateTime,
			syntax.LOCAL_DATE_TIME_VALUE:  LocalDateTime,
			syntax.LOCAL_DATE_VALUE:       LocalDate,
			syntax.LOCAL_TIME_VALUE:       LocalTime,
		}[an.Kind()]
		return &Value{Kind: kind, Range: an.SyntaxNode().Range(), DateTime: tok.Text(), Literal: tok.Text()}, diags
	case syntax.VALUE_ARRAY:
		arr, ds := buildArray(an)
		diags = append(diags, ds...)
		return &Value{Kind: ArrayValue, Range: an.SyntaxNode().Range(), Array: arr}, diags
	case syntax.INLINE_TABLE:
		tbl, ds := buildInlineTable(an)
		diags = append(diags, ds...)
		return &Value{Kind: TableValue, Range: an.SyntaxNode().Range(), Table: tbl}, diags
	}
	return newIncomplete(an.SyntaxNode().Range()), diags
}

func parseIntBase(k syntax.Kind) (IntegerBase, int) {
	switch k {
	case syntax.INTEGER_BIN:
		return Bin, 2
	case syntax.INTEGER_OCT:
		return Oct, 8
	case syntax.INTEGER_HEX:
		return Hex, 16
	}
	return Dec, 10
}

// cleanIntText strips underscores digit separators and, for non-decimal
// bases, the `0x`/`0o`/`0b` prefix that strconv.ParseInt does not expect
// when given an explicit base.
func cleanIntText(s string, base IntegerBase) string {
	s = strings.ReplaceAll(s, "_", "")
	sign := ""
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		if s[0] == '-' {
			sign = "-"
		}
		s = s[1:]
	}
	if base != Dec && len(s) > 2 && s[0] == '0' {
		s = s[2:]
	}
	return sign + s
}

func buildStringValue(an ast.Value) (*Value, []diagnostic.Diagnostic) {
	tok, ok := an.Token()
	if !ok {
		return newIncomplete(an.SyntaxNode().Range()), nil
	}
	raw := tok.Text()
	quote, delimLen := stringQuoteOf(an.Kind())
	body := raw
	if len(raw) >= 2*delimLen {
		body = raw[delimLen : len(raw)-delimLen]
	}
	start := tok.Range().Start
	bodyStart := start.Add(syntax.MeasureUTF16(raw[:delimLen]))
	if quote == MultiLineBasic || quote == MultiLineLiteral {
		if strings.HasPrefix(body, "\n") {
			body = body[1:]
			bodyStart = bodyStart.Add(syntax.RelativePosition{Lines: 1})
		} else if strings.HasPrefix(body, "\r\n") {
			body = body[2:]
			bodyStart = bodyStart.Add(syntax.RelativePosition{Lines: 1})
		}
	}
	bodyEnd := bodyStart.Add(syntax.MeasureUTF16(body))
	decoded := body
	switch quote {
	case Basic, MultiLineBasic:
		decoded = unescapeBasic(body)
	}
	return &Value{
		Kind:          String,
		Range:         an.SyntaxNode().Range(),
		Str:           decoded,
		Quote:         quote,
		UnquotedRange: syntax.Range{Start: bodyStart, End: bodyEnd},
		Literal:       raw,
	}, nil
}

func stringQuoteOf(k syntax.Kind) (StringQuote, int) {
	switch k {
	case syntax.BASIC_STRING_VALUE:
		return Basic, 1
	case syntax.LITERAL_STRING_VALUE:
		return Literal, 1
	case syntax.MULTI_LINE_BASIC_STRING_VALUE:
		return MultiLineBasic, 3
	case syntax.MULTI_LINE_LITERAL_STRING_VALUE:
		return MultiLineLiteral, 3
	}
	return Basic, 1
}
