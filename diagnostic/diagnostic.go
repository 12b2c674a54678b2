// Package diagnostic defines the shared diagnostic taxonomy (spec.md §7)
// used by the parser, document builder, validator, and schema store. A
// diagnostic is data, not a Go error: producing one never aborts the
// operation that found it.
package diagnostic

import "github.com/tombi-toml/tombi/syntax"

// Severity is Error or Warning. A comment directive (document.Directive)
// may raise, lower, or silence the default severity of any Kind.
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

// Kind is the closed diagnostic taxonomy from spec.md §7. Each is a
// distinct kind, not a Go type, so a single []Diagnostic slice can carry
// syntax, document-build, validation, and schema-store diagnostics alike.
type Kind string

const (
	// Syntax.
	ExpectedEqual         Kind = "expected-equal"
	ExpectedValue         Kind = "expected-value"
	InvalidKey            Kind = "invalid-key"
	InvalidBasicString    Kind = "invalid-basic-string"
	InvalidLiteralString  Kind = "invalid-literal-string"
	InvalidNumber         Kind = "invalid-number"
	InvalidLocalDateTime  Kind = "invalid-local-date-time"
	UnterminatedArray     Kind = "unterminated-array"
	UnterminatedInlineTbl Kind = "unterminated-inline-table"

	// Document build.
	KeyRedefined       Kind = "key-redefined"
	TableRedefined     Kind = "table-redefined"
	InlineTableExt     Kind = "inline-table-extended"
	DottedKeysOutOfOrd Kind = "dotted-keys-out-of-order"
	KeyEmpty           Kind = "key-empty"

	// Schema validation.
	TypeMismatch             Kind = "type-mismatch"
	Const                    Kind = "const"
	Enumerate                Kind = "enumerate"
	IntegerMinimum           Kind = "integer-minimum"
	IntegerMaximum           Kind = "integer-maximum"
	IntegerExclusiveMinimum  Kind = "integer-exclusive-minimum"
	IntegerExclusiveMaximum  Kind = "integer-exclusive-maximum"
	IntegerMultipleOf        Kind = "integer-multiple-of"
	FloatMinimum             Kind = "float-minimum"
	FloatMaximum             Kind = "float-maximum"
	FloatExclusiveMinimum    Kind = "float-exclusive-minimum"
	FloatExclusiveMaximum    Kind = "float-exclusive-maximum"
	FloatMultipleOf          Kind = "float-multiple-of"
	StringMinLength          Kind = "string-min-length"
	StringMaxLength          Kind = "string-max-length"
	StringPattern            Kind = "string-pattern"
	StringFormat             Kind = "string-format"
	ArrayMinItems            Kind = "array-min-items"
	ArrayMaxItems            Kind = "array-max-items"
	ArrayUniqueItems         Kind = "array-unique-items"
	TableMinKeys             Kind = "table-min-keys"
	TableMaxKeys             Kind = "table-max-keys"
	KeyRequired              Kind = "key-required"
	KeyNotAllowed            Kind = "key-not-allowed"
	KeyPattern               Kind = "key-pattern"
	StrictAdditionalProps    Kind = "strict-additional-properties"
	OneOfUnmatched           Kind = "one-of-unmatched"
	AllOfUnmatched           Kind = "all-of-unmatched"
	Deprecated               Kind = "deprecated"
	DeprecatedValue          Kind = "deprecated-value"

	// Schema store.
	CatalogURLFetchFailed Kind = "catalog-url-fetch-failed"
	SchemaFetchFailed     Kind = "schema-fetch-failed"
	SchemaFileNotFound    Kind = "schema-file-not-found"
	SchemaFileParseFailed Kind = "schema-file-parse-failed"
	InvalidSchemaURL      Kind = "invalid-schema-url"
	UnsupportedSchemaURL  Kind = "unsupported-schema-url"
)

// defaultSeverity is the built-in severity before any comment-directive
// override is applied (§7 "severity may be lowered or raised").
var defaultSeverity = map[Kind]Severity{
	Deprecated:      Warning,
	DeprecatedValue: Warning,
}

func (k Kind) DefaultSeverity() Severity {
	if s, ok := defaultSeverity[k]; ok {
		return s
	}
	return Error
}

// Diagnostic is one reported problem: a kind, its source range, severity,
// and a stable machine-readable code (the Kind value itself serves as the
// code — both are rendered the same way, so there is only one string to
// keep in sync).
type Diagnostic struct {
	Kind     Kind
	Range    syntax.Range
	Severity Severity
	Message  string
	// Data carries kind-specific structured detail (e.g. the offending
	// key for KeyNotAllowed, the schema limit and actual value for a
	// numeric-range violation) for hosts that want more than Message.
	Data map[string]any
}

func New(kind Kind, rng syntax.Range, message string) Diagnostic {
	return Diagnostic{Kind: kind, Range: rng, Severity: kind.DefaultSeverity(), Message: message}
}

func (d Diagnostic) WithData(key string, value any) Diagnostic {
	if d.Data == nil {
		d.Data = map[string]any{}
	}
	d.Data[key] = value
	return d
}

// Code returns the stable machine-readable code a host editor displays.
func (d Diagnostic) Code() string { return string(d.Kind) }
