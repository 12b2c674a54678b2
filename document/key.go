package document

import (
	"strconv"
	"strings"

	"github.com/tombi-toml/tombi/syntax"
)

// Key is a document-tree key: a string with its insertion range (spec.md
// §3 "Key"). Equality is by string value; Text is the decoded form of
// a quoted key (escapes resolved) or the bare text itself.
type Key struct {
	Text  string
	Range syntax.Range
}

// NewKey decodes a KEY token's exact text into its string value, per the
// same escape rules values use for basic/literal strings.
func NewKey(tok syntax.SyntaxToken) Key {
	return Key{Text: decodeKeyText(tok.Kind(), tok.Text()), Range: tok.Range()}
}

func decodeKeyText(kind syntax.Kind, raw string) string {
	switch kind {
	case syntax.BASIC_STRING:
		if len(raw) >= 2 {
			return unescapeBasic(raw[1 : len(raw)-1])
		}
	case syntax.LITERAL_STRING:
		if len(raw) >= 2 {
			return raw[1 : len(raw)-1]
		}
	}
	return raw
}

// unescapeBasic resolves `\b \t \n \f \r \" \\ \uXXXX \UXXXXXXXX` in a
// basic-string body (spec.md §4.1). Malformed escapes pass through
// unchanged rather than erroring: the parser already flagged the token
// as InvalidBasicString if scanning found something worse.
func unescapeBasic(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			i++
			continue
		}
		esc := s[i+1]
		switch esc {
		case 'b':
			b.WriteByte('\b')
			i += 2
		case 't':
			b.WriteByte('\t')
			i += 2
		case 'n':
			b.WriteByte('\n')
			i += 2
		case 'f':
			b.WriteByte('\f')
			i += 2
		case 'r':
			b.WriteByte('\r')
			i += 2
		case '"':
			b.WriteByte('"')
			i += 2
		case '\\':
			b.WriteByte('\\')
			i += 2
		case 'u':
			if n, ok := writeUnicodeEscape(&b, s, i+2, 4); ok {
				i = n
			} else {
				b.WriteByte(s[i])
				i++
			}
		case 'U':
			if n, ok := writeUnicodeEscape(&b, s, i+2, 8); ok {
				i = n
			} else {
				b.WriteByte(s[i])
				i++
			}
		default:
			b.WriteByte(s[i])
			i++
		}
	}
	return b.String()
}

func writeUnicodeEscape(b *strings.Builder, s string, start, digits int) (int, bool) {
	if start+digits > len(s) {
		return 0, false
	}
	v, err := strconv.ParseUint(s[start:start+digits], 16, 32)
	if err != nil {
		return 0, false
	}
	b.WriteRune(rune(v))
	return start + digits, true
}
