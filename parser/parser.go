// Package parser turns TOML source text into a lossless syntax.Tree plus a
// list of syntactic diagnostics (spec.md §4.1, C2). The parser is
// hand-written, error-resilient, and never aborts: on an unexpected token
// it records a diagnostic, synchronizes to the next structural boundary,
// and keeps going, mirroring the teacher's marker/error/invalid_token
// discipline generalized onto a real concrete syntax tree.
package parser

import (
	"github.com/tombi-toml/tombi/diagnostic"
	"github.com/tombi-toml/tombi/syntax"
)

// Result is everything C2 produces for one document.
type Result struct {
	Tree        *syntax.Tree
	Diagnostics []diagnostic.Diagnostic
}

// Parse builds a syntax.Tree from source. It always returns a usable tree,
// even for wildly malformed input (spec.md §8 invariant I2).
func Parse(source string, version Version) Result {
	p := &parser{lex: newLexer(source, version), b: &syntax.Builder{}}
	p.run()
	green := p.b.Finish()
	tree := syntax.BuildTree(green, source)
	return Result{Tree: tree, Diagnostics: p.diags}
}

type parser struct {
	lex   *lexer
	buf   []token
	pos   syntax.Position
	b     *syntax.Builder
	diags []diagnostic.Diagnostic
}

// --- token stream helpers ---

func (p *parser) fill(n int) {
	for len(p.buf) <= n {
		p.buf = append(p.buf, p.lex.Next())
	}
}

func (p *parser) cur() token      { p.fill(0); return p.buf[0] }
func (p *parser) kind() syntax.Kind { return p.cur().kind }

// curRange reports the absolute range the current (not-yet-consumed)
// token will occupy once emitted.
func (p *parser) curRange() syntax.Range {
	rel := syntax.MeasureUTF16(p.cur().text)
	end := p.pos.Add(rel)
	return syntax.Range{Start: p.pos, End: end}
}

// bump consumes the current token, emits it to the builder, and advances
// the tracked position.
func (p *parser) bump() token {
	p.fill(0)
	t := p.buf[0]
	p.buf = p.buf[1:]
	p.b.Token(t.kind, t.text)
	p.pos = p.pos.Add(syntax.MeasureUTF16(t.text))
	return t
}

// peekAfterInlineWS reports the kind of the next non-WHITESPACE token
// without consuming anything. Only used inside key regions, where
// valueMode is always false, so it never crosses a lexer-mode boundary.
func (p *parser) peekAfterInlineWS() syntax.Kind {
	p.fill(0)
	if p.buf[0].kind != syntax.WHITESPACE {
		return p.buf[0].kind
	}
	p.fill(1)
	return p.buf[1].kind
}

func (p *parser) diag(kind diagnostic.Kind, rng syntax.Range, msg string) {
	p.diags = append(p.diags, diagnostic.New(kind, rng, msg))
}

func isTrivia(k syntax.Kind) bool { return k.IsTrivia() }

// --- top level ---

func (p *parser) run() {
	p.lex.valueMode = false
	for p.kind() != syntax.EOF {
		switch {
		case isTrivia(p.kind()):
			p.bump()
		case p.kind() == syntax.DOUBLE_L_BRACKET:
			p.parseArrayOfTableHeader()
		case p.kind() == syntax.L_BRACKET:
			p.parseTableHeader()
		default:
			p.parseKeyValueLine()
		}
	}
}

func (p *parser) skipInlineWS() {
	for p.kind() == syntax.WHITESPACE {
		p.bump()
	}
}

// skipToLineEnd synchronizes past the rest of a malformed line, matching
// the parser's error-recovery contract (spec.md §4.1).
func (p *parser) skipToLineEnd() {
	for p.kind() != syntax.LINE_BREAK && p.kind() != syntax.EOF {
		p.bump()
	}
}

// --- keys ---

func (p *parser) parseKeys() {
	m := p.b.Start()
	p.parseOneKey()
	for {
		next := p.peekAfterInlineWS()
		if next != syntax.DOT {
			break
		}
		p.skipInlineWS()
		p.bump() // DOT
		p.skipInlineWS()
		p.parseOneKey()
	}
	m.Complete(syntax.KEYS)
}

func isKeyTokenKind(k syntax.Kind) bool {
	switch k {
	case syntax.BARE_KEY, syntax.BASIC_STRING, syntax.LITERAL_STRING,
		syntax.MULTI_LINE_BASIC_STRING, syntax.MULTI_LINE_LITERAL_STRING:
		return true
	}
	return false
}

func (p *parser) parseOneKey() {
	m := p.b.Start()
	if isKeyTokenKind(p.kind()) {
		p.bump()
	} else {
		p.diag(diagnostic.InvalidKey, p.curRange(), "expected a key")
	}
	m.Complete(syntax.KEY)
}

// --- key = value ---

func (p *parser) parseKeyValueLine() {
	m := p.b.Start()
	p.parseKeys()
	p.skipInlineWS()

	if p.kind() == syntax.EQUAL {
		p.bump()
	} else {
		p.diag(diagnostic.ExpectedEqual, p.curRange(), "expected '=' after key")
	}
	// Flip to value-lexing mode before the next token is pulled from the
	// lexer at all (even to check for whitespace): once '=' is behind us,
	// every subsequent bare run should classify as a literal, not a key.
	p.lex.valueMode = true
	p.skipInlineWS()

	if p.atValueStart() {
		p.parseValue()
	} else {
		p.diag(diagnostic.ExpectedValue, p.curRange(), "expected a value")
		if !isLineTerminator(p.kind()) {
			p.bump() // absorb the offending token so parsing keeps moving
		}
	}
	p.lex.valueMode = false
	m.Complete(syntax.KEY_VALUE)

	p.skipInlineWS()
	if p.kind() == syntax.COMMENT {
		p.bump()
	}
	if p.kind() == syntax.LINE_BREAK {
		p.bump()
		return
	}
	if p.kind() == syntax.EOF {
		return
	}
	p.diag(diagnostic.ExpectedValue, p.curRange(), "expected newline or end of file after value")
	p.skipToLineEnd()
	if p.kind() == syntax.LINE_BREAK {
		p.bump()
	}
}

func isLineTerminator(k syntax.Kind) bool {
	return k == syntax.LINE_BREAK || k == syntax.EOF || k == syntax.COMMENT
}

func (p *parser) atValueStart() bool {
	switch p.kind() {
	case syntax.BOOLEAN, syntax.INTEGER_BIN, syntax.INTEGER_OCT, syntax.INTEGER_DEC, syntax.INTEGER_HEX,
		syntax.FLOAT, syntax.BASIC_STRING, syntax.LITERAL_STRING,
		syntax.MULTI_LINE_BASIC_STRING, syntax.MULTI_LINE_LITERAL_STRING,
		syntax.OFFSET_DATE_TIME, syntax.LOCAL_DATE_TIME, syntax.LOCAL_DATE, syntax.LOCAL_TIME,
		syntax.L_BRACKET, syntax.L_BRACE:
		return true
	}
	return false
}

var leafKindToValueNode = map[syntax.Kind]syntax.Kind{
	syntax.BOOLEAN:                   syntax.BOOLEAN_VALUE,
	syntax.INTEGER_BIN:               syntax.INTEGER_VALUE,
	syntax.INTEGER_OCT:               syntax.INTEGER_VALUE,
	syntax.INTEGER_DEC:               syntax.INTEGER_VALUE,
	syntax.INTEGER_HEX:               syntax.INTEGER_VALUE,
	syntax.FLOAT:                     syntax.FLOAT_VALUE,
	syntax.BASIC_STRING:              syntax.BASIC_STRING_VALUE,
	syntax.LITERAL_STRING:            syntax.LITERAL_STRING_VALUE,
	syntax.MULTI_LINE_BASIC_STRING:   syntax.MULTI_LINE_BASIC_STRING_VALUE,
	syntax.MULTI_LINE_LITERAL_STRING: syntax.MULTI_LINE_LITERAL_STRING_VALUE,
	syntax.OFFSET_DATE_TIME:          syntax.OFFSET_DATE_TIME_VALUE,
	syntax.LOCAL_DATE_TIME:           syntax.LOCAL_DATE_TIME_VALUE,
	syntax.LOCAL_DATE:                syntax.LOCAL_DATE_VALUE,
	syntax.LOCAL_TIME:                syntax.LOCAL_TIME_VALUE,
}

func (p *parser) parseValue() {
	switch p.kind() {
	case syntax.L_BRACKET:
		p.parseArray()
	case syntax.L_BRACE:
		p.parseInlineTable()
	default:
		wrap, ok := leafKindToValueNode[p.kind()]
		if !ok {
			p.diag(diagnostic.ExpectedValue, p.curRange(), "expected a value")
			return
		}
		m := p.b.Start()
		p.bump()
		m.Complete(wrap)
	}
}

// --- arrays ---

func (p *parser) parseArray() {
	m := p.b.Start()
	p.bump() // [
	p.skipArrayTrivia()
	for p.kind() != syntax.R_BRACKET && p.kind() != syntax.EOF {
		p.parseArrayValue()
		p.skipArrayTrivia()
	}
	if p.kind() == syntax.R_BRACKET {
		p.bump()
	} else {
		p.diag(diagnostic.UnterminatedArray, p.curRange(), "unterminated array")
	}
	m.Complete(syntax.VALUE_ARRAY)
}

// skipArrayTrivia consumes whitespace, line breaks, and comments between
// array elements — all legal inside `[ ... ]` regardless of TOML version.
func (p *parser) skipArrayTrivia() {
	for {
		switch p.kind() {
		case syntax.WHITESPACE, syntax.LINE_BREAK, syntax.COMMENT:
			p.bump()
		default:
			return
		}
	}
}

func (p *parser) parseArrayValue() {
	m := p.b.Start()
	if p.atValueStart() {
		p.parseValue()
	} else {
		p.diag(diagnostic.ExpectedValue, p.curRange(), "expected an array value")
	}
	p.skipArrayTrivia()
	if p.kind() == syntax.COMMA {
		p.bump()
	}
	m.Complete(syntax.ARRAY_VALUE)
}

// --- inline tables ---

func (p *parser) parseInlineTable() {
	m := p.b.Start()
	skip := p.skipInlineWS
	if p.lex.version == V1_1Preview {
		skip = p.skipArrayTrivia // multi-line inline tables
	}
	p.bump() // {
	skip()
	for p.kind() != syntax.R_BRACE && p.kind() != syntax.EOF {
		p.lex.valueMode = false
		p.parseInlineKeyValue()
		skip()
		if p.kind() == syntax.COMMA {
			p.bump()
			skip()
		} else {
			break
		}
	}
	if p.kind() == syntax.R_BRACE {
		p.bump()
	} else {
		p.diag(diagnostic.UnterminatedInlineTbl, p.curRange(), "unterminated inline table")
	}
	p.lex.valueMode = true
	m.Complete(syntax.INLINE_TABLE)
}

func (p *parser) parseInlineKeyValue() {
	m := p.b.Start()
	p.parseKeys()
	p.skipInlineWS()
	if p.kind() == syntax.EQUAL {
		p.bump()
	} else {
		p.diag(diagnostic.ExpectedEqual, p.curRange(), "expected '=' after key")
	}
	p.lex.valueMode = true
	p.skipInlineWS()
	if p.atValueStart() {
		p.parseValue()
	} else {
		p.diag(diagnostic.ExpectedValue, p.curRange(), "expected a value")
	}
	m.Complete(syntax.KEY_VALUE)
}

// --- table / array-of-table headers ---

func (p *parser) parseTableHeader() {
	m := p.b.Start()
	p.bump() // [
	p.skipInlineWS()
	p.parseKeys()
	p.skipInlineWS()
	if p.kind() == syntax.R_BRACKET {
		p.bump()
	} else {
		p.diag(diagnostic.ExpectedValue, p.curRange(), "expected ']' to close table header")
	}
	m.Complete(syntax.TABLE)
	p.finishHeaderLine()
}

func (p *parser) parseArrayOfTableHeader() {
	m := p.b.Start()
	p.bump() // [[
	p.skipInlineWS()
	p.parseKeys()
	p.skipInlineWS()
	if p.kind() == syntax.DOUBLE_R_BRACKET {
		p.bump()
	} else {
		p.diag(diagnostic.ExpectedValue, p.curRange(), "expected ']]' to close array-of-tables header")
	}
	m.Complete(syntax.ARRAY_OF_TABLE)
	p.finishHeaderLine()
}

func (p *parser) finishHeaderLine() {
	p.skipInlineWS()
	if p.kind() == syntax.COMMENT {
		p.bump()
	}
	if p.kind() == syntax.LINE_BREAK {
		p.bump()
		return
	}
	if p.kind() == syntax.EOF {
		return
	}
	p.diag(diagnostic.ExpectedValue, p.curRange(), "expected newline or end of file after header")
	p.skipToLineEnd()
	if p.kind() == syntax.LINE_BREAK {
		p.bump()
	}
}
