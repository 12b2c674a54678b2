// Package syntax implements the lossless concrete syntax tree (C1): a
// red-green tree of immutable, owning "green" nodes plus a "red" layer of
// arena-indexed nodes that add parent back-references and absolute ranges.
//
// The green layer never points at its parent (so it can be shared/reused
// freely); the red layer is a thin, rebuildable view that does. This keeps
// the ownership graph acyclic, per the design note on cyclic red-green
// references: an arena + index scheme instead of parent-owning pointers.
package syntax

// Kind is the closed enumeration of node and token kinds. Node kinds sit
// below tokenKindsStart; anything above it is a leaf token kind.
type Kind uint16

const (
	// Nodes.
	ROOT Kind = iota
	TABLE
	ARRAY_OF_TABLE
	KEY_VALUE
	KEYS
	KEY
	VALUE_ARRAY
	ARRAY_VALUE
	INLINE_TABLE
	BOOLEAN_VALUE
	INTEGER_VALUE
	FLOAT_VALUE
	BASIC_STRING_VALUE
	LITERAL_STRING_VALUE
	MULTI_LINE_BASIC_STRING_VALUE
	MULTI_LINE_LITERAL_STRING_VALUE
	OFFSET_DATE_TIME_VALUE
	LOCAL_DATE_TIME_VALUE
	LOCAL_DATE_VALUE
	LOCAL_TIME_VALUE

	tokenKindsStart

	// Tokens (leaves). BARE_KEY and the string/number/datetime literal
	// tokens double as both the token kind and the wrapping node's literal
	// child; see ast.Value.Token.
	BARE_KEY
	BASIC_STRING
	LITERAL_STRING
	MULTI_LINE_BASIC_STRING
	MULTI_LINE_LITERAL_STRING
	INTEGER_BIN
	INTEGER_OCT
	INTEGER_DEC
	INTEGER_HEX
	FLOAT
	BOOLEAN
	OFFSET_DATE_TIME
	LOCAL_DATE_TIME
	LOCAL_DATE
	LOCAL_TIME

	DOT
	EQUAL
	COMMA
	L_BRACKET
	R_BRACKET
	DOUBLE_L_BRACKET
	DOUBLE_R_BRACKET
	L_BRACE
	R_BRACE

	WHITESPACE
	LINE_BREAK
	COMMENT

	INVALID_TOKEN
	EOF
)

var kindNames = map[Kind]string{
	ROOT:                             "ROOT",
	TABLE:                            "TABLE",
	ARRAY_OF_TABLE:                   "ARRAY_OF_TABLE",
	KEY_VALUE:                        "KEY_VALUE",
	KEYS:                             "KEYS",
	KEY:                              "KEY",
	VALUE_ARRAY:                      "VALUE_ARRAY",
	ARRAY_VALUE:                      "ARRAY_VALUE",
	INLINE_TABLE:                     "INLINE_TABLE",
	BOOLEAN_VALUE:                    "BOOLEAN_VALUE",
	INTEGER_VALUE:                    "INTEGER_VALUE",
	FLOAT_VALUE:                      "FLOAT_VALUE",
	BASIC_STRING_VALUE:               "BASIC_STRING_VALUE",
	LITERAL_STRING_VALUE:             "LITERAL_STRING_VALUE",
	MULTI_LINE_BASIC_STRING_VALUE:    "MULTI_LINE_BASIC_STRING_VALUE",
	MULTI_LINE_LITERAL_STRING_VALUE:  "MULTI_LINE_LITERAL_STRING_VALUE",
	OFFSET_DATE_TIME_VALUE:           "OFFSET_DATE_TIME_VALUE",
	LOCAL_DATE_TIME_VALUE:            "LOCAL_DATE_TIME_VALUE",
	LOCAL_DATE_VALUE:                 "LOCAL_DATE_VALUE",
	LOCAL_TIME_VALUE:                 "LOCAL_TIME_VALUE",
	BARE_KEY:                         "BARE_KEY",
	BASIC_STRING:                     "BASIC_STRING",
	LITERAL_STRING:                   "LITERAL_STRING",
	MULTI_LINE_BASIC_STRING:          "MULTI_LINE_BASIC_STRING",
	MULTI_LINE_LITERAL_STRING:        "MULTI_LINE_LITERAL_STRING",
	INTEGER_BIN:                      "INTEGER_BIN",
	INTEGER_OCT:                      "INTEGER_OCT",
	INTEGER_DEC:                      "INTEGER_DEC",
	INTEGER_HEX:                      "INTEGER_HEX",
	FLOAT:                            "FLOAT",
	BOOLEAN:                          "BOOLEAN",
	OFFSET_DATE_TIME:                 "OFFSET_DATE_TIME",
	LOCAL_DATE_TIME:                  "LOCAL_DATE_TIME",
	LOCAL_DATE:                       "LOCAL_DATE",
	LOCAL_TIME:                       "LOCAL_TIME",
	DOT:                              "DOT",
	EQUAL:                            "EQUAL",
	COMMA:                            "COMMA",
	L_BRACKET:                        "L_BRACKET",
	R_BRACKET:                        "R_BRACKET",
	DOUBLE_L_BRACKET:                 "DOUBLE_L_BRACKET",
	DOUBLE_R_BRACKET:                 "DOUBLE_R_BRACKET",
	L_BRACE:                          "L_BRACE",
	R_BRACE:                          "R_BRACE",
	WHITESPACE:                       "WHITESPACE",
	LINE_BREAK:                       "LINE_BREAK",
	COMMENT:                          "COMMENT",
	INVALID_TOKEN:                    "INVALID_TOKEN",
	EOF:                              "EOF",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// IsToken reports whether k is a leaf token kind rather than a node kind.
func (k Kind) IsToken() bool { return k > tokenKindsStart }

// IsTrivia reports whether k never carries semantic meaning on its own.
func (k Kind) IsTrivia() bool {
	return k == WHITESPACE || k == LINE_BREAK || k == COMMENT
}
