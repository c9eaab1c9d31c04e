// Copyright (C) 2023 jnxyp. All Rights Reserved.

package alexson

// Token is the type of a lexical token in the extended JSON grammar.
type Token byte

// Constants defining the valid Token values.
const (
	Invalid Token = iota // invalid token
	LBrace               // left brace "{"
	RBrace               // right brace "}"
	LSquare              // left square bracket "["
	RSquare              // right square bracket "]"
	Comma                // comma ","
	Colon                // colon ":"
	Integer              // number: integer with no fraction or exponent
	Number               // number with fraction and/or exponent
	String               // quoted string
	True                 // constant: true
	False                // constant: false
	Null                 // constant: null
	Word                 // bare word literal, e.g. STATIONS
	EndOfInput           // end of input, claims the trailing trivia of the file
)

var tokenStr = [...]string{
	Invalid:    "invalid token",
	LBrace:     `"{"`,
	RBrace:     `"}"`,
	LSquare:    `"["`,
	RSquare:    `"]"`,
	Comma:      `","`,
	Colon:      `":"`,
	Integer:    "integer",
	Number:     "number",
	String:     "string",
	True:       "true",
	False:      "false",
	Null:       "null",
	Word:       "bare word",
	EndOfInput: "end of input",
}

func (t Token) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return tokenStr[Invalid]
	}
	return tokenStr[v]
}

// TriviaKind is the type of a trivia fragment attached to a token.
type TriviaKind byte

// Constants defining the valid TriviaKind values.
const (
	Whitespace TriviaKind = iota // a run of spaces, tabs, and newlines
	LineComment                  // a line comment, marker through end of line
	BlankLine                    // a line containing only whitespace
)

var triviaStr = [...]string{
	Whitespace:  "whitespace",
	LineComment: "line comment",
	BlankLine:   "blank line",
}

func (k TriviaKind) String() string {
	v := int(k)
	if v >= len(triviaStr) {
		return "invalid trivia"
	}
	return triviaStr[v]
}

// A Trivia is a fragment of non-semantic source text (whitespace or a
// comment) attached to a token. The Text is the exact source slice:
// concatenating a token's leading trivia, its core text, and its trailing
// trivia, across all tokens in input order, reproduces the source
// byte-for-byte.
type Trivia struct {
	Kind TriviaKind
	Text []byte
}
