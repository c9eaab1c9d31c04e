// Copyright (C) 2023 jnxyp. All Rights Reserved.

package alexson

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"go4.org/mem"
)

// A Scanner reads lexical tokens from an in-memory source buffer. Each call
// to Next advances the scanner to the next token, or reports an error. The
// scanner makes a single forward pass over the input and is not restartable.
//
// Besides its core text, every token carries the trivia (whitespace and
// comments) around it. Trailing trivia is the run of spaces and tabs after
// the token's core, plus a line comment if one begins on the same line;
// everything else belongs to the leading trivia of the next token. The
// concatenation of all full token spans reproduces the input exactly, with
// the EndOfInput token claiming the trailing trivia of the file.
type Scanner struct {
	src     []byte
	markers []string // comment markers; empty disables comments
	words   bool     // allow bare word literals

	tok Token
	err error

	cur      int // scan position
	leadPos  int // start offset of leading trivia
	pos, end int // start and end offsets of the token core
	trailEnd int // end offset of trailing trivia
	leading  []Trivia
	trailing []Trivia
}

// NewScanner constructs a new lexical scanner that consumes input from src.
// The scanner borrows src and does not modify it; token text and trivia are
// views into src, valid as long as the buffer is alive.
func NewScanner(src []byte) *Scanner {
	return &Scanner{src: src, markers: []string{"#", "//"}, words: true}
}

// CommentMarkers configures the set of prefixes that introduce a line
// comment. The default markers are "#" and "//". Calling CommentMarkers
// with no arguments disables comments entirely, and a comment marker in the
// input becomes a lexical error.
func (s *Scanner) CommentMarkers(ms ...string) { s.markers = ms }

// AllowBareWords configures the scanner to report (true) or reject (false)
// bare word literals such as STATIONS. Bare words are enabled by default,
// as the dialect uses unquoted enum-like tokens as values.
func (s *Scanner) AllowBareWords(ok bool) { s.words = ok }

// Next advances s to the next token of the input, or reports an error of
// concrete type [*LexicalError]. The last token of any input is EndOfInput;
// after it has been delivered, Next returns io.EOF.
func (s *Scanner) Next() error {
	if s.err != nil {
		return s.err
	} else if s.tok == EndOfInput {
		s.err = io.EOF
		return io.EOF
	}
	s.tok = Invalid
	s.leading, s.trailing = nil, nil
	s.leadPos = s.cur

	if err := s.scanLeading(); err != nil {
		return err
	}
	s.pos = s.cur
	if s.cur == len(s.src) {
		s.tok = EndOfInput
		s.end, s.trailEnd = s.cur, s.cur
		return nil
	}

	if err := s.scanCore(); err != nil {
		return err
	}
	s.end = s.cur
	s.scanTrailing()
	s.trailEnd = s.cur
	return nil
}

// Token returns the type of the current token.
func (s *Scanner) Token() Token { return s.tok }

// Err returns the last error reported by Next.
func (s *Scanner) Err() error { return s.err }

// Text returns the core text of the current token, without trivia. The
// return value is a view into the source buffer.
func (s *Scanner) Text() []byte { return s.src[s.pos:s.end] }

// Span returns the span of the current token's core text.
func (s *Scanner) Span() Span { return Span{Pos: s.pos, End: s.end} }

// FullSpan returns the span of the current token including its leading and
// trailing trivia.
func (s *Scanner) FullSpan() Span { return Span{Pos: s.leadPos, End: s.trailEnd} }

// Leading returns the trivia fragments preceding the current token.
func (s *Scanner) Leading() []Trivia { return s.leading }

// Trailing returns the trivia fragments following the current token on the
// same line.
func (s *Scanner) Trailing() []Trivia { return s.trailing }

// Location returns the complete location of the current token's core text.
func (s *Scanner) Location() Location {
	return Location{
		Span:  s.Span(),
		First: s.lineCol(s.pos),
		Last:  s.lineCol(s.end),
	}
}

// scanLeading consumes whitespace and comments up to the start of the next
// token core, recording them as leading trivia.
func (s *Scanner) scanLeading() error {
	for s.cur < len(s.src) {
		if b := s.src[s.cur]; isSpace(b) {
			start := s.cur
			for s.cur < len(s.src) && isSpace(s.src[s.cur]) {
				s.cur++
			}
			s.leading = splitSpace(s.leading, s.src[start:s.cur])
		} else if s.atMarker() {
			text, err := s.scanComment()
			if err != nil {
				return err
			}
			s.leading = append(s.leading, Trivia{Kind: LineComment, Text: text})
		} else {
			break
		}
	}
	return nil
}

// scanTrailing consumes the run of spaces and tabs after the token core,
// plus a line comment if one begins on the same line.
func (s *Scanner) scanTrailing() {
	start := s.cur
	for s.cur < len(s.src) && (s.src[s.cur] == ' ' || s.src[s.cur] == '\t') {
		s.cur++
	}
	if s.cur > start {
		s.trailing = append(s.trailing, Trivia{Kind: Whitespace, Text: s.src[start:s.cur]})
	}
	if s.atMarker() {
		// An invalid encoding in a trailing comment is reported by the
		// following Next call, not attached to the current token.
		text, err := s.scanComment()
		if err != nil {
			s.cur = start // leave the error to surface from the next Next
			s.trailing = s.trailing[:0]
			return
		}
		s.trailing = append(s.trailing, Trivia{Kind: LineComment, Text: text})
	}
}

// scanCore classifies and consumes the core text of the next token.
// Precondition: s.cur < len(s.src).
func (s *Scanner) scanCore() error {
	switch b := s.src[s.cur]; {
	case b == '{':
		s.tok = LBrace
		s.cur++
	case b == '}':
		s.tok = RBrace
		s.cur++
	case b == '[':
		s.tok = LSquare
		s.cur++
	case b == ']':
		s.tok = RSquare
		s.cur++
	case b == ',':
		s.tok = Comma
		s.cur++
	case b == ':':
		s.tok = Colon
		s.cur++
	case b == '"':
		return s.scanString()
	case b == '-' || b == '+' || isDigit(b):
		return s.scanNumber()
	case isWordStart(b):
		return s.scanWord()
	default:
		r, n := utf8.DecodeRune(s.src[s.cur:])
		if r == utf8.RuneError && n == 1 {
			return s.failf(s.cur, "invalid UTF-8 encoding")
		}
		return s.failf(s.cur, "unexpected %q", r)
	}
	return nil
}

func (s *Scanner) scanString() error {
	s.cur++ // consume the opening quote
	for s.cur < len(s.src) {
		r, n := utf8.DecodeRune(s.src[s.cur:])
		switch {
		case r == utf8.RuneError && n == 1:
			return s.failf(s.cur, "invalid UTF-8 encoding")
		case r == '"':
			s.cur++
			s.tok = String
			return nil
		case r == '\\':
			s.cur++
			if s.cur == len(s.src) {
				break // unterminated
			}
			switch c := s.src[s.cur]; c {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				s.cur++
			case 'u':
				s.cur++
				for i := 0; i < 4; i++ {
					if s.cur == len(s.src) || !isHexDigit(s.src[s.cur]) {
						return s.failf(s.cur, "invalid Unicode escape")
					}
					s.cur++
				}
			default:
				return s.failf(s.cur, "invalid %q after escape", c)
			}
		case r < ' ':
			return s.failf(s.cur, "unescaped control %q", r)
		default:
			s.cur += n
		}
	}
	return s.failf(s.pos, "unterminated string")
}

// scanNumber consumes a numeric literal: an optional sign, digits, an
// optional fraction, and an optional exponent. The dialect tolerates a
// leading "+" and redundant leading zeroes; the raw text round-trips
// verbatim, so no normalization happens here.
func (s *Scanner) scanNumber() error {
	if b := s.src[s.cur]; b == '-' || b == '+' {
		s.cur++
	}
	if s.digits() == 0 {
		return s.failf(s.cur, "want digit in number")
	}
	s.tok = Integer

	if s.cur < len(s.src) && s.src[s.cur] == '.' {
		s.cur++
		if s.digits() == 0 {
			return s.failf(s.cur, "no digits after decimal point")
		}
		s.tok = Number
	}
	if s.cur < len(s.src) && (s.src[s.cur] == 'e' || s.src[s.cur] == 'E') {
		s.cur++
		if s.cur < len(s.src) && (s.src[s.cur] == '-' || s.src[s.cur] == '+') {
			s.cur++
		}
		if s.digits() == 0 {
			return s.failf(s.cur, "missing exponent digits")
		}
		s.tok = Number
	}
	return nil
}

// scanWord consumes a run of word characters and classifies it as one of
// the keyword constants, or as a bare word if those are enabled.
func (s *Scanner) scanWord() error {
	for s.cur < len(s.src) && isWordRune(s.src[s.cur]) {
		s.cur++
	}
	text := mem.B(s.src[s.pos:s.cur])
	switch {
	case text.EqualString("true"):
		s.tok = True
	case text.EqualString("false"):
		s.tok = False
	case text.EqualString("null"):
		s.tok = Null
	default:
		if !s.words {
			return s.failf(s.pos, "unknown word %q", text.StringCopy())
		}
		s.tok = Word
	}
	return nil
}

// scanComment consumes a line comment from the current position through the
// end of the line, not including the newline. Precondition: s.atMarker().
func (s *Scanner) scanComment() ([]byte, error) {
	start := s.cur
	for s.cur < len(s.src) {
		r, n := utf8.DecodeRune(s.src[s.cur:])
		if r == utf8.RuneError && n == 1 {
			return nil, s.failf(s.cur, "invalid UTF-8 encoding")
		} else if r == '\n' {
			break
		}
		s.cur += n
	}
	return s.src[start:s.cur], nil
}

// atMarker reports whether a comment marker begins at the current position.
func (s *Scanner) atMarker() bool {
	for _, m := range s.markers {
		if m != "" && bytes.HasPrefix(s.src[s.cur:], []byte(m)) {
			return true
		}
	}
	return false
}

func (s *Scanner) digits() int {
	var n int
	for s.cur < len(s.src) && isDigit(s.src[s.cur]) {
		s.cur++
		n++
	}
	return n
}

func (s *Scanner) failf(off int, msg string, args ...any) error {
	s.err = &LexicalError{
		Offset:   off,
		Location: s.lineCol(off),
		Message:  fmt.Sprintf(msg, args...),
	}
	return s.err
}

// lineCol computes the line and column of a byte offset. Errors and
// location queries are cold paths, so this counts rather than tracking
// line state during the scan.
func (s *Scanner) lineCol(off int) LineCol {
	pre := s.src[:off]
	return LineCol{
		Line:   bytes.Count(pre, []byte{'\n'}) + 1,
		Column: off - (bytes.LastIndexByte(pre, '\n') + 1),
	}
}

// splitSpace appends a whitespace run to dst as trivia fragments, splitting
// out interior blank lines: the fragment through the first newline is
// Whitespace, each following line consisting only of whitespace is a
// BlankLine, and a trailing indent without a newline is Whitespace again.
func splitSpace(dst []Trivia, text []byte) []Trivia {
	i := bytes.IndexByte(text, '\n')
	if i < 0 {
		return append(dst, Trivia{Kind: Whitespace, Text: text})
	}
	dst = append(dst, Trivia{Kind: Whitespace, Text: text[:i+1]})
	rest := text[i+1:]
	for {
		j := bytes.IndexByte(rest, '\n')
		if j < 0 {
			break
		}
		dst = append(dst, Trivia{Kind: BlankLine, Text: rest[:j+1]})
		rest = rest[j+1:]
	}
	if len(rest) != 0 {
		dst = append(dst, Trivia{Kind: Whitespace, Text: rest})
	}
	return dst
}

// A LexicalError is reported for input that cannot be tokenized, such as an
// unterminated string or an invalid character. It carries the byte offset
// of the offending input.
type LexicalError struct {
	Offset   int     // byte offset of the offending input
	Location LineCol // line and column of the offending input
	Message  string
}

// Error satisfies the error interface.
func (e *LexicalError) Error() string {
	return fmt.Sprintf("at %s: %s", e.Location, e.Message)
}

// IsWord reports whether s is a valid bare word: a letter or underscore
// followed by letters, digits, and underscores, and not one of the
// reserved words true, false, and null.
func IsWord(s string) bool {
	if s == "" || !isWordStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isWordRune(s[i]) {
			return false
		}
	}
	return s != "true" && s != "false" && s != "null"
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\r' || b == '\n' }
func isDigit(b byte) bool { return '0' <= b && b <= '9' }

func isWordStart(b byte) bool {
	return b == '_' || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

func isWordRune(b byte) bool { return isWordStart(b) || isDigit(b) }

func isHexDigit(b byte) bool {
	return isDigit(b) || ('a' <= b && b <= 'f') || ('A' <= b && b <= 'F')
}
