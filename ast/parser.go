// Copyright (C) 2023 jnxyp. All Rights Reserved.

package ast

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/jnxyp/alexson"
)

// A SyntaxError is reported when the token stream does not form a valid
// document.
type SyntaxError struct {
	Offset   int             // byte offset of the offending token
	Location alexson.LineCol // position of the offending token
	Message  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", e.Location, e.Message)
}

// A Parser carries the grammar configuration used to parse documents.
// A zero Parser is ready for use with the default dialect: "#" and "//"
// comments, bare words, trailing commas, and duplicate keys all accepted.
type Parser struct {
	// CommentMarkers lists the prefixes that introduce a line comment.
	// If nil, the defaults "#" and "//" are used. An empty non-nil slice
	// disables comments entirely.
	CommentMarkers []string

	NoBareWords      bool // reject unquoted word values
	NoTrailingCommas bool // reject a comma before a closing bracket
	NoDuplicateKeys  bool // report repeated object keys as syntax errors
}

// Parse reads a complete document from r. It is shorthand for
// Parser{}.Parse.
func Parse(r io.Reader) (*Document, error) { return Parser{}.Parse(r) }

// ParseBytes parses a complete document from data. It is shorthand for
// Parser{}.ParseBytes.
func ParseBytes(data []byte) (*Document, error) { return Parser{}.ParseBytes(data) }

// Parse reads a complete document from r.
func (p Parser) Parse(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return p.ParseBytes(data)
}

// ParseBytes parses a complete document from data. The returned document
// retains data; the caller must not modify it afterward.
func (p Parser) ParseBytes(data []byte) (doc *Document, err error) {
	sc := alexson.NewScanner(data)
	if p.CommentMarkers != nil {
		sc.CommentMarkers(p.CommentMarkers...)
	}
	sc.AllowBareWords(!p.NoBareWords)

	pr := &parser{src: data, sc: sc, opt: p}
	defer func() {
		switch v := recover().(type) {
		case nil:
		case *SyntaxError:
			doc, err = nil, v
		case scanFailure:
			doc, err = nil, v.err
		default:
			panic(v)
		}
	}()
	return pr.parseDocument(), nil
}

// A token records the position of a scanned token after the scanner has
// moved past it.
type token struct {
	kind     alexson.Token
	pos, end int // the core token
	leadPos  int // start of the leading trivia
	trailEnd int // end of the trailing trivia
}

// scanFailure wraps a scanner error for transport through panic.
type scanFailure struct{ err error }

type parser struct {
	src []byte
	sc  *alexson.Scanner
	opt Parser
	tok token
}

// advance fetches the next token. If want is non-empty and the token is
// not among the wanted kinds, advance panics with a *SyntaxError.
func (p *parser) advance(want ...alexson.Token) alexson.Token {
	if err := p.sc.Next(); err != nil {
		panic(scanFailure{err})
	}
	core, full := p.sc.Span(), p.sc.FullSpan()
	p.tok = token{
		kind: p.sc.Token(),
		pos:  core.Pos, end: core.End,
		leadPos: full.Pos, trailEnd: full.End,
	}
	if len(want) != 0 && !slices.Contains(want, p.tok.kind) {
		p.failf("got %v, %s", p.tok.kind, tokLabel(want))
	}
	return p.tok.kind
}

// failf panics with a *SyntaxError at the current token.
func (p *parser) failf(msg string, args ...any) {
	panic(&SyntaxError{
		Offset:   p.tok.pos,
		Location: p.sc.Location().First,
		Message:  fmt.Sprintf(msg, args...),
	})
}

// tokLabel renders a list of wanted token kinds for error messages.
func tokLabel(want []alexson.Token) string {
	if len(want) == 1 {
		return "wanted " + want[0].String()
	}
	last := len(want) - 1
	ss := make([]string, last)
	for i, t := range want[:last] {
		ss[i] = t.String()
	}
	return "wanted " + strings.Join(ss, ", ") + " or " + want[last].String()
}

func (p *parser) parseDocument() *Document {
	if p.advance() == alexson.EndOfInput {
		return &Document{src: p.src, end: p.src}
	}
	root := p.parseValue(p.tok.leadPos)
	p.advance(alexson.EndOfInput)
	return &Document{src: p.src, root: root, end: p.src[root.Span().End:]}
}

// parseValue parses the value whose first token is current. The value's
// span begins at start and absorbs the current token's leading trivia; on
// return the current token is the last token of the value.
func (p *parser) parseValue(start int) Value {
	switch t := p.tok; t.kind {
	case alexson.LBrace:
		return p.parseObject(start)
	case alexson.LSquare:
		return p.parseArray(start)
	case alexson.String:
		return &String{p.datum(start)}
	case alexson.Integer:
		return &Number{datum: p.datum(start), isInt: true}
	case alexson.Number:
		return &Number{datum: p.datum(start)}
	case alexson.True, alexson.False:
		return &Bool{datum: p.datum(start), value: t.kind == alexson.True}
	case alexson.Null:
		return &Null{p.datum(start)}
	case alexson.Word:
		return &Raw{p.datum(start)}
	default:
		p.failf("got %v, wanted a value", t.kind)
		panic("unreachable")
	}
}

// datum builds the leaf node state for the current token.
func (p *parser) datum(start int) datum {
	return datum{
		node: node{
			span: alexson.Span{Pos: start, End: p.tok.trailEnd},
			raw:  p.src[start:p.tok.trailEnd],
		},
		text: p.src[p.tok.pos:p.tok.end],
	}
}

func (p *parser) parseObject(start int) *Object {
	open := p.tok
	o := &Object{node: node{span: alexson.Span{Pos: start}}}
	o.lead = p.src[start:open.pos]

	var seen map[string]bool
	if p.opt.NoDuplicateKeys {
		seen = make(map[string]bool)
	}

	memberStart := open.end
	if p.advance(alexson.String, alexson.RBrace) == alexson.RBrace {
		o.end = p.src[open.end:p.tok.pos]
	} else {
		for {
			m := p.parseMember(memberStart, seen)
			o.node.adopt(m)
			o.members = append(o.members, m)

			if p.advance(alexson.Comma, alexson.RBrace) == alexson.RBrace {
				o.end = p.src[m.span.End:p.tok.pos]
				break
			}
			commaEnd := p.tok.end
			next := []alexson.Token{alexson.String}
			if !p.opt.NoTrailingCommas {
				next = append(next, alexson.RBrace)
			}
			if p.advance(next...) == alexson.RBrace {
				o.TrailingComma = true
				o.end = p.src[commaEnd:p.tok.pos]
				break
			}
			memberStart = commaEnd
		}
	}
	o.tail = p.src[p.tok.end:p.tok.trailEnd]
	o.span.End = p.tok.trailEnd
	o.raw = p.src[o.span.Pos:o.span.End]
	return o
}

// parseMember parses a key-value pair whose key token is current. The
// member's span begins at start, just past the enclosing brace or comma.
func (p *parser) parseMember(start int, seen map[string]bool) *Member {
	key := &String{datum: p.datum(start)}
	if seen != nil {
		k := key.Unescape()
		if seen[k] {
			p.failf("duplicate object key %q", k)
		}
		seen[k] = true
	}
	m := &Member{node: node{span: alexson.Span{Pos: start}}, key: key}
	m.node.adopt(key)

	p.advance(alexson.Colon)
	sepEnd := p.tok.trailEnd
	m.sep = p.src[key.span.End:sepEnd]

	p.advance()
	v := p.parseValue(sepEnd)
	m.node.adopt(v)
	m.val = v
	m.span.End = v.Span().End
	m.raw = p.src[m.span.Pos:m.span.End]
	return m
}

func (p *parser) parseArray(start int) *Array {
	open := p.tok
	a := &Array{node: node{span: alexson.Span{Pos: start}}}
	a.lead = p.src[start:open.pos]

	elemStart := open.end
	if p.advance() == alexson.RSquare {
		a.end = p.src[open.end:p.tok.pos]
	} else {
		for {
			v := p.parseValue(elemStart)
			a.node.adopt(v)
			a.values = append(a.values, v)

			if p.advance(alexson.Comma, alexson.RSquare) == alexson.RSquare {
				a.end = p.src[v.Span().End:p.tok.pos]
				break
			}
			commaEnd := p.tok.end
			if p.advance() == alexson.RSquare {
				if p.opt.NoTrailingCommas {
					p.failf("got %v, wanted a value", p.tok.kind)
				}
				a.TrailingComma = true
				a.end = p.src[commaEnd:p.tok.pos]
				break
			}
			elemStart = commaEnd
		}
	}
	a.tail = p.src[p.tok.end:p.tok.trailEnd]
	a.span.End = p.tok.trailEnd
	a.raw = p.src[a.span.Pos:a.span.End]
	return a
}
