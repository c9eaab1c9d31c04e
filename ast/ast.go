// Copyright (C) 2023 jnxyp. All Rights Reserved.

// Package ast defines a format-preserving syntax tree for the alexson
// dialect, a parser that constructs trees from source text, and a
// serializer that reproduces unmodified source byte-for-byte.
package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jnxyp/alexson"
)

// A Value is a node of an alexson syntax tree. The concrete type of a
// Value is one of *Object, *Array, *Member, *String, *Number, *Bool,
// *Null, or *Raw; the set is closed, and the serializer matches it
// exhaustively.
type Value interface {
	// Span returns the original source span of the value, including its
	// own leading and trailing trivia. A value built by the caller rather
	// than the parser has no span and returns a zero Span.
	Span() alexson.Span

	// Dirty reports whether the value, or any value beneath it, has been
	// replaced since parsing. A clean value with a span serializes as an
	// exact copy of its original source text.
	Dirty() bool

	// JSON returns the value rendered as canonical plain JSON, with all
	// comments and layout dropped. Bare words are rendered as quoted
	// strings.
	JSON() string

	base() *node
}

// node carries the per-node state shared by every tree value: the original
// source span, the dirty flag, and a pointer to the enclosing node used
// for dirty propagation. A parsed node also retains raw, its full-span
// slice of the source text, so a clean subtree serializes verbatim even
// after it has been moved into another document.
type node struct {
	span   alexson.Span
	raw    []byte
	parent *node
	dirty  bool
}

// Span satisfies part of the Value interface.
func (n *node) Span() alexson.Span { return n.span }

// Dirty satisfies part of the Value interface.
func (n *node) Dirty() bool { return n.dirty }

func (n *node) base() *node { return n }

// markDirty marks n and every ancestor up to the root dirty. The walk
// stops at the first node already marked, since a dirty node always has
// dirty ancestors.
func (n *node) markDirty() {
	for p := n; p != nil && !p.dirty; p = p.parent {
		p.dirty = true
	}
}

// adopt attaches child to n for dirty propagation.
func (n *node) adopt(child Value) {
	if child == nil {
		panic("ast: nil value attached to tree")
	}
	child.base().parent = n
}

// release detaches child from the tree. The detached subtree remains
// readable by any caller still holding a reference to it.
func release(child Value) {
	if child != nil {
		child.base().parent = nil
	}
}

// A datum is the common base of the leaf values. Its text is the raw
// source slice of the token for parsed values, or the canonical rendering
// for fresh ones.
type datum struct {
	node
	text []byte
}

// Text returns the raw text of the value as written, e.g. the quoted and
// escaped form of a string literal.
func (d *datum) Text() string { return string(d.text) }

// A String is a string value. Its raw text retains the original quoting
// and escaping.
type String struct{ datum }

// Unescape returns the logical string value, with quotation marks removed
// and escape sequences decoded. This projection is used for reads only;
// serialization always uses the raw text.
func (s *String) Unescape() string {
	dec, err := alexson.Unquote(string(s.text))
	if err != nil {
		panic(fmt.Sprintf("ast: invalid string literal %q: %v", s.text, err))
	}
	return string(dec)
}

func (s *String) JSON() string   { return string(s.text) }
func (s *String) String() string { return string(s.text) }

// A Number is a numeric value. The raw text is preserved verbatim, so
// formatting quirks such as a leading "+" or exponent case round-trip.
type Number struct {
	datum
	isInt bool
}

// IsInt reports whether the number was written with no fraction or
// exponent.
func (n *Number) IsInt() bool { return n.isInt }

// Int64 returns the value as an int64. It panics if the number has a
// fraction or exponent, or does not fit.
func (n *Number) Int64() int64 {
	v, err := strconv.ParseInt(string(n.text), 10, 64)
	if err != nil {
		panic(fmt.Sprintf("ast: invalid integer %q: %v", n.text, err))
	}
	return v
}

// Float64 returns the value as a float64.
func (n *Number) Float64() float64 {
	v, err := strconv.ParseFloat(string(n.text), 64)
	if err != nil {
		panic(fmt.Sprintf("ast: invalid number %q: %v", n.text, err))
	}
	return v
}

func (n *Number) JSON() string {
	if n.text[0] == '+' {
		return string(n.text[1:]) // a leading "+" is not standard JSON
	}
	return string(n.text)
}

func (n *Number) String() string { return string(n.text) }

// A Bool is a Boolean constant, true or false.
type Bool struct {
	datum
	value bool
}

// Value reports the logical value of the constant.
func (b *Bool) Value() bool { return b.value }

func (b *Bool) JSON() string   { return string(b.text) }
func (b *Bool) String() string { return string(b.text) }

// Null represents the null constant.
type Null struct{ datum }

func (Null) JSON() string   { return "null" }
func (Null) String() string { return "null" }

// A Raw is a bare word literal, an unquoted enum-like token such as
// STATIONS that the extended grammar accepts as a value.
type Raw struct{ datum }

// Name returns the word as written.
func (r *Raw) Name() string { return string(r.text) }

func (r *Raw) JSON() string   { return alexson.Quote(string(r.text)) }
func (r *Raw) String() string { return string(r.text) }

// A Member is a single key-value pair belonging to an Object. Its span
// covers the key through the value, but not the separating comma.
type Member struct {
	node
	key *String
	sep []byte // source between key and value: the colon and its spacing
	val Value
}

// Key returns the logical (unescaped) key of the member.
func (m *Member) Key() string { return m.key.Unescape() }

// KeyText returns the key as written, with quotes and original escaping.
func (m *Member) KeyText() string { return string(m.key.text) }

// Value returns the value of the member.
func (m *Member) Value() Value { return m.val }

func (m *Member) JSON() string   { return string(m.key.text) + ":" + m.val.JSON() }
func (m *Member) String() string { return fmt.Sprintf("Member(key=%q)", m.Key()) }

// An Object is an ordered collection of key-value members. Duplicate keys
// are retained as written; lookup resolves to the last match.
type Object struct {
	node
	members []*Member
	lead    []byte // source before the opening brace
	end     []byte // source between the last member (or comma) and the closing brace
	tail    []byte // source after the closing brace on the same line

	// TrailingComma records whether the source had a comma after the last
	// member. For a freshly built object it is the serialization default,
	// false.
	TrailingComma bool
}

// Len reports the number of members in the object.
func (o *Object) Len() int { return len(o.members) }

// Members returns the members of o in order. The returned slice is shared
// with the object and must not be modified; use Set and Delete to edit.
func (o *Object) Members() []*Member { return o.members }

// Find returns the last member of o with the given key, or nil. Searching
// from the end gives last-write-wins semantics when the source contains
// duplicate keys.
func (o *Object) Find(key string) *Member {
	if i := o.IndexKey(func(k string) bool { return k == key }); i >= 0 {
		return o.members[i]
	}
	return nil
}

// IndexKey returns the index of the last member of o for whose key f
// reports true, or -1.
func (o *Object) IndexKey(f func(key string) bool) int {
	for i := len(o.members) - 1; i >= 0; i-- {
		if f(o.members[i].Key()) {
			return i
		}
	}
	return -1
}

// Get returns the value of the last member of o with the given key. If no
// such member exists, it reports an error wrapping ErrKeyNotFound.
func (o *Object) Get(key string) (Value, error) {
	m := o.Find(key)
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}
	return m.val, nil
}

func (o *Object) JSON() string {
	if len(o.members) == 0 {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteByte('{')
	for i, m := range o.members {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(m.JSON())
	}
	sb.WriteByte('}')
	return sb.String()
}

func (o *Object) String() string { return fmt.Sprintf("Object(len=%d)", len(o.members)) }

// An Array is an ordered sequence of values.
type Array struct {
	node
	values []Value
	lead   []byte
	end    []byte
	tail   []byte

	// TrailingComma records whether the source had a comma after the last
	// element; false for freshly built arrays.
	TrailingComma bool
}

// Len reports the number of elements in the array.
func (a *Array) Len() int { return len(a.values) }

// Values returns the elements of a in order. The returned slice is shared
// with the array and must not be modified; use the mutation methods to
// edit.
func (a *Array) Values() []Value { return a.values }

// At returns the element at index i. If i is out of bounds, it reports an
// error wrapping ErrIndexOutOfRange.
func (a *Array) At(i int) (Value, error) {
	if i < 0 || i >= len(a.values) {
		return nil, fmt.Errorf("%w: %d (n=%d)", ErrIndexOutOfRange, i, len(a.values))
	}
	return a.values[i], nil
}

func (a *Array) JSON() string {
	if len(a.values) == 0 {
		return "[]"
	}
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range a.values {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(v.JSON())
	}
	sb.WriteByte(']')
	return sb.String()
}

func (a *Array) String() string { return fmt.Sprintf("Array(len=%d)", len(a.values)) }

// A Document is a parsed source file: at most one top-level value
// surrounded by trivia. The document owns the source buffer; unmodified
// nodes borrow their text from it.
type Document struct {
	src  []byte
	root Value  // nil when the document contains only trivia
	end  []byte // source after the root value, or the whole source if root is nil
}

// Root returns the top-level value of the document, or nil if the
// document contains only whitespace and comments.
func (d *Document) Root() Value { return d.root }

// JSON returns the root value rendered as canonical plain JSON, or "null"
// for a document with no value.
func (d *Document) JSON() string {
	if d.root == nil {
		return "null"
	}
	return d.root.JSON()
}
