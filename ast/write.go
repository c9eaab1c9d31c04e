// Copyright (C) 2023 jnxyp. All Rights Reserved.

package ast

import (
	"bytes"
	"fmt"
	"io"
)

// Pack serializes the document. Regions of the tree that have not been
// edited are copied byte-for-byte from the original source, comments and
// layout included; edited regions are rendered in a canonical compact
// style.
func (d *Document) Pack() []byte {
	var buf bytes.Buffer
	buf.Grow(len(d.src))
	w := packer{buf: &buf}
	if d.root != nil {
		w.value(d.root)
	}
	buf.Write(d.end)
	return buf.Bytes()
}

// WriteTo writes the packed document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(d.Pack())
	return int64(n), err
}

func (d *Document) String() string { return string(d.Pack()) }

type packer struct {
	buf *bytes.Buffer
}

// value writes v. A clean parsed value is copied verbatim from its
// retained source text, regardless of which document it now belongs to;
// otherwise the value is rendered, recurring per child so that clean
// subtrees of an edited container still copy verbatim.
func (w packer) value(v Value) {
	if v == nil {
		panic("ast: nil value in tree")
	}
	n := v.base()
	if !n.dirty && n.raw != nil {
		w.buf.Write(n.raw)
		return
	}
	switch t := v.(type) {
	case *Object:
		w.object(t)
	case *Array:
		w.array(t)
	case *Member:
		w.member(t)
	case *String:
		w.buf.Write(t.text)
	case *Number:
		w.buf.Write(t.text)
	case *Bool:
		w.buf.Write(t.text)
	case *Null:
		w.buf.Write(t.text)
	case *Raw:
		w.buf.Write(t.text)
	default:
		panic(fmt.Sprintf("ast: unknown value type %T", v))
	}
}

// object writes an edited object. Original members carry their own
// surrounding layout in their spans; a fresh member gets the canonical
// ", " separator.
func (w packer) object(o *Object) {
	w.buf.Write(o.lead)
	w.buf.WriteByte('{')
	for i, m := range o.members {
		if i > 0 {
			w.buf.WriteByte(',')
			if !m.span.IsValid() {
				w.buf.WriteByte(' ')
			}
		}
		w.value(m)
	}
	if o.TrailingComma && len(o.members) != 0 {
		w.buf.WriteByte(',')
	}
	w.buf.Write(o.end)
	w.buf.WriteByte('}')
	w.buf.Write(o.tail)
}

func (w packer) member(m *Member) {
	w.value(m.key)
	if m.sep != nil {
		w.buf.Write(m.sep)
	} else {
		w.buf.WriteString(": ")
	}
	w.value(m.val)
}

func (w packer) array(a *Array) {
	w.buf.Write(a.lead)
	w.buf.WriteByte('[')
	for i, v := range a.values {
		if i > 0 {
			w.buf.WriteByte(',')
			if !v.base().span.IsValid() {
				w.buf.WriteByte(' ')
			}
		}
		w.value(v)
	}
	if a.TrailingComma && len(a.values) != 0 {
		w.buf.WriteByte(',')
	}
	w.buf.Write(a.end)
	w.buf.WriteByte(']')
	w.buf.Write(a.tail)
}
