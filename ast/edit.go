// Copyright (C) 2023 jnxyp. All Rights Reserved.

package ast

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/jnxyp/alexson"
)

var (
	// ErrKeyNotFound is reported when an object lookup or deletion names a
	// key that is not present.
	ErrKeyNotFound = errors.New("key not found")

	// ErrIndexOutOfRange is reported when an array index is out of bounds.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Set replaces the value of m with v and marks the path to the root
// dirty. The previous value is detached but remains readable.
func (m *Member) Set(v Value) {
	release(m.val)
	m.node.adopt(v)
	m.val = v
	m.markDirty()
}

// Set replaces the value of the last member of o with the given key, or
// appends a new member if the key is not present.
func (o *Object) Set(key string, v Value) {
	if m := o.Find(key); m != nil {
		m.Set(v)
		return
	}
	m := &Member{node: node{dirty: true}, key: NewString(key)}
	m.node.adopt(m.key)
	m.node.adopt(v)
	m.val = v
	o.node.adopt(m)
	o.members = append(o.members, m)
	o.markDirty()
}

// Delete removes the last member of o with the given key. If no such
// member exists, it reports an error wrapping ErrKeyNotFound.
func (o *Object) Delete(key string) error {
	i := o.IndexKey(func(k string) bool { return k == key })
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}
	release(o.members[i])
	o.members = slices.Delete(o.members, i, i+1)
	o.markDirty()
	return nil
}

// Set replaces the element of a at index i with v. If i is out of bounds,
// it reports an error wrapping ErrIndexOutOfRange.
func (a *Array) Set(i int, v Value) error {
	if i < 0 || i >= len(a.values) {
		return fmt.Errorf("%w: %d (n=%d)", ErrIndexOutOfRange, i, len(a.values))
	}
	release(a.values[i])
	a.node.adopt(v)
	a.values[i] = v
	a.markDirty()
	return nil
}

// Append adds vs to the end of a.
func (a *Array) Append(vs ...Value) {
	for _, v := range vs {
		a.node.adopt(v)
	}
	a.values = append(a.values, vs...)
	a.markDirty()
}

// Insert inserts v at index i, shifting later elements up. Inserting at
// i == Len appends. If i is out of bounds, it reports an error wrapping
// ErrIndexOutOfRange.
func (a *Array) Insert(i int, v Value) error {
	if i < 0 || i > len(a.values) {
		return fmt.Errorf("%w: %d (n=%d)", ErrIndexOutOfRange, i, len(a.values))
	}
	a.node.adopt(v)
	a.values = slices.Insert(a.values, i, v)
	a.markDirty()
	return nil
}

// Delete removes the element of a at index i. If i is out of bounds, it
// reports an error wrapping ErrIndexOutOfRange.
func (a *Array) Delete(i int) error {
	if i < 0 || i >= len(a.values) {
		return fmt.Errorf("%w: %d (n=%d)", ErrIndexOutOfRange, i, len(a.values))
	}
	release(a.values[i])
	a.values = slices.Delete(a.values, i, i+1)
	a.markDirty()
	return nil
}

// NewString constructs a string value. The text is quoted and minimally
// escaped.
func NewString(s string) *String {
	return &String{datum{node: node{dirty: true}, text: []byte(alexson.Quote(s))}}
}

// NewInt constructs an integer number value.
func NewInt(z int64) *Number {
	return &Number{datum: datum{node: node{dirty: true}, text: strconv.AppendInt(nil, z, 10)}, isInt: true}
}

// NewFloat constructs a floating-point number value.
func NewFloat(f float64) *Number {
	return &Number{datum: datum{node: node{dirty: true}, text: strconv.AppendFloat(nil, f, 'g', -1, 64)}}
}

// NewBool constructs a Boolean value.
func NewBool(v bool) *Bool {
	return &Bool{datum: datum{node: node{dirty: true}, text: []byte(strconv.FormatBool(v))}, value: v}
}

// NewNull constructs a null value.
func NewNull() *Null {
	return &Null{datum{node: node{dirty: true}, text: []byte("null")}}
}

// NewRaw constructs a bare word value. It panics if name is not a valid
// word, or is one of the reserved words true, false, and null.
func NewRaw(name string) *Raw {
	if !alexson.IsWord(name) {
		panic(fmt.Sprintf("ast: invalid word %q", name))
	}
	return &Raw{datum{node: node{dirty: true}, text: []byte(name)}}
}

// NewArray constructs an array with the given elements.
func NewArray(vs ...Value) *Array {
	a := &Array{node: node{dirty: true}}
	for _, v := range vs {
		a.node.adopt(v)
	}
	a.values = vs
	return a
}

// NewObject constructs an object with the given members, in order.
func NewObject(ms ...*Member) *Object {
	o := &Object{node: node{dirty: true}}
	for _, m := range ms {
		o.node.adopt(m)
	}
	o.members = ms
	return o
}

// Field constructs an object member with the given key, converting val
// via ToValue.
func Field(key string, val any) *Member {
	m := &Member{node: node{dirty: true}, key: NewString(key)}
	m.node.adopt(m.key)
	v := ToValue(val)
	m.node.adopt(v)
	m.val = v
	return m
}

// ToValue converts a Go value of a supported type to a Value. A Value is
// returned unmodified; nil maps to null. It panics for an unsupported
// type.
func ToValue(val any) Value {
	switch t := val.(type) {
	case nil:
		return NewNull()
	case Value:
		return t
	case string:
		return NewString(t)
	case bool:
		return NewBool(t)
	case int:
		return NewInt(int64(t))
	case int64:
		return NewInt(t)
	case float64:
		return NewFloat(t)
	default:
		panic(fmt.Sprintf("ast: unsupported value type %T", val))
	}
}

// NewDocument constructs a fresh document with the given root value,
// which may be nil for an empty document. A value parsed from another
// document keeps its original text and serializes verbatim.
func NewDocument(root Value) *Document {
	if root != nil {
		release(root)
	}
	return &Document{root: root}
}
