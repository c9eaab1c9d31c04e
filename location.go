// Copyright (C) 2023 jnxyp. All Rights Reserved.

package alexson

import "fmt"

// A Span describes a contiguous range of source text, as 0-based byte
// offsets into the original input buffer.
type Span struct {
	Pos int // the start offset, 0-based
	End int // the end offset, 0-based (noninclusive)
}

// IsValid reports whether s describes a real (non-empty) source range.
// Nodes constructed by the caller rather than the parser have no span and
// report a zero Span.
func (s Span) IsValid() bool { return s.End > s.Pos }

// Len reports the length of the span in bytes.
func (s Span) Len() int { return s.End - s.Pos }

// A LineCol describes the line number and column offset of a location in
// source text.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // byte offset of column in line, 0-based
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// A Location describes the complete location of a range of source text,
// including line and column offsets.
type Location struct {
	Span
	First, Last LineCol
}
