// Copyright (C) 2023 jnxyp. All Rights Reserved.

// Package alexson implements the lexical layer of a format-preserving
// parser for a relaxed JSON dialect: standard JSON extended with line
// comments, trailing commas, and bare word literals.
//
// # Scanning
//
// The Scanner type tokenizes an in-memory source buffer. Call Next to
// advance to the next token, and the accessor methods to inspect it:
//
//	s := alexson.NewScanner(src)
//	for s.Next() == nil {
//	   log.Printf("Next token: %v", s.Token())
//	}
//
// Next returns io.EOF once the input has been fully consumed. Any other
// error has concrete type *LexicalError and carries the byte offset of the
// offending input:
//
//	if s.Err() != io.EOF {
//	   log.Fatalf("Scanning failed: %v", s.Err())
//	}
//
// # Trivia
//
// Unlike an ordinary JSON tokenizer, the scanner accounts for every byte of
// the input: whitespace and comments are attached to tokens as leading and
// trailing trivia (see the Trivia type). A line comment that begins on the
// same line as a preceding token is that token's trailing trivia; all other
// trivia leads the token that follows it. The final EndOfInput token claims
// whatever trivia remains at the end of the file. Concatenating the full
// spans of all tokens in order reproduces the input byte-for-byte, which is
// what allows the syntax tree built on top of this scanner (see the ast
// subpackage) to serialize unmodified source text exactly as written.
//
// # Grammar configuration
//
// The set of comment markers and the acceptance of bare words are
// configurable on the scanner via CommentMarkers and AllowBareWords. The
// defaults accept "#" and "//" comments and bare words, matching the
// dialect as found in game and application config files.
package alexson
