// Copyright (C) 2023 jnxyp. All Rights Reserved.

package alexson_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jnxyp/alexson"
)

// scanAll collects the token kinds of input, excluding EndOfInput.
func scanAll(t *testing.T, s *alexson.Scanner) []alexson.Token {
	t.Helper()
	var got []alexson.Token
	for {
		if err := s.Next(); err == io.EOF {
			return got
		} else if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if s.Token() != alexson.EndOfInput {
			got = append(got, s.Token())
		}
	}
}

func TestScanner(t *testing.T) {
	tests := []struct {
		input string
		want  []alexson.Token
	}{
		// Empty inputs
		{"", nil},
		{"  ", nil},
		{"\n\n  \n", nil},
		{"\t  \r\n \t  \r\n", nil},

		// Constants
		{"true false null", []alexson.Token{alexson.True, alexson.False, alexson.Null}},

		// Punctuation
		{"{ [ ] } , :", []alexson.Token{
			alexson.LBrace, alexson.LSquare, alexson.RSquare, alexson.RBrace, alexson.Comma, alexson.Colon,
		}},

		// Strings
		{`"" "a b c" "a\nb\tc"`, []alexson.Token{alexson.String, alexson.String, alexson.String}},
		{`"\"\\\/\b\f\n\r\t"`, []alexson.Token{alexson.String}},
		{`"\u0000\u01fc\uAA9c"`, []alexson.Token{alexson.String}},

		// Numbers
		{`0 -1 +5 02 5139 2.3 2.00 5e+9 3.6E+4 -0.001E-100`, []alexson.Token{
			alexson.Integer, alexson.Integer, alexson.Integer, alexson.Integer, alexson.Integer,
			alexson.Number, alexson.Number, alexson.Number, alexson.Number, alexson.Number,
		}},

		// Bare words
		{"STATIONS nav_buoy x1 _tag", []alexson.Token{
			alexson.Word, alexson.Word, alexson.Word, alexson.Word,
		}},

		// Comments with the default markers
		{"1 # one\n2 // two\n3", []alexson.Token{
			alexson.Integer, alexson.Integer, alexson.Integer,
		}},
		{"# a file of nothing\n// but comments\n", nil},

		// Mixed types
		{`{true,"false":-15 null[]}`, []alexson.Token{
			alexson.LBrace, alexson.True, alexson.Comma, alexson.String, alexson.Colon,
			alexson.Integer, alexson.Null, alexson.LSquare, alexson.RSquare, alexson.RBrace,
		}},
		{`{"a": true, "b":[null, 1, 0.5,]}`, []alexson.Token{
			alexson.LBrace,
			alexson.String, alexson.Colon, alexson.True, alexson.Comma,
			alexson.String, alexson.Colon,
			alexson.LSquare,
			alexson.Null, alexson.Comma, alexson.Integer, alexson.Comma, alexson.Number, alexson.Comma,
			alexson.RSquare,
			alexson.RBrace,
		}},
	}

	for _, test := range tests {
		got := scanAll(t, alexson.NewScanner([]byte(test.input)))
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", test.input, diff)
		}
	}
}

// triviaLabels renders trivia fragments as kind:text strings for
// comparison.
func triviaLabels(ts []alexson.Trivia) []string {
	var out []string
	for _, tr := range ts {
		out = append(out, tr.Kind.String()+":"+string(tr.Text))
	}
	return out
}

func TestScanner_trivia(t *testing.T) {
	const input = "{ # open\n  \"a\": 1, // one\n\n  \"b\": STATIONS\n}"

	type result struct {
		Kind        alexson.Token
		Text        string
		Lead, Trail []string
	}
	want := []result{
		{alexson.LBrace, "{", nil, []string{"whitespace: ", "line comment:# open"}},
		{alexson.String, `"a"`, []string{"whitespace:\n", "whitespace:  "}, nil},
		{alexson.Colon, ":", nil, []string{"whitespace: "}},
		{alexson.Integer, "1", nil, nil},
		{alexson.Comma, ",", nil, []string{"whitespace: ", "line comment:// one"}},
		{alexson.String, `"b"`, []string{"whitespace:\n", "blank line:\n", "whitespace:  "}, nil},
		{alexson.Colon, ":", nil, []string{"whitespace: "}},
		{alexson.Word, "STATIONS", nil, nil},
		{alexson.RBrace, "}", []string{"whitespace:\n"}, nil},
		{alexson.EndOfInput, "", nil, nil},
	}

	var got []result
	s := alexson.NewScanner([]byte(input))
	for {
		if err := s.Next(); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		got = append(got, result{
			Kind:  s.Token(),
			Text:  string(s.Text()),
			Lead:  triviaLabels(s.Leading()),
			Trail: triviaLabels(s.Trailing()),
		})
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Tokens: (-want, +got)\n%s", diff)
	}
}

func TestScanner_roundTrip(t *testing.T) {
	tests := []string{
		"",
		"   \t ",
		"\n\n  \n",
		"# only a comment",
		"// comment with no newline at the end of the file",
		"null",
		"  {  }  ",
		"[1, 2, 3,] // done\n",
		"{ # open\n  \"a\": 1, // one\n\n  \"b\": STATIONS\n}",
		"{\r\n\t\"k\": \"v\",\r\n}\r\n",
		"{\"deep\": [{\"er\": [[], {}]}]} # tail\n\n",
	}
	for _, input := range tests {
		s := alexson.NewScanner([]byte(input))
		var sb strings.Builder
		for {
			if err := s.Next(); err == io.EOF {
				break
			} else if err != nil {
				t.Fatalf("Input: %#q: Next failed: %v", input, err)
			}
			fs := s.FullSpan()
			sb.WriteString(input[fs.Pos:fs.End])
		}
		if got := sb.String(); got != input {
			t.Errorf("Full spans of %#q do not cover the input: got %#q", input, got)
		}
	}
}

// scanToError scans input until the first error and reports it.
func scanToError(t *testing.T, s *alexson.Scanner) error {
	t.Helper()
	for {
		err := s.Next()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
	}
}

func TestScanner_errors(t *testing.T) {
	tests := []struct {
		input string
		want  string // message substring
	}{
		{`"abc`, "unterminated string"},
		{"\"a\nb\"", "unescaped control"},
		{`"\q"`, "after escape"},
		{`"\u12g4"`, "invalid Unicode escape"},
		{"1.", "no digits after decimal point"},
		{"1e+", "missing exponent digits"},
		{"+", "want digit in number"},
		{"@", `unexpected '@'`},
		{"\"ok\" \xc3(", "invalid UTF-8 encoding"},
		{"# bad comment \xff\n1", "invalid UTF-8 encoding"},
	}
	for _, test := range tests {
		err := scanToError(t, alexson.NewScanner([]byte(test.input)))
		if err == nil {
			t.Errorf("Input: %#q: got no error, want %q", test.input, test.want)
			continue
		}
		var lerr *alexson.LexicalError
		if !errors.As(err, &lerr) {
			t.Errorf("Input: %#q: got error %v, want a *LexicalError", test.input, err)
		} else if !strings.Contains(lerr.Message, test.want) {
			t.Errorf("Input: %#q: got message %q, want %q", test.input, lerr.Message, test.want)
		}
	}
}

func TestScanner_options(t *testing.T) {
	t.Run("CustomMarker", func(t *testing.T) {
		s := alexson.NewScanner([]byte("1 ; one\n2"))
		s.CommentMarkers(";")
		got := scanAll(t, s)
		if diff := cmp.Diff([]alexson.Token{alexson.Integer, alexson.Integer}, got); diff != "" {
			t.Errorf("Tokens: (-want, +got)\n%s", diff)
		}
	})
	t.Run("CustomMarkerExcludesDefault", func(t *testing.T) {
		s := alexson.NewScanner([]byte("1 # one\n2"))
		s.CommentMarkers(";")
		if err := scanToError(t, s); err == nil {
			t.Error("got no error, wanted an unexpected-rune error")
		}
	})
	t.Run("NoComments", func(t *testing.T) {
		s := alexson.NewScanner([]byte("// nope"))
		s.CommentMarkers()
		if err := scanToError(t, s); err == nil {
			t.Error("got no error, wanted an unexpected-rune error")
		}
	})
	t.Run("NoBareWords", func(t *testing.T) {
		s := alexson.NewScanner([]byte("STATIONS"))
		s.AllowBareWords(false)
		err := scanToError(t, s)
		if err == nil || !strings.Contains(err.Error(), "unknown word") {
			t.Errorf("got %v, wanted an unknown-word error", err)
		}
	})
	t.Run("Keywords", func(t *testing.T) {
		// The constants are not bare words, and scan even when words are off.
		s := alexson.NewScanner([]byte("true false null"))
		s.AllowBareWords(false)
		got := scanAll(t, s)
		if diff := cmp.Diff([]alexson.Token{alexson.True, alexson.False, alexson.Null}, got); diff != "" {
			t.Errorf("Tokens: (-want, +got)\n%s", diff)
		}
	})
}

func TestScanner_location(t *testing.T) {
	s := alexson.NewScanner([]byte("{}\n\"abc\""))
	var loc alexson.Location
	for {
		if err := s.Next(); err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if s.Token() == alexson.String {
			loc = s.Location()
			break
		}
	}
	want := alexson.Location{
		Span:  alexson.Span{Pos: 3, End: 8},
		First: alexson.LineCol{Line: 2, Column: 0},
		Last:  alexson.LineCol{Line: 2, Column: 5},
	}
	if diff := cmp.Diff(want, loc); diff != "" {
		t.Errorf("Location: (-want, +got)\n%s", diff)
	}
	if got, want := loc.First.String(), "2:0"; got != want {
		t.Errorf("First: got %q, want %q", got, want)
	}
}

func TestIsWord(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"STATIONS", true},
		{"nav_buoy", true},
		{"_x1", true},
		{"Null", true},
		{"", false},
		{"1a", false},
		{"a-b", false},
		{"has space", false},
		{"true", false},
		{"false", false},
		{"null", false},
	}
	for _, test := range tests {
		if got := alexson.IsWord(test.input); got != test.want {
			t.Errorf("IsWord(%q): got %v, want %v", test.input, got, test.want)
		}
	}
}
