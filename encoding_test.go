// Copyright (C) 2023 jnxyp. All Rights Reserved.

package alexson_test

import (
	"testing"

	"github.com/jnxyp/alexson"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"", `""`},
		{"a b c", `"a b c"`},
		{`a"b`, `"a\"b"`},
		{`back\slash`, `"back\\slash"`},
		{"a\nb\tc", `"a\nb\tc"`},
		{"\x01", `"\u0001"`},
		{"bell\x07", `"bell\u0007"`},
		{"unquoted π must survive", `"unquoted π must survive"`},
	}
	for _, test := range tests {
		if got := alexson.Quote(test.input); got != test.want {
			t.Errorf("Quote(%q): got %#q, want %#q", test.input, got, test.want)
		}
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{`""`, ""},
		{`"a b c"`, "a b c"},
		{`"a\"b"`, `a"b`},
		{`"a\/b"`, "a/b"},
		{`"a\nb\tc"`, "a\nb\tc"},
		{`"Aé"`, "Aé"},
		{`"π"`, "π"},
	}
	for _, test := range tests {
		got, err := alexson.Unquote(test.input)
		if err != nil {
			t.Errorf("Unquote(%#q): unexpected error: %v", test.input, err)
		} else if string(got) != test.want {
			t.Errorf("Unquote(%#q): got %q, want %q", test.input, got, test.want)
		}
	}

	t.Run("Errors", func(t *testing.T) {
		bad := []string{
			"", `"`, "no quotes", `"half`, `half"`,
			`"\"`,     // the escape eats the closing quote
			`"\u00"`,  // incomplete Unicode escape
			`"tail\"`, // incomplete escape at the end
		}
		for _, input := range bad {
			if got, err := alexson.Unquote(input); err == nil {
				t.Errorf("Unquote(%#q): got %q, wanted an error", input, got)
			}
		}
	})
}
