// Copyright (C) 2026 Ivo Hoverden. All Rights Reserved.

package jot_test

import (
	"errors"
	"io"
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/creachadair/mds/mtest"
	"github.com/google/go-cmp/cmp"

	"github.com/hoverden/jot"
)

// scanAll collects the tokens of input until end of input or a source
// failure. Invalid tokens are collected like any other.
func scanAll(t *testing.T, input string) []jot.Token {
	t.Helper()
	var got []jot.Token
	s := jot.NewScanner(strings.NewReader(input))
	for {
		if err := s.Next(); err == io.EOF {
			return got
		} else if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		got = append(got, s.Token())
	}
}

func TestScanner(t *testing.T) {
	tests := []struct {
		input string
		want  []jot.Token
	}{
		// Empty inputs
		{"", nil},
		{"  ", nil},
		{"\n\n  \n", nil},
		{"\t  \r\n \t  \r\n", nil},

		// Constants
		{"true false null", []jot.Token{jot.True, jot.False, jot.Null}},

		// Punctuation
		{"{ [ ] } , :", []jot.Token{
			jot.LBrace, jot.LSquare, jot.RSquare, jot.RBrace, jot.Comma, jot.Colon,
		}},

		// Strings
		{`"" "a b c" "a\nb\tc"`, []jot.Token{jot.String, jot.String, jot.String}},
		{`"\"\\\/\b\f\n\r\t"`, []jot.Token{jot.String}},

		// Numbers
		{`0 -0 -1 5139 2.3 5e+9 3.6E+4 -0.001E-100`, []jot.Token{
			jot.Integer, jot.Integer, jot.Integer, jot.Integer,
			jot.Number, jot.Number, jot.Number, jot.Number,
		}},

		// Mixed types
		{`{true,"false":-15 null[]}`, []jot.Token{
			jot.LBrace, jot.True, jot.Comma, jot.String, jot.Colon,
			jot.Integer, jot.Null, jot.LSquare, jot.RSquare, jot.RBrace,
		}},
		{`{"a": true, "b":[null, 1, 0.5]}`, []jot.Token{
			jot.LBrace,
			jot.String, jot.Colon, jot.True, jot.Comma,
			jot.String, jot.Colon,
			jot.LSquare,
			jot.Null, jot.Comma, jot.Integer, jot.Comma, jot.Number,
			jot.RSquare,
			jot.RBrace,
		}},
		{`"a",1,true
       false["b"]
       `, []jot.Token{
			jot.String, jot.Comma, jot.Integer, jot.Comma, jot.True,
			jot.False, jot.LSquare, jot.String, jot.RSquare,
		}},

		// Well-formed multi-byte characters pass through inside strings.
		{"\"aé€\U0001f409\"", []jot.Token{jot.String}},
	}

	for _, test := range tests {
		got := scanAll(t, test.input)
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestScannerInvalid(t *testing.T) {
	// Each input begins with a malformed token. The retained raw text is
	// what a diagnostic would quote, so its exact value matters.
	tests := []struct {
		input string
		text  string
	}{
		{`01`, "0"},              // leading zero followed by digit
		{`-01`, "-0"},            // same, with sign
		{`-`, "-"},               // sign alone
		{`-x`, "-"},              // sign with no digit
		{`1.`, "1."},             // dot with no following digit
		{`1e`, "1e"},             // exponent with no digits
		{`1e+`, "1e+"},           // signed exponent with no digits
		{`1e+x`, "1e+"},          // signed exponent, non-digit follows
		{`"\q"`, `"\`},           // unrecognized escape
		{`"\u00x9"`, `"\u00`},    // non-hex digit in Unicode escape
		{`"abc`, `"abc`},         // unterminated string
		{"\"a\tb\"", `"a`},       // raw control character in string
		{`truth`, "truth"},       // unrecognized identifier
		{`nulL`, "nulL"},         // case matters
		{`@`, "@"},               // stray punctuation
		{"\"a\xc3\x28b\"", `"a`}, // malformed encoding inside a string
	}
	for _, test := range tests {
		s := jot.NewScanner(strings.NewReader(test.input))
		if err := s.Next(); err != nil {
			t.Errorf("Input %#q: Next failed: %v", test.input, err)
			continue
		}
		if s.Token() != jot.Invalid {
			t.Errorf("Input %#q: token is %v, want %v", test.input, s.Token(), jot.Invalid)
		}
		if got := string(s.Text()); got != test.text {
			t.Errorf("Input %#q: text is %#q, want %#q", test.input, got, test.text)
		}
	}
}

func TestScannerEncodingReject(t *testing.T) {
	// A malformed sequence inside a string: lead byte 0xE2 followed by a
	// non-continuation byte. The interrupted token comes out Invalid, and the
	// rejected bytes must not be replayed as characters of later tokens.
	s := jot.NewScanner(strings.NewReader("\"\xe2\x22\xa1ok\""))
	if err := s.Next(); err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if s.Token() != jot.Invalid {
		t.Errorf("token is %v, want %v", s.Token(), jot.Invalid)
	}
	if got, want := string(s.Text()), `"`; got != want {
		t.Errorf("text is %#q, want %#q", got, want)
	}

	for i := 0; i < 3; i++ {
		err := s.Next()
		if err == nil || err == io.EOF {
			t.Fatalf("Next: got token %v, err %v; want an encoding error", s.Token(), err)
		}
		if s.Token() != jot.Invalid {
			t.Errorf("token is %v, want %v", s.Token(), jot.Invalid)
		}
	}
}

func TestScannerValues(t *testing.T) {
	mustScan := func(t *testing.T, input string, want jot.Token) *jot.Scanner {
		t.Helper()
		s := jot.NewScanner(strings.NewReader(input))
		if err := s.Next(); err != nil {
			t.Fatalf("Next failed: %v", err)
		} else if s.Token() != want {
			t.Fatalf("Next token: got %v, want %v", s.Token(), want)
		}
		return s
	}

	t.Run("Integer", func(t *testing.T) {
		for input, want := range map[string]int64{
			"0": 0, "-0": 0, "-15": -15, "5139": 5139,
			"9223372036854775807": math.MaxInt64,
		} {
			s := mustScan(t, input, jot.Integer)
			if got := s.Int64(); got != want {
				t.Errorf("Int64(%q): got %d, want %d", input, got, want)
			}
		}
	})

	t.Run("IntegerOverflow", func(t *testing.T) {
		// A digit run beyond the int64 range still scans as an integer;
		// the converted value saturates at the boundary.
		s := mustScan(t, "9223372036854775808", jot.Integer)
		if got := s.Int64(); got != math.MaxInt64 {
			t.Errorf("Int64: got %d, want %d", got, int64(math.MaxInt64))
		}
		s = mustScan(t, "-9223372036854775809", jot.Integer)
		if got := s.Int64(); got != math.MinInt64 {
			t.Errorf("Int64: got %d, want %d", got, int64(math.MinInt64))
		}
	})

	t.Run("Number", func(t *testing.T) {
		for input, want := range map[string]float64{
			"2.3": 2.3, "5e+9": 5e+9, "1.5e10": 1.5e10, "-0.001E-100": -0.001e-100,
		} {
			s := mustScan(t, input, jot.Number)
			if got := s.Float64(); got != want {
				t.Errorf("Float64(%q): got %g, want %g", input, got, want)
			}
		}
	})

	t.Run("String", func(t *testing.T) {
		for input, want := range map[string]string{
			`""`:                 "",
			`"a b c"`:            "a b c",
			`"a\tb\nc"`:          "a\tb\nc",
			`"\"\\\/\b\f\n\r\t"`: "\"\\/\b\f\n\r\t",
			"\"café\"":           "café",
		} {
			s := mustScan(t, input, jot.String)
			if got := string(s.Unescape()); got != want {
				t.Errorf("Unescape(%#q): got %#q, want %#q", input, got, want)
			}
			if got := string(s.Text()); got != input {
				t.Errorf("Text(%#q): got %#q", input, got)
			}
		}
	})
}

func TestScannerUnicodeEscapeGap(t *testing.T) {
	// \uXXXX escapes are accepted by the raw scan but fail decoding, so the
	// token comes out Invalid with the full escape in its text.
	s := jot.NewScanner(strings.NewReader(`"a\u0041b"`))
	if err := s.Next(); err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if s.Token() != jot.Invalid {
		t.Errorf("token is %v, want %v", s.Token(), jot.Invalid)
	}
	if got, want := string(s.Text()), `"a\u0041b"`; got != want {
		t.Errorf("text is %#q, want %#q", got, want)
	}
}

func TestScannerLine(t *testing.T) {
	type tokLine struct {
		Tok  jot.Token
		Line int
	}
	input := "{\n  \"a\": 1,\n  \"b\": [true,\nfalse]\n}"
	want := []tokLine{
		{jot.LBrace, 1},
		{jot.String, 2}, {jot.Colon, 2}, {jot.Integer, 2}, {jot.Comma, 2},
		{jot.String, 3}, {jot.Colon, 3}, {jot.LSquare, 3}, {jot.True, 3}, {jot.Comma, 3},
		{jot.False, 4}, {jot.RSquare, 4},
		{jot.RBrace, 5},
	}

	var got []tokLine
	s := jot.NewScanner(strings.NewReader(input))
	for s.Next() == nil {
		got = append(got, tokLine{s.Token(), s.Line()})
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", input, diff)
	}
}

func TestScannerMisuse(t *testing.T) {
	s := jot.NewScanner(strings.NewReader(`15 "ok"`))
	if err := s.Next(); err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	mtest.MustPanic(t, func() { s.Unescape() })
	mtest.MustPanic(t, func() { s.Float64() })
	if got := s.Int64(); got != 15 {
		t.Errorf("Int64: got %d, want 15", got)
	}

	if err := s.Next(); err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	mtest.MustPanic(t, func() { s.Int64() })
	if got := string(s.Unescape()); got != "ok" {
		t.Errorf("Unescape: got %#q, want %#q", got, "ok")
	}
}

func TestErrorf(t *testing.T) {
	t.Run("NearText", func(t *testing.T) {
		s := jot.NewScanner(strings.NewReader("\n\n 01"))
		if err := s.Next(); err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		e := s.Errorf("invalid token")
		if e.Line != 3 {
			t.Errorf("Line: got %d, want 3", e.Line)
		}
		if want := "line 3: invalid token near '0'"; e.Error() != want {
			t.Errorf("Error: got %q, want %q", e.Error(), want)
		}
	})

	t.Run("NearEOF", func(t *testing.T) {
		s := jot.NewScanner(strings.NewReader("  "))
		if err := s.Next(); err != io.EOF {
			t.Fatalf("Next: got %v, want io.EOF", err)
		}
		e := s.Errorf("'[' or '{' expected")
		if want := "line 1: '[' or '{' expected near end of file"; e.Error() != want {
			t.Errorf("Error: got %q, want %q", e.Error(), want)
		}
	})

	t.Run("Truncated", func(t *testing.T) {
		// The cap lands in the middle of the trailing two-byte character;
		// the cut must back up rather than keep half of it.
		e := jot.Errorf("%s", strings.Repeat("x", 159)+"é")
		if !utf8.ValidString(e.Error()) {
			t.Errorf("Error: %#q is not valid UTF-8", e.Error())
		}
		if want := strings.Repeat("x", 159); e.Error() != want {
			t.Errorf("Error: got %q, want %q", e.Error(), want)
		}
	})

	t.Run("NoPosition", func(t *testing.T) {
		e := jot.Errorf("unable to open %s: %v", "nope.json", errors.New("boom"))
		if e.Line != jot.NoPosition {
			t.Errorf("Line: got %d, want NoPosition", e.Line)
		}
		if want := "unable to open nope.json: boom"; e.Error() != want {
			t.Errorf("Error: got %q, want %q", e.Error(), want)
		}
	})
}

func TestQuote(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", `""`},
		{" ", `" "`},
		{"a\t\nb", `"a\t\nb"`},
		{"\x00\x01\x02", "\"\\u0000\\u0001\\u0002\""},
		{`a "b c\" d"`, `"a \"b c\\\" d\""`},
		{"This is the end\v", "\"This is the end\\u000b\""},
		{"<\x1e>", "\"<\\u001e>\""},
		{"café \U0001f409", "\"café \U0001f409\""},
	}
	for _, test := range tests {
		got := jot.Quote(test.input)
		if got != test.want {
			t.Errorf("Input: %#q\nGot:  %#q\nWant: %#q", test.input, got, test.want)
		}
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		input string
		want  string
		fail  bool
	}{
		{``, ``, true},                        // missing quotes
		{`"missing quote`, ``, true},          // missing quotes
		{`missing quote"`, ``, true},          // missing quotes
		{`""`, ``, false},                     // ok
		{`"ok go"`, "ok go", false},           // ok
		{`"abc\ndef"`, "abc\ndef", false},     // C escapes
		{`"\tabc\n"`, "\tabc\n", false},       // C escapes
		{`"\b\f\n\r\t"`, "\b\f\n\r\t", false}, // C escapes
		{`"a\"b"`, `a"b`, false},              // ok
		{`"a\\b\\cd"`, `a\b\cd`, false},       // ok
		{`"a\qb"`, ``, true},                  // invalid escape
		{`"ab\"`, ``, true},                   // incomplete escape sequence
		{`"\u0026"`, ``, true},                // Unicode escapes are not decoded
	}

	for _, test := range tests {
		got, err := jot.Unquote(test.input)
		if err != nil {
			if !test.fail {
				t.Errorf("Unquote(%#q): got %v, want no error", test.input, err)
			}
			continue
		}
		if test.fail {
			t.Errorf("Unquote(%#q): got nil, want error", test.input)
		}
		if string(got) != test.want {
			t.Errorf("Unquote(%#q): got %#q, want %#q", test.input, got, test.want)
		}
	}
}

func TestUnquoteUnicodeEscape(t *testing.T) {
	_, err := jot.Unquote(`"a\u0041b"`)
	if !errors.Is(err, jot.ErrUnicodeEscape) {
		t.Errorf("Unquote: got %v, want %v", err, jot.ErrUnicodeEscape)
	}
}
