// Copyright (C) 2026 Ivo Hoverden. All Rights Reserved.

package jot

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"go4.org/mem"

	"github.com/hoverden/jot/internal/escape"
)

// Token is the type of a lexical token in the JSON grammar.
type Token byte

// Constants defining the valid Token values.
const (
	Invalid Token = iota // invalid token
	EOF                  // end of input
	LBrace               // left brace "{"
	RBrace               // right brace "}"
	LSquare              // left square bracket "["
	RSquare              // right square bracket "]"
	Comma                // comma ","
	Colon                // colon ":"
	Integer              // number: integer with no fraction or exponent
	Number               // number with fraction and/or exponent
	String               // quoted string
	True                 // constant: true
	False                // constant: false
	Null                 // constant: null
)

var tokenStr = [...]string{
	Invalid: "invalid token",
	EOF:     "end of input",
	LBrace:  `"{"`,
	RBrace:  `"}"`,
	LSquare: `"["`,
	RSquare: `"]"`,
	Comma:   `","`,
	Colon:   `":"`,
	Integer: "integer",
	Number:  "number",
	String:  "string",
	True:    "true",
	False:   "false",
	Null:    "null",
}

func (t Token) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return tokenStr[Invalid]
	}
	return tokenStr[v]
}

// A Scanner reads lexical tokens from a JSON input stream.  Each call to
// Next advances the scanner to the next token.  The raw text of the current
// token is retained for diagnostics, and literal tokens additionally carry a
// decoded value, reachable through the typed accessors.
type Scanner struct {
	in   *stream
	buf  bytes.Buffer // raw text of the current token
	tok  Token
	line int // current line, 1-based

	// Decoded literal payload. At most one field is live at a time,
	// selected by tok: str for String, num for Integer, flt for Number.
	// Scanning a new token releases the previous payload.
	str []byte
	num int64
	flt float64
}

// NewScanner constructs a new lexical scanner that consumes input from r.
// If r is not already an io.ByteReader it is wrapped in a bufio.Reader.
func NewScanner(r io.Reader) *Scanner {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Scanner{in: newStream(br), line: 1}
}

// Next advances s to the next token of the input.  At the end of the input,
// Next sets the current token to EOF and returns io.EOF.  A malformed token
// does not return an error: it leaves s positioned on an Invalid token whose
// offending text is available from Text.  Once the input has been rejected
// as malformed UTF-8, no further tokens exist and every subsequent call
// reports the encoding failure.  Any other error is a failure of the
// underlying source.
func (s *Scanner) Next() error {
	s.buf.Reset()
	s.str = nil
	s.tok = Invalid

	if s.in.err != nil {
		return s.in.err
	}

	c, err := s.get()
	for err == nil && isSpace(c) {
		if c == '\n' {
			s.line++
		}
		c, err = s.get()
	}
	if err != nil {
		if err == io.EOF {
			s.tok = EOF
			return io.EOF
		}
		return s.failToken(err)
	}

	s.save(c)
	switch {
	case c == '{':
		s.tok = LBrace
	case c == '}':
		s.tok = RBrace
	case c == '[':
		s.tok = LSquare
	case c == ']':
		s.tok = RSquare
	case c == ',':
		s.tok = Comma
	case c == ':':
		s.tok = Colon
	case c == '"':
		return s.scanString()
	case c == '-' || isDigit(c):
		return s.scanNumber(c)
	case isLetter(c):
		return s.scanKeyword()
	default:
		// tok remains Invalid
	}
	return nil
}

// Token returns the type of the current token.
func (s *Scanner) Token() Token { return s.tok }

// Text returns the raw (undecoded) text of the current token.  The return
// value is only valid until the next call of Next.
func (s *Scanner) Text() []byte { return s.buf.Bytes() }

// Line returns the 1-based line number of the current token.
func (s *Scanner) Line() int { return s.line }

// Unescape returns the decoded value of the current token, which must be a
// String or Unescape panics.  The return value is only valid until the next
// call of Next.
func (s *Scanner) Unescape() []byte {
	if s.tok != String {
		panic(fmt.Sprintf("jot: current token is %v, not string", s.tok))
	}
	return s.str
}

// Int64 returns the decoded value of the current token, which must be an
// Integer or Int64 panics.
func (s *Scanner) Int64() int64 {
	if s.tok != Integer {
		panic(fmt.Sprintf("jot: current token is %v, not integer", s.tok))
	}
	return s.num
}

// Float64 returns the decoded value of the current token, which must be a
// Number or Float64 panics.
func (s *Scanner) Float64() float64 {
	if s.tok != Number {
		panic(fmt.Sprintf("jot: current token is %v, not number", s.tok))
	}
	return s.flt
}

func (s *Scanner) get() (byte, error) { return s.in.get() }

func (s *Scanner) save(c byte) { s.buf.WriteByte(c) }

// getSave reads the next byte of the input and appends it to the raw text.
func (s *Scanner) getSave() (byte, error) {
	c, err := s.in.get()
	if err == nil {
		s.buf.WriteByte(c)
	}
	return c, err
}

// ungetUnsave pushes c back to the stream and removes it from the raw text.
// A mismatch between c and the byte most recently read is an internal
// defect, reported as an error rather than a crash.
func (s *Scanner) ungetUnsave(c byte) error {
	if err := s.in.unget(c); err != nil {
		return err
	}
	raw := s.buf.Bytes()
	if len(raw) == 0 || raw[len(raw)-1] != c {
		return errPushback
	}
	s.buf.Truncate(len(raw) - 1)
	return nil
}

// failToken resolves a stream error reported in the middle of a token.
// End of input and a malformed encoding both leave the current token
// Invalid; anything else is surfaced to the caller.
func (s *Scanner) failToken(err error) error {
	if err == io.EOF || err == errBadEncoding {
		return nil
	}
	return err
}

// scanString consumes a string literal after its opening quote, retaining
// the raw text, then decodes the escapes into the string payload.
func (s *Scanner) scanString() error {
	for {
		c, err := s.getSave()
		if err != nil {
			return s.failToken(err) // unterminated string
		}
		if c == '"' {
			break
		}
		if c <= 0x1F {
			// A raw control character is not permitted in a string.
			// Leave it unconsumed.
			return s.invalidAfter(c)
		}
		if c == '\\' {
			c, err = s.getSave()
			if err != nil {
				return s.failToken(err)
			}
			switch c {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				// one-character escape
			case 'u':
				for i := 0; i < 4; i++ {
					c, err = s.getSave()
					if err != nil {
						return s.failToken(err)
					}
					if !isHexDigit(c) {
						return s.invalidAfter(c)
					}
				}
			default:
				return s.invalidAfter(c)
			}
		}
	}

	// Second pass: decode the raw text between the quotes. The decoded form
	// is never longer than the raw form, since every escape shrinks.
	raw := s.buf.Bytes()
	dec, err := escape.Unquote(mem.B(raw[1 : len(raw)-1]))
	if err != nil {
		// Includes \uXXXX escapes, whose decoding is unsupported: the raw
		// scan accepts the syntax but the token fails here.
		return nil
	}
	s.str = dec
	s.tok = String
	return nil
}

// invalidAfter pushes back the byte that spoiled the current token and
// leaves the token Invalid.
func (s *Scanner) invalidAfter(c byte) error {
	if err := s.ungetUnsave(c); err != nil {
		return err
	}
	return nil
}

// scanNumber consumes a numeric literal whose first character is first
// (already saved), then converts the raw text into the integer or floating
// payload.  The character that terminates the literal is pushed back.
func (s *Scanner) scanNumber(first byte) error {
	c := first
	var err error

	if c == '-' {
		c, err = s.getSave()
		if err != nil {
			return s.failToken(err) // "-" alone
		}
		if !isDigit(c) {
			return s.invalidAfter(c)
		}
	}

	if c == '0' {
		c, err = s.getSave()
		if err == nil && isDigit(c) {
			// Leading zeros are rejected by the JSON grammar.
			return s.invalidAfter(c)
		}
	} else {
		c, err = s.getSave()
		for err == nil && isDigit(c) {
			c, err = s.getSave()
		}
	}

	isReal := false
	if err == nil && c == '.' {
		// The fraction requires at least one digit after the dot.
		d, derr := s.get()
		if derr != nil {
			return s.failToken(derr)
		}
		if !isDigit(d) {
			return nil // dot with no following digit
		}
		s.save(d)
		c, err = s.getSave()
		for err == nil && isDigit(c) {
			c, err = s.getSave()
		}
		isReal = true
	}

	if err == nil && (c == 'E' || c == 'e') {
		c, err = s.getSave()
		if err == nil && (c == '+' || c == '-') {
			c, err = s.getSave()
		}
		if err != nil {
			return s.failToken(err) // exponent with no digits
		}
		if !isDigit(c) {
			return s.invalidAfter(c)
		}
		c, err = s.getSave()
		for err == nil && isDigit(c) {
			c, err = s.getSave()
		}
		isReal = true
	}

	if err == nil {
		if uerr := s.ungetUnsave(c); uerr != nil {
			return uerr
		}
	} else if err != io.EOF {
		return s.failToken(err)
	}

	text := s.buf.String()
	if isReal {
		f, perr := strconv.ParseFloat(text, 64)
		if perr != nil && !errors.Is(perr, strconv.ErrRange) {
			return nil
		}
		s.flt, s.tok = f, Number
	} else {
		// A value out of range saturates at the int64 boundary, the same
		// way strtol clamps; the token is still a valid integer.
		n, perr := strconv.ParseInt(text, 10, 64)
		if perr != nil && !errors.Is(perr, strconv.ErrRange) {
			return nil
		}
		s.num, s.tok = n, Integer
	}
	return nil
}

// scanKeyword consumes a maximal run of ASCII letters and matches it against
// the JSON constants. Eating the whole run gives clearer error messages for
// misspelled constants than stopping at the first unexpected letter.
func (s *Scanner) scanKeyword() error {
	c, err := s.getSave()
	for err == nil && isLetter(c) {
		c, err = s.getSave()
	}
	if err == nil {
		if uerr := s.ungetUnsave(c); uerr != nil {
			return uerr
		}
	} else if err == errBadEncoding {
		return nil // Invalid token
	} else if err != io.EOF {
		return err
	}

	text := mem.B(s.buf.Bytes())
	switch {
	case text.Equal(mem.S("true")):
		s.tok = True
	case text.Equal(mem.S("false")):
		s.tok = False
	case text.Equal(mem.S("null")):
		s.tok = Null
	}
	return nil
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }
func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isHexDigit(c byte) bool {
	return isDigit(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
