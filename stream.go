// Copyright (C) 2026 Ivo Hoverden. All Rights Reserved.

package jot

import (
	"errors"
	"io"
	"unicode"
	"unicode/utf8"
)

// Sentinel errors reported by the character stream. errBadEncoding is
// distinct from io.EOF: it marks a malformed UTF-8 sequence in the input,
// which the scanner reports as an invalid token. errPushback marks a misuse
// of unget, an internal defect rather than an input error.
var (
	errBadEncoding = errors.New("invalid UTF-8 encoding")
	errPushback    = errors.New("pushback does not match last character read")
)

// A stream pulls one logical character at a time from a byte source.  A
// logical character is either a single ASCII byte or a complete multi-byte
// UTF-8 sequence, which is validated as it is assembled.  Callers receive the
// sequence one byte at a time and may push back the byte most recently read.
//
// The buffer holds at most one validated character; the cursor is reset
// whenever the buffer is refilled.  A malformed sequence poisons the stream:
// its bytes are discarded and every subsequent read reports the failure.
type stream struct {
	src io.ByteReader
	buf [utf8.UTFMax]byte
	n   int   // number of valid bytes in buf
	pos int   // read cursor in buf[:n]
	err error // sticky after a malformed sequence
}

func newStream(src io.ByteReader) *stream { return &stream{src: src} }

// get returns the next byte of the input. At the end of the input it reports
// io.EOF, and for a malformed multi-byte sequence it reports errBadEncoding.
func (s *stream) get() (byte, error) {
	if s.pos == s.n {
		if s.err != nil {
			return 0, s.err
		}
		if err := s.fill(); err != nil {
			return 0, err
		}
	}
	b := s.buf[s.pos]
	s.pos++
	return b, nil
}

// unget pushes back the byte most recently returned by get. Pushing back a
// byte that was not the last one read, or pushing back twice without an
// intervening get, reports errPushback.
func (s *stream) unget(c byte) error {
	if s.pos == 0 || s.buf[s.pos-1] != c {
		return errPushback
	}
	s.pos--
	return nil
}

// fill reads the next character from the source into the buffer.  A byte
// with the high bit set begins a multi-byte sequence, which is read to its
// full expected length and validated before any of it is returned.
func (s *stream) fill() error {
	b, err := s.src.ReadByte()
	if err != nil {
		return err
	}
	s.buf[0], s.n, s.pos = b, 1, 0
	if b < utf8.RuneSelf {
		return nil
	}
	width := seqWidth(b)
	if width == 0 {
		return s.reject()
	}
	for i := 1; i < width; i++ {
		c, err := s.src.ReadByte()
		if err != nil {
			if err == io.EOF {
				return s.reject() // truncated sequence
			}
			return err
		}
		s.buf[i] = c
	}
	if !checkSequence(s.buf[:width]) {
		return s.reject()
	}
	s.n = width
	return nil
}

// reject discards the bytes of a rejected sequence and poisons the stream:
// once malformed input has been seen, no further characters are delivered.
// Replaying the raw bytes would let them pass as valid characters.
func (s *stream) reject() error {
	s.n, s.pos = 0, 0
	s.err = errBadEncoding
	return errBadEncoding
}

// seqWidth reports the total length in bytes of the UTF-8 sequence beginning
// with lead byte b, or 0 if b cannot begin a sequence.  Lead bytes 0xC0 and
// 0xC1 are excluded since they can only encode overlong two-byte forms.
func seqWidth(b byte) int {
	switch {
	case b < 0x80:
		return 1
	case b < 0xC2:
		return 0 // continuation byte, or overlong two-byte lead
	case b < 0xE0:
		return 2
	case b < 0xF0:
		return 3
	case b < 0xF5:
		return 4
	default:
		return 0
	}
}

// checkSequence reports whether buf is a well-formed, non-overlong UTF-8
// encoding of a single valid codepoint. Surrogate codepoints and values
// above unicode.MaxRune are rejected.
func checkSequence(buf []byte) bool {
	cp := rune(buf[0])
	switch len(buf) {
	case 1:
		return cp < 0x80
	case 2:
		cp &= 0x1F
	case 3:
		cp &= 0x0F
	case 4:
		cp &= 0x07
	default:
		return false
	}
	for _, b := range buf[1:] {
		if b&0xC0 != 0x80 {
			return false
		}
		cp = cp<<6 | rune(b&0x3F)
	}
	switch len(buf) {
	case 2:
		return cp >= 0x80
	case 3:
		return cp >= 0x800 && (cp < 0xD800 || cp > 0xDFFF)
	default:
		return cp >= 0x10000 && cp <= unicode.MaxRune
	}
}
