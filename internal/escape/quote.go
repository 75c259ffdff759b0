// Copyright (C) 2026 Ivo Hoverden. All Rights Reserved.

package escape

import (
	"unicode/utf8"

	"go4.org/mem"
)

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789abcdef")

// Quote encodes a string to escape characters for inclusion in a JSON string.
func Quote(src mem.RO) []byte {
	buf := make([]byte, 0, src.Len())

	for src.Len() != 0 {
		r, n := mem.DecodeRune(src)
		if r < utf8.RuneSelf {
			b := byte(r)
			if b < ' ' {
				if e := controlEsc[b]; e != 0 {
					buf = append(buf, '\\', e)
				} else {
					buf = append(buf, '\\', 'u', '0', '0', hexDigit[b>>4], hexDigit[b&15])
				}
			} else if b == '\\' || b == '"' {
				buf = append(buf, '\\', b)
			} else {
				buf = append(buf, b)
			}
		} else {
			var rbuf [utf8.UTFMax]byte
			nb := utf8.EncodeRune(rbuf[:], r)
			buf = append(buf, rbuf[:nb]...)
		}
		src = src.SliceFrom(n)
	}
	return buf
}
