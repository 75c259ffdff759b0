// Copyright (C) 2026 Ivo Hoverden. All Rights Reserved.

package jot

import (
	"errors"
	"strings"

	"go4.org/mem"

	"github.com/hoverden/jot/internal/escape"
)

// ErrUnicodeEscape is reported when decoding a string that contains a
// \uXXXX escape, whose decoding is not supported.
var ErrUnicodeEscape = escape.ErrUnicodeEscape

// Quote encodes src as a JSON string value. The contents are escaped and
// double quotation marks are added.
func Quote(src string) string { return `"` + string(escape.Quote(mem.S(src))) + `"` }

// Unquote decodes a JSON string value.  Double quotation marks are removed,
// and escape sequences are replaced with their unescaped equivalents.
func Unquote(src string) ([]byte, error) {
	if len(src) < 2 || !strings.HasPrefix(src, `"`) || !strings.HasSuffix(src, `"`) {
		return nil, errors.New("missing quotations")
	}
	return escape.Unquote(mem.S(src[1 : len(src)-1]))
}
