// Copyright (C) 2026 Ivo Hoverden. All Rights Reserved.

package jot

import (
	"fmt"
	"unicode/utf8"
)

// NoPosition is the Line value of an Error that is not associated with any
// position in the input, such as a failure to open the source.  Real line
// numbers are 1-based, so NoPosition is distinct from all of them.
const NoPosition = 0

// maxErrorText bounds the length of a formatted error message.
const maxErrorText = 160

// An Error describes a failure to decode a JSON document.
type Error struct {
	Line    int    // 1-based line number of the failure, or NoPosition
	Message string // a description of the failure
}

// Error satisfies the error interface.
func (e *Error) Error() string {
	if e.Line == NoPosition {
		return e.Message
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// Errorf formats an Error that carries no position information.
func Errorf(format string, args ...any) *Error {
	return &Error{Line: NoPosition, Message: truncate(fmt.Sprintf(format, args...))}
}

// Errorf formats an Error positioned at the scanner's current line.  The
// message is suffixed with the raw text of the current token, or with an
// end-of-file marker when no text has been retained.
func (s *Scanner) Errorf(format string, args ...any) *Error {
	msg := fmt.Sprintf(format, args...)
	if text := s.buf.Bytes(); len(text) != 0 {
		msg = fmt.Sprintf("%s near '%s'", msg, text)
	} else {
		msg += " near end of file"
	}
	return &Error{Line: s.line, Message: truncate(msg)}
}

// truncate caps msg at maxErrorText bytes, backing up to a rune boundary so
// the cut never splits a multi-byte character.
func truncate(msg string) string {
	if len(msg) <= maxErrorText {
		return msg
	}
	cut := maxErrorText
	for cut > 0 && !utf8.RuneStart(msg[cut]) {
		cut--
	}
	return msg[:cut]
}
