// Copyright (C) 2026 Ivo Hoverden. All Rights Reserved.

// Package jot implements a streaming JSON lexer with line-accurate
// diagnostics. The companion package tree parses JSON documents into
// ordered value trees.
//
// # Scanning
//
// The Scanner type implements a lexical scanner for JSON.  Construct a
// scanner from an io.Reader and call its Next method to iterate over the
// stream. Next advances to the next input token and returns nil, or reports
// an error:
//
//	s := jot.NewScanner(input)
//	for s.Next() == nil {
//	   log.Printf("Next token: %v", s.Token())
//	}
//
// Next returns io.EOF when the input has been fully consumed. Any other
// error indicates a failure of the underlying source.
//
// Input is validated as UTF-8 byte by byte as it is read, so a malformed
// encoding is rejected even inside a string literal that is otherwise
// passed through undecoded.  A rejected sequence ends the stream: the token
// it interrupted comes out Invalid, and every later call to Next reports
// the encoding failure, so the bytes of the bad sequence are never replayed
// as input.
//
// # Tokens
//
// A malformed token (a bad escape, a bad number, an unterminated string, an
// unrecognized identifier, a malformed encoding) is not an error at this
// level: the scanner reports an Invalid token and retains the offending raw
// text, so that a parser can place the failure precisely.  The Errorf method
// formats such diagnostics, attaching the current line and the raw text of
// the current token:
//
//	line 3: invalid token near '01'
//
// For String, Integer, and Number tokens the scanner also carries a decoded
// value, available from Unescape, Int64, and Float64 respectively.  Decoding
// of \uXXXX escapes is not supported: the scanner accepts the syntax but
// reports the enclosing string as an Invalid token.
package jot
