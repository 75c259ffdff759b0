// Copyright (C) 2026 Ivo Hoverden. All Rights Reserved.

package tree

import (
	"io"
	"os"
	"strings"

	"github.com/hoverden/jot"
)

// Parse decodes a single JSON document from r. The root of a document must
// be an object or an array.  Input following the document is left unread.
// Decode failures are reported with a concrete type of [*jot.Error].
func Parse(r io.Reader) (Value, error) {
	return parseDocument(jot.NewScanner(r))
}

// ParseString decodes the JSON document in s.  Anything other than
// whitespace following the document is an error.
func ParseString(s string) (Value, error) {
	lx := jot.NewScanner(strings.NewReader(s))
	v, err := parseDocument(lx)
	if err != nil {
		return nil, err
	}
	if err := requireEOF(lx); err != nil {
		return nil, err
	}
	return v, nil
}

// ParseFile decodes the JSON document in the file at path.  Anything other
// than whitespace following the document is an error.
func ParseFile(path string) (Value, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, jot.Errorf("unable to open %s: %v", path, err)
	}
	defer f.Close()

	lx := jot.NewScanner(f)
	v, err := parseDocument(lx)
	if err != nil {
		return nil, err
	}
	if err := requireEOF(lx); err != nil {
		return nil, err
	}
	return v, nil
}

// scan advances lx to its next token. End of input is not an error here:
// it leaves lx on an EOF token for the caller to judge.
func scan(lx *jot.Scanner) error {
	if err := lx.Next(); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// requireEOF verifies that only end of input remains in lx.
func requireEOF(lx *jot.Scanner) error {
	if err := scan(lx); err != nil {
		return err
	}
	if lx.Token() != jot.EOF {
		return lx.Errorf("end of file expected")
	}
	return nil
}

// parseDocument parses a complete document, whose root must be an object or
// an array.
func parseDocument(lx *jot.Scanner) (Value, error) {
	if err := scan(lx); err != nil {
		return nil, err
	}
	if t := lx.Token(); t != jot.LBrace && t != jot.LSquare {
		return nil, lx.Errorf("'[' or '{' expected")
	}
	return parseValue(lx)
}

// parseValue dispatches on the current token of lx.  Container values
// recurse through parseObject and parseArray; nesting depth is bounded only
// by the stack.
func parseValue(lx *jot.Scanner) (Value, error) {
	switch lx.Token() {
	case jot.String:
		// The scanner owns the decoded bytes only until its next token;
		// the conversion copies them. The stream has already validated the
		// encoding, so no further check is needed.
		return String(lx.Unescape()), nil
	case jot.Integer:
		return Int(lx.Int64()), nil
	case jot.Number:
		return Float(lx.Float64()), nil
	case jot.True:
		return Bool(true), nil
	case jot.False:
		return Bool(false), nil
	case jot.Null:
		return Null, nil
	case jot.LBrace:
		return parseObject(lx)
	case jot.LSquare:
		return parseArray(lx)
	case jot.Invalid:
		return nil, lx.Errorf("invalid token")
	default:
		return nil, lx.Errorf("unexpected token")
	}
}

// parseObject parses the members of an object.
// Precondition: the current token is "{".
func parseObject(lx *jot.Scanner) (Value, error) {
	obj := make(Object, 0)

	if err := scan(lx); err != nil {
		return nil, err
	}
	if lx.Token() == jot.RBrace {
		return obj, nil
	}

	for {
		if lx.Token() != jot.String {
			return nil, lx.Errorf("string or '}' expected")
		}
		key := string(lx.Unescape()) // copy out of the scanner's buffer

		if err := scan(lx); err != nil {
			return nil, err
		}
		if lx.Token() != jot.Colon {
			return nil, lx.Errorf("':' expected")
		}

		if err := scan(lx); err != nil {
			return nil, err
		}
		v, err := parseValue(lx)
		if err != nil {
			return nil, err
		}
		obj.Set(key, v) // last write wins, original position kept

		if err := scan(lx); err != nil {
			return nil, err
		}
		if lx.Token() != jot.Comma {
			break
		}
		if err := scan(lx); err != nil {
			return nil, err
		}
	}

	if lx.Token() != jot.RBrace {
		return nil, lx.Errorf("'}' expected")
	}
	return obj, nil
}

// parseArray parses the elements of an array.
// Precondition: the current token is "[".
func parseArray(lx *jot.Scanner) (Value, error) {
	arr := make(Array, 0)

	if err := scan(lx); err != nil {
		return nil, err
	}
	if lx.Token() == jot.RSquare {
		return arr, nil
	}

	for lx.Token() != jot.EOF {
		v, err := parseValue(lx)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)

		if err := scan(lx); err != nil {
			return nil, err
		}
		if lx.Token() != jot.Comma {
			break
		}
		if err := scan(lx); err != nil {
			return nil, err
		}
	}

	if lx.Token() != jot.RSquare {
		return nil, lx.Errorf("']' expected")
	}
	return arr, nil
}
