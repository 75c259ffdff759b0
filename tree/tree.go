// Copyright (C) 2026 Ivo Hoverden. All Rights Reserved.

// Package tree defines an in-memory representation for JSON values, and a
// parser that decodes JSON documents into values.
package tree

import (
	"strconv"
	"strings"

	"github.com/hoverden/jot"
)

// A Value is an arbitrary JSON value. The JSON method renders the value as
// JSON source text.
type Value interface {
	JSON() string
}

// An Object is an ordered collection of key-value members.
type Object []*Member

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value
}

// Find returns the member of o with the given key, or nil.
func (o Object) Find(key string) *Member {
	for _, m := range o {
		if m.Key == key {
			return m
		}
	}
	return nil
}

// Set binds key to v in o. If key is already present its value is replaced
// in place, keeping the member's original position; otherwise a new member
// is appended. Insertion order is preserved in either case.
func (o *Object) Set(key string, v Value) {
	if m := o.Find(key); m != nil {
		m.Value = v
		return
	}
	*o = append(*o, &Member{Key: key, Value: v})
}

// JSON satisfies the Value interface.
func (o Object) JSON() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(jot.Quote(m.Key))
		sb.WriteByte(':')
		sb.WriteString(m.Value.JSON())
	}
	sb.WriteByte('}')
	return sb.String()
}

// An Array is an ordered sequence of values.
type Array []Value

// JSON satisfies the Value interface.
func (a Array) JSON() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range a {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(v.JSON())
	}
	sb.WriteByte(']')
	return sb.String()
}

// A String is a string value.
type String string

// JSON satisfies the Value interface.
func (s String) JSON() string { return jot.Quote(string(s)) }

// An Int is an integer value.
type Int int64

// JSON satisfies the Value interface.
func (z Int) JSON() string { return strconv.FormatInt(int64(z), 10) }

// A Float is a floating-point value.
type Float float64

// JSON satisfies the Value interface.  The rendered text always carries a
// fraction or an exponent, so that it decodes back as a Float.
func (f Float) JSON() string {
	s := strconv.FormatFloat(float64(f), 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// A Bool is a Boolean constant, true or false.
type Bool bool

// JSON satisfies the Value interface.
func (b Bool) JSON() string {
	if b {
		return "true"
	}
	return "false"
}

// Null is the JSON null constant.
var Null Value = nullValue{}

type nullValue struct{}

func (nullValue) JSON() string { return "null" }
