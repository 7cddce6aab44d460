package model

import (
	"fmt"
	"strconv"
)

// Kind identifies the type carried by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindNumber
	KindString
)

// Value is a tagged scalar attribute value. Feature attributes are
// restricted to numbers, strings and null so that reductions and
// exports never have to reflect over arbitrary dynamic types.
type Value struct {
	kind Kind
	num  float64
	str  string
}

// Null returns the null value.
func Null() Value {
	return Value{kind: KindNull}
}

// Num returns a numeric value.
func Num(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// Str returns a string value.
func Str(s string) Value {
	return Value{kind: KindString, str: s}
}

// Kind reports the tag of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the value is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Float returns the numeric payload. The second result is false when
// the value is not a number.
func (v Value) Float() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// Text returns the string payload. The second result is false when the
// value is not a string.
func (v Value) Text() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// String renders the value for display. Null renders as the empty string.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindString:
		return v.str
	default:
		return ""
	}
}

// Equal reports whether two values have the same tag and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNumber:
		return v.num == o.num
	case KindString:
		return v.str == o.str
	default:
		return true
	}
}

// Interface returns the value as a plain Go value for JSON encoding:
// float64, string, or nil.
func (v Value) Interface() any {
	switch v.kind {
	case KindNumber:
		return v.num
	case KindString:
		return v.str
	default:
		return nil
	}
}

// FromInterface converts a decoded JSON value into a Value. Types other
// than numbers and strings are stringified.
func FromInterface(raw any) Value {
	switch t := raw.(type) {
	case nil:
		return Null()
	case float64:
		return Num(t)
	case int:
		return Num(float64(t))
	case int64:
		return Num(float64(t))
	case string:
		return Str(t)
	case bool:
		if t {
			return Str("true")
		}
		return Str("false")
	default:
		return Str(fmt.Sprintf("%v", t))
	}
}
