package item

import (
	"strconv"
	"strings"
)

// Value is a literal: one of Int, Float, or Bool.
type Value interface {
	String() string
	value()
}

// Int is a 32-bit integer literal.
type Int int32

// Float is a 32-bit floating point literal.
type Float float32

// Bool is a boolean literal.
type Bool bool

func (Int) value()   {}
func (Float) value() {}
func (Bool) value()  {}

func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }

// String always includes a decimal point, so that it classifies back into a Float.
func (f Float) String() string {
	s := strconv.FormatFloat(float64(f), 'f', -1, 32)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

func (b Bool) String() string { return strconv.FormatBool(bool(b)) }
