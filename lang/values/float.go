package values

import (
	"fmt"
	"strconv"
	"strings"
)

// Float is the type of an IEEE-754 double value. Its textual form, both
// on input and on WRITE, is the hexadecimal floating-point representation
// (e.g. "0x1.8p+1" on input; WRITE renders the same value as "0x1.8p+01").
type Float float64

var (
	_ Value   = Float(0)
	_ Ordered = Float(0)
)

func (f Float) String() string {
	return strconv.FormatFloat(float64(f), 'x', -1, 64)
}

func (f Float) Type() string { return "float" }

func (f Float) Cmp(y Value) int {
	g := y.(Float)
	switch {
	case f < g:
		return -1
	case f > g:
		return +1
	default:
		return 0
	}
}

// ParseHexFloat parses s as a floating-point literal with
// strconv.ParseFloat, so it accepts hexadecimal form and also plain
// decimal form. READ type=float uses it directly; Float arguments in the
// source go through ParseHexFloatStrict.
func ParseHexFloat(s string) (Float, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return Float(f), nil
}

// ParseHexFloatStrict is like ParseHexFloat but additionally rejects plain
// decimal literals, since Go's strconv.ParseFloat otherwise accepts both
// forms. Used by the loader, where a float argument's textual body is
// always in hexadecimal form.
func ParseHexFloatStrict(s string) (Float, error) {
	body := s
	if strings.HasPrefix(body, "+") || strings.HasPrefix(body, "-") {
		body = body[1:]
	}
	if !strings.HasPrefix(body, "0x") && !strings.HasPrefix(body, "0X") {
		return 0, fmt.Errorf("not a hexadecimal float literal: %q", s)
	}
	return ParseHexFloat(s)
}
