package values

import (
	"github.com/ippcode23/ippvm/lang/ipperr"
)

// IntToChar implements INT2CHAR/INT2CHARS: i must denote a valid Unicode
// scalar value in [0, 0x10FFFF].
func IntToChar(i Int) (String, error) {
	r := rune(i)
	if i < 0 || i > 0x10FFFF || !validScalar(r) {
		return "", ipperr.BadStringOp("int2char: %d is not a valid Unicode scalar value", int64(i))
	}
	return String(r), nil
}

func validScalar(r rune) bool {
	// Surrogate range is not a valid scalar value.
	return !(r >= 0xD800 && r <= 0xDFFF)
}

// StringCharToInt implements STRI2INT/STRI2INTS: it validates idx and
// returns the code point at idx.
func StringCharToInt(s String, idx Int) (Int, error) {
	n := s.RuneLen()
	if idx < 0 || int64(idx) >= int64(n) {
		return 0, ipperr.BadStringOp("string index %d out of range [0,%d)", int64(idx), n)
	}
	return Int(s.RuneAt(int(idx))), nil
}

// GetChar implements GETCHAR: same bounds as StringCharToInt, but the
// result is a one-codepoint String rather than an Int.
func GetChar(s String, idx Int) (String, error) {
	n := s.RuneLen()
	if idx < 0 || int64(idx) >= int64(n) {
		return "", ipperr.BadStringOp("string index %d out of range [0,%d)", int64(idx), n)
	}
	return String(s.RuneAt(int(idx))), nil
}

// SetChar implements SETCHAR: replaces the code point at idx in target
// with the first code point of repl, which must be non-empty.
func SetChar(target String, idx Int, repl String) (String, error) {
	n := target.RuneLen()
	if idx < 0 || int64(idx) >= int64(n) {
		return "", ipperr.BadStringOp("string index %d out of range [0,%d)", int64(idx), n)
	}
	if repl.RuneLen() == 0 {
		return "", ipperr.BadStringOp("setchar: replacement string must not be empty")
	}
	return target.SetRuneAt(int(idx), repl.RuneAt(0)), nil
}

// Concat implements CONCAT: both operands must be String.
func Concat(x, y Value) (String, error) {
	xs, ok1 := x.(String)
	ys, ok2 := y.(String)
	if !ok1 || !ok2 {
		return "", ipperr.WrongOperandType("concat requires two string operands, got %s and %s", x.Type(), y.Type())
	}
	return xs + ys, nil
}

// StrLen implements STRLEN: operand must be String, result is its length
// in code points.
func StrLen(x Value) (Int, error) {
	xs, ok := x.(String)
	if !ok {
		return 0, ipperr.WrongOperandType("strlen requires a string operand, got %s", x.Type())
	}
	return Int(xs.RuneLen()), nil
}

// IntToFloat implements INT2FLOAT.
func IntToFloat(x Value) (Float, error) {
	xi, ok := x.(Int)
	if !ok {
		return 0, ipperr.WrongOperandType("int2float requires an int operand, got %s", x.Type())
	}
	return Float(xi), nil
}

// FloatToInt implements FLOAT2INT.
func FloatToInt(x Value) (Int, error) {
	xf, ok := x.(Float)
	if !ok {
		return 0, ipperr.WrongOperandType("float2int requires a float operand, got %s", x.Type())
	}
	return Int(xf), nil
}

// TypeName implements TYPE: stores the empty string for an uninitialised
// variable instead of erroring, a deliberate exception to the
// uninitialised-read rule.
func TypeName(v Value) String {
	if IsUninit(v) {
		return ""
	}
	return String(v.Type())
}
