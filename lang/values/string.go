package values

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// String is the type of a unicode string value, already decoded (any
// \ddd escape sequences in the source form have been resolved before a
// String is constructed).
type String string

var (
	_ Value   = String("")
	_ Ordered = String("")
)

func (s String) String() string { return string(s) }
func (s String) Type() string   { return "string" }

// Cmp orders String lexicographically by code point (byte-wise comparison
// of UTF-8 text gives the same order).
func (s String) Cmp(y Value) int {
	return strings.Compare(string(s), string(y.(String)))
}

// RuneLen returns the length of s in code points. Every string index in
// IPPcode23 is over code points, never bytes.
func (s String) RuneLen() int { return utf8.RuneCountInString(string(s)) }

// RuneAt returns the code point at rune-index i (0-based). The caller must
// have already validated 0 <= i < s.RuneLen().
func (s String) RuneAt(i int) rune {
	for _, r := range string(s) {
		if i == 0 {
			return r
		}
		i--
	}
	panic("RuneAt: index out of range")
}

// SetRuneAt returns a copy of s with the code point at rune-index i
// replaced by r. The caller must have already validated the index.
func (s String) SetRuneAt(i int, r rune) String {
	runes := []rune(string(s))
	runes[i] = r
	return String(runes)
}

// DecodeEscapes resolves \ddd escape sequences (three decimal digits,
// decoding to the code point ddd) in raw source text. A backslash not
// followed by three decimal digits is an error.
func DecodeEscapes(raw string) (string, error) {
	if !strings.Contains(raw, "\\") {
		return raw, nil
	}

	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		if i+3 >= len(raw) {
			return "", fmt.Errorf("truncated escape sequence at offset %d", i)
		}
		digits := raw[i+1 : i+4]
		n := 0
		for _, d := range []byte(digits) {
			if d < '0' || d > '9' {
				return "", fmt.Errorf("invalid escape sequence %q at offset %d", "\\"+digits, i)
			}
			n = n*10 + int(d-'0')
		}
		b.WriteRune(rune(n))
		i += 3
	}
	return b.String(), nil
}
