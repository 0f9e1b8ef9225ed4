package values_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ippcode23/ippvm/lang/token"
	"github.com/ippcode23/ippvm/lang/values"
)

func TestBinaryArithmetic(t *testing.T) {
	cases := []struct {
		desc string
		op   token.Token
		x, y values.Value
		want values.Value
		err  string
	}{
		{"add ints", token.ADD, values.Int(2), values.Int(3), values.Int(5), ""},
		{"sub floats", token.SUB, values.Float(1.5), values.Float(0.5), values.Float(1), ""},
		{"mul mixed kinds", token.MUL, values.Int(2), values.Float(1), nil, "operands of the same numeric kind"},
		{"idiv truncates", token.IDIV, values.Int(7), values.Int(2), values.Int(3), ""},
		{"idiv by zero", token.IDIV, values.Int(1), values.Int(0), nil, "division by zero"},
		{"div by zero", token.DIV, values.Float(1), values.Float(0), nil, "division by zero"},
		{"and bools", token.AND, values.True, values.False, values.False, ""},
		{"or bools", token.OR, values.True, values.False, values.True, ""},
		{"and non-bool", token.AND, values.Int(1), values.True, nil, "requires two bool operands"},
	}

	for _, c := range cases {
		t.Run(c.desc, func(t *testing.T) {
			got, err := values.Binary(c.op, c.x, c.y)
			if c.err != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), c.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestCompare(t *testing.T) {
	cases := []struct {
		desc string
		op   token.Token
		x, y values.Value
		want bool
		err  string
	}{
		{"eq ints", token.EQ, values.Int(1), values.Int(1), true, ""},
		{"eq nil and nil", token.EQ, values.Nil, values.Nil, true, ""},
		{"eq nil and int", token.EQ, values.Nil, values.Int(0), false, ""},
		{"eq mismatched kinds", token.EQ, values.Int(1), values.String("1"), false, "same kind"},
		{"neq strings", token.NEQ, values.String("a"), values.String("b"), true, ""},
		{"lt ints", token.LT, values.Int(1), values.Int(2), true, ""},
		{"lt rejects nil", token.LT, values.Nil, values.Int(2), false, "does not accept a nil operand"},
		{"gt bools", token.GT, values.True, values.False, true, ""},
		{"lt mismatched kinds", token.LT, values.Int(1), values.Float(2), false, "same ordered kind"},
	}

	for _, c := range cases {
		t.Run(c.desc, func(t *testing.T) {
			got, err := values.Compare(c.op, c.x, c.y)
			if c.err != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), c.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestNot(t *testing.T) {
	got, err := values.Not(values.True)
	require.NoError(t, err)
	assert.Equal(t, values.False, got)

	_, err = values.Not(values.Int(1))
	require.Error(t, err)
}
