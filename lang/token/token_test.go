package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ippcode23/ippvm/lang/token"
)

func TestTokenString(t *testing.T) {
	cases := []struct {
		tok  token.Token
		want string
	}{
		{token.ADD, "add"},
		{token.SUB, "sub"},
		{token.MUL, "mul"},
		{token.IDIV, "idiv"},
		{token.DIV, "div"},
		{token.EQ, "eq"},
		{token.NEQ, "neq"},
		{token.LT, "lt"},
		{token.GT, "gt"},
		{token.AND, "and"},
		{token.OR, "or"},
		{token.ILLEGAL, "illegal"},
		{token.Token(99), "illegal"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.tok.String())
	}
}
