package values

import (
	"github.com/ippcode23/ippvm/lang/ipperr"
	"github.com/ippcode23/ippvm/lang/token"
)

// Binary implements ADD, SUB, MUL, IDIV, DIV, AND and OR. The S-suffixed
// stack-form opcodes resolve their two operands off the operand stack
// and call this same function, so there is exactly one implementation
// of each operator's semantics.
func Binary(op token.Token, x, y Value) (Value, error) {
	switch op {
	case token.ADD, token.SUB, token.MUL:
		return arith(op, x, y)
	case token.IDIV:
		xi, ok1 := x.(Int)
		yi, ok2 := y.(Int)
		if !ok1 || !ok2 {
			return nil, ipperr.WrongOperandType("IDIV requires two int operands, got %s and %s", x.Type(), y.Type())
		}
		if yi == 0 {
			return nil, ipperr.BadOperand("division by zero")
		}
		return Int(int64(xi) / int64(yi)), nil
	case token.DIV:
		xf, ok1 := x.(Float)
		yf, ok2 := y.(Float)
		if !ok1 || !ok2 {
			return nil, ipperr.WrongOperandType("DIV requires two float operands, got %s and %s", x.Type(), y.Type())
		}
		if yf == 0 {
			return nil, ipperr.BadOperand("division by zero")
		}
		return xf / yf, nil
	case token.AND, token.OR:
		xb, ok1 := x.(Bool)
		yb, ok2 := y.(Bool)
		if !ok1 || !ok2 {
			return nil, ipperr.WrongOperandType("%s requires two bool operands, got %s and %s", op, x.Type(), y.Type())
		}
		if op == token.AND {
			return Bool(xb && yb), nil
		}
		return Bool(xb || yb), nil
	default:
		return nil, ipperr.WrongOperandType("unsupported binary operator %s", op)
	}
}

func arith(op token.Token, x, y Value) (Value, error) {
	switch xv := x.(type) {
	case Int:
		yv, ok := y.(Int)
		if !ok {
			return nil, ipperr.WrongOperandType("%s requires operands of the same numeric kind, got int and %s", op, y.Type())
		}
		switch op {
		case token.ADD:
			return xv + yv, nil
		case token.SUB:
			return xv - yv, nil
		default:
			return xv * yv, nil
		}
	case Float:
		yv, ok := y.(Float)
		if !ok {
			return nil, ipperr.WrongOperandType("%s requires operands of the same numeric kind, got float and %s", op, y.Type())
		}
		switch op {
		case token.ADD:
			return xv + yv, nil
		case token.SUB:
			return xv - yv, nil
		default:
			return xv * yv, nil
		}
	default:
		return nil, ipperr.WrongOperandType("%s requires int or float operands, got %s", op, x.Type())
	}
}

// Not implements the NOT instruction: its sole operand must be Bool.
func Not(x Value) (Value, error) {
	xb, ok := x.(Bool)
	if !ok {
		return nil, ipperr.WrongOperandType("NOT requires a bool operand, got %s", x.Type())
	}
	return !xb, nil
}

// Compare implements EQ, NEQ, LT and GT.
func Compare(op token.Token, x, y Value) (bool, error) {
	switch op {
	case token.EQ, token.NEQ:
		eq, err := equal(x, y)
		if err != nil {
			return false, err
		}
		if op == token.NEQ {
			return !eq, nil
		}
		return eq, nil
	case token.LT, token.GT:
		if _, xNil := x.(NilType); xNil {
			return false, ipperr.WrongOperandType("%s does not accept a nil operand", op)
		}
		if _, yNil := y.(NilType); yNil {
			return false, ipperr.WrongOperandType("%s does not accept a nil operand", op)
		}
		xo, ok1 := x.(Ordered)
		_, ok2 := y.(Ordered)
		if !ok1 || !ok2 || x.Type() != y.Type() {
			return false, ipperr.WrongOperandType("%s requires two operands of the same ordered kind, got %s and %s", op, x.Type(), y.Type())
		}
		c := xo.Cmp(y)
		if op == token.LT {
			return c < 0, nil
		}
		return c > 0, nil
	default:
		return false, ipperr.WrongOperandType("unsupported comparison operator %s", op)
	}
}

func equal(x, y Value) (bool, error) {
	_, xNil := x.(NilType)
	_, yNil := y.(NilType)
	if xNil || yNil {
		return xNil && yNil, nil
	}
	if x.Type() != y.Type() {
		return false, ipperr.WrongOperandType("EQ requires two operands of the same kind (or nil), got %s and %s", x.Type(), y.Type())
	}
	switch xv := x.(type) {
	case Int:
		return xv == y.(Int), nil
	case Float:
		return xv == y.(Float), nil
	case Bool:
		return xv == y.(Bool), nil
	case String:
		return xv == y.(String), nil
	default:
		return false, ipperr.WrongOperandType("EQ does not support operands of kind %s", x.Type())
	}
}
