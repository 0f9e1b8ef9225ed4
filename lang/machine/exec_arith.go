package machine

import (
	"github.com/ippcode23/ippvm/lang/ipperr"
	"github.com/ippcode23/ippvm/lang/loader"
	"github.com/ippcode23/ippvm/lang/token"
	"github.com/ippcode23/ippvm/lang/values"
)

// binaryTokens maps the non-stack-form arithmetic and boolean opcodes to
// the operator token values.Binary expects, and compareTokens maps the
// comparison opcodes to the token values.Compare expects. The S-suffixed
// stack-form opcodes (ADDS, LTS, ...) look up the same tables with the
// suffix stripped, so that both forms of an operator share one
// implementation.
var binaryTokens = map[string]token.Token{
	"ADD": token.ADD, "SUB": token.SUB, "MUL": token.MUL,
	"IDIV": token.IDIV, "DIV": token.DIV,
	"AND": token.AND, "OR": token.OR,
}

var compareTokens = map[string]token.Token{
	"LT": token.LT, "GT": token.GT, "EQ": token.EQ,
}

// execArith implements the arithmetic, comparison and boolean operators in
// both their three-address and stack forms.
func (m *Machine) execArith(in loader.Instruction) error {
	switch in.Opcode {
	case "ADD", "SUB", "MUL", "IDIV", "DIV", "AND", "OR":
		fr, name, x, y, err := m.binaryOperands(in)
		if err != nil {
			return err
		}
		result, err := values.Binary(binaryTokens[in.Opcode], x, y)
		if err != nil {
			return err
		}
		return fr.Set(name, result)

	case "LT", "GT", "EQ":
		fr, name, x, y, err := m.binaryOperands(in)
		if err != nil {
			return err
		}
		result, err := values.Compare(compareTokens[in.Opcode], x, y)
		if err != nil {
			return err
		}
		return fr.Set(name, values.Bool(result))

	case "NOT":
		fr, name, err := m.resolveVar(in.Args[0])
		if err != nil {
			return err
		}
		x, err := m.resolveSymbol(in.Args[1])
		if err != nil {
			return err
		}
		result, err := values.Not(x)
		if err != nil {
			return err
		}
		return fr.Set(name, result)

	case "ADDS", "SUBS", "MULS", "IDIVS", "ANDS", "ORS":
		tok, ok := binaryTokens[stackBase(in.Opcode)]
		if !ok {
			return ipperr.BadStructure("unreachable: execArith got opcode %s", in.Opcode)
		}
		y, x, err := m.popPair()
		if err != nil {
			return err
		}
		result, err := values.Binary(tok, x, y)
		if err != nil {
			return err
		}
		m.operands.push(result)
		return nil

	case "LTS", "GTS", "EQS":
		tok := compareTokens[stackBase(in.Opcode)]
		y, x, err := m.popPair()
		if err != nil {
			return err
		}
		result, err := values.Compare(tok, x, y)
		if err != nil {
			return err
		}
		m.operands.push(values.Bool(result))
		return nil

	case "NOTS":
		x, err := m.operands.pop()
		if err != nil {
			return err
		}
		result, err := values.Not(x)
		if err != nil {
			return err
		}
		m.operands.push(result)
		return nil

	default:
		return ipperr.BadStructure("unreachable: execArith got opcode %s", in.Opcode)
	}
}

// binaryOperands resolves the common "dest var1 var2" operand shape shared
// by ADD/SUB/MUL/IDIV/DIV/LT/GT/EQ/AND/OR.
func (m *Machine) binaryOperands(in loader.Instruction) (fr *Frame, name string, x, y values.Value, err error) {
	fr, name, err = m.resolveVar(in.Args[0])
	if err != nil {
		return nil, "", nil, nil, err
	}
	x, err = m.resolveSymbol(in.Args[1])
	if err != nil {
		return nil, "", nil, nil, err
	}
	y, err = m.resolveSymbol(in.Args[2])
	if err != nil {
		return nil, "", nil, nil, err
	}
	return fr, name, x, y, nil
}

// popPair pops the right then left operand off the operand stack, matching
// PUSHS's left-to-right push order.
func (m *Machine) popPair() (right, left values.Value, err error) {
	right, err = m.operands.pop()
	if err != nil {
		return nil, nil, err
	}
	left, err = m.operands.pop()
	if err != nil {
		return nil, nil, err
	}
	return right, left, nil
}

// stackBase strips the trailing "S" from a stack-form opcode name, e.g.
// "ADDS" -> "ADD".
func stackBase(opcode string) string {
	return opcode[:len(opcode)-1]
}
