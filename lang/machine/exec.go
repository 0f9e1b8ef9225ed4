package machine

import (
	"fmt"

	"github.com/ippcode23/ippvm/lang/ipperr"
	"github.com/ippcode23/ippvm/lang/loader"
	"github.com/ippcode23/ippvm/lang/token"
	"github.com/ippcode23/ippvm/lang/values"
)

// dispatch executes a single already arity-checked instruction. It returns
// the next program counter (-1 meaning "fall through to pc+1"), the
// process exit code requested by an EXIT instruction, whether EXIT was
// the instruction executed, and any runtime error.
func (m *Machine) dispatch(in loader.Instruction) (next, exitCode int, exited bool, err error) {
	next = -1

	switch in.Opcode {
	case "LABEL":
		// Resolved entirely by the pre-pass (loader.BuildLabels); a no-op
		// at execution time.

	case "JUMP":
		target, err := m.resolveLabel(in.Args[0])
		if err != nil {
			return 0, 0, false, err
		}
		next = target

	case "JUMPIFEQ", "JUMPIFNEQ":
		target, err := m.resolveLabel(in.Args[0])
		if err != nil {
			return 0, 0, false, err
		}
		taken, err := m.evalJumpCond(in.Opcode == "JUMPIFNEQ", in.Args[1], in.Args[2])
		if err != nil {
			return 0, 0, false, err
		}
		if taken {
			next = target
		}

	case "JUMPIFEQS", "JUMPIFNEQS":
		target, err := m.resolveLabel(in.Args[0])
		if err != nil {
			return 0, 0, false, err
		}
		taken, err := m.evalJumpCondStack(in.Opcode == "JUMPIFNEQS")
		if err != nil {
			return 0, 0, false, err
		}
		if taken {
			next = target
		}

	case "CALL":
		target, err := m.resolveLabel(in.Args[0])
		if err != nil {
			return 0, 0, false, err
		}
		if m.MaxCallStackDepth > 0 && len(m.calls.returnTo) >= m.MaxCallStackDepth {
			return 0, 0, false, fmt.Errorf("ippvm: call stack depth ceiling (%d) exceeded", m.MaxCallStackDepth)
		}
		m.calls.push(m.pc + 1)
		next = target

	case "RETURN":
		ret, err := m.calls.pop()
		if err != nil {
			return 0, 0, false, err
		}
		next = ret

	case "EXIT":
		code, err := m.evalExitCode(in.Args[0])
		if err != nil {
			return 0, 0, false, err
		}
		return 0, code, true, nil

	case "DEFVAR", "MOVE", "CREATEFRAME", "PUSHFRAME", "POPFRAME":
		err = m.execFrame(in)

	case "PUSHS", "POPS", "CLEARS":
		err = m.execStack(in)

	case "ADD", "SUB", "MUL", "IDIV", "DIV", "LT", "GT", "EQ", "AND", "OR", "NOT",
		"ADDS", "SUBS", "MULS", "IDIVS", "LTS", "GTS", "EQS", "ANDS", "ORS", "NOTS":
		err = m.execArith(in)

	case "INT2CHAR", "STRI2INT", "INT2FLOAT", "FLOAT2INT", "CONCAT", "STRLEN",
		"GETCHAR", "SETCHAR", "TYPE", "INT2CHARS", "STRI2INTS":
		err = m.execString(in)

	case "READ", "WRITE", "DPRINT", "BREAK":
		err = m.execIO(in)

	default:
		err = ipperr.BadStructure("opcode %s is not implemented", in.Opcode)
	}

	return next, exitCode, exited, err
}

// resolveLabel resolves a "label"-kind argument against the label table
// built by loader.BuildLabels.
func (m *Machine) resolveLabel(a loader.Arg) (int, error) {
	if a.Kind != "label" {
		return 0, ipperr.BadStructure("expected a label argument, got kind %q", a.Kind)
	}
	target, ok := m.labels[a.Body]
	if !ok {
		return 0, ipperr.Semantic("undefined label %q", a.Body)
	}
	return target, nil
}

func (m *Machine) evalJumpCond(negate bool, a1, a2 loader.Arg) (bool, error) {
	x, err := m.resolveSymbol(a1)
	if err != nil {
		return false, err
	}
	y, err := m.resolveSymbol(a2)
	if err != nil {
		return false, err
	}
	eq, err := values.Compare(token.EQ, x, y)
	if err != nil {
		return false, err
	}
	if negate {
		return !eq, nil
	}
	return eq, nil
}

func (m *Machine) evalJumpCondStack(negate bool) (bool, error) {
	y, err := m.operands.pop()
	if err != nil {
		return false, err
	}
	x, err := m.operands.pop()
	if err != nil {
		return false, err
	}
	eq, err := values.Compare(token.EQ, x, y)
	if err != nil {
		return false, err
	}
	if negate {
		return !eq, nil
	}
	return eq, nil
}

// evalExitCode resolves EXIT's operand: it must be an Int in [0,49], the
// range of process exit codes IPPcode23 reserves for program-requested
// termination.
func (m *Machine) evalExitCode(a loader.Arg) (int, error) {
	v, err := m.resolveSymbol(a)
	if err != nil {
		return 0, err
	}
	i, ok := v.(values.Int)
	if !ok {
		return 0, ipperr.WrongOperandType("EXIT requires an int operand, got %s", v.Type())
	}
	if i < 0 || i > 49 {
		return 0, ipperr.BadOperand("exit code %d out of range [0,49]", int64(i))
	}
	return int(i), nil
}

// execFrame implements DEFVAR, MOVE, CREATEFRAME, PUSHFRAME and POPFRAME.
func (m *Machine) execFrame(in loader.Instruction) error {
	switch in.Opcode {
	case "DEFVAR":
		fr, name, err := m.resolveVar(in.Args[0])
		if err != nil {
			return err
		}
		return fr.Declare(name)

	case "MOVE":
		fr, name, err := m.resolveVar(in.Args[0])
		if err != nil {
			return err
		}
		v, err := m.resolveSymbol(in.Args[1])
		if err != nil {
			return err
		}
		return fr.Set(name, v)

	case "CREATEFRAME":
		m.Frames.CreateFrame()
		return nil

	case "PUSHFRAME":
		return m.Frames.PushFrame()

	case "POPFRAME":
		return m.Frames.PopFrame()

	default:
		return ipperr.BadStructure("unreachable: execFrame got opcode %s", in.Opcode)
	}
}

// execStack implements PUSHS, POPS and CLEARS.
func (m *Machine) execStack(in loader.Instruction) error {
	switch in.Opcode {
	case "PUSHS":
		v, err := m.resolveSymbol(in.Args[0])
		if err != nil {
			return err
		}
		m.operands.push(v)
		return nil

	case "POPS":
		fr, name, err := m.resolveVar(in.Args[0])
		if err != nil {
			return err
		}
		v, err := m.operands.pop()
		if err != nil {
			return err
		}
		return fr.Set(name, v)

	case "CLEARS":
		m.operands.clear()
		return nil

	default:
		return ipperr.BadStructure("unreachable: execStack got opcode %s", in.Opcode)
	}
}
