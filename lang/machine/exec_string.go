package machine

import (
	"github.com/ippcode23/ippvm/lang/ipperr"
	"github.com/ippcode23/ippvm/lang/loader"
	"github.com/ippcode23/ippvm/lang/values"
)

// execString implements the string and type-conversion operators, both in
// their three-address and (for INT2CHAR/STRI2INT) stack forms.
func (m *Machine) execString(in loader.Instruction) error {
	switch in.Opcode {
	case "INT2CHAR":
		fr, name, err := m.resolveVar(in.Args[0])
		if err != nil {
			return err
		}
		x, err := m.resolveSymbol(in.Args[1])
		if err != nil {
			return err
		}
		i, ok := x.(values.Int)
		if !ok {
			return ipperr.WrongOperandType("int2char requires an int operand, got %s", x.Type())
		}
		result, err := values.IntToChar(i)
		if err != nil {
			return err
		}
		return fr.Set(name, result)

	case "STRI2INT":
		fr, name, err := m.resolveVar(in.Args[0])
		if err != nil {
			return err
		}
		s, idx, err := m.stringIndexOperands(in.Args[1], in.Args[2])
		if err != nil {
			return err
		}
		result, err := values.StringCharToInt(s, idx)
		if err != nil {
			return err
		}
		return fr.Set(name, result)

	case "GETCHAR":
		fr, name, err := m.resolveVar(in.Args[0])
		if err != nil {
			return err
		}
		s, idx, err := m.stringIndexOperands(in.Args[1], in.Args[2])
		if err != nil {
			return err
		}
		result, err := values.GetChar(s, idx)
		if err != nil {
			return err
		}
		return fr.Set(name, result)

	case "SETCHAR":
		fr, name, err := m.resolveVar(in.Args[0])
		if err != nil {
			return err
		}
		current, err := fr.Get(name)
		if err != nil {
			return err
		}
		if values.IsUninit(current) {
			return ipperr.MissingValue("variable %s is not initialised", in.Args[0].Body)
		}
		target, ok := current.(values.String)
		if !ok {
			return ipperr.WrongOperandType("setchar requires the destination variable to hold a string, got %s", current.Type())
		}
		idxV, err := m.resolveSymbol(in.Args[1])
		if err != nil {
			return err
		}
		idx, ok := idxV.(values.Int)
		if !ok {
			return ipperr.WrongOperandType("setchar requires an int index, got %s", idxV.Type())
		}
		replV, err := m.resolveSymbol(in.Args[2])
		if err != nil {
			return err
		}
		repl, ok := replV.(values.String)
		if !ok {
			return ipperr.WrongOperandType("setchar requires a string replacement, got %s", replV.Type())
		}
		result, err := values.SetChar(target, idx, repl)
		if err != nil {
			return err
		}
		return fr.Set(name, result)

	case "CONCAT":
		fr, name, x, y, err := m.binaryOperands(in)
		if err != nil {
			return err
		}
		result, err := values.Concat(x, y)
		if err != nil {
			return err
		}
		return fr.Set(name, result)

	case "STRLEN":
		fr, name, err := m.resolveVar(in.Args[0])
		if err != nil {
			return err
		}
		x, err := m.resolveSymbol(in.Args[1])
		if err != nil {
			return err
		}
		result, err := values.StrLen(x)
		if err != nil {
			return err
		}
		return fr.Set(name, result)

	case "INT2FLOAT":
		fr, name, err := m.resolveVar(in.Args[0])
		if err != nil {
			return err
		}
		x, err := m.resolveSymbol(in.Args[1])
		if err != nil {
			return err
		}
		result, err := values.IntToFloat(x)
		if err != nil {
			return err
		}
		return fr.Set(name, result)

	case "FLOAT2INT":
		fr, name, err := m.resolveVar(in.Args[0])
		if err != nil {
			return err
		}
		x, err := m.resolveSymbol(in.Args[1])
		if err != nil {
			return err
		}
		result, err := values.FloatToInt(x)
		if err != nil {
			return err
		}
		return fr.Set(name, result)

	case "TYPE":
		fr, name, err := m.resolveVar(in.Args[0])
		if err != nil {
			return err
		}
		v, err := m.resolveSymbolForType(in.Args[1])
		if err != nil {
			return err
		}
		return fr.Set(name, values.TypeName(v))

	case "INT2CHARS":
		x, err := m.operands.pop()
		if err != nil {
			return err
		}
		i, ok := x.(values.Int)
		if !ok {
			return ipperr.WrongOperandType("int2char requires an int operand, got %s", x.Type())
		}
		result, err := values.IntToChar(i)
		if err != nil {
			return err
		}
		m.operands.push(result)
		return nil

	case "STRI2INTS":
		idxV, s, err := m.popPair()
		if err != nil {
			return err
		}
		idx, ok := idxV.(values.Int)
		if !ok {
			return ipperr.WrongOperandType("stri2int requires an int index, got %s", idxV.Type())
		}
		str, ok := s.(values.String)
		if !ok {
			return ipperr.WrongOperandType("stri2int requires a string operand, got %s", s.Type())
		}
		result, err := values.StringCharToInt(str, idx)
		if err != nil {
			return err
		}
		m.operands.push(result)
		return nil

	default:
		return ipperr.BadStructure("unreachable: execString got opcode %s", in.Opcode)
	}
}

// stringIndexOperands resolves the common "str idx" operand shape shared by
// STRI2INT and GETCHAR, validating their concrete kinds.
func (m *Machine) stringIndexOperands(strArg, idxArg loader.Arg) (values.String, values.Int, error) {
	sv, err := m.resolveSymbol(strArg)
	if err != nil {
		return "", 0, err
	}
	s, ok := sv.(values.String)
	if !ok {
		return "", 0, ipperr.WrongOperandType("expected a string operand, got %s", sv.Type())
	}
	iv, err := m.resolveSymbol(idxArg)
	if err != nil {
		return "", 0, err
	}
	idx, ok := iv.(values.Int)
	if !ok {
		return "", 0, ipperr.WrongOperandType("expected an int index, got %s", iv.Type())
	}
	return s, idx, nil
}

// resolveSymbolForType is like resolveSymbol except it tolerates an
// uninitialised variable, returning values.Uninit instead of erroring; the
// one case where reading an uninitialised slot is not exit 56.
func (m *Machine) resolveSymbolForType(a loader.Arg) (values.Value, error) {
	if a.Kind != "var" {
		return decodeLiteral(a)
	}
	fr, name, err := m.resolveVar(a)
	if err != nil {
		return nil, err
	}
	return fr.Get(name)
}
