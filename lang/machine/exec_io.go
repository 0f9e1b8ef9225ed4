package machine

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ippcode23/ippvm/lang/ipperr"
	"github.com/ippcode23/ippvm/lang/loader"
	"github.com/ippcode23/ippvm/lang/values"
)

// execIO implements READ, WRITE, DPRINT and BREAK.
func (m *Machine) execIO(in loader.Instruction) error {
	switch in.Opcode {
	case "READ":
		return m.execRead(in)
	case "WRITE":
		v, err := m.resolveSymbol(in.Args[0])
		if err != nil {
			return err
		}
		_, err = io.WriteString(m.Stdout, v.String())
		return err
	case "DPRINT":
		v, err := m.resolveSymbol(in.Args[0])
		if err != nil {
			return err
		}
		_, err = io.WriteString(m.Stderr, v.String())
		return err
	case "BREAK":
		m.dumpState()
		return nil
	default:
		return ipperr.BadStructure("unreachable: execIO got opcode %s", in.Opcode)
	}
}

// execRead implements READ: a line is consumed from Stdin and parsed per
// the declared type. Any parse failure, and end-of-input, both yield Nil
// rather than a runtime error. READ is the one operation IPPcode23 lets
// fail silently, since a program has no other way to probe whether input
// remains.
func (m *Machine) execRead(in loader.Instruction) error {
	fr, name, err := m.resolveVar(in.Args[0])
	if err != nil {
		return err
	}
	if in.Args[1].Kind != "type" {
		return ipperr.BadStructure("READ's second argument must be a type descriptor, got kind %q", in.Args[1].Kind)
	}
	kind := in.Args[1].Body

	line, readErr := m.stdin.ReadString('\n')
	if readErr != nil && readErr != io.EOF {
		return fr.Set(name, values.Nil)
	}
	if readErr == io.EOF && line == "" {
		return fr.Set(name, values.Nil)
	}
	line = strings.TrimRight(line, "\r\n")

	var v values.Value
	switch kind {
	case "int":
		n, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
		if err != nil {
			v = values.Nil
		} else {
			v = values.Int(n)
		}
	case "float":
		f, err := values.ParseHexFloat(strings.TrimSpace(line))
		if err != nil {
			v = values.Nil
		} else {
			v = f
		}
	case "bool":
		v = values.Bool(strings.EqualFold(strings.TrimSpace(line), "true"))
	case "string":
		v = values.String(line)
	default:
		return ipperr.BadStructure("READ's type descriptor must be int, float, bool or string, got %q", kind)
	}
	return fr.Set(name, v)
}

// dumpState writes a diagnostic snapshot of the machine's current state to
// Stderr. It has no effect on the program's behaviour or exit code.
func (m *Machine) dumpState() {
	fmt.Fprintf(m.Stderr, "position: instruction %d/%d (%d executed)\n",
		m.pc+1, len(m.program.Instructions), m.steps)
	fmt.Fprintf(m.Stderr, "call stack depth: %d\n", len(m.calls.returnTo))
	fmt.Fprintf(m.Stderr, "operand stack depth: %d\n", len(m.operands.elems))
	fmt.Fprintf(m.Stderr, "local frames: %d, temporary frame present: %t\n",
		len(m.Frames.lfStack), m.Frames.TF != nil)
}
