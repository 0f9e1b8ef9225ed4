package machine

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/ippcode23/ippvm/lang/ipperr"
	"github.com/ippcode23/ippvm/lang/loader"
)

// Machine is the single mutable execution state of an IPPcode23 run:
// frames, the two auxiliary stacks, the program counter and the label
// table. It is created once per program and driven to completion by Run;
// state lives in one struct passed explicitly rather than behind
// package-level globals.
type Machine struct {
	// Stdout, Stderr and Stdin are the I/O abstractions used by WRITE,
	// DPRINT/BREAK and READ respectively. If nil, they default to
	// os.Stdout, os.Stderr and os.Stdin.
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader

	// MaxSteps, if > 0, cancels execution once that many instructions
	// have been fetched. It exists purely as an operator safety valve;
	// it is not part of the IPPcode23 exit-code contract.
	MaxSteps int

	// MaxCallStackDepth, if > 0, cancels execution once CALL would push
	// the call stack beyond this depth.
	MaxCallStackDepth int

	program *loader.Program
	labels  map[string]int

	Frames   *Frames
	operands operandStack
	calls    callStack

	stdin *bufio.Reader
	pc    int
	steps int
}

// New returns a Machine ready to run prog, whose labels have already been
// resolved by loader.BuildLabels.
func New(prog *loader.Program, labels map[string]int) *Machine {
	return &Machine{
		program: prog,
		labels:  labels,
		Frames:  NewFrames(),
	}
}

func (m *Machine) init() {
	if m.Stdout == nil {
		m.Stdout = os.Stdout
	}
	if m.Stderr == nil {
		m.Stderr = os.Stderr
	}
	if m.Stdin == nil {
		m.Stdin = os.Stdin
	}
	m.stdin = bufio.NewReader(m.Stdin)
}

// Run executes the program to completion. It returns the process exit
// code (0 unless an EXIT instruction overrides it) and a non-nil *ipperr.
// Error if execution was aborted by a runtime error. Hitting MaxSteps or
// MaxCallStackDepth returns a plain error that carries no exit code.
// Falling off the end of the instruction sequence is a successful run
// (exit 0).
func (m *Machine) Run() (int, error) {
	m.init()
	n := len(m.program.Instructions)

	for m.pc < n {
		if m.MaxSteps > 0 && m.steps >= m.MaxSteps {
			return 0, fmt.Errorf("ippvm: execution step ceiling (%d) exceeded", m.MaxSteps)
		}
		m.steps++

		in := m.program.Instructions[m.pc]
		want, known := arity[in.Opcode]
		if !known {
			return 0, ipperr.BadStructure("unknown opcode %q", in.Opcode)
		}
		if len(in.Args) != want {
			return 0, ipperr.BadStructure("opcode %s expects %d argument(s), got %d", in.Opcode, want, len(in.Args))
		}

		next, exitCode, exited, err := m.dispatch(in)
		if err != nil {
			return 0, err
		}
		if exited {
			return exitCode, nil
		}
		if next >= 0 {
			m.pc = next
		} else {
			m.pc++
		}
	}
	return 0, nil
}
