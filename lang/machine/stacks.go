package machine

import (
	"github.com/ippcode23/ippvm/lang/ipperr"
	"github.com/ippcode23/ippvm/lang/values"
)

// operandStack is the stack manipulated by PUSHS/POPS and the S-suffixed
// arithmetic/comparison/boolean opcodes.
type operandStack struct {
	elems []values.Value
}

func (s *operandStack) push(v values.Value) {
	s.elems = append(s.elems, v)
}

func (s *operandStack) pop() (values.Value, error) {
	n := len(s.elems)
	if n == 0 {
		return nil, ipperr.MissingValue("operand stack is empty")
	}
	v := s.elems[n-1]
	s.elems = s.elems[:n-1]
	return v, nil
}

func (s *operandStack) clear() {
	s.elems = nil
}

// callStack is the stack of return instruction indices manipulated by
// CALL/RETURN.
type callStack struct {
	returnTo []int
}

func (s *callStack) push(pc int) {
	s.returnTo = append(s.returnTo, pc)
}

func (s *callStack) pop() (int, error) {
	n := len(s.returnTo)
	if n == 0 {
		return 0, ipperr.MissingValue("call stack is empty")
	}
	pc := s.returnTo[n-1]
	s.returnTo = s.returnTo[:n-1]
	return pc, nil
}
