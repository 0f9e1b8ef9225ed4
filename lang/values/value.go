// Package values implements the tagged value model of the IPPcode23
// interpreter: a small closed set of concrete types, each satisfying
// Value, plus the Uninit sentinel used by uninitialised variable slots.
package values

// Value is the interface implemented by every value the machine can hold
// in a variable slot, push on the operand stack, or pass as a resolved
// instruction operand.
type Value interface {
	// String returns the value's WRITE/DPRINT textual form.
	String() string
	// Type returns the kind name used by the TYPE instruction: "int",
	// "float", "bool", "string" or "nil".
	Type() string
}

// Ordered is implemented by value kinds that support LT/GT against a peer
// of the same kind.
type Ordered interface {
	Value
	// Cmp compares the receiver to y, which is guaranteed by the caller to
	// be of the same concrete type. It returns a negative number, zero, or
	// a positive number as the receiver is less than, equal to, or greater
	// than y.
	Cmp(y Value) int
}

// uninitType is the sentinel stored in a variable slot created by DEFVAR
// before any MOVE/POPS/READ/etc. assigns it a Value. It is never exposed
// as a Value outside the machine package; reading it is always an error
// except for the one deliberate exception in the TYPE instruction.
type uninitType struct{}

func (uninitType) String() string { return "" }
func (uninitType) Type() string   { return "" }

// Uninit is the uninitialised-slot marker.
var Uninit Value = uninitType{}

// IsUninit reports whether v is the uninitialised marker.
func IsUninit(v Value) bool {
	_, ok := v.(uninitType)
	return ok
}
