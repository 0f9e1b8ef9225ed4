package values

// NilType is the type of the unit value Nil. It is represented as a
// zero-size concrete type, not a pointer, so that Nil can be compared by
// ordinary equality and used as a map key.
type NilType struct{}

// Nil is the sole inhabitant of NilType.
var Nil Value = NilType{}

func (NilType) String() string { return "" }
func (NilType) Type() string   { return "nil" }
