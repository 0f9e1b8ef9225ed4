package machine

// arity maps every recognised opcode to its required argument count. An
// opcode absent from this map is unknown (exit 32).
var arity = map[string]int{
	// arity 0
	"CREATEFRAME": 0, "PUSHFRAME": 0, "POPFRAME": 0, "RETURN": 0,
	"BREAK": 0, "CLEARS": 0, "ADDS": 0, "SUBS": 0, "MULS": 0, "IDIVS": 0,
	"LTS": 0, "GTS": 0, "EQS": 0, "ANDS": 0, "ORS": 0, "NOTS": 0,
	"INT2CHARS": 0, "STRI2INTS": 0,

	// arity 1
	"DEFVAR": 1, "CALL": 1, "PUSHS": 1, "POPS": 1, "LABEL": 1,
	"JUMP": 1, "EXIT": 1, "DPRINT": 1, "WRITE": 1,
	"JUMPIFEQS": 1, "JUMPIFNEQS": 1,

	// arity 2
	"MOVE": 2, "NOT": 2, "INT2CHAR": 2, "INT2FLOAT": 2, "FLOAT2INT": 2,
	"READ": 2, "STRLEN": 2, "TYPE": 2,

	// arity 3
	"ADD": 3, "SUB": 3, "MUL": 3, "IDIV": 3, "DIV": 3,
	"LT": 3, "GT": 3, "EQ": 3, "AND": 3, "OR": 3,
	"STRI2INT": 3, "CONCAT": 3, "GETCHAR": 3, "SETCHAR": 3,
	"JUMPIFEQ": 3, "JUMPIFNEQ": 3,
}
