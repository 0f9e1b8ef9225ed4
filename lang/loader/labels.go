package loader

import "github.com/ippcode23/ippvm/lang/ipperr"

// BuildLabels performs the single label pre-pass: scanning the decoded
// instruction sequence once in index order and recording every LABEL
// name's instruction index. Duplicate labels are rejected before
// execution ever starts.
func BuildLabels(prog *Program) (map[string]int, error) {
	labels := make(map[string]int)
	for i, in := range prog.Instructions {
		if in.Opcode != "LABEL" {
			continue
		}
		if len(in.Args) != 1 {
			return nil, ipperr.BadStructure("LABEL requires exactly one argument")
		}
		name := in.Args[0].Body
		if _, dup := labels[name]; dup {
			return nil, ipperr.Semantic("duplicate label %q", name)
		}
		labels[name] = i
	}
	return labels, nil
}
