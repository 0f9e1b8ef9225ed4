// Package loader decodes an IPPcode23 XML document into an ordered
// sequence of decoded instructions, validating the structural invariants
// of the document format. It does not resolve labels (see BuildLabels)
// and does not interpret argument bodies beyond splitting them into
// (kind, text) descriptor pairs; operand resolution happens at execution
// time, in the machine package.
package loader

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/ippcode23/ippvm/lang/ipperr"
)

// Arg is a decoded argument descriptor: a declared kind and its raw
// textual body.
type Arg struct {
	Kind string
	Body string
}

var validKinds = map[string]bool{
	"int": true, "float": true, "bool": true, "string": true,
	"nil": true, "label": true, "type": true, "var": true,
}

// Instruction is a decoded, opcode-normalised instruction with its
// arguments in position order (arg1, arg2, arg3).
type Instruction struct {
	Opcode string
	Args   []Arg
}

// Program is the result of a successful Load: the instruction sequence in
// dense execution order (index 0..N-1).
type Program struct {
	Instructions []Instruction
}

type rawArg struct {
	XMLName xml.Name
	Type    string `xml:"type,attr"`
	Value   string `xml:",chardata"`
}

type rawInstruction struct {
	XMLName xml.Name
	Order   string   `xml:"order,attr"`
	Opcode  string   `xml:"opcode,attr"`
	Args    []rawArg `xml:",any"`
}

type rawProgram struct {
	XMLName  xml.Name
	Language string           `xml:"language,attr"`
	Instrs   []rawInstruction `xml:",any"`
}

type ordered struct {
	order int
	instr Instruction
}

// Load reads and validates an IPPcode23 XML document from r, returning
// the decoded, order-sorted instruction sequence.
func Load(r io.Reader) (*Program, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ipperr.MalformedXML("cannot read source: %s", err)
	}

	var raw rawProgram
	if err := xml.Unmarshal(data, &raw); err != nil {
		return nil, ipperr.MalformedXML("malformed XML: %s", err)
	}

	if raw.XMLName.Local != "program" {
		return nil, ipperr.BadStructure("root element must be <program>, got <%s>", raw.XMLName.Local)
	}
	if !strings.EqualFold(raw.Language, "IPPcode23") {
		return nil, ipperr.BadStructure(`root element must declare language="IPPcode23", got %q`, raw.Language)
	}

	ords := make([]ordered, 0, len(raw.Instrs))
	seenOrder := make(map[int]bool, len(raw.Instrs))
	for _, ri := range raw.Instrs {
		if ri.XMLName.Local != "instruction" {
			return nil, ipperr.BadStructure("program children must be <instruction>, got <%s>", ri.XMLName.Local)
		}
		if ri.Opcode == "" {
			return nil, ipperr.BadStructure("instruction missing opcode attribute")
		}
		order, err := strconv.Atoi(strings.TrimSpace(ri.Order))
		if err != nil || order <= 0 {
			return nil, ipperr.BadStructure("instruction order must be a positive integer, got %q", ri.Order)
		}
		if seenOrder[order] {
			return nil, ipperr.BadStructure("duplicate instruction order %d", order)
		}
		seenOrder[order] = true

		args, err := decodeArgs(ri.Args)
		if err != nil {
			return nil, err
		}

		ords = append(ords, ordered{order: order, instr: Instruction{
			Opcode: strings.ToUpper(strings.TrimSpace(ri.Opcode)),
			Args:   args,
		}})
	}

	sort.Slice(ords, func(i, j int) bool { return ords[i].order < ords[j].order })

	prog := &Program{Instructions: make([]Instruction, len(ords))}
	for i, o := range ords {
		prog.Instructions[i] = o.instr
	}
	return prog, nil
}

var argTagOrder = []string{"arg1", "arg2", "arg3"}

func decodeArgs(raws []rawArg) ([]Arg, error) {
	byTag := make(map[string]rawArg, len(raws))
	for _, r := range raws {
		name := r.XMLName.Local
		if name != "arg1" && name != "arg2" && name != "arg3" {
			return nil, ipperr.BadStructure("instruction argument must be arg1, arg2 or arg3, got <%s>", name)
		}
		if _, dup := byTag[name]; dup {
			return nil, ipperr.BadStructure("duplicate argument tag <%s>", name)
		}
		byTag[name] = r
	}

	var args []Arg
	seenGap := false
	for _, tag := range argTagOrder {
		r, present := byTag[tag]
		if !present {
			seenGap = true
			continue
		}
		if seenGap {
			return nil, ipperr.BadStructure("argument %s present without preceding argument(s)", tag)
		}
		kind := strings.ToLower(strings.TrimSpace(r.Type))
		if !validKinds[kind] {
			return nil, ipperr.BadStructure("unknown argument type %q", r.Type)
		}
		args = append(args, Arg{Kind: kind, Body: strings.TrimSpace(r.Value)})
	}
	return args, nil
}

// String renders an Instruction for diagnostics (DPRINT/BREAK and error
// messages), in "OPCODE kind@body kind@body" form.
func (in Instruction) String() string {
	var b strings.Builder
	b.WriteString(in.Opcode)
	for _, a := range in.Args {
		fmt.Fprintf(&b, " %s@%s", a.Kind, a.Body)
	}
	return b.String()
}
