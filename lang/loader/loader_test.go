package loader_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ippcode23/ippvm/lang/ipperr"
	"github.com/ippcode23/ippvm/lang/loader"
)

func TestLoad(t *testing.T) {
	cases := []struct {
		desc string
		in   string
		err  string // error "contains" this string; no error expected if empty
	}{
		{"not xml", `not xml at all`, "malformed XML"},

		{"wrong root element", `<foo language="IPPcode23"></foo>`, "root element must be <program>"},

		{"missing language", `<program></program>`, `language="IPPcode23"`},

		{"wrong child element", `
			<program language="IPPcode23">
				<notaninstruction order="1" opcode="WRITE"/>
			</program>`, "must be <instruction>"},

		{"missing opcode", `
			<program language="IPPcode23">
				<instruction order="1"/>
			</program>`, "missing opcode"},

		{"bad order", `
			<program language="IPPcode23">
				<instruction order="abc" opcode="BREAK"/>
			</program>`, "order must be a positive integer"},

		{"duplicate order", `
			<program language="IPPcode23">
				<instruction order="1" opcode="BREAK"/>
				<instruction order="1" opcode="BREAK"/>
			</program>`, "duplicate instruction order"},

		{"arg gap", `
			<program language="IPPcode23">
				<instruction order="1" opcode="WRITE">
					<arg2 type="int">1</arg2>
				</instruction>
			</program>`, "without preceding argument"},

		{"bad arg kind", `
			<program language="IPPcode23">
				<instruction order="1" opcode="WRITE">
					<arg1 type="integer">1</arg1>
				</instruction>
			</program>`, "unknown argument type"},

		{"reorders by order attribute", `
			<program language="IPPcode23">
				<instruction order="20" opcode="BREAK"/>
				<instruction order="10" opcode="CREATEFRAME"/>
			</program>`, ""},

		{"minimal valid program", `
			<program language="IPPcode23">
				<instruction order="1" opcode="write">
					<arg1 type="string">hello</arg1>
				</instruction>
			</program>`, ""},
	}

	for _, c := range cases {
		t.Run(c.desc, func(t *testing.T) {
			prog, err := loader.Load(strings.NewReader(c.in))
			if c.err != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), c.err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, prog)
		})
	}
}

func TestLoadOrdersAndNormalisesOpcodes(t *testing.T) {
	prog, err := loader.Load(strings.NewReader(`
		<program language="IPPcode23">
			<instruction order="20" opcode="break"/>
			<instruction order="10" opcode="createframe"/>
		</program>`))
	require.NoError(t, err)
	require.Len(t, prog.Instructions, 2)
	assert.Equal(t, "CREATEFRAME", prog.Instructions[0].Opcode)
	assert.Equal(t, "BREAK", prog.Instructions[1].Opcode)
}

func TestBuildLabels(t *testing.T) {
	prog, err := loader.Load(strings.NewReader(`
		<program language="IPPcode23">
			<instruction order="1" opcode="LABEL">
				<arg1 type="label">loop</arg1>
			</instruction>
			<instruction order="2" opcode="BREAK"/>
		</program>`))
	require.NoError(t, err)

	labels, err := loader.BuildLabels(prog)
	require.NoError(t, err)
	assert.Equal(t, 0, labels["loop"])
}

// TestPropertyIdempotentReload verifies loading the same XML twice
// produces the same decoded instruction sequence.
func TestPropertyIdempotentReload(t *testing.T) {
	src := `
		<program language="IPPcode23">
			<instruction order="2" opcode="WRITE"><arg1 type="int">2</arg1></instruction>
			<instruction order="1" opcode="WRITE"><arg1 type="int">1</arg1></instruction>
		</program>`

	first, err := loader.Load(strings.NewReader(src))
	require.NoError(t, err)
	second, err := loader.Load(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// TestPropertyLabelUniqueness verifies the label pre-pass rejects any
// program with a duplicate LABEL name, however far apart the two
// occurrences are in the instruction sequence.
func TestPropertyLabelUniqueness(t *testing.T) {
	prog, err := loader.Load(strings.NewReader(`
		<program language="IPPcode23">
			<instruction order="1" opcode="LABEL"><arg1 type="label">dup</arg1></instruction>
			<instruction order="2" opcode="WRITE"><arg1 type="int">1</arg1></instruction>
			<instruction order="3" opcode="WRITE"><arg1 type="int">2</arg1></instruction>
			<instruction order="4" opcode="LABEL"><arg1 type="label">dup</arg1></instruction>
		</program>`))
	require.NoError(t, err)

	_, err = loader.BuildLabels(prog)
	require.Error(t, err)
	assert.Equal(t, 52, ipperr.Code(err))
}

func TestBuildLabelsRejectsDuplicates(t *testing.T) {
	prog, err := loader.Load(strings.NewReader(`
		<program language="IPPcode23">
			<instruction order="1" opcode="LABEL">
				<arg1 type="label">loop</arg1>
			</instruction>
			<instruction order="2" opcode="LABEL">
				<arg1 type="label">loop</arg1>
			</instruction>
		</program>`))
	require.NoError(t, err)

	_, err = loader.BuildLabels(prog)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate label")
}
