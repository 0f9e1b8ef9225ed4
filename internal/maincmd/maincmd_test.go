package maincmd_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/mna/mainer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ippcode23/ippvm/internal/maincmd"
)

func writeSource(t *testing.T, xml string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.src")
	require.NoError(t, os.WriteFile(path, []byte(xml), 0o644))
	return path
}

func TestMainMissingSourceAndInputIsExit10(t *testing.T) {
	var stdout, stderr bytes.Buffer
	c := maincmd.Cmd{}
	code := c.Main([]string{"ippvm"}, mainer.Stdio{Stdout: &stdout, Stderr: &stderr, Stdin: bytes.NewReader(nil)})
	assert.Equal(t, 10, int(code))
}

func TestMainCannotOpenSourceIsExit11(t *testing.T) {
	var stdout, stderr bytes.Buffer
	c := maincmd.Cmd{}
	code := c.Main([]string{"ippvm", "--source=/does/not/exist.src"},
		mainer.Stdio{Stdout: &stdout, Stderr: &stderr, Stdin: bytes.NewReader(nil)})
	assert.Equal(t, 11, int(code))
}

func TestMainRunsProgramFromSourceFlag(t *testing.T) {
	src := writeSource(t, `
		<program language="IPPcode23">
			<instruction order="1" opcode="WRITE">
				<arg1 type="string">hi</arg1>
			</instruction>
		</program>`)

	var stdout, stderr bytes.Buffer
	c := maincmd.Cmd{}
	code := c.Main([]string{"ippvm", "--source=" + src},
		mainer.Stdio{Stdout: &stdout, Stderr: &stderr, Stdin: bytes.NewReader(nil)})

	assert.Equal(t, 0, int(code))
	assert.Equal(t, "hi", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestMainRunsProgramFromStdinWhenSourceFlagOmitted(t *testing.T) {
	xml := `
		<program language="IPPcode23">
			<instruction order="1" opcode="WRITE">
				<arg1 type="string">hi</arg1>
			</instruction>
		</program>`
	inputPath := filepath.Join(t.TempDir(), "empty.input")
	require.NoError(t, os.WriteFile(inputPath, nil, 0o644))

	var stdout, stderr bytes.Buffer
	c := maincmd.Cmd{}
	code := c.Main([]string{"ippvm", "--input=" + inputPath},
		mainer.Stdio{Stdout: &stdout, Stderr: &stderr, Stdin: bytes.NewBufferString(xml)})

	assert.Equal(t, 0, int(code))
	assert.Equal(t, "hi", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestMainCannotOpenInputIsExit11(t *testing.T) {
	src := writeSource(t, `
		<program language="IPPcode23">
			<instruction order="1" opcode="EXIT">
				<arg1 type="int">0</arg1>
			</instruction>
		</program>`)

	var stdout, stderr bytes.Buffer
	c := maincmd.Cmd{}
	code := c.Main([]string{"ippvm", "--source=" + src, "--input=/does/not/exist.input"},
		mainer.Stdio{Stdout: &stdout, Stderr: &stderr, Stdin: bytes.NewReader(nil)})
	assert.Equal(t, 11, int(code))
}

func TestMainHelpFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	c := maincmd.Cmd{}
	code := c.Main([]string{"ippvm", "--help"},
		mainer.Stdio{Stdout: &stdout, Stderr: &stderr, Stdin: bytes.NewReader(nil)})

	assert.Equal(t, 0, int(code))
	assert.Contains(t, stdout.String(), "usage:")
}
