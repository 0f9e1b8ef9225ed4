package maincmd_test

import (
	"bytes"
	"flag"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/mna/mainer"

	"github.com/ippcode23/ippvm/internal/filetest"
	"github.com/ippcode23/ippvm/internal/maincmd"
)

var testUpdateGoldenTests = flag.Bool("test.update-golden-tests", false, "If set, replace expected golden test results with actual results.")

// TestGolden runs every IPPcode23 source fixture under testdata/in through a
// full Cmd.Main, diffing its stdout and exit code against the recorded
// results under testdata/out.
func TestGolden(t *testing.T) {
	srcDir, resultDir := filepath.Join("testdata", "in"), filepath.Join("testdata", "out")

	for _, fi := range filetest.SourceFiles(t, srcDir, ".src") {
		t.Run(fi.Name(), func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			c := maincmd.Cmd{}
			code := c.Main([]string{"ippvm", "--source=" + filepath.Join(srcDir, fi.Name())},
				mainer.Stdio{Stdout: &stdout, Stderr: &stderr, Stdin: bytes.NewReader(nil)})

			filetest.DiffOutput(t, fi, stdout.String(), resultDir, testUpdateGoldenTests)
			filetest.DiffCustom(t, fi, "exit code", ".exit", strconv.Itoa(int(code)), resultDir, testUpdateGoldenTests)
		})
	}
}
