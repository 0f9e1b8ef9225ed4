// Package maincmd wires command-line flags, environment configuration and
// process I/O to a single interpreter run, using mainer.Parser/mainer.Stdio
// (github.com/mna/mainer) for flag parsing and I/O abstraction. IPPcode23
// has a single action: load a source file and run it.
package maincmd

import (
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v6"
	"github.com/mna/mainer"

	"github.com/ippcode23/ippvm/lang/ipperr"
	"github.com/ippcode23/ippvm/lang/loader"
	"github.com/ippcode23/ippvm/lang/machine"
)

const binName = "ippvm"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [--source=<file>] [--input=<file>]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [--source=<file>] [--input=<file>]
       %[1]s -h|--help
       %[1]s -v|--version

Interpreter for the IPPcode23 instruction set, read from its XML
representation.

Valid flag options are:
       --source=<file>           IPPcode23 XML source to interpret.
                                 If omitted, the source is read from stdin.
       --input=<file>            File providing the program's READ input.
                                 If omitted, input is read from stdin.
       At least one of --source, --input must be given.
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.

Environment variables:
       IPPVM_MAX_STEPS           Abort execution after this many
                                 instructions (0, the default, means no
                                 limit).
       IPPVM_MAX_CALL_DEPTH      Abort execution once CALL would push the
                                 call stack past this depth (0, the
                                 default, means no limit).
`, binName)
)

// Cmd holds the parsed command-line flags: BuildVersion/Date plus
// flag-tagged fields, parsed by a mainer.Parser inside Main.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	Source string `flag:"source"`
	Input  string `flag:"input"`
}

// envConfig holds the ambient safety-valve settings read from the
// environment via github.com/caarlos0/env/v6.
type envConfig struct {
	MaxSteps          int `env:"IPPVM_MAX_STEPS" envDefault:"0"`
	MaxCallStackDepth int `env:"IPPVM_MAX_CALL_DEPTH" envDefault:"0"`
}

// Validate is here only so Cmd satisfies mainer's optional Validator
// interface; the "at least one of --source/--input" check happens in
// Main instead, since that is IPPcode23's own exit-10 condition, not a
// generic mainer.InvalidArgs failure.
func (c *Cmd) Validate() error {
	return nil
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.ExitCode(ipperr.ExitWrongInvocation)
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	if c.Source == "" && c.Input == "" {
		fmt.Fprintf(stdio.Stderr, "at least one of --source or --input is required\n%s", shortUsage)
		return mainer.ExitCode(ipperr.ExitWrongInvocation)
	}

	var cfg envConfig
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid environment configuration: %s\n", err)
		return mainer.ExitCode(ipperr.ExitWrongInvocation)
	}

	code, err := c.run(stdio, cfg)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s\n", err)
	}
	return mainer.ExitCode(code)
}

// run loads and executes the configured source program, returning the
// process exit code and, for any error, a human-readable description to
// print to stderr. Either --source or --input (but not necessarily both)
// may be omitted, in which case the corresponding stream is read from
// stdin; Main has already rejected the case where both are absent.
func (c *Cmd) run(stdio mainer.Stdio, cfg envConfig) (int, error) {
	var src io.Reader = stdio.Stdin
	if c.Source != "" {
		f, err := os.Open(c.Source)
		if err != nil {
			return ipperr.ExitCannotOpenFile, fmt.Errorf("cannot open source file: %w", err)
		}
		defer f.Close()
		src = f
	}

	prog, err := loader.Load(src)
	if err != nil {
		return ipperr.Code(err), err
	}

	labels, err := loader.BuildLabels(prog)
	if err != nil {
		return ipperr.Code(err), err
	}

	m := machine.New(prog, labels)
	m.Stdout = stdio.Stdout
	m.Stderr = stdio.Stderr
	m.MaxSteps = cfg.MaxSteps
	m.MaxCallStackDepth = cfg.MaxCallStackDepth

	if c.Input != "" {
		in, err := os.Open(c.Input)
		if err != nil {
			return ipperr.ExitCannotOpenFile, fmt.Errorf("cannot open input file: %w", err)
		}
		defer in.Close()
		m.Stdin = in
	} else {
		m.Stdin = stdio.Stdin
	}

	exitCode, err := m.Run()
	if err != nil {
		if code := ipperr.Code(err); code != 0 {
			return code, err
		}
		return 1, err
	}
	return exitCode, nil
}
