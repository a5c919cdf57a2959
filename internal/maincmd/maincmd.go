// Package maincmd implements the loxtree command line: flag parsing and
// dispatch to the tokenize/parse/evaluate/run subcommands.
package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"
)

const binName = "loxtree"

var (
	shortUsage = fmt.Sprintf(`
usage: %s <command> <path>
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s <command> <path>
       %[1]s -h|--help
       %[1]s -v|--version

Tree-walking interpreter for the Lox language.

The <command> can be one of:
       tokenize PATH             Scan PATH and print its tokens.
       parse PATH                Scan and parse PATH, printing its AST.
       evaluate PATH             Scan, parse and evaluate PATH's leading
                                 expression, printing its value.
       run PATH                  Scan, parse and evaluate all of PATH.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.

More information on the %[1]s repository:
       https://github.com/mna/loxtree
`, binName)
)

// Exit codes, per the language design: a scan or parse failure is always
// 65, a runtime failure is always 70, and a file that can't be read is 1,
// regardless of which subcommand is running. This doesn't fit the
// mainer.Success/Failure binary the teacher's own commands use, so each
// subcommand here returns one of these directly instead.
const (
	ExitOK      mainer.ExitCode = 0
	ExitDataErr mainer.ExitCode = 65
	ExitRuntime mainer.ExitCode = 70
	ExitIOErr   mainer.ExitCode = 1
)

// Cmd is the loxtree command line, populated by mainer.Parser.Parse from
// flags and positional arguments.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	args []string
}

func (c *Cmd) SetArgs(args []string)    { c.args = args }
func (c *Cmd) SetFlags(map[string]bool) {}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}
	if len(c.args) == 0 {
		return fmt.Errorf("no command specified")
	}
	switch c.args[0] {
	case "tokenize", "parse", "evaluate", "run":
		if len(c.args) != 2 {
			return fmt.Errorf("%s: exactly one file path must be provided", c.args[0])
		}
	default:
		return fmt.Errorf("unknown command: %s", c.args[0])
	}
	return nil
}

// Main parses args, dispatches to the requested subcommand, and returns the
// process exit code to use.
func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{EnvVars: false, EnvPrefix: binName + "_"}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return ExitOK
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return ExitOK
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	path := c.args[1]

	switch c.args[0] {
	case "tokenize":
		return c.tokenize(ctx, stdio, path)
	case "parse":
		return c.parse(ctx, stdio, path)
	case "evaluate":
		return c.evaluate(ctx, stdio, path)
	case "run":
		return c.run(ctx, stdio, path)
	default:
		return mainer.InvalidArgs
	}
}

// readSource reads path, reporting an I/O exit code on failure.
func readSource(stdio mainer.Stdio, path string) ([]byte, mainer.ExitCode, bool) {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return nil, ExitIOErr, false
	}
	return src, ExitOK, true
}
