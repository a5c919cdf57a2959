package maincmd_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/mna/mainer"
	"github.com/mna/loxtree/internal/filetest"
	"github.com/mna/loxtree/internal/maincmd"
)

// TestRun exercises the run subcommand end to end (scan+parse+evaluate) on
// every testdata/*.lox program, comparing stdout against its golden .want
// file.
func TestRun(t *testing.T) {
	dir := "testdata"
	for _, fi := range filetest.SourceFiles(t, dir, ".lox") {
		t.Run(fi.Name(), func(t *testing.T) {
			var out, errs bytes.Buffer
			stdio := mainer.Stdio{Stdout: &out, Stderr: &errs}

			c := maincmd.Cmd{}
			code := c.Main([]string{"loxtree", "run", filepath.Join(dir, fi.Name())}, stdio)

			if code != maincmd.ExitOK {
				t.Fatalf("run %s: exit code %d, stderr: %s", fi.Name(), code, errs.String())
			}
			filetest.DiffOutput(t, fi, out.String(), dir)
		})
	}
}

// TestRunErrors exercises the run subcommand's two failure exit codes: a
// syntax error (65) and a runtime error (70), comparing stderr against each
// program's golden .err file.
func TestRunErrors(t *testing.T) {
	dir := filepath.Join("testdata", "errors")
	wantCodes := map[string]mainer.ExitCode{
		"badvar.lox":    maincmd.ExitDataErr,
		"zerodiv.lox":   maincmd.ExitRuntime,
		"undefined.lox": maincmd.ExitRuntime,
	}

	for _, fi := range filetest.SourceFiles(t, dir, ".lox") {
		t.Run(fi.Name(), func(t *testing.T) {
			var out, errs bytes.Buffer
			stdio := mainer.Stdio{Stdout: &out, Stderr: &errs}

			c := maincmd.Cmd{}
			code := c.Main([]string{"loxtree", "run", filepath.Join(dir, fi.Name())}, stdio)

			if want, ok := wantCodes[fi.Name()]; ok && code != want {
				t.Errorf("exit code = %d, want %d", code, want)
			}
			filetest.DiffErrors(t, fi, errs.String(), dir)
		})
	}
}

// TestTokenize exercises the tokenize subcommand's KIND LEXEME LITERAL
// output format.
func TestTokenize(t *testing.T) {
	dir := filepath.Join("testdata", "tokenize")
	for _, fi := range filetest.SourceFiles(t, dir, ".lox") {
		t.Run(fi.Name(), func(t *testing.T) {
			var out, errs bytes.Buffer
			stdio := mainer.Stdio{Stdout: &out, Stderr: &errs}

			c := maincmd.Cmd{}
			code := c.Main([]string{"loxtree", "tokenize", filepath.Join(dir, fi.Name())}, stdio)

			if code != maincmd.ExitOK {
				t.Fatalf("tokenize %s: exit code %d, stderr: %s", fi.Name(), code, errs.String())
			}
			filetest.DiffOutput(t, fi, out.String(), dir)
		})
	}
}
