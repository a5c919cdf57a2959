package filetest

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/kylelemons/godebug/diff"
)

var update = flag.Bool("test.update", false, "If set, overwrites golden files with the actual output instead of comparing.")

// SourceFiles returns the list of source files in dir corresponding to the
// specified extension.
func SourceFiles(t *testing.T, dir, ext string) []os.FileInfo {
	t.Helper()

	if ext != "" && ext[0] != '.' {
		ext = "." + ext
	}

	dents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}

	res := make([]os.FileInfo, 0, len(dents))
	for _, dent := range dents {
		if !dent.Type().IsRegular() {
			continue
		}
		if ext != "" && filepath.Ext(dent.Name()) != ext {
			continue
		}
		fi, err := dent.Info()
		if err != nil {
			t.Fatal(err)
		}
		res = append(res, fi)
	}
	return res
}

// DiffOutput validates that output matches the golden file next to fi in
// resultDir. Run with -test.update to overwrite the golden file instead.
func DiffOutput(t *testing.T, fi os.FileInfo, output, resultDir string) {
	t.Helper()
	DiffCustom(t, fi, "output", ".want", output, resultDir)
}

// DiffErrors validates that the error output matches the golden file next to
// fi in resultDir.
func DiffErrors(t *testing.T, fi os.FileInfo, output, resultDir string) {
	t.Helper()
	DiffCustom(t, fi, "errors", ".err", output, resultDir)
}

// DiffCustom is the general version of DiffOutput and DiffErrors: provide a
// label for the error logs (e.g. "output", "errors") and the golden file's
// extension (including the leading dot).
func DiffCustom(t *testing.T, fi os.FileInfo, label, ext, output, resultDir string) {
	t.Helper()

	wantFile := filepath.Join(resultDir, fi.Name()+ext)
	diffOrUpdate(t, label, wantFile, output)
}

func diffOrUpdate(t *testing.T, label, goldFile, output string) {
	if *update {
		if err := os.WriteFile(goldFile, []byte(output), 0600); err != nil {
			t.Fatal(err)
		}
		return
	}

	wantb, err := os.ReadFile(goldFile)
	if err != nil && !os.IsNotExist(err) {
		t.Fatal(err)
	}
	want := string(wantb)
	if testing.Verbose() {
		t.Logf("got %s:\n%s\n", label, output)
	}
	if patch := diff.Diff(want, output); patch != "" {
		if testing.Verbose() {
			t.Logf("want %s:\n%s\n", label, want)
		}
		t.Errorf("diff %s:\n%s\n", label, patch)
	}
}
