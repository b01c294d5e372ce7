package wiredata

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/banshee-data/wirescan/internal/testutil"
)

func TestWriteAndReadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output.wdf")
	w, err := Create(path, false)
	testutil.AssertNoError(t, err)

	testutil.AssertNoError(t, w.WriteLine(5.0, 12.5, 0, -0.0985, 10.0))
	testutil.AssertNoError(t, w.WriteLine(7.0, 12.5, 0, -0.0955, 9.5))
	testutil.AssertNoError(t, w.Close())

	raw, err := os.ReadFile(path)
	testutil.AssertNoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if got := len(strings.Fields(lines[0])); got != 5 {
		t.Errorf("row has %d columns, want 5", got)
	}
	if !strings.HasPrefix(lines[0], "5.000000e+00 1.250000e+01") {
		t.Errorf("unexpected first row: %q", lines[0])
	}
}

func TestCreateRefusesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output.wdf")
	testutil.AssertNoError(t, os.WriteFile(path, []byte("old"), 0644))

	_, err := Create(path, false)
	testutil.AssertError(t, err)

	// Force truncates the prior results.
	w, err := Create(path, true)
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, w.Close())
	raw, err := os.ReadFile(path)
	testutil.AssertNoError(t, err)
	if len(raw) != 0 {
		t.Errorf("forced create left %d bytes, want empty file", len(raw))
	}
}
