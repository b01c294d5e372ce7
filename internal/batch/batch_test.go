package batch

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/banshee-data/wirescan/internal/db"
	"github.com/banshee-data/wirescan/internal/monitoring"
	"github.com/banshee-data/wirescan/internal/testutil"
	"github.com/banshee-data/wirescan/internal/wire"
)

func TestMain(m *testing.M) {
	// Keep batch progress and per-file skip reports out of test output.
	monitoring.SetLogger(nil)
	monitoring.SetErrorLogger(nil)
	os.Exit(m.Run())
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.dat", "b.dat", "_excluded.dat", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.dat"), 0755); err != nil {
		t.Fatal(err)
	}

	files, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	sort.Strings(files)
	want := []string{filepath.Join(dir, "a.dat"), filepath.Join(dir, "b.dat")}
	if diff := cmp.Diff(want, files); diff != "" {
		t.Errorf("discovered files (-want +got):\n%s", diff)
	}
}

func TestDiscoverMissingDir(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "absent"))
	testutil.AssertError(t, err)
}

func writeGoodRecording(t *testing.T, path string) {
	t.Helper()
	disc := testutil.Disc{
		Radii:              []float64{5.0, 7.0},
		X:                  12.5,
		Z:                  3.0,
		Rotations:          3,
		SamplesPerRotation: 1200,
		Lead:               200,
		Current:            10.0,
	}
	testutil.WriteDat(t, path, disc.Build())
}

func writeNoGeometryRecording(t *testing.T, path string) {
	t.Helper()
	disc := testutil.Disc{
		Radii:              []float64{5.0},
		Rotations:          3,
		SamplesPerRotation: 1200,
		Lead:               200,
		Current:            10.0,
	}
	rec := disc.Build()
	delete(rec.MetaVals, "r0")
	testutil.WriteDat(t, path, rec)
}

func TestRunBatchSkipsBadRecordings(t *testing.T) {
	dir := t.TempDir()
	writeGoodRecording(t, filepath.Join(dir, "good1.dat"))
	writeGoodRecording(t, filepath.Join(dir, "good2.dat"))
	writeNoGeometryRecording(t, filepath.Join(dir, "nogeo.dat"))

	files, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	sink := &testutil.MemorySink{}
	runner := &Runner{
		Grid:    wire.DefaultGrid(),
		Sink:    sink,
		Workers: 1,
	}
	res := runner.Run(files)
	if res.Processed != 2 || res.Skipped != 1 {
		t.Errorf("result = %+v, want 2 processed, 1 skipped", res)
	}
	// Two wires, 67 bins, two good recordings.
	if want := 2 * 2 * 67; len(sink.Rows) != want {
		t.Errorf("sink holds %d rows, want %d", len(sink.Rows), want)
	}
}

func TestRunBatchParallelKeepsRecordingsAtomic(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.dat", "b.dat", "c.dat", "d.dat"} {
		writeGoodRecording(t, filepath.Join(dir, name))
	}
	files, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	sink := &testutil.MemorySink{}
	runner := &Runner{
		Grid:    wire.DefaultGrid(),
		Sink:    sink,
		Workers: 4,
	}
	res := runner.Run(files)
	if res.Processed != 4 || res.Skipped != 0 {
		t.Fatalf("result = %+v, want 4 processed", res)
	}
	if want := 4 * 2 * 67; len(sink.Rows) != want {
		t.Fatalf("sink holds %d rows, want %d", len(sink.Rows), want)
	}

	// Emission is serialised per recording: each consecutive block of
	// Nwire*Ntheta rows must belong to one recording, starting with the
	// first wire's radius and never interleaving another file's rows.
	const block = 2 * 67
	for i := 0; i < len(sink.Rows); i += block {
		if got := sink.Rows[i][0]; got != 5.0 {
			t.Errorf("block %d starts with radius %g, want 5", i/block, got)
		}
		if got := sink.Rows[i+67][0]; got != 7.0 {
			t.Errorf("block %d second wire radius %g, want 7", i/block, got)
		}
	}
}

func TestRunBatchRecordsToDatabase(t *testing.T) {
	dir := t.TempDir()
	writeGoodRecording(t, filepath.Join(dir, "good.dat"))
	files, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	results, err := db.New(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("db.New: %v", err)
	}
	defer results.Close()
	grid := wire.DefaultGrid()
	runID, err := results.CreateScanRun(dir, grid)
	if err != nil {
		t.Fatalf("CreateScanRun: %v", err)
	}

	runner := &Runner{
		Grid:    grid,
		Sink:    &testutil.MemorySink{},
		DB:      results,
		RunID:   runID,
		Workers: 1,
	}
	res := runner.Run(files)
	if res.Processed != 1 {
		t.Fatalf("result = %+v, want 1 processed", res)
	}

	n, err := results.ProfileRowCount(runID)
	if err != nil {
		t.Fatalf("ProfileRowCount: %v", err)
	}
	if want := 2 * 67; n != want {
		t.Errorf("database holds %d rows, want %d", n, want)
	}
}
