// Package batch discovers wire-scan data files and fans their processing
// out across a worker pool. Each file is an independent unit of work; the
// only shared mutable state is the output sink, guarded by the runner's
// mutex for the duration of one recording's emission.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/banshee-data/wirescan/internal/db"
	"github.com/banshee-data/wirescan/internal/lconfig"
	"github.com/banshee-data/wirescan/internal/monitoring"
	"github.com/banshee-data/wirescan/internal/wire"
)

// Discover lists the processable .dat files in dir. Files whose names start
// with an underscore are excluded from analysis without requiring deletion.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read source directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".dat") || strings.HasPrefix(name, "_") {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	return files, nil
}

// Runner processes a batch of recordings against one shared sink.
type Runner struct {
	Grid    wire.BinGrid
	Sink    wire.Sink
	DB      *db.DB // optional results database
	RunID   string
	Workers int
	View    bool

	mu sync.Mutex
}

// Result counts the batch outcome. Skipped files were reported individually
// as they were rejected.
type Result struct {
	Processed int
	Skipped   int
}

// Run fans the files out across the configured worker count, capped at the
// machine's CPU count. It returns once every file has been processed or
// skipped; per-file data-quality conditions never abort the batch.
func (r *Runner) Run(files []string) Result {
	workers := r.Workers
	if workers < 1 {
		workers = 1
	}
	if n := runtime.NumCPU(); workers > n {
		workers = n
	}
	if workers > len(files) && len(files) > 0 {
		workers = len(files)
	}

	jobs := make(chan string)
	var processed, skipped int64
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				if r.processFile(path) {
					atomic.AddInt64(&processed, 1)
				} else {
					atomic.AddInt64(&skipped, 1)
				}
			}
		}()
	}
	for _, f := range files {
		jobs <- f
	}
	close(jobs)
	wg.Wait()

	return Result{Processed: int(processed), Skipped: int(skipped)}
}

// processFile runs the full pipeline for one recording. It reports true
// when the recording's rows reached the sink.
func (r *Runner) processFile(path string) bool {
	monitoring.Logf("[%s] loading", path)
	rec, err := lconfig.Load(path)
	if err != nil {
		monitoring.Errorf("[%s] ERROR: %v", path, err)
		return false
	}

	profile, err := wire.Process(rec, r.Grid)
	if err != nil {
		monitoring.Errorf("[%s] ERROR: %v", path, err)
		return false
	}
	monitoring.Logf("[%s] x=%g, y=%g, z=%g, ccw=%v, radii=%v",
		path, profile.X, profile.Y, profile.Z, profile.CCW, profile.Radii)

	if r.View {
		monitoring.Logf("[%s] plotting", path)
		base := strings.TrimSuffix(path, filepath.Ext(path))
		if err := profile.SavePlots(base); err != nil {
			// Diagnostic plots are best-effort; the reduced data still counts.
			monitoring.Errorf("[%s] plot failed: %v", path, err)
		}
	}

	if err := profile.Emit(r.Sink, &r.mu); err != nil {
		monitoring.Errorf("[%s] ERROR: %v", path, err)
		return false
	}
	if r.DB != nil {
		if err := r.DB.RecordProfile(r.RunID, path, profile); err != nil {
			monitoring.Errorf("[%s] results database: %v", path, err)
		}
	}
	return true
}
