// Package wiredata writes the wire-data output file consumed by the solver:
// one text row per (radius, x, y, theta, value) tuple. The writer is the
// shared sink for a whole batch; callers serialise access to it with the
// mutex passed to profile emission.
package wiredata

import (
	"bufio"
	"fmt"
	"os"
)

// Writer appends wire rows to a wire-data file.
type Writer struct {
	f *os.File
	w *bufio.Writer
}

// Create opens a new wire-data file. Unless force is set, an existing file
// is an error so prior results are never clobbered silently.
func Create(path string, force bool) (*Writer, error) {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		if os.IsExist(err) {
			return nil, fmt.Errorf("output file exists (use force to overwrite): %s", path)
		}
		return nil, fmt.Errorf("create wire data file: %w", err)
	}
	return &Writer{f: f, w: bufio.NewWriter(f)}, nil
}

// WriteLine appends one reduced row.
func (w *Writer) WriteLine(radius, x, y, theta, value float64) error {
	_, err := fmt.Fprintf(w.w, "%.6e %.6e %.6e %.6e %.6e\n", radius, x, y, theta, value)
	return err
}

// Close flushes buffered rows and closes the file.
func (w *Writer) Close() error {
	if err := w.w.Flush(); err != nil {
		w.f.Close()
		return fmt.Errorf("flush wire data: %w", err)
	}
	return w.f.Close()
}
