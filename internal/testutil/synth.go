package testutil

import (
	"fmt"
	"os"
	"strings"
	"testing"
)

// Stripe timing as fractions of one rotation. The photoreflector signal is
// high over most of the rotation and drops under two tape stripes of
// different widths; the long fraction is the disc-body transit between the
// stripes. Reversing the spin direction reverses which stripe pulse follows
// the transit.
var (
	cwFractions  = [4]float64{0.02, 0.08, 0.10, 0.80}
	ccwFractions = [4]float64{0.10, 0.08, 0.02, 0.80}
)

// DiStreamMask is the digital channel mask used by synthetic recordings
// (bit 2, matching a photoreflector wired to DIO2).
const DiStreamMask = 4

// Disc describes a synthetic rotating-disc recording with perfectly
// periodic rotations and constant probe current.
type Disc struct {
	Radii              []float64
	X, Z               float64
	Rotations          int
	SamplesPerRotation int
	CCW                bool
	// Lead is the number of samples recorded before the first stripe edge.
	Lead int
	// Current is the constant probe current level.
	Current float64
}

// Recording is an in-memory wire-scan recording for tests.
type Recording struct {
	Samples  []float64
	Edges    []int
	MetaVals map[string]float64
	Mask     int
	N        int
}

// Channel returns the current samples for channel 0 and nil otherwise.
func (r *Recording) Channel(i int) []float64 {
	if i != 0 {
		return nil
	}
	return r.Samples
}

// DiEvents returns the stripe edge indices.
func (r *Recording) DiEvents(bit int) []int { return r.Edges }

// NData returns the total sample count.
func (r *Recording) NData() int { return r.N }

// Meta looks up a metadata value.
func (r *Recording) Meta(key string) (float64, bool) {
	v, ok := r.MetaVals[key]
	return v, ok
}

// DiStream returns the digital stream mask.
func (r *Recording) DiStream() int { return r.Mask }

// Build materialises the synthetic recording.
func (d Disc) Build() *Recording {
	fractions := cwFractions
	if d.CCW {
		fractions = ccwFractions
	}

	var edges []int
	pos := d.Lead
	for rot := 0; rot < d.Rotations; rot++ {
		for _, f := range fractions {
			edges = append(edges, pos)
			pos += int(f * float64(d.SamplesPerRotation))
		}
	}
	edges = append(edges, pos)

	n := d.Lead + (d.Rotations+1)*d.SamplesPerRotation
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = d.Current
	}

	meta := map[string]float64{"x": d.X, "z": d.Z}
	for i, r := range d.Radii {
		meta[fmt.Sprintf("r%d", i)] = r
	}

	return &Recording{
		Samples:  samples,
		Edges:    edges,
		MetaVals: meta,
		Mask:     DiStreamMask,
		N:        n,
	}
}

// WriteDat writes the recording as a .dat acquisition file: header, data
// marker, then one row per sample with the current and the digital word.
// The digital level starts high and toggles at every stripe edge.
func WriteDat(t *testing.T, path string, rec *Recording) {
	t.Helper()

	var b strings.Builder
	b.WriteString("# synthetic wire-scan recording\n")
	b.WriteString("samplehz 10000\n")
	b.WriteString("aichannel 0\n")
	fmt.Fprintf(&b, "distream %d\n", rec.Mask)
	for key, v := range rec.MetaVals {
		fmt.Fprintf(&b, "meta %s %g\n", key, v)
	}
	b.WriteString("#:0\n")

	next := 0
	level := rec.Mask
	for i := 0; i < rec.N; i++ {
		for next < len(rec.Edges) && rec.Edges[next] == i {
			if level == 0 {
				level = rec.Mask
			} else {
				level = 0
			}
			next++
		}
		fmt.Fprintf(&b, "%g %d\n", rec.Samples[i], level)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		t.Fatalf("write synthetic recording: %v", err)
	}
}

// MemorySink collects emitted rows for assertions. FailAfter, when
// positive, makes the sink error once that many rows have been written.
type MemorySink struct {
	Rows      [][5]float64
	FailAfter int
}

// WriteLine records one emitted row.
func (s *MemorySink) WriteLine(radius, x, y, theta, value float64) error {
	if s.FailAfter > 0 && len(s.Rows) >= s.FailAfter {
		return fmt.Errorf("sink full after %d rows", s.FailAfter)
	}
	s.Rows = append(s.Rows, [5]float64{radius, x, y, theta, value})
	return nil
}
