package wire

import (
	"fmt"
	"math/bits"
	"sync"
)

// Profile is the reduced current-vs-angle result for one recording. It is
// exclusively owned by the invocation that produced it.
type Profile struct {
	Grid BinGrid
	// Radii is the wire-index-to-radius assignment after rotation
	// direction reordering.
	Radii   []float64
	X, Y, Z float64
	CCW     bool
	// Stats is indexed [iwire][j].
	Stats [][]Stats
}

// Process runs the per-recording pipeline: geometry extraction, rotation
// resolution, angle binning, and statistics reduction. Both error kinds
// (ErrMissingGeometry, ErrUnstableRotation) are detected before any
// accumulation work; a recording either produces a complete Profile or
// nothing.
func Process(rec Recording, grid BinGrid) (*Profile, error) {
	if err := grid.Validate(); err != nil {
		return nil, fmt.Errorf("bad bin grid: %w", err)
	}
	geo, err := GeometryFromMeta(rec)
	if err != nil {
		return nil, err
	}
	rot, err := ResolveRotation(rec.DiEvents(diBit(rec.DiStream())), geo.Radii)
	if err != nil {
		return nil, err
	}

	acc := NewAccumulator(grid, geo.Nwire())
	acc.Accumulate(rec.Channel(currentChannel), rot)

	return &Profile{
		Grid:  grid,
		Radii: rot.Radii,
		X:     geo.X,
		Y:     geo.Y,
		Z:     geo.Z,
		CCW:   rot.CCW,
		Stats: Reduce(acc),
	}, nil
}

// diBit converts a digital stream channel mask to the bit index of its
// active channel (the highest set bit).
func diBit(mask int) int {
	if mask <= 0 {
		return 0
	}
	return bits.Len(uint(mask)) - 1
}

// Emit writes one row per (wire, angle bin) in wire-major order, carrying
// the bin median as the representative value. The shared mutex is held for
// the entire loop so concurrently processed recordings never interleave
// rows in the sink; the deferred unlock covers failure mid-loop.
func (p *Profile) Emit(sink Sink, mu *sync.Mutex) error {
	mu.Lock()
	defer mu.Unlock()
	for iwire, row := range p.Stats {
		for j := range row {
			if err := sink.WriteLine(p.Radii[iwire], p.X, p.Y, p.Grid.Center(j), row[j].Median); err != nil {
				return fmt.Errorf("emit wire %d bin %d: %w", iwire, j, err)
			}
		}
	}
	return nil
}
