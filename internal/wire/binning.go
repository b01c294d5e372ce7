package wire

import "math"

// Accumulator collects raw current samples into a fixed grid of per-wire,
// per-angle-bin buffers. The grid is sized up front from the wire count and
// bin geometry; buffers grow as samples land in them. One Accumulator is
// owned by a single recording's processing pass and never shared.
type Accumulator struct {
	grid   BinGrid
	nwire  int
	ntheta int
	bins   [][]float64 // flat row-major: iwire*ntheta + j
}

// NewAccumulator creates an empty bin grid for nwire wires.
func NewAccumulator(grid BinGrid, nwire int) *Accumulator {
	ntheta := grid.Ntheta()
	return &Accumulator{
		grid:   grid,
		nwire:  nwire,
		ntheta: ntheta,
		bins:   make([][]float64, nwire*ntheta),
	}
}

// Nwire returns the wire count the grid was sized for.
func (a *Accumulator) Nwire() int { return a.nwire }

// Ntheta returns the number of angle bins per wire.
func (a *Accumulator) Ntheta() int { return a.ntheta }

// Bin returns the raw samples collected for (iwire, j).
func (a *Accumulator) Bin(iwire, j int) []float64 {
	return a.bins[iwire*a.ntheta+j]
}

// Accumulate scans the current stream and distributes every sample inside a
// wire's angle window into that wire's bin grid. Two passes: the partial
// rotation before the first wire-zero edge, then each full rotation
// interval. The wires are evenly spaced around the disc, so each wire's
// zero crossing is interpolated as a fixed fraction of the rotation
// duration from the reference edge.
func (a *Accumulator) Accumulate(current []float64, rot Rotation) {
	ndata := len(current)

	// Before the first reference edge the wires lead it evenly in time:
	// wire iwire crossed zero (nwire-iwire)/nwire of a rotation earlier.
	i0, di := rot.Edges[0], rot.DI[0]
	dtheta := sampleAngle(di, rot.CCW)
	for iwire := 0; iwire < a.nwire; iwire++ {
		izero := i0 - ((a.nwire-iwire)*di)/a.nwire
		imin := izero + int(a.grid.ThetaMin/dtheta)
		imax := izero + int(a.grid.ThetaMax/dtheta)
		if imin < 0 {
			imin = 0
		}
		if imax < 0 {
			imax = 0
		}
		if rot.CCW {
			imin, imax = imax, imin
		}
		a.scan(current, iwire, izero, imin, imax, dtheta)
	}

	// After a reference edge the wires trail it evenly: wire iwire crosses
	// zero iwire/nwire of a rotation later.
	for k := range rot.Edges {
		i, di := rot.Edges[k], rot.DI[k]
		dtheta := sampleAngle(di, rot.CCW)
		for iwire := 0; iwire < a.nwire; iwire++ {
			izero := i + (iwire*di)/a.nwire
			imin := izero + int(a.grid.ThetaMin/dtheta)
			imax := izero + int(a.grid.ThetaMax/dtheta)
			if imin > ndata-1 {
				imin = ndata - 1
			}
			if imax > ndata-1 {
				imax = ndata - 1
			}
			if rot.CCW {
				imin, imax = imax, imin
			}
			a.scan(current, iwire, izero, imin, imax, dtheta)
		}
	}
}

// sampleAngle returns the angle swept per sample for one rotation interval,
// negated for counter-clockwise rotation so increasing sample index always
// maps to the physically increasing angle.
func sampleAngle(di int, ccw bool) float64 {
	dtheta := 2 * math.Pi / float64(di)
	if ccw {
		return -dtheta
	}
	return dtheta
}

// scan appends every in-range sample of [imin, imax) into the bin its
// interpolated angle selects. Windows that fall outside the data or angles
// that land outside the grid contribute nothing.
func (a *Accumulator) scan(current []float64, iwire, izero, imin, imax int, dtheta float64) {
	if imin < 0 {
		imin = 0
	}
	if imax > len(current) {
		imax = len(current)
	}
	for ii := imin; ii < imax; ii++ {
		theta := float64(ii-izero) * dtheta
		j, ok := a.grid.BinIndex(theta)
		if !ok {
			continue
		}
		idx := iwire*a.ntheta + j
		a.bins[idx] = append(a.bins[idx], current[ii])
	}
}
