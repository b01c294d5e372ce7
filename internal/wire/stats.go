package wire

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarises the samples collected in one angle bin. All statistics
// are zero when Count is zero; empty bins stay numeric-safe rather than
// becoming NaN so downstream consumers can difference and plot them freely.
type Stats struct {
	Count  int
	Mean   float64
	Median float64
	Std    float64 // population standard deviation
	Min    float64
	Max    float64
}

// Reduce computes per-bin statistics over a completed accumulation. It is a
// pure function of the bin grid: calling it twice yields identical results.
func Reduce(acc *Accumulator) [][]Stats {
	out := make([][]Stats, acc.Nwire())
	for iwire := range out {
		row := make([]Stats, acc.Ntheta())
		for j := range row {
			row[j] = reduceBin(acc.Bin(iwire, j))
		}
		out[iwire] = row
	}
	return out
}

func reduceBin(vals []float64) Stats {
	if len(vals) == 0 {
		return Stats{}
	}
	s := Stats{
		Count: len(vals),
		Mean:  stat.Mean(vals, nil),
		Min:   floats.Min(vals),
		Max:   floats.Max(vals),
	}
	var ss float64
	for _, v := range vals {
		d := v - s.Mean
		ss += d * d
	}
	s.Std = math.Sqrt(ss / float64(len(vals)))
	s.Median = median(vals)
	return s
}

// median returns the midpoint-interpolated median without mutating vals.
func median(vals []float64) float64 {
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return 0.5 * (sorted[n/2-1] + sorted[n/2])
}
