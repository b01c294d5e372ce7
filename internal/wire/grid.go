package wire

import (
	"fmt"
	"math"
)

// Default angle-bin geometry, in radians. These match the window the probe
// electronics were tuned for: a narrow arc either side of the wire's
// zero-radian crossing.
const (
	DefaultThetaMin  = -0.1
	DefaultThetaMax  = 0.1
	DefaultThetaStep = 0.003
)

// BinGrid describes the angle axis: half-open bins of width ThetaStep
// covering [ThetaMin, ThetaMax). It is fixed for a whole run and shared
// read-only by all wires.
type BinGrid struct {
	ThetaMin  float64
	ThetaMax  float64
	ThetaStep float64
}

// DefaultGrid returns the standard angle-bin geometry.
func DefaultGrid() BinGrid {
	return BinGrid{ThetaMin: DefaultThetaMin, ThetaMax: DefaultThetaMax, ThetaStep: DefaultThetaStep}
}

// Validate checks that the grid describes at least one bin.
func (g BinGrid) Validate() error {
	if g.ThetaStep <= 0 {
		return fmt.Errorf("theta step must be positive, got %g", g.ThetaStep)
	}
	if g.ThetaMax <= g.ThetaMin {
		return fmt.Errorf("theta range [%g, %g) is empty", g.ThetaMin, g.ThetaMax)
	}
	return nil
}

// Ntheta returns the number of angle bins.
func (g BinGrid) Ntheta() int {
	return int(math.Ceil((g.ThetaMax - g.ThetaMin) / g.ThetaStep))
}

// Center returns the center angle of bin j.
func (g BinGrid) Center(j int) float64 {
	return g.ThetaMin + (float64(j)+0.5)*g.ThetaStep
}

// BinIndex maps an angle to its bin, reporting false for angles outside
// [ThetaMin, ThetaMax).
func (g BinGrid) BinIndex(theta float64) (int, bool) {
	j := int(math.Floor((theta - g.ThetaMin) / g.ThetaStep))
	if j < 0 || j >= g.Ntheta() {
		return 0, false
	}
	return j, true
}
