package wire

import (
	"math"
	"testing"
)

func TestDefaultGridGeometry(t *testing.T) {
	grid := DefaultGrid()
	if got := grid.Ntheta(); got != 67 {
		t.Errorf("Ntheta = %d, want 67", got)
	}
	if got := grid.Center(0); math.Abs(got-(-0.0985)) > 1e-12 {
		t.Errorf("Center(0) = %g, want -0.0985", got)
	}
	if got := grid.Center(66); math.Abs(got-0.0995) > 1e-12 {
		t.Errorf("Center(66) = %g, want 0.0995", got)
	}
}

func TestBinIndex(t *testing.T) {
	grid := DefaultGrid()
	testCases := []struct {
		name   string
		theta  float64
		wantJ  int
		wantOK bool
	}{
		{"bin_zero_lower_edge", -0.1, 0, true},
		{"bin_zero_interior", -0.0985, 0, true},
		{"first_bin_boundary", -0.097, 1, true},
		{"center", 0.0, 33, true},
		{"last_bin_interior", 0.0995, 66, true},
		{"theta_max_lands_in_last_bin", 0.1, 66, true},
		{"below_range", -0.11, 0, false},
		{"above_grid", 0.102, 0, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			j, ok := grid.BinIndex(tc.theta)
			if ok != tc.wantOK {
				t.Fatalf("BinIndex(%g) ok = %v, want %v", tc.theta, ok, tc.wantOK)
			}
			if ok && j != tc.wantJ {
				t.Errorf("BinIndex(%g) = %d, want %d", tc.theta, j, tc.wantJ)
			}
		})
	}
}

func TestGridValidate(t *testing.T) {
	testCases := []struct {
		name    string
		grid    BinGrid
		wantErr bool
	}{
		{"default", DefaultGrid(), false},
		{"zero_step", BinGrid{ThetaMin: -0.1, ThetaMax: 0.1}, true},
		{"negative_step", BinGrid{ThetaMin: -0.1, ThetaMax: 0.1, ThetaStep: -0.003}, true},
		{"empty_range", BinGrid{ThetaMin: 0.1, ThetaMax: -0.1, ThetaStep: 0.003}, true},
		{"single_bin", BinGrid{ThetaMin: 0, ThetaMax: 0.003, ThetaStep: 0.003}, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.grid.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
