package wire

import "fmt"

// speedTolerance is the maximum allowed ratio between the longest and
// shortest rotation duration in a recording. The angle interpolation assumes
// constant disc speed within 1%.
const speedTolerance = 1.01

// Rotation is the resolved rotation record for one recording: direction,
// wire-zero reference edges, per-rotation durations, and the radius list in
// wire-index order. It folds every direction-dependent list trick into one
// place so the angle-mapping math stays direction-agnostic.
type Rotation struct {
	// CCW reports counter-clockwise disc rotation. Clockwise is the
	// positive sense; when CCW the wires pass the probe in reverse order.
	CCW bool
	// Edges holds the raw sample index of each wire-zero reference edge,
	// one per disc rotation.
	Edges []int
	// DI holds the rotation duration in samples. DI[i] spans Edges[i] to
	// the next reference edge; the final entry duplicates the penultimate
	// one since no trailing edge bounds the last rotation.
	DI []int
	// Radii maps wire index to radius after direction reordering.
	Radii []float64
}

// ResolveRotation classifies the raw digital edge stream for one recording.
//
// The photoreflector signal is high over most of the rotation and drops
// under each of two dark tape stripes, giving four edges per rotation. The
// widest stripe has one edge aligned with wire 0; the narrower stripe sits a
// small distance from it so the two sides of the wide pulse can be told
// apart. Among the four inter-edge durations of the first five edges the
// longest is the disc-body transit; the relative widths of the two stripe
// pulses adjacent to it distinguish the rotation sense.
//
// Counter-clockwise rotation assigns the last radius to wire 0's successor
// ordering by rotating the radius list (last moved to front); clockwise
// leaves the list untouched.
func ResolveRotation(edges []int, radii []float64) (Rotation, error) {
	if len(edges) < 5 {
		return Rotation{}, fmt.Errorf("%w: %d digital edges, need at least 5 to classify", ErrUnstableRotation, len(edges))
	}

	var d [4]int
	for i := range d {
		d[i] = edges[i+1] - edges[i]
	}
	gap := 0
	for i := 1; i < len(d); i++ {
		if d[i] > d[gap] {
			gap = i
		}
	}

	rot := Rotation{Radii: append([]float64(nil), radii...)}
	var ref int
	if d[(gap+1)%4] > d[(gap+3)%4] {
		// The pulse following the transit is the wider stripe: CCW.
		rot.CCW = true
		ref = (gap + 2) % 4
		rot.Radii = rotateLastToFront(rot.Radii)
	} else {
		ref = (gap + 3) % 4
	}

	// Every 4th edge from the reference offset is a wire-zero edge.
	for i := ref; i < len(edges); i += 4 {
		rot.Edges = append(rot.Edges, edges[i])
	}
	if len(rot.Edges) < 2 {
		return Rotation{}, fmt.Errorf("%w: only %d wire-zero edges detected", ErrUnstableRotation, len(rot.Edges))
	}

	rot.DI = make([]int, len(rot.Edges))
	for i := 0; i+1 < len(rot.Edges); i++ {
		rot.DI[i] = rot.Edges[i+1] - rot.Edges[i]
	}
	rot.DI[len(rot.DI)-1] = rot.DI[len(rot.DI)-2]

	minDI, maxDI := rot.DI[0], rot.DI[0]
	for _, di := range rot.DI {
		if di < minDI {
			minDI = di
		}
		if di > maxDI {
			maxDI = di
		}
	}
	if minDI <= 0 || float64(maxDI)/float64(minDI) > speedTolerance {
		return Rotation{}, fmt.Errorf("%w: duration varies from %d to %d samples per rotation", ErrUnstableRotation, minDI, maxDI)
	}
	return rot, nil
}

// rotateLastToFront moves the final radius to the front of the list. This is
// a rotation, not a mirror reversal: wire 0 keeps the radius aligned with
// the wide stripe edge regardless of spin direction.
func rotateLastToFront(radii []float64) []float64 {
	if len(radii) < 2 {
		return radii
	}
	out := make([]float64, 0, len(radii))
	out = append(out, radii[len(radii)-1])
	out = append(out, radii[:len(radii)-1]...)
	return out
}
