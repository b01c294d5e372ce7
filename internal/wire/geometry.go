package wire

import "fmt"

// Geometry holds the wire radii and mount coordinates recovered from a
// recording's metadata. Radii are listed in physical wire order around the
// disc; ResolveRotation reorders them when the disc spins counter-clockwise.
type Geometry struct {
	Radii []float64
	X     float64
	Y     float64
	Z     float64
}

// Nwire returns the number of wires mounted on the disc.
func (g Geometry) Nwire() int { return len(g.Radii) }

// GeometryFromMeta reads the wire geometry from recording metadata: radii
// from sequential keys r0, r1, ... until one is missing, plus the mount
// coordinates x and z. The y coordinate is always zero for this rig.
func GeometryFromMeta(rec Recording) (Geometry, error) {
	var geo Geometry
	for {
		r, ok := rec.Meta(fmt.Sprintf("r%d", len(geo.Radii)))
		if !ok {
			break
		}
		geo.Radii = append(geo.Radii, r)
	}
	if len(geo.Radii) == 0 {
		return Geometry{}, ErrMissingGeometry
	}
	geo.X, _ = rec.Meta("x")
	geo.Z, _ = rec.Meta("z")
	return geo, nil
}
