package isect

import "github.com/ajsb85/boolmesh/kernel"

// classifyInTriangle reports where point lies relative to tri (already
// known to lie on tri's plane): inside the face, on one of its three
// edges, at one of its three vertices, or strictly outside. Projects to
// the dominant axis pair of tri's (approximate) normal and runs three
// exact 2D orientation tests — the classic "three half-plane" point-in-
// triangle test, robust to tri's own winding because it only checks that
// the three signs agree, not their polarity.
func classifyInTriangle(point *kernel.LazyPoint, tri Tri, side kernel.Side) (kernel.TriangleRegion, bool) {
	n := approxNormal(tri)
	xi, yi := kernel.DominantAxis([3]float64{n.X, n.Y, n.Z})

	s0 := kernel.Orient2D(tri.Pts[0], tri.Pts[1], point, xi, yi)
	s1 := kernel.Orient2D(tri.Pts[1], tri.Pts[2], point, xi, yi)
	s2 := kernel.Orient2D(tri.Pts[2], tri.Pts[0], point, xi, yi)

	zeros := 0
	if s0 == kernel.Zero {
		zeros++
	}
	if s1 == kernel.Zero {
		zeros++
	}
	if s2 == kernel.Zero {
		zeros++
	}

	nonZero := make([]kernel.Sign, 0, 3)
	for _, s := range [3]kernel.Sign{s0, s1, s2} {
		if s != kernel.Zero {
			nonZero = append(nonZero, s)
		}
	}
	for _, s := range nonZero {
		if s != nonZero[0] {
			return kernel.TriangleRegion{}, false // outside
		}
	}

	switch zeros {
	case 0:
		return kernel.Face(side), true
	case 1:
		switch {
		case s0 == kernel.Zero:
			return kernel.Edge(side, 0), true
		case s1 == kernel.Zero:
			return kernel.Edge(side, 1), true
		default:
			return kernel.Edge(side, 2), true
		}
	case 2:
		switch {
		case s0 == kernel.Zero && s1 == kernel.Zero:
			return kernel.Vertex(side, 1), true
		case s1 == kernel.Zero && s2 == kernel.Zero:
			return kernel.Vertex(side, 2), true
		default:
			return kernel.Vertex(side, 0), true
		}
	default:
		return kernel.Face(side), true // degenerate (zero-area) triangle
	}
}

type approxVec struct{ X, Y, Z float64 }

func approxNormal(tri Tri) approxVec {
	a, b, c := tri.Pts[0].Approx, tri.Pts[1].Approx, tri.Pts[2].Approx
	ux, uy, uz := b.X-a.X, b.Y-a.Y, b.Z-a.Z
	vx, vy, vz := c.X-a.X, c.Y-a.Y, c.Z-a.Z
	return approxVec{
		X: uy*vz - uz*vy,
		Y: uz*vx - ux*vz,
		Z: ux*vy - uy*vx,
	}
}
