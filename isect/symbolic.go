// Package isect implements the symbolic + geometric face-face
// intersector (spec.md §4.4), the intersection point inserter (§4.5),
// and the parallel worker-pool wiring that connects them (§5).
package isect

import (
	"math/big"

	"github.com/ajsb85/boolmesh/kernel"
)

// SymbolicPoint names one point of an intersection by the Triangle
// Region it occupies in each triangle: L is the feature of the left
// triangle, R of the right triangle. Two face pairs meeting at the same
// geometric point always produce equal SymbolicPoints when the point
// coincides with an input vertex, letting the Inserter (spec.md §4.5)
// reuse ids across pairs.
type SymbolicPoint struct {
	L, R kernel.TriangleRegion
}

// Tri is the three point-pool ids and resolved points of one triangle,
// in vertex order, as seen by the intersector.
type Tri struct {
	Pts [3]*kernel.LazyPoint
	IDs [3]kernel.ID
}

// Point pairs a SymbolicPoint with its resolved coordinates, so the
// Inserter (spec.md §4.5) can add newly constructed points to the pool
// without recomputing them.
type Point struct {
	Symbolic SymbolicPoint
	Coords   kernel.LazyPoint
}

// IntersectFaces computes the symbolic intersection of two triangles,
// returning zero, one (a shared vertex), two (a transversal segment) or
// up to six (a coplanar overlap polygon) Points (spec.md §4.4).
func IntersectFaces(left, right Tri) []Point {
	if kernel.Coplanar(left.Pts[0], left.Pts[1], left.Pts[2], right.Pts[0], right.Pts[1], right.Pts[2]) {
		return coplanarOverlap(left, right)
	}
	return transversalSegment(left, right)
}

//-----------------------------------------------------------------------------
// Transversal (non-coplanar) case: the intersection, if any, is a single
// line segment. Its endpoints are found by testing each of the six
// triangle edges against the opposite triangle's plane and, where an
// edge crosses it, classifying the crossing point against that
// triangle's three boundary half-planes in a 2D projection.

func transversalSegment(left, right Tri) []Point {
	// Fast reject: if every vertex of one triangle is strictly on the
	// same side of the other's plane, the triangles cannot meet.
	if sameStrictSide(left, right) || sameStrictSide(right, left) {
		return nil
	}

	var out []Point
	seen := make(map[SymbolicPoint]bool, 2)
	add := func(p Point, ok bool) {
		if ok && !seen[p.Symbolic] {
			seen[p.Symbolic] = true
			out = append(out, p)
		}
	}

	for i := 0; i < 3; i++ {
		add(crossEdgeFace(left, i, kernel.Left, right, kernel.Right))
	}
	for i := 0; i < 3; i++ {
		add(crossEdgeFace(right, i, kernel.Right, left, kernel.Left))
	}
	return out
}

func sameStrictSide(probe, plane Tri) bool {
	var sign kernel.Sign
	for i := 0; i < 3; i++ {
		s := kernel.Orient3D(plane.Pts[0], plane.Pts[1], plane.Pts[2], probe.Pts[i])
		if s == kernel.Zero {
			return false
		}
		if i == 0 {
			sign = s
		} else if s != sign {
			return false
		}
	}
	return true
}

// crossEdgeFace tests edge i (vertices i, i+1) of edgeTri against
// faceTri's plane; if it crosses inside (or on the boundary of) faceTri,
// returns the resulting SymbolicPoint.
func crossEdgeFace(edgeTri Tri, i int, edgeSide kernel.Side, faceTri Tri, faceSide kernel.Side) (Point, bool) {
	j := (i + 1) % 3
	a, b := edgeTri.Pts[i], edgeTri.Pts[j]

	da := kernel.Orient3DVolume(faceTri.Pts[0], faceTri.Pts[1], faceTri.Pts[2], a)
	db := kernel.Orient3DVolume(faceTri.Pts[0], faceTri.Pts[1], faceTri.Pts[2], b)
	sa, sb := signOfVol(da), signOfVol(db)

	if sa == kernel.Zero && sb == kernel.Zero {
		return Point{}, false // collinear with the plane; coplanar path handles this
	}
	if sa != kernel.Zero && sb != kernel.Zero && sa == sb {
		return Point{}, false // both strictly on the same side; no crossing
	}

	var point kernel.LazyPoint
	var edgeRegion kernel.TriangleRegion
	switch {
	case sa == kernel.Zero:
		point = *a
		edgeRegion = kernel.Vertex(edgeSide, i)
	case sb == kernel.Zero:
		point = *b
		edgeRegion = kernel.Vertex(edgeSide, j)
	default:
		t := kernel.LinePlaneParam(faceTri.Pts[0], faceTri.Pts[1], faceTri.Pts[2], a, b)
		point = kernel.Lerp(a, b, t)
		edgeRegion = kernel.Edge(edgeSide, i)
	}

	faceRegion, inside := classifyInTriangle(&point, faceTri, faceSide)
	if !inside {
		return Point{}, false
	}

	if edgeSide == kernel.Left {
		return Point{Symbolic: SymbolicPoint{L: edgeRegion, R: faceRegion}, Coords: point}, true
	}
	return Point{Symbolic: SymbolicPoint{L: faceRegion, R: edgeRegion}, Coords: point}, true
}

func signOfVol(v *big.Rat) kernel.Sign {
	switch v.Sign() {
	case -1:
		return kernel.Negative
	case 1:
		return kernel.Positive
	default:
		return kernel.Zero
	}
}
