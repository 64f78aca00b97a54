package isect

import "github.com/ajsb85/boolmesh/kernel"

// coplanarOverlap computes the overlap polygon of two coplanar triangles
// by clipping right against left's three edges (Sutherland-Hodgman,
// exact), then re-classifying each resulting vertex against both
// original triangles to recover its symbolic region pair. Re-
// classifying from scratch (rather than tracking provenance through
// every clip stage) is simpler and exact: every output vertex lies in
// both closed triangles by construction, so classifyInTriangle
// always resolves it to a Face/Edge/Vertex region, never "outside".
//
// The result has at most six vertices, matching spec.md §4.4's bound:
// the intersection of two triangles is itself a convex polygon of at
// most six sides.
func coplanarOverlap(left, right Tri) []Point {
	n := approxNormal(left)
	xi, yi := kernel.DominantAxis([3]float64{n.X, n.Y, n.Z})

	orient := kernel.Orient2D(left.Pts[0], left.Pts[1], left.Pts[2], xi, yi)
	if orient == kernel.Zero {
		return nil // degenerate (zero-area) triangle; not a meaningful overlap
	}

	subject := []*kernel.LazyPoint{right.Pts[0], right.Pts[1], right.Pts[2]}

	for i := 0; i < 3 && len(subject) > 0; i++ {
		a, b := left.Pts[i], left.Pts[(i+1)%3]
		subject = clipAgainstEdge(subject, a, b, orient, xi, yi)
	}

	out := make([]Point, 0, len(subject))
	for _, p := range subject {
		lr, lok := classifyInTriangle(p, left, kernel.Left)
		rr, rok := classifyInTriangle(p, right, kernel.Right)
		if lok && rok {
			out = append(out, Point{Symbolic: SymbolicPoint{L: lr, R: rr}, Coords: *p})
		}
	}
	return dedupPoints(out)
}

func clipAgainstEdge(subject []*kernel.LazyPoint, a, b *kernel.LazyPoint, clipOrient kernel.Sign, xi, yi int) []*kernel.LazyPoint {
	if len(subject) == 0 {
		return subject
	}
	var out []*kernel.LazyPoint
	n := len(subject)
	for i := 0; i < n; i++ {
		prev := subject[(i+n-1)%n]
		cur := subject[i]
		prevIn := insideHalfPlane(prev, a, b, clipOrient, xi, yi)
		curIn := insideHalfPlane(cur, a, b, clipOrient, xi, yi)
		if curIn {
			if !prevIn {
				out = append(out, edgeIntersection(prev, cur, a, b, xi, yi))
			}
			out = append(out, cur)
		} else if prevIn {
			out = append(out, edgeIntersection(prev, cur, a, b, xi, yi))
		}
	}
	return out
}

func insideHalfPlane(p, a, b *kernel.LazyPoint, clipOrient kernel.Sign, xi, yi int) bool {
	s := kernel.Orient2D(a, b, p, xi, yi)
	if clipOrient == kernel.Positive {
		return s != kernel.Negative
	}
	return s != kernel.Positive
}

func edgeIntersection(p, q, a, b *kernel.LazyPoint, xi, yi int) *kernel.LazyPoint {
	t := kernel.SegmentParam2D(p, q, a, b, xi, yi)
	np := kernel.Lerp(p, q, t)
	return &np
}

func dedupPoints(in []Point) []Point {
	seen := make(map[SymbolicPoint]bool, len(in))
	out := make([]Point, 0, len(in))
	for _, p := range in {
		if !seen[p.Symbolic] {
			seen[p.Symbolic] = true
			out = append(out, p)
		}
	}
	return out
}
