// Package triangulate implements the planar constrained Delaunay
// triangulation used once per base face (spec.md §4.6): seeded with a
// base triangle's three corners, intersection points are inserted one
// at a time, constraint edges are enforced between them, and the
// finished triangulation is read back out as point-pool id triples.
package triangulate

import (
	"errors"

	"github.com/ajsb85/boolmesh/kernel"
)

// VH (vertex handle) indexes CDT.verts. Stable for the CDT's lifetime;
// never reused even after a flip invalidates the triangle it once
// belonged to.
type VH int

type vertex struct {
	id     kernel.ID
	point  *kernel.LazyPoint
	region kernel.TriangleRegion
}

// triangle holds three vertex handles, wound counter-clockwise in the
// (xi,yi) projection, and the three neighbor triangle indices opposite
// each vertex (nb[i] is the neighbor across the edge not touching
// vs[i]). A neighbor of -1 means a boundary edge (outside the base
// triangle's extent, which never happens here since the base triangle
// itself is the outer boundary).
type triangle struct {
	vs    [3]VH
	nb    [3]int
	alive bool
}

// CDT is one base face's constrained Delaunay triangulation.
type CDT struct {
	xi, yi int
	verts  []vertex
	tris   []triangle
	// constrained marks an unordered vertex pair as a constraint edge;
	// legalization never flips these.
	constrained map[edgeKey]bool
}

type edgeKey struct{ a, b VH }

func newEdgeKey(a, b VH) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// ErrIntersectingConstraints is returned by InsertConstraint when the
// requested segment would properly cross a constraint already present
// in the triangulation (spec.md §4.6, §7: evidence the other mesh
// self-intersects).
var ErrIntersectingConstraints = errors.New("triangulate: intersection of constraints")

// New seeds a CDT with the three corners of a base triangle. xi, yi
// select the 2D projection (spec.md §4.6: "projected via its unit
// normal"); callers derive them once via kernel.DominantAxis on the
// base triangle's normal, consistently for the lifetime of this CDT.
func New(pa, pb, pc *kernel.LazyPoint, a, b, c kernel.ID, xi, yi int) *CDT {
	t := &CDT{xi: xi, yi: yi, constrained: make(map[edgeKey]bool)}
	t.verts = []vertex{
		{id: a, point: pa, region: kernel.Vertex(kernel.Left, 0)},
		{id: b, point: pb, region: kernel.Vertex(kernel.Left, 1)},
		{id: c, point: pc, region: kernel.Vertex(kernel.Left, 2)},
	}
	if kernel.Orient2D(pa, pb, pc, xi, yi) == kernel.Negative {
		t.verts[1], t.verts[2] = t.verts[2], t.verts[1]
	}
	t.tris = []triangle{{vs: [3]VH{0, 1, 2}, nb: [3]int{-1, -1, -1}, alive: true}}
	return t
}

func (t *CDT) pointOf(v VH) *kernel.LazyPoint { return t.verts[v].point }

// Insert adds point (with its pool id and the symbolic region that
// produced it) to the triangulation, splitting whichever triangle
// currently contains it and legalizing the surrounding edges. Returns
// the new vertex's handle.
//
// If point lies exactly on an existing edge (collinear inserts from the
// same base-triangle edge, per spec.md §4.6), that edge is split into
// two rather than the containing triangle into three, preserving the
// edge's constrained status on both halves.
func (t *CDT) Insert(point *kernel.LazyPoint, id kernel.ID, region kernel.TriangleRegion) VH {
	if existing, ok := t.findCoincident(point); ok {
		return existing
	}

	vh := VH(len(t.verts))
	t.verts = append(t.verts, vertex{id: id, point: point, region: region})

	ti, edgeIdx, onEdge := t.locate(point)
	if onEdge {
		t.splitEdge(ti, edgeIdx, vh)
	} else {
		t.splitTriangle(ti, vh)
	}
	return vh
}

func (t *CDT) findCoincident(point *kernel.LazyPoint) (VH, bool) {
	for i := range t.verts {
		if t.verts[i].point.ExactEqual(point) {
			return VH(i), true
		}
	}
	return 0, false
}

// locate finds the live triangle containing point. If point lies
// exactly on one of that triangle's edges, onEdge is true and edgeIdx
// names which edge (0,1,2 opposite vs[0],vs[1],vs[2]).
func (t *CDT) locate(point *kernel.LazyPoint) (ti int, edgeIdx int, onEdge bool) {
	for i := range t.tris {
		tr := &t.tris[i]
		if !tr.alive {
			continue
		}
		a, b, c := t.pointOf(tr.vs[0]), t.pointOf(tr.vs[1]), t.pointOf(tr.vs[2])
		s0 := kernel.Orient2D(b, c, point, t.xi, t.yi)
		s1 := kernel.Orient2D(c, a, point, t.xi, t.yi)
		s2 := kernel.Orient2D(a, b, point, t.xi, t.yi)
		if s0 == kernel.Negative || s1 == kernel.Negative || s2 == kernel.Negative {
			continue
		}
		switch {
		case s0 == kernel.Zero:
			return i, 0, true
		case s1 == kernel.Zero:
			return i, 1, true
		case s2 == kernel.Zero:
			return i, 2, true
		default:
			return i, 0, false
		}
	}
	// point outside every live triangle (shouldn't happen for points
	// produced by the intersector, which always lie within the base
	// face); fall back to the first live triangle to avoid a panic.
	for i := range t.tris {
		if t.tris[i].alive {
			return i, 0, false
		}
	}
	return 0, 0, false
}

func (t *CDT) splitTriangle(ti int, vh VH) {
	tr := t.tris[ti]
	t.tris[ti].alive = false

	a, b, c := tr.vs[0], tr.vs[1], tr.vs[2]
	na, nb, nc := tr.nb[0], tr.nb[1], tr.nb[2]

	i0 := len(t.tris)
	i1 := i0 + 1
	i2 := i0 + 2

	// Edge (a,b) of the new i0 is the original edge opposite c, i.e. the
	// neighbor across it is nc (not na: na sits opposite a, across the
	// original (b,c) edge, which becomes the outer edge of i1).
	t.tris = append(t.tris,
		triangle{vs: [3]VH{a, b, vh}, nb: [3]int{i1, i2, nc}, alive: true},
		triangle{vs: [3]VH{b, c, vh}, nb: [3]int{i2, i0, na}, alive: true},
		triangle{vs: [3]VH{c, a, vh}, nb: [3]int{i0, i1, nb}, alive: true},
	)
	t.relink(nc, ti, i0)
	t.relink(na, ti, i1)
	t.relink(nb, ti, i2)

	t.legalize(i0, 2)
	t.legalize(i1, 2)
	t.legalize(i2, 2)
}

// splitEdge replaces the one or two triangles sharing the edge opposite
// vs[edgeIdx] in triangle ti with four triangles fanning out from the
// new vertex vh, preserving winding and reconnecting every outer
// neighbor explicitly (the neighbor graph here is small and fixed
// enough to write out by hand rather than search for it).
func (t *CDT) splitEdge(ti, edgeIdx int, vh VH) {
	tr := t.tris[ti]
	apex1 := tr.vs[edgeIdx]
	p0, p1 := tr.vs[(edgeIdx+1)%3], tr.vs[(edgeIdx+2)%3]
	opp := tr.nb[edgeIdx]
	if t.constrained[newEdgeKey(p0, p1)] {
		t.constrained[newEdgeKey(p0, vh)] = true
		t.constrained[newEdgeKey(vh, p1)] = true
	}

	outTi0 := t.neighborAcross(tr, apex1, p0)
	outTi1 := t.neighborAcross(tr, apex1, p1)
	t.tris[ti].alive = false

	i0 := len(t.tris) // (p0, vh, apex1)
	i1 := i0 + 1      // (vh, p1, apex1)
	t.tris = append(t.tris,
		triangle{vs: [3]VH{p0, vh, apex1}, nb: [3]int{i1, outTi0, -1}, alive: true},
		triangle{vs: [3]VH{vh, p1, apex1}, nb: [3]int{outTi1, i0, -1}, alive: true},
	)
	t.relink(outTi0, ti, i0)
	t.relink(outTi1, ti, i1)

	if opp < 0 {
		t.legalize(i0, 1)
		t.legalize(i1, 0)
		return
	}

	otr := t.tris[opp]
	apex2Idx := oppositeVertexIndex(otr, p0, p1)
	apex2 := otr.vs[apex2Idx]
	outNb0 := t.neighborAcross(otr, apex2, p0)
	outNb1 := t.neighborAcross(otr, apex2, p1)
	t.tris[opp].alive = false

	j0 := len(t.tris) // (vh, p0, apex2)
	j1 := j0 + 1      // (p1, vh, apex2)
	t.tris = append(t.tris,
		triangle{vs: [3]VH{vh, p0, apex2}, nb: [3]int{outNb0, j1, i0}, alive: true},
		triangle{vs: [3]VH{p1, vh, apex2}, nb: [3]int{j0, outNb1, i1}, alive: true},
	)
	t.relink(outNb0, opp, j0)
	t.relink(outNb1, opp, j1)
	t.tris[i0].nb[2] = j0
	t.tris[i1].nb[2] = j1

	t.legalize(i0, 1)
	t.legalize(i1, 0)
	t.legalize(j0, 0)
	t.legalize(j1, 1)
}

func oppositeVertexIndex(tr triangle, a, b VH) int {
	for i, v := range tr.vs {
		if v != a && v != b {
			return i
		}
	}
	return 0
}

func (t *CDT) neighborAcross(tr triangle, u, v VH) int {
	for i, w := range tr.vs {
		if w != u && w != v {
			return tr.nb[i]
		}
	}
	return -1
}

func containsVH(vs [3]VH, v VH) bool {
	return vs[0] == v || vs[1] == v || vs[2] == v
}

func (t *CDT) relink(nbIdx, from, to int) {
	if nbIdx < 0 {
		return
	}
	for i := range t.tris[nbIdx].nb {
		if t.tris[nbIdx].nb[i] == from {
			t.tris[nbIdx].nb[i] = to
		}
	}
}

// legalize checks the edge of triangle ti opposite vertex index
// apexIdx against its neighbor and flips if the neighbor's apex lies
// inside ti's circumcircle, recursing into the two new triangles. Never
// flips a constrained edge.
func (t *CDT) legalize(ti, apexIdx int) {
	tr := t.tris[ti]
	if !tr.alive {
		return
	}
	nb := tr.nb[apexIdx]
	if nb < 0 {
		return
	}
	p0, p1 := tr.vs[(apexIdx+1)%3], tr.vs[(apexIdx+2)%3]
	if t.constrained[newEdgeKey(p0, p1)] {
		return
	}

	otr := t.tris[nb]
	oppIdx := oppositeVertexIndex(otr, p0, p1)
	apex := tr.vs[apexIdx]
	oppApex := otr.vs[oppIdx]

	a, b, c := t.pointOf(p0), t.pointOf(p1), t.pointOf(apex)
	if kernel.InCircle2D(a, b, c, t.pointOf(oppApex), t.xi, t.yi) != kernel.Positive {
		return
	}
	t.flipRaw(ti, nb, apexIdx, oppIdx)
	// Recurse away from apex, the vertex whose insertion triggered this
	// flip chain (splitTriangle/splitEdge always call legalize with
	// apexIdx pointing at the newly inserted vertex; flipRaw preserves
	// that invariant since apex is vs[0] in both resulting triangles).
	t.legalize(ti, 0)
	t.legalize(nb, 0)
}

// flipRaw replaces triangles ti (apex,p0,p1) and nb (oppApex,p1,p0)
// with (apex,p0,oppApex) and (apex,oppApex,p1): a pure topology swap,
// with no Delaunay legalization of its own. legalize uses it as its
// swap step; InsertConstraint's crossing-removal loop uses it directly,
// since re-legalizing there could flip a just-removed crossing straight
// back.
func (t *CDT) flipRaw(ti, nb, apexIdx, oppIdx int) {
	tr, otr := t.tris[ti], t.tris[nb]
	apex := tr.vs[apexIdx]
	p0, p1 := tr.vs[(apexIdx+1)%3], tr.vs[(apexIdx+2)%3]
	oppApex := otr.vs[oppIdx]

	outerTiP0 := t.neighborAcross(tr, apex, p0)
	outerTiP1 := t.neighborAcross(tr, apex, p1)
	outerNbP0 := t.neighborAcross(otr, oppApex, p0)
	outerNbP1 := t.neighborAcross(otr, oppApex, p1)

	t.tris[ti] = triangle{vs: [3]VH{apex, p0, oppApex}, nb: [3]int{outerNbP0, nb, outerTiP0}, alive: true}
	t.tris[nb] = triangle{vs: [3]VH{apex, oppApex, p1}, nb: [3]int{outerNbP1, outerTiP1, ti}, alive: true}

	t.relink(outerNbP0, nb, ti)
	t.relink(outerTiP1, ti, nb)
}

// InsertConstraint enforces an edge between two previously-inserted
// vertices, flipping any (unconstrained) edges it crosses. Returns
// ErrIntersectingConstraints if the segment properly crosses an
// existing constraint (spec.md §4.6, §7).
func (t *CDT) InsertConstraint(a, b VH) error {
	if a == b {
		return nil
	}
	key := newEdgeKey(a, b)
	if t.constrained[key] {
		return nil
	}

	for !t.hasEdge(a, b) {
		crossed, err := t.crossingEdge(a, b)
		if err != nil {
			return err
		}
		if crossed < 0 {
			break
		}
		t.flipEdgeIndex(crossed)
	}
	t.constrained[key] = true
	return nil
}

func (t *CDT) hasEdge(a, b VH) bool {
	for _, tr := range t.tris {
		if !tr.alive {
			continue
		}
		if containsVH(tr.vs, a) && containsVH(tr.vs, b) {
			return true
		}
	}
	return false
}

// crossingEdge finds a live, unconstrained triangle edge that properly
// crosses segment (a,b), or -1 if none remains, as a triangle index
// paired with the apex opposite that edge (encoded as ti*3+apexIdx).
func (t *CDT) crossingEdge(a, b VH) (int, error) {
	pa, pb := t.pointOf(a), t.pointOf(b)
	for ti := range t.tris {
		tr := &t.tris[ti]
		if !tr.alive {
			continue
		}
		for apexIdx := 0; apexIdx < 3; apexIdx++ {
			p0, p1 := tr.vs[(apexIdx+1)%3], tr.vs[(apexIdx+2)%3]
			if p0 == a || p0 == b || p1 == a || p1 == b {
				continue
			}
			if !kernel.SegmentsProperlyCross(pa, pb, t.pointOf(p0), t.pointOf(p1), t.xi, t.yi) {
				continue
			}
			if t.constrained[newEdgeKey(p0, p1)] {
				return 0, ErrIntersectingConstraints
			}
			return ti*3 + apexIdx, nil
		}
	}
	return -1, nil
}

func (t *CDT) flipEdgeIndex(code int) {
	ti, apexIdx := code/3, code%3
	tr := t.tris[ti]
	nb := tr.nb[apexIdx]
	if nb < 0 {
		return
	}
	p0, p1 := tr.vs[(apexIdx+1)%3], tr.vs[(apexIdx+2)%3]
	oppIdx := oppositeVertexIndex(t.tris[nb], p0, p1)
	t.flipRaw(ti, nb, apexIdx, oppIdx)
}

// GetFaces appends every live triangle's point-pool id triple to out
// and returns the result.
func (t *CDT) GetFaces(out [][3]kernel.ID) [][3]kernel.ID {
	for _, tr := range t.tris {
		if !tr.alive {
			continue
		}
		out = append(out, [3]kernel.ID{
			t.verts[tr.vs[0]].id,
			t.verts[tr.vs[1]].id,
			t.verts[tr.vs[2]].id,
		})
	}
	return out
}
