package kernel

import "math/big"

// Sign is the exact sign of a predicate result.
type Sign int

const (
	Negative Sign = -1
	Zero     Sign = 0
	Positive Sign = 1
)

func signOfRat(r *big.Rat) Sign {
	switch r.Sign() {
	case -1:
		return Negative
	case 1:
		return Positive
	default:
		return Zero
	}
}

//-----------------------------------------------------------------------------
// Exact 3D orientation

// Orient3D returns the sign of the signed volume of the tetrahedron
// (a,b,c,d): Positive if d lies on the side of the plane through a,b,c
// that the normal (b-a)x(c-a) points to, Negative if on the other side,
// Zero if coplanar. Exact:
// evaluated entirely in big.Rat, no floating point.
func Orient3D(a, b, c, d *LazyPoint) Sign {
	return signOfRat(Orient3DVolume(a, b, c, d))
}

// Orient3DVolume returns the raw signed volume used by Orient3D. Exposed
// so callers that already need the sign (to decide *whether* two
// features cross) can reuse the same value to compute *where* they
// cross, without a second exact evaluation.
func Orient3DVolume(a, b, c, d *LazyPoint) *big.Rat {
	ax, ay, az := a.Exact()
	bx, by, bz := b.Exact()
	cx, cy, cz := c.Exact()
	dx, dy, dz := d.Exact()

	var abx, aby, abz, acx, acy, acz, adx, ady, adz big.Rat
	abx.Sub(bx, ax)
	aby.Sub(by, ay)
	abz.Sub(bz, az)
	acx.Sub(cx, ax)
	acy.Sub(cy, ay)
	acz.Sub(cz, az)
	adx.Sub(dx, ax)
	ady.Sub(dy, ay)
	adz.Sub(dz, az)

	// det [ab; ac; ad], 3x3
	return det3(&abx, &aby, &abz, &acx, &acy, &acz, &adx, &ady, &adz)
}

func det3(a1, a2, a3, b1, b2, b3, c1, c2, c3 *big.Rat) *big.Rat {
	var t1, t2, t3, s1, s2 big.Rat
	t1.Mul(b2, c3)
	s1.Mul(b3, c2)
	t1.Sub(&t1, &s1)
	t1.Mul(&t1, a1)

	t2.Mul(b1, c3)
	s2.Mul(b3, c1)
	t2.Sub(&t2, &s2)
	t2.Mul(&t2, a2)

	t3.Mul(b1, c2)
	var s3 big.Rat
	s3.Mul(b2, c1)
	t3.Sub(&t3, &s3)
	t3.Mul(&t3, a3)

	t1.Sub(&t1, &t2)
	t1.Add(&t1, &t3)
	return &t1
}

//-----------------------------------------------------------------------------
// Exact 2D orientation, used after projecting to the dominant plane of a
// triangle (coplanar case of the intersector, and the planar
// triangulator's Delaunay predicates).

// Orient2D returns the sign of twice the signed area of (a,b,c) in the
// 2D plane (xi, xj of the 3D exact coordinates, xi/xj in {0,1,2} for
// x/y/z). Positive => counter-clockwise.
func Orient2D(a, b, c *LazyPoint, xi, yi int) Sign {
	return signOfRat(orient2DVolume(a, b, c, xi, yi))
}

func coordsOf(p *LazyPoint) [3]*big.Rat {
	x, y, z := p.Exact()
	return [3]*big.Rat{x, y, z}
}

// DominantAxis returns the pair of coordinate indices (xi, yi) to use
// for a 2D projection that drops the axis most aligned with the
// triangle's normal, matching the teacher's habit of projecting along a
// triangle's normal before running a 2D algorithm (spec.md §4.6).
func DominantAxis(normal [3]float64) (xi, yi int) {
	ax, ay, az := abs(normal[0]), abs(normal[1]), abs(normal[2])
	switch {
	case az >= ax && az >= ay:
		return 0, 1
	case ay >= ax && ay >= az:
		return 0, 2
	default:
		return 1, 2
	}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

//-----------------------------------------------------------------------------
// Coplanarity and orientation of two triangles, used by the coplanar
// detector's rationale (spec.md §4.2) and as a fast pre-check before the
// intersector runs the general 3D case.

// Coplanar reports whether all six points of the two triangles lie on a
// common plane.
func Coplanar(a0, a1, a2, b0, b1, b2 *LazyPoint) bool {
	return Orient3D(a0, a1, a2, b0) == Zero &&
		Orient3D(a0, a1, a2, b1) == Zero &&
		Orient3D(a0, a1, a2, b2) == Zero
}

//-----------------------------------------------------------------------------
// 2D segment intersection, exact. Used both by the coplanar-overlap path
// of the face-face intersector and by the constrained Delaunay
// triangulator's "intersection of constraints" check (spec.md §4.6,
// §7).

// SegmentsProperlyCross reports whether open segments (p1,p2) and
// (q1,q2) cross at a single interior point of both, using the standard
// opposite-orientation test. This is the exact predicate backing the
// triangulator's self-intersection detection (spec.md §4.6, §7: "Fails
// with an intersection of constraints condition when two constraint
// segments properly cross").
func SegmentsProperlyCross(p1, p2, q1, q2 *LazyPoint, xi, yi int) bool {
	d1 := Orient2D(q1, q2, p1, xi, yi)
	d2 := Orient2D(q1, q2, p2, xi, yi)
	d3 := Orient2D(p1, p2, q1, xi, yi)
	d4 := Orient2D(p1, p2, q2, xi, yi)
	return d1 != d2 && d1 != Zero && d2 != Zero &&
		d3 != d4 && d3 != Zero && d4 != Zero
}

// Lerp returns the exact point a + t*(b-a).
func Lerp(a, b *LazyPoint, t *big.Rat) LazyPoint {
	ax, ay, az := a.Exact()
	bx, by, bz := b.Exact()
	var dx, dy, dz, x, y, z big.Rat
	dx.Sub(bx, ax)
	dy.Sub(by, ay)
	dz.Sub(bz, az)
	x.Mul(t, &dx)
	x.Add(&x, ax)
	y.Mul(t, &dy)
	y.Add(&y, ay)
	z.Mul(t, &dz)
	z.Add(&z, az)
	return NewLazyPoint(&x, &y, &z)
}

// LinePlaneParam returns the parameter t such that a+t*(b-a) lies on the
// plane through p0,p1,p2, given the caller already knows the segment
// (a,b) crosses that plane (i.e. Orient3D(p0,p1,p2,a) and
// Orient3D(p0,p1,p2,b) have different, both-nonzero signs, or one of
// them is exactly zero).
func LinePlaneParam(p0, p1, p2, a, b *LazyPoint) *big.Rat {
	da := Orient3DVolume(p0, p1, p2, a)
	db := Orient3DVolume(p0, p1, p2, b)
	var t, denom big.Rat
	denom.Sub(da, db)
	t.Quo(da, &denom)
	return &t
}

// SegmentParam2D returns the parameter t such that p1+t*(p2-p1) lies on
// the line through q1,q2, in the projected (xi,yi) plane. Valid when the
// segments are already known to cross (SegmentsProperlyCross) or touch.
func SegmentParam2D(p1, p2, q1, q2 *LazyPoint, xi, yi int) *big.Rat {
	da := orient2DVolume(q1, q2, p1, xi, yi)
	db := orient2DVolume(q1, q2, p2, xi, yi)
	var t, denom big.Rat
	denom.Sub(da, db)
	t.Quo(da, &denom)
	return &t
}

func orient2DVolume(a, b, c *LazyPoint, xi, yi int) *big.Rat {
	ac := coordsOf(a)
	bc := coordsOf(b)
	cc := coordsOf(c)
	var abx, aby, acx, acy, cross1, cross2 big.Rat
	abx.Sub(bc[xi], ac[xi])
	aby.Sub(bc[yi], ac[yi])
	acx.Sub(cc[xi], ac[xi])
	acy.Sub(cc[yi], ac[yi])
	cross1.Mul(&abx, &acy)
	cross2.Mul(&aby, &acx)
	cross1.Sub(&cross1, &cross2)
	return &cross1
}

// InCircle2D returns the sign of the standard incircle determinant for
// (a,b,c,d) projected onto (xi,yi): Positive when d lies strictly
// inside the circle through a,b,c (assuming a,b,c wound
// counter-clockwise), Negative when strictly outside, Zero when
// cocircular. Used by the planar triangulator to legalize edges after
// each insertion (spec.md §4.6).
func InCircle2D(a, b, c, d *LazyPoint, xi, yi int) Sign {
	ac := coordsOf(a)
	bc := coordsOf(b)
	cc := coordsOf(c)
	dc := coordsOf(d)

	var ax, ay, bx, by, cx, cy big.Rat
	ax.Sub(ac[xi], dc[xi])
	ay.Sub(ac[yi], dc[yi])
	bx.Sub(bc[xi], dc[xi])
	by.Sub(bc[yi], dc[yi])
	cx.Sub(cc[xi], dc[xi])
	cy.Sub(cc[yi], dc[yi])

	sq := func(x, y *big.Rat) *big.Rat {
		var xx, yy, s big.Rat
		xx.Mul(x, x)
		yy.Mul(y, y)
		s.Add(&xx, &yy)
		return &s
	}
	aSq := sq(&ax, &ay)
	bSq := sq(&bx, &by)
	cSq := sq(&cx, &cy)

	return signOfRat(det3(&ax, &ay, aSq, &bx, &by, bSq, &cx, &cy, cSq))
}

// PointOnSegment2D reports whether point c lies on the closed segment
// (a,b), given c is already known to be collinear with a,b in the
// projected plane.
func PointOnSegment2D(a, b, c *LazyPoint, xi, yi int) bool {
	ac := coordsOf(a)
	bc := coordsOf(b)
	cc := coordsOf(c)
	var minX, maxX, minY, maxY big.Rat
	if ac[xi].Cmp(bc[xi]) <= 0 {
		minX, maxX = *ac[xi], *bc[xi]
	} else {
		minX, maxX = *bc[xi], *ac[xi]
	}
	if ac[yi].Cmp(bc[yi]) <= 0 {
		minY, maxY = *ac[yi], *bc[yi]
	} else {
		minY, maxY = *bc[yi], *ac[yi]
	}
	return cc[xi].Cmp(&minX) >= 0 && cc[xi].Cmp(&maxX) <= 0 &&
		cc[yi].Cmp(&minY) >= 0 && cc[yi].Cmp(&maxY) <= 0
}
