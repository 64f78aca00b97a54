//-----------------------------------------------------------------------------
/*

Mesh 3D

Float64 triangle and box helpers beside the exact kernel: the triangle
type used for STEP export and for the global classifier's float64
ray-cast fallback, nearest-point queries, and a box type used by the
tests to generate random triangles.

*/
//-----------------------------------------------------------------------------

package sdf

import (
	"math/rand"

	v3 "github.com/ajsb85/boolmesh/vec/v3"
)

//-----------------------------------------------------------------------------

const tolerance = 1e-9

// EqualFloat64 reports whether a and b are within tol of each other.
func EqualFloat64(a, b, tol float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tol
}

//-----------------------------------------------------------------------------

// Triangle3 is a float64 triangle, vertices in order.
type Triangle3 [3]v3.Vec

// Normal returns the unit triangle normal, (v1-v0) x (v2-v0) normalized.
func (t Triangle3) Normal() v3.Vec {
	return t[1].Sub(t[0]).Cross(t[2].Sub(t[0])).Normalize()
}

// Degenerate reports whether t has (near) zero area.
func (t Triangle3) Degenerate(tol float64) bool {
	n := t[1].Sub(t[0]).Cross(t[2].Sub(t[0]))
	return n.Length() <= tol
}

// rotateVertex cyclically rotates the triangle's vertices, used to check
// that distance queries are rotation-invariant.
func (t Triangle3) rotateVertex() Triangle3 {
	return Triangle3{t[1], t[2], t[0]}
}

//-----------------------------------------------------------------------------

// triangleInfo precomputes the edge vectors and normal needed to evaluate
// the squared distance from a triangle to a query point.
type triangleInfo struct {
	t      *Triangle3
	e0, e1 v3.Vec // t[1]-t[0], t[2]-t[0]
	a, b, c, det float64
}

func newTriangleInfo(t *Triangle3) *triangleInfo {
	e0 := t[1].Sub(t[0])
	e1 := t[2].Sub(t[0])
	a := e0.Dot(e0)
	b := e0.Dot(e1)
	c := e1.Dot(e1)
	return &triangleInfo{
		t: t, e0: e0, e1: e1,
		a: a, b: b, c: c,
		det: a*c - b*b,
	}
}

// minDistance2 returns the minimum squared distance from p to the
// triangle, clamping the closest point on the supporting plane to the
// triangle's domain. Standard closest-point-on-triangle derivation.
func (ti *triangleInfo) minDistance2(p v3.Vec) float64 {
	d := ti.t[0].Sub(p)
	d0 := ti.e0.Dot(d)
	d1 := ti.e1.Dot(d)

	s := ti.b*d1 - ti.c*d0
	tt := ti.b*d0 - ti.a*d1

	if ti.det == 0 {
		return d.Dot(d)
	}

	if s+tt <= ti.det {
		if s < 0 {
			if tt < 0 {
				// region 4
				if d0 < 0 {
					s = clamp01(-d0 / ti.a)
					tt = 0
				} else {
					s = 0
					tt = clamp01(-d1 / ti.c)
				}
			} else {
				// region 3
				s = 0
				tt = clamp01(-d1 / ti.c)
			}
		} else if tt < 0 {
			// region 5
			s = clamp01(-d0 / ti.a)
			tt = 0
		} else {
			// region 0
			invDet := 1 / ti.det
			s *= invDet
			tt *= invDet
		}
	} else {
		if s < 0 {
			// region 2
			numer := ti.c + d1 - ti.b - d0
			if numer <= 0 {
				s = 0
			} else {
				denom := ti.a - 2*ti.b + ti.c
				s = clamp01(numer / denom)
			}
			tt = 1 - s
		} else if tt < 0 {
			// region 6
			numer := ti.a + d0 - ti.b - d1
			if numer <= 0 {
				tt = 0
			} else {
				denom := ti.a - 2*ti.b + ti.c
				tt = clamp01(numer / denom)
			}
			s = 1 - tt
		} else {
			// region 1
			numer := ti.c + d1 - ti.b - d0
			denom := ti.a - 2*ti.b + ti.c
			if numer <= 0 {
				s = 0
			} else if numer >= denom {
				s = 1
			} else {
				s = numer / denom
			}
			tt = 1 - s
		}
	}

	closest := ti.t[0].Add(ti.e0.MulScalar(s)).Add(ti.e1.MulScalar(tt))
	return closest.Sub(p).Dot(closest.Sub(p))
}

// RayIntersect returns the ray parameter t (origin + t*dir) at which the
// ray crosses t's plane within the triangle's domain, and whether it hit
// at all (t > 0, standard Moeller-Trumbore derivation, same precomputed-
// edge-vector style as triangleInfo above).
func (t Triangle3) RayIntersect(origin, dir v3.Vec) (float64, bool) {
	e0 := t[1].Sub(t[0])
	e1 := t[2].Sub(t[0])
	pvec := dir.Cross(e1)
	det := e0.Dot(pvec)
	if det > -tolerance && det < tolerance {
		return 0, false
	}
	invDet := 1 / det
	tvec := origin.Sub(t[0])
	u := tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}
	qvec := tvec.Cross(e0)
	v := dir.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}
	hit := e1.Dot(qvec) * invDet
	if hit <= tolerance {
		return 0, false
	}
	return hit, true
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

//-----------------------------------------------------------------------------

// Box3 is an axis-aligned bounding box, used by tests to fuzz triangles
// and query points.
type Box3 struct {
	Min, Max v3.Vec
}

// NewBox3 returns the box spanned by a and b.
func NewBox3(a, b v3.Vec) Box3 {
	return Box3{Min: a.Min(b), Max: a.Max(b)}
}

// Random returns a uniformly random point inside the box.
func (b Box3) Random() v3.Vec {
	return v3.Vec{
		X: randRange(b.Min.X, b.Max.X),
		Y: randRange(b.Min.Y, b.Max.Y),
		Z: randRange(b.Min.Z, b.Max.Z),
	}
}

// RandomTriangle returns a triangle with vertices uniformly random inside
// the box.
func (b Box3) RandomTriangle() Triangle3 {
	return Triangle3{b.Random(), b.Random(), b.Random()}
}

func randRange(lo, hi float64) float64 {
	return lo + rand.Float64()*(hi-lo)
}

//-----------------------------------------------------------------------------
