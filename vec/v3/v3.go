// Package v3 provides a minimal 3D float64 vector, the interchange type
// used at the boundaries of the exact kernel (STEP/OBJ export, AABBs,
// fast-path predicates) where lazy-exact coordinates have already been
// resolved to floats.
package v3

import "math"

// Vec is a 3D vector/point with float64 components.
type Vec struct {
	X, Y, Z float64
}

// Add returns a+b.
func (a Vec) Add(b Vec) Vec { return Vec{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }

// Sub returns a-b.
func (a Vec) Sub(b Vec) Vec { return Vec{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }

// MulScalar returns a*s.
func (a Vec) MulScalar(s float64) Vec { return Vec{a.X * s, a.Y * s, a.Z * s} }

// Dot returns the dot product of a and b.
func (a Vec) Dot(b Vec) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

// Cross returns the cross product a x b.
func (a Vec) Cross(b Vec) Vec {
	return Vec{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Length returns the Euclidean length of a.
func (a Vec) Length() float64 { return math.Sqrt(a.Dot(a)) }

// Normalize returns a scaled to unit length. The zero vector is returned
// unchanged.
func (a Vec) Normalize() Vec {
	l := a.Length()
	if l == 0 {
		return a
	}
	return a.MulScalar(1 / l)
}

// Equals reports whether a and b are within tol of each other in every
// component.
func (a Vec) Equals(b Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}

// Min returns the component-wise minimum of a and b.
func (a Vec) Min(b Vec) Vec {
	return Vec{math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z)}
}

// Max returns the component-wise maximum of a and b.
func (a Vec) Max(b Vec) Vec {
	return Vec{math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z)}
}

// MinElem returns the smallest component of a.
func (a Vec) MinElem() float64 { return math.Min(a.X, math.Min(a.Y, a.Z)) }

// MaxElem returns the largest component of a.
func (a Vec) MaxElem() float64 { return math.Max(a.X, math.Max(a.Y, a.Z)) }
