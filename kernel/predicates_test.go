package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func pt(x, y, z float64) LazyPoint { return NewLazyPointFloat(x, y, z) }

func TestOrient3D(t *testing.T) {
	a := pt(0, 0, 0)
	b := pt(1, 0, 0)
	c := pt(0, 1, 0)

	above := pt(0, 0, 1)
	below := pt(0, 0, -1)
	onPlane := pt(0.25, 0.25, 0)

	assert.Equal(t, Positive, Orient3D(&a, &b, &c, &above))
	assert.Equal(t, Negative, Orient3D(&a, &b, &c, &below))
	assert.Equal(t, Zero, Orient3D(&a, &b, &c, &onPlane))
}

func TestCoplanar(t *testing.T) {
	a0, a1, a2 := pt(0, 0, 0), pt(1, 0, 0), pt(0, 1, 0)
	b0, b1, b2 := pt(0.5, 0, 0), pt(0.5, 0.5, 0), pt(2, 2, 0)
	assert.True(t, Coplanar(&a0, &a1, &a2, &b0, &b1, &b2))

	c2 := pt(0, 1, 1)
	assert.False(t, Coplanar(&a0, &a1, &a2, &b0, &b1, &c2))
}

func TestSegmentsProperlyCross(t *testing.T) {
	p1, p2 := pt(0, 0, 0), pt(2, 2, 0)
	q1, q2 := pt(0, 2, 0), pt(2, 0, 0)
	assert.True(t, SegmentsProperlyCross(&p1, &p2, &q1, &q2, 0, 1))

	// parallel, no crossing
	r1, r2 := pt(0, 0, 0), pt(1, 0, 0)
	s1, s2 := pt(0, 1, 0), pt(1, 1, 0)
	assert.False(t, SegmentsProperlyCross(&r1, &r2, &s1, &s2, 0, 1))

	// sharing an endpoint is not a "proper" crossing
	t1, t2 := pt(0, 0, 0), pt(1, 1, 0)
	u1, u2 := pt(0, 0, 0), pt(1, -1, 0)
	assert.False(t, SegmentsProperlyCross(&t1, &t2, &u1, &u2, 0, 1))
}

func TestDominantAxis(t *testing.T) {
	xi, yi := DominantAxis([3]float64{0, 0, 1})
	assert.Equal(t, 0, xi)
	assert.Equal(t, 1, yi)

	xi, yi = DominantAxis([3]float64{1, 0, 0})
	assert.Equal(t, 1, xi)
	assert.Equal(t, 2, yi)
}
