package isect

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ajsb85/boolmesh/kernel"
)

func tri(pool *kernel.Pool, pts [3][3]float64) Tri {
	var out Tri
	for i, p := range pts {
		lp := kernel.NewLazyPointFloat(p[0], p[1], p[2])
		id := pool.Insert(lp)
		out.IDs[i] = id
		out.Pts[i] = pool.At(id)
	}
	return out
}

func TestIntersectFacesSharedVertexOnly(t *testing.T) {
	pool := kernel.NewPool(16)
	pool.StartUniquenessCheck()

	// Share exactly vertex (0,0,0); otherwise disjoint and non-coplanar.
	left := tri(pool, [3][3]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	right := tri(pool, [3][3]float64{{0, 0, 0}, {0, 0, 1}, {0, -1, 1}})

	got := IntersectFaces(left, right)
	assert.LessOrEqual(t, len(got), 1)
}

func TestIntersectFacesTransversalSegment(t *testing.T) {
	pool := kernel.NewPool(16)
	pool.StartUniquenessCheck()

	// left lies in the z=0 plane, right straddles it and crosses through.
	left := tri(pool, [3][3]float64{{-2, -2, 0}, {2, -2, 0}, {0, 2, 0}})
	right := tri(pool, [3][3]float64{{0, 0, -1}, {0, 0, 1}, {0, 2, 1}})

	got := IntersectFaces(left, right)
	assert.Len(t, got, 2)
}

func TestIntersectFacesNoCrossing(t *testing.T) {
	pool := kernel.NewPool(16)
	pool.StartUniquenessCheck()

	left := tri(pool, [3][3]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	right := tri(pool, [3][3]float64{{10, 10, 10}, {11, 10, 10}, {10, 11, 10}})

	got := IntersectFaces(left, right)
	assert.Empty(t, got)
}

func TestIntersectFacesCoplanarOverlap(t *testing.T) {
	pool := kernel.NewPool(16)
	pool.StartUniquenessCheck()

	left := tri(pool, [3][3]float64{{0, 0, 0}, {4, 0, 0}, {0, 4, 0}})
	right := tri(pool, [3][3]float64{{2, -2, 0}, {2, 2, 0}, {-2, 2, 0}})

	got := IntersectFaces(left, right)
	assert.NotEmpty(t, got)
	assert.LessOrEqual(t, len(got), 6)
}

func TestIntersectFacesIdenticalCoplanar(t *testing.T) {
	pool := kernel.NewPool(16)
	pool.StartUniquenessCheck()

	pts := [3][3]float64{{0, 0, 0}, {4, 0, 0}, {0, 4, 0}}
	left := tri(pool, pts)
	right := tri(pool, pts)

	got := IntersectFaces(left, right)
	assert.Len(t, got, 3)
	for _, p := range got {
		assert.True(t, p.Symbolic.L.IsVertex())
		assert.True(t, p.Symbolic.R.IsVertex())
	}
}
