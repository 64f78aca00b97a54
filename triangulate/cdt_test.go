package triangulate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajsb85/boolmesh/kernel"
)

func newPool() (*kernel.Pool, func(x, y, z float64) (*kernel.LazyPoint, kernel.ID)) {
	pool := kernel.NewPool(32)
	pool.StartUniquenessCheck()
	ins := func(x, y, z float64) (*kernel.LazyPoint, kernel.ID) {
		id := pool.Insert(kernel.NewLazyPointFloat(x, y, z))
		return pool.At(id), id
	}
	return pool, ins
}

func TestCDTSeedHasOneTriangle(t *testing.T) {
	_, ins := newPool()
	pa, ida := ins(0, 0, 0)
	pb, idb := ins(4, 0, 0)
	pc, idc := ins(0, 4, 0)

	cdt := New(pa, pb, pc, ida, idb, idc, 0, 1)
	faces := cdt.GetFaces(nil)
	require.Len(t, faces, 1)
}

func TestCDTInsertInteriorPointSplitsIntoThree(t *testing.T) {
	_, ins := newPool()
	pa, ida := ins(0, 0, 0)
	pb, idb := ins(4, 0, 0)
	pc, idc := ins(0, 4, 0)
	cdt := New(pa, pb, pc, ida, idb, idc, 0, 1)

	pm, idm := ins(1, 1, 0)
	cdt.Insert(pm, idm, kernel.Face(kernel.Left))

	faces := cdt.GetFaces(nil)
	assert.Len(t, faces, 3)
}

func TestCDTInsertOnEdgeSplitsIntoTwo(t *testing.T) {
	_, ins := newPool()
	pa, ida := ins(0, 0, 0)
	pb, idb := ins(4, 0, 0)
	pc, idc := ins(0, 4, 0)
	cdt := New(pa, pb, pc, ida, idb, idc, 0, 1)

	pm, idm := ins(2, 0, 0) // midpoint of edge (pa,pb)
	cdt.Insert(pm, idm, kernel.Edge(kernel.Left, 0))

	faces := cdt.GetFaces(nil)
	assert.Len(t, faces, 2)
}

func TestCDTInsertConstraintAddsEdge(t *testing.T) {
	_, ins := newPool()
	pa, ida := ins(0, 0, 0)
	pb, idb := ins(4, 0, 0)
	pc, idc := ins(0, 4, 0)
	cdt := New(pa, pb, pc, ida, idb, idc, 0, 1)

	p1, id1 := ins(1, 1, 0)
	p2, id2 := ins(2, 2, 0)
	v1 := cdt.Insert(p1, id1, kernel.Face(kernel.Left))
	v2 := cdt.Insert(p2, id2, kernel.Face(kernel.Left))

	err := cdt.InsertConstraint(v1, v2)
	require.NoError(t, err)
	assert.True(t, cdt.hasEdge(v1, v2))
}

func TestCDTInsertConstraintDetectsCrossing(t *testing.T) {
	_, ins := newPool()
	pa, ida := ins(0, 0, 0)
	pb, idb := ins(10, 0, 0)
	pc, idc := ins(0, 10, 0)
	cdt := New(pa, pb, pc, ida, idb, idc, 0, 1)

	// p1-p2 straddles the triangle's middle; pm sits on one side of that
	// line and p3 on the other, so the pm-p3 constraint must cross it.
	pm, idm := ins(3, 3, 0)
	vm := cdt.Insert(pm, idm, kernel.Face(kernel.Left))

	p1, id1 := ins(6, 2, 0)
	p2, id2 := ins(2, 6, 0)
	v1 := cdt.Insert(p1, id1, kernel.Face(kernel.Left))
	v2 := cdt.Insert(p2, id2, kernel.Face(kernel.Left))

	require.NoError(t, cdt.InsertConstraint(v1, v2))

	p3, id3 := ins(4, 5, 0)
	v3 := cdt.Insert(p3, id3, kernel.Face(kernel.Left))

	err := cdt.InsertConstraint(vm, v3)
	assert.ErrorIs(t, err, ErrIntersectingConstraints)
}
