package isect

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajsb85/boolmesh/broadphase"
	"github.com/ajsb85/boolmesh/kernel"
	"github.com/ajsb85/boolmesh/mesh"
)

func soupOf(pool *kernel.Pool, tris [][3][3]float64) (*mesh.Soup, mesh.PointIDTable) {
	s := &mesh.Soup{}
	for _, tri := range tris {
		base := mesh.VertexID(len(s.Vertices))
		for _, v := range tri {
			s.Vertices = append(s.Vertices, kernel.NewLazyPointFloat(v[0], v[1], v[2]))
		}
		s.Faces = append(s.Faces, mesh.Face{base, base + 1, base + 2})
		s.Data = append(s.Data, nil)
	}
	return s, mesh.BuildPointIDTable(s, pool)
}

func TestComputeAllAndInsertCrossingPair(t *testing.T) {
	pool := kernel.NewPool(32)
	pool.StartUniquenessCheck()

	left, leftTable := soupOf(pool, [][3][3]float64{{{-2, -2, 0}, {2, -2, 0}, {0, 2, 0}}})
	right, rightTable := soupOf(pool, [][3][3]float64{{{0, 0, -1}, {0, 0, 1}, {0, 2, 1}}})

	pairs := []broadphase.Pair{{Left: 0, Right: 0}}
	infos, err := ComputeAll(context.Background(), pool, left, right, leftTable, rightTable, pairs, 4)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Len(t, infos[0].Points, 2)

	before := pool.Len()
	pool.StopUniquenessCheck()
	resolved, start, end := Insert(pool, left, right, leftTable, rightTable, infos)
	require.Len(t, resolved, 1)
	assert.Len(t, resolved[0].PointIDs, 2)
	assert.GreaterOrEqual(t, int(end-start), 0)
	assert.GreaterOrEqual(t, pool.Len(), before)

	pool.ForceExactRange(start, end, 2)
	for _, id := range resolved[0].PointIDs {
		p := pool.At(id)
		x, y, z := p.Exact()
		assert.NotNil(t, x)
		assert.NotNil(t, y)
		assert.NotNil(t, z)
	}
}

func TestInsertReusesSymbolicPointAcrossPairs(t *testing.T) {
	pool := kernel.NewPool(32)
	pool.StartUniquenessCheck()

	left, leftTable := soupOf(pool, [][3][3]float64{
		{{-2, -2, 0}, {2, -2, 0}, {0, 2, 0}},
		{{-2, -2, 0}, {2, -2, 0}, {0, 2, 0}},
	})
	right, rightTable := soupOf(pool, [][3][3]float64{{{0, 0, -1}, {0, 0, 1}, {0, 2, 1}}})

	infos := []Info{
		{LeftFace: 0, RightFace: 0, Points: IntersectFaces(
			faceTri(pool, left, leftTable, 0), faceTri(pool, right, rightTable, 0))},
		{LeftFace: 1, RightFace: 0, Points: IntersectFaces(
			faceTri(pool, left, leftTable, 1), faceTri(pool, right, rightTable, 0))},
	}

	pool.StopUniquenessCheck()
	resolved, _, _ := Insert(pool, left, right, leftTable, rightTable, infos)
	require.Len(t, resolved, 2)
	assert.Equal(t, resolved[0].PointIDs, resolved[1].PointIDs)
}
