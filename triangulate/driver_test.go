package triangulate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajsb85/boolmesh/broadphase"
	"github.com/ajsb85/boolmesh/isect"
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

func TestBuildAllTriangulatesCrossingFace(t *testing.T) {
	pool := kernel.NewPool(32)
	pool.StartUniquenessCheck()

	left, leftTable := soupOf(pool, [][3][3]float64{{{-2, -2, 0}, {2, -2, 0}, {0, 2, 0}}})
	right, rightTable := soupOf(pool, [][3][3]float64{{{0, 0, -1}, {0, 0, 1}, {0, 2, 1}}})

	pairs := []broadphase.Pair{{Left: 0, Right: 0}}
	infos, err := isect.ComputeAll(context.Background(), pool, left, right, leftTable, rightTable, pairs, 4)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	require.Len(t, infos[0].Points, 2)

	pool.StopUniquenessCheck()
	resolved, start, end := isect.Insert(pool, left, right, leftTable, rightTable, infos)
	pool.ForceExactRange(start, end, 2)

	out, err := BuildAll(context.Background(), pool, left, leftTable, kernel.Left, infos, resolved, 4)
	require.NoError(t, err)
	require.Contains(t, out, mesh.FaceID(0))

	cdt := out[mesh.FaceID(0)]
	require.NotNil(t, cdt)
	faces := cdt.GetFaces(nil)
	assert.GreaterOrEqual(t, len(faces), 2)

	for _, id := range resolved[0].PointIDs {
		assert.True(t, containsVertex(faces, id))
	}
}

func containsVertex(faces [][3]kernel.ID, id kernel.ID) bool {
	for _, f := range faces {
		for _, v := range f {
			if v == id {
				return true
			}
		}
	}
	return false
}

func TestBuildAllSkipsNonIntersectingFaces(t *testing.T) {
	pool := kernel.NewPool(32)
	pool.StartUniquenessCheck()

	left, leftTable := soupOf(pool, [][3][3]float64{{{-2, -2, 0}, {2, -2, 0}, {0, 2, 0}}})
	right, rightTable := soupOf(pool, [][3][3]float64{{{100, 100, 100}, {101, 100, 100}, {100, 101, 100}}})

	pairs := []broadphase.Pair{{Left: 0, Right: 0}}
	infos, err := isect.ComputeAll(context.Background(), pool, left, right, leftTable, rightTable, pairs, 4)
	require.NoError(t, err)
	require.Len(t, infos, 0)

	pool.StopUniquenessCheck()
	resolved, _, _ := isect.Insert(pool, left, right, leftTable, rightTable, infos)

	out, err := BuildAll(context.Background(), pool, left, leftTable, kernel.Left, infos, resolved, 4)
	require.NoError(t, err)
	assert.Len(t, out, 0)
}
