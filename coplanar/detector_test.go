package coplanar

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ajsb85/boolmesh/kernel"
	"github.com/ajsb85/boolmesh/mesh"
)

func buildTriangleSoup(pool *kernel.Pool, tris [][3][3]float64) (*mesh.Soup, mesh.PointIDTable) {
	s := &mesh.Soup{}
	for _, tri := range tris {
		base := mesh.VertexID(len(s.Vertices))
		for _, v := range tri {
			s.Vertices = append(s.Vertices, kernel.NewLazyPointFloat(v[0], v[1], v[2]))
		}
		s.Faces = append(s.Faces, mesh.Face{base, base + 1, base + 2})
		s.Data = append(s.Data, nil)
	}
	table := mesh.BuildPointIDTable(s, pool)
	return s, table
}

func TestDetectCoplanarAndOpposite(t *testing.T) {
	pool := kernel.NewPool(16)
	pool.StartUniquenessCheck()

	tri := [3][3]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}

	a, tableA := buildTriangleSoup(pool, [][3][3]float64{tri, {{5, 5, 5}, {6, 5, 5}, {5, 6, 5}}})
	// b[0] is identical orientation to a[0]; b[1] is the reverse orientation of a[0]
	reversed := [3][3]float64{tri[0], tri[2], tri[1]}
	b, tableB := buildTriangleSoup(pool, [][3][3]float64{tri, reversed})

	tagsA, tagsB := Detect(a.Faces, b.Faces, tableA, tableB)

	assert.Equal(t, mesh.Coplanar, tagsA[0])
	assert.Equal(t, mesh.Unknown, tagsA[1])
	assert.Equal(t, mesh.Coplanar, tagsB[0])
	assert.Equal(t, mesh.Opposite, tagsB[1])
}

func TestDetectNoMatches(t *testing.T) {
	pool := kernel.NewPool(16)
	pool.StartUniquenessCheck()

	a, tableA := buildTriangleSoup(pool, [][3][3]float64{{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}})
	b, tableB := buildTriangleSoup(pool, [][3][3]float64{{{10, 10, 10}, {11, 10, 10}, {10, 11, 10}}})

	tagsA, tagsB := Detect(a.Faces, b.Faces, tableA, tableB)
	assert.Equal(t, mesh.Unknown, tagsA[0])
	assert.Equal(t, mesh.Unknown, tagsB[0])
}
