package broadphase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ajsb85/boolmesh/kernel"
	"github.com/ajsb85/boolmesh/mesh"
)

func triSoup(pool *kernel.Pool, tris [][3][3]float64) (*mesh.Soup, mesh.PointIDTable) {
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

func TestCullOverlapping(t *testing.T) {
	pool := kernel.NewPool(32)
	pool.StartUniquenessCheck()

	left, leftTable := triSoup(pool, [][3][3]float64{
		{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, // near origin
		{{100, 100, 100}, {101, 100, 100}, {100, 101, 100}},
	})
	right, rightTable := triSoup(pool, [][3][3]float64{
		{{0.5, 0.5, 0}, {1.5, 0.5, 0}, {0.5, 1.5, 0}}, // overlaps left[0]
	})

	leftTags := mesh.NewTags(len(left.Faces))
	rightTags := mesh.NewTags(len(right.Faces))

	pairs := Cull(left, right, leftTable, rightTable, leftTags, rightTags)
	assert.Equal(t, []Pair{{Left: 0, Right: 0}}, pairs)
}

func TestCullSkipsTaggedFaces(t *testing.T) {
	pool := kernel.NewPool(32)
	pool.StartUniquenessCheck()

	tri := [3][3]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	left, leftTable := triSoup(pool, [][3][3]float64{tri})
	right, rightTable := triSoup(pool, [][3][3]float64{tri})

	leftTags := mesh.NewTags(1)
	rightTags := mesh.NewTags(1)
	leftTags[0] = mesh.Coplanar
	rightTags[0] = mesh.Coplanar

	pairs := Cull(left, right, leftTable, rightTable, leftTags, rightTags)
	assert.Empty(t, pairs)
}

func TestCullDisjoint(t *testing.T) {
	pool := kernel.NewPool(32)
	pool.StartUniquenessCheck()

	left, leftTable := triSoup(pool, [][3][3]float64{{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}})
	right, rightTable := triSoup(pool, [][3][3]float64{{{10, 10, 10}, {11, 10, 10}, {10, 11, 10}}})

	pairs := Cull(left, right, leftTable, rightTable, mesh.NewTags(1), mesh.NewTags(1))
	assert.Empty(t, pairs)
}
