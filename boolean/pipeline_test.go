package boolean

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajsb85/boolmesh/kernel"
	"github.com/ajsb85/boolmesh/mesh"
)

// cube returns the 12 outward-wound triangles of an axis-aligned unit
// cube with the given origin and side length.
func cube(ox, oy, oz, s float64) [][3][3]float64 {
	v := [8][3]float64{
		{ox, oy, oz}, {ox + s, oy, oz}, {ox + s, oy + s, oz}, {ox, oy + s, oz},
		{ox, oy, oz + s}, {ox + s, oy, oz + s}, {ox + s, oy + s, oz + s}, {ox, oy + s, oz + s},
	}
	idx := [12][3]int{
		{1, 2, 6}, {1, 6, 5}, // +X
		{0, 4, 7}, {0, 7, 3}, // -X
		{2, 3, 7}, {2, 7, 6}, // +Y
		{0, 1, 5}, {0, 5, 4}, // -Y
		{4, 5, 6}, {4, 6, 7}, // +Z
		{0, 3, 2}, {0, 2, 1}, // -Z
	}
	out := make([][3][3]float64, 12)
	for i, tri := range idx {
		out[i] = [3][3]float64{v[tri[0]], v[tri[1]], v[tri[2]]}
	}
	return out
}

func soupOf(tris [][3][3]float64) *mesh.Soup {
	s := &mesh.Soup{}
	for _, tri := range tris {
		base := mesh.VertexID(len(s.Vertices))
		for _, v := range tri {
			s.Vertices = append(s.Vertices, kernel.NewLazyPointFloat(v[0], v[1], v[2]))
		}
		s.Faces = append(s.Faces, mesh.Face{base, base + 1, base + 2})
		s.Data = append(s.Data, nil)
	}
	return s
}

func TestDisjointCubesUnionAndIntersection(t *testing.T) {
	left := soupOf(cube(0, 0, 0, 1))
	right := soupOf(cube(2, 0, 0, 1))

	mm, warn, err := Run(context.Background(), left, right, Options{Workers: 4})
	require.NoError(t, err)
	// disjoint cubes touch no border edge at all, so both components fall
	// back to a ray test; that fallback being exercised is expected here,
	// not an error.
	assert.True(t, warn.Has(IsolatedComponentFallback))
	assert.False(t, warn.Has(LocalInconsistency))
	assert.False(t, warn.Has(GlobalSeedConflict))

	for _, f := range mm.Faces {
		assert.Equal(t, mesh.Exterior, f.Tag)
	}

	union := Extract(mm, Union)
	assert.Len(t, union.Faces, 24)

	inter := Extract(mm, Intersection)
	assert.Len(t, inter.Faces, 0)
}

func TestIdenticalCubesIntersectionAndSymmetricDifference(t *testing.T) {
	left := soupOf(cube(0, 0, 0, 1))
	right := soupOf(cube(0, 0, 0, 1))

	mm, _, err := Run(context.Background(), left, right, Options{Workers: 4})
	require.NoError(t, err)

	for _, f := range mm.Faces {
		assert.Equal(t, mesh.Boundary, f.Tag)
	}

	inter := Extract(mm, Intersection)
	assert.Len(t, inter.Faces, 12)

	symDiff := Extract(mm, SymmetricDifference)
	assert.Len(t, symDiff.Faces, 0)
}

func TestExtractDifferenceFlipsRightOrientation(t *testing.T) {
	mm := &MixedMesh{Pool: kernel.NewPool(6)}
	ids := make([]kernel.ID, 6)
	for i := 0; i < 6; i++ {
		ids[i] = mm.Pool.Insert(kernel.NewLazyPointFloat(float64(i), 0, 0))
	}
	mm.Faces = []Face{
		{Verts: [3]kernel.ID{ids[0], ids[1], ids[2]}, FromLeft: true, Tag: mesh.Exterior},
		{Verts: [3]kernel.ID{ids[3], ids[4], ids[5]}, FromLeft: false, Tag: mesh.Interior},
	}

	out := Extract(mm, Difference)
	require.Len(t, out.Faces, 2)

	coordX := func(vid mesh.VertexID) float64 { return out.Vertices[vid].Approx.X }
	assert.Equal(t, []float64{0, 1, 2}, []float64{
		coordX(out.Faces[0][0]), coordX(out.Faces[0][1]), coordX(out.Faces[0][2]),
	})
	// the right-side face's last two vertices (coordinates 4 and 5) are
	// swapped relative to their original order (3,4,5).
	assert.Equal(t, []float64{3, 5, 4}, []float64{
		coordX(out.Faces[1][0]), coordX(out.Faces[1][1]), coordX(out.Faces[1][2]),
	})
}
