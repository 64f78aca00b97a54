package meshio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajsb85/boolmesh/kernel"
	"github.com/ajsb85/boolmesh/mesh"
)

func TestReadOBJTriangleAndQuad(t *testing.T) {
	src := strings.NewReader(strings.Join([]string{
		"# a comment",
		"v 0 0 0",
		"v 1 0 0",
		"v 1 1 0",
		"v 0 1 0",
		"f 1 2 3",
		"f 1/1/1 2/2/1 3/3/1 4/4/1",
		"",
	}, "\n"))

	s, err := ReadOBJ(src)
	require.NoError(t, err)
	require.Len(t, s.Vertices, 4)
	require.Len(t, s.Faces, 3) // 1 triangle + 1 fan-triangulated quad (2 tris)
	assert.Equal(t, mesh.Face{0, 1, 2}, s.Faces[0])
	assert.Equal(t, mesh.Face{0, 1, 2}, s.Faces[1])
	assert.Equal(t, mesh.Face{0, 2, 3}, s.Faces[2])
}

func TestWriteOBJRoundTrip(t *testing.T) {
	s := &mesh.Soup{}
	s.Vertices = append(s.Vertices,
		kernel.NewLazyPointFloat(0, 0, 0),
		kernel.NewLazyPointFloat(1, 0, 0),
		kernel.NewLazyPointFloat(0, 1, 0))
	s.Faces = append(s.Faces, mesh.Face{0, 1, 2})
	s.Data = append(s.Data, nil)

	var buf bytes.Buffer
	require.NoError(t, WriteOBJ(&buf, s))

	back, err := ReadOBJ(&buf)
	require.NoError(t, err)
	require.Len(t, back.Vertices, 3)
	require.Len(t, back.Faces, 1)
	assert.Equal(t, mesh.Face{0, 1, 2}, back.Faces[0])
	assert.InDelta(t, 1.0, back.Vertices[1].Approx.X, 1e-12)
}
