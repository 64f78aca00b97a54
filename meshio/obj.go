// Package meshio reads and writes triangle soups in the Wavefront OBJ
// format (SPEC_FULL.md §15): the simplest widely-recognized
// triangle-soup interchange format, and the one spec.md leaves
// unspecified ("reads region files ... writes Mixed Triangle Soup").
package meshio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ajsb85/boolmesh/kernel"
	"github.com/ajsb85/boolmesh/mesh"
)

// ReadOBJ parses a Wavefront OBJ stream into a Soup. Only "v" and "f"
// records are interpreted; faces with more than three indices are
// fan-triangulated from their first vertex. Texture/normal indices
// ("v/vt/vn") are accepted but ignored.
func ReadOBJ(r io.Reader) (*mesh.Soup, error) {
	s := &mesh.Soup{}
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("meshio: line %d: malformed vertex %q", line, text)
			}
			x, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return nil, fmt.Errorf("meshio: line %d: %w", line, err)
			}
			y, err := strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return nil, fmt.Errorf("meshio: line %d: %w", line, err)
			}
			z, err := strconv.ParseFloat(fields[3], 64)
			if err != nil {
				return nil, fmt.Errorf("meshio: line %d: %w", line, err)
			}
			s.Vertices = append(s.Vertices, kernel.NewLazyPointFloat(x, y, z))
		case "f":
			idxs := make([]mesh.VertexID, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				idx, err := parseOBJIndex(tok, len(s.Vertices))
				if err != nil {
					return nil, fmt.Errorf("meshio: line %d: %w", line, err)
				}
				idxs = append(idxs, idx)
			}
			if len(idxs) < 3 {
				return nil, fmt.Errorf("meshio: line %d: face needs at least 3 vertices, got %d", line, len(idxs))
			}
			for i := 1; i+1 < len(idxs); i++ {
				s.Faces = append(s.Faces, mesh.Face{idxs[0], idxs[i], idxs[i+1]})
				s.Data = append(s.Data, nil)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("meshio: %w", err)
	}
	return s, nil
}

// parseOBJIndex parses a single face-record token ("v", "v/vt", or
// "v/vt/vn") and resolves OBJ's 1-based, possibly-negative vertex index
// against the count of vertices seen so far.
func parseOBJIndex(tok string, numVerts int) (mesh.VertexID, error) {
	v := tok
	if i := strings.IndexByte(tok, '/'); i >= 0 {
		v = tok[:i]
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("bad face index %q", tok)
	}
	switch {
	case n > 0:
		return mesh.VertexID(n - 1), nil
	case n < 0:
		return mesh.VertexID(numVerts + n), nil
	default:
		return 0, fmt.Errorf("face index 0 is invalid in OBJ")
	}
}

// WriteOBJ serializes s as a Wavefront OBJ stream: one "v" record per
// vertex (in order) followed by one "f" record per face, using OBJ's
// 1-based vertex indexing.
func WriteOBJ(w io.Writer, s *mesh.Soup) error {
	bw := bufio.NewWriter(w)
	for _, v := range s.Vertices {
		if _, err := fmt.Fprintf(bw, "v %.17g %.17g %.17g\n", v.Approx.X, v.Approx.Y, v.Approx.Z); err != nil {
			return fmt.Errorf("meshio: %w", err)
		}
	}
	for _, f := range s.Faces {
		if _, err := fmt.Fprintf(bw, "f %d %d %d\n", f[0]+1, f[1]+1, f[2]+1); err != nil {
			return fmt.Errorf("meshio: %w", err)
		}
	}
	return bw.Flush()
}
