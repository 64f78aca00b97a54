// Package mesh defines the Triangle Soup data model shared by the whole
// pipeline (spec.md §3): an ordered vertex list, an ordered face list of
// index triples, and a parallel per-face payload list.
package mesh

import (
	"fmt"

	"github.com/ajsb85/boolmesh/kernel"
)

// VertexID indexes Soup.Vertices.
type VertexID int

// FaceID indexes Soup.Faces / Soup.Data.
type FaceID int

// Face is an ordered triple of vertex indices; orientation-significant.
type Face [3]VertexID

// Soup is an unstructured input/output triangle mesh: a triangle soup
// with no enforced topology (glossary). Data[i] is the user payload
// carried alongside Faces[i], copied verbatim into the mixed mesh by the
// builder (spec.md §4.7).
type Soup struct {
	Vertices []kernel.LazyPoint
	Faces    []Face
	Data     []any
}

// NumVertices returns the number of vertices.
func (s *Soup) NumVertices() int { return len(s.Vertices) }

// NumFaces returns the number of faces.
func (s *Soup) NumFaces() int { return len(s.Faces) }

// Validate checks the invariant that every face index is in range
// (spec.md §3). It does not check manifoldness or orientation
// consistency, which the spec only requires of Boolean-correct inputs,
// not of the Soup type itself.
func (s *Soup) Validate() error {
	n := VertexID(len(s.Vertices))
	for i, f := range s.Faces {
		for _, v := range f {
			if v < 0 || v >= n {
				return fmt.Errorf("face %d references out-of-range vertex %d (have %d vertices)", i, v, n)
			}
		}
	}
	return nil
}

//-----------------------------------------------------------------------------

// PointIDTable maps a Soup's local vertex indices to ids in the shared
// kernel.Pool (spec.md §3 "Point-id table"). Built once, read-only
// afterwards.
type PointIDTable []kernel.ID

// BuildPointIDTable inserts every vertex of s into pool (with uniqueness
// checking assumed already enabled on pool) and returns the resulting
// per-vertex id table.
func BuildPointIDTable(s *Soup, pool *kernel.Pool) PointIDTable {
	pool.Reserve(len(s.Vertices))
	table := make(PointIDTable, len(s.Vertices))
	for i := range s.Vertices {
		table[i] = pool.Insert(s.Vertices[i])
	}
	return table
}

// FacePointIDs returns the three pool ids of face f's vertices.
func (t PointIDTable) FacePointIDs(f Face) [3]kernel.ID {
	return [3]kernel.ID{t[f[0]], t[f[1]], t[f[2]]}
}

//-----------------------------------------------------------------------------

// Edge is an unordered pair of vertex (or point-pool id) indices,
// canonicalized as (min,max) for hashing (spec.md §3 "Edge").
type Edge struct{ A, B int }

// NewEdge returns the canonical Edge between a and b.
func NewEdge(a, b int) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

// Set is a hash set of Edges.
type Set map[Edge]struct{}

// Add inserts e into the set.
func (s Set) Add(e Edge) { s[e] = struct{}{} }

// Has reports whether e is present.
func (s Set) Has(e Edge) bool { _, ok := s[e]; return ok }
