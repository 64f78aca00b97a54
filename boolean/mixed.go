// Package boolean assembles the per-side triangulations into a single
// Mixed Mesh, classifies every face relative to the opposite input, and
// extracts the standard Boolean combinations (spec.md §4.7-§4.9, §1).
package boolean

import (
	"github.com/ajsb85/boolmesh/kernel"
	"github.com/ajsb85/boolmesh/mesh"
	"github.com/ajsb85/boolmesh/triangulate"
)

// Face is one triangle of the Mixed Mesh: point-pool ids, which side it
// came from, its current classification, and the user payload carried
// from its origin face (spec.md §3 "Mixed Mesh").
type Face struct {
	Verts    [3]kernel.ID
	FromLeft bool
	Tag      mesh.FaceTag
	Data     any
}

// MixedMesh is the transient indexed mesh both classifier phases operate
// on, sharing the global point pool with both input soups.
type MixedMesh struct {
	Pool  *kernel.Pool
	Faces []Face

	vertexFaces map[kernel.ID][]int
}

// Build assembles the Mixed Mesh (spec.md §4.7): for each base face,
// either its original triangle (no triangulation touched it) or every
// sub-triangle of its triangulation, carrying provenance forward. tris
// may be nil or have no entry for a face; both mean "untouched".
func Build(pool *kernel.Pool, left, right *mesh.Soup, leftTable, rightTable mesh.PointIDTable, leftTags, rightTags mesh.Tags, leftTris, rightTris map[mesh.FaceID]*triangulate.CDT) *MixedMesh {
	mm := &MixedMesh{Pool: pool}
	mm.appendSide(left, leftTable, leftTags, leftTris, true)
	mm.appendSide(right, rightTable, rightTags, rightTris, false)
	mm.finalize()
	return mm
}

func (mm *MixedMesh) appendSide(soup *mesh.Soup, table mesh.PointIDTable, tags mesh.Tags, tris map[mesh.FaceID]*triangulate.CDT, fromLeft bool) {
	var buf [][3]kernel.ID
	for fi := range soup.Faces {
		f := mesh.FaceID(fi)
		tag := tags[fi]
		data := soup.Data[fi]
		if cdt, ok := tris[f]; ok && cdt != nil {
			buf = cdt.GetFaces(buf[:0])
			for _, tri := range buf {
				mm.Faces = append(mm.Faces, Face{Verts: tri, FromLeft: fromLeft, Tag: tag, Data: data})
			}
			continue
		}
		ids := table.FacePointIDs(soup.Faces[fi])
		mm.Faces = append(mm.Faces, Face{Verts: ids, FromLeft: fromLeft, Tag: tag, Data: data})
	}
}

// finalize builds the per-vertex incident-face index used by
// FacesAroundEdge (spec.md §4.7 "adjacency indices ... enabling
// faces_around_edge lookups as a sorted-merge intersection").
func (mm *MixedMesh) finalize() {
	mm.vertexFaces = make(map[kernel.ID][]int)
	for i, f := range mm.Faces {
		for _, v := range f.Verts {
			mm.vertexFaces[v] = append(mm.vertexFaces[v], i)
		}
	}
}

// FacesAroundEdge returns the indices of every face incident to both a
// and b, via a sorted-merge intersection of their per-vertex lists
// (both lists are already ascending: faces are appended to vertexFaces
// in increasing face-index order).
func (mm *MixedMesh) FacesAroundEdge(a, b kernel.ID) []int {
	la, lb := mm.vertexFaces[a], mm.vertexFaces[b]
	var out []int
	i, j := 0, 0
	for i < len(la) && j < len(lb) {
		switch {
		case la[i] < lb[j]:
			i++
		case la[i] > lb[j]:
			j++
		default:
			out = append(out, la[i])
			i++
			j++
		}
	}
	return out
}
