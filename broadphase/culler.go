// Package broadphase implements the AABB broad-phase prefilter of
// spec.md §4.3: a complete enumeration of bounding-box-overlapping face
// pairs between two soups, excluding pairs already tagged
// Coplanar/Opposite by the coplanar detector.
package broadphase

import (
	"github.com/dhconnelly/rtreego"

	"github.com/ajsb85/boolmesh/mesh"
)

// Pair is a candidate intersecting face-index pair, li from the left
// soup and ri from the right soup.
type Pair struct {
	Left, Right mesh.FaceID
}

// leaf adapts one face's bounding box to rtreego.Spatial so it can be
// indexed in an R-tree (spec.md §4.3: "any bounding-volume hierarchy or
// grid acceptable").
type leaf struct {
	face  mesh.FaceID
	bb    *rtreego.Rect
}

func (l *leaf) Bounds() *rtreego.Rect { return l.bb }

const epsBox = 1e-9 // degenerate (zero-extent) boxes are inflated by this much; rtreego rejects zero-width rects

func faceBounds(s *mesh.Soup, table mesh.PointIDTable, f mesh.Face) *rtreego.Rect {
	v0 := s.Vertices[f[0]].Approx
	v1 := s.Vertices[f[1]].Approx
	v2 := s.Vertices[f[2]].Approx
	min := v0.Min(v1).Min(v2)
	max := v0.Max(v1).Max(v2)

	p := rtreego.Point{min.X, min.Y, min.Z}
	lengths := []float64{
		extent(min.X, max.X),
		extent(min.Y, max.Y),
		extent(min.Z, max.Z),
	}
	rect, err := rtreego.NewRect(p, lengths)
	if err != nil {
		// NewRect only errors on non-positive lengths, already guarded
		// by extent's epsilon floor.
		panic(err)
	}
	return rect
}

func extent(lo, hi float64) float64 {
	e := hi - lo
	if e < epsBox {
		return epsBox
	}
	return e
}

// Cull returns every (left,right) face-index pair whose AABBs overlap,
// skipping faces already tagged Coplanar or Opposite.
func Cull(left, right *mesh.Soup, leftTable, rightTable mesh.PointIDTable, leftTags, rightTags mesh.Tags) []Pair {
	rt := rtreego.NewTree(3, 25, 50)
	for i, f := range right.Faces {
		if skip(rightTags, i) {
			continue
		}
		rt.Insert(&leaf{face: mesh.FaceID(i), bb: faceBounds(right, rightTable, f)})
	}

	var pairs []Pair
	for i, f := range left.Faces {
		if skip(leftTags, i) {
			continue
		}
		bb := faceBounds(left, leftTable, f)
		for _, hit := range rt.SearchIntersect(bb) {
			rf := hit.(*leaf).face
			pairs = append(pairs, Pair{Left: mesh.FaceID(i), Right: rf})
		}
	}
	return pairs
}

func skip(tags mesh.Tags, i int) bool {
	return tags[i] == mesh.Coplanar || tags[i] == mesh.Opposite
}
