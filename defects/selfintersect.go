// Package defects implements the `defects` CLI subcommand's check
// (SPEC_FULL.md §14): self-intersection detection over a single
// Triangle Soup, built from the same face-face intersector the
// corefinement pipeline uses between two soups.
package defects

import (
	"context"
	"fmt"

	"github.com/dhconnelly/rtreego"

	"github.com/ajsb85/boolmesh/internal/workerpool"
	"github.com/ajsb85/boolmesh/isect"
	"github.com/ajsb85/boolmesh/kernel"
	"github.com/ajsb85/boolmesh/mesh"
)

// Result reports an intersection found between two non-adjacent faces
// of the same soup.
type Result struct {
	FaceA, FaceB mesh.FaceID
	Points       []isect.Point
}

// Check runs the face-face intersector over every pair of a soup's own
// faces, excluding same-face and vertex-adjacent pairs (sharing a
// vertex or edge is ordinary manifold topology, not a defect). A
// non-empty result means the input is not a valid operand for the
// two-mesh Boolean pipeline (spec.md's Non-goals exclude preserving
// such input, but detecting it is in scope here).
func Check(ctx context.Context, soup *mesh.Soup, workers int) ([]Result, error) {
	if err := soup.Validate(); err != nil {
		return nil, fmt.Errorf("defects: %w", err)
	}

	pool := kernel.NewPool(soup.NumVertices())
	pool.StartUniquenessCheck()
	table := mesh.BuildPointIDTable(soup, pool)
	pool.StopUniquenessCheck()

	pairs := candidatePairs(soup, table)

	raw, err := workerpool.Collect(ctx, len(pairs), workers, func(_ context.Context, i int) (Result, error) {
		p := pairs[i]
		a := faceTri(pool, soup, table, p.a)
		b := faceTri(pool, soup, table, p.b)
		return Result{FaceA: p.a, FaceB: p.b, Points: isect.IntersectFaces(a, b)}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("defects: %w", err)
	}

	out := make([]Result, 0, len(raw))
	for _, r := range raw {
		if len(r.Points) > 0 {
			out = append(out, r)
		}
	}
	return out, nil
}

type pair struct{ a, b mesh.FaceID }

type leaf struct {
	face mesh.FaceID
	bb   *rtreego.Rect
}

func (l *leaf) Bounds() *rtreego.Rect { return l.bb }

const epsBox = 1e-9

// candidatePairs indexes every face's AABB in one R-tree and queries
// each face against it, keeping only pairs (a<b) whose boxes overlap
// and that share no vertex.
func candidatePairs(soup *mesh.Soup, table mesh.PointIDTable) []pair {
	rt := rtreego.NewTree(3, 25, 50)
	for i, f := range soup.Faces {
		rt.Insert(&leaf{face: mesh.FaceID(i), bb: faceBounds(soup, f)})
	}

	seen := make(map[pair]struct{})
	var pairs []pair
	for i, f := range soup.Faces {
		bb := faceBounds(soup, f)
		for _, hit := range rt.SearchIntersect(bb) {
			j := hit.(*leaf).face
			if int(j) <= i || sharesVertex(f, soup.Faces[j]) {
				continue
			}
			p := pair{a: mesh.FaceID(i), b: j}
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			pairs = append(pairs, p)
		}
	}
	return pairs
}

func sharesVertex(a, b mesh.Face) bool {
	for _, va := range a {
		for _, vb := range b {
			if va == vb {
				return true
			}
		}
	}
	return false
}

func faceBounds(s *mesh.Soup, f mesh.Face) *rtreego.Rect {
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

func faceTri(pool *kernel.Pool, s *mesh.Soup, table mesh.PointIDTable, f mesh.FaceID) isect.Tri {
	ids := table.FacePointIDs(s.Faces[f])
	return isect.Tri{
		IDs: ids,
		Pts: [3]*kernel.LazyPoint{pool.At(ids[0]), pool.At(ids[1]), pool.At(ids[2])},
	}
}
