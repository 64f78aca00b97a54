package isect

import (
	"context"

	"github.com/ajsb85/boolmesh/broadphase"
	"github.com/ajsb85/boolmesh/internal/workerpool"
	"github.com/ajsb85/boolmesh/kernel"
	"github.com/ajsb85/boolmesh/mesh"
)

// Info is the result of intersecting one candidate face pair (spec.md
// §4.4): the pair's face indices and the symbolic points found between
// them.
type Info struct {
	LeftFace, RightFace mesh.FaceID
	Points              []Point
}

// ComputeAll runs IntersectFaces over every candidate pair produced by
// the broad-phase culler, one worker-pool task per pair (spec.md §5
// phase 1: "independent per face-pair, fully data-parallel"), and
// returns only the pairs that actually intersect.
func ComputeAll(ctx context.Context, pool *kernel.Pool, left, right *mesh.Soup, leftTable, rightTable mesh.PointIDTable, pairs []broadphase.Pair, workers int) ([]Info, error) {
	raw, err := workerpool.Collect(ctx, len(pairs), workers, func(_ context.Context, i int) (Info, error) {
		p := pairs[i]
		lt := faceTri(pool, left, leftTable, p.Left)
		rt := faceTri(pool, right, rightTable, p.Right)
		return Info{LeftFace: p.Left, RightFace: p.Right, Points: IntersectFaces(lt, rt)}, nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]Info, 0, len(raw))
	for _, info := range raw {
		if len(info.Points) > 0 {
			out = append(out, info)
		}
	}
	return out, nil
}

func faceTri(pool *kernel.Pool, s *mesh.Soup, table mesh.PointIDTable, f mesh.FaceID) Tri {
	ids := table.FacePointIDs(s.Faces[f])
	return Tri{
		IDs: ids,
		Pts: [3]*kernel.LazyPoint{pool.At(ids[0]), pool.At(ids[1]), pool.At(ids[2])},
	}
}
