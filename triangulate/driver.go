package triangulate

import (
	"context"

	"github.com/ajsb85/boolmesh/internal/workerpool"
	"github.com/ajsb85/boolmesh/isect"
	"github.com/ajsb85/boolmesh/kernel"
	"github.com/ajsb85/boolmesh/mesh"
)

// BuildAll triangulates, in parallel, every base face of soup (on the
// given side) that at least one Info touches (spec.md §4.6, §5 phase
// 3). Faces with no intersections are left out of the returned map
// entirely; the mixed mesh builder emits their original triangle
// untouched.
func BuildAll(ctx context.Context, pool *kernel.Pool, soup *mesh.Soup, table mesh.PointIDTable, side kernel.Side, infos []isect.Info, resolved []isect.Resolved, workers int) (map[mesh.FaceID]*CDT, error) {
	byFace := make(map[mesh.FaceID][]int) // face -> indices into infos/resolved
	for i, info := range infos {
		f := info.LeftFace
		if side == kernel.Right {
			f = info.RightFace
		}
		byFace[f] = append(byFace[f], i)
	}

	// Preallocate every key serially, then let parallel tasks write only
	// their own entry (spec.md §5 phase 3).
	out := make(map[mesh.FaceID]*CDT, len(byFace))
	faces := make([]mesh.FaceID, 0, len(byFace))
	for f := range byFace {
		out[f] = nil
		faces = append(faces, f)
	}

	err := workerpool.Run(ctx, len(faces), workers, func(_ context.Context, i int) error {
		f := faces[i]
		cdt, err := buildOne(pool, soup, table, side, f, byFace[f], infos, resolved)
		if err != nil {
			return err
		}
		out[f] = cdt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func buildOne(pool *kernel.Pool, soup *mesh.Soup, table mesh.PointIDTable, side kernel.Side, f mesh.FaceID, infoIdx []int, infos []isect.Info, resolved []isect.Resolved) (*CDT, error) {
	faceIDs := table.FacePointIDs(soup.Faces[f])
	pa, pb, pc := pool.At(faceIDs[0]), pool.At(faceIDs[1]), pool.At(faceIDs[2])

	n := approxFaceNormal(pa, pb, pc)
	xi, yi := kernel.DominantAxis(n)

	cdt := New(pa, pb, pc, faceIDs[0], faceIDs[1], faceIDs[2], xi, yi)

	for _, idx := range infoIdx {
		info := infos[idx]
		res := resolved[idx]
		vhs := make([]VH, len(info.Points))
		for j, pt := range info.Points {
			region := pt.Symbolic.L
			if side == kernel.Right {
				region = pt.Symbolic.R
			}
			vhs[j] = cdt.Insert(pool.At(res.PointIDs[j]), res.PointIDs[j], region)
		}
		if err := connectChain(cdt, vhs); err != nil {
			return nil, err
		}
	}
	return cdt, nil
}

// connectChain adds a constraint between every consecutive pair of an
// Info's points, closing the polygon when there are three or more
// (spec.md §4.6: "if an info has >= 3 intersections ... the polygon is
// closed").
func connectChain(cdt *CDT, vhs []VH) error {
	for i := 0; i+1 < len(vhs); i++ {
		if err := cdt.InsertConstraint(vhs[i], vhs[i+1]); err != nil {
			return err
		}
	}
	if len(vhs) >= 3 {
		return cdt.InsertConstraint(vhs[len(vhs)-1], vhs[0])
	}
	return nil
}

func approxFaceNormal(a, b, c *kernel.LazyPoint) [3]float64 {
	ux, uy, uz := b.Approx.X-a.Approx.X, b.Approx.Y-a.Approx.Y, b.Approx.Z-a.Approx.Z
	vx, vy, vz := c.Approx.X-a.Approx.X, c.Approx.Y-a.Approx.Y, c.Approx.Z-a.Approx.Z
	return [3]float64{uy*vz - uz*vy, uz*vx - ux*vz, ux*vy - uy*vx}
}
