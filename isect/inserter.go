package isect

import (
	"github.com/ajsb85/boolmesh/kernel"
	"github.com/ajsb85/boolmesh/mesh"
)

// Resolved is one intersecting face pair with its symbolic points
// resolved to concrete Pool ids, in the same order as the Info they
// came from.
type Resolved struct {
	LeftFace, RightFace mesh.FaceID
	PointIDs            []kernel.ID
}

// Insert resolves every symbolic intersection point produced by
// ComputeAll into a Pool id (spec.md §4.5). A point that names an
// existing input vertex reuses that vertex's id directly; any other
// point is constructed once and reused for every later occurrence of
// the same SymbolicPoint, via a side map that lives only for the
// duration of this call (spec.md §4.5: "a new mapping (left_region,
// right_region) -> point_id ... built fresh for each run, not carried
// between runs").
//
// Mutates pool; must run in the serial phase between the parallel
// intersector and the parallel triangulator (spec.md §5). Returns the
// [start,end) range of newly appended ids so the caller can force their
// exact coordinates in parallel before the next phase reads them.
func Insert(pool *kernel.Pool, left, right *mesh.Soup, leftTable, rightTable mesh.PointIDTable, infos []Info) (resolved []Resolved, start, end kernel.ID) {
	sideMap := make(map[SymbolicPoint]kernel.ID)
	start = kernel.ID(pool.Len())

	resolved = make([]Resolved, len(infos))
	for i, info := range infos {
		ids := make([]kernel.ID, len(info.Points))
		for j, pt := range info.Points {
			ids[j] = resolveOne(pool, left, right, leftTable, rightTable, info, pt, sideMap)
		}
		resolved[i] = Resolved{LeftFace: info.LeftFace, RightFace: info.RightFace, PointIDs: ids}
	}

	end = kernel.ID(pool.Len())
	return resolved, start, end
}

func resolveOne(pool *kernel.Pool, left, right *mesh.Soup, leftTable, rightTable mesh.PointIDTable, info Info, pt Point, sideMap map[SymbolicPoint]kernel.ID) kernel.ID {
	if id, ok := sideMap[pt.Symbolic]; ok {
		return id
	}

	var id kernel.ID
	switch {
	case pt.Symbolic.L.IsVertex():
		id = leftTable.FacePointIDs(left.Faces[info.LeftFace])[pt.Symbolic.L.Index]
	case pt.Symbolic.R.IsVertex():
		id = rightTable.FacePointIDs(right.Faces[info.RightFace])[pt.Symbolic.R.Index]
	default:
		id = pool.Insert(pt.Coords)
	}

	sideMap[pt.Symbolic] = id
	return id
}
