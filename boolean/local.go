package boolean

import (
	"context"
	"math"
	"sort"

	"github.com/ajsb85/boolmesh/internal/workerpool"
	"github.com/ajsb85/boolmesh/kernel"
	"github.com/ajsb85/boolmesh/mesh"
	v3 "github.com/ajsb85/boolmesh/vec/v3"
)

// borderEdges returns every Mixed Mesh edge incident to at least one
// left-provenance and one right-provenance face, excluding faces
// already finally tagged by the coplanar detector (spec.md §4.8: border
// edges are "edges shared by faces from both inputs ... plus the
// boundaries of coplanar/opposite regions" — the latter already carry a
// definitive tag and are never reclassified here), together with the
// face-index list incident to each. Order is the ascending (A,B) key
// order, for the deterministic merge spec.md §5 requires.
func borderEdges(mm *MixedMesh) ([]mesh.Edge, map[mesh.Edge][]int) {
	byEdge := make(map[mesh.Edge][]int)
	for i, f := range mm.Faces {
		if f.Tag == mesh.Coplanar || f.Tag == mesh.Opposite {
			continue
		}
		for e := 0; e < 3; e++ {
			key := mesh.NewEdge(int(f.Verts[e]), int(f.Verts[(e+1)%3]))
			byEdge[key] = append(byEdge[key], i)
		}
	}

	var edges []mesh.Edge
	for key, faces := range byEdge {
		var hasLeft, hasRight bool
		for _, fi := range faces {
			if mm.Faces[fi].FromLeft {
				hasLeft = true
			} else {
				hasRight = true
			}
		}
		if hasLeft && hasRight {
			edges = append(edges, key)
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].A != edges[j].A {
			return edges[i].A < edges[j].A
		}
		return edges[i].B < edges[j].B
	})
	return edges, byEdge
}

type faceLabel struct {
	idx int
	tag mesh.FaceTag
}

type edgeResult struct {
	labels []faceLabel
	warn   Warnings
}

// classifyLocal runs the local classifier (spec.md §4.8): one task per
// border edge, reading the (frozen) Mixed Mesh and producing a
// thread-local list of face labels plus warnings, merged serially
// afterwards — the Mixed Mesh itself is never mutated concurrently.
func classifyLocal(ctx context.Context, mm *MixedMesh, workers int) (Warnings, error) {
	edges, byEdge := borderEdges(mm)

	raw, err := workerpool.Collect(ctx, len(edges), workers, func(_ context.Context, i int) (edgeResult, error) {
		e := edges[i]
		labels, warn := classifyBorderEdge(mm, e, byEdge[e])
		return edgeResult{labels: labels, warn: warn}, nil
	})
	if err != nil {
		return 0, err
	}

	var total Warnings
	for _, r := range raw {
		total |= r.warn
		for _, lbl := range r.labels {
			mm.Faces[lbl.idx].Tag = lbl.tag
		}
	}
	return total, nil
}

type blade struct {
	faceIdx  int
	fromLeft bool
	angle    float64
	sign     float64 // >0: before this blade (lower angle) is Interior, after is Exterior
	thirdID  kernel.ID
}

// classifyBorderEdge sorts every incident face's "blade" angularly around
// the edge (in the plane perpendicular to it) and, for each face, reads
// off Interior/Exterior from the nearest opposing-mesh blade at or below
// its angle (spec.md §4.8).
func classifyBorderEdge(mm *MixedMesh, e mesh.Edge, faceIdxs []int) ([]faceLabel, Warnings) {
	a, b := kernel.ID(e.A), kernel.ID(e.B)
	pa, pb := mm.Pool.At(a).Approx, mm.Pool.At(b).Approx
	axis := pb.Sub(pa).Normalize()
	u := arbitraryPerp(axis)
	v := axis.Cross(u)

	var blades []blade
	for _, fi := range faceIdxs {
		f := mm.Faces[fi]
		third, ok := thirdVertex(f, a, b)
		if !ok {
			continue
		}
		pw := mm.Pool.At(third).Approx
		r := pw.Sub(pa)
		r = r.Sub(axis.MulScalar(r.Dot(axis)))
		if r.Length() < 1e-12 {
			continue // third vertex collinear with the edge: degenerate, skip
		}
		rhat := r.Normalize()
		angle := math.Atan2(rhat.Dot(v), rhat.Dot(u))
		n := faceNormal(mm.Pool, f.Verts)
		sign := n.Dot(axis.Cross(rhat))
		blades = append(blades, blade{faceIdx: fi, fromLeft: f.FromLeft, angle: angle, sign: sign, thirdID: third})
	}
	sort.Slice(blades, func(i, j int) bool {
		if blades[i].angle != blades[j].angle {
			return blades[i].angle < blades[j].angle
		}
		return blades[i].thirdID < blades[j].thirdID
	})

	var left, right []blade
	for _, bl := range blades {
		if bl.fromLeft {
			left = append(left, bl)
		} else {
			right = append(right, bl)
		}
	}

	var warn Warnings
	if len(left)%2 != 0 || len(right)%2 != 0 {
		warn |= LocalInconsistency
	}

	var labels []faceLabel
	for _, bl := range left {
		tag, ok := sideStateAt(right, bl.angle)
		if !ok {
			warn |= LocalInconsistency
			continue
		}
		labels = append(labels, faceLabel{idx: bl.faceIdx, tag: tag})
	}
	for _, bl := range right {
		tag, ok := sideStateAt(left, bl.angle)
		if !ok {
			warn |= LocalInconsistency
			continue
		}
		labels = append(labels, faceLabel{idx: bl.faceIdx, tag: tag})
	}
	return labels, warn
}

// sideStateAt finds the opposing blade at or immediately before angle in
// circular order and reads its side (its sign already encodes which of
// its two neighboring wedges is Interior/Exterior).
func sideStateAt(opposing []blade, angle float64) (mesh.FaceTag, bool) {
	if len(opposing) == 0 {
		return mesh.Unknown, false
	}
	idx := -1
	for i, bl := range opposing {
		if bl.angle <= angle {
			idx = i
		} else {
			break
		}
	}
	if idx == -1 {
		idx = len(opposing) - 1
	}
	if opposing[idx].sign > 0 {
		return mesh.Exterior, true
	}
	return mesh.Interior, true
}

func thirdVertex(f Face, a, b kernel.ID) (kernel.ID, bool) {
	for _, v := range f.Verts {
		if v != a && v != b {
			return v, true
		}
	}
	return 0, false
}

func faceNormal(pool *kernel.Pool, verts [3]kernel.ID) v3.Vec {
	p0, p1, p2 := pool.At(verts[0]).Approx, pool.At(verts[1]).Approx, pool.At(verts[2]).Approx
	return p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
}

// arbitraryPerp returns a unit vector perpendicular to axis, picking
// whichever of the world X/Y axes is least parallel to it to avoid a
// near-degenerate cross product.
func arbitraryPerp(axis v3.Vec) v3.Vec {
	ref := v3.Vec{X: 1}
	if math.Abs(axis.X) > 0.9 {
		ref = v3.Vec{Y: 1}
	}
	return axis.Cross(ref).Normalize()
}
