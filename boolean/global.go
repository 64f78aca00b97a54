package boolean

import (
	"github.com/ajsb85/boolmesh/mesh"
	"github.com/ajsb85/boolmesh/sdf"
)

// classifyGlobal propagates face tags across connected components of the
// "faces not touching a border edge" graph (spec.md §4.9): components
// with a locally-tagged seed are flood-filled from it; components with
// none fall back to a single ray test against the opposite mesh.
// Coplanar/Opposite faces are excluded from the graph entirely — they
// already carry a final tag (Open Question resolution, DESIGN.md).
func classifyGlobal(mm *MixedMesh, left, right *mesh.Soup, leftTable, rightTable mesh.PointIDTable) Warnings {
	adj := buildNonBorderGraph(mm)

	visited := make([]bool, len(mm.Faces))
	var warn Warnings
	for i, f := range mm.Faces {
		if visited[i] || f.Tag == mesh.Coplanar || f.Tag == mesh.Opposite {
			continue
		}
		comp := collectComponent(adj, visited, i)
		warn |= resolveComponent(mm, comp, left, right, leftTable, rightTable)
	}
	return warn
}

// buildNonBorderGraph connects faces sharing an edge that is NOT a
// border edge (i.e. every incident non-coplanar/opposite face at that
// edge belongs to the same side).
func buildNonBorderGraph(mm *MixedMesh) [][]int {
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

	adj := make([][]int, len(mm.Faces))
	for _, faces := range byEdge {
		if len(faces) < 2 {
			continue
		}
		var hasLeft, hasRight bool
		for _, fi := range faces {
			if mm.Faces[fi].FromLeft {
				hasLeft = true
			} else {
				hasRight = true
			}
		}
		if hasLeft && hasRight {
			continue // border edge, handled by the local classifier
		}
		for x := 0; x < len(faces); x++ {
			for y := x + 1; y < len(faces); y++ {
				adj[faces[x]] = append(adj[faces[x]], faces[y])
				adj[faces[y]] = append(adj[faces[y]], faces[x])
			}
		}
	}
	return adj
}

func collectComponent(adj [][]int, visited []bool, start int) []int {
	visited[start] = true
	queue := []int{start}
	var comp []int
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		comp = append(comp, cur)
		for _, nb := range adj[cur] {
			if !visited[nb] {
				visited[nb] = true
				queue = append(queue, nb)
			}
		}
	}
	return comp
}

func resolveComponent(mm *MixedMesh, comp []int, left, right *mesh.Soup, leftTable, rightTable mesh.PointIDTable) Warnings {
	var warn Warnings
	seed := mesh.Unknown
	for _, fi := range comp {
		t := mm.Faces[fi].Tag
		if t != mesh.Interior && t != mesh.Exterior {
			continue
		}
		if seed == mesh.Unknown {
			seed = t
		} else if seed != t {
			warn |= GlobalSeedConflict
		}
	}

	if seed == mesh.Unknown {
		seed = rayClassify(mm, mm.Faces[comp[0]], left, right, leftTable, rightTable)
		warn |= IsolatedComponentFallback
	}

	for _, fi := range comp {
		if mm.Faces[fi].Tag != mesh.Interior && mm.Faces[fi].Tag != mesh.Exterior {
			mm.Faces[fi].Tag = seed
		}
	}
	return warn
}

// rayClassify casts one ray from just outside rep's centroid, along its
// outward normal, against the opposite mesh's original (pre-
// triangulation) faces, and classifies by intersection-count parity:
// odd means the origin lies inside the opposite solid (spec.md §4.9,
// Open Question: "a single ray test against the opposite mesh" per
// component).
func rayClassify(mm *MixedMesh, rep Face, left, right *mesh.Soup, leftTable, rightTable mesh.PointIDTable) mesh.FaceTag {
	p0 := mm.Pool.At(rep.Verts[0]).Approx
	p1 := mm.Pool.At(rep.Verts[1]).Approx
	p2 := mm.Pool.At(rep.Verts[2]).Approx
	centroid := p0.Add(p1).Add(p2).MulScalar(1.0 / 3.0)
	n := p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
	origin := centroid.Add(n.MulScalar(1e-6))

	targetSoup, targetTable := right, rightTable
	if !rep.FromLeft {
		targetSoup, targetTable = left, leftTable
	}

	hits := 0
	for fi := range targetSoup.Faces {
		ids := targetTable.FacePointIDs(targetSoup.Faces[fi])
		tri := sdf.Triangle3{
			mm.Pool.At(ids[0]).Approx,
			mm.Pool.At(ids[1]).Approx,
			mm.Pool.At(ids[2]).Approx,
		}
		if _, ok := tri.RayIntersect(origin, n); ok {
			hits++
		}
	}
	if hits%2 == 1 {
		return mesh.Interior
	}
	return mesh.Exterior
}
