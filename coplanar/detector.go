// Package coplanar implements the coplanar-face detector (spec.md
// §4.2): the first pass over a candidate pair of soups, tagging faces
// that are identical (Coplanar) or identical-but-reversed (Opposite)
// triangles by vertex-id triple, before any geometric predicate runs.
package coplanar

import (
	"github.com/ajsb85/boolmesh/kernel"
	"github.com/ajsb85/boolmesh/mesh"
)

// key is the canonical, rotation-normalized triple of point-pool ids for
// a face: rotated so the smallest id comes first, cyclic order
// preserved (spec.md §4.2).
type key [3]kernel.ID

func canonicalKey(ids [3]kernel.ID) key {
	min := 0
	for i := 1; i < 3; i++ {
		if ids[i] < ids[min] {
			min = i
		}
	}
	return key{ids[min], ids[(min+1)%3], ids[(min+2)%3]}
}

func reversedKey(k key) key {
	// reverse cyclic order by swapping the last two ids, then
	// re-normalize so the smallest is first again.
	return canonicalKey([3]kernel.ID{k[0], k[2], k[1]})
}

// Detect tags every pair of faces from soupA/soupB that are identical
// (Coplanar) or reversed (Opposite) triangles by point-pool id triple.
// It picks the smaller-face-count soup as the probe side, per spec.md
// §4.2's "pick the smaller-face-count soup as A" rationale (fewer hash
// map entries to build).
func Detect(facesA, facesB []mesh.Face, tableA, tableB mesh.PointIDTable) (tagsA, tagsB mesh.Tags) {
	tagsA = mesh.NewTags(len(facesA))
	tagsB = mesh.NewTags(len(facesB))

	if len(facesA) <= len(facesB) {
		detect(facesA, facesB, tableA, tableB, tagsA, tagsB)
	} else {
		// Swap roles so the probe ("A" in the algorithm) is always the
		// smaller side; tags land back in their original slots.
		detect(facesB, facesA, tableB, tableA, tagsB, tagsA)
	}
	return tagsA, tagsB
}

func detect(probeFaces, otherFaces []mesh.Face, probeTable, otherTable mesh.PointIDTable, probeTags, otherTags mesh.Tags) {
	index := make(map[key]int, len(probeFaces))
	for i, f := range probeFaces {
		index[canonicalKey(probeTable.FacePointIDs(f))] = i
	}

	for j, f := range otherFaces {
		k := canonicalKey(otherTable.FacePointIDs(f))
		if i, ok := index[k]; ok {
			probeTags[i] = mesh.Coplanar
			otherTags[j] = mesh.Coplanar
			continue
		}
		if i, ok := index[reversedKey(k)]; ok {
			if probeTags[i] != mesh.Coplanar {
				probeTags[i] = mesh.Opposite
			}
			otherTags[j] = mesh.Opposite
		}
	}
}
