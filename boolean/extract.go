package boolean

import (
	"github.com/ajsb85/boolmesh/kernel"
	"github.com/ajsb85/boolmesh/mesh"
)

// Op is one of the four standard Boolean combinations (spec.md §1, §6).
type Op int

const (
	Union Op = iota
	Intersection
	Difference
	SymmetricDifference
)

func (op Op) String() string {
	switch op {
	case Union:
		return "union"
	case Intersection:
		return "intersection"
	case Difference:
		return "difference"
	case SymmetricDifference:
		return "symmetric_difference"
	default:
		return "unknown"
	}
}

// Extract filters the Mixed Mesh's faces per op's {Interior, Exterior,
// Boundary, from_left} table (SPEC_FULL.md §13, derived from
// original_source/include/kigumi/Mix.h) and rebuilds a standalone
// Triangle Soup over only the referenced points. Boundary faces are
// naturally emitted only once (from L): every table row below omits
// Boundary from the R column entirely.
func Extract(mm *MixedMesh, op Op) *mesh.Soup {
	out := &mesh.Soup{}
	idxOf := make(map[kernel.ID]mesh.VertexID)

	for _, f := range mm.Faces {
		if !keep(f, op) {
			continue
		}
		verts := f.Verts
		if op == Difference && !f.FromLeft {
			// R contributes its Interior faces with flipped orientation,
			// since subtracting R means its surface must face outward
			// from the remaining solid.
			verts[1], verts[2] = verts[2], verts[1]
		}

		var face mesh.Face
		for i, id := range verts {
			vid, ok := idxOf[id]
			if !ok {
				vid = mesh.VertexID(len(out.Vertices))
				out.Vertices = append(out.Vertices, *mm.Pool.At(id))
				idxOf[id] = vid
			}
			face[i] = vid
		}
		out.Faces = append(out.Faces, face)
		out.Data = append(out.Data, f.Data)
	}
	return out
}

// ExtractFaceTags returns the Face Tag of every face Extract(mm, op)
// would keep, in the same order Extract appends them — so result[i]
// describes Extract(mm, op).Faces[i]. Kept as a separate pass rather
// than folded into Extract's return value so existing callers that only
// want the Soup are unaffected; render.SaveSTEPTagged uses this to carry
// Interior/Exterior/Boundary through into the exported STEP faces'
// names (SPEC_FULL.md §15).
func ExtractFaceTags(mm *MixedMesh, op Op) mesh.Tags {
	tags := make(mesh.Tags, 0, len(mm.Faces))
	for _, f := range mm.Faces {
		if keep(f, op) {
			tags = append(tags, f.Tag)
		}
	}
	return tags
}

func keep(f Face, op Op) bool {
	switch op {
	case Union:
		if f.FromLeft {
			return f.Tag == mesh.Exterior || f.Tag == mesh.Boundary
		}
		return f.Tag == mesh.Exterior
	case Intersection:
		if f.FromLeft {
			return f.Tag == mesh.Interior || f.Tag == mesh.Boundary
		}
		return f.Tag == mesh.Interior
	case Difference:
		if f.FromLeft {
			return f.Tag == mesh.Exterior || f.Tag == mesh.Boundary
		}
		return f.Tag == mesh.Interior
	case SymmetricDifference:
		return f.Tag == mesh.Exterior || f.Tag == mesh.Interior
	default:
		return false
	}
}
