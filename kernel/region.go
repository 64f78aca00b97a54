package kernel

// Side names which of the two input soups a Triangle Region or face
// belongs to (spec.md §3 "Triangle Region": "for each of LEFT and
// RIGHT"). Modeled as a symmetric enum per spec.md §9 rather than
// duplicated left/right struct fields.
type Side int

const (
	Left Side = iota
	Right
)

// Other returns the opposite side.
func (s Side) Other() Side {
	if s == Left {
		return Right
	}
	return Left
}

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// PerSide bundles one value per Side, replacing the teacher-independent
// pattern of parallel left/right fields (spec.md §9).
type PerSide[T any] struct {
	L, R T
}

// Get returns the value for s.
func (b *PerSide[T]) Get(s Side) *T {
	if s == Left {
		return &b.L
	}
	return &b.R
}

//-----------------------------------------------------------------------------

// RegionKind distinguishes the three kinds of triangle feature a
// Triangle Region can name.
type RegionKind int

const (
	RegionFace RegionKind = iota
	RegionEdge
	RegionVertex
)

// TriangleRegion symbolically names a feature of one triangle (face,
// edge 0-2, or vertex 0-2) belonging to a given Side, without any
// numeric coordinates (spec.md §3 "Triangle Region").
type TriangleRegion struct {
	Side  Side
	Kind  RegionKind
	Index int // edge or vertex index (0,1,2); ignored for RegionFace
}

// Face returns the whole-face region for side s.
func Face(s Side) TriangleRegion { return TriangleRegion{Side: s, Kind: RegionFace} }

// Edge returns the region naming edge i (0,1,2) of side s's triangle.
func Edge(s Side, i int) TriangleRegion { return TriangleRegion{Side: s, Kind: RegionEdge, Index: i} }

// Vertex returns the region naming vertex i (0,1,2) of side s's triangle.
func Vertex(s Side, i int) TriangleRegion {
	return TriangleRegion{Side: s, Kind: RegionVertex, Index: i}
}

// IsVertex reports whether the region names a single input vertex.
func (r TriangleRegion) IsVertex() bool { return r.Kind == RegionVertex }
