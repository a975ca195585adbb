package mesh

// Face is the sum type of face records a Geometry can hold. Triangle faces
// are the only variant today; the interface exists so quad or n-gon variants
// can be added later without breaking dispatch sites.
type Face interface {
	isFace() // marker method restricting implementations to this package
}

// TriangleFace is a triangular face: three ordered vertex indices (the order
// defines the winding) and an optional matching triple of normal indices.
type TriangleFace struct {
	Vertices   [3]uint32
	Normals    [3]uint32
	HasNormals bool
}

func (TriangleFace) isFace() {}

// NewTriangleFace creates a face without normal indices.
func NewTriangleFace(v0, v1, v2 uint32) TriangleFace {
	assertDistinct(v0, v1, v2)
	return TriangleFace{Vertices: [3]uint32{v0, v1, v2}}
}

// NewTriangleFaceWithNormals creates a face whose normal indices equal its
// vertex indices per corner, the common case for per-face-vertex data.
func NewTriangleFaceWithNormals(i0, i1, i2 uint32) TriangleFace {
	return NewTriangleFaceSeparate(i0, i1, i2, i0, i1, i2)
}

// NewTriangleFaceSeparate creates a face with independently specified vertex
// and normal indices, e.g. a shared "up" normal across a primitive.
func NewTriangleFaceSeparate(v0, v1, v2, n0, n1, n2 uint32) TriangleFace {
	assertDistinct(v0, v1, v2)
	return TriangleFace{
		Vertices:   [3]uint32{v0, v1, v2},
		Normals:    [3]uint32{n0, n1, n2},
		HasNormals: true,
	}
}

func assertDistinct(v0, v1, v2 uint32) {
	if v0 == v1 || v0 == v2 || v1 == v2 {
		panic("mesh: triangle face vertices must be distinct")
	}
}

// Reverted returns the face with the opposite winding. Normal indices, when
// present, are reordered the same way so they stay attached to their
// corners.
func (f TriangleFace) Reverted() TriangleFace {
	r := TriangleFace{
		Vertices:   [3]uint32{f.Vertices[2], f.Vertices[1], f.Vertices[0]},
		HasNormals: f.HasNormals,
	}
	if f.HasNormals {
		r.Normals = [3]uint32{f.Normals[2], f.Normals[1], f.Normals[0]}
	}
	return r
}

// IsRevertedOf reports whether other describes the same triangle with the
// opposite winding.
func (f TriangleFace) IsRevertedOf(other TriangleFace) bool {
	return f.Reverted().Vertices == other.Vertices
}

// OrientedEdges returns the three directed edges of the face in winding
// order.
func (f TriangleFace) OrientedEdges() [3]OrientedEdge {
	return [3]OrientedEdge{
		NewOrientedEdge(f.Vertices[0], f.Vertices[1]),
		NewOrientedEdge(f.Vertices[1], f.Vertices[2]),
		NewOrientedEdge(f.Vertices[2], f.Vertices[0]),
	}
}

// UnorientedEdges returns the three edges of the face as canonical
// direction-independent values.
func (f TriangleFace) UnorientedEdges() [3]UnorientedEdge {
	oriented := f.OrientedEdges()
	return [3]UnorientedEdge{
		oriented[0].Unoriented(),
		oriented[1].Unoriented(),
		oriented[2].Unoriented(),
	}
}

// ContainsOrientedEdge reports whether the face traverses exactly this edge
// in this direction.
func (f TriangleFace) ContainsOrientedEdge(e OrientedEdge) bool {
	for _, fe := range f.OrientedEdges() {
		if fe == e {
			return true
		}
	}
	return false
}

// ContainsUnorientedEdge reports whether the face touches this edge in
// either direction.
func (f TriangleFace) ContainsUnorientedEdge(u UnorientedEdge) bool {
	for _, fe := range f.UnorientedEdges() {
		if fe == u {
			return true
		}
	}
	return false
}
