package mesh

import (
	"fmt"
	"iter"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Geometry is an immutable container of vertices, optional normals, and
// faces referencing them by index. A Geometry is produced once by a
// constructor and never mutated afterward; operations elsewhere in the
// engine consume geometries and build new ones.
//
// Every vertex and normal index referenced by a face must be strictly less
// than the length of the respective collection. The constructors enforce
// this with a panic: an out-of-bounds face is a programming bug in the
// caller, not recoverable input.
type Geometry struct {
	faces    []Face
	vertices []v3.Vec
	normals  []v3.Vec
}

// FromTriangleFacesWithVertices creates a geometry without normals.
// Panics if any face references out-of-bounds vertices or carries normal
// indices.
func FromTriangleFacesWithVertices(faces []TriangleFace, vertices []v3.Vec) Geometry {
	return FromFacesWithVertices(wrapTriangleFaces(faces), vertices)
}

// FromTriangleFacesWithVerticesAndNormals creates a geometry with normals.
// Panics if any face references out-of-bounds vertices or normals, or lacks
// normal indices.
func FromTriangleFacesWithVerticesAndNormals(faces []TriangleFace, vertices, normals []v3.Vec) Geometry {
	return FromFacesWithVerticesAndNormals(wrapTriangleFaces(faces), vertices, normals)
}

// FromFacesWithVertices creates a geometry without normals from an already
// wrapped face list.
func FromFacesWithVertices(faces []Face, vertices []v3.Vec) Geometry {
	for _, face := range faces {
		t := mustTriangle(face)
		if t.HasNormals {
			panic("mesh: faces must not carry normal indices in a geometry without normals")
		}
		checkBounds(t.Vertices, uint32(len(vertices)))
	}
	return Geometry{
		faces:    cloneFaces(faces),
		vertices: cloneVecs(vertices),
	}
}

// FromFacesWithVerticesAndNormals creates a geometry with normals from an
// already wrapped face list.
func FromFacesWithVerticesAndNormals(faces []Face, vertices, normals []v3.Vec) Geometry {
	for _, face := range faces {
		t := mustTriangle(face)
		if !t.HasNormals {
			panic("mesh: normals must be present in faces")
		}
		checkBounds(t.Vertices, uint32(len(vertices)))
		checkBounds(t.Normals, uint32(len(normals)))
	}
	return Geometry{
		faces:    cloneFaces(faces),
		vertices: cloneVecs(vertices),
		normals:  cloneVecs(normals),
	}
}

// FromFacesWithVerticesAndNormalsRemoveOrphans creates a geometry from a
// face subset inheriting a larger vertex and normal pool: vertices and
// normals not referenced by any face are discarded and the face indices are
// remapped accordingly. Referenced elements keep their relative order.
func FromFacesWithVerticesAndNormalsRemoveOrphans(faces []Face, vertices, normals []v3.Vec) Geometry {
	vertexRemap := make(map[uint32]uint32)
	normalRemap := make(map[uint32]uint32)
	var keptVertices, keptNormals []v3.Vec

	remapVertex := func(old uint32) uint32 {
		if new, ok := vertexRemap[old]; ok {
			return new
		}
		if old >= uint32(len(vertices)) {
			panic(outOfBoundsMsg)
		}
		new := uint32(len(keptVertices))
		keptVertices = append(keptVertices, vertices[old])
		vertexRemap[old] = new
		return new
	}
	remapNormal := func(old uint32) uint32 {
		if new, ok := normalRemap[old]; ok {
			return new
		}
		if old >= uint32(len(normals)) {
			panic(outOfBoundsMsg)
		}
		new := uint32(len(keptNormals))
		keptNormals = append(keptNormals, normals[old])
		normalRemap[old] = new
		return new
	}

	remappedFaces := make([]Face, 0, len(faces))
	for _, face := range faces {
		t := mustTriangle(face)
		if !t.HasNormals {
			panic("mesh: normals must be present in faces")
		}
		remappedFaces = append(remappedFaces, NewTriangleFaceSeparate(
			remapVertex(t.Vertices[0]),
			remapVertex(t.Vertices[1]),
			remapVertex(t.Vertices[2]),
			remapNormal(t.Normals[0]),
			remapNormal(t.Normals[1]),
			remapNormal(t.Normals[2]),
		))
	}

	return Geometry{
		faces:    remappedFaces,
		vertices: keptVertices,
		normals:  keptNormals,
	}
}

// FromFacesWithVerticesRemoveOrphans is the orphan-removing constructor for
// geometries without normals.
func FromFacesWithVerticesRemoveOrphans(faces []Face, vertices []v3.Vec) Geometry {
	vertexRemap := make(map[uint32]uint32)
	var keptVertices []v3.Vec

	remapVertex := func(old uint32) uint32 {
		if new, ok := vertexRemap[old]; ok {
			return new
		}
		if old >= uint32(len(vertices)) {
			panic(outOfBoundsMsg)
		}
		new := uint32(len(keptVertices))
		keptVertices = append(keptVertices, vertices[old])
		vertexRemap[old] = new
		return new
	}

	remappedFaces := make([]Face, 0, len(faces))
	for _, face := range faces {
		t := mustTriangle(face)
		if t.HasNormals {
			panic("mesh: faces must not carry normal indices in a geometry without normals")
		}
		remappedFaces = append(remappedFaces, NewTriangleFace(
			remapVertex(t.Vertices[0]),
			remapVertex(t.Vertices[1]),
			remapVertex(t.Vertices[2]),
		))
	}

	return Geometry{
		faces:    remappedFaces,
		vertices: keptVertices,
	}
}

// Faces returns a read-only view of all faces. Callers must not modify the
// returned slice.
func (g Geometry) Faces() []Face {
	return g.faces
}

// Vertices returns a read-only view of all vertex positions.
func (g Geometry) Vertices() []v3.Vec {
	return g.vertices
}

// Normals returns a read-only view of all normals. The view is empty, not
// absent, when the geometry carries no normals, so downstream code can
// always treat it as a sequence.
func (g Geometry) Normals() []v3.Vec {
	return g.normals
}

// HasNormals reports whether the geometry carries normals.
func (g Geometry) HasNormals() bool {
	return len(g.normals) > 0
}

// TriangleFaces returns a restartable sequence over just the triangular
// faces, skipping any other face variant.
func (g Geometry) TriangleFaces() iter.Seq[TriangleFace] {
	return func(yield func(TriangleFace) bool) {
		for _, face := range g.faces {
			if t, ok := face.(TriangleFace); ok {
				if !yield(t) {
					return
				}
			}
		}
	}
}

// TriangleFacesLen returns the count of triangular faces.
func (g Geometry) TriangleFacesLen() int {
	n := 0
	for _, face := range g.faces {
		if _, ok := face.(TriangleFace); ok {
			n++
		}
	}
	return n
}

// UnorientedEdges returns the edges of every face in face order, three per
// triangle. Edges shared between faces appear once per face; the slice is
// the caller-supplied ordered edge list expected by the edge-based topology
// maps.
func (g Geometry) UnorientedEdges() []UnorientedEdge {
	edges := make([]UnorientedEdge, 0, len(g.faces)*3)
	for t := range g.TriangleFaces() {
		fe := t.UnorientedEdges()
		edges = append(edges, fe[0], fe[1], fe[2])
	}
	return edges
}

const outOfBoundsMsg = "mesh: faces reference out of bounds data"

func checkBounds(indices [3]uint32, limit uint32) {
	for _, i := range indices {
		if i >= limit {
			panic(fmt.Sprintf("%s: index %d, length %d", outOfBoundsMsg, i, limit))
		}
	}
}

func mustTriangle(face Face) TriangleFace {
	t, ok := face.(TriangleFace)
	if !ok {
		panic(fmt.Sprintf("mesh: unsupported face variant %T", face))
	}
	return t
}

func wrapTriangleFaces(faces []TriangleFace) []Face {
	wrapped := make([]Face, len(faces))
	for i, f := range faces {
		wrapped[i] = f
	}
	return wrapped
}

func cloneFaces(faces []Face) []Face {
	out := make([]Face, len(faces))
	copy(out, faces)
	return out
}

func cloneVecs(vecs []v3.Vec) []v3.Vec {
	out := make([]v3.Vec, len(vecs))
	copy(out, vecs)
	return out
}
