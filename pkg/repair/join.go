package repair

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/trellis/pkg/mesh"
)

// Join concatenates two geometries into one. The first geometry's vertices,
// normals and faces keep their indices and order; the second geometry's
// elements follow them, with its face indices rebased by the first
// geometry's vertex and normal counts. The result is fully deterministic.
//
// Normals survive only when every face of the result has normal data to
// reference: joining a smooth geometry with a flat one yields a geometry
// without normals. A face-free geometry constrains nothing, so joining
// with an empty geometry preserves the other side exactly.
func Join(first, second mesh.Geometry) mesh.Geometry {
	vertexOffset := uint32(len(first.Vertices()))

	vertices := make([]v3.Vec, 0, len(first.Vertices())+len(second.Vertices()))
	vertices = append(vertices, first.Vertices()...)
	vertices = append(vertices, second.Vertices()...)

	firstSmooth := first.HasNormals() || len(first.Faces()) == 0
	secondSmooth := second.HasNormals() || len(second.Faces()) == 0
	if firstSmooth && secondSmooth && (first.HasNormals() || second.HasNormals()) {
		normalOffset := uint32(len(first.Normals()))
		normals := make([]v3.Vec, 0, len(first.Normals())+len(second.Normals()))
		normals = append(normals, first.Normals()...)
		normals = append(normals, second.Normals()...)

		faces := make([]mesh.Face, 0, len(first.Faces())+len(second.Faces()))
		faces = append(faces, first.Faces()...)
		for t := range second.TriangleFaces() {
			faces = append(faces, mesh.NewTriangleFaceSeparate(
				t.Vertices[0]+vertexOffset,
				t.Vertices[1]+vertexOffset,
				t.Vertices[2]+vertexOffset,
				t.Normals[0]+normalOffset,
				t.Normals[1]+normalOffset,
				t.Normals[2]+normalOffset,
			))
		}
		return mesh.FromFacesWithVerticesAndNormals(faces, vertices, normals)
	}

	faces := make([]mesh.Face, 0, len(first.Faces())+len(second.Faces()))
	for t := range first.TriangleFaces() {
		faces = append(faces, mesh.NewTriangleFace(
			t.Vertices[0], t.Vertices[1], t.Vertices[2]))
	}
	for t := range second.TriangleFaces() {
		faces = append(faces, mesh.NewTriangleFace(
			t.Vertices[0]+vertexOffset,
			t.Vertices[1]+vertexOffset,
			t.Vertices[2]+vertexOffset,
		))
	}
	return mesh.FromFacesWithVertices(faces, vertices)
}
