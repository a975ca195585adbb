package mesh

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Primitive generators. All of them produce unit-sized shapes spanning
// -1..1 on each axis, scaled and then translated to the requested center.
// They exist mostly as algorithm inputs: the per-face-vertex ("sharp")
// variants are natural weld fodder, the shared-vertex variants are already
// watertight.

func placed(x, y, z float64, center v3.Vec, scale float64) v3.Vec {
	return v3.Vec{
		X: scale*x + center.X,
		Y: scale*y + center.Y,
		Z: scale*z + center.Z,
	}
}

// Plane returns a flat quad in the XY plane split into two triangles, with
// per-face-vertex positions and a shared up normal per corner.
func Plane(center v3.Vec, scale float64) Geometry {
	vertices := []v3.Vec{
		placed(-1, -1, 0, center, scale),
		placed(1, -1, 0, center, scale),
		placed(1, 1, 0, center, scale),
		placed(1, 1, 0, center, scale),
		placed(-1, 1, 0, center, scale),
		placed(-1, -1, 0, center, scale),
	}
	normals := []v3.Vec{{Z: 1}}
	faces := []TriangleFace{
		NewTriangleFaceSeparate(0, 1, 2, 0, 0, 0),
		NewTriangleFaceSeparate(3, 4, 5, 0, 0, 0),
	}
	return FromTriangleFacesWithVerticesAndNormals(faces, vertices, normals)
}

// Cube returns a cube with eight shared vertices and smooth per-vertex
// normals. The result is watertight as constructed.
func Cube(center v3.Vec, scale float64) Geometry {
	n := 1.0 / math.Sqrt(3.0)
	vertices := []v3.Vec{
		// back
		placed(-1, 1, -1, center, scale),
		placed(-1, 1, 1, center, scale),
		placed(1, 1, 1, center, scale),
		placed(1, 1, -1, center, scale),
		// front
		placed(-1, -1, -1, center, scale),
		placed(1, -1, -1, center, scale),
		placed(1, -1, 1, center, scale),
		placed(-1, -1, 1, center, scale),
	}
	normals := []v3.Vec{
		{X: -n, Y: n, Z: -n},
		{X: -n, Y: n, Z: n},
		{X: n, Y: n, Z: n},
		{X: n, Y: n, Z: -n},
		{X: -n, Y: -n, Z: -n},
		{X: n, Y: -n, Z: -n},
		{X: n, Y: -n, Z: n},
		{X: -n, Y: -n, Z: n},
	}
	faces := []TriangleFace{
		// back
		NewTriangleFaceWithNormals(0, 1, 2),
		NewTriangleFaceWithNormals(2, 3, 0),
		// front
		NewTriangleFaceWithNormals(4, 5, 6),
		NewTriangleFaceWithNormals(6, 7, 4),
		// top
		NewTriangleFaceWithNormals(7, 6, 2),
		NewTriangleFaceWithNormals(2, 1, 7),
		// bottom
		NewTriangleFaceWithNormals(4, 0, 3),
		NewTriangleFaceWithNormals(3, 5, 4),
		// right
		NewTriangleFaceWithNormals(5, 3, 2),
		NewTriangleFaceWithNormals(2, 6, 5),
		// left
		NewTriangleFaceWithNormals(4, 7, 1),
		NewTriangleFaceWithNormals(1, 0, 4),
	}
	return FromTriangleFacesWithVerticesAndNormals(faces, vertices, normals)
}

// CubeSharp returns a cube with 24 per-face vertices and flat face normals.
// No vertex is shared between faces, which makes it the canonical input for
// welding.
func CubeSharp(center v3.Vec, scale float64) Geometry {
	vertices := []v3.Vec{
		// back
		placed(-1, 1, -1, center, scale),
		placed(-1, 1, 1, center, scale),
		placed(1, 1, 1, center, scale),
		placed(1, 1, -1, center, scale),
		// front
		placed(-1, -1, -1, center, scale),
		placed(1, -1, -1, center, scale),
		placed(1, -1, 1, center, scale),
		placed(-1, -1, 1, center, scale),
		// top
		placed(-1, 1, 1, center, scale),
		placed(-1, -1, 1, center, scale),
		placed(1, -1, 1, center, scale),
		placed(1, 1, 1, center, scale),
		// bottom
		placed(-1, 1, -1, center, scale),
		placed(1, 1, -1, center, scale),
		placed(1, -1, -1, center, scale),
		placed(-1, -1, -1, center, scale),
		// right
		placed(1, 1, -1, center, scale),
		placed(1, 1, 1, center, scale),
		placed(1, -1, 1, center, scale),
		placed(1, -1, -1, center, scale),
		// left
		placed(-1, 1, -1, center, scale),
		placed(-1, -1, -1, center, scale),
		placed(-1, -1, 1, center, scale),
		placed(-1, 1, 1, center, scale),
	}
	normals := make([]v3.Vec, 0, 24)
	for _, fn := range faceNormals() {
		normals = append(normals, fn, fn, fn, fn)
	}
	faces := make([]TriangleFace, 0, 12)
	for quad := uint32(0); quad < 6; quad++ {
		base := quad * 4
		faces = append(faces,
			NewTriangleFaceWithNormals(base, base+1, base+2),
			NewTriangleFaceWithNormals(base+2, base+3, base),
		)
	}
	return FromTriangleFacesWithVerticesAndNormals(faces, vertices, normals)
}

// CubeSharpSharedNormals returns a cube with eight shared vertices and six
// flat face normals referenced separately from the vertex indices.
func CubeSharpSharedNormals(center v3.Vec, scale float64) Geometry {
	vertices := []v3.Vec{
		// back
		placed(-1, 1, -1, center, scale),
		placed(-1, 1, 1, center, scale),
		placed(1, 1, 1, center, scale),
		placed(1, 1, -1, center, scale),
		// front
		placed(-1, -1, -1, center, scale),
		placed(1, -1, -1, center, scale),
		placed(1, -1, 1, center, scale),
		placed(-1, -1, 1, center, scale),
	}
	normals := faceNormals()
	faces := []TriangleFace{
		// back
		NewTriangleFaceSeparate(0, 1, 2, 0, 0, 0),
		NewTriangleFaceSeparate(2, 3, 0, 0, 0, 0),
		// front
		NewTriangleFaceSeparate(4, 5, 6, 1, 1, 1),
		NewTriangleFaceSeparate(6, 7, 4, 1, 1, 1),
		// top
		NewTriangleFaceSeparate(7, 6, 2, 2, 2, 2),
		NewTriangleFaceSeparate(2, 1, 7, 2, 2, 2),
		// bottom
		NewTriangleFaceSeparate(4, 0, 3, 3, 3, 3),
		NewTriangleFaceSeparate(3, 5, 4, 3, 3, 3),
		// right
		NewTriangleFaceSeparate(5, 3, 2, 4, 4, 4),
		NewTriangleFaceSeparate(2, 6, 5, 4, 4, 4),
		// left
		NewTriangleFaceSeparate(4, 7, 1, 5, 5, 5),
		NewTriangleFaceSeparate(1, 0, 4, 5, 5, 5),
	}
	return FromTriangleFacesWithVerticesAndNormals(faces, vertices, normals)
}

// faceNormals returns the six axis-aligned cube face normals in back, front,
// top, bottom, right, left order.
func faceNormals() []v3.Vec {
	return []v3.Vec{
		{Y: 1},
		{Y: -1},
		{Z: 1},
		{Z: -1},
		{X: 1},
		{X: -1},
	}
}
