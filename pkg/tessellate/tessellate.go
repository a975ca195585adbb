// Package tessellate produces mesh geometries from signed distance fields
// using the github.com/deadsy/sdfx CAD library. Marching cubes emits an
// independent triangle per cell crossing, so the output is a per-face-vertex
// soup with flat normals; welding it afterwards yields shared vertices.
package tessellate

import (
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/trellis/pkg/mesh"
)

// DefaultCells is the marching cubes resolution used when callers pass a
// non-positive cell count.
const DefaultCells = 128

// FromSDF tessellates a signed distance field into a geometry using uniform
// marching cubes with the given resolution.
func FromSDF(s sdf.SDF3, cells int) mesh.Geometry {
	if cells <= 0 {
		cells = DefaultCells
	}
	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(s, renderer)

	vertices := make([]v3.Vec, 0, len(triangles)*3)
	normals := make([]v3.Vec, 0, len(triangles)*3)
	faces := make([]mesh.TriangleFace, 0, len(triangles))

	for _, tri := range triangles {
		n := tri.Normal()
		base := uint32(len(vertices))
		for j := 0; j < 3; j++ {
			vertices = append(vertices, tri[j])
			normals = append(normals, n)
		}
		faces = append(faces, mesh.NewTriangleFaceWithNormals(base, base+1, base+2))
	}

	return mesh.FromTriangleFacesWithVerticesAndNormals(faces, vertices, normals)
}

// Sphere tessellates an origin-centered sphere of the given radius.
// Panics on a non-positive radius.
func Sphere(radius float64, cells int) mesh.Geometry {
	s, err := sdf.Sphere3D(radius)
	if err != nil {
		panic(fmt.Sprintf("tessellate: sdf.Sphere3D: %v", err))
	}
	return FromSDF(s, cells)
}

// Box tessellates an origin-centered axis-aligned box with the given edge
// lengths. Panics on non-positive dimensions.
func Box(size v3.Vec, cells int) mesh.Geometry {
	s, err := sdf.Box3D(size, 0)
	if err != nil {
		panic(fmt.Sprintf("tessellate: sdf.Box3D: %v", err))
	}
	return FromSDF(s, cells)
}
