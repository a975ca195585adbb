package mesh

import (
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

const testEpsilon = 1e-9

func TestPlaneShape(t *testing.T) {
	g := Plane(v3.Vec{}, 1)

	if got := len(g.Faces()); got != 2 {
		t.Errorf("expected 2 faces, got %d", got)
	}
	if got := len(g.Vertices()); got != 6 {
		t.Errorf("expected 6 per-face vertices, got %d", got)
	}
	if got := len(g.Normals()); got != 1 {
		t.Errorf("expected 1 shared normal, got %d", got)
	}
	if !Near(g.Normals()[0], v3.Vec{Z: 1}, testEpsilon) {
		t.Error("plane normal should point up")
	}

	// Every vertex lies in the XY plane.
	for i, v := range g.Vertices() {
		if v.Z != 0 {
			t.Errorf("vertex %d should have Z 0, got %f", i, v.Z)
		}
	}
}

func TestPlanePlacement(t *testing.T) {
	center := v3.Vec{X: 10, Y: -5, Z: 2}
	g := Plane(center, 3)

	if !Near(Centroid(g), center, testEpsilon) {
		t.Errorf("plane centroid should sit at the requested center, got %v", Centroid(g))
	}
	for _, v := range g.Vertices() {
		d := v.Sub(center)
		if math.Abs(d.X) != 3 || math.Abs(d.Y) != 3 {
			t.Errorf("vertex %v not at scale 3 from center", v)
		}
	}
}

func TestCubeShape(t *testing.T) {
	g := Cube(v3.Vec{}, 1)

	if got := len(g.Faces()); got != 12 {
		t.Errorf("expected 12 faces, got %d", got)
	}
	if got := len(g.Vertices()); got != 8 {
		t.Errorf("expected 8 shared vertices, got %d", got)
	}
	if got := len(g.Normals()); got != 8 {
		t.Errorf("expected 8 smooth normals, got %d", got)
	}

	// Smooth normals are unit length and point away from the center.
	for i, n := range g.Normals() {
		if math.Abs(n.Length()-1) > testEpsilon {
			t.Errorf("normal %d should be unit length, got %f", i, n.Length())
		}
		if n.Dot(g.Vertices()[i]) <= 0 {
			t.Errorf("normal %d should point outward", i)
		}
	}
}

func TestCubeSharpShape(t *testing.T) {
	g := CubeSharp(v3.Vec{}, 1)

	if got := len(g.Faces()); got != 12 {
		t.Errorf("expected 12 faces, got %d", got)
	}
	if got := len(g.Vertices()); got != 24 {
		t.Errorf("expected 24 per-face vertices, got %d", got)
	}
	if got := len(g.Normals()); got != 24 {
		t.Errorf("expected 24 flat normals, got %d", got)
	}
}

func TestCubeSharpSharedNormalsShape(t *testing.T) {
	g := CubeSharpSharedNormals(v3.Vec{}, 1)

	if got := len(g.Vertices()); got != 8 {
		t.Errorf("expected 8 shared vertices, got %d", got)
	}
	if got := len(g.Normals()); got != 6 {
		t.Errorf("expected 6 face normals, got %d", got)
	}
}

func TestCubeVariantsShareVertexPositions(t *testing.T) {
	// The sharp cube resolves to the same positions as the shared-normal
	// sharp cube, just with duplicated vertices. Their face windings must
	// describe the same solid.
	sharp := CubeSharp(v3.Vec{X: 1}, 2)
	shared := CubeSharpSharedNormals(v3.Vec{X: 1}, 2)

	if !Similar(sharp, shared, testEpsilon) {
		t.Error("sharp cube variants should describe the same mesh by content")
	}
}

func TestBoundingSphere(t *testing.T) {
	g := Cube(v3.Vec{X: 5}, 2)
	center, radius := BoundingSphere(g)

	if !Near(center, v3.Vec{X: 5}, testEpsilon) {
		t.Errorf("expected center (5,0,0), got %v", center)
	}
	want := 2 * math.Sqrt(3)
	if math.Abs(radius-want) > testEpsilon {
		t.Errorf("expected radius %f, got %f", want, radius)
	}
}

func TestCentroidEmpty(t *testing.T) {
	if got := Centroid(); got != (v3.Vec{}) {
		t.Errorf("centroid of nothing should be the zero vector, got %v", got)
	}
}

func TestSimilarDetectsDifferences(t *testing.T) {
	a := Cube(v3.Vec{}, 1)

	if !Similar(a, Cube(v3.Vec{}, 1), testEpsilon) {
		t.Error("a cube should be similar to an identical cube")
	}
	if Similar(a, Cube(v3.Vec{}, 1.1), testEpsilon) {
		t.Error("cubes of different scale should not be similar")
	}
	if Similar(a, Cube(v3.Vec{X: 1}, 1), testEpsilon) {
		t.Error("cubes at different positions should not be similar")
	}
	if Similar(a, CubeSharp(v3.Vec{}, 1), testEpsilon) {
		t.Error("smooth and flat shaded cubes differ in normals")
	}
}

func TestSimilarIgnoresFaceOrder(t *testing.T) {
	vertices := quadVertices()
	a := FromTriangleFacesWithVertices(quadFaces(), vertices)
	b := FromTriangleFacesWithVertices([]TriangleFace{
		NewTriangleFace(2, 3, 0),
		NewTriangleFace(0, 1, 2),
	}, vertices)

	if !Similar(a, b, testEpsilon) {
		t.Error("face order should not affect similarity")
	}
}

func TestSimilarRespectsWinding(t *testing.T) {
	vertices := quadVertices()
	a := FromTriangleFacesWithVertices([]TriangleFace{NewTriangleFace(0, 1, 2)}, vertices)
	b := FromTriangleFacesWithVertices([]TriangleFace{NewTriangleFace(2, 1, 0)}, vertices)

	if Similar(a, b, testEpsilon) {
		t.Error("opposite windings should not be similar")
	}

	// Cyclic rotation of the same winding is the same face.
	c := FromTriangleFacesWithVertices([]TriangleFace{NewTriangleFace(1, 2, 0)}, vertices)
	if !Similar(a, c, testEpsilon) {
		t.Error("cyclic rotation of corners should be similar")
	}
}
