package mesh

import (
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

func quadVertices() []v3.Vec {
	return []v3.Vec{
		{X: -1, Y: -1},
		{X: 1, Y: -1},
		{X: 1, Y: 1},
		{X: -1, Y: 1},
	}
}

func quadFaces() []TriangleFace {
	return []TriangleFace{
		NewTriangleFace(0, 1, 2),
		NewTriangleFace(2, 3, 0),
	}
}

func TestFromTriangleFacesWithVertices(t *testing.T) {
	g := FromTriangleFacesWithVertices(quadFaces(), quadVertices())

	if len(g.Faces()) != 2 {
		t.Errorf("expected 2 faces, got %d", len(g.Faces()))
	}
	if len(g.Vertices()) != 4 {
		t.Errorf("expected 4 vertices, got %d", len(g.Vertices()))
	}
	if g.HasNormals() {
		t.Error("geometry without normals should report HasNormals false")
	}
	if len(g.Normals()) != 0 {
		t.Error("normals view should be empty, not nil-panicking")
	}
}

func TestFromFacesOutOfBoundsVertexPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for face referencing missing vertex")
		}
	}()
	FromTriangleFacesWithVertices(
		[]TriangleFace{NewTriangleFace(0, 1, 4)},
		quadVertices(),
	)
}

func TestFromFacesOutOfBoundsNormalPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for face referencing missing normal")
		}
	}()
	FromTriangleFacesWithVerticesAndNormals(
		[]TriangleFace{NewTriangleFaceSeparate(0, 1, 2, 0, 0, 3)},
		quadVertices(),
		[]v3.Vec{{Z: 1}},
	)
}

func TestFromFacesMissingNormalIndicesPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for normal-free face in normal-carrying geometry")
		}
	}()
	FromTriangleFacesWithVerticesAndNormals(
		[]TriangleFace{NewTriangleFace(0, 1, 2)},
		quadVertices(),
		[]v3.Vec{{Z: 1}},
	)
}

func TestFromFacesUnexpectedNormalIndicesPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for normal-carrying face in normal-free geometry")
		}
	}()
	FromTriangleFacesWithVertices(
		[]TriangleFace{NewTriangleFaceWithNormals(0, 1, 2)},
		quadVertices(),
	)
}

func TestRemoveOrphansDropsUnreferencedData(t *testing.T) {
	// Only vertices 1, 2, 3 and normal 1 are referenced; vertex 0 and
	// normal 0 are orphans inherited from a larger pool.
	vertices := quadVertices()
	normals := []v3.Vec{{Z: -1}, {Z: 1}}
	faces := []Face{NewTriangleFaceSeparate(1, 2, 3, 1, 1, 1)}

	g := FromFacesWithVerticesAndNormalsRemoveOrphans(faces, vertices, normals)

	if len(g.Vertices()) != 3 {
		t.Errorf("expected 3 kept vertices, got %d", len(g.Vertices()))
	}
	if len(g.Normals()) != 1 {
		t.Errorf("expected 1 kept normal, got %d", len(g.Normals()))
	}

	// Kept elements preserve first-seen order, so vertex 1 becomes index 0.
	if g.Vertices()[0] != vertices[1] {
		t.Error("first kept vertex should be the first referenced one")
	}
	if g.Normals()[0] != normals[1] {
		t.Error("kept normal should be the referenced one")
	}

	face := g.Faces()[0].(TriangleFace)
	if face.Vertices != [3]uint32{0, 1, 2} {
		t.Errorf("expected remapped vertices (0,1,2), got %v", face.Vertices)
	}
	if face.Normals != [3]uint32{0, 0, 0} {
		t.Errorf("expected remapped normals (0,0,0), got %v", face.Normals)
	}
}

func TestRemoveOrphansWithoutNormals(t *testing.T) {
	faces := []Face{NewTriangleFace(1, 2, 3)}
	g := FromFacesWithVerticesRemoveOrphans(faces, quadVertices())

	if len(g.Vertices()) != 3 {
		t.Errorf("expected 3 kept vertices, got %d", len(g.Vertices()))
	}
	if g.HasNormals() {
		t.Error("geometry should carry no normals")
	}
}

func TestTriangleFacesIsRestartable(t *testing.T) {
	g := FromTriangleFacesWithVertices(quadFaces(), quadVertices())

	first := 0
	for range g.TriangleFaces() {
		first++
	}
	second := 0
	for range g.TriangleFaces() {
		second++
	}

	if first != 2 || second != 2 {
		t.Errorf("expected 2 faces on both passes, got %d and %d", first, second)
	}
	if g.TriangleFacesLen() != 2 {
		t.Errorf("expected TriangleFacesLen 2, got %d", g.TriangleFacesLen())
	}
}

func TestUnorientedEdgesThreePerFace(t *testing.T) {
	g := FromTriangleFacesWithVertices(quadFaces(), quadVertices())
	edges := g.UnorientedEdges()

	if len(edges) != 6 {
		t.Fatalf("expected 6 edge entries, got %d", len(edges))
	}

	// The diagonal 0-2 is walked by both faces and must appear twice.
	diagonal := NewOrientedEdge(0, 2).Unoriented()
	count := 0
	for _, e := range edges {
		if e == diagonal {
			count++
		}
	}
	if count != 2 {
		t.Errorf("expected shared diagonal to appear twice, got %d", count)
	}
}

func TestConstructorCopiesInput(t *testing.T) {
	vertices := quadVertices()
	g := FromTriangleFacesWithVertices(quadFaces(), vertices)

	vertices[0] = v3.Vec{X: 99}
	if g.Vertices()[0].X == 99 {
		t.Error("mutating the input slice must not affect the geometry")
	}
}
