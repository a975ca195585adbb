package smoothing

import (
	"math"
	"testing"

	"github.com/chazu/trellis/pkg/mesh"
	"github.com/chazu/trellis/pkg/topology"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

const testEpsilon = 1e-9

// openQuad builds a flat quad of two triangles sharing the 0-2 diagonal.
// All four vertices lie on the border.
func openQuad() mesh.Geometry {
	return mesh.FromTriangleFacesWithVertices(
		[]mesh.TriangleFace{
			mesh.NewTriangleFace(0, 1, 2),
			mesh.NewTriangleFace(2, 3, 0),
		},
		[]v3.Vec{
			{X: -1, Y: -1},
			{X: 1, Y: -1},
			{X: 1, Y: 1},
			{X: -1, Y: 1},
		},
	)
}

func TestLaplacianOneIterationExactValues(t *testing.T) {
	g := openQuad()
	relaxed, executed, _ := Laplacian(g, topology.VertexToVertex(g), 1, nil, false)

	if executed != 1 {
		t.Fatalf("expected 1 executed iteration, got %d", executed)
	}

	// Synchronous averaging against the starting snapshot:
	// v0 has neighbors 1,2,3 and v1 has neighbors 0,2.
	want := []v3.Vec{
		{X: 1.0 / 3.0, Y: 1.0 / 3.0},
		{},
		{X: -1.0 / 3.0, Y: -1.0 / 3.0},
		{},
	}
	for i, w := range want {
		if !mesh.Near(relaxed.Vertices()[i], w, testEpsilon) {
			t.Errorf("vertex %d: expected %v, got %v", i, w, relaxed.Vertices()[i])
		}
	}
}

func TestLaplacianZeroIterations(t *testing.T) {
	g := openQuad()
	relaxed, executed, stable := Laplacian(g, topology.VertexToVertex(g), 0, nil, true)

	if executed != 0 {
		t.Errorf("expected 0 executed iterations, got %d", executed)
	}
	if stable {
		t.Error("zero iterations should not report stability")
	}
	if !mesh.Similar(g, relaxed, testEpsilon) {
		t.Error("zero iterations should return the input unchanged")
	}
}

func TestLaplacianPreservesTopology(t *testing.T) {
	g := mesh.Cube(v3.Vec{}, 1)
	relaxed, _, _ := Laplacian(g, topology.VertexToVertex(g), 3, nil, false)

	if len(relaxed.Faces()) != len(g.Faces()) {
		t.Errorf("face count changed: %d -> %d", len(g.Faces()), len(relaxed.Faces()))
	}
	if len(relaxed.Vertices()) != len(g.Vertices()) {
		t.Errorf("vertex count changed: %d -> %d", len(g.Vertices()), len(relaxed.Vertices()))
	}
	for i, face := range g.Faces() {
		if face.(mesh.TriangleFace) != relaxed.Faces()[i].(mesh.TriangleFace) {
			t.Fatalf("face %d changed", i)
		}
	}
	for i, n := range g.Normals() {
		if relaxed.Normals()[i] != n {
			t.Fatalf("normal %d changed", i)
		}
	}
}

func TestLaplacianAnchoredVerticesDoNotMove(t *testing.T) {
	g := openQuad()
	anchors := []uint32{0, 2}
	relaxed, _, _ := Laplacian(g, topology.VertexToVertex(g), 4, anchors, false)

	for _, i := range anchors {
		if relaxed.Vertices()[i] != g.Vertices()[i] {
			t.Errorf("anchored vertex %d moved to %v", i, relaxed.Vertices()[i])
		}
	}
}

func TestLaplacianFullyAnchoredIsImmediatelyStable(t *testing.T) {
	g := openQuad()
	anchors := []uint32{0, 1, 2, 3}
	relaxed, executed, stable := Laplacian(g, topology.VertexToVertex(g), 50, anchors, true)

	if !stable {
		t.Error("expected stability with every vertex anchored")
	}
	if executed != 1 {
		t.Errorf("expected early stop after 1 iteration, got %d", executed)
	}
	if !mesh.Similar(g, relaxed, testEpsilon) {
		t.Error("fully anchored relaxation should be the identity")
	}
}

func TestLaplacianConvergesWithAnchors(t *testing.T) {
	g := openQuad()
	anchors := []uint32{0, 2}
	_, executed, stable := Laplacian(g, topology.VertexToVertex(g), MaxIterations, anchors, true)

	if !stable {
		t.Error("anchored relaxation of a small patch should converge")
	}
	if executed >= MaxIterations {
		t.Errorf("expected convergence before the iteration cap, ran %d", executed)
	}
}

func TestLaplacianWithoutAnchorsNeverStable(t *testing.T) {
	g := mesh.Cube(v3.Vec{}, 1)
	_, executed, stable := Laplacian(g, topology.VertexToVertex(g), 10, nil, true)

	if stable {
		t.Error("stability has no meaning without anchors")
	}
	if executed != 10 {
		t.Errorf("expected all 10 iterations to run, got %d", executed)
	}
}

func TestLaplacianDisplacementNonIncreasing(t *testing.T) {
	g := mesh.Cube(v3.Vec{}, 1)
	v2v := topology.VertexToVertex(g)

	// Each iteration's total vertex displacement, measured by running one
	// iteration at a time. Averaging is a contraction on a closed mesh, so
	// the sequence must never grow.
	previous := math.Inf(1)
	for iteration := 0; iteration < 8; iteration++ {
		relaxed, executed, _ := Laplacian(g, v2v, 1, nil, false)
		if executed != 1 {
			t.Fatalf("iteration %d: expected 1 executed iteration, got %d", iteration, executed)
		}

		displacement := 0.0
		for i, v := range g.Vertices() {
			d := relaxed.Vertices()[i].Sub(v)
			displacement += d.Length()
		}
		if displacement > previous+testEpsilon {
			t.Fatalf("iteration %d: displacement grew from %g to %g",
				iteration, previous, displacement)
		}
		previous = displacement
		g = relaxed
	}
}

func TestLaplacianShrinksUnanchoredMesh(t *testing.T) {
	g := mesh.Cube(v3.Vec{}, 1)
	relaxed, _, _ := Laplacian(g, topology.VertexToVertex(g), 5, nil, false)

	_, before := mesh.BoundingSphere(g)
	center, after := mesh.BoundingSphere(relaxed)

	if after >= before {
		t.Errorf("unanchored relaxation should shrink the mesh: %f -> %f", before, after)
	}
	if !mesh.Near(center, v3.Vec{}, testEpsilon) {
		t.Errorf("relaxation should preserve the centroid, got %v", center)
	}
	if math.IsNaN(after) {
		t.Error("relaxed positions should stay finite")
	}
}
