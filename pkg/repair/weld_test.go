package repair

import (
	"math"
	"testing"

	"github.com/chazu/trellis/pkg/mesh"
	"github.com/chazu/trellis/pkg/topology"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

const weldTolerance = 0.001

func TestWeldMergesDuplicatedQuadVertices(t *testing.T) {
	// The plane primitive stores each face's corners privately: six
	// vertices for four distinct positions.
	welded := Weld(mesh.Plane(v3.Vec{}, 1), weldTolerance)

	if got := len(welded.Vertices()); got != 4 {
		t.Errorf("expected 4 distinct vertices, got %d", got)
	}
	if got := welded.TriangleFacesLen(); got != 2 {
		t.Errorf("expected 2 faces to survive, got %d", got)
	}

	// The diagonal is now genuinely shared.
	shared := 0
	for _, count := range topology.EdgeSharing(welded) {
		if count == 2 {
			shared++
		}
	}
	if shared != 1 {
		t.Errorf("expected exactly 1 shared edge after welding, got %d", shared)
	}
}

func TestWeldPlaneNormalsStayUp(t *testing.T) {
	welded := Weld(mesh.Plane(v3.Vec{}, 1), weldTolerance)

	if got := len(welded.Normals()); got != len(welded.Vertices()) {
		t.Fatalf("expected per-vertex normals, got %d for %d vertices", got, len(welded.Vertices()))
	}
	for i, n := range welded.Normals() {
		if !mesh.Near(n, v3.Vec{Z: 1}, testEpsilon) {
			t.Errorf("normal %d: expected up, got %v", i, n)
		}
	}
}

func TestWeldSharpCubeBecomesWatertight(t *testing.T) {
	welded := Weld(mesh.CubeSharp(v3.Vec{}, 1), weldTolerance)

	if got := len(welded.Vertices()); got != 8 {
		t.Errorf("expected 8 vertices, got %d", got)
	}
	if got := welded.TriangleFacesLen(); got != 12 {
		t.Errorf("expected 12 faces, got %d", got)
	}
	for e, count := range topology.EdgeSharing(welded) {
		if count != 2 {
			t.Errorf("edge %v: expected 2 incident faces, got %d", e.Edge(), count)
		}
	}
}

func TestWeldSharpCubeAveragesCornerNormals(t *testing.T) {
	// Each welded corner collects the three distinct axis normals of its
	// source faces; their mean points outward along the corner diagonal
	// with component magnitude 1/3.
	welded := Weld(mesh.CubeSharp(v3.Vec{}, 1), weldTolerance)

	for i, n := range welded.Normals() {
		v := welded.Vertices()[i]
		if n.Dot(v) <= 0 {
			t.Errorf("normal %d should point outward", i)
		}
		for _, component := range []float64{n.X, n.Y, n.Z} {
			if math.Abs(math.Abs(component)-1.0/3.0) > testEpsilon {
				t.Errorf("normal %d: expected component magnitude 1/3, got %v", i, n)
			}
		}
	}
}

func TestWeldPreservesVertexPositions(t *testing.T) {
	// All cluster members sit at identical positions, so the cluster means
	// are the original corner positions.
	welded := Weld(mesh.CubeSharp(v3.Vec{X: 2}, 1), weldTolerance)
	reference := mesh.Cube(v3.Vec{X: 2}, 1)

	for _, want := range reference.Vertices() {
		found := false
		for _, got := range welded.Vertices() {
			if mesh.Near(want, got, testEpsilon) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected corner %v in welded result", want)
		}
	}
}

func TestWeldIdempotent(t *testing.T) {
	once := Weld(mesh.CubeSharp(v3.Vec{}, 1), weldTolerance)
	twice := Weld(once, weldTolerance)

	if !mesh.Similar(once, twice, testEpsilon) {
		t.Error("welding a welded mesh should change nothing")
	}
}

func TestWeldDropsDegeneratedFaces(t *testing.T) {
	// Vertices 1 and 2 are closer than the tolerance and collapse, leaving
	// the triangle without three distinct corners.
	g := mesh.FromTriangleFacesWithVertices(
		[]mesh.TriangleFace{mesh.NewTriangleFace(0, 1, 2)},
		[]v3.Vec{
			{},
			{X: 1},
			{X: 1.0001},
		},
	)
	welded := Weld(g, 0.1)

	if got := welded.TriangleFacesLen(); got != 0 {
		t.Errorf("expected the degenerated face to be dropped, got %d faces", got)
	}
	if got := len(welded.Vertices()); got != 2 {
		t.Errorf("expected 2 clustered vertices, got %d", got)
	}
}

func TestWeldCollapsesCoarseTolerance(t *testing.T) {
	// A tolerance larger than the whole mesh merges everything into a
	// handful of grid cells and no face survives.
	welded := Weld(mesh.CubeSharp(v3.Vec{}, 1), 100)

	if got := welded.TriangleFacesLen(); got != 0 {
		t.Errorf("expected no faces to survive a coarse weld, got %d", got)
	}
}

func TestWeldWithoutNormals(t *testing.T) {
	g := mesh.FromTriangleFacesWithVertices(
		[]mesh.TriangleFace{
			mesh.NewTriangleFace(0, 1, 2),
			mesh.NewTriangleFace(3, 4, 5),
		},
		[]v3.Vec{
			{}, {X: 1}, {X: 1, Y: 1},
			{X: 1, Y: 1}, {Y: 1}, {},
		},
	)
	welded := Weld(g, weldTolerance)

	if welded.HasNormals() {
		t.Error("welding a normal-free mesh should not invent normals")
	}
	if got := len(welded.Vertices()); got != 4 {
		t.Errorf("expected 4 vertices, got %d", got)
	}
	if got := welded.TriangleFacesLen(); got != 2 {
		t.Errorf("expected 2 faces, got %d", got)
	}
}
