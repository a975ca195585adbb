package repair

import (
	"testing"

	"github.com/chazu/trellis/pkg/mesh"
	"github.com/chazu/trellis/pkg/topology"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

const testEpsilon = 1e-9

func synchronize(g mesh.Geometry) mesh.Geometry {
	edges := g.UnorientedEdges()
	return SynchronizeWinding(g, edges, topology.EdgeToFace(g, edges))
}

func quadVertices() []v3.Vec {
	return []v3.Vec{
		{X: -1, Y: -1},
		{X: 1, Y: -1},
		{X: 1, Y: 1},
		{X: -1, Y: 1},
	}
}

func consistentQuad() mesh.Geometry {
	return mesh.FromTriangleFacesWithVertices(
		[]mesh.TriangleFace{
			mesh.NewTriangleFace(0, 1, 2),
			mesh.NewTriangleFace(2, 3, 0),
		},
		quadVertices(),
	)
}

func TestSynchronizeWindingConsistentMeshUnchanged(t *testing.T) {
	g := mesh.Cube(v3.Vec{}, 1)
	synced := synchronize(g)

	for i, face := range g.Faces() {
		if face.(mesh.TriangleFace) != synced.Faces()[i].(mesh.TriangleFace) {
			t.Fatalf("face %d changed on an already consistent mesh", i)
		}
	}
}

func TestSynchronizeWindingRepairsFlippedFace(t *testing.T) {
	// Same quad as consistentQuad with the second face wound backwards.
	broken := mesh.FromTriangleFacesWithVertices(
		[]mesh.TriangleFace{
			mesh.NewTriangleFace(0, 1, 2),
			mesh.NewTriangleFace(0, 3, 2),
		},
		quadVertices(),
	)

	synced := synchronize(broken)

	// The first face seeds the traversal and keeps its winding, so the
	// repaired mesh matches the consistent fixture exactly.
	if !mesh.Similar(synced, consistentQuad(), testEpsilon) {
		t.Error("expected the flipped face to be rewound to match its neighbor")
	}
}

func TestSynchronizeWindingPreservesFaceOrder(t *testing.T) {
	broken := mesh.FromTriangleFacesWithVertices(
		[]mesh.TriangleFace{
			mesh.NewTriangleFace(0, 1, 2),
			mesh.NewTriangleFace(0, 3, 2),
		},
		quadVertices(),
	)
	synced := synchronize(broken)

	first := synced.Faces()[0].(mesh.TriangleFace)
	if first.Vertices != [3]uint32{0, 1, 2} {
		t.Errorf("seed face should keep its slot and winding, got %v", first.Vertices)
	}
	second := synced.Faces()[1].(mesh.TriangleFace)
	if second.Vertices != [3]uint32{2, 3, 0} {
		t.Errorf("repaired face should stay in its slot, got %v", second.Vertices)
	}
}

func TestSynchronizeWindingCubeWithFlippedFaces(t *testing.T) {
	reference := mesh.Cube(v3.Vec{}, 1)

	// Flip a few faces and verify the crawl restores all of them.
	faces := make([]mesh.TriangleFace, 0, reference.TriangleFacesLen())
	for f := range reference.TriangleFaces() {
		faces = append(faces, f)
	}
	for _, i := range []int{2, 5, 9} {
		faces[i] = faces[i].Reverted()
	}
	broken := mesh.FromTriangleFacesWithVerticesAndNormals(faces, reference.Vertices(), reference.Normals())

	synced := synchronize(broken)
	if !mesh.Similar(synced, reference, testEpsilon) {
		t.Error("expected all flipped cube faces to be restored")
	}
}

func TestSynchronizeWindingDisconnectedComponents(t *testing.T) {
	// Two islands, the second wound inconsistently within itself. Each
	// component must become internally consistent.
	g := mesh.FromTriangleFacesWithVertices(
		[]mesh.TriangleFace{
			mesh.NewTriangleFace(0, 1, 2),
			mesh.NewTriangleFace(3, 4, 5),
			mesh.NewTriangleFace(3, 6, 5),
		},
		[]v3.Vec{
			{}, {X: 1}, {Y: 1},
			{X: 5}, {X: 6}, {X: 5, Y: 1}, {X: 6, Y: 1},
		},
	)
	synced := synchronize(g)

	second := synced.Faces()[1].(mesh.TriangleFace)
	third := synced.Faces()[2].(mesh.TriangleFace)

	// The island's shared edge 3-5 must be traversed in opposite directions.
	sharedForward := second.ContainsOrientedEdge(mesh.NewOrientedEdge(3, 5))
	if sharedForward == third.ContainsOrientedEdge(mesh.NewOrientedEdge(3, 5)) {
		t.Error("island faces should traverse their shared edge in opposite directions")
	}
}

func TestRevertFaces(t *testing.T) {
	g := consistentQuad()
	reverted := RevertFaces(g)

	for i, face := range g.Faces() {
		original := face.(mesh.TriangleFace)
		flipped := reverted.Faces()[i].(mesh.TriangleFace)
		if !original.IsRevertedOf(flipped) {
			t.Errorf("face %d was not reverted", i)
		}
	}

	// Double revert restores the original mesh.
	if !mesh.Similar(RevertFaces(reverted), g, testEpsilon) {
		t.Error("double revert should restore the input")
	}
}

func TestRevertFacesKeepsNormals(t *testing.T) {
	g := mesh.Cube(v3.Vec{}, 1)
	reverted := RevertFaces(g)

	for i, n := range g.Normals() {
		if reverted.Normals()[i] != n {
			t.Fatalf("normal %d changed", i)
		}
	}
}
