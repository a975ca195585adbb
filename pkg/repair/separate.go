package repair

import (
	"github.com/chazu/trellis/pkg/mesh"
	"github.com/chazu/trellis/pkg/topology"
)

// SeparateIsolated crawls the geometry to find continuous patches of faces
// connected through shared edges and returns one orphan-free geometry per
// patch. Every input face ends up in exactly one output geometry; the order
// of the returned geometries is unspecified, so callers should compare
// results by content.
func SeparateIsolated(g mesh.Geometry) []mesh.Geometry {
	faceToFace := topology.FaceToFace(g)
	faces := g.Faces()
	visited := make([]bool, len(faces))

	var patches []mesh.Geometry
	for seed := range faces {
		if visited[seed] {
			continue
		}
		connected := crawlFaces(uint32(seed), faceToFace)

		patchFaces := make([]mesh.Face, 0, len(connected))
		for i, face := range faces {
			if connected[uint32(i)] {
				visited[i] = true
				patchFaces = append(patchFaces, face)
			}
		}

		if g.HasNormals() {
			patches = append(patches, mesh.FromFacesWithVerticesAndNormalsRemoveOrphans(
				patchFaces, g.Vertices(), g.Normals()))
		} else {
			patches = append(patches, mesh.FromFacesWithVerticesRemoveOrphans(
				patchFaces, g.Vertices()))
		}
	}
	return patches
}

// crawlFaces flood-fills the face adjacency graph from the start face using
// an explicit stack, so large meshes cannot exhaust the call stack.
func crawlFaces(start uint32, faceToFace topology.AdjacencyMap) map[uint32]bool {
	stack := []uint32{start}
	connected := make(map[uint32]bool)
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if connected[current] {
			continue
		}
		connected[current] = true
		for _, neighbor := range faceToFace[current] {
			stack = append(stack, neighbor)
		}
	}
	return connected
}
