package repair

import (
	"github.com/chazu/trellis/pkg/mesh"
	"github.com/chazu/trellis/pkg/topology"
)

// edgeFaceItem is a pending traversal step: a face index together with the
// oriented edge the already-treated neighbor expects to find in it.
type edgeFaceItem struct {
	expected mesh.OrientedEdge
	face     uint32
}

// SynchronizeWinding makes the winding of every face consistent with its
// neighbors. It crawls the face graph through shared edges: a face has the
// proper winding relative to the traversal iff it contains the shared edge
// reverted with respect to how its treated neighbor traverses it, and is
// flipped otherwise. The edges slice and edgeToFace map must be derived
// from this geometry (g.UnorientedEdges and topology.EdgeToFace).
//
// Each connected component is seeded independently, so two disconnected
// patches are internally consistent but not guaranteed consistent with each
// other, and the whole result may end up inverted relative to the intended
// outward orientation; detecting that is out of scope here. Normals are
// passed through untouched, since vertex winding and normal direction are
// decoupled.
func SynchronizeWinding(
	g mesh.Geometry,
	edges []mesh.UnorientedEdge,
	edgeToFace topology.AdjacencyMap,
) mesh.Geometry {
	original := make([]mesh.TriangleFace, 0, g.TriangleFacesLen())
	for t := range g.TriangleFaces() {
		original = append(original, t)
	}

	edgeIndex := make(map[mesh.UnorientedEdge]uint32, len(edges))
	for i, e := range edges {
		if _, seen := edgeIndex[e]; !seen {
			edgeIndex[e] = uint32(i)
		}
	}

	treated := make([]bool, len(original))
	treatedCount := 0
	synchronized := make([]mesh.TriangleFace, len(original))
	stack := make([]edgeFaceItem, 0, len(original)/2+1)

	for treatedCount < len(original) {
		// Seed a new component at the first untreated face. Its current
		// winding decides the winding of the whole component.
		seed := uint32(0)
		for treated[seed] {
			seed++
		}
		treated[seed] = true
		treatedCount++
		stack = append(stack, edgeFaceItem{
			expected: original[seed].OrientedEdges()[0],
			face:     seed,
		})

		for len(stack) > 0 {
			item := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			proper := original[item.face]
			if !proper.ContainsOrientedEdge(item.expected) {
				proper = proper.Reverted()
			}
			synchronized[item.face] = proper

			// A shared edge is traversed in opposite directions by its two
			// incident faces, so neighbors are expected to contain each
			// edge reverted.
			for _, oriented := range proper.OrientedEdges() {
				i, ok := edgeIndex[oriented.Unoriented()]
				if !ok {
					continue
				}
				for _, neighbor := range edgeToFace[i] {
					if treated[neighbor] {
						continue
					}
					treated[neighbor] = true
					treatedCount++
					stack = append(stack, edgeFaceItem{
						expected: oriented.Reverted(),
						face:     neighbor,
					})
				}
			}
		}
	}

	if g.HasNormals() {
		return mesh.FromTriangleFacesWithVerticesAndNormals(synchronized, g.Vertices(), g.Normals())
	}
	return mesh.FromTriangleFacesWithVertices(synchronized, g.Vertices())
}

// RevertFaces flips the winding of every face in the geometry. Unlike
// SynchronizeWinding this is an unconditional whole-mesh flip, the manual
// fix for a mesh that ended up facing inwards.
func RevertFaces(g mesh.Geometry) mesh.Geometry {
	reverted := make([]mesh.TriangleFace, 0, g.TriangleFacesLen())
	for t := range g.TriangleFaces() {
		reverted = append(reverted, t.Reverted())
	}
	if g.HasNormals() {
		return mesh.FromTriangleFacesWithVerticesAndNormals(reverted, g.Vertices(), g.Normals())
	}
	return mesh.FromTriangleFacesWithVertices(reverted, g.Vertices())
}
