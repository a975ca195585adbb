// Package topology derives adjacency information from a mesh geometry.
// Every map is rebuilt from scratch from a specific Geometry snapshot;
// there is no incremental maintenance, because mesh operations add, remove
// and renumber faces and vertices wholesale. Callers must recompute after
// any geometry-altering operation.
package topology

import (
	"github.com/chazu/trellis/pkg/mesh"
)

// AdjacencyMap maps an index to the small, order-irrelevant set of its
// neighbor indices. Fan-out per vertex, edge or face is typically no more
// than eight, so neighbors are kept in a short dedup'd slice.
type AdjacencyMap map[uint32][]uint32

func appendUnique(neighbors []uint32, index uint32) []uint32 {
	for _, n := range neighbors {
		if n == index {
			return neighbors
		}
	}
	return append(neighbors, index)
}

// VertexToVertex maps each vertex index to the vertex indices connected to
// it by at least one face edge.
func VertexToVertex(g mesh.Geometry) AdjacencyMap {
	adjacency := make(AdjacencyMap)
	for t := range g.TriangleFaces() {
		for _, e := range t.OrientedEdges() {
			adjacency[e.A] = appendUnique(adjacency[e.A], e.B)
			adjacency[e.B] = appendUnique(adjacency[e.B], e.A)
		}
	}
	return adjacency
}

// FaceToFace maps each face index to the face indices sharing at least one
// undirected edge with it.
func FaceToFace(g mesh.Geometry) AdjacencyMap {
	edgeFaces := make(map[mesh.UnorientedEdge][]uint32)
	faceIndex := uint32(0)
	for t := range g.TriangleFaces() {
		for _, e := range t.UnorientedEdges() {
			edgeFaces[e] = appendUnique(edgeFaces[e], faceIndex)
		}
		faceIndex++
	}

	adjacency := make(AdjacencyMap, faceIndex)
	faceIndex = 0
	for t := range g.TriangleFaces() {
		neighbors := adjacency[faceIndex]
		for _, e := range t.UnorientedEdges() {
			for _, other := range edgeFaces[e] {
				if other != faceIndex {
					neighbors = appendUnique(neighbors, other)
				}
			}
		}
		adjacency[faceIndex] = neighbors
		faceIndex++
	}
	return adjacency
}

// EdgeToFace maps each edge's position in the caller-supplied edge list to
// the face indices containing that edge in either orientation.
func EdgeToFace(g mesh.Geometry, edges []mesh.UnorientedEdge) AdjacencyMap {
	edgeIndex := make(map[mesh.UnorientedEdge]uint32, len(edges))
	for i, e := range edges {
		if _, seen := edgeIndex[e]; !seen {
			edgeIndex[e] = uint32(i)
		}
	}

	adjacency := make(AdjacencyMap, len(edges))
	faceIndex := uint32(0)
	for t := range g.TriangleFaces() {
		for _, e := range t.UnorientedEdges() {
			if i, ok := edgeIndex[e]; ok {
				adjacency[i] = appendUnique(adjacency[i], faceIndex)
			}
		}
		faceIndex++
	}
	return adjacency
}

// EdgeSharing counts, for each unoriented edge, how many faces reference it:
// 1 marks a border edge, 2 an interior manifold edge, more a non-manifold
// fan.
func EdgeSharing(g mesh.Geometry) map[mesh.UnorientedEdge]int {
	sharing := make(map[mesh.UnorientedEdge]int)
	for t := range g.TriangleFaces() {
		for _, e := range t.UnorientedEdges() {
			sharing[e]++
		}
	}
	return sharing
}

// BorderVertices returns the indices of vertices lying on at least one
// border edge, in ascending order. These are the natural anchor candidates
// for relaxation.
func BorderVertices(g mesh.Geometry) []uint32 {
	onBorder := make(map[uint32]bool)
	for e, count := range EdgeSharing(g) {
		if count == 1 {
			onBorder[e.Edge().A] = true
			onBorder[e.Edge().B] = true
		}
	}
	border := make([]uint32, 0, len(onBorder))
	for i := uint32(0); i < uint32(len(g.Vertices())); i++ {
		if onBorder[i] {
			border = append(border, i)
		}
	}
	return border
}
