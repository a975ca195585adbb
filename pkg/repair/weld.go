package repair

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/trellis/pkg/mesh"
)

// gridCell is a vertex position quantized to a tolerance-sized grid.
type gridCell struct {
	x, y, z int64
}

func quantize(v v3.Vec, tolerance float64) gridCell {
	return gridCell{
		x: int64(math.Round(v.X / tolerance)),
		y: int64(math.Round(v.Y / tolerance)),
		z: int64(math.Round(v.Z / tolerance)),
	}
}

// Weld merges vertices closer than the given Euclidean tolerance into one
// and reuses the merged vertices in the connected faces. Welding connects
// faces that were only visually adjacent, often producing a watertight
// mesh, and shrinks meshes whose every face referenced a private copy of
// its corner vertices.
//
// Vertices are clustered by quantizing their positions to a tolerance-sized
// grid. Two vertices within tolerance of each other that quantize to
// adjacent cells do not merge; that boundary sensitivity is an accepted
// property of grid clustering, not an oversight. Each cluster becomes one
// vertex at the mean of its members. Faces are rewritten through the
// old-to-new index map and dropped when the merge left them without three
// distinct vertices.
//
// When the input carries normals, each new vertex averages the set of
// distinct normals its constituent old vertices were referenced with across
// all faces, and the result references normals per-vertex.
func Weld(g mesh.Geometry, tolerance float64) mesh.Geometry {
	// Cluster old vertex indices by grid cell, keeping clusters in
	// first-seen order so the output is deterministic.
	cellCluster := make(map[gridCell]uint32)
	var clusters [][]uint32
	for i, v := range g.Vertices() {
		cell := quantize(v, tolerance)
		ci, ok := cellCluster[cell]
		if !ok {
			ci = uint32(len(clusters))
			cellCluster[cell] = ci
			clusters = append(clusters, nil)
		}
		clusters[ci] = append(clusters[ci], uint32(i))
	}

	oldToNew := make(map[uint32]uint32, len(g.Vertices()))
	newVertices := make([]v3.Vec, len(clusters))
	for ci, members := range clusters {
		var sum v3.Vec
		for _, old := range members {
			oldToNew[old] = uint32(ci)
			sum = sum.Add(g.Vertices()[old])
		}
		newVertices[ci] = sum.MulScalar(1.0 / float64(len(members)))
	}

	hasNormals := g.HasNormals()

	// Rewrite faces, dropping the ones degenerated by merging.
	var newFaces []mesh.TriangleFace
	for t := range g.TriangleFaces() {
		v0 := oldToNew[t.Vertices[0]]
		v1 := oldToNew[t.Vertices[1]]
		v2 := oldToNew[t.Vertices[2]]
		if v0 == v1 || v0 == v2 || v1 == v2 {
			continue
		}
		if hasNormals {
			newFaces = append(newFaces, mesh.NewTriangleFaceWithNormals(v0, v1, v2))
		} else {
			newFaces = append(newFaces, mesh.NewTriangleFace(v0, v1, v2))
		}
	}

	if !hasNormals {
		return mesh.FromTriangleFacesWithVertices(newFaces, newVertices)
	}

	// Faces may reference vertices and normals independently, so the
	// normals to reconcile per new vertex are collected from every face
	// corner that referenced one of its constituent old vertices.
	oldVertexNormals := make(map[uint32][]uint32)
	for t := range g.TriangleFaces() {
		for corner := 0; corner < 3; corner++ {
			vi := t.Vertices[corner]
			ni := t.Normals[corner]
			known := false
			for _, existing := range oldVertexNormals[vi] {
				if existing == ni {
					known = true
					break
				}
			}
			if !known {
				oldVertexNormals[vi] = append(oldVertexNormals[vi], ni)
			}
		}
	}

	newNormals := make([]v3.Vec, len(newVertices))
	for ci, members := range clusters {
		var normalIndices []uint32
		for _, old := range members {
			normalIndices = append(normalIndices, oldVertexNormals[old]...)
		}
		var sum v3.Vec
		for _, ni := range normalIndices {
			sum = sum.Add(g.Normals()[ni])
		}
		if len(normalIndices) > 0 {
			newNormals[ci] = sum.MulScalar(1.0 / float64(len(normalIndices)))
		}
	}

	return mesh.FromTriangleFacesWithVerticesAndNormals(newFaces, newVertices, newNormals)
}
