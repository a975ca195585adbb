// Package smoothing implements iterative vertex-averaging relaxation.
package smoothing

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/trellis/pkg/mesh"
	"github.com/chazu/trellis/pkg/topology"
)

// stabilityTolerance bounds the per-axis movement a vertex may make in an
// iteration that still counts as stable.
const stabilityTolerance = 1e-6

// MaxIterations is the upper bound operators clamp the iteration count to.
const MaxIterations = 255

// Laplacian relaxes the angles between mesh edges by replacing each vertex
// position with the arithmetic mean of its neighbors' previous-iteration
// positions, optionally keeping the vertices listed in fixed anchored. The
// update within one iteration is synchronous: every vertex reads the same
// snapshot. Faces and normals pass through unchanged, so the topology of
// the result is identical to the input.
//
// An iteration is stable when every updated vertex lands within floating
// point tolerance of its previous position. With stopWhenStable set the
// loop terminates at the first stable iteration. Without anchors stability
// is defined to be false from initialization: convergence criteria only
// have meaning when anchors constrain the relaxation.
//
// Returns the relaxed geometry, the number of iterations actually executed,
// and whether the final iteration was stable. Zero iterations return the
// input unchanged with stability false.
func Laplacian(
	g mesh.Geometry,
	vertexToVertex topology.AdjacencyMap,
	iterations uint,
	fixed []uint32,
	stopWhenStable bool,
) (mesh.Geometry, uint, bool) {
	if iterations == 0 {
		return g, 0, false
	}

	isFixed := make(map[uint32]bool, len(fixed))
	for _, i := range fixed {
		isFixed[i] = true
	}

	vertices := make([]v3.Vec, len(g.Vertices()))
	copy(vertices, g.Vertices())
	snapshot := make([]v3.Vec, len(vertices))

	executed := uint(0)
	stable := len(fixed) > 0
	for executed < iterations {
		stable = len(fixed) > 0
		copy(snapshot, vertices)

		for vertexIndex, neighbors := range vertexToVertex {
			if isFixed[vertexIndex] || len(neighbors) == 0 {
				continue
			}
			var sum v3.Vec
			for _, neighborIndex := range neighbors {
				sum = sum.Add(snapshot[neighborIndex])
			}
			average := sum.MulScalar(1.0 / float64(len(neighbors)))
			stable = stable && mesh.Near(average, vertices[vertexIndex], stabilityTolerance)
			vertices[vertexIndex] = average
		}
		executed++

		if stopWhenStable && stable {
			break
		}
	}

	if g.HasNormals() {
		return mesh.FromFacesWithVerticesAndNormals(g.Faces(), vertices, g.Normals()), executed, stable
	}
	return mesh.FromFacesWithVertices(g.Faces(), vertices), executed, stable
}
