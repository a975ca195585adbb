package smoothing

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/trellis/pkg/mesh"
	"github.com/chazu/trellis/pkg/topology"
)

// MaxSubdivisionIterations is the upper bound operators clamp subdivision
// passes to. Each pass quadruples the face count.
const MaxSubdivisionIterations = 3

// LoopSubdivision performs one pass of Loop subdivision: every triangle is
// split into four, with one new vertex per edge. New edge vertices are
// weighted toward the edge endpoints with a contribution from the opposite
// vertices of the two adjacent faces; original vertices are repositioned
// toward the average of their neighbors. Border edges and vertices use the
// boundary rules, so open borders stay on their original curve.
//
// The result carries no normals; subdivision invalidates any normals the
// input had. Callers wanting smooth shading should weld afterwards.
func LoopSubdivision(g mesh.Geometry, vertexToVertex topology.AdjacencyMap) mesh.Geometry {
	old := g.Vertices()

	// Face list per unoriented edge, and the opposite vertex of each
	// edge-face incidence.
	type incidence struct {
		opposite []uint32
	}
	edgeFaces := make(map[mesh.UnorientedEdge]*incidence)
	for t := range g.TriangleFaces() {
		for _, e := range t.UnorientedEdges() {
			inc := edgeFaces[e]
			if inc == nil {
				inc = &incidence{}
				edgeFaces[e] = inc
			}
			inc.opposite = append(inc.opposite, oppositeVertex(t, e))
		}
	}

	// Border vertices keep to the boundary rule: they only see their
	// neighbors along border edges.
	borderNeighbors := make(map[uint32][]uint32)
	for e, inc := range edgeFaces {
		if len(inc.opposite) == 1 {
			a, b := e.Edge().A, e.Edge().B
			borderNeighbors[a] = append(borderNeighbors[a], b)
			borderNeighbors[b] = append(borderNeighbors[b], a)
		}
	}

	// Repositioned original vertices first, new edge midpoints appended
	// after, so face rewriting only needs the midpoint index map.
	vertices := make([]v3.Vec, len(old), len(old)+len(edgeFaces))
	for i := range old {
		vertices[i] = repositionVertex(uint32(i), old, vertexToVertex, borderNeighbors)
	}

	// Midpoints are appended in first-seen face order so the output is
	// deterministic.
	midpoint := make(map[mesh.UnorientedEdge]uint32, len(edgeFaces))
	for _, e := range g.UnorientedEdges() {
		if _, done := midpoint[e]; done {
			continue
		}
		inc := edgeFaces[e]
		a := old[e.Edge().A]
		b := old[e.Edge().B]

		var p v3.Vec
		if len(inc.opposite) == 2 {
			c := old[inc.opposite[0]]
			d := old[inc.opposite[1]]
			p = a.Add(b).MulScalar(3.0 / 8.0).Add(c.Add(d).MulScalar(1.0 / 8.0))
		} else {
			p = a.Add(b).MulScalar(0.5)
		}

		midpoint[e] = uint32(len(vertices))
		vertices = append(vertices, p)
	}

	faces := make([]mesh.TriangleFace, 0, g.TriangleFacesLen()*4)
	for t := range g.TriangleFaces() {
		v0, v1, v2 := t.Vertices[0], t.Vertices[1], t.Vertices[2]
		fe := t.UnorientedEdges()
		m01 := midpoint[fe[0]]
		m12 := midpoint[fe[1]]
		m20 := midpoint[fe[2]]

		faces = append(faces,
			mesh.NewTriangleFace(v0, m01, m20),
			mesh.NewTriangleFace(v1, m12, m01),
			mesh.NewTriangleFace(v2, m20, m12),
			mesh.NewTriangleFace(m01, m12, m20),
		)
	}

	return mesh.FromTriangleFacesWithVertices(faces, vertices)
}

// oppositeVertex returns the face vertex not belonging to the edge.
func oppositeVertex(t mesh.TriangleFace, e mesh.UnorientedEdge) uint32 {
	a, b := e.Edge().A, e.Edge().B
	for _, v := range t.Vertices {
		if v != a && v != b {
			return v
		}
	}
	// Degenerate faces are rejected by the face constructor.
	panic("smoothing: edge does not belong to face")
}

// repositionVertex applies the Loop vertex rule: the boundary rule for
// border vertices, the beta-weighted neighborhood average for the rest.
func repositionVertex(
	i uint32,
	old []v3.Vec,
	vertexToVertex topology.AdjacencyMap,
	borderNeighbors map[uint32][]uint32,
) v3.Vec {
	if border := borderNeighbors[i]; len(border) > 0 {
		if len(border) != 2 {
			// Non-manifold boundary corner, leave it where it is.
			return old[i]
		}
		return old[i].MulScalar(3.0 / 4.0).
			Add(old[border[0]].Add(old[border[1]]).MulScalar(1.0 / 8.0))
	}

	neighbors := vertexToVertex[i]
	n := len(neighbors)
	if n < 3 {
		return old[i]
	}

	center := 3.0/8.0 + math.Cos(2.0*math.Pi/float64(n))/4.0
	beta := (5.0/8.0 - center*center) / float64(n)

	var sum v3.Vec
	for _, neighbor := range neighbors {
		sum = sum.Add(old[neighbor])
	}
	return old[i].MulScalar(1.0 - float64(n)*beta).Add(sum.MulScalar(beta))
}
