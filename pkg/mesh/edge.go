package mesh

import "fmt"

// OrientedEdge is a directed edge between two vertex indices. The direction
// is meaningful: (a,b) and (b,a) are distinct values describing opposite
// traversals of the same geometric edge.
type OrientedEdge struct {
	A, B uint32
}

// NewOrientedEdge creates a directed edge from a to b.
// Panics if a == b, which would describe a degenerate edge.
func NewOrientedEdge(a, b uint32) OrientedEdge {
	if a == b {
		panic(fmt.Sprintf("mesh: oriented edge endpoints must differ, got %d", a))
	}
	return OrientedEdge{A: a, B: b}
}

// Reverted returns the same geometric edge traversed in the opposite
// direction.
func (e OrientedEdge) Reverted() OrientedEdge {
	return OrientedEdge{A: e.B, B: e.A}
}

// ContainsVertex reports whether the edge touches the given vertex index.
func (e OrientedEdge) ContainsVertex(index uint32) bool {
	return e.A == index || e.B == index
}

// Unoriented returns the direction-independent identity of the edge.
func (e OrientedEdge) Unoriented() UnorientedEdge {
	return NewUnorientedEdge(e)
}

// UnorientedEdge is the canonical identity of a geometric edge regardless of
// traversal direction: the edges (a,b) and (b,a) map to the same
// UnorientedEdge value, so it can serve directly as a map key when detecting
// edge sharing between faces.
type UnorientedEdge struct {
	edge OrientedEdge
}

// NewUnorientedEdge wraps an oriented edge, normalizing its direction so
// that equal geometric edges compare equal.
func NewUnorientedEdge(e OrientedEdge) UnorientedEdge {
	if e.B < e.A {
		e = e.Reverted()
	}
	return UnorientedEdge{edge: e}
}

// Edge returns the canonical (low index first) oriented form of the edge.
func (u UnorientedEdge) Edge() OrientedEdge {
	return u.edge
}

// ContainsVertex reports whether the edge touches the given vertex index.
func (u UnorientedEdge) ContainsVertex(index uint32) bool {
	return u.edge.ContainsVertex(index)
}
