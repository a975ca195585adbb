// Package mesh defines the immutable polygon-mesh data model for Trellis.
// A Geometry owns flat collections of vertices, optional normals, and
// triangular faces that reference them by index. Every transformation in
// the engine consumes Geometry values and produces new ones; nothing is
// mutated in place.
package mesh
