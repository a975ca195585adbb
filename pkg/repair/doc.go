// Package repair contains the topological mesh repair and decomposition
// algorithms: winding synchronization, whole-mesh face reverting,
// tolerance-based vertex welding, isolated-patch separation, and mesh
// joining. Every function consumes immutable geometries (plus derived
// adjacency maps where noted) and returns brand-new ones.
package repair
