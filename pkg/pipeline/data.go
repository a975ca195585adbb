package pipeline

import v3 "github.com/deadsy/sdfx/vec/v3"

// ---------------------------------------------------------------------------
// Sources
// ---------------------------------------------------------------------------

// PlaneData represents a unit quad placed in space.
type PlaneData struct {
	Center v3.Vec
	Scale  float64
}

func (PlaneData) nodeData() {}

// CubeData represents a cube with either smooth shared normals or sharp
// per-face normals.
type CubeData struct {
	Center v3.Vec
	Scale  float64
	Sharp  bool
}

func (CubeData) nodeData() {}

// SphereData represents a sphere tessellated by marching cubes.
type SphereData struct {
	Radius float64
	Cells  int // marching cubes resolution, 0 = default
}

func (SphereData) nodeData() {}

// BoxData represents an axis-aligned box tessellated by marching cubes.
type BoxData struct {
	Size  v3.Vec
	Cells int
}

func (BoxData) nodeData() {}

// ---------------------------------------------------------------------------
// Operations
// ---------------------------------------------------------------------------

// RelaxData holds laplacian smoothing parameters.
type RelaxData struct {
	Iterations     uint
	AnchorBorders  bool // keep border vertices fixed
	StopWhenStable bool
}

func (RelaxData) nodeData() {}

// WeldData holds the proximity tolerance for vertex welding.
type WeldData struct {
	Tolerance float64
}

func (WeldData) nodeData() {}

// SyncWindingData marks a winding synchronization step. No parameters.
type SyncWindingData struct{}

func (SyncWindingData) nodeData() {}

// RevertFacesData marks a face flip step. No parameters.
type RevertFacesData struct{}

func (RevertFacesData) nodeData() {}

// SeparateData marks a split into isolated patches. No parameters.
type SeparateData struct{}

func (SeparateData) nodeData() {}

// JoinData marks a concatenation of exactly two child meshes.
type JoinData struct{}

func (JoinData) nodeData() {}

// VoxelizeData holds parameters for the voxel cloud round trip: sample the
// mesh onto a voxel grid, optionally grow and fill the cloud, then rebuild
// a welded boundary mesh from it.
type VoxelizeData struct {
	VoxelSize v3.Vec // dimensions of a single voxel, all positive
	Growth    uint   // dilation passes before meshing
	Fill      bool   // fill enclosed volumes
}

func (VoxelizeData) nodeData() {}

// SubdivideData holds the loop subdivision pass count. Every pass quadruples
// the face count, so the evaluator clamps to a small maximum.
type SubdivideData struct {
	Iterations uint
}

func (SubdivideData) nodeData() {}
