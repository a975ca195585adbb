package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chazu/trellis/pkg/mesh"
	"github.com/chazu/trellis/pkg/repair"
	"github.com/chazu/trellis/pkg/smoothing"
	"github.com/chazu/trellis/pkg/tessellate"
	"github.com/chazu/trellis/pkg/topology"
	"github.com/chazu/trellis/pkg/voxel"
)

// Evaluation failures that depend on runtime geometry rather than on
// parameters, so validation cannot catch them up front.
var (
	// ErrEmptyVoxelCloud is returned when voxel sampling produces a cloud
	// with no volume, typically because the voxel size exceeds the mesh.
	ErrEmptyVoxelCloud = errors.New("the resulting voxel cloud is empty")

	// ErrVoxelWeldFailed is returned when the boundary mesh rebuilt from a
	// voxel cloud collapses under its own welding tolerance.
	ErrVoxelWeldFailed = errors.New("reconstructing mesh from voxel cloud failed")

	// ErrJoinArity is returned when a join input yields more than one mesh,
	// for example an unresolved separate step.
	ErrJoinArity = errors.New("join inputs must each produce exactly one mesh")
)

// EvalError wraps an evaluation failure with the node it occurred at.
type EvalError struct {
	NodeID NodeID
	Kind   NodeKind
	Err    error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("evaluating %s node %s: %v", e.Kind, e.NodeID.Short(), e.Err)
}

func (e *EvalError) Unwrap() error { return e.Err }

// InvalidPipelineError reports that evaluation was refused because
// validation found blocking errors.
type InvalidPipelineError struct {
	Findings []ValidationError
}

func (e *InvalidPipelineError) Error() string {
	msgs := make([]string, 0, len(e.Findings))
	for _, f := range e.Findings {
		if f.Severity == SeverityError {
			msgs = append(msgs, f.Error())
		}
	}
	return fmt.Sprintf("pipeline is not evaluable: %s", strings.Join(msgs, "; "))
}

// Evaluate validates the pipeline and runs every output node, returning the
// produced meshes in output registration order. A node shared by several
// outputs is evaluated once. Separate steps fan out, so a single output may
// contribute more than one mesh.
func Evaluate(p *Pipeline) ([]mesh.Geometry, error) {
	findings := Validate(p)
	for _, f := range findings {
		if f.Severity == SeverityError {
			return nil, &InvalidPipelineError{Findings: findings}
		}
	}

	memo := make(map[NodeID][]mesh.Geometry)
	var results []mesh.Geometry
	for _, rid := range p.Roots {
		gs, err := evalNode(p, p.Nodes[rid], memo)
		if err != nil {
			return nil, err
		}
		results = append(results, gs...)
	}
	return results, nil
}

func evalNode(p *Pipeline, n *Node, memo map[NodeID][]mesh.Geometry) ([]mesh.Geometry, error) {
	if cached, ok := memo[n.ID]; ok {
		return cached, nil
	}

	inputs := make([][]mesh.Geometry, 0, len(n.Children))
	for _, cid := range n.Children {
		gs, err := evalNode(p, p.Nodes[cid], memo)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, gs)
	}

	out, err := evalKind(n, inputs)
	if err != nil {
		return nil, &EvalError{NodeID: n.ID, Kind: n.Kind, Err: err}
	}

	memo[n.ID] = out
	return out, nil
}

func evalKind(n *Node, inputs [][]mesh.Geometry) ([]mesh.Geometry, error) {
	switch d := n.Data.(type) {
	case PlaneData:
		return []mesh.Geometry{mesh.Plane(d.Center, d.Scale)}, nil

	case CubeData:
		if d.Sharp {
			return []mesh.Geometry{mesh.CubeSharp(d.Center, d.Scale)}, nil
		}
		return []mesh.Geometry{mesh.Cube(d.Center, d.Scale)}, nil

	case SphereData:
		return []mesh.Geometry{tessellate.Sphere(d.Radius, cellsOrDefault(d.Cells))}, nil

	case BoxData:
		return []mesh.Geometry{tessellate.Box(d.Size, cellsOrDefault(d.Cells))}, nil

	case RelaxData:
		iterations := d.Iterations
		if iterations > smoothing.MaxIterations {
			iterations = smoothing.MaxIterations
		}
		return mapInput(inputs[0], func(g mesh.Geometry) mesh.Geometry {
			var fixed []uint32
			if d.AnchorBorders {
				fixed = topology.BorderVertices(g)
			}
			relaxed, _, _ := smoothing.Laplacian(g, topology.VertexToVertex(g),
				iterations, fixed, d.StopWhenStable)
			return relaxed
		}), nil

	case WeldData:
		return mapInput(inputs[0], func(g mesh.Geometry) mesh.Geometry {
			return repair.Weld(g, d.Tolerance)
		}), nil

	case SyncWindingData:
		return mapInput(inputs[0], func(g mesh.Geometry) mesh.Geometry {
			edges := g.UnorientedEdges()
			return repair.SynchronizeWinding(g, edges, topology.EdgeToFace(g, edges))
		}), nil

	case RevertFacesData:
		return mapInput(inputs[0], repair.RevertFaces), nil

	case SeparateData:
		var out []mesh.Geometry
		for _, g := range inputs[0] {
			out = append(out, repair.SeparateIsolated(g)...)
		}
		return out, nil

	case JoinData:
		if len(inputs[0]) != 1 || len(inputs[1]) != 1 {
			return nil, ErrJoinArity
		}
		return []mesh.Geometry{repair.Join(inputs[0][0], inputs[1][0])}, nil

	case SubdivideData:
		iterations := d.Iterations
		if iterations > smoothing.MaxSubdivisionIterations {
			iterations = smoothing.MaxSubdivisionIterations
		}
		return mapInput(inputs[0], func(g mesh.Geometry) mesh.Geometry {
			for i := uint(0); i < iterations; i++ {
				g = smoothing.LoopSubdivision(g, topology.VertexToVertex(g))
			}
			return g
		}), nil

	case VoxelizeData:
		var out []mesh.Geometry
		for _, g := range inputs[0] {
			cloud := voxel.FromMesh(g, d.VoxelSize)
			for i := uint(0); i < d.Growth; i++ {
				cloud = cloud.Grow()
			}
			if d.Fill {
				cloud = cloud.Fill()
			}
			if !cloud.ContainsVoxels() {
				return nil, ErrEmptyVoxelCloud
			}
			rebuilt, ok := cloud.ToMesh()
			if !ok {
				return nil, ErrVoxelWeldFailed
			}
			out = append(out, rebuilt)
		}
		return out, nil
	}

	return nil, fmt.Errorf("unhandled node kind %s", n.Kind)
}

func mapInput(in []mesh.Geometry, f func(mesh.Geometry) mesh.Geometry) []mesh.Geometry {
	out := make([]mesh.Geometry, len(in))
	for i, g := range in {
		out[i] = f(g)
	}
	return out
}

func cellsOrDefault(cells int) int {
	if cells == 0 {
		return tessellate.DefaultCells
	}
	return cells
}
