package pipeline

import (
	"fmt"

	"github.com/chazu/trellis/pkg/smoothing"
)

// ValidationSeverity indicates whether a validation finding blocks evaluation
// or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks evaluation
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	NodeID   NodeID             // which node has the problem (zero if pipeline-level)
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	if e.NodeID.IsZero() {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] node %s: %s", e.Severity, e.NodeID.Short(), e.Message)
}

// Validate runs all structural and parameter checks on the pipeline and
// returns a slice of validation findings. No findings of SeverityError means
// the pipeline is evaluable. This function is read-only and never mutates
// the pipeline.
func Validate(p *Pipeline) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateDAG(p)...)
	errs = append(errs, validateReferences(p)...)
	errs = append(errs, validateNames(p)...)
	errs = append(errs, validateRoots(p)...)
	errs = append(errs, validateArity(p)...)
	errs = append(errs, validateParams(p)...)
	return errs
}

// validateDAG checks for cycles using DFS with 3-color marking.
// White (0) = unvisited, gray (1) = in current DFS path, black (2) = fully
// explored. If we encounter a gray node during traversal, we have found a
// cycle.
func validateDAG(p *Pipeline) []ValidationError {
	const (
		white = iota
		gray
		black
	)

	color := make(map[NodeID]int) // default zero = white
	var errs []ValidationError

	var visit func(id NodeID) bool // returns true if cycle found
	visit = func(id NodeID) bool {
		switch color[id] {
		case black:
			return false
		case gray:
			errs = append(errs, ValidationError{
				NodeID:   id,
				Message:  fmt.Sprintf("cycle detected: node %s is part of a cycle", id.Short()),
				Severity: SeverityError,
			})
			return true
		}

		color[id] = gray

		node, ok := p.Nodes[id]
		if !ok {
			// Dangling reference; handled by validateReferences.
			color[id] = black
			return false
		}

		for _, childID := range node.Children {
			if visit(childID) {
				return true
			}
		}

		color[id] = black
		return false
	}

	// Start DFS from every node to catch disconnected components.
	for id := range p.Nodes {
		if color[id] == white {
			if visit(id) {
				// One cycle error is sufficient; stop early.
				break
			}
		}
	}

	return errs
}

// validateReferences checks that every child reference points to a node that
// actually exists in p.Nodes.
func validateReferences(p *Pipeline) []ValidationError {
	var errs []ValidationError

	for _, node := range p.Nodes {
		for _, childID := range node.Children {
			if _, ok := p.Nodes[childID]; !ok {
				errs = append(errs, ValidationError{
					NodeID:   node.ID,
					Message:  fmt.Sprintf("child reference %s does not exist", childID.Short()),
					Severity: SeverityError,
				})
			}
		}
	}

	return errs
}

// validateNames checks that the NameIndex is injective (no two nodes share
// the same name) and that every entry in NameIndex points to an existing node.
func validateNames(p *Pipeline) []ValidationError {
	var errs []ValidationError

	for name, id := range p.NameIndex {
		if _, ok := p.Nodes[id]; !ok {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("name index entry %q references non-existent node %s", name, id.Short()),
				Severity: SeverityError,
			})
		}
	}

	nameToNodes := make(map[string][]NodeID)
	for id, node := range p.Nodes {
		if node.Name != "" {
			nameToNodes[node.Name] = append(nameToNodes[node.Name], id)
		}
	}
	for name, ids := range nameToNodes {
		if len(ids) > 1 {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("duplicate name %q assigned to %d nodes", name, len(ids)),
				Severity: SeverityError,
			})
		}
	}

	return errs
}

// validateRoots checks that every root ID references an existing node and
// warns about orphan nodes (nodes unreachable from any root).
func validateRoots(p *Pipeline) []ValidationError {
	var errs []ValidationError

	for _, rid := range p.Roots {
		if _, ok := p.Nodes[rid]; !ok {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("output reference %s does not exist", rid.Short()),
				Severity: SeverityError,
			})
		}
	}

	if len(p.Nodes) == 0 {
		return errs
	}

	// Orphan detection: BFS from all roots through Children edges.
	reachable := make(map[NodeID]bool)
	queue := make([]NodeID, 0, len(p.Roots))
	for _, rid := range p.Roots {
		if _, ok := p.Nodes[rid]; ok && !reachable[rid] {
			reachable[rid] = true
			queue = append(queue, rid)
		}
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		node := p.Nodes[current]
		if node == nil {
			continue
		}
		for _, childID := range node.Children {
			if !reachable[childID] {
				reachable[childID] = true
				queue = append(queue, childID)
			}
		}
	}

	for id, node := range p.Nodes {
		if !reachable[id] {
			name := node.Name
			if name == "" {
				name = id.Short()
			}
			errs = append(errs, ValidationError{
				NodeID:   id,
				Message:  fmt.Sprintf("node %q is not reachable from any output (orphan)", name),
				Severity: SeverityWarning,
			})
		}
	}

	return errs
}

// validateArity checks that every node has the child count its kind consumes
// and carries the payload type its kind expects.
func validateArity(p *Pipeline) []ValidationError {
	var errs []ValidationError

	for _, node := range p.Nodes {
		if want, got := node.Kind.Arity(), len(node.Children); want != got {
			errs = append(errs, ValidationError{
				NodeID:   node.ID,
				Message:  fmt.Sprintf("%s takes %d input(s), has %d", node.Kind, want, got),
				Severity: SeverityError,
			})
		}

		if !dataMatchesKind(node.Kind, node.Data) {
			errs = append(errs, ValidationError{
				NodeID:   node.ID,
				Message:  fmt.Sprintf("%s node carries %T payload", node.Kind, node.Data),
				Severity: SeverityError,
			})
		}
	}

	return errs
}

func dataMatchesKind(k NodeKind, d NodeData) bool {
	switch k {
	case NodePlane:
		_, ok := d.(PlaneData)
		return ok
	case NodeCube:
		_, ok := d.(CubeData)
		return ok
	case NodeSphere:
		_, ok := d.(SphereData)
		return ok
	case NodeBox:
		_, ok := d.(BoxData)
		return ok
	case NodeRelax:
		_, ok := d.(RelaxData)
		return ok
	case NodeWeld:
		_, ok := d.(WeldData)
		return ok
	case NodeSyncWinding:
		_, ok := d.(SyncWindingData)
		return ok
	case NodeRevertFaces:
		_, ok := d.(RevertFacesData)
		return ok
	case NodeSeparate:
		_, ok := d.(SeparateData)
		return ok
	case NodeJoin:
		_, ok := d.(JoinData)
		return ok
	case NodeVoxelize:
		_, ok := d.(VoxelizeData)
		return ok
	case NodeSubdivide:
		_, ok := d.(SubdivideData)
		return ok
	}
	return false
}

// validateParams checks kind-specific parameter ranges.
func validateParams(p *Pipeline) []ValidationError {
	var errs []ValidationError

	for _, node := range p.Nodes {
		switch d := node.Data.(type) {
		case PlaneData:
			if d.Scale <= 0 {
				errs = append(errs, paramErr(node, "scale must be positive"))
			}
		case CubeData:
			if d.Scale <= 0 {
				errs = append(errs, paramErr(node, "scale must be positive"))
			}
		case SphereData:
			if d.Radius <= 0 {
				errs = append(errs, paramErr(node, "radius must be positive"))
			}
			if d.Cells < 0 {
				errs = append(errs, paramErr(node, "cells must not be negative"))
			}
		case BoxData:
			if d.Size.X <= 0 || d.Size.Y <= 0 || d.Size.Z <= 0 {
				errs = append(errs, paramErr(node, "size must be positive in every axis"))
			}
			if d.Cells < 0 {
				errs = append(errs, paramErr(node, "cells must not be negative"))
			}
		case RelaxData:
			if d.Iterations > smoothing.MaxIterations {
				errs = append(errs, ValidationError{
					NodeID: node.ID,
					Message: fmt.Sprintf("iterations %d exceeds maximum %d and will be clamped",
						d.Iterations, smoothing.MaxIterations),
					Severity: SeverityWarning,
				})
			}
		case WeldData:
			if d.Tolerance <= 0 {
				errs = append(errs, paramErr(node, "tolerance must be positive"))
			}
		case VoxelizeData:
			if d.VoxelSize.X <= 0 || d.VoxelSize.Y <= 0 || d.VoxelSize.Z <= 0 {
				errs = append(errs, paramErr(node, "voxel size must be positive in every axis"))
			}
		case SubdivideData:
			if d.Iterations > smoothing.MaxSubdivisionIterations {
				errs = append(errs, ValidationError{
					NodeID: node.ID,
					Message: fmt.Sprintf("iterations %d exceeds maximum %d and will be clamped",
						d.Iterations, smoothing.MaxSubdivisionIterations),
					Severity: SeverityWarning,
				})
			}
		}
	}

	return errs
}

func paramErr(n *Node, msg string) ValidationError {
	return ValidationError{
		NodeID:   n.ID,
		Message:  fmt.Sprintf("%s: %s", n.Kind, msg),
		Severity: SeverityError,
	}
}
