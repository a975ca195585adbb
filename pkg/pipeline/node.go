package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// NodeID is a content-addressed identifier for pipeline nodes.
type NodeID string

// NewNodeID derives an identifier from the node's kind and the source
// expression that created it. Two nodes built from identical expressions at
// different positions are disambiguated by the caller appending a counter.
func NewNodeID(parts ...string) NodeID {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return NodeID(hex.EncodeToString(h.Sum(nil)))
}

// Short returns an abbreviated form suitable for error messages.
func (id NodeID) Short() string {
	if len(id) <= 8 {
		return string(id)
	}
	return string(id[:8])
}

// IsZero reports whether the ID is unset.
func (id NodeID) IsZero() bool {
	return id == ""
}

// NodeKind enumerates the operations a pipeline node can perform.
type NodeKind int

const (
	NodePlane       NodeKind = iota // flat quad source
	NodeCube                        // cube source
	NodeSphere                      // tessellated sphere source
	NodeBox                         // tessellated box source
	NodeRelax                       // laplacian smoothing
	NodeWeld                        // proximity vertex welding
	NodeSyncWinding                 // face winding synchronization
	NodeRevertFaces                 // flip every face
	NodeSeparate                    // split into isolated patches
	NodeJoin                        // concatenate two meshes
	NodeVoxelize                    // voxel cloud round trip
	NodeSubdivide                   // loop subdivision
)

func (k NodeKind) String() string {
	switch k {
	case NodePlane:
		return "plane"
	case NodeCube:
		return "cube"
	case NodeSphere:
		return "sphere"
	case NodeBox:
		return "box"
	case NodeRelax:
		return "relax"
	case NodeWeld:
		return "weld"
	case NodeSyncWinding:
		return "sync-winding"
	case NodeRevertFaces:
		return "revert-faces"
	case NodeSeparate:
		return "separate"
	case NodeJoin:
		return "join"
	case NodeVoxelize:
		return "voxelize"
	case NodeSubdivide:
		return "subdivide"
	default:
		return fmt.Sprintf("NodeKind(%d)", int(k))
	}
}

// IsSource reports whether the kind generates geometry without inputs.
func (k NodeKind) IsSource() bool {
	switch k {
	case NodePlane, NodeCube, NodeSphere, NodeBox:
		return true
	}
	return false
}

// Arity returns the number of child inputs the kind consumes.
func (k NodeKind) Arity() int {
	switch {
	case k.IsSource():
		return 0
	case k == NodeJoin:
		return 2
	default:
		return 1
	}
}

// Node is the fundamental element of the operation pipeline.
type Node struct {
	ID       NodeID
	Kind     NodeKind
	Name     string   // optional user-assigned name
	Source   string   // script expression that created this node
	Children []NodeID // input nodes, evaluated before this one
	Data     NodeData // kind-specific parameters
}

// NodeData is the interface for kind-specific node payloads.
type NodeData interface {
	nodeData() // marker method restricting implementations to this package
}
