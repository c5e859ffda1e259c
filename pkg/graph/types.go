package graph

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// NodeType classifies a node's semantic role in the diagram.
// The set is fixed: the shape synthesizer maintains an exhaustive mapping
// from each type to a drawable primitive, so adding a type here forces a
// matching update there (enforced by shape.TestKindForExhaustive).
type NodeType string

// The fixed node type enumeration.
const (
	TypeStart    NodeType = "start"
	TypeProcess  NodeType = "process"
	TypeDecision NodeType = "decision"
	TypeData     NodeType = "data"
	TypeEnd      NodeType = "end"
	TypeDefault  NodeType = "default"
)

// NodeTypes lists every valid node type in declaration order.
// Exported so exhaustiveness tests in dependent packages can iterate it.
var NodeTypes = []NodeType{TypeStart, TypeProcess, TypeDecision, TypeData, TypeEnd, TypeDefault}

// ValidType reports whether t is a member of the fixed enumeration.
func ValidType(t NodeType) bool {
	switch t {
	case TypeStart, TypeProcess, TypeDecision, TypeData, TypeEnd, TypeDefault:
		return true
	}
	return false
}

// =============================================================================
// Model - Semantic Diagram Graph
// =============================================================================

// Node is a semantic diagram node with no geometry.
// Identity is the ID, which is unique within a Model. Nodes are immutable
// once validated.
type Node struct {
	ID    string         `json:"id" bson:"id"`
	Label string         `json:"label" bson:"label"`
	Type  NodeType       `json:"type" bson:"type"`
	Meta  map[string]any `json:"meta,omitempty" bson:"meta,omitempty"`
}

// Edge is a directed connection between two nodes of the same Model.
// Source and Target must resolve to node IDs in the model; self-loops and
// parallel edges are permitted.
type Edge struct {
	ID     string `json:"id" bson:"id"`
	Source string `json:"source" bson:"source"`
	Target string `json:"target" bson:"target"`
	Label  string `json:"label,omitempty" bson:"label,omitempty"`
}

// Model is the validated node/edge graph for one diagram-generation turn.
// A Model is created fresh per turn, consumed exactly once by the layout
// engine, and discarded; it is never mutated in place.
type Model struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// IsEmpty reports whether the model has no nodes.
func (m Model) IsEmpty() bool { return len(m.Nodes) == 0 }

// NodeIDs returns the set of node IDs keyed for O(1) membership checks.
func (m Model) NodeIDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(m.Nodes))
	for _, n := range m.Nodes {
		ids[n.ID] = struct{}{}
	}
	return ids
}

// Node returns the node with the given ID and true, or a zero Node and false.
func (m Model) Node(id string) (Node, bool) {
	for _, n := range m.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}
