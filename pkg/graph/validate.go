package graph

import (
	"encoding/json"
	"fmt"

	"github.com/davidblanc347/parodesign/pkg/errors"
)

// Validate parses raw JSON bytes and validates them into a trusted Model.
//
// Parsing and validation are two strictly separate steps: a payload that is
// not syntactically valid JSON fails with ErrCodeInvalidPayload before any
// semantic check runs. Validation itself is all-or-nothing - the first
// violation rejects the whole model, with no partial repair.
//
// Validate is pure: it has no side effects and identical input always yields
// identical output.
func Validate(raw []byte) (Model, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return Model{}, errors.Wrap(errors.ErrCodeInvalidPayload, err, "payload is not valid JSON")
	}
	return ValidateValue(v)
}

// ValidateValue validates an already-decoded JSON value (as produced by
// json.Unmarshal into any) into a trusted Model.
//
// Rejections, each with its own error code:
//   - top-level value is not an object
//   - nodes or edges is missing or not an array
//   - a node is missing id, label, or type, or its type is outside the
//     fixed enumeration, or a node id repeats
//   - an edge is missing id, source, or target
//   - an edge references a source/target id not present among the nodes
//
// Self-loops and parallel edges are structurally permitted.
func ValidateValue(v any) (Model, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return Model{}, errors.New(errors.ErrCodeInvalidGraph, "top-level value must be an object, got %T", v)
	}

	rawNodes, ok := obj["nodes"].([]any)
	if !ok {
		return Model{}, errors.New(errors.ErrCodeInvalidGraph, "nodes must be an array")
	}
	rawEdges, ok := obj["edges"].([]any)
	if !ok {
		return Model{}, errors.New(errors.ErrCodeInvalidGraph, "edges must be an array")
	}

	m := Model{
		Nodes: make([]Node, 0, len(rawNodes)),
		Edges: make([]Edge, 0, len(rawEdges)),
	}

	seen := make(map[string]struct{}, len(rawNodes))
	for i, rn := range rawNodes {
		n, err := validateNode(i, rn)
		if err != nil {
			return Model{}, err
		}
		if _, dup := seen[n.ID]; dup {
			return Model{}, errors.New(errors.ErrCodeInvalidNode, "duplicate node id %q", n.ID)
		}
		seen[n.ID] = struct{}{}
		m.Nodes = append(m.Nodes, n)
	}

	for i, re := range rawEdges {
		e, err := validateEdge(i, re, seen)
		if err != nil {
			return Model{}, err
		}
		m.Edges = append(m.Edges, e)
	}

	return m, nil
}

func validateNode(i int, v any) (Node, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return Node{}, errors.New(errors.ErrCodeInvalidNode, "node %d must be an object, got %T", i, v)
	}

	id, ok := stringField(obj, "id")
	if !ok {
		return Node{}, errors.New(errors.ErrCodeInvalidNode, "node %d is missing id", i)
	}
	label, ok := stringField(obj, "label")
	if !ok {
		return Node{}, errors.New(errors.ErrCodeInvalidNode, "node %q is missing label", id)
	}
	typ, ok := stringField(obj, "type")
	if !ok {
		return Node{}, errors.New(errors.ErrCodeInvalidNode, "node %q is missing type", id)
	}
	if !ValidType(NodeType(typ)) {
		return Node{}, errors.New(errors.ErrCodeInvalidNodeType, "node %q has unknown type %q", id, typ)
	}

	n := Node{ID: id, Label: label, Type: NodeType(typ)}
	if meta, ok := obj["meta"].(map[string]any); ok && len(meta) > 0 {
		n.Meta = meta
	}
	return n, nil
}

func validateEdge(i int, v any, nodeIDs map[string]struct{}) (Edge, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return Edge{}, errors.New(errors.ErrCodeInvalidEdge, "edge %d must be an object, got %T", i, v)
	}

	id, ok := stringField(obj, "id")
	if !ok {
		return Edge{}, errors.New(errors.ErrCodeInvalidEdge, "edge %d is missing id", i)
	}
	source, ok := stringField(obj, "source")
	if !ok {
		return Edge{}, errors.New(errors.ErrCodeInvalidEdge, "edge %q is missing source", id)
	}
	target, ok := stringField(obj, "target")
	if !ok {
		return Edge{}, errors.New(errors.ErrCodeInvalidEdge, "edge %q is missing target", id)
	}

	if _, ok := nodeIDs[source]; !ok {
		return Edge{}, errors.New(errors.ErrCodeDanglingEdge, "edge %q source %q does not match any node", id, source)
	}
	if _, ok := nodeIDs[target]; !ok {
		return Edge{}, errors.New(errors.ErrCodeDanglingEdge, "edge %q target %q does not match any node", id, target)
	}

	e := Edge{ID: id, Source: source, Target: target}
	if label, ok := stringField(obj, "label"); ok {
		e.Label = label
	}
	return e, nil
}

// stringField extracts a non-empty string field from a decoded JSON object.
func stringField(obj map[string]any, key string) (string, bool) {
	s, ok := obj[key].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// MustValidate is a test helper that panics on rejection.
// It keeps fixture construction in _test files terse; production code must
// use Validate.
func MustValidate(raw []byte) Model {
	m, err := Validate(raw)
	if err != nil {
		panic(fmt.Sprintf("graph.MustValidate: %v", err))
	}
	return m
}
