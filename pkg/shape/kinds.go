package shape

import "github.com/davidblanc347/parodesign/pkg/graph"

// Kind is the drawable primitive category selected for a node.
type Kind string

// The drawable primitive kinds.
const (
	KindRectangle Kind = "rectangle"
	KindDiamond   Kind = "diamond"
	KindEllipse   Kind = "ellipse"
	KindTrapezoid Kind = "trapezoid"
)

// KindFor maps a node's semantic type to its drawable primitive.
// The mapping covers the whole node type enumeration; the rectangle
// fallback exists only as defense in depth for values that bypassed
// validation, mirroring the dangling-edge policy.
func KindFor(t graph.NodeType) Kind {
	switch t {
	case graph.TypeDecision:
		return KindDiamond
	case graph.TypeStart, graph.TypeEnd:
		return KindEllipse
	case graph.TypeData:
		return KindTrapezoid
	case graph.TypeProcess, graph.TypeDefault:
		return KindRectangle
	}
	return KindRectangle
}

// FillFor returns the optional fill color hint for a node type.
// The drawing surface may ignore it.
func FillFor(t graph.NodeType) string {
	switch t {
	case graph.TypeStart:
		return "#d4edda"
	case graph.TypeEnd:
		return "#f8d7da"
	case graph.TypeDecision:
		return "#fff3cd"
	case graph.TypeData:
		return "#d1ecf1"
	}
	return "#ffffff"
}
