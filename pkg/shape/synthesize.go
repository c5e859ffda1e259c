package shape

import (
	"github.com/google/uuid"

	"github.com/davidblanc347/parodesign/pkg/layout"
)

// parallelStep is the anchor offset applied to each additional parallel
// edge between the same ordered node pair, so coincident connectors fan
// out along the anchor face.
const parallelStep = 12.0

// loopInset is the half-distance between the two anchor points of a
// self-loop on its node's downstream face, as a fraction of the face span.
const loopInset = 0.25

// Instruction creates one shape on the drawing surface.
type Instruction struct {
	ShapeID string  `json:"shape_id" bson:"shape_id"`
	Kind    Kind    `json:"kind" bson:"kind"`
	X       float64 `json:"x" bson:"x"`
	Y       float64 `json:"y" bson:"y"`
	Width   float64 `json:"width" bson:"width"`
	Height  float64 `json:"height" bson:"height"`
	Label   string  `json:"label" bson:"label"`
	Fill    string  `json:"fill,omitempty" bson:"fill,omitempty"`
}

// Connector creates one line/arrow bound to two shapes.
type Connector struct {
	ConnectorID string  `json:"connector_id" bson:"connector_id"`
	FromShape   string  `json:"from_shape" bson:"from_shape"`
	ToShape     string  `json:"to_shape" bson:"to_shape"`
	FromX       float64 `json:"from_x" bson:"from_x"`
	FromY       float64 `json:"from_y" bson:"from_y"`
	ToX         float64 `json:"to_x" bson:"to_x"`
	ToY         float64 `json:"to_y" bson:"to_y"`
	Label       string  `json:"label,omitempty" bson:"label,omitempty"`
}

// Batch is an atomic set of creation instructions for one diagram.
// The drawing surface applies the whole batch or none of it.
type Batch struct {
	Shapes     []Instruction `json:"shapes" bson:"shapes"`
	Connectors []Connector   `json:"connectors" bson:"connectors"`

	// IDMap resolves semantic node ids to drawable shape ids.
	IDMap map[string]string `json:"id_map" bson:"id_map"`

	// SkippedEdges lists edge ids that could not be resolved to two
	// shapes and were dropped. Empty for any validated model.
	SkippedEdges []string `json:"skipped_edges,omitempty" bson:"skipped_edges,omitempty"`
}

// Synthesize materializes a layout result into a creation batch.
//
// dir must be the direction the layout was computed with; it decides which
// face of each box the connectors anchor to (downstream face of the source,
// upstream face of the target - bottom-center to top-center for
// top-to-bottom layouts).
func Synthesize(res layout.Result, dir layout.Direction) Batch {
	batch := Batch{
		Shapes:     make([]Instruction, 0, len(res.Nodes)),
		Connectors: make([]Connector, 0, len(res.Edges)),
		IDMap:      make(map[string]string, len(res.Nodes)),
	}

	boxes := make(map[string]layout.PositionedNode, len(res.Nodes))
	for _, n := range res.Nodes {
		shapeID := uuid.NewString()
		batch.IDMap[n.ID] = shapeID
		boxes[n.ID] = n
		batch.Shapes = append(batch.Shapes, Instruction{
			ShapeID: shapeID,
			Kind:    KindFor(n.Type),
			X:       n.X,
			Y:       n.Y,
			Width:   n.Width,
			Height:  n.Height,
			Label:   n.Label,
			Fill:    FillFor(n.Type),
		})
	}

	// Parallel edges between the same ordered pair fan out by a fixed
	// step per duplicate; the count includes self-loop duplicates.
	dupes := make(map[[2]string]int, len(res.Edges))

	for _, e := range res.Edges {
		srcShape, okSrc := batch.IDMap[e.Source]
		dstShape, okDst := batch.IDMap[e.Target]
		if !okSrc || !okDst {
			batch.SkippedEdges = append(batch.SkippedEdges, e.ID)
			continue
		}

		pair := [2]string{e.Source, e.Target}
		offset := parallelStep * float64(dupes[pair])
		dupes[pair]++

		var c Connector
		if e.Source == e.Target {
			c = selfLoop(boxes[e.Source], dir, offset)
		} else {
			fx, fy := anchor(boxes[e.Source], dir, true, offset)
			tx, ty := anchor(boxes[e.Target], dir, false, offset)
			c = Connector{FromX: fx, FromY: fy, ToX: tx, ToY: ty}
		}
		c.ConnectorID = uuid.NewString()
		c.FromShape = srcShape
		c.ToShape = dstShape
		c.Label = e.Label
		batch.Connectors = append(batch.Connectors, c)
	}

	return batch
}

// anchor returns the connector attachment point on a node box: the midpoint
// of the downstream face when source is true, of the upstream face
// otherwise. offset shifts the point along the face for parallel edges.
func anchor(n layout.PositionedNode, dir layout.Direction, source bool, offset float64) (float64, float64) {
	cx, cy := n.Center()

	// The downstream face is where flow exits; BT/RL reverse it.
	downstream := source != dir.Reversed()

	if dir.Horizontal() {
		x := n.X
		if downstream {
			x = n.X + n.Width
		}
		return x, cy + offset
	}

	y := n.Y
	if downstream {
		y = n.Y + n.Height
	}
	return cx + offset, y
}

// selfLoop routes an edge whose source equals its target as a short loop
// anchored to two points on the node's downstream face, inset symmetrically
// around the face midpoint.
func selfLoop(n layout.PositionedNode, dir layout.Direction, offset float64) Connector {
	cx, cy := n.Center()

	if dir.Horizontal() {
		x := n.X
		if !dir.Reversed() {
			x = n.X + n.Width
		}
		inset := n.Height * loopInset
		return Connector{FromX: x, FromY: cy - inset + offset, ToX: x, ToY: cy + inset + offset}
	}

	y := n.Y
	if !dir.Reversed() {
		y = n.Y + n.Height
	}
	inset := n.Width * loopInset
	return Connector{FromX: cx - inset + offset, FromY: y, ToX: cx + inset + offset, ToY: y}
}
