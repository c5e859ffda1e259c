package layout

import (
	"slices"

	"github.com/davidblanc347/parodesign/pkg/graph"
)

// =============================================================================
// Result Types
// =============================================================================

// PositionedNode is a graph node extended with its computed box.
// X and Y are the top-left corner; Width and Height are always positive.
// PositionedNode values are produced only by [Layout].
type PositionedNode struct {
	graph.Node

	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`

	// Rank is the layer index the node was assigned to, kept for
	// downstream consumers (connector routing, tests) and diagnostics.
	Rank int `json:"rank" bson:"rank"`
}

// Center returns the node's center point, the engine's internal
// coordinate convention before the top-left conversion.
func (n PositionedNode) Center() (float64, float64) {
	return n.X + n.Width/2, n.Y + n.Height/2
}

// Result is the positioned node sequence plus the original edge sequence.
// Edges are never repositioned; connector geometry is resolved at synthesis
// time from the two endpoints' boxes.
type Result struct {
	Nodes []PositionedNode `json:"nodes" bson:"nodes"`
	Edges []graph.Edge     `json:"edges" bson:"edges"`
}

// =============================================================================
// Engine
// =============================================================================

// Layout computes a layered drawing for a validated model.
//
// Layout never fails on a validated model: cycles are handled by back-edge
// classification, the empty model yields an empty result, and a lone node
// lands at rank 0 with its top-left at the origin offset. Identical
// (model, options) input yields identical output.
func Layout(m graph.Model, opts Options) Result {
	opts = opts.WithDefaults()

	res := Result{
		Nodes: make([]PositionedNode, 0, len(m.Nodes)),
		Edges: slices.Clone(m.Edges),
	}
	if res.Edges == nil {
		res.Edges = []graph.Edge{}
	}
	if m.IsEmpty() {
		return res
	}

	children := make(map[string][]string, len(m.Nodes))
	parents := make(map[string][]string, len(m.Nodes))
	for _, e := range m.Edges {
		if e.Source == e.Target {
			continue // self-loops impose no layout constraint
		}
		children[e.Source] = append(children[e.Source], e.Target)
		parents[e.Target] = append(parents[e.Target], e.Source)
	}

	nodesByID := make(map[string]graph.Node, len(m.Nodes))
	for _, n := range m.Nodes {
		nodesByID[n.ID] = n
	}

	// Each weakly connected component is laid out independently and
	// stacked along the perpendicular axis so bounding boxes never
	// intersect.
	perpOffset := 0.0
	for _, comp := range components(m, children, parents) {
		placed, extent := layoutComponent(comp, children, parents, opts, perpOffset)
		for _, p := range placed {
			p.Node = nodesByID[p.ID]
			res.Nodes = append(res.Nodes, p)
		}
		perpOffset += extent + opts.NodeSpacing
	}

	return res
}

// components splits the model into weakly connected components, each a
// list of node IDs in model order. Components are emitted in order of
// their first node's position in the model.
func components(m graph.Model, children, parents map[string][]string) [][]string {
	assigned := make(map[string]int, len(m.Nodes))
	var comps [][]string

	for _, n := range m.Nodes {
		if _, ok := assigned[n.ID]; ok {
			continue
		}
		idx := len(comps)
		queue := []string{n.ID}
		assigned[n.ID] = idx
		for len(queue) > 0 {
			curr := queue[0]
			queue = queue[1:]
			for _, nb := range append(slices.Clone(children[curr]), parents[curr]...) {
				if _, ok := assigned[nb]; !ok {
					assigned[nb] = idx
					queue = append(queue, nb)
				}
			}
		}
		comps = append(comps, nil)
	}

	for _, n := range m.Nodes {
		idx := assigned[n.ID]
		comps[idx] = append(comps[idx], n.ID)
	}
	return comps
}

// layoutComponent runs ranking, ordering, and coordinate assignment for one
// component. Returned nodes carry final top-left coordinates; extent is the
// component's total size along the perpendicular axis, used to stack the
// next component without overlap.
func layoutComponent(ids []string, children, parents map[string][]string, opts Options, perpOffset float64) ([]PositionedNode, float64) {
	back := backEdges(ids, children, parents)
	ranks := assignRanks(ids, children, back)
	orders := orderRanks(ids, ranks, children, parents)

	// Axis extents swap with direction: for vertical flows the
	// perpendicular axis is x and carries node widths.
	perpExtent, rankExtent := opts.NodeWidth, opts.NodeHeight
	if opts.Direction.Horizontal() {
		perpExtent, rankExtent = opts.NodeHeight, opts.NodeWidth
	}

	maxRank := 0
	for _, r := range ranks {
		if r > maxRank {
			maxRank = r
		}
	}

	rowSpan := func(n int) float64 {
		return float64(n)*perpExtent + float64(n-1)*opts.NodeSpacing
	}
	maxSpan := 0.0
	for r := 0; r <= maxRank; r++ {
		if n := len(orders[r]); n > 0 && rowSpan(n) > maxSpan {
			maxSpan = rowSpan(n)
		}
	}

	placed := make([]PositionedNode, 0, len(ids))
	for r := 0; r <= maxRank; r++ {
		row := orders[r]
		if len(row) == 0 {
			continue
		}

		// Center-based coordinates; narrower rows are centered
		// within the component's widest row.
		rowStart := perpOffset + (maxSpan-rowSpan(len(row)))/2

		rankIndex := r
		if opts.Direction.Reversed() {
			rankIndex = maxRank - r
		}
		rankCenter := float64(rankIndex)*(rankExtent+opts.RankSpacing) + rankExtent/2

		for i, id := range row {
			perpCenter := rowStart + float64(i)*(perpExtent+opts.NodeSpacing) + perpExtent/2

			cx, cy := perpCenter, rankCenter
			if opts.Direction.Horizontal() {
				cx, cy = rankCenter, perpCenter
			}

			placed = append(placed, PositionedNode{
				Node:   graph.Node{ID: id},
				X:      cx - opts.NodeWidth/2,
				Y:      cy - opts.NodeHeight/2,
				Width:  opts.NodeWidth,
				Height: opts.NodeHeight,
				Rank:   r,
			})
		}
	}

	return placed, maxSpan
}
