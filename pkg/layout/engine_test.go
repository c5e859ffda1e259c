package layout

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/davidblanc347/parodesign/pkg/graph"
)

func node(id string) graph.Node {
	return graph.Node{ID: id, Label: id, Type: graph.TypeProcess}
}

func edge(id, from, to string) graph.Edge {
	return graph.Edge{ID: id, Source: from, Target: to}
}

// chain builds a linear model n0 -> n1 -> ... -> n(k-1).
func chain(k int) graph.Model {
	m := graph.Model{}
	for i := range k {
		m.Nodes = append(m.Nodes, node(fmt.Sprintf("n%d", i)))
	}
	for i := range k - 1 {
		m.Edges = append(m.Edges, edge(fmt.Sprintf("e%d", i), fmt.Sprintf("n%d", i), fmt.Sprintf("n%d", i+1)))
	}
	return m
}

func byID(res Result) map[string]PositionedNode {
	out := make(map[string]PositionedNode, len(res.Nodes))
	for _, n := range res.Nodes {
		out[n.ID] = n
	}
	return out
}

func TestLayoutEmpty(t *testing.T) {
	res := Layout(graph.Model{}, Options{})

	if len(res.Nodes) != 0 {
		t.Errorf("nodes = %d, want 0", len(res.Nodes))
	}
	if res.Nodes == nil || res.Edges == nil {
		t.Error("empty result must carry empty slices, not nil")
	}
}

func TestLayoutSingleton(t *testing.T) {
	m := graph.Model{Nodes: []graph.Node{{ID: "1", Label: "A", Type: graph.TypeStart}}}
	res := Layout(m, Options{})

	if len(res.Nodes) != 1 {
		t.Fatalf("nodes = %d, want 1", len(res.Nodes))
	}
	n := res.Nodes[0]
	if n.Rank != 0 {
		t.Errorf("rank = %d, want 0", n.Rank)
	}
	if n.Width != DefaultNodeWidth || n.Height != DefaultNodeHeight {
		t.Errorf("box = %gx%g, want defaults", n.Width, n.Height)
	}
	if n.Label != "A" || n.Type != graph.TypeStart {
		t.Error("positioned node must carry the original node fields")
	}
}

func TestLayoutRanksFollowLongestPath(t *testing.T) {
	// Diamond with a shortcut: a->b->d, a->c->d, a->d.
	// d must sit below both b and c (longest path), not directly under a.
	m := graph.Model{
		Nodes: []graph.Node{node("a"), node("b"), node("c"), node("d")},
		Edges: []graph.Edge{
			edge("e1", "a", "b"),
			edge("e2", "a", "c"),
			edge("e3", "b", "d"),
			edge("e4", "c", "d"),
			edge("e5", "a", "d"),
		},
	}

	nodes := byID(Layout(m, Options{}))
	wantRanks := map[string]int{"a": 0, "b": 1, "c": 1, "d": 2}
	for id, want := range wantRanks {
		if got := nodes[id].Rank; got != want {
			t.Errorf("rank(%s) = %d, want %d", id, got, want)
		}
	}
}

func TestLayoutDeterminism(t *testing.T) {
	m := graph.Model{
		Nodes: []graph.Node{node("a"), node("b"), node("c"), node("d"), node("e")},
		Edges: []graph.Edge{
			edge("e1", "a", "c"),
			edge("e2", "b", "c"),
			edge("e3", "b", "d"),
			edge("e4", "c", "e"),
			edge("e5", "d", "e"),
		},
	}
	opts := Options{Direction: DirectionLeftRight, NodeSpacing: 30}

	first := Layout(m, opts)
	for i := 0; i < 10; i++ {
		if got := Layout(m, opts); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differed from first run", i)
		}
	}
}

func TestLayoutCycleDoesNotStall(t *testing.T) {
	// a -> b -> c -> a plus an entry edge. Every node must get a finite
	// rank and all edges must survive into the result.
	m := graph.Model{
		Nodes: []graph.Node{node("in"), node("a"), node("b"), node("c")},
		Edges: []graph.Edge{
			edge("e0", "in", "a"),
			edge("e1", "a", "b"),
			edge("e2", "b", "c"),
			edge("e3", "c", "a"),
		},
	}

	res := Layout(m, Options{})
	if len(res.Nodes) != 4 {
		t.Fatalf("nodes = %d, want 4", len(res.Nodes))
	}
	if len(res.Edges) != 4 {
		t.Fatalf("edges = %d, want 4 (back edges stay in the result)", len(res.Edges))
	}

	nodes := byID(res)
	wantRanks := map[string]int{"in": 0, "a": 1, "b": 2, "c": 3}
	for id, want := range wantRanks {
		if got := nodes[id].Rank; got != want {
			t.Errorf("rank(%s) = %d, want %d", id, got, want)
		}
	}
}

func TestLayoutPureCycle(t *testing.T) {
	// No entry point at all: a <-> b. Ranking must still terminate.
	m := graph.Model{
		Nodes: []graph.Node{node("a"), node("b")},
		Edges: []graph.Edge{edge("e1", "a", "b"), edge("e2", "b", "a")},
	}

	nodes := byID(Layout(m, Options{}))
	if nodes["a"].Rank != 0 || nodes["b"].Rank != 1 {
		t.Errorf("ranks = a:%d b:%d, want a:0 b:1", nodes["a"].Rank, nodes["b"].Rank)
	}
}

func TestLayoutSelfLoopIgnoredForRanking(t *testing.T) {
	m := chain(2)
	m.Edges = append(m.Edges, edge("loop", "n0", "n0"))

	res := Layout(m, Options{})
	nodes := byID(res)
	if nodes["n0"].Rank != 0 || nodes["n1"].Rank != 1 {
		t.Errorf("ranks = %d,%d, want 0,1", nodes["n0"].Rank, nodes["n1"].Rank)
	}
	if len(res.Edges) != 2 {
		t.Errorf("edges = %d, want 2 (self-loop preserved)", len(res.Edges))
	}
}

func TestLayoutNoOverlapWithinRank(t *testing.T) {
	// One source fanning out to six children on the same rank.
	m := graph.Model{Nodes: []graph.Node{node("root")}}
	for i := range 6 {
		id := fmt.Sprintf("c%d", i)
		m.Nodes = append(m.Nodes, node(id))
		m.Edges = append(m.Edges, edge("e"+id, "root", id))
	}

	opts := Options{NodeSpacing: 40}
	res := Layout(m, opts)

	ranks := make(map[int][]PositionedNode)
	for _, n := range res.Nodes {
		ranks[n.Rank] = append(ranks[n.Rank], n)
	}

	for rank, row := range ranks {
		for i := range row {
			for j := i + 1; j < len(row); j++ {
				a, b := row[i], row[j]
				if a.X > b.X {
					a, b = b, a
				}
				gap := b.X - (a.X + a.Width)
				if gap < 40 {
					t.Errorf("rank %d: nodes %s and %s separated by %g, want >= 40", rank, a.ID, b.ID, gap)
				}
			}
		}
	}
}

func TestLayoutDirections(t *testing.T) {
	m := chain(3)

	tests := []struct {
		direction Direction
		// axis extracts the rank-axis coordinate of a node's center.
		axis func(n PositionedNode) float64
		// increasing is true when deeper ranks move toward +axis.
		increasing bool
	}{
		{DirectionTopBottom, func(n PositionedNode) float64 { _, cy := n.Center(); return cy }, true},
		{DirectionBottomTop, func(n PositionedNode) float64 { _, cy := n.Center(); return cy }, false},
		{DirectionLeftRight, func(n PositionedNode) float64 { cx, _ := n.Center(); return cx }, true},
		{DirectionRightLeft, func(n PositionedNode) float64 { cx, _ := n.Center(); return cx }, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.direction), func(t *testing.T) {
			nodes := byID(Layout(m, Options{Direction: tt.direction}))
			prev := tt.axis(nodes["n0"])
			for i := 1; i < 3; i++ {
				curr := tt.axis(nodes[fmt.Sprintf("n%d", i)])
				if tt.increasing && curr <= prev {
					t.Errorf("rank axis not increasing: %g then %g", prev, curr)
				}
				if !tt.increasing && curr >= prev {
					t.Errorf("rank axis not decreasing: %g then %g", prev, curr)
				}
				prev = curr
			}
		})
	}
}

func TestLayoutRankSpacing(t *testing.T) {
	m := chain(2)
	opts := Options{RankSpacing: 75, NodeHeight: 60}
	nodes := byID(Layout(m, opts))

	// Consecutive rank centers are one node extent plus the rank gap apart.
	_, c0 := nodes["n0"].Center()
	_, c1 := nodes["n1"].Center()
	if got, want := c1-c0, 60.0+75.0; got != want {
		t.Errorf("rank center distance = %g, want %g", got, want)
	}
}

func TestLayoutTopLeftConversion(t *testing.T) {
	// The public coordinates are top-left; re-deriving the center from
	// them must land on a grid position of the center-based engine.
	nodes := byID(Layout(chain(2), Options{}))
	n := nodes["n0"]
	cx, cy := n.Center()
	if cx != n.X+n.Width/2 || cy != n.Y+n.Height/2 {
		t.Errorf("center (%g,%g) inconsistent with box (%g,%g,%g,%g)", cx, cy, n.X, n.Y, n.Width, n.Height)
	}
	if cy != DefaultNodeHeight/2 {
		t.Errorf("first rank center y = %g, want %g", cy, DefaultNodeHeight/2)
	}
}

func TestLayoutDisconnectedComponents(t *testing.T) {
	// Two separate chains; their bounding boxes must not intersect.
	m := graph.Model{
		Nodes: []graph.Node{node("a1"), node("a2"), node("b1"), node("b2")},
		Edges: []graph.Edge{edge("e1", "a1", "a2"), edge("e2", "b1", "b2")},
	}

	res := Layout(m, Options{})
	nodes := byID(res)

	type box struct{ minX, minY, maxX, maxY float64 }
	bounds := func(ids ...string) box {
		b := box{minX: 1e18, minY: 1e18, maxX: -1e18, maxY: -1e18}
		for _, id := range ids {
			n := nodes[id]
			b.minX = min(b.minX, n.X)
			b.minY = min(b.minY, n.Y)
			b.maxX = max(b.maxX, n.X+n.Width)
			b.maxY = max(b.maxY, n.Y+n.Height)
		}
		return b
	}

	a, b := bounds("a1", "a2"), bounds("b1", "b2")
	overlap := a.minX < b.maxX && b.minX < a.maxX && a.minY < b.maxY && b.minY < a.maxY
	if overlap {
		t.Errorf("component boxes overlap: %+v vs %+v", a, b)
	}
}

func TestOptionsWithDefaults(t *testing.T) {
	got := Options{}.WithDefaults()
	if !reflect.DeepEqual(got, DefaultOptions()) {
		t.Errorf("zero options with defaults = %+v, want %+v", got, DefaultOptions())
	}

	partial := Options{Direction: DirectionLeftRight, NodeWidth: 120}.WithDefaults()
	if partial.Direction != DirectionLeftRight || partial.NodeWidth != 120 {
		t.Error("explicit fields must survive WithDefaults")
	}
	if partial.NodeSpacing != DefaultNodeSpacing || partial.RankSpacing != DefaultRankSpacing {
		t.Error("unset fields must take defaults")
	}
}

func TestOptionsValidate(t *testing.T) {
	if err := (Options{Direction: DirectionBottomTop}).Validate(); err != nil {
		t.Errorf("BT should validate: %v", err)
	}
	if err := (Options{}).Validate(); err != nil {
		t.Errorf("empty direction should validate (defaults apply later): %v", err)
	}
	if err := (Options{Direction: "NE"}).Validate(); err == nil {
		t.Error("unknown direction should be rejected")
	}
}
