package layout

// edgeKey identifies a directed node pair. Parallel edges share a key:
// when a pair is classified as a back edge, every parallel edge between
// the pair is excluded from ranking together.
type edgeKey struct{ from, to string }

// backEdges classifies the edges of one component using DFS tree-edge
// coloring and returns the set of back-edge pairs. Back edges are the
// minimal exclusion that makes the remaining graph acyclic; they stay in
// the model and in the final result, they just impose no layering
// constraint.
//
// Traversal starts from source nodes (in-degree zero) in model order, then
// covers any nodes reachable only through cycles, also in model order, so
// classification is deterministic.
func backEdges(ids []string, children map[string][]string, parents map[string][]string) map[edgeKey]bool {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(ids))
	back := make(map[edgeKey]bool)

	var dfs func(node string)
	dfs = func(node string) {
		color[node] = gray
		for _, child := range children[node] {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				back[edgeKey{node, child}] = true
			}
		}
		color[node] = black
	}

	for _, id := range ids {
		if len(parents[id]) == 0 && color[id] == white {
			dfs(id)
		}
	}
	for _, id := range ids {
		if color[id] == white {
			dfs(id)
		}
	}

	return back
}
