package layout

// assignRanks computes a longest-path layering for one component using a
// topological (Kahn) traversal over the forward edges. Each node lands at
// one plus the maximum rank of any forward parent, so sources sit at rank 0
// and every forward edge points to a strictly deeper rank.
//
// The back map holds the edges classified by backEdges; they are skipped
// during the traversal so cycles cannot stall it, and every node still
// receives a finite rank. The queue is seeded and drained in model order,
// keeping the result deterministic.
func assignRanks(ids []string, children map[string][]string, back map[edgeKey]bool) map[string]int {
	inDegree := make(map[string]int, len(ids))
	ranks := make(map[string]int, len(ids))

	for _, id := range ids {
		for _, child := range children[id] {
			if child == id || back[edgeKey{id, child}] {
				continue
			}
			inDegree[child]++
		}
	}

	queue := make([]string, 0, len(ids))
	for _, id := range ids {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, child := range children[curr] {
			if child == curr || back[edgeKey{curr, child}] {
				continue
			}
			if rank := ranks[curr] + 1; rank > ranks[child] {
				ranks[child] = rank
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	return ranks
}
