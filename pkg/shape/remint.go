package shape

import "github.com/google/uuid"

// WithFreshIDs returns a copy of the batch with every shape and connector
// id replaced by a newly minted one, preserving all bindings between them.
// Cached batches pass through this so no two applied batches ever share a
// drawable id.
func (b Batch) WithFreshIDs() Batch {
	out := Batch{
		Shapes:     make([]Instruction, len(b.Shapes)),
		Connectors: make([]Connector, len(b.Connectors)),
		IDMap:      make(map[string]string, len(b.IDMap)),
	}
	if b.SkippedEdges != nil {
		out.SkippedEdges = append([]string(nil), b.SkippedEdges...)
	}

	remap := make(map[string]string, len(b.Shapes))
	for i, s := range b.Shapes {
		fresh := uuid.NewString()
		remap[s.ShapeID] = fresh
		s.ShapeID = fresh
		out.Shapes[i] = s
	}
	for nodeID, shapeID := range b.IDMap {
		if fresh, ok := remap[shapeID]; ok {
			out.IDMap[nodeID] = fresh
		}
	}
	for i, c := range b.Connectors {
		c.ConnectorID = uuid.NewString()
		if fresh, ok := remap[c.FromShape]; ok {
			c.FromShape = fresh
		}
		if fresh, ok := remap[c.ToShape]; ok {
			c.ToShape = fresh
		}
		out.Connectors[i] = c
	}
	return out
}
