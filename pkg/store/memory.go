package store

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps transcripts in process memory.
// Safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]Turn
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string][]Turn)}
}

// Append stores one turn.
func (s *MemoryStore) Append(ctx context.Context, turn *Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[turn.SessionID] = append(s.sessions[turn.SessionID], *turn)
	return nil
}

// List returns all turns for a session ordered by Seq ascending.
func (s *MemoryStore) List(ctx context.Context, sessionID string) ([]Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns := make([]Turn, len(s.sessions[sessionID]))
	copy(turns, s.sessions[sessionID])
	sort.SliceStable(turns, func(i, j int) bool { return turns[i].Seq < turns[j].Seq })
	return turns, nil
}

// Latest returns the turn with the highest Seq for a session.
func (s *MemoryStore) Latest(ctx context.Context, sessionID string) (*Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *Turn
	for i := range s.sessions[sessionID] {
		t := s.sessions[sessionID][i]
		if latest == nil || t.Seq >= latest.Seq {
			latest = &t
		}
	}
	return latest, nil
}

// Clear removes all turns for a session.
func (s *MemoryStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

// Close does nothing.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
