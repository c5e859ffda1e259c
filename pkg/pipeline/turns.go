package pipeline

import "sync"

// Sequencer orders concurrent turns within chat sessions.
//
// Each session carries a monotonically increasing sequence number. A turn
// takes its number with [Sequencer.Next] before calling the assistant, and
// offers its result with [Sequencer.Commit] when the pipeline finishes.
// Commit accepts only results that are at least as new as the newest one
// already applied, so when turns complete out of order the session surface
// ends up showing the last-issued diagram, never a stale one.
type Sequencer struct {
	mu      sync.Mutex
	next    map[string]uint64
	applied map[string]uint64
}

// NewSequencer creates an empty sequencer.
func NewSequencer() *Sequencer {
	return &Sequencer{
		next:    make(map[string]uint64),
		applied: make(map[string]uint64),
	}
}

// Next reserves and returns the next sequence number for a session.
// The first turn of a session gets 1.
func (s *Sequencer) Next(sessionID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next[sessionID]++
	return s.next[sessionID]
}

// Commit records seq as applied for the session and reports whether the
// caller should apply its result. Returns false when a newer turn has
// already committed; the caller must drop its batch.
func (s *Sequencer) Commit(sessionID string, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.applied[sessionID] {
		return false
	}
	s.applied[sessionID] = seq
	return true
}

// Applied returns the highest committed sequence number for a session,
// zero when nothing has committed.
func (s *Sequencer) Applied(sessionID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applied[sessionID]
}

// Forget drops all state for a session.
func (s *Sequencer) Forget(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.next, sessionID)
	delete(s.applied, sessionID)
}
