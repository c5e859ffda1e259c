package store

import (
	"context"
	"testing"

	"github.com/davidblanc347/parodesign/pkg/graph"
)

func TestMemoryStoreAppendList(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	m := &graph.Model{
		Nodes: []graph.Node{{ID: "a", Label: "A", Type: graph.TypeProcess}},
		Edges: []graph.Edge{},
	}

	// Append out of sequence order; List must sort by Seq.
	if err := s.Append(ctx, NewTurn("s1", 2, "second", "resp2", nil)); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := s.Append(ctx, NewTurn("s1", 1, "first", "resp1", m)); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := s.Append(ctx, NewTurn("s2", 1, "other session", "resp", nil)); err != nil {
		t.Fatalf("Append: %v", err)
	}

	turns, err := s.List(ctx, "s1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(turns) != 2 {
		t.Fatalf("len(turns) = %d, want 2", len(turns))
	}
	if turns[0].Seq != 1 || turns[1].Seq != 2 {
		t.Errorf("turns not sorted by seq: %d, %d", turns[0].Seq, turns[1].Seq)
	}
	if turns[0].Model == nil || len(turns[0].Model.Nodes) != 1 {
		t.Error("model not preserved on turn 1")
	}
	if turns[1].Model != nil {
		t.Error("turn 2 should carry no model")
	}
}

func TestMemoryStoreLatest(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if latest, err := s.Latest(ctx, "unknown"); err != nil || latest != nil {
		t.Fatalf("Latest on unknown session = %v, %v, want nil, nil", latest, err)
	}

	_ = s.Append(ctx, NewTurn("s1", 1, "p1", "r1", nil))
	_ = s.Append(ctx, NewTurn("s1", 3, "p3", "r3", nil))
	_ = s.Append(ctx, NewTurn("s1", 2, "p2", "r2", nil))

	latest, err := s.Latest(ctx, "s1")
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest == nil || latest.Seq != 3 {
		t.Errorf("Latest = %+v, want seq 3", latest)
	}
}

func TestMemoryStoreClear(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_ = s.Append(ctx, NewTurn("s1", 1, "p", "r", nil))
	_ = s.Append(ctx, NewTurn("s2", 1, "p", "r", nil))

	if err := s.Clear(ctx, "s1"); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if turns, _ := s.List(ctx, "s1"); len(turns) != 0 {
		t.Errorf("cleared session still has %d turns", len(turns))
	}
	if turns, _ := s.List(ctx, "s2"); len(turns) != 1 {
		t.Errorf("unrelated session lost turns: %d", len(turns))
	}
}

func TestNewTurnAssignsIdentity(t *testing.T) {
	a := NewTurn("s", 1, "p", "r", nil)
	b := NewTurn("s", 2, "p", "r", nil)
	if a.ID == "" || b.ID == "" || a.ID == b.ID {
		t.Errorf("turn ids must be unique and non-empty: %q, %q", a.ID, b.ID)
	}
	if a.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}
