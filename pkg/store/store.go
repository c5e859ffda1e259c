// Package store persists conversation transcripts.
//
// A transcript is the sequence of turns in one chat session: the user's
// prompt, the assistant's full response, and the validated graph extracted
// from it (if any). Two backends are provided:
//   - memory: In-memory storage for development, testing, and the CLI
//   - mongo: MongoDB-backed storage for server deployments
//
// # Usage
//
// Create a store:
//
//	// Development
//	st := store.NewMemoryStore()
//
//	// Server
//	st, err := store.NewMongoStore(ctx, store.MongoConfig{
//	    URI:      "mongodb://localhost:27017",
//	    Database: "parodesign",
//	})
//
// Append and read turns:
//
//	err := st.Append(ctx, turn)
//	turns, err := st.List(ctx, sessionID)
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/davidblanc347/parodesign/pkg/graph"
)

// Turn is one prompt/response exchange within a session.
//
// Seq is assigned by the serving host's per-session sequencer and increases
// monotonically within a session. Model is nil when the response contained
// no valid diagram block.
type Turn struct {
	ID        string       `json:"id" bson:"_id"`
	SessionID string       `json:"session_id" bson:"session_id"`
	Seq       uint64       `json:"seq" bson:"seq"`
	Prompt    string       `json:"prompt" bson:"prompt"`
	Response  string       `json:"response" bson:"response"`
	Model     *graph.Model `json:"model,omitempty" bson:"model,omitempty"`
	CreatedAt time.Time    `json:"created_at" bson:"created_at"`
}

// NewTurn creates a turn with a fresh ID and timestamp.
func NewTurn(sessionID string, seq uint64, prompt, response string, model *graph.Model) *Turn {
	return &Turn{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Seq:       seq,
		Prompt:    prompt,
		Response:  response,
		Model:     model,
		CreatedAt: time.Now().UTC(),
	}
}

// Store is the interface for transcript storage backends.
type Store interface {
	// Append stores one turn.
	Append(ctx context.Context, turn *Turn) error

	// List returns all turns for a session ordered by Seq ascending.
	// Returns an empty slice for an unknown session.
	List(ctx context.Context, sessionID string) ([]Turn, error)

	// Latest returns the turn with the highest Seq for a session.
	// Returns nil, nil for an unknown session.
	Latest(ctx context.Context, sessionID string) (*Turn, error)

	// Clear removes all turns for a session.
	Clear(ctx context.Context, sessionID string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
