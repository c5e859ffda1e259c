package server

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/davidblanc347/parodesign/pkg/extract"
	"github.com/davidblanc347/parodesign/pkg/graph"
	"github.com/davidblanc347/parodesign/pkg/pipeline"
	"github.com/davidblanc347/parodesign/pkg/store"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// The chat surface is same-origin in deployment; cross-origin policy
	// belongs to the reverse proxy.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// chatRequest is one inbound websocket message.
type chatRequest struct {
	Prompt  string           `json:"prompt"`
	Options pipeline.Options `json:"options"`
}

// chatResponse is one outbound websocket message.
//
// Stale is true when a newer turn finished while this one was running; the
// client must render the text but discard the batch.
type chatResponse struct {
	Seq    uint64           `json:"seq"`
	Text   string           `json:"text"`
	Result *pipeline.Result `json:"result,omitempty"`
	Stale  bool             `json:"stale,omitempty"`
	Error  string           `json:"error,omitempty"`
}

// handleChat upgrades to a websocket and runs one pipeline turn per inbound
// message. Messages are processed sequentially per connection; the
// sequencer guards against a session talking over multiple connections.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	s.logger.Info("chat session opened", "session", sessionID)

	for {
		var req chatRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("chat session closed abnormally", "session", sessionID, "err", err)
			}
			return
		}

		resp := s.runChatTurn(r.Context(), sessionID, req)
		if err := conn.WriteJSON(resp); err != nil {
			s.logger.Warn("chat write failed", "session", sessionID, "err", err)
			return
		}
	}
}

func (s *Server) runChatTurn(ctx context.Context, sessionID string, req chatRequest) chatResponse {
	seq := s.seq.Next(sessionID)

	result, err := s.runner.RunTurn(ctx, req.Prompt, req.Options)
	if err != nil {
		return chatResponse{Seq: seq, Error: err.Error()}
	}

	stale := !s.seq.Commit(sessionID, seq)
	resp := chatResponse{
		Seq:   seq,
		Text:  extract.StripMarkers(result.Response),
		Stale: stale,
	}
	if !stale {
		resp.Result = result
	}

	if s.store != nil {
		var model *graph.Model
		if result.Found {
			m := result.Model
			model = &m
		}
		turn := store.NewTurn(sessionID, seq, req.Prompt, result.Response, model)
		if err := s.store.Append(ctx, turn); err != nil {
			s.logger.Warn("transcript append failed", "session", sessionID, "err", err)
		}
	}
	return resp
}
