package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/davidblanc347/parodesign/pkg/errors"
	"github.com/davidblanc347/parodesign/pkg/graph"
	"github.com/davidblanc347/parodesign/pkg/layout"
	"github.com/davidblanc347/parodesign/pkg/pipeline"
	"github.com/davidblanc347/parodesign/pkg/shape"
)

// maxBodySize bounds request bodies; LLM-sized graphs are small.
const maxBodySize = 1 << 20

// generateRequest is the body of POST /api/generate.
type generateRequest struct {
	Description string           `json:"description"`
	Options     pipeline.Options `json:"options"`
}

// layoutRequest is the body of POST /api/layout. Graph carries the raw
// graph document; it goes through full validation before layout.
type layoutRequest struct {
	Graph   json.RawMessage  `json:"graph"`
	Options pipeline.Options `json:"options"`
}

// layoutResponse is the body returned by POST /api/layout.
type layoutResponse struct {
	ModelHash string             `json:"model_hash"`
	Layout    layout.Result      `json:"layout"`
	Batch     shape.Batch        `json:"batch"`
	CacheInfo pipeline.CacheInfo `json:"cache_info"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if req.Description == "" {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "description is required"))
		return
	}

	result, err := s.runner.RunTurn(r.Context(), req.Description, req.Options)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if len(req.Graph) == 0 {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "graph is required"))
		return
	}

	m, err := graph.Validate(req.Graph)
	if err != nil {
		s.writeError(w, err)
		return
	}

	res, layoutHit, err := s.runner.ComputeLayoutWithCacheInfo(r.Context(), m, req.Options)
	if err != nil {
		s.writeError(w, err)
		return
	}
	batch, batchHit, err := s.runner.SynthesizeWithCacheInfo(r.Context(), res, req.Options)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, layoutResponse{
		ModelHash: graph.Hash(m),
		Layout:    res,
		Batch:     batch,
		CacheInfo: pipeline.CacheInfo{LayoutHit: layoutHit, BatchHit: batchHit},
	})
}

// decodeBody parses a JSON request body into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse request body")
	}
	return nil
}

// writeError maps coded errors to HTTP statuses and emits a JSON body.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidGraph, errors.ErrCodeInvalidNode,
		errors.ErrCodeInvalidNodeType, errors.ErrCodeInvalidEdge, errors.ErrCodeDanglingEdge,
		errors.ErrCodeInvalidPayload, errors.ErrCodeInvalidDirection, errors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeAssistant:
		status = http.StatusBadGateway
	}

	if status >= 500 {
		s.logger.Error("request failed", "code", code, "err", err)
	}
	writeJSON(w, status, map[string]string{
		"error": errors.UserMessage(err),
		"code":  string(code),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
