package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/davidblanc347/parodesign/pkg/errors"
	"github.com/davidblanc347/parodesign/pkg/extract"
	"github.com/davidblanc347/parodesign/pkg/pipeline"
	"github.com/davidblanc347/parodesign/pkg/store"
)

type fakeGenerator struct {
	response string
	err      error
}

func (g *fakeGenerator) Generate(ctx context.Context, description string) (string, error) {
	return g.response, g.err
}

const validGraph = `{
	"nodes": [
		{"id": "a", "label": "A", "type": "start"},
		{"id": "b", "label": "B", "type": "end"}
	],
	"edges": [
		{"id": "e", "source": "a", "target": "b"}
	]
}`

func newTestServer(t *testing.T, gen *fakeGenerator) *Server {
	t.Helper()
	runner := pipeline.NewRunner(nil, gen, log.New(io.Discard))
	return New(":0", runner, store.NewMemoryStore(), log.New(io.Discard))
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	h := newTestServer(t, nil).Handler()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestLayoutEndpoint(t *testing.T) {
	h := newTestServer(t, nil).Handler()
	rec := postJSON(t, h, "/api/layout", `{"graph": `+validGraph+`}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}

	var resp layoutResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ModelHash == "" {
		t.Error("model hash missing")
	}
	if len(resp.Layout.Nodes) != 2 || len(resp.Batch.Shapes) != 2 {
		t.Errorf("layout/batch sizes = %d/%d", len(resp.Layout.Nodes), len(resp.Batch.Shapes))
	}
	if len(resp.Batch.Connectors) != 1 {
		t.Errorf("connectors = %d", len(resp.Batch.Connectors))
	}
}

func TestLayoutEndpointRejectsBadGraph(t *testing.T) {
	h := newTestServer(t, nil).Handler()

	cases := map[string]struct {
		body     string
		wantCode errors.Code
	}{
		"missing graph":  {`{}`, errors.ErrCodeInvalidInput},
		"malformed body": {`not json`, errors.ErrCodeInvalidInput},
		"dangling edge": {
			`{"graph": {"nodes": [{"id": "a", "label": "A", "type": "start"}], "edges": [{"id": "e", "source": "a", "target": "ghost"}]}}`,
			errors.ErrCodeDanglingEdge,
		},
		"bad node type": {
			`{"graph": {"nodes": [{"id": "a", "label": "A", "type": "cloud"}], "edges": []}}`,
			errors.ErrCodeInvalidNodeType,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			rec := postJSON(t, h, "/api/layout", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if body["code"] != string(tc.wantCode) {
				t.Errorf("code = %q, want %q", body["code"], tc.wantCode)
			}
		})
	}
}

func TestGenerateEndpoint(t *testing.T) {
	gen := &fakeGenerator{
		response: "Sure.\n" + extract.StartMarker + validGraph + extract.EndMarker,
	}
	h := newTestServer(t, gen).Handler()
	rec := postJSON(t, h, "/api/generate", `{"description": "draw it"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var result pipeline.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if !result.Found {
		t.Error("diagram not found in generated response")
	}
	if len(result.Batch.Shapes) != 2 {
		t.Errorf("shapes = %d", len(result.Batch.Shapes))
	}
}

func TestGenerateEndpointRequiresDescription(t *testing.T) {
	h := newTestServer(t, &fakeGenerator{}).Handler()
	rec := postJSON(t, h, "/api/generate", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestGenerateEndpointAssistantFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New(errors.ErrCodeAssistant, "provider down")}
	h := newTestServer(t, gen).Handler()
	rec := postJSON(t, h, "/api/generate", `{"description": "draw it"}`)
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}
