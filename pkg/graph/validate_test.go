package graph

import (
	"reflect"
	"testing"

	"github.com/davidblanc347/parodesign/pkg/errors"
)

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantCode errors.Code
	}{
		{
			name:     "NotJSON",
			raw:      `{nodes: [}`,
			wantCode: errors.ErrCodeInvalidPayload,
		},
		{
			name:     "TopLevelArray",
			raw:      `[]`,
			wantCode: errors.ErrCodeInvalidGraph,
		},
		{
			name:     "TopLevelString",
			raw:      `"graph"`,
			wantCode: errors.ErrCodeInvalidGraph,
		},
		{
			name:     "MissingNodes",
			raw:      `{"edges": []}`,
			wantCode: errors.ErrCodeInvalidGraph,
		},
		{
			name:     "NodesNotArray",
			raw:      `{"nodes": {}, "edges": []}`,
			wantCode: errors.ErrCodeInvalidGraph,
		},
		{
			name:     "EdgesNotArray",
			raw:      `{"nodes": [], "edges": "none"}`,
			wantCode: errors.ErrCodeInvalidGraph,
		},
		{
			name:     "NodeNotObject",
			raw:      `{"nodes": ["a"], "edges": []}`,
			wantCode: errors.ErrCodeInvalidNode,
		},
		{
			name:     "NodeMissingID",
			raw:      `{"nodes": [{"label": "A", "type": "start"}], "edges": []}`,
			wantCode: errors.ErrCodeInvalidNode,
		},
		{
			name:     "NodeMissingLabel",
			raw:      `{"nodes": [{"id": "1", "type": "start"}], "edges": []}`,
			wantCode: errors.ErrCodeInvalidNode,
		},
		{
			name:     "NodeMissingType",
			raw:      `{"nodes": [{"id": "1", "label": "A"}], "edges": []}`,
			wantCode: errors.ErrCodeInvalidNode,
		},
		{
			name:     "NodeTypeNotString",
			raw:      `{"nodes": [{"id": "1", "label": "A", "type": 3}], "edges": []}`,
			wantCode: errors.ErrCodeInvalidNode,
		},
		{
			name:     "UnknownNodeType",
			raw:      `{"nodes": [{"id": "1", "label": "A", "type": "hexagon"}], "edges": []}`,
			wantCode: errors.ErrCodeInvalidNodeType,
		},
		{
			name: "DuplicateNodeID",
			raw: `{"nodes": [
				{"id": "1", "label": "A", "type": "start"},
				{"id": "1", "label": "B", "type": "end"}
			], "edges": []}`,
			wantCode: errors.ErrCodeInvalidNode,
		},
		{
			name: "EdgeMissingID",
			raw: `{"nodes": [{"id": "1", "label": "A", "type": "start"}],
				"edges": [{"source": "1", "target": "1"}]}`,
			wantCode: errors.ErrCodeInvalidEdge,
		},
		{
			name: "EdgeMissingSource",
			raw: `{"nodes": [{"id": "1", "label": "A", "type": "start"}],
				"edges": [{"id": "e1", "target": "1"}]}`,
			wantCode: errors.ErrCodeInvalidEdge,
		},
		{
			name: "EdgeMissingTarget",
			raw: `{"nodes": [{"id": "1", "label": "A", "type": "start"}],
				"edges": [{"id": "e1", "source": "1"}]}`,
			wantCode: errors.ErrCodeInvalidEdge,
		},
		{
			name: "DanglingSource",
			raw: `{"nodes": [{"id": "1", "label": "A", "type": "start"}],
				"edges": [{"id": "e1", "source": "ghost", "target": "1"}]}`,
			wantCode: errors.ErrCodeDanglingEdge,
		},
		{
			name: "DanglingTarget",
			raw: `{"nodes": [{"id": "1", "label": "A", "type": "start"}],
				"edges": [{"id": "e1", "source": "1", "target": "ghost"}]}`,
			wantCode: errors.ErrCodeDanglingEdge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate([]byte(tt.raw))
			if err == nil {
				t.Fatal("Validate accepted invalid payload")
			}
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Errorf("code = %q, want %q (err: %v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestValidateAccepts(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Model
	}{
		{
			name: "Empty",
			raw:  `{"nodes": [], "edges": []}`,
			want: Model{Nodes: []Node{}, Edges: []Edge{}},
		},
		{
			name: "TwoNodesOneEdge",
			raw: `{"nodes": [
				{"id": "1", "label": "Start", "type": "start"},
				{"id": "2", "label": "End", "type": "end"}
			], "edges": [
				{"id": "e1", "source": "1", "target": "2", "label": "next"}
			]}`,
			want: Model{
				Nodes: []Node{
					{ID: "1", Label: "Start", Type: TypeStart},
					{ID: "2", Label: "End", Type: TypeEnd},
				},
				Edges: []Edge{
					{ID: "e1", Source: "1", Target: "2", Label: "next"},
				},
			},
		},
		{
			name: "SelfLoop",
			raw: `{"nodes": [{"id": "1", "label": "Retry", "type": "process"}],
				"edges": [{"id": "e1", "source": "1", "target": "1"}]}`,
			want: Model{
				Nodes: []Node{{ID: "1", Label: "Retry", Type: TypeProcess}},
				Edges: []Edge{{ID: "e1", Source: "1", Target: "1"}},
			},
		},
		{
			name: "ParallelEdges",
			raw: `{"nodes": [
				{"id": "a", "label": "A", "type": "process"},
				{"id": "b", "label": "B", "type": "process"}
			], "edges": [
				{"id": "e1", "source": "a", "target": "b"},
				{"id": "e2", "source": "a", "target": "b"}
			]}`,
			want: Model{
				Nodes: []Node{
					{ID: "a", Label: "A", Type: TypeProcess},
					{ID: "b", Label: "B", Type: TypeProcess},
				},
				Edges: []Edge{
					{ID: "e1", Source: "a", Target: "b"},
					{ID: "e2", Source: "a", Target: "b"},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate([]byte(tt.raw))
			if err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Validate = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestValidatePreservesMeta(t *testing.T) {
	raw := `{"nodes": [{"id": "1", "label": "A", "type": "data", "meta": {"source": "orders_db"}}], "edges": []}`

	m, err := Validate([]byte(raw))
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if m.Nodes[0].Meta["source"] != "orders_db" {
		t.Errorf("meta.source = %v, want orders_db", m.Nodes[0].Meta["source"])
	}
}

func TestValidateIsPure(t *testing.T) {
	raw := []byte(`{"nodes": [
		{"id": "1", "label": "A", "type": "start"},
		{"id": "2", "label": "B", "type": "end"}
	], "edges": [{"id": "e1", "source": "1", "target": "2"}]}`)

	first, err := Validate(raw)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	second, err := Validate(raw)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated validation of the same input produced different models")
	}
}

func TestValidType(t *testing.T) {
	for _, typ := range NodeTypes {
		if !ValidType(typ) {
			t.Errorf("ValidType(%q) = false, want true", typ)
		}
	}
	for _, typ := range []NodeType{"", "circle", "Start", "END"} {
		if ValidType(typ) {
			t.Errorf("ValidType(%q) = true, want false", typ)
		}
	}
}
