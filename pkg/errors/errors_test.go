package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "WithoutCause",
			err:  New(ErrCodeInvalidGraph, "nodes must be an array"),
			want: "INVALID_GRAPH: nodes must be an array",
		},
		{
			name: "WithCause",
			err:  Wrap(ErrCodeAssistant, fmt.Errorf("timeout"), "chat completion failed"),
			want: "ASSISTANT_ERROR: chat completion failed: timeout",
		},
		{
			name: "FormattedMessage",
			err:  New(ErrCodeInvalidNodeType, "unknown node type: %q", "blob"),
			want: `INVALID_NODE_TYPE: unknown node type: "blob"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeDanglingEdge, "edge e1 references unknown node")

	if !Is(err, ErrCodeDanglingEdge) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeInvalidNode) {
		t.Error("Is should not match a different code")
	}
	if Is(fmt.Errorf("plain"), ErrCodeDanglingEdge) {
		t.Error("Is should not match a plain error")
	}

	// Wrapped chain
	wrapped := fmt.Errorf("outer: %w", err)
	if !Is(wrapped, ErrCodeDanglingEdge) {
		t.Error("Is should unwrap to find the code")
	}
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := Wrap(ErrCodeInternal, cause, "wrapped")

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the cause through Unwrap")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeNoDiagram, "no block")); got != ErrCodeNoDiagram {
		t.Errorf("GetCode = %q, want %q", got, ErrCodeNoDiagram)
	}
	if got := GetCode(fmt.Errorf("plain")); got != "" {
		t.Errorf("GetCode on plain error = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidEdge, "edge missing source")); got != "edge missing source" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(fmt.Errorf("plain failure")); got != "plain failure" {
		t.Errorf("UserMessage on plain error = %q", got)
	}
}
