package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Model Serialization API
// =============================================================================

// Marshal converts a validated Model to indented JSON bytes.
func Marshal(m Model) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeModelTo(m, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write writes a Model as JSON to an io.Writer.
func Write(m Model, w io.Writer) error {
	return writeModelTo(m, w)
}

// WriteFile writes a Model to a JSON file.
// The file is created with 0644 permissions.
func WriteFile(m Model, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeModelTo(m, f)
}

// Read decodes and validates a JSON model from an io.Reader.
// The payload goes through the full [Validate] trust boundary, so malformed
// or referentially broken graphs are rejected with coded errors.
func Read(r io.Reader) (Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Model{}, fmt.Errorf("read: %w", err)
	}
	return Validate(data)
}

// ReadFile reads a JSON file and returns the validated Model.
func ReadFile(path string) (Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return Model{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Hash returns a stable content hash of the model, suitable for cache keys.
// Node and edge order is significant: the layout engine is order-sensitive,
// so two models with reordered nodes are distinct cache entries.
func Hash(m Model) string {
	data, _ := json.Marshal(m)
	return hashBytes(data)
}

func writeModelTo(m Model, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
