// Package extract locates the machine-readable diagram block embedded in
// assistant free text.
//
// The assistant is prompted to wrap its graph JSON between two literal
// sentinel markers. [Extract] finds the block, parses it, and defers
// structural acceptance to the graph validator. A missing block, an
// unparsable block, or a rejected model are all the same normal outcome -
// "no diagram in this turn" - and never surface as a crash.
package extract

import (
	"strings"

	"github.com/davidblanc347/parodesign/pkg/graph"
)

// The literal sentinel markers delimiting a diagram block. Each appears
// exactly once per diagram in well-formed assistant output.
const (
	StartMarker = "<<<DIAGRAM>>>"
	EndMarker   = "<<<END_DIAGRAM>>>"
)

// Placeholder replaces a stripped diagram block in display text.
const Placeholder = "[diagram]"

// Extract returns the validated graph model embedded in responseText, or
// false when the text carries no usable diagram. The second return is false
// when either marker is absent, the block is not valid JSON, or the parsed
// payload fails validation; none of these propagate an error because an
// assistant turn without a diagram is an expected outcome, not a failure.
func Extract(responseText string) (graph.Model, bool) {
	block, ok := block(responseText)
	if !ok {
		return graph.Model{}, false
	}
	m, err := graph.Validate([]byte(block))
	if err != nil {
		return graph.Model{}, false
	}
	return m, true
}

// ExtractErr behaves like [Extract] but reports why extraction failed, for
// hosts that want to log or display the rejection reason. Absent markers
// yield a zero model with a nil error; validation failures pass through the
// validator's coded error.
func ExtractErr(responseText string) (graph.Model, bool, error) {
	block, ok := block(responseText)
	if !ok {
		return graph.Model{}, false, nil
	}
	m, err := graph.Validate([]byte(block))
	if err != nil {
		return graph.Model{}, false, err
	}
	return m, true, nil
}

// StripMarkers returns responseText with the delimited block (markers
// inclusive) replaced by a short placeholder, for transcript display.
// Text without both markers is returned unchanged, trimmed.
func StripMarkers(responseText string) string {
	start, end, ok := span(responseText)
	if !ok {
		return strings.TrimSpace(responseText)
	}
	stripped := responseText[:start] + Placeholder + responseText[end:]
	return strings.TrimSpace(stripped)
}

// HasDiagram reports whether both markers are present, without parsing.
func HasDiagram(responseText string) bool {
	_, _, ok := span(responseText)
	return ok
}

// block returns the text strictly between the markers.
func block(text string) (string, bool) {
	start, end, ok := span(text)
	if !ok {
		return "", false
	}
	return text[start+len(StartMarker) : end-len(EndMarker)], true
}

// span returns the byte range covering the block inclusive of markers.
func span(text string) (int, int, bool) {
	start := strings.Index(text, StartMarker)
	if start < 0 {
		return 0, 0, false
	}
	rest := text[start+len(StartMarker):]
	endRel := strings.Index(rest, EndMarker)
	if endRel < 0 {
		return 0, 0, false
	}
	end := start + len(StartMarker) + endRel + len(EndMarker)
	return start, end, true
}
