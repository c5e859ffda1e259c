// Package pipeline orchestrates the extract → validate → layout →
// synthesize flow shared by the CLI, the HTTP API, and the chat server.
//
// # Architecture
//
// A turn starts from assistant response text and moves through four stages:
//
//  1. Extract: find the marker-delimited diagram block, if any
//  2. Validate: parse and validate the block into a graph model
//  3. Layout: compute deterministic positions for the model
//  4. Synthesize: materialize the layout into a drawable shape batch
//
// Extraction failure is not an error: a response without a valid diagram
// block is a plain chat message and the turn completes with no batch.
// Layout and synthesis are deterministic, so their results are cached by
// content hash; synthesized batches get fresh ids on every cache hit.
//
// # Usage
//
// Create a Runner and process a response:
//
//	runner := pipeline.NewRunner(cache, gen, logger)
//	result, err := runner.ProcessResponse(ctx, responseText, opts)
//	if err != nil {
//	    return err
//	}
//	if result.Found {
//	    apply(result.Batch)
//	}
//
// Or run a full turn, assistant call included:
//
//	result, err := runner.RunTurn(ctx, "draw a login flow", opts)
package pipeline

import (
	"time"

	"github.com/davidblanc347/parodesign/pkg/graph"
	"github.com/davidblanc347/parodesign/pkg/layout"
	"github.com/davidblanc347/parodesign/pkg/shape"
)

// Options configures one pipeline run.
// The struct supports JSON serialization for API requests.
type Options struct {
	// Layout parameters. Zero values are filled from layout defaults.
	Layout layout.Options `json:"layout"`

	// Refresh bypasses the cache for this run.
	Refresh bool `json:"refresh,omitempty"`
}

// ValidateAndSetDefaults fills zero-valued layout fields and validates the
// result.
func (o *Options) ValidateAndSetDefaults() error {
	o.Layout = o.Layout.WithDefaults()
	return o.Layout.Validate()
}

// Result is the outcome of one pipeline run.
type Result struct {
	// Response is the raw assistant text the run started from.
	Response string `json:"response"`

	// Found reports whether the response carried a valid diagram block.
	// When false, every field below is zero.
	Found bool `json:"found"`

	// Rejected reports that a block was present but failed parsing or
	// validation. Implies Found == false.
	Rejected bool `json:"rejected,omitempty"`

	Model     graph.Model   `json:"model,omitempty"`
	ModelHash string        `json:"model_hash,omitempty"`
	Layout    layout.Result `json:"layout,omitempty"`
	Batch     shape.Batch   `json:"batch,omitempty"`

	Stats     Stats     `json:"stats"`
	CacheInfo CacheInfo `json:"cache_info"`
}

// Stats captures per-stage timing and graph size.
type Stats struct {
	ExtractTime    time.Duration `json:"extract_time"`
	LayoutTime     time.Duration `json:"layout_time"`
	SynthesizeTime time.Duration `json:"synthesize_time"`
	NodeCount      int           `json:"node_count"`
	EdgeCount      int           `json:"edge_count"`
}

// CacheInfo reports which stages were served from cache.
type CacheInfo struct {
	LayoutHit bool `json:"layout_hit"`
	BatchHit  bool `json:"batch_hit"`
}
