// Package graph defines the semantic diagram graph produced by the language
// model and the validation boundary that guards it.
//
// A [Model] is a flat node/edge list with no geometry. It is the only data
// shape the rest of the system trusts: the layout engine and the shape
// synthesizer both assume referential integrity and a known node type
// enumeration, so every model must pass through [Validate] (or
// [ValidateValue]) before leaving this package.
//
// # Wire Format
//
// Models use a simple node-link JSON format with exactly two top-level keys:
//
//	{
//	  "nodes": [{"id": "1", "label": "Start", "type": "start"}],
//	  "edges": [{"id": "e1", "source": "1", "target": "2", "label": "ok"}]
//	}
//
// Node types are a fixed enumeration: start, process, decision, data, end,
// default. Anything else is rejected.
//
// # Trust Boundary
//
// The producer is a language model and therefore unreliable: fields go
// missing, types drift, edges dangle. Validation is all-or-nothing - a model
// is either accepted in full or rejected with a coded error from pkg/errors.
// There is no partial repair. Parsing and semantic validation are two
// strictly separate steps: a payload can fail to parse without ever reaching
// the semantic checks, and no partially-typed value escapes the validator.
//
// Self-loops and parallel edges are structurally permitted; their geometric
// treatment is decided downstream by the layout engine and synthesizer.
//
// # Common Operations
//
//	m, err := graph.Validate(raw)          // untrusted bytes → trusted Model
//	data, _ := graph.Marshal(m)            // Model → []byte
//	m, err := graph.ReadFile("flow.json")  // file → validated Model
//	graph.WriteFile(m, "flow.json")        // Model → file
//
// # Concurrency
//
// All functions are pure; Model values are treated as immutable once
// validated and are safe for concurrent reads.
package graph
