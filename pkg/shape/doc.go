// Package shape materializes a layout result into drawable instructions for
// an external drawing surface.
//
// [Synthesize] maps every positioned node to one shape-creation instruction
// (fresh unique id, primitive kind, absolute box, label) and every
// resolvable edge to one connector instruction (two endpoint coordinates
// bound to the endpoint shapes, optional label). The output is a [Batch],
// applied atomically by the drawing surface so a half-drawn diagram is
// never observed.
//
// # Primitive Kinds
//
// The node-type → primitive mapping is fixed and exhaustive:
//
//	decision      → diamond
//	start, end    → ellipse
//	data          → trapezoid
//	process, rest → rectangle
//
// # Degradation Policy
//
// An edge whose endpoints cannot be resolved through the id map is dropped
// from the batch while all node shapes survive; the dropped edge ids are
// reported in Batch.SkippedEdges for the caller to log. This cannot happen
// for a validated model and exists as defense in depth.
//
// # Identifiers
//
// Shape ids are freshly generated UUIDs on every call: synthesizing the
// same layout twice yields structurally identical batches that differ only
// in ids. Equivalence tests compare boxes, kinds, and labels, never ids.
package shape
