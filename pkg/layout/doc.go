// Package layout computes a layered (Sugiyama-style) drawing for a validated
// diagram graph.
//
// The engine consumes a trusted [graph.Model] plus [Options] and produces a
// [Result]: every node positioned with a top-left origin box, edges passed
// through untouched (connector geometry is resolved downstream from the two
// endpoint boxes).
//
// # Algorithm
//
// The pipeline runs in fixed stages:
//
//  1. Split the model into weakly connected components (laid out
//     independently and stacked so bounding boxes never intersect).
//  2. Classify back edges via DFS so cycles cannot stall ranking; back
//     edges are excluded from layering only, never from the result.
//  3. Assign ranks by longest path using a topological (Kahn) traversal.
//  4. Order nodes within each rank with deterministic barycenter sweeps
//     to reduce edge crossings. Optimality is not attempted.
//  5. Assign coordinates: nodes spaced by NodeSpacing along the
//     perpendicular axis, ranks spaced by RankSpacing; axis roles swap
//     with Direction, and BT/RL reverse the rank axis.
//
// Internally all math is node-center based; the public Result converts to
// top-left origins at the boundary.
//
// # Guarantees
//
//   - Deterministic: identical (model, options) yields identical output.
//     There is no randomized tie-breaking; ties fall back to model order.
//   - Total: the engine has no failure path for a validated model. The
//     empty model yields an empty result; a single node lands at rank 0.
//   - Self-loops impose no layering or ordering constraint.
//
// All functions are pure and safe for concurrent use.
package layout
