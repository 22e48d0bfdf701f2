// Package layout computes a fresh visual state for a semantic graph.
//
// The engine is hierarchical: every subgraph's interior is laid out on its
// own with the layered algorithm from the layered subpackage, container
// sizes are propagated children-first up the parent relation, a meta-graph
// of top-level containers and standalone nodes arranges the canvas, and
// nested containers are finally packed into their parents. The result uses
// the coordinate convention of the state package: child geometry is
// parent-relative, top-level geometry is canvas-absolute.
//
// A prior visual state may be supplied; entries marked locked are
// preserved verbatim, and edge geometry plus the viewport always pass
// through untouched. The input graph is never mutated.
//
// All spacing is driven by [Spacing]; see [DefaultSpacing] for the
// documented defaults and [LoadSpacing] for TOML overrides.
package layout
