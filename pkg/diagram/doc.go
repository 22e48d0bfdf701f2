// Package diagram defines the semantic graph model shared by the parsers,
// the layout engine, and the render adapter.
//
// A [Graph] holds nodes, edges, and subgraphs keyed by stable string
// identifiers. All three collections preserve insertion order, which for
// parsed graphs equals source-appearance order. The model is purely
// structural: it carries no geometry. Positions and sizes live in the
// companion state package, keyed by the same identifiers.
//
// Nodes and subgraphs come in two flavors sharing one storage: plain
// flowchart elements, and C4 elements distinguished by a non-empty C4Type
// (nodes) or BoundaryType (subgraphs). Both dialects are laid out by the
// same engine.
//
// A graph built by hand should be checked with [Graph.Validate] before
// being handed to downstream consumers. The parsers validate automatically.
package diagram
