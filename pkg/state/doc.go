// Package state holds the visual state of a diagram: positions, sizes,
// bend points, and the viewport. It is the purely geometric counterpart of
// the semantic model - entries carry no identity or relationship meaning
// and reference semantic elements only through their stable IDs.
//
// Coordinate convention: a position is the top-left of an element's
// bounding box. Children of a subgraph (nodes and nested subgraphs alike)
// are positioned relative to their parent's top-left; top-level elements
// use canvas coordinates.
//
// The JSON form of a VisualState is the persistence format. Loading is
// forgiving: documents are checked against an embedded schema for type
// errors, unknown keys are dropped silently, and entries referencing IDs
// missing from the graph can be pruned with [VisualState.Prune].
package state
