// Package layered implements a deterministic Sugiyama-style layered graph
// layout: vertices are assigned to ranks along a main axis, ordered within
// ranks to reduce edge crossings, and given coordinates from their sizes
// and the configured separations.
//
// The algorithm is intentionally order-sensitive: vertices and edges are
// processed in the order given, and every tie breaks by input position.
// Identical input therefore always produces identical output, which the
// surrounding engine relies on for stable relayouts.
//
// Cycles are tolerated - back edges found by a depth-first sweep are
// ignored for ranking and ordering, matching how the rest of the system
// treats semantic edges as an arbitrary directed graph.
package layered
