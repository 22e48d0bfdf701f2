package layout

import (
	"github.com/mwetzel/flowcanvas/pkg/layout/layered"
	"github.com/mwetzel/flowcanvas/pkg/state"
)

// containerOf maps an edge endpoint to the vertex it stands for in an
// aggregated graph: a subgraph endpoint stands for itself, a contained
// node for its immediate parent, and a standalone node for itself.
// Aggregation deliberately uses the immediate parent, not the topmost
// ancestor - edges buried deeper in the hierarchy simply fall out of the
// aggregate, which reproduces the original engine's behavior.
func (e *engine) containerOf(id string) string {
	if e.g.HasSubgraph(id) {
		return id
	}
	if n, ok := e.g.Node(id); ok && n.Parent != "" {
		return n.Parent
	}
	return id
}

// aggregateEdges folds the semantic edges into weighted vertex pairs,
// keeping only pairs whose two sides are in the allowed vertex set.
// Self pairs and pairs where one side contains the other are skipped.
// Pair order is first appearance, so the result is deterministic.
func (e *engine) aggregateEdges(allowed map[string]bool) []layered.Edge {
	type pair struct{ from, to string }
	weights := make(map[pair]float64)
	var order []pair

	for _, edge := range e.g.Edges() {
		from := e.containerOf(edge.From)
		to := e.containerOf(edge.To)
		if from == to {
			continue
		}
		if !allowed[from] || !allowed[to] {
			continue
		}
		if e.isAncestor(from, to) || e.isAncestor(to, from) {
			continue
		}
		p := pair{from, to}
		if _, seen := weights[p]; !seen {
			order = append(order, p)
		}
		weights[p]++
	}

	out := make([]layered.Edge, len(order))
	for i, p := range order {
		out[i] = layered.Edge{From: p.from, To: p.to, Weight: weights[p]}
	}
	return out
}

// isAncestor reports whether a appears on b's parent chain.
func (e *engine) isAncestor(a, b string) bool {
	for p := e.parentOf(b); p != ""; p = e.parentOf(p) {
		if p == a {
			return true
		}
	}
	return false
}

func (e *engine) parentOf(id string) string {
	if s, ok := e.g.Subgraph(id); ok {
		return s.Parent
	}
	if n, ok := e.g.Node(id); ok {
		return n.Parent
	}
	return ""
}

// layoutMetaGraph runs phase 2: top-level subgraphs and standalone nodes
// become the vertices of a canvas-level layered layout, connected by the
// aggregated semantic edges.
func (e *engine) layoutMetaGraph() {
	allowed := make(map[string]bool)
	var vertices []layered.Node

	for _, s := range e.g.TopLevelSubgraphs() {
		size := e.subSizes[s.ID]
		vertices = append(vertices, layered.Node{ID: s.ID, W: size.Width, H: size.Height})
		allowed[s.ID] = true
	}
	for _, n := range e.g.StandaloneNodes() {
		size := e.nodeSizes[n.ID]
		vertices = append(vertices, layered.Node{ID: n.ID, W: size.Width, H: size.Height})
		allowed[n.ID] = true
	}
	if len(vertices) == 0 {
		return
	}

	dir := e.g.Meta().Direction
	nodeSep, rankSep := separations(dir, e.sp.ContainerSeparationHorizontal, e.sp.ContainerSeparationVertical)
	centers := layered.Layout(vertices, e.aggregateEdges(allowed), layered.Options{
		Direction: layered.Direction(dir),
		NodeSep:   nodeSep,
		RankSep:   rankSep,
	})

	minX, minY, _, _ := bounds(vertices, centers)
	for _, v := range vertices {
		c := centers[v.ID]
		p := state.Point{
			X: c.X - v.W/2 - minX + e.sp.MetaGraphMargin,
			Y: c.Y - v.H/2 - minY + e.sp.MetaGraphMargin,
		}
		if e.g.HasSubgraph(v.ID) {
			e.subAbs[v.ID] = p
		} else {
			e.nodeAbs[v.ID] = p
		}
	}
}
