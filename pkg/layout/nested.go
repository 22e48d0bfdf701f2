package layout

import (
	"github.com/mwetzel/flowcanvas/pkg/diagram"
	"github.com/mwetzel/flowcanvas/pkg/layout/layered"
	"github.com/mwetzel/flowcanvas/pkg/state"
)

// placeNested runs phase 3: starting from the top-level containers placed
// by the meta-graph, each positioned parent packs its direct child
// subgraphs until no positionable subgraph remains. The pass count is
// bounded to guarantee termination.
func (e *engine) placeNested() {
	positioned := make(map[string]bool, len(e.subAbs))
	for id := range e.subAbs {
		positioned[id] = true
	}

	for pass := 0; pass < maxNestingPasses; pass++ {
		progress := false
		for _, s := range e.g.Subgraphs() {
			if !positioned[s.ID] {
				continue
			}
			var kids []*diagram.Subgraph
			for _, kid := range e.g.ChildSubgraphs(s.ID) {
				if !positioned[kid.ID] {
					kids = append(kids, kid)
				}
			}
			if len(kids) == 0 {
				continue
			}
			e.placeChildren(s, kids, positioned)
			progress = true
		}
		if !progress {
			break
		}
	}
}

// placeChildren lays the given child subgraphs out inside their parent and
// records their canvas-absolute positions.
func (e *engine) placeChildren(parent *diagram.Subgraph, kids []*diagram.Subgraph, positioned map[string]bool) {
	sp := e.sp

	allowed := make(map[string]bool, len(kids))
	vertices := make([]layered.Node, len(kids))
	for i, kid := range kids {
		size := e.subSizes[kid.ID]
		vertices[i] = layered.Node{ID: kid.ID, W: size.Width, H: size.Height}
		allowed[kid.ID] = true
	}

	edges := e.aggregateEdges(allowed)
	if len(edges) == 0 {
		// No connectivity between the siblings: chain them in appearance
		// order so the arrangement is still stable.
		for i := 0; i+1 < len(kids); i++ {
			edges = append(edges, layered.Edge{From: kids[i].ID, To: kids[i+1].ID})
		}
	}

	dir := e.direction(parent)
	nodeSep, rankSep := separations(dir, sp.NestedSubgraphSeparationHorizontal, sp.NestedSubgraphSeparationVertical)
	centers := layered.Layout(vertices, edges, layered.Options{
		Direction: layered.Direction(dir),
		NodeSep:   nodeSep,
		RankSep:   rankSep,
	})

	minX, minY, maxX, maxY := bounds(vertices, centers)
	parentSize := e.subSizes[parent.ID]

	// The content origin clears the parent's own node content along the
	// rank direction and centers the children on the cross axis.
	var origin state.Point
	if dir.Horizontal() {
		candidate := 0.0
		if right := e.nodeContentRight(parent); right > 0 {
			candidate = right + sp.MixedContentHorizontalSpacing
		}
		origin.X = maxf(sp.SubgraphPadding, candidate)
		origin.Y = (parentSize.Height - (maxY - minY)) / 2
	} else {
		candidate := 0.0
		if bottom := e.nodeContentBottom(parent); bottom > 0 {
			candidate = bottom + sp.MixedContentVerticalSpacing
		}
		origin.Y = maxf(sp.SubgraphPadding+sp.SubgraphHeaderHeight, candidate)
		origin.X = (parentSize.Width - (maxX - minX)) / 2
	}

	parentAbs := e.subAbs[parent.ID]
	for i, kid := range kids {
		v := vertices[i]
		c := centers[v.ID]
		e.subAbs[kid.ID] = state.Point{
			X: parentAbs.X + origin.X + (c.X - v.W/2 - minX),
			Y: parentAbs.Y + origin.Y + (c.Y - v.H/2 - minY),
		}
		positioned[kid.ID] = true
	}
}

// nodeContentBottom returns the lowest edge of the parent's direct node
// content in local coordinates, or 0 when the parent holds no nodes.
func (e *engine) nodeContentBottom(s *diagram.Subgraph) float64 {
	bottom := 0.0
	for _, n := range e.g.ChildNodes(s.ID) {
		p := e.nodeLocal[n.ID]
		if v := p.Y + e.nodeSizes[n.ID].Height; v > bottom {
			bottom = v
		}
	}
	return bottom
}

// nodeContentRight is the horizontal counterpart of nodeContentBottom.
func (e *engine) nodeContentRight(s *diagram.Subgraph) float64 {
	right := 0.0
	for _, n := range e.g.ChildNodes(s.ID) {
		p := e.nodeLocal[n.ID]
		if v := p.X + e.nodeSizes[n.ID].Width; v > right {
			right = v
		}
	}
	return right
}
