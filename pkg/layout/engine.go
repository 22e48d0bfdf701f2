package layout

import (
	"github.com/mwetzel/flowcanvas/pkg/diagram"
	"github.com/mwetzel/flowcanvas/pkg/layout/layered"
	"github.com/mwetzel/flowcanvas/pkg/state"
)

// maxNestingPasses bounds the nested-placement fixed point so a degenerate
// parent chain can never spin forever.
const maxNestingPasses = 100

// Option configures the engine.
type Option func(*engine)

// WithSpacing overrides the default spacing configuration.
func WithSpacing(s Spacing) Option {
	return func(e *engine) { e.sp = s }
}

// WithMeasurer installs a text measurer for node sizing.
func WithMeasurer(m Measurer) Option {
	return func(e *engine) { e.measure = m }
}

// AutoLayout computes a fresh visual state for g. A prior state may be nil;
// when given, locked entries are preserved verbatim and edge geometry plus
// the viewport pass through unchanged. Neither g nor prior is mutated.
//
// The call is infallible: an empty graph yields an empty state.
func AutoLayout(g *diagram.Graph, prior *state.VisualState, opts ...Option) *state.VisualState {
	e := &engine{
		g:         g,
		sp:        DefaultSpacing(),
		nodeSizes: make(map[string]state.Size),
		nodeLocal: make(map[string]state.Point),
		subSizes:  make(map[string]state.Size),
		subAbs:    make(map[string]state.Point),
		nodeAbs:   make(map[string]state.Point),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.measureNodes()
	e.layoutInteriors()
	e.enlargeParents()
	e.layoutMetaGraph()
	e.placeNested()
	return e.assemble(prior)
}

// engine is the scratch state of one layout run. All maps are owned by the
// run and never escape.
type engine struct {
	g       *diagram.Graph
	sp      Spacing
	measure Measurer

	nodeSizes map[string]state.Size
	nodeLocal map[string]state.Point // parent-relative top-left of contained nodes
	subSizes  map[string]state.Size
	subAbs    map[string]state.Point // canvas-absolute top-left of subgraphs
	nodeAbs   map[string]state.Point // canvas-absolute top-left of standalone nodes
}

func (e *engine) direction(s *diagram.Subgraph) diagram.Direction {
	if s != nil && s.Direction != "" {
		return s.Direction
	}
	return e.g.Meta().Direction
}

// separations maps the configured horizontal/vertical pair onto the
// layered algorithm's cross/main axes for the given rank direction.
func separations(dir diagram.Direction, horiz, vert float64) (nodeSep, rankSep float64) {
	if dir.Horizontal() {
		return vert, horiz
	}
	return horiz, vert
}

func (e *engine) measureNodes() {
	for _, n := range e.g.Nodes() {
		e.nodeSizes[n.ID] = nodeSize(n, e.measure)
	}
}

// layoutInteriors runs phase 1: a layered layout of each subgraph's direct
// child nodes, producing parent-relative node positions and the initial
// content-driven subgraph size.
func (e *engine) layoutInteriors() {
	for _, s := range e.g.Subgraphs() {
		e.layoutInterior(s)
	}
}

func (e *engine) layoutInterior(s *diagram.Subgraph) {
	sp := e.sp
	children := e.g.ChildNodes(s.ID)

	if len(children) == 0 {
		e.subSizes[s.ID] = state.Size{
			Width:  2*sp.SubgraphPadding + 4,
			Height: 2*sp.SubgraphPadding + sp.SubgraphHeaderHeight + sp.SubgraphContentTopMargin + 4,
		}
		return
	}

	inside := make(map[string]bool, len(children))
	vertices := make([]layered.Node, 0, len(children))
	for _, n := range children {
		inside[n.ID] = true
		size := e.nodeSizes[n.ID]
		vertices = append(vertices, layered.Node{ID: n.ID, W: size.Width, H: size.Height})
	}

	var edges []layered.Edge
	for _, edge := range e.g.Edges() {
		if inside[edge.From] && inside[edge.To] {
			edges = append(edges, layered.Edge{From: edge.From, To: edge.To})
		}
	}

	dir := e.direction(s)
	nodeSep, rankSep := separations(dir, sp.NodeSeparationHorizontal, sp.NodeSeparationVertical)
	centers := layered.Layout(vertices, edges, layered.Options{
		Direction: layered.Direction(dir),
		NodeSep:   nodeSep,
		RankSep:   rankSep,
	})

	minX, minY, maxX, maxY := bounds(vertices, centers)
	for _, v := range vertices {
		c := centers[v.ID]
		e.nodeLocal[v.ID] = state.Point{
			X: c.X - v.W/2 - minX + sp.SubgraphPadding,
			Y: c.Y - v.H/2 - minY + sp.SubgraphPadding + sp.SubgraphHeaderHeight + sp.SubgraphContentTopMargin,
		}
	}
	e.subSizes[s.ID] = state.Size{
		Width:  (maxX - minX) + 2*sp.SubgraphPadding + 4,
		Height: (maxY - minY) + 2*sp.SubgraphPadding + sp.SubgraphHeaderHeight + sp.SubgraphContentTopMargin + 4,
	}
}

func bounds(vertices []layered.Node, centers map[string]layered.Point) (minX, minY, maxX, maxY float64) {
	first := true
	for _, v := range vertices {
		c, ok := centers[v.ID]
		if !ok {
			continue
		}
		l, t := c.X-v.W/2, c.Y-v.H/2
		r, b := c.X+v.W/2, c.Y+v.H/2
		if first {
			minX, minY, maxX, maxY = l, t, r, b
			first = false
			continue
		}
		if l < minX {
			minX = l
		}
		if t < minY {
			minY = t
		}
		if r > maxX {
			maxX = r
		}
		if b > maxY {
			maxY = b
		}
	}
	return minX, minY, maxX, maxY
}

// enlargeParents runs phase 1b: walking the hierarchy children-first, each
// parent grows to fit the estimated bounding box of its child subgraphs
// next to its own node content, and every subgraph is floored to the
// minimum container size.
func (e *engine) enlargeParents() {
	for _, s := range e.subgraphsDeepestFirst() {
		size := e.subSizes[s.ID]
		kids := e.g.ChildSubgraphs(s.ID)
		if len(kids) > 0 {
			estW, estH := e.estimateNestedBox(s, kids)
			if e.direction(s).Horizontal() {
				size.Width += estW + e.sp.MixedContentHorizontalSpacing
				size.Height = maxf(size.Height, estH+2*e.sp.NestedContentMargin)
			} else {
				size.Width = maxf(size.Width, estW+2*e.sp.NestedContentMargin)
				size.Height += estH + e.sp.MixedContentVerticalSpacing
			}
		}
		size.Width = maxf(size.Width, MinSubgraphWidth)
		size.Height = maxf(size.Height, MinSubgraphHeight)
		e.subSizes[s.ID] = size
	}
}

// estimateNestedBox approximates the area the child subgraphs will occupy:
// side by side across the parent's rank direction.
func (e *engine) estimateNestedBox(s *diagram.Subgraph, kids []*diagram.Subgraph) (w, h float64) {
	horizontal := e.direction(s).Horizontal()
	for i, kid := range kids {
		size := e.subSizes[kid.ID]
		if horizontal {
			if i > 0 {
				h += e.sp.NestedSubgraphSeparationVertical
			}
			h += size.Height
			w = maxf(w, size.Width)
		} else {
			if i > 0 {
				w += e.sp.NestedSubgraphSeparationHorizontal
			}
			w += size.Width
			h = maxf(h, size.Height)
		}
	}
	return w, h
}

// subgraphsDeepestFirst orders subgraphs so children always precede their
// parents; insertion order breaks ties within one depth.
func (e *engine) subgraphsDeepestFirst() []*diagram.Subgraph {
	subs := e.g.Subgraphs()
	depth := make(map[string]int, len(subs))
	var depthOf func(id string) int
	depthOf = func(id string) int {
		if d, ok := depth[id]; ok {
			return d
		}
		depth[id] = 0 // guards against malformed parent chains
		s, ok := e.g.Subgraph(id)
		d := 0
		if ok && s.Parent != "" {
			d = depthOf(s.Parent) + 1
		}
		depth[id] = d
		return d
	}

	maxDepth := 0
	for _, s := range subs {
		if d := depthOf(s.ID); d > maxDepth {
			maxDepth = d
		}
	}

	var out []*diagram.Subgraph
	for d := maxDepth; d >= 0; d-- {
		for _, s := range subs {
			if depth[s.ID] == d {
				out = append(out, s)
			}
		}
	}
	return out
}
