package render

import (
	"github.com/mwetzel/flowcanvas/pkg/diagram"
	"github.com/mwetzel/flowcanvas/pkg/state"
)

// subgraphPrefix namespaces container record IDs away from node IDs.
const subgraphPrefix = "subgraph-"

var cardinalSides = []string{"top", "right", "bottom", "left"}

// ToRenderer translates a graph and its visual state into renderer
// records. Containers are emitted before leaves so a renderer resolving
// parent references in order sees every parent first. The call never
// fails; elements without a state entry render at the origin.
func ToRenderer(g *diagram.Graph, st *state.VisualState) Records {
	if st == nil {
		st = state.New()
	}

	records := Records{
		Nodes: make([]NodeRecord, 0, g.SubgraphCount()+g.NodeCount()),
		Edges: make([]EdgeRecord, 0, g.EdgeCount()),
	}

	for i, s := range g.Subgraphs() {
		ss := st.Subgraphs[s.ID]
		rec := NodeRecord{
			ID:        subgraphPrefix + s.ID,
			Kind:      KindContainer,
			Label:     s.Label,
			Position:  ss.Position,
			Width:     ss.Size.Width,
			Height:    ss.Size.Height,
			Draggable: !ss.Locked,
			Color:     subgraphColor(s, i),
		}
		if s.Parent != "" {
			rec.ParentNode = subgraphPrefix + s.Parent
		}
		records.Nodes = append(records.Nodes, rec)
	}

	for _, n := range g.Nodes() {
		ns := st.Nodes[n.ID]
		rec := NodeRecord{
			ID:            n.ID,
			Kind:          KindNode,
			Label:         n.Label,
			Position:      ns.Position,
			Shape:         string(n.Shape),
			Draggable:     !ns.Locked,
			SourceHandles: handles("source"),
			TargetHandles: handles("target"),
			Color:         nodeColor(n),
		}
		if ns.Size != nil {
			rec.Width = ns.Size.Width
			rec.Height = ns.Size.Height
		}
		if n.Parent != "" {
			rec.ParentNode = subgraphPrefix + n.Parent
		}
		records.Nodes = append(records.Nodes, rec)
	}

	for i, e := range g.Edges() {
		rec := EdgeRecord{
			ID:         e.ID,
			Source:     endpointID(g, e.From),
			Target:     endpointID(g, e.To),
			Label:      e.Label,
			Kind:       string(e.Kind),
			Technology: e.Technology,
			Color:      edgeColor(i),
		}
		if es, ok := st.Edges[e.ID]; ok {
			rec.BendPoints = es.BendPoints
		}
		records.Edges = append(records.Edges, rec)
	}

	return records
}

// endpointID rewrites an endpoint to the container record ID when it names
// a subgraph.
func endpointID(g *diagram.Graph, id string) string {
	if g.HasSubgraph(id) {
		return subgraphPrefix + id
	}
	return id
}

func handles(role string) []string {
	out := make([]string, len(cardinalSides))
	for i, side := range cardinalSides {
		out[i] = role + "-" + side
	}
	return out
}
