package layout

import "github.com/mwetzel/flowcanvas/pkg/state"

// assemble runs phase 4: computed geometry becomes a fresh visual state,
// converted to the parent-relative convention. Locked prior entries win
// over the computation verbatim; prior edge geometry and the viewport pass
// through unchanged.
func (e *engine) assemble(prior *state.VisualState) *state.VisualState {
	st := state.New()

	for _, s := range e.g.Subgraphs() {
		if prior != nil {
			if ps, ok := prior.Subgraphs[s.ID]; ok && ps.Locked {
				st.Subgraphs[s.ID] = ps
				continue
			}
		}
		pos := e.subAbs[s.ID]
		if s.Parent != "" {
			parent := e.subAbs[s.Parent]
			pos = state.Point{X: pos.X - parent.X, Y: pos.Y - parent.Y}
		}
		st.Subgraphs[s.ID] = state.SubgraphState{Position: pos, Size: e.subSizes[s.ID]}
	}

	for _, n := range e.g.Nodes() {
		if prior != nil {
			if pn, ok := prior.Nodes[n.ID]; ok && pn.Locked {
				st.Nodes[n.ID] = cloneNodeState(pn)
				continue
			}
		}
		var pos state.Point
		if n.Parent != "" {
			pos = e.nodeLocal[n.ID]
		} else {
			pos = e.nodeAbs[n.ID]
		}
		size := e.nodeSizes[n.ID]
		st.Nodes[n.ID] = state.NodeState{Position: pos, Size: &size}
	}

	if prior != nil {
		for id, es := range prior.Edges {
			st.Edges[id] = cloneEdgeState(es)
		}
		if prior.Viewport != nil {
			vp := *prior.Viewport
			st.Viewport = &vp
		}
	}
	return st
}

func cloneNodeState(ns state.NodeState) state.NodeState {
	if ns.Size != nil {
		size := *ns.Size
		ns.Size = &size
	}
	return ns
}

func cloneEdgeState(es state.EdgeState) state.EdgeState {
	if es.BendPoints != nil {
		pts := make([]state.Point, len(es.BendPoints))
		copy(pts, es.BendPoints)
		es.BendPoints = pts
	}
	return es
}
