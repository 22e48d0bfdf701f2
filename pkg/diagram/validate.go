package diagram

import "fmt"

// Validate checks the structural invariants of the graph and returns nil if
// all hold:
//
//  1. Every edge endpoint references an existing node or subgraph.
//  2. Every non-empty parent references an existing subgraph.
//  3. The parent relation over subgraphs is acyclic.
//  4. Every entry of a subgraph's child list is a node whose Parent field
//     points back at that subgraph.
//
// A node or subgraph can never hold more than one parent - the Parent field
// is scalar - so single-parenthood needs no separate check.
func (g *Graph) Validate() error {
	if err := g.validateEndpoints(); err != nil {
		return err
	}
	if err := g.validateParents(); err != nil {
		return err
	}
	if err := g.detectParentCycles(); err != nil {
		return err
	}
	return g.validateChildLists()
}

func (g *Graph) validateEndpoints() error {
	for _, id := range g.edgeOrder {
		e := g.edges[id]
		for _, end := range []string{e.From, e.To} {
			if !g.HasNode(end) && !g.HasSubgraph(end) {
				return fmt.Errorf("edge %s endpoint %q: %w", e.ID, end, ErrUnknownEndpoint)
			}
		}
	}
	return nil
}

func (g *Graph) validateParents() error {
	for _, id := range g.nodeOrder {
		if p := g.nodes[id].Parent; p != "" && !g.HasSubgraph(p) {
			return fmt.Errorf("node %s parent %q: %w", id, p, ErrUnknownParent)
		}
	}
	for _, id := range g.subgraphOrder {
		if p := g.subgraphs[id].Parent; p != "" && !g.HasSubgraph(p) {
			return fmt.Errorf("subgraph %s parent %q: %w", id, p, ErrUnknownParent)
		}
	}
	return nil
}

// detectParentCycles walks the parent chain of every subgraph. The chain is
// a function (each subgraph has one parent), so cycle detection reduces to
// following the chain with a visited set per start.
func (g *Graph) detectParentCycles() error {
	for _, id := range g.subgraphOrder {
		seen := map[string]bool{id: true}
		for p := g.subgraphs[id].Parent; p != ""; {
			if seen[p] {
				return fmt.Errorf("subgraph %s: %w", id, ErrParentCycle)
			}
			seen[p] = true
			next, ok := g.subgraphs[p]
			if !ok {
				break // reported by validateParents
			}
			p = next.Parent
		}
	}
	return nil
}

func (g *Graph) validateChildLists() error {
	for _, id := range g.subgraphOrder {
		s := g.subgraphs[id]
		for _, child := range s.Children {
			n, ok := g.nodes[child]
			if !ok {
				return fmt.Errorf("subgraph %s child %q: %w", id, child, ErrChildMismatch)
			}
			if n.Parent != s.ID {
				return fmt.Errorf("subgraph %s child %q has parent %q: %w", id, child, n.Parent, ErrChildMismatch)
			}
		}
	}
	return nil
}
