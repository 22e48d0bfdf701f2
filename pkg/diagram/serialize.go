package diagram

// Document is the flat serialization form of a [Graph], used by the CLI and
// API callers. Collections are emitted as arrays in insertion order so the
// output is deterministic and preserves source-appearance order.
type Document struct {
	Direction string         `json:"direction"`
	Title     string         `json:"title,omitempty"`
	Dialect   string         `json:"dialect"`
	Nodes     []NodeJSON     `json:"nodes"`
	Edges     []EdgeJSON     `json:"edges"`
	Subgraphs []SubgraphJSON `json:"subgraphs,omitempty"`
}

// NodeJSON is the serialization form of a [Node].
type NodeJSON struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	Shape       string   `json:"shape"`
	Parent      string   `json:"parent,omitempty"`
	C4Type      string   `json:"c4Type,omitempty"`
	Description string   `json:"description,omitempty"`
	Technology  string   `json:"technology,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// EdgeJSON is the serialization form of an [Edge].
type EdgeJSON struct {
	ID          string   `json:"id"`
	From        string   `json:"from"`
	To          string   `json:"to"`
	Label       string   `json:"label,omitempty"`
	Kind        string   `json:"kind"`
	Technology  string   `json:"technology,omitempty"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// SubgraphJSON is the serialization form of a [Subgraph].
type SubgraphJSON struct {
	ID        string   `json:"id"`
	Label     string   `json:"label,omitempty"`
	Parent    string   `json:"parent,omitempty"`
	Children  []string `json:"children"`
	Direction string   `json:"direction,omitempty"`
	Boundary  string   `json:"boundaryType,omitempty"`
}

// Export converts a graph to its serialization form.
func Export(g *Graph) Document {
	meta := g.Meta()
	doc := Document{
		Direction: string(meta.Direction),
		Title:     meta.Title,
		Dialect:   string(meta.Dialect),
		Nodes:     make([]NodeJSON, 0, g.NodeCount()),
		Edges:     make([]EdgeJSON, 0, g.EdgeCount()),
	}
	for _, n := range g.Nodes() {
		doc.Nodes = append(doc.Nodes, NodeJSON{
			ID:          n.ID,
			Label:       n.Label,
			Shape:       string(n.Shape),
			Parent:      n.Parent,
			C4Type:      string(n.C4Type),
			Description: n.Description,
			Technology:  n.Technology,
			Tags:        n.Tags,
		})
	}
	for _, e := range g.Edges() {
		doc.Edges = append(doc.Edges, EdgeJSON{
			ID:          e.ID,
			From:        e.From,
			To:          e.To,
			Label:       e.Label,
			Kind:        string(e.Kind),
			Technology:  e.Technology,
			Description: e.Description,
			Tags:        e.Tags,
		})
	}
	for _, s := range g.Subgraphs() {
		doc.Subgraphs = append(doc.Subgraphs, SubgraphJSON{
			ID:        s.ID,
			Label:     s.Label,
			Parent:    s.Parent,
			Children:  s.Children,
			Direction: string(s.Direction),
			Boundary:  string(s.Boundary),
		})
	}
	return doc
}
