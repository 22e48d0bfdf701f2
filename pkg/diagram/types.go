package diagram

// Dialect identifies the surface syntax a graph was parsed from.
type Dialect string

const (
	DialectFlowchart Dialect = "flowchart"
	DialectC4Context Dialect = "c4context"
)

// Direction is the rank direction of a graph or subgraph.
type Direction string

const (
	DirectionTB Direction = "TB" // top to bottom
	DirectionBT Direction = "BT" // bottom to top
	DirectionLR Direction = "LR" // left to right
	DirectionRL Direction = "RL" // right to left
)

// Horizontal reports whether the direction ranks left/right rather than
// top/bottom.
func (d Direction) Horizontal() bool { return d == DirectionLR || d == DirectionRL }

// Meta carries graph-level attributes set by the parser.
type Meta struct {
	Direction Direction
	Title     string
	Dialect   Dialect
}

// NodeShape classifies how a flowchart node is drawn.
type NodeShape string

const (
	ShapeRect    NodeShape = "rect"
	ShapeRound   NodeShape = "round"
	ShapeStadium NodeShape = "stadium"
	ShapeCircle  NodeShape = "circle"
	ShapeDiamond NodeShape = "diamond"
)

// C4Type classifies a C4-Context node. The empty string marks a plain
// flowchart node; its presence is the discriminator between the two node
// flavors.
type C4Type string

const (
	C4Person         C4Type = "person"
	C4PersonExt      C4Type = "person_ext"
	C4System         C4Type = "system"
	C4SystemExt      C4Type = "system_ext"
	C4SystemDb       C4Type = "system_db"
	C4SystemQueue    C4Type = "system_queue"
	C4Container      C4Type = "container"
	C4ContainerExt   C4Type = "container_ext"
	C4ContainerDb    C4Type = "container_db"
	C4ContainerQueue C4Type = "container_queue"
	C4Component      C4Type = "component"
	C4ComponentExt   C4Type = "component_ext"
	C4ComponentDb    C4Type = "component_db"
	C4ComponentQueue C4Type = "component_queue"
)

// Node is a vertex of the semantic graph. Parent, when non-empty, names the
// subgraph that directly contains the node.
//
// The C4 fields (C4Type, Description, Technology, Tags) are populated only
// for nodes produced by the C4-Context parser.
type Node struct {
	ID          string
	Label       string
	Shape       NodeShape
	Parent      string
	C4Type      C4Type
	Description string
	Technology  string
	Tags        []string
}

// IsC4 reports whether the node carries C4 semantics.
func (n *Node) IsC4() bool { return n.C4Type != "" }

// EdgeKind distinguishes one-way from two-way edges.
type EdgeKind string

const (
	EdgeDirected      EdgeKind = "directed"
	EdgeBidirectional EdgeKind = "bidirectional"
)

// Edge is a typed connection between two endpoints. Each endpoint names
// either a node or a subgraph. Edge IDs are synthesized by the parsers as
// "e-{from}-{to}-{index}" with a document-wide occurrence index.
//
// Technology, Description, and Tags are populated only by the C4 parser.
type Edge struct {
	ID          string
	From        string
	To          string
	Label       string
	Kind        EdgeKind
	Technology  string
	Description string
	Tags        []string
}

// BoundaryType classifies a C4 boundary. The empty string marks a plain
// flowchart subgraph.
type BoundaryType string

const (
	BoundaryEnterprise BoundaryType = "enterprise"
	BoundarySystem     BoundaryType = "system"
	BoundaryContainer  BoundaryType = "container"
	BoundaryGeneric    BoundaryType = "boundary"
)

// Subgraph is a named container grouping child nodes. C4 boundaries share
// this type, distinguished by a non-empty Boundary field.
//
// Children lists only direct node children, in appearance order. Nested
// subgraphs are discovered through their own Parent field, never through a
// child list.
type Subgraph struct {
	ID        string
	Label     string
	Parent    string
	Children  []string
	Direction Direction
	Boundary  BoundaryType
}

// IsBoundary reports whether the subgraph is a C4 boundary.
func (s *Subgraph) IsBoundary() bool { return s.Boundary != "" }
