package state

// Point is a 2D coordinate in canvas units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a width/height pair in canvas units.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NodeState is the geometry of one node. Size is optional - a missing size
// means the renderer may measure the node itself. Locked instructs
// auto-layout to preserve the entry verbatim.
type NodeState struct {
	Position Point `json:"position"`
	Size     *Size `json:"size,omitempty"`
	Locked   bool  `json:"locked,omitempty"`
}

// EdgeState is the geometry of one edge. Bend points are advisory; a
// renderer may route the edge itself.
type EdgeState struct {
	BendPoints []Point `json:"bendPoints,omitempty"`
}

// SubgraphState is the geometry of one subgraph container.
type SubgraphState struct {
	Position Point `json:"position"`
	Size     Size  `json:"size"`
	Locked   bool  `json:"locked,omitempty"`
}

// Viewport is the camera: zoom factor plus pan offset.
type Viewport struct {
	Zoom float64 `json:"zoom"`
	Pan  Point   `json:"pan"`
}

// VisualState assigns geometry to the elements of one semantic graph.
type VisualState struct {
	Nodes     map[string]NodeState     `json:"nodes"`
	Edges     map[string]EdgeState     `json:"edges"`
	Subgraphs map[string]SubgraphState `json:"subgraphs"`
	Viewport  *Viewport                `json:"viewport,omitempty"`
}

// New returns an empty visual state with initialized maps.
func New() *VisualState {
	return &VisualState{
		Nodes:     make(map[string]NodeState),
		Edges:     make(map[string]EdgeState),
		Subgraphs: make(map[string]SubgraphState),
	}
}

// init ensures maps decoded from partial JSON are never nil.
func (s *VisualState) init() {
	if s.Nodes == nil {
		s.Nodes = make(map[string]NodeState)
	}
	if s.Edges == nil {
		s.Edges = make(map[string]EdgeState)
	}
	if s.Subgraphs == nil {
		s.Subgraphs = make(map[string]SubgraphState)
	}
}
