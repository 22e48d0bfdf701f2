package render

import "github.com/mwetzel/flowcanvas/pkg/state"

// Record kinds.
const (
	KindNode      = "node"
	KindContainer = "container"
)

// NodeRecord is one renderable element: a leaf node or a subgraph
// container. Positions follow the state package convention - relative to
// ParentNode when set, canvas-absolute otherwise.
type NodeRecord struct {
	ID         string      `json:"id"`
	Kind       string      `json:"kind"`
	Label      string      `json:"label"`
	Position   state.Point `json:"position"`
	Width      float64     `json:"width"`
	Height     float64     `json:"height"`
	Shape      string      `json:"shape,omitempty"`
	ParentNode string      `json:"parentNode,omitempty"`
	Draggable  bool        `json:"draggable"`

	// Connection points on the four cardinal sides.
	SourceHandles []string `json:"sourceHandles,omitempty"`
	TargetHandles []string `json:"targetHandles,omitempty"`

	Color string `json:"color,omitempty"`
}

// EdgeRecord is one renderable connection. Source and Target are node
// record IDs, already rewritten to the container form where an endpoint is
// a subgraph. Bend points are advisory.
type EdgeRecord struct {
	ID         string        `json:"id"`
	Source     string        `json:"source"`
	Target     string        `json:"target"`
	Label      string        `json:"label,omitempty"`
	Kind       string        `json:"kind"`
	Technology string        `json:"technology,omitempty"`
	BendPoints []state.Point `json:"bendPoints,omitempty"`
	Color      string        `json:"color,omitempty"`
}

// Records is the full renderer payload for one diagram.
type Records struct {
	Nodes []NodeRecord `json:"nodes"`
	Edges []EdgeRecord `json:"edges"`
}
