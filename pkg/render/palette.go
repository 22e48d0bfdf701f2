package render

import "github.com/mwetzel/flowcanvas/pkg/diagram"

// subgraphPalette colors flowchart containers by declaration index.
var subgraphPalette = []string{
	"#e8f0fe", "#fce8e6", "#e6f4ea", "#fef7e0",
	"#f3e8fd", "#e0f7fa", "#fde8ef", "#f1f3f4",
}

// edgePalette colors edges by declaration index modulo its length.
var edgePalette = []string{
	"#5f6368", "#1a73e8", "#188038", "#d93025", "#9334e6",
}

// c4NodeColors follows the conventional C4 fill scheme; the db and queue
// variants share their family color.
var c4NodeColors = map[diagram.C4Type]string{
	diagram.C4Person:         "#08427b",
	diagram.C4PersonExt:      "#686868",
	diagram.C4System:         "#1168bd",
	diagram.C4SystemExt:      "#999999",
	diagram.C4SystemDb:       "#1168bd",
	diagram.C4SystemQueue:    "#1168bd",
	diagram.C4Container:      "#438dd5",
	diagram.C4ContainerExt:   "#b3b3b3",
	diagram.C4ContainerDb:    "#438dd5",
	diagram.C4ContainerQueue: "#438dd5",
	diagram.C4Component:      "#85bbf0",
	diagram.C4ComponentExt:   "#cccccc",
	diagram.C4ComponentDb:    "#85bbf0",
	diagram.C4ComponentQueue: "#85bbf0",
}

// c4BoundaryColor is the uniform boundary outline color.
const c4BoundaryColor = "#444444"

func subgraphColor(s *diagram.Subgraph, index int) string {
	if s.IsBoundary() {
		return c4BoundaryColor
	}
	return subgraphPalette[index%len(subgraphPalette)]
}

func nodeColor(n *diagram.Node) string {
	if n.IsC4() {
		return c4NodeColors[n.C4Type]
	}
	return ""
}

func edgeColor(index int) string {
	return edgePalette[index%len(edgePalette)]
}
