package layout

import (
	"testing"

	"github.com/mwetzel/flowcanvas/pkg/diagram"
)

func TestNodeSize(t *testing.T) {
	tests := []struct {
		name  string
		node  diagram.Node
		wantW float64
		wantH float64
	}{
		{
			name:  "short label hits minimum width",
			node:  diagram.Node{Label: "A", Shape: diagram.ShapeRect},
			wantW: 80, wantH: 58,
		},
		{
			name:  "long label grows width",
			node:  diagram.Node{Label: "a very long node label", Shape: diagram.ShapeRect},
			wantW: 22*8 + 60, wantH: 58,
		},
		{
			name:  "two lines grow height",
			node:  diagram.Node{Label: "one\ntwo", Shape: diagram.ShapeRect},
			wantW: 3*8 + 60, wantH: 2*18 + 40,
		},
		{
			name:  "diamond floors at 90",
			node:  diagram.Node{Label: "x", Shape: diagram.ShapeDiamond},
			wantW: 90, wantH: 90,
		},
		{
			name:  "circle becomes square",
			node:  diagram.Node{Label: "ab", Shape: diagram.ShapeCircle},
			wantW: 90, wantH: 90,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nodeSize(&tt.node, nil)
			if got.Width != tt.wantW || got.Height != tt.wantH {
				t.Errorf("nodeSize() = %vx%v, want %vx%v", got.Width, got.Height, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestNodeSize_Measurer(t *testing.T) {
	measure := func(string) (float64, float64) { return 200, 20 }
	got := nodeSize(&diagram.Node{Label: "x", Shape: diagram.ShapeRect}, measure)
	if got.Width != 260 || got.Height != 60 {
		t.Errorf("nodeSize() = %vx%v, want 260x60", got.Width, got.Height)
	}
}
