package layout

import (
	"strings"
	"unicode/utf8"

	"github.com/mwetzel/flowcanvas/pkg/diagram"
	"github.com/mwetzel/flowcanvas/pkg/state"
)

// Measurer reports the rendered text size of a label. Supplying one lets a
// host with font metrics improve node sizing; without one the engine falls
// back to a character-count proxy so headless callers stay deterministic.
type Measurer func(label string) (w, h float64)

const (
	minNodeWidth  = 80.0
	minNodeHeight = 40.0

	charWidth  = 8.0
	lineHeight = 18.0

	labelPadX = 60.0
	labelPadY = 40.0
)

// nodeSize derives a node's box from its label and shape.
func nodeSize(n *diagram.Node, measure Measurer) state.Size {
	var textW, textH float64
	if measure != nil {
		textW, textH = measure(n.Label)
	} else {
		lines := strings.Split(n.Label, "\n")
		maxLine := 0
		for _, l := range lines {
			if c := utf8.RuneCountInString(l); c > maxLine {
				maxLine = c
			}
		}
		textW = float64(maxLine) * charWidth
		textH = float64(len(lines)) * lineHeight
	}

	w := maxf(minNodeWidth, textW+labelPadX)
	h := maxf(minNodeHeight, textH+labelPadY)

	switch n.Shape {
	case diagram.ShapeDiamond:
		w = maxf(w*1.05, 90)
		h = maxf(h*1.05, 90)
	case diagram.ShapeCircle:
		d := maxf(w, h) + 10
		w, h = d, d
	}
	return state.Size{Width: w, Height: h}
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
