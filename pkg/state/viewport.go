package state

// FitViewport computes a viewport that frames the content bounding box
// [min, max] inside a canvas of the given size, with a small margin. Zoom
// is capped at 1 so small diagrams are not blown up. Degenerate bounds
// yield the identity viewport.
func FitViewport(min, max Point, canvasW, canvasH float64) *Viewport {
	const margin = 40

	w := max.X - min.X
	h := max.Y - min.Y
	if w <= 0 || h <= 0 || canvasW <= 0 || canvasH <= 0 {
		return &Viewport{Zoom: 1}
	}

	zoom := minf((canvasW-2*margin)/w, (canvasH-2*margin)/h)
	if zoom > 1 {
		zoom = 1
	}

	return &Viewport{
		Zoom: zoom,
		Pan: Point{
			X: (canvasW-w*zoom)/2 - min.X*zoom,
			Y: (canvasH-h*zoom)/2 - min.Y*zoom,
		},
	}
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
