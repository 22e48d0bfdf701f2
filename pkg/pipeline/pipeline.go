// Package pipeline provides the unified parse → layout → render entry
// points used by the CLI and by host applications embedding the core.
//
// The three stages can run independently or together:
//
//	g, err := pipeline.Parse(source)
//	st := pipeline.AutoLayout(g, prior, opts)
//	records := pipeline.ToRenderer(g, st)
//
// or in one call:
//
//	result, err := pipeline.Convert(source, prior, opts)
//
// [Runner] wraps the same operations with structured logging and a per-run
// correlation ID for hosts that process many documents.
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/mwetzel/flowcanvas/pkg/diagram"
	"github.com/mwetzel/flowcanvas/pkg/layout"
	"github.com/mwetzel/flowcanvas/pkg/parser"
	"github.com/mwetzel/flowcanvas/pkg/render"
	"github.com/mwetzel/flowcanvas/pkg/state"
)

// Default canvas dimensions used when fitting a viewport.
const (
	DefaultCanvasWidth  = 1280.0
	DefaultCanvasHeight = 800.0
)

// Options configures a pipeline run. The zero value is usable.
type Options struct {
	// Spacing overrides the layout spacing; nil uses the defaults.
	Spacing *layout.Spacing `json:"spacing,omitempty"`

	// FitViewport computes a framing viewport when the prior state does
	// not carry one. Canvas dimensions default to the package constants.
	FitViewport  bool    `json:"fit_viewport,omitempty"`
	CanvasWidth  float64 `json:"canvas_width,omitempty"`
	CanvasHeight float64 `json:"canvas_height,omitempty"`

	// Runtime options (not serialized).
	Logger   *log.Logger     `json:"-"`
	Measurer layout.Measurer `json:"-"`
}

// Result bundles the outputs of a full pipeline run.
type Result struct {
	Graph   *diagram.Graph
	State   *state.VisualState
	Records render.Records
	Stats   Stats
}

// Stats carries size and timing information for one run.
type Stats struct {
	NodeCount     int
	EdgeCount     int
	SubgraphCount int
	ParseTime     time.Duration
	LayoutTime    time.Duration
}

// Parse turns diagram source into a semantic graph.
func Parse(source string) (*diagram.Graph, error) {
	return parser.Parse(source)
}

// AutoLayout computes a fresh visual state, seeded by an optional prior
// state whose locked entries are preserved.
func AutoLayout(g *diagram.Graph, prior *state.VisualState, opts Options) *state.VisualState {
	var lopts []layout.Option
	if opts.Spacing != nil {
		lopts = append(lopts, layout.WithSpacing(*opts.Spacing))
	}
	if opts.Measurer != nil {
		lopts = append(lopts, layout.WithMeasurer(opts.Measurer))
	}
	st := layout.AutoLayout(g, prior, lopts...)

	if opts.FitViewport && st.Viewport == nil {
		w, h := opts.CanvasWidth, opts.CanvasHeight
		if w <= 0 {
			w = DefaultCanvasWidth
		}
		if h <= 0 {
			h = DefaultCanvasHeight
		}
		if min, max, ok := contentBounds(g, st); ok {
			st.Viewport = state.FitViewport(min, max, w, h)
		}
	}
	return st
}

// ToRenderer translates a graph and state into renderer records.
func ToRenderer(g *diagram.Graph, st *state.VisualState) render.Records {
	return render.ToRenderer(g, st)
}

// Convert runs the full pipeline over one source document.
func Convert(source string, prior *state.VisualState, opts Options) (Result, error) {
	var result Result

	start := time.Now()
	g, err := Parse(source)
	if err != nil {
		return result, err
	}
	result.Stats.ParseTime = time.Since(start)

	start = time.Now()
	result.State = AutoLayout(g, prior, opts)
	result.Stats.LayoutTime = time.Since(start)

	result.Graph = g
	result.Records = ToRenderer(g, result.State)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()
	result.Stats.SubgraphCount = g.SubgraphCount()
	return result, nil
}

// contentBounds computes the canvas-absolute bounding box of the top-level
// content. Returns ok=false for an empty state.
func contentBounds(g *diagram.Graph, st *state.VisualState) (min, max state.Point, ok bool) {
	extend := func(pos state.Point, w, h float64) {
		if !ok {
			min, max = pos, state.Point{X: pos.X + w, Y: pos.Y + h}
			ok = true
			return
		}
		if pos.X < min.X {
			min.X = pos.X
		}
		if pos.Y < min.Y {
			min.Y = pos.Y
		}
		if pos.X+w > max.X {
			max.X = pos.X + w
		}
		if pos.Y+h > max.Y {
			max.Y = pos.Y + h
		}
	}

	for _, s := range g.TopLevelSubgraphs() {
		if ss, found := st.Subgraphs[s.ID]; found {
			extend(ss.Position, ss.Size.Width, ss.Size.Height)
		}
	}
	for _, n := range g.StandaloneNodes() {
		if ns, found := st.Nodes[n.ID]; found {
			var w, h float64
			if ns.Size != nil {
				w, h = ns.Size.Width, ns.Size.Height
			}
			extend(ns.Position, w, h)
		}
	}
	return min, max, ok
}
