package pipeline

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/mwetzel/flowcanvas/pkg/state"
)

// Runner executes pipeline operations with structured logging. Each runner
// carries a correlation ID so logs from hosts converting many documents
// concurrently stay attributable.
type Runner struct {
	opts   Options
	logger *log.Logger
	runID  string
}

// NewRunner creates a runner. A nil logger in opts discards output.
func NewRunner(opts Options) *Runner {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	id := uuid.NewString()
	return &Runner{
		opts:   opts,
		logger: logger.With("run", id[:8]),
		runID:  id,
	}
}

// RunID returns the runner's correlation ID.
func (r *Runner) RunID() string { return r.runID }

// Convert runs the full pipeline over one source document, logging stage
// progress and timings.
func (r *Runner) Convert(source string, prior *state.VisualState) (Result, error) {
	result, err := Convert(source, prior, r.opts)
	if err != nil {
		r.logger.Error("parse failed", "err", err)
		return result, err
	}

	r.logger.Debug("parsed", "graph", result.Graph.String(), "took", result.Stats.ParseTime)
	r.logger.Debug("layout complete", "took", result.Stats.LayoutTime)
	r.logger.Info("converted",
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"subgraphs", result.Stats.SubgraphCount,
	)
	return result, nil
}
