package cli

import (
	"encoding/json"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mwetzel/flowcanvas/pkg/layout"
	"github.com/mwetzel/flowcanvas/pkg/pipeline"
	"github.com/mwetzel/flowcanvas/pkg/state"
)

func newConvertCmd() *cobra.Command {
	var (
		stateFile   string
		spacingFile string
		outFile     string
		writeState  string
		fit         bool
	)

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Run the full pipeline and emit renderer records",
		Long: `Convert parses a diagram from a file (or stdin), computes the auto-layout,
and writes the renderer records as JSON. A prior visual state can be supplied
with --state; its locked entries survive the relayout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			source, err := readSource(args)
			if err != nil {
				return err
			}
			prior, err := loadState(stateFile)
			if err != nil {
				return err
			}
			opts, err := buildOptions(spacingFile, fit, logger)
			if err != nil {
				return err
			}

			prog := newProgress(logger)
			runner := pipeline.NewRunner(opts)
			result, err := runner.Convert(source, prior)
			if err != nil {
				return err
			}
			result.State.Prune(result.Graph)
			prog.done(fmt.Sprintf("Converted %d nodes, %d edges", result.Stats.NodeCount, result.Stats.EdgeCount))

			if writeState != "" {
				data, err := state.Marshal(result.State)
				if err != nil {
					return err
				}
				if err := writeOutput(writeState, data); err != nil {
					return err
				}
			}

			data, err := json.MarshalIndent(result.Records, "", "  ")
			if err != nil {
				return err
			}
			return writeOutput(outFile, data)
		},
	}

	cmd.Flags().StringVarP(&stateFile, "state", "s", "", "prior visual state JSON file")
	cmd.Flags().StringVar(&spacingFile, "spacing", "", "layout spacing TOML override file")
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&writeState, "write-state", "", "also write the computed visual state to this file")
	cmd.Flags().BoolVar(&fit, "fit", false, "compute a framing viewport")
	return cmd
}

// loadState reads and decodes a prior visual state file. An empty path
// yields nil, meaning a fresh layout.
func loadState(path string) (*state.VisualState, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read state %s: %w", path, err)
	}
	st, err := state.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("state %s: %w", path, err)
	}
	return st, nil
}

// buildOptions assembles pipeline options from the shared flags.
func buildOptions(spacingFile string, fit bool, logger *charmlog.Logger) (pipeline.Options, error) {
	opts := pipeline.Options{
		FitViewport: fit,
		Logger:      logger,
	}
	if spacingFile != "" {
		spacing, err := layout.LoadSpacing(spacingFile)
		if err != nil {
			return opts, err
		}
		opts.Spacing = &spacing
	}
	return opts, nil
}
