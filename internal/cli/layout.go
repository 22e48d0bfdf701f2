package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwetzel/flowcanvas/pkg/pipeline"
	"github.com/mwetzel/flowcanvas/pkg/state"
)

func newLayoutCmd() *cobra.Command {
	var (
		stateFile   string
		spacingFile string
		outFile     string
		fit         bool
	)

	cmd := &cobra.Command{
		Use:   "layout [file]",
		Short: "Parse a diagram and emit the computed visual state",
		Args:  cobra.MaximumNArgs(1),
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
			g, err := pipeline.Parse(source)
			if err != nil {
				return err
			}
			st := pipeline.AutoLayout(g, prior, opts)
			st.Prune(g)
			prog.done(fmt.Sprintf("Laid out %s", g))

			data, err := state.Marshal(st)
			if err != nil {
				return err
			}
			return writeOutput(outFile, data)
		},
	}

	cmd.Flags().StringVarP(&stateFile, "state", "s", "", "prior visual state JSON file")
	cmd.Flags().StringVar(&spacingFile, "spacing", "", "layout spacing TOML override file")
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&fit, "fit", false, "compute a framing viewport")
	return cmd
}
