package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwetzel/flowcanvas/pkg/diagram"
	"github.com/mwetzel/flowcanvas/pkg/pipeline"
)

func newParseCmd() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a diagram and emit the semantic graph",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			source, err := readSource(args)
			if err != nil {
				return err
			}

			prog := newProgress(logger)
			g, err := pipeline.Parse(source)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Parsed %s", g))

			data, err := json.MarshalIndent(diagram.Export(g), "", "  ")
			if err != nil {
				return err
			}
			return writeOutput(outFile, data)
		},
	}

	cmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default stdout)")
	return cmd
}
