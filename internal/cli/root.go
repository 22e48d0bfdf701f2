package cli

import (
	"fmt"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version. It is
// called by the main package with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the flowcanvas CLI and returns an error if any command
// fails. Logging defaults to info level on stderr; --verbose switches to
// debug.
func Execute() error {
	var verbose bool

	root := &cobra.Command{
		Use:          "flowcanvas",
		Short:        "flowcanvas converts text diagrams into canvas layouts",
		Long:         `flowcanvas parses Mermaid flowchart and C4-Context sources into a semantic graph, computes a hierarchical auto-layout, and emits records for a canvas renderer.`,
		Version:      versionString(),
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		level := charmlog.InfoLevel
		if verbose {
			level = charmlog.DebugLevel
		}
		logger := newLogger(os.Stderr, level)
		cmd.SetContext(withLogger(cmd.Context(), logger))
	}

	root.AddCommand(newConvertCmd(), newParseCmd(), newLayoutCmd())

	return root.Execute()
}

func versionString() string {
	if version == "" {
		return "dev"
	}
	return fmt.Sprintf("%s (%s, %s)", version, commit, date)
}

// readSource reads the diagram from the optional file argument or stdin.
func readSource(args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read %s: %w", args[0], err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

// writeOutput writes data to path, or stdout when path is empty.
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
