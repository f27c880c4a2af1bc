// Package cli implements the rqc command line interface.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/reqcraft/rqc"
	"github.com/reqcraft/rqc/parser"
)

// NewRootCmd builds the rqc command tree.
func NewRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:           "rqc",
		Short:         "API definition DSL with a mock-capable dev server",
		Version:       rqc.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	logger := func() parser.Logger {
		return newLogger(verbose)
	}

	cmd.AddCommand(
		newInitCmd(),
		newDevCmd(logger),
		newParseCmd(logger),
		newEndpointsCmd(logger),
	)
	return cmd
}

func newLogger(verbose bool) parser.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return parser.NewSlogAdapter(slog.New(h))
}
