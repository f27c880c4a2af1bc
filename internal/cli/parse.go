package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/reqcraft/rqc/ast"
	"github.com/reqcraft/rqc/parser"
	"github.com/reqcraft/rqc/projection"
	"github.com/reqcraft/rqc/resolver"
)

func newParseCmd(logger func() parser.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>",
		Short: "Resolve a document and print it as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, outcomes, err := resolveArg(args[0], logger())
			if err != nil {
				return err
			}
			for _, outcome := range outcomes {
				if outcome.Status == resolver.StatusFailed {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: import %s failed: %v\n", outcome.Path, outcome.Err)
				}
			}
			return printJSON(cmd, doc)
		},
	}
}

func newEndpointsCmd(logger func() parser.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "endpoints <file>",
		Short: "Resolve a document and print its flattened endpoints as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, _, err := resolveArg(args[0], logger())
			if err != nil {
				return err
			}
			return printJSON(cmd, projection.Endpoints(doc))
		},
	}
}

func resolveArg(file string, log parser.Logger) (*ast.Document, []resolver.Outcome, error) {
	res := resolver.New()
	res.Logger = log
	return res.Resolve(file, filepath.Dir(file))
}

func printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
