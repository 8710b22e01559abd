package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/dusk-indust/uastdash/internal/mcptools"
	"github.com/dusk-indust/uastdash/internal/uast"
	"github.com/spf13/cobra"
)

var serveMCPCmd = &cobra.Command{
	Use:   "serve-mcp",
	Short: "Serve the parser as MCP tools on stdio",
	Long: `Run an MCP server on stdin/stdout exposing the parse_code and
list_drivers tools. Logs go to stderr.`,
	Args: cobra.NoArgs,
	RunE: runServeMCP,
}

func init() {
	rootCmd.AddCommand(serveMCPCmd)
}

func runServeMCP(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	parser := uast.NewTreeSitterParser()
	defer parser.Close()

	return mcptools.RunMCPServerStdio(ctx, mcptools.NewParseService(parser, a.languages))
}
