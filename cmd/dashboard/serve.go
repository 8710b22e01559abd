package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dusk-indust/uastdash/internal/api"
	"github.com/dusk-indust/uastdash/internal/dashboard"
	"github.com/dusk-indust/uastdash/internal/mcptools"
	"github.com/dusk-indust/uastdash/internal/uast"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard and parser API",
	Long: `Start an HTTP server with the dashboard page and the parser API.

Endpoints (under the API prefix, /api by default):
  POST   /api/parse     Parse {server_url, language, content}
  GET    /api/drivers   List supported languages
  GET    /api/gist      Fetch a gist, ?url=<path>
  GET    /healthz       Health check
  GET    /              Dashboard page

With --mcp-addr (or mcp.addr) the parse_code and list_drivers MCP tools
are served over streamable HTTP as well.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default: server.addr from config)")
	serveCmd.Flags().String("mcp-addr", "", "MCP listen address, disabled when empty (default: mcp.addr from config)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	addr := a.cfg.Server.Addr
	if v, _ := cmd.Flags().GetString("addr"); v != "" {
		addr = v
	}
	mcpAddr := a.cfg.MCP.Addr
	if v, _ := cmd.Flags().GetString("mcp-addr"); v != "" {
		mcpAddr = v
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	parser := uast.NewTreeSitterParser()
	defer parser.Close()

	// Without an explicit target the page parses through this server.
	var pageClient *api.Client
	if apiURL != "" || a.cfg.Client.ServerURL != "" {
		pageClient = a.client()
	}

	srv, err := dashboard.New(dashboard.Options{
		Parser:          parser,
		Languages:       a.languages,
		Client:          pageClient,
		APIPrefix:       a.cfg.Server.APIPrefix,
		GistBaseURL:     a.cfg.Gist.BaseURL,
		GistClient:      &http.Client{Timeout: a.cfg.Gist.Timeout},
		UpstreamTimeout: a.cfg.Client.Timeout,
		ReadTimeout:     a.cfg.Server.ReadTimeout,
		WriteTimeout:    a.cfg.Server.WriteTimeout,
		Logger:          a.logger,
	})
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx, addr, a.cfg.Server.ShutdownTimeout)
	})
	if mcpAddr != "" {
		svc := mcptools.NewParseService(parser, a.languages)
		g.Go(func() error {
			a.logger.Info("mcp listening", "addr", mcpAddr)
			return mcptools.RunMCPServer(gctx, svc, mcpAddr)
		})
	}
	return g.Wait()
}
