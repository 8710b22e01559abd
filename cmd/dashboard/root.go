package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dusk-indust/uastdash/internal/api"
	"github.com/dusk-indust/uastdash/internal/config"
	"github.com/dusk-indust/uastdash/internal/languages"
	"github.com/dusk-indust/uastdash/internal/logging"
	"github.com/spf13/cobra"
)

// version is set by goreleaser at build time.
var version = "dev"

var (
	configPath string
	apiURL     string
)

var rootCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "UAST dashboard and parser service",
	Long: `dashboard - Parse source code into a universal abstract syntax tree.

Serve the dashboard page and its parser API, expose the parser to agents
over MCP, or talk to a running dashboard from the command line.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the YAML config file (default: $DASHBOARD_CONFIG or ./dashboard.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "parser API base URL (default: client.server_url from config)")
}

// app is the configuration shared by every subcommand.
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	languages *languages.Registry
}

func newApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger := logging.New(cfg.Log)

	reg := languages.Default()
	if cfg.LanguagesFile != "" {
		reg, err = languages.LoadFile(cfg.LanguagesFile, reg)
		if err != nil {
			return nil, err
		}
	}
	return &app{cfg: cfg, logger: logger, languages: reg}, nil
}

// client returns a protocol client for --api-url, falling back to
// client.server_url and then api.DefaultBaseURL.
func (a *app) client() *api.Client {
	base := apiURL
	if base == "" {
		base = a.cfg.Client.ServerURL
	}
	return api.New(base,
		api.WithTimeout(a.cfg.Client.Timeout),
		api.WithLogger(a.logger),
	)
}
