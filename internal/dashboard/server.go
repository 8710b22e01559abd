// Package dashboard serves the parser service API (/parse, /drivers,
// /gist) together with the dashboard page that drives it.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dusk-indust/uastdash/internal/api"
	"github.com/dusk-indust/uastdash/internal/languages"
	"github.com/dusk-indust/uastdash/internal/uast"
)

// DefaultGistBaseURL is where gist paths are resolved by default.
const DefaultGistBaseURL = "https://gist.githubusercontent.com/"

// maxRequestBody bounds the size of a parse request.
const maxRequestBody = 10 << 20

// Options configures a Server.
type Options struct {
	// Parser handles parse requests without a server_url override.
	Parser uast.Parser
	// Languages is the registry shown in the header and served by /drivers.
	Languages *languages.Registry
	// Client is used by the dashboard page to reach the parser service.
	// When nil the page talks to this server's own API: api.DefaultBaseURL
	// until Start binds an address, that address afterwards.
	Client *api.Client
	// APIPrefix mounts the API routes, "/api" when empty.
	APIPrefix string
	// GistBaseURL resolves gist paths, DefaultGistBaseURL when empty.
	GistBaseURL string
	// GistClient fetches gists. Defaults to a client with a 10s timeout.
	GistClient *http.Client
	// UpstreamTimeout bounds parse requests forwarded to a server_url.
	UpstreamTimeout time.Duration
	// ReadTimeout and WriteTimeout are applied to the http.Server. Zero
	// means no limit.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// Logger receives access and error logs. Defaults to slog.Default().
	Logger *slog.Logger
}

// Server exposes the parser service and the dashboard page over HTTP.
type Server struct {
	parser          uast.Parser
	languages       *languages.Registry
	client          *api.Client
	apiPrefix       string
	gistBaseURL     string
	gistClient      *http.Client
	upstreamTimeout time.Duration
	readTimeout     time.Duration
	writeTimeout    time.Duration
	logger          *slog.Logger

	mu         sync.Mutex // guards http, listener and client
	http       *http.Server
	listener   net.Listener
	selfClient bool
}

// New creates a Server. Parser and Languages are required.
func New(opts Options) (*Server, error) {
	if opts.Parser == nil {
		return nil, errors.New("dashboard: parser is required")
	}
	if opts.Languages == nil {
		return nil, errors.New("dashboard: languages registry is required")
	}

	s := &Server{
		parser:          opts.Parser,
		languages:       opts.Languages,
		client:          opts.Client,
		apiPrefix:       strings.TrimRight(opts.APIPrefix, "/"),
		gistBaseURL:     opts.GistBaseURL,
		gistClient:      opts.GistClient,
		upstreamTimeout: opts.UpstreamTimeout,
		readTimeout:     opts.ReadTimeout,
		writeTimeout:    opts.WriteTimeout,
		logger:          opts.Logger,
	}
	if s.apiPrefix == "" {
		s.apiPrefix = "/api"
	}
	if s.gistBaseURL == "" {
		s.gistBaseURL = DefaultGistBaseURL
	}
	if s.gistClient == nil {
		s.gistClient = &http.Client{Timeout: 10 * time.Second}
	}
	if s.upstreamTimeout == 0 {
		s.upstreamTimeout = 30 * time.Second
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.client == nil {
		s.client = api.New(api.DefaultBaseURL, api.WithLogger(s.logger))
		s.selfClient = true
	}
	return s, nil
}

// Handler returns the HTTP handler with every route registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST "+s.apiPrefix+"/parse", s.handleParse)
	mux.HandleFunc("GET "+s.apiPrefix+"/drivers", s.handleDrivers)
	mux.HandleFunc("GET "+s.apiPrefix+"/gist", s.handleGist)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("POST /{$}", s.handleRun)

	return s.withRequestID(s.withAccessLog(mux))
}

// Start binds addr and serves in a background goroutine. It returns once
// the listener is bound, so Addr is valid afterwards.
func (s *Server) Start(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dashboard: listen %s: %w", addr, err)
	}

	hs := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       s.readTimeout,
		WriteTimeout:      s.writeTimeout,
	}
	s.mu.Lock()
	s.listener = ln
	s.http = hs
	if s.selfClient {
		s.client = api.New(selfBaseURL(ln.Addr(), s.apiPrefix), api.WithLogger(s.logger))
	}
	s.mu.Unlock()

	go func() {
		if err := hs.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("dashboard server stopped", "err", err)
		}
	}()
	return nil
}

// Addr returns the bound listener address, or nil before Start.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// pageClient returns the client the dashboard page parses through.
func (s *Server) pageClient() *api.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.client
}

// selfBaseURL is the API base URL for reaching a listener at addr from
// this host. Unspecified hosts such as 0.0.0.0 map to loopback.
func selfBaseURL(addr net.Addr, apiPrefix string) string {
	host, port, err := net.SplitHostPort(addr.String())
	if err != nil {
		return api.DefaultBaseURL
	}
	if ip := net.ParseIP(host); host == "" || (ip != nil && ip.IsUnspecified()) {
		host = "127.0.0.1"
		if ip != nil && ip.To4() == nil {
			host = "::1"
		}
	}
	return "http://" + net.JoinHostPort(host, port) + apiPrefix
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	hs := s.http
	s.mu.Unlock()
	if hs == nil {
		return nil
	}
	return hs.Shutdown(ctx)
}

// Run serves on addr until ctx is cancelled, then shuts down within
// shutdownTimeout.
func (s *Server) Run(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	if err := s.Start(ctx, addr); err != nil {
		return err
	}
	s.logger.Info("dashboard listening", "addr", s.Addr().String(), "api", s.apiPrefix)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.Stop(shutdownCtx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}
