package mcptools

import (
	"context"
	"errors"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewMCPServer creates an MCP server with the parse_code and list_drivers
// tools registered.
func NewMCPServer(svc *ParseService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "uast-dashboard",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "parse_code",
		Description: "Parse source code into a UAST. Returns the tree with node types, tokens, positions and roles, plus any syntax errors. Use language auto to detect the language.",
	}, svc.ParseCode)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_drivers",
		Description: "List the languages the parser supports, with a link to each grammar's source code.",
	}, svc.ListDrivers)

	return server
}

// RunMCPServer serves the MCP tools over streamable HTTP on addr until ctx
// is cancelled.
func RunMCPServer(ctx context.Context, svc *ParseService, addr string) error {
	server := NewMCPServer(svc)

	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// RunMCPServerStdio serves the MCP tools on stdio, blocking until stdin is
// closed or ctx is cancelled.
func RunMCPServerStdio(ctx context.Context, svc *ParseService) error {
	return NewMCPServer(svc).Run(ctx, &mcp.StdioTransport{})
}
