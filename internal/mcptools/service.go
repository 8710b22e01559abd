package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/dusk-indust/uastdash/internal/languages"
	"github.com/dusk-indust/uastdash/internal/uast"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ParseService holds the parser and language registry used by the MCP tool
// handlers.
type ParseService struct {
	parser    uast.Parser
	languages *languages.Registry
}

// NewParseService creates a ParseService. A nil registry means
// languages.Default().
func NewParseService(parser uast.Parser, reg *languages.Registry) *ParseService {
	if reg == nil {
		reg = languages.Default()
	}
	return &ParseService{parser: parser, languages: reg}
}

// ParseCode parses content and returns its UAST. Syntax errors are part of
// the output, not a tool failure.
func (s *ParseService) ParseCode(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ParseCodeInput,
) (*mcp.CallToolResult, ParseCodeOutput, error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, ParseCodeOutput{}, fmt.Errorf("content is required")
	}

	lang := strings.ToLower(strings.TrimSpace(input.Language))
	if lang == "" {
		lang = languages.Auto
	}
	if _, ok := s.languages.Lookup(lang); !ok {
		return nil, ParseCodeOutput{}, fmt.Errorf("unknown language %q (known: %s)", lang, strings.Join(s.languages.Keys(), ", "))
	}

	resp, err := s.parser.Parse(ctx, lang, input.Content)
	if err != nil {
		return nil, ParseCodeOutput{}, fmt.Errorf("parse: %w", err)
	}

	out := ParseCodeOutput{
		Status:   resp.Status.String(),
		Language: resp.Language,
		Errors:   resp.Errors,
	}
	if out.Errors == nil {
		out.Errors = []string{}
	}
	if resp.UAST != nil {
		out.UAST = resp.UAST
	}
	return nil, out, nil
}

// ListDrivers returns the registered languages and their driver-code links.
func (s *ParseService) ListDrivers(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ListDriversInput,
) (*mcp.CallToolResult, ListDriversOutput, error) {
	return nil, ListDriversOutput{Drivers: s.languages.Drivers()}, nil
}
