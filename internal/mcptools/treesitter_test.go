//go:build cgo

package mcptools

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/dusk-indust/uastdash/internal/uast"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCPParseCode_TreeSitter(t *testing.T) {
	parser := uast.NewTreeSitterParser()
	defer parser.Close()
	session := setupServerClient(t, parser)

	source, err := os.ReadFile("../../testdata/fixtures/go_project/model.go")
	require.NoError(t, err)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "parse_code",
		Arguments: ParseCodeInput{Language: "auto", Content: string(source)},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	var out struct {
		Status   string          `json:"status"`
		Language string          `json:"language"`
		Errors   []string        `json:"errors"`
		UAST     json.RawMessage `json:"uast"`
	}
	decodeStructured(t, result, &out)
	assert.Equal(t, "ok", out.Status)
	assert.Equal(t, "go", out.Language, "auto detection picks the Go grammar")
	assert.Empty(t, out.Errors)

	var root uast.Node
	require.NoError(t, json.Unmarshal(out.UAST, &root))
	assert.Equal(t, "source_file", root.InternalType)
	assert.Greater(t, root.Count(), 10)
}
