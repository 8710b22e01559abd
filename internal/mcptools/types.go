package mcptools

import "github.com/dusk-indust/uastdash/internal/languages"

// --- MCP Tool Input Types ---
// The MCP Go SDK derives each tool's JSON schema from these struct tags.

// ParseCodeInput is the input for the parse_code MCP tool.
type ParseCodeInput struct {
	Language string `json:"language,omitempty" jsonschema:"language id (go, python, rust, typescript) or auto to detect it. Default: auto"`
	Content  string `json:"content" jsonschema:"the source code to parse"`
}

// ParseCodeOutput is the result of the parse_code MCP tool.
type ParseCodeOutput struct {
	Status   string   `json:"status" jsonschema:"ok, error or fatal"`
	Language string   `json:"language" jsonschema:"the language the content was parsed as"`
	Errors   []string `json:"errors" jsonschema:"syntax errors or the reason parsing failed"`
	UAST     any      `json:"uast,omitempty" jsonschema:"the parsed tree; present unless status is fatal"`
}

// ListDriversInput is the input for the list_drivers MCP tool.
type ListDriversInput struct{}

// ListDriversOutput is the result of the list_drivers MCP tool.
type ListDriversOutput struct {
	Drivers []languages.Driver `json:"drivers"`
}
