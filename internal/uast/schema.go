package uast

import (
	"context"
	"time"
)

// --- Enums ---

// Status is the outcome of a parse. Ok is the success sentinel on the wire.
type Status int

const (
	Ok Status = iota
	Error
	Fatal
)

// String returns the lowercase name of the status.
func (s Status) String() string {
	switch s {
	case Ok:
		return "ok"
	case Error:
		return "error"
	case Fatal:
		return "fatal"
	}
	return "unknown"
}

// Role is a language-independent annotation of a node.
type Role string

const (
	RoleFile        Role = "File"
	RoleIdentifier  Role = "Identifier"
	RoleLiteral     Role = "Literal"
	RoleString      Role = "String"
	RoleNumber      Role = "Number"
	RoleBoolean     Role = "Boolean"
	RoleComment     Role = "Comment"
	RoleFunction    Role = "Function"
	RoleDeclaration Role = "Declaration"
	RoleType        Role = "Type"
	RoleImport      Role = "Import"
	RoleCall        Role = "Call"
	RoleBlock       Role = "Block"
	RoleStatement   Role = "Statement"
	RoleExpression  Role = "Expression"
	RoleOperator    Role = "Operator"
	RoleIf          Role = "If"
	RoleLoop        Role = "Loop"
	RoleReturn      Role = "Return"
	RoleAssignment  Role = "Assignment"
	RoleArgument    Role = "Argument"
	RoleIncomplete  Role = "Incomplete"
)

// InternalRoleKey is the property holding the grammar field name under
// which a node appears in its parent.
const InternalRoleKey = "internalRole"

// --- Models ---

// Position is a location in the parsed source. Line and Col are 1-based.
type Position struct {
	Offset uint32 `json:"Offset"`
	Line   uint32 `json:"Line"`
	Col    uint32 `json:"Col"`
}

// Node is one element of the universal abstract syntax tree.
type Node struct {
	InternalType  string            `json:"InternalType"`
	Token         string            `json:"Token,omitempty"`
	StartPosition *Position         `json:"StartPosition,omitempty"`
	EndPosition   *Position         `json:"EndPosition,omitempty"`
	Roles         []Role            `json:"Roles"`
	Properties    map[string]string `json:"Properties,omitempty"`
	Children      []*Node           `json:"Children"`
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	if n == nil {
		return 0
	}
	total := 1
	for _, c := range n.Children {
		total += c.Count()
	}
	return total
}

// HasRole reports whether r is among the node's roles.
func (n *Node) HasRole(r Role) bool {
	for _, have := range n.Roles {
		if have == r {
			return true
		}
	}
	return false
}

// Response is the result of parsing one piece of content.
type Response struct {
	Status   Status        `json:"status"`
	Errors   []string      `json:"errors"`
	UAST     *Node         `json:"uast"`
	Language string        `json:"language"`
	Elapsed  time.Duration `json:"elapsed"`
}

// Parser turns source content into a UAST.
//
// Unsupported languages and syntax errors are reported through
// Response.Status; the error return is reserved for failures of the
// parser itself, such as a cancelled context.
type Parser interface {
	Parse(ctx context.Context, language, content string) (*Response, error)
	SupportedLanguages() []string
	Close() error
}
