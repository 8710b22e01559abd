package uast

import (
	"fmt"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// maxSnippet bounds, in runes, the source excerpt quoted in syntax error
// messages.
const maxSnippet = 20

// roleTable maps a grammar node kind to the roles it carries.
type roleTable map[string][]Role

// converter mirrors a tree-sitter tree into UAST nodes and collects the
// syntax errors found along the way.
type converter struct {
	source []byte
	roles  roleTable
	errors []string
}

// walk converts the node under cursor and its named descendants.
func (c *converter) walk(cursor *tree_sitter.TreeCursor) *Node {
	node := cursor.Node()
	kind := node.Kind()

	n := &Node{
		InternalType:  kind,
		StartPosition: position(node.StartByte(), node.StartPosition()),
		EndPosition:   position(node.EndByte(), node.EndPosition()),
		Roles:         c.rolesFor(kind),
		Children:      []*Node{},
	}
	if field := cursor.FieldName(); field != "" {
		n.Properties = map[string]string{InternalRoleKey: field}
	}
	if node.IsError() {
		n.Roles = appendRole(n.Roles, RoleIncomplete)
		c.errors = append(c.errors, fmt.Sprintf("syntax error at %d:%d: unexpected %q",
			n.StartPosition.Line, n.StartPosition.Col, snippet(node.Utf8Text(c.source))))
	}

	if cursor.GotoFirstChild() {
		for {
			child := cursor.Node()
			switch {
			case child.IsMissing():
				p := position(child.StartByte(), child.StartPosition())
				c.errors = append(c.errors, fmt.Sprintf("syntax error at %d:%d: missing %q", p.Line, p.Col, child.Kind()))
			case child.IsNamed():
				n.Children = append(n.Children, c.walk(cursor))
			}
			if !cursor.GotoNextSibling() {
				break
			}
		}
		cursor.GotoParent()
	}

	if len(n.Children) == 0 && !node.IsError() {
		n.Token = node.Utf8Text(c.source)
	}
	return n
}

// rolesFor looks kind up in the role table, falling back to roles implied
// by common naming conventions shared by tree-sitter grammars.
func (c *converter) rolesFor(kind string) []Role {
	if roles, ok := c.roles[kind]; ok {
		out := make([]Role, len(roles))
		copy(out, roles)
		return out
	}

	switch {
	case strings.Contains(kind, "comment"):
		return []Role{RoleComment}
	case strings.HasSuffix(kind, "identifier"):
		return []Role{RoleIdentifier}
	case strings.Contains(kind, "string"):
		return []Role{RoleLiteral, RoleString}
	case strings.HasSuffix(kind, "_literal"):
		return []Role{RoleLiteral}
	case strings.HasSuffix(kind, "_statement"):
		return []Role{RoleStatement}
	case strings.HasSuffix(kind, "_expression"):
		return []Role{RoleExpression}
	case strings.HasSuffix(kind, "_declaration"), strings.HasSuffix(kind, "_definition"):
		return []Role{RoleDeclaration}
	}
	return []Role{}
}

func appendRole(roles []Role, r Role) []Role {
	for _, have := range roles {
		if have == r {
			return roles
		}
	}
	return append(roles, r)
}

func position(offset uint, p tree_sitter.Point) *Position {
	return &Position{
		Offset: uint32(offset),
		Line:   uint32(p.Row) + 1,
		Col:    uint32(p.Column) + 1,
	}
}

func snippet(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if r := []rune(s); len(r) > maxSnippet {
		s = string(r[:maxSnippet])
	}
	return s
}
