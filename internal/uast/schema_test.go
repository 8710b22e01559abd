package uast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "ok", Ok.String())
	assert.Equal(t, "error", Error.String())
	assert.Equal(t, "fatal", Fatal.String())
	assert.Equal(t, "unknown", Status(9).String())
}

func TestNode_Count(t *testing.T) {
	var nilNode *Node
	assert.Equal(t, 0, nilNode.Count())

	tree := &Node{Children: []*Node{
		{Children: []*Node{{}}},
		{},
	}}
	assert.Equal(t, 4, tree.Count())
}

func TestConverter_RolesForFallbacks(t *testing.T) {
	c := &converter{roles: roleTable{"call": {RoleCall}}}

	assert.Equal(t, []Role{RoleCall}, c.rolesFor("call"))
	assert.Equal(t, []Role{RoleComment}, c.rolesFor("line_comment"))
	assert.Equal(t, []Role{RoleIdentifier}, c.rolesFor("shorthand_property_identifier"))
	assert.Equal(t, []Role{RoleLiteral, RoleString}, c.rolesFor("string_content"))
	assert.Equal(t, []Role{RoleStatement}, c.rolesFor("expression_statement"))
	assert.Equal(t, []Role{RoleDeclaration}, c.rolesFor("const_declaration"))
	assert.Empty(t, c.rolesFor("parenthesized"))
}

func TestConverter_RolesForReturnsCopy(t *testing.T) {
	c := &converter{roles: roleTable{"call": {RoleCall}}}
	roles := c.rolesFor("call")
	roles[0] = RoleBlock
	assert.Equal(t, []Role{RoleCall}, c.roles["call"])
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "abc", snippet("  abc \n def"))
	assert.Len(t, snippet("0123456789012345678901234567"), maxSnippet)
}
