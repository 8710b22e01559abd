package uast

// rsRoles annotates nodes produced by the tree-sitter Rust grammar.
var rsRoles = roleTable{
	"source_file":        {RoleFile},
	"use_declaration":    {RoleImport, RoleDeclaration},
	"function_item":      {RoleFunction, RoleDeclaration},
	"closure_expression": {RoleFunction, RoleExpression},
	"struct_item":        {RoleType, RoleDeclaration},
	"enum_item":          {RoleType, RoleDeclaration},
	"trait_item":         {RoleType, RoleDeclaration},
	"impl_item":          {RoleType, RoleDeclaration},
	"type_identifier":    {RoleType, RoleIdentifier},
	"call_expression":    {RoleCall, RoleExpression},
	"macro_invocation":   {RoleCall, RoleExpression},
	"arguments":          {RoleArgument},
	"block":              {RoleBlock},
	"if_expression":      {RoleIf, RoleExpression},
	"for_expression":     {RoleLoop, RoleExpression},
	"while_expression":   {RoleLoop, RoleExpression},
	"loop_expression":    {RoleLoop, RoleExpression},
	"return_expression":  {RoleReturn, RoleExpression},
	"let_declaration":    {RoleAssignment, RoleDeclaration},
	"binary_expression":  {RoleOperator, RoleExpression},
	"integer_literal":    {RoleLiteral, RoleNumber},
	"float_literal":      {RoleLiteral, RoleNumber},
	"boolean_literal":    {RoleLiteral, RoleBoolean},
	"string_literal":     {RoleLiteral, RoleString},
}
