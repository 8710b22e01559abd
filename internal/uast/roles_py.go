package uast

// pyRoles annotates nodes produced by the tree-sitter Python grammar.
var pyRoles = roleTable{
	"module":                {RoleFile},
	"import_statement":      {RoleImport, RoleStatement},
	"import_from_statement": {RoleImport, RoleStatement},
	"function_definition":   {RoleFunction, RoleDeclaration},
	"lambda":                {RoleFunction, RoleExpression},
	"class_definition":      {RoleType, RoleDeclaration},
	"call":                  {RoleCall, RoleExpression},
	"argument_list":         {RoleArgument},
	"block":                 {RoleBlock},
	"if_statement":          {RoleIf, RoleStatement},
	"for_statement":         {RoleLoop, RoleStatement},
	"while_statement":       {RoleLoop, RoleStatement},
	"return_statement":      {RoleReturn, RoleStatement},
	"assignment":            {RoleAssignment, RoleExpression},
	"binary_operator":       {RoleOperator, RoleExpression},
	"comparison_operator":   {RoleOperator, RoleExpression},
	"integer":               {RoleLiteral, RoleNumber},
	"float":                 {RoleLiteral, RoleNumber},
	"true":                  {RoleLiteral, RoleBoolean},
	"false":                 {RoleLiteral, RoleBoolean},
	"string":                {RoleLiteral, RoleString},
}
