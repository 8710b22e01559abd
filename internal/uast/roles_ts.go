package uast

// tsRoles annotates nodes produced by the tree-sitter TypeScript grammar.
var tsRoles = roleTable{
	"program":                {RoleFile},
	"import_statement":       {RoleImport, RoleStatement},
	"function_declaration":   {RoleFunction, RoleDeclaration},
	"method_definition":      {RoleFunction, RoleDeclaration},
	"arrow_function":         {RoleFunction, RoleExpression},
	"class_declaration":      {RoleType, RoleDeclaration},
	"interface_declaration":  {RoleType, RoleDeclaration},
	"type_alias_declaration": {RoleType, RoleDeclaration},
	"type_identifier":        {RoleType, RoleIdentifier},
	"call_expression":        {RoleCall, RoleExpression},
	"arguments":              {RoleArgument},
	"statement_block":        {RoleBlock},
	"if_statement":           {RoleIf, RoleStatement},
	"for_statement":          {RoleLoop, RoleStatement},
	"while_statement":        {RoleLoop, RoleStatement},
	"return_statement":       {RoleReturn, RoleStatement},
	"lexical_declaration":    {RoleAssignment, RoleDeclaration},
	"assignment_expression":  {RoleAssignment, RoleExpression},
	"binary_expression":      {RoleOperator, RoleExpression},
	"number":                 {RoleLiteral, RoleNumber},
	"true":                   {RoleLiteral, RoleBoolean},
	"false":                  {RoleLiteral, RoleBoolean},
	"string":                 {RoleLiteral, RoleString},
	"template_string":        {RoleLiteral, RoleString},
}
