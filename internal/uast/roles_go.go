package uast

// goRoles annotates nodes produced by the tree-sitter Go grammar.
var goRoles = roleTable{
	"source_file":                {RoleFile},
	"package_clause":             {RoleDeclaration},
	"package_identifier":         {RoleIdentifier},
	"import_declaration":         {RoleImport, RoleDeclaration},
	"import_spec":                {RoleImport},
	"function_declaration":       {RoleFunction, RoleDeclaration},
	"method_declaration":         {RoleFunction, RoleDeclaration},
	"func_literal":               {RoleFunction, RoleExpression},
	"type_declaration":           {RoleType, RoleDeclaration},
	"type_spec":                  {RoleType, RoleDeclaration},
	"type_identifier":            {RoleType, RoleIdentifier},
	"field_identifier":           {RoleIdentifier},
	"call_expression":            {RoleCall, RoleExpression},
	"argument_list":              {RoleArgument},
	"block":                      {RoleBlock},
	"if_statement":               {RoleIf, RoleStatement},
	"for_statement":              {RoleLoop, RoleStatement},
	"return_statement":           {RoleReturn, RoleStatement},
	"assignment_statement":       {RoleAssignment, RoleStatement},
	"short_var_declaration":      {RoleAssignment, RoleDeclaration},
	"binary_expression":          {RoleOperator, RoleExpression},
	"unary_expression":           {RoleOperator, RoleExpression},
	"int_literal":                {RoleLiteral, RoleNumber},
	"float_literal":              {RoleLiteral, RoleNumber},
	"true":                       {RoleLiteral, RoleBoolean},
	"false":                      {RoleLiteral, RoleBoolean},
	"interpreted_string_literal": {RoleLiteral, RoleString},
	"raw_string_literal":         {RoleLiteral, RoleString},
}
