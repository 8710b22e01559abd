package uast

import (
	"context"
	"fmt"
	"sort"
	"time"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
	"golang.org/x/sync/errgroup"
)

// Compile-time interface check.
var _ Parser = (*TreeSitterParser)(nil)

// autoLanguage asks the parser to detect the language.
const autoLanguage = "auto"

// grammar pairs a tree-sitter language with the role table used to
// annotate its nodes.
type grammar struct {
	lang  *tree_sitter.Language
	roles roleTable
}

// TreeSitterParser implements Parser using tree-sitter grammars. A new
// tree-sitter parser is created per parse, so one TreeSitterParser may be
// shared by concurrent callers.
type TreeSitterParser struct {
	grammars map[string]grammar
	order    []string
}

// NewTreeSitterParser creates a TreeSitterParser with Go, Python, Rust
// and TypeScript grammars registered.
func NewTreeSitterParser() *TreeSitterParser {
	grammars := map[string]grammar{
		"go":         {lang: tree_sitter.NewLanguage(tree_sitter_go.Language()), roles: goRoles},
		"python":     {lang: tree_sitter.NewLanguage(tree_sitter_python.Language()), roles: pyRoles},
		"rust":       {lang: tree_sitter.NewLanguage(tree_sitter_rust.Language()), roles: rsRoles},
		"typescript": {lang: tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()), roles: tsRoles},
	}

	order := make([]string, 0, len(grammars))
	for l := range grammars {
		order = append(order, l)
	}
	sort.Strings(order)

	return &TreeSitterParser{grammars: grammars, order: order}
}

// Parse builds the UAST of content. An empty language or "auto" selects
// the grammar that produces the fewest syntax errors.
func (p *TreeSitterParser) Parse(ctx context.Context, language, content string) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	if language == "" || language == autoLanguage {
		resp, err := p.detect(ctx, []byte(content))
		if err != nil {
			return nil, err
		}
		resp.Elapsed = time.Since(start)
		return resp, nil
	}

	g, ok := p.grammars[language]
	if !ok {
		return &Response{
			Status:   Fatal,
			Errors:   []string{fmt.Sprintf("unsupported language: %s", language)},
			Language: language,
			Elapsed:  time.Since(start),
		}, nil
	}

	resp, err := p.parseWith(ctx, language, g, []byte(content))
	if err != nil {
		return nil, err
	}
	resp.Elapsed = time.Since(start)
	return resp, nil
}

// SupportedLanguages returns the registered language ids in sorted order.
func (p *TreeSitterParser) SupportedLanguages() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// Close is a no-op because parsers are created per Parse call.
func (p *TreeSitterParser) Close() error {
	return nil
}

// detect parses source with every grammar in parallel and keeps the
// result with the fewest syntax errors. Ties go to the earlier language
// in sorted order.
func (p *TreeSitterParser) detect(ctx context.Context, source []byte) (*Response, error) {
	results := make([]*Response, len(p.order))
	g, gctx := errgroup.WithContext(ctx)

	for i, lang := range p.order {
		gr := p.grammars[lang]
		g.Go(func() error {
			resp, err := p.parseWith(gctx, lang, gr, source)
			if err != nil {
				return err
			}
			results[i] = resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	best := results[0]
	for _, r := range results[1:] {
		if len(r.Errors) < len(best.Errors) {
			best = r
		}
	}
	return best, nil
}

// parseWith runs a single grammar over source.
func (p *TreeSitterParser) parseWith(ctx context.Context, lang string, g grammar, source []byte) (*Response, error) {
	parser := tree_sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(g.lang); err != nil {
		return nil, fmt.Errorf("uast: set language %s: %w", lang, err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("uast: tree-sitter returned nil tree for %s", lang)
	}
	defer tree.Close()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	conv := &converter{source: source, roles: g.roles}
	root := tree.RootNode()
	cursor := root.Walk()
	defer cursor.Close()
	node := conv.walk(cursor)
	node.Roles = appendRole(node.Roles, RoleFile)

	resp := &Response{
		Status:   Ok,
		Errors:   conv.errors,
		UAST:     node,
		Language: lang,
	}
	if len(conv.errors) > 0 {
		resp.Status = Error
	}
	return resp, nil
}
