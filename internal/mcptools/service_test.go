package mcptools

import (
	"context"
	"errors"
	"testing"

	"github.com/dusk-indust/uastdash/internal/languages"
	"github.com/dusk-indust/uastdash/internal/uast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

type stubParser struct {
	gotLanguage string
	resp        *uast.Response
	err         error
}

func (p *stubParser) Parse(_ context.Context, language, _ string) (*uast.Response, error) {
	p.gotLanguage = language
	return p.resp, p.err
}

func (p *stubParser) SupportedLanguages() []string { return []string{"go"} }

func (p *stubParser) Close() error { return nil }

func okStub() *stubParser {
	return &stubParser{resp: &uast.Response{
		Status:   uast.Ok,
		Language: "go",
		UAST:     &uast.Node{InternalType: "source_file", Roles: []uast.Role{uast.RoleFile}},
	}}
}

// ---------------------------------------------------------------------------
// ParseCode
// ---------------------------------------------------------------------------

func TestParseCode_OK(t *testing.T) {
	p := okStub()
	svc := NewParseService(p, nil)

	_, out, err := svc.ParseCode(context.Background(), nil, ParseCodeInput{Language: "Go", Content: "package main"})
	require.NoError(t, err)

	assert.Equal(t, "go", p.gotLanguage, "language is normalized")
	assert.Equal(t, "ok", out.Status)
	assert.Equal(t, "go", out.Language)
	assert.Equal(t, []string{}, out.Errors)
	node, ok := out.UAST.(*uast.Node)
	require.True(t, ok)
	assert.Equal(t, "source_file", node.InternalType)
}

func TestParseCode_DefaultsToAuto(t *testing.T) {
	p := okStub()
	svc := NewParseService(p, nil)

	_, _, err := svc.ParseCode(context.Background(), nil, ParseCodeInput{Content: "x = 1"})
	require.NoError(t, err)
	assert.Equal(t, languages.Auto, p.gotLanguage)
}

func TestParseCode_SyntaxErrorsAreOutput(t *testing.T) {
	p := &stubParser{resp: &uast.Response{
		Status:   uast.Error,
		Language: "go",
		Errors:   []string{`syntax error at 1:6: missing ")"`},
		UAST:     &uast.Node{InternalType: "source_file"},
	}}
	svc := NewParseService(p, nil)

	_, out, err := svc.ParseCode(context.Background(), nil, ParseCodeInput{Language: "go", Content: "func ("})
	require.NoError(t, err)
	assert.Equal(t, "error", out.Status)
	assert.Len(t, out.Errors, 1)
	assert.NotNil(t, out.UAST, "partial tree is still returned")
}

func TestParseCode_Fatal(t *testing.T) {
	p := &stubParser{resp: &uast.Response{Status: uast.Fatal, Errors: []string{"boom"}}}
	svc := NewParseService(p, nil)

	_, out, err := svc.ParseCode(context.Background(), nil, ParseCodeInput{Language: "go", Content: "x"})
	require.NoError(t, err)
	assert.Equal(t, "fatal", out.Status)
	assert.Nil(t, out.UAST)
}

func TestParseCode_Validation(t *testing.T) {
	svc := NewParseService(okStub(), nil)
	ctx := context.Background()

	_, _, err := svc.ParseCode(ctx, nil, ParseCodeInput{Language: "go", Content: "  \n"})
	assert.ErrorContains(t, err, "content is required")

	_, _, err = svc.ParseCode(ctx, nil, ParseCodeInput{Language: "cobol", Content: "x"})
	assert.ErrorContains(t, err, `unknown language "cobol"`)
}

func TestParseCode_ParserFailure(t *testing.T) {
	svc := NewParseService(&stubParser{err: context.Canceled}, nil)

	_, _, err := svc.ParseCode(context.Background(), nil, ParseCodeInput{Language: "go", Content: "x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

// ---------------------------------------------------------------------------
// ListDrivers
// ---------------------------------------------------------------------------

func TestListDrivers(t *testing.T) {
	reg := languages.New(map[string]languages.Descriptor{
		languages.Auto: {Name: "(auto)"},
		"go":           {Name: "Go", URL: "https://example.com/go"},
	})
	svc := NewParseService(okStub(), reg)

	_, out, err := svc.ListDrivers(context.Background(), nil, ListDriversInput{})
	require.NoError(t, err)
	assert.Equal(t, []languages.Driver{{Language: "go", Name: "Go", URL: "https://example.com/go"}}, out.Drivers)
}
