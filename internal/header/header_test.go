package header

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/dusk-indust/uastdash/internal/languages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func testRegistry() *languages.Registry {
	return languages.New(map[string]languages.Descriptor{
		languages.Auto: {Name: "(auto)"},
		"python":       {Name: "Python", URL: "u1"},
		"go":           {Name: "Go", URL: "u2"},
	})
}

func render(t *testing.T, p Props) *goquery.Document {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, p.Render(&sb))
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(sb.String()))
	require.NoError(t, err)
	return doc
}

// ---------------------------------------------------------------------------
// View model
// ---------------------------------------------------------------------------

func TestDriverURL(t *testing.T) {
	tests := []struct {
		name     string
		selected string
		actual   string
		want     string
	}{
		{"auto uses actual language", languages.Auto, "python", "u1"},
		{"explicit selection wins", "go", "python", "u2"},
		{"unregistered language", "cobol", "python", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Props{Languages: testRegistry(), SelectedLanguage: tt.selected, ActualLanguage: tt.actual}
			assert.Equal(t, tt.want, p.DriverURL())
		})
	}
}

func TestRunDisabled(t *testing.T) {
	tests := []struct {
		loading, typed, disabled bool
	}{
		{loading: true, typed: true, disabled: true},
		{loading: true, typed: false, disabled: true},
		{loading: false, typed: false, disabled: true},
		{loading: false, typed: true, disabled: false},
	}
	for _, tt := range tests {
		p := Props{Loading: tt.loading, UserHasTyped: tt.typed}
		assert.Equal(t, tt.disabled, p.RunDisabled(), "loading=%v typed=%v", tt.loading, tt.typed)
	}
}

func TestOptions(t *testing.T) {
	p := Props{Languages: testRegistry(), SelectedLanguage: "go", ActualLanguage: "python"}

	opts := p.Options()
	require.Len(t, opts, 3)
	assert.Equal(t, Option{Value: languages.Auto, Label: "Python (auto)"}, opts[0])
	assert.Equal(t, Option{Value: "go", Label: "Go", Selected: true}, opts[1])
	assert.Equal(t, Option{Value: "python", Label: "Python"}, opts[2])
}

func TestCallbacks(t *testing.T) {
	var changed string
	runs := 0
	p := Props{
		Languages:         testRegistry(),
		UserHasTyped:      true,
		OnLanguageChanged: func(l string) { changed = l },
		OnRunParser:       func() { runs++ },
	}

	p.ChangeLanguage("go")
	assert.Equal(t, "go", changed)

	assert.True(t, p.Run())
	assert.Equal(t, 1, runs)

	p.Loading = true
	assert.False(t, p.Run(), "disabled trigger does not run")
	assert.Equal(t, 1, runs)

	assert.False(t, Props{UserHasTyped: true}.Run(), "nil handler")
}

// ---------------------------------------------------------------------------
// Rendering
// ---------------------------------------------------------------------------

func TestRender(t *testing.T) {
	doc := render(t, Props{
		Languages:        testRegistry(),
		SelectedLanguage: languages.Auto,
		ActualLanguage:   "python",
		UserHasTyped:     true,
	})

	options := doc.Find("#language-selector option")
	require.Equal(t, 3, options.Length())
	assert.Equal(t, "Python (auto)", options.First().Text())
	_, selected := options.First().Attr("selected")
	assert.True(t, selected)

	link := doc.Find("a.driver-code-link")
	href, _ := link.Attr("href")
	assert.Equal(t, "u1", href)
	target, _ := link.Attr("target")
	assert.Equal(t, "_blank", target)

	_, disabled := doc.Find("#run-parser").Attr("disabled")
	assert.False(t, disabled)
}

func TestRender_DisabledWhileLoading(t *testing.T) {
	doc := render(t, Props{
		Languages:        testRegistry(),
		SelectedLanguage: "go",
		ActualLanguage:   "go",
		Loading:          true,
		UserHasTyped:     true,
	})

	_, disabled := doc.Find("#run-parser").Attr("disabled")
	assert.True(t, disabled)
}

func TestRender_EscapesLabels(t *testing.T) {
	reg := languages.New(map[string]languages.Descriptor{
		"x": {Name: "<script>", URL: "javascript:alert(1)"},
	})
	var sb strings.Builder
	require.NoError(t, Props{Languages: reg, SelectedLanguage: "x"}.Render(&sb))

	assert.NotContains(t, sb.String(), "<script>")
	assert.NotContains(t, sb.String(), `href="javascript:`)
}

func TestHTML(t *testing.T) {
	h, err := Props{Languages: testRegistry(), SelectedLanguage: "go"}.HTML()
	require.NoError(t, err)
	assert.Contains(t, string(h), `id="run-parser"`)
}
