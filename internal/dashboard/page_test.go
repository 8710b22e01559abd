package dashboard

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/dusk-indust/uastdash/internal/api"
	"github.com/dusk-indust/uastdash/internal/uast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// newPageServer starts a parser service backed by p and a dashboard page
// whose client talks to it.
func newPageServer(t *testing.T, p uast.Parser, mutate func(*Options)) *httptest.Server {
	t.Helper()
	backend := newTestServer(t, p, mutate)
	return newTestServer(t, p, func(o *Options) {
		if mutate != nil {
			mutate(o)
		}
		o.Client = api.New(backend.URL+"/api", api.WithLogger(quietLogger()))
	})
}

func getDoc(t *testing.T, target string) *goquery.Document {
	t.Helper()
	resp, err := http.Get(target)
	require.NoError(t, err)
	return readDoc(t, resp)
}

func postDoc(t *testing.T, target string, form url.Values) *goquery.Document {
	t.Helper()
	resp, err := http.PostForm(target, form)
	require.NoError(t, err)
	return readDoc(t, resp)
}

func readDoc(t *testing.T, resp *http.Response) *goquery.Document {
	t.Helper()
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)
	return doc
}

func TestPage_Initial(t *testing.T) {
	ts := newPageServer(t, okParser(), nil)

	doc := getDoc(t, ts.URL+"/")

	sel := doc.Find("#language-selector option[selected]")
	require.Equal(t, 1, sel.Length())
	val, _ := sel.Attr("value")
	assert.Equal(t, "auto", val)
	assert.Equal(t, "Go (auto)", sel.Text(), "first driver stands in until a language is detected")

	_, disabled := doc.Find("#run-parser").Attr("disabled")
	assert.True(t, disabled, "rendered from header props: nothing typed yet")
	assert.Equal(t, 0, doc.Find("#uast").Length())
}

// formValues collects what a browser would submit from the dashboard form.
func formValues(doc *goquery.Document) url.Values {
	form := doc.Find("form#dashboard")
	values := url.Values{}
	form.Find("select[name]").Each(func(_ int, sel *goquery.Selection) {
		name, _ := sel.Attr("name")
		value, _ := sel.Find("option[selected]").Attr("value")
		values.Set(name, value)
	})
	form.Find("textarea[name]").Each(func(_ int, sel *goquery.Selection) {
		name, _ := sel.Attr("name")
		values.Set(name, sel.Text())
	})
	form.Find("input[name]").Each(func(_ int, sel *goquery.Selection) {
		name, _ := sel.Attr("name")
		value, _ := sel.Attr("value")
		values.Set(name, value)
	})
	return values
}

func TestPage_TypingEnablesRunInBrowser(t *testing.T) {
	ts := newPageServer(t, okParser(), nil)
	doc := getDoc(t, ts.URL+"/")

	script := doc.Find("script").Text()
	assert.Contains(t, script, `getElementById("code")`)
	assert.Contains(t, script, `getElementById("run-parser")`)
	assert.Contains(t, script, `addEventListener("input"`)
	assert.Contains(t, script, `code.value === ""`)
}

func TestPage_SubmittableWithoutScripting(t *testing.T) {
	ts := newPageServer(t, okParser(), nil)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	root, err := html.ParseWithOptions(resp.Body, html.ParseOptionEnableScripting(false))
	require.NoError(t, err)
	doc := goquery.NewDocumentFromNode(root)

	enabled := doc.Find(`form#dashboard button[type="submit"]`).FilterFunction(func(_ int, sel *goquery.Selection) bool {
		_, disabled := sel.Attr("disabled")
		return !disabled
	})
	assert.Equal(t, 1, enabled.Length(), "noscript fallback leaves one enabled submit control")
}

func TestPage_InitialRenderRoundTrip(t *testing.T) {
	ts := newPageServer(t, okParser(), nil)
	doc := getDoc(t, ts.URL+"/")

	action, _ := doc.Find("form#dashboard").Attr("action")
	method, _ := doc.Find("form#dashboard").Attr("method")
	require.Equal(t, "/", action)
	require.Equal(t, "post", method)

	values := formValues(doc)
	assert.Equal(t, "auto", values.Get("language"))
	values.Set("code", "print(1)")

	result := postDoc(t, ts.URL+action, values)
	assert.Contains(t, result.Find("#uast").Text(), `"Token": "print(1)"`)
	_, disabled := result.Find("#run-parser").Attr("disabled")
	assert.False(t, disabled)
}

func TestPage_SelectedLanguageFromQuery(t *testing.T) {
	ts := newPageServer(t, okParser(), nil)

	doc := getDoc(t, ts.URL+"/?language=rust")
	val, _ := doc.Find("#language-selector option[selected]").Attr("value")
	assert.Equal(t, "rust", val)

	href, _ := doc.Find("a.driver-code-link").Attr("href")
	assert.Contains(t, href, "tree-sitter-rust")
}

func TestPage_RunParser(t *testing.T) {
	ts := newPageServer(t, okParser(), nil)

	form := url.Values{"language": {"auto"}, "code": {"print(1)"}}
	doc := postDoc(t, ts.URL+"/", form)

	assert.Contains(t, doc.Find("#uast").Text(), `"InternalType": "module"`)
	assert.Equal(t, "print(1)", doc.Find("#code").Text())

	sel := doc.Find("#language-selector option[selected]")
	assert.Equal(t, "Python (auto)", sel.Text(), "detected language labels the auto entry")
	href, _ := doc.Find("a.driver-code-link").Attr("href")
	assert.Contains(t, href, "tree-sitter-python")

	_, disabled := doc.Find("#run-parser").Attr("disabled")
	assert.False(t, disabled)
}

func TestPage_RunParserErrors(t *testing.T) {
	p := &fakeParser{parse: func(context.Context, string, string) (*uast.Response, error) {
		return &uast.Response{Status: uast.Error, Errors: []string{"syntax error at 1:5: missing \")\""}}, nil
	}}
	ts := newPageServer(t, p, nil)

	doc := postDoc(t, ts.URL+"/", url.Values{"language": {"go"}, "code": {"func ("}})

	items := doc.Find("#errors li")
	require.Equal(t, 1, items.Length())
	assert.Equal(t, `syntax error at 1:5: missing ")"`, items.Text())
	assert.Equal(t, 0, doc.Find("#uast").Length())
}

func TestPage_UnreachableService(t *testing.T) {
	dead := httptest.NewServer(http.NotFoundHandler())
	deadURL := dead.URL
	dead.Close()

	ts := newTestServer(t, okParser(), func(o *Options) {
		o.Client = api.New(deadURL+"/api", api.WithLogger(quietLogger()))
	})

	doc := postDoc(t, ts.URL+"/", url.Values{"language": {"go"}, "code": {"package main"}})
	assert.Equal(t, api.UnexpectedErrorMsg, doc.Find("#errors li").Text())
}

func TestPage_LoadsGist(t *testing.T) {
	gists := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "fn main() {}\n")
	}))
	defer gists.Close()

	ts := newPageServer(t, okParser(), func(o *Options) { o.GistBaseURL = gists.URL })

	doc := getDoc(t, ts.URL+"/?gist=user/abc/raw/main.rs&language=rust")
	assert.Equal(t, "fn main() {}\n", doc.Find("#code").Text())

	_, disabled := doc.Find("#run-parser").Attr("disabled")
	assert.False(t, disabled, "gist content counts as typed")
}

func TestPage_EscapesCode(t *testing.T) {
	ts := newPageServer(t, okParser(), nil)

	resp, err := http.PostForm(ts.URL+"/", url.Values{"language": {"go"}, "code": {"</textarea><script>x</script>"}})
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.False(t, strings.Contains(string(body), "<script>x</script>"))
}
