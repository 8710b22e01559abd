package dashboard

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"

	"github.com/dusk-indust/uastdash/internal/api"
	"github.com/dusk-indust/uastdash/internal/header"
	"github.com/dusk-indust/uastdash/internal/languages"
)

//go:embed templates/page.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html.tmpl"))

// pageState is what the dashboard page knows about the current session.
// It lives only for the duration of one request.
type pageState struct {
	Language       string
	ActualLanguage string
	Code           string
	ServerURL      string
	UAST           string
	Errors         []string
}

// pageView is the data handed to the page template.
type pageView struct {
	Header    template.HTML
	Code      string
	ServerURL string
	UAST      string
	Errors    []string
}

// handlePage renders the dashboard. The optional gist query parameter
// preloads the editor through the gist endpoint.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	state := pageState{
		Language:  s.selectedLanguage(q.Get("language")),
		ServerURL: q.Get("server_url"),
	}

	if gist := q.Get("gist"); gist != "" {
		code, err := s.pageClient().GetGist(r.Context(), gist)
		if err != nil {
			state.Errors = errorMessages(err)
		} else {
			state.Code = code
		}
	}

	s.renderPage(w, r, state)
}

// handleRun parses the submitted code through the client and renders the
// result.
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form: "+err.Error(), http.StatusBadRequest)
		return
	}

	state := pageState{
		Language:  s.selectedLanguage(r.PostFormValue("language")),
		Code:      r.PostFormValue("code"),
		ServerURL: r.PostFormValue("server_url"),
	}

	if state.Code != "" {
		res, err := s.pageClient().ParseDetailed(r.Context(), state.Language, state.Code, state.ServerURL)
		if err != nil {
			state.Errors = errorMessages(err)
		} else {
			state.ActualLanguage = res.Language
			state.UAST = prettyJSON(res.UAST)
		}
	}

	s.renderPage(w, r, state)
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, state pageState) {
	props := header.Props{
		SelectedLanguage: state.Language,
		Languages:        s.languages,
		ActualLanguage:   s.actualLanguage(state),
		Loading:          false,
		UserHasTyped:     state.Code != "",
	}
	head, err := props.HTML()
	if err != nil {
		s.logger.ErrorContext(r.Context(), "render header", "err", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	err = pageTemplate.Execute(&buf, pageView{
		Header:    head,
		Code:      state.Code,
		ServerURL: state.ServerURL,
		UAST:      state.UAST,
		Errors:    state.Errors,
	})
	if err != nil {
		s.logger.ErrorContext(r.Context(), "render page", "err", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// selectedLanguage falls back to Auto for unknown or empty selections.
func (s *Server) selectedLanguage(lang string) string {
	if _, ok := s.languages.Lookup(lang); ok {
		return lang
	}
	return languages.Auto
}

// actualLanguage picks a registered language for the driver-code link.
// It prefers the detected one and falls back to the first driver.
func (s *Server) actualLanguage(state pageState) string {
	if _, ok := s.languages.Lookup(state.ActualLanguage); ok && state.ActualLanguage != languages.Auto {
		return state.ActualLanguage
	}
	if state.Language != languages.Auto {
		return state.Language
	}
	if drivers := s.languages.Drivers(); len(drivers) > 0 {
		return drivers[0].Language
	}
	return ""
}

func errorMessages(err error) []string {
	var list api.ErrorList
	if errors.As(err, &list) {
		return list
	}
	return []string{err.Error()}
}

func prettyJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
