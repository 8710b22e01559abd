package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dusk-indust/uastdash/internal/api"
	"github.com/dusk-indust/uastdash/internal/uast"
)

// parseRequest is the body of POST /parse.
type parseRequest struct {
	ServerURL string `json:"server_url"`
	Language  string `json:"language"`
	Content   string `json:"content"`
}

// parseResponse is the body written by POST /parse. Errors and UAST come
// from the local parser or are relayed verbatim from an upstream.
type parseResponse struct {
	Status   uast.Status `json:"status"`
	Errors   any         `json:"errors"`
	UAST     any         `json:"uast"`
	Language string      `json:"language"`
	Elapsed  int64       `json:"elapsed"`
}

// errorEnvelope is the body written for requests that fail before or
// outside of parsing.
type errorEnvelope struct {
	Status uast.Status    `json:"status"`
	Errors []errorMessage `json:"errors"`
}

type errorMessage struct {
	Message string `json:"message"`
}

func jsonError(format string, args ...any) errorEnvelope {
	return errorEnvelope{
		Status: uast.Fatal,
		Errors: []errorMessage{{Message: fmt.Sprintf(format, args...)}},
	}
}

// toHTTPStatus maps a parse status to the HTTP status of the response.
func toHTTPStatus(status uast.Status) int {
	switch status {
	case uast.Ok:
		return http.StatusOK
	case uast.Error:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, jsonError("unable to read request: %s", err))
		return
	}

	var (
		resp *parseResponse
		err  error
	)
	if req.ServerURL == "" {
		resp, err = s.parseLocal(r.Context(), req)
	} else {
		resp, err = s.parseUpstream(r.Context(), req)
	}
	if err != nil {
		var clientErr *badRequestError
		if errors.As(err, &clientErr) {
			writeJSON(w, http.StatusBadRequest, jsonError("%s", clientErr.msg))
			return
		}
		s.logger.ErrorContext(r.Context(), "parse failed", "language", req.Language, "server_url", req.ServerURL, "err", err)
		writeJSON(w, http.StatusInternalServerError, jsonError("error parsing UAST: %s", err))
		return
	}

	writeJSON(w, toHTTPStatus(resp.Status), resp)
}

func (s *Server) parseLocal(ctx context.Context, req parseRequest) (*parseResponse, error) {
	res, err := s.parser.Parse(ctx, req.Language, req.Content)
	if err != nil {
		return nil, err
	}

	out := &parseResponse{
		Status:   res.Status,
		Errors:   res.Errors,
		Language: res.Language,
		Elapsed:  res.Elapsed.Milliseconds(),
	}
	if out.Errors == nil {
		out.Errors = []string{}
	}
	if res.UAST != nil {
		out.UAST = res.UAST
	}
	return out, nil
}

// badRequestError marks failures caused by the request itself.
type badRequestError struct {
	msg string
}

func (e *badRequestError) Error() string { return e.msg }

// parseUpstream forwards the request to the parser service rooted at
// req.ServerURL.
func (s *Server) parseUpstream(ctx context.Context, req parseRequest) (*parseResponse, error) {
	u, err := url.Parse(req.ServerURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, &badRequestError{msg: fmt.Sprintf("invalid server_url: %q", req.ServerURL)}
	}

	upstream := api.New(req.ServerURL, api.WithTimeout(s.upstreamTimeout), api.WithLogger(s.logger))
	res, err := upstream.Forward(ctx, req.Language, req.Content)
	if err != nil {
		return nil, fmt.Errorf("upstream %s: %w", req.ServerURL, err)
	}

	out := &parseResponse{
		Status:   uast.Status(res.Status),
		Errors:   res.Errors,
		UAST:     res.UAST,
		Language: res.Language,
		Elapsed:  res.Elapsed,
	}
	if isJSONNull(res.Errors) {
		out.Errors = []string{}
	}
	if isJSONNull(res.UAST) {
		out.UAST = nil
	}
	return out, nil
}

func isJSONNull(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return trimmed == "" || trimmed == "null"
}

func (s *Server) handleDrivers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.languages.Drivers())
}

func (s *Server) handleGist(w http.ResponseWriter, r *http.Request) {
	gist := r.URL.Query().Get("url")
	if gist == "" {
		writeJSON(w, http.StatusBadRequest, jsonError("missing gist url"))
		return
	}
	gistURL := strings.TrimRight(s.gistBaseURL, "/") + "/" + strings.TrimLeft(gist, "/")

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, gistURL, nil)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, jsonError("invalid gist url: %s", err))
		return
	}

	resp, err := s.gistClient.Do(req)
	if err != nil {
		writeJSON(w, http.StatusNotFound, jsonError("Gist not found: %s", err))
		return
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, jsonError("Could not read gist: %s", err))
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(resp.StatusCode)
	w.Write(content)
}

// writeJSON encodes v as the response body with the given status code.
func writeJSON(w http.ResponseWriter, code int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "failed to marshal response: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(data)
}
