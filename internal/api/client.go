// Package api is the client side of the dashboard protocol. It wraps the
// /parse, /drivers and /gist endpoints of a parser service and turns
// their responses into values or lists of human-readable errors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dusk-indust/uastdash/internal/languages"
)

// DefaultBaseURL is used when a Client is created with an empty base URL.
const DefaultBaseURL = "http://0.0.0.0:9999/api"

// UnexpectedErrorMsg replaces every transport-level failure of Parse.
const UnexpectedErrorMsg = "Unexpected error contacting babelfish server. Please, try again."

// unexpectedStatusMsg is returned when a failed parse carries no errors.
const unexpectedStatusMsg = "unexpected error"

// Client talks to a parser service rooted at a base URL.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithHTTPClient replaces the underlying *http.Client entirely.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.http = hc
	}
}

// WithLogger sets the logger that receives transport failures.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// New creates a Client for the service at baseURL.
func New(baseURL string, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the service root the client sends requests to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// parseRequest is the body of POST /parse.
type parseRequest struct {
	ServerURL *string `json:"server_url"`
	Language  string  `json:"language"`
	Content   string  `json:"content"`
}

// parseResponse is the subset of the /parse body the client inspects.
type parseResponse struct {
	Status   json.RawMessage `json:"status"`
	Errors   []ErrorValue    `json:"errors"`
	UAST     json.RawMessage `json:"uast"`
	Language string          `json:"language"`
}

// succeeded reports whether status is the numeric success sentinel 0.
func (r *parseResponse) succeeded() bool {
	var n float64
	if err := json.Unmarshal(r.Status, &n); err != nil {
		return false
	}
	return n == 0
}

// ParseResult is a successful parse as seen by the client.
type ParseResult struct {
	// UAST is the tree exactly as the service returned it.
	UAST json.RawMessage
	// Language is the language the service parsed with, which differs
	// from the requested one when detection was asked for. It is empty
	// when the service does not report it.
	Language string
}

// Parse asks the service to parse code written in language. An empty
// serverURL lets the service use its default upstream.
//
// On success the uast field is returned verbatim. A non-zero status
// yields an ErrorList of the normalized server errors. Every transport
// failure is logged and collapsed into ErrorList{UnexpectedErrorMsg}.
func (c *Client) Parse(ctx context.Context, language, code, serverURL string) (json.RawMessage, error) {
	res, err := c.ParseDetailed(ctx, language, code, serverURL)
	if err != nil {
		return nil, err
	}
	return res.UAST, nil
}

// ParseDetailed is Parse that also reports the language the service used.
func (c *Client) ParseDetailed(ctx context.Context, language, code, serverURL string) (*ParseResult, error) {
	req := parseRequest{Language: language, Content: code}
	if serverURL != "" {
		req.ServerURL = &serverURL
	}

	resp, err := c.postParse(ctx, req)
	if err != nil {
		c.logger.ErrorContext(ctx, "parse request failed", "url", c.url("/parse"), "err", err)
		return nil, ErrorList{UnexpectedErrorMsg}
	}

	if resp.succeeded() {
		return &ParseResult{UAST: resp.UAST, Language: resp.Language}, nil
	}
	if resp.Errors == nil {
		return nil, ErrorList{unexpectedStatusMsg}
	}
	return nil, c.errorList(ctx, resp.Errors)
}

func (c *Client) postParse(ctx context.Context, req parseRequest) (*parseResponse, error) {
	data, err := c.sendParse(ctx, req)
	if err != nil {
		return nil, err
	}
	var resp parseResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("api: decode response: %w", err)
	}
	return &resp, nil
}

// sendParse performs one POST /parse and returns the raw body, whatever
// the HTTP status.
func (c *Client) sendParse(ctx context.Context, req parseRequest) ([]byte, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("api: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("/parse"), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("api: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("api: parse: %w", err)
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("api: read response: %w", err)
	}
	return data, nil
}

// ServiceResponse is a /parse body decoded without interpretation, for
// relaying one service's answer through another.
type ServiceResponse struct {
	Status   int             `json:"status"`
	Errors   json.RawMessage `json:"errors"`
	UAST     json.RawMessage `json:"uast"`
	Language string          `json:"language"`
	Elapsed  int64           `json:"elapsed"`
}

// Forward sends one parse request and returns the service's answer as
// is, including failed parses with their partial tree. Only transport
// failures and bodies that are not a parse response are errors.
func (c *Client) Forward(ctx context.Context, language, code string) (*ServiceResponse, error) {
	data, err := c.sendParse(ctx, parseRequest{Language: language, Content: code})
	if err != nil {
		return nil, err
	}

	var head struct {
		Status *int `json:"status"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("api: decode response: %w", err)
	}
	if head.Status == nil {
		return nil, errors.New("api: decode response: missing status")
	}

	var resp ServiceResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("api: decode response: %w", err)
	}
	return &resp, nil
}

// errorList normalizes server errors. Unrecognized shapes keep their raw
// JSON text so no entry is lost.
func (c *Client) errorList(ctx context.Context, values []ErrorValue) ErrorList {
	list := make(ErrorList, 0, len(values))
	for _, v := range values {
		msg, ok := Normalize(v)
		if !ok {
			c.logger.WarnContext(ctx, "unrecognized error shape in parse response", "raw", string(v.Raw))
			msg = string(v.Raw)
		}
		list = append(list, msg)
	}
	return list
}

// ListDrivers fetches the drivers known to the service. Failures are
// returned as-is: a *StatusError for non-2xx responses, otherwise a
// wrapped transport or decode error.
func (c *Client) ListDrivers(ctx context.Context) ([]languages.Driver, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url("/drivers"), nil)
	if err != nil {
		return nil, fmt.Errorf("api: create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("api: list drivers: %w", err)
	}
	defer resp.Body.Close()

	if _, err := CheckStatus(resp); err != nil {
		return nil, err
	}

	var drivers []languages.Driver
	if err := json.NewDecoder(resp.Body).Decode(&drivers); err != nil {
		return nil, fmt.Errorf("api: decode drivers: %w", err)
	}
	return drivers, nil
}

// GetGist fetches the raw content of a gist through the service. Any
// failure is logged and returned as a one-element ErrorList.
func (c *Client) GetGist(ctx context.Context, gist string) (string, error) {
	code, err := c.fetchGist(ctx, gist)
	if err != nil {
		c.logger.ErrorContext(ctx, "gist request failed", "gist", gist, "err", err)
		msg, ok := Normalize(err)
		if !ok {
			msg = UnexpectedErrorMsg
		}
		return "", ErrorList{msg}
	}
	return code, nil
}

func (c *Client) fetchGist(ctx context.Context, gist string) (string, error) {
	endpoint := c.url("/gist") + "?url=" + url.QueryEscape(gist)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("api: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("api: get gist: %w", err)
	}
	defer resp.Body.Close()

	if _, err := CheckStatus(resp); err != nil {
		return "", err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("api: read gist: %w", err)
	}
	return string(data), nil
}

func (c *Client) url(path string) string {
	return c.baseURL + path
}
