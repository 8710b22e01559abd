package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// ErrorList is an ordered list of human-readable error messages.
type ErrorList []string

// Error implements the error interface.
func (l ErrorList) Error() string {
	return strings.Join(l, "; ")
}

// StatusError is returned by CheckStatus for responses outside [200, 300).
// Response is the original response; its body has been closed by the
// time the error reaches the caller of a Client method.
type StatusError struct {
	StatusText string
	Response   *http.Response
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("api: HTTP %d: %s", e.Response.StatusCode, e.StatusText)
}

// Message returns the status text, the user-facing part of the error.
func (e *StatusError) Message() string {
	return e.StatusText
}

// CheckStatus passes through responses whose status code lies in
// [200, 300) and returns a *StatusError carrying resp otherwise.
func CheckStatus(resp *http.Response) (*http.Response, error) {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	return nil, &StatusError{
		StatusText: statusText(resp),
		Response:   resp,
	}
}

// statusText strips the numeric code from resp.Status ("404 Not Found").
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		return http.StatusText(resp.StatusCode)
	}
	return text
}

// ErrorKind tags the recognized representations of a server error.
type ErrorKind int

const (
	KindUnrecognized ErrorKind = iota
	KindStructured
	KindRaw
)

// ErrorValue is one entry of a server error list, classified when it is
// decoded. Structured errors are objects with a message field, raw
// errors are bare strings, anything else is kept as Raw JSON.
type ErrorValue struct {
	Kind    ErrorKind
	Message string
	Text    string
	Raw     json.RawMessage
}

// UnmarshalJSON classifies the JSON value.
func (e *ErrorValue) UnmarshalJSON(data []byte) error {
	*e = ErrorValue{Raw: append(json.RawMessage(nil), data...)}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		e.Kind = KindRaw
		e.Text = s
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return err
		}
		msg, ok := obj["message"]
		if !ok {
			return nil
		}
		e.Kind = KindStructured
		var s string
		if err := json.Unmarshal(msg, &s); err == nil {
			e.Message = s
		} else {
			e.Message = string(msg)
		}
	}
	return nil
}

// Normalize extracts a message from an error representation. Objects
// carrying a message (maps with a "message" key, structured ErrorValues,
// values with a Message method) yield that message; errors yield their
// text; strings are returned unchanged. Any other value reports false.
func Normalize(v any) (string, bool) {
	switch e := v.(type) {
	case ErrorValue:
		return normalizeValue(e)
	case *ErrorValue:
		if e == nil {
			return "", false
		}
		return normalizeValue(*e)
	case string:
		return e, true
	case map[string]any:
		msg, ok := e["message"]
		if !ok {
			return "", false
		}
		if s, ok := msg.(string); ok {
			return s, true
		}
		return fmt.Sprint(msg), true
	case interface{ Message() string }:
		return e.Message(), true
	case error:
		return e.Error(), true
	}
	return "", false
}

func normalizeValue(e ErrorValue) (string, bool) {
	switch e.Kind {
	case KindStructured:
		return e.Message, true
	case KindRaw:
		return e.Text, true
	}
	return "", false
}
