package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Error は 2xx 以外のレスポンスです。Message はサーバーが返したメッセージです。
type Error struct {
	StatusCode int
	Method     string
	Path       string
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: %d", e.Method, e.Path, e.StatusCode)
}

// ServerMessage returns the server-provided message carried by err, if any.
func ServerMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

func newError(method, path string, status int, body []byte) *Error {
	e := &Error{StatusCode: status, Method: method, Path: path}
	var fields map[string]json.RawMessage
	if json.Unmarshal(body, &fields) == nil {
		e.Message = MessageOf(fields)
	}
	return e
}
