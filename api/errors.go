package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	apperrors "github.com/jrsteele09/go-barber-client/internal/errors"
)

// Error is a non-2xx answer from the API. Detail carries the server's message, which is what the
// user gets to see.
type Error struct {
	Method string
	Path   string
	Status int
	Detail string
	// Public is set when the request was sent without credentials, as sign-in is.
	Public bool
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Detail)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
}

// Unwrap maps the status onto the shared sentinel errors so callers can use errors.Is.
func (e *Error) Unwrap() error {
	switch {
	case e.Status == http.StatusUnauthorized:
		return apperrors.ErrUnauthorized
	case e.Status == http.StatusNotFound:
		return apperrors.ErrNotFound
	case e.Status == http.StatusUnprocessableEntity:
		return apperrors.ErrValidation
	case e.Status >= 500:
		return apperrors.ErrServer
	default:
		return apperrors.ErrBadRequest
	}
}

// validationIssue is one entry of a 422 detail list.
type validationIssue struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

func newError(method, path string, status int, body []byte, public bool) *Error {
	return &Error{Method: method, Path: path, Status: status, Detail: parseDetail(body), Public: public}
}

// parseDetail accepts {"detail": "text"} and {"detail": [{"loc": [...], "msg": "..."}]}.
func parseDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(envelope.Detail, &text); err == nil {
		return text
	}

	var issues []validationIssue
	if err := json.Unmarshal(envelope.Detail, &issues); err != nil {
		return ""
	}
	msgs := make([]string, 0, len(issues))
	for _, issue := range issues {
		if field := lastLoc(issue.Loc); field != "" {
			msgs = append(msgs, field+": "+issue.Msg)
		} else {
			msgs = append(msgs, issue.Msg)
		}
	}
	return strings.Join(msgs, "; ")
}

func lastLoc(loc []any) string {
	if len(loc) == 0 {
		return ""
	}
	if s, ok := loc[len(loc)-1].(string); ok {
		return s
	}
	return ""
}

// DetailOf returns the server message carried by err, if any.
func DetailOf(err error) (string, bool) {
	var apiErr *Error
	if apperrors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail, true
	}
	return "", false
}
