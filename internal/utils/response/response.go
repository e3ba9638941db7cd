// Package response provides helpers for writing consistent JSON HTTP
// responses from the record service.
package response

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"

	"github.com/aanand-mishra/students-app/internal/validation"
)

// Response is the envelope returned for error cases. Success responses
// carry the resource itself.
//
//	{ "status": "error", "error": "email is required", "fields": { "email": "email is required" } }
type Response struct {
	Status string            `json:"status"`
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON sets the content type, writes status and encodes data.
// Header() → WriteHeader() → body, in that order.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// GeneralError wraps any Go error into the standard Response shape.
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// ValidationError turns a validator error into a Response listing every
// failing field. The summary joins the messages in field order so it is
// stable across requests.
func ValidationError(err error) Response {
	fields := validation.Fields(err)
	if fields == nil {
		return GeneralError(err)
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	messages := make([]string, 0, len(names))
	for _, name := range names {
		messages = append(messages, fields[name])
	}

	return Response{
		Status: StatusError,
		Error:  strings.Join(messages, ", "),
		Fields: fields,
	}
}
