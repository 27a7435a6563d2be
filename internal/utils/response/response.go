// Package response provides helpers for writing consistent JSON HTTP
// responses.
//
// Success responses may be any JSON shape (a student, a list, ...). Error
// responses always share one envelope so API consumers know what failures
// look like:
//
//	{ "status": "error", "error": "field gpa must be at most 4" }
//
// Validation failures additionally carry a structured "fields" list with
// one entry per violated constraint.
package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/aanand-mishra/student-records/internal/validation"
)

// Response is the standard envelope returned for error cases.
type Response struct {
	Status string                 `json:"status"` // "ok" or "error"
	Error  string                 `json:"error"`  // human-readable error detail
	Fields []validation.Violation `json:"fields,omitempty"`
}

// Status string constants — use these instead of raw string literals so a
// typo is caught by the compiler.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// Order matters: Header() → WriteHeader() → body writes. Once WriteHeader
// is called the headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// GeneralError wraps any Go error into the standard envelope. Use this for
// unexpected errors (store failures, decode errors, etc.).
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// NotFoundError builds the envelope for a missing student, carrying the
// identifier the client supplied.
func NotFoundError(id string) Response {
	return Response{
		Status: StatusError,
		Error:  fmt.Sprintf("Student %s not found", id),
	}
}

// ValidationError converts the violated constraints into a single envelope:
// the messages joined into one descriptive string, plus the structured list
// itself.
func ValidationError(violations []validation.Violation) Response {
	messages := make([]string, 0, len(violations))
	for _, v := range violations {
		messages = append(messages, v.Message)
	}

	return Response{
		Status: StatusError,
		Error:  strings.Join(messages, ", "),
		Fields: violations,
	}
}
