// Package response provides standardized HTTP response structures and helpers
// for the map server. All API responses carry a data field on success and an
// error field on failure.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/agentstation/inetmap/pkg/errors"
)

// Response represents the standardized API response structure.
type Response struct {
	Data  any    `json:"data"`
	Error *Error `json:"error"`
}

// Error represents an API error with code, message, and optional details.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Success creates a successful response with data.
func Success(data any) Response {
	return Response{Data: data}
}

// Fail creates an error response.
func Fail(code, message, details string) Response {
	return Response{
		Error: &Error{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; encoding errors cannot be reported.
	_ = json.NewEncoder(w).Encode(resp)
}

// OK writes a successful response with 200 status.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, Success(data))
}

// BadRequest writes a 400 error response.
func BadRequest(w http.ResponseWriter, message, details string) {
	JSON(w, http.StatusBadRequest, Fail("BAD_REQUEST", message, details))
}

// NotFound writes a 404 error response.
func NotFound(w http.ResponseWriter, message, details string) {
	JSON(w, http.StatusNotFound, Fail("NOT_FOUND", message, details))
}

// UnprocessableData writes a 422 error response for inputs that cannot be
// reconciled into a map.
func UnprocessableData(w http.ResponseWriter, code, message string) {
	JSON(w, http.StatusUnprocessableEntity, Fail(code, "Unable to render map", message))
}

// InternalError writes a 500 error response without exposing err.
func InternalError(w http.ResponseWriter, _ error) {
	JSON(w, http.StatusInternalServerError, Fail(
		"INTERNAL_ERROR",
		"Internal server error",
		"An unexpected error occurred",
	))
}

// ErrorFromType maps typed errors to appropriate HTTP responses.
func ErrorFromType(w http.ResponseWriter, err error) {
	var (
		validationErr *errors.ValidationError
		parseErr      *errors.ParseError
	)
	switch {
	case errors.IsMalformedInput(err):
		UnprocessableData(w, "MALFORMED_INPUT", err.Error())
	case errors.IsEmptyDataset(err):
		UnprocessableData(w, "EMPTY_DATASET", err.Error())
	case errors.IsNoJoinableData(err):
		UnprocessableData(w, "NO_JOINABLE_DATA", err.Error())
	case errors.As(err, &parseErr):
		UnprocessableData(w, "PARSE_ERROR", parseErr.Error())
	case errors.As(err, &validationErr):
		BadRequest(w, validationErr.Error(), "")
	case errors.IsNotFound(err):
		NotFound(w, err.Error(), "")
	default:
		InternalError(w, err)
	}
}
