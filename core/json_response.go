package core

import (
	"encoding/json"
	"errors"
	"net/http"
)

// JSONResponse is the standard JSON response envelope.
type JSONResponse struct {
	Code    string         `json:"code,omitempty"`
	Message string         `json:"message,omitempty"`
	Data    any            `json:"data,omitempty"`
	Meta    map[string]any `json:"meta,omitempty"`
	Error   *ErrorDetail   `json:"error,omitempty"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string              `json:"code,omitempty"`
	Message string              `json:"message,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}

// JSON writes a success envelope with the given HTTP status.
func JSON(w http.ResponseWriter, status int, data any, meta map[string]any) {
	writeJSON(w, status, JSONResponse{Code: "ok", Data: data, Meta: meta})
}

// JSONError writes an error envelope derived from err.
//
// ValidationError maps to 422 with field details, HTTPError carries its own
// status and key, anything else collapses to a 500 with a generic message so
// internal error text never leaks to clients.
func JSONError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	detail := &ErrorDetail{
		Code:    "internal_error",
		Message: http.StatusText(http.StatusInternalServerError),
	}

	var valErr ValidationError
	var httpErr HTTPError
	switch {
	case errors.As(err, &valErr):
		status = http.StatusUnprocessableEntity
		detail.Code = "validation_error"
		detail.Message = http.StatusText(status)
		if len(valErr) > 0 {
			detail.Details = make(map[string][]string, len(valErr))
			for field, msgs := range valErr {
				detail.Details[field] = msgs
			}
		}
	case errors.As(err, &httpErr):
		status = httpErr.Code
		detail.Code = httpErr.Key
		detail.Message = http.StatusText(httpErr.Code)
	}

	writeJSON(w, status, JSONResponse{Code: detail.Code, Error: detail})
}

func writeJSON(w http.ResponseWriter, status int, body JSONResponse) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
