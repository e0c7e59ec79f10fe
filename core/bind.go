package core

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
)

var (
	ErrMissingContentType   = errors.New("core: missing content type")
	ErrUnsupportedMediaType = errors.New("core: unsupported media type")
	ErrInvalidJSON          = errors.New("core: invalid JSON")
)

// BindJSON decodes a JSON request body into v in strict mode: unknown fields
// and trailing data are rejected so malformed or loosely-typed payloads fail
// at the boundary instead of reaching a service.
func BindJSON(r *http.Request, v any) error {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return ErrMissingContentType
	}

	mediaType := contentType
	if idx := strings.Index(contentType, ";"); idx != -1 {
		mediaType = strings.TrimSpace(contentType[:idx])
	}
	if mediaType != "application/json" {
		return ErrUnsupportedMediaType
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(v); err != nil {
		if err == io.EOF {
			return errors.Join(ErrInvalidJSON, errors.New("empty body"))
		}
		return errors.Join(ErrInvalidJSON, err)
	}

	// Ensure the entire body was consumed.
	var extra json.RawMessage
	if err := decoder.Decode(&extra); err != io.EOF {
		return errors.Join(ErrInvalidJSON, errors.New("unexpected data after JSON object"))
	}

	return nil
}
