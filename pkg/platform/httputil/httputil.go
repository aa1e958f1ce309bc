package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "github.com/Ibramnsh/backend-sidokepung/pkg/domain-errors"
)

// ErrorResponse is the JSON envelope for every error written by the API.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// WriteJSON encodes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error to its HTTP status and envelope.
// Internal errors never leak their description.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	resp := ErrorResponse{Error: string(code)}
	if code != dErrors.CodeInternal {
		var de *dErrors.Error
		if errors.As(err, &de) {
			resp.ErrorDescription = de.Message
		}
	}
	WriteJSON(w, StatusFor(code), resp)
}

// StatusFor maps a domain code to an HTTP status.
func StatusFor(code dErrors.Code) int {
	switch code {
	case dErrors.CodeBadRequest, dErrors.CodeInvalidInput, dErrors.CodeValidation:
		return http.StatusBadRequest
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeForbidden:
		return http.StatusForbidden
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeConflict:
		return http.StatusConflict
	case dErrors.CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// DecodeJSON decodes the request body into v, returning a bad request error
// on malformed input.
func DecodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid request body")
	}
	return nil
}
