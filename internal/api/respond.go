package api

import (
	"encoding/json"
	"net/http"

	"github.com/plateforge/plateforge/pkg/errors"
)

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respondError maps a coded error to its HTTP status and writes the
// JSON error body.
func respondError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	respondJSON(w, statusForCode(code), errorResponse{
		Error: errorBody{Code: string(code), Message: errors.UserMessage(err)},
	})
}

func statusForCode(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidPlate,
		errors.ErrCodeInvalidPattern,
		errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidPlateFile,
		errors.ErrCodeInvalidName:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound,
		errors.ErrCodeDesignNotFound,
		errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
