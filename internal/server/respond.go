package server

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/legenda-dev/legenda/pkg/errors"
	"github.com/legenda-dev/legenda/pkg/store"
)

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondJSON writes v as a JSON response. Encoding failures are
// dropped; the status line is already on the wire.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respondError writes a structured error response. Server-side failures
// are logged; client errors only surface in the response body.
func (s *Server) respondError(w http.ResponseWriter, err error) {
	status, code := errorStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "code", code, "err", err)
	}
	respondJSON(w, status, errorResponse{Error: errorBody{
		Code:    string(code),
		Message: apperrors.UserMessage(err),
	}})
}

// errorStatus maps an error to an HTTP status and a machine code.
func errorStatus(err error) (int, apperrors.Code) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, apperrors.ErrCodeChartNotFound
	case errors.Is(err, store.ErrExists):
		return http.StatusConflict, apperrors.ErrCodeChartExists
	}

	switch code := apperrors.GetCode(err); code {
	case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeInvalidChart,
		apperrors.ErrCodeInvalidFormat, apperrors.ErrCodeInvalidSpacing,
		apperrors.ErrCodeInvalidColumn, apperrors.ErrCodeInvalidPath,
		apperrors.ErrCodeUnknownLegend, apperrors.ErrCodeUnknownKind:
		return http.StatusBadRequest, code
	case apperrors.ErrCodeNotFound, apperrors.ErrCodeChartNotFound:
		return http.StatusNotFound, code
	}

	return http.StatusInternalServerError, apperrors.ErrCodeInternal
}
