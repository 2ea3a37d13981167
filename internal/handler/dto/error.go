package dto

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/crewline/siteproof/internal/domain"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error code, message and, for validation failures,
// the complete list of offending fields.
type ErrorDetail struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// FieldError names a single invalid input field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// NewErrorResponse creates a new error response.
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
}

// MapDomainError maps domain errors to an HTTP status code and response body.
func MapDomainError(err error) (int, ErrorResponse) {
	message := err.Error()

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		resp := NewErrorResponse("VALIDATION_ERROR", message)
		for _, f := range verr.Fields {
			resp.Error.Fields = append(resp.Error.Fields, FieldError{Field: f.Field, Reason: f.Reason})
		}
		return http.StatusUnprocessableEntity, resp
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity, NewErrorResponse("VALIDATION_ERROR", message)

	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, NewErrorResponse("TASK_NOT_FOUND", message)
	case errors.Is(err, domain.ErrEvidenceNotFound):
		return http.StatusNotFound, NewErrorResponse("EVIDENCE_NOT_FOUND", message)
	case errors.Is(err, domain.ErrPhaseNotFound):
		return http.StatusNotFound, NewErrorResponse("PHASE_NOT_FOUND", message)
	case errors.Is(err, domain.ErrUnitNotFound):
		return http.StatusNotFound, NewErrorResponse("UNIT_NOT_FOUND", message)

	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, NewErrorResponse("INVALID_TRANSITION", message)

	case errors.Is(err, domain.ErrPermissionDenied):
		return http.StatusForbidden, NewErrorResponse("INSUFFICIENT_ACCESS", message)
	case errors.Is(err, domain.ErrUnknownActor):
		return http.StatusUnauthorized, NewErrorResponse("UNKNOWN_ACTOR", message)

	default:
		slog.Error("unmapped domain error returned to client",
			"error", err,
			"error_type", fmt.Sprintf("%T", err),
		)
		return http.StatusInternalServerError, NewErrorResponse("INTERNAL_ERROR", "Internal server error")
	}
}
