package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"credit-application-system/internal/api/handler/dto"
	"credit-application-system/internal/pkg/apperrors"

	"github.com/go-chi/chi/v5"
)

const internalErrorMessage = "An unexpected error occurred."

func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("no request body")
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// readBody decodes the request into dst, answering 400 itself when it cannot.
func readBody(w http.ResponseWriter, r *http.Request, dst any, logger *slog.Logger) bool {
	if err := decodeJSON(r, dst); err != nil {
		logger.WarnContext(r.Context(), "Malformed request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return false
	}
	return true
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	if payload == nil {
		w.WriteHeader(status)
		return
	}
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":{"message":"Internal server error"}}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

// respondError maps an application error to its HTTP status and renders it
// as dto.ErrorResponse.
func respondError(w http.ResponseWriter, err error) {
	status, code, message, field := http.StatusInternalServerError, "INTERNAL", internalErrorMessage, ""
	var details []dto.FieldErrorDetail

	var validationErrs apperrors.ValidationErrors
	var validationErr *apperrors.ValidationError

	switch {
	case errors.As(err, &validationErrs):
		status, code, message = http.StatusBadRequest, "VALIDATION_ERROR", "Bad Request! Consult the documentation"
		for _, ve := range validationErrs {
			details = append(details, dto.FieldErrorDetail{Field: ve.Field, Message: ve.Message})
		}
	case errors.As(err, &validationErr):
		status, code, message, field = http.StatusBadRequest, "VALIDATION_ERROR", validationErr.Message, validationErr.Field
	case errors.Is(err, apperrors.ErrNotFound):
		status, code, message = http.StatusNotFound, "NOT_FOUND", err.Error()
	case errors.Is(err, apperrors.ErrBusinessRule):
		status, code, message = http.StatusBadRequest, "BUSINESS_RULE", err.Error()
	case errors.Is(err, apperrors.ErrForbidden):
		status, code, message = http.StatusForbidden, "FORBIDDEN", err.Error()
	case errors.Is(err, apperrors.ErrUnauthorized):
		status, code, message = http.StatusUnauthorized, "UNAUTHORIZED", err.Error()
	case errors.Is(err, apperrors.ErrInvalidArgument):
		status, code, message = http.StatusBadRequest, "INVALID_ARGUMENT", err.Error()
	case errors.Is(err, apperrors.ErrAlreadyExists):
		status, code, message = http.StatusConflict, "CONFLICT", err.Error()
	default:
		slog.Default().Error("Unhandled internal error", "error", err)
	}

	respondJSON(w, status, dto.ErrorResponse{
		Error: dto.ErrorDetail{
			Code:    code,
			Message: message,
			Field:   field,
		},
		Details: details,
	})
}

func int64URLParam(r *http.Request, name string) (int64, error) {
	idStr := chi.URLParam(r, name)
	if idStr == "" {
		return 0, fmt.Errorf("%w: %s not found in URL path", apperrors.ErrInvalidArgument, name)
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s format in URL path: %s", apperrors.ErrInvalidArgument, name, idStr)
	}
	return id, nil
}

func int64QueryParam(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("%w: missing required query parameter '%s'", apperrors.ErrInvalidArgument, name)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s format: %s", apperrors.ErrInvalidArgument, name, raw)
	}
	return id, nil
}

// logLevelFor keeps expected client-side failures at warn.
func logLevelFor(err error) slog.Level {
	switch {
	case errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, apperrors.ErrBusinessRule),
		errors.Is(err, apperrors.ErrForbidden),
		errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInvalidArgument),
		errors.Is(err, apperrors.ErrAlreadyExists):
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
