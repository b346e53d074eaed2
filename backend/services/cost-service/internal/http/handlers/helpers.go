package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"energytrack/backend/services/cost-service/internal/apperrors"
	"energytrack/backend/services/cost-service/internal/http/middleware"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// writeError maps the error class to a status. Internal details of 5xx errors are logged,
// not returned.
func writeError(w http.ResponseWriter, logger *zap.Logger, r *http.Request, err error) {
	code := apperrors.Code(err)
	status := http.StatusInternalServerError
	message := "internal error"

	switch code {
	case apperrors.CodeValidation:
		status, message = http.StatusBadRequest, err.Error()
	case apperrors.CodeNotFound:
		status, message = http.StatusNotFound, err.Error()
	case apperrors.CodeUpstream:
		status, message = http.StatusBadGateway, "upstream dependency failed"
	case apperrors.CodeComputation:
		message = "cost computation failed"
	}

	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("code", code),
			zap.Error(err),
		)
	}
	writeJSON(w, status, errorResponse{Error: message, Code: code})
}

// decodeJSON reads a single JSON object. Malformed bodies and wrongly typed fields are
// validation errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.Is(err, io.EOF):
			return apperrors.Validation("body", "must not be empty")
		case errors.As(err, &typeErr):
			return apperrors.Validation(typeErr.Field, fmt.Sprintf("must be a %s", typeErr.Type))
		default:
			return apperrors.Validation("body", "invalid json")
		}
	}
	if dec.More() {
		return apperrors.Validation("body", "must contain a single json object")
	}
	return nil
}

// requestUser prefers an explicit value over the caller's identity.
func requestUser(r *http.Request, explicit string) string {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		return explicit
	}
	id, _ := middleware.UserIDFromContext(r.Context())
	return id
}

// parseDate accepts RFC 3339 timestamps or plain YYYY-MM-DD dates in loc. dateOnly reports
// the second form.
func parseDate(raw string, loc *time.Location) (t time.Time, dateOnly bool, err error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, false, nil
	}
	t, err = time.ParseInLocation(time.DateOnly, raw, loc)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("expected RFC 3339 or YYYY-MM-DD, got %q", raw)
	}
	return t, true, nil
}
