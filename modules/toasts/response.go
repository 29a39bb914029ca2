package toasts

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/toastkit/pkg/broadcast"
	"github.com/dmitrymomot/toastkit/pkg/catalog"
	"github.com/dmitrymomot/toastkit/pkg/logger"
	"github.com/dmitrymomot/toastkit/pkg/toast"
)

// Response is the JSON envelope of every non-stream endpoint.
type Response struct {
	Data  any          `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail describes a failed request.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (m *module) json(ctx context.Context, w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		m.log.LogAttrs(ctx, slog.LevelWarn, "failed to write response", logger.Error(err))
	}
}

func (m *module) fail(ctx context.Context, w http.ResponseWriter, err error) {
	status, code := classify(err)
	level := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	m.log.LogAttrs(ctx, level, "request failed",
		slog.Int("status", status),
		logger.Error(err),
	)
	m.json(ctx, w, status, Response{Error: &ErrorDetail{Code: code, Message: err.Error()}})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrInvalidID), errors.Is(err, ErrInvalidBody):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, toast.ErrEmptyMessage), errors.Is(err, toast.ErrUnknownCategory):
		return http.StatusUnprocessableEntity, "validation_error"
	case errors.Is(err, catalog.ErrUnknownKey):
		return http.StatusUnprocessableEntity, "unknown_key"
	case errors.Is(err, catalog.ErrArgCount):
		return http.StatusUnprocessableEntity, "invalid_args"
	case errors.Is(err, ErrNoCatalog), errors.Is(err, ErrNoRelay):
		return http.StatusNotImplemented, "not_implemented"
	case errors.Is(err, toast.ErrClosed), errors.Is(err, broadcast.ErrPublish):
		return http.StatusServiceUnavailable, "unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
