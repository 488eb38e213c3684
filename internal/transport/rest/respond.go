package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/math-s/yeargoals/internal/domain"
	"github.com/math-s/yeargoals/pkg/ctxutil"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeFieldError(w http.ResponseWriter, field, message string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": message, "field": field})
}

// handleError maps a service error onto a status and body. Provider and
// storage details are logged, never returned.
func handleError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		fe := ve.First()
		writeFieldError(w, fe.Field, fe.Message)
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrBookNotFound):
		writeError(w, http.StatusNotFound, "book_not_found_for_isbn")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, domain.ErrLookupFailed):
		log.WarnContext(r.Context(), "book lookup failed", slog.String("error", err.Error()))
		writeError(w, http.StatusBadGateway, "google_books_lookup_failed")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	default:
		requestID := ctxutil.RequestIDFromCtx(r.Context())
		log.ErrorContext(r.Context(), "internal error",
			slog.String("error", err.Error()),
			slog.String("request_id", requestID),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":     "internal_error",
			"requestId": requestID,
		})
	}
}

// NotFound answers every unrouted request.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, "not_found")
}
