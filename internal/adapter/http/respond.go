package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/giglysam/adlinker-discord-ads-sub000/internal/core/port"
)

// writeJSON encodes v with the given status. Encoding failures are logged;
// the status line has already been sent at that point.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// writeError maps usecase sentinels onto HTTP statuses. Unknown errors are
// logged and reported as a generic 500 to avoid leaking internals.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, port.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, port.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, port.ErrInvalidInput),
		errors.Is(err, port.ErrInvalidWebhookURL),
		errors.Is(err, port.ErrInvalidTransition):
		status = http.StatusBadRequest
	case errors.Is(err, port.ErrQuotaExceeded),
		errors.Is(err, port.ErrDuplicateURL):
		status = http.StatusConflict
	case errors.Is(err, port.ErrUnreachable):
		status = http.StatusBadGateway
	default:
		h.logger.Error("internal error", slog.Any("error", err))
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}

// requireCaller returns the caller id or writes a 401 and reports false.
func (h *Handler) requireCaller(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := callerID(r)
	if id == "" {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing X-User-ID"})
		return "", false
	}
	return id, true
}
