package httpadapter

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/giglysam/adlinker-discord-ads-sub000/internal/core/domain"
	"github.com/giglysam/adlinker-discord-ads-sub000/internal/core/port"
)

type distributeRequest struct {
	FilterEnabled *bool `json:"filter_enabled"`
}

// handleDistribute triggers one distribution cycle on demand and returns
// its summary. The optional filter_enabled flag overrides the configured
// default. Overlap with the background scheduler is accepted; all money
// moves inside the cycle are atomic increments.
func (h *Handler) handleDistribute(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireCaller(w, r)
	if !ok {
		return
	}
	// only admins may trigger cycles out of cadence
	user, err := h.users.Get(r.Context(), actor)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if user.Role != domain.RoleAdmin {
		h.writeError(w, port.ErrForbidden)
		return
	}

	opts := port.CycleOptions{FilterEnabled: h.defaultFilter}
	if r.Body != nil && r.ContentLength != 0 {
		var req distributeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		if req.FilterEnabled != nil {
			opts.FilterEnabled = *req.FilterEnabled
		}
	}

	sum := h.deliveries.RunCycle(r.Context(), opts)
	h.writeJSON(w, http.StatusOK, sum)
}

// handleDeliveryLog returns recent delivery records, newest first. Admin
// only; the store is queried directly so the log needs no process-local
// cache.
func (h *Handler) handleDeliveryLog(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireCaller(w, r)
	if !ok {
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}
	records, err := h.deliveries.ListLog(r.Context(), actor, limit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, records)
}
