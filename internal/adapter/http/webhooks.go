package httpadapter

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type registerWebhookRequest struct {
	URL   string `json:"url"`
	Label string `json:"label"`
}

type testWebhookRequest struct {
	URL string `json:"url"`
}

// handleWebhookRegister registers a new delivery endpoint for the caller.
// The usecase rejects malformed URLs before any network call, enforces
// the per-owner quota and requires a successful live test; the specific
// failure reason is surfaced in the response.
func (h *Handler) handleWebhookRegister(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.requireCaller(w, r)
	if !ok {
		return
	}
	var req registerWebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	hook, err := h.webhooks.Register(r.Context(), owner, req.URL, req.Label)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, hook)
}

// handleWebhookList returns the caller's endpoints.
func (h *Handler) handleWebhookList(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.requireCaller(w, r)
	if !ok {
		return
	}
	hooks, err := h.webhooks.ListOwned(r.Context(), owner)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, hooks)
}

// handleWebhookRemove deletes one of the caller's endpoints. Endpoints of
// other owners read as 404.
func (h *Handler) handleWebhookRemove(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.requireCaller(w, r)
	if !ok {
		return
	}
	if err := h.webhooks.Remove(r.Context(), chi.URLParam(r, "id"), owner); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleWebhookTest sends one test payload to a candidate URL on demand.
func (h *Handler) handleWebhookTest(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireCaller(w, r); !ok {
		return
	}
	var req testWebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := h.webhooks.Test(r.Context(), req.URL); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
