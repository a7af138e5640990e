package httpadapter

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/giglysam/adlinker-discord-ads-sub000/internal/core/port"
)

type createAdRequest struct {
	Title     string `json:"title"`
	Body      string `json:"body"`
	TargetURL string `json:"target_url"`
	MediaURL  string `json:"media_url"`
}

type transitionRequest struct {
	Status string `json:"status"`
}

// handleAdCreate stores a new ad for the caller. Ads always start pending.
func (h *Handler) handleAdCreate(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.requireCaller(w, r)
	if !ok {
		return
	}
	var req createAdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	ad, err := h.ads.Create(r.Context(), owner, port.CreateAdInput{
		Title:     req.Title,
		Body:      req.Body,
		TargetURL: req.TargetURL,
		MediaURL:  req.MediaURL,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, ad)
}

// handleAdList returns the caller's own ads.
func (h *Handler) handleAdList(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.requireCaller(w, r)
	if !ok {
		return
	}
	ads, err := h.ads.ListOwned(r.Context(), owner)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, ads)
}

// handleAdListAll returns every ad. Admin only.
func (h *Handler) handleAdListAll(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireCaller(w, r)
	if !ok {
		return
	}
	ads, err := h.ads.ListAll(r.Context(), actor)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, ads)
}

// handleAdTransition moves an ad through its lifecycle. Admin only; only
// pending->public, public->stopped and pending->stopped are accepted.
func (h *Handler) handleAdTransition(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireCaller(w, r)
	if !ok {
		return
	}
	var req transitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	ad, err := h.ads.Transition(r.Context(), chi.URLParam(r, "id"), req.Status, actor)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, ad)
}
