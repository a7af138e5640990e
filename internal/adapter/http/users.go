package httpadapter

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/giglysam/adlinker-discord-ads-sub000/internal/core/domain"
)

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Balance  string `json:"balance"`
}

type adjustBalanceRequest struct {
	// Delta in 1e-8 fixed-point units; may be negative.
	Delta int64 `json:"delta"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:       u.ID,
		Username: u.Username,
		Role:     u.Role,
		Balance:  domain.FormatAmount(u.Balance),
	}
}

// handleUserMe returns the caller's account with its formatted balance.
func (h *Handler) handleUserMe(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.requireCaller(w, r)
	if !ok {
		return
	}
	user, err := h.users.Get(r.Context(), caller)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toUserResponse(user))
}

// handleBalanceAdjust applies an admin balance override to the target
// account.
func (h *Handler) handleBalanceAdjust(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireCaller(w, r)
	if !ok {
		return
	}
	var req adjustBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	user, err := h.users.AdjustBalance(r.Context(), actor, chi.URLParam(r, "id"), req.Delta)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toUserResponse(user))
}
