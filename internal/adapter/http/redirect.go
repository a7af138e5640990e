package httpadapter

import (
	"net"
	"net/http"
	"strings"

	"github.com/giglysam/adlinker-discord-ads-sub000/internal/core/domain"
)

// redirectResponse is the JSON body returned when the caller asks for
// format=json instead of a 302.
type redirectResponse struct {
	Success     bool   `json:"success"`
	RedirectURL string `json:"redirect_url"`
	FirstClick  bool   `json:"first_click"`
	Earning     string `json:"earning"`
	Message     string `json:"message"`
}

// handleRedirect resolves a click. Query parameters ad_id and webhook_id
// are required; the requester address comes from the forwarded-for chain
// or the connection. The default response is a 302 whose Location is the
// ad's destination; with format=json the same result is returned as a
// JSON payload for clients that redirect themselves. Missing parameters
// produce a plain-text 400.
func (h *Handler) handleRedirect(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	adID := q.Get("ad_id")
	webhookID := q.Get("webhook_id")
	if adID == "" || webhookID == "" {
		http.Error(w, "missing ad_id or webhook_id", http.StatusBadRequest)
		return
	}

	res, err := h.clicks.Attribute(r.Context(), adID, webhookID, requesterAddress(r))
	if err != nil {
		h.writeError(w, err)
		return
	}

	if q.Get("format") == "json" {
		msg := "already counted"
		if res.FirstClick {
			msg = "first click recorded"
		}
		h.writeJSON(w, http.StatusOK, redirectResponse{
			Success:     true,
			RedirectURL: res.RedirectURL,
			FirstClick:  res.FirstClick,
			Earning:     domain.FormatAmount(res.Earning),
			Message:     msg,
		})
		return
	}

	http.Redirect(w, r, res.RedirectURL, http.StatusFound)
}

// requesterAddress normalizes the requester's network address: the first
// hop of X-Forwarded-For when present, otherwise the connection address
// without its port.
func requesterAddress(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
