package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/giglysam/adlinker-discord-ads-sub000/internal/core/port"
)

// Handler is the inbound HTTP adapter. It holds the usecase ports and a
// structured logger; routes are registered on a chi.Router. Caller
// identity arrives in the X-User-ID header set by the upstream
// authentication layer.
type Handler struct {
	webhooks   port.WebhookService
	ads        port.AdService
	deliveries port.DeliveryService
	clicks     port.ClickService
	users      port.UserService
	logger     *slog.Logger
	router     chi.Router

	// defaultFilter is applied to on-demand distribution triggers that do
	// not specify a filter mode.
	defaultFilter bool
}

// NewHandler creates a handler with all routes configured.
func NewHandler(
	webhooks port.WebhookService,
	ads port.AdService,
	deliveries port.DeliveryService,
	clicks port.ClickService,
	users port.UserService,
	defaultFilter bool,
	logger *slog.Logger,
) *Handler {
	h := &Handler{
		webhooks:      webhooks,
		ads:           ads,
		deliveries:    deliveries,
		clicks:        clicks,
		users:         users,
		defaultFilter: defaultFilter,
		logger:        logger,
	}

	r := chi.NewRouter()

	// public click redirect, reached from delivered messages
	r.Get("/redirect", h.handleRedirect)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/distribute", h.handleDistribute)

		r.Post("/webhooks", h.handleWebhookRegister)
		r.Get("/webhooks", h.handleWebhookList)
		r.Delete("/webhooks/{id}", h.handleWebhookRemove)
		r.Post("/webhooks/test", h.handleWebhookTest)

		r.Post("/ads", h.handleAdCreate)
		r.Get("/ads", h.handleAdList)
		r.Get("/ads/all", h.handleAdListAll)
		r.Post("/ads/{id}/status", h.handleAdTransition)

		r.Get("/deliveries", h.handleDeliveryLog)

		r.Get("/users/me", h.handleUserMe)
		r.Post("/users/{id}/balance", h.handleBalanceAdjust)
	})

	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

// callerID extracts the authenticated user id. Session management is an
// external collaborator; an empty header reads as unauthenticated.
func callerID(r *http.Request) string {
	return r.Header.Get("X-User-ID")
}
