// Package httptransport is the thin HTTP layer over the contract service. It
// delegates to the contract without embedding protocol logic so transport
// concerns stay isolated.
package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"laurel/internal/platform/middleware"
)

// NewRouter wires all endpoints. Every contract operation sits behind bearer
// authentication; the owner gate itself lives in the contract.
func NewRouter(h *Handler, auth *middleware.Authenticator) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", h.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAccount)

		r.Post("/identities", h.handleCreateIdentity)
		r.Get("/identities/{account}", h.handleGetProfile)
		r.Get("/identities/{account}/requirements", h.handleVerifyRequirements)

		r.Post("/actions/apply", h.handleApplyAction)
		r.Post("/attestations", h.handleCreateAttestation)

		r.Post("/proposals", h.handleCreateProposal)
		r.Get("/proposals/{id}", h.handleGetProposal)
		r.Post("/proposals/{id}/votes", h.handleVote)

		r.Get("/protocol/stats", h.handleStats)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/pause", h.handlePause)
			r.Post("/resume", h.handleResume)
			r.Post("/actions/initialize", h.handleInitializeActions)
			r.Put("/actions/{type}", h.handleUpdateActionConfig)
		})
	})

	return r
}
