// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package signaling

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// DataflowsRouter builds the chi.Mux serving the Signaling API's transfer
// lifecycle endpoints: check, start, suspend, terminate. It is served on
// the (signaling.bind, signaling.port) listener.
func (h *Handler) DataflowsRouter() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging)

	router.Route("/api/v1/dataflows", func(dataflows chi.Router) {
		dataflows.Get("/check", h.check)
		dataflows.Post("/", h.startDataflow)
		dataflows.Post("/{id}/suspend", h.suspendDataflow)
		dataflows.Post("/{id}/terminate", h.terminateDataflow)
	})

	return router
}

// RenewalRouter builds the chi.Mux serving the JWKS document and the
// refresh-token exchange endpoint. It is served on the distinct
// (proxy.renewal.bind, proxy.renewal.port) listener, per spec.
func (h *Handler) RenewalRouter() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging)

	router.Get("/.well-known/jwks.json", h.jwks)
	router.Post("/api/v1/token", h.refreshToken)

	return router
}
