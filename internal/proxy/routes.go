// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package proxy

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// traceIDHeader is the HTTP header used to propagate a distributed trace
// identifier between caller and server.
const traceIDHeader = "X-Trace-ID"

// Router builds the chi.Mux serving the public proxy. Every method is
// accepted on PublicPrefix and its subtree; any other path reports 404,
// hiding even the existence of the proxy from unrelated requests.
func (h *Handler) Router() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID)

	router.Mount(PublicPrefix, h)
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	return router
}

// withTraceID is the same trace-id propagation middleware as the
// Signaling API: it resolves or generates an X-Trace-ID, embeds it in a
// request-scoped child logger, and echoes it in the response header. It
// is duplicated here rather than shared because the proxy carries none
// of the Signaling API's other middleware (no access-logging wrapper).
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(traceIDHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		log := h.logger.GetChildLogger()
		log.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", traceID)
		})

		r = r.WithContext(log.WithContext(r.Context()))
		w.Header().Set(traceIDHeader, traceID)

		next.ServeHTTP(w, r)
	})
}
