// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dataspace-connector/dataplane/internal/logger"
)

// shutdownTimeout bounds how long a listener waits for in-flight requests
// to drain before its connections are forcibly closed.
const shutdownTimeout = 10 * time.Second

// httpListener is one named net/http listener. The data-plane runs three
// of these concurrently (signaling, renewal, proxy); name exists only to
// make their logs and error messages tell each other apart.
type httpListener struct {
	name   string
	server *http.Server
	logger *logger.Logger
}

// newListener builds an httpListener bound to addr, serving handler.
func newListener(name, addr string, handler http.Handler, log *logger.Logger) *httpListener {
	return &httpListener{
		name:   name,
		server: &http.Server{Addr: addr, Handler: handler},
		logger: log,
	}
}

func (h *httpListener) RunServer() {
	if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		h.logger.Error().Err(err).Str("listener", h.name).Msg("listener stopped")
	}
}

func (h *httpListener) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := h.server.Shutdown(ctx); err != nil {
		h.logger.Error().Err(err).Str("listener", h.name).Msg("listener shutdown error")
	}
}
