// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package signaling implements the data-plane's Signaling API (C7): the
// JSON/HTTP surface the control plane uses to start, suspend, and
// terminate transfers, plus the renewal surface (JWKS publication and
// refresh-token exchange) served on its own listener.
package signaling

import (
	"github.com/dataspace-connector/dataplane/internal/logger"
	"github.com/dataspace-connector/dataplane/internal/refresh"
	"github.com/dataspace-connector/dataplane/internal/token"
	"github.com/dataspace-connector/dataplane/internal/transfer"
)

// Handler wires the Transfer Manager, Refresh Manager, and Token Engine to
// the HTTP routes that expose them.
type Handler struct {
	transfers *transfer.Manager
	refresh   *refresh.Manager
	engine    *token.Engine
	logger    *logger.Logger
}

// NewHandler constructs a Handler. None of the arguments may be nil.
func NewHandler(transfers *transfer.Manager, refreshMgr *refresh.Manager, engine *token.Engine, log *logger.Logger) *Handler {
	return &Handler{transfers: transfers, refresh: refreshMgr, engine: engine, logger: log}
}
