// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package proxy implements the data-plane's Public Proxy (C8): an
// authenticated reverse proxy mounted under /api/v1/public that validates
// a bearer access token, cross-checks it against the live transfer and
// EDR state, and forwards the request to the transfer's upstream data
// source.
package proxy

import (
	"github.com/dataspace-connector/dataplane/internal/logger"
	"github.com/dataspace-connector/dataplane/internal/store"
	"github.com/dataspace-connector/dataplane/internal/token"
)

// PublicPrefix is the path prefix every proxied request must carry; it is
// stripped before the request is forwarded upstream.
const PublicPrefix = "/api/v1/public"

// Handler authenticates and forwards requests under PublicPrefix. It
// reads the Transfer Store and EDR Store directly (C2/C3) rather than
// through the Transfer Manager, since the proxy only ever performs
// read-only lookups, never a lifecycle transition.
type Handler struct {
	transfers store.TransferRepository
	edrs      store.EdrRepository
	engine    *token.Engine
	logger    *logger.Logger
}

// NewHandler constructs a Handler. None of the arguments may be nil.
func NewHandler(transfers store.TransferRepository, edrs store.EdrRepository, engine *token.Engine, log *logger.Logger) *Handler {
	return &Handler{transfers: transfers, edrs: edrs, engine: engine, logger: log}
}
