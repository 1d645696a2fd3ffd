// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package refresh is the data-plane's Refresh Manager (C6): it exchanges a
// still-valid refresh token for a fresh access/refresh pair, rotating both
// ids so the presented refresh token can never be replayed.
package refresh

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"

	"github.com/dataspace-connector/dataplane/internal/edr"
	"github.com/dataspace-connector/dataplane/internal/lock"
	"github.com/dataspace-connector/dataplane/internal/model"
	"github.com/dataspace-connector/dataplane/internal/store"
	"github.com/dataspace-connector/dataplane/internal/token"
)

// ErrWrongCredentials is the single error Refresh ever returns. Every
// sub-failure of the protocol — bad signature, unknown transfer, stale
// refresh token, store error — collapses to this one sentinel so the
// Signaling API's handler can reply with the spec's opaque "Wrong
// credentials" message without leaking which check failed.
var ErrWrongCredentials = errors.New("refresh: wrong credentials")

// Manager implements the refresh-token rotation protocol.
type Manager struct {
	engine    *token.Engine
	edrMgr    *edr.Manager
	transfers store.TransferRepository
	edrs      store.EdrRepository

	locks lock.Keyed
}

// New constructs a Manager. engine must be the same Engine instance edrMgr
// was built with, so access and refresh tokens minted by Start validate
// and rotate through identical signing/verification keys.
func New(engine *token.Engine, edrMgr *edr.Manager, transfers store.TransferRepository, edrs store.EdrRepository) *Manager {
	return &Manager{engine: engine, edrMgr: edrMgr, transfers: transfers, edrs: edrs}
}

// Refresh runs the six-step protocol described by the spec: verify the
// token, confirm the transfer is live, confirm the refresh token hasn't
// already been rotated away, mint and persist a fresh pair, and return it.
// Any failure at any step returns [ErrWrongCredentials] and nothing else.
func (m *Manager) Refresh(ctx context.Context, req model.TokenRequest) (model.TokenResponse, error) {
	var claims model.EdrClaims
	if err := m.engine.Validate(req.RefreshToken, &claims); err != nil {
		return model.TokenResponse{}, ErrWrongCredentials
	}

	if claims.TransferID == "" {
		return model.TokenResponse{}, ErrWrongCredentials
	}

	unlock := m.locks.Lock(claims.TransferID)
	defer unlock()

	transfer, err := m.transfers.FetchByID(ctx, claims.TransferID)
	if err != nil || transfer.Status != model.TransferStarted {
		return model.TokenResponse{}, ErrWrongCredentials
	}

	entry, err := m.edrs.FetchByID(ctx, claims.TransferID)
	if err != nil || entry.RefreshTokenID != claims.JTI {
		return model.TokenResponse{}, ErrWrongCredentials
	}

	newTokenID := uuid.New()
	newRefreshTokenID := uuid.New()

	accessJWT, refreshJWT, err := m.edrMgr.IssueToken(newTokenID, newRefreshTokenID, claims.Subject, claims.TransferID)
	if err != nil {
		return model.TokenResponse{}, ErrWrongCredentials
	}

	rotated := model.EdrEntry{
		TransferID:     claims.TransferID,
		TokenID:        newTokenID,
		RefreshTokenID: newRefreshTokenID,
	}
	if err := m.edrs.Save(ctx, rotated); err != nil {
		return model.TokenResponse{}, ErrWrongCredentials
	}

	return model.TokenResponse{
		AccessToken:  accessJWT,
		RefreshToken: refreshJWT,
		ExpiresIn:    strconv.FormatInt(int64(m.edrMgr.TokenDuration().Seconds()), 10),
	}, nil
}
