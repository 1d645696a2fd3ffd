// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package edr is the data-plane's EDR Manager (C4): it mints the access and
// refresh token pair for a transfer and builds the consumer-facing
// DataAddress that carries them.
package edr

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/dataspace-connector/dataplane/internal/model"
	"github.com/dataspace-connector/dataplane/internal/token"
)

// ErrExpiryOverflow is returned by IssueToken when adding the configured
// token lifetime, in whole seconds, to the current Unix time overflows
// int64.
var ErrExpiryOverflow = errors.New("edr: token expiry overflows")

// Config holds the values the EDR Manager stamps into every minted
// DataAddress and JWT: the proxy endpoint the consumer will call, the
// refresh endpoint, the JWKS endpoint, and the two credential lifetimes.
type Config struct {
	Issuer               string
	ProxyURL             string
	TokenURL             string
	JWKSURL              string
	TokenDuration        time.Duration
	RefreshTokenDuration time.Duration
}

// Manager mints EDRs by delegating signing to a [token.Engine].
type Manager struct {
	engine *token.Engine
	cfg    Config
}

// New constructs a Manager that issues tokens through engine using cfg.
func New(engine *token.Engine, cfg Config) *Manager {
	return &Manager{engine: engine, cfg: cfg}
}

// TokenDuration returns the configured access-token lifetime, used by
// callers (the Refresh Manager, the DataAddress builder) that need to
// report expires_in without duplicating Config.
func (m *Manager) TokenDuration() time.Duration {
	return m.cfg.TokenDuration
}

// CreateEdr generates a fresh token_id/refresh_token_id pair, issues both
// JWTs, and builds the DataAddress carrying the seven endpoint properties
// the spec requires.
func (m *Manager) CreateEdr(sub, transferID string) (model.Edr, error) {
	tokenID := uuid.New()
	refreshTokenID := uuid.New()

	accessJWT, refreshJWT, err := m.IssueToken(tokenID, refreshTokenID, sub, transferID)
	if err != nil {
		return model.Edr{}, err
	}

	return model.Edr{
		TokenID:        tokenID,
		RefreshTokenID: refreshTokenID,
		DataAddress:    m.dataAddress(accessJWT, refreshJWT),
	}, nil
}

// IssueToken signs the access and refresh JWTs for one transfer. Both
// tokens share iss/aud/sub/transfer_id/iat; they differ in jti (tokenID vs
// refreshTokenID) and exp (TokenDuration vs RefreshTokenDuration).
func (m *Manager) IssueToken(tokenID, refreshTokenID uuid.UUID, sub, transferID string) (accessJWT, refreshJWT string, err error) {
	now := time.Now().UTC()

	accessJWT, err = m.sign(tokenID, sub, transferID, now, m.cfg.TokenDuration)
	if err != nil {
		return "", "", err
	}

	refreshJWT, err = m.sign(refreshTokenID, sub, transferID, now, m.cfg.RefreshTokenDuration)
	if err != nil {
		return "", "", err
	}

	return accessJWT, refreshJWT, nil
}

func (m *Manager) sign(jti uuid.UUID, sub, transferID string, now time.Time, duration time.Duration) (string, error) {
	// Computed via plain Unix-second arithmetic rather than time.Time.Add:
	// Add saturates on overflow instead of signalling it, which would
	// silently mint a token "valid" centuries from now instead of failing.
	nowUnix := now.Unix()
	expiresAtUnix := nowUnix + int64(duration/time.Second)
	if duration > 0 && expiresAtUnix < nowUnix {
		return "", ErrExpiryOverflow
	}

	claims := model.EdrClaims{
		JTI:        jti,
		Issuer:     m.cfg.Issuer,
		Audience:   m.cfg.ProxyURL,
		Subject:    sub,
		ExpiresAt:  expiresAtUnix,
		IssuedAt:   nowUnix,
		TransferID: transferID,
	}

	signed, err := m.engine.Issue(claims)
	if err != nil {
		return "", fmt.Errorf("edr: issuing token: %w", err)
	}
	return signed, nil
}

func (m *Manager) dataAddress(accessJWT, refreshJWT string) model.DataAddress {
	return model.DataAddress{
		EndpointType: model.IDSANamespace.ToIRI("HTTP"),
		EndpointProperties: []model.EndpointProperty{
			{Name: model.EDCNamespace.ToIRI("endpoint"), Value: m.cfg.ProxyURL},
			{Name: model.EDCNamespace.ToIRI("access_token"), Value: accessJWT},
			{Name: model.EDCNamespace.ToIRI("token_type"), Value: "Bearer"},
			{Name: model.EDCNamespace.ToIRI("refresh_token"), Value: refreshJWT},
			{Name: model.EDCNamespace.ToIRI("refresh_endpoint"), Value: m.cfg.TokenURL},
			{Name: model.EDCNamespace.ToIRI("expires_in"), Value: strconv.FormatInt(int64(m.cfg.TokenDuration.Seconds()), 10)},
			{Name: model.EDCNamespace.ToIRI("jwks_url"), Value: m.cfg.JWKSURL},
		},
	}
}
