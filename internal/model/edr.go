// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package model

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// EdrEntry is the durable mapping from a transfer to the two token
// identifiers currently valid for it. Both ids are rotated together on
// every successful refresh; the entry is deleted when the transfer is
// terminated.
type EdrEntry struct {
	TransferID     string
	TokenID        uuid.UUID
	RefreshTokenID uuid.UUID
}

// EdrClaims is the JWT body shared by both access and refresh tokens. jti
// equals either the entry's TokenID (access token) or RefreshTokenID
// (refresh token); a mismatch against the live EdrEntry is unauthorized.
type EdrClaims struct {
	JTI        uuid.UUID `json:"jti"`
	Issuer     string    `json:"iss"`
	Audience   string    `json:"aud"`
	Subject    string    `json:"sub"`
	ExpiresAt  int64     `json:"exp"`
	IssuedAt   int64     `json:"iat"`
	TransferID string    `json:"transfer_id"`
}

// GetExpirationTime, GetIssuedAt, GetNotBefore, GetIssuer, GetSubject and
// GetAudience implement jwt.Claims, letting EdrClaims pass directly through
// jwt.NewWithClaims and jwt.ParseWithClaims without an intermediate
// jwt.MapClaims conversion.

func (c EdrClaims) GetExpirationTime() (*jwt.NumericDate, error) {
	if c.ExpiresAt == 0 {
		return nil, nil
	}
	return jwt.NewNumericDate(time.Unix(c.ExpiresAt, 0)), nil
}

func (c EdrClaims) GetIssuedAt() (*jwt.NumericDate, error) {
	if c.IssuedAt == 0 {
		return nil, nil
	}
	return jwt.NewNumericDate(time.Unix(c.IssuedAt, 0)), nil
}

func (c EdrClaims) GetNotBefore() (*jwt.NumericDate, error) {
	return nil, nil
}

func (c EdrClaims) GetIssuer() (string, error) {
	return c.Issuer, nil
}

func (c EdrClaims) GetSubject() (string, error) {
	return c.Subject, nil
}

func (c EdrClaims) GetAudience() (jwt.ClaimStrings, error) {
	if c.Audience == "" {
		return nil, nil
	}
	return jwt.ClaimStrings{c.Audience}, nil
}

// ErrEmptyTransferID names a claims value whose transfer_id is empty.
// Nothing in this module returns it: the token engine does not check
// transfer_id, and refresh reports an empty one as ErrWrongCredentials.
var ErrEmptyTransferID = errors.New("claims: empty transfer_id")

// Edr is the result of minting a fresh credential pair for a transfer: the
// rotated identifiers plus the consumer-facing DataAddress that carries the
// issued tokens.
type Edr struct {
	TokenID        uuid.UUID
	RefreshTokenID uuid.UUID
	DataAddress    DataAddress
}
