// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package proxy

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/dataspace-connector/dataplane/internal/model"
	"github.com/dataspace-connector/dataplane/internal/token"
)

// authenticated is the result of a successful run through authenticate: the
// validated claims plus the parsed upstream source they authorize access to.
type authenticated struct {
	claims model.EdrClaims
	source model.HttpData
}

// authenticate runs the five-step authorization pipeline described by the
// spec, short-circuiting on the first failure. It never discloses which
// step failed to the eventual HTTP response; callers map the returned
// sentinel to a status code via responseFromError.
func (h *Handler) authenticate(ctx context.Context, authHeader string) (authenticated, error) {
	tokenString, err := bearerToken(authHeader)
	if err != nil {
		return authenticated{}, err
	}

	var claims model.EdrClaims
	if err := h.engine.Validate(tokenString, &claims); err != nil {
		if errors.Is(err, token.ErrExpired) {
			return authenticated{}, ErrExpiredToken
		}
		return authenticated{}, ErrInvalidToken
	}

	entry, err := h.edrs.FetchByID(ctx, claims.TransferID)
	if err != nil || entry.TokenID != claims.JTI {
		return authenticated{}, ErrInvalidTransfer
	}

	transfer, err := h.transfers.FetchByID(ctx, claims.TransferID)
	if err != nil || transfer.Status != model.TransferStarted {
		return authenticated{}, ErrInvalidTransfer
	}

	kind, err := model.ParseTransferKind(transfer.Source)
	if err != nil || kind.HTTP == nil {
		return authenticated{}, ErrMalformedSource
	}

	return authenticated{claims: claims, source: *kind.HTTP}, nil
}

// bearerToken extracts the token value from a raw "Authorization: Bearer
// <token>" header, rejecting anything absent, non-UTF-8, or malformed.
func bearerToken(authHeader string) (string, error) {
	if authHeader == "" || !utf8.ValidString(authHeader) {
		return "", ErrMissingToken
	}

	const prefix = "Bearer "
	if !strings.HasPrefix(authHeader, prefix) {
		return "", ErrMissingToken
	}

	tokenString := strings.TrimPrefix(authHeader, prefix)
	if tokenString == "" {
		return "", ErrMissingToken
	}

	return tokenString, nil
}
