// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package proxy

import (
	"errors"
	"net/http"
)

// Sentinel errors returned by authenticate, one per step of the
// authorization pipeline (spec §4.7). Token and transfer failures all map
// to HTTP 403 and ErrMalformedSource maps to 502; the 403 sentinels exist
// as distinct values only so tests and logs can tell the steps apart,
// never so a client can.
var (
	// ErrMissingToken covers an absent, empty, or non-UTF-8 Authorization
	// header, and a header that isn't a well-formed "Bearer <token>" value.
	ErrMissingToken = errors.New("proxy: missing bearer token")

	// ErrInvalidToken is any token.Engine.Validate failure other than
	// expiry.
	ErrInvalidToken = errors.New("proxy: invalid token")

	// ErrExpiredToken is a token.Engine.Validate failure due to expiry.
	ErrExpiredToken = errors.New("proxy: expired token")

	// ErrInvalidTransfer covers an unknown transfer, a jti that doesn't
	// match the live EdrEntry's token_id, or a transfer not in Started.
	ErrInvalidTransfer = errors.New("proxy: invalid transfer")

	// ErrMalformedSource is returned when the transfer's source address
	// cannot be parsed as an HttpData endpoint.
	ErrMalformedSource = errors.New("proxy: malformed source data address")
)

type errorResponse struct {
	message string
	status  int
}

// responseFromError maps an authenticate failure to the wire status and
// message from the proxy's failure taxonomy (spec §4.7).
func responseFromError(err error) errorResponse {
	switch {
	case errors.Is(err, ErrMissingToken), errors.Is(err, ErrInvalidToken), errors.Is(err, ErrExpiredToken):
		return errorResponse{message: "Forbidden", status: http.StatusForbidden}
	case errors.Is(err, ErrInvalidTransfer):
		return errorResponse{message: "Transfer not valid or not found", status: http.StatusForbidden}
	case errors.Is(err, ErrMalformedSource):
		return errorResponse{message: "Bad gateway", status: http.StatusBadGateway}
	default:
		return errorResponse{message: "Bad gateway", status: http.StatusBadGateway}
	}
}
