// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned by [Config.validate] when a required
// configuration group is incomplete or invalid.
var (
	// ErrInvalidComponentID indicates the data-plane was not given an id
	// to identify itself to the control plane with.
	ErrInvalidComponentID = errors.New("invalid configuration: component_id is required")

	// ErrInvalidProxyConfig indicates a required proxy-level setting
	// (currently the token issuer) is missing.
	ErrInvalidProxyConfig = errors.New("invalid configuration: proxy.issuer is required")

	// ErrInvalidProxyKeys indicates the Ed25519 signing key pair is
	// incomplete.
	ErrInvalidProxyKeys = errors.New("invalid configuration: proxy.keys is incomplete")

	// ErrInvalidDBConfig indicates one of the two database DSNs is empty.
	ErrInvalidDBConfig = errors.New("invalid configuration: db dsn is required")
)
