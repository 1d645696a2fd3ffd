// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"

	"github.com/dataspace-connector/dataplane/internal/secret"
)

// Config is the top-level configuration container for the data-plane. It
// aggregates all sub-configurations and is populated by merging values from
// environment variables and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type Config struct {
	// ComponentID identifies this data-plane instance to the control plane
	// (sent in the registration request and logged at startup).
	// Env: COMPONENT_ID
	ComponentID string `env:"COMPONENT_ID"`

	// Signaling holds the Signaling API's bind address and the control
	// plane endpoints it talks to.
	Signaling Signaling `envPrefix:"SIGNALING_"`

	// Proxy holds the public proxy's bind address, credential lifetimes,
	// signing keys, and the token-renewal listener's settings.
	Proxy Proxy `envPrefix:"PROXY_"`

	// DB holds connection settings for the transfer store and EDR store.
	DB DBGroup `envPrefix:"DB_"`

	// JSONFilePath is the optional path to a JSON configuration file. When
	// non-empty, the file is parsed and its values fill only the fields the
	// environment-variable config left zero-valued (environment wins).
	// Populated via the CONFIG_FILE environment variable.
	JSONFilePath string `env:"CONFIG_FILE"`
}

// Signaling holds the Signaling API's (C7) network settings plus the
// control-plane URLs used by the outbound registration loop.
type Signaling struct {
	// ControlPlaneURL is the base URL of the control plane, used by
	// internal/registration to register this data-plane (POST /v1/dataplanes).
	// Env: SIGNALING_CONTROL_PLANE_URL
	ControlPlaneURL string `env:"CONTROL_PLANE_URL"`

	// SignalingURL is this data-plane's own externally reachable base URL,
	// advertised to the control plane at registration time.
	// Env: SIGNALING_SIGNALING_URL
	SignalingURL string `env:"SIGNALING_URL"`

	// Port is the TCP port the Signaling API listens on.
	// Env: SIGNALING_PORT
	Port uint16 `env:"PORT" envDefault:"8787"`

	// Bind is the address the Signaling API listens on.
	// Env: SIGNALING_BIND
	Bind string `env:"BIND" envDefault:"0.0.0.0"`
}

// Proxy holds the public proxy's (C8) network settings, credential
// lifetimes, and signing key material.
type Proxy struct {
	// Port is the TCP port the public proxy listens on.
	// Env: PROXY_PORT
	Port uint16 `env:"PORT" envDefault:"8789"`

	// Bind is the address the public proxy listens on.
	// Env: PROXY_BIND
	Bind string `env:"BIND" envDefault:"0.0.0.0"`

	// ProxyURL is this proxy's externally reachable endpoint, advertised
	// in every minted EDR. When empty it is derived from Bind/Port.
	// Env: PROXY_PROXY_URL
	ProxyURL string `env:"PROXY_URL"`

	// TokenURL is this proxy's externally reachable refresh endpoint,
	// advertised in every minted EDR. When empty it is derived from
	// Renewal.Bind/Renewal.Port.
	// Env: PROXY_TOKEN_URL
	TokenURL string `env:"TOKEN_URL"`

	// JWKSURL is this proxy's externally reachable JWKS document,
	// advertised in every minted EDR. When empty it is derived from
	// Renewal.Bind/Renewal.Port.
	// Env: PROXY_JWKS_URL
	JWKSURL string `env:"JWKS_URL"`

	// TokenDuration is how long a minted access token remains valid.
	// Env: PROXY_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION" envDefault:"10m"`

	// RefreshTokenDuration is how long a minted refresh token remains
	// valid.
	// Env: PROXY_REFRESH_TOKEN_DURATION
	RefreshTokenDuration time.Duration `env:"REFRESH_TOKEN_DURATION" envDefault:"720h"`

	// TokenLeeway is the clock-skew allowance applied when validating a
	// token's expiry.
	// Env: PROXY_TOKEN_LEEWAY
	TokenLeeway time.Duration `env:"TOKEN_LEEWAY" envDefault:"60s"`

	// Issuer is the "iss" claim embedded in every issued token.
	// Env: PROXY_ISSUER
	Issuer string `env:"ISSUER"`

	// Keys holds the Ed25519 signing key pair.
	Keys ProxyKeys `envPrefix:"KEYS_"`

	// Renewal holds the token-renewal listener's network settings.
	Renewal Renewal `envPrefix:"RENEWAL_"`
}

// ProxyKeys holds the Ed25519 key pair used to sign and verify tokens, PEM
// encoded.
type ProxyKeys struct {
	// PrivateKey is the PEM-encoded Ed25519 private (signing) key.
	// Must be kept confidential — wrapped in secret.String so it never
	// leaks via logging or a config dump.
	// Env: PROXY_KEYS_PRIVATE_KEY
	PrivateKey secret.String `env:"PRIVATE_KEY"`

	// PublicKey is the PEM-encoded Ed25519 public (verification) key,
	// also published via JWKS.
	// Env: PROXY_KEYS_PUBLIC_KEY
	PublicKey string `env:"PUBLIC_KEY"`

	// KID is the key id stamped into every issued token's header and
	// published JWKS entry.
	// Env: PROXY_KEYS_KID
	KID string `env:"KID"`
}

// Renewal holds the token-renewal listener's (JWKS + refresh endpoint)
// network settings. It is served on its own listener, separate from the
// Signaling API and the public proxy.
type Renewal struct {
	// Port is the TCP port the renewal listener listens on.
	// Env: PROXY_RENEWAL_PORT
	Port uint16 `env:"PORT" envDefault:"8788"`

	// Bind is the address the renewal listener listens on.
	// Env: PROXY_RENEWAL_BIND
	Bind string `env:"BIND" envDefault:"0.0.0.0"`
}

// DBGroup groups the connection settings for the two persistence
// concerns: transfers and EDR (token) entries. In the common case both
// point at the same database; they are configured separately because
// nothing requires that.
type DBGroup struct {
	// Transfers holds the transfer store's connection settings.
	Transfers DB `envPrefix:"TRANSFERS_"`

	// Tokens holds the EDR store's connection settings.
	Tokens DB `envPrefix:"TOKENS_"`
}

// DB holds connection settings for one relational database backend.
type DB struct {
	// Driver selects the database/sql driver: "sqlite3" or "pgx".
	// Env: ..._DRIVER
	Driver string `env:"DRIVER" envDefault:"sqlite3"`

	// DSN is the driver-specific data source name (a file path or
	// ":memory:" for sqlite3; a connection string for pgx).
	// Env: ..._DSN
	DSN string `env:"DSN" envDefault:":memory:"`
}

// GetConfig loads, merges, and validates the data-plane configuration from
// all available sources (earlier sources win for non-zero fields):
//  1. Environment variables (DATAPLANE_ canonical, DP_ fallback)
//  2. JSON file (path resolved from source 1)
//
// Returns a fully populated *Config or an error if any source fails to
// load or the final config fails validation.
func GetConfig() (*Config, error) {
	return newConfigBuilder().
		withEnv().
		withJSON().
		build()
}
