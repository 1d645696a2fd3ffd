// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_Defaults(t *testing.T) {
	cfg, err := parseEnv()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, uint16(8787), cfg.Signaling.Port)
	assert.Equal(t, "0.0.0.0", cfg.Signaling.Bind)
	assert.Equal(t, uint16(8789), cfg.Proxy.Port)
	assert.Equal(t, uint16(8788), cfg.Proxy.Renewal.Port)
	assert.Equal(t, 10*time.Minute, cfg.Proxy.TokenDuration)
	assert.Equal(t, 720*time.Hour, cfg.Proxy.RefreshTokenDuration)
	assert.Equal(t, 60*time.Second, cfg.Proxy.TokenLeeway)
	assert.Equal(t, "sqlite3", cfg.DB.Transfers.Driver)
	assert.Equal(t, ":memory:", cfg.DB.Transfers.DSN)
	assert.Equal(t, "sqlite3", cfg.DB.Tokens.Driver)
	assert.Equal(t, ":memory:", cfg.DB.Tokens.DSN)
}

func TestParseEnv_CanonicalPrefixWins(t *testing.T) {
	t.Setenv("DATAPLANE_COMPONENT_ID", "canonical-id")
	t.Setenv("DP_COMPONENT_ID", "fallback-id")

	cfg, err := parseEnv()
	require.NoError(t, err)
	assert.Equal(t, "canonical-id", cfg.ComponentID)
}

func TestParseEnv_FallbackPrefixFillsUnsetFields(t *testing.T) {
	t.Setenv("DP_COMPONENT_ID", "fallback-id")

	cfg, err := parseEnv()
	require.NoError(t, err)
	assert.Equal(t, "fallback-id", cfg.ComponentID)
}

func TestParseEnv_NestedFields(t *testing.T) {
	t.Setenv("DATAPLANE_SIGNALING_CONTROL_PLANE_URL", "https://control-plane.example")
	t.Setenv("DATAPLANE_PROXY_ISSUER", "https://dataplane.example")
	t.Setenv("DATAPLANE_PROXY_KEYS_KID", "key-1")
	t.Setenv("DATAPLANE_DB_TRANSFERS_DRIVER", "pgx")

	cfg, err := parseEnv()
	require.NoError(t, err)

	assert.Equal(t, "https://control-plane.example", cfg.Signaling.ControlPlaneURL)
	assert.Equal(t, "https://dataplane.example", cfg.Proxy.Issuer)
	assert.Equal(t, "key-1", cfg.Proxy.Keys.KID)
	assert.Equal(t, "pgx", cfg.DB.Transfers.Driver)
}
