// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package token

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataspace-connector/dataplane/internal/model"
	"github.com/dataspace-connector/dataplane/internal/secret"
)

// ─────────────────────────────────────────────
// test fixtures
// ─────────────────────────────────────────────

func generateKeyPairPEM(t *testing.T) (private string, public string) {
	t.Helper()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	privBytes, err := x509.MarshalPKCS8PrivateKey(priv)
	require.NoError(t, err)
	pubBytes, err := x509.MarshalPKIXPublicKey(pub)
	require.NoError(t, err)

	privPEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privBytes})
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubBytes})

	return string(privPEM), string(pubPEM)
}

func newTestEngine(t *testing.T, leeway time.Duration) *Engine {
	t.Helper()

	priv, pub := generateKeyPairPEM(t)
	e, err := New(Config{
		EncodingKeyPEM: secret.String(priv),
		DecodingKeyPEM: pub,
		KID:            "test-kid",
		Audience:       "audience",
		Issuer:         "dataplane",
		Leeway:         leeway,
	})
	require.NoError(t, err)
	return e
}

// ─────────────────────────────────────────────
// Issue / Validate
// ─────────────────────────────────────────────

func TestEngine_IssueAndValidate_RoundTrips(t *testing.T) {
	e := newTestEngine(t, 0)

	claims := model.EdrClaims{
		JTI:        uuid.New(),
		Issuer:     "dataplane",
		Audience:   "audience",
		Subject:    "transfer-1",
		ExpiresAt:  time.Now().Add(time.Hour).Unix(),
		IssuedAt:   time.Now().Unix(),
		TransferID: "transfer-1",
	}

	signed, err := e.Issue(claims)
	require.NoError(t, err)
	assert.NotEmpty(t, signed)

	var got model.EdrClaims
	err = e.Validate(signed, &got)
	require.NoError(t, err)
	assert.Equal(t, claims.TransferID, got.TransferID)
	assert.Equal(t, claims.JTI, got.JTI)
}

func TestEngine_Validate_ExpiredReturnsErrExpired(t *testing.T) {
	e := newTestEngine(t, 0)

	claims := model.EdrClaims{
		Issuer:    "dataplane",
		Audience:  "audience",
		ExpiresAt: time.Now().Add(-time.Hour).Unix(),
		IssuedAt:  time.Now().Add(-2 * time.Hour).Unix(),
	}
	signed, err := e.Issue(claims)
	require.NoError(t, err)

	var got model.EdrClaims
	err = e.Validate(signed, &got)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestEngine_Validate_WrongAudienceReturnsErrInvalid(t *testing.T) {
	e := newTestEngine(t, 0)

	claims := model.EdrClaims{
		Issuer:    "dataplane",
		Audience:  "someone-else",
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	}
	signed, err := e.Issue(claims)
	require.NoError(t, err)

	var got model.EdrClaims
	err = e.Validate(signed, &got)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestEngine_Validate_WrongKeyReturnsErrInvalid(t *testing.T) {
	e := newTestEngine(t, 0)
	other := newTestEngine(t, 0)

	claims := model.EdrClaims{
		Issuer:    "dataplane",
		Audience:  "audience",
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	}
	signed, err := e.Issue(claims)
	require.NoError(t, err)

	var got model.EdrClaims
	err = other.Validate(signed, &got)
	assert.ErrorIs(t, err, ErrInvalid)
}

// ─────────────────────────────────────────────
// Keys (JWKS)
// ─────────────────────────────────────────────

func TestEngine_Keys_PublishesSingleEdDSAKey(t *testing.T) {
	e := newTestEngine(t, 0)

	set := e.Keys()

	require.Len(t, set.Keys, 1)
	key := set.Keys[0]
	assert.Equal(t, "OKP", key.Kty)
	assert.Equal(t, "Ed25519", key.Crv)
	assert.Equal(t, "EdDSA", key.Alg)
	assert.Equal(t, "sig", key.Use)
	assert.Equal(t, "test-kid", key.Kid)
	assert.NotEmpty(t, key.X)
}

// ─────────────────────────────────────────────
// Config.EncodingKeyPEM never leaks
// ─────────────────────────────────────────────

func TestConfig_EncodingKeyPEM_DoesNotLeakInFormatting(t *testing.T) {
	priv, _ := generateKeyPairPEM(t)
	s := secret.String(priv)

	assert.NotContains(t, s.String(), "PRIVATE KEY")
	assert.NotEqual(t, priv, s.String())
}
