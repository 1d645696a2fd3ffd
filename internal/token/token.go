// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package token is the data-plane's credential engine (C1): it signs and
// verifies the EdDSA-signed JWTs that gate the public proxy, and publishes
// the corresponding JWKS document so relying parties never need the
// signing key itself.
package token

import (
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dataspace-connector/dataplane/internal/secret"
)

// Sentinel errors returned by Validate. Callers distinguish an expired
// token (retryable via refresh) from every other validation failure
// (signature mismatch, wrong audience, malformed token), which is not.
var (
	// ErrExpired means the token's exp claim is in the past. Unlike every
	// other failure it is NOT a sign of tampering.
	ErrExpired = errors.New("token: expired")

	// ErrInvalid covers every other validation failure: bad signature,
	// wrong audience or issuer, malformed claims, unparseable token.
	ErrInvalid = errors.New("token: invalid")
)

// Config configures a single Engine. Keys must be PEM-encoded PKCS8
// Ed25519 keys; EncodingKey carries the private half and is therefore a
// secret.String so it never leaks into a log line or error message.
type Config struct {
	EncodingKeyPEM secret.String
	DecodingKeyPEM string
	KID            string
	Audience       string
	Issuer         string
	Leeway         time.Duration
}

// Engine issues and validates EdDSA-signed JWTs for one audience and
// publishes their public key as a JWKS document. It holds no mutable
// state after construction and is safe for concurrent use.
type Engine struct {
	private  ed25519.PrivateKey
	public   ed25519.PublicKey
	kid      string
	audience string
	issuer   string
	leeway   time.Duration
}

// New parses cfg's PEM-encoded key pair and returns a ready Engine.
func New(cfg Config) (*Engine, error) {
	if cfg.KID == "" || cfg.Audience == "" {
		return nil, errors.New("token: kid and audience are required")
	}

	privateKey, err := jwt.ParseEdPrivateKeyFromPEM([]byte(cfg.EncodingKeyPEM.Expose()))
	if err != nil {
		return nil, fmt.Errorf("token: parsing signing key: %w", err)
	}
	private, ok := privateKey.(ed25519.PrivateKey)
	if !ok {
		return nil, errors.New("token: signing key is not an Ed25519 private key")
	}

	publicKey, err := jwt.ParseEdPublicKeyFromPEM([]byte(cfg.DecodingKeyPEM))
	if err != nil {
		return nil, fmt.Errorf("token: parsing verification key: %w", err)
	}
	public, ok := publicKey.(ed25519.PublicKey)
	if !ok {
		return nil, errors.New("token: verification key is not an Ed25519 public key")
	}

	return &Engine{
		private:  private,
		public:   public,
		kid:      cfg.KID,
		audience: cfg.Audience,
		issuer:   cfg.Issuer,
		leeway:   cfg.Leeway,
	}, nil
}

// Issue signs claims with the engine's Ed25519 key and stamps the
// resulting header with the engine's kid, so a relying party can select
// the right JWKS entry without trying every published key.
func (e *Engine) Issue(claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	token.Header["kid"] = e.kid

	signed, err := token.SignedString(e.private)
	if err != nil {
		return "", fmt.Errorf("token: signing: %w", err)
	}
	return signed, nil
}

// Validate parses tokenString into claims, checking signature, algorithm,
// audience, issuer and expiry (with the engine's configured leeway).
// claims must be a pointer, exactly as required by jwt.ParseWithClaims.
//
// A strictly-expired-otherwise-valid token reports ErrExpired; every other
// failure reports ErrInvalid. Callers use this distinction to decide
// whether a refresh is worth attempting.
func (e *Engine) Validate(tokenString string, claims jwt.Claims) error {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}),
		jwt.WithAudience(e.audience),
		jwt.WithIssuer(e.issuer),
		jwt.WithLeeway(e.leeway),
	)

	_, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return e.public, nil
	})
	if err == nil {
		return nil
	}

	if errors.Is(err, jwt.ErrTokenExpired) {
		return ErrExpired
	}
	return fmt.Errorf("%w: %v", ErrInvalid, err)
}

// JWK is the subset of RFC 7517 fields needed to publish an Ed25519
// verification key (RFC 8037, OKP / Ed25519).
type JWK struct {
	Kty string `json:"kty"`
	Crv string `json:"crv"`
	X   string `json:"x"`
	Use string `json:"use"`
	Alg string `json:"alg"`
	Kid string `json:"kid"`
}

// JWKSet is the RFC 7517 document published at /.well-known/jwks.json.
type JWKSet struct {
	Keys []JWK `json:"keys"`
}

// Keys returns the engine's public key as a single-entry JWKS document.
func (e *Engine) Keys() JWKSet {
	return JWKSet{
		Keys: []JWK{{
			Kty: "OKP",
			Crv: "Ed25519",
			X:   base64.RawURLEncoding.EncodeToString(e.public),
			Use: "sig",
			Alg: "EdDSA",
			Kid: e.kid,
		}},
	}
}
