// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package proxy

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataspace-connector/dataplane/internal/edr"
	"github.com/dataspace-connector/dataplane/internal/logger"
	"github.com/dataspace-connector/dataplane/internal/model"
	"github.com/dataspace-connector/dataplane/internal/secret"
	"github.com/dataspace-connector/dataplane/internal/store"
	"github.com/dataspace-connector/dataplane/internal/token"
)

type mockTransferRepository struct {
	fetchByIDFn func(ctx context.Context, id string) (model.TransferRecord, error)
}

func (m *mockTransferRepository) Save(ctx context.Context, t model.TransferRecord) error { return nil }

func (m *mockTransferRepository) FetchByID(ctx context.Context, id string) (model.TransferRecord, error) {
	if m.fetchByIDFn != nil {
		return m.fetchByIDFn(ctx, id)
	}
	return model.TransferRecord{}, nil
}

func (m *mockTransferRepository) Query(ctx context.Context, q store.TransferQuery) ([]model.TransferRecord, error) {
	return nil, nil
}

func (m *mockTransferRepository) ChangeStatus(ctx context.Context, id string, status model.TransferStatus) error {
	return nil
}

func (m *mockTransferRepository) Delete(ctx context.Context, id string) error { return nil }

type mockEdrRepository struct {
	fetchByIDFn func(ctx context.Context, transferID string) (model.EdrEntry, error)
}

func (m *mockEdrRepository) Save(ctx context.Context, e model.EdrEntry) error { return nil }

func (m *mockEdrRepository) FetchByID(ctx context.Context, transferID string) (model.EdrEntry, error) {
	if m.fetchByIDFn != nil {
		return m.fetchByIDFn(ctx, transferID)
	}
	return model.EdrEntry{}, nil
}

func (m *mockEdrRepository) Delete(ctx context.Context, transferID string) error { return nil }

// ─────────────────────────────────────────────
// fixtures
// ─────────────────────────────────────────────

func newTestEngineAndEdrManager(t *testing.T) (*token.Engine, *edr.Manager) {
	t.Helper()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	privBytes, err := x509.MarshalPKCS8PrivateKey(priv)
	require.NoError(t, err)
	pubBytes, err := x509.MarshalPKIXPublicKey(pub)
	require.NoError(t, err)

	privPEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privBytes})
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubBytes})

	engine, err := token.New(token.Config{
		EncodingKeyPEM: secret.String(privPEM),
		DecodingKeyPEM: string(pubPEM),
		KID:            "test-kid",
		Audience:       "https://dataplane.example/proxy",
		Issuer:         "https://dataplane.example",
	})
	require.NoError(t, err)

	edrMgr := edr.New(engine, edr.Config{
		Issuer:               "https://dataplane.example",
		ProxyURL:             "https://dataplane.example/proxy",
		TokenURL:             "https://dataplane.example/api/v1/token",
		JWKSURL:              "https://dataplane.example/.well-known/jwks.json",
		TokenDuration:        10 * time.Minute,
		RefreshTokenDuration: 720 * time.Hour,
	})

	return engine, edrMgr
}

func sourceAddress(t *testing.T, baseURL string) model.DataAddress {
	t.Helper()
	return model.DataAddress{
		EndpointType: model.HttpDataEndpointType,
		EndpointProperties: []model.EndpointProperty{
			{Name: model.EDCNamespace.ToIRI("baseUrl"), Value: baseURL},
		},
	}
}

func newTestHandler(t *testing.T, transfers *mockTransferRepository, edrs *mockEdrRepository, engine *token.Engine) *Handler {
	t.Helper()
	return NewHandler(transfers, edrs, engine, logger.Nop())
}

// ─────────────────────────────────────────────
// bearerToken
// ─────────────────────────────────────────────

func TestBearerToken_RejectsMissingOrMalformedHeader(t *testing.T) {
	cases := []string{"", "Token abc", "Bearer", "Bearer "}
	for _, header := range cases {
		_, err := bearerToken(header)
		assert.ErrorIs(t, err, ErrMissingToken, "header %q", header)
	}
}

func TestBearerToken_RejectsNonUTF8(t *testing.T) {
	_, err := bearerToken("Bearer \xff\xfe")
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestBearerToken_AcceptsWellFormed(t *testing.T) {
	got, err := bearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", got)
}

// ─────────────────────────────────────────────
// authenticate
// ─────────────────────────────────────────────

func TestAuthenticate_RejectsMissingHeader(t *testing.T) {
	engine, _ := newTestEngineAndEdrManager(t)
	h := newTestHandler(t, &mockTransferRepository{}, &mockEdrRepository{}, engine)

	_, err := h.authenticate(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestAuthenticate_RejectsInvalidToken(t *testing.T) {
	engine, _ := newTestEngineAndEdrManager(t)
	h := newTestHandler(t, &mockTransferRepository{}, &mockEdrRepository{}, engine)

	_, err := h.authenticate(context.Background(), "Bearer not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthenticate_RejectsExpiredToken(t *testing.T) {
	engine, _ := newTestEngineAndEdrManager(t)

	tokenID := uuid.New()

	// Build a manager whose TokenDuration is already in the past so the
	// minted access token is expired on arrival.
	expiredMgr := edr.New(engine, edr.Config{
		Issuer:        "https://dataplane.example",
		ProxyURL:      "https://dataplane.example/proxy",
		TokenDuration: -time.Minute,
	})
	accessJWT, _, err := expiredMgr.IssueToken(tokenID, uuid.New(), "participant-1", "tp-1")
	require.NoError(t, err)

	h := newTestHandler(t, &mockTransferRepository{}, &mockEdrRepository{}, engine)

	_, err = h.authenticate(context.Background(), "Bearer "+accessJWT)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestAuthenticate_RejectsTokenIDMismatch(t *testing.T) {
	engine, edrMgr := newTestEngineAndEdrManager(t)

	tokenID := uuid.New()
	accessJWT, _, err := edrMgr.IssueToken(tokenID, uuid.New(), "participant-1", "tp-1")
	require.NoError(t, err)

	edrs := &mockEdrRepository{
		fetchByIDFn: func(ctx context.Context, transferID string) (model.EdrEntry, error) {
			// Live entry has rotated to a different token_id.
			return model.EdrEntry{TransferID: "tp-1", TokenID: uuid.New()}, nil
		},
	}
	h := newTestHandler(t, &mockTransferRepository{}, edrs, engine)

	_, err = h.authenticate(context.Background(), "Bearer "+accessJWT)
	assert.ErrorIs(t, err, ErrInvalidTransfer)
}

func TestAuthenticate_RejectsUnknownEdrEntry(t *testing.T) {
	engine, edrMgr := newTestEngineAndEdrManager(t)
	accessJWT, _, err := edrMgr.IssueToken(uuid.New(), uuid.New(), "participant-1", "tp-1")
	require.NoError(t, err)

	edrs := &mockEdrRepository{
		fetchByIDFn: func(ctx context.Context, transferID string) (model.EdrEntry, error) {
			return model.EdrEntry{}, store.ErrEdrNotFound
		},
	}
	h := newTestHandler(t, &mockTransferRepository{}, edrs, engine)

	_, err = h.authenticate(context.Background(), "Bearer "+accessJWT)
	assert.ErrorIs(t, err, ErrInvalidTransfer)
}

func TestAuthenticate_RejectsTransferNotStarted(t *testing.T) {
	engine, edrMgr := newTestEngineAndEdrManager(t)

	tokenID := uuid.New()
	accessJWT, _, err := edrMgr.IssueToken(tokenID, uuid.New(), "participant-1", "tp-1")
	require.NoError(t, err)

	edrs := &mockEdrRepository{
		fetchByIDFn: func(ctx context.Context, transferID string) (model.EdrEntry, error) {
			return model.EdrEntry{TransferID: "tp-1", TokenID: tokenID}, nil
		},
	}
	transfers := &mockTransferRepository{
		fetchByIDFn: func(ctx context.Context, id string) (model.TransferRecord, error) {
			return model.TransferRecord{ID: "tp-1", Status: model.TransferSuspended}, nil
		},
	}
	h := newTestHandler(t, transfers, edrs, engine)

	_, err = h.authenticate(context.Background(), "Bearer "+accessJWT)
	assert.ErrorIs(t, err, ErrInvalidTransfer)
}

func TestAuthenticate_RejectsMalformedSource(t *testing.T) {
	engine, edrMgr := newTestEngineAndEdrManager(t)

	tokenID := uuid.New()
	accessJWT, _, err := edrMgr.IssueToken(tokenID, uuid.New(), "participant-1", "tp-1")
	require.NoError(t, err)

	edrs := &mockEdrRepository{
		fetchByIDFn: func(ctx context.Context, transferID string) (model.EdrEntry, error) {
			return model.EdrEntry{TransferID: "tp-1", TokenID: tokenID}, nil
		},
	}
	transfers := &mockTransferRepository{
		fetchByIDFn: func(ctx context.Context, id string) (model.TransferRecord, error) {
			return model.TransferRecord{
				ID:     "tp-1",
				Status: model.TransferStarted,
				Source: model.DataAddress{EndpointType: "unsupported-type"},
			}, nil
		},
	}
	h := newTestHandler(t, transfers, edrs, engine)

	_, err = h.authenticate(context.Background(), "Bearer "+accessJWT)
	assert.ErrorIs(t, err, ErrMalformedSource)
}

func TestAuthenticate_HappyPath(t *testing.T) {
	engine, edrMgr := newTestEngineAndEdrManager(t)

	tokenID := uuid.New()
	accessJWT, _, err := edrMgr.IssueToken(tokenID, uuid.New(), "participant-1", "tp-1")
	require.NoError(t, err)

	edrs := &mockEdrRepository{
		fetchByIDFn: func(ctx context.Context, transferID string) (model.EdrEntry, error) {
			return model.EdrEntry{TransferID: "tp-1", TokenID: tokenID}, nil
		},
	}
	transfers := &mockTransferRepository{
		fetchByIDFn: func(ctx context.Context, id string) (model.TransferRecord, error) {
			return model.TransferRecord{
				ID:     "tp-1",
				Status: model.TransferStarted,
				Source: sourceAddress(t, "https://upstream.example/data"),
			}, nil
		},
	}
	h := newTestHandler(t, transfers, edrs, engine)

	auth, err := h.authenticate(context.Background(), "Bearer "+accessJWT)
	require.NoError(t, err)
	assert.Equal(t, "tp-1", auth.claims.TransferID)
	assert.Equal(t, "upstream.example", auth.source.BaseURL.Host)
}

// ─────────────────────────────────────────────
// ServeHTTP / reverse proxying
// ─────────────────────────────────────────────

func TestServeHTTP_ForwardsAuthorizedRequest(t *testing.T) {
	var gotPath, gotQuery, gotAuth, gotHost string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		gotHost = r.Host
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("upstream-body"))
	}))
	defer upstream.Close()

	engine, edrMgr := newTestEngineAndEdrManager(t)
	tokenID := uuid.New()
	accessJWT, _, err := edrMgr.IssueToken(tokenID, uuid.New(), "participant-1", "tp-1")
	require.NoError(t, err)

	edrs := &mockEdrRepository{
		fetchByIDFn: func(ctx context.Context, transferID string) (model.EdrEntry, error) {
			return model.EdrEntry{TransferID: "tp-1", TokenID: tokenID}, nil
		},
	}
	transfers := &mockTransferRepository{
		fetchByIDFn: func(ctx context.Context, id string) (model.TransferRecord, error) {
			return model.TransferRecord{
				ID:     "tp-1",
				Status: model.TransferStarted,
				Source: sourceAddress(t, upstream.URL+"/base"),
			}, nil
		},
	}
	h := newTestHandler(t, transfers, edrs, engine)

	req := httptest.NewRequest(http.MethodGet, PublicPrefix+"/remainder?x=1", nil)
	req.Header.Set("Authorization", "Bearer "+accessJWT)
	rec := httptest.NewRecorder()

	h.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "upstream-body", rec.Body.String())
	assert.Equal(t, "/base/remainder", gotPath)
	assert.Equal(t, "x=1", gotQuery)
	assert.Empty(t, gotAuth, "inbound Authorization header must not reach upstream")
	assert.NotEmpty(t, gotHost)
}

func TestServeHTTP_ForwardsBarePublicPrefix(t *testing.T) {
	var gotPath string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer upstream.Close()

	engine, edrMgr := newTestEngineAndEdrManager(t)
	tokenID := uuid.New()
	accessJWT, _, err := edrMgr.IssueToken(tokenID, uuid.New(), "participant-1", "tp-1")
	require.NoError(t, err)

	edrs := &mockEdrRepository{
		fetchByIDFn: func(ctx context.Context, transferID string) (model.EdrEntry, error) {
			return model.EdrEntry{TransferID: "tp-1", TokenID: tokenID}, nil
		},
	}
	transfers := &mockTransferRepository{
		fetchByIDFn: func(ctx context.Context, id string) (model.TransferRecord, error) {
			return model.TransferRecord{
				ID:     "tp-1",
				Status: model.TransferStarted,
				Source: sourceAddress(t, upstream.URL),
			}, nil
		},
	}
	h := newTestHandler(t, transfers, edrs, engine)

	req := httptest.NewRequest(http.MethodGet, PublicPrefix, nil)
	req.Header.Set("Authorization", "Bearer "+accessJWT)
	rec := httptest.NewRecorder()

	h.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/", gotPath)
}

func TestServeHTTP_RejectsMissingToken(t *testing.T) {
	engine, _ := newTestEngineAndEdrManager(t)
	h := newTestHandler(t, &mockTransferRepository{}, &mockEdrRepository{}, engine)

	req := httptest.NewRequest(http.MethodGet, PublicPrefix+"/x", nil)
	rec := httptest.NewRecorder()

	h.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_404sOutsidePublicPrefix(t *testing.T) {
	engine, _ := newTestEngineAndEdrManager(t)
	h := newTestHandler(t, &mockTransferRepository{}, &mockEdrRepository{}, engine)

	req := httptest.NewRequest(http.MethodGet, "/not-the-proxy", nil)
	rec := httptest.NewRecorder()

	h.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
