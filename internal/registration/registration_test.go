// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package registration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataspace-connector/dataplane/internal/logger"
)

func TestRegister_PostsExpectedBody(t *testing.T) {
	var got request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/dataplanes", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	r := New("dataplane-1", "https://dp.example/signaling", server.URL, logger.Nop())

	err := r.Register(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "dataplane-1", got.ID)
	assert.Equal(t, "https://dp.example/signaling", got.URL)
	assert.Equal(t, []string{"HttpData-PULL"}, got.AllowedTransferTypes)
	assert.Equal(t, []string{"HttpData"}, got.AllowedSourceTypes)
	assert.Equal(t, []string{"HttpData"}, got.AllowedDestTypes)
	assert.Equal(t, "https://w3id.org/edc/v0.0.1/ns/", got.Context["@vocab"])
}

func TestRegister_NonTwoXXIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("db down"))
	}))
	defer server.Close()

	r := New("dataplane-1", "https://dp.example/signaling", server.URL, logger.Nop())

	err := r.Register(context.Background())
	assert.Error(t, err)
}

func TestRun_StopsAfterFirstSuccess(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	r := New("dataplane-1", "https://dp.example/signaling", server.URL, logger.Nop())

	done := make(chan struct{})
	go func() {
		r.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after a successful attempt")
	}

	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
}

func TestRun_RetriesUntilSuccessThenStops(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&attempts, 1)
		if n < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	r := New("dataplane-1", "https://dp.example/signaling", server.URL, logger.Nop())

	done := make(chan struct{})
	go func() {
		r.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(6 * time.Second):
		t.Fatal("Run did not converge to success in time")
	}

	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

func TestRun_StopsOnContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	r := New("dataplane-1", "https://dp.example/signaling", server.URL, logger.Nop())

	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}
}
