// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package registration announces this data-plane to the control plane on
// startup: a single JSON-LD POST advertising the component's id, its
// Signaling API URL, and the transfer/source/destination types it
// supports, retried indefinitely until the control plane accepts it.
package registration

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dataspace-connector/dataplane/internal/logger"
	"github.com/dataspace-connector/dataplane/internal/utils"
)

// RetryInterval is the fixed delay between registration attempts.
const RetryInterval = 2 * time.Second

// request is the JSON-LD body POSTed to "<control plane>/v1/dataplanes".
// Field order mirrors the wire example so the struct reads the same way
// the document does.
type request struct {
	Context              map[string]string `json:"@context"`
	ID                   string            `json:"@id"`
	URL                  string            `json:"url"`
	AllowedTransferTypes []string          `json:"allowedTransferTypes"`
	AllowedSourceTypes   []string          `json:"allowedSourceTypes"`
	AllowedDestTypes     []string          `json:"allowedDestTypes"`
}

func newRequest(componentID, signalingURL string) request {
	return request{
		Context:              map[string]string{"@vocab": "https://w3id.org/edc/v0.0.1/ns/"},
		ID:                   componentID,
		URL:                  signalingURL,
		AllowedTransferTypes: []string{"HttpData-PULL"},
		AllowedSourceTypes:   []string{"HttpData"},
		AllowedDestTypes:     []string{"HttpData"},
	}
}

// Registrar announces one data-plane instance to a control plane.
type Registrar struct {
	client *utils.HTTPClient

	componentID     string
	signalingURL    string
	controlPlaneURL string

	logger *logger.Logger
}

// New constructs a Registrar. controlPlaneURL is the control plane's base
// URL; "/v1/dataplanes" is appended to it on every attempt.
func New(componentID, signalingURL, controlPlaneURL string, log *logger.Logger) *Registrar {
	return &Registrar{
		client:          utils.NewHTTPClient(),
		componentID:     componentID,
		signalingURL:    signalingURL,
		controlPlaneURL: strings.TrimRight(controlPlaneURL, "/"),
		logger:          log,
	}
}

// Register makes one registration attempt, returning an error on any
// non-2xx response or transport failure.
func (r *Registrar) Register(ctx context.Context) error {
	resp, err := r.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(newRequest(r.componentID, r.signalingURL)).
		Post(r.controlPlaneURL + "/v1/dataplanes")
	if err != nil {
		return fmt.Errorf("registration: request: %w", err)
	}

	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return fmt.Errorf("registration: control plane responded %d: %s", resp.StatusCode(), strings.TrimSpace(string(resp.Body())))
	}

	return nil
}

// Run retries Register every RetryInterval until it succeeds or ctx is
// done. Each failure is logged at error level and never propagated:
// registration never blocks the data-plane's own listeners from serving.
func (r *Registrar) Run(ctx context.Context) {
	for {
		err := r.Register(ctx)
		if err == nil {
			r.logger.Info().Str("component_id", r.componentID).Msg("registered with control plane")
			return
		}
		if ctx.Err() != nil {
			return
		}
		r.logger.Error().Err(err).Msg("control plane registration failed, retrying")

		select {
		case <-ctx.Done():
			return
		case <-time.After(RetryInterval):
		}
	}
}
