// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package transfer is the data-plane's Transfer Manager (C5): it drives a
// transfer through its Started/Suspended/deleted lifecycle, asking the EDR
// Manager for credentials on Start and persisting the result via the
// transfer and EDR stores.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dataspace-connector/dataplane/internal/edr"
	"github.com/dataspace-connector/dataplane/internal/lock"
	"github.com/dataspace-connector/dataplane/internal/logger"
	"github.com/dataspace-connector/dataplane/internal/model"
	"github.com/dataspace-connector/dataplane/internal/store"
)

// Manager implements the Transfer Manager's state machine described by the
// spec: (absent) --Start--> Started --Suspend--> Suspended, either of
// which --Terminate--> (deleted).
type Manager struct {
	transfers store.TransferRepository
	edrs      store.EdrRepository
	edrMgr    *edr.Manager
	logger    *logger.Logger

	locks lock.Keyed
}

// New constructs a Manager wired to the given stores and EDR Manager.
func New(transfers store.TransferRepository, edrs store.EdrRepository, edrMgr *edr.Manager, log *logger.Logger) *Manager {
	return &Manager{transfers: transfers, edrs: edrs, edrMgr: edrMgr, logger: log}
}

// Start parses msg's source address, mints an EDR for it, and persists the
// resulting TransferRecord. The implementation MUST NOT persist C2 before
// C4 succeeds, so Start asks for the EDR first.
//
// Start is idempotent with respect to message replays carrying the same
// ProcessID: a second Start overwrites the existing record.
func (m *Manager) Start(ctx context.Context, msg model.DataFlowStartMessage) (model.DataFlowResponseMessage, error) {
	unlock := m.locks.Lock(msg.ProcessID)
	defer unlock()

	if _, err := model.ParseTransferKind(msg.SourceDataAddress); err != nil {
		return model.DataFlowResponseMessage{}, fmt.Errorf("%w: %w", ErrInvalidSourceDataAddress, err)
	}

	e, err := m.edrMgr.CreateEdr(msg.ParticipantID, msg.ProcessID)
	if err != nil {
		return model.DataFlowResponseMessage{}, fmt.Errorf("transfer: minting edr: %w", err)
	}

	now := time.Now().UTC()
	record := model.TransferRecord{
		ID:            msg.ProcessID,
		Status:        model.TransferStarted,
		Source:        msg.SourceDataAddress,
		ParticipantID: msg.ParticipantID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := m.transfers.Save(ctx, record); err != nil {
		return model.DataFlowResponseMessage{}, fmt.Errorf("transfer: saving transfer record: %w", err)
	}

	entry := model.EdrEntry{TransferID: msg.ProcessID, TokenID: e.TokenID, RefreshTokenID: e.RefreshTokenID}
	if err := m.edrs.Save(ctx, entry); err != nil {
		// The transfer is now Started without credentials. This is an
		// accepted degraded state per spec: the next proxy call observes
		// a missing EdrEntry as an invalid transfer, and callers recover
		// by re-issuing Start.
		m.logger.Err(err).Str("process_id", msg.ProcessID).Msg("saving edr entry after transfer was persisted")
		return model.DataFlowResponseMessage{}, fmt.Errorf("transfer: saving edr entry: %w", err)
	}

	return model.DataFlowResponseMessage{DataAddress: &e.DataAddress}, nil
}

// Suspend transitions the transfer identified by id to Suspended. It is a
// no-op, not an error, if the transfer does not exist.
func (m *Manager) Suspend(ctx context.Context, id string) error {
	unlock := m.locks.Lock(id)
	defer unlock()

	err := m.transfers.ChangeStatus(ctx, id, model.TransferSuspended)
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("transfer: suspending %s: %w", id, err)
	}
	return nil
}

// Terminate deletes the transfer's TransferRecord and EdrEntry. It is
// idempotent; reason is logged but never persisted.
func (m *Manager) Terminate(ctx context.Context, id string, reason *string) error {
	unlock := m.locks.Lock(id)
	defer unlock()

	event := m.logger.Info().Str("process_id", id)
	if reason != nil {
		event = event.Str("reason", *reason)
	}
	event.Msg("terminating transfer")

	if err := m.edrs.Delete(ctx, id); err != nil {
		return fmt.Errorf("transfer: deleting edr entry for %s: %w", id, err)
	}
	if err := m.transfers.Delete(ctx, id); err != nil {
		return fmt.Errorf("transfer: deleting transfer record %s: %w", id, err)
	}
	return nil
}

// Get returns the TransferRecord identified by id, or
// [store.ErrTransferNotFound] if it does not exist.
func (m *Manager) Get(ctx context.Context, id string) (model.TransferRecord, error) {
	return m.transfers.FetchByID(ctx, id)
}

func isNotFound(err error) bool {
	return errors.Is(err, store.ErrTransferNotFound)
}
