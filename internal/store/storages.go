// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/dataspace-connector/dataplane/internal/config"
	"github.com/dataspace-connector/dataplane/internal/logger"
)

// Stores aggregates the repositories used by the data-plane: the transfer
// store (C2) and the EDR store (C3). Both repositories may be backed by the
// same underlying connection (when cfg.DB.Transfers and cfg.DB.Tokens name
// the same DSN) or by two independent connections.
type Stores struct {
	Transfers TransferRepository
	Edrs      EdrRepository

	transfersDB *DB
	tokensDB    *DB
}

// NewStores connects to the databases described by cfg.DB, runs pending
// migrations on each distinct connection, and returns a [Stores] wired to
// concrete SQL-backed repositories.
//
// If cfg.DB.Transfers and cfg.DB.Tokens describe the same driver and DSN,
// a single connection is opened and shared by both repositories; otherwise
// two independent connections are opened.
func NewStores(ctx context.Context, cfg config.DBGroup, log *logger.Logger) (*Stores, error) {
	transfersDB, err := connect(ctx, cfg.Transfers, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting transfer store: %w", err)
	}
	if err := transfersDB.Migrate(); err != nil {
		return nil, fmt.Errorf("error migrating transfer store: %w", err)
	}

	tokensDB := transfersDB
	if cfg.Tokens != cfg.Transfers {
		tokensDB, err = connect(ctx, cfg.Tokens, log)
		if err != nil {
			return nil, fmt.Errorf("error connecting edr store: %w", err)
		}
		if err := tokensDB.Migrate(); err != nil {
			return nil, fmt.Errorf("error migrating edr store: %w", err)
		}
	}

	return &Stores{
		Transfers:   NewTransferRepository(transfersDB),
		Edrs:        NewEdrRepository(tokensDB),
		transfersDB: transfersDB,
		tokensDB:    tokensDB,
	}, nil
}

// connect dispatches to the driver-specific connector named by cfg.Driver.
func connect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch cfg.Driver {
	case "pgx":
		return NewConnectPostgres(ctx, cfg, log)
	case "sqlite3", "":
		return NewConnectSQLite(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Close closes the underlying database connection(s). It is safe to call
// even when both repositories share a single connection.
func (s *Stores) Close() error {
	if s.transfersDB == s.tokensDB {
		return s.transfersDB.Close()
	}

	err := s.transfersDB.Close()
	if tokErr := s.tokensDB.Close(); tokErr != nil && err == nil {
		err = tokErr
	}
	return err
}
