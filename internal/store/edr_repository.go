// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/dataspace-connector/dataplane/internal/logger"
	"github.com/dataspace-connector/dataplane/internal/model"
)

var edrColumns = []string{"transfer_id", "token_id", "refresh_token_id"}

// SQLEdrRepository is a SQL-backed implementation of [EdrRepository].
type SQLEdrRepository struct {
	db *DB
	sq sq.StatementBuilderType
}

// NewEdrRepository constructs a [SQLEdrRepository] wired to db.
func NewEdrRepository(db *DB) *SQLEdrRepository {
	return &SQLEdrRepository{db: db, sq: placeholderFormat(db.driver)}
}

// Save implements [EdrRepository.Save] as an INSERT ... ON CONFLICT DO
// UPDATE keyed by transfer_id: the first credential pair for a transfer is
// inserted, a subsequent rotation overwrites token_id/refresh_token_id.
func (r *SQLEdrRepository) Save(ctx context.Context, entry model.EdrEntry) error {
	query, args, err := r.sq.Insert("edr_entries").
		Columns(edrColumns...).
		Values(entry.TransferID, entry.TokenID, entry.RefreshTokenID).
		Suffix("ON CONFLICT(transfer_id) DO UPDATE SET token_id = excluded.token_id, refresh_token_id = excluded.refresh_token_id").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	logger.FromContext(ctx).Debug().Str("query", query).Msg("saving edr entry")
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("error saving edr entry for transfer %s: %w", entry.TransferID, err)
	}
	return nil
}

// FetchByID implements [EdrRepository.FetchByID].
func (r *SQLEdrRepository) FetchByID(ctx context.Context, transferID string) (model.EdrEntry, error) {
	query, args, err := r.sq.Select(edrColumns...).
		From("edr_entries").
		Where(sq.Eq{"transfer_id": transferID}).
		ToSql()
	if err != nil {
		return model.EdrEntry{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var entry model.EdrEntry
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&entry.TransferID, &entry.TokenID, &entry.RefreshTokenID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.EdrEntry{}, ErrEdrNotFound
	}
	if err != nil {
		return model.EdrEntry{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return entry, nil
}

// Delete implements [EdrRepository.Delete].
func (r *SQLEdrRepository) Delete(ctx context.Context, transferID string) error {
	query, args, err := r.sq.Delete("edr_entries").Where(sq.Eq{"transfer_id": transferID}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("error deleting edr entry for transfer %s: %w", transferID, err)
	}
	return nil
}
