// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/dataspace-connector/dataplane/internal/logger"
	"github.com/dataspace-connector/dataplane/internal/model"
)

var transferColumns = []string{
	"id", "status", "source", "participant_id", "created_at", "updated_at",
}

// SQLTransferRepository is a SQL-backed implementation of
// [TransferRepository], working against either SQLite or PostgreSQL
// depending on the driver the wrapped [DB] was opened with.
type SQLTransferRepository struct {
	db *DB
	sq sq.StatementBuilderType
}

// NewTransferRepository constructs a [SQLTransferRepository] wired to db.
func NewTransferRepository(db *DB) *SQLTransferRepository {
	return &SQLTransferRepository{db: db, sq: placeholderFormat(db.driver)}
}

// Save implements [TransferRepository.Save] as an INSERT ... ON CONFLICT DO
// UPDATE: a transfer with a new ID is inserted; one with an existing ID has
// its status, source and updated_at columns overwritten.
func (r *SQLTransferRepository) Save(ctx context.Context, transfer model.TransferRecord) error {
	source, err := json.Marshal(transfer.Source)
	if err != nil {
		return fmt.Errorf("error marshaling source data address: %w", err)
	}

	query, args, err := r.sq.Insert("transfers").
		Columns(transferColumns...).
		Values(transfer.ID, transfer.Status, source, transfer.ParticipantID, transfer.CreatedAt, transfer.UpdatedAt).
		Suffix("ON CONFLICT(id) DO UPDATE SET status = excluded.status, source = excluded.source, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	logger.FromContext(ctx).Debug().Str("query", query).Msg("saving transfer")
	_, err = r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error saving transfer %s: %w", transfer.ID, err)
	}
	return nil
}

// FetchByID implements [TransferRepository.FetchByID].
func (r *SQLTransferRepository) FetchByID(ctx context.Context, id string) (model.TransferRecord, error) {
	query, args, err := r.sq.Select(transferColumns...).
		From("transfers").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.TransferRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	transfer, err := scanTransfer(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return model.TransferRecord{}, ErrTransferNotFound
	}
	if err != nil {
		return model.TransferRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return transfer, nil
}

// Query implements [TransferRepository.Query].
func (r *SQLTransferRepository) Query(ctx context.Context, q TransferQuery) ([]model.TransferRecord, error) {
	qb := r.sq.Select(transferColumns...).From("transfers").OrderBy("id")

	if q.ID != nil {
		qb = qb.Where(sq.Eq{"id": *q.ID})
	}
	if q.Limit > 0 {
		qb = qb.Limit(uint64(q.Limit))
	}
	if q.Offset > 0 {
		qb = qb.Offset(uint64(q.Offset))
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying transfers: %w", err)
	}
	defer rows.Close()

	var transfers []model.TransferRecord
	for rows.Next() {
		transfer, err := scanTransfer(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		transfers = append(transfers, transfer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return transfers, nil
}

// ChangeStatus implements [TransferRepository.ChangeStatus].
func (r *SQLTransferRepository) ChangeStatus(ctx context.Context, id string, status model.TransferStatus) error {
	query, args, err := r.sq.Update("transfers").
		Set("status", status).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error changing transfer status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading rows affected: %w", err)
	}
	if affected == 0 {
		return ErrTransferNotFound
	}
	return nil
}

// Delete implements [TransferRepository.Delete].
func (r *SQLTransferRepository) Delete(ctx context.Context, id string) error {
	query, args, err := r.sq.Delete("transfers").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("error deleting transfer %s: %w", id, err)
	}
	return nil
}

// scanTransfer scans one row of transferColumns into a model.TransferRecord
// via scan, which is either a *sql.Row's or *sql.Rows's Scan method.
func scanTransfer(scan func(...any) error) (model.TransferRecord, error) {
	var (
		t      model.TransferRecord
		source []byte
	)

	if err := scan(&t.ID, &t.Status, &source, &t.ParticipantID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return model.TransferRecord{}, err
	}

	if err := json.Unmarshal(source, &t.Source); err != nil {
		return model.TransferRecord{}, fmt.Errorf("error unmarshaling source data address: %w", err)
	}
	return t, nil
}
