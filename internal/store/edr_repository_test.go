// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataspace-connector/dataplane/internal/logger"
	"github.com/dataspace-connector/dataplane/internal/model"
)

func newTestEdrRepo(t *testing.T) (*SQLEdrRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := &SQLEdrRepository{
		db: &DB{DB: db, driver: "sqlite3", logger: logger.Nop()},
		sq: placeholderFormat("sqlite3"),
	}
	return repo, mock, db
}

func TestEdrRepository_Save(t *testing.T) {
	repo, mock, db := newTestEdrRepo(t)
	defer db.Close()

	entry := model.EdrEntry{TransferID: "tp-1", TokenID: uuid.New(), RefreshTokenID: uuid.New()}
	mock.ExpectExec("INSERT INTO edr_entries").
		WithArgs(entry.TransferID, entry.TokenID, entry.RefreshTokenID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Save(context.Background(), entry)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEdrRepository_FetchByID_Found(t *testing.T) {
	repo, mock, db := newTestEdrRepo(t)
	defer db.Close()

	entry := model.EdrEntry{TransferID: "tp-1", TokenID: uuid.New(), RefreshTokenID: uuid.New()}
	rows := sqlmock.NewRows(edrColumns).AddRow(entry.TransferID, entry.TokenID.String(), entry.RefreshTokenID.String())

	mock.ExpectQuery("SELECT (.+) FROM edr_entries").
		WithArgs(entry.TransferID).
		WillReturnRows(rows)

	got, err := repo.FetchByID(context.Background(), entry.TransferID)
	require.NoError(t, err)
	assert.Equal(t, entry, got)
}

func TestEdrRepository_FetchByID_NotFound(t *testing.T) {
	repo, mock, db := newTestEdrRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM edr_entries").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FetchByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrEdrNotFound)
}

func TestEdrRepository_Delete(t *testing.T) {
	repo, mock, db := newTestEdrRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM edr_entries").
		WithArgs("tp-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), "tp-1")
	require.NoError(t, err)
}
