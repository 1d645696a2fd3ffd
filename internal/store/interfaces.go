// Package store provides data-access abstractions and repository
// implementations for persisting and querying transfers and their
// associated credential entries.
//
// It defines repository interfaces, concrete SQLite/PostgreSQL-backed
// implementations, a query builder, error classification, and the
// sentinel errors used across the storage layer.
package store

import (
	"context"

	"github.com/dataspace-connector/dataplane/internal/model"
)

// TransferQuery filters TransferRepository.Query. ID narrows to a single
// transfer when set; Limit/Offset page through the rest.
type TransferQuery struct {
	ID     *string
	Limit  int
	Offset int
}

// TransferRepository defines the relational database access contract for
// TransferRecords. Save is an upsert: records with a new ID are inserted,
// records with an existing ID have Status/Source/UpdatedAt overwritten.
type TransferRepository interface {
	// Save inserts transfer if its ID is new, or updates the existing row
	// otherwise.
	Save(ctx context.Context, transfer model.TransferRecord) error

	// FetchByID returns the transfer with the given id.
	// Returns [ErrTransferNotFound] if no such transfer exists.
	FetchByID(ctx context.Context, id string) (model.TransferRecord, error)

	// Query returns transfers matching q, ordered by id.
	Query(ctx context.Context, q TransferQuery) ([]model.TransferRecord, error)

	// ChangeStatus updates only the Status (and UpdatedAt) column of the
	// transfer identified by id.
	// Returns [ErrTransferNotFound] if no such transfer exists.
	ChangeStatus(ctx context.Context, id string, status model.TransferStatus) error

	// Delete removes the transfer identified by id. Deleting an unknown id
	// is not an error.
	Delete(ctx context.Context, id string) error
}

// EdrRepository defines the relational database access contract for
// EdrEntries, the live token-identifier pair for a transfer. Save is an
// upsert keyed by TransferID.
type EdrRepository interface {
	// Save inserts entry if its TransferID is new, or overwrites the
	// existing TokenID/RefreshTokenID otherwise.
	Save(ctx context.Context, entry model.EdrEntry) error

	// FetchByID returns the EdrEntry for the given transfer id.
	// Returns [ErrEdrNotFound] if no such entry exists.
	FetchByID(ctx context.Context, transferID string) (model.EdrEntry, error)

	// Delete removes the EdrEntry for the given transfer id. Deleting an
	// unknown id is not an error.
	Delete(ctx context.Context, transferID string) error
}

// ErrorClassificator defines a strategy for categorizing errors produced
// by persistence layers (e.g. PostgreSQL driver errors) into well-known
// application-level classifications.
//
// Implementations inspect the underlying driver error (error codes, types)
// and return a corresponding [ErrorClassification] value that higher layers
// can switch on without coupling to a specific database driver.
type ErrorClassificator interface {
	// Classify maps an error into a predefined [ErrorClassification] enum.
	// If the error is not recognized, the implementation should return
	// a generic/unknown classification rather than panicking.
	Classify(err error) ErrorClassification
}
