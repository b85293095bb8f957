package storage

import (
	"context"
	"time"

	"github.com/poiesic/mailmind/core"
)

// MailRepository provides operations for the mail archive. The pipeline
// writes every enriched record here so that listing, statistics, and
// index rebuilds have a durable record source.
// Implementations must be thread-safe and support concurrent access.
type MailRepository interface {
	// AddMailRecords stores one or more mail records.
	// Records are keyed by their transport-assigned Id; storing a record
	// with an existing Id overwrites the previous version.
	AddMailRecords(ctx context.Context, records ...*core.MailRecord) error

	// GetMailRecord retrieves a single mail record by its Id.
	// Returns ErrNotFound if the record doesn't exist.
	GetMailRecord(ctx context.Context, id string) (*core.MailRecord, error)

	// GetMailRecords retrieves multiple mail records by their Ids.
	// Returns only the records that exist (no error for missing records).
	GetMailRecords(ctx context.Context, ids ...string) ([]*core.MailRecord, error)

	// GetRecentMailRecords retrieves up to limit records ordered by mail
	// date descending, most recent first.
	GetRecentMailRecords(ctx context.Context, limit int) ([]*core.MailRecord, error)

	// GetMailRecordsByDateRange retrieves records where start <= Date < end,
	// ordered by date ascending.
	GetMailRecordsByDateRange(ctx context.Context, start, end time.Time) ([]*core.MailRecord, error)

	// AllMailRecords retrieves every archived record. Used by index rebuilds.
	AllMailRecords(ctx context.Context) ([]*core.MailRecord, error)

	// CountMailRecords returns the number of archived records.
	CountMailRecords(ctx context.Context) (int, error)

	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}
