package badger

import (
	"bytes"
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/mailmind/core"
	"github.com/poiesic/mailmind/storage"
)

// MailRepository implements storage.MailRepository for BadgerDB.
type MailRepository struct {
	backend *Backend
}

var _ storage.MailRepository = (*MailRepository)(nil)

// NewMailRepository creates a new MailRepository.
func NewMailRepository(backend *Backend) (*MailRepository, error) {
	if backend == nil {
		return nil, storage.ErrStorageClosed
	}
	return &MailRepository{backend: backend}, nil
}

// Close is a no-op; the backend owns the database handle.
func (r *MailRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *MailRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddMailRecords stores one or more mail records, keyed by transport Id.
// Storing a record with an existing Id overwrites the previous version
// and refreshes the date index.
func (r *MailRepository) AddMailRecords(ctx context.Context, records ...*core.MailRecord) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			if err := core.ValidateMailRecord(record); err != nil {
				return err
			}

			key := makeMailRecordKey(record.Id)

			// Drop the stale date index entry when overwriting
			old, err := r.readMailRecord(tx, key)
			if err != nil {
				return err
			}
			if old != nil && !old.Date.Equal(record.Date) {
				if err := tx.Delete(makeMailDateKey(old.Date, old.Id)); err != nil {
					return err
				}
			}

			value := storage.MarshalMailRecord(record)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			dateKey := makeMailDateKey(record.Date, record.Id)
			if err := tx.Set(dateKey, []byte(record.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetMailRecord retrieves a single mail record by Id.
func (r *MailRepository) GetMailRecord(ctx context.Context, id string) (*core.MailRecord, error) {
	var result *core.MailRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeMailRecordKey(id)
		var err error
		result, err = r.readMailRecord(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetMailRecords retrieves multiple mail records by their Ids.
// Missing records are skipped without error.
func (r *MailRepository) GetMailRecords(ctx context.Context, ids ...string) ([]*core.MailRecord, error) {
	results := make([]*core.MailRecord, 0, len(ids))
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			record, err := r.readMailRecord(tx, makeMailRecordKey(id))
			if err != nil {
				return err
			}
			if record != nil {
				results = append(results, record)
			}
		}
		return nil
	}, false)
	return results, err
}

// GetRecentMailRecords retrieves up to limit records, most recent first.
func (r *MailRepository) GetRecentMailRecords(ctx context.Context, limit int) ([]*core.MailRecord, error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidQuery
	}

	var results []*core.MailRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(mailRecordDatePrefix + ":")
		opts.Reverse = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Reverse iteration starts from the key just past the prefix range
		seekKey := append([]byte(mailRecordDatePrefix+":"), 0xFF)
		for iter.Seek(seekKey); iter.Valid() && len(results) < limit; iter.Next() {
			var id string
			err := iter.Item().Value(func(val []byte) error {
				id = string(val)
				return nil
			})
			if err != nil {
				return err
			}

			record, err := r.readMailRecord(tx, makeMailRecordKey(id))
			if err != nil {
				return err
			}
			if record != nil {
				results = append(results, record)
			}
		}
		return nil
	}, false)
	return results, err
}

// GetMailRecordsByDateRange retrieves records where start <= Date < end.
func (r *MailRepository) GetMailRecordsByDateRange(ctx context.Context, start, end time.Time) ([]*core.MailRecord, error) {
	if end.Before(start) {
		return nil, storage.ErrInvalidQuery
	}

	var results []*core.MailRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(mailRecordDatePrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		startKey := makePartialMailDateKey(start)
		endKey := makePartialMailDateKey(end)

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if bytes.Compare(key, endKey) >= 0 {
				break
			}

			var id string
			err := iter.Item().Value(func(val []byte) error {
				id = string(val)
				return nil
			})
			if err != nil {
				return err
			}

			record, err := r.readMailRecord(tx, makeMailRecordKey(id))
			if err != nil {
				return err
			}
			if record != nil {
				results = append(results, record)
			}
		}
		return nil
	}, false)
	return results, err
}

// AllMailRecords retrieves every archived record.
func (r *MailRepository) AllMailRecords(ctx context.Context) ([]*core.MailRecord, error) {
	var results []*core.MailRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(mailRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var record *core.MailRecord
			err := iter.Item().Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalMailRecord(val)
				return err
			})
			if err != nil {
				return err
			}
			if record != nil {
				results = append(results, record)
			}
		}
		return nil
	}, false)
	return results, err
}

// CountMailRecords returns the number of archived records.
func (r *MailRepository) CountMailRecords(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(mailRecordPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// readMailRecord reads a record inside a transaction.
// Returns nil, nil when the key does not exist.
func (r *MailRepository) readMailRecord(tx *badger.Txn, key []byte) (*core.MailRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var record *core.MailRecord
	err = item.Value(func(val []byte) error {
		var err error
		record, err = storage.UnmarshalMailRecord(val)
		return err
	})
	return record, err
}
