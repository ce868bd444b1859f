package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/cilin/core"
	"github.com/poiesic/cilin/storage"
)

// ThesaurusRepository implements storage.ThesaurusRepository for BadgerDB.
type ThesaurusRepository struct {
	backend *Backend
}

var _ storage.ThesaurusRepository = (*ThesaurusRepository)(nil)

// NewThesaurusRepository creates a new ThesaurusRepository.
func NewThesaurusRepository(backend *Backend) (storage.ThesaurusRepository, error) {
	if backend == nil || backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}
	return &ThesaurusRepository{backend: backend}, nil
}

// Close is a no-op; the backend is closed by its owner.
func (r *ThesaurusRepository) Close() error {
	return nil
}

func (r *ThesaurusRepository) check(ctx context.Context) error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	return ctx.Err()
}

// SaveEntries writes entries in one transaction. Large batches may fail
// with badger.ErrTxnTooBig; callers split them.
func (r *ThesaurusRepository) SaveEntries(ctx context.Context, entries ...core.Entry) error {
	if err := r.check(ctx); err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, entry := range entries {
			if err := tx.Set(makeEntryKey(entry.Code), storage.MarshalEntry(entry)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetEntry retrieves a single entry by code.
func (r *ThesaurusRepository) GetEntry(ctx context.Context, code core.Code) (core.Entry, error) {
	if err := r.check(ctx); err != nil {
		return core.Entry{}, err
	}
	var entry core.Entry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeEntryKey(code))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			entry, err = storage.UnmarshalEntry(code, val)
			return err
		})
	}, false)
	return entry, err
}

// Entries returns every stored entry ordered by code.
func (r *ThesaurusRepository) Entries(ctx context.Context) ([]core.Entry, error) {
	if err := r.check(ctx); err != nil {
		return nil, err
	}
	var entries []core.Entry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(entryPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := iter.Item()
			code := codeFromEntryKey(item.KeyCopy(nil))
			err := item.Value(func(val []byte) error {
				entry, err := storage.UnmarshalEntry(code, val)
				if err != nil {
					return err
				}
				entries = append(entries, entry)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// CountEntries returns the number of stored entries.
func (r *ThesaurusRepository) CountEntries(ctx context.Context) (int, error) {
	if err := r.check(ctx); err != nil {
		return 0, err
	}
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(entryPrefix)
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

// Fingerprint returns the recorded import fingerprint.
func (r *ThesaurusRepository) Fingerprint(ctx context.Context) (core.ID, error) {
	if err := r.check(ctx); err != nil {
		return 0, err
	}
	var id core.ID
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(fingerprintKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			id, err = storage.UnmarshalID(val)
			return err
		})
	}, false)
	return id, err
}

// SetFingerprint records the import fingerprint.
func (r *ThesaurusRepository) SetFingerprint(ctx context.Context, id core.ID) error {
	if err := r.check(ctx); err != nil {
		return err
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set([]byte(fingerprintKey), storage.MarshalID(id)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Clear removes every entry and the fingerprint.
func (r *ThesaurusRepository) Clear(ctx context.Context) error {
	if err := r.check(ctx); err != nil {
		return err
	}
	return r.backend.DropPrefix([]byte(entryPrefix), []byte(metaPrefix))
}
