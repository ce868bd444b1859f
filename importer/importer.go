package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/cilin/core"
	"github.com/poiesic/cilin/storage"
	"github.com/poiesic/cilin/thesaurus"
)

const (
	DefaultBatchSize      = 1000
	DefaultMaxAttempts    = 3
	DefaultRetryBaseDelay = 50 * time.Millisecond
)

// Result summarizes an Import call.
type Result struct {
	Entries     int
	Words       int
	Batches     int
	Fingerprint core.ID
	Skipped     bool
	Elapsed     time.Duration
}

// Importer writes taxonomy snapshots to a repository.
type Importer struct {
	repo           storage.ThesaurusRepository
	batchSize      int
	maxAttempts    int
	retryBaseDelay time.Duration
	force          bool
	progress       io.Writer
	logger         *slog.Logger
}

// Option configures an Importer.
type Option func(*Importer) error

// WithBatchSize sets the number of entries written per transaction.
// Default is DefaultBatchSize.
func WithBatchSize(size int) Option {
	return func(im *Importer) error {
		if size < 1 {
			return ErrInvalidBatchSize
		}
		im.batchSize = size
		return nil
	}
}

// WithRetry sets the attempt count and base delay for conflicting writes.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(im *Importer) error {
		if maxAttempts < 1 {
			return ErrInvalidMaxAttempts
		}
		im.maxAttempts = maxAttempts
		im.retryBaseDelay = baseDelay
		return nil
	}
}

// WithForce rewrites the store even when the fingerprint is unchanged.
func WithForce(force bool) Option {
	return func(im *Importer) error {
		im.force = force
		return nil
	}
}

// WithProgress writes a progress line to w while importing.
// Default is no progress output.
func WithProgress(w io.Writer) Option {
	return func(im *Importer) error {
		im.progress = w
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(im *Importer) error {
		if logger == nil {
			logger = slog.Default()
		}
		im.logger = logger
		return nil
	}
}

// New creates an Importer.
func New(repo storage.ThesaurusRepository, opts ...Option) (*Importer, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}

	im := &Importer{
		repo:           repo,
		batchSize:      DefaultBatchSize,
		maxAttempts:    DefaultMaxAttempts,
		retryBaseDelay: DefaultRetryBaseDelay,
		logger:         slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(im); err != nil {
			return nil, err
		}
	}

	return im, nil
}

// ImportFile loads a taxonomy file and imports it.
func (im *Importer) ImportFile(ctx context.Context, path string, enc thesaurus.Encoding) (Result, error) {
	idx, err := thesaurus.LoadFile(path, enc)
	if err != nil {
		return Result{}, err
	}
	return im.Import(ctx, idx)
}

// Import replaces the stored snapshot with idx. If the stored fingerprint
// already equals idx's and force is off, nothing is written.
func (im *Importer) Import(ctx context.Context, idx *thesaurus.Index) (Result, error) {
	if idx == nil {
		return Result{}, ErrIndexRequired
	}
	start := time.Now()
	result := Result{Fingerprint: idx.Fingerprint()}

	stored, err := im.repo.Fingerprint(ctx)
	switch {
	case err == nil && stored == result.Fingerprint && !im.force:
		im.logger.Info("taxonomy unchanged, skipping import", "fingerprint", fmt.Sprintf("%016x", uint64(stored)))
		result.Skipped = true
		result.Elapsed = time.Since(start)
		return result, nil
	case err != nil && !errors.Is(err, storage.ErrNotFound):
		return result, err
	}

	if err := im.repo.Clear(ctx); err != nil {
		return result, fmt.Errorf("clearing store: %w", err)
	}

	entries := idx.Entries()
	var tracker *ProgressTracker
	if im.progress != nil {
		tracker = NewProgressTracker(im.progress, "entries", len(entries), im.batchSize)
		tracker.Start()
	}

	for lo := 0; lo < len(entries); lo += im.batchSize {
		hi := min(lo+im.batchSize, len(entries))
		batches, err := im.saveBatch(ctx, entries[lo:hi])
		if err != nil {
			return result, fmt.Errorf("saving entries %d-%d: %w", lo, hi-1, err)
		}
		result.Batches += batches
		if tracker != nil {
			tracker.Update(hi)
		}
	}
	if tracker != nil {
		tracker.Finish()
	}

	if err := im.repo.SetFingerprint(ctx, result.Fingerprint); err != nil {
		return result, fmt.Errorf("recording fingerprint: %w", err)
	}

	result.Entries = len(entries)
	result.Words = idx.TotalWordCount()
	result.Elapsed = time.Since(start)

	im.logger.Info("taxonomy imported",
		"entries", result.Entries,
		"words", result.Words,
		"batches", result.Batches,
		"elapsed", result.Elapsed)

	return result, nil
}

// saveBatch writes entries, halving the batch while the transaction is too
// big. Returns the number of transactions committed.
func (im *Importer) saveBatch(ctx context.Context, entries []core.Entry) (int, error) {
	err := RetryWithBackoff(ctx, im.logger, func() error {
		return im.repo.SaveEntries(ctx, entries...)
	}, isConflict, im.maxAttempts, im.retryBaseDelay)

	if errors.Is(err, badger.ErrTxnTooBig) && len(entries) > 1 {
		im.logger.Debug("batch too big, splitting", "size", len(entries))
		mid := len(entries) / 2
		left, err := im.saveBatch(ctx, entries[:mid])
		if err != nil {
			return left, err
		}
		right, err := im.saveBatch(ctx, entries[mid:])
		return left + right, err
	}
	if err != nil {
		return 0, err
	}
	return 1, nil
}

func isConflict(err error) bool {
	return errors.Is(err, badger.ErrConflict)
}

// Load rebuilds an index from the stored snapshot and checks it against the
// recorded fingerprint.
func Load(ctx context.Context, repo storage.ThesaurusRepository) (*thesaurus.Index, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}

	want, err := repo.Fingerprint(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrEmptyStore
	}
	if err != nil {
		return nil, err
	}

	entries, err := repo.Entries(ctx)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrEmptyStore
	}

	idx, err := thesaurus.FromEntries(entries)
	if err != nil {
		return nil, err
	}
	if got := idx.Fingerprint(); got != want {
		return nil, fmt.Errorf("%w: stored %016x, computed %016x", ErrFingerprintMismatch, uint64(want), uint64(got))
	}
	return idx, nil
}
