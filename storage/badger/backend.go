package badger

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
)

// Backend wraps a BadgerDB instance and provides low-level operations.
type Backend struct {
	db     *badger.DB
	logger *slog.Logger
}

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

// Infof logs at debug level.
func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

type backendConfig struct {
	inMemory bool
	logger   *slog.Logger
}

// BackendOption configures OpenBackend.
type BackendOption func(*backendConfig)

// InMemory opens a database with no files on disk. The path is ignored.
func InMemory() BackendOption {
	return func(c *backendConfig) {
		c.inMemory = true
	}
}

// WithBackendLogger sets the logger for the backend and badger internals.
// Default is slog.Default().
func WithBackendLogger(logger *slog.Logger) BackendOption {
	return func(c *backendConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// OpenBackend opens a BadgerDB database at the specified directory,
// creating it if needed.
func OpenBackend(dirPath string, opts ...BackendOption) (*Backend, error) {
	cfg := backendConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	var bopts badger.Options
	if cfg.inMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := ensureDir(dirPath); err != nil {
			return nil, err
		}
		bopts = badger.DefaultOptions(dirPath)
	}

	bopts.Logger = &badgerLoggerAdapter{logger: cfg.logger.With("component", "badger")}
	bopts.Compression = options.None

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, err
	}

	cfg.logger.Debug("store opened", "path", dirPath, "in_memory", cfg.inMemory)

	return &Backend{
		db:     db,
		logger: cfg.logger,
	}, nil
}

func ensureDir(dirPath string) error {
	if dirPath == "" {
		return fmt.Errorf("store path required")
	}
	info, err := os.Stat(dirPath)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(dirPath, 0o755); err != nil {
			return err
		}
		return nil
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dirPath)
	}
	return nil
}

// Close closes the BadgerDB database.
func (b *Backend) Close() error {
	return b.db.Close()
}

// IsClosed returns true if the database is closed.
func (b *Backend) IsClosed() bool {
	return b.db.IsClosed()
}

// WithTx executes a function within a BadgerDB transaction.
// If isWrite is true, creates a read-write transaction that fn must commit.
// The transaction is automatically discarded when fn returns.
func (b *Backend) WithTx(fn func(tx *badger.Txn) error, isWrite bool) error {
	tx := b.db.NewTransaction(isWrite)
	defer tx.Discard()
	return fn(tx)
}

// DropPrefix removes every key starting with any of prefixes.
func (b *Backend) DropPrefix(prefixes ...[]byte) error {
	return b.db.DropPrefix(prefixes...)
}
