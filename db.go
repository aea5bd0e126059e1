package bookdb

import (
	"fmt"
	"log/slog"
	"sync/atomic"
)

type Backend string

const (
	BackendBolt   Backend = "bolt"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"

	DefaultBackend = BackendBolt
)

func ParseBackend(s string) (Backend, error) {
	switch b := Backend(s); b {
	case BackendBolt, BackendSQLite, BackendMemory:
		return b, nil
	case "":
		return DefaultBackend, nil
	default:
		return "", fmt.Errorf("unknown backend %q", s)
	}
}

type DB struct {
	store   storage
	backend Backend
	logger  *slog.Logger
	verbose bool

	ReadCount  atomic.Uint64
	WriteCount atomic.Uint64
}

type Options struct {
	Backend   Backend
	Logger    *slog.Logger
	Verbose   bool
	IsTesting bool
	MmapSize  int
}

// Open opens (creating if necessary) the store at path and makes sure every
// region exists. Path is ignored by BackendMemory.
func Open(path string, opt Options) (*DB, error) {
	if opt.Backend == "" {
		opt.Backend = DefaultBackend
	}
	if opt.Logger == nil {
		opt.Logger = slog.Default()
	}

	var store storage
	var err error
	switch opt.Backend {
	case BackendBolt:
		store, err = openBoltStorage(path, opt)
	case BackendSQLite:
		store, err = openSQLiteStorage(path, opt)
	case BackendMemory:
		store = newMemStorage()
	default:
		err = fmt.Errorf("unknown backend %q", opt.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("bookdb: %w", err)
	}

	db := &DB{
		store:   store,
		backend: opt.Backend,
		logger:  opt.Logger,
		verbose: opt.Verbose,
	}

	err = db.Tx(true, func(tx *Tx) error {
		for _, r := range allRegions {
			if _, err := tx.stx.CreateBucket(r.bucketName()); err != nil {
				return regionErrf(r, nil, err, "create")
			}
		}
		return nil
	})
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("bookdb: preparing regions: %w", err)
	}

	if db.verbose {
		db.logger.Debug("db: OPEN", "backend", db.backend, "path", path)
	}
	return db, nil
}

func (db *DB) Backend() Backend {
	return db.backend
}

func (db *DB) Close() {
	err := db.store.Close()
	if err != nil {
		panic(fmt.Errorf("bookdb: closing: %w", err))
	}
}
