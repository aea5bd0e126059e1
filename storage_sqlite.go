package bookdb

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS buckets (
	name TEXT NOT NULL PRIMARY KEY
);
CREATE TABLE IF NOT EXISTS kv (
	bucket TEXT NOT NULL,
	key    BLOB NOT NULL,
	value  BLOB NOT NULL,
	PRIMARY KEY (bucket, key)
) WITHOUT ROWID;
`

// sqliteStorage keeps all buckets in a single kv table keyed by
// (bucket, key). BLOB keys compare with memcmp, so keys within a bucket are
// ordered the same way Bolt orders them.
type sqliteStorage struct {
	db *sql.DB
}

func openSQLiteStorage(path string, opt Options) (*sqliteStorage, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time, and our transactions are
	// strictly sequential anyway.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	synchronous := "FULL"
	if opt.IsTesting {
		synchronous = "OFF"
	}
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = " + synchronous,
		"PRAGMA busy_timeout = 10000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite: failed to execute %q: %w", pragma, err)
		}
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: failed to apply schema: %w", err)
	}
	return &sqliteStorage{db: db}, nil
}

func (s *sqliteStorage) BeginTx(writable bool) (storageTx, error) {
	stx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	return &sqliteTx{stx: stx, writable: writable}, nil
}

func (s *sqliteStorage) Close() error {
	return s.db.Close()
}

type sqliteTx struct {
	stx      *sql.Tx
	writable bool
	done     bool
}

func (tx *sqliteTx) Writable() bool { return tx.writable }

func (tx *sqliteTx) Bucket(name string) storageBucket {
	var found int
	err := tx.stx.QueryRow("SELECT 1 FROM buckets WHERE name = ?", name).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		panic(fmt.Errorf("sqlite: bucket %q: %w", name, err))
	}
	return sqliteBucket{tx: tx, name: name}
}

func (tx *sqliteTx) CreateBucket(name string) (storageBucket, error) {
	if !tx.writable {
		return nil, fmt.Errorf("tx not writable")
	}
	_, err := tx.stx.Exec("INSERT OR IGNORE INTO buckets (name) VALUES (?)", name)
	if err != nil {
		return nil, err
	}
	return sqliteBucket{tx: tx, name: name}, nil
}

func (tx *sqliteTx) Commit() error {
	if tx.done {
		return sql.ErrTxDone
	}
	tx.done = true
	if !tx.writable {
		// nothing to commit, release the read snapshot
		return tx.stx.Rollback()
	}
	return tx.stx.Commit()
}

func (tx *sqliteTx) Rollback() error {
	if tx.done {
		return nil
	}
	tx.done = true
	return tx.stx.Rollback()
}

type sqliteBucket struct {
	tx   *sqliteTx
	name string
}

func (b sqliteBucket) Get(key []byte) []byte {
	var value []byte
	err := b.tx.stx.QueryRow("SELECT value FROM kv WHERE bucket = ? AND key = ?", b.name, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		panic(fmt.Errorf("sqlite: get %s/%x: %w", b.name, key, err))
	}
	return value
}

func (b sqliteBucket) Put(key, value []byte) error {
	if !b.tx.writable {
		return fmt.Errorf("tx not writable")
	}
	_, err := b.tx.stx.Exec("INSERT OR REPLACE INTO kv (bucket, key, value) VALUES (?, ?, ?)", b.name, key, value)
	return err
}

func (b sqliteBucket) Delete(key []byte) error {
	if !b.tx.writable {
		return fmt.Errorf("tx not writable")
	}
	_, err := b.tx.stx.Exec("DELETE FROM kv WHERE bucket = ? AND key = ?", b.name, key)
	return err
}

func (b sqliteBucket) Stats() bucketStats {
	var stats bucketStats
	err := b.tx.stx.QueryRow("SELECT COUNT(*), COALESCE(SUM(LENGTH(key) + LENGTH(value)), 0) FROM kv WHERE bucket = ?", b.name).Scan(&stats.KeyN, &stats.DataInuse)
	if err != nil {
		panic(fmt.Errorf("sqlite: stats %s: %w", b.name, err))
	}
	stats.DataAlloc = stats.DataInuse
	return stats
}
