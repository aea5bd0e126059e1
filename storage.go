package bookdb

import "strconv"

// region is a stable numeric identifier of a persistent storage area.
// Each region maps onto one bucket of the underlying storage.
type region uint8

const (
	counterRegion region = 0
	booksRegion   region = 1
)

var allRegions = []region{counterRegion, booksRegion}

func (r region) String() string {
	return strconv.Itoa(int(r))
}

func (r region) bucketName() string {
	return r.String()
}

// storage represents a key-value storage backend (Bolt, SQLite, in-memory).
type storage interface {
	// BeginTx starts a new transaction.
	BeginTx(writable bool) (storageTx, error)
	// Close closes the storage.
	Close() error
}

// storageTx represents a storage transaction.
type storageTx interface {
	// Writable returns true if this is a writable transaction.
	Writable() bool

	// Bucket returns a bucket, or nil if it doesn't exist.
	Bucket(name string) storageBucket

	// CreateBucket creates a bucket if it doesn't exist.
	CreateBucket(name string) (storageBucket, error)

	// Commit commits the transaction.
	Commit() error

	// Rollback aborts the transaction. It should be safe to call multiple times,
	// including after Commit.
	Rollback() error
}

// storageBucket represents a bucket (sorted key-value collection).
type storageBucket interface {
	// Get retrieves a value by key. Returns nil if not found.
	// The result is only valid until the end of the transaction.
	Get(key []byte) []byte

	// Put stores a key-value pair, replacing any existing value.
	Put(key, value []byte) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(key []byte) error

	// Stats returns storage-specific bucket statistics.
	// Backends that don't track allocation sizes may return zero values except KeyN.
	Stats() bucketStats
}

type bucketStats struct {
	KeyN      int
	DataInuse int64
	DataAlloc int64
}
