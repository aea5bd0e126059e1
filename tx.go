package bookdb

import (
	"fmt"
	"runtime/debug"
)

type Tx struct {
	db      *DB
	stx     storageTx
	managed bool
}

func (db *DB) newTx(stx storageTx, managed bool) *Tx {
	return &Tx{
		db:      db,
		stx:     stx,
		managed: managed,
	}
}

func (tx *Tx) DB() *DB {
	return tx.db
}

// Tx runs f in a transaction. A writable transaction commits if f returns
// nil and rolls back otherwise. A panic inside f rolls back and comes out as
// an error carrying the stack.
func (db *DB) Tx(writable bool, f func(tx *Tx) error) error {
	stx, err := db.store.BeginTx(writable)
	if err != nil {
		return fmt.Errorf("bookdb: begin: %w", err)
	}
	tx := db.newTx(stx, true)
	defer tx.rollback()
	db.countTx(writable)

	err = safelyCall(f, tx)
	if err != nil || !writable {
		return err
	}
	if err := stx.Commit(); err != nil {
		return fmt.Errorf("bookdb: commit: %w", err)
	}
	return nil
}

type panicked struct {
	reason interface{}
	stack  string
}

func (p panicked) Error() string {
	return fmt.Sprintf("panic: %v\n\n%s", p.reason, p.stack)
}

func (p panicked) Unwrap() error {
	err, _ := p.reason.(error)
	return err
}

func safelyCall(fn func(*Tx) error, tx *Tx) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = panicked{p, string(debug.Stack())}
		}
	}()
	return fn(tx)
}

func (db *DB) BeginRead() *Tx {
	stx, err := db.store.BeginTx(false)
	if err != nil {
		panic(fmt.Errorf("failed to start reading: %w", err))
	}
	db.countTx(false)
	return db.newTx(stx, false)
}

func (db *DB) BeginUpdate() *Tx {
	stx, err := db.store.BeginTx(true)
	if err != nil {
		panic(fmt.Errorf("failed to start writing: %w", err))
	}
	db.countTx(true)
	return db.newTx(stx, false)
}

func (db *DB) Read(f func(tx *Tx)) {
	tx := db.BeginRead()
	defer tx.Close()
	f(tx)
}

// Write runs f in a writable transaction and commits it. If f panics, the
// transaction is rolled back and the panic propagates.
func (db *DB) Write(f func(tx *Tx)) {
	tx := db.BeginUpdate()
	defer tx.Close()
	f(tx)
	err := tx.Commit()
	if err != nil {
		panic(fmt.Errorf("commit: %w", err))
	}
}

func (db *DB) countTx(writable bool) {
	if writable {
		db.WriteCount.Add(1)
	} else {
		db.ReadCount.Add(1)
	}
}

func (tx *Tx) IsWritable() bool {
	return tx.stx.Writable()
}

func (tx *Tx) Commit() error {
	return tx.stx.Commit()
}

// Close rolls back the transaction unless it has been committed.
// Must not be called on transactions managed by DB.Tx.
func (tx *Tx) Close() {
	if tx.managed {
		panic("Close called on a managed tx")
	}
	tx.rollback()
}

func (tx *Tx) rollback() {
	err := tx.stx.Rollback()
	if err != nil {
		panic(err) // not expected to happen, Rollback after Commit is a no-op
	}
}

func (tx *Tx) bucket(r region) storageBucket {
	b := tx.stx.Bucket(r.bucketName())
	if b == nil {
		panic(regionErrf(r, nil, nil, "missing bucket"))
	}
	return b
}
