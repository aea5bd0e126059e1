package bookdb

import (
	"errors"
	"strings"
	"testing"
)

func TestTx_BeginUpdateRollsBackOnClose(t *testing.T) {
	forEachBackend(t, allBackends, func(t *testing.T, backend Backend) {
		db := setup(t, backend)

		tx := db.BeginUpdate()
		if !tx.IsWritable() {
			t.Fatalf("IsWritable() = false")
		}
		tx.PutBook(&Book{ID: 1, Title: "one"})
		tx.Close() // rollback

		db.Read(func(tx *Tx) {
			isnil(t, tx.GetBook(1))
		})
	})
}

func TestTx_WritePanicRollsBack(t *testing.T) {
	forEachBackend(t, allBackends, func(t *testing.T, backend Backend) {
		db := setup(t, backend)

		assertPanics(t, func() {
			db.Write(func(tx *Tx) {
				tx.PutBook(&Book{ID: 1, Title: "one"})
				panic("boom")
			})
		})

		db.Read(func(tx *Tx) {
			isnil(t, tx.GetBook(1))
		})

		// the writer lock has been released
		db.Write(func(tx *Tx) {
			tx.PutBook(&Book{ID: 2, Title: "two"})
		})
	})
}

func TestDBTx_ErrorRollsBack(t *testing.T) {
	db := setup(t, BackendBolt)

	wantErr := errors.New("boom")
	err := db.Tx(true, func(tx *Tx) error {
		tx.PutBook(&Book{ID: 1})
		return wantErr
	})
	if err != wantErr {
		t.Fatalf("db.Tx err = %v, wanted %v", err, wantErr)
	}
	db.Read(func(tx *Tx) {
		isnil(t, tx.GetBook(1))
	})

	err = db.Tx(true, func(tx *Tx) error {
		tx.PutBook(&Book{ID: 2})
		return nil
	})
	if err != nil {
		t.Fatalf("db.Tx err = %v, wanted nil", err)
	}
	err = db.Tx(false, func(tx *Tx) error {
		if tx.IsWritable() {
			t.Errorf("read tx IsWritable() = true")
		}
		isnonnil(t, tx.GetBook(2))
		return nil
	})
	if err != nil {
		t.Fatalf("db.Tx(read) err = %v", err)
	}
}

func TestDBTx_PanicBecomesError(t *testing.T) {
	db := setup(t, BackendMemory)

	err := db.Tx(true, func(tx *Tx) error {
		tx.PutBook(&Book{ID: 1})
		panic(ErrTooLarge)
	})
	if err == nil || !strings.Contains(err.Error(), "panic:") {
		t.Fatalf("db.Tx err = %v, wanted panic error", err)
	}
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("errors.Is(err, ErrTooLarge) = false for %v", err)
	}
	db.Read(func(tx *Tx) {
		isnil(t, tx.GetBook(1))
	})
}

func TestTx_CountsTransactions(t *testing.T) {
	db := setup(t, BackendMemory)
	reads, writes := db.ReadCount.Load(), db.WriteCount.Load()

	svc := NewService(db, ServiceOptions{})
	b := svc.AddBook(BookPayload{Title: "a"})
	_, _ = svc.GetBook(b.ID)
	_, _ = svc.GetBook(b.ID)

	deepEqual(t, db.ReadCount.Load()-reads, uint64(2))
	deepEqual(t, db.WriteCount.Load()-writes, uint64(1))
}

func TestTx_CloseOnManagedTxPanics(t *testing.T) {
	db := setup(t, BackendMemory)
	_ = db.Tx(false, func(tx *Tx) error {
		assertPanics(t, tx.Close)
		return nil
	})
}
