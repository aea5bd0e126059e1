package bookdb

import (
	"errors"
	"strings"
	"testing"
)

func setupService(t testing.TB, backend Backend) (*Service, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	return NewService(setup(t, backend), ServiceOptions{Now: clock.Now}), clock
}

func TestService_Lifecycle(t *testing.T) {
	forEachBackend(t, allBackends, func(t *testing.T, backend Backend) {
		svc, _ := setupService(t, backend)

		created := svc.AddBook(BookPayload{Title: "Dune", Author: "Herbert", Summary: "...", StoreName: "S1"})
		deepEqual(t, created.ID, uint64(1))
		deepEqual(t, created.Title, "Dune")
		deepEqual(t, created.Author, "Herbert")
		deepEqual(t, created.Summary, "...")
		deepEqual(t, created.StoreName, "S1")
		isnil(t, created.UpdatedAt)
		if created.CreatedAt == 0 {
			t.Fatalf("CreatedAt = 0, wanted a timestamp")
		}

		deepEqual(t, must(svc.GetBook(1)), created)

		updated := must(svc.UpdateBook(1, BookPayload{Title: "Dune (rev)", Author: "Herbert", Summary: "...", StoreName: "S1"}))
		deepEqual(t, updated.ID, uint64(1))
		deepEqual(t, updated.Title, "Dune (rev)")
		deepEqual(t, updated.CreatedAt, created.CreatedAt)
		isnonnil(t, updated.UpdatedAt)
		if *updated.UpdatedAt <= created.CreatedAt {
			t.Fatalf("UpdatedAt = %d, wanted > CreatedAt = %d", *updated.UpdatedAt, created.CreatedAt)
		}
		deepEqual(t, must(svc.GetBook(1)), updated)

		deleted := must(svc.DeleteBook(1))
		deepEqual(t, deleted, updated)

		_, err := svc.GetBook(1)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("GetBook(1) after delete err = %v, wanted ErrNotFound", err)
		}
		if !strings.Contains(err.Error(), "1") {
			t.Fatalf("err.Error() = %q, wanted it to mention the id", err.Error())
		}
	})
}

func TestService_GetMissing(t *testing.T) {
	svc, _ := setupService(t, BackendMemory)

	book, err := svc.GetBook(999)
	isnil(t, book)
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("GetBook(999) err = %T %v, wanted *NotFoundError", err, err)
	}
	deepEqual(t, nf.ID, uint64(999))
	deepEqual(t, nf.Msg, "a book with id=999 not found")
}

func TestService_UpdateMissing(t *testing.T) {
	forEachBackend(t, allBackends, func(t *testing.T, backend Backend) {
		svc, _ := setupService(t, backend)
		svc.AddBook(BookPayload{Title: "a"})

		book, err := svc.UpdateBook(2, BookPayload{Title: "b"})
		isnil(t, book)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("UpdateBook(2) err = %v, wanted ErrNotFound", err)
		}
		deepEqual(t, err.Error(), "couldn't update a book with id=2. book not found")

		// a failed update must not create the book or consume an id
		_, err = svc.GetBook(2)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("GetBook(2) err = %v, wanted ErrNotFound", err)
		}
		deepEqual(t, svc.AddBook(BookPayload{Title: "c"}).ID, uint64(2))
	})
}

func TestService_DeleteMissing(t *testing.T) {
	forEachBackend(t, allBackends, func(t *testing.T, backend Backend) {
		svc, _ := setupService(t, backend)
		b := svc.AddBook(BookPayload{Title: "a"})

		book, err := svc.DeleteBook(42)
		isnil(t, book)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("DeleteBook(42) err = %v, wanted ErrNotFound", err)
		}
		deepEqual(t, err.Error(), "couldn't delete a book with id=42. book not found.")
		deepEqual(t, must(svc.GetBook(b.ID)), b)

		_ = must(svc.DeleteBook(b.ID))
		_, err = svc.DeleteBook(b.ID)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("second DeleteBook(%d) err = %v, wanted ErrNotFound", b.ID, err)
		}
	})
}

func TestService_SequentialIDs(t *testing.T) {
	forEachBackend(t, allBackends, func(t *testing.T, backend Backend) {
		svc, _ := setupService(t, backend)

		const n = 25
		for i := 1; i <= n; i++ {
			b := svc.AddBook(BookPayload{Title: "t"})
			if b.ID != uint64(i) {
				t.Fatalf("create #%d got id=%d", i, b.ID)
			}
		}
	})
}

func TestService_IDsNotReused(t *testing.T) {
	svc, _ := setupService(t, BackendBolt)

	seen := make(map[uint64]bool)
	for i := 0; i < 10; i++ {
		b := svc.AddBook(BookPayload{Title: "t"})
		if seen[b.ID] {
			t.Fatalf("id %d handed out twice", b.ID)
		}
		seen[b.ID] = true
		if i%2 == 0 {
			_ = must(svc.DeleteBook(b.ID))
		}
	}
	deepEqual(t, svc.DB().Stats().Books, 5)
}

func TestService_UpdateStampsEveryTime(t *testing.T) {
	svc, _ := setupService(t, BackendMemory)
	b := svc.AddBook(BookPayload{Title: "a"})

	u1 := must(svc.UpdateBook(b.ID, BookPayload{Title: "b"}))
	u2 := must(svc.UpdateBook(b.ID, BookPayload{Title: "c", Author: "x"}))
	if *u2.UpdatedAt <= *u1.UpdatedAt {
		t.Fatalf("second UpdatedAt = %d, wanted > %d", *u2.UpdatedAt, *u1.UpdatedAt)
	}
	deepEqual(t, u2.Payload(), BookPayload{Title: "c", Author: "x"})
	deepEqual(t, u2.CreatedAt, b.CreatedAt)
}

func TestService_ReturnsCopies(t *testing.T) {
	svc, _ := setupService(t, BackendMemory)
	b := svc.AddBook(BookPayload{Title: "a"})

	got := must(svc.GetBook(b.ID))
	got.Title = "mutated"
	deepEqual(t, must(svc.GetBook(b.ID)).Title, "a")

	b.Title = "mutated too"
	deepEqual(t, must(svc.GetBook(b.ID)).Title, "a")
}

func TestService_Timestamps(t *testing.T) {
	clock := newFakeClock()
	svc := NewService(setup(t, BackendMemory), ServiceOptions{Now: clock.Now})

	b := svc.AddBook(BookPayload{Title: "a"})
	if !b.Created().Equal(clock.t) {
		t.Fatalf("Created() = %v, wanted %v", b.Created(), clock.t)
	}
	deepEqual(t, b.IsUpdated(), false)
	deepEqual(t, b.Updated().IsZero(), true)

	u := must(svc.UpdateBook(b.ID, BookPayload{Title: "b"}))
	if !u.Updated().Equal(clock.t) {
		t.Fatalf("Updated() = %v, wanted %v", u.Updated(), clock.t)
	}
	deepEqual(t, u.IsUpdated(), true)
}

func TestService_AddOversizePanicsWithoutSideEffects(t *testing.T) {
	svc, _ := setupService(t, BackendBolt)

	reason := assertPanics(t, func() {
		svc.AddBook(BookPayload{Summary: strings.Repeat("x", MaxBookSize)})
	})
	if err, ok := reason.(error); !ok || !errors.Is(err, ErrTooLarge) {
		t.Fatalf("panic = %v, wanted error wrapping ErrTooLarge", reason)
	}

	stats := svc.DB().Stats()
	deepEqual(t, stats.Books, 0)
	deepEqual(t, stats.LastID, uint64(0))
	deepEqual(t, svc.AddBook(BookPayload{Title: "ok"}).ID, uint64(1))
}
