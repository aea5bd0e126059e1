package bookdb

import "time"

type ServiceOptions struct {
	// Now is the time source for CreatedAt/UpdatedAt. Defaults to time.Now.
	Now func() time.Time
}

// Service implements the book operations on top of a DB. Create one per DB
// at startup and share it; it holds no state of its own besides the clock.
//
// Concurrent updates of the same book are last-write-wins.
type Service struct {
	db  *DB
	now func() time.Time
}

func NewService(db *DB, opt ServiceOptions) *Service {
	if opt.Now == nil {
		opt.Now = time.Now
	}
	return &Service{db: db, now: opt.Now}
}

func (s *Service) DB() *DB {
	return s.db
}

func (s *Service) GetBook(id uint64) (*Book, error) {
	var book *Book
	s.db.Read(func(tx *Tx) {
		book = tx.GetBook(id)
	})
	if book == nil {
		return nil, notFoundErrf(id, "a book with id=%d not found", id)
	}
	return book, nil
}

// AddBook stores a new book and returns it. It never fails for ordinary
// payloads; a payload too large for MaxBookSize panics (see ValidatePayload).
func (s *Service) AddBook(payload BookPayload) *Book {
	var book *Book
	s.db.Write(func(tx *Tx) {
		book = &Book{
			ID:        tx.NextID(),
			CreatedAt: timestamp(s.now()),
		}
		book.apply(payload)
		tx.PutBook(book)
	})
	return book
}

func (s *Service) UpdateBook(id uint64, payload BookPayload) (*Book, error) {
	var book *Book
	s.db.Write(func(tx *Tx) {
		book = tx.GetBook(id)
		if book == nil {
			return
		}
		book.apply(payload)
		updatedAt := timestamp(s.now())
		book.UpdatedAt = &updatedAt
		tx.PutBook(book)
	})
	if book == nil {
		return nil, notFoundErrf(id, "couldn't update a book with id=%d. book not found", id)
	}
	return book, nil
}

func (s *Service) DeleteBook(id uint64) (*Book, error) {
	var book *Book
	s.db.Write(func(tx *Tx) {
		book = tx.RemoveBook(id)
	})
	if book == nil {
		return nil, notFoundErrf(id, "couldn't delete a book with id=%d. book not found.", id)
	}
	return book, nil
}
