package bookdb

import "encoding/binary"

func bookKey(id uint64) []byte {
	return binary.BigEndian.AppendUint64(make([]byte, 0, 8), id)
}

// GetBook returns a freshly decoded copy of the book, or nil if there is no
// book with this ID.
func (tx *Tx) GetBook(id uint64) *Book {
	key := bookKey(id)
	raw := tx.bucket(booksRegion).Get(key)
	if raw == nil {
		if tx.db.verbose {
			tx.db.logger.Debug("db: GET.NOTFOUND", "id", id)
		}
		return nil
	}
	book := tx.decodeStoredBook(key, raw)
	if tx.db.verbose {
		tx.db.logger.Debug("db: GET", "id", id, "size", len(raw), "title", book.Title)
	}
	return book
}

// PutBook stores the book under book.ID, replacing any existing book with the
// same ID.
func (tx *Tx) PutBook(book *Book) {
	if book == nil {
		panic("nil book")
	}
	key := bookKey(book.ID)
	raw := EncodeBook(book)
	err := tx.bucket(booksRegion).Put(key, raw)
	if err != nil {
		panic(regionErrf(booksRegion, key, err, "put"))
	}
	if tx.db.verbose {
		tx.db.logger.Debug("db: PUT", "id", book.ID, "size", len(raw), "title", book.Title)
	}
}

// RemoveBook deletes the book and returns what was stored, or nil if there
// was nothing to delete.
func (tx *Tx) RemoveBook(id uint64) *Book {
	key := bookKey(id)
	buck := tx.bucket(booksRegion)
	raw := buck.Get(key)
	if raw == nil {
		if tx.db.verbose {
			tx.db.logger.Debug("db: DELETE.NOOP", "id", id)
		}
		return nil
	}
	// decode before deleting: Bolt reuses the page memory raw points to
	book := tx.decodeStoredBook(key, raw)
	err := buck.Delete(key)
	if err != nil {
		panic(regionErrf(booksRegion, key, err, "delete"))
	}
	if tx.db.verbose {
		tx.db.logger.Debug("db: DELETE", "id", id)
	}
	return book
}

func (tx *Tx) decodeStoredBook(key, raw []byte) *Book {
	book, err := DecodeBook(raw)
	if err != nil {
		panic(regionErrf(booksRegion, key, err, "decoding book"))
	}
	if id := binary.BigEndian.Uint64(key); book.ID != id {
		panic(regionErrf(booksRegion, key, nil, "stored book has id=%d", book.ID))
	}
	return book
}
