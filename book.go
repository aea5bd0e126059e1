package bookdb

import "time"

type Book struct {
	ID        uint64  `msgpack:"id" json:"id"`
	Title     string  `msgpack:"t" json:"title"`
	Author    string  `msgpack:"a" json:"author"`
	Summary   string  `msgpack:"s" json:"summary"`
	StoreName string  `msgpack:"sn" json:"store_name"`
	CreatedAt uint64  `msgpack:"c" json:"created_at"`
	UpdatedAt *uint64 `msgpack:"u,omitempty" json:"updated_at,omitempty"`
}

// BookPayload holds the caller-supplied, mutable fields of a Book.
type BookPayload struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	Summary   string `json:"summary"`
	StoreName string `json:"store_name"`
}

func (b *Book) Payload() BookPayload {
	return BookPayload{
		Title:     b.Title,
		Author:    b.Author,
		Summary:   b.Summary,
		StoreName: b.StoreName,
	}
}

func (b *Book) apply(p BookPayload) {
	b.Title = p.Title
	b.Author = p.Author
	b.Summary = p.Summary
	b.StoreName = p.StoreName
}

func (b *Book) Created() time.Time {
	return time.Unix(0, int64(b.CreatedAt))
}

// Updated returns the time of the last update, or zero time if the book
// has never been updated.
func (b *Book) Updated() time.Time {
	if b.UpdatedAt == nil {
		return time.Time{}
	}
	return time.Unix(0, int64(*b.UpdatedAt))
}

func (b *Book) IsUpdated() bool {
	return b.UpdatedAt != nil
}

func timestamp(t time.Time) uint64 {
	return uint64(t.UnixNano())
}
