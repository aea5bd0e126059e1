/*
Package bookdb implements a persistent store of Book records on top of a
key-value store (Bolt by default, SQLite or memory optionally).

We implement:

1. A durable counter minting book IDs. IDs start at 1 and are never reused,
even after the book is deleted.

2. A durable ordered map from book ID to the encoded book.

3. Create, read, update and delete operations (see Service) that keep the two
consistent: every operation runs in a single transaction, so a create either
both bumps the counter and stores the book, or does neither.

# Technical Details

**Regions.**
Storage is split into numbered regions, each one a bucket in the underlying
key-value store. Region 0 holds the counter, region 1 holds the books.

**Key encoding.**
Book keys are 8-byte big-endian IDs, so the byte order of keys matches the
numeric order of IDs.

**Counter encoding.**
The counter is an 8-byte big-endian value under key "id" in region 0.
A missing key reads as zero.

## Value encoding

1. Format version (uvarint).
2. Data size (uvarint).
3. Data: msgpack of the Book struct.
4. Checksum: xxhash64 of all preceding bytes (8 bytes, little-endian).

An encoded value never exceeds MaxBookSize bytes. Encoding a larger book is a
programming error and panics; we never truncate.
*/
package bookdb
