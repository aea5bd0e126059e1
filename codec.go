package bookdb

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// MaxBookSize is the maximum size of an encoded book, envelope included.
const MaxBookSize = 1024

const (
	valueFormatVer1      = 1
	valueFormatVerLatest = valueFormatVer1

	checksumSize = 8
	minValueSize = 2 + checksumSize
)

// EncodeBook returns the stored representation of b.
//
// Panics if b cannot be encoded or if the result exceeds MaxBookSize; use
// ValidatePayload to check caller-supplied fields up front.
func EncodeBook(b *Book) []byte {
	raw, err := appendBookValue(make([]byte, 0, 256), b)
	if err != nil {
		panic(fmt.Errorf("failed to encode book %d using MsgPack: %w", b.ID, err))
	}
	if len(raw) > MaxBookSize {
		panic(fmt.Errorf("book %d encodes to %d bytes, limit is %d: %w", b.ID, len(raw), MaxBookSize, ErrTooLarge))
	}
	return raw
}

// DecodeBook parses a value produced by EncodeBook. Malformed input yields
// a *DataError.
func DecodeBook(data []byte) (*Book, error) {
	orig := data
	if len(data) < minValueSize {
		return nil, dataErrf(orig, 0, nil, "invalid value: at least %d bytes required", minValueSize)
	}

	n := len(data) - checksumSize
	sum := binary.LittleEndian.Uint64(data[n:])
	if actual := xxhash.Sum64(data[:n]); actual != sum {
		return nil, dataErrf(orig, n, nil, "invalid value: checksum %016x, expected %016x", actual, sum)
	}
	data = data[:n]

	ver, n := binary.Uvarint(data)
	if n <= 0 {
		return nil, dataErrf(orig, len(orig)-len(data), nil, "invalid value: bad format version")
	}
	if ver != valueFormatVerLatest {
		return nil, dataErrf(orig, len(orig)-len(data), nil, "invalid value: unsupported format version %d", ver)
	}
	data = data[n:]

	dataSize, n := binary.Uvarint(data)
	if n <= 0 {
		return nil, dataErrf(orig, len(orig)-len(data), nil, "invalid value: bad data size")
	}
	data = data[n:]
	if uint64(len(data)) != dataSize {
		return nil, dataErrf(orig, len(orig)-len(data), nil, "invalid value: got %d bytes of data, expected %d bytes", len(data), dataSize)
	}

	off := len(orig) - checksumSize - len(data)
	book := new(Book)
	dec := msgpack.GetDecoder()
	dec.Reset(bytes.NewReader(data))
	err := dec.Decode(book)
	msgpack.PutDecoder(dec)
	if err != nil {
		return nil, dataErrf(orig, off, err, "failed to decode msgpack into %T", book)
	}
	return book, nil
}

// MustDecodeBook is DecodeBook that panics on malformed input.
func MustDecodeBook(data []byte) *Book {
	return must(DecodeBook(data))
}

// ValidatePayload reports whether a book built from p would fit into
// MaxBookSize however large its ID and timestamps grow. Returns an error
// wrapping ErrTooLarge otherwise.
func ValidatePayload(p BookPayload) error {
	stamp := uint64(math.MaxUint64)
	worst := Book{
		ID:        math.MaxUint64,
		CreatedAt: math.MaxUint64,
		UpdatedAt: &stamp,
	}
	worst.apply(p)
	raw, err := appendBookValue(nil, &worst)
	if err != nil {
		return err
	}
	if len(raw) > MaxBookSize {
		return fmt.Errorf("book would encode to %d bytes, limit is %d: %w", len(raw), MaxBookSize, ErrTooLarge)
	}
	return nil
}

func appendBookValue(buf []byte, b *Book) ([]byte, error) {
	var body bytes.Buffer
	enc := msgpack.GetEncoder()
	enc.Reset(&body)
	enc.SetSortMapKeys(true)
	err := enc.Encode(b)
	msgpack.PutEncoder(enc)
	if err != nil {
		return buf, err
	}

	start := len(buf)
	buf = binary.AppendUvarint(buf, valueFormatVerLatest)
	buf = binary.AppendUvarint(buf, uint64(body.Len()))
	buf = append(buf, body.Bytes()...)
	buf = binary.LittleEndian.AppendUint64(buf, xxhash.Sum64(buf[start:]))
	return buf, nil
}
