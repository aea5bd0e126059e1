package bookdb

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is matched (via errors.Is) by every *NotFoundError.
	ErrNotFound = errors.New("not found")

	// ErrTooLarge is wrapped by encoding failures caused by MaxBookSize.
	ErrTooLarge = errors.New("book too large")
)

// NotFoundError is the only error kind reported to callers of Service:
// the requested book does not exist (never did, or was deleted).
type NotFoundError struct {
	ID  uint64
	Msg string
}

func notFoundErrf(id uint64, format string, args ...any) error {
	return &NotFoundError{id, fmt.Sprintf(format, args...)}
}

func (e *NotFoundError) Error() string {
	return e.Msg
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

type DataError struct {
	Data []byte
	Off  int
	Err  error
	Msg  string
}

func dataErrf(data []byte, off int, err error, format string, args ...any) error {
	return &DataError{data, off, err, fmt.Sprintf(format, args...)}
}

func (e *DataError) Unwrap() error {
	return e.Err
}

func (e *DataError) Error() string {
	const prefixLen = 64
	const suffixLen = 32
	n := len(e.Data)
	var data string
	if n <= prefixLen+suffixLen {
		data = fmt.Sprintf("(%d) %x", n, e.Data)
	} else {
		data = fmt.Sprintf("(%d) %x...%x", n, e.Data[:prefixLen], e.Data[n-suffixLen:])
	}
	if e.Err != nil {
		return fmt.Sprintf("%s at offset %d: %v: %s", e.Msg, e.Off, e.Err, data)
	}
	return fmt.Sprintf("%s at offset %d: %s", e.Msg, e.Off, data)
}

// RegionError describes a storage fault in a particular region, optionally
// at a particular key. Raised via panic; these are never expected.
type RegionError struct {
	Region region
	Key    []byte
	Msg    string
	Err    error
}

func regionErrf(r region, key []byte, err error, format string, args ...any) error {
	return &RegionError{r, key, fmt.Sprintf(format, args...), err}
}

func (e *RegionError) Unwrap() error {
	return e.Err
}

func (e *RegionError) Error() string {
	var buf strings.Builder
	buf.WriteString("region ")
	buf.WriteString(e.Region.String())
	if e.Key != nil {
		buf.WriteByte('/')
		buf.WriteString(hexstr(e.Key))
	}
	if e.Msg != "" {
		buf.WriteString(": ")
		buf.WriteString(e.Msg)
	}
	if e.Err != nil {
		buf.WriteString(": ")
		buf.WriteString(e.Err.Error())
	}
	return buf.String()
}
