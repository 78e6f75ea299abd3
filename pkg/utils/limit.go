package utils

import (
	"errors"
	"io"
)

// ReadAllLimit drains r, failing once the payload exceeds max bytes. Reading
// one byte past the limit is what tells an exactly-max payload apart from an
// oversized one.
func ReadAllLimit(r io.Reader, max int64) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > max {
		return nil, errors.New("payload exceeds size limit")
	}
	return b, nil
}
