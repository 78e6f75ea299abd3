package receipt

import (
	"bytes"
	"errors"
	"io"

	"github.com/ledongthuc/pdf"
)

// ErrUnreadable means the uploaded bytes could not be parsed as a PDF. It is
// a user problem ("upload a valid receipt"), not a server fault.
var ErrUnreadable = errors.New("receipt is not a readable PDF")

type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText returns all embedded text of the PDF. The pdf package panics
// on some malformed inputs, so the whole parse runs behind a recover and
// every failure mode collapses into ErrUnreadable.
func (e *Extractor) ExtractText(b []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = ErrUnreadable
		}
	}()

	if len(b) == 0 {
		return "", ErrUnreadable
	}

	reader, err := pdf.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return "", ErrUnreadable
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", ErrUnreadable
	}

	out, err := io.ReadAll(plain)
	if err != nil {
		return "", ErrUnreadable
	}
	return string(out), nil
}
