package cache

import (
	"bytes"
	"io"
	"time"

	"github.com/pierrec/lz4/v3"
)

// Entry is one cached response: a status code, content type, and an
// lz4-compressed body. Compressing in-process trades a little CPU for a
// lot less memory/network when the backend is Redis or Memcached and the
// body is a multi-thousand-station JSON/XML payload.
type Entry struct {
	Status      int
	ContentType string
	Body        []byte // lz4-compressed
	StoredAt    time.Time
}

// NewEntry compresses body and wraps it into an Entry.
func NewEntry(status int, contentType string, body []byte) (*Entry, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(body); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return &Entry{
		Status:      status,
		ContentType: contentType,
		Body:        buf.Bytes(),
		StoredAt:    time.Now(),
	}, nil
}

// Decompress returns the original response body.
func (e *Entry) Decompress() ([]byte, error) {
	r := lz4.NewReader(bytes.NewReader(e.Body))
	return io.ReadAll(r)
}
