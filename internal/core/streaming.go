package core

// streaming.go wraps the source file reader so the CSV parser sees clean
// UTF-8 without loading the file twice:
//
//   - a leading UTF-8 BOM (added by Windows tools) is stripped, so the first
//     header is "ein" and not "\ufeffein"
//   - invalid UTF-8 sequences are replaced with U+FFFD
//   - bytes read are counted for the load log line
//
// Use WrapForStreaming to apply all transforms in the correct order.

import (
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// CountingReader wraps an io.Reader to track bytes read.
type CountingReader struct {
	reader    io.Reader
	BytesRead int64
}

// NewCountingReader creates a counting reader.
func NewCountingReader(r io.Reader) *CountingReader {
	return &CountingReader{reader: r}
}

// Read implements io.Reader.
func (r *CountingReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.BytesRead += int64(n)
	return n, err
}

// WrapForStreaming returns a reader that yields BOM-free, valid UTF-8 from r,
// and the counter tracking raw bytes consumed from r.
//
// Counting wraps the raw file so the count matches the file size; decoding
// runs on top of it.
func WrapForStreaming(r io.Reader) (io.Reader, *CountingReader) {
	counter := NewCountingReader(r)
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	return transform.NewReader(counter, decoder), counter
}
