package blobcodec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// Compress wraps uncompressed in a zlib stream using default settings, the
// wire format every performance-data blob column is stored in.
func Compress(uncompressed []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(uncompressed); err != nil {
		return nil, fmt.Errorf("zlib compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("zlib compress: %w", err)
	}
	return buf.Bytes(), nil
}

// Uncompress reverses Compress. A short or corrupt stream is reported as
// ErrMalformedBlob so callers can treat it the same as any other blob
// structure failure.
func Uncompress(compressed []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, malformed("zlib stream: %v", err)
	}
	defer func() { _ = r.Close() }()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, malformed("zlib stream: %v", err)
	}
	return out, nil
}
