// Package blobcodec encodes and decodes the fixed, big-endian, zlib-wrapped
// blob formats used by the performance-data columns (beat grid, quick cues,
// loops, waveform, track-data header).
package blobcodec

import (
	"encoding/binary"
	"fmt"
	"math"
)

// ErrMalformedBlob reports that a blob's length or internal structure does
// not match the format it claims to be.
type ErrMalformedBlob struct {
	Detail string
}

func (e *ErrMalformedBlob) Error() string {
	return fmt.Sprintf("malformed blob: %s", e.Detail)
}

func malformed(format string, args ...any) error {
	return &ErrMalformedBlob{Detail: fmt.Sprintf(format, args...)}
}

func requireBytes(buf []byte, offset, n int) error {
	if offset < 0 || n < 0 || offset+n > len(buf) {
		return malformed("need %d bytes at offset %d, have %d", n, offset, len(buf))
	}
	return nil
}

// PutInt32BE writes a big-endian signed 32-bit integer at offset and returns
// the offset immediately past it.
func PutInt32BE(buf []byte, offset int, v int32) int {
	binary.BigEndian.PutUint32(buf[offset:offset+4], uint32(v))
	return offset + 4
}

// Int32BE reads a big-endian signed 32-bit integer at offset, returning the
// value and the offset immediately past it.
func Int32BE(buf []byte, offset int) (int32, int, error) {
	if err := requireBytes(buf, offset, 4); err != nil {
		return 0, offset, err
	}
	return int32(binary.BigEndian.Uint32(buf[offset : offset+4])), offset + 4, nil
}

// PutInt64BE writes a big-endian signed 64-bit integer at offset and returns
// the offset immediately past it.
func PutInt64BE(buf []byte, offset int, v int64) int {
	binary.BigEndian.PutUint64(buf[offset:offset+8], uint64(v))
	return offset + 8
}

// Int64BE reads a big-endian signed 64-bit integer at offset, returning the
// value and the offset immediately past it.
func Int64BE(buf []byte, offset int) (int64, int, error) {
	if err := requireBytes(buf, offset, 8); err != nil {
		return 0, offset, err
	}
	return int64(binary.BigEndian.Uint64(buf[offset : offset+8])), offset + 8, nil
}

// PutFloat64BE writes a big-endian IEEE-754 double at offset and returns the
// offset immediately past it.
func PutFloat64BE(buf []byte, offset int, v float64) int {
	binary.BigEndian.PutUint64(buf[offset:offset+8], math.Float64bits(v))
	return offset + 8
}

// Float64BE reads a big-endian IEEE-754 double at offset, returning the
// value and the offset immediately past it.
func Float64BE(buf []byte, offset int) (float64, int, error) {
	if err := requireBytes(buf, offset, 8); err != nil {
		return 0, offset, err
	}
	return math.Float64frombits(binary.BigEndian.Uint64(buf[offset : offset+8])), offset + 8, nil
}

// PutUint8 writes a single byte at offset and returns the offset
// immediately past it.
func PutUint8(buf []byte, offset int, v uint8) int {
	buf[offset] = v
	return offset + 1
}

// Uint8 reads a single byte at offset, returning the value and the offset
// immediately past it.
func Uint8(buf []byte, offset int) (uint8, int, error) {
	if err := requireBytes(buf, offset, 1); err != nil {
		return 0, offset, err
	}
	return buf[offset], offset + 1, nil
}

// PutBytes copies src into buf at offset and returns the offset immediately
// past it.
func PutBytes(buf []byte, offset int, src []byte) int {
	copy(buf[offset:offset+len(src)], src)
	return offset + len(src)
}

// Bytes reads n bytes at offset, returning a copy and the offset
// immediately past them.
func Bytes(buf []byte, offset, n int) ([]byte, int, error) {
	if err := requireBytes(buf, offset, n); err != nil {
		return nil, offset, err
	}
	out := make([]byte, n)
	copy(out, buf[offset:offset+n])
	return out, offset + n, nil
}
