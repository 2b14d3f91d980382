// Package novatel decodes fields of NovAtel OEM receiver logs: little-endian fields from
// binary logs, tokens from comma-delimited ASCII logs, and the packed status words that
// appear in both.  See the OEM7 Commands and Logs Reference Manual for field layouts.
//
// Nothing in this package keeps state between calls, so every function is safe to call
// from multiple goroutines.
package novatel

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrShortBuffer is matched (with errors.Is) by every *ShortBufferError.
var ErrShortBuffer = errors.New("short buffer")

// ShortBufferError is returned when a binary field is decoded from a slice that is shorter
// than the field.  It indicates a framing bug upstream, not bad data from the receiver.
type ShortBufferError struct {
	Op         string
	Need, Have int
}

func (e *ShortBufferError) Error() string {
	return fmt.Sprintf("novatel.%s: need %d bytes, got %d", e.Op, e.Need, e.Have)
}

func (e *ShortBufferError) Is(target error) bool { return target == ErrShortBuffer }

func need(op string, b []byte, n int) error {
	if len(b) < n {
		return &ShortBufferError{Op: op, Need: n, Have: len(b)}
	}
	return nil
}

// DecodeInt16 decodes a little-endian int16 from the first 2 bytes of b.
func DecodeInt16(b []byte) (int16, error) {
	if err := need("DecodeInt16", b, 2); err != nil {
		return 0, err
	}
	return int16(binary.LittleEndian.Uint16(b)), nil
}

// DecodeUint16 decodes a little-endian uint16 from the first 2 bytes of b.
func DecodeUint16(b []byte) (uint16, error) {
	if err := need("DecodeUint16", b, 2); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// DecodeInt32 decodes a little-endian int32 from the first 4 bytes of b.
func DecodeInt32(b []byte) (int32, error) {
	if err := need("DecodeInt32", b, 4); err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}

// DecodeUint32 decodes a little-endian uint32 from the first 4 bytes of b.
func DecodeUint32(b []byte) (uint32, error) {
	if err := need("DecodeUint32", b, 4); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// DecodeFloat decodes a little-endian IEEE-754 single from the first 4 bytes of b.  NaN and
// infinities are returned as-is.
func DecodeFloat(b []byte) (float32, error) {
	if err := need("DecodeFloat", b, 4); err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(b)), nil
}

// DecodeDouble decodes a little-endian IEEE-754 double from the first 8 bytes of b.
func DecodeDouble(b []byte) (float64, error) {
	if err := need("DecodeDouble", b, 8); err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
}
