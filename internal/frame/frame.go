// Package frame implements the length-prefixed message framing spoken by the
// store's JSON API listener: a 4-byte little-endian payload length followed
// by the payload bytes.
package frame

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	apperrors "passstore/cli/internal/errors"
)

// PrefixLen is the size of the length prefix in bytes.
const PrefixLen = 4

// Encode returns payload with its length prefix.
func Encode(payload []byte) ([]byte, error) {
	if uint64(len(payload)) > math.MaxUint32 {
		return nil, apperrors.New(apperrors.IO, fmt.Sprintf("frame: payload too large: %d bytes", len(payload)))
	}
	buf := make([]byte, PrefixLen+len(payload))
	binary.LittleEndian.PutUint32(buf[:PrefixLen], uint32(len(payload)))
	copy(buf[PrefixLen:], payload)
	return buf, nil
}

// Write writes one framed message to w in a single call.
func Write(w io.Writer, payload []byte) error {
	buf, err := Encode(payload)
	if err != nil {
		return err
	}
	_, err = w.Write(buf)
	return err
}

// Skip drops the length prefix the listener mirrors onto its output.
// The prefix value is not checked against the remaining bytes.
func Skip(out []byte) ([]byte, error) {
	if len(out) < PrefixLen {
		return nil, apperrors.New(apperrors.JSON, fmt.Sprintf("frame: short output: %d bytes", len(out)))
	}
	return out[PrefixLen:], nil
}

// Decode reads one framed message and returns exactly the payload its
// prefix announces.
func Decode(msg []byte) ([]byte, error) {
	if len(msg) < PrefixLen {
		return nil, apperrors.New(apperrors.JSON, fmt.Sprintf("frame: short header: %d bytes", len(msg)))
	}
	n := binary.LittleEndian.Uint32(msg[:PrefixLen])
	if uint64(len(msg)-PrefixLen) < uint64(n) {
		return nil, apperrors.New(apperrors.JSON, fmt.Sprintf("frame: payload truncated: want %d bytes, have %d", n, len(msg)-PrefixLen))
	}
	return msg[PrefixLen : PrefixLen+int(n)], nil
}
