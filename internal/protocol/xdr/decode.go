package xdr

import (
	"encoding/binary"
	"fmt"
	"io"
)

// DecodeOpaque decodes XDR variable-length opaque data: length + data +
// padding (RFC 4506 §4.10). max is the field's declared maximum length; a
// decoded length greater than max is rejected before the buffer is
// allocated, so a hostile peer cannot force an oversized allocation by
// lying about the length.
func DecodeOpaque(r io.Reader, max uint32) ([]byte, error) {
	var length uint32
	if err := binary.Read(r, binary.BigEndian, &length); err != nil {
		return nil, fmt.Errorf("read length: %w", err)
	}
	if length > max {
		return nil, fmt.Errorf("opaque length %d exceeds max %d", length, max)
	}

	data := make([]byte, length)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}

	// Padding is at most 3 bytes; a stack buffer avoids an io.CopyN
	// allocation for what is almost always a 0-3 byte skip.
	padding := (4 - (length % 4)) % 4
	if padding > 0 {
		var padBuf [3]byte
		if _, err := io.ReadFull(r, padBuf[:padding]); err != nil {
			return nil, fmt.Errorf("skip padding: %w", err)
		}
	}
	return data, nil
}

// DecodeString decodes an XDR string (RFC 4506 §4.11): identical layout to
// opaque data, interpreted as UTF-8. max is the field's declared maximum.
func DecodeString(r io.Reader, max uint32) (string, error) {
	data, err := DecodeOpaque(r, max)
	if err != nil {
		return "", fmt.Errorf("read string: %w", err)
	}
	return string(data), nil
}

// DecodeUint32 decodes an unsigned 32-bit integer, big-endian (RFC 4506 §4.1).
func DecodeUint32(r io.Reader) (uint32, error) {
	var v uint32
	if err := binary.Read(r, binary.BigEndian, &v); err != nil {
		return 0, fmt.Errorf("read uint32: %w", err)
	}
	return v, nil
}

// DecodeUint64 decodes an unsigned 64-bit integer, big-endian (RFC 4506 §4.5).
func DecodeUint64(r io.Reader) (uint64, error) {
	var v uint64
	if err := binary.Read(r, binary.BigEndian, &v); err != nil {
		return 0, fmt.Errorf("read uint64: %w", err)
	}
	return v, nil
}

// DecodeInt32 decodes a signed 32-bit integer, big-endian (RFC 4506 §4.1).
func DecodeInt32(r io.Reader) (int32, error) {
	var v int32
	if err := binary.Read(r, binary.BigEndian, &v); err != nil {
		return 0, fmt.Errorf("read int32: %w", err)
	}
	return v, nil
}

// DecodeBool decodes an XDR boolean: 0 is false, anything else is true
// (RFC 4506 §4.4).
func DecodeBool(r io.Reader) (bool, error) {
	v, err := DecodeUint32(r)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}
