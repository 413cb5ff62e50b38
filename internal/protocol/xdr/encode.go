package xdr

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// WriteOpaque encodes opaque byte data in XDR format: length + data + padding.
//
// Per RFC 4506 Section 4.10 (Variable-Length Opaque Data):
// [length:uint32][data:bytes][padding:0-3 bytes]
//
// max bounds the length that may be written; callers pass the field's
// declared maximum (e.g. LenPathMax) so an oversized value is rejected
// before anything touches the wire.
func WriteOpaque(buf *bytes.Buffer, data []byte, max uint32) error {
	if uint32(len(data)) > max {
		return fmt.Errorf("opaque length %d exceeds max %d", len(data), max)
	}
	length := uint32(len(data))
	if err := binary.Write(buf, binary.BigEndian, length); err != nil {
		return fmt.Errorf("write opaque length: %w", err)
	}
	if _, err := buf.Write(data); err != nil {
		return fmt.Errorf("write opaque data: %w", err)
	}
	return WritePadding(buf, length)
}

// WriteString encodes a string in XDR format: length + data + padding, per
// RFC 4506 Section 4.11. max bounds the string's declared maximum length.
func WriteString(buf *bytes.Buffer, s string, max uint32) error {
	if err := WriteOpaque(buf, []byte(s), max); err != nil {
		return fmt.Errorf("write string: %w", err)
	}
	return nil
}

// WritePadding writes the 0-3 zero bytes needed to align dataLen to a
// 4-byte boundary, per RFC 4506 Section 4.11.
func WritePadding(buf *bytes.Buffer, dataLen uint32) error {
	padding := (4 - (dataLen % 4)) % 4
	if padding == 0 {
		return nil
	}
	var zero [3]byte
	if _, err := buf.Write(zero[:padding]); err != nil {
		return fmt.Errorf("write padding: %w", err)
	}
	return nil
}

// WriteUint32 encodes an unsigned 32-bit integer, big-endian (RFC 4506 §4.1).
func WriteUint32(buf *bytes.Buffer, v uint32) error {
	if err := binary.Write(buf, binary.BigEndian, v); err != nil {
		return fmt.Errorf("write uint32: %w", err)
	}
	return nil
}

// WriteUint64 encodes an unsigned 64-bit integer, big-endian (RFC 4506 §4.5).
func WriteUint64(buf *bytes.Buffer, v uint64) error {
	if err := binary.Write(buf, binary.BigEndian, v); err != nil {
		return fmt.Errorf("write uint64: %w", err)
	}
	return nil
}

// WriteInt32 encodes a signed 32-bit integer, big-endian (RFC 4506 §4.1).
func WriteInt32(buf *bytes.Buffer, v int32) error {
	if err := binary.Write(buf, binary.BigEndian, v); err != nil {
		return fmt.Errorf("write int32: %w", err)
	}
	return nil
}

// WriteBool encodes a boolean as a uint32, 0 = false, 1 = true (RFC 4506 §4.4).
func WriteBool(buf *bytes.Buffer, v bool) error {
	var val uint32
	if v {
		val = 1
	}
	return WriteUint32(buf, val)
}
