// Package rpc implements the ONC-RPC (Sun RPC, RFC 1057) message envelope
// and TCP record-mark framing shared by every procedure under the
// file-transfer program. It has no knowledge of fltr's own argument and
// result shapes; internal/protocol/fltr builds on top of it the same way
// internal/protocol/nfs builds on the teacher's portmap/rpc framing.
package rpc

import (
	"encoding/binary"
	"fmt"
	"io"
)

// MaxFragmentSize bounds a single TCP record-mark fragment. File content
// can be large, so this is generous compared to the teacher's 64KB
// portmap-message cap, but it still exists to stop a peer from claiming
// an unbounded fragment length and exhausting memory before the message
// body is even parsed.
const MaxFragmentSize = 64 * 1024 * 1024

// lastFragmentBit marks the final fragment of an RPC record (RFC 1057 §10).
const lastFragmentBit = 0x80000000

// ReadRecord reads one complete RPC record from r, reassembling fragments
// per the TCP record-marking convention: each fragment is prefixed by a
// 4-byte header whose high bit flags the last fragment and whose low 31
// bits give the fragment's byte length.
func ReadRecord(r io.Reader) ([]byte, error) {
	var record []byte
	for {
		var header [4]byte
		if _, err := io.ReadFull(r, header[:]); err != nil {
			return nil, fmt.Errorf("read fragment header: %w", err)
		}
		headerVal := binary.BigEndian.Uint32(header[:])
		last := headerVal&lastFragmentBit != 0
		length := headerVal &^ lastFragmentBit

		if length > MaxFragmentSize {
			return nil, fmt.Errorf("fragment length %d exceeds max %d", length, MaxFragmentSize)
		}

		fragment := make([]byte, length)
		if _, err := io.ReadFull(r, fragment); err != nil {
			return nil, fmt.Errorf("read fragment body: %w", err)
		}
		record = append(record, fragment...)

		if last {
			return record, nil
		}
	}
}

// WriteRecord writes body as a single, final RPC fragment. Every call in
// this protocol fits in one fragment, so the last-fragment bit is always
// set on the fragment this writes.
func WriteRecord(w io.Writer, body []byte) error {
	header := make([]byte, 4+len(body))
	binary.BigEndian.PutUint32(header[0:4], lastFragmentBit|uint32(len(body)))
	copy(header[4:], body)
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	return nil
}
