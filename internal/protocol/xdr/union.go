package xdr

import (
	"bytes"
	"io"
)

// Encoder is implemented by types that can encode themselves to XDR.
type Encoder interface {
	Encode(buf *bytes.Buffer) error
}

// Decoder is implemented by types that can decode themselves from XDR.
type Decoder interface {
	Decode(r io.Reader) error
}

// EncodeUnionDiscriminant writes the uint32 discriminant of an XDR
// discriminated union (RFC 4506 §4.15). Alias over WriteUint32 so union
// encode code reads as what it is rather than a bare integer write.
func EncodeUnionDiscriminant(buf *bytes.Buffer, disc uint32) error {
	return WriteUint32(buf, disc)
}

// DecodeUnionDiscriminant reads the uint32 discriminant of an XDR
// discriminated union (RFC 4506 §4.15).
func DecodeUnionDiscriminant(r io.Reader) (uint32, error) {
	return DecodeUint32(r)
}
