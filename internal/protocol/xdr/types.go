// Package xdr provides generic XDR (External Data Representation) encoding
// and decoding utilities per RFC 4506.
//
// XDR is the standard data serialization format used by Sun RPC protocols.
// This package is protocol-agnostic: it has no dependency on any fltr wire
// type, so it could be lifted into an unrelated RPC program unchanged.
//
// Key characteristics of XDR:
//   - big-endian byte order for all multi-byte integers
//   - 4-byte alignment for all data types
//   - variable-length data is preceded by a 4-byte length
//   - strings and opaque byte arrays are padded to 4-byte boundaries
//
// Reference: RFC 4506 - XDR: External Data Representation Standard
// https://tools.ietf.org/html/rfc4506
package xdr
