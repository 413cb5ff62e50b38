package rpc

import (
	"bytes"
	"fmt"
	"io"

	"github.com/fltrhq/fltr/internal/protocol/xdr"
)

// BuildCallMessage encodes a complete ONC-RPC call: header (with AUTH_NULL
// credential and verifier, the only flavor this protocol speaks) followed
// by the already-encoded procedure arguments.
func BuildCallMessage(xid, program, version, procedure uint32, args []byte) []byte {
	var buf bytes.Buffer
	_ = xdr.WriteUint32(&buf, xid)
	_ = xdr.WriteUint32(&buf, MsgCall)
	_ = xdr.WriteUint32(&buf, rpcVersion)
	_ = xdr.WriteUint32(&buf, program)
	_ = xdr.WriteUint32(&buf, version)
	_ = xdr.WriteUint32(&buf, procedure)
	_ = xdr.WriteUint32(&buf, AuthNull) // credential flavor
	_ = xdr.WriteUint32(&buf, 0)        // credential body length
	_ = xdr.WriteUint32(&buf, AuthNull) // verifier flavor
	_ = xdr.WriteUint32(&buf, 0)        // verifier body length
	buf.Write(args)
	return buf.Bytes()
}

// ReplyMessage is the parsed header of an ONC-RPC reply.
type ReplyMessage struct {
	XID         uint32
	Accepted    bool
	AcceptStat  uint32
	MismatchLow uint32
	MismatchHi  uint32
}

// ReadReplyMessage parses an ONC-RPC reply from record, returning the
// header and a reader positioned at the start of the result data (valid
// only when Accepted && AcceptStat == Success).
func ReadReplyMessage(record []byte) (*ReplyMessage, io.Reader, error) {
	r := bytes.NewReader(record)

	xid, err := xdr.DecodeUint32(r)
	if err != nil {
		return nil, nil, fmt.Errorf("read xid: %w", err)
	}
	msgType, err := xdr.DecodeUint32(r)
	if err != nil {
		return nil, nil, fmt.Errorf("read msg type: %w", err)
	}
	if msgType != MsgReply {
		return nil, nil, fmt.Errorf("not a reply message: msg_type=%d", msgType)
	}
	replyState, err := xdr.DecodeUint32(r)
	if err != nil {
		return nil, nil, fmt.Errorf("read reply state: %w", err)
	}
	if replyState == MsgDenied {
		return &ReplyMessage{XID: xid, Accepted: false}, r, nil
	}

	if _, err := xdr.DecodeUint32(r); err != nil { // verf flavor
		return nil, nil, fmt.Errorf("read verf flavor: %w", err)
	}
	if _, err := xdr.DecodeOpaque(r, 1<<16); err != nil { // verf body
		return nil, nil, fmt.Errorf("read verf body: %w", err)
	}
	acceptStat, err := xdr.DecodeUint32(r)
	if err != nil {
		return nil, nil, fmt.Errorf("read accept stat: %w", err)
	}

	reply := &ReplyMessage{XID: xid, Accepted: true, AcceptStat: acceptStat}
	if acceptStat == ProgMismatch {
		low, err := xdr.DecodeUint32(r)
		if err != nil {
			return nil, nil, fmt.Errorf("read mismatch low: %w", err)
		}
		high, err := xdr.DecodeUint32(r)
		if err != nil {
			return nil, nil, fmt.Errorf("read mismatch high: %w", err)
		}
		reply.MismatchLow, reply.MismatchHi = low, high
	}
	return reply, r, nil
}
