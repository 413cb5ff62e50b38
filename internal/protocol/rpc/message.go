package rpc

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/fltrhq/fltr/internal/protocol/xdr"
)

// Message types (RFC 1057 §9).
const (
	MsgCall  uint32 = 0
	MsgReply uint32 = 1
)

// Reply states (RFC 1057 §9).
const (
	MsgAccepted uint32 = 0
	MsgDenied   uint32 = 1
)

// Accept statuses (RFC 1057 §9).
const (
	Success      uint32 = 0
	ProgUnavail  uint32 = 1
	ProgMismatch uint32 = 2
	ProcUnavail  uint32 = 3
	GarbageArgs  uint32 = 4
	SystemErr    uint32 = 5
)

// AuthNull is the only auth flavor this protocol accepts; authentication
// is an explicit non-goal, so credential and verifier bodies are read and
// discarded, never inspected.
const AuthNull uint32 = 0

const rpcVersion uint32 = 2

// CallMessage is the parsed header of an ONC-RPC call, excluding its
// procedure-specific arguments (which follow immediately after in the
// same record and are decoded by the caller once the procedure is known).
type CallMessage struct {
	XID       uint32
	Program   uint32
	Version   uint32
	Procedure uint32

	// headerLen is the number of bytes of record the call header
	// consumed; Args uses it to find where the arguments begin.
	headerLen int
}

// ReadCallMessage parses an ONC-RPC call header from the start of record.
// Credential and verifier bodies are skipped, not interpreted: this
// protocol only ever accepts AUTH_NULL.
func ReadCallMessage(record []byte) (*CallMessage, error) {
	r := bytes.NewReader(record)

	xid, err := xdr.DecodeUint32(r)
	if err != nil {
		return nil, fmt.Errorf("read xid: %w", err)
	}
	msgType, err := xdr.DecodeUint32(r)
	if err != nil {
		return nil, fmt.Errorf("read msg type: %w", err)
	}
	if msgType != MsgCall {
		return nil, fmt.Errorf("not a call message: msg_type=%d", msgType)
	}
	rpcvers, err := xdr.DecodeUint32(r)
	if err != nil {
		return nil, fmt.Errorf("read rpcvers: %w", err)
	}
	if rpcvers != rpcVersion {
		return nil, fmt.Errorf("unsupported rpc version %d", rpcvers)
	}
	prog, err := xdr.DecodeUint32(r)
	if err != nil {
		return nil, fmt.Errorf("read program: %w", err)
	}
	vers, err := xdr.DecodeUint32(r)
	if err != nil {
		return nil, fmt.Errorf("read version: %w", err)
	}
	proc, err := xdr.DecodeUint32(r)
	if err != nil {
		return nil, fmt.Errorf("read procedure: %w", err)
	}
	if err := skipAuth(r); err != nil {
		return nil, fmt.Errorf("read credential: %w", err)
	}
	if err := skipAuth(r); err != nil {
		return nil, fmt.Errorf("read verifier: %w", err)
	}

	return &CallMessage{
		XID:       xid,
		Program:   prog,
		Version:   vers,
		Procedure: proc,
		headerLen: len(record) - r.Len(),
	}, nil
}

// skipAuth reads and discards one opaque_auth structure (flavor + opaque body).
func skipAuth(r *bytes.Reader) error {
	if _, err := xdr.DecodeUint32(r); err != nil { // flavor
		return err
	}
	if _, err := xdr.DecodeOpaque(r, 1<<16); err != nil { // body
		return err
	}
	return nil
}

// Args returns the bytes of record following the call header: the
// procedure-specific argument encoding.
func (c *CallMessage) Args(record []byte) []byte {
	return record[c.headerLen:]
}

// BuildSuccessReply builds a complete ONC-RPC success reply body:
// xid + msg_type=REPLY + reply_state=ACCEPTED + verf(AUTH_NULL) + accept_stat=SUCCESS + data.
func BuildSuccessReply(xid uint32, data []byte) []byte {
	buf := make([]byte, 24+len(data))
	binary.BigEndian.PutUint32(buf[0:4], xid)
	binary.BigEndian.PutUint32(buf[4:8], MsgReply)
	binary.BigEndian.PutUint32(buf[8:12], MsgAccepted)
	binary.BigEndian.PutUint32(buf[12:16], AuthNull)
	binary.BigEndian.PutUint32(buf[16:20], 0)
	binary.BigEndian.PutUint32(buf[20:24], Success)
	copy(buf[24:], data)
	return buf
}

// BuildAcceptErrorReply builds an ONC-RPC accepted reply carrying a
// non-success accept_stat (PROG_UNAVAIL, PROC_UNAVAIL, GARBAGE_ARGS, or
// SYSTEM_ERR) and no result data.
func BuildAcceptErrorReply(xid uint32, acceptStat uint32) []byte {
	buf := make([]byte, 24)
	binary.BigEndian.PutUint32(buf[0:4], xid)
	binary.BigEndian.PutUint32(buf[4:8], MsgReply)
	binary.BigEndian.PutUint32(buf[8:12], MsgAccepted)
	binary.BigEndian.PutUint32(buf[12:16], AuthNull)
	binary.BigEndian.PutUint32(buf[16:20], 0)
	binary.BigEndian.PutUint32(buf[20:24], acceptStat)
	return buf
}

// BuildProgMismatchReply builds the PROG_MISMATCH accepted reply, which
// additionally carries the [low, high] range of supported versions.
func BuildProgMismatchReply(xid uint32, low, high uint32) []byte {
	buf := make([]byte, 32)
	binary.BigEndian.PutUint32(buf[0:4], xid)
	binary.BigEndian.PutUint32(buf[4:8], MsgReply)
	binary.BigEndian.PutUint32(buf[8:12], MsgAccepted)
	binary.BigEndian.PutUint32(buf[12:16], AuthNull)
	binary.BigEndian.PutUint32(buf[16:20], 0)
	binary.BigEndian.PutUint32(buf[20:24], ProgMismatch)
	binary.BigEndian.PutUint32(buf[24:28], low)
	binary.BigEndian.PutUint32(buf[28:32], high)
	return buf
}
