// Package portmap is a client for the host's RFC 1057 ONC-RPC portmapper.
// The file-transfer server uses it to advertise and withdraw its
// (program, version) binding; this package does not implement a
// portmapper itself, only speaks to one, mirroring the teacher's own
// portmap server's procedure table from the other side of the wire.
package portmap

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/fltrhq/fltr/internal/protocol/rpc"
	"github.com/fltrhq/fltr/internal/protocol/xdr"
)

// Portmapper program/version (RFC 1057 §3).
const (
	Program uint32 = 100000
	Version uint32 = 2
)

// Procedure numbers under (Program, Version). CALLIT (5) has no client
// use here and is omitted, as the teacher's own dispatch table omits it
// server-side to avoid the DDoS-amplification it enables.
const (
	procNull    uint32 = 0
	procSet     uint32 = 1
	procUnset   uint32 = 2
	procGetport uint32 = 3
)

// IPProtoTCP is the protocol value to register for a TCP service.
const IPProtoTCP uint32 = 6

// Client talks to the portmapper at addr (typically "host:111") over TCP.
type Client struct {
	addr    string
	timeout time.Duration
}

// NewClient returns a portmapper client dialing addr with the given
// per-call timeout.
func NewClient(addr string, timeout time.Duration) *Client {
	return &Client{addr: addr, timeout: timeout}
}

// mapping is the RFC 1057 "mapping" struct: (program, version, protocol, port).
type mapping struct {
	Program  uint32
	Version  uint32
	Protocol uint32
	Port     uint32
}

func (m mapping) encode() []byte {
	var buf bytes.Buffer
	_ = xdr.WriteUint32(&buf, m.Program)
	_ = xdr.WriteUint32(&buf, m.Version)
	_ = xdr.WriteUint32(&buf, m.Protocol)
	_ = xdr.WriteUint32(&buf, m.Port)
	return buf.Bytes()
}

// Set registers (program, version, protocol, port) with the portmapper.
// Reports an error if the portmapper refused the mapping (e.g. it is
// already held by another process).
func (c *Client) Set(ctx context.Context, program, version, protocol, port uint32) error {
	ok, err := c.callBool(ctx, procSet, mapping{program, version, protocol, port})
	if err != nil {
		return fmt.Errorf("portmap set: %w", err)
	}
	if !ok {
		return fmt.Errorf("portmap set: mapping rejected")
	}
	return nil
}

// Unset withdraws a previously registered mapping. Unsetting a mapping
// that was never set is not an error.
func (c *Client) Unset(ctx context.Context, program, version uint32) error {
	_, err := c.callBool(ctx, procUnset, mapping{Program: program, Version: version})
	if err != nil {
		return fmt.Errorf("portmap unset: %w", err)
	}
	return nil
}

// GetPort asks the portmapper which port (program, version, protocol) is
// bound to. A zero result means the program is not registered.
func (c *Client) GetPort(ctx context.Context, program, version, protocol uint32) (uint32, error) {
	conn, err := c.dial(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = conn.Close() }()

	args := mapping{program, version, protocol, 0}.encode()
	result, err := c.call(conn, procGetport, args)
	if err != nil {
		return 0, fmt.Errorf("portmap getport: %w", err)
	}
	port, err := xdr.DecodeUint32(bytes.NewReader(result))
	if err != nil {
		return 0, fmt.Errorf("portmap getport: decode port: %w", err)
	}
	return port, nil
}

func (c *Client) callBool(ctx context.Context, proc uint32, m mapping) (bool, error) {
	conn, err := c.dial(ctx)
	if err != nil {
		return false, err
	}
	defer func() { _ = conn.Close() }()

	result, err := c.call(conn, proc, m.encode())
	if err != nil {
		return false, err
	}
	ok, err := xdr.DecodeBool(bytes.NewReader(result))
	if err != nil {
		return false, fmt.Errorf("decode bool result: %w", err)
	}
	return ok, nil
}

func (c *Client) dial(ctx context.Context) (net.Conn, error) {
	d := net.Dialer{Timeout: c.timeout}
	conn, err := d.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		return nil, fmt.Errorf("dial portmapper %s: %w", c.addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	} else if c.timeout > 0 {
		_ = conn.SetDeadline(time.Now().Add(c.timeout))
	}
	return conn, nil
}

func (c *Client) call(conn net.Conn, proc uint32, args []byte) ([]byte, error) {
	call := rpc.BuildCallMessage(1, Program, Version, proc, args)
	if err := rpc.WriteRecord(conn, call); err != nil {
		return nil, fmt.Errorf("write call: %w", err)
	}
	record, err := rpc.ReadRecord(conn)
	if err != nil {
		return nil, fmt.Errorf("read reply: %w", err)
	}
	reply, body, err := rpc.ReadReplyMessage(record)
	if err != nil {
		return nil, fmt.Errorf("parse reply: %w", err)
	}
	if !reply.Accepted {
		return nil, fmt.Errorf("call denied by portmapper")
	}
	if reply.AcceptStat != rpc.Success {
		return nil, fmt.Errorf("portmapper accept_stat=%d", reply.AcceptStat)
	}
	result, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read result body: %w", err)
	}
	return result, nil
}

// Ping issues a NULL call, used only to verify a portmapper is reachable
// before attempting a real registration.
func (c *Client) Ping(ctx context.Context) error {
	conn, err := c.dial(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()
	_, err = c.call(conn, procNull, nil)
	if err != nil {
		return fmt.Errorf("portmap ping: %w", err)
	}
	return nil
}
