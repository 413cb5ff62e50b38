// Package client implements the RPC-client stub and request driver
// (C7): dialing the server via the host portmapper, calling the three
// procedures, and orchestrating upload/download/interactive-pick.
package client

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fltrhq/fltr/internal/portmap"
	"github.com/fltrhq/fltr/internal/protocol/fltr"
	"github.com/fltrhq/fltr/internal/protocol/rpc"
)

// DefaultCallTimeout is the per-call deadline applied when the caller
// does not override it (spec.md §4.1).
const DefaultCallTimeout = 25 * time.Second

// RPCClient is a thin stub over one TCP connection to an fltrd server.
// It satisfies internal/selector.Selector directly, so it can be handed
// to internal/traverse.Engine unchanged for remote picks.
type RPCClient struct {
	conn    net.Conn
	timeout time.Duration
	xid     uint32
	mu      sync.Mutex
}

// Dial resolves host's fltr server port via its ONC-RPC portmapper
// (spec.md §6) and opens a TCP connection to it. A host that already
// carries a port ("host:port") is dialed directly, without a portmap
// lookup. timeout bounds both the portmap lookup and the connection
// dial; callTimeout bounds each subsequent RPC call (0 uses
// DefaultCallTimeout).
func Dial(ctx context.Context, host string, timeout, callTimeout time.Duration) (*RPCClient, error) {
	if callTimeout <= 0 {
		callTimeout = DefaultCallTimeout
	}
	if _, _, err := net.SplitHostPort(host); err == nil {
		d := net.Dialer{Timeout: timeout}
		conn, err := d.DialContext(ctx, "tcp", host)
		if err != nil {
			return nil, fmt.Errorf("dial %s: %w", host, err)
		}
		return &RPCClient{conn: conn, timeout: callTimeout}, nil
	}
	pm := portmap.NewClient(net.JoinHostPort(host, "111"), timeout)
	port, err := pm.GetPort(ctx, fltr.FLTRProg, fltr.FLTRVers, portmap.IPProtoTCP)
	if err != nil {
		return nil, fmt.Errorf("resolve fltr service on %s: %w", host, err)
	}
	if port == 0 {
		return nil, fmt.Errorf("fltr service not registered on %s", host)
	}

	d := net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, "tcp", net.JoinHostPort(host, fmt.Sprintf("%d", port)))
	if err != nil {
		return nil, fmt.Errorf("dial %s:%d: %w", host, port, err)
	}
	return &RPCClient{conn: conn, timeout: callTimeout}, nil
}

// Close closes the underlying connection.
func (c *RPCClient) Close() error {
	return c.conn.Close()
}

// call performs one RPC: write the request, block for the reply, and
// return the raw result bytes. A deadline expiry or any transport error
// surfaces as a plain Go error — the caller maps that to spec.md §7's
// "null result, client-side diagnostic" outcome.
func (c *RPCClient) call(ctx context.Context, proc uint32, args []byte) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	xid := atomic.AddUint32(&c.xid, 1)

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := c.conn.SetDeadline(deadline); err != nil {
		return nil, fmt.Errorf("set deadline: %w", err)
	}

	msg := rpc.BuildCallMessage(xid, fltr.FLTRProg, fltr.FLTRVers, proc, args)
	if err := rpc.WriteRecord(c.conn, msg); err != nil {
		return nil, fmt.Errorf("write call: %w", err)
	}

	record, err := rpc.ReadRecord(c.conn)
	if err != nil {
		return nil, fmt.Errorf("read reply: %w", err)
	}

	reply, body, err := rpc.ReadReplyMessage(record)
	if err != nil {
		return nil, fmt.Errorf("parse reply: %w", err)
	}
	if !reply.Accepted {
		return nil, fmt.Errorf("call denied by server")
	}
	if reply.AcceptStat != rpc.Success {
		return nil, fmt.Errorf("server accept_stat=%d", reply.AcceptStat)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(body); err != nil {
		return nil, fmt.Errorf("read result body: %w", err)
	}
	return buf.Bytes(), nil
}

// Upload calls upload_file.
func (c *RPCClient) Upload(ctx context.Context, fi fltr.FileInfo) (fltr.ErrorInfo, error) {
	args, err := fltr.EncodeUploadArgs(fi)
	if err != nil {
		return fltr.ErrorInfo{}, fmt.Errorf("encode upload args: %w", err)
	}
	data, err := c.call(ctx, fltr.ProcUpload, args)
	if err != nil {
		return fltr.ErrorInfo{}, err
	}
	return fltr.DecodeUploadResult(bytes.NewReader(data))
}

// Download calls download_file.
func (c *RPCClient) Download(ctx context.Context, name string) (fltr.FileResult, error) {
	args, err := fltr.EncodeDownloadArgs(name)
	if err != nil {
		return fltr.FileResult{}, fmt.Errorf("encode download args: %w", err)
	}
	data, err := c.call(ctx, fltr.ProcDownload, args)
	if err != nil {
		return fltr.FileResult{}, err
	}
	return fltr.DecodeDownloadResult(bytes.NewReader(data))
}

// Pick calls pick_file.
func (c *RPCClient) Pick(ctx context.Context, picked fltr.PickedFile) (fltr.FileResult, error) {
	args, err := fltr.EncodePickArgs(picked)
	if err != nil {
		return fltr.FileResult{}, fmt.Errorf("encode pick args: %w", err)
	}
	data, err := c.call(ctx, fltr.ProcPick, args)
	if err != nil {
		return fltr.FileResult{}, err
	}
	return fltr.DecodePickResult(bytes.NewReader(data))
}

// Select implements selector.Selector by calling pick_file with the
// client's default call timeout, so an *RPCClient can be handed
// directly to internal/traverse.Engine as the remote leg's selector.
func (c *RPCClient) Select(picked fltr.PickedFile) (fltr.FileResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	return c.Pick(ctx, picked)
}
