package client

import (
	"bytes"
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fltrhq/fltr/internal/protocol/fltr"
	"github.com/fltrhq/fltr/internal/server"
)

func startTestServer(t *testing.T) *server.Server {
	t.Helper()
	s := server.New(server.Config{
		ListenAddr:      "127.0.0.1:0",
		RegisterPortmap: false,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    5 * time.Second,
	})
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = s.Serve(ctx) }()
	t.Cleanup(func() {
		cancel()
		s.Stop()
	})
	for i := 0; i < 100 && s.Addr() == ""; i++ {
		time.Sleep(10 * time.Millisecond)
	}
	require.NotEmpty(t, s.Addr())
	return s
}

// dialDirect bypasses portmapper discovery (the test server doesn't
// register with one) by building the RPCClient against the server's
// already-known address.
func dialDirect(t *testing.T, addr string) *RPCClient {
	t.Helper()
	conn, err := net.DialTimeout("tcp", addr, 2*time.Second)
	require.NoError(t, err)
	return &RPCClient{conn: conn, timeout: 5 * time.Second}
}

func TestRPCClient_UploadDownloadRoundTrip(t *testing.T) {
	s := startTestServer(t)
	c := dialDirect(t, s.Addr())
	defer func() { _ = c.Close() }()

	dir := t.TempDir()
	dst := filepath.Join(dir, "dst.txt")
	ctx := context.Background()

	errInfo, err := c.Upload(ctx, fltr.FileInfo{Name: dst, Content: []byte("hello, RPC world\n")})
	require.NoError(t, err)
	require.True(t, errInfo.Ok())

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "hello, RPC world\n", string(got))

	result, err := c.Download(ctx, dst)
	require.NoError(t, err)
	require.True(t, result.Err.Ok())
	assert.Equal(t, "hello, RPC world\n", string(result.File.Content))
}

func TestRPCClient_SelectSatisfiesSelectorInterface(t *testing.T) {
	s := startTestServer(t)
	c := dialDirect(t, s.Addr())
	defer func() { _ = c.Close() }()

	dir := t.TempDir()
	result, err := c.Select(fltr.PickedFile{Name: dir, Role: fltr.RoleSource})
	require.NoError(t, err)
	require.True(t, result.Err.Ok())
	assert.Equal(t, fltr.TypeDIR, result.File.Type)
}

func TestRPCClient_PickMissingTargetSucceeds(t *testing.T) {
	s := startTestServer(t)
	c := dialDirect(t, s.Addr())
	defer func() { _ = c.Close() }()

	dir := t.TempDir()
	missing := filepath.Join(dir, "does-not-exist")
	result, err := c.Pick(context.Background(), fltr.PickedFile{Name: missing, Role: fltr.RoleTarget})
	require.NoError(t, err)
	require.True(t, result.Err.Ok())
	assert.Equal(t, fltr.TypeNEX, result.File.Type)
	assert.Equal(t, missing, result.File.Name)
}

func TestRPCClient_UploadExistingTargetReturnsServerError(t *testing.T) {
	s := startTestServer(t)
	c := dialDirect(t, s.Addr())
	defer func() { _ = c.Close() }()

	dir := t.TempDir()
	dst := filepath.Join(dir, "dst.txt")
	require.NoError(t, os.WriteFile(dst, []byte("existing"), 0o644))

	errInfo, err := c.Upload(context.Background(), fltr.FileInfo{Name: dst, Content: []byte("new")})
	require.NoError(t, err)
	assert.False(t, errInfo.Ok())
	assert.Contains(t, errInfo.Msg, "already exists")
}

func TestRPCClient_EncodeDecodeSanity(t *testing.T) {
	var buf bytes.Buffer
	fi := fltr.FileInfo{Name: "/tmp/x", Type: fltr.TypeREG, Content: []byte("abc")}
	require.NoError(t, fi.Encode(&buf))
	got, err := fltr.DecodeFileInfo(bytes.NewReader(buf.Bytes()), fltr.MaxContentSize)
	require.NoError(t, err)
	assert.Equal(t, fi, got)
}
