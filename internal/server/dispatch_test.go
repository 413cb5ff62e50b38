package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fltrhq/fltr/internal/protocol/fltr"
)

func TestDispatcher_UploadCreatesFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "dst.txt")

	d := NewDispatcher()
	errInfo := d.Upload(fltr.FileInfo{Name: target, Content: []byte("hello, RPC world\n")})
	require.True(t, errInfo.Ok())

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "hello, RPC world\n", string(got))
}

func TestDispatcher_UploadRejectsExistingFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "dst.txt")
	require.NoError(t, os.WriteFile(target, []byte("existing"), 0o644))

	d := NewDispatcher()
	errInfo := d.Upload(fltr.FileInfo{Name: target, Content: []byte("new")})
	assert.False(t, errInfo.Ok())
	assert.Equal(t, ErrOpenFailed, errInfo.Num)
	assert.Contains(t, errInfo.Msg, "already exists")

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "existing", string(got))
}

func TestDispatcher_DownloadReadsFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o644))

	d := NewDispatcher()
	result := d.Download(src)
	require.True(t, result.Err.Ok())
	assert.Equal(t, fltr.TypeREG, result.File.Type)
	assert.Equal(t, "payload", string(result.File.Content))
}

func TestDispatcher_DownloadMissingFile(t *testing.T) {
	d := NewDispatcher()
	result := d.Download("/nonexistent/path/does/not/exist.txt")
	assert.False(t, result.Err.Ok())
	assert.Equal(t, ErrOpenFailed, result.Err.Num)
}

func TestDispatcher_PickDelegatesToSelector(t *testing.T) {
	dir := t.TempDir()
	d := NewDispatcher()

	result := d.Pick(fltr.PickedFile{Name: dir, Role: fltr.RoleSource})
	require.True(t, result.Err.Ok())
	assert.Equal(t, fltr.TypeDIR, result.File.Type)
}
