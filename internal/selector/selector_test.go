package selector

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fltrhq/fltr/internal/protocol/fltr"
)

// Selector role invariants, spec.md §8.

func TestSelect_RegularFileAsSource_Succeeds(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "src.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello, RPC world\n"), 0o644))

	result := Select(fltr.PickedFile{Name: path, Role: fltr.RoleSource})
	assert.True(t, result.Err.Ok())
	assert.Equal(t, fltr.TypeREG, result.File.Type)
}

func TestSelect_RegularFileAsTarget_Fails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dst.txt")
	require.NoError(t, os.WriteFile(path, []byte("existing"), 0o644))

	result := Select(fltr.PickedFile{Name: path, Role: fltr.RoleTarget})
	assert.Equal(t, ErrWrongTypeReg, result.Err.Num)
}

func TestSelect_NonexistentAsTarget_SucceedsVerbatim(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.txt")

	result := Select(fltr.PickedFile{Name: path, Role: fltr.RoleTarget})
	assert.True(t, result.Err.Ok())
	assert.Equal(t, fltr.TypeNEX, result.File.Type)
	assert.Equal(t, path, result.File.Name, "NEX name must be the literal input, not resolved")
}

func TestSelect_NonexistentAsSource_Fails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.txt")

	result := Select(fltr.PickedFile{Name: path, Role: fltr.RoleSource})
	assert.Equal(t, ErrSourceNotFound, result.Err.Num)
}

func TestSelect_Directory_ListingNonEmptyAndNewlineTerminated(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	for _, role := range []fltr.PickRole{fltr.RoleSource, fltr.RoleTarget} {
		result := Select(fltr.PickedFile{Name: dir, Role: role})
		assert.True(t, result.Err.Ok())
		assert.Equal(t, fltr.TypeDIR, result.File.Type)
		require.NotEmpty(t, result.File.Content)
		assert.Equal(t, byte('\n'), result.File.Content[len(result.File.Content)-1])
	}
}

func TestSelect_Directory_ResolvesToAbsolutePath(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	rel, err := filepath.Rel(cwd, dir)
	if err != nil {
		t.Skip("temp dir not relocatable to a relative path on this platform")
	}

	result := Select(fltr.PickedFile{Name: rel, Role: fltr.RoleSource})
	assert.True(t, result.Err.Ok())
	assert.True(t, filepath.IsAbs(result.File.Name))
}

func TestSelect_Other_Unsupported(t *testing.T) {
	dir := t.TempDir()
	fifo := filepath.Join(dir, "pipe")
	if err := syscall.Mkfifo(fifo, 0o644); err != nil {
		t.Skipf("named pipes unsupported on this platform: %v", err)
	}

	result := Select(fltr.PickedFile{Name: fifo, Role: fltr.RoleSource})
	assert.Equal(t, ErrUnsupportedOth, result.Err.Num)
}

func TestLocalFunc_AdaptsSelect(t *testing.T) {
	dir := t.TempDir()
	var lf LocalFunc = Select
	result, err := lf.Select(fltr.PickedFile{Name: dir, Role: fltr.RoleSource})
	require.NoError(t, err)
	assert.True(t, result.Err.Ok())
}
