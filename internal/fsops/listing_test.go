package fsops

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatListing_OneEntryPerLine(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("hi"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	content, err := FormatListing(dir)
	require.NoError(t, err)

	text := string(content)
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	assert.Len(t, lines, 5) // ".", "..", a.txt, b.txt, sub
	assert.True(t, strings.HasSuffix(text, "\n"))
	assert.Contains(t, text, "a.txt")
	assert.Contains(t, text, "b.txt")
	assert.Contains(t, text, "sub")
}

func TestFormatListing_IncludesDotAndDotDot(t *testing.T) {
	dir := t.TempDir()

	content, err := FormatListing(dir)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], " ."), "first line must name the \".\" entry: %q", lines[0])
	assert.True(t, strings.HasSuffix(lines[1], " .."), "second line must name the \"..\" entry: %q", lines[1])
}

func TestFormatListing_DirectoryTypeGlyph(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	content, err := FormatListing(dir)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	// lines[0] is ".", lines[1] is "..", lines[2] is "sub" — all three are directories.
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[2], "d"), "directory entry line must start with the 'd' type glyph: %q", lines[2])
}

func TestFormatListing_EmptyDirectory_StillNonEmptyContent(t *testing.T) {
	content, err := FormatListing(t.TempDir())
	require.NoError(t, err)
	assert.NotEmpty(t, content, "even an empty directory must list \".\" and \"..\"")
	assert.True(t, strings.HasSuffix(string(content), "\n"))
}

func TestFormatListing_NonexistentDirErrors(t *testing.T) {
	_, err := FormatListing(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, ErrReadDir)
}

func TestTypeAndPermString_RegularFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o640))
	info, err := os.Stat(path)
	require.NoError(t, err)

	s := typeAndPermString(info.Mode())
	assert.Len(t, s, 10)
	assert.Equal(t, byte('-'), s[0])
	assert.Equal(t, "rw-r-----", s[1:])
}

func TestPadLeftPadRight(t *testing.T) {
	assert.Equal(t, "  5", padLeft("5", 3))
	assert.Equal(t, "5", padLeft("5", 1))
	assert.Equal(t, "ab ", padRight("ab", 3))
	assert.Equal(t, "ab", padRight("ab", 2))
}
