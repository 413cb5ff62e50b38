package fsops

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// ErrReadDir wraps any failure to open/read the directory itself, as
// opposed to a failure formatting an individual entry. The selector
// checks errors.Is against it to choose between error 21 and error 22.
var ErrReadDir = errors.New("read directory")

// listingEntry is one directory entry carried between the measure and
// format passes.
type listingEntry struct {
	name    string
	info    os.FileInfo
	statErr error
}

// FormatListing produces the single human-readable text block for a
// directory, per the two-pass algorithm: pass one measures column
// widths, pass two formats each entry against those widths. Entries
// whose stat fails are skipped in pass one (so they don't skew the
// widths) but shown with their own error message in pass two, so the
// user still sees something for every entry.
//
// Like the original's readdir loop, the listing includes "." and ".."
// alongside the directory's real children, so even an otherwise-empty
// directory still yields non-empty, newline-terminated content.
func FormatListing(path string) ([]byte, error) {
	dirEntries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrReadDir, path, err)
	}

	entries := make([]listingEntry, 0, len(dirEntries)+2)
	dotInfo, statErr := os.Lstat(path)
	entries = append(entries, listingEntry{name: ".", info: dotInfo, statErr: statErr})
	dotdotInfo, statErr := os.Lstat(filepath.Dir(path))
	entries = append(entries, listingEntry{name: "..", info: dotdotInfo, statErr: statErr})
	for _, de := range dirEntries {
		info, statErr := de.Info()
		entries = append(entries, listingEntry{name: de.Name(), info: info, statErr: statErr})
	}

	maxUser, maxGroup, maxSize, sumNames, count := measure(entries)

	bufSize := (10+2+maxUser+1+maxGroup+1+maxSize+1+17+2)*count + sumNames + 1
	var b strings.Builder
	b.Grow(bufSize)

	for _, e := range entries {
		if e.statErr != nil {
			b.WriteString(e.statErr.Error())
			b.WriteByte('\n')
			continue
		}
		writeEntryLine(&b, e, maxUser, maxGroup, maxSize)
	}
	return []byte(b.String()), nil
}

// measure computes the column widths and aggregate sizes pass one needs.
// Entries whose stat failed are skipped entirely in this pass.
func measure(entries []listingEntry) (maxUser, maxGroup, maxSize, sumNames, count int) {
	for _, e := range entries {
		if e.statErr != nil {
			continue
		}
		count++
		sumNames += len(e.name)

		userName, groupName := ownerNames(e.info)
		if n := len(userName); n > maxUser {
			maxUser = n
		}
		if n := len(groupName); n > maxGroup {
			maxGroup = n
		}
		if n := len(strconv.FormatInt(e.info.Size(), 10)); n > maxSize {
			maxSize = n
		}
	}
	return
}

func writeEntryLine(b *strings.Builder, e listingEntry, maxUser, maxGroup, maxSize int) {
	userName, groupName := ownerNames(e.info)

	b.WriteString(typeAndPermString(e.info.Mode()))
	b.WriteString("  ")
	b.WriteString(padRight(userName, maxUser))
	b.WriteString("  ")
	b.WriteString(padRight(groupName, maxGroup))
	b.WriteByte(' ')
	b.WriteString(padLeft(strconv.FormatInt(e.info.Size(), 10), maxSize))
	b.WriteByte(' ')
	b.WriteString(e.info.ModTime().Format("Jan 02 15:04 2006"))
	b.WriteByte(' ')
	b.WriteString(e.name)
	b.WriteByte('\n')
}

// typeAndPermString renders the canonical 10-glyph Unix type+permission
// string: the entry type in column 0, then nine r/w/x/- bits.
func typeAndPermString(mode os.FileMode) string {
	var typeChar byte
	switch {
	case mode&os.ModeDir != 0:
		typeChar = 'd'
	case mode&os.ModeSymlink != 0:
		typeChar = 'l'
	case mode&os.ModeSocket != 0:
		typeChar = 's'
	case mode&os.ModeNamedPipe != 0:
		typeChar = 'p'
	case mode&os.ModeDevice != 0:
		if mode&os.ModeCharDevice != 0 {
			typeChar = 'c'
		} else {
			typeChar = 'b'
		}
	case mode.IsRegular():
		typeChar = '-'
	default:
		typeChar = '?'
	}

	perm := mode.Perm()
	bits := [9]byte{'-', '-', '-', '-', '-', '-', '-', '-', '-'}
	flags := [...]struct {
		mask os.FileMode
		idx  int
		c    byte
	}{
		{0o400, 0, 'r'}, {0o200, 1, 'w'}, {0o100, 2, 'x'},
		{0o040, 3, 'r'}, {0o020, 4, 'w'}, {0o010, 5, 'x'},
		{0o004, 6, 'r'}, {0o002, 7, 'w'}, {0o001, 8, 'x'},
	}
	for _, f := range flags {
		if perm&f.mask != 0 {
			bits[f.idx] = f.c
		}
	}
	return string(typeChar) + string(bits[:])
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// ownerNames resolves an entry's owning user and group names from its
// platform-specific stat info, falling back to the numeric ID as a
// string when the name cannot be looked up (deleted user/group, no
// nsswitch entry, etc).
func ownerNames(info os.FileInfo) (userName, groupName string) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return "?", "?"
	}
	uid := strconv.FormatUint(uint64(stat.Uid), 10)
	gid := strconv.FormatUint(uint64(stat.Gid), 10)

	if u, err := user.LookupId(uid); err == nil {
		userName = u.Username
	} else {
		userName = uid
	}
	if g, err := user.LookupGroupId(gid); err == nil {
		groupName = g.Name
	} else {
		groupName = gid
	}
	return userName, groupName
}
