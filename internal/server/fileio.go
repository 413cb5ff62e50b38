package server

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/fltrhq/fltr/internal/protocol/fltr"
)

// Error numbers reserved for file write (spec.md §7, 51-52) and
// open/read/close (60-64). These are server-side collaborators spec.md
// §1 treats as external at the interface level; their numbering is not,
// since it crosses the wire in ErrorInfo.
const (
	ErrWriteIO     int32 = 51
	ErrWriteShort  int32 = 52
	ErrOpenFailed  int32 = 60
	ErrReadAlloc   int32 = 61
	ErrReadIO      int32 = 62
	ErrReadShort   int32 = 63
	ErrCloseFailed int32 = 64
)

// saveFileContent writes content to path with exclusive-create
// semantics (spec.md §5's "Shared-resource policy": an existing file at
// path is left untouched and the call fails with ErrOpenFailed).
func saveFileContent(path string, content []byte) fltr.ErrorInfo {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fltr.ErrorInfo{Num: ErrOpenFailed, Msg: "target already exists: " + err.Error()}
		}
		return fltr.ErrorInfo{Num: ErrOpenFailed, Msg: "failed to open target for writing: " + err.Error()}
	}
	defer func() { _ = f.Close() }()

	n, err := f.Write(content)
	if err != nil {
		return fltr.ErrorInfo{Num: ErrWriteIO, Msg: "write failed: " + err.Error()}
	}
	if n != len(content) {
		return fltr.ErrorInfo{Num: ErrWriteShort, Msg: "short write"}
	}
	if err := f.Close(); err != nil {
		return fltr.ErrorInfo{Num: ErrCloseFailed, Msg: "close failed: " + err.Error()}
	}
	return fltr.ErrorInfo{}
}

// readFileContent reads the whole file at path, per spec.md §1's
// whole-file-buffering design (no streaming, no partial reads).
func readFileContent(path string) ([]byte, fltr.ErrorInfo) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fltr.ErrorInfo{Num: ErrOpenFailed, Msg: "failed to open source: " + err.Error()}
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, fltr.ErrorInfo{Num: ErrReadAlloc, Msg: "failed to stat source: " + err.Error()}
	}

	buf := make([]byte, info.Size())
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fltr.ErrorInfo{Num: ErrReadIO, Msg: "read failed: " + err.Error()}
	}
	if n != len(buf) {
		return nil, fltr.ErrorInfo{Num: ErrReadShort, Msg: "short read"}
	}
	if err := f.Close(); err != nil {
		return nil, fltr.ErrorInfo{Num: ErrCloseFailed, Msg: "close failed: " + err.Error()}
	}
	return buf, fltr.ErrorInfo{}
}
