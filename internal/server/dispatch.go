package server

import (
	"github.com/fltrhq/fltr/internal/protocol/fltr"
	"github.com/fltrhq/fltr/internal/selector"
)

// Dispatcher implements the three RPC procedures (spec.md §4.6). Each
// method resets its own state before doing any work and returns a
// fresh, per-call owned result — no static slots survive across calls
// (spec.md §9's "Static return buffers" redesign note).
type Dispatcher struct{}

// NewDispatcher builds a Dispatcher. It holds no state: every handler
// is a pure function of its argument plus the live filesystem.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Upload implements upload_file: write fi.Content to fi.Name with
// exclusive-create semantics, wiring any I/O failure's detailed error
// number/message into the returned ErrorInfo (spec.md §4.6).
func (d *Dispatcher) Upload(fi fltr.FileInfo) fltr.ErrorInfo {
	var errInfo fltr.ErrorInfo
	if err := errInfo.Reset(); err != nil {
		return fltr.ErrorInfo{Num: fltr.ErrnumErrinfErr}
	}
	return saveFileContent(fi.Name, fi.Content)
}

// Download implements download_file: populate a FileResult whose File
// carries the requested path and whose Content holds the file's bytes
// on success (spec.md §4.6).
func (d *Dispatcher) Download(name string) fltr.FileResult {
	var result fltr.FileResult
	if err := result.Err.Reset(); err != nil {
		result.Err.Num = fltr.ErrnumErrinfErr
		return result
	}
	if err := result.File.ResetNameAndType(); err != nil {
		result.Err.Set(selector.ErrResetNameType, "failed to init file name & type: %v", err)
		return result
	}
	result.File.Name = name

	content, errInfo := readFileContent(name)
	if !errInfo.Ok() {
		result.Err = errInfo
		return result
	}
	result.File.Type = fltr.TypeREG
	result.File.Content = content
	return result
}

// Pick implements pick_file: delegate verbatim to the selector, the
// same pure function the client's local picks call (spec.md §4.6).
func (d *Dispatcher) Pick(picked fltr.PickedFile) fltr.FileResult {
	return selector.Select(picked)
}
