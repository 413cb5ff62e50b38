// Package selector implements the single-shot file pick: given a path and
// a role (source or target), return a populated FileInfo or a tagged
// error. Select is the same pure function run on both sides of the
// wire — the server's pick_file handler and the client's local picks
// both call it unchanged.
package selector

import (
	"errors"

	"github.com/fltrhq/fltr/internal/fsops"
	"github.com/fltrhq/fltr/internal/protocol/fltr"
)

// Error numbers reserved for the selector (fltr taxonomy §21-28).
const (
	ErrResetNameType  int32 = 23
	ErrSourceNotFound int32 = 24
	ErrResolveFailed  int32 = 25
	ErrWrongTypeReg   int32 = 26
	ErrUnsupportedOth int32 = 27
	ErrInvalidType    int32 = 28
	ErrOpenDir        int32 = 21
	ErrFormatListing  int32 = 22
)

// Selector is implemented by anything that can answer a pick request:
// the in-process Select below, and a remote stub that calls pick_file.
type Selector interface {
	Select(picked fltr.PickedFile) (fltr.FileResult, error)
}

// LocalFunc adapts Select to the Selector interface, so the traversal
// engine can be handed either a local or an RPC-backed selector through
// the same type.
type LocalFunc func(fltr.PickedFile) fltr.FileResult

func (f LocalFunc) Select(picked fltr.PickedFile) (fltr.FileResult, error) {
	return f(picked), nil
}

// Select classifies picked.Name and validates it against picked.Role,
// returning either a populated FileInfo or a tagged ErrorInfo. It never
// reads regular-file contents; that is upload/download's job.
func Select(picked fltr.PickedFile) fltr.FileResult {
	var result fltr.FileResult
	result.File.Type = fltr.TypeDFL

	if err := result.Err.Reset(); err != nil {
		result.Err.Num = fltr.ErrnumErrinfErr
		return result
	}
	if err := result.File.ResetNameAndType(); err != nil {
		result.Err.Set(ErrResetNameType, "failed to init file name & type: %v", err)
		return result
	}

	fileType := fsops.Classify(picked.Name)

	if fileType == fltr.TypeNEX {
		result.File.Name = picked.Name
		result.File.Type = fltr.TypeNEX
		if picked.Role == fltr.RoleTarget {
			return result
		}
		result.Err.Set(ErrSourceNotFound, "selected file does not exist; only a regular file can be a source")
		return result
	}

	abs, err := fsops.ResolveAbs(picked.Name)
	if err != nil {
		result.Err.Set(ErrResolveFailed, "failed to resolve path: %v", err)
		return result
	}
	result.File.Name = abs
	result.File.Type = fileType

	switch fileType {
	case fltr.TypeDIR:
		content, err := fsops.FormatListing(abs)
		if err != nil {
			if errors.Is(err, fsops.ErrReadDir) {
				result.Err.Set(ErrOpenDir, "failed to open directory: %v", err)
			} else {
				result.Err.Set(ErrFormatListing, "failed to format directory listing: %v", err)
			}
			return result
		}
		result.File.Content = content
		return result

	case fltr.TypeREG:
		if picked.Role == fltr.RoleSource {
			return result
		}
		result.Err.Set(ErrWrongTypeReg, "wrong type: regular file; target must be non-existent")
		return result

	case fltr.TypeOTH:
		result.Err.Set(ErrUnsupportedOth, "unsupported file type: other")
		return result

	default: // TypeINV: resolution above would already have failed in practice
		result.Err.Set(ErrInvalidType, "invalid file")
		return result
	}
}
