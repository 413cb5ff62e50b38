// Package fsops implements the filesystem primitives the file selector
// builds on: path-type classification, absolute-path resolution, and
// directory-listing formatting. None of it depends on the wire codec in
// the other direction — fsops only reports fltr.FileType values, the
// same type both the local and RPC-backed selector hand back.
package fsops

import (
	"errors"
	"io/fs"
	"os"

	"github.com/fltrhq/fltr/internal/protocol/fltr"
)

// Classify stats path and maps the result onto fltr.FileType. A
// not-found stat error maps to TypeNEX; any other stat failure maps to
// TypeINV, since the spec distinguishes "doesn't exist" from "couldn't
// tell".
func Classify(path string) fltr.FileType {
	info, err := os.Lstat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fltr.TypeNEX
		}
		return fltr.TypeINV
	}

	mode := info.Mode()
	switch {
	case mode.IsDir():
		return fltr.TypeDIR
	case mode.IsRegular():
		return fltr.TypeREG
	default:
		return fltr.TypeOTH
	}
}
