package fltr

import "fmt"

// This file implements the memory-discipline contract of the original
// protocol in Go terms. The original fixed-capacity filename/message
// buffers are reset in place; the variable-size content buffer is freed
// and reallocated per use. Go has no manual allocator, so "reset in
// place" becomes "overwrite the field" and "free" becomes "nil the
// slice" — the observable contract (idempotent reset, safe double-free)
// is what these methods preserve, not the original's malloc pattern.

// ResetNameAndType reconstructs the name/type portion of fi to its
// just-initialized state: empty name, Type == TypeDFL. Idempotent.
func (fi *FileInfo) ResetNameAndType() error {
	if fi == nil {
		return fmt.Errorf("reset name and type: nil FileInfo")
	}
	fi.Name = ""
	fi.Type = TypeDFL
	return nil
}

// ResetContent releases any prior content and allocates a fresh buffer of
// exactly size bytes, zeroed. Idempotent for a given size.
func (fi *FileInfo) ResetContent(size int) error {
	if fi == nil {
		return fmt.Errorf("reset content: nil FileInfo")
	}
	if size < 0 {
		return fmt.Errorf("reset content: negative size %d", size)
	}
	fi.Content = make([]byte, size)
	return nil
}

// Free releases fi's owned buffers and returns it to its zero value.
// Safe to call on an already-freed FileInfo.
func (fi *FileInfo) Free() {
	if fi == nil {
		return
	}
	fi.Name = ""
	fi.Type = TypeDFL
	fi.Content = nil
}

// Reset reconstructs err to its just-initialized "no error" state.
// Idempotent.
func (err *ErrorInfo) Reset() error {
	if err == nil {
		return fmt.Errorf("reset error info: nil ErrorInfo")
	}
	err.Num = 0
	err.Msg = ""
	return nil
}

// Free releases err's owned message and returns it to its zero value.
// Safe to call on an already-freed ErrorInfo.
func (err *ErrorInfo) Free() {
	if err == nil {
		return
	}
	err.Num = 0
	err.Msg = ""
}

// Set populates err with a numbered failure and its message, the one
// path by which an operation reports a non-success ErrorInfo.
func (err *ErrorInfo) Set(num int32, format string, args ...any) {
	err.Num = num
	err.Msg = fmt.Sprintf(format, args...)
}
