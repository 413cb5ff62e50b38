// Package fltr defines the wire schema for the file-transfer RPC program:
// record types, their XDR encodings, and the memory-discipline contract
// each record follows across a call (reset in place for bounded fields,
// free-and-reallocate for content).
package fltr

import "fmt"

const (
	// FLTRProg is the ONC-RPC program number registered with the portmapper.
	FLTRProg uint32 = 0x20000027
	// FLTRVers is the only defined program version.
	FLTRVers uint32 = 1

	// LenPathMax bounds every FileName on the wire.
	LenPathMax uint32 = 4096
	// LenErrMsgMax bounds ErrorInfo.Msg on the wire.
	LenErrMsgMax uint32 = 4096

	// ErrnumErrinfErr is the sentinel reported when the error carrier
	// itself could not be prepared.
	ErrnumErrinfErr int32 = -1
)

// Procedure numbers under (FLTRProg, FLTRVers).
const (
	ProcUpload   uint32 = 1
	ProcDownload uint32 = 2
	ProcPick     uint32 = 3
)

// FileType enumerates what a path classifies as. Ordinals are wire-stable;
// a decoder must reject any other value.
type FileType int32

const (
	TypeDFL FileType = iota // default/unspecified
	TypeREG                 // regular file
	TypeDIR                 // directory
	TypeOTH                 // other: link, socket, device, ...
	TypeNEX                 // nonexistent
	TypeINV                 // invalid/stat failed for a reason other than nonexistence
)

func (t FileType) String() string {
	switch t {
	case TypeDFL:
		return "DFL"
	case TypeREG:
		return "REG"
	case TypeDIR:
		return "DIR"
	case TypeOTH:
		return "OTH"
	case TypeNEX:
		return "NEX"
	case TypeINV:
		return "INV"
	default:
		return fmt.Sprintf("FileType(%d)", int32(t))
	}
}

// ValidFileType reports whether v is a declared FileType ordinal.
func ValidFileType(v int32) bool {
	return v >= int32(TypeDFL) && v <= int32(TypeINV)
}

// PickRole tells a selector what the caller wants the picked path to be.
type PickRole int32

const (
	RoleSource PickRole = iota // must end on an existing regular file
	RoleTarget                 // must end on a nonexistent path
)

func (r PickRole) String() string {
	switch r {
	case RoleSource:
		return "source"
	case RoleTarget:
		return "target"
	default:
		return fmt.Sprintf("PickRole(%d)", int32(r))
	}
}

// ValidPickRole reports whether v is a declared PickRole ordinal.
func ValidPickRole(v int32) bool {
	return v == int32(RoleSource) || v == int32(RoleTarget)
}

// PickedFile carries a selection request across the wire: the path to
// classify and the role the caller needs it to satisfy.
type PickedFile struct {
	Name string
	Role PickRole
}

// FileInfo is the populated-or-empty result of a selection or a download.
//
// Invariant: when Type == TypeDIR, Content holds the formatted directory
// listing (UTF-8 text); when Type == TypeREG, Content holds file bytes;
// for any other Type, Content is empty.
type FileInfo struct {
	Name    string
	Type    FileType
	Content []byte
}

// ErrorInfo is the tagged result of an operation: Num == 0 means success
// and Msg is absent on the wire; Num != 0 carries a human-readable Msg.
type ErrorInfo struct {
	Num int32
	Msg string
}

// Ok reports whether this ErrorInfo represents success.
func (e ErrorInfo) Ok() bool { return e.Num == 0 }

// Error implements the error interface so an ErrorInfo can be returned
// and compared directly wherever Go code expects an error.
func (e ErrorInfo) Error() string {
	if e.Ok() {
		return ""
	}
	return fmt.Sprintf("server error %d: %s", e.Num, e.Msg)
}

// FileResult is the reply shape for download and pick: the populated (or
// partially populated) file alongside the error that occurred, if any.
type FileResult struct {
	File FileInfo
	Err  ErrorInfo
}
