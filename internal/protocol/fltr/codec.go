package fltr

import (
	"bytes"
	"fmt"
	"io"

	"github.com/rasky/go-xdr/xdr2"

	"github.com/fltrhq/fltr/internal/protocol/xdr"
)

// EncodeFileName writes a path string bounded by LenPathMax.
func EncodeFileName(buf *bytes.Buffer, name string) error {
	if err := xdr.WriteString(buf, name, LenPathMax); err != nil {
		return fmt.Errorf("encode file name: %w", err)
	}
	return nil
}

// DecodeFileName reads a path string bounded by LenPathMax.
func DecodeFileName(r io.Reader) (string, error) {
	name, err := xdr.DecodeString(r, LenPathMax)
	if err != nil {
		return "", fmt.Errorf("decode file name: %w", err)
	}
	return name, nil
}

// Encode writes fi: name, type, then content as opaque bytes.
func (fi FileInfo) Encode(buf *bytes.Buffer) error {
	if err := EncodeFileName(buf, fi.Name); err != nil {
		return err
	}
	if err := xdr.WriteInt32(buf, int32(fi.Type)); err != nil {
		return fmt.Errorf("encode file type: %w", err)
	}
	if err := xdr.WriteOpaque(buf, fi.Content, uint32(len(fi.Content))); err != nil {
		return fmt.Errorf("encode file content: %w", err)
	}
	return nil
}

// DecodeFileInfo reads a FileInfo. maxContent bounds the content field so a
// peer cannot force an unbounded allocation by lying about its length.
func DecodeFileInfo(r io.Reader, maxContent uint32) (FileInfo, error) {
	name, err := DecodeFileName(r)
	if err != nil {
		return FileInfo{}, err
	}
	rawType, err := xdr.DecodeInt32(r)
	if err != nil {
		return FileInfo{}, fmt.Errorf("decode file type: %w", err)
	}
	if !ValidFileType(rawType) {
		return FileInfo{}, fmt.Errorf("decode file type: ordinal %d is not a declared FileType", rawType)
	}
	content, err := xdr.DecodeOpaque(r, maxContent)
	if err != nil {
		return FileInfo{}, fmt.Errorf("decode file content: %w", err)
	}
	return FileInfo{Name: name, Type: FileType(rawType), Content: content}, nil
}

// Encode writes err as a discriminated union: the discriminant is the
// error number itself; the message arm is present only when Num != 0.
func (err ErrorInfo) Encode(buf *bytes.Buffer) error {
	if encErr := xdr.WriteInt32(buf, err.Num); encErr != nil {
		return fmt.Errorf("encode error num: %w", encErr)
	}
	if err.Num == 0 {
		return nil
	}
	if encErr := xdr.WriteString(buf, err.Msg, LenErrMsgMax); encErr != nil {
		return fmt.Errorf("encode error msg: %w", encErr)
	}
	return nil
}

// DecodeErrorInfo reads an ErrorInfo union.
func DecodeErrorInfo(r io.Reader) (ErrorInfo, error) {
	num, err := xdr.DecodeInt32(r)
	if err != nil {
		return ErrorInfo{}, fmt.Errorf("decode error num: %w", err)
	}
	if num == 0 {
		return ErrorInfo{}, nil
	}
	msg, err := xdr.DecodeString(r, LenErrMsgMax)
	if err != nil {
		return ErrorInfo{}, fmt.Errorf("decode error msg: %w", err)
	}
	return ErrorInfo{Num: num, Msg: msg}, nil
}

// Encode writes res as the FileInfo followed by the ErrorInfo union.
func (res FileResult) Encode(buf *bytes.Buffer) error {
	if err := res.File.Encode(buf); err != nil {
		return err
	}
	return res.Err.Encode(buf)
}

// DecodeFileResult reads a FileResult.
func DecodeFileResult(r io.Reader, maxContent uint32) (FileResult, error) {
	file, err := DecodeFileInfo(r, maxContent)
	if err != nil {
		return FileResult{}, err
	}
	errInfo, err := DecodeErrorInfo(r)
	if err != nil {
		return FileResult{}, err
	}
	return FileResult{File: file, Err: errInfo}, nil
}

// Encode writes pf by hand, enforcing LenPathMax on Name.
func (pf PickedFile) Encode(buf *bytes.Buffer) error {
	if err := EncodeFileName(buf, pf.Name); err != nil {
		return err
	}
	return xdr.WriteInt32(buf, int32(pf.Role))
}

// DecodePickedFile reads a PickedFile via the reflective xdr2 codec: its
// shape (one bounded string, one int32-backed enum) is simple enough that
// reflection-based decoding is both correct and less code than a
// hand-rolled decoder, mirroring the teacher's own mix of reflective and
// manual codec use. The bounded-length and enum-ordinal checks that
// reflection can't express are applied afterward.
func DecodePickedFile(r io.Reader) (PickedFile, error) {
	var wire struct {
		Name string
		Role int32
	}
	if _, err := xdr2.Unmarshal(r, &wire); err != nil {
		return PickedFile{}, fmt.Errorf("decode picked file: %w", err)
	}
	if uint32(len(wire.Name)) > LenPathMax {
		return PickedFile{}, fmt.Errorf("decode picked file: name length %d exceeds max %d", len(wire.Name), LenPathMax)
	}
	if !ValidPickRole(wire.Role) {
		return PickedFile{}, fmt.Errorf("decode picked file: ordinal %d is not a declared PickRole", wire.Role)
	}
	return PickedFile{Name: wire.Name, Role: PickRole(wire.Role)}, nil
}
