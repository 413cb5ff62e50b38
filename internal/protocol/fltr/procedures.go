package fltr

import (
	"bytes"
	"fmt"
	"io"
)

// MaxContentSize bounds a decoded FileInfo.Content. File contents, unlike
// small RPC arguments, are expected to carry whole files (the design
// presumes whole-file buffering); the cap exists only to bound memory
// against a malformed or hostile peer, not to limit legitimate transfers.
const MaxContentSize uint32 = 64 * 1024 * 1024

// ProcedureName returns the human-readable name of a procedure number
// under (FLTRProg, FLTRVers), or "" if unknown.
func ProcedureName(proc uint32) string {
	switch proc {
	case ProcUpload:
		return "upload_file"
	case ProcDownload:
		return "download_file"
	case ProcPick:
		return "pick_file"
	default:
		return ""
	}
}

// EncodeUploadArgs encodes the upload_file argument (a FileInfo).
func EncodeUploadArgs(fi FileInfo) ([]byte, error) {
	var buf bytes.Buffer
	if err := fi.Encode(&buf); err != nil {
		return nil, fmt.Errorf("encode upload args: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeUploadArgs decodes the upload_file argument.
func DecodeUploadArgs(r io.Reader) (FileInfo, error) {
	fi, err := DecodeFileInfo(r, MaxContentSize)
	if err != nil {
		return FileInfo{}, fmt.Errorf("decode upload args: %w", err)
	}
	return fi, nil
}

// EncodeUploadResult encodes the upload_file result (an ErrorInfo).
func EncodeUploadResult(err ErrorInfo) ([]byte, error) {
	var buf bytes.Buffer
	if encErr := err.Encode(&buf); encErr != nil {
		return nil, fmt.Errorf("encode upload result: %w", encErr)
	}
	return buf.Bytes(), nil
}

// DecodeUploadResult decodes the upload_file result.
func DecodeUploadResult(r io.Reader) (ErrorInfo, error) {
	return DecodeErrorInfo(r)
}

// EncodeDownloadArgs encodes the download_file argument (a FileName).
func EncodeDownloadArgs(name string) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeFileName(&buf, name); err != nil {
		return nil, fmt.Errorf("encode download args: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeDownloadArgs decodes the download_file argument.
func DecodeDownloadArgs(r io.Reader) (string, error) {
	return DecodeFileName(r)
}

// EncodeDownloadResult encodes the download_file result (a FileResult).
func EncodeDownloadResult(res FileResult) ([]byte, error) {
	var buf bytes.Buffer
	if err := res.Encode(&buf); err != nil {
		return nil, fmt.Errorf("encode download result: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeDownloadResult decodes the download_file result.
func DecodeDownloadResult(r io.Reader) (FileResult, error) {
	return DecodeFileResult(r, MaxContentSize)
}

// EncodePickArgs encodes the pick_file argument (a PickedFile).
func EncodePickArgs(pf PickedFile) ([]byte, error) {
	var buf bytes.Buffer
	if err := pf.Encode(&buf); err != nil {
		return nil, fmt.Errorf("encode pick args: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodePickArgs decodes the pick_file argument.
func DecodePickArgs(r io.Reader) (PickedFile, error) {
	return DecodePickedFile(r)
}

// EncodePickResult encodes the pick_file result (a FileResult).
func EncodePickResult(res FileResult) ([]byte, error) {
	return EncodeDownloadResult(res)
}

// DecodePickResult decodes the pick_file result.
func DecodePickResult(r io.Reader) (FileResult, error) {
	return DecodeDownloadResult(r)
}
