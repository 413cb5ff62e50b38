package client

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fltrhq/fltr/internal/cli/output"
	"github.com/fltrhq/fltr/internal/logger"
	"github.com/fltrhq/fltr/internal/protocol/fltr"
	"github.com/fltrhq/fltr/internal/selector"
	"github.com/fltrhq/fltr/internal/traverse"
)

// Action is the client driver's finite action set (spec.md §4.7). The
// values are plain sequential constants, not bit flags; interactive mode
// is not an Action but the separate Request.Interact field, which keeps
// it orthogonal to Upload/Download.
type Action int

const (
	ActionInvalid Action = iota
	ActionHelpShort
	ActionHelpFull
	ActionUpload
	ActionDownload
)

// Exit codes (spec.md §6).
const (
	ExitSuccess          = 0
	ExitUsage            = 1
	ExitHandleFailed     = 2
	ExitNameTypeReset    = 3
	ExitLocalSourceRead  = 4
	ExitTransportFailure = 5
	ExitLocalTargetSave  = 6
)

// Request is one invocation of the client driver, parsed from the CLI
// surface of spec.md §6.
type Request struct {
	Action     Action
	Host       string
	SourcePath string
	TargetPath string
	Interact   bool
	Timeout    int // seconds; 0 uses DefaultCallTimeout
}

// Run executes req against host and returns the process exit code. Out
// receives the transfer summary table and any progress messages;
// diagnostic lines (errors) go to errOut, mirroring spec.md §7's
// "single error line to the diagnostic stream" rule.
func Run(ctx context.Context, req Request, out, errOut *os.File) int {
	switch req.Action {
	case ActionHelpShort:
		fmt.Fprintln(out, usageShort)
		return ExitUsage
	case ActionHelpFull:
		fmt.Fprintln(out, usageFull)
		return ExitSuccess
	case ActionInvalid:
		fmt.Fprintln(errOut, "!--invalid arguments")
		fmt.Fprintln(out, usageShort)
		return ExitUsage
	}

	if req.Action == ActionUpload && !req.Interact && !strings.HasPrefix(req.TargetPath, "/") {
		fmt.Fprintln(errOut, "!--invalid target filename: remote target must be an absolute path")
		return ExitUsage
	}
	if req.Action == ActionDownload && !req.Interact && !strings.HasPrefix(req.SourcePath, "/") {
		fmt.Fprintln(errOut, "!--invalid source filename: remote source must be an absolute path")
		return ExitUsage
	}

	callTimeout := DefaultCallTimeout
	if req.Timeout > 0 {
		callTimeout = time.Duration(req.Timeout) * time.Second
	}
	rc, err := Dial(ctx, req.Host, 5*time.Second, callTimeout)
	if err != nil {
		fmt.Fprintf(errOut, "!--failed to connect to %s: %v\n", req.Host, err)
		return ExitHandleFailed
	}
	defer func() { _ = rc.Close() }()

	var (
		srcPath, tgtPath string
		summary          output.TransferSummary
	)

	switch req.Action {
	case ActionUpload:
		srcPath, tgtPath = req.SourcePath, req.TargetPath
		if req.Interact {
			srcPath, tgtPath, err = interactivePick(rc, req.Host, true)
		}
		if err != nil {
			fmt.Fprintf(errOut, "!--%v\n", err)
			return ExitTransportFailure
		}

		content, readErr := os.ReadFile(srcPath)
		if readErr != nil {
			fmt.Fprintf(errOut, "!--failed to read local source %q: %v\n", srcPath, readErr)
			return ExitLocalSourceRead
		}

		errInfo, callErr := rc.Upload(ctx, fltr.FileInfo{Name: tgtPath, Content: content})
		if callErr != nil {
			fmt.Fprintf(errOut, "!--RPC transport failure: %v\n", callErr)
			return ExitTransportFailure
		}
		if !errInfo.Ok() {
			fmt.Fprintf(errOut, "!--Server error %d: %s\n", errInfo.Num, errInfo.Msg)
			return int(errInfo.Num)
		}

		summary = output.TransferSummary{Action: "upload", Source: srcPath, Target: tgtPath, Bytes: len(content)}

	case ActionDownload:
		srcPath, tgtPath = req.SourcePath, req.TargetPath
		if req.Interact {
			tgtPath, srcPath, err = interactivePick(rc, req.Host, false)
		}
		if err != nil {
			fmt.Fprintf(errOut, "!--%v\n", err)
			return ExitTransportFailure
		}

		result, callErr := rc.Download(ctx, srcPath)
		if callErr != nil {
			fmt.Fprintf(errOut, "!--RPC transport failure: %v\n", callErr)
			return ExitTransportFailure
		}
		if !result.Err.Ok() {
			fmt.Fprintf(errOut, "!--Server error %d: %s\n", result.Err.Num, result.Err.Msg)
			return int(result.Err.Num)
		}

		if writeErr := os.WriteFile(tgtPath, result.File.Content, 0o644); writeErr != nil {
			fmt.Fprintf(errOut, "!--failed to save local target %q: %v\n", tgtPath, writeErr)
			return ExitLocalTargetSave
		}

		summary = output.TransferSummary{Action: "download", Source: srcPath, Target: tgtPath, Bytes: len(result.File.Content)}

	default:
		fmt.Fprintln(errOut, "!--invalid arguments")
		return ExitUsage
	}

	_ = output.PrintTable(out, summary)
	logger.Info("transfer complete", "action", summary.Action, "bytes", summary.Bytes)
	return ExitSuccess
}

// interactivePick drives the traversal engine for both legs of an
// interactive transfer. When upload is true, the source is picked
// locally and the target remotely; reversed for download (spec.md
// §4.7's "-i replaces source/target arguments" rule).
func interactivePick(rc *RPCClient, host string, upload bool) (localPath, remotePath string, err error) {
	local := traverse.NewEngine(selector.LocalFunc(selector.Select), "local", os.Stdout)
	remote := traverse.NewEngine(rc, host, os.Stdout)

	if upload {
		localPath, err = traverse.Confirm(local, ".", fltr.RoleSource)
		if err != nil {
			return "", "", fmt.Errorf("local source pick: %w", err)
		}
		remotePath, err = traverse.Confirm(remote, "/", fltr.RoleTarget)
		if err != nil {
			return "", "", fmt.Errorf("remote target pick: %w", err)
		}
		return localPath, remotePath, nil
	}

	remotePath, err = traverse.Confirm(remote, "/", fltr.RoleSource)
	if err != nil {
		return "", "", fmt.Errorf("remote source pick: %w", err)
	}
	localPath, err = traverse.Confirm(local, ".", fltr.RoleTarget)
	if err != nil {
		return "", "", fmt.Errorf("local target pick: %w", err)
	}
	return localPath, remotePath, nil
}

const usageShort = "usage: fltrc [-u | -d] <server-host> <src-path> <tgt-path> | [-u | -d] <server-host> -i | -h"

const usageFull = usageShort + `

  -u              upload a local file to the remote host
  -d              download a remote file to the local host
  -i              pick source and target interactively instead of positional args
  -h              print this help and exit

Exit codes: 0 success, 1 usage, 2 connect failed, 3 name/type reset failed,
4 local source read failed, 5 RPC transport failure, 6 local target save
failed; any other nonzero code is a server-returned error number.`
