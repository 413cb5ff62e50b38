package logger

import "log/slog"

// Field key constants, scoped to what this protocol actually logs: a
// connection's peer, the procedure being served, the path involved, and
// the numeric/byte-count outcome of the call.
const (
	KeyClientAddr = "client_addr"
	KeyProcedure  = "procedure"
	KeyPath       = "path"
	KeyRole       = "role"
	KeyErrNum     = "err_num"
	KeyBytes      = "bytes"
	KeyDurationMs = "duration_ms"
)

func ClientAddr(addr string) slog.Attr { return slog.String(KeyClientAddr, addr) }
func Procedure(name string) slog.Attr  { return slog.String(KeyProcedure, name) }
func Path(path string) slog.Attr       { return slog.String(KeyPath, path) }
func Role(role string) slog.Attr       { return slog.String(KeyRole, role) }
func ErrNum(num int32) slog.Attr       { return slog.Int64(KeyErrNum, int64(num)) }
func Bytes(n int) slog.Attr            { return slog.Int64(KeyBytes, int64(n)) }
func DurationMs(ms float64) slog.Attr  { return slog.Float64(KeyDurationMs, ms) }
