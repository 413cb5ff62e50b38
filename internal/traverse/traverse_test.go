package traverse

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fltrhq/fltr/internal/protocol/fltr"
	"github.com/fltrhq/fltr/internal/selector"
)

// scriptedSelector answers one canned FileResult per call, in order.
type scriptedSelector struct {
	results []fltr.FileResult
	calls   []fltr.PickedFile
}

func (s *scriptedSelector) Select(picked fltr.PickedFile) (fltr.FileResult, error) {
	s.calls = append(s.calls, picked)
	i := len(s.calls) - 1
	if i >= len(s.results) {
		return fltr.FileResult{}, errors.New("scriptedSelector: out of results")
	}
	return s.results[i], nil
}

func scriptedInput(lines ...string) func(string) (string, error) {
	i := 0
	return func(string) (string, error) {
		if i >= len(lines) {
			return "", errors.New("scriptedInput: out of lines")
		}
		line := lines[i]
		i++
		return line, nil
	}
}

func TestEngineRun_ImmediateRegularFile(t *testing.T) {
	sel := &scriptedSelector{results: []fltr.FileResult{
		{File: fltr.FileInfo{Name: "/home/u/src.txt", Type: fltr.TypeREG}},
	}}
	e := NewEngine(sel, "local", &bytes.Buffer{})
	e.In = scriptedInput()

	got, err := e.Run("/home/u/src.txt", fltr.RoleSource)
	require.NoError(t, err)
	assert.Equal(t, "/home/u/src.txt", got)
	assert.Len(t, sel.calls, 1)
}

func TestEngineRun_DirectoryThenPick(t *testing.T) {
	var out bytes.Buffer
	sel := &scriptedSelector{results: []fltr.FileResult{
		{File: fltr.FileInfo{Name: "/home/u", Type: fltr.TypeDIR, Content: []byte("drwxr-xr-x  u  g 4096 Jan  1 00:00 2024 src.txt\n")}},
		{File: fltr.FileInfo{Name: "/home/u/src.txt", Type: fltr.TypeREG}},
	}}
	e := NewEngine(sel, "local", &out)
	e.In = scriptedInput("src.txt")

	got, err := e.Run("/home/u", fltr.RoleSource)
	require.NoError(t, err)
	assert.Equal(t, "/home/u/src.txt", got)
	assert.Equal(t, []fltr.PickedFile{
		{Name: "/home/u", Role: fltr.RoleSource},
		{Name: "/home/u/src.txt", Role: fltr.RoleSource},
	}, sel.calls)
	assert.Contains(t, out.String(), "src.txt")
}

func TestEngineRun_RecoverableErrorRollsBack(t *testing.T) {
	sel := &scriptedSelector{results: []fltr.FileResult{
		{File: fltr.FileInfo{Type: fltr.TypeREG}, Err: fltr.ErrorInfo{Num: selector.ErrWrongTypeReg, Msg: "wrong type"}},
		{File: fltr.FileInfo{Name: "/", Type: fltr.TypeNEX}},
	}}
	e := NewEngine(sel, "local", &bytes.Buffer{})
	e.In = scriptedInput()

	got, err := e.Run("/existing.txt", fltr.RoleTarget)
	require.NoError(t, err)
	assert.Equal(t, "/", got)
	assert.Equal(t, "/", sel.calls[1].Name)
}

func TestEngineRun_DFLErrorIsFatal(t *testing.T) {
	sel := &scriptedSelector{results: []fltr.FileResult{
		{File: fltr.FileInfo{Type: fltr.TypeDFL}, Err: fltr.ErrorInfo{Num: fltr.ErrnumErrinfErr, Msg: "allocator failure"}},
	}}
	e := NewEngine(sel, "local", &bytes.Buffer{})
	e.In = scriptedInput()

	_, err := e.Run("/whatever", fltr.RoleSource)
	assert.Error(t, err)
}

func TestEngineRun_AbsoluteInputResetsBase(t *testing.T) {
	var out bytes.Buffer
	sel := &scriptedSelector{results: []fltr.FileResult{
		{File: fltr.FileInfo{Name: "/home/u", Type: fltr.TypeDIR, Content: []byte("...\n")}},
		{File: fltr.FileInfo{Name: "/tmp/dst.bin", Type: fltr.TypeNEX}},
	}}
	e := NewEngine(sel, "local", &out)
	e.In = scriptedInput("/tmp/dst.bin")

	got, err := e.Run("/home/u", fltr.RoleTarget)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/dst.bin", got)
	assert.Equal(t, "/tmp/dst.bin", sel.calls[1].Name)
}

func TestJoinSegment(t *testing.T) {
	assert.Equal(t, "/etc/hostname", joinSegment("/etc", "hostname"))
	assert.Equal(t, "/tmp", joinSegment("", "tmp"))
	assert.Equal(t, "/etc/hostname", joinSegment("/etc/", "hostname"))
}
