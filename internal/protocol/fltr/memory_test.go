package fltr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileInfo_ResetNameAndType_Idempotent(t *testing.T) {
	fi := &FileInfo{Name: "/tmp/x", Type: TypeREG, Content: []byte("keep me")}
	require.NoError(t, fi.ResetNameAndType())
	first := *fi
	require.NoError(t, fi.ResetNameAndType())
	assert.Equal(t, first, *fi)
	assert.Equal(t, "", fi.Name)
	assert.Equal(t, TypeDFL, fi.Type)
	assert.Equal(t, []byte("keep me"), fi.Content, "ResetNameAndType must not touch Content")
}

func TestFileInfo_ResetContent_Idempotent(t *testing.T) {
	fi := &FileInfo{}
	require.NoError(t, fi.ResetContent(8))
	require.Len(t, fi.Content, 8)
	require.NoError(t, fi.ResetContent(8))
	assert.Len(t, fi.Content, 8)
}

func TestFileInfo_Free_SafeOnDoubleCall(t *testing.T) {
	fi := &FileInfo{Name: "/tmp/x", Type: TypeREG, Content: []byte("data")}
	fi.Free()
	assert.Equal(t, FileInfo{}, *fi)
	assert.NotPanics(t, func() { fi.Free() })
	assert.Equal(t, FileInfo{}, *fi)
}

func TestFileInfo_Free_SafeOnNil(t *testing.T) {
	var fi *FileInfo
	assert.NotPanics(t, func() { fi.Free() })
}

func TestErrorInfo_Reset_Idempotent(t *testing.T) {
	e := &ErrorInfo{Num: 26, Msg: "wrong type"}
	require.NoError(t, e.Reset())
	first := *e
	require.NoError(t, e.Reset())
	assert.Equal(t, first, *e)
	assert.True(t, e.Ok())
}

func TestErrorInfo_Free_SafeOnDoubleCall(t *testing.T) {
	e := &ErrorInfo{Num: 26, Msg: "wrong type"}
	e.Free()
	assert.Equal(t, ErrorInfo{}, *e)
	assert.NotPanics(t, func() { e.Free() })
	assert.Equal(t, ErrorInfo{}, *e)
}

func TestErrorInfo_Free_SafeOnNil(t *testing.T) {
	var e *ErrorInfo
	assert.NotPanics(t, func() { e.Free() })
}

func TestErrorInfo_Set(t *testing.T) {
	var e ErrorInfo
	e.Set(24, "selected file does not exist; only a regular file can be a source")
	assert.Equal(t, int32(24), e.Num)
	assert.Contains(t, e.Msg, "does not exist")
	assert.False(t, e.Ok())
}

func TestValidFileType(t *testing.T) {
	for v := int32(TypeDFL); v <= int32(TypeINV); v++ {
		assert.True(t, ValidFileType(v), "ordinal %d should be declared", v)
	}
	assert.False(t, ValidFileType(-1))
	assert.False(t, ValidFileType(int32(TypeINV)+1))
}

func TestValidPickRole(t *testing.T) {
	assert.True(t, ValidPickRole(int32(RoleSource)))
	assert.True(t, ValidPickRole(int32(RoleTarget)))
	assert.False(t, ValidPickRole(2))
	assert.False(t, ValidPickRole(-1))
}

func TestErrorInfo_Error(t *testing.T) {
	assert.Equal(t, "", ErrorInfo{}.Error())
	assert.Contains(t, ErrorInfo{Num: 60, Msg: "already exists"}.Error(), "60")
}
