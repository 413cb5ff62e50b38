package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fltrhq/fltr/internal/client"
)

func TestRunRoot_RejectsBothUploadAndDownload(t *testing.T) {
	uploadFlag, downloadFlag, interactFlag = true, true, false
	defer func() { uploadFlag, downloadFlag = false, false }()

	cmd := rootCmd
	cmd.SetArgs(nil)
	err := runRoot(cmd, []string{"host", "/src", "/tgt"})
	assert.NoError(t, err)
	assert.Equal(t, client.ExitUsage, ExitCode)
}

func TestRunRoot_InteractRequiresExactlyHost(t *testing.T) {
	uploadFlag, downloadFlag, interactFlag = true, false, true
	defer func() { uploadFlag, interactFlag = false, false }()

	err := runRoot(rootCmd, []string{"host", "extra"})
	assert.NoError(t, err)
	assert.Equal(t, client.ExitUsage, ExitCode)
}

func TestRunRoot_NonInteractRequiresThreeArgs(t *testing.T) {
	uploadFlag, downloadFlag = true, false
	defer func() { uploadFlag = false }()

	err := runRoot(rootCmd, []string{"host", "/src"})
	assert.NoError(t, err)
	assert.Equal(t, client.ExitUsage, ExitCode)
}
