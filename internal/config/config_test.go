package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServerConfig_Defaults(t *testing.T) {
	cfg, err := LoadServerConfig("")
	require.NoError(t, err)
	assert.Equal(t, ":0", cfg.ListenAddr)
	assert.True(t, cfg.RegisterPortmap)
	assert.Equal(t, 30*time.Second, cfg.ReadTimeout)
}

func TestLoadServerConfig_EnvOverride(t *testing.T) {
	t.Setenv("FLTR_LISTEN_ADDR", ":9999")
	t.Setenv("FLTR_REGISTER_PORTMAP", "false")

	cfg, err := LoadServerConfig("")
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.ListenAddr)
	assert.False(t, cfg.RegisterPortmap)
}

func TestLoadServerConfig_File(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/config.yaml"
	require.NoError(t, os.WriteFile(path, []byte("listen_addr: \":4000\"\nmetrics_addr: \":9090\"\n"), 0o644))

	cfg, err := LoadServerConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":4000", cfg.ListenAddr)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
}

func TestLoadClientConfig_Defaults(t *testing.T) {
	cfg, err := LoadClientConfig("")
	require.NoError(t, err)
	assert.Equal(t, 25*time.Second, cfg.CallTimeout)
}
