// Package config loads the server and client configuration structs
// through viper, the same precedence chain the teacher's pkg/config
// uses: environment variables override the config file, which overrides
// built-in defaults.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// envPrefix is the environment-variable prefix both configs share; the
// rest of the name is the key with "." replaced by "_", e.g.
// FLTR_LISTEN_ADDR, FLTR_CALL_TIMEOUT, FLTR_LOGGING_LEVEL.
const envPrefix = "FLTR"

// LoggingConfig controls logging behavior, mirroring the teacher's own
// LoggingConfig shape (level/format/output), trimmed to what this
// program's logger package actually accepts.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// ServerConfig configures the fltrd server binary.
type ServerConfig struct {
	// ListenAddr is the TCP address the server binds, e.g. ":0" to let
	// the OS choose a port (the portmapper is then told the real port).
	ListenAddr string `mapstructure:"listen_addr"`

	// RegisterPortmap controls whether the server advertises itself to
	// the host's ONC-RPC portmapper on startup (spec.md §6).
	RegisterPortmap bool `mapstructure:"register_portmap"`

	// PortmapAddr is the portmapper's address, typically "localhost:111".
	PortmapAddr string `mapstructure:"portmap_addr"`

	// MaxFragmentSize is loaded but not passed to the server: the record
	// reader always bounds a fragment by rpc.MaxFragmentSize (64 MiB).
	MaxFragmentSize uint32 `mapstructure:"max_fragment_size"`

	// ReadTimeout and WriteTimeout bound how long a single connection's
	// request read / reply write may take before the handler gives up.
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`

	// MetricsAddr, if non-empty, serves Prometheus metrics on this
	// address (e.g. ":9090"); empty disables the metrics endpoint.
	MetricsAddr string `mapstructure:"metrics_addr"`

	Logging LoggingConfig `mapstructure:"logging"`
}

// ClientConfig configures the fltrc client binary. The client is
// primarily flag-driven (spec.md §6's CLI surface), so this carries
// only what doesn't belong on the command line every invocation.
type ClientConfig struct {
	// CallTimeout is the default per-RPC-call deadline (spec.md §4.1:
	// 25s default, overridable by the caller).
	CallTimeout time.Duration `mapstructure:"call_timeout"`

	Logging LoggingConfig `mapstructure:"logging"`
}

// DefaultServerConfig returns the built-in server defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		ListenAddr:      ":0",
		RegisterPortmap: true,
		PortmapAddr:     "localhost:111",
		MaxFragmentSize: 64 * 1024 * 1024,
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    30 * time.Second,
		MetricsAddr:     "",
		Logging:         LoggingConfig{Level: "INFO", Format: "text", Output: "stdout"},
	}
}

// DefaultClientConfig returns the built-in client defaults.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		CallTimeout: 25 * time.Second,
		Logging:     LoggingConfig{Level: "INFO", Format: "text", Output: "stderr"},
	}
}

// LoadServerConfig loads ServerConfig from an optional file, environment
// variables (FLTR_*), and defaults, in that order of increasing priority.
func LoadServerConfig(path string) (ServerConfig, error) {
	def := DefaultServerConfig()
	v := newViper(path)
	bindDefaults(v, map[string]any{
		"listen_addr":       def.ListenAddr,
		"register_portmap":  def.RegisterPortmap,
		"portmap_addr":      def.PortmapAddr,
		"max_fragment_size": def.MaxFragmentSize,
		"read_timeout":      def.ReadTimeout,
		"write_timeout":     def.WriteTimeout,
		"metrics_addr":      def.MetricsAddr,
		"logging.level":     def.Logging.Level,
		"logging.format":    def.Logging.Format,
		"logging.output":    def.Logging.Output,
	})
	if err := readIfPresent(v, path); err != nil {
		return def, err
	}
	var cfg ServerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return def, fmt.Errorf("unmarshal server config: %w", err)
	}
	return cfg, nil
}

// LoadClientConfig loads ClientConfig the same way LoadServerConfig does.
func LoadClientConfig(path string) (ClientConfig, error) {
	def := DefaultClientConfig()
	v := newViper(path)
	bindDefaults(v, map[string]any{
		"call_timeout":   def.CallTimeout,
		"logging.level":  def.Logging.Level,
		"logging.format": def.Logging.Format,
		"logging.output": def.Logging.Output,
	})
	if err := readIfPresent(v, path); err != nil {
		return def, err
	}
	var cfg ClientConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return def, fmt.Errorf("unmarshal client config: %w", err)
	}
	return cfg, nil
}

// bindDefaults registers each default under its mapstructure key path so
// viper's AutomaticEnv lookup (and Unmarshal) can resolve it even when
// neither a config file nor an env var sets it.
func bindDefaults(v *viper.Viper, defaults map[string]any) {
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
	}
	return v
}

func readIfPresent(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %q: %w", path, err)
	}
	return nil
}
