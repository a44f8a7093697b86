package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qieqieplus/zoomsdk-facade/pkg/zoomsdk"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 100, cfg.EventQueueSize)
	assert.Equal(t, 5*time.Second, cfg.WebSocket.WriteTimeout)
	assert.Equal(t, 3*time.Minute, cfg.WebSocket.ReadTimeout)
	assert.Equal(t, 60*time.Second, cfg.WebSocket.PingInterval)
	assert.False(t, cfg.SDK.AutoInit)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"HTTP_ADDR":               "127.0.0.1:9000",
		"LOG_FORMAT":              "text",
		"EVENT_QUEUE_SIZE":        "8",
		"WEBSOCKET_PING_INTERVAL": "10s",
		"WEBSOCKET_READ_TIMEOUT":  "30s",
		"ZOOM_SDK_PATH":           "/opt/zoom",
		"ZOOM_PLATFORM":           "darwin/arm64",
		"ZOOM_ENGINE_CONFIG":      "/etc/zoom/engine.yaml",
		"ZOOM_AUTO_INIT":          "true",
	})
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "127.0.0.1:9000", cfg.HTTPAddr)
	assert.Equal(t, 8, cfg.EventQueueSize)
	assert.Equal(t, 10*time.Second, cfg.WebSocket.PingInterval)
	assert.Equal(t, "/etc/zoom/engine.yaml", cfg.SDK.EngineConfigFile)
	assert.True(t, cfg.SDK.AutoInit)

	opts, err := cfg.SDK.LoadOptions()
	require.NoError(t, err)
	assert.Equal(t, "/opt/zoom", opts.Path)
	require.NotNil(t, opts.Platform)
	assert.Equal(t, zoomsdk.Platform{OS: "darwin", Arch: "arm64"}, *opts.Platform)
}

func TestLoadFrom_BadDuration(t *testing.T) {
	_, err := LoadFrom(map[string]string{"WEBSOCKET_WRITE_TIMEOUT": "soon"})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"empty addr", func(c *Config) { c.HTTPAddr = "" }, ErrMissingHTTPAddr},
		{"bad format", func(c *Config) { c.LogFormat = "xml" }, ErrInvalidLogFormat},
		{"zero queue", func(c *Config) { c.EventQueueSize = 0 }, ErrInvalidQueueSize},
		{"huge queue", func(c *Config) { c.EventQueueSize = MaxEventQueueSize + 1 }, ErrInvalidQueueSize},
		{"ping after deadline", func(c *Config) { c.WebSocket.PingInterval = 5 * time.Minute }, ErrInvalidKeepalive},
		{"bad platform", func(c *Config) { c.SDK.Platform = "linux" }, ErrInvalidPlatform},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadFrom(map[string]string{})
			require.NoError(t, err)
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.want)
		})
	}
}

func TestLoad_EnvFileFillsUnset(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(file, []byte("HTTP_ADDR=:7000\nLOG_LEVEL=debug\n"), 0o600))

	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.HTTPAddr)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_MissingEnvFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestParsePlatform(t *testing.T) {
	p, err := ParsePlatform("windows/386")
	require.NoError(t, err)
	assert.Equal(t, zoomsdk.Platform{OS: "windows", Arch: "386"}, p)

	for _, bad := range []string{"", "linux", "/amd64", "linux/"} {
		_, err := ParsePlatform(bad)
		assert.ErrorIs(t, err, ErrInvalidPlatform, bad)
	}
}

func TestDecodeInitOptions(t *testing.T) {
	opts, err := DecodeInitOptions(strings.NewReader(`
domain: https://example.zoom.us
log_file_size: 20
enable_log: false
enable_rawdata_intermediate_mode: true
audio_rawdata_memory_mode: 1
`))
	require.NoError(t, err)

	assert.Equal(t, "https://example.zoom.us", opts.Domain)
	assert.Equal(t, 20, opts.LogFileSize)
	require.NotNil(t, opts.EnableLog)
	assert.False(t, *opts.EnableLog)
	require.NotNil(t, opts.EnableRawDataIntermediateMode)
	assert.True(t, *opts.EnableRawDataIntermediateMode)
	assert.Equal(t, zoomsdk.RawDataMemoryModeHeap, opts.AudioRawDataMemoryMode)
	assert.Nil(t, opts.PerMonitorAwareness)
}

func TestDecodeInitOptions_Empty(t *testing.T) {
	opts, err := DecodeInitOptions(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, zoomsdk.InitOptions{}, opts)
}

func TestDecodeInitOptions_UnknownField(t *testing.T) {
	_, err := DecodeInitOptions(strings.NewReader("domian: https://typo.example\n"))
	assert.ErrorIs(t, err, ErrInvalidEngineConfig)
}

func TestDecodeInitOptions_OutOfRange(t *testing.T) {
	_, err := DecodeInitOptions(strings.NewReader("log_file_size: 51\n"))
	assert.ErrorIs(t, err, zoomsdk.ErrInvalidArgument)
}

func TestLoadInitOptions(t *testing.T) {
	file := filepath.Join(t.TempDir(), "engine.yaml")
	require.NoError(t, os.WriteFile(file, []byte("lang_id: 1\nper_monitor_awareness: false\n"), 0o600))

	opts, err := LoadInitOptions(file)
	require.NoError(t, err)
	assert.Equal(t, zoomsdk.LanguageEnglish, opts.LangID)
	require.NotNil(t, opts.PerMonitorAwareness)
	assert.False(t, *opts.PerMonitorAwareness)

	_, err = LoadInitOptions(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
