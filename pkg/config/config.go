package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/qieqieplus/zoomsdk-facade/pkg/zoomsdk"
)

// WebSocketConfig holds WebSocket-specific configuration
type WebSocketConfig struct {
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"5s"`  // Timeout for writing messages
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"3m"`   // Read deadline, extended by pongs
	PingInterval time.Duration `env:"PING_INTERVAL" envDefault:"60s"` // Interval for sending pings
}

// SDKConfig locates the native engine and its init options
type SDKConfig struct {
	ModulePath       string `env:"SDK_PATH"`                         // ZOOM_SDK_PATH
	Platform         string `env:"PLATFORM"`                         // ZOOM_PLATFORM, "os/arch"
	EngineConfigFile string `env:"ENGINE_CONFIG"`                    // ZOOM_ENGINE_CONFIG, YAML InitOptions
	AutoInit         bool   `env:"AUTO_INIT" envDefault:"false"`     // ZOOM_AUTO_INIT
}

// MaxEventQueueSize bounds per-subscriber event buffers, for EVENT_QUEUE_SIZE
// and the queue_size query parameter alike.
const MaxEventQueueSize = 10000

type Config struct {
	// Server configuration
	HTTPAddr  string `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Event stream configuration
	EventQueueSize int `env:"EVENT_QUEUE_SIZE" envDefault:"100"`

	SDK       SDKConfig       `envPrefix:"ZOOM_"`
	WebSocket WebSocketConfig `envPrefix:"WEBSOCKET_"`
}

// Load reads configuration from the process environment. Values from
// envFile, when given, fill in variables the environment does not set.
func Load(envFile string) (*Config, error) {
	environ := environMap(os.Environ())

	if envFile != "" {
		vars, err := godotenv.Read(envFile)
		if err != nil {
			return nil, fmt.Errorf("read env file %q: %w", envFile, err)
		}
		for k, v := range vars {
			if _, set := environ[k]; !set {
				environ[k] = v
			}
		}
	}

	return LoadFrom(environ)
}

// LoadFrom parses configuration from an explicit variable map.
func LoadFrom(environ map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.HTTPAddr == "" {
		return ErrMissingHTTPAddr
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.LogFormat)
	}
	if c.EventQueueSize <= 0 || c.EventQueueSize > MaxEventQueueSize {
		return fmt.Errorf("%w: %d", ErrInvalidQueueSize, c.EventQueueSize)
	}
	if c.WebSocket.PingInterval <= 0 || c.WebSocket.PingInterval >= c.WebSocket.ReadTimeout {
		return fmt.Errorf("%w: ping %s, read timeout %s", ErrInvalidKeepalive, c.WebSocket.PingInterval, c.WebSocket.ReadTimeout)
	}
	if _, err := c.SDK.LoadOptions(); err != nil {
		return err
	}
	return nil
}

// LoadOptions converts the SDK section into facade load options.
func (s SDKConfig) LoadOptions() (zoomsdk.LoadOptions, error) {
	opts := zoomsdk.LoadOptions{Path: s.ModulePath}
	if s.Platform != "" {
		p, err := ParsePlatform(s.Platform)
		if err != nil {
			return zoomsdk.LoadOptions{}, err
		}
		opts.Platform = &p
	}
	return opts, nil
}

// ParsePlatform parses "os/arch", e.g. "darwin/arm64".
func ParsePlatform(s string) (zoomsdk.Platform, error) {
	osName, arch, ok := strings.Cut(s, "/")
	if !ok || osName == "" || arch == "" {
		return zoomsdk.Platform{}, fmt.Errorf("%w: %q (want os/arch)", ErrInvalidPlatform, s)
	}
	return zoomsdk.Platform{OS: osName, Arch: arch}, nil
}

// LoadInitOptions reads engine init options from a YAML file. Unknown keys
// are rejected.
func LoadInitOptions(path string) (zoomsdk.InitOptions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return zoomsdk.InitOptions{}, fmt.Errorf("read engine config %q: %w", path, err)
	}
	opts, err := DecodeInitOptions(bytes.NewReader(data))
	if err != nil {
		return zoomsdk.InitOptions{}, fmt.Errorf("engine config %q: %w", path, err)
	}
	return opts, nil
}

// DecodeInitOptions decodes YAML init options. An empty document yields the
// zero options, which resolve to every default.
func DecodeInitOptions(r io.Reader) (zoomsdk.InitOptions, error) {
	var opts zoomsdk.InitOptions

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
		return zoomsdk.InitOptions{}, fmt.Errorf("%w: %v", ErrInvalidEngineConfig, err)
	}
	if err := opts.Validate(); err != nil {
		return zoomsdk.InitOptions{}, err
	}
	return opts, nil
}

func environMap(environ []string) map[string]string {
	out := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		out[k] = v
	}
	return out
}
