// Package zoomsdktest provides an in-memory engine for tests of code built
// on the zoomsdk facade.
package zoomsdktest

import (
	"sync"

	"github.com/qieqieplus/zoomsdk-facade/pkg/zoomsdk"
)

// Engine is a recording fake of the native engine.
type Engine struct {
	mu sync.Mutex

	// InitStatus and CleanupStatus are returned by InitSDK and CleanUp.
	InitStatus    zoomsdk.SDKError
	CleanupStatus zoomsdk.SDKError
	Version       string
	License       bool

	Configs      []zoomsdk.EngineConfig
	InitCalls    int
	CleanupCalls int
}

// NewEngine returns an engine that succeeds on every call.
func NewEngine() *Engine {
	return &Engine{
		InitStatus:    zoomsdk.Success,
		CleanupStatus: zoomsdk.Success,
		Version:       "5.17.11.34827",
		License:       true,
	}
}

func (e *Engine) InitSDK(cfg zoomsdk.EngineConfig) zoomsdk.SDKError {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.InitCalls++
	e.Configs = append(e.Configs, cfg)
	return e.InitStatus
}

func (e *Engine) CleanUp() zoomsdk.SDKError {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.CleanupCalls++
	return e.CleanupStatus
}

func (e *Engine) GetVersion() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.Version
}

func (e *Engine) RawDataLicense() zoomsdk.LicenseChecker {
	return licenseChecker{e: e}
}

// SetInitStatus changes the status returned by subsequent InitSDK calls.
func (e *Engine) SetInitStatus(s zoomsdk.SDKError) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.InitStatus = s
}

// LastConfig returns the most recent config passed to InitSDK.
func (e *Engine) LastConfig() (zoomsdk.EngineConfig, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.Configs) == 0 {
		return zoomsdk.EngineConfig{}, false
	}
	return e.Configs[len(e.Configs)-1], true
}

type licenseChecker struct {
	e *Engine
}

func (c licenseChecker) HasRawDataLicense() bool {
	c.e.mu.Lock()
	defer c.e.mu.Unlock()
	return c.e.License
}

// Loader returns a zoomsdk.Loader that hands out e and records the
// module paths it was asked to load.
func Loader(e *Engine, paths *[]string) zoomsdk.Loader {
	return func(modulePath string) (zoomsdk.Engine, error) {
		if paths != nil {
			*paths = append(*paths, modulePath)
		}
		return e, nil
	}
}

// NewFacade returns a facade over e for the linux/amd64 platform.
func NewFacade(e *Engine, opts ...zoomsdk.FacadeOption) *zoomsdk.Facade {
	p := zoomsdk.Platform{OS: "linux", Arch: "amd64"}
	return zoomsdk.NewFacade(e, p, zoomsdk.ResolveModulePath("", p), opts...)
}
