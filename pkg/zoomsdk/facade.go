package zoomsdk

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/qieqieplus/zoomsdk-facade/pkg/log"
)

// Observer is notified of facade lifecycle transitions. Callbacks run while
// the facade lock is held and must not call back into the facade.
type Observer interface {
	Initialized(status SDKError, cfg EngineConfig)
	TornDown(status SDKError)
	Acquired(name Capability, granted bool)
}

// FacadeOption configures a Facade at construction.
type FacadeOption func(*Facade)

// WithObserver registers an observer. Multiple observers are called in order.
func WithObserver(o Observer) FacadeOption {
	return func(f *Facade) {
		f.observers = append(f.observers, o)
	}
}

// WithRegistry replaces the default capability registry.
func WithRegistry(r *Registry) FacadeOption {
	return func(f *Facade) {
		f.registry = r
	}
}

// Facade owns the native engine handle and its lifecycle gate.
type Facade struct {
	engine     Engine
	gate       Gate
	registry   *Registry
	platform   Platform
	modulePath string
	observers  []Observer

	// mu serializes Initialize, Teardown, Acquire and HasRawDataLicense so
	// the gate check and the native call can't interleave.
	mu         sync.Mutex
	lastConfig *EngineConfig
}

// NewFacade wraps an already loaded engine. Most callers go through Provider.
func NewFacade(engine Engine, p Platform, modulePath string, opts ...FacadeOption) *Facade {
	f := &Facade{
		engine:     engine,
		registry:   NewRegistry(),
		platform:   p,
		modulePath: modulePath,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Initialize resolves opts, forwards them to the native init entry point
// and opens the gate when the engine reports success. The native status is
// returned unchanged.
func (f *Facade) Initialize(opts InitOptions) SDKError {
	f.mu.Lock()
	defer f.mu.Unlock()

	cfg := Resolve(opts, f.platform)
	f.lastConfig = &cfg

	logger := log.WithFields(logrus.Fields{
		"domain":            cfg.Domain,
		"enable_log":        cfg.EnableLog,
		"intermediate_mode": cfg.EnableRawDataIntermediateMode,
		"platform":          f.platform.OS + "/" + f.platform.Arch,
	})
	logger.Info("Initializing native engine")

	status := f.engine.InitSDK(cfg)
	logger = logger.WithField("status", status.String())
	if status.IsSuccess() {
		f.gate.MarkInitialized()
		logger.Info("Native engine initialized")
	} else {
		logger.Warn("Native engine init failed")
	}

	for _, o := range f.observers {
		o.Initialized(status, cfg)
	}
	return status
}

// Teardown calls the native cleanup entry point. On success the gate is
// closed and memoized submodules are dropped, so nothing can be acquired
// against a torn-down engine.
func (f *Facade) Teardown() SDKError {
	f.mu.Lock()
	defer f.mu.Unlock()

	status := f.engine.CleanUp()
	logger := log.WithFields(logrus.Fields{"status": status.String()})
	if status.IsSuccess() {
		f.gate.reset()
		f.registry.Reset()
		logger.Info("Native engine cleaned up")
	} else {
		logger.Warn("Native engine cleanup failed")
	}

	for _, o := range f.observers {
		o.TornDown(status)
	}
	return status
}

// Version returns the native engine version. Not gated.
func (f *Facade) Version() string {
	return f.engine.GetVersion()
}

// Acquire returns the submodule for name. ok is false when the engine is not
// initialized yet; that is a normal outcome, not an error. An unknown name
// returns ErrUnknownCapability.
func (f *Facade) Acquire(name Capability, opts CapabilityOptions) (sub Submodule, ok bool, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	name, err = ParseCapability(string(name))
	if err != nil {
		return nil, false, err
	}

	if name.Gated() && !f.gate.IsInitialized() {
		log.Debugf("Capability %s requested before init", name)
		f.notifyAcquired(name, false)
		return nil, false, nil
	}

	opts.Engine = f.engine
	sub, err = f.registry.Get(name, opts)
	if err != nil {
		return nil, false, fmt.Errorf("acquire %s: %w", name, err)
	}
	f.notifyAcquired(name, true)
	return sub, true, nil
}

func (f *Facade) notifyAcquired(name Capability, granted bool) {
	for _, o := range f.observers {
		o.Acquired(name, granted)
	}
}

func (f *Facade) acquireKnown(name Capability, opts []CapabilityOptions) (Submodule, bool) {
	var o CapabilityOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	sub, ok, err := f.Acquire(name, o)
	if err != nil {
		log.Errorf("Failed to acquire %s: %v", name, err)
		return nil, false
	}
	return sub, ok
}

// Auth returns the authentication submodule. Gated.
func (f *Facade) Auth(opts ...CapabilityOptions) (Submodule, bool) {
	return f.acquireKnown(CapabilityAuth, opts)
}

// Meeting returns the meeting service submodule. Gated.
func (f *Facade) Meeting(opts ...CapabilityOptions) (Submodule, bool) {
	return f.acquireKnown(CapabilityMeeting, opts)
}

// Setting returns the settings submodule. Gated.
func (f *Facade) Setting(opts ...CapabilityOptions) (Submodule, bool) {
	return f.acquireKnown(CapabilitySetting, opts)
}

// CustomizedResource is available regardless of engine state.
func (f *Facade) CustomizedResource(opts ...CapabilityOptions) (Submodule, bool) {
	return f.acquireKnown(CapabilityCustomizedResource, opts)
}

// PreMeeting returns the pre-meeting (scheduling) submodule. Gated.
func (f *Facade) PreMeeting(opts ...CapabilityOptions) (Submodule, bool) {
	return f.acquireKnown(CapabilityPreMeeting, opts)
}

// RawData returns the raw audio/video data submodule. Gated.
func (f *Facade) RawData(opts ...CapabilityOptions) (Submodule, bool) {
	return f.acquireKnown(CapabilityRawData, opts)
}

// SMSHelper returns the SMS verification submodule. Gated.
func (f *Facade) SMSHelper(opts ...CapabilityOptions) (Submodule, bool) {
	return f.acquireKnown(CapabilitySMSHelper, opts)
}

// HasRawDataLicense queries the engine license. known is false before a
// successful init: the result is undefined then, which is not the same as
// having no license.
func (f *Facade) HasRawDataLicense() (has bool, known bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.gate.IsInitialized() {
		return false, false
	}
	checker := f.engine.RawDataLicense()
	if checker == nil {
		return false, false
	}
	return checker.HasRawDataLicense(), true
}

// Capabilities lists the capability names the registry can construct.
func (f *Facade) Capabilities() []Capability {
	return f.registry.Names()
}

// State returns the lifecycle state.
func (f *Facade) State() LifecycleState {
	return f.gate.State()
}

// IsInitialized reports whether gated capabilities can be acquired.
func (f *Facade) IsInitialized() bool {
	return f.gate.IsInitialized()
}

// LastConfig returns the configuration most recently passed to the engine.
func (f *Facade) LastConfig() (EngineConfig, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lastConfig == nil {
		return EngineConfig{}, false
	}
	return *f.lastConfig, true
}

// Platform returns the platform the facade resolves defaults for.
func (f *Facade) Platform() Platform {
	return f.platform
}

// ModulePath returns the directory the engine was loaded from.
func (f *Facade) ModulePath() string {
	return f.modulePath
}
