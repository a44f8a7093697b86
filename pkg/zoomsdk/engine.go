package zoomsdk

// Engine is the native engine handle. It is loaded once per process and
// shared by the facade and every capability submodule.
type Engine interface {
	InitSDK(cfg EngineConfig) SDKError
	CleanUp() SDKError
	GetVersion() string
	RawDataLicense() LicenseChecker
}

// LicenseChecker is the nested raw data license accessor of the engine.
type LicenseChecker interface {
	HasRawDataLicense() bool
}

// Loader loads the native engine from a module directory.
// Provider wraps a loader error in ErrEngineLoad and keeps it.
type Loader func(modulePath string) (Engine, error)
