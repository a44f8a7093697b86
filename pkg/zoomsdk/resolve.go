package zoomsdk

import "runtime"

// Defaults applied by Resolve.
const (
	DefaultDomain      = "https://www.zoom.us"
	DefaultSupportURL  = "https://zoom.us"
	DefaultLogFileSize = 5  // MB
	MaxLogFileSize     = 50 // MB

	// ModuleFile is the native module name looked up inside the module directory.
	ModuleFile = "zoomsdk.node"
)

// Platform identifies the host the native engine runs on.
// OS and Arch use GOOS/GOARCH spelling.
type Platform struct {
	OS   string `json:"os" yaml:"os"`
	Arch string `json:"arch" yaml:"arch"`
}

// HostPlatform returns the platform of the running process.
func HostPlatform() Platform {
	return Platform{OS: runtime.GOOS, Arch: runtime.GOARCH}
}

// IsDarwin reports whether p is a macOS host.
func (p Platform) IsDarwin() bool {
	return p.OS == "darwin"
}

// EngineConfig is the fully resolved configuration forwarded to InitSDK.
type EngineConfig struct {
	Path                          string                 `json:"path" yaml:"path"`
	Domain                        string                 `json:"domain" yaml:"domain"`
	LangName                      string                 `json:"lang_name" yaml:"lang_name"`
	LangInfo                      string                 `json:"lang_info" yaml:"lang_info"`
	LangType                      CustomizedLanguageType `json:"lang_type" yaml:"lang_type"`
	SupportURL                    string                 `json:"support_url" yaml:"support_url"`
	LangID                        LanguageID             `json:"lang_id" yaml:"lang_id"`
	EnableLog                     bool                   `json:"enable_log" yaml:"enable_log"`
	Locale                        AppLocale              `json:"locale" yaml:"locale"`
	LogFileSize                   int                    `json:"log_file_size" yaml:"log_file_size"`
	EnableGenerateDump            bool                   `json:"enable_generate_dump" yaml:"enable_generate_dump"`
	PerMonitorAwareness           bool                   `json:"per_monitor_awareness" yaml:"per_monitor_awareness"`
	VideoRenderMode               VideoRenderMode        `json:"video_render_mode" yaml:"video_render_mode"`
	VideoRawDataMemoryMode        RawDataMemoryMode      `json:"video_rawdata_memory_mode" yaml:"video_rawdata_memory_mode"`
	ShareRawDataMemoryMode        RawDataMemoryMode      `json:"share_rawdata_memory_mode" yaml:"share_rawdata_memory_mode"`
	AudioRawDataMemoryMode        RawDataMemoryMode      `json:"audio_rawdata_memory_mode" yaml:"audio_rawdata_memory_mode"`
	EnableRawDataIntermediateMode bool                   `json:"enable_rawdata_intermediate_mode" yaml:"enable_rawdata_intermediate_mode"`
}

// Args returns the configuration in the positional order of the native
// init entry point.
func (c EngineConfig) Args() []any {
	return []any{
		c.Path,
		c.Domain,
		c.LangName,
		c.LangInfo,
		c.LangType,
		c.SupportURL,
		c.LangID,
		c.EnableLog,
		c.Locale,
		c.LogFileSize,
		c.EnableGenerateDump,
		c.PerMonitorAwareness,
		c.VideoRenderMode,
		c.VideoRawDataMemoryMode,
		c.ShareRawDataMemoryMode,
		c.AudioRawDataMemoryMode,
		c.EnableRawDataIntermediateMode,
	}
}

// Resolve merges opts with the documented defaults. It never fails.
func Resolve(opts InitOptions, p Platform) EngineConfig {
	return EngineConfig{
		Path:                          opts.Path,
		Domain:                        stringOr(opts.Domain, DefaultDomain),
		LangName:                      opts.LangName,
		LangInfo:                      opts.LangInfo,
		LangType:                      nonZeroOr(opts.LangType, CustomizedLanguageNone),
		SupportURL:                    stringOr(opts.SupportURL, DefaultSupportURL),
		LangID:                        nonZeroOr(opts.LangID, LanguageUnknown),
		EnableLog:                     boolOr(opts.EnableLog, true),
		Locale:                        nonZeroOr(opts.Locale, LocaleDefault),
		LogFileSize:                   nonZeroOr(opts.LogFileSize, DefaultLogFileSize),
		EnableGenerateDump:            opts.EnableGenerateDump,
		PerMonitorAwareness:           boolOr(opts.PerMonitorAwareness, true),
		VideoRenderMode:               nonZeroOr(opts.VideoRenderMode, VideoRenderModeNone),
		VideoRawDataMemoryMode:        nonZeroOr(opts.VideoRawDataMemoryMode, RawDataMemoryModeStack),
		ShareRawDataMemoryMode:        nonZeroOr(opts.ShareRawDataMemoryMode, RawDataMemoryModeStack),
		AudioRawDataMemoryMode:        nonZeroOr(opts.AudioRawDataMemoryMode, RawDataMemoryModeStack),
		EnableRawDataIntermediateMode: boolOr(opts.EnableRawDataIntermediateMode, !p.IsDarwin()),
	}
}

// ResolveModulePath returns the directory the native module is loaded from.
func ResolveModulePath(path string, p Platform) string {
	if path != "" {
		return path
	}
	switch {
	case p.IsDarwin():
		return "./../sdk/mac/"
	case p.OS == "linux":
		return "./../sdk/linux/"
	case p.Arch == "amd64":
		return "./../sdk/win64/"
	default:
		return "./../sdk/win32/"
	}
}

func stringOr(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

func boolOr(v *bool, def bool) bool {
	if v != nil {
		return *v
	}
	return def
}

func nonZeroOr[T comparable](v, def T) T {
	var zero T
	if v != zero {
		return v
	}
	return def
}
