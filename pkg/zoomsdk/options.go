package zoomsdk

import "fmt"

// InitOptions is the caller-supplied, possibly partial, engine configuration.
// Zero values mean "use the default"; the *bool fields exist so that an
// explicit false can be told apart from an absent value. An explicit false
// for EnableLog, PerMonitorAwareness or EnableRawDataIntermediateMode reaches
// the engine as false; only a nil pointer takes the default.
type InitOptions struct {
	Path       string                 `json:"path,omitempty" yaml:"path,omitempty"`
	Domain     string                 `json:"domain,omitempty" yaml:"domain,omitempty"`
	LangName   string                 `json:"lang_name,omitempty" yaml:"lang_name,omitempty"`
	LangInfo   string                 `json:"lang_info,omitempty" yaml:"lang_info,omitempty"`
	LangType   CustomizedLanguageType `json:"lang_type,omitempty" yaml:"lang_type,omitempty"`
	SupportURL string                 `json:"support_url,omitempty" yaml:"support_url,omitempty"`
	LangID     LanguageID             `json:"lang_id,omitempty" yaml:"lang_id,omitempty"`
	EnableLog  *bool                  `json:"enable_log,omitempty" yaml:"enable_log,omitempty"`
	Locale     AppLocale              `json:"locale,omitempty" yaml:"locale,omitempty"`

	// LogFileSize is the size of one log file in megabytes (1..50, 0 for the default).
	LogFileSize int `json:"log_file_size,omitempty" yaml:"log_file_size,omitempty"`

	EnableGenerateDump  bool  `json:"enable_generate_dump,omitempty" yaml:"enable_generate_dump,omitempty"`
	PerMonitorAwareness *bool `json:"per_monitor_awareness,omitempty" yaml:"per_monitor_awareness,omitempty"`

	VideoRenderMode        VideoRenderMode   `json:"video_render_mode,omitempty" yaml:"video_render_mode,omitempty"`
	VideoRawDataMemoryMode RawDataMemoryMode `json:"video_rawdata_memory_mode,omitempty" yaml:"video_rawdata_memory_mode,omitempty"`
	ShareRawDataMemoryMode RawDataMemoryMode `json:"share_rawdata_memory_mode,omitempty" yaml:"share_rawdata_memory_mode,omitempty"`
	AudioRawDataMemoryMode RawDataMemoryMode `json:"audio_rawdata_memory_mode,omitempty" yaml:"audio_rawdata_memory_mode,omitempty"`

	EnableRawDataIntermediateMode *bool `json:"enable_rawdata_intermediate_mode,omitempty" yaml:"enable_rawdata_intermediate_mode,omitempty"`
}

// Validate checks enum ranges and the log file size. Resolve does not call
// it; decoders at the process boundary do.
func (o *InitOptions) Validate() error {
	if o.LangType < CustomizedLanguageNone || o.LangType > CustomizedLanguageContent {
		return fmt.Errorf("%w: lang_type %d", ErrInvalidArgument, o.LangType)
	}
	if o.LangID < LanguageUnknown || o.LangID > languageIDMax {
		return fmt.Errorf("%w: lang_id %d", ErrInvalidArgument, o.LangID)
	}
	if o.Locale < LocaleDefault || o.Locale > LocaleCN {
		return fmt.Errorf("%w: locale %d", ErrInvalidArgument, o.Locale)
	}
	if o.LogFileSize < 0 || o.LogFileSize > MaxLogFileSize {
		return fmt.Errorf("%w: log_file_size %d out of range 0..%d (0 selects the default)", ErrInvalidArgument, o.LogFileSize, MaxLogFileSize)
	}
	if o.VideoRenderMode < VideoRenderModeNone || o.VideoRenderMode > VideoRenderModeGDI {
		return fmt.Errorf("%w: video_render_mode %d", ErrInvalidArgument, o.VideoRenderMode)
	}
	for name, m := range map[string]RawDataMemoryMode{
		"video_rawdata_memory_mode": o.VideoRawDataMemoryMode,
		"share_rawdata_memory_mode": o.ShareRawDataMemoryMode,
		"audio_rawdata_memory_mode": o.AudioRawDataMemoryMode,
	} {
		if m < RawDataMemoryModeStack || m > RawDataMemoryModeHeap {
			return fmt.Errorf("%w: %s %d", ErrInvalidArgument, name, m)
		}
	}
	return nil
}

// Bool returns a pointer to v, for filling the optional InitOptions fields.
func Bool(v bool) *bool {
	return &v
}

// LoadOptions controls how the native engine is located on first construction.
type LoadOptions struct {
	// Path overrides the directory the native module is loaded from.
	Path string
	// Platform overrides the detected host platform.
	Platform *Platform
}

// CapabilityOptions is handed to a capability constructor.
type CapabilityOptions struct {
	// Engine is injected by the facade; any caller value is replaced.
	Engine Engine
}
