package zoomsdk

import "fmt"

// LanguageID selects the UI language of the native engine.
type LanguageID int

const (
	LanguageUnknown LanguageID = iota // LANGUAGE_Unknow
	LanguageEnglish
	LanguageChineseSimplified
	LanguageChineseTraditional
	LanguageJapanese
	LanguageSpanish
	LanguageGerman
	LanguageFrench
	LanguagePortuguese
	LanguageRussian
	LanguageKorean
	LanguageVietnamese
	LanguageItalian
	LanguagePolish
	LanguageTurkish
	LanguageIndonesian
	LanguageDutch
	LanguageSwedish

	languageIDMax = LanguageSwedish
)

// CustomizedLanguageType tells the engine how LangName/LangInfo should be read.
type CustomizedLanguageType int

const (
	CustomizedLanguageNone     CustomizedLanguageType = iota // no customized language
	CustomizedLanguageFilePath                               // LangInfo is a file path
	CustomizedLanguageContent                                // LangInfo is the content itself
)

func (t CustomizedLanguageType) String() string {
	switch t {
	case CustomizedLanguageNone:
		return "none"
	case CustomizedLanguageFilePath:
		return "file_path"
	case CustomizedLanguageContent:
		return "content"
	default:
		return fmt.Sprintf("customized_language(%d)", int(t))
	}
}

// AppLocale is the locale hint passed to the engine.
type AppLocale int

const (
	LocaleDefault AppLocale = iota
	LocaleCN
)

func (l AppLocale) String() string {
	switch l {
	case LocaleDefault:
		return "default"
	case LocaleCN:
		return "cn"
	default:
		return fmt.Sprintf("locale(%d)", int(l))
	}
}

// VideoRenderMode selects the renderer used by the engine.
type VideoRenderMode int

const (
	VideoRenderModeNone VideoRenderMode = iota
	VideoRenderModeD3D
	VideoRenderModeGDI
)

func (m VideoRenderMode) String() string {
	switch m {
	case VideoRenderModeNone:
		return "none"
	case VideoRenderModeD3D:
		return "d3d"
	case VideoRenderModeGDI:
		return "gdi"
	default:
		return fmt.Sprintf("render_mode(%d)", int(m))
	}
}

// RawDataMemoryMode controls where the engine allocates raw data buffers.
type RawDataMemoryMode int

const (
	RawDataMemoryModeStack RawDataMemoryMode = iota
	RawDataMemoryModeHeap
)

func (m RawDataMemoryMode) String() string {
	switch m {
	case RawDataMemoryModeStack:
		return "stack"
	case RawDataMemoryModeHeap:
		return "heap"
	default:
		return fmt.Sprintf("memory_mode(%d)", int(m))
	}
}
