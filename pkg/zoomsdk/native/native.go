//go:build cgo && zoomsdk

package native

/*
#cgo LDFLAGS: -lzoomsdk_c
#include <stdlib.h>
#include "zoom_sdk_c.h"
*/
import "C"
import (
	"fmt"
	"os"
	"path/filepath"
	"unsafe"

	"github.com/qieqieplus/zoomsdk-facade/pkg/log"
	"github.com/qieqieplus/zoomsdk-facade/pkg/zoomsdk"
)

// engine binds the C shim. Every call runs on the same locked OS thread.
type engine struct {
	thread *zoomsdk.OSThread
}

// Load opens the native module found in dir.
func Load(dir string) (zoomsdk.Engine, error) {
	module := filepath.Join(dir, zoomsdk.ModuleFile)
	if _, err := os.Stat(module); err != nil {
		return nil, fmt.Errorf("native module: %w", err)
	}

	e := &engine{thread: zoomsdk.NewOSThread()}
	e.thread.Start()

	cDir := C.CString(dir)
	defer C.free(unsafe.Pointer(cDir))

	var result C.int
	if err := e.thread.Execute(func() {
		result = C.zoom_sdk_load(cDir)
	}); err != nil {
		e.thread.Stop()
		return nil, err
	}
	if result != C.ZOOM_SDK_SUCCESS {
		e.thread.Stop()
		return nil, fmt.Errorf("zoom_sdk_load: %s", zoomsdk.SDKError(result))
	}

	log.Debugf("Loaded native module: %s", module)
	return e, nil
}

func (e *engine) InitSDK(cfg zoomsdk.EngineConfig) zoomsdk.SDKError {
	strs := make([]*C.char, 0, 6)
	cstr := func(s string) *C.char {
		p := C.CString(s)
		strs = append(strs, p)
		return p
	}
	defer func() {
		for _, p := range strs {
			C.free(unsafe.Pointer(p))
		}
	}()

	params := C.ZoomInitParams{
		path:                             cstr(cfg.Path),
		domain:                           cstr(cfg.Domain),
		lang_name:                        cstr(cfg.LangName),
		lang_info:                        cstr(cfg.LangInfo),
		lang_type:                        C.int(cfg.LangType),
		support_url:                      cstr(cfg.SupportURL),
		lang_id:                          C.int(cfg.LangID),
		enable_log:                       cBool(cfg.EnableLog),
		locale:                           C.int(cfg.Locale),
		log_file_size:                    C.int(cfg.LogFileSize),
		enable_generate_dump:             cBool(cfg.EnableGenerateDump),
		per_monitor_awareness:            cBool(cfg.PerMonitorAwareness),
		video_render_mode:                C.int(cfg.VideoRenderMode),
		video_rawdata_memory_mode:        C.int(cfg.VideoRawDataMemoryMode),
		share_rawdata_memory_mode:        C.int(cfg.ShareRawDataMemoryMode),
		audio_rawdata_memory_mode:        C.int(cfg.AudioRawDataMemoryMode),
		enable_rawdata_intermediate_mode: cBool(cfg.EnableRawDataIntermediateMode),
	}

	status := zoomsdk.InternalError
	if err := e.thread.Execute(func() {
		status = zoomsdk.SDKError(C.zoom_sdk_init(&params))
	}); err != nil {
		log.Errorf("InitSDK not dispatched: %v", err)
	}
	return status
}

func (e *engine) CleanUp() zoomsdk.SDKError {
	status := zoomsdk.InternalError
	if err := e.thread.Execute(func() {
		status = zoomsdk.SDKError(C.zoom_sdk_cleanup())
	}); err != nil {
		log.Errorf("CleanUp not dispatched: %v", err)
	}
	return status
}

func (e *engine) GetVersion() string {
	var version string
	_ = e.thread.Execute(func() {
		if v := C.zoom_sdk_get_version(); v != nil {
			version = C.GoString(v)
		}
	})
	return version
}

func (e *engine) RawDataLicense() zoomsdk.LicenseChecker {
	return license{e: e}
}

type license struct {
	e *engine
}

func (l license) HasRawDataLicense() bool {
	var has bool
	_ = l.e.thread.Execute(func() {
		has = C.zoom_sdk_has_rawdata_license() != 0
	})
	return has
}

func cBool(v bool) C.int {
	if v {
		return 1
	}
	return 0
}
