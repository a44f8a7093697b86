package zoomsdk

import "fmt"

// SDKError is the status code returned by the native engine.
// Values are surfaced to callers unchanged.
type SDKError int

// Status codes (from SDKError in the native headers)
const (
	Success                         SDKError = 0 // SDKERR_SUCCESS
	NoImpl                          SDKError = 1
	WrongUsage                      SDKError = 2
	InvalidParameter                SDKError = 3
	ModuleLoadFailed                SDKError = 4
	MemoryFailed                    SDKError = 5
	ServiceFailed                   SDKError = 6
	Uninitialize                    SDKError = 7
	Unauthentication                SDKError = 8
	NoRecordingInProcess            SDKError = 9
	TranscoderNotFound              SDKError = 10
	VideoNotReady                   SDKError = 11
	NoPermission                    SDKError = 12
	Unknown                         SDKError = 13
	OtherSDKInstanceRunning         SDKError = 14
	InternalError                   SDKError = 15
	NoAudioDeviceFound              SDKError = 16
	NoVideoDeviceFound              SDKError = 17
	TooFrequentCall                 SDKError = 18
	FailAssignUserPrivilege         SDKError = 19
	MeetingDontSupportFeature       SDKError = 20
	MeetingNotShareSender           SDKError = 21
	MeetingYouHaveNoShare           SDKError = 22
	MeetingViewTypeParameterIsWrong SDKError = 23
	MeetingAnnotationIsOff          SDKError = 24
	SettingOSDontSupport            SDKError = 25
	EmailLoginIsDisabled            SDKError = 26
	HardwareNotMeetForVB            SDKError = 27
	NeedUserConfirmRecordDisclaimer SDKError = 28
)

var sdkErrorNames = map[SDKError]string{
	Success:                         "SDKERR_SUCCESS",
	NoImpl:                          "SDKERR_NO_IMPL",
	WrongUsage:                      "SDKERR_WRONG_USAGE",
	InvalidParameter:                "SDKERR_INVALID_PARAMETER",
	ModuleLoadFailed:                "SDKERR_MODULE_LOAD_FAILED",
	MemoryFailed:                    "SDKERR_MEMORY_FAILED",
	ServiceFailed:                   "SDKERR_SERVICE_FAILED",
	Uninitialize:                    "SDKERR_UNINITIALIZE",
	Unauthentication:                "SDKERR_UNAUTHENTICATION",
	NoRecordingInProcess:            "SDKERR_NORECORDINGINPROCESS",
	TranscoderNotFound:              "SDKERR_TRANSCODER_NOFOUND",
	VideoNotReady:                   "SDKERR_VIDEO_NOTREADY",
	NoPermission:                    "SDKERR_NO_PERMISSION",
	Unknown:                         "SDKERR_UNKNOWN",
	OtherSDKInstanceRunning:         "SDKERR_OTHER_SDK_INSTANCE_RUNNING",
	InternalError:                   "SDKERR_INTERNAL_ERROR",
	NoAudioDeviceFound:              "SDKERR_NO_AUDIODEVICE_ISFOUND",
	NoVideoDeviceFound:              "SDKERR_NO_VIDEODEVICE_ISFOUND",
	TooFrequentCall:                 "SDKERR_TOO_FREQUENT_CALL",
	FailAssignUserPrivilege:         "SDKERR_FAIL_ASSIGN_USER_PRIVILEGE",
	MeetingDontSupportFeature:       "SDKERR_MEETING_DONT_SUPPORT_FEATURE",
	MeetingNotShareSender:           "SDKERR_MEETING_NOT_SHARE_SENDER",
	MeetingYouHaveNoShare:           "SDKERR_MEETING_YOU_HAVE_NO_SHARE",
	MeetingViewTypeParameterIsWrong: "SDKERR_MEETING_VIEWTYPE_PARAMETER_IS_WRONG",
	MeetingAnnotationIsOff:          "SDKERR_MEETING_ANNOTATION_IS_OFF",
	SettingOSDontSupport:            "SDKERR_SETTING_OS_DONT_SUPPORT",
	EmailLoginIsDisabled:            "SDKERR_EMAIL_LOGIN_IS_DISABLED",
	HardwareNotMeetForVB:            "SDKERR_HARDWARE_NOT_MEET_FOR_VB",
	NeedUserConfirmRecordDisclaimer: "SDKERR_NEED_USER_CONFIRM_RECORD_DISCLAIMER",
}

func (e SDKError) String() string {
	if name, ok := sdkErrorNames[e]; ok {
		return name
	}
	return fmt.Sprintf("SDKERR_%d", int(e))
}

func (e SDKError) Error() string {
	return e.String()
}

// IsSuccess reports whether e is the success sentinel.
func (e SDKError) IsSuccess() bool {
	return e == Success
}
