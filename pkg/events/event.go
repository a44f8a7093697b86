package events

import (
	"encoding/json"
	"time"

	"github.com/qieqieplus/zoomsdk-facade/pkg/zoomsdk"
)

// Kind is the type of a lifecycle event.
type Kind string

const (
	KindInitialized       Kind = "initialized"
	KindInitFailed        Kind = "init_failed"
	KindTornDown          Kind = "torn_down"
	KindTeardownFailed    Kind = "teardown_failed"
	KindCapabilityGranted Kind = "capability_granted"
	KindCapabilityDenied  Kind = "capability_denied"
)

// ParseKind maps a wire name to a Kind. ok is false for unknown names.
func ParseKind(s string) (Kind, bool) {
	switch k := Kind(s); k {
	case KindInitialized, KindInitFailed, KindTornDown, KindTeardownFailed,
		KindCapabilityGranted, KindCapabilityDenied:
		return k, true
	}
	return "", false
}

// Event is one facade lifecycle transition.
type Event struct {
	Kind       Kind
	Status     *zoomsdk.SDKError // set for init and teardown events
	Capability zoomsdk.Capability
	Time       time.Time
}

type wireEvent struct {
	Kind       Kind               `json:"kind"`
	Status     string             `json:"status,omitempty"`
	Code       *int               `json:"code,omitempty"`
	Capability zoomsdk.Capability `json:"capability,omitempty"`
	Time       int64              `json:"time"`
}

// Encode serializes the event for the wire. Time is unix milliseconds.
func (e *Event) Encode() ([]byte, error) {
	w := wireEvent{
		Kind:       e.Kind,
		Capability: e.Capability,
		Time:       e.Time.UnixMilli(),
	}
	if e.Status != nil {
		code := int(*e.Status)
		w.Status = e.Status.String()
		w.Code = &code
	}
	return json.Marshal(w)
}
