package events

import (
	"time"

	"github.com/qieqieplus/zoomsdk-facade/pkg/zoomsdk"
)

// Observer publishes facade transitions on a Bus.
type Observer struct {
	bus *Bus
}

var _ zoomsdk.Observer = (*Observer)(nil)

// NewObserver returns a zoomsdk.Observer backed by bus.
func NewObserver(bus *Bus) *Observer {
	return &Observer{bus: bus}
}

func (o *Observer) Initialized(status zoomsdk.SDKError, _ zoomsdk.EngineConfig) {
	kind := KindInitialized
	if !status.IsSuccess() {
		kind = KindInitFailed
	}
	o.bus.Publish(&Event{Kind: kind, Status: &status, Time: time.Now()})
}

func (o *Observer) TornDown(status zoomsdk.SDKError) {
	kind := KindTornDown
	if !status.IsSuccess() {
		kind = KindTeardownFailed
	}
	o.bus.Publish(&Event{Kind: kind, Status: &status, Time: time.Now()})
}

func (o *Observer) Acquired(name zoomsdk.Capability, granted bool) {
	kind := KindCapabilityGranted
	if !granted {
		kind = KindCapabilityDenied
	}
	o.bus.Publish(&Event{Kind: kind, Capability: name, Time: time.Now()})
}
