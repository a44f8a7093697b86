package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qieqieplus/zoomsdk-facade/pkg/zoomsdk"
	"github.com/qieqieplus/zoomsdk-facade/pkg/zoomsdk/zoomsdktest"
)

func TestBus_PublishFiltersByKind(t *testing.T) {
	bus := NewBus()

	all := NewSubscriber("all", 10)
	initOnly := NewSubscriber("init", 10)
	initOnly.SetKindFilter([]Kind{KindInitialized})
	bus.Subscribe(all)
	bus.Subscribe(initOnly)

	sent := bus.Publish(&Event{Kind: KindCapabilityDenied, Capability: zoomsdk.CapabilityMeeting})
	assert.Equal(t, 1, sent)

	sent = bus.Publish(&Event{Kind: KindInitialized})
	assert.Equal(t, 2, sent)

	assert.Len(t, all.Channel, 2)
	assert.Len(t, initOnly.Channel, 1)

	stats := bus.GetStats()
	assert.Equal(t, uint64(2), stats.TotalEvents)
	assert.Equal(t, 2, stats.ActiveSubscribers)
}

func TestBus_DropsWhenFull(t *testing.T) {
	bus := NewBus()
	sub := NewSubscriber("slow", 1)
	bus.Subscribe(sub)

	assert.Equal(t, 1, bus.Publish(&Event{Kind: KindInitialized}))
	assert.Equal(t, 0, bus.Publish(&Event{Kind: KindTornDown}))
	assert.Equal(t, uint64(1), bus.GetStats().DroppedEvents)
}

func TestBus_UnsubscribeClosesChannel(t *testing.T) {
	bus := NewBus()
	sub := NewSubscriber("gone", 1)
	bus.Subscribe(sub)
	bus.Unsubscribe("gone")

	_, open := <-sub.Channel
	assert.False(t, open)
	assert.False(t, sub.IsConnected())
	assert.Equal(t, 0, bus.GetSubscriberCount())
	assert.Equal(t, 0, bus.Publish(&Event{Kind: KindInitialized}))
}

func TestBus_SubscribeReplacesSameID(t *testing.T) {
	bus := NewBus()
	first := NewSubscriber("client", 1)
	second := NewSubscriber("client", 1)
	bus.Subscribe(first)
	bus.Subscribe(second)

	assert.False(t, first.IsConnected())
	assert.Equal(t, 1, bus.GetSubscriberCount())
}

func TestBus_Shutdown(t *testing.T) {
	bus := NewBus()
	sub := NewSubscriber("a", 1)
	bus.Subscribe(sub)
	bus.Shutdown()

	assert.False(t, sub.IsConnected())
	assert.Equal(t, 0, bus.GetSubscriberCount())
}

func TestEvent_Encode(t *testing.T) {
	status := zoomsdk.InvalidParameter
	e := &Event{
		Kind:   KindInitFailed,
		Status: &status,
		Time:   time.UnixMilli(1700000000123),
	}

	data, err := e.Encode()
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "init_failed", got["kind"])
	assert.Equal(t, "SDKERR_INVALID_PARAMETER", got["status"])
	assert.Equal(t, float64(3), got["code"])
	assert.Equal(t, float64(1700000000123), got["time"])
	assert.NotContains(t, got, "capability")

	e = &Event{Kind: KindCapabilityGranted, Capability: zoomsdk.CapabilityRawData}
	data, err = e.Encode()
	require.NoError(t, err)
	got = nil
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "RawData", got["capability"])
	assert.NotContains(t, got, "code")
}

func TestParseKind(t *testing.T) {
	k, ok := ParseKind("torn_down")
	assert.True(t, ok)
	assert.Equal(t, KindTornDown, k)

	_, ok = ParseKind("exploded")
	assert.False(t, ok)
}

func TestObserver_PublishesFacadeTransitions(t *testing.T) {
	bus := NewBus()
	sub := NewSubscriber("test", 10)
	bus.Subscribe(sub)

	engine := zoomsdktest.NewEngine()
	f := zoomsdktest.NewFacade(engine, zoomsdk.WithObserver(NewObserver(bus)))

	f.Meeting()
	f.Initialize(zoomsdk.InitOptions{})
	f.Meeting()
	engine.CleanupStatus = zoomsdk.WrongUsage
	f.Teardown()

	var kinds []Kind
	for len(sub.Channel) > 0 {
		kinds = append(kinds, (<-sub.Channel).Kind)
	}
	assert.Equal(t, []Kind{
		KindCapabilityDenied,
		KindInitialized,
		KindCapabilityGranted,
		KindTeardownFailed,
	}, kinds)
}

func TestBus_StatsSkipClosedSubscribers(t *testing.T) {
	bus := NewBus()
	open := NewSubscriber("open", 1)
	closed := NewSubscriber("closed", 1)
	bus.Subscribe(open)
	bus.Subscribe(closed)
	closed.Close()

	stats := bus.GetStats()
	assert.Equal(t, 1, stats.ActiveSubscribers)
	assert.Equal(t, 2, bus.GetSubscriberCount())
}
