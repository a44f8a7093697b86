package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qieqieplus/zoomsdk-facade/pkg/events"
	"github.com/qieqieplus/zoomsdk-facade/pkg/zoomsdk"
	"github.com/qieqieplus/zoomsdk-facade/pkg/zoomsdk/zoomsdktest"
)

func TestObserver_RecordsFacadeActivity(t *testing.T) {
	c := New()
	engine := zoomsdktest.NewEngine()
	f := zoomsdktest.NewFacade(engine, zoomsdk.WithObserver(c.Observer()))

	f.Meeting()
	assert.Equal(t, float64(1), testutil.ToFloat64(c.acquisitions.WithLabelValues("Meeting", "denied")))

	f.Initialize(zoomsdk.InitOptions{})
	assert.Equal(t, float64(1), testutil.ToFloat64(c.initialized))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.initCalls.WithLabelValues("SDKERR_SUCCESS")))

	f.Meeting()
	assert.Equal(t, float64(1), testutil.ToFloat64(c.acquisitions.WithLabelValues("Meeting", "granted")))

	f.Teardown()
	assert.Equal(t, float64(0), testutil.ToFloat64(c.initialized))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.cleanupCalls.WithLabelValues("SDKERR_SUCCESS")))
}

func TestObserver_FailedInitKeepsGauge(t *testing.T) {
	c := New()
	engine := zoomsdktest.NewEngine()
	engine.InitStatus = zoomsdk.InvalidParameter
	f := zoomsdktest.NewFacade(engine, zoomsdk.WithObserver(c.Observer()))

	f.Initialize(zoomsdk.InitOptions{})
	assert.Equal(t, float64(0), testutil.ToFloat64(c.initialized))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.initCalls.WithLabelValues("SDKERR_INVALID_PARAMETER")))
}

func TestInstrumentHandler(t *testing.T) {
	c := New()
	h := c.InstrumentHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sdk/capabilities/Meeting", nil))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, float64(1), testutil.ToFloat64(
		c.httpRequests.WithLabelValues("GET", "/api/sdk/capabilities/:name", "409")))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	c := New()
	c.Observer().Initialized(zoomsdk.Success, zoomsdk.EngineConfig{})

	srv := httptest.NewServer(c.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "zoomsdk_facade_engine_initialized 1")
}

func TestCanonicalPath(t *testing.T) {
	assert.Equal(t, "/api/sdk/capabilities/:name", canonicalPath("/api/sdk/capabilities/RawData"))
	assert.Equal(t, "/api/sdk/capabilities/", canonicalPath("/api/sdk/capabilities/"))
	assert.Equal(t, "/health", canonicalPath("/health"))
}

func TestWatchBus(t *testing.T) {
	c := New()
	bus := events.NewBus()
	c.WatchBus(bus)

	bus.Subscribe(events.NewSubscriber("a", 1))
	bus.Publish(&events.Event{Kind: events.KindInitialized})
	bus.Publish(&events.Event{Kind: events.KindTornDown})

	srv := httptest.NewServer(c.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	text := string(body)
	assert.Contains(t, text, "zoomsdk_facade_events_published_total 2")
	assert.Contains(t, text, "zoomsdk_facade_events_dropped_total 1")
	assert.Contains(t, text, "zoomsdk_facade_events_subscribers 1")
}
