package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/qieqieplus/zoomsdk-facade/pkg/events"
	"github.com/qieqieplus/zoomsdk-facade/pkg/zoomsdk"
)

const namespace = "zoomsdk_facade"

// Collectors groups the facade metrics on their own registry.
type Collectors struct {
	Registry *prometheus.Registry

	initialized   prometheus.Gauge
	initCalls     *prometheus.CounterVec
	cleanupCalls  *prometheus.CounterVec
	acquisitions  *prometheus.CounterVec
	httpInFlight  prometheus.Gauge
	httpRequests  *prometheus.CounterVec
	httpDurations *prometheus.HistogramVec
}

// New registers the facade collectors on a fresh registry.
func New() *Collectors {
	c := &Collectors{
		Registry: prometheus.NewRegistry(),

		initialized: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "initialized",
			Help:      "1 while the native engine is initialized.",
		}),
		initCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "init_total",
			Help:      "Native init calls by returned status.",
		}, []string{"status"}),
		cleanupCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "cleanup_total",
			Help:      "Native cleanup calls by returned status.",
		}, []string{"status"}),
		acquisitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "capability",
			Name:      "acquisitions_total",
			Help:      "Capability acquisition attempts by outcome.",
		}, []string{"capability", "result"}),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "path", "status"}),
		httpDurations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		}, []string{"method", "path"}),
	}

	c.Registry.MustRegister(
		c.initialized,
		c.initCalls,
		c.cleanupCalls,
		c.acquisitions,
		c.httpInFlight,
		c.httpRequests,
		c.httpDurations,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
	return c
}

// Handler exposes the registry in the Prometheus text format.
func (c *Collectors) Handler() http.Handler {
	return promhttp.HandlerFor(c.Registry, promhttp.HandlerOpts{})
}

// WatchBus exports the counters of bus. Call it once per registry.
func (c *Collectors) WatchBus(bus *events.Bus) {
	c.Registry.MustRegister(
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "published_total",
			Help:      "Lifecycle events published on the bus.",
		}, func() float64 { return float64(bus.GetStats().TotalEvents) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "dropped_total",
			Help:      "Event deliveries dropped because a subscriber queue was full.",
		}, func() float64 { return float64(bus.GetStats().DroppedEvents) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "subscribers",
			Help:      "Connected event subscribers.",
		}, func() float64 { return float64(bus.GetStats().ActiveSubscribers) }),
	)
}

// Observer returns a zoomsdk.Observer feeding these collectors.
func (c *Collectors) Observer() zoomsdk.Observer {
	return facadeObserver{c: c}
}

type facadeObserver struct {
	c *Collectors
}

func (o facadeObserver) Initialized(status zoomsdk.SDKError, _ zoomsdk.EngineConfig) {
	o.c.initCalls.WithLabelValues(status.String()).Inc()
	if status.IsSuccess() {
		o.c.initialized.Set(1)
	}
}

func (o facadeObserver) TornDown(status zoomsdk.SDKError) {
	o.c.cleanupCalls.WithLabelValues(status.String()).Inc()
	if status.IsSuccess() {
		o.c.initialized.Set(0)
	}
}

func (o facadeObserver) Acquired(name zoomsdk.Capability, granted bool) {
	result := "granted"
	if !granted {
		result = "denied"
	}
	o.c.acquisitions.WithLabelValues(string(name), result).Inc()
}

// InstrumentHandler wraps next with HTTP request metrics.
func (c *Collectors) InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		c.httpInFlight.Inc()
		defer c.httpInFlight.Dec()

		next.ServeHTTP(rec, r)

		path := canonicalPath(r.URL.Path)
		method := strings.ToUpper(r.Method)
		c.httpRequests.WithLabelValues(method, path, strconv.Itoa(rec.status)).Inc()
		c.httpDurations.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	})
}

// canonicalPath collapses the capability name so label cardinality stays bounded.
func canonicalPath(path string) string {
	const capabilities = "/api/sdk/capabilities/"
	if strings.HasPrefix(path, capabilities) && len(path) > len(capabilities) {
		return capabilities + ":name"
	}
	return path
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Hijack lets WebSocket upgrades pass through the recorder.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	return hj.Hijack()
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
