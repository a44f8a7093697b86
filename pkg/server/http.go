package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/qieqieplus/zoomsdk-facade/pkg/log"
	"github.com/qieqieplus/zoomsdk-facade/pkg/metrics"
	"github.com/qieqieplus/zoomsdk-facade/pkg/zoomsdk"
)

// maxInitBody bounds the init request body.
const maxInitBody = 64 << 10

// HTTPServer handles REST API requests
type HTTPServer struct {
	facade   *zoomsdk.Facade
	wsServer *WebSocketServer
	metrics  *metrics.Collectors
	router   http.Handler
}

// NewHTTPServer creates a new HTTP server. collectors may be nil, in which
// case /metrics is not mounted and requests are not instrumented.
func NewHTTPServer(facade *zoomsdk.Facade, wsServer *WebSocketServer, collectors *metrics.Collectors) *HTTPServer {
	server := &HTTPServer{
		facade:   facade,
		wsServer: wsServer,
		metrics:  collectors,
	}
	server.registerRoutes()
	return server
}

// ServeHTTP implements the http.Handler interface
func (s *HTTPServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log.Debugf("Received request: %s %s", r.Method, r.URL.Path)
	s.router.ServeHTTP(w, r)
}

// registerRoutes sets up the API routes
func (s *HTTPServer) registerRoutes() {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	if s.metrics != nil {
		mux.Handle("/metrics", s.metrics.Handler())
	}

	pr := NewParamRouter()
	pr.Handle(http.MethodGet, "/api/sdk/version", s.handleVersion)
	pr.Handle(http.MethodPost, "/api/sdk/init", s.handleInit)
	pr.Handle(http.MethodPost, "/api/sdk/cleanup", s.handleCleanup)
	pr.Handle(http.MethodGet, "/api/sdk/license", s.handleLicense)
	pr.Handle(http.MethodGet, "/api/sdk/config/defaults", s.handleDefaults)
	pr.Handle(http.MethodGet, "/api/sdk/capabilities/{name}", s.handleCapability)
	if s.wsServer != nil {
		pr.Handle(http.MethodGet, "/ws/events", s.wsServer.HandleConnection)
	}

	// Delegate: API and websocket paths use the param router; else use mux
	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") || strings.HasPrefix(r.URL.Path, "/ws/") {
			pr.ServeHTTP(w, r)
			return
		}
		mux.ServeHTTP(w, r)
	})
	if s.metrics != nil {
		handler = s.metrics.InstrumentHandler(handler)
	}
	s.router = handler
}

// handleHealth returns health status for the process manager
func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{
		"status": "ok",
		"state":  s.facade.State().String(),
	}
	if s.wsServer != nil {
		stats := s.wsServer.EventStats()
		resp["subscribers"] = s.wsServer.ClientCount()
		resp["events"] = map[string]uint64{
			"published": stats.TotalEvents,
			"dropped":   stats.DroppedEvents,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *HTTPServer) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.facade.Version()})
}

// handleInit decodes InitOptions from the body and runs native init. An empty
// body initializes with every default.
func (s *HTTPServer) handleInit(w http.ResponseWriter, r *http.Request) {
	var opts zoomsdk.InitOptions

	dec := json.NewDecoder(io.LimitReader(r.Body, maxInitBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := opts.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	status := s.facade.Initialize(opts)
	writeJSON(w, statusCode(status), newStatusResponse(status, s.facade.State()))
}

func (s *HTTPServer) handleCleanup(w http.ResponseWriter, r *http.Request) {
	status := s.facade.Teardown()
	writeJSON(w, statusCode(status), newStatusResponse(status, s.facade.State()))
}

func (s *HTTPServer) handleLicense(w http.ResponseWriter, r *http.Request) {
	has, known := s.facade.HasRawDataLicense()
	writeJSON(w, http.StatusOK, LicenseResponse{Known: known, HasLicense: has})
}

// handleDefaults returns the configuration an empty init would resolve to.
func (s *HTTPServer) handleDefaults(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, zoomsdk.Resolve(zoomsdk.InitOptions{}, s.facade.Platform()))
}

func (s *HTTPServer) handleCapability(w http.ResponseWriter, r *http.Request) {
	name := zoomsdk.Capability(GetPathParam(r, "name"))

	sub, ok, err := s.facade.Acquire(name, zoomsdk.CapabilityOptions{})
	switch {
	case errors.Is(err, zoomsdk.ErrUnknownCapability):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		log.Errorf("Failed to acquire capability %s: %v", name, err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if sub != nil {
		name = sub.Capability()
	} else {
		name, _ = zoomsdk.ParseCapability(string(name))
	}
	resp := CapabilityResponse{Capability: name, Granted: ok, State: s.facade.State().String()}
	if !ok {
		writeJSON(w, http.StatusConflict, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// statusCode maps a native status onto an HTTP code; any failure is 502.
func statusCode(status zoomsdk.SDKError) int {
	if status.IsSuccess() {
		return http.StatusOK
	}
	return http.StatusBadGateway
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	data, err := CreateErrorMessage(msg, code)
	if err != nil {
		log.Errorf("Failed to encode error response: %v", err)
		http.Error(w, msg, code)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(data)
}
