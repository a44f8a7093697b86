package server

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/qieqieplus/zoomsdk-facade/pkg/config"
	"github.com/qieqieplus/zoomsdk-facade/pkg/events"
	"github.com/qieqieplus/zoomsdk-facade/pkg/zoomsdk"
)

// WebSocket control message types. Event frames carry "kind" instead.
const (
	MessageTypeHello     = "hello"
	MessageTypeError     = "error"
	MessageTypeHeartbeat = "heartbeat"
)

// HelloMessage is sent as the first message so clients know the engine state
// before any event arrives.
type HelloMessage struct {
	Type         string               `json:"type"`
	State        string               `json:"state"`
	Version      string               `json:"version"`
	Capabilities []zoomsdk.Capability `json:"capabilities"`
	Kinds        []events.Kind        `json:"kinds,omitempty"`
}

// ErrorMessage is sent when an error occurs
type ErrorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
	Code  int    `json:"code,omitempty"`
}

// HeartbeatMessage is sent periodically to keep connection alive
type HeartbeatMessage struct {
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
}

// CreateHelloMessage creates the initial state message
func CreateHelloMessage(state zoomsdk.LifecycleState, version string, capabilities []zoomsdk.Capability, kinds []events.Kind) ([]byte, error) {
	return json.Marshal(HelloMessage{
		Type:         MessageTypeHello,
		State:        state.String(),
		Version:      version,
		Capabilities: capabilities,
		Kinds:        kinds,
	})
}

// CreateErrorMessage creates an error message. The HTTP API uses the same
// body for its error responses.
func CreateErrorMessage(errMsg string, code int) ([]byte, error) {
	return json.Marshal(ErrorMessage{
		Type:  MessageTypeError,
		Error: errMsg,
		Code:  code,
	})
}

// CreateHeartbeatMessage creates a heartbeat message
func CreateHeartbeatMessage(timestamp int64) ([]byte, error) {
	return json.Marshal(HeartbeatMessage{
		Type:      MessageTypeHeartbeat,
		Timestamp: timestamp,
	})
}

// StatusResponse reports the outcome of a native init or cleanup call.
type StatusResponse struct {
	Status string `json:"status"`
	Code   int    `json:"code"`
	State  string `json:"state"`
}

func newStatusResponse(status zoomsdk.SDKError, state zoomsdk.LifecycleState) StatusResponse {
	return StatusResponse{Status: status.String(), Code: int(status), State: state.String()}
}

// LicenseResponse reports the raw-data license check. Known is false when the
// engine could not answer.
type LicenseResponse struct {
	Known      bool `json:"known"`
	HasLicense bool `json:"has_license"`
}

// CapabilityResponse reports an acquisition attempt.
type CapabilityResponse struct {
	Capability zoomsdk.Capability `json:"capability"`
	Granted    bool               `json:"granted"`
	State      string             `json:"state"`
}

// ConnectionConfig holds configuration for WebSocket connections
type ConnectionConfig struct {
	Kinds     []events.Kind
	QueueSize int
}

// ParseConnectionConfig parses connection configuration from query parameters.
// Unknown kinds are rejected so a typo does not silently filter everything.
func ParseConnectionConfig(params url.Values, defaultQueueSize int) (*ConnectionConfig, error) {
	connConfig := &ConnectionConfig{QueueSize: defaultQueueSize}

	for _, name := range params["kind"] {
		kind, ok := events.ParseKind(name)
		if !ok {
			return nil, fmt.Errorf("unknown event kind %q", name)
		}
		connConfig.Kinds = append(connConfig.Kinds, kind)
	}

	if qs := params.Get("queue_size"); qs != "" {
		n, err := strconv.Atoi(qs)
		if err != nil || n <= 0 || n > config.MaxEventQueueSize {
			return nil, fmt.Errorf("invalid queue_size %q (1..%d)", qs, config.MaxEventQueueSize)
		}
		connConfig.QueueSize = n
	}

	return connConfig, nil
}
