package config

import "errors"

var (
	ErrMissingHTTPAddr     = errors.New("HTTP address is required (set HTTP_ADDR env var or --http flag)")
	ErrInvalidLogFormat    = errors.New("log format must be json or text (LOG_FORMAT)")
	ErrInvalidQueueSize    = errors.New("event queue size must be between 1 and 10000 (EVENT_QUEUE_SIZE)")
	ErrInvalidKeepalive    = errors.New("websocket ping interval must be positive and shorter than the read timeout")
	ErrInvalidPlatform     = errors.New("invalid platform (ZOOM_PLATFORM or --platform)")
	ErrInvalidEngineConfig = errors.New("invalid engine config")
)
