package zoomsdk

import "errors"

var (
	ErrUnknownCapability = errors.New("unknown capability")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrEngineLoad        = errors.New("failed to load native engine")
	ErrThreadStopped     = errors.New("os thread stopped")
)
