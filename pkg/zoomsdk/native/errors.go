// Package native binds the facade to the Zoom SDK C shim.
package native

import "errors"

var ErrUnavailable = errors.New("native engine binding not compiled in")
