//go:build !cgo || !zoomsdk

package native

import (
	"fmt"

	"github.com/qieqieplus/zoomsdk-facade/pkg/zoomsdk"
)

// Load reports that this binary was built without the native binding.
// Build with CGO_ENABLED=1 and -tags zoomsdk to link it.
func Load(dir string) (zoomsdk.Engine, error) {
	return nil, fmt.Errorf("%w (module dir %s)", ErrUnavailable, dir)
}
