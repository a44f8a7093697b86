package zoomsdk

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/qieqieplus/zoomsdk-facade/pkg/log"
)

// Capability names a functional area exposed as a submodule.
type Capability string

const (
	CapabilityAuth               Capability = "Auth"
	CapabilityMeeting            Capability = "Meeting"
	CapabilitySetting            Capability = "Setting"
	CapabilityCustomizedResource Capability = "CustomizedResource"
	CapabilityPreMeeting         Capability = "PreMeeting"
	CapabilityRawData            Capability = "RawData"
	CapabilitySMSHelper          Capability = "SMSHelper"
)

// Capabilities lists every capability in declaration order.
var Capabilities = []Capability{
	CapabilityAuth,
	CapabilityMeeting,
	CapabilitySetting,
	CapabilityCustomizedResource,
	CapabilityPreMeeting,
	CapabilityRawData,
	CapabilitySMSHelper,
}

// ParseCapability maps a name, case-insensitively, to a Capability.
func ParseCapability(name string) (Capability, error) {
	for _, c := range Capabilities {
		if strings.EqualFold(string(c), name) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCapability, name)
}

// Gated reports whether acquiring c requires an initialized engine.
// CustomizedResource does not depend on engine readiness.
func (c Capability) Gated() bool {
	return c != CapabilityCustomizedResource
}

// Submodule is a capability-specific singleton handed out by the facade.
type Submodule interface {
	Capability() Capability
}

// Constructor builds the submodule for one capability.
type Constructor func(opts CapabilityOptions) (Submodule, error)

// Registry maps capability names to constructors and memoizes the instance
// built for each name.
type Registry struct {
	mu           sync.Mutex
	constructors map[Capability]Constructor
	instances    map[Capability]Submodule
}

// NewRegistry returns a registry with the default constructor for every
// capability.
func NewRegistry() *Registry {
	r := &Registry{
		constructors: make(map[Capability]Constructor),
		instances:    make(map[Capability]Submodule),
	}
	for _, c := range Capabilities {
		r.constructors[c] = defaultConstructor(c)
	}
	return r
}

// Register replaces the constructor for name and drops any memoized instance.
func (r *Registry) Register(name Capability, ctor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.constructors[name] = ctor
	delete(r.instances, name)
}

// Get returns the instance for name, constructing it on first use.
// Options passed after construction are ignored.
func (r *Registry) Get(name Capability, opts CapabilityOptions) (Submodule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sub, ok := r.instances[name]; ok {
		return sub, nil
	}

	ctor, ok := r.constructors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCapability, name)
	}

	sub, err := ctor(opts)
	if err != nil {
		return nil, fmt.Errorf("construct %s: %w", name, err)
	}
	r.instances[name] = sub
	log.Debugf("Constructed %s submodule", name)
	return sub, nil
}

// Reset drops every memoized instance.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.instances = make(map[Capability]Submodule)
}

// Names returns the registered capabilities, sorted.
func (r *Registry) Names() []Capability {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]Capability, 0, len(r.constructors))
	for name := range r.constructors {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
