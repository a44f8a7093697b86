package zoomsdk

import "sync"

// LifecycleState is the initialization state of the native engine.
type LifecycleState int

const (
	Uninitialized LifecycleState = iota
	Initialized
)

func (s LifecycleState) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initialized:
		return "initialized"
	default:
		return "unknown"
	}
}

// Gate holds the single "engine is initialized" flag.
// Only the owning Facade transitions it.
type Gate struct {
	mu    sync.RWMutex
	state LifecycleState
}

// MarkInitialized records a successful native init.
func (g *Gate) MarkInitialized() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = Initialized
}

// IsInitialized reports whether capability acquisition is permitted.
func (g *Gate) IsInitialized() bool {
	return g.State() == Initialized
}

// State returns the current lifecycle state.
func (g *Gate) State() LifecycleState {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

// reset closes the gate after a successful teardown.
func (g *Gate) reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = Uninitialized
}
