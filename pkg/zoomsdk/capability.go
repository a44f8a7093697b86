package zoomsdk

import "fmt"

// Module is the submodule handed out for a capability. It carries the shared
// engine handle.
type Module struct {
	name   Capability
	engine Engine
}

func (m *Module) Capability() Capability { return m.name }

// Engine returns the shared native engine handle.
func (m *Module) Engine() Engine { return m.engine }

// RawDataModule is the RawData submodule.
type RawDataModule struct {
	Module
}

// HasLicense asks the engine whether raw data access is licensed.
func (m *RawDataModule) HasLicense() bool {
	checker := m.engine.RawDataLicense()
	if checker == nil {
		return false
	}
	return checker.HasRawDataLicense()
}

func newModule(name Capability, opts CapabilityOptions) (*Module, error) {
	if opts.Engine == nil {
		return nil, fmt.Errorf("%w: %s requires an engine handle", ErrInvalidArgument, name)
	}
	return &Module{name: name, engine: opts.Engine}, nil
}

func defaultConstructor(name Capability) Constructor {
	if name == CapabilityRawData {
		return func(opts CapabilityOptions) (Submodule, error) {
			m, err := newModule(name, opts)
			if err != nil {
				return nil, err
			}
			return &RawDataModule{Module: *m}, nil
		}
	}
	return func(opts CapabilityOptions) (Submodule, error) {
		return newModule(name, opts)
	}
}
