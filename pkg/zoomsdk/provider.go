package zoomsdk

import (
	"fmt"
	"sync"

	"github.com/qieqieplus/zoomsdk-facade/pkg/log"
)

// Provider hands out the process-wide Facade. It is built once at startup
// and passed to whoever needs the facade; the native engine is loaded at
// most once per Provider.
type Provider struct {
	load    Loader
	options []FacadeOption

	once   sync.Once
	facade *Facade
	err    error
}

// NewProvider returns a Provider that loads the engine with load.
func NewProvider(load Loader, opts ...FacadeOption) *Provider {
	return &Provider{load: load, options: opts}
}

// Instance returns the facade, constructing it with opts on the first call.
// Later calls ignore opts. A load failure is remembered and returned on
// every call.
func (p *Provider) Instance(opts LoadOptions) (*Facade, error) {
	constructed := false
	p.once.Do(func() {
		constructed = true
		p.facade, p.err = p.construct(opts)
	})
	if !constructed && (opts.Path != "" || opts.Platform != nil) {
		log.Debug("Facade already constructed, ignoring load options")
	}
	return p.facade, p.err
}

func (p *Provider) construct(opts LoadOptions) (*Facade, error) {
	platform := HostPlatform()
	if opts.Platform != nil {
		platform = *opts.Platform
	}
	modulePath := ResolveModulePath(opts.Path, platform)

	if p.load == nil {
		return nil, fmt.Errorf("%w: no loader configured", ErrEngineLoad)
	}

	log.Infof("Loading native engine from %s (%s/%s)", modulePath, platform.OS, platform.Arch)
	engine, err := p.load(modulePath)
	if err != nil {
		return nil, fmt.Errorf("%w from %s: %w", ErrEngineLoad, modulePath, err)
	}
	if engine == nil {
		return nil, fmt.Errorf("%w from %s: loader returned no engine", ErrEngineLoad, modulePath)
	}

	return NewFacade(engine, platform, modulePath, p.options...), nil
}
