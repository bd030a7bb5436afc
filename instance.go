package wsi

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/wsi/capability"
	"github.com/gogpu/wsi/dispatch"
	"github.com/gogpu/wsi/surface"
)

// Errors.
var (
	// ErrBackendNotCompiled is returned by the Create*Surface entry points
	// for a backend the instance was not built with.
	ErrBackendNotCompiled = errors.New("wsi: backend not compiled in")

	// ErrNilDriver is returned by CreateInstance when a driver is nil.
	ErrNilDriver = errors.New("wsi: nil driver")
)

// BackendError reports a backend that is unavailable on the instance.
type BackendError struct {
	Backend  capability.Capability
	Platform capability.Platform
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("wsi: %s is not compiled in on %s", e.Backend, e.Platform)
}

func (e *BackendError) Unwrap() error { return ErrBackendNotCompiled }

// Instance is a loader instance: the negotiated capability set, the
// downstream drivers and the surface factory.
//
// The capability set is fixed when CreateInstance returns. All methods are
// safe for concurrent use.
type Instance struct {
	platform capability.Platform
	caps     capability.Set
	table    *dispatch.Table
	router   *dispatch.Router
	factory  *surface.Factory
	logger   atomic.Pointer[slog.Logger]
	follow   bool
}

// CreateInstance builds an instance over drivers and enables the
// capabilities named in extensions.
//
// The backend set comes from WithBackends, then WithConfig, then the host
// default. The native backend starts enabled when compiled in. Extension
// names are matched exactly; unknown or unavailable names are ignored.
func CreateInstance(drivers []*dispatch.Driver, extensions []string, opts ...Option) (*Instance, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	backends := capability.DefaultBackends(o.platform)
	names := append([]string(nil), extensions...)
	for _, c := range o.configs {
		if len(c.Backends) > 0 {
			b, err := capability.ParseBackends(o.platform, c.Backends)
			if err != nil {
				return nil, fmt.Errorf("wsi: create instance: %w", err)
			}
			backends = b
		}
		names = append(names, c.Extensions...)
	}
	if o.backends != nil {
		backends = *o.backends
	}
	for _, c := range backends.List() {
		if (c == capability.Win32Surface) != (o.platform == capability.Windows) {
			return nil, fmt.Errorf("wsi: create instance: %w", &BackendError{Backend: c, Platform: o.platform})
		}
	}

	table := dispatch.NewTable()
	for i, d := range drivers {
		if d == nil {
			return nil, fmt.Errorf("wsi: create instance: driver %d: %w", i, ErrNilDriver)
		}
		table.Add(d)
	}

	logger := o.logger
	follow := logger == nil
	if follow {
		logger = Logger()
	}

	inst := &Instance{
		platform: o.platform,
		caps:     capability.Defaults(o.platform, backends),
		table:    table,
		router:   dispatch.NewRouter(logger),
		factory:  surface.NewFactory(o.allocator, logger),
		follow:   follow,
	}
	inst.logger.Store(logger)

	for _, name := range inst.caps.Register(names) {
		logger.Debug("wsi: ignored extension", "name", name)
	}

	if follow {
		track(inst)
	}
	logger.Info("wsi: instance created",
		"platform", o.platform,
		"backends", backends.List(),
		"enabled", inst.caps.EnabledList(),
		"drivers", table.Len())
	return inst, nil
}

// Destroy releases the instance. Surfaces still alive stay valid memory but
// must not be passed to the instance again.
func (inst *Instance) Destroy() {
	if inst.follow {
		untrack(inst)
	}
	inst.log().Info("wsi: instance destroyed")
}

func (inst *Instance) log() *slog.Logger {
	return inst.logger.Load()
}

// Platform returns the platform the instance was created for.
func (inst *Instance) Platform() capability.Platform {
	return inst.platform
}

// Enabled reports whether capability c was negotiated.
func (inst *Instance) Enabled(c capability.Capability) bool {
	return inst.caps.Enabled(c)
}

// Capabilities returns the enabled capabilities in table order.
func (inst *Instance) Capabilities() []capability.Capability {
	return inst.caps.EnabledList()
}

// Backends returns the compiled-in backends.
func (inst *Instance) Backends() capability.BackendSet {
	return inst.caps.Backends()
}

// EnumerateExtensions returns the instance extensions this layer adds to
// the list reported to applications.
func (inst *Instance) EnumerateExtensions() []capability.Extension {
	return capability.Advertised(inst.caps.Backends())
}

// PhysicalDevices returns a handle for every physical device of every
// driver, in driver order.
func (inst *Instance) PhysicalDevices() []dispatch.PhysicalDevice {
	var pds []dispatch.PhysicalDevice
	for i := 0; i < inst.table.Len(); i++ {
		for _, native := range inst.table.Driver(i).PhysicalDevices {
			pds = append(pds, inst.table.PhysicalDevice(i, native))
		}
	}
	return pds
}

// Allocator returns the default allocator used when nil is passed.
func (inst *Instance) Allocator() surface.Allocator {
	return inst.factory.Default()
}
