package wsi

import (
	"log/slog"

	"github.com/gogpu/wsi/capability"
	"github.com/gogpu/wsi/config"
	"github.com/gogpu/wsi/surface"
)

// Option configures an Instance during creation.
//
// Example:
//
//	inst, err := wsi.CreateInstance(drivers, []string{"VK_KHR_surface"},
//	    wsi.WithBackends(capability.WaylandSurface, capability.XCBSurface),
//	    wsi.WithLogger(slog.Default()),
//	)
type Option func(*options)

// options holds optional configuration for Instance creation.
type options struct {
	platform  capability.Platform
	backends  *capability.BackendSet
	configs   []*config.Config
	logger    *slog.Logger
	allocator surface.Allocator
}

// defaultOptions returns the default instance options.
func defaultOptions() options {
	return options{
		platform: capability.Host(),
	}
}

// WithPlatform overrides the detected host platform. It decides the native
// backend and which backends are valid.
func WithPlatform(p capability.Platform) Option {
	return func(o *options) {
		o.platform = p
	}
}

// WithBackends selects the window-system backends compiled into the
// instance. Without it, the host default is used: Win32 on Windows, XCB
// elsewhere.
func WithBackends(cs ...capability.Capability) Option {
	return func(o *options) {
		b := capability.NewBackendSet(cs...)
		o.backends = &b
	}
}

// WithLogger gives the instance its own logger. The instance then ignores
// later calls to SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithAllocator sets the strategy used for surfaces created or destroyed
// with a nil allocator. The default is a fresh surface.Heap per instance.
func WithAllocator(a surface.Allocator) Option {
	return func(o *options) {
		o.allocator = a
	}
}

// WithConfig applies a loader configuration. Its backend names replace the
// default set and are checked against the platform when the instance is
// created. Its extensions are requested in addition to the ones passed to
// CreateInstance. The log level is not applied here; see config.Config.Logger.
func WithConfig(c *config.Config) Option {
	return func(o *options) {
		if c != nil {
			o.configs = append(o.configs, c)
		}
	}
}
