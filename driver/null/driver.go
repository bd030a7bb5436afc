// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package null

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/wsi/dispatch"
	"github.com/gogpu/wsi/surface"
)

// deviceBase offsets native physical-device handles so that they are never
// zero.
const deviceBase uintptr = 0x1000

// Driver is an in-memory downstream driver. It is safe for concurrent use.
type Driver struct {
	opts   options
	logger *slog.Logger

	mu         sync.Mutex
	extent     dispatch.Extent2D
	devices    map[uintptr]uintptr // device -> physical device
	swapchains map[dispatch.Swapchain]*swapchain
	nextHandle uint64
}

// New creates a driver.
func New(opts ...Option) *Driver {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	l := o.logger
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	return &Driver{
		opts:       o,
		logger:     l,
		extent:     o.extent,
		devices:    make(map[uintptr]uintptr),
		swapchains: make(map[dispatch.Swapchain]*swapchain),
	}
}

// Name returns the driver name.
func (d *Driver) Name() string { return d.opts.name }

// PhysicalDevices returns the native physical-device handles.
func (d *Driver) PhysicalDevices() []uintptr {
	pds := make([]uintptr, d.opts.devices)
	for i := range pds {
		pds[i] = deviceBase + uintptr(i)
	}
	return pds
}

// Dispatch returns the router view of the driver.
func (d *Driver) Dispatch() *dispatch.Driver {
	return &dispatch.Driver{
		Name: d.opts.name,
		Funcs: dispatch.InstanceFuncs{
			SurfaceSupport:      d.surfaceSupport,
			SurfaceCapabilities: d.surfaceCapabilities,
			SurfaceFormats:      d.surfaceFormats,
			SurfacePresentModes: d.surfacePresentModes,
		},
		PhysicalDevices: d.PhysicalDevices(),
	}
}

// Resize changes the window size reported for every surface. Swapchains
// whose extent no longer matches become out of date.
func (d *Driver) Resize(width, height uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.extent = dispatch.Extent2D{Width: width, Height: height}
	for _, sc := range d.swapchains {
		if sc.extent != d.extent {
			sc.outOfDate = true
		}
	}
}

func (d *Driver) validDevice(pd uintptr) bool {
	return pd >= deviceBase && pd < deviceBase+uintptr(d.opts.devices)
}

func (d *Driver) supports(s *surface.Base) bool {
	if s == nil {
		return false
	}
	return len(d.opts.platforms) == 0 || slices.Contains(d.opts.platforms, s.Platform)
}

func (d *Driver) check(pd uintptr, s *surface.Base) error {
	if !d.validDevice(pd) {
		return dispatch.ErrorInitializationFailed
	}
	if s == nil {
		return dispatch.ErrorSurfaceLost
	}
	return nil
}

func (d *Driver) surfaceSupport(pd uintptr, queueFamily uint32, s *surface.Base) (bool, error) {
	if err := d.check(pd, s); err != nil {
		return false, err
	}
	return queueFamily == 0 && d.supports(s), nil
}

func (d *Driver) surfaceCapabilities(pd uintptr, s *surface.Base) (dispatch.Capabilities, error) {
	if err := d.check(pd, s); err != nil {
		return dispatch.Capabilities{}, err
	}
	d.mu.Lock()
	extent := d.extent
	d.mu.Unlock()

	return dispatch.Capabilities{
		MinImageCount:           d.opts.minImages,
		MaxImageCount:           d.opts.maxImages,
		CurrentExtent:           extent,
		MinImageExtent:          dispatch.Extent2D{Width: 1, Height: 1},
		MaxImageExtent:          dispatch.Extent2D{Width: 16384, Height: 16384},
		MaxImageArrayLayers:     1,
		SupportedTransforms:     dispatch.SurfaceTransformIdentity,
		CurrentTransform:        dispatch.SurfaceTransformIdentity,
		SupportedCompositeAlpha: dispatch.CompositeAlphaOpaque,
		SupportedUsage: gputypes.TextureUsageRenderAttachment |
			gputypes.TextureUsageCopySrc | gputypes.TextureUsageCopyDst,
	}, nil
}

func (d *Driver) surfaceFormats(pd uintptr, s *surface.Base) ([]dispatch.SurfaceFormat, error) {
	if err := d.check(pd, s); err != nil {
		return nil, err
	}
	return slices.Clone(d.opts.formats), nil
}

func (d *Driver) surfacePresentModes(pd uintptr, s *surface.Base) ([]dispatch.PresentMode, error) {
	if err := d.check(pd, s); err != nil {
		return nil, err
	}
	return slices.Clone(d.opts.modes), nil
}

// handle returns a fresh non-zero handle. d.mu must be held.
func (d *Driver) handle() uint64 {
	d.nextHandle++
	return d.nextHandle
}
