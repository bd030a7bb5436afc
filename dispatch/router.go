// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package dispatch

import (
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/wsi/surface"
)

// Router forwards surface and swapchain operations to the implementation
// that owns the handle they are called on.
//
// Instance-level operations resolve the driver behind a PhysicalDevice and
// call it with the driver's own handle. Device-level operations go through
// the DeviceTable carried by a Device or Queue. Results and errors come back
// unchanged. Router does no locking of its own and starts no goroutines.
type Router struct {
	logger atomic.Pointer[slog.Logger]
}

// NewRouter creates a router logging to l. A nil l disables logging.
func NewRouter(l *slog.Logger) *Router {
	r := &Router{}
	r.SetLogger(l)
	return r
}

// SetLogger replaces the router logger. It is safe to call concurrently
// with forwarding.
func (r *Router) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	r.logger.Store(l)
}

func (r *Router) log() *slog.Logger {
	if l := r.logger.Load(); l != nil {
		return l
	}
	return slog.New(slog.DiscardHandler)
}

// owner resolves the driver of pd and panics if it cannot.
func (r *Router) owner(pd PhysicalDevice, op string) *Driver {
	d := pd.Owner()
	if d == nil {
		panic("dispatch: " + op + " called with a physical device that has no owning driver")
	}
	return d
}

// required panics when a driver omits an entry point it must provide.
func required(missing bool, d *Driver, op string) {
	if missing {
		panic("dispatch: driver " + d.Name + " has no " + op + " entry point")
	}
}

// SurfaceSupport reports whether queue family of pd can present to s.
func (r *Router) SurfaceSupport(pd PhysicalDevice, queueFamily uint32, s *surface.Base) (bool, error) {
	d := r.owner(pd, "SurfaceSupport")
	required(d.Funcs.SurfaceSupport == nil, d, "SurfaceSupport")
	r.log().Debug("dispatch: forward", "op", "SurfaceSupport", "driver", d.Name, "family", queueFamily)
	return d.Funcs.SurfaceSupport(pd.native, queueFamily, s)
}

// SurfaceCapabilities returns the swapchain limits of s on pd.
func (r *Router) SurfaceCapabilities(pd PhysicalDevice, s *surface.Base) (Capabilities, error) {
	d := r.owner(pd, "SurfaceCapabilities")
	required(d.Funcs.SurfaceCapabilities == nil, d, "SurfaceCapabilities")
	r.log().Debug("dispatch: forward", "op", "SurfaceCapabilities", "driver", d.Name)
	return d.Funcs.SurfaceCapabilities(pd.native, s)
}

// SurfaceFormats returns the formats pd can present to s.
func (r *Router) SurfaceFormats(pd PhysicalDevice, s *surface.Base) ([]SurfaceFormat, error) {
	d := r.owner(pd, "SurfaceFormats")
	required(d.Funcs.SurfaceFormats == nil, d, "SurfaceFormats")
	r.log().Debug("dispatch: forward", "op", "SurfaceFormats", "driver", d.Name)
	return d.Funcs.SurfaceFormats(pd.native, s)
}

// SurfacePresentModes returns the present modes pd supports for s.
func (r *Router) SurfacePresentModes(pd PhysicalDevice, s *surface.Base) ([]PresentMode, error) {
	d := r.owner(pd, "SurfacePresentModes")
	required(d.Funcs.SurfacePresentModes == nil, d, "SurfacePresentModes")
	r.log().Debug("dispatch: forward", "op", "SurfacePresentModes", "driver", d.Name)
	return d.Funcs.SurfacePresentModes(pd.native, s)
}

// deviceEntry panics when a device table lacks op.
func deviceEntry(t *DeviceTable, missing bool, op string) {
	if t == nil {
		panic("dispatch: " + op + " called on a handle without a device table")
	}
	if missing {
		panic("dispatch: device table has no " + op + " entry point")
	}
}

// CreateSwapchain forwards to the device table of dev.
func (r *Router) CreateSwapchain(dev Device, info *SwapchainCreateInfo, a surface.Allocator) (Swapchain, error) {
	deviceEntry(dev.table, dev.table == nil || dev.table.CreateSwapchain == nil, ProcCreateSwapchain)
	r.log().Debug("dispatch: forward", "op", ProcCreateSwapchain)
	return dev.table.CreateSwapchain(dev.native, info, a)
}

// DestroySwapchain forwards to the device table of dev.
func (r *Router) DestroySwapchain(dev Device, sc Swapchain, a surface.Allocator) {
	deviceEntry(dev.table, dev.table == nil || dev.table.DestroySwapchain == nil, ProcDestroySwapchain)
	r.log().Debug("dispatch: forward", "op", ProcDestroySwapchain)
	dev.table.DestroySwapchain(dev.native, sc, a)
}

// GetSwapchainImages forwards to the device table of dev.
func (r *Router) GetSwapchainImages(dev Device, sc Swapchain) ([]Image, error) {
	deviceEntry(dev.table, dev.table == nil || dev.table.GetSwapchainImages == nil, ProcGetSwapchainImages)
	r.log().Debug("dispatch: forward", "op", ProcGetSwapchainImages)
	return dev.table.GetSwapchainImages(dev.native, sc)
}

// AcquireNextImage forwards to the device table of dev. The timeout, in
// nanoseconds, is passed through untouched.
func (r *Router) AcquireNextImage(dev Device, sc Swapchain, timeout uint64, sem Semaphore, fence Fence) (uint32, error) {
	deviceEntry(dev.table, dev.table == nil || dev.table.AcquireNextImage == nil, ProcAcquireNextImage)
	r.log().Debug("dispatch: forward", "op", ProcAcquireNextImage, "timeout", timeout)
	return dev.table.AcquireNextImage(dev.native, sc, timeout, sem, fence)
}

// QueuePresent forwards to the device table of q.
func (r *Router) QueuePresent(q Queue, info *PresentInfo) error {
	deviceEntry(q.table, q.table == nil || q.table.QueuePresent == nil, ProcQueuePresent)
	r.log().Debug("dispatch: forward", "op", ProcQueuePresent)
	return q.table.QueuePresent(q.native, info)
}
