// Package wsi is the window-system integration layer of a graphics API
// loader.
//
// # Overview
//
// wsi sits between applications and downstream drivers. It records which
// surface capabilities an instance negotiated, builds opaque surface
// records for each window system, and forwards surface queries and
// swapchain calls to the driver that owns the handle they are made on.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/wsi"
//	    "github.com/gogpu/wsi/dispatch"
//	    "github.com/gogpu/wsi/driver/null"
//	)
//
//	drv := null.New()
//	inst, err := wsi.CreateInstance([]*dispatch.Driver{drv.Dispatch()},
//	    []string{"VK_KHR_surface", "VK_KHR_xcb_surface"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer inst.Destroy()
//
//	s, err := inst.CreateXCBSurface(surface.XCBDescriptor{Connection: conn, Window: win}, nil)
//	...
//	defer inst.DestroySurface(s, nil)
//
// # Capabilities
//
// Capabilities are fixed when CreateInstance returns. The native backend
// of the platform starts enabled when compiled in; every other capability
// must be requested by its exact extension name. Unknown names are ignored.
// The generic surface capability is on whenever any backend capability is.
//
// # Backends
//
// The set of compiled-in backends is chosen per instance with WithBackends
// or a configuration file, not by build tags. Creating a surface for a
// backend outside the set fails with ErrBackendNotCompiled. Creating one
// for a backend that is compiled in but not enabled succeeds.
//
// # Entry points
//
// GetInstanceProcAddr hands out bound method values. Surface queries are
// gated by the generic capability. Backend surface creation is gated by
// that backend's capability. Swapchain entry points are always available.
// A name this layer does not know reports handled == false.
//
// # Allocators
//
// Surfaces are raw records obtained from a surface.Allocator. A surface
// must be destroyed with the allocator it was created with; nil selects
// the instance default on both sides.
//
// # Logging
//
// wsi is silent by default. Use SetLogger or WithLogger to enable output.
package wsi
