// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package capability

// Capability identifies an optional window-system feature negotiated at
// instance creation.
type Capability uint8

const (
	// Surface is the generic surface facility. It gates destruction and
	// querying of surfaces regardless of the backend that produced them.
	Surface Capability = iota

	// Win32Surface enables surfaces backed by a Win32 HWND.
	Win32Surface

	// MirSurface enables surfaces backed by a Mir connection.
	MirSurface

	// WaylandSurface enables surfaces backed by a wl_surface.
	WaylandSurface

	// XCBSurface enables surfaces backed by an XCB window.
	XCBSurface

	// XlibSurface enables surfaces backed by an Xlib window.
	XlibSurface

	// Swapchain is the device-level swapchain extension. It is tracked so
	// that it can be advertised and named, but it never gates resolution.
	Swapchain

	// N is the number of capabilities.
	N
)

// Extension describes an extension name and the revision this core speaks.
type Extension struct {
	Name     string
	Revision uint32
}

var extensions = [N]Extension{
	Surface:        {"VK_KHR_surface", 25},
	Win32Surface:   {"VK_KHR_win32_surface", 5},
	MirSurface:     {"VK_KHR_mir_surface", 4},
	WaylandSurface: {"VK_KHR_wayland_surface", 5},
	XCBSurface:     {"VK_KHR_xcb_surface", 6},
	XlibSurface:    {"VK_KHR_xlib_surface", 6},
	Swapchain:      {"VK_KHR_swapchain", 67},
}

// ExtensionName returns the extension name that enables c.
func ExtensionName(c Capability) string {
	if c >= N {
		return ""
	}
	return extensions[c].Name
}

// Revision returns the extension revision implemented for c.
func Revision(c Capability) uint32 {
	if c >= N {
		return 0
	}
	return extensions[c].Revision
}

// Lookup finds the capability whose extension name equals name exactly.
func Lookup(name string) (Capability, bool) {
	for c := Capability(0); c < N; c++ {
		if extensions[c].Name == name {
			return c, true
		}
	}
	return N, false
}

// IsBackend reports whether c is a backend-specific surface capability.
func (c Capability) IsBackend() bool {
	return c >= Win32Surface && c <= XlibSurface
}

// String returns the extension name of c.
func (c Capability) String() string {
	if c >= N {
		return "capability(unknown)"
	}
	return extensions[c].Name
}
