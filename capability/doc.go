// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package capability records which window-system extensions an instance
// negotiated at creation time.
//
// Each supported window-system backend (Win32, Mir, Wayland, XCB, Xlib) has
// a capability of its own, plus the generic surface capability that gates
// surface destruction and queries. The set of backends that exist in a
// process is a fixed-size tagged set chosen once from the host platform or
// from configuration, instead of being selected by build tags.
//
// Typical use during instance creation:
//
//	backends := capability.DefaultBackends(capability.Host())
//	set := capability.Defaults(capability.Host(), backends)
//	set.Register([]string{"VK_KHR_surface", "VK_KHR_xcb_surface"})
//
//	if set.Enabled(capability.XCBSurface) {
//	    // vkCreateXcbSurfaceKHR resolves to a real entry point
//	}
package capability
