// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package dispatch resolves which downstream driver owns a handle and
// forwards surface and swapchain calls to it.
//
// # Instance-level resolution
//
// Physical-device handles are created from a Table. Each handle keeps a
// non-owning reference to its table and the index of the driver that
// enumerated it, so resolution is handle -> index -> InstanceFuncs with no
// type hierarchy involved. The driver receives its own native handle.
//
// # Device-level resolution
//
// Device and Queue handles carry the DeviceTable built when the device was
// created. Swapchain operations are forwarded through it unconditionally;
// enforcing that the swapchain extension was enabled is left to validation
// further down.
//
// # Contract violations
//
// A driver or device table missing a required entry point is a broken
// integration, not a runtime condition, and the Router panics. Everything a
// driver returns, including status codes such as Suboptimal, reaches the
// caller unchanged.
package dispatch
