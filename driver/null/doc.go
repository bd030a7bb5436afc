// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package null is an in-memory driver that presents nowhere.
//
// It implements the instance-level surface queries and a device table with
// working swapchain bookkeeping: image acquisition and release, old
// swapchain retirement and out-of-date reporting after Resize. It is used
// to exercise the loader without a GPU and as a template for real drivers.
//
// Example:
//
//	drv := null.New(null.WithPhysicalDevices(1))
//	inst, err := wsi.CreateInstance([]*dispatch.Driver{drv.Dispatch()}, nil)
//	...
//	dev, queue, err := drv.CreateDevice(inst.PhysicalDevices()[0].Native())
package null
