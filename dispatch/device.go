// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package dispatch

import (
	"fmt"

	"github.com/gogpu/wsi/surface"
)

// Function types of the device-level swapchain operations.
type (
	CreateSwapchainFunc    func(dev uintptr, info *SwapchainCreateInfo, a surface.Allocator) (Swapchain, error)
	DestroySwapchainFunc   func(dev uintptr, sc Swapchain, a surface.Allocator)
	GetSwapchainImagesFunc func(dev uintptr, sc Swapchain) ([]Image, error)
	AcquireNextImageFunc   func(dev uintptr, sc Swapchain, timeout uint64, sem Semaphore, fence Fence) (uint32, error)
	QueuePresentFunc       func(queue uintptr, info *PresentInfo) error
)

// Names of the device-level operations as exported to applications.
const (
	ProcCreateSwapchain    = "vkCreateSwapchainKHR"
	ProcDestroySwapchain   = "vkDestroySwapchainKHR"
	ProcGetSwapchainImages = "vkGetSwapchainImagesKHR"
	ProcAcquireNextImage   = "vkAcquireNextImageKHR"
	ProcQueuePresent       = "vkQueuePresentKHR"
)

// DeviceTable holds the resolved swapchain entry points of one device. It
// is built once when the device is created and never changes afterwards,
// so lookups need no locking.
type DeviceTable struct {
	CreateSwapchain    CreateSwapchainFunc
	DestroySwapchain   DestroySwapchainFunc
	GetSwapchainImages GetSwapchainImagesFunc
	AcquireNextImage   AcquireNextImageFunc
	QueuePresent       QueuePresentFunc
}

// NewDeviceTable builds a table from an operation-name to callable mapping.
// Callables may be given as the named function types or as plain function
// values. Unknown names and nil callables are skipped; a callable of the
// wrong type is an error.
func NewDeviceTable(procs map[string]any) (*DeviceTable, error) {
	t := &DeviceTable{}
	for name, fn := range procs {
		if fn == nil {
			continue
		}
		ok := true
		switch name {
		case ProcCreateSwapchain:
			switch f := fn.(type) {
			case CreateSwapchainFunc:
				t.CreateSwapchain = f
			case func(uintptr, *SwapchainCreateInfo, surface.Allocator) (Swapchain, error):
				t.CreateSwapchain = f
			default:
				ok = false
			}
		case ProcDestroySwapchain:
			switch f := fn.(type) {
			case DestroySwapchainFunc:
				t.DestroySwapchain = f
			case func(uintptr, Swapchain, surface.Allocator):
				t.DestroySwapchain = f
			default:
				ok = false
			}
		case ProcGetSwapchainImages:
			switch f := fn.(type) {
			case GetSwapchainImagesFunc:
				t.GetSwapchainImages = f
			case func(uintptr, Swapchain) ([]Image, error):
				t.GetSwapchainImages = f
			default:
				ok = false
			}
		case ProcAcquireNextImage:
			switch f := fn.(type) {
			case AcquireNextImageFunc:
				t.AcquireNextImage = f
			case func(uintptr, Swapchain, uint64, Semaphore, Fence) (uint32, error):
				t.AcquireNextImage = f
			default:
				ok = false
			}
		case ProcQueuePresent:
			switch f := fn.(type) {
			case QueuePresentFunc:
				t.QueuePresent = f
			case func(uintptr, *PresentInfo) error:
				t.QueuePresent = f
			default:
				ok = false
			}
		}
		if !ok {
			return nil, fmt.Errorf("dispatch: %s has type %T", name, fn)
		}
	}
	return t, nil
}

// Lookup returns the entry stored under an operation name. ok is false for
// names the table does not know; a known but unset entry returns nil, true.
func (t *DeviceTable) Lookup(name string) (fn any, ok bool) {
	switch name {
	case ProcCreateSwapchain:
		return nilIfUnset(t.CreateSwapchain == nil, t.CreateSwapchain), true
	case ProcDestroySwapchain:
		return nilIfUnset(t.DestroySwapchain == nil, t.DestroySwapchain), true
	case ProcGetSwapchainImages:
		return nilIfUnset(t.GetSwapchainImages == nil, t.GetSwapchainImages), true
	case ProcAcquireNextImage:
		return nilIfUnset(t.AcquireNextImage == nil, t.AcquireNextImage), true
	case ProcQueuePresent:
		return nilIfUnset(t.QueuePresent == nil, t.QueuePresent), true
	}
	return nil, false
}

// nilIfUnset keeps a nil func from turning into a non-nil interface.
func nilIfUnset(unset bool, fn any) any {
	if unset {
		return nil
	}
	return fn
}

// Device is a dispatchable device handle. It carries the device table so
// that forwarding needs no ownership lookup.
type Device struct {
	table  *DeviceTable
	native uintptr
}

// NewDevice creates the handle of a device created by a driver.
func NewDevice(t *DeviceTable, native uintptr) Device {
	return Device{table: t, native: native}
}

// Native returns the driver's own handle.
func (d Device) Native() uintptr { return d.native }

// Table returns the dispatch table of d.
func (d Device) Table() *DeviceTable { return d.table }

// Queue is a dispatchable queue handle sharing its device's table.
type Queue struct {
	table  *DeviceTable
	native uintptr
}

// NewQueue creates the handle of a queue retrieved from a device.
func NewQueue(t *DeviceTable, native uintptr) Queue {
	return Queue{table: t, native: native}
}

// Native returns the driver's own handle.
func (q Queue) Native() uintptr { return q.native }

// Table returns the dispatch table of q.
func (q Queue) Table() *DeviceTable { return q.table }
