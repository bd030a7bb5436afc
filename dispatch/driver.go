// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package dispatch

import (
	"sync"

	"github.com/gogpu/wsi/surface"
)

// InstanceFuncs are the surface queries a downstream driver implements.
// Every driver that advertises the surface capability must provide all of
// them; a missing one is a broken driver and makes the router panic.
//
// Surface destruction has no driver entry point: the core owns the record
// memory and frees it itself.
type InstanceFuncs struct {
	SurfaceSupport      func(pd uintptr, queueFamily uint32, s *surface.Base) (bool, error)
	SurfaceCapabilities func(pd uintptr, s *surface.Base) (Capabilities, error)
	SurfaceFormats      func(pd uintptr, s *surface.Base) ([]SurfaceFormat, error)
	SurfacePresentModes func(pd uintptr, s *surface.Base) ([]PresentMode, error)
}

// Driver is a downstream implementation as seen by the router.
// PhysicalDevices lists the native handles the driver enumerates.
type Driver struct {
	Name            string
	Funcs           InstanceFuncs
	PhysicalDevices []uintptr
}

// Table is the indirection from physical-device handles to the driver that
// enumerated them. A handle stores its table and an index into it; the
// table outlives every handle derived from it.
//
// Drivers are added while the instance is being built. Lookups may run
// concurrently with each other and with Add.
type Table struct {
	mu      sync.RWMutex
	drivers []*Driver
}

// NewTable creates a table holding drivers in order.
func NewTable(drivers ...*Driver) *Table {
	t := &Table{}
	for _, d := range drivers {
		t.Add(d)
	}
	return t
}

// Add appends d and returns its index.
func (t *Table) Add(d *Driver) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.drivers = append(t.drivers, d)
	return len(t.drivers) - 1
}

// Len returns the number of drivers.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.drivers)
}

// Driver returns the driver at index i, or nil if i is out of range.
func (t *Table) Driver(i int) *Driver {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if i < 0 || i >= len(t.drivers) {
		return nil
	}
	return t.drivers[i]
}

// PhysicalDevice creates the handle for a device that driver i enumerated
// under its own handle native.
func (t *Table) PhysicalDevice(i int, native uintptr) PhysicalDevice {
	return PhysicalDevice{table: t, index: i, native: native}
}

// Owner resolves the driver that owns pd.
func (t *Table) Owner(pd PhysicalDevice) *Driver {
	if pd.table != t {
		return nil
	}
	return t.Driver(pd.index)
}

// PhysicalDevice is the application-visible physical-device handle. It
// refers back to the owning driver without owning it.
type PhysicalDevice struct {
	table  *Table
	index  int
	native uintptr
}

// Native returns the driver's own handle for the device.
func (pd PhysicalDevice) Native() uintptr {
	return pd.native
}

// DriverIndex returns the index of the owning driver in its table.
func (pd PhysicalDevice) DriverIndex() int {
	return pd.index
}

// Owner resolves the driver that enumerated pd. It returns nil for the
// zero handle.
func (pd PhysicalDevice) Owner() *Driver {
	if pd.table == nil {
		return nil
	}
	return pd.table.Driver(pd.index)
}

// Valid reports whether pd was created by a Table.
func (pd PhysicalDevice) Valid() bool {
	return pd.table != nil
}
