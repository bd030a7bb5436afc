// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"sort"
	"sync"

	"github.com/gogpu/wsi/capability"
)

// Constructor builds a record of one platform from a matching descriptor.
type Constructor func(f *Factory, d Descriptor, a Allocator) (*Base, error)

// RegistryEntry represents a window-system backend that can produce
// surfaces.
type RegistryEntry struct {
	// Platform is the tag written into records built by Create.
	Platform Platform

	// Capability is the instance capability that exposes the entry point.
	Capability capability.Capability

	// Proc is the exported entry point name, e.g. "vkCreateXcbSurfaceKHR".
	Proc string

	// Create builds the record.
	Create Constructor
}

// globalRegistry is the default registry.
var globalRegistry = &Registry{}

// Registry maps platforms to their surface constructors.
//
// The built-in platforms register themselves from init. Drivers for
// additional window systems can add entries with Register.
type Registry struct {
	mu      sync.RWMutex
	entries map[Platform]*RegistryEntry
}

// NewRegistry creates a new empty registry.
// Most code should use the global registry via Register and Get.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[Platform]*RegistryEntry),
	}
}

// Register adds an entry to the global registry.
// Registering a platform that already exists replaces the previous entry.
func Register(e RegistryEntry) {
	globalRegistry.Register(e)
}

// Unregister removes a platform from the global registry.
func Unregister(p Platform) {
	globalRegistry.Unregister(p)
}

// Get returns the global entry for p.
func Get(p Platform) (*RegistryEntry, bool) {
	return globalRegistry.Get(p)
}

// ByProc returns the global entry exported under proc.
func ByProc(proc string) (*RegistryEntry, bool) {
	return globalRegistry.ByProc(proc)
}

// Entries returns all global entries ordered by platform.
func Entries() []RegistryEntry {
	return globalRegistry.Entries()
}

// Register adds an entry to this registry.
func (r *Registry) Register(e RegistryEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entries == nil {
		r.entries = make(map[Platform]*RegistryEntry)
	}
	r.entries[e.Platform] = &e
}

// Unregister removes a platform from this registry.
func (r *Registry) Unregister(p Platform) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, p)
}

// Get returns a copy of the entry for p.
func (r *Registry) Get(p Platform) (*RegistryEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[p]
	if !ok {
		return nil, false
	}
	entryCopy := *e
	return &entryCopy, true
}

// ByProc returns a copy of the entry whose Proc equals proc exactly.
func (r *Registry) ByProc(proc string) (*RegistryEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.entries {
		if e.Proc == proc {
			entryCopy := *e
			return &entryCopy, true
		}
	}
	return nil, false
}

// Entries returns copies of all entries ordered by platform.
func (r *Registry) Entries() []RegistryEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]RegistryEntry, 0, len(r.entries))
	for _, e := range r.entries {
		list = append(list, *e)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Platform < list[j].Platform
	})
	return list
}

// PlatformNotFoundError indicates no constructor is registered for a
// platform.
type PlatformNotFoundError struct {
	Platform Platform
}

func (e *PlatformNotFoundError) Error() string {
	return "surface: platform not registered: " + e.Platform.String()
}

// descriptorAs narrows d to T or reports a DescriptorError.
func descriptorAs[T Descriptor](want Platform, d Descriptor) (T, error) {
	t, ok := d.(T)
	if !ok {
		var zero T
		return zero, &DescriptorError{Want: want, Got: d}
	}
	return t, nil
}

// init registers the built-in window systems.
func init() {
	Register(RegistryEntry{
		Platform:   PlatformWin32,
		Capability: capability.Win32Surface,
		Proc:       "vkCreateWin32SurfaceKHR",
		Create: func(f *Factory, d Descriptor, a Allocator) (*Base, error) {
			desc, err := descriptorAs[Win32Descriptor](PlatformWin32, d)
			if err != nil {
				return nil, err
			}
			return f.NewWin32(desc, a)
		},
	})
	Register(RegistryEntry{
		Platform:   PlatformMir,
		Capability: capability.MirSurface,
		Proc:       "vkCreateMirSurfaceKHR",
		Create: func(f *Factory, d Descriptor, a Allocator) (*Base, error) {
			desc, err := descriptorAs[MirDescriptor](PlatformMir, d)
			if err != nil {
				return nil, err
			}
			return f.NewMir(desc, a)
		},
	})
	Register(RegistryEntry{
		Platform:   PlatformWayland,
		Capability: capability.WaylandSurface,
		Proc:       "vkCreateWaylandSurfaceKHR",
		Create: func(f *Factory, d Descriptor, a Allocator) (*Base, error) {
			desc, err := descriptorAs[WaylandDescriptor](PlatformWayland, d)
			if err != nil {
				return nil, err
			}
			return f.NewWayland(desc, a)
		},
	})
	Register(RegistryEntry{
		Platform:   PlatformXCB,
		Capability: capability.XCBSurface,
		Proc:       "vkCreateXcbSurfaceKHR",
		Create: func(f *Factory, d Descriptor, a Allocator) (*Base, error) {
			desc, err := descriptorAs[XCBDescriptor](PlatformXCB, d)
			if err != nil {
				return nil, err
			}
			return f.NewXCB(desc, a)
		},
	})
	Register(RegistryEntry{
		Platform:   PlatformXlib,
		Capability: capability.XlibSurface,
		Proc:       "vkCreateXlibSurfaceKHR",
		Create: func(f *Factory, d Descriptor, a Allocator) (*Base, error) {
			desc, err := descriptorAs[XlibDescriptor](PlatformXlib, d)
			if err != nil {
				return nil, err
			}
			return f.NewXlib(desc, a)
		},
	})
}

// PlatformFor returns the platform whose surfaces a backend capability
// enables.
func PlatformFor(c capability.Capability) (Platform, bool) {
	switch c {
	case capability.Win32Surface:
		return PlatformWin32, true
	case capability.MirSurface:
		return PlatformMir, true
	case capability.WaylandSurface:
		return PlatformWayland, true
	case capability.XCBSurface:
		return PlatformXCB, true
	case capability.XlibSurface:
		return PlatformXlib, true
	}
	return numPlatforms, false
}
