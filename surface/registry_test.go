// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"testing"

	"github.com/gogpu/wsi/capability"
)

// TestRegistryRegister tests entry registration.
func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()

	r.Register(RegistryEntry{
		Platform:   PlatformWayland,
		Capability: capability.WaylandSurface,
		Proc:       "vkCreateWaylandSurfaceKHR",
	})

	entry, ok := r.Get(PlatformWayland)
	if !ok {
		t.Fatal("registered platform not found")
	}
	if entry.Capability != capability.WaylandSurface {
		t.Errorf("Capability = %v, want %v", entry.Capability, capability.WaylandSurface)
	}

	// Returned entries are copies.
	entry.Proc = "changed"
	again, _ := r.Get(PlatformWayland)
	if again.Proc != "vkCreateWaylandSurfaceKHR" {
		t.Errorf("Proc = %s, registry entry was modified through a copy", again.Proc)
	}
}

// TestRegistryUnregister tests entry removal.
func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry()
	r.Register(RegistryEntry{Platform: PlatformMir})
	r.Unregister(PlatformMir)

	if _, ok := r.Get(PlatformMir); ok {
		t.Error("platform should not exist after unregister")
	}
}

// TestRegistryByProc tests lookup by exported name.
func TestRegistryByProc(t *testing.T) {
	r := NewRegistry()
	r.Register(RegistryEntry{Platform: PlatformXlib, Proc: "vkCreateXlibSurfaceKHR"})

	e, ok := r.ByProc("vkCreateXlibSurfaceKHR")
	if !ok || e.Platform != PlatformXlib {
		t.Errorf("ByProc() = %v, %v", e, ok)
	}
	if _, ok := r.ByProc("vkcreatexlibsurfacekhr"); ok {
		t.Error("ByProc should match exactly")
	}
}

// TestGlobalRegistry tests the built-in platforms.
func TestGlobalRegistry(t *testing.T) {
	entries := Entries()
	if len(entries) != int(numPlatforms) {
		t.Fatalf("len(Entries()) = %d, want %d", len(entries), numPlatforms)
	}
	for i, e := range entries {
		if e.Platform != Platform(i) {
			t.Errorf("Entries()[%d].Platform = %v, want %v", i, e.Platform, Platform(i))
		}
		p, ok := PlatformFor(e.Capability)
		if !ok || p != e.Platform {
			t.Errorf("PlatformFor(%v) = %v, want %v", e.Capability, p, e.Platform)
		}
		if e.Create == nil {
			t.Errorf("%v has no constructor", e.Platform)
		}
	}
}

// TestCreateUnregisteredPlatform tests the factory error path.
func TestCreateUnregisteredPlatform(t *testing.T) {
	e, _ := Get(PlatformMir)
	Unregister(PlatformMir)
	t.Cleanup(func() { Register(*e) })

	f := NewFactory(nil, nil)
	_, err := f.Create(MirDescriptor{}, nil)

	var notFound *PlatformNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected PlatformNotFoundError, got %T", err)
	}
	if notFound.Error() != "surface: platform not registered: mir" {
		t.Errorf("error message = %q, unexpected format", notFound.Error())
	}
}
