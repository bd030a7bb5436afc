// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package capability

import (
	"fmt"
	"runtime"
	"strings"
)

// Platform is the host platform family. It decides which backend is native
// and which backends may be compiled in.
type Platform uint8

const (
	// Unix covers every non-Windows host (X11, Wayland, Mir).
	Unix Platform = iota
	// Windows hosts use Win32 only.
	Windows
)

// Host returns the platform of the running process.
func Host() Platform {
	if runtime.GOOS == "windows" {
		return Windows
	}
	return Unix
}

// Native returns the backend enabled by default on p.
func (p Platform) Native() Capability {
	if p == Windows {
		return Win32Surface
	}
	return XCBSurface
}

func (p Platform) String() string {
	if p == Windows {
		return "windows"
	}
	return "unix"
}

// BackendSet records which backend capabilities are compiled in.
// Only backend capabilities are meaningful members.
type BackendSet [N]bool

// DefaultBackends returns the backend set used when none is configured:
// Win32 on Windows, XCB elsewhere.
func DefaultBackends(p Platform) BackendSet {
	var b BackendSet
	b[p.Native()] = true
	return b
}

// NewBackendSet builds a set from backend capabilities.
// Non-backend capabilities are ignored.
func NewBackendSet(cs ...Capability) BackendSet {
	var b BackendSet
	for _, c := range cs {
		if c.IsBackend() {
			b[c] = true
		}
	}
	return b
}

// Has reports whether c is compiled in.
func (b BackendSet) Has(c Capability) bool {
	return c < N && b[c]
}

// List returns the compiled-in backends in table order.
func (b BackendSet) List() []Capability {
	var cs []Capability
	for c := Win32Surface; c <= XlibSurface; c++ {
		if b[c] {
			cs = append(cs, c)
		}
	}
	return cs
}

// Empty reports whether no backend is compiled in.
func (b BackendSet) Empty() bool {
	return len(b.List()) == 0
}

var backendNames = map[string]Capability{
	"win32":   Win32Surface,
	"mir":     MirSurface,
	"wayland": WaylandSurface,
	"xcb":     XCBSurface,
	"xlib":    XlibSurface,
}

// ParseBackend maps a short backend name ("xcb", "wayland", ...) to its
// capability. Matching is case-insensitive.
func ParseBackend(name string) (Capability, error) {
	c, ok := backendNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return N, fmt.Errorf("capability: unknown backend %q", name)
	}
	return c, nil
}

// ParseBackends builds a backend set from short names and checks that every
// backend is valid on p. Win32 is exclusive to Windows and the Unix
// window systems are unavailable there.
func ParseBackends(p Platform, names []string) (BackendSet, error) {
	var b BackendSet
	for _, n := range names {
		c, err := ParseBackend(n)
		if err != nil {
			return BackendSet{}, err
		}
		if (c == Win32Surface) != (p == Windows) {
			return BackendSet{}, fmt.Errorf("capability: backend %q is not available on %s", n, p)
		}
		b[c] = true
	}
	return b, nil
}
