// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"unsafe"

	"github.com/BurntSushi/xgb/xproto"
)

// Platform is the discriminant stored at the start of every surface record.
// The values follow the platform numbering drivers expect.
type Platform uint32

const (
	// PlatformMir tags a Mir record.
	PlatformMir Platform = iota
	// PlatformWayland tags a Wayland record.
	PlatformWayland
	// PlatformWin32 tags a Win32 record.
	PlatformWin32
	// PlatformXCB tags an XCB record.
	PlatformXCB
	// PlatformXlib tags an Xlib record.
	PlatformXlib

	numPlatforms
)

var platformNames = [numPlatforms]string{
	PlatformMir:     "mir",
	PlatformWayland: "wayland",
	PlatformWin32:   "win32",
	PlatformXCB:     "xcb",
	PlatformXlib:    "xlib",
}

func (p Platform) String() string {
	if p >= numPlatforms {
		return "unknown"
	}
	return platformNames[p]
}

// Base is the common header of every surface record. A *Base is the opaque
// surface handle handed to applications; drivers recover the full record
// from the Platform tag.
//
// Records only hold scalar fields. The memory behind them may come from a
// caller-supplied allocator and is not scanned by the garbage collector.
type Base struct {
	Platform Platform
}

// Win32 is the record for a Win32 window.
type Win32 struct {
	Base
	HInstance uintptr
	HWND      uintptr
}

// Mir is the record for a Mir surface.
type Mir struct {
	Base
	Connection uintptr
	MirSurface uintptr
}

// Wayland is the record for a Wayland surface.
type Wayland struct {
	Base
	Display uintptr
	Surface uintptr
}

// XCB is the record for an XCB window. Connection is the
// xcb_connection_t pointer of the client library.
type XCB struct {
	Base
	Connection uintptr
	Window     xproto.Window
}

// Xlib is the record for an Xlib window. Display is the Display pointer of
// the client library.
type Xlib struct {
	Base
	Display uintptr
	Window  xproto.Window
}

// Win32 returns the Win32 record behind b, or nil if b is not tagged Win32.
func (b *Base) Win32() *Win32 {
	if b == nil || b.Platform != PlatformWin32 {
		return nil
	}
	return (*Win32)(unsafe.Pointer(b))
}

// Mir returns the Mir record behind b, or nil if b is not tagged Mir.
func (b *Base) Mir() *Mir {
	if b == nil || b.Platform != PlatformMir {
		return nil
	}
	return (*Mir)(unsafe.Pointer(b))
}

// Wayland returns the Wayland record behind b, or nil if b is not tagged
// Wayland.
func (b *Base) Wayland() *Wayland {
	if b == nil || b.Platform != PlatformWayland {
		return nil
	}
	return (*Wayland)(unsafe.Pointer(b))
}

// XCB returns the XCB record behind b, or nil if b is not tagged XCB.
func (b *Base) XCB() *XCB {
	if b == nil || b.Platform != PlatformXCB {
		return nil
	}
	return (*XCB)(unsafe.Pointer(b))
}

// Xlib returns the Xlib record behind b, or nil if b is not tagged Xlib.
func (b *Base) Xlib() *Xlib {
	if b == nil || b.Platform != PlatformXlib {
		return nil
	}
	return (*Xlib)(unsafe.Pointer(b))
}

// Descriptor carries the window-system handles a surface is created from.
type Descriptor interface {
	Platform() Platform
}

// Win32Descriptor describes a Win32 window.
type Win32Descriptor struct {
	HInstance uintptr
	HWND      uintptr
}

// MirDescriptor describes a Mir surface.
type MirDescriptor struct {
	Connection uintptr
	MirSurface uintptr
}

// WaylandDescriptor describes a Wayland surface.
type WaylandDescriptor struct {
	Display uintptr
	Surface uintptr
}

// XCBDescriptor describes an XCB window.
type XCBDescriptor struct {
	Connection uintptr
	Window     xproto.Window
}

// XlibDescriptor describes an Xlib window.
type XlibDescriptor struct {
	Display uintptr
	Window  xproto.Window
}

func (Win32Descriptor) Platform() Platform   { return PlatformWin32 }
func (MirDescriptor) Platform() Platform     { return PlatformMir }
func (WaylandDescriptor) Platform() Platform { return PlatformWayland }
func (XCBDescriptor) Platform() Platform     { return PlatformXCB }
func (XlibDescriptor) Platform() Platform    { return PlatformXlib }
