// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"unsafe"
)

// Errors.
var (
	// ErrOutOfHostMemory is returned when the allocator cannot provide the
	// record. No surface is created in that case.
	ErrOutOfHostMemory = errors.New("surface: out of host memory")

	// ErrNilDescriptor is returned by Create for a nil descriptor.
	ErrNilDescriptor = errors.New("surface: nil descriptor")
)

// DescriptorError indicates a descriptor of the wrong type was passed to a
// platform constructor.
type DescriptorError struct {
	Want Platform
	Got  Descriptor
}

func (e *DescriptorError) Error() string {
	if e.Got == nil {
		return fmt.Sprintf("surface: %s constructor given nil descriptor", e.Want)
	}
	return fmt.Sprintf("surface: %s constructor given %s descriptor %T", e.Want, e.Got.Platform(), e.Got)
}

// Factory builds and frees surface records. Its Default allocator serves
// every call made with a nil allocator.
type Factory struct {
	def    Allocator
	logger atomic.Pointer[slog.Logger]
}

// NewFactory creates a factory falling back to def. A nil def selects a
// fresh Heap; a nil logger disables logging.
func NewFactory(def Allocator, logger *slog.Logger) *Factory {
	if def == nil {
		def = NewHeap()
	}
	f := &Factory{def: def}
	f.SetLogger(logger)
	return f
}

// Default returns the fallback allocator.
func (f *Factory) Default() Allocator {
	return f.def
}

// SetLogger replaces the factory logger. A nil l disables logging. It is
// safe to call concurrently with surface creation and destruction.
func (f *Factory) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	f.logger.Store(l)
}

func (f *Factory) log() *slog.Logger {
	if l := f.logger.Load(); l != nil {
		return l
	}
	return slog.New(slog.DiscardHandler)
}

func (f *Factory) allocator(a Allocator) Allocator {
	if a == nil {
		return f.def
	}
	return a
}

// alloc obtains a zeroed, tagged record of type T from a.
func alloc[T any](f *Factory, a Allocator, p Platform) (*T, error) {
	var zero T
	size := unsafe.Sizeof(zero)
	mem := f.allocator(a).Allocate(size, unsafe.Alignof(uintptr(0)), ScopeInstance)
	if mem == nil {
		f.log().Warn("surface: allocation failed", "platform", p, "size", size)
		return nil, ErrOutOfHostMemory
	}
	rec := (*T)(mem)
	*rec = zero
	(*Base)(mem).Platform = p
	return rec, nil
}

// NewWin32 creates a Win32 surface.
func (f *Factory) NewWin32(d Win32Descriptor, a Allocator) (*Base, error) {
	s, err := alloc[Win32](f, a, PlatformWin32)
	if err != nil {
		return nil, err
	}
	s.HInstance = d.HInstance
	s.HWND = d.HWND
	return &s.Base, nil
}

// NewMir creates a Mir surface.
func (f *Factory) NewMir(d MirDescriptor, a Allocator) (*Base, error) {
	s, err := alloc[Mir](f, a, PlatformMir)
	if err != nil {
		return nil, err
	}
	s.Connection = d.Connection
	s.MirSurface = d.MirSurface
	return &s.Base, nil
}

// NewWayland creates a Wayland surface.
func (f *Factory) NewWayland(d WaylandDescriptor, a Allocator) (*Base, error) {
	s, err := alloc[Wayland](f, a, PlatformWayland)
	if err != nil {
		return nil, err
	}
	s.Display = d.Display
	s.Surface = d.Surface
	return &s.Base, nil
}

// NewXCB creates an XCB surface.
func (f *Factory) NewXCB(d XCBDescriptor, a Allocator) (*Base, error) {
	s, err := alloc[XCB](f, a, PlatformXCB)
	if err != nil {
		return nil, err
	}
	s.Connection = d.Connection
	s.Window = d.Window
	return &s.Base, nil
}

// NewXlib creates an Xlib surface.
func (f *Factory) NewXlib(d XlibDescriptor, a Allocator) (*Base, error) {
	s, err := alloc[Xlib](f, a, PlatformXlib)
	if err != nil {
		return nil, err
	}
	s.Display = d.Display
	s.Window = d.Window
	return &s.Base, nil
}

// Create builds a surface for any descriptor through the global registry.
func (f *Factory) Create(d Descriptor, a Allocator) (*Base, error) {
	if d == nil {
		return nil, ErrNilDescriptor
	}
	e, ok := Get(d.Platform())
	if !ok {
		return nil, &PlatformNotFoundError{Platform: d.Platform()}
	}
	return e.Create(f, d, a)
}

// Destroy frees s with a, or with the default allocator when a is nil.
// A nil s is a no-op. The record is released as raw memory; its tag is not
// consulted.
func (f *Factory) Destroy(s *Base, a Allocator) {
	if s == nil {
		return
	}
	p := unsafe.Pointer(s)
	if a != nil {
		a.Free(p)
		return
	}
	if h, ok := f.def.(*Heap); ok {
		if !h.release(p) {
			f.log().Warn("surface: destroy of a block the default heap does not own",
				"platform", s.Platform)
		}
		return
	}
	f.def.Free(p)
}
