// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package surface builds the opaque surface records handed to applications.
//
// A surface record is a small tagged struct: a Base header carrying the
// Platform discriminant, followed by the window-system handles the
// application supplied. The record is allocated through an Allocator, either
// the caller's or the Factory default, and freed as raw memory by Destroy.
// Drivers read the record back through the typed views on Base.
//
// # Allocators
//
// Records are created with ScopeInstance and pointer alignment. A surface
// must be destroyed with the same strategy that created it:
//
//	f := surface.NewFactory(nil, nil)
//	s, err := f.NewXCB(surface.XCBDescriptor{Connection: conn, Window: win}, nil)
//	if err != nil {
//	    return err
//	}
//	defer f.Destroy(s, nil)
//
// Destroying with a different allocator than the one used for creation is
// undefined. The default Heap tolerates foreign pointers by ignoring them.
//
// # Registry
//
// Every window system is described by a RegistryEntry naming its platform
// tag, the capability that exposes it and its exported entry point.
package surface
