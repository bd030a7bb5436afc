// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"sync"
	"unsafe"
)

// Scope is the lifetime class of an allocation, passed to allocators as a
// hint.
type Scope uint32

const (
	ScopeCommand Scope = iota
	ScopeObject
	ScopeCache
	ScopeDevice
	ScopeInstance
)

func (s Scope) String() string {
	switch s {
	case ScopeCommand:
		return "command"
	case ScopeObject:
		return "object"
	case ScopeCache:
		return "cache"
	case ScopeDevice:
		return "device"
	case ScopeInstance:
		return "instance"
	}
	return "unknown"
}

// Allocator is a host memory strategy. Allocate returns nil when it cannot
// satisfy the request. Free must accept every pointer Allocate returned.
//
// A surface must be destroyed with the allocator it was created with, or
// with nil on both sides. Mixing strategies is a caller error.
type Allocator interface {
	Allocate(size, alignment uintptr, scope Scope) unsafe.Pointer
	Free(p unsafe.Pointer)
}

// Callbacks adapts a pair of functions sharing user data to Allocator.
type Callbacks struct {
	UserData   any
	Allocation func(userData any, size, alignment uintptr, scope Scope) unsafe.Pointer
	Release    func(userData any, p unsafe.Pointer)
}

// Allocate calls c.Allocation. It returns nil if c.Allocation is unset.
func (c *Callbacks) Allocate(size, alignment uintptr, scope Scope) unsafe.Pointer {
	if c.Allocation == nil {
		return nil
	}
	return c.Allocation(c.UserData, size, alignment, scope)
}

// Free calls c.Release if it is set.
func (c *Callbacks) Free(p unsafe.Pointer) {
	if c.Release != nil {
		c.Release(c.UserData, p)
	}
}

// Heap is the default strategy. It hands out Go heap blocks and keeps them
// reachable until freed, so a surface handle stays valid however the
// application stores it.
//
// Heap is safe for concurrent use.
type Heap struct {
	mu     sync.Mutex
	blocks map[unsafe.Pointer][]uint64
}

// NewHeap creates an empty heap.
func NewHeap() *Heap {
	return &Heap{blocks: make(map[unsafe.Pointer][]uint64)}
}

// maxAlloc bounds a single Heap block.
const maxAlloc = 1 << 30

// Allocate returns a zeroed block of at least size bytes aligned to
// alignment. It returns nil for a zero size, an alignment that is not a
// power of two or a request larger than the heap can serve.
func (h *Heap) Allocate(size, alignment uintptr, _ Scope) unsafe.Pointer {
	if size == 0 || alignment == 0 || alignment&(alignment-1) != 0 {
		return nil
	}
	// Words are 8-byte aligned; pad for anything stricter.
	pad := uintptr(0)
	if alignment > 8 {
		pad = alignment - 8
	}
	if size > maxAlloc-7 || pad > maxAlloc-7-size {
		return nil
	}
	words := make([]uint64, (size+pad+7)/8)
	p := unsafe.Pointer(&words[0])
	if off := uintptr(p) & (alignment - 1); off != 0 {
		p = unsafe.Add(p, alignment-off)
	}

	h.mu.Lock()
	if h.blocks == nil {
		h.blocks = make(map[unsafe.Pointer][]uint64)
	}
	h.blocks[p] = words
	h.mu.Unlock()
	return p
}

// Free releases a block returned by Allocate. Pointers that are not live
// blocks of h are ignored.
func (h *Heap) Free(p unsafe.Pointer) {
	h.release(p)
}

func (h *Heap) release(p unsafe.Pointer) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.blocks[p]; !ok {
		return false
	}
	delete(h.blocks, p)
	return true
}

// Owns reports whether p is a live block of h.
func (h *Heap) Owns(p unsafe.Pointer) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	_, ok := h.blocks[p]
	return ok
}

// Outstanding returns the number of live blocks.
func (h *Heap) Outstanding() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.blocks)
}
