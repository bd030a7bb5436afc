// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package null

import (
	"fmt"
	"slices"

	"github.com/gogpu/wsi/dispatch"
	"github.com/gogpu/wsi/surface"
)

type swapchain struct {
	device    uintptr
	surface   *surface.Base
	extent    dispatch.Extent2D
	mode      dispatch.PresentMode
	images    []dispatch.Image
	acquired  []bool
	next      int
	retired   bool
	outOfDate bool
	presented uint64
}

// CreateDevice creates a logical device on physical device pd and returns
// it with its only queue. Both carry the device table of d.
func (d *Driver) CreateDevice(pd uintptr) (dispatch.Device, dispatch.Queue, error) {
	if !d.validDevice(pd) {
		return dispatch.Device{}, dispatch.Queue{}, fmt.Errorf("null: create device: %w", dispatch.ErrorInitializationFailed)
	}
	table, err := dispatch.NewDeviceTable(map[string]any{
		dispatch.ProcCreateSwapchain:    dispatch.CreateSwapchainFunc(d.createSwapchain),
		dispatch.ProcDestroySwapchain:   dispatch.DestroySwapchainFunc(d.destroySwapchain),
		dispatch.ProcGetSwapchainImages: dispatch.GetSwapchainImagesFunc(d.getSwapchainImages),
		dispatch.ProcAcquireNextImage:   dispatch.AcquireNextImageFunc(d.acquireNextImage),
		dispatch.ProcQueuePresent:       dispatch.QueuePresentFunc(d.queuePresent),
	})
	if err != nil {
		return dispatch.Device{}, dispatch.Queue{}, err
	}

	d.mu.Lock()
	dev := uintptr(d.handle())
	d.devices[dev] = pd
	d.mu.Unlock()

	d.logger.Debug("null: device created", "driver", d.opts.name, "physical", pd, "device", dev)
	return dispatch.NewDevice(table, dev), dispatch.NewQueue(table, dev), nil
}

// Swapchains returns the number of live swapchains.
func (d *Driver) Swapchains() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.swapchains)
}

// Presented returns how many images sc has presented.
func (d *Driver) Presented(sc dispatch.Swapchain) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if s, ok := d.swapchains[sc]; ok {
		return s.presented
	}
	return 0
}

func (d *Driver) createSwapchain(dev uintptr, info *dispatch.SwapchainCreateInfo, _ surface.Allocator) (dispatch.Swapchain, error) {
	if info == nil || info.Surface == nil {
		return 0, dispatch.ErrorSurfaceLost
	}
	if !d.supports(info.Surface) {
		return 0, dispatch.ErrorIncompatibleDisplay
	}
	if !slices.Contains(d.opts.modes, info.PresentMode) {
		return 0, dispatch.ErrorInitializationFailed
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.devices[dev]; !ok {
		return 0, dispatch.ErrorDeviceLost
	}
	if info.OldSwapchain != 0 {
		if old, ok := d.swapchains[info.OldSwapchain]; ok {
			old.retired = true
		}
	}
	for _, other := range d.swapchains {
		if other.surface == info.Surface && !other.retired {
			return 0, dispatch.ErrorNativeWindowInUse
		}
	}

	count := max(info.MinImageCount, d.opts.minImages)
	if d.opts.maxImages != 0 {
		count = min(count, d.opts.maxImages)
	}
	sc := &swapchain{
		device:   dev,
		surface:  info.Surface,
		extent:   info.ImageExtent,
		mode:     info.PresentMode,
		images:   make([]dispatch.Image, count),
		acquired: make([]bool, count),
	}
	for i := range sc.images {
		sc.images[i] = dispatch.Image(d.handle())
	}
	h := dispatch.Swapchain(d.handle())
	d.swapchains[h] = sc

	d.logger.Debug("null: swapchain created",
		"swapchain", h, "images", count, "extent", info.ImageExtent, "mode", info.PresentMode)
	return h, nil
}

func (d *Driver) destroySwapchain(dev uintptr, h dispatch.Swapchain, _ surface.Allocator) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if sc, ok := d.swapchains[h]; ok && sc.device == dev {
		delete(d.swapchains, h)
	}
}

func (d *Driver) lookup(dev uintptr, h dispatch.Swapchain) (*swapchain, error) {
	sc, ok := d.swapchains[h]
	if !ok || sc.device != dev {
		return nil, dispatch.ErrorDeviceLost
	}
	return sc, nil
}

func (d *Driver) getSwapchainImages(dev uintptr, h dispatch.Swapchain) ([]dispatch.Image, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	sc, err := d.lookup(dev, h)
	if err != nil {
		return nil, err
	}
	return slices.Clone(sc.images), nil
}

// acquireNextImage hands out images round robin. It never blocks: with
// every image acquired it reports NotReady for a zero timeout and Timeout
// otherwise.
func (d *Driver) acquireNextImage(dev uintptr, h dispatch.Swapchain, timeout uint64, _ dispatch.Semaphore, _ dispatch.Fence) (uint32, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	sc, err := d.lookup(dev, h)
	if err != nil {
		return 0, err
	}
	if sc.retired || sc.outOfDate {
		return 0, dispatch.ErrorOutOfDate
	}
	for range sc.images {
		i := sc.next
		sc.next = (sc.next + 1) % len(sc.images)
		if !sc.acquired[i] {
			sc.acquired[i] = true
			return uint32(i), nil
		}
	}
	if timeout == 0 {
		return 0, dispatch.NotReady
	}
	return 0, dispatch.Timeout
}

func (d *Driver) queuePresent(queue uintptr, info *dispatch.PresentInfo) error {
	if info == nil || len(info.Swapchains) != len(info.ImageIndices) {
		return dispatch.ErrorInitializationFailed
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	var first error
	for i, h := range info.Swapchains {
		res := d.present(queue, h, info.ImageIndices[i])
		if info.Results != nil {
			info.Results[i] = res
		}
		if first == nil && res != dispatch.Success {
			first = res
		}
	}
	return first
}

// present releases one image. d.mu must be held.
func (d *Driver) present(queue uintptr, h dispatch.Swapchain, index uint32) dispatch.Result {
	sc, ok := d.swapchains[h]
	if !ok || sc.device != queue {
		return dispatch.ErrorDeviceLost
	}
	if int(index) >= len(sc.images) || !sc.acquired[index] {
		return dispatch.ErrorInitializationFailed
	}
	sc.acquired[index] = false
	if sc.outOfDate {
		return dispatch.ErrorOutOfDate
	}
	sc.presented++
	if sc.retired {
		return dispatch.Suboptimal
	}
	return dispatch.Success
}
