package wsi

import (
	"errors"

	"github.com/gogpu/wsi/capability"
	"github.com/gogpu/wsi/dispatch"
	"github.com/gogpu/wsi/surface"
)

// newSurface checks that backend c is compiled in, builds the record and
// turns allocation failure into the out-of-host-memory result.
func (inst *Instance) newSurface(c capability.Capability, build func() (*surface.Base, error)) (*surface.Base, error) {
	if !inst.caps.Backends().Has(c) {
		return nil, &BackendError{Backend: c, Platform: inst.platform}
	}
	s, err := build()
	if errors.Is(err, surface.ErrOutOfHostMemory) {
		return nil, dispatch.ErrorOutOfHostMemory
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// CreateWin32Surface creates a surface for a Win32 window. A nil a uses
// the instance allocator; the same allocator must be passed to
// DestroySurface.
func (inst *Instance) CreateWin32Surface(d surface.Win32Descriptor, a surface.Allocator) (*surface.Base, error) {
	return inst.newSurface(capability.Win32Surface, func() (*surface.Base, error) {
		return inst.factory.NewWin32(d, a)
	})
}

// CreateMirSurface creates a surface for a Mir surface.
func (inst *Instance) CreateMirSurface(d surface.MirDescriptor, a surface.Allocator) (*surface.Base, error) {
	return inst.newSurface(capability.MirSurface, func() (*surface.Base, error) {
		return inst.factory.NewMir(d, a)
	})
}

// CreateWaylandSurface creates a surface for a Wayland surface.
func (inst *Instance) CreateWaylandSurface(d surface.WaylandDescriptor, a surface.Allocator) (*surface.Base, error) {
	return inst.newSurface(capability.WaylandSurface, func() (*surface.Base, error) {
		return inst.factory.NewWayland(d, a)
	})
}

// CreateXCBSurface creates a surface for an XCB window.
func (inst *Instance) CreateXCBSurface(d surface.XCBDescriptor, a surface.Allocator) (*surface.Base, error) {
	return inst.newSurface(capability.XCBSurface, func() (*surface.Base, error) {
		return inst.factory.NewXCB(d, a)
	})
}

// CreateXlibSurface creates a surface for an Xlib window.
func (inst *Instance) CreateXlibSurface(d surface.XlibDescriptor, a surface.Allocator) (*surface.Base, error) {
	return inst.newSurface(capability.XlibSurface, func() (*surface.Base, error) {
		return inst.factory.NewXlib(d, a)
	})
}

// CreateSurface creates a surface from any descriptor.
func (inst *Instance) CreateSurface(d surface.Descriptor, a surface.Allocator) (*surface.Base, error) {
	if d == nil {
		return nil, surface.ErrNilDescriptor
	}
	e, ok := surface.Get(d.Platform())
	if !ok {
		return nil, &surface.PlatformNotFoundError{Platform: d.Platform()}
	}
	return inst.newSurface(e.Capability, func() (*surface.Base, error) {
		return e.Create(inst.factory, d, a)
	})
}

// DestroySurface frees s. a must be the allocator s was created with, or
// nil when it was created with nil. A nil s is a no-op.
func (inst *Instance) DestroySurface(s *surface.Base, a surface.Allocator) {
	inst.factory.Destroy(s, a)
}

// GetPhysicalDeviceSurfaceSupport reports whether queue family of pd can
// present to s.
func (inst *Instance) GetPhysicalDeviceSurfaceSupport(pd dispatch.PhysicalDevice, queueFamily uint32, s *surface.Base) (bool, error) {
	return inst.router.SurfaceSupport(pd, queueFamily, s)
}

// GetPhysicalDeviceSurfaceCapabilities returns the capabilities of s on pd.
func (inst *Instance) GetPhysicalDeviceSurfaceCapabilities(pd dispatch.PhysicalDevice, s *surface.Base) (dispatch.Capabilities, error) {
	return inst.router.SurfaceCapabilities(pd, s)
}

// GetPhysicalDeviceSurfaceFormats returns the formats s supports on pd.
func (inst *Instance) GetPhysicalDeviceSurfaceFormats(pd dispatch.PhysicalDevice, s *surface.Base) ([]dispatch.SurfaceFormat, error) {
	return inst.router.SurfaceFormats(pd, s)
}

// GetPhysicalDeviceSurfacePresentModes returns the present modes s
// supports on pd.
func (inst *Instance) GetPhysicalDeviceSurfacePresentModes(pd dispatch.PhysicalDevice, s *surface.Base) ([]dispatch.PresentMode, error) {
	return inst.router.SurfacePresentModes(pd, s)
}

// CreateSwapchain forwards to the device table of dev.
func (inst *Instance) CreateSwapchain(dev dispatch.Device, info *dispatch.SwapchainCreateInfo, a surface.Allocator) (dispatch.Swapchain, error) {
	return inst.router.CreateSwapchain(dev, info, a)
}

// DestroySwapchain forwards to the device table of dev.
func (inst *Instance) DestroySwapchain(dev dispatch.Device, sc dispatch.Swapchain, a surface.Allocator) {
	inst.router.DestroySwapchain(dev, sc, a)
}

// GetSwapchainImages forwards to the device table of dev.
func (inst *Instance) GetSwapchainImages(dev dispatch.Device, sc dispatch.Swapchain) ([]dispatch.Image, error) {
	return inst.router.GetSwapchainImages(dev, sc)
}

// AcquireNextImage forwards to the device table of dev. The timeout is
// passed through untouched.
func (inst *Instance) AcquireNextImage(dev dispatch.Device, sc dispatch.Swapchain, timeout uint64, sem dispatch.Semaphore, fence dispatch.Fence) (uint32, error) {
	return inst.router.AcquireNextImage(dev, sc, timeout, sem, fence)
}

// QueuePresent forwards to the device table of q.
func (inst *Instance) QueuePresent(q dispatch.Queue, info *dispatch.PresentInfo) error {
	return inst.router.QueuePresent(q, info)
}
