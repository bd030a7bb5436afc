package wsi

import (
	"github.com/gogpu/wsi/capability"
	"github.com/gogpu/wsi/dispatch"
	"github.com/gogpu/wsi/surface"
)

// Surface query and destroy entry points, gated by the generic surface
// capability.
const (
	ProcDestroySurface                       = "vkDestroySurfaceKHR"
	ProcGetPhysicalDeviceSurfaceSupport      = "vkGetPhysicalDeviceSurfaceSupportKHR"
	ProcGetPhysicalDeviceSurfaceCapabilities = "vkGetPhysicalDeviceSurfaceCapabilitiesKHR"
	ProcGetPhysicalDeviceSurfaceFormats      = "vkGetPhysicalDeviceSurfaceFormatsKHR"
	ProcGetPhysicalDeviceSurfacePresentModes = "vkGetPhysicalDeviceSurfacePresentModesKHR"
)

// GetInstanceProcAddr resolves an entry point handled by this layer.
//
// handled is false when name is not one of ours and the caller should try
// its next source. When handled is true, proc is the bound method value, or
// nil when the capability guarding name is disabled:
//
//   - surface queries and vkDestroySurfaceKHR need the generic surface
//     capability;
//   - swapchain entry points are always returned;
//   - vkCreate*SurfaceKHR needs that backend's capability. A backend that
//     is not compiled in is not handled at all.
func (inst *Instance) GetInstanceProcAddr(name string) (proc any, handled bool) {
	proc, handled = inst.lookupProc(name)
	inst.log().Debug("wsi: proc lookup", "name", name, "handled", handled, "found", proc != nil)
	return proc, handled
}

func (inst *Instance) lookupProc(name string) (any, bool) {
	switch name {
	case ProcDestroySurface:
		return inst.gated(capability.Surface, inst.DestroySurface), true
	case ProcGetPhysicalDeviceSurfaceSupport:
		return inst.gated(capability.Surface, inst.GetPhysicalDeviceSurfaceSupport), true
	case ProcGetPhysicalDeviceSurfaceCapabilities:
		return inst.gated(capability.Surface, inst.GetPhysicalDeviceSurfaceCapabilities), true
	case ProcGetPhysicalDeviceSurfaceFormats:
		return inst.gated(capability.Surface, inst.GetPhysicalDeviceSurfaceFormats), true
	case ProcGetPhysicalDeviceSurfacePresentModes:
		return inst.gated(capability.Surface, inst.GetPhysicalDeviceSurfacePresentModes), true

	case dispatch.ProcCreateSwapchain:
		return inst.CreateSwapchain, true
	case dispatch.ProcDestroySwapchain:
		return inst.DestroySwapchain, true
	case dispatch.ProcGetSwapchainImages:
		return inst.GetSwapchainImages, true
	case dispatch.ProcAcquireNextImage:
		return inst.AcquireNextImage, true
	case dispatch.ProcQueuePresent:
		return inst.QueuePresent, true
	}

	e, ok := surface.ByProc(name)
	if !ok || !inst.caps.Backends().Has(e.Capability) {
		return nil, false
	}
	return inst.gated(e.Capability, inst.createProc(e)), true
}

// gated returns fn when c is enabled and nil otherwise.
func (inst *Instance) gated(c capability.Capability, fn any) any {
	if !inst.caps.Enabled(c) {
		return nil
	}
	return fn
}

func (inst *Instance) createProc(e *surface.RegistryEntry) any {
	switch e.Capability {
	case capability.Win32Surface:
		return inst.CreateWin32Surface
	case capability.MirSurface:
		return inst.CreateMirSurface
	case capability.WaylandSurface:
		return inst.CreateWaylandSurface
	case capability.XCBSurface:
		return inst.CreateXCBSurface
	case capability.XlibSurface:
		return inst.CreateXlibSurface
	}
	return inst.CreateSurface
}
