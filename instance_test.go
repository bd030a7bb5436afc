package wsi

import (
	"errors"
	"slices"
	"testing"
	"unsafe"

	"github.com/gogpu/wsi/capability"
	"github.com/gogpu/wsi/config"
	"github.com/gogpu/wsi/dispatch"
	"github.com/gogpu/wsi/driver/null"
	"github.com/gogpu/wsi/surface"
)

// failingAllocator never has memory.
type failingAllocator struct{ frees int }

func (*failingAllocator) Allocate(uintptr, uintptr, surface.Scope) unsafe.Pointer { return nil }
func (a *failingAllocator) Free(unsafe.Pointer)                                   { a.frees++ }

func newInstance(t *testing.T, drivers []*dispatch.Driver, exts []string, opts ...Option) *Instance {
	t.Helper()
	inst, err := CreateInstance(drivers, exts, append([]Option{WithPlatform(capability.Unix)}, opts...)...)
	if err != nil {
		t.Fatalf("CreateInstance() = %v", err)
	}
	t.Cleanup(inst.Destroy)
	return inst
}

func enabledSet(inst *Instance) map[capability.Capability]bool {
	m := make(map[capability.Capability]bool)
	for _, c := range inst.Capabilities() {
		m[c] = true
	}
	return m
}

func TestCreateInstanceDefaults(t *testing.T) {
	tests := []struct {
		name     string
		platform capability.Platform
		want     []capability.Capability
	}{
		{"unix", capability.Unix, []capability.Capability{capability.Surface, capability.XCBSurface}},
		{"windows", capability.Windows, []capability.Capability{capability.Surface, capability.Win32Surface}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst, err := CreateInstance(nil, nil, WithPlatform(tt.platform))
			if err != nil {
				t.Fatalf("CreateInstance() = %v", err)
			}
			defer inst.Destroy()

			if got := inst.Capabilities(); !slices.Equal(got, tt.want) {
				t.Errorf("Capabilities() = %v, want %v", got, tt.want)
			}
			if inst.Platform() != tt.platform {
				t.Errorf("Platform() = %v, want %v", inst.Platform(), tt.platform)
			}
		})
	}
}

func TestCreateInstanceRegistersExtensions(t *testing.T) {
	all := []capability.Capability{
		capability.MirSurface, capability.WaylandSurface,
		capability.XCBSurface, capability.XlibSurface,
	}
	inst := newInstance(t, nil,
		[]string{"VK_KHR_wayland_surface", "VK_KHR_future_thing", "VK_KHR_wayland_surface", "VK_KHR_swapchain"},
		WithBackends(all...),
	)

	got := enabledSet(inst)
	want := map[capability.Capability]bool{
		capability.Surface:        true,
		capability.WaylandSurface: true,
		capability.XCBSurface:     true, // native default
	}
	for c := capability.Capability(0); c < capability.N; c++ {
		if got[c] != want[c] {
			t.Errorf("Enabled(%v) = %v, want %v", c, got[c], want[c])
		}
	}
}

func TestGenericOnlyScenario(t *testing.T) {
	inst := newInstance(t, nil, []string{"VK_KHR_surface"},
		WithBackends(capability.WaylandSurface))

	if !inst.Enabled(capability.Surface) {
		t.Fatal("generic surface capability not enabled")
	}
	if inst.Enabled(capability.WaylandSurface) {
		t.Fatal("wayland capability enabled without being requested")
	}

	// Creation is ungated.
	s, err := inst.CreateWaylandSurface(surface.WaylandDescriptor{Display: 1, Surface: 2}, nil)
	if err != nil {
		t.Fatalf("CreateWaylandSurface() = %v", err)
	}
	inst.DestroySurface(s, nil)

	proc, handled := inst.GetInstanceProcAddr(ProcGetPhysicalDeviceSurfacePresentModes)
	if !handled || proc == nil {
		t.Errorf("present modes: proc=%v handled=%v, want non-nil handled", proc, handled)
	}
	proc, handled = inst.GetInstanceProcAddr("vkCreateWaylandSurfaceKHR")
	if !handled || proc != nil {
		t.Errorf("create wayland: proc=%v handled=%v, want nil handled", proc, handled)
	}
}

func TestGetInstanceProcAddrGating(t *testing.T) {
	queries := []string{
		ProcDestroySurface,
		ProcGetPhysicalDeviceSurfaceSupport,
		ProcGetPhysicalDeviceSurfaceCapabilities,
		ProcGetPhysicalDeviceSurfaceFormats,
		ProcGetPhysicalDeviceSurfacePresentModes,
	}
	swapchain := []string{
		dispatch.ProcCreateSwapchain,
		dispatch.ProcDestroySwapchain,
		dispatch.ProcGetSwapchainImages,
		dispatch.ProcAcquireNextImage,
		dispatch.ProcQueuePresent,
	}

	off := newInstance(t, nil, nil, WithBackends())
	on := newInstance(t, nil, []string{"VK_KHR_surface"}, WithBackends())

	for _, name := range queries {
		if proc, handled := off.GetInstanceProcAddr(name); !handled || proc != nil {
			t.Errorf("%s disabled: proc=%v handled=%v, want nil handled", name, proc, handled)
		}
		if proc, handled := on.GetInstanceProcAddr(name); !handled || proc == nil {
			t.Errorf("%s enabled: proc=%v handled=%v, want non-nil handled", name, proc, handled)
		}
	}
	for _, name := range swapchain {
		if proc, handled := off.GetInstanceProcAddr(name); !handled || proc == nil {
			t.Errorf("%s: proc=%v handled=%v, want non-nil handled", name, proc, handled)
		}
	}
	for _, name := range []string{"vkCreateDevice", "vkCreateXcbSurfaceKHR", ""} {
		if proc, handled := on.GetInstanceProcAddr(name); handled || proc != nil {
			t.Errorf("%q: proc=%v handled=%v, want not handled", name, proc, handled)
		}
	}
}

func TestGetInstanceProcAddrBackendCreate(t *testing.T) {
	inst := newInstance(t, nil, []string{"VK_KHR_xlib_surface"},
		WithBackends(capability.XCBSurface, capability.XlibSurface, capability.MirSurface))

	tests := []struct {
		name    string
		handled bool
		found   bool
	}{
		{"vkCreateXcbSurfaceKHR", true, true},
		{"vkCreateXlibSurfaceKHR", true, true},
		{"vkCreateMirSurfaceKHR", true, false},
		{"vkCreateWaylandSurfaceKHR", false, false},
		{"vkCreateWin32SurfaceKHR", false, false},
	}
	for _, tt := range tests {
		proc, handled := inst.GetInstanceProcAddr(tt.name)
		if handled != tt.handled || (proc != nil) != tt.found {
			t.Errorf("%s: found=%v handled=%v, want found=%v handled=%v",
				tt.name, proc != nil, handled, tt.found, tt.handled)
		}
	}

	proc, _ := inst.GetInstanceProcAddr("vkCreateXlibSurfaceKHR")
	create, ok := proc.(func(surface.XlibDescriptor, surface.Allocator) (*surface.Base, error))
	if !ok {
		t.Fatalf("vkCreateXlibSurfaceKHR has type %T", proc)
	}
	s, err := create(surface.XlibDescriptor{Display: 3, Window: 4}, nil)
	if err != nil {
		t.Fatalf("create() = %v", err)
	}
	if s.Platform != surface.PlatformXlib || s.Xlib().Window != 4 {
		t.Errorf("record = %+v, want xlib window 4", s)
	}

	proc, _ = inst.GetInstanceProcAddr(ProcDestroySurface)
	destroy, ok := proc.(func(*surface.Base, surface.Allocator))
	if !ok {
		t.Fatalf("vkDestroySurfaceKHR has type %T", proc)
	}
	destroy(s, nil)
}

func TestCreateSurfaceBackendNotCompiled(t *testing.T) {
	inst := newInstance(t, nil, nil)

	_, err := inst.CreateWin32Surface(surface.Win32Descriptor{HInstance: 1, HWND: 2}, nil)
	if !errors.Is(err, ErrBackendNotCompiled) {
		t.Fatalf("CreateWin32Surface() = %v, want ErrBackendNotCompiled", err)
	}
	var be *BackendError
	if !errors.As(err, &be) || be.Backend != capability.Win32Surface {
		t.Errorf("error = %#v, want BackendError for win32", err)
	}

	_, err = inst.CreateSurface(surface.MirDescriptor{Connection: 1, MirSurface: 2}, nil)
	if !errors.Is(err, ErrBackendNotCompiled) {
		t.Errorf("CreateSurface(mir) = %v, want ErrBackendNotCompiled", err)
	}
}

func TestCreateSurfaceNilDescriptor(t *testing.T) {
	inst := newInstance(t, nil, nil)

	_, err := inst.CreateSurface(nil, nil)
	if !errors.Is(err, surface.ErrNilDescriptor) {
		t.Fatalf("CreateSurface(nil) = %v, want ErrNilDescriptor", err)
	}
	if err.Error() != "surface: nil descriptor" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestCreateSurfaceOutOfMemory(t *testing.T) {
	inst := newInstance(t, nil, nil)
	a := &failingAllocator{}

	s, err := inst.CreateXCBSurface(surface.XCBDescriptor{Connection: 1, Window: 2}, a)
	if err != dispatch.ErrorOutOfHostMemory {
		t.Fatalf("CreateXCBSurface() = %v, want ErrorOutOfHostMemory", err)
	}
	if s != nil {
		t.Error("partial surface returned on allocation failure")
	}
	if a.frees != 0 {
		t.Errorf("allocator freed %d blocks, want 0", a.frees)
	}
}

func TestSurfaceAllocatorRoundTrip(t *testing.T) {
	def := surface.NewHeap()
	inst := newInstance(t, nil, nil,
		WithBackends(capability.XCBSurface, capability.WaylandSurface),
		WithAllocator(def))
	custom := surface.NewHeap()

	a, err := inst.CreateXCBSurface(surface.XCBDescriptor{Connection: 5, Window: 6}, nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := inst.CreateSurface(surface.WaylandDescriptor{Display: 7, Surface: 8}, custom)
	if err != nil {
		t.Fatal(err)
	}
	if def.Outstanding() != 1 || custom.Outstanding() != 1 {
		t.Fatalf("outstanding default=%d custom=%d, want 1 and 1", def.Outstanding(), custom.Outstanding())
	}
	if inst.Allocator() != surface.Allocator(def) {
		t.Error("Allocator() does not return the configured default")
	}

	inst.DestroySurface(a, nil)
	inst.DestroySurface(b, custom)
	inst.DestroySurface(nil, nil)
	if def.Outstanding() != 0 || custom.Outstanding() != 0 {
		t.Errorf("outstanding default=%d custom=%d after destroy, want 0", def.Outstanding(), custom.Outstanding())
	}
}

func TestCreateInstanceErrors(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		drvs []*dispatch.Driver
		is   error
	}{
		{
			name: "win32 on unix",
			opts: []Option{WithPlatform(capability.Unix), WithBackends(capability.Win32Surface)},
			is:   ErrBackendNotCompiled,
		},
		{
			name: "xcb on windows",
			opts: []Option{WithPlatform(capability.Windows), WithBackends(capability.XCBSurface)},
			is:   ErrBackendNotCompiled,
		},
		{
			name: "config backend",
			opts: []Option{WithPlatform(capability.Unix), WithConfig(&config.Config{Backends: []string{"win32"}})},
		},
		{
			name: "unknown config backend",
			opts: []Option{WithConfig(&config.Config{Backends: []string{"cocoa"}})},
		},
		{
			name: "nil driver",
			drvs: []*dispatch.Driver{nil},
			is:   ErrNilDriver,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst, err := CreateInstance(tt.drvs, nil, tt.opts...)
			if err == nil {
				inst.Destroy()
				t.Fatal("CreateInstance() succeeded, want error")
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("CreateInstance() = %v, want %v", err, tt.is)
			}
		})
	}
}

func TestWithConfig(t *testing.T) {
	cfg := &config.Config{
		Backends:   []string{"wayland", "xlib"},
		Extensions: []string{"VK_KHR_xlib_surface"},
	}
	inst := newInstance(t, nil, nil, WithConfig(cfg))

	b := inst.Backends()
	if !b.Has(capability.WaylandSurface) || !b.Has(capability.XlibSurface) || b.Has(capability.XCBSurface) {
		t.Errorf("Backends() = %v, want wayland and xlib", b.List())
	}
	if !inst.Enabled(capability.XlibSurface) || !inst.Enabled(capability.Surface) {
		t.Errorf("Capabilities() = %v, want xlib and surface", inst.Capabilities())
	}

	// WithBackends wins over the configuration.
	inst = newInstance(t, nil, nil, WithConfig(cfg), WithBackends(capability.MirSurface))
	if got := inst.Backends().List(); !slices.Equal(got, []capability.Capability{capability.MirSurface}) {
		t.Errorf("Backends() = %v, want [mir]", got)
	}
}

func TestEnumerateExtensions(t *testing.T) {
	inst := newInstance(t, nil, nil, WithBackends(capability.XlibSurface, capability.XCBSurface))

	var names []string
	for _, e := range inst.EnumerateExtensions() {
		names = append(names, e.Name)
	}
	want := []string{"VK_KHR_surface", "VK_KHR_xcb_surface", "VK_KHR_xlib_surface"}
	if !slices.Equal(names, want) {
		t.Errorf("EnumerateExtensions() = %v, want %v", names, want)
	}
}

func TestRoutingThroughInstance(t *testing.T) {
	first := null.New(null.WithName("first"), null.WithPlatforms(surface.PlatformWayland))
	second := null.New(null.WithName("second"), null.WithPhysicalDevices(2))
	inst := newInstance(t, []*dispatch.Driver{first.Dispatch(), second.Dispatch()}, []string{"VK_KHR_surface"})

	pds := inst.PhysicalDevices()
	if len(pds) != 3 {
		t.Fatalf("PhysicalDevices() returned %d handles, want 3", len(pds))
	}
	if pds[0].Owner().Name != "first" || pds[2].Owner().Name != "second" {
		t.Errorf("owners = %s, %s", pds[0].Owner().Name, pds[2].Owner().Name)
	}

	s, err := inst.CreateXCBSurface(surface.XCBDescriptor{Connection: 1, Window: 9}, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer inst.DestroySurface(s, nil)

	// first only presents to Wayland, second to anything.
	for i, want := range []bool{false, true, true} {
		ok, err := inst.GetPhysicalDeviceSurfaceSupport(pds[i], 0, s)
		if err != nil {
			t.Fatalf("device %d: %v", i, err)
		}
		if ok != want {
			t.Errorf("device %d support = %v, want %v", i, ok, want)
		}
	}

	caps, err := inst.GetPhysicalDeviceSurfaceCapabilities(pds[1], s)
	if err != nil || caps.MinImageCount == 0 {
		t.Errorf("GetPhysicalDeviceSurfaceCapabilities() = %+v, %v", caps, err)
	}
	if formats, err := inst.GetPhysicalDeviceSurfaceFormats(pds[1], s); err != nil || len(formats) == 0 {
		t.Errorf("GetPhysicalDeviceSurfaceFormats() = %v, %v", formats, err)
	}
	if modes, err := inst.GetPhysicalDeviceSurfacePresentModes(pds[1], s); err != nil || !slices.Contains(modes, dispatch.PresentModeFIFO) {
		t.Errorf("GetPhysicalDeviceSurfacePresentModes() = %v, %v", modes, err)
	}

	dev, q, err := second.CreateDevice(pds[1].Native())
	if err != nil {
		t.Fatal(err)
	}
	sc, err := inst.CreateSwapchain(dev, &dispatch.SwapchainCreateInfo{
		Surface:       s,
		MinImageCount: caps.MinImageCount,
		ImageExtent:   caps.CurrentExtent,
		PresentMode:   dispatch.PresentModeFIFO,
	}, nil)
	if err != nil {
		t.Fatalf("CreateSwapchain() = %v", err)
	}
	images, err := inst.GetSwapchainImages(dev, sc)
	if err != nil || len(images) != int(caps.MinImageCount) {
		t.Fatalf("GetSwapchainImages() = %v, %v", images, err)
	}
	idx, err := inst.AcquireNextImage(dev, sc, dispatch.InfiniteTimeout, 0, 0)
	if err != nil {
		t.Fatalf("AcquireNextImage() = %v", err)
	}
	second.Resize(1, 1)
	err = inst.QueuePresent(q, &dispatch.PresentInfo{Swapchains: []dispatch.Swapchain{sc}, ImageIndices: []uint32{idx}})
	if err != dispatch.ErrorOutOfDate {
		t.Errorf("QueuePresent() = %v, want ErrorOutOfDate passed through", err)
	}
	inst.DestroySwapchain(dev, sc, nil)
	if second.Swapchains() != 0 {
		t.Errorf("driver still has %d swapchains", second.Swapchains())
	}
}
