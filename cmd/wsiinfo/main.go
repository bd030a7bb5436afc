// Command wsiinfo creates a loader instance over the null driver and prints
// what it negotiated: enabled capabilities, advertised extensions, surface
// properties of every physical device and the entry points it resolves.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/gogpu/wsi"
	"github.com/gogpu/wsi/capability"
	"github.com/gogpu/wsi/config"
	"github.com/gogpu/wsi/dispatch"
	"github.com/gogpu/wsi/driver/null"
	"github.com/gogpu/wsi/surface"
)

func main() {
	var (
		cfgPath  = flag.String("config", config.Path(), "configuration file")
		backends = flag.String("backends", "", "comma-separated backends, overrides the configuration")
		exts     = flag.String("ext", "", "comma-separated instance extensions to request")
		devices  = flag.Int("devices", 1, "physical devices of the null driver")
		dump     = flag.Bool("dump-config", false, "print the effective configuration and exit")
		useX11   = flag.Bool("x11", false, "use a window of the running X server for XCB and Xlib test surfaces")
	)
	flag.Parse()

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *backends != "" {
		cfg.Backends = split(*backends)
	}
	if *dump {
		if err := cfg.Write(os.Stdout); err != nil {
			log.Fatal(err)
		}
		return
	}
	if l := cfg.Logger(os.Stderr); l != nil {
		wsi.SetLogger(l)
	}

	drv := null.New(null.WithPhysicalDevices(*devices), null.WithLogger(wsi.Logger()))
	inst, err := wsi.CreateInstance([]*dispatch.Driver{drv.Dispatch()}, split(*exts), wsi.WithConfig(cfg))
	if err != nil {
		log.Fatalf("Failed to create instance: %v", err)
	}
	defer inst.Destroy()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	var win xproto.Window = 1
	if *useX11 {
		if x, name, ok := x11Window(); ok {
			win = x
			log.Printf("Using X11 window %#x %q", x, name)
		} else {
			log.Printf("No X11 window found, using a placeholder")
		}
	}

	printInstance(w, inst)
	if err := printDevices(w, inst, win); err != nil {
		log.Fatal(err)
	}
	printProcs(w, inst)
}

// loadConfig reads path, falling back to the defaults when it does not
// exist.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return cfg, err
}

func split(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func printInstance(w *tabwriter.Writer, inst *wsi.Instance) {
	fmt.Fprintf(w, "platform\t%s\n", inst.Platform())
	fmt.Fprintf(w, "backends\t%v\n", inst.Backends().List())
	fmt.Fprintf(w, "enabled\t%v\n", inst.Capabilities())
	fmt.Fprintln(w, "\nextension\trevision")
	for _, e := range inst.EnumerateExtensions() {
		fmt.Fprintf(w, "%s\t%d\n", e.Name, e.Revision)
	}
}

// testSurface creates a surface on the first compiled-in backend. X11
// backends use win.
func testSurface(inst *wsi.Instance, win xproto.Window) (*surface.Base, error) {
	list := inst.Backends().List()
	if len(list) == 0 {
		return nil, errors.New("no backend compiled in")
	}
	switch list[0] {
	case capability.Win32Surface:
		return inst.CreateWin32Surface(surface.Win32Descriptor{HInstance: 1, HWND: 1}, nil)
	case capability.MirSurface:
		return inst.CreateMirSurface(surface.MirDescriptor{Connection: 1, MirSurface: 1}, nil)
	case capability.WaylandSurface:
		return inst.CreateWaylandSurface(surface.WaylandDescriptor{Display: 1, Surface: 1}, nil)
	case capability.XCBSurface:
		return inst.CreateXCBSurface(surface.XCBDescriptor{Connection: 1, Window: win}, nil)
	default:
		return inst.CreateXlibSurface(surface.XlibDescriptor{Display: 1, Window: win}, nil)
	}
}

func printDevices(w *tabwriter.Writer, inst *wsi.Instance, win xproto.Window) error {
	if !inst.Enabled(capability.Surface) {
		fmt.Fprintln(w, "\nsurface capability disabled, skipping device queries")
		return nil
	}
	s, err := testSurface(inst, win)
	if err != nil {
		fmt.Fprintf(w, "\nno test surface: %v\n", err)
		return nil
	}
	defer inst.DestroySurface(s, nil)

	for i, pd := range inst.PhysicalDevices() {
		ok, err := inst.GetPhysicalDeviceSurfaceSupport(pd, 0, s)
		if err != nil {
			return fmt.Errorf("device %d: %w", i, err)
		}
		caps, err := inst.GetPhysicalDeviceSurfaceCapabilities(pd, s)
		if err != nil {
			return fmt.Errorf("device %d: %w", i, err)
		}
		formats, err := inst.GetPhysicalDeviceSurfaceFormats(pd, s)
		if err != nil {
			return fmt.Errorf("device %d: %w", i, err)
		}
		modes, err := inst.GetPhysicalDeviceSurfacePresentModes(pd, s)
		if err != nil {
			return fmt.Errorf("device %d: %w", i, err)
		}

		fmt.Fprintf(w, "\ndevice %d\t%s\n", i, pd.Owner().Name)
		fmt.Fprintf(w, "  present (%s)\t%v\n", s.Platform, ok)
		fmt.Fprintf(w, "  images\t%d..%d\n", caps.MinImageCount, caps.MaxImageCount)
		fmt.Fprintf(w, "  extent\t%dx%d\n", caps.CurrentExtent.Width, caps.CurrentExtent.Height)
		for _, f := range formats {
			fmt.Fprintf(w, "  format\t%v\n", f.Format)
		}
		fmt.Fprintf(w, "  present modes\t%v\n", modes)
	}
	return nil
}

func printProcs(w *tabwriter.Writer, inst *wsi.Instance) {
	names := []string{
		wsi.ProcDestroySurface,
		wsi.ProcGetPhysicalDeviceSurfaceSupport,
		wsi.ProcGetPhysicalDeviceSurfaceCapabilities,
		wsi.ProcGetPhysicalDeviceSurfaceFormats,
		wsi.ProcGetPhysicalDeviceSurfacePresentModes,
		dispatch.ProcCreateSwapchain,
		dispatch.ProcDestroySwapchain,
		dispatch.ProcGetSwapchainImages,
		dispatch.ProcAcquireNextImage,
		dispatch.ProcQueuePresent,
	}
	for _, e := range surface.Entries() {
		names = append(names, e.Proc)
	}

	fmt.Fprintln(w, "\nentry point\tstatus")
	for _, name := range names {
		proc, handled := inst.GetInstanceProcAddr(name)
		status := "not handled"
		switch {
		case proc != nil:
			status = "available"
		case handled:
			status = "disabled"
		}
		fmt.Fprintf(w, "%s\t%s\n", name, status)
	}
}
