// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package null

import (
	"log/slog"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/wsi/dispatch"
	"github.com/gogpu/wsi/surface"
)

// Option configures a Driver.
type Option func(*options)

type options struct {
	name      string
	devices   int
	extent    dispatch.Extent2D
	formats   []dispatch.SurfaceFormat
	modes     []dispatch.PresentMode
	platforms []surface.Platform
	minImages uint32
	maxImages uint32
	logger    *slog.Logger
}

func defaultOptions() options {
	return options{
		name:    "null",
		devices: 1,
		extent:  dispatch.Extent2D{Width: 800, Height: 600},
		formats: []dispatch.SurfaceFormat{
			{Format: gputypes.TextureFormatBGRA8Unorm, ColorSpace: dispatch.ColorSpaceSRGBNonlinear},
			{Format: gputypes.TextureFormatRGBA8Unorm, ColorSpace: dispatch.ColorSpaceSRGBNonlinear},
		},
		modes: []dispatch.PresentMode{
			dispatch.PresentModeFIFO,
			dispatch.PresentModeMailbox,
			dispatch.PresentModeImmediate,
		},
		minImages: 2,
		maxImages: 8,
	}
}

// WithName sets the driver name reported to the router.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithPhysicalDevices sets how many physical devices the driver enumerates.
func WithPhysicalDevices(n int) Option {
	return func(o *options) { o.devices = n }
}

// WithExtent sets the initial window size reported for every surface.
func WithExtent(width, height uint32) Option {
	return func(o *options) { o.extent = dispatch.Extent2D{Width: width, Height: height} }
}

// WithFormats replaces the supported surface formats.
func WithFormats(formats ...dispatch.SurfaceFormat) Option {
	return func(o *options) { o.formats = formats }
}

// WithPresentModes replaces the supported present modes. FIFO should
// always be among them.
func WithPresentModes(modes ...dispatch.PresentMode) Option {
	return func(o *options) { o.modes = modes }
}

// WithPlatforms restricts presentation support to surfaces of the given
// platforms. By default every platform is supported.
func WithPlatforms(ps ...surface.Platform) Option {
	return func(o *options) { o.platforms = ps }
}

// WithImageCount sets the swapchain image count limits. hi 0 means no
// limit.
func WithImageCount(lo, hi uint32) Option {
	return func(o *options) { o.minImages, o.maxImages = lo, hi }
}

// WithLogger sets the driver logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}
