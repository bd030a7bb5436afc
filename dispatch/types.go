// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package dispatch

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/wsi/surface"
)

// Extent2D is a size in pixels.
type Extent2D struct {
	Width, Height uint32
}

// ColorSpace is the color space of presentable images.
type ColorSpace uint32

// ColorSpaceSRGBNonlinear is the only color space defined by the base
// surface extension.
const ColorSpaceSRGBNonlinear ColorSpace = 0

// PresentMode selects how images are queued for presentation.
type PresentMode uint32

const (
	PresentModeImmediate PresentMode = iota
	PresentModeMailbox
	PresentModeFIFO
	PresentModeFIFORelaxed
)

func (m PresentMode) String() string {
	switch m {
	case PresentModeImmediate:
		return "immediate"
	case PresentModeMailbox:
		return "mailbox"
	case PresentModeFIFO:
		return "fifo"
	case PresentModeFIFORelaxed:
		return "fifo-relaxed"
	}
	return "unknown"
}

// SurfaceTransform is a set of presentation transforms.
type SurfaceTransform uint32

const (
	SurfaceTransformIdentity SurfaceTransform = 1 << iota
	SurfaceTransformRotate90
	SurfaceTransformRotate180
	SurfaceTransformRotate270
	SurfaceTransformHorizontalMirror
	SurfaceTransformHorizontalMirrorRotate90
	SurfaceTransformHorizontalMirrorRotate180
	SurfaceTransformHorizontalMirrorRotate270
	SurfaceTransformInherit
)

// CompositeAlpha is a set of alpha compositing modes.
type CompositeAlpha uint32

const (
	CompositeAlphaOpaque CompositeAlpha = 1 << iota
	CompositeAlphaPreMultiplied
	CompositeAlphaPostMultiplied
	CompositeAlphaInherit
)

// SurfaceFormat pairs a presentable format with its color space.
type SurfaceFormat struct {
	Format     gputypes.TextureFormat
	ColorSpace ColorSpace
}

// Capabilities describes the swapchain limits of a surface on a device.
type Capabilities struct {
	MinImageCount           uint32
	MaxImageCount           uint32 // 0 means no limit
	CurrentExtent           Extent2D
	MinImageExtent          Extent2D
	MaxImageExtent          Extent2D
	MaxImageArrayLayers     uint32
	SupportedTransforms     SurfaceTransform
	CurrentTransform        SurfaceTransform
	SupportedCompositeAlpha CompositeAlpha
	SupportedUsage          gputypes.TextureUsage
}

// Non-dispatchable handles owned by drivers. The core never interprets them.
type (
	Swapchain uint64
	Image     uint64
	Semaphore uint64
	Fence     uint64
)

// InfiniteTimeout makes AcquireNextImage wait without bound.
const InfiniteTimeout = ^uint64(0)

// SwapchainCreateInfo describes a swapchain to create.
type SwapchainCreateInfo struct {
	Surface            *surface.Base
	MinImageCount      uint32
	ImageFormat        gputypes.TextureFormat
	ImageColorSpace    ColorSpace
	ImageExtent        Extent2D
	ImageArrayLayers   uint32
	ImageUsage         gputypes.TextureUsage
	QueueFamilyIndices []uint32
	PreTransform       SurfaceTransform
	CompositeAlpha     CompositeAlpha
	PresentMode        PresentMode
	Clipped            bool
	OldSwapchain       Swapchain
}

// PresentInfo describes a presentation request. Swapchains and
// ImageIndices are parallel. If Results is non-nil it must have the same
// length and receives the per-swapchain outcome.
type PresentInfo struct {
	WaitSemaphores []Semaphore
	Swapchains     []Swapchain
	ImageIndices   []uint32
	Results        []Result
}
