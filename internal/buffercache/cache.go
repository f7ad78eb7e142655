// Package buffercache implements the at-most-one-buffer-per-key cache:
// a process-wide list of solid-color buffers and, per Image, a list of
// buffers keyed by (transform, fill color, repeat).
package buffercache

import (
	"fmt"
	"sync"

	"github.com/friedelschoen/wsbg/internal/imagestore"
	"github.com/friedelschoen/wsbg/internal/wcolor"
	"github.com/friedelschoen/wsbg/internal/xform"
)

// WireBuffer is the compositor-side handle a Buffer wraps (a wl_buffer
// proxy, or the single-pixel-buffer-v1 equivalent). Destroy releases it
// on the wire.
type WireBuffer interface {
	Destroy() error
}

// Allocator builds wire buffers. Implemented against real Wayland
// objects by internal/wloutput; faked in tests.
type Allocator interface {
	// NewImageBuffer allocates an XRGB8888/ARGB8888 SHM buffer of the
	// given pixel size and returns the wire handle plus a byte slice
	// backing its pixels (stride = width*4, b,g,r,a byte order).
	NewImageBuffer(width, height int32) (WireBuffer, []byte, error)
	// NewColorBuffer allocates a 1x1 constant-color buffer, preferring
	// the single-pixel-buffer-v1 extension when available.
	NewColorBuffer(c wcolor.Color) (WireBuffer, error)
}

// ConfigView is the narrow slice of a resolved Config the cache needs.
// Defined here (not depended on from internal/config) to avoid an
// import cycle, since Config itself holds a *Buffer.
type ConfigView interface {
	Image() *imagestore.Image
	Color() wcolor.Color
	Mode() wcolor.BackgroundMode
	Position() wcolor.Point16
}

// key identifies a per-image buffer.
type key struct {
	Transform wcolor.ImageTransform
	Fill      wcolor.Color
	Repeat    bool
}

// Buffer is a cached, reference-counted compositor buffer. The cache
// holds a weak index into the live set; Configs hold the real ownership
// (one refcount per Config.Buffer pointer).
type Buffer struct {
	Wire   WireBuffer
	Pixels []byte
	Width  int32
	Height int32

	isColor bool
	color   wcolor.Color
	image   *imagestore.Image
	key     key

	refcount int
}

// Cache is the process-wide buffer index.
type Cache struct {
	mu     sync.Mutex
	alloc  Allocator
	colors []*Buffer
	images map[*imagestore.Image][]*Buffer
}

// New constructs an empty cache against the given wire allocator.
func New(alloc Allocator) *Cache {
	return &Cache{alloc: alloc, images: make(map[*imagestore.Image][]*Buffer)}
}

// Get implements §4.C's lookup operation: an existing matching Buffer's
// refcount is incremented and it is returned; otherwise one is built and
// inserted with refcount 1.
func (c *Cache) Get(cfg ConfigView, outputW, outputH int32) (*Buffer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	img := cfg.Image()
	if img == nil || cfg.Mode() == wcolor.ModeSolidColor {
		return c.getColorLocked(cfg.Color())
	}

	if !img.Decoded() && !img.Failed() {
		if err := img.Load(); err != nil {
			return nil, err
		}
	}
	if img.Failed() {
		return nil, imagestore.ErrDecodeFailed
	}

	res := xform.Calculate(img.Width, img.Height, outputW, outputH, cfg.Mode(), cfg.Position())

	fill := cfg.Color()
	noTransparency := res.Covered && img.Background.A == 0
	if noTransparency {
		fill = wcolor.Zero
	}
	repeat := cfg.Mode() == wcolor.ModeTile && !res.Covered

	k := key{Transform: res.Transform, Fill: fill, Repeat: repeat}
	for _, b := range c.images[img] {
		if b.key == k {
			b.refcount++
			return b, nil
		}
	}

	if !img.Decoded() {
		if err := img.Load(); err != nil {
			return nil, err
		}
	}

	buf, err := c.buildImageBuffer(img, k, outputW, outputH, res)
	if err != nil {
		return nil, err
	}
	buf.refcount = 1
	c.images[img] = append(c.images[img], buf)
	return buf, nil
}

func (c *Cache) getColorLocked(color wcolor.Color) (*Buffer, error) {
	for _, b := range c.colors {
		if b.color == color {
			b.refcount++
			return b, nil
		}
	}
	wire, err := c.alloc.NewColorBuffer(color)
	if err != nil {
		return nil, fmt.Errorf("buffercache: color buffer: %w", err)
	}
	buf := &Buffer{Wire: wire, Width: 1, Height: 1, isColor: true, color: color, refcount: 1}
	c.colors = append(c.colors, buf)
	return buf, nil
}

func (c *Cache) buildImageBuffer(img *imagestore.Image, k key, width, height int32, res xform.Result) (*Buffer, error) {
	wire, pixels, err := c.alloc.NewImageBuffer(width, height)
	if err != nil {
		return nil, fmt.Errorf("buffercache: image buffer: %w", err)
	}
	buf := &Buffer{Wire: wire, Pixels: pixels, Width: width, Height: height, image: img, key: k}
	paintBuffer(buf, img, res, k.Fill, k.Repeat)
	return buf, nil
}

// Release decrements buf's refcount; at zero it is unlinked from the
// cache and its compositor handle and backing memory are freed.
func (c *Cache) Release(buf *Buffer) error {
	if buf == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	buf.refcount--
	if buf.refcount > 0 {
		return nil
	}

	if buf.isColor {
		c.colors = removeBuffer(c.colors, buf)
	} else {
		list := c.images[buf.image]
		list = removeBuffer(list, buf)
		if len(list) == 0 {
			delete(c.images, buf.image)
		} else {
			c.images[buf.image] = list
		}
	}
	return buf.Wire.Destroy()
}

func removeBuffer(list []*Buffer, buf *Buffer) []*Buffer {
	for i, b := range list {
		if b == buf {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
