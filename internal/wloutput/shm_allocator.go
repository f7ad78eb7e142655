package wloutput

import (
	"github.com/friedelschoen/wsbg/internal/buffercache"
	"github.com/friedelschoen/wsbg/internal/shmpool"
	"github.com/friedelschoen/wsbg/internal/wcolor"
	"github.com/friedelschoen/wsbg/internal/wlproto"
)

// wireBuffer adapts a wlproto.Buffer (plus its backing SHM mapping, if
// any) to buffercache.WireBuffer.
type wireBuffer struct {
	buf     *wlproto.Buffer
	mapping *shmpool.Mapping // nil for single-pixel buffers
}

func (w *wireBuffer) Destroy() error {
	err := w.buf.Destroy()
	if w.mapping != nil {
		if cerr := w.mapping.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// allocator implements buffercache.Allocator against the real wl_shm and
// wp_single_pixel_buffer_manager_v1 globals.
type allocator struct {
	shm         *wlproto.Shm
	singlePixel *wlproto.SinglePixelBufferManager // nil if the compositor doesn't advertise it
}

func (a *allocator) NewImageBuffer(width, height int32) (buffercache.WireBuffer, []byte, error) {
	stride := width * 4
	size := int(stride) * int(height)

	mapping, fd, err := shmpool.Allocate(size)
	if err != nil {
		return nil, nil, err
	}

	pool := a.shm.CreatePool(fd, int32(size), nil)
	buf := pool.CreateBuffer(0, width, height, stride, wlproto.ShmFormatArgb8888, nil)
	pool.Destroy()

	return &wireBuffer{buf: buf, mapping: mapping}, mapping.Data, nil
}

func (a *allocator) NewColorBuffer(c wcolor.Color) (buffercache.WireBuffer, error) {
	if a.singlePixel != nil {
		const max = 0xffffffff
		premul := func(channel, alpha uint8) uint32 {
			return uint32(uint64(channel) * max / 255 * uint64(alpha) / 255)
		}
		buf := a.singlePixel.CreateU32RgbaBuffer(
			premul(c.R, c.A),
			premul(c.G, c.A),
			premul(c.B, c.A),
			uint32(uint64(c.A)*max/255),
		)
		return &wireBuffer{buf: buf}, nil
	}

	// No single-pixel-buffer-v1: fall back to a 1x1 SHM pool buffer,
	// the universal path every compositor supports.
	wire, pixels, err := a.NewImageBuffer(1, 1)
	if err != nil {
		return nil, err
	}
	pixels[0], pixels[1], pixels[2], pixels[3] = c.B, c.G, c.R, c.A
	return wire, nil
}
