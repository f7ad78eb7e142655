package buffercache

import (
	"encoding/binary"
	"image"
	"image/color"

	"github.com/KononK/resize"
	"github.com/daaku/swizzle"

	"github.com/friedelschoen/wsbg/internal/imagestore"
	"github.com/friedelschoen/wsbg/internal/wcolor"
	"github.com/friedelschoen/wsbg/internal/xform"
)

// downscaleGuard bounds how many source pixels the per-destination-pixel
// sampling loop below has to consider: when the decoded source is more
// than this many times larger than the rendered extent, it is
// pre-shrunk once with a real resample (not just strided nearest-
// neighbor lookups) so very large wallpapers don't make every cache
// miss expensive.
const downscaleGuard = 4

// paintBuffer fills buf.Pixels (stride = width*4, BGRA byte order) with
// fill, then composites img's decoded pixels through res.Transform,
// OVER, with wraparound sampling when repeat is set.
func paintBuffer(buf *Buffer, img *imagestore.Image, res xform.Result, fill wcolor.Color, repeat bool) {
	if fill.A != 0 {
		fillSolid(buf.Pixels, fill)
	}

	src := img.Pixels()
	if src == nil {
		return
	}

	t := res.Transform
	renderedW := int(wcolor.RoundDiv(int64(img.Width)*wcolor.Q16, t.SX))
	renderedH := int(wcolor.RoundDiv(int64(img.Height)*wcolor.Q16, t.SY))
	if renderedW > 0 && renderedH > 0 &&
		int64(img.Width) > downscaleGuard*int64(renderedW) &&
		int64(img.Height) > downscaleGuard*int64(renderedH) {
		newW, newH := renderedW*2, renderedH*2
		src = resize.Resize(uint(newW), uint(newH), src, resize.Bilinear)
		// Rescale the transform into the shrunk source's pixel units.
		t.SX = t.SX * int64(newW) / int64(img.Width)
		t.TX = t.TX * int64(newW) / int64(img.Width)
		t.SY = t.SY * int64(newH) / int64(img.Height)
		t.TY = t.TY * int64(newH) / int64(img.Height)
	}

	compositeOver(buf.Pixels, int(buf.Width), int(buf.Height), src, t, repeat)
}

func fillSolid(pixels []byte, c wcolor.Color) {
	var px [4]byte
	binary.LittleEndian.PutUint32(px[:], uint32(c.A)<<24|uint32(c.B)<<16|uint32(c.G)<<8|uint32(c.R))
	swizzle.BGRA(px[:]) // px was built in r,g,b,a byte order; reorder to the b,g,r,a byte layout wl_shm expects
	for i := 0; i+4 <= len(pixels); i += 4 {
		copy(pixels[i:i+4], px[:])
	}
}

// compositeOver samples src through the transform's dest->source mapping
// for every destination pixel and blends it OVER the existing contents.
// Sampling is bilinear between the four nearest source pixels, matching
// pixman's PIXMAN_FILTER_BEST; at 1:1 scale the transform is pixel-snapped
// so the fractional part is always zero and this degenerates to a plain
// nearest lookup. When repeat is set, out-of-bounds source coordinates
// wrap (tile mode); otherwise they are treated as transparent, leaving
// the fill color showing through.
func compositeOver(dst []byte, dstW, dstH int, src image.Image, t wcolor.ImageTransform, repeat bool) {
	b := src.Bounds()
	srcW, srcH := b.Dx(), b.Dy()
	if srcW == 0 || srcH == 0 {
		return
	}

	for dy := 0; dy < dstH; dy++ {
		syFixed := int64(dy)*t.SY + t.TY
		sy0 := int(syFixed >> 16)
		fy := uint32(syFixed & 0xffff)
		for dx := 0; dx < dstW; dx++ {
			sxFixed := int64(dx)*t.SX + t.TX
			sx0 := int(sxFixed >> 16)
			fx := uint32(sxFixed & 0xffff)

			r, g, bl, a, ok := sampleBilinear(src, b, srcW, srcH, sx0, sy0, fx, fy, repeat)
			if !ok || a == 0 {
				continue
			}
			blendOver(dst[(dy*dstW+dx)*4:], r, g, bl, a)
		}
	}
}

// sampleBilinear blends the four source pixels surrounding (sx0,sy0) by
// the fractional offsets fx, fy (Q16, in [0,0x10000)). Corners that fall
// outside the source bounds in non-repeat mode contribute transparent
// black, so the image fades out at its border instead of smearing.
func sampleBilinear(src image.Image, b image.Rectangle, srcW, srcH, sx0, sy0 int, fx, fy uint32, repeat bool) (r, g, bl, a uint32, ok bool) {
	r00, g00, b00, a00, ok00 := sampleAt(src, b, srcW, srcH, sx0, sy0, repeat)
	r10, g10, b10, a10, ok10 := sampleAt(src, b, srcW, srcH, sx0+1, sy0, repeat)
	r01, g01, b01, a01, ok01 := sampleAt(src, b, srcW, srcH, sx0, sy0+1, repeat)
	r11, g11, b11, a11, ok11 := sampleAt(src, b, srcW, srcH, sx0+1, sy0+1, repeat)
	if !ok00 && !ok10 && !ok01 && !ok11 {
		return 0, 0, 0, 0, false
	}

	lerp := func(v0, v1, f uint32) uint32 { return (v0*(0x10000-f) + v1*f) >> 16 }
	r = lerp(lerp(r00, r10, fx), lerp(r01, r11, fx), fy)
	g = lerp(lerp(g00, g10, fx), lerp(g01, g11, fx), fy)
	bl = lerp(lerp(b00, b10, fx), lerp(b01, b11, fx), fy)
	a = lerp(lerp(a00, a10, fx), lerp(a01, a11, fx), fy)
	return r, g, bl, a, true
}

// sampleAt returns the premultiplied RGBA at source pixel (x,y), wrapping
// when repeat is set; ok is false for an out-of-bounds pixel in
// non-repeat mode.
func sampleAt(src image.Image, b image.Rectangle, srcW, srcH, x, y int, repeat bool) (r, g, bl, a uint32, ok bool) {
	if repeat {
		x = wrap(x, srcW)
		y = wrap(y, srcH)
	} else if x < 0 || x >= srcW || y < 0 || y >= srcH {
		return 0, 0, 0, 0, false
	}
	r, g, bl, a = src.At(b.Min.X+x, b.Min.Y+y).RGBA()
	return r, g, bl, a, true
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// blendOver alpha-blends a premultiplied (r,g,b,a) (as returned by
// color.Color.RGBA, 16-bit range) over the BGRA pixel at px[0:4].
func blendOver(px []byte, r, g, bl, a uint32) {
	if a == 0xFFFF {
		px[0] = byte(bl >> 8)
		px[1] = byte(g >> 8)
		px[2] = byte(r >> 8)
		px[3] = 0xFF
		return
	}
	inv := 0xFFFF - a
	dst := color.NRGBA{R: px[2], G: px[1], B: px[0], A: px[3]}
	px[2] = byte((uint32(dst.R)*0x101*inv/0xFFFF + r) >> 8)
	px[1] = byte((uint32(dst.G)*0x101*inv/0xFFFF + g) >> 8)
	px[0] = byte((uint32(dst.B)*0x101*inv/0xFFFF + bl) >> 8)
	px[3] = byte((uint32(dst.A)*0x101*inv/0xFFFF)>>8) + byte(a>>8)
}
