package imagestore

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/friedelschoen/wsbg/internal/wcolor"
)

// ErrDecodeFailed is returned by Load on a permanent decode failure; the
// caller should disable this image for the process lifetime (spec's
// DecodeFailed error kind).
var ErrDecodeFailed = errors.New("imagestore: decode failed")

// imageSizeMax bounds width/height so that width*height*Q16 cannot
// overflow the int64 arithmetic used downstream by the transform
// calculator and buffer cache, mirroring the IMAGE_SIZE_MAX guard in the
// original C sources.
const imageSizeMax = (1 << 62) / (1<<31 - 1) / wcolor.Q16

// Load decodes the image if it has not been loaded yet. On success it
// composes any alpha channel over img.Background and then, if the source
// carried no alpha, zeroes img.Background so future loads with a
// different requested background can reuse the decode without
// re-reading the file (the pre-decode background value is still what
// seeds the composite, per the required ordering: set background,
// decode, then clear background on a no-alpha result).
func (img *Image) Load() error {
	img.mu.Lock()
	defer img.mu.Unlock()

	if img.pixels != nil {
		return nil
	}
	if img.Width == int32(stateFailed) {
		return ErrDecodeFailed
	}

	f, err := os.Open(img.Path)
	if err != nil {
		img.Width = int32(stateFailed)
		return fmt.Errorf("%w: open %s: %v", ErrDecodeFailed, img.Path, err)
	}
	defer f.Close()

	src, _, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		img.Width = int32(stateFailed)
		return fmt.Errorf("%w: %s: %v", ErrDecodeFailed, img.Path, err)
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 || int64(width) > imageSizeMax || int64(height) > imageSizeMax {
		img.Width = int32(stateFailed)
		return fmt.Errorf("%w: %s: image too large or empty", ErrDecodeFailed, img.Path)
	}

	if hasAlpha(src) {
		dst := image.NewNRGBA(image.Rect(0, 0, width, height))
		bg := color.NRGBA{R: img.Background.R, G: img.Background.G, B: img.Background.B, A: 0xFF}
		draw.Draw(dst, dst.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)
		draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Over)
		img.pixels = dst
	} else {
		img.pixels = src
		img.Background = wcolor.Zero
	}

	img.Width = int32(width)
	img.Height = int32(height)
	return nil
}

// hasAlpha reports whether any pixel of src is not fully opaque. NRGBA and
// RGBA images are checked on their Pix slices directly, and gray, YCbCr
// and CMYK images are opaque by their color model; every other image
// (paletted included) falls back to a per-pixel scan.
func hasAlpha(src image.Image) bool {
	switch m := src.(type) {
	case *image.NRGBA:
		return nrgbaHasAlpha(m)
	case *image.RGBA:
		return rgbaHasAlpha(m)
	case *image.Gray, *image.Gray16, *image.YCbCr:
		return false
	}
	model := src.ColorModel()
	if model == color.GrayModel || model == color.Gray16Model || model == color.CMYKModel {
		return false
	}
	b := src.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			_, _, _, a := src.At(x, y).RGBA()
			if a != 0xFFFF {
				return true
			}
		}
	}
	return false
}

func nrgbaHasAlpha(m *image.NRGBA) bool {
	for i := 3; i < len(m.Pix); i += 4 {
		if m.Pix[i] != 0xFF {
			return true
		}
	}
	return false
}

func rgbaHasAlpha(m *image.RGBA) bool {
	for i := 3; i < len(m.Pix); i += 4 {
		if m.Pix[i] != 0xFF {
			return true
		}
	}
	return false
}
