package xform

import (
	"testing"

	"github.com/friedelschoen/wsbg/internal/wcolor"
)

func TestCalculateFillMatchingAspect(t *testing.T) {
	r := Calculate(960, 540, 1920, 1080, wcolor.ModeFill, wcolor.DefaultPosition)
	want := wcolor.ImageTransform{TX: 0, TY: 0, SX: q16 / 2, SY: q16 / 2}
	if r.Transform != want {
		t.Errorf("got %+v, want %+v", r.Transform, want)
	}
	if !r.Covered {
		t.Error("fill with matching aspect ratio should cover")
	}
}

func TestCalculateFitWiderImageLetterboxes(t *testing.T) {
	// A much wider image than the output must shrink to the output's width
	// (the binding axis) and letterbox vertically; width is untouched.
	r := Calculate(3840, 1080, 1920, 1080, wcolor.ModeFit, wcolor.DefaultPosition)
	if r.Transform.SX != 2*q16 || r.Transform.SY != 2*q16 {
		t.Errorf("scale = (%d,%d), want (2*Q16,2*Q16)", r.Transform.SX, r.Transform.SY)
	}
	if r.Transform.TX != 0 {
		t.Errorf("tx = %d, want 0 (width is the binding axis)", r.Transform.TX)
	}
	if r.Transform.TY == 0 {
		t.Error("ty should be nonzero: the image is letterboxed vertically")
	}
	if r.Covered {
		t.Error("fit with mismatched aspect ratio should not cover")
	}
}

func TestCalculateTile(t *testing.T) {
	r := Calculate(100, 100, 800, 600, wcolor.ModeTile, wcolor.Point16{})
	want := wcolor.ImageTransform{TX: 0, TY: 0, SX: q16, SY: q16}
	if r.Transform != want {
		t.Errorf("got %+v, want %+v", r.Transform, want)
	}
	if r.Covered {
		t.Error("a tiny tiled image should not cover a much larger output")
	}
}

func TestCalculateStretchAlwaysCovers(t *testing.T) {
	r := Calculate(37, 511, 1920, 1080, wcolor.ModeStretch, wcolor.DefaultPosition)
	if !r.Covered {
		t.Error("stretch must always cover")
	}
}

func TestCalculateCenterSmallerThanOutputNotCovered(t *testing.T) {
	r := Calculate(10, 10, 1920, 1080, wcolor.ModeCenter, wcolor.DefaultPosition)
	if r.Covered {
		t.Error("centering an image smaller than the output must not cover")
	}
}

func TestCalculateFillAlwaysCovers(t *testing.T) {
	r := Calculate(37, 511, 1920, 1080, wcolor.ModeFill, wcolor.DefaultPosition)
	if !r.Covered {
		t.Error("fill must always cover")
	}
}

func TestCalculatePixelSnapIdentitySize(t *testing.T) {
	for _, mode := range []wcolor.BackgroundMode{wcolor.ModeCenter, wcolor.ModeFit, wcolor.ModeFill} {
		r := Calculate(500, 500, 500, 500, mode, wcolor.DefaultPosition)
		if r.Transform.TX != 0 || r.Transform.TY != 0 || r.Transform.SX != q16 || r.Transform.SY != q16 {
			t.Errorf("mode %v: got %+v, want identity transform", mode, r.Transform)
		}
	}
}

func TestCalculateIsPure(t *testing.T) {
	a := Calculate(1234, 987, 1920, 1080, wcolor.ModeFit, wcolor.Point16{X: q16 / 4, Y: 3 * q16 / 4})
	b := Calculate(1234, 987, 1920, 1080, wcolor.ModeFit, wcolor.Point16{X: q16 / 4, Y: 3 * q16 / 4})
	if a != b {
		t.Errorf("Calculate is not pure: %+v != %+v", a, b)
	}
}
