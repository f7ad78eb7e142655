package buffercache

import (
	"testing"

	"github.com/friedelschoen/wsbg/internal/imagestore"
	"github.com/friedelschoen/wsbg/internal/wcolor"
)

type fakeWire struct{ destroyed *bool }

func (w fakeWire) Destroy() error {
	*w.destroyed = true
	return nil
}

type fakeAllocator struct {
	imageBuilds int
	colorBuilds int
}

func (a *fakeAllocator) NewImageBuffer(w, h int32) (WireBuffer, []byte, error) {
	a.imageBuilds++
	destroyed := false
	return fakeWire{&destroyed}, make([]byte, w*h*4), nil
}

func (a *fakeAllocator) NewColorBuffer(c wcolor.Color) (WireBuffer, error) {
	a.colorBuilds++
	destroyed := false
	return fakeWire{&destroyed}, nil
}

type fakeConfig struct {
	image *imagestore.Image
	color wcolor.Color
	mode  wcolor.BackgroundMode
	pos   wcolor.Point16
}

func (c fakeConfig) Image() *imagestore.Image          { return c.image }
func (c fakeConfig) Color() wcolor.Color               { return c.color }
func (c fakeConfig) Mode() wcolor.BackgroundMode        { return c.mode }
func (c fakeConfig) Position() wcolor.Point16          { return c.pos }

func TestGetColorBufferDedupesAndRefcounts(t *testing.T) {
	alloc := &fakeAllocator{}
	c := New(alloc)
	cfg := fakeConfig{color: wcolor.Color{R: 1, G: 2, B: 3, A: 0xFF}, mode: wcolor.ModeSolidColor}

	b1, err := c.Get(cfg, 1920, 1080)
	if err != nil {
		t.Fatal(err)
	}
	b2, err := c.Get(cfg, 1920, 1080)
	if err != nil {
		t.Fatal(err)
	}
	if b1 != b2 {
		t.Fatal("two Gets with an equal color key should return the identical Buffer")
	}
	if alloc.colorBuilds != 1 {
		t.Fatalf("colorBuilds = %d, want 1", alloc.colorBuilds)
	}

	if err := c.Release(b1); err != nil {
		t.Fatal(err)
	}
	destroyed := b1.Wire.(fakeWire).destroyed
	if *destroyed {
		t.Fatal("buffer freed while still referenced")
	}
	if err := c.Release(b2); err != nil {
		t.Fatal(err)
	}
	if !*destroyed {
		t.Fatal("buffer not freed once refcount reached zero")
	}
}

func TestGetImageBufferSolidColorModeIgnoresImage(t *testing.T) {
	alloc := &fakeAllocator{}
	c := New(alloc)
	img := imagestore.NewImage("/does/not/matter", wcolor.Color{})
	cfg := fakeConfig{image: img, color: wcolor.Color{A: 0xFF}, mode: wcolor.ModeSolidColor}

	if _, err := c.Get(cfg, 100, 100); err != nil {
		t.Fatal(err)
	}
	if alloc.imageBuilds != 0 || alloc.colorBuilds != 1 {
		t.Fatalf("solid_color mode should use the color cache even with an image set, got imageBuilds=%d colorBuilds=%d", alloc.imageBuilds, alloc.colorBuilds)
	}
}
