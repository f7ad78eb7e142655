// Package imagestore holds the decoded-image lifecycle: an Image is
// identified by path, decoded lazily, and can permanently fail.
package imagestore

import (
	"image"
	"sync"

	"github.com/friedelschoen/wsbg/internal/wcolor"
)

// loadState is the tri-state width sentinel: never-loaded | loaded | failed.
type loadState int32

const (
	stateNeverLoaded loadState = 0
	stateFailed      loadState = -1
)

// Image is a decoded background picture, keyed by filesystem path.
// Width is 0 until the first successful decode and -1 after a permanent
// decode failure (future loads short-circuit without reopening the file).
type Image struct {
	mu sync.Mutex

	Path       string
	Width      int32
	Height     int32
	Background wcolor.Color

	// Scalable marks a source that should be re-rasterized at the
	// target buffer resolution instead of scaled post-decode. None of
	// the registered raster decoders ever set it; it exists so a future
	// vector decoder can slot in without the cache or transform code
	// needing to change.
	Scalable bool

	pixels image.Image // present only while a buffer is being built
}

// NewImage constructs an Image in the never-loaded state.
func NewImage(path string, background wcolor.Color) *Image {
	return &Image{
		Path:       path,
		Background: background,
	}
}

// Failed reports whether this image has permanently failed to decode.
func (img *Image) Failed() bool {
	img.mu.Lock()
	defer img.mu.Unlock()
	return img.Width == int32(stateFailed)
}

// Decoded reports whether pixel data is currently resident.
func (img *Image) Decoded() bool {
	img.mu.Lock()
	defer img.mu.Unlock()
	return img.pixels != nil
}

// Pixels returns the resident decoded image, or nil if unloaded.
func (img *Image) Pixels() image.Image {
	img.mu.Lock()
	defer img.mu.Unlock()
	return img.pixels
}

// Unload drops the decoded pixel surface. Buffers already built from it
// keep their own compositor-side pixels alive; only the source surface
// is freed. Called at the end of every render pass per the event loop's
// unload policy.
func (img *Image) Unload() {
	img.mu.Lock()
	defer img.mu.Unlock()
	img.pixels = nil
}
