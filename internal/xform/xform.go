// Package xform implements the pure image-to-output transform calculator:
// (image size, output size, mode, anchor) -> ImageTransform + covered.
package xform

import "github.com/friedelschoen/wsbg/internal/wcolor"

const q16 = wcolor.Q16

// Result is the calculator's output.
type Result struct {
	Transform wcolor.ImageTransform
	Covered   bool
}

// Calculate computes the destination extent and translation for the given
// mode and anchor, then converts that into an ImageTransform mapping
// destination pixels back into source (image) pixels.
//
// imageW, imageH, outputW, outputH are pixel dimensions. anchor is a
// Q16 fraction pair (0 = start edge, Q16 = end edge) as produced by
// wcolor.DefaultPosition or parsed from the -p/--position flag.
func Calculate(imageW, imageH, outputW, outputH int32, mode wcolor.BackgroundMode, anchor wcolor.Point16) Result {
	outputWQ16 := int64(outputW) * q16
	outputHQ16 := int64(outputH) * q16

	destW, destH := destExtent(int64(imageW), int64(imageH), outputWQ16, outputHQ16, mode)

	tx := wcolor.RoundDiv((destW-outputWQ16)*anchor.X, q16)
	ty := wcolor.RoundDiv((destH-outputHQ16)*anchor.Y, q16)

	// sx, sy are source-per-destination: how many Q16 source pixels one
	// destination pixel spans.
	sx := wcolor.RoundDiv(int64(imageW)*q16*q16, destW)
	sy := wcolor.RoundDiv(int64(imageH)*q16*q16, destH)

	if sx == q16 {
		tx = (tx + q16/2) &^ (q16 - 1)
	}
	if sy == q16 {
		ty = (ty + q16/2) &^ (q16 - 1)
	}

	// tx, ty are the output origin's offset into the destination extent,
	// so the extent spans the output iff it starts at or before the
	// output's origin and ends at or after its far edge.
	covered := tx >= 0 && ty >= 0 &&
		outputWQ16 <= destW-tx &&
		outputHQ16 <= destH-ty

	// Convert the translation from destination units into source units,
	// matching ImageTransform's source = (dest*scale + translate) / Q16.
	tx = wcolor.RoundDiv(tx*sx, q16)
	ty = wcolor.RoundDiv(ty*sy, q16)

	return Result{
		Transform: wcolor.ImageTransform{TX: tx, TY: ty, SX: sx, SY: sy},
		Covered:   covered,
	}
}

// destExtent returns the destination rectangle size in Q16, per mode.
// fill/fit share a height-locked candidate extent and diverge only on
// which side of the output-width comparison they pick the alternative
// width-locked extent.
func destExtent(imageW, imageH, outputWQ16, outputHQ16 int64, mode wcolor.BackgroundMode) (destW, destH int64) {
	switch mode {
	case wcolor.ModeCenter, wcolor.ModeTile:
		return imageW * q16, imageH * q16
	case wcolor.ModeStretch:
		return outputWQ16, outputHQ16
	case wcolor.ModeFill, wcolor.ModeFit:
		candW := wcolor.RoundDiv(imageW*outputHQ16, imageH)
		widthLocked := candW < outputWQ16
		if mode == wcolor.ModeFit {
			widthLocked = outputWQ16 < candW
		}
		if widthLocked {
			destW = outputWQ16
			destH = wcolor.RoundDiv(imageH*outputWQ16, imageW)
			return destW, destH
		}
		return candW, outputHQ16
	default:
		return outputWQ16, outputHQ16
	}
}
