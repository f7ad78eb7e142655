// Package wcolor holds the value types shared across wsbg's rendering
// pipeline: colors, Q16 fixed-point scalars and the ImageTransform the
// transform calculator produces.
package wcolor

import "fmt"

// Color is four 8-bit channels. Wire order (as written into shared-memory
// buffers) is b, g, r, a, matching wl_shm's XRGB8888/ARGB8888 little-endian
// byte layout; field order here is the conventional r,g,b,a for readability.
type Color struct {
	R, G, B, A uint8
}

// Opaque reports whether a is fully opaque.
func (c Color) Opaque() bool { return c.A == 0xFF }

// Zero is the all-channels-zero sentinel used by the image decoder to mark
// "no alpha was consumed, any background can reuse this surface".
var Zero = Color{}

// ParseColor parses a 6-digit hex color in "RRGGBB" or "#RRGGBB" form.
// Alpha is always forced to 0xFF, per the CLI contract.
func ParseColor(s string) (Color, error) {
	s = trimHash(s)
	if len(s) != 6 {
		return Color{}, fmt.Errorf("wcolor: invalid color %q: want 6 hex digits", s)
	}
	r, err := hexByte(s[0:2])
	if err != nil {
		return Color{}, fmt.Errorf("wcolor: invalid color %q: %w", s, err)
	}
	g, err := hexByte(s[2:4])
	if err != nil {
		return Color{}, fmt.Errorf("wcolor: invalid color %q: %w", s, err)
	}
	b, err := hexByte(s[4:6])
	if err != nil {
		return Color{}, fmt.Errorf("wcolor: invalid color %q: %w", s, err)
	}
	return Color{R: r, G: g, B: b, A: 0xFF}, nil
}

// String renders the color back as lowercase "#rrggbb", ignoring alpha
// (the CLI syntax never carries alpha).
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func trimHash(s string) string {
	if len(s) > 0 && s[0] == '#' {
		return s[1:]
	}
	return s
}

func hexByte(s string) (uint8, error) {
	var v uint8
	for _, c := range []byte(s) {
		var d uint8
		switch {
		case '0' <= c && c <= '9':
			d = c - '0'
		case 'a' <= c && c <= 'f':
			d = c - 'a' + 10
		case 'A' <= c && c <= 'F':
			d = c - 'A' + 10
		default:
			return 0, fmt.Errorf("invalid hex digit %q", c)
		}
		v = v<<4 | d
	}
	return v, nil
}
