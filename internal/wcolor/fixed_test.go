package wcolor

import "testing"

func TestRoundDiv(t *testing.T) {
	cases := []struct {
		a, b, want int64
	}{
		{10, 4, 3},   // 2.5 -> away from zero -> 3
		{-10, 4, -3}, // -2.5 -> -3
		{9, 4, 2},    // 2.25 -> 2
		{Q16, Q16, 1},
		{3 * Q16, 2, RoundDiv(3*Q16, 2)}, // self-consistency smoke check
	}
	for _, c := range cases {
		got := RoundDiv(c.a, c.b)
		if got != c.want {
			t.Errorf("RoundDiv(%d,%d) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestParseMode(t *testing.T) {
	for _, name := range []string{"stretch", "fill", "fit", "center", "tile", "solid_color"} {
		if m := ParseMode(name); m.String() != name {
			t.Errorf("ParseMode(%q).String() = %q", name, m.String())
		}
	}
	if ParseMode("bogus") != ModeInvalid {
		t.Errorf("ParseMode(bogus) should be ModeInvalid")
	}
}
