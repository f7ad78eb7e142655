package wcolor

import "testing"

func TestParseColorRoundTrip(t *testing.T) {
	cases := []string{"#ff0000", "00ff00", "#0000FF", "112233", "#AABBCC"}
	for _, in := range cases {
		c, err := ParseColor(in)
		if err != nil {
			t.Fatalf("ParseColor(%q): %v", in, err)
		}
		if c.A != 0xFF {
			t.Errorf("ParseColor(%q) alpha = %#x, want 0xff", in, c.A)
		}
		got := c.String()
		c2, err := ParseColor(got)
		if err != nil {
			t.Fatalf("ParseColor(%q) (round trip): %v", got, err)
		}
		if c2 != c {
			t.Errorf("round trip %q -> %q -> %+v, want %+v", in, got, c2, c)
		}
	}
}

func TestParseColorInvalid(t *testing.T) {
	cases := []string{"", "#fff", "ggg000", "#1234567"}
	for _, in := range cases {
		if _, err := ParseColor(in); err == nil {
			t.Errorf("ParseColor(%q) = nil error, want error", in)
		}
	}
}
