package config

import (
	"testing"

	"github.com/friedelschoen/wsbg/internal/wcolor"
)

func mustParse(t *testing.T, args ...string) []Option {
	t.Helper()
	opts, helpOrVersion, err := ParseArgs(args)
	if err != nil {
		t.Fatalf("ParseArgs(%v): %v", args, err)
	}
	if helpOrVersion {
		t.Fatalf("ParseArgs(%v): unexpected help/version", args)
	}
	return opts
}

func TestResolveNoOptionsYieldsDefault(t *testing.T) {
	set := Resolve(nil, NewImageStore(), OutputRef{Name: "eDP-1"}, "")
	if len(set.Configs) != 1 || set.Active != set.Configs[0] {
		t.Fatalf("expected exactly one default config, got %+v", set)
	}
	if set.Active.ColorVal != (wcolor.Color{A: 0xFF}) || set.Active.ModeVal != wcolor.ModeFill {
		t.Fatalf("default config = %+v, want opaque black / fill", set.Active)
	}
}

func TestResolvePerOutputSelectors(t *testing.T) {
	opts := mustParse(t, "-o", "A", "-c", "#FF0000", "-o", "B", "-c", "#00FF00")

	images := NewImageStore()
	a := Resolve(opts, images, OutputRef{Name: "A"}, "")
	if a.Active.ColorVal.String() != "#ff0000" {
		t.Errorf("output A color = %v, want red", a.Active.ColorVal)
	}

	b := Resolve(opts, images, OutputRef{Name: "B"}, "")
	if b.Active.ColorVal.String() != "#00ff00" {
		t.Errorf("output B color = %v, want green", b.Active.ColorVal)
	}

	other := Resolve(opts, images, OutputRef{Name: "C"}, "")
	if other.Active.ColorVal != (wcolor.Color{A: 0xFF}) {
		t.Errorf("output C color = %v, want default black", other.Active.ColorVal)
	}
}

func TestResolveWorkspaceGroupInheritsThenDiverges(t *testing.T) {
	opts := mustParse(t, "-c", "#112233", "-w", "WS1", "-i", "bg.png", "-w", "*")

	set := Resolve(opts, NewImageStore(), OutputRef{Name: "eDP-1"}, "")
	if len(set.Configs) != 2 {
		t.Fatalf("expected default + WS1 config, got %d configs", len(set.Configs))
	}
	def, ws1 := set.Configs[0], set.Configs[1]
	if def.ColorVal.String() != "#112233" || def.ImageVal != nil {
		t.Errorf("default config = %+v", def)
	}
	if ws1.ColorVal.String() != "#112233" || ws1.ImageVal == nil || ws1.ImageVal.Path != "bg.png" {
		t.Errorf("WS1 config = %+v", ws1)
	}
}

func TestResolveActiveConfigTracksVisibleWorkspace(t *testing.T) {
	opts := mustParse(t, "-w", "2", "-c", "#808080")

	images := NewImageStore()
	set := Resolve(opts, images, OutputRef{Name: "HDMI-A-1"}, "2")
	if set.Active.Workspace != "2" {
		t.Fatalf("active config workspace = %q, want \"2\"", set.Active.Workspace)
	}

	elsewhere := Resolve(opts, images, OutputRef{Name: "HDMI-A-1"}, "5")
	if elsewhere.Active.Workspace != "" {
		t.Fatalf("active config should fall back to default when workspace 5 is visible, got %q", elsewhere.Active.Workspace)
	}
}

func TestResolveWildcardOutputSelector(t *testing.T) {
	opts := mustParse(t, "-c", "#808080")
	for _, name := range []string{"eDP-1", "HDMI-A-1"} {
		set := Resolve(opts, NewImageStore(), OutputRef{Name: name}, "")
		if set.Active.ColorVal.String() != "#808080" {
			t.Errorf("output %s color = %v, want gray", name, set.Active.ColorVal)
		}
	}
}

func TestStripIdentifierSuffix(t *testing.T) {
	cases := map[string]string{
		"Some Monitor Inc. 27in ABC123 (DP-1)": "Some Monitor Inc. 27in ABC123",
		"Unknown (eDP-1)":                      "Unknown",
		"no parens at all":                     "no parens at all",
	}
	for in, want := range cases {
		if got := StripIdentifierSuffix(in); got != want {
			t.Errorf("StripIdentifierSuffix(%q) = %q, want %q", in, got, want)
		}
	}
}
