package config

import (
	"strings"

	"github.com/friedelschoen/wsbg/internal/buffercache"
	"github.com/friedelschoen/wsbg/internal/imagestore"
	"github.com/friedelschoen/wsbg/internal/wcolor"
)

// defaultColor is the implicit head-of-list config's color, opaque
// black; defaultConfig pairs it with mode fill and the center anchor.
var (
	defaultColor = wcolor.Color{A: 0xFF}
)

// ImageStore interns *imagestore.Image objects by path so that two
// configs naming the same image path (whether on the same output across
// a workspace switch, or on two different outputs) share one Image and
// therefore one decode and one set of buffercache entries. Resolve is
// called once per output per re-resolve; without interning it would
// otherwise mint a fresh Image per call and defeat the buffer cache's
// per-image dedup.
type ImageStore struct {
	images map[string]*imagestore.Image
}

func NewImageStore() *ImageStore {
	return &ImageStore{images: make(map[string]*imagestore.Image)}
}

func (s *ImageStore) get(path string) *imagestore.Image {
	if img, ok := s.images[path]; ok {
		return img
	}
	img := imagestore.NewImage(path, wcolor.Color{})
	s.images[path] = img
	return img
}

// Images returns every interned image, for end-of-pass Unload calls.
func (s *ImageStore) Images() []*imagestore.Image {
	imgs := make([]*imagestore.Image, 0, len(s.images))
	for _, img := range s.images {
		imgs = append(imgs, img)
	}
	return imgs
}

// Config holds the resolved draw parameters for one (output, workspace)
// pair. Workspace == "" denotes the default config. Buffer owns one
// refcount in the process-wide/per-image buffer cache; callers must
// Release it through the same Cache before dropping a Config.
type Config struct {
	Workspace string
	ColorVal  wcolor.Color
	ImageVal  *imagestore.Image
	ModeVal   wcolor.BackgroundMode
	PosVal    wcolor.Point16
	Buffer    *buffercache.Buffer
}

// clone copies the draw parameters (not Buffer, which is per-instance).
func (c *Config) clone() *Config {
	cp := *c
	cp.Buffer = nil
	return &cp
}

// The buffercache.ConfigView implementation, so Cache.Get can be called
// directly with a *Config.
func (c *Config) Image() *imagestore.Image       { return c.ImageVal }
func (c *Config) Color() wcolor.Color            { return c.ColorVal }
func (c *Config) Mode() wcolor.BackgroundMode    { return c.ModeVal }
func (c *Config) Position() wcolor.Point16       { return c.PosVal }

func defaultConfig() *Config {
	return &Config{
		ColorVal: defaultColor,
		ModeVal:  wcolor.ModeFill,
		PosVal:   wcolor.DefaultPosition,
	}
}

// OutputRef is the narrow output identity the resolver matches selectors
// against: its display name and its human-readable identifier (the
// trimmed "make model serial" string). Both may be empty before the
// compositor has announced them.
type OutputRef struct {
	Name       string
	Identifier string
}

// ConfigSet is the resolved per-output result: an ordered Config list
// (the default config is always configs[0]) and the currently active one.
type ConfigSet struct {
	Configs []*Config
	Active  *Config
}

// Resolve runs the left-to-right option-stream program (§4.F) against a
// single output, given the workspace currently visible on it (""  if
// none). It always returns a non-nil ConfigSet with at least the
// default config.
func Resolve(opts []Option, images *ImageStore, out OutputRef, visibleWorkspace string) *ConfigSet {
	def := defaultConfig()
	set := &ConfigSet{Configs: []*Config{def}, Active: def}

	// No -o/--output seen yet means "all outputs", per the CLI contract.
	selected := true
	prevType := OptionType(-1) // sentinel: no option seen yet
	group := []*Config{def}    // configs currently open for mutation

	for _, opt := range opts {
		switch opt.Type {
		case OptOutput:
			// Consecutive output options union; a -o following any other
			// option kind replaces the selection instead of combining
			// with it.
			match := matchesOutput(opt.Selector, out)
			selected = (selected && prevType == OptOutput) || match
		case OptWorkspace:
			if selected {
				if opt.Selector == "*" {
					group = []*Config{def}
				} else {
					group = []*Config{stageWorkspaceConfig(set, def, opt.Selector)}
				}
			}
		case OptColor:
			if selected {
				for _, c := range group {
					c.ColorVal = opt.Color
				}
			}
		case OptImage:
			if selected {
				img := images.get(opt.Image)
				for _, c := range group {
					c.ImageVal = img
				}
			}
		case OptMode:
			if selected {
				for _, c := range group {
					c.ModeVal = opt.Mode
				}
			}
		case OptPosition:
			if selected {
				for _, c := range group {
					c.PosVal = opt.Position
				}
			}
		}
		prevType = opt.Type
	}

	set.Active = def
	for _, c := range set.Configs {
		if c.Workspace != "" && c.Workspace == visibleWorkspace {
			set.Active = c
			break
		}
	}
	return set
}

// stageWorkspaceConfig returns the existing staged Config for name if
// one was already created earlier in this resolve pass (first match
// wins; see the Open Question decision in SPEC_FULL.md), else clones
// the default config and appends it.
func stageWorkspaceConfig(set *ConfigSet, def *Config, name string) *Config {
	for _, c := range set.Configs {
		if c.Workspace == name {
			return c
		}
	}
	cfg := def.clone()
	cfg.Workspace = name
	set.Configs = append(set.Configs, cfg)
	return cfg
}

// matchesOutput implements "output <sel>": * matches all, otherwise the
// selector is compared against both the output's name and identifier.
func matchesOutput(selector string, out OutputRef) bool {
	if selector == "*" {
		return true
	}
	return selector == out.Name || (out.Identifier != "" && selector == out.Identifier)
}

// StripIdentifierSuffix removes the trailing " (name)" parenthetical
// wlroots appends to wl_output's description, e.g.
// "Some Monitor Inc. 27in ABC123 (DP-1)" -> "Some Monitor Inc. 27in ABC123".
func StripIdentifierSuffix(description string) string {
	i := strings.LastIndexByte(description, '(')
	if i <= 0 {
		return description
	}
	return strings.TrimSpace(description[:i])
}
