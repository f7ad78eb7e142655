package wloutput

import (
	"log"

	"github.com/friedelschoen/wsbg/internal/config"
	"github.com/friedelschoen/wsbg/internal/wlproto"
	"github.com/rajveermalviya/go-wayland/wayland"
)

const namespace = "wallpaper"

// Output is one physical output's background layer-surface and its
// currently resolved, currently rendered config.
type Output struct {
	mgr        *Manager
	wlOutput   *wlproto.Output
	globalName uint32

	name        string
	description string

	width, height int32 // in the mode wl_output last announced
	configW, configH int32 // logical surface size from the last layer_surface.configure
	scale120      int32 // preferred fractional scale * 120, 120 (scale 1.0) until known

	surface      *wlproto.Surface
	layerSurface *wlproto.LayerSurface
	viewport     *wlproto.Viewport
	fracScale    *wlproto.FractionalScale

	configured bool // setup() has run
	acked      bool // at least one layer_surface.configure has been ack'd
	configSet  *config.ConfigSet

	bufferChange bool // geometry or scale changed since last render
	configChange bool // resolved config changed since last render
}

func newOutput(mgr *Manager) *Output {
	return &Output{mgr: mgr, scale120: 120}
}

func (o *Output) handlers() *wlproto.OutputHandlers {
	return &wlproto.OutputHandlers{
		OnName: func(evt wayland.Event) {
			o.name = evt.(*wlproto.OutputNameEvent).Name
		},
		OnDescription: func(evt wayland.Event) {
			o.description = config.StripIdentifierSuffix(evt.(*wlproto.OutputDescriptionEvent).Description)
		},
		OnMode: func(evt wayland.Event) {
			e := evt.(*wlproto.OutputModeEvent)
			if o.width != e.Width || o.height != e.Height {
				o.width, o.height = e.Width, e.Height
				o.bufferChange = true
			}
		},
		OnDone: func(evt wayland.Event) {
			if !o.configured {
				o.configured = true
				o.setup()
			}
			o.reresolve()
		},
	}
}

// setup creates the surface, binds the layer-shell surface, the
// viewport and (optionally) the fractional-scale object, per §4.G: all
// four edges anchored, exclusive zone -1, background layer, empty input
// region so the wallpaper never steals input.
func (o *Output) setup() {
	o.surface = o.mgr.compositor.CreateSurface(nil)

	empty := o.mgr.compositor.CreateRegion()
	o.surface.SetInputRegion(empty)
	empty.Destroy()

	o.layerSurface = o.mgr.layerShell.GetLayerSurface(o.surface, o.wlOutput, wlproto.LayerShellLayerBackground, namespace,
		&wlproto.LayerSurfaceHandlers{
			OnConfigure: func(evt wayland.Event) {
				e := evt.(*wlproto.LayerSurfaceConfigureEvent)
				o.layerSurface.AckConfigure(e.Serial)
				o.acked = true
				if o.configW != int32(e.Width) || o.configH != int32(e.Height) {
					o.configW, o.configH = int32(e.Width), int32(e.Height)
					o.bufferChange = true
				}
				o.render()
			},
			OnClosed: func(wayland.Event) {
				o.destroy()
			},
		})
	o.layerSurface.SetAnchor(
		wlproto.LayerSurfaceAnchorTop | wlproto.LayerSurfaceAnchorBottom |
			wlproto.LayerSurfaceAnchorLeft | wlproto.LayerSurfaceAnchorRight)
	o.layerSurface.SetExclusiveZone(-1)
	o.layerSurface.SetSize(0, 0)

	if o.mgr.viewporter != nil {
		o.viewport = o.mgr.viewporter.GetViewport(o.surface)
	}
	if o.mgr.fracScaleMgr != nil {
		o.fracScale = o.mgr.fracScaleMgr.GetFractionalScale(o.surface, &wlproto.FractionalScaleHandlers{
			OnPreferredScale: func(evt wayland.Event) {
				scale := evt.(*wlproto.FractionalScalePreferredScaleEvent).Scale
				if o.scale120 != int32(scale) {
					o.scale120 = int32(scale)
					o.bufferChange = true
					o.render()
				}
			},
		})
	}

	o.surface.Commit()
}

// reresolve re-runs the config resolver for this output and flags
// configChange if the active config's draw parameters differ, then
// renders immediately if the surface is already configured.
func (o *Output) reresolve() {
	if o.mgr.Resolve == nil {
		return
	}
	visible := ""
	if o.mgr.VisibleWorkspace != nil {
		visible = o.mgr.VisibleWorkspace(o.name)
	}
	next := o.mgr.Resolve(config.OutputRef{Name: o.name, Identifier: o.description}, visible)
	prev := o.configSet
	if prev == nil || !sameActiveConfig(prev.Active, next.Active) {
		o.configChange = true
	} else {
		// Same draw parameters: the new active config takes over the
		// buffer (and its reference) that is already on screen.
		next.Active.Buffer, prev.Active.Buffer = prev.Active.Buffer, nil
	}
	o.configSet = next
	if o.acked {
		o.render()
	}
	// The replaced configs' references are dropped after render has
	// attached the new active buffer.
	if prev != nil {
		for _, c := range prev.Configs {
			o.mgr.Cache.Release(c.Buffer)
		}
	}
}

func sameActiveConfig(a, b *config.Config) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ColorVal == b.ColorVal && a.ImageVal == b.ImageVal &&
		a.ModeVal == b.ModeVal && a.PosVal == b.PosVal
}

func (o *Output) destroy() {
	if o.configSet != nil {
		for _, c := range o.configSet.Configs {
			o.mgr.Cache.Release(c.Buffer)
		}
	}
	if o.fracScale != nil {
		o.fracScale.Destroy()
	}
	if o.viewport != nil {
		o.viewport.Destroy()
	}
	if o.layerSurface != nil {
		o.layerSurface.Destroy()
	}
	if o.surface != nil {
		o.surface.Destroy()
	}
	if err := o.wlOutput.Release(); err != nil {
		log.Printf("wloutput: release wl_output: %v", err)
	}
}
