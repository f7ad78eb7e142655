package wlproto

import "github.com/rajveermalviya/go-wayland/wayland"

// Viewporter is wp_viewporter.
type Viewporter struct {
	id   wayland.ProxyId
	conn *wayland.Conn
}

func NewViewporter(_ any) *Viewporter { return &Viewporter{} }

func (v *Viewporter) Id() wayland.ProxyId      { return v.id }
func (v *Viewporter) SetId(id wayland.ProxyId) { v.id = id }
func (v *Viewporter) SetConn(cn *wayland.Conn) { v.conn = cn }
func (v *Viewporter) Interface() string        { return "wp_viewporter" }
func (v *Viewporter) Version() uint32          { return 1 }
func (v *Viewporter) Dispatch(wayland.Event)   {}

func (v *Viewporter) GetViewport(surface *Surface) *Viewport {
	vp := &Viewport{}
	v.conn.NewObject(vp)
	v.conn.SendRequest(v, 1, vp, surface)
	return vp
}

func (v *Viewporter) Destroy() error { return v.conn.Delete(v) }

// Viewport is wp_viewport.
type Viewport struct {
	id   wayland.ProxyId
	conn *wayland.Conn
}

func (p *Viewport) Id() wayland.ProxyId      { return p.id }
func (p *Viewport) SetId(id wayland.ProxyId) { p.id = id }
func (p *Viewport) SetConn(cn *wayland.Conn) { p.conn = cn }
func (p *Viewport) Interface() string        { return "wp_viewport" }
func (p *Viewport) Version() uint32          { return 1 }
func (p *Viewport) Dispatch(wayland.Event)   {}

// SetDestination scales the attached buffer to width x height surface
// coordinates, used to stretch a 1x1 solid-color buffer to fill an
// output without allocating a full-size SHM buffer.
func (p *Viewport) SetDestination(width, height int32) error {
	return p.conn.SendRequest(p, 2, width, height)
}

func (p *Viewport) Destroy() error { return p.conn.Delete(p) }
