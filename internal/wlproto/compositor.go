package wlproto

import "github.com/rajveermalviya/go-wayland/wayland"

// Compositor is wl_compositor.
type Compositor struct {
	id   wayland.ProxyId
	conn *wayland.Conn
}

func NewCompositor(_ any) *Compositor { return &Compositor{} }

func (c *Compositor) Id() wayland.ProxyId      { return c.id }
func (c *Compositor) SetId(id wayland.ProxyId) { c.id = id }
func (c *Compositor) SetConn(cn *wayland.Conn) { c.conn = cn }
func (c *Compositor) Interface() string        { return "wl_compositor" }
func (c *Compositor) Version() uint32          { return 4 }
func (c *Compositor) Dispatch(wayland.Event)   {}

// CreateSurface issues wl_compositor.create_surface.
func (c *Compositor) CreateSurface(handlers *SurfaceHandlers) *Surface {
	s := &Surface{handlers: handlers}
	c.conn.NewObject(s)
	c.conn.SendRequest(c, 0, s)
	return s
}

// Surface is wl_surface.
type Surface struct {
	id       wayland.ProxyId
	conn     *wayland.Conn
	handlers *SurfaceHandlers
}

type SurfaceHandlers struct {
	OnEnter           func(evt wayland.Event)
	OnLeave           func(evt wayland.Event)
	OnPreferredBufferScale func(evt wayland.Event)
}

func (s *Surface) Id() wayland.ProxyId      { return s.id }
func (s *Surface) SetId(id wayland.ProxyId) { s.id = id }
func (s *Surface) SetConn(cn *wayland.Conn) { s.conn = cn }
func (s *Surface) Interface() string        { return "wl_surface" }
func (s *Surface) Version() uint32          { return 4 }
func (s *Surface) Dispatch(wayland.Event)   {}

func (s *Surface) Attach(buf *Buffer, x, y int32) error {
	return s.conn.SendRequest(s, 1, buf, x, y)
}

func (s *Surface) DamageBuffer(x, y, width, height int32) error {
	return s.conn.SendRequest(s, 9, x, y, width, height)
}

func (s *Surface) SetInputRegion(r *Region) error {
	return s.conn.SendRequest(s, 5, r)
}

func (s *Surface) Commit() error { return s.conn.SendRequest(s, 6) }

func (s *Surface) Destroy() error { return s.conn.Delete(s) }

// Region is wl_region, used here only to install an empty input region.
type Region struct {
	id   wayland.ProxyId
	conn *wayland.Conn
}

func (c *Compositor) CreateRegion() *Region {
	r := &Region{}
	c.conn.NewObject(r)
	c.conn.SendRequest(c, 1, r)
	return r
}

func (r *Region) Id() wayland.ProxyId      { return r.id }
func (r *Region) SetId(id wayland.ProxyId) { r.id = id }
func (r *Region) SetConn(cn *wayland.Conn) { r.conn = cn }
func (r *Region) Interface() string        { return "wl_region" }
func (r *Region) Version() uint32          { return 1 }
func (r *Region) Dispatch(wayland.Event)   {}
func (r *Region) Destroy() error           { return r.conn.Delete(r) }
