package wlproto

import "github.com/rajveermalviya/go-wayland/wayland"

type LayerShellLayer uint32

const (
	LayerShellLayerBackground LayerShellLayer = 0
	LayerShellLayerBottom     LayerShellLayer = 1
	LayerShellLayerTop        LayerShellLayer = 2
	LayerShellLayerOverlay    LayerShellLayer = 3
)

type LayerSurfaceAnchor uint32

const (
	LayerSurfaceAnchorTop    LayerSurfaceAnchor = 1
	LayerSurfaceAnchorBottom LayerSurfaceAnchor = 2
	LayerSurfaceAnchorLeft   LayerSurfaceAnchor = 4
	LayerSurfaceAnchorRight  LayerSurfaceAnchor = 8
)

// LayerShell is zwlr_layer_shell_v1.
type LayerShell struct {
	id   wayland.ProxyId
	conn *wayland.Conn
}

func NewLayerShell(_ any) *LayerShell { return &LayerShell{} }

func (l *LayerShell) Id() wayland.ProxyId      { return l.id }
func (l *LayerShell) SetId(id wayland.ProxyId) { l.id = id }
func (l *LayerShell) SetConn(cn *wayland.Conn) { l.conn = cn }
func (l *LayerShell) Interface() string        { return "zwlr_layer_shell_v1" }
func (l *LayerShell) Version() uint32          { return 4 }
func (l *LayerShell) Dispatch(wayland.Event)   {}

// GetLayerSurface issues zwlr_layer_shell_v1.get_layer_surface. output
// may be nil, letting the compositor pick one.
func (l *LayerShell) GetLayerSurface(surface *Surface, output *Output, layer LayerShellLayer, namespace string, handlers *LayerSurfaceHandlers) *LayerSurface {
	ls := &LayerSurface{handlers: handlers}
	l.conn.NewObject(ls)
	var outputId wayland.Proxy
	if output != nil {
		outputId = output
	}
	l.conn.SendRequest(l, 0, ls, surface, outputId, uint32(layer), namespace)
	return ls
}

func (l *LayerShell) Destroy() error { return l.conn.Delete(l) }

// LayerSurface is zwlr_layer_surface_v1.
type LayerSurface struct {
	id       wayland.ProxyId
	conn     *wayland.Conn
	handlers *LayerSurfaceHandlers
}

type LayerSurfaceHandlers struct {
	OnConfigure func(evt wayland.Event)
	OnClosed    func(evt wayland.Event)
}

type LayerSurfaceConfigureEvent struct {
	Serial uint32
	Width  uint32
	Height uint32
}

type LayerSurfaceClosedEvent struct{}

func (s *LayerSurface) Id() wayland.ProxyId      { return s.id }
func (s *LayerSurface) SetId(id wayland.ProxyId) { s.id = id }
func (s *LayerSurface) SetConn(cn *wayland.Conn) { s.conn = cn }
func (s *LayerSurface) Interface() string        { return "zwlr_layer_surface_v1" }
func (s *LayerSurface) Version() uint32          { return 4 }

func (s *LayerSurface) Dispatch(evt wayland.Event) {
	if s.handlers == nil {
		return
	}
	switch e := evt.(type) {
	case *LayerSurfaceConfigureEvent:
		if s.handlers.OnConfigure != nil {
			s.handlers.OnConfigure(e)
		}
	case *LayerSurfaceClosedEvent:
		if s.handlers.OnClosed != nil {
			s.handlers.OnClosed(e)
		}
	}
}

func (s *LayerSurface) SetAnchor(anchor LayerSurfaceAnchor) error {
	return s.conn.SendRequest(s, 1, uint32(anchor))
}

func (s *LayerSurface) SetExclusiveZone(zone int32) error {
	return s.conn.SendRequest(s, 2, zone)
}

func (s *LayerSurface) SetSize(width, height uint32) error {
	return s.conn.SendRequest(s, 0, width, height)
}

func (s *LayerSurface) AckConfigure(serial uint32) error {
	return s.conn.SendRequest(s, 6, serial)
}

func (s *LayerSurface) Destroy() error { return s.conn.Delete(s) }
