package wlproto

import "github.com/rajveermalviya/go-wayland/wayland"

// FractionalScaleManager is wp_fractional_scale_manager_v1.
type FractionalScaleManager struct {
	id   wayland.ProxyId
	conn *wayland.Conn
}

func NewFractionalScaleManager(_ any) *FractionalScaleManager {
	return &FractionalScaleManager{}
}

func (m *FractionalScaleManager) Id() wayland.ProxyId      { return m.id }
func (m *FractionalScaleManager) SetId(id wayland.ProxyId) { m.id = id }
func (m *FractionalScaleManager) SetConn(cn *wayland.Conn) { m.conn = cn }
func (m *FractionalScaleManager) Interface() string        { return "wp_fractional_scale_manager_v1" }
func (m *FractionalScaleManager) Version() uint32          { return 1 }
func (m *FractionalScaleManager) Dispatch(wayland.Event)   {}

func (m *FractionalScaleManager) GetFractionalScale(surface *Surface, handlers *FractionalScaleHandlers) *FractionalScale {
	fs := &FractionalScale{handlers: handlers}
	m.conn.NewObject(fs)
	m.conn.SendRequest(m, 1, fs, surface)
	return fs
}

func (m *FractionalScaleManager) Destroy() error { return m.conn.Delete(m) }

// FractionalScale is wp_fractional_scale_v1.
type FractionalScale struct {
	id       wayland.ProxyId
	conn     *wayland.Conn
	handlers *FractionalScaleHandlers
}

type FractionalScaleHandlers struct {
	OnPreferredScale func(evt wayland.Event)
}

// FractionalScalePreferredScaleEvent.Scale is the preferred scale times
// 120, per the protocol's fixed-point convention.
type FractionalScalePreferredScaleEvent struct {
	Scale uint32
}

func (f *FractionalScale) Id() wayland.ProxyId      { return f.id }
func (f *FractionalScale) SetId(id wayland.ProxyId) { f.id = id }
func (f *FractionalScale) SetConn(cn *wayland.Conn) { f.conn = cn }
func (f *FractionalScale) Interface() string        { return "wp_fractional_scale_v1" }
func (f *FractionalScale) Version() uint32          { return 1 }

func (f *FractionalScale) Dispatch(evt wayland.Event) {
	if f.handlers == nil {
		return
	}
	if e, ok := evt.(*FractionalScalePreferredScaleEvent); ok && f.handlers.OnPreferredScale != nil {
		f.handlers.OnPreferredScale(e)
	}
}

func (f *FractionalScale) Destroy() error { return f.conn.Delete(f) }
