package wlproto

import "github.com/rajveermalviya/go-wayland/wayland"

// SinglePixelBufferManager is wp_single_pixel_buffer_manager_v1, used for
// solid_color configs so a 1x1 buffer (stretched to the output by
// wp_viewport) replaces a full SHM allocation.
type SinglePixelBufferManager struct {
	id   wayland.ProxyId
	conn *wayland.Conn
}

func NewSinglePixelBufferManager(_ any) *SinglePixelBufferManager {
	return &SinglePixelBufferManager{}
}

func (m *SinglePixelBufferManager) Id() wayland.ProxyId      { return m.id }
func (m *SinglePixelBufferManager) SetId(id wayland.ProxyId) { m.id = id }
func (m *SinglePixelBufferManager) SetConn(cn *wayland.Conn) { m.conn = cn }
func (m *SinglePixelBufferManager) Interface() string        { return "wp_single_pixel_buffer_manager_v1" }
func (m *SinglePixelBufferManager) Version() uint32          { return 1 }
func (m *SinglePixelBufferManager) Dispatch(wayland.Event)   {}

// CreateU32RgbaBuffer creates a 1x1 buffer of the given premultiplied,
// 32-bit-per-channel RGBA color. No release event is ever sent for
// buffers created this way; callers must not wait for one.
func (m *SinglePixelBufferManager) CreateU32RgbaBuffer(r, g, b, a uint32) *Buffer {
	buf := &Buffer{}
	m.conn.NewObject(buf)
	m.conn.SendRequest(m, 1, buf, r, g, b, a)
	return buf
}

func (m *SinglePixelBufferManager) Destroy() error { return m.conn.Delete(m) }
