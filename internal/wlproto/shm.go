package wlproto

import "github.com/rajveermalviya/go-wayland/wayland"

type ShmFormat uint32

const (
	ShmFormatArgb8888 ShmFormat = 0
	ShmFormatXrgb8888 ShmFormat = 1
)

// Shm is wl_shm.
type Shm struct {
	id   wayland.ProxyId
	conn *wayland.Conn
}

func NewShm(_ any) *Shm { return &Shm{} }

func (s *Shm) Id() wayland.ProxyId      { return s.id }
func (s *Shm) SetId(id wayland.ProxyId) { s.id = id }
func (s *Shm) SetConn(cn *wayland.Conn) { s.conn = cn }
func (s *Shm) Interface() string        { return "wl_shm" }
func (s *Shm) Version() uint32          { return 1 }
func (s *Shm) Dispatch(wayland.Event)   {}

// CreatePool issues wl_shm.create_pool over fd, covering size bytes.
func (s *Shm) CreatePool(fd int, size int32, handlers *ShmPoolHandlers) *ShmPool {
	p := &ShmPool{handlers: handlers}
	s.conn.NewObject(p)
	s.conn.SendRequest(s, 0, p, wayland.Fd(fd), size)
	return p
}

// ShmPool is wl_shm_pool.
type ShmPool struct {
	id       wayland.ProxyId
	conn     *wayland.Conn
	handlers *ShmPoolHandlers
}

type ShmPoolHandlers struct{}

func (p *ShmPool) Id() wayland.ProxyId      { return p.id }
func (p *ShmPool) SetId(id wayland.ProxyId) { p.id = id }
func (p *ShmPool) SetConn(cn *wayland.Conn) { p.conn = cn }
func (p *ShmPool) Interface() string        { return "wl_shm_pool" }
func (p *ShmPool) Version() uint32          { return 1 }
func (p *ShmPool) Dispatch(wayland.Event)   {}

func (p *ShmPool) CreateBuffer(offset, width, height, stride int32, format ShmFormat, handlers *BufferHandlers) *Buffer {
	b := &Buffer{handlers: handlers}
	p.conn.NewObject(b)
	p.conn.SendRequest(p, 0, b, offset, width, height, stride, uint32(format))
	return b
}

func (p *ShmPool) Resize(size int32) error { return p.conn.SendRequest(p, 2, size) }

func (p *ShmPool) Destroy() error { return p.conn.Delete(p) }

// Buffer is wl_buffer.
type Buffer struct {
	id       wayland.ProxyId
	conn     *wayland.Conn
	handlers *BufferHandlers
}

type BufferHandlers struct {
	OnRelease func(evt wayland.Event)
}

func (b *Buffer) Id() wayland.ProxyId      { return b.id }
func (b *Buffer) SetId(id wayland.ProxyId) { b.id = id }
func (b *Buffer) SetConn(cn *wayland.Conn) { b.conn = cn }
func (b *Buffer) Interface() string        { return "wl_buffer" }
func (b *Buffer) Version() uint32          { return 1 }

func (b *Buffer) Dispatch(evt wayland.Event) {
	if b.handlers == nil {
		return
	}
	if _, ok := evt.(*BufferReleaseEvent); ok && b.handlers.OnRelease != nil {
		b.handlers.OnRelease(evt)
	}
}

type BufferReleaseEvent struct{}

func (b *Buffer) Destroy() error { return b.conn.Delete(b) }
