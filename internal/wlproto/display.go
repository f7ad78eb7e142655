// Package wlproto is the thin set of generated-style Wayland protocol
// bindings wsbg needs: core wl_display/wl_registry/wl_compositor/wl_shm/
// wl_output plus the zwlr_layer_shell_v1, wp_viewporter,
// wp_single_pixel_buffer_manager_v1 and wp_fractional_scale_manager_v1
// extensions. It is generated by hand in the same shape
// github.com/rajveermalviya/go-wayland's scanner would produce, scoped to
// only the requests and events wsbg actually drives, and built directly
// on that module's runtime Conn/Proxy/Event/Registrar types.
package wlproto

import "github.com/rajveermalviya/go-wayland/wayland"

// Display is wl_display.
type Display struct {
	id       wayland.ProxyId
	conn     *wayland.Conn
	handlers *DisplayHandlers
}

type DisplayHandlers struct {
	OnError func(evt wayland.Event)
}

type DisplayErrorEvent struct {
	ObjectId wayland.Proxy
	Code     uint32
	Message  string
}

func NewDisplay(handlers *DisplayHandlers) *Display {
	return &Display{handlers: handlers}
}

func (d *Display) Id() wayland.ProxyId      { return d.id }
func (d *Display) SetId(id wayland.ProxyId) { d.id = id }
func (d *Display) SetConn(c *wayland.Conn)  { d.conn = c }
func (d *Display) Interface() string        { return "wl_display" }
func (d *Display) Version() uint32          { return 1 }

func (d *Display) Dispatch(evt wayland.Event) {
	if d.handlers == nil {
		return
	}
	if _, ok := evt.(*DisplayErrorEvent); ok && d.handlers.OnError != nil {
		d.handlers.OnError(evt)
	}
}

// GetRegistry issues wl_display.get_registry.
func (d *Display) GetRegistry(handlers *RegistryHandlers) *Registry {
	reg := &Registry{handlers: handlers}
	d.conn.NewObject(reg)
	d.conn.SendRequest(d, 1, reg)
	return reg
}

// Sync issues wl_display.sync, returning a callback fired once the
// server has processed every request sent before it.
func (d *Display) Sync(handlers *CallbackHandlers) *Callback {
	cb := &Callback{handlers: handlers}
	d.conn.NewObject(cb)
	d.conn.SendRequest(d, 0, cb)
	return cb
}

func (d *Display) Destroy() error { return d.conn.Delete(d) }

// Registry is wl_registry.
type Registry struct {
	id       wayland.ProxyId
	conn     *wayland.Conn
	handlers *RegistryHandlers
}

type RegistryHandlers struct {
	OnGlobal       func(evt wayland.Event)
	OnGlobalRemove func(evt wayland.Event)
}

type RegistryGlobalEvent struct {
	Name      uint32
	Interface string
	Version   uint32
}

type RegistryGlobalRemoveEvent struct {
	Name uint32
}

func (r *Registry) Id() wayland.ProxyId      { return r.id }
func (r *Registry) SetId(id wayland.ProxyId) { r.id = id }
func (r *Registry) SetConn(c *wayland.Conn)  { r.conn = c }
func (r *Registry) Interface() string        { return "wl_registry" }
func (r *Registry) Version() uint32          { return 1 }

func (r *Registry) Dispatch(evt wayland.Event) {
	if r.handlers == nil {
		return
	}
	switch evt.(type) {
	case *RegistryGlobalEvent:
		if r.handlers.OnGlobal != nil {
			r.handlers.OnGlobal(evt)
		}
	case *RegistryGlobalRemoveEvent:
		if r.handlers.OnGlobalRemove != nil {
			r.handlers.OnGlobalRemove(evt)
		}
	}
}

// Bind issues wl_registry.bind, attaching target as the proxy for the
// named global.
func (r *Registry) Bind(name uint32, iface string, version uint32, target wayland.Proxy) error {
	r.conn.NewObject(target)
	return r.conn.SendRequest(r, 0, name, iface, version, target)
}

func (r *Registry) Destroy() error { return r.conn.Delete(r) }

// Callback is wl_callback, used for sync round-trips.
type Callback struct {
	id       wayland.ProxyId
	conn     *wayland.Conn
	handlers *CallbackHandlers
}

type CallbackHandlers struct {
	OnDone func(evt wayland.Event)
}

type CallbackDoneEvent struct {
	CallbackData uint32
}

func (c *Callback) Id() wayland.ProxyId      { return c.id }
func (c *Callback) SetId(id wayland.ProxyId) { c.id = id }
func (c *Callback) SetConn(cn *wayland.Conn) { c.conn = cn }
func (c *Callback) Interface() string        { return "wl_callback" }
func (c *Callback) Version() uint32          { return 1 }

func (c *Callback) Dispatch(evt wayland.Event) {
	if c.handlers == nil {
		return
	}
	if _, ok := evt.(*CallbackDoneEvent); ok && c.handlers.OnDone != nil {
		c.handlers.OnDone(evt)
	}
}

func (c *Callback) Destroy() error { return c.conn.Delete(c) }
