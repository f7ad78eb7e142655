// Package wloutput owns the Wayland connection, the per-output
// layer-surface lifecycle and the renderer that turns a resolved config
// into a committed buffer (§4.E/§4.G/§4.J).
package wloutput

import (
	"fmt"
	"log"

	"github.com/friedelschoen/wsbg/internal/buffercache"
	"github.com/friedelschoen/wsbg/internal/config"
	"github.com/friedelschoen/wsbg/internal/wlproto"
	"github.com/rajveermalviya/go-wayland/wayland"
)

// Resolver resolves a per-output config set, supplied by cmd/wsbg so
// this package never depends on the CLI layer beyond config.OutputRef.
// cmd/wsbg closes over the parsed option stream and a shared
// config.ImageStore so repeated calls share decoded images.
type Resolver func(out config.OutputRef, visibleWorkspace string) *config.ConfigSet

// Manager owns the registry-bound globals and every known output.
type Manager struct {
	conn     *wayland.Conn
	display  *wlproto.Display
	registry *wlproto.Registry

	compositor  *wlproto.Compositor
	shm         *wlproto.Shm
	layerShell  *wlproto.LayerShell
	viewporter  *wlproto.Viewporter
	singlePixel *wlproto.SinglePixelBufferManager
	fracScaleMgr *wlproto.FractionalScaleManager

	Cache    *buffercache.Cache
	Resolve  Resolver
	VisibleWorkspace func(outputName string) string

	outputs map[*wlproto.Output]*Output
}

// Connect opens the Wayland display, binds globals and performs the
// two round trips needed to learn every wl_output before the event loop
// starts. wlDisplay is forwarded to wayland.Connect verbatim ("" means
// $WAYLAND_DISPLAY).
func Connect(wlDisplay string) (*Manager, error) {
	conn, err := wayland.Connect(wlDisplay)
	if err != nil {
		return nil, fmt.Errorf("wloutput: connect: %w", err)
	}

	m := &Manager{conn: conn, outputs: map[*wlproto.Output]*Output{}}

	m.display = wlproto.NewDisplay(&wlproto.DisplayHandlers{
		OnError: func(evt wayland.Event) {
			e := evt.(*wlproto.DisplayErrorEvent)
			log.Fatalf("wloutput: display error on %v: [%d] %s", e.ObjectId, e.Code, e.Message)
		},
	})
	conn.Register(m.display)

	m.compositor = wlproto.NewCompositor(nil)
	m.shm = wlproto.NewShm(nil)
	m.layerShell = wlproto.NewLayerShell(nil)
	m.viewporter = wlproto.NewViewporter(nil)
	m.singlePixel = wlproto.NewSinglePixelBufferManager(nil)
	m.fracScaleMgr = wlproto.NewFractionalScaleManager(nil)

	reg := wayland.Registrar{m.compositor, m.shm, m.layerShell, m.viewporter, m.singlePixel, m.fracScaleMgr}

	m.registry = m.display.GetRegistry(&wlproto.RegistryHandlers{
		OnGlobal: func(evt wayland.Event) {
			e := evt.(*wlproto.RegistryGlobalEvent)
			if e.Interface == "wl_output" {
				m.bindOutput(e.Name, e.Version)
				return
			}
			reg.Handler(evt)
		},
		OnGlobalRemove: func(evt wayland.Event) {
			e := evt.(*wlproto.RegistryGlobalRemoveEvent)
			m.removeOutputByName(e.Name)
		},
	})

	m.roundtrip()
	m.roundtrip() // a second round trip lets bound wl_outputs finish their geometry/mode/done burst

	m.Cache = buffercache.New(&allocator{shm: m.shm, singlePixel: m.singlePixel})

	return m, nil
}

func (m *Manager) roundtrip() {
	done := make(chan struct{})
	cb := m.display.Sync(&wlproto.CallbackHandlers{OnDone: func(wayland.Event) { close(done) }})
	defer cb.Destroy()
	for {
		select {
		case <-done:
			return
		default:
			m.conn.Dispatch()
		}
	}
}

func (m *Manager) bindOutput(name, version uint32) {
	if version > 4 {
		version = 4
	}
	out := newOutput(m)
	wlOut := wlproto.NewOutput(out.handlers())
	if err := m.registry.Bind(name, "wl_output", version, wlOut); err != nil {
		log.Printf("wloutput: bind wl_output: %v", err)
		return
	}
	out.wlOutput = wlOut
	out.globalName = name
	m.outputs[wlOut] = out
}

func (m *Manager) removeOutputByName(name uint32) {
	for _, out := range m.outputs {
		if out.globalName == name {
			out.destroy()
			delete(m.outputs, out.wlOutput)
			return
		}
	}
}

// Fd returns the Wayland connection's file descriptor, for poll().
func (m *Manager) Fd() int { return m.conn.Fd() }

// Flush writes any pending outgoing requests to the socket.
func (m *Manager) Flush() error { return m.conn.Flush() }

// Dispatch processes events already buffered from a prior read without
// blocking.
func (m *Manager) Dispatch() error { return m.conn.Dispatch() }

// Outputs returns every currently known output.
func (m *Manager) Outputs() []*Output {
	outs := make([]*Output, 0, len(m.outputs))
	for _, o := range m.outputs {
		outs = append(outs, o)
	}
	return outs
}

// Close destroys every output's surface (releasing its buffer
// reference back to the cache) and closes the Wayland connection.
func (m *Manager) Close() error {
	for _, out := range m.outputs {
		out.destroy()
	}
	m.outputs = map[*wlproto.Output]*Output{}
	return m.conn.Close()
}

// ReconcileVisibility re-resolves every output whose visible workspace
// may have changed and marks it dirty if the active config differs.
func (m *Manager) ReconcileVisibility(changedOutputs []string) {
	changed := make(map[string]bool, len(changedOutputs))
	for _, o := range changedOutputs {
		changed[o] = true
	}
	for _, out := range m.outputs {
		if out.name == "" {
			continue
		}
		if len(changedOutputs) > 0 && !changed[out.name] {
			continue
		}
		out.reresolve()
	}
}
