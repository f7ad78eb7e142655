package wlproto

import "github.com/rajveermalviya/go-wayland/wayland"

type OutputSubpixel int32
type OutputTransform int32

// Output is wl_output.
type Output struct {
	id       wayland.ProxyId
	conn     *wayland.Conn
	handlers *OutputHandlers
}

type OutputHandlers struct {
	OnGeometry    func(evt wayland.Event)
	OnMode        func(evt wayland.Event)
	OnDone        func(evt wayland.Event)
	OnScale       func(evt wayland.Event)
	OnName        func(evt wayland.Event)
	OnDescription func(evt wayland.Event)
}

type OutputGeometryEvent struct {
	X, Y                            int32
	PhysicalWidth, PhysicalHeight   int32
	Subpixel                        OutputSubpixel
	Make, Model                     string
	Transform                       OutputTransform
}

type OutputModeEvent struct {
	Flags   uint32
	Width   int32
	Height  int32
	Refresh int32
}

type OutputDoneEvent struct{}

type OutputScaleEvent struct {
	Factor int32
}

type OutputNameEvent struct {
	Name string
}

type OutputDescriptionEvent struct {
	Description string
}

func NewOutput(handlers *OutputHandlers) *Output { return &Output{handlers: handlers} }

func (o *Output) Id() wayland.ProxyId      { return o.id }
func (o *Output) SetId(id wayland.ProxyId) { o.id = id }
func (o *Output) SetConn(cn *wayland.Conn) { o.conn = cn }
func (o *Output) Interface() string        { return "wl_output" }
func (o *Output) Version() uint32          { return 4 }

func (o *Output) Dispatch(evt wayland.Event) {
	if o.handlers == nil {
		return
	}
	switch e := evt.(type) {
	case *OutputGeometryEvent:
		if o.handlers.OnGeometry != nil {
			o.handlers.OnGeometry(e)
		}
	case *OutputModeEvent:
		if o.handlers.OnMode != nil {
			o.handlers.OnMode(e)
		}
	case *OutputDoneEvent:
		if o.handlers.OnDone != nil {
			o.handlers.OnDone(e)
		}
	case *OutputScaleEvent:
		if o.handlers.OnScale != nil {
			o.handlers.OnScale(e)
		}
	case *OutputNameEvent:
		if o.handlers.OnName != nil {
			o.handlers.OnName(e)
		}
	case *OutputDescriptionEvent:
		if o.handlers.OnDescription != nil {
			o.handlers.OnDescription(e)
		}
	}
}

func (o *Output) Release() error { return o.conn.Delete(o) }
