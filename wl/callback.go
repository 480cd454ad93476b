package wl

import "github.com/bnema/wlcore/wire"

const callbackEventDone uint16 = 0

// CallbackInterface is the static descriptor for wl_callback: a one-shot
// object with a single event and no requests, used both as the sync
// barrier and as the frame-done notification generated code reuses for
// surface.frame.
var CallbackInterface = &Interface{
	Name:    "wl_callback",
	Version: 1,
	Events: []Signature{
		{Name: "done", Args: []wire.ArgType{wire.ArgUint}},
	},
}

// ClientCallback is the client-side proxy for a one-shot callback. OnDone
// fires exactly once, with the serial the server attached (a sync's
// serial is the server's event serial counter, not meaningful beyond
// ordering).
type ClientCallback struct {
	Proxy

	OnDone func(serial uint32)
}

func NewClientCallback(ctx *Context, id ObjectID) *ClientCallback {
	return &ClientCallback{Proxy: NewProxy(ctx, id, CallbackInterface, 1)}
}

func (c *ClientCallback) Dispatch(ev Event) error {
	if ev.Opcode == callbackEventDone && c.OnDone != nil {
		c.OnDone(ev.Uint(0))
	}
	return nil
}

// ServerCallback is the server-side resource for a one-shot callback. It
// has no requests: whoever sends done unregisters it right after
// (ServerDisplay.Dispatch for sync, compositor's surface frame handler for
// frame callbacks).
type ServerCallback struct {
	Resource
}

func NewServerCallback(ctx *Context, id ObjectID) *ServerCallback {
	return &ServerCallback{Resource: NewResource(ctx, id, CallbackInterface, 1)}
}

func (c *ServerCallback) SendDone(serial uint32) error {
	return c.SendEvent(callbackEventDone, []wire.Arg{{Type: wire.ArgUint, Uint: serial}})
}

func (c *ServerCallback) Dispatch(ev Event) error {
	return nil
}
