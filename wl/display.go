package wl

import "github.com/bnema/wlcore/wire"

// DisplayObjectID is the well-known object ID every connection starts
// with: object 1 is always the Display, on both ends, before anything
// else is registered.
const DisplayObjectID ObjectID = 1

const (
	displayRequestSync        uint16 = 0
	displayRequestGetRegistry uint16 = 1

	displayEventError    uint16 = 0
	displayEventDeleteID uint16 = 1
)

// DisplayInterface is the static descriptor for wl_display, shared by the
// client and server role types below.
var DisplayInterface = &Interface{
	Name:    "wl_display",
	Version: 1,
	Requests: []Signature{
		{Name: "sync", Args: []wire.ArgType{wire.ArgNewID}},
		{Name: "get_registry", Args: []wire.ArgType{wire.ArgNewID}},
	},
	Events: []Signature{
		{Name: "error", Args: []wire.ArgType{wire.ArgObject, wire.ArgUint, wire.ArgString}},
		{Name: "delete_id", Args: []wire.ArgType{wire.ArgUint}},
	},
}

// displaySync sends a sync request for the given, already-registered
// callback object ID.
func (c *Context) displaySync(callbackID ObjectID) error {
	return c.Send(DisplayObjectID, displayRequestSync, []wire.Arg{{Type: wire.ArgNewID, NewID: callbackID}})
}

// ClientDisplay is the client-side view of object 1. It receives error and
// delete_id events; a fatal error is surfaced via OnError, delete_id is
// handled internally (the table entry is simply released).
type ClientDisplay struct {
	Proxy

	OnError func(objectID ObjectID, code uint32, message string)
}

// NewClientDisplay constructs object 1 on a fresh client Context. The
// caller still must ctx.Register(DisplayObjectID, display) before pumping.
func NewClientDisplay(ctx *Context) *ClientDisplay {
	return &ClientDisplay{Proxy: NewProxy(ctx, DisplayObjectID, DisplayInterface, 1)}
}

// Sync allocates a callback object, sends a sync request, and returns the
// proxy so the caller can set OnDone (or just call ctx.Roundtrip instead).
func (d *ClientDisplay) Sync() (*ClientCallback, error) {
	ctx := d.Context()
	id, err := ctx.Alloc()
	if err != nil {
		return nil, err
	}
	cb := NewClientCallback(ctx, id)
	if err := ctx.Register(id, cb); err != nil {
		return nil, err
	}
	if err := ctx.displaySync(id); err != nil {
		return nil, err
	}
	return cb, nil
}

// GetRegistry allocates a registry object, sends a get_registry request,
// registers the proxy, and returns it.
func (d *ClientDisplay) GetRegistry() (*ClientRegistry, error) {
	ctx := d.Context()
	id, err := ctx.Alloc()
	if err != nil {
		return nil, err
	}
	reg := NewClientRegistry(ctx, id)
	if err := ctx.Register(id, reg); err != nil {
		return nil, err
	}
	if err := ctx.Send(DisplayObjectID, displayRequestGetRegistry, []wire.Arg{{Type: wire.ArgNewID, NewID: id}}); err != nil {
		return nil, err
	}
	return reg, nil
}

func (d *ClientDisplay) Dispatch(ev Event) error {
	switch ev.Opcode {
	case displayEventError:
		if d.OnError != nil {
			d.OnError(ev.Object(0), ev.Uint(1), ev.String(2))
		}
		return nil
	case displayEventDeleteID:
		// The peer has already forgotten this ID; drop it from our own
		// table so it can be reused by a future new_id from us.
		_ = d.Context().table.Release(ev.Uint(0))
		return nil
	default:
		return nil
	}
}

// ServerDisplay is the server-side view of object 1: it answers sync with
// an immediate done event (every frame the client sent before sync has
// already been dispatched by the time Dispatch runs, satisfying the
// barrier) and answers get_registry by registering a ServerRegistry and
// invoking OnGetRegistry so the compositor can populate it with globals.
type ServerDisplay struct {
	Resource

	OnGetRegistry func(*ServerRegistry)
}

func NewServerDisplay(ctx *Context) *ServerDisplay {
	return &ServerDisplay{Resource: NewResource(ctx, DisplayObjectID, DisplayInterface, 1)}
}

// SendError reports a fatal protocol error to the client: the object that
// violated the protocol, a Coded error's numeric code, and a message.
func (d *ServerDisplay) SendError(objectID ObjectID, code uint32, message string) error {
	return d.SendEvent(displayEventError, []wire.Arg{
		{Type: wire.ArgObject, Object: objectID},
		{Type: wire.ArgUint, Uint: code},
		{Type: wire.ArgString, String: message},
	})
}

func (d *ServerDisplay) Dispatch(ev Event) error {
	ctx := d.Context()
	switch ev.Opcode {
	case displayRequestSync:
		id := ev.NewID(0)
		cb := NewServerCallback(ctx, id)
		if err := ctx.Register(id, cb); err != nil {
			return err
		}
		if err := cb.SendDone(ctx.NextSerial()); err != nil {
			return err
		}
		return ctx.Unregister(id)
	case displayRequestGetRegistry:
		id := ev.NewID(0)
		reg := NewServerRegistry(ctx, id)
		if err := ctx.Register(id, reg); err != nil {
			return err
		}
		if d.OnGetRegistry != nil {
			d.OnGetRegistry(reg)
		}
		return nil
	default:
		return nil
	}
}
