package wl

import "github.com/bnema/wlcore/wire"

// Proxy is the client-side base embedded by every generated interface
// stub. It holds the bookkeeping a Context needs to route outgoing
// requests and incoming events; generated types embed it and add typed
// request methods and handler fields.
type Proxy struct {
	ctx     *Context
	id      ObjectID
	iface   *Interface
	version uint32
}

// NewProxy returns the base to embed for id under the given interface; it
// does not register anything with ctx. Callers that allocate a fresh ID
// (rather than one handed down in an event) should use ctx.Alloc first.
func NewProxy(ctx *Context, id ObjectID, iface *Interface, version uint32) Proxy {
	return Proxy{ctx: ctx, id: id, iface: iface, version: version}
}

func (p *Proxy) ID() ObjectID       { return p.id }
func (p *Proxy) Context() *Context  { return p.ctx }
func (p *Proxy) Version() uint32    { return p.version }
func (p *Proxy) Interface() *Interface { return p.iface }

// ArgTypes returns the signature of the event at opcode: a Proxy receives
// events, so lookup goes through the interface's event table.
func (p *Proxy) ArgTypes(opcode uint16) ([]wire.ArgType, bool) {
	return p.iface.EventSignature(opcode)
}

// SendRequest encodes and enqueues a request on this proxy's object. It
// does not flush; callers batch requests and call Context.Flush (or rely
// on Pump) to put them on the wire.
func (p *Proxy) SendRequest(opcode uint16, args []wire.Arg) error {
	return p.ctx.Send(p.id, opcode, args)
}

// Resource is the server-side base embedded by every generated interface
// stub. It mirrors Proxy but receives requests and sends events.
type Resource struct {
	ctx     *Context
	id      ObjectID
	iface   *Interface
	version uint32
}

func NewResource(ctx *Context, id ObjectID, iface *Interface, version uint32) Resource {
	return Resource{ctx: ctx, id: id, iface: iface, version: version}
}

func (r *Resource) ID() ObjectID        { return r.id }
func (r *Resource) Context() *Context   { return r.ctx }
func (r *Resource) Version() uint32     { return r.version }
func (r *Resource) Interface() *Interface { return r.iface }

// ArgTypes returns the signature of the request at opcode: a Resource
// receives requests, so lookup goes through the interface's request table.
func (r *Resource) ArgTypes(opcode uint16) ([]wire.ArgType, bool) {
	return r.iface.RequestSignature(opcode)
}

// SendEvent encodes and enqueues an event on this resource's object.
func (r *Resource) SendEvent(opcode uint16, args []wire.Arg) error {
	return r.ctx.Send(r.id, opcode, args)
}
