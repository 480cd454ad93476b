package wl

import "github.com/bnema/wlcore/wire"

const (
	registryRequestBind uint16 = 0

	registryEventGlobal       uint16 = 0
	registryEventGlobalRemove uint16 = 1
)

// RegistryInterface is the static descriptor for wl_registry. bind's
// new_id is dynamic: the client names the interface and version it wants
// to bind, since the registry itself has no static idea what a given
// global's concrete type is (that lives in the generated protocol
// package).
var RegistryInterface = &Interface{
	Name:    "wl_registry",
	Version: 1,
	Requests: []Signature{
		{Name: "bind", Args: []wire.ArgType{wire.ArgUint, wire.ArgNewIDDynamic}},
	},
	Events: []Signature{
		{Name: "global", Args: []wire.ArgType{wire.ArgUint, wire.ArgString, wire.ArgUint}},
		{Name: "global_remove", Args: []wire.ArgType{wire.ArgUint}},
	},
}

// ClientRegistry is the client-side proxy for wl_registry. OnGlobal fires
// once per advertised global (in the order the server sent get_registry's
// reply frames); OnGlobalRemove fires when a global is withdrawn.
type ClientRegistry struct {
	Proxy

	OnGlobal       func(name uint32, iface string, version uint32)
	OnGlobalRemove func(name uint32)
}

func NewClientRegistry(ctx *Context, id ObjectID) *ClientRegistry {
	return &ClientRegistry{Proxy: NewProxy(ctx, id, RegistryInterface, 1)}
}

// Bind requests binding the global named name, of the given interface and
// version, to obj. obj must not yet be registered; Bind allocates nothing
// itself — it registers obj at obj.ID() (set by the caller via NewProxy on
// a freshly Alloc'd ID) and sends the bind request.
func (r *ClientRegistry) Bind(name uint32, iface string, version uint32, obj WireObject) error {
	ctx := r.Context()
	if err := ctx.Register(obj.ID(), obj); err != nil {
		return err
	}
	return ctx.Send(r.ID(), registryRequestBind, []wire.Arg{
		{Type: wire.ArgUint, Uint: name},
		{Type: wire.ArgNewIDDynamic, NewIDInterface: iface, NewIDVersion: version, NewID: obj.ID()},
	})
}

func (r *ClientRegistry) Dispatch(ev Event) error {
	switch ev.Opcode {
	case registryEventGlobal:
		if r.OnGlobal != nil {
			r.OnGlobal(ev.Uint(0), ev.String(1), ev.Uint(2))
		}
	case registryEventGlobalRemove:
		if r.OnGlobalRemove != nil {
			r.OnGlobalRemove(ev.Uint(0))
		}
	}
	return nil
}

// ServerRegistry is the server-side resource for wl_registry. The core
// library has no concept of concrete interface types, so advertising
// globals and answering bind are both done through compositor-supplied
// hooks.
type ServerRegistry struct {
	Resource

	// OnBind is invoked for every bind request: name identifies the
	// global, iface and version are what the client asked for, and newID
	// is the object ID the client wants its proxy registered at. The
	// compositor is responsible for constructing and registering the
	// concrete resource at newID.
	OnBind func(name uint32, iface string, version uint32, newID ObjectID) error
}

func NewServerRegistry(ctx *Context, id ObjectID) *ServerRegistry {
	return &ServerRegistry{Resource: NewResource(ctx, id, RegistryInterface, 1)}
}

// SendGlobal announces one global to the client.
func (r *ServerRegistry) SendGlobal(name uint32, iface string, version uint32) error {
	return r.SendEvent(registryEventGlobal, []wire.Arg{
		{Type: wire.ArgUint, Uint: name},
		{Type: wire.ArgString, String: iface},
		{Type: wire.ArgUint, Uint: version},
	})
}

// SendGlobalRemove withdraws a previously announced global.
func (r *ServerRegistry) SendGlobalRemove(name uint32) error {
	return r.SendEvent(registryEventGlobalRemove, []wire.Arg{{Type: wire.ArgUint, Uint: name}})
}

func (r *ServerRegistry) Dispatch(ev Event) error {
	if ev.Opcode != registryRequestBind {
		return nil
	}
	if r.OnBind == nil {
		return nil
	}
	return r.OnBind(ev.Uint(0), ev.NewIDInterface(1), ev.NewIDVersion(1), ev.NewID(1))
}
