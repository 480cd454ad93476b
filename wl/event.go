package wl

import "github.com/bnema/wlcore/wire"

// Event is a decoded, ready-to-dispatch request (server side) or event
// (client side): the opcode that selected its signature and the typed
// arguments decoded from the frame's payload.
type Event struct {
	Opcode uint16
	Args   []wire.Arg
}

// Uint returns the i'th argument as a uint32. It panics if the argument
// isn't present — generated Dispatch methods only call this after matching
// on an opcode whose signature they know, so an out-of-range index is a
// programmer error, not a wire error.
func (e *Event) Uint(i int) uint32 { return e.Args[i].Uint }

func (e *Event) Int(i int) int32 { return e.Args[i].Int }

func (e *Event) Fixed(i int) wire.Fixed { return e.Args[i].Fixed }

func (e *Event) String(i int) string { return e.Args[i].String }

func (e *Event) Object(i int) ObjectID { return e.Args[i].Object }

func (e *Event) NewID(i int) ObjectID { return e.Args[i].NewID }

// NewIDInterface and NewIDVersion are only meaningful for a dynamic new_id
// argument (wire.ArgNewIDDynamic) — the registry's bind request is the
// only built-in case.
func (e *Event) NewIDInterface(i int) string { return e.Args[i].NewIDInterface }

func (e *Event) NewIDVersion(i int) uint32 { return e.Args[i].NewIDVersion }

func (e *Event) Array(i int) []byte { return e.Args[i].Array }

func (e *Event) FD(i int) int { return e.Args[i].Fd }

// WireObject is implemented by every object that can sit in a Context's
// object table: built-in (Display, Registry, Callback) and generated
// interface stubs alike.
type WireObject interface {
	ID() ObjectID
	// ArgTypes returns the signature for opcode in this object's receive
	// direction (events for a client-side Proxy, requests for a
	// server-side Resource), or false if there is no such opcode.
	ArgTypes(opcode uint16) ([]wire.ArgType, bool)
	// Dispatch handles one decoded incoming message. Implementations
	// switch on ev.Opcode and invoke the matching handler field.
	Dispatch(ev Event) error
}
