package wl

import (
	"errors"
	"fmt"

	"github.com/bnema/wlcore/internal/objtab"
	"github.com/bnema/wlcore/internal/sockconn"
	"github.com/bnema/wlcore/wire"
	"github.com/bnema/wlcore/wlerr"
)

// Role distinguishes which end of a connection a Context drives: it picks
// the object ID range (internal/objtab.NewClientTable vs
// NewServerTable) and whether Unregister announces deletions back to the
// peer (servers own delete_id; clients only ever receive it).
type Role int

const (
	RoleClient Role = iota
	RoleServer
)

// Context is the dispatcher (C4): one per connection, owning the object
// table and the underlying socket, decoding and routing frames to the
// WireObject each targets, and encoding outgoing requests/events.
//
// A Context is not safe for concurrent use; each connection is pumped from
// a single goroutine, matching the single-threaded cooperative model
// description in the Purpose & Scope section.
type Context struct {
	role   Role
	conn   *sockconn.Conn
	table  *objtab.Table
	serial uint32
}

// NewContext wraps conn for role, with a fresh object table sized for that
// role's ID range.
func NewContext(role Role, conn *sockconn.Conn) *Context {
	var table *objtab.Table
	if role == RoleServer {
		table = objtab.NewServerTable()
	} else {
		table = objtab.NewClientTable()
	}
	return &Context{role: role, conn: conn, table: table}
}

func (c *Context) Role() Role          { return c.role }
func (c *Context) Conn() *sockconn.Conn { return c.conn }

// NextSerial returns a fresh, monotonically increasing serial number for
// events that carry one (e.g. pointer button/motion serials).
func (c *Context) NextSerial() uint32 {
	c.serial++
	return c.serial
}

// Alloc reserves a fresh object ID in this context's range.
func (c *Context) Alloc() (ObjectID, error) {
	id, err := c.table.Alloc()
	if err != nil {
		return 0, &wlerr.ResourceExhausted{Err: err}
	}
	return id, nil
}

// Register adds obj to the object table at id. It is an error to register
// over a still-live ID — that is a malformed new_id from the peer.
func (c *Context) Register(id ObjectID, obj WireObject) error {
	if err := c.table.Register(id, obj); err != nil {
		return &wlerr.Malformed{Err: err}
	}
	return nil
}

// Unregister removes id from the table. On a server Context this also
// sends the Display.delete_id event, so the client may recycle the ID;
// clients never announce deletions (they only ever receive delete_id).
func (c *Context) Unregister(id ObjectID) error {
	if err := c.table.Release(id); err != nil {
		return &wlerr.UnknownObject{ID: id}
	}
	if c.role == RoleServer {
		return c.Send(DisplayObjectID, displayEventDeleteID, []wire.Arg{{Type: wire.ArgUint, Uint: id}})
	}
	return nil
}

// ObjectSnapshot is one live object table entry, as reported by Snapshot.
type ObjectSnapshot struct {
	ID        ObjectID
	Interface string
	Version   uint32
}

// Snapshot returns every currently-registered object's ID and interface,
// for diagnostic dumps (see compositor/snapshot). It takes no lock beyond
// what the object table itself provides, matching the rule that a Context
// is only ever touched from its own pump goroutine — a caller on another
// goroutine must hand off through that goroutine instead of calling this
// directly.
func (c *Context) Snapshot() []ObjectSnapshot {
	var out []ObjectSnapshot
	c.table.Each(func(id ObjectID, obj any) {
		wo, ok := obj.(WireObject)
		if !ok {
			return
		}
		entry := ObjectSnapshot{ID: id}
		switch o := obj.(type) {
		case interface{ Interface() *Interface }:
			if iface := o.Interface(); iface != nil {
				entry.Interface = iface.Name
				entry.Version = iface.Version
			}
		default:
			entry.Interface = fmt.Sprintf("%T", wo)
		}
		out = append(out, entry)
	})
	return out
}

// Resolve looks up the live WireObject at id.
func (c *Context) Resolve(id ObjectID) (WireObject, bool) {
	obj, ok := c.table.Resolve(id)
	if !ok {
		return nil, false
	}
	wo, ok := obj.(WireObject)
	return wo, ok
}

// Send encodes one request or event and enqueues it for the next Flush.
func (c *Context) Send(target ObjectID, opcode uint16, args []wire.Arg) error {
	data, fds, err := wire.Encode(target, opcode, args)
	if err != nil {
		return &wlerr.Malformed{Err: err}
	}
	c.conn.Enqueue(data, fds)
	return nil
}

// Flush writes any queued outbound frames. A partial write (ErrWouldBlock)
// is not an error here: the remainder stays queued for the next Flush.
func (c *Context) Flush() error {
	err := c.conn.Flush()
	if err != nil && errors.Is(err, sockconn.ErrWouldBlock) {
		return nil
	}
	return err
}

// dispatchAvailable decodes and dispatches every complete frame currently
// buffered, stopping when fewer than a full frame remains.
func (c *Context) dispatchAvailable() error {
	for {
		buf := c.conn.InboundBytes()
		if len(buf) < wire.HeaderSize {
			return nil
		}
		hdr, err := wire.DecodeHeader(buf)
		if err != nil {
			if errors.Is(err, wire.ErrNeedMore) {
				return nil
			}
			return &wlerr.Malformed{Err: err}
		}
		if len(buf) < int(hdr.Size) {
			return nil
		}
		payload := buf[wire.HeaderSize:hdr.Size]

		obj, ok := c.Resolve(hdr.TargetID)
		if !ok {
			c.conn.ConsumeFrame(int(hdr.Size), 0)
			return &wlerr.UnknownObject{ID: hdr.TargetID}
		}
		sig, ok := obj.ArgTypes(hdr.Opcode)
		if !ok {
			c.conn.ConsumeFrame(int(hdr.Size), 0)
			return &wlerr.InvalidMethod{ObjectID: hdr.TargetID, Opcode: hdr.Opcode}
		}

		fdQueue := c.conn.InboundFDs()
		args, remaining, err := wire.DecodeArgs(payload, sig, fdQueue)
		consumedFDs := len(fdQueue) - len(remaining)
		if err != nil {
			c.conn.ConsumeFrame(int(hdr.Size), consumedFDs)
			return &wlerr.Malformed{Err: err}
		}
		c.conn.ConsumeFrame(int(hdr.Size), consumedFDs)

		if err := obj.Dispatch(Event{Opcode: hdr.Opcode, Args: args}); err != nil {
			return err
		}
	}
}

// Pump performs one iteration of the connection's event loop: flush
// pending output, drain every frame the peer has sent so far without
// blocking, and dispatch all of them. It returns nil if the peer has
// nothing more to say right now (EAGAIN), or the first fatal error
// encountered.
func (c *Context) Pump() error {
	if err := c.Flush(); err != nil {
		return &wlerr.TransportLost{Err: err}
	}
	for {
		err := c.conn.RecvOnce()
		if err != nil {
			if errors.Is(err, sockconn.ErrWouldBlock) {
				break
			}
			return &wlerr.TransportLost{Err: err}
		}
	}
	return c.dispatchAvailable()
}

// RunTill pumps the connection until predicate reports true or a fatal
// error occurs. Callers typically close over a flag flipped by an event
// handler (e.g. a sync callback's OnDone).
func (c *Context) RunTill(predicate func() bool) error {
	for !predicate() {
		if err := c.Pump(); err != nil {
			return err
		}
	}
	return nil
}

// Roundtrip blocks until every request sent before it returns has been
// processed by the peer: it allocates a one-shot callback, issues
// Display.sync, and pumps until that callback's done event arrives. It is
// the Context-level equivalent of wl_display_roundtrip.
func (c *Context) Roundtrip() error {
	id, err := c.Alloc()
	if err != nil {
		return err
	}
	cb := NewClientCallback(c, id)
	done := false
	cb.OnDone = func(uint32) { done = true }
	if err := c.Register(id, cb); err != nil {
		return err
	}
	if err := c.displaySync(id); err != nil {
		return err
	}
	return c.RunTill(func() bool { return done })
}
