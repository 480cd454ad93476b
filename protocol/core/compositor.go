// Package core holds the hand-written, scanner-shaped stubs for the core
// Wayland interfaces (wl_compositor, wl_surface, wl_shm, wl_seat, ...). A
// scanner run (see cmd/wlscanner) against wayland.xml would regenerate
// files shaped exactly like these.
package core

import (
	"github.com/bnema/wlcore/wire"
	"github.com/bnema/wlcore/wl"
)

var CompositorInterface = &wl.Interface{
	Name:    "wl_compositor",
	Version: 4,
	Requests: []wl.Signature{
		{Name: "create_surface", Args: []wire.ArgType{wire.ArgNewID}},
		{Name: "create_region", Args: []wire.ArgType{wire.ArgNewID}},
	},
}

const (
	compositorRequestCreateSurface uint16 = 0
	compositorRequestCreateRegion  uint16 = 1
)

// ClientCompositor is the proxy for wl_compositor: a factory for surfaces
// and regions, with no events of its own.
type ClientCompositor struct {
	wl.Proxy
}

func NewClientCompositor(ctx *wl.Context, id wl.ObjectID, version uint32) *ClientCompositor {
	return &ClientCompositor{Proxy: wl.NewProxy(ctx, id, CompositorInterface, version)}
}

func (c *ClientCompositor) CreateSurface() (*ClientSurface, error) {
	ctx := c.Context()
	id, err := ctx.Alloc()
	if err != nil {
		return nil, err
	}
	surf := NewClientSurface(ctx, id, c.Version())
	if err := ctx.Register(id, surf); err != nil {
		return nil, err
	}
	if err := c.SendRequest(compositorRequestCreateSurface, []wire.Arg{{Type: wire.ArgNewID, NewID: id}}); err != nil {
		return nil, err
	}
	return surf, nil
}

func (c *ClientCompositor) CreateRegion() (*ClientRegion, error) {
	ctx := c.Context()
	id, err := ctx.Alloc()
	if err != nil {
		return nil, err
	}
	region := NewClientRegion(ctx, id, c.Version())
	if err := ctx.Register(id, region); err != nil {
		return nil, err
	}
	if err := c.SendRequest(compositorRequestCreateRegion, []wire.Arg{{Type: wire.ArgNewID, NewID: id}}); err != nil {
		return nil, err
	}
	return region, nil
}

func (c *ClientCompositor) Dispatch(wl.Event) error { return nil }

// ServerCompositor is the resource for wl_compositor. OnCreateSurface and
// OnCreateRegion let the compositor register the concrete resource it
// constructs for the client-chosen new_id; the global itself carries no
// other state.
type ServerCompositor struct {
	wl.Resource

	OnCreateSurface func(id wl.ObjectID) error
	OnCreateRegion  func(id wl.ObjectID) error
}

func NewServerCompositor(ctx *wl.Context, id wl.ObjectID, version uint32) *ServerCompositor {
	return &ServerCompositor{Resource: wl.NewResource(ctx, id, CompositorInterface, version)}
}

func (c *ServerCompositor) Dispatch(ev wl.Event) error {
	switch ev.Opcode {
	case compositorRequestCreateSurface:
		if c.OnCreateSurface != nil {
			return c.OnCreateSurface(ev.NewID(0))
		}
	case compositorRequestCreateRegion:
		if c.OnCreateRegion != nil {
			return c.OnCreateRegion(ev.NewID(0))
		}
	}
	return nil
}

var SurfaceInterface = &wl.Interface{
	Name:    "wl_surface",
	Version: 4,
	Requests: []wl.Signature{
		{Name: "destroy", Args: nil},
		{Name: "attach", Args: []wire.ArgType{wire.ArgObject, wire.ArgInt, wire.ArgInt}},
		{Name: "damage", Args: []wire.ArgType{wire.ArgInt, wire.ArgInt, wire.ArgInt, wire.ArgInt}},
		{Name: "frame", Args: []wire.ArgType{wire.ArgNewID}},
		{Name: "set_opaque_region", Args: []wire.ArgType{wire.ArgObject}},
		{Name: "set_input_region", Args: []wire.ArgType{wire.ArgObject}},
		{Name: "commit", Args: nil},
	},
	Events: []wl.Signature{
		{Name: "enter", Args: []wire.ArgType{wire.ArgObject}},
		{Name: "leave", Args: []wire.ArgType{wire.ArgObject}},
	},
}

const (
	surfaceRequestDestroy         uint16 = 0
	surfaceRequestAttach          uint16 = 1
	surfaceRequestDamage          uint16 = 2
	surfaceRequestFrame           uint16 = 3
	surfaceRequestSetOpaqueRegion uint16 = 4
	surfaceRequestSetInputRegion  uint16 = 5
	surfaceRequestCommit          uint16 = 6

	surfaceEventEnter uint16 = 0
	surfaceEventLeave uint16 = 1
)

// ClientSurface is the proxy for wl_surface.
type ClientSurface struct {
	wl.Proxy

	OnEnter func(output wl.ObjectID)
	OnLeave func(output wl.ObjectID)
}

func NewClientSurface(ctx *wl.Context, id wl.ObjectID, version uint32) *ClientSurface {
	return &ClientSurface{Proxy: wl.NewProxy(ctx, id, SurfaceInterface, version)}
}

func (s *ClientSurface) Destroy() error {
	if err := s.SendRequest(surfaceRequestDestroy, nil); err != nil {
		return err
	}
	return s.Context().Unregister(s.ID())
}

// Attach associates buffer (wl.ObjectID(0) for none) with this surface at
// the given offset, effective on the next Commit.
func (s *ClientSurface) Attach(buffer wl.ObjectID, x, y int32) error {
	return s.SendRequest(surfaceRequestAttach, []wire.Arg{
		{Type: wire.ArgObject, Object: buffer},
		{Type: wire.ArgInt, Int: x},
		{Type: wire.ArgInt, Int: y},
	})
}

func (s *ClientSurface) Damage(x, y, width, height int32) error {
	return s.SendRequest(surfaceRequestDamage, []wire.Arg{
		{Type: wire.ArgInt, Int: x}, {Type: wire.ArgInt, Int: y},
		{Type: wire.ArgInt, Int: width}, {Type: wire.ArgInt, Int: height},
	})
}

// Frame requests a one-shot done event the next time this surface's
// committed contents have been presented, the standard way a client
// paces its render loop to the compositor.
func (s *ClientSurface) Frame() (*wl.ClientCallback, error) {
	ctx := s.Context()
	id, err := ctx.Alloc()
	if err != nil {
		return nil, err
	}
	cb := wl.NewClientCallback(ctx, id)
	if err := ctx.Register(id, cb); err != nil {
		return nil, err
	}
	if err := s.SendRequest(surfaceRequestFrame, []wire.Arg{{Type: wire.ArgNewID, NewID: id}}); err != nil {
		return nil, err
	}
	return cb, nil
}

func (s *ClientSurface) SetOpaqueRegion(region wl.ObjectID) error {
	return s.SendRequest(surfaceRequestSetOpaqueRegion, []wire.Arg{{Type: wire.ArgObject, Object: region}})
}

func (s *ClientSurface) SetInputRegion(region wl.ObjectID) error {
	return s.SendRequest(surfaceRequestSetInputRegion, []wire.Arg{{Type: wire.ArgObject, Object: region}})
}

func (s *ClientSurface) Commit() error {
	return s.SendRequest(surfaceRequestCommit, nil)
}

func (s *ClientSurface) Dispatch(ev wl.Event) error {
	switch ev.Opcode {
	case surfaceEventEnter:
		if s.OnEnter != nil {
			s.OnEnter(ev.Object(0))
		}
	case surfaceEventLeave:
		if s.OnLeave != nil {
			s.OnLeave(ev.Object(0))
		}
	}
	return nil
}

// ServerSurface is the resource for wl_surface: the compositor's view of a
// client's drawable. It holds no pixel state itself — OnAttach/OnCommit
// hooks let the compositor track the pending and current buffer the way
// it chooses to.
type ServerSurface struct {
	wl.Resource

	OnAttach          func(buffer wl.ObjectID, x, y int32)
	OnDamage          func(x, y, width, height int32)
	OnFrame           func(callbackID wl.ObjectID) error
	OnSetOpaqueRegion func(region wl.ObjectID)
	OnSetInputRegion  func(region wl.ObjectID)
	OnCommit          func()
	OnDestroy         func()
}

func NewServerSurface(ctx *wl.Context, id wl.ObjectID, version uint32) *ServerSurface {
	return &ServerSurface{Resource: wl.NewResource(ctx, id, SurfaceInterface, version)}
}

func (s *ServerSurface) SendEnter(output wl.ObjectID) error {
	return s.Resource.SendEvent(surfaceEventEnter, []wire.Arg{{Type: wire.ArgObject, Object: output}})
}

func (s *ServerSurface) SendLeave(output wl.ObjectID) error {
	return s.Resource.SendEvent(surfaceEventLeave, []wire.Arg{{Type: wire.ArgObject, Object: output}})
}

func (s *ServerSurface) Dispatch(ev wl.Event) error {
	switch ev.Opcode {
	case surfaceRequestDestroy:
		if s.OnDestroy != nil {
			s.OnDestroy()
		}
		return s.Context().Unregister(s.ID())
	case surfaceRequestAttach:
		if s.OnAttach != nil {
			s.OnAttach(ev.Object(0), ev.Int(1), ev.Int(2))
		}
	case surfaceRequestDamage:
		if s.OnDamage != nil {
			s.OnDamage(ev.Int(0), ev.Int(1), ev.Int(2), ev.Int(3))
		}
	case surfaceRequestFrame:
		if s.OnFrame != nil {
			return s.OnFrame(ev.NewID(0))
		}
	case surfaceRequestSetOpaqueRegion:
		if s.OnSetOpaqueRegion != nil {
			s.OnSetOpaqueRegion(ev.Object(0))
		}
	case surfaceRequestSetInputRegion:
		if s.OnSetInputRegion != nil {
			s.OnSetInputRegion(ev.Object(0))
		}
	case surfaceRequestCommit:
		if s.OnCommit != nil {
			s.OnCommit()
		}
	}
	return nil
}
