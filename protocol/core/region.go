package core

import (
	"github.com/bnema/wlcore/wire"
	"github.com/bnema/wlcore/wl"
)

var RegionInterface = &wl.Interface{
	Name:    "wl_region",
	Version: 1,
	Requests: []wl.Signature{
		{Name: "destroy", Args: nil},
		{Name: "add", Args: []wire.ArgType{wire.ArgInt, wire.ArgInt, wire.ArgInt, wire.ArgInt}},
		{Name: "subtract", Args: []wire.ArgType{wire.ArgInt, wire.ArgInt, wire.ArgInt, wire.ArgInt}},
	},
}

const (
	regionRequestDestroy  uint16 = 0
	regionRequestAdd      uint16 = 1
	regionRequestSubtract uint16 = 2
)

type ClientRegion struct {
	wl.Proxy
}

func NewClientRegion(ctx *wl.Context, id wl.ObjectID, version uint32) *ClientRegion {
	return &ClientRegion{Proxy: wl.NewProxy(ctx, id, RegionInterface, version)}
}

func (r *ClientRegion) Destroy() error {
	if err := r.SendRequest(regionRequestDestroy, nil); err != nil {
		return err
	}
	return r.Context().Unregister(r.ID())
}

func (r *ClientRegion) Add(x, y, width, height int32) error {
	return r.SendRequest(regionRequestAdd, []wire.Arg{
		{Type: wire.ArgInt, Int: x}, {Type: wire.ArgInt, Int: y},
		{Type: wire.ArgInt, Int: width}, {Type: wire.ArgInt, Int: height},
	})
}

func (r *ClientRegion) Subtract(x, y, width, height int32) error {
	return r.SendRequest(regionRequestSubtract, []wire.Arg{
		{Type: wire.ArgInt, Int: x}, {Type: wire.ArgInt, Int: y},
		{Type: wire.ArgInt, Int: width}, {Type: wire.ArgInt, Int: height},
	})
}

func (r *ClientRegion) Dispatch(wl.Event) error { return nil }

// ServerRegion receives the rectangles a client adds/subtracts without
// storing them. The core library doesn't interpret them (that's a compositor concern); it
// just forwards the calls.
type ServerRegion struct {
	wl.Resource

	OnAdd      func(x, y, width, height int32)
	OnSubtract func(x, y, width, height int32)
	OnDestroy  func()
}

func NewServerRegion(ctx *wl.Context, id wl.ObjectID, version uint32) *ServerRegion {
	return &ServerRegion{Resource: wl.NewResource(ctx, id, RegionInterface, version)}
}

func (r *ServerRegion) Dispatch(ev wl.Event) error {
	switch ev.Opcode {
	case regionRequestDestroy:
		if r.OnDestroy != nil {
			r.OnDestroy()
		}
		return r.Context().Unregister(r.ID())
	case regionRequestAdd:
		if r.OnAdd != nil {
			r.OnAdd(ev.Int(0), ev.Int(1), ev.Int(2), ev.Int(3))
		}
	case regionRequestSubtract:
		if r.OnSubtract != nil {
			r.OnSubtract(ev.Int(0), ev.Int(1), ev.Int(2), ev.Int(3))
		}
	}
	return nil
}

var SubcompositorInterface = &wl.Interface{
	Name:    "wl_subcompositor",
	Version: 1,
	Requests: []wl.Signature{
		{Name: "destroy", Args: nil},
		{Name: "get_subsurface", Args: []wire.ArgType{wire.ArgNewID, wire.ArgObject, wire.ArgObject}},
	},
}

const (
	subcompositorRequestDestroy       uint16 = 0
	subcompositorRequestGetSubsurface uint16 = 1
)

type ClientSubcompositor struct {
	wl.Proxy
}

func NewClientSubcompositor(ctx *wl.Context, id wl.ObjectID, version uint32) *ClientSubcompositor {
	return &ClientSubcompositor{Proxy: wl.NewProxy(ctx, id, SubcompositorInterface, version)}
}

func (s *ClientSubcompositor) GetSubsurface(surface, parent wl.ObjectID) (*ClientSubsurface, error) {
	ctx := s.Context()
	id, err := ctx.Alloc()
	if err != nil {
		return nil, err
	}
	sub := NewClientSubsurface(ctx, id, s.Version())
	if err := ctx.Register(id, sub); err != nil {
		return nil, err
	}
	err = s.SendRequest(subcompositorRequestGetSubsurface, []wire.Arg{
		{Type: wire.ArgNewID, NewID: id},
		{Type: wire.ArgObject, Object: surface},
		{Type: wire.ArgObject, Object: parent},
	})
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *ClientSubcompositor) Dispatch(wl.Event) error { return nil }

type ServerSubcompositor struct {
	wl.Resource

	OnGetSubsurface func(id, surface, parent wl.ObjectID) error
}

func NewServerSubcompositor(ctx *wl.Context, id wl.ObjectID, version uint32) *ServerSubcompositor {
	return &ServerSubcompositor{Resource: wl.NewResource(ctx, id, SubcompositorInterface, version)}
}

func (s *ServerSubcompositor) Dispatch(ev wl.Event) error {
	if ev.Opcode == subcompositorRequestGetSubsurface && s.OnGetSubsurface != nil {
		return s.OnGetSubsurface(ev.NewID(0), ev.Object(1), ev.Object(2))
	}
	return nil
}

var SubsurfaceInterface = &wl.Interface{
	Name:    "wl_subsurface",
	Version: 1,
	Requests: []wl.Signature{
		{Name: "destroy", Args: nil},
		{Name: "set_position", Args: []wire.ArgType{wire.ArgInt, wire.ArgInt}},
		{Name: "place_above", Args: []wire.ArgType{wire.ArgObject}},
		{Name: "place_below", Args: []wire.ArgType{wire.ArgObject}},
		{Name: "set_sync", Args: nil},
		{Name: "set_desync", Args: nil},
	},
}

const (
	subsurfaceRequestDestroy     uint16 = 0
	subsurfaceRequestSetPosition uint16 = 1
	subsurfaceRequestPlaceAbove  uint16 = 2
	subsurfaceRequestPlaceBelow  uint16 = 3
	subsurfaceRequestSetSync     uint16 = 4
	subsurfaceRequestSetDesync   uint16 = 5
)

type ClientSubsurface struct {
	wl.Proxy
}

func NewClientSubsurface(ctx *wl.Context, id wl.ObjectID, version uint32) *ClientSubsurface {
	return &ClientSubsurface{Proxy: wl.NewProxy(ctx, id, SubsurfaceInterface, version)}
}

func (s *ClientSubsurface) SetPosition(x, y int32) error {
	return s.SendRequest(subsurfaceRequestSetPosition, []wire.Arg{{Type: wire.ArgInt, Int: x}, {Type: wire.ArgInt, Int: y}})
}

func (s *ClientSubsurface) SetSync() error   { return s.SendRequest(subsurfaceRequestSetSync, nil) }
func (s *ClientSubsurface) SetDesync() error { return s.SendRequest(subsurfaceRequestSetDesync, nil) }

func (s *ClientSubsurface) Destroy() error {
	if err := s.SendRequest(subsurfaceRequestDestroy, nil); err != nil {
		return err
	}
	return s.Context().Unregister(s.ID())
}

func (s *ClientSubsurface) Dispatch(wl.Event) error { return nil }

type ServerSubsurface struct {
	wl.Resource

	OnSetPosition func(x, y int32)
	OnPlaceAbove  func(sibling wl.ObjectID)
	OnPlaceBelow  func(sibling wl.ObjectID)
	OnSetSync     func()
	OnSetDesync   func()
	OnDestroy     func()
}

func NewServerSubsurface(ctx *wl.Context, id wl.ObjectID, version uint32) *ServerSubsurface {
	return &ServerSubsurface{Resource: wl.NewResource(ctx, id, SubsurfaceInterface, version)}
}

func (s *ServerSubsurface) Dispatch(ev wl.Event) error {
	switch ev.Opcode {
	case subsurfaceRequestDestroy:
		if s.OnDestroy != nil {
			s.OnDestroy()
		}
		return s.Context().Unregister(s.ID())
	case subsurfaceRequestSetPosition:
		if s.OnSetPosition != nil {
			s.OnSetPosition(ev.Int(0), ev.Int(1))
		}
	case subsurfaceRequestPlaceAbove:
		if s.OnPlaceAbove != nil {
			s.OnPlaceAbove(ev.Object(0))
		}
	case subsurfaceRequestPlaceBelow:
		if s.OnPlaceBelow != nil {
			s.OnPlaceBelow(ev.Object(0))
		}
	case subsurfaceRequestSetSync:
		if s.OnSetSync != nil {
			s.OnSetSync()
		}
	case subsurfaceRequestSetDesync:
		if s.OnSetDesync != nil {
			s.OnSetDesync()
		}
	}
	return nil
}
