package core

import (
	"github.com/bnema/wlcore/wire"
	"github.com/bnema/wlcore/wl"
)

var OutputInterface = &wl.Interface{
	Name:    "wl_output",
	Version: 3,
	Requests: []wl.Signature{
		{Name: "release", Args: nil},
	},
	Events: []wl.Signature{
		{Name: "geometry", Args: []wire.ArgType{wire.ArgInt, wire.ArgInt, wire.ArgInt, wire.ArgInt, wire.ArgInt, wire.ArgString, wire.ArgString, wire.ArgInt}},
		{Name: "mode", Args: []wire.ArgType{wire.ArgUint, wire.ArgInt, wire.ArgInt, wire.ArgInt}},
		{Name: "done", Args: nil},
		{Name: "scale", Args: []wire.ArgType{wire.ArgInt}},
	},
}

const (
	outputRequestRelease uint16 = 0

	outputEventGeometry uint16 = 0
	outputEventMode     uint16 = 1
	outputEventDone     uint16 = 2
	outputEventScale    uint16 = 3
)

// Mode flags, matching wl_output.mode.
const OutputModeCurrent uint32 = 1

type ClientOutput struct {
	wl.Proxy

	OnGeometry func(x, y, physW, physH, subpixel int32, make, model string, transform int32)
	OnMode     func(flags uint32, width, height, refresh int32)
	OnDone     func()
	OnScale    func(factor int32)
}

func NewClientOutput(ctx *wl.Context, id wl.ObjectID, version uint32) *ClientOutput {
	return &ClientOutput{Proxy: wl.NewProxy(ctx, id, OutputInterface, version)}
}

func (o *ClientOutput) Release() error {
	if err := o.SendRequest(outputRequestRelease, nil); err != nil {
		return err
	}
	return o.Context().Unregister(o.ID())
}

func (o *ClientOutput) Dispatch(ev wl.Event) error {
	switch ev.Opcode {
	case outputEventGeometry:
		if o.OnGeometry != nil {
			o.OnGeometry(ev.Int(0), ev.Int(1), ev.Int(2), ev.Int(3), ev.Int(4), ev.String(5), ev.String(6), ev.Int(7))
		}
	case outputEventMode:
		if o.OnMode != nil {
			o.OnMode(ev.Uint(0), ev.Int(1), ev.Int(2), ev.Int(3))
		}
	case outputEventDone:
		if o.OnDone != nil {
			o.OnDone()
		}
	case outputEventScale:
		if o.OnScale != nil {
			o.OnScale(ev.Int(0))
		}
	}
	return nil
}

type ServerOutput struct {
	wl.Resource

	OnRelease func()
}

func NewServerOutput(ctx *wl.Context, id wl.ObjectID, version uint32) *ServerOutput {
	return &ServerOutput{Resource: wl.NewResource(ctx, id, OutputInterface, version)}
}

func (o *ServerOutput) SendGeometry(x, y, physW, physH, subpixel int32, make, model string, transform int32) error {
	return o.Resource.SendEvent(outputEventGeometry, []wire.Arg{
		{Type: wire.ArgInt, Int: x}, {Type: wire.ArgInt, Int: y},
		{Type: wire.ArgInt, Int: physW}, {Type: wire.ArgInt, Int: physH},
		{Type: wire.ArgInt, Int: subpixel},
		{Type: wire.ArgString, String: make}, {Type: wire.ArgString, String: model},
		{Type: wire.ArgInt, Int: transform},
	})
}

func (o *ServerOutput) SendMode(flags uint32, width, height, refresh int32) error {
	return o.Resource.SendEvent(outputEventMode, []wire.Arg{
		{Type: wire.ArgUint, Uint: flags}, {Type: wire.ArgInt, Int: width},
		{Type: wire.ArgInt, Int: height}, {Type: wire.ArgInt, Int: refresh},
	})
}

func (o *ServerOutput) SendDone() error { return o.Resource.SendEvent(outputEventDone, nil) }

func (o *ServerOutput) SendScale(factor int32) error {
	return o.Resource.SendEvent(outputEventScale, []wire.Arg{{Type: wire.ArgInt, Int: factor}})
}

func (o *ServerOutput) Dispatch(ev wl.Event) error {
	if ev.Opcode == outputRequestRelease {
		if o.OnRelease != nil {
			o.OnRelease()
		}
		return o.Context().Unregister(o.ID())
	}
	return nil
}
