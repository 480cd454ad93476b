package core

import (
	"github.com/bnema/wlcore/wire"
	"github.com/bnema/wlcore/wl"
)

var ShellInterface = &wl.Interface{
	Name:    "wl_shell",
	Version: 1,
	Requests: []wl.Signature{
		{Name: "get_shell_surface", Args: []wire.ArgType{wire.ArgNewID, wire.ArgObject}},
	},
}

const shellRequestGetShellSurface uint16 = 0

type ClientShell struct {
	wl.Proxy
}

func NewClientShell(ctx *wl.Context, id wl.ObjectID, version uint32) *ClientShell {
	return &ClientShell{Proxy: wl.NewProxy(ctx, id, ShellInterface, version)}
}

func (s *ClientShell) GetShellSurface(surface wl.ObjectID) (*ClientShellSurface, error) {
	ctx := s.Context()
	id, err := ctx.Alloc()
	if err != nil {
		return nil, err
	}
	shsurf := NewClientShellSurface(ctx, id, s.Version())
	if err := ctx.Register(id, shsurf); err != nil {
		return nil, err
	}
	err = s.SendRequest(shellRequestGetShellSurface, []wire.Arg{
		{Type: wire.ArgNewID, NewID: id}, {Type: wire.ArgObject, Object: surface},
	})
	if err != nil {
		return nil, err
	}
	return shsurf, nil
}

func (s *ClientShell) Dispatch(wl.Event) error { return nil }

type ServerShell struct {
	wl.Resource

	OnGetShellSurface func(id, surface wl.ObjectID) error
}

func NewServerShell(ctx *wl.Context, id wl.ObjectID, version uint32) *ServerShell {
	return &ServerShell{Resource: wl.NewResource(ctx, id, ShellInterface, version)}
}

func (s *ServerShell) Dispatch(ev wl.Event) error {
	if ev.Opcode == shellRequestGetShellSurface && s.OnGetShellSurface != nil {
		return s.OnGetShellSurface(ev.NewID(0), ev.Object(1))
	}
	return nil
}

// Resize edges, matching wl_shell_surface.resize.
const (
	ShellSurfaceResizeNone       uint32 = 0
	ShellSurfaceResizeTop        uint32 = 1
	ShellSurfaceResizeBottom     uint32 = 2
	ShellSurfaceResizeLeft       uint32 = 4
	ShellSurfaceResizeRight      uint32 = 8
)

var ShellSurfaceInterface = &wl.Interface{
	Name:    "wl_shell_surface",
	Version: 1,
	Requests: []wl.Signature{
		{Name: "pong", Args: []wire.ArgType{wire.ArgUint}},
		{Name: "move", Args: []wire.ArgType{wire.ArgObject, wire.ArgUint}},
		{Name: "resize", Args: []wire.ArgType{wire.ArgObject, wire.ArgUint, wire.ArgUint}},
		{Name: "set_toplevel", Args: nil},
		{Name: "set_transient", Args: []wire.ArgType{wire.ArgObject, wire.ArgInt, wire.ArgInt, wire.ArgUint}},
		{Name: "set_fullscreen", Args: []wire.ArgType{wire.ArgUint, wire.ArgUint, wire.ArgObject}},
		{Name: "set_popup", Args: []wire.ArgType{wire.ArgObject, wire.ArgUint, wire.ArgObject, wire.ArgInt, wire.ArgInt, wire.ArgUint}},
		{Name: "set_maximized", Args: []wire.ArgType{wire.ArgObject}},
		{Name: "set_title", Args: []wire.ArgType{wire.ArgString}},
		{Name: "set_class", Args: []wire.ArgType{wire.ArgString}},
	},
	Events: []wl.Signature{
		{Name: "ping", Args: []wire.ArgType{wire.ArgUint}},
		{Name: "configure", Args: []wire.ArgType{wire.ArgUint, wire.ArgInt, wire.ArgInt}},
		{Name: "popup_done", Args: nil},
	},
}

const (
	shellSurfaceRequestPong          uint16 = 0
	shellSurfaceRequestMove          uint16 = 1
	shellSurfaceRequestResize        uint16 = 2
	shellSurfaceRequestSetToplevel   uint16 = 3
	shellSurfaceRequestSetTransient  uint16 = 4
	shellSurfaceRequestSetFullscreen uint16 = 5
	shellSurfaceRequestSetPopup      uint16 = 6
	shellSurfaceRequestSetMaximized  uint16 = 7
	shellSurfaceRequestSetTitle      uint16 = 8
	shellSurfaceRequestSetClass      uint16 = 9

	shellSurfaceEventPing      uint16 = 0
	shellSurfaceEventConfigure uint16 = 1
	shellSurfaceEventPopupDone uint16 = 2
)

// ClientShellSurface answers ping with pong automatically — every
// implementation is required to, and forgetting to is the single most
// common way a client gets disconnected as unresponsive — unless the
// caller overrides OnPing.
type ClientShellSurface struct {
	wl.Proxy

	OnPing      func(serial uint32)
	OnConfigure func(edges uint32, width, height int32)
	OnPopupDone func()
}

func NewClientShellSurface(ctx *wl.Context, id wl.ObjectID, version uint32) *ClientShellSurface {
	return &ClientShellSurface{Proxy: wl.NewProxy(ctx, id, ShellSurfaceInterface, version)}
}

func (s *ClientShellSurface) Pong(serial uint32) error {
	return s.SendRequest(shellSurfaceRequestPong, []wire.Arg{{Type: wire.ArgUint, Uint: serial}})
}

func (s *ClientShellSurface) SetToplevel() error {
	return s.SendRequest(shellSurfaceRequestSetToplevel, nil)
}

func (s *ClientShellSurface) SetTitle(title string) error {
	return s.SendRequest(shellSurfaceRequestSetTitle, []wire.Arg{{Type: wire.ArgString, String: title}})
}

func (s *ClientShellSurface) SetClass(class string) error {
	return s.SendRequest(shellSurfaceRequestSetClass, []wire.Arg{{Type: wire.ArgString, String: class}})
}

func (s *ClientShellSurface) Move(seat wl.ObjectID, serial uint32) error {
	return s.SendRequest(shellSurfaceRequestMove, []wire.Arg{{Type: wire.ArgObject, Object: seat}, {Type: wire.ArgUint, Uint: serial}})
}

func (s *ClientShellSurface) Resize(seat wl.ObjectID, serial, edges uint32) error {
	return s.SendRequest(shellSurfaceRequestResize, []wire.Arg{
		{Type: wire.ArgObject, Object: seat}, {Type: wire.ArgUint, Uint: serial}, {Type: wire.ArgUint, Uint: edges},
	})
}

func (s *ClientShellSurface) Dispatch(ev wl.Event) error {
	switch ev.Opcode {
	case shellSurfaceEventPing:
		serial := ev.Uint(0)
		if s.OnPing != nil {
			s.OnPing(serial)
		} else {
			return s.Pong(serial)
		}
	case shellSurfaceEventConfigure:
		if s.OnConfigure != nil {
			s.OnConfigure(ev.Uint(0), ev.Int(1), ev.Int(2))
		}
	case shellSurfaceEventPopupDone:
		if s.OnPopupDone != nil {
			s.OnPopupDone()
		}
	}
	return nil
}

type ServerShellSurface struct {
	wl.Resource

	OnPong          func(serial uint32)
	OnMove          func(seat wl.ObjectID, serial uint32)
	OnResize        func(seat wl.ObjectID, serial, edges uint32)
	OnSetToplevel   func()
	OnSetTransient  func(parent wl.ObjectID, x, y int32, flags uint32)
	OnSetFullscreen func(method, framerate uint32, output wl.ObjectID)
	OnSetMaximized  func(output wl.ObjectID)
	OnSetTitle      func(title string)
	OnSetClass      func(class string)
}

func NewServerShellSurface(ctx *wl.Context, id wl.ObjectID, version uint32) *ServerShellSurface {
	return &ServerShellSurface{Resource: wl.NewResource(ctx, id, ShellSurfaceInterface, version)}
}

func (s *ServerShellSurface) SendPing(serial uint32) error {
	return s.Resource.SendEvent(shellSurfaceEventPing, []wire.Arg{{Type: wire.ArgUint, Uint: serial}})
}

func (s *ServerShellSurface) SendConfigure(edges uint32, width, height int32) error {
	return s.Resource.SendEvent(shellSurfaceEventConfigure, []wire.Arg{
		{Type: wire.ArgUint, Uint: edges}, {Type: wire.ArgInt, Int: width}, {Type: wire.ArgInt, Int: height},
	})
}

func (s *ServerShellSurface) SendPopupDone() error {
	return s.Resource.SendEvent(shellSurfaceEventPopupDone, nil)
}

func (s *ServerShellSurface) Dispatch(ev wl.Event) error {
	switch ev.Opcode {
	case shellSurfaceRequestPong:
		if s.OnPong != nil {
			s.OnPong(ev.Uint(0))
		}
	case shellSurfaceRequestMove:
		if s.OnMove != nil {
			s.OnMove(ev.Object(0), ev.Uint(1))
		}
	case shellSurfaceRequestResize:
		if s.OnResize != nil {
			s.OnResize(ev.Object(0), ev.Uint(1), ev.Uint(2))
		}
	case shellSurfaceRequestSetToplevel:
		if s.OnSetToplevel != nil {
			s.OnSetToplevel()
		}
	case shellSurfaceRequestSetTransient:
		if s.OnSetTransient != nil {
			s.OnSetTransient(ev.Object(0), ev.Int(1), ev.Int(2), ev.Uint(3))
		}
	case shellSurfaceRequestSetFullscreen:
		if s.OnSetFullscreen != nil {
			s.OnSetFullscreen(ev.Uint(0), ev.Uint(1), ev.Object(2))
		}
	case shellSurfaceRequestSetMaximized:
		if s.OnSetMaximized != nil {
			s.OnSetMaximized(ev.Object(0))
		}
	case shellSurfaceRequestSetTitle:
		if s.OnSetTitle != nil {
			s.OnSetTitle(ev.String(0))
		}
	case shellSurfaceRequestSetClass:
		if s.OnSetClass != nil {
			s.OnSetClass(ev.String(0))
		}
	}
	return nil
}
