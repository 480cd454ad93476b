package core

import (
	"github.com/bnema/wlcore/wire"
	"github.com/bnema/wlcore/wl"
)

// Capability bits, matching wl_seat.capability.
const (
	SeatCapabilityPointer  uint32 = 1
	SeatCapabilityKeyboard uint32 = 2
	SeatCapabilityTouch    uint32 = 4
)

var SeatInterface = &wl.Interface{
	Name:    "wl_seat",
	Version: 5,
	Requests: []wl.Signature{
		{Name: "get_pointer", Args: []wire.ArgType{wire.ArgNewID}},
		{Name: "get_keyboard", Args: []wire.ArgType{wire.ArgNewID}},
		{Name: "get_touch", Args: []wire.ArgType{wire.ArgNewID}},
	},
	Events: []wl.Signature{
		{Name: "capabilities", Args: []wire.ArgType{wire.ArgUint}},
		{Name: "name", Args: []wire.ArgType{wire.ArgString}},
	},
}

const (
	seatRequestGetPointer  uint16 = 0
	seatRequestGetKeyboard uint16 = 1
	seatRequestGetTouch    uint16 = 2

	seatEventCapabilities uint16 = 0
	seatEventName         uint16 = 1
)

type ClientSeat struct {
	wl.Proxy

	OnCapabilities func(caps uint32)
	OnName         func(name string)
}

func NewClientSeat(ctx *wl.Context, id wl.ObjectID, version uint32) *ClientSeat {
	return &ClientSeat{Proxy: wl.NewProxy(ctx, id, SeatInterface, version)}
}

func (s *ClientSeat) GetPointer() (*ClientPointer, error) {
	ctx := s.Context()
	id, err := ctx.Alloc()
	if err != nil {
		return nil, err
	}
	p := NewClientPointer(ctx, id, s.Version())
	if err := ctx.Register(id, p); err != nil {
		return nil, err
	}
	if err := s.SendRequest(seatRequestGetPointer, []wire.Arg{{Type: wire.ArgNewID, NewID: id}}); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ClientSeat) GetKeyboard() (*ClientKeyboard, error) {
	ctx := s.Context()
	id, err := ctx.Alloc()
	if err != nil {
		return nil, err
	}
	k := NewClientKeyboard(ctx, id, s.Version())
	if err := ctx.Register(id, k); err != nil {
		return nil, err
	}
	if err := s.SendRequest(seatRequestGetKeyboard, []wire.Arg{{Type: wire.ArgNewID, NewID: id}}); err != nil {
		return nil, err
	}
	return k, nil
}

func (s *ClientSeat) GetTouch() (*ClientTouch, error) {
	ctx := s.Context()
	id, err := ctx.Alloc()
	if err != nil {
		return nil, err
	}
	t := NewClientTouch(ctx, id, s.Version())
	if err := ctx.Register(id, t); err != nil {
		return nil, err
	}
	if err := s.SendRequest(seatRequestGetTouch, []wire.Arg{{Type: wire.ArgNewID, NewID: id}}); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *ClientSeat) Dispatch(ev wl.Event) error {
	switch ev.Opcode {
	case seatEventCapabilities:
		if s.OnCapabilities != nil {
			s.OnCapabilities(ev.Uint(0))
		}
	case seatEventName:
		if s.OnName != nil {
			s.OnName(ev.String(0))
		}
	}
	return nil
}

type ServerSeat struct {
	wl.Resource

	OnGetPointer  func(id wl.ObjectID) error
	OnGetKeyboard func(id wl.ObjectID) error
	OnGetTouch    func(id wl.ObjectID) error
}

func NewServerSeat(ctx *wl.Context, id wl.ObjectID, version uint32) *ServerSeat {
	return &ServerSeat{Resource: wl.NewResource(ctx, id, SeatInterface, version)}
}

func (s *ServerSeat) SendCapabilities(caps uint32) error {
	return s.Resource.SendEvent(seatEventCapabilities, []wire.Arg{{Type: wire.ArgUint, Uint: caps}})
}

func (s *ServerSeat) SendName(name string) error {
	return s.Resource.SendEvent(seatEventName, []wire.Arg{{Type: wire.ArgString, String: name}})
}

func (s *ServerSeat) Dispatch(ev wl.Event) error {
	switch ev.Opcode {
	case seatRequestGetPointer:
		if s.OnGetPointer != nil {
			return s.OnGetPointer(ev.NewID(0))
		}
	case seatRequestGetKeyboard:
		if s.OnGetKeyboard != nil {
			return s.OnGetKeyboard(ev.NewID(0))
		}
	case seatRequestGetTouch:
		if s.OnGetTouch != nil {
			return s.OnGetTouch(ev.NewID(0))
		}
	}
	return nil
}

// Pointer button states, matching wl_pointer.button_state.
const (
	PointerButtonStateReleased uint32 = 0
	PointerButtonStatePressed  uint32 = 1
)

var PointerInterface = &wl.Interface{
	Name:    "wl_pointer",
	Version: 5,
	Requests: []wl.Signature{
		{Name: "set_cursor", Args: []wire.ArgType{wire.ArgUint, wire.ArgObject, wire.ArgInt, wire.ArgInt}},
		{Name: "release", Args: nil},
	},
	Events: []wl.Signature{
		{Name: "enter", Args: []wire.ArgType{wire.ArgUint, wire.ArgObject, wire.ArgFixed, wire.ArgFixed}},
		{Name: "leave", Args: []wire.ArgType{wire.ArgUint, wire.ArgObject}},
		{Name: "motion", Args: []wire.ArgType{wire.ArgUint, wire.ArgFixed, wire.ArgFixed}},
		{Name: "button", Args: []wire.ArgType{wire.ArgUint, wire.ArgUint, wire.ArgUint, wire.ArgUint}},
		{Name: "axis", Args: []wire.ArgType{wire.ArgUint, wire.ArgUint, wire.ArgFixed}},
	},
}

const (
	pointerRequestSetCursor uint16 = 0
	pointerRequestRelease   uint16 = 1

	pointerEventEnter  uint16 = 0
	pointerEventLeave  uint16 = 1
	pointerEventMotion uint16 = 2
	pointerEventButton uint16 = 3
	pointerEventAxis   uint16 = 4
)

type ClientPointer struct {
	wl.Proxy

	OnEnter  func(serial uint32, surface wl.ObjectID, x, y wire.Fixed)
	OnLeave  func(serial uint32, surface wl.ObjectID)
	OnMotion func(time uint32, x, y wire.Fixed)
	OnButton func(serial, time, button, state uint32)
	OnAxis   func(time, axis uint32, value wire.Fixed)
}

func NewClientPointer(ctx *wl.Context, id wl.ObjectID, version uint32) *ClientPointer {
	return &ClientPointer{Proxy: wl.NewProxy(ctx, id, PointerInterface, version)}
}

func (p *ClientPointer) SetCursor(serial uint32, surface wl.ObjectID, hotspotX, hotspotY int32) error {
	return p.SendRequest(pointerRequestSetCursor, []wire.Arg{
		{Type: wire.ArgUint, Uint: serial},
		{Type: wire.ArgObject, Object: surface},
		{Type: wire.ArgInt, Int: hotspotX}, {Type: wire.ArgInt, Int: hotspotY},
	})
}

func (p *ClientPointer) Release() error {
	if err := p.SendRequest(pointerRequestRelease, nil); err != nil {
		return err
	}
	return p.Context().Unregister(p.ID())
}

func (p *ClientPointer) Dispatch(ev wl.Event) error {
	switch ev.Opcode {
	case pointerEventEnter:
		if p.OnEnter != nil {
			p.OnEnter(ev.Uint(0), ev.Object(1), ev.Fixed(2), ev.Fixed(3))
		}
	case pointerEventLeave:
		if p.OnLeave != nil {
			p.OnLeave(ev.Uint(0), ev.Object(1))
		}
	case pointerEventMotion:
		if p.OnMotion != nil {
			p.OnMotion(ev.Uint(0), ev.Fixed(1), ev.Fixed(2))
		}
	case pointerEventButton:
		if p.OnButton != nil {
			p.OnButton(ev.Uint(0), ev.Uint(1), ev.Uint(2), ev.Uint(3))
		}
	case pointerEventAxis:
		if p.OnAxis != nil {
			p.OnAxis(ev.Uint(0), ev.Uint(1), ev.Fixed(2))
		}
	}
	return nil
}

type ServerPointer struct {
	wl.Resource

	OnSetCursor func(serial uint32, surface wl.ObjectID, hotspotX, hotspotY int32)
	OnRelease   func()
}

func NewServerPointer(ctx *wl.Context, id wl.ObjectID, version uint32) *ServerPointer {
	return &ServerPointer{Resource: wl.NewResource(ctx, id, PointerInterface, version)}
}

func (p *ServerPointer) SendEnter(serial uint32, surface wl.ObjectID, x, y wire.Fixed) error {
	return p.Resource.SendEvent(pointerEventEnter, []wire.Arg{
		{Type: wire.ArgUint, Uint: serial}, {Type: wire.ArgObject, Object: surface},
		{Type: wire.ArgFixed, Fixed: x}, {Type: wire.ArgFixed, Fixed: y},
	})
}

func (p *ServerPointer) SendLeave(serial uint32, surface wl.ObjectID) error {
	return p.Resource.SendEvent(pointerEventLeave, []wire.Arg{{Type: wire.ArgUint, Uint: serial}, {Type: wire.ArgObject, Object: surface}})
}

func (p *ServerPointer) SendMotion(time uint32, x, y wire.Fixed) error {
	return p.Resource.SendEvent(pointerEventMotion, []wire.Arg{
		{Type: wire.ArgUint, Uint: time}, {Type: wire.ArgFixed, Fixed: x}, {Type: wire.ArgFixed, Fixed: y},
	})
}

func (p *ServerPointer) SendButton(serial, time, button, state uint32) error {
	return p.Resource.SendEvent(pointerEventButton, []wire.Arg{
		{Type: wire.ArgUint, Uint: serial}, {Type: wire.ArgUint, Uint: time},
		{Type: wire.ArgUint, Uint: button}, {Type: wire.ArgUint, Uint: state},
	})
}

func (p *ServerPointer) SendAxis(time, axis uint32, value wire.Fixed) error {
	return p.Resource.SendEvent(pointerEventAxis, []wire.Arg{
		{Type: wire.ArgUint, Uint: time}, {Type: wire.ArgUint, Uint: axis}, {Type: wire.ArgFixed, Fixed: value},
	})
}

func (p *ServerPointer) Dispatch(ev wl.Event) error {
	switch ev.Opcode {
	case pointerRequestSetCursor:
		if p.OnSetCursor != nil {
			p.OnSetCursor(ev.Uint(0), ev.Object(1), ev.Int(2), ev.Int(3))
		}
	case pointerRequestRelease:
		if p.OnRelease != nil {
			p.OnRelease()
		}
		return p.Context().Unregister(p.ID())
	}
	return nil
}

// Key states, matching wl_keyboard.key_state.
const (
	KeyStateReleased uint32 = 0
	KeyStatePressed  uint32 = 1
)

var KeyboardInterface = &wl.Interface{
	Name:    "wl_keyboard",
	Version: 5,
	Requests: []wl.Signature{
		{Name: "release", Args: nil},
	},
	Events: []wl.Signature{
		{Name: "keymap", Args: []wire.ArgType{wire.ArgUint, wire.ArgFD, wire.ArgUint}},
		{Name: "enter", Args: []wire.ArgType{wire.ArgUint, wire.ArgObject, wire.ArgArray}},
		{Name: "leave", Args: []wire.ArgType{wire.ArgUint, wire.ArgObject}},
		{Name: "key", Args: []wire.ArgType{wire.ArgUint, wire.ArgUint, wire.ArgUint, wire.ArgUint}},
		{Name: "modifiers", Args: []wire.ArgType{wire.ArgUint, wire.ArgUint, wire.ArgUint, wire.ArgUint, wire.ArgUint}},
	},
}

const (
	keyboardRequestRelease uint16 = 0

	keyboardEventKeymap    uint16 = 0
	keyboardEventEnter     uint16 = 1
	keyboardEventLeave     uint16 = 2
	keyboardEventKey       uint16 = 3
	keyboardEventModifiers uint16 = 4
)

type ClientKeyboard struct {
	wl.Proxy

	OnKeymap    func(format uint32, fd int, size uint32)
	OnEnter     func(serial uint32, surface wl.ObjectID, keys []byte)
	OnLeave     func(serial uint32, surface wl.ObjectID)
	OnKey       func(serial, time, key, state uint32)
	OnModifiers func(serial, modsDepressed, modsLatched, modsLocked, group uint32)
}

func NewClientKeyboard(ctx *wl.Context, id wl.ObjectID, version uint32) *ClientKeyboard {
	return &ClientKeyboard{Proxy: wl.NewProxy(ctx, id, KeyboardInterface, version)}
}

func (k *ClientKeyboard) Release() error {
	if err := k.SendRequest(keyboardRequestRelease, nil); err != nil {
		return err
	}
	return k.Context().Unregister(k.ID())
}

func (k *ClientKeyboard) Dispatch(ev wl.Event) error {
	switch ev.Opcode {
	case keyboardEventKeymap:
		if k.OnKeymap != nil {
			k.OnKeymap(ev.Uint(0), ev.FD(1), ev.Uint(2))
		}
	case keyboardEventEnter:
		if k.OnEnter != nil {
			k.OnEnter(ev.Uint(0), ev.Object(1), ev.Array(2))
		}
	case keyboardEventLeave:
		if k.OnLeave != nil {
			k.OnLeave(ev.Uint(0), ev.Object(1))
		}
	case keyboardEventKey:
		if k.OnKey != nil {
			k.OnKey(ev.Uint(0), ev.Uint(1), ev.Uint(2), ev.Uint(3))
		}
	case keyboardEventModifiers:
		if k.OnModifiers != nil {
			k.OnModifiers(ev.Uint(0), ev.Uint(1), ev.Uint(2), ev.Uint(3), ev.Uint(4))
		}
	}
	return nil
}

type ServerKeyboard struct {
	wl.Resource

	OnRelease func()
}

func NewServerKeyboard(ctx *wl.Context, id wl.ObjectID, version uint32) *ServerKeyboard {
	return &ServerKeyboard{Resource: wl.NewResource(ctx, id, KeyboardInterface, version)}
}

func (k *ServerKeyboard) SendKeymap(format uint32, fd int, size uint32) error {
	return k.Resource.SendEvent(keyboardEventKeymap, []wire.Arg{
		{Type: wire.ArgUint, Uint: format}, {Type: wire.ArgFD, Fd: fd}, {Type: wire.ArgUint, Uint: size},
	})
}

func (k *ServerKeyboard) SendEnter(serial uint32, surface wl.ObjectID, keys []byte) error {
	return k.Resource.SendEvent(keyboardEventEnter, []wire.Arg{
		{Type: wire.ArgUint, Uint: serial}, {Type: wire.ArgObject, Object: surface}, {Type: wire.ArgArray, Array: keys},
	})
}

func (k *ServerKeyboard) SendLeave(serial uint32, surface wl.ObjectID) error {
	return k.Resource.SendEvent(keyboardEventLeave, []wire.Arg{{Type: wire.ArgUint, Uint: serial}, {Type: wire.ArgObject, Object: surface}})
}

func (k *ServerKeyboard) SendKey(serial, time, key, state uint32) error {
	return k.Resource.SendEvent(keyboardEventKey, []wire.Arg{
		{Type: wire.ArgUint, Uint: serial}, {Type: wire.ArgUint, Uint: time},
		{Type: wire.ArgUint, Uint: key}, {Type: wire.ArgUint, Uint: state},
	})
}

func (k *ServerKeyboard) SendModifiers(serial, depressed, latched, locked, group uint32) error {
	return k.Resource.SendEvent(keyboardEventModifiers, []wire.Arg{
		{Type: wire.ArgUint, Uint: serial}, {Type: wire.ArgUint, Uint: depressed},
		{Type: wire.ArgUint, Uint: latched}, {Type: wire.ArgUint, Uint: locked}, {Type: wire.ArgUint, Uint: group},
	})
}

func (k *ServerKeyboard) Dispatch(ev wl.Event) error {
	if ev.Opcode == keyboardRequestRelease {
		if k.OnRelease != nil {
			k.OnRelease()
		}
		return k.Context().Unregister(k.ID())
	}
	return nil
}

var TouchInterface = &wl.Interface{
	Name:    "wl_touch",
	Version: 5,
	Requests: []wl.Signature{
		{Name: "release", Args: nil},
	},
	Events: []wl.Signature{
		{Name: "down", Args: []wire.ArgType{wire.ArgUint, wire.ArgUint, wire.ArgObject, wire.ArgInt, wire.ArgFixed, wire.ArgFixed}},
		{Name: "up", Args: []wire.ArgType{wire.ArgUint, wire.ArgUint, wire.ArgInt}},
		{Name: "motion", Args: []wire.ArgType{wire.ArgUint, wire.ArgInt, wire.ArgFixed, wire.ArgFixed}},
		{Name: "frame", Args: nil},
		{Name: "cancel", Args: nil},
	},
}

const (
	touchRequestRelease uint16 = 0

	touchEventDown   uint16 = 0
	touchEventUp     uint16 = 1
	touchEventMotion uint16 = 2
	touchEventFrame  uint16 = 3
	touchEventCancel uint16 = 4
)

type ClientTouch struct {
	wl.Proxy

	OnDown   func(serial, time uint32, surface wl.ObjectID, id int32, x, y wire.Fixed)
	OnUp     func(serial, time uint32, id int32)
	OnMotion func(time uint32, id int32, x, y wire.Fixed)
	OnFrame  func()
	OnCancel func()
}

func NewClientTouch(ctx *wl.Context, id wl.ObjectID, version uint32) *ClientTouch {
	return &ClientTouch{Proxy: wl.NewProxy(ctx, id, TouchInterface, version)}
}

func (t *ClientTouch) Release() error {
	if err := t.SendRequest(touchRequestRelease, nil); err != nil {
		return err
	}
	return t.Context().Unregister(t.ID())
}

func (t *ClientTouch) Dispatch(ev wl.Event) error {
	switch ev.Opcode {
	case touchEventDown:
		if t.OnDown != nil {
			t.OnDown(ev.Uint(0), ev.Uint(1), ev.Object(2), ev.Int(3), ev.Fixed(4), ev.Fixed(5))
		}
	case touchEventUp:
		if t.OnUp != nil {
			t.OnUp(ev.Uint(0), ev.Uint(1), ev.Int(2))
		}
	case touchEventMotion:
		if t.OnMotion != nil {
			t.OnMotion(ev.Uint(0), ev.Int(1), ev.Fixed(2), ev.Fixed(3))
		}
	case touchEventFrame:
		if t.OnFrame != nil {
			t.OnFrame()
		}
	case touchEventCancel:
		if t.OnCancel != nil {
			t.OnCancel()
		}
	}
	return nil
}

type ServerTouch struct {
	wl.Resource

	OnRelease func()
}

func NewServerTouch(ctx *wl.Context, id wl.ObjectID, version uint32) *ServerTouch {
	return &ServerTouch{Resource: wl.NewResource(ctx, id, TouchInterface, version)}
}

func (t *ServerTouch) SendDown(serial, time uint32, surface wl.ObjectID, id int32, x, y wire.Fixed) error {
	return t.Resource.SendEvent(touchEventDown, []wire.Arg{
		{Type: wire.ArgUint, Uint: serial}, {Type: wire.ArgUint, Uint: time},
		{Type: wire.ArgObject, Object: surface}, {Type: wire.ArgInt, Int: id},
		{Type: wire.ArgFixed, Fixed: x}, {Type: wire.ArgFixed, Fixed: y},
	})
}

func (t *ServerTouch) SendUp(serial, time uint32, id int32) error {
	return t.Resource.SendEvent(touchEventUp, []wire.Arg{
		{Type: wire.ArgUint, Uint: serial}, {Type: wire.ArgUint, Uint: time}, {Type: wire.ArgInt, Int: id},
	})
}

func (t *ServerTouch) SendMotion(time uint32, id int32, x, y wire.Fixed) error {
	return t.Resource.SendEvent(touchEventMotion, []wire.Arg{
		{Type: wire.ArgUint, Uint: time}, {Type: wire.ArgInt, Int: id},
		{Type: wire.ArgFixed, Fixed: x}, {Type: wire.ArgFixed, Fixed: y},
	})
}

func (t *ServerTouch) SendFrame() error  { return t.Resource.SendEvent(touchEventFrame, nil) }
func (t *ServerTouch) SendCancel() error { return t.Resource.SendEvent(touchEventCancel, nil) }

func (t *ServerTouch) Dispatch(ev wl.Event) error {
	if ev.Opcode == touchRequestRelease {
		if t.OnRelease != nil {
			t.OnRelease()
		}
		return t.Context().Unregister(t.ID())
	}
	return nil
}
