package core

import (
	"github.com/bnema/wlcore/wire"
	"github.com/bnema/wlcore/wl"
)

var DataDeviceManagerInterface = &wl.Interface{
	Name:    "wl_data_device_manager",
	Version: 3,
	Requests: []wl.Signature{
		{Name: "create_data_source", Args: []wire.ArgType{wire.ArgNewID}},
		{Name: "get_data_device", Args: []wire.ArgType{wire.ArgNewID, wire.ArgObject}},
	},
}

const (
	dataDeviceManagerRequestCreateDataSource uint16 = 0
	dataDeviceManagerRequestGetDataDevice    uint16 = 1
)

type ClientDataDeviceManager struct {
	wl.Proxy
}

func NewClientDataDeviceManager(ctx *wl.Context, id wl.ObjectID, version uint32) *ClientDataDeviceManager {
	return &ClientDataDeviceManager{Proxy: wl.NewProxy(ctx, id, DataDeviceManagerInterface, version)}
}

func (m *ClientDataDeviceManager) CreateDataSource() (*ClientDataSource, error) {
	ctx := m.Context()
	id, err := ctx.Alloc()
	if err != nil {
		return nil, err
	}
	src := NewClientDataSource(ctx, id, m.Version())
	if err := ctx.Register(id, src); err != nil {
		return nil, err
	}
	if err := m.SendRequest(dataDeviceManagerRequestCreateDataSource, []wire.Arg{{Type: wire.ArgNewID, NewID: id}}); err != nil {
		return nil, err
	}
	return src, nil
}

func (m *ClientDataDeviceManager) GetDataDevice(seat wl.ObjectID) (*ClientDataDevice, error) {
	ctx := m.Context()
	id, err := ctx.Alloc()
	if err != nil {
		return nil, err
	}
	dev := NewClientDataDevice(ctx, id, m.Version())
	if err := ctx.Register(id, dev); err != nil {
		return nil, err
	}
	err = m.SendRequest(dataDeviceManagerRequestGetDataDevice, []wire.Arg{
		{Type: wire.ArgNewID, NewID: id}, {Type: wire.ArgObject, Object: seat},
	})
	if err != nil {
		return nil, err
	}
	return dev, nil
}

func (m *ClientDataDeviceManager) Dispatch(wl.Event) error { return nil }

type ServerDataDeviceManager struct {
	wl.Resource

	OnCreateDataSource func(id wl.ObjectID) error
	OnGetDataDevice    func(id, seat wl.ObjectID) error
}

func NewServerDataDeviceManager(ctx *wl.Context, id wl.ObjectID, version uint32) *ServerDataDeviceManager {
	return &ServerDataDeviceManager{Resource: wl.NewResource(ctx, id, DataDeviceManagerInterface, version)}
}

func (m *ServerDataDeviceManager) Dispatch(ev wl.Event) error {
	switch ev.Opcode {
	case dataDeviceManagerRequestCreateDataSource:
		if m.OnCreateDataSource != nil {
			return m.OnCreateDataSource(ev.NewID(0))
		}
	case dataDeviceManagerRequestGetDataDevice:
		if m.OnGetDataDevice != nil {
			return m.OnGetDataDevice(ev.NewID(0), ev.Object(1))
		}
	}
	return nil
}

var DataSourceInterface = &wl.Interface{
	Name:    "wl_data_source",
	Version: 3,
	Requests: []wl.Signature{
		{Name: "offer", Args: []wire.ArgType{wire.ArgString}},
		{Name: "destroy", Args: nil},
		{Name: "set_actions", Args: []wire.ArgType{wire.ArgUint}},
	},
	Events: []wl.Signature{
		{Name: "target", Args: []wire.ArgType{wire.ArgString}},
		{Name: "send", Args: []wire.ArgType{wire.ArgString, wire.ArgFD}},
		{Name: "cancelled", Args: nil},
		{Name: "action", Args: []wire.ArgType{wire.ArgUint}},
	},
}

const (
	dataSourceRequestOffer      uint16 = 0
	dataSourceRequestDestroy    uint16 = 1
	dataSourceRequestSetActions uint16 = 2

	dataSourceEventTarget    uint16 = 0
	dataSourceEventSend      uint16 = 1
	dataSourceEventCancelled uint16 = 2
	dataSourceEventAction    uint16 = 3
)

type ClientDataSource struct {
	wl.Proxy

	OnTarget    func(mimeType string)
	OnSend      func(mimeType string, fd int)
	OnCancelled func()
	OnAction    func(dndAction uint32)
}

func NewClientDataSource(ctx *wl.Context, id wl.ObjectID, version uint32) *ClientDataSource {
	return &ClientDataSource{Proxy: wl.NewProxy(ctx, id, DataSourceInterface, version)}
}

func (s *ClientDataSource) Offer(mimeType string) error {
	return s.SendRequest(dataSourceRequestOffer, []wire.Arg{{Type: wire.ArgString, String: mimeType}})
}

func (s *ClientDataSource) SetActions(dndActions uint32) error {
	return s.SendRequest(dataSourceRequestSetActions, []wire.Arg{{Type: wire.ArgUint, Uint: dndActions}})
}

func (s *ClientDataSource) Destroy() error {
	if err := s.SendRequest(dataSourceRequestDestroy, nil); err != nil {
		return err
	}
	return s.Context().Unregister(s.ID())
}

func (s *ClientDataSource) Dispatch(ev wl.Event) error {
	switch ev.Opcode {
	case dataSourceEventTarget:
		if s.OnTarget != nil {
			s.OnTarget(ev.String(0))
		}
	case dataSourceEventSend:
		if s.OnSend != nil {
			s.OnSend(ev.String(0), ev.FD(1))
		}
	case dataSourceEventCancelled:
		if s.OnCancelled != nil {
			s.OnCancelled()
		}
	case dataSourceEventAction:
		if s.OnAction != nil {
			s.OnAction(ev.Uint(0))
		}
	}
	return nil
}

type ServerDataSource struct {
	wl.Resource

	OnOffer      func(mimeType string)
	OnSetActions func(dndActions uint32)
	OnDestroy    func()
}

func NewServerDataSource(ctx *wl.Context, id wl.ObjectID, version uint32) *ServerDataSource {
	return &ServerDataSource{Resource: wl.NewResource(ctx, id, DataSourceInterface, version)}
}

func (s *ServerDataSource) SendTarget(mimeType string) error {
	return s.Resource.SendEvent(dataSourceEventTarget, []wire.Arg{{Type: wire.ArgString, String: mimeType}})
}

func (s *ServerDataSource) SendSend(mimeType string, fd int) error {
	return s.Resource.SendEvent(dataSourceEventSend, []wire.Arg{{Type: wire.ArgString, String: mimeType}, {Type: wire.ArgFD, Fd: fd}})
}

func (s *ServerDataSource) SendCancelled() error {
	return s.Resource.SendEvent(dataSourceEventCancelled, nil)
}

func (s *ServerDataSource) SendAction(dndAction uint32) error {
	return s.Resource.SendEvent(dataSourceEventAction, []wire.Arg{{Type: wire.ArgUint, Uint: dndAction}})
}

func (s *ServerDataSource) Dispatch(ev wl.Event) error {
	switch ev.Opcode {
	case dataSourceRequestOffer:
		if s.OnOffer != nil {
			s.OnOffer(ev.String(0))
		}
	case dataSourceRequestDestroy:
		if s.OnDestroy != nil {
			s.OnDestroy()
		}
		return s.Context().Unregister(s.ID())
	case dataSourceRequestSetActions:
		if s.OnSetActions != nil {
			s.OnSetActions(ev.Uint(0))
		}
	}
	return nil
}

var DataOfferInterface = &wl.Interface{
	Name:    "wl_data_offer",
	Version: 3,
	Requests: []wl.Signature{
		{Name: "accept", Args: []wire.ArgType{wire.ArgUint, wire.ArgString}},
		{Name: "receive", Args: []wire.ArgType{wire.ArgString, wire.ArgFD}},
		{Name: "destroy", Args: nil},
		{Name: "finish", Args: nil},
		{Name: "set_actions", Args: []wire.ArgType{wire.ArgUint, wire.ArgUint}},
	},
	Events: []wl.Signature{
		{Name: "offer", Args: []wire.ArgType{wire.ArgString}},
		{Name: "source_actions", Args: []wire.ArgType{wire.ArgUint}},
		{Name: "action", Args: []wire.ArgType{wire.ArgUint}},
	},
}

const (
	dataOfferRequestAccept      uint16 = 0
	dataOfferRequestReceive     uint16 = 1
	dataOfferRequestDestroy     uint16 = 2
	dataOfferRequestFinish      uint16 = 3
	dataOfferRequestSetActions  uint16 = 4

	dataOfferEventOffer         uint16 = 0
	dataOfferEventSourceActions uint16 = 1
	dataOfferEventAction        uint16 = 2
)

type ClientDataOffer struct {
	wl.Proxy

	OnOffer         func(mimeType string)
	OnSourceActions func(sourceActions uint32)
	OnAction        func(dndAction uint32)
}

func NewClientDataOffer(ctx *wl.Context, id wl.ObjectID, version uint32) *ClientDataOffer {
	return &ClientDataOffer{Proxy: wl.NewProxy(ctx, id, DataOfferInterface, version)}
}

func (o *ClientDataOffer) Accept(serial uint32, mimeType string) error {
	return o.SendRequest(dataOfferRequestAccept, []wire.Arg{{Type: wire.ArgUint, Uint: serial}, {Type: wire.ArgString, String: mimeType}})
}

func (o *ClientDataOffer) Receive(mimeType string, fd int) error {
	return o.SendRequest(dataOfferRequestReceive, []wire.Arg{{Type: wire.ArgString, String: mimeType}, {Type: wire.ArgFD, Fd: fd}})
}

func (o *ClientDataOffer) Finish() error { return o.SendRequest(dataOfferRequestFinish, nil) }

func (o *ClientDataOffer) SetActions(dndActions, preferredAction uint32) error {
	return o.SendRequest(dataOfferRequestSetActions, []wire.Arg{{Type: wire.ArgUint, Uint: dndActions}, {Type: wire.ArgUint, Uint: preferredAction}})
}

func (o *ClientDataOffer) Destroy() error {
	if err := o.SendRequest(dataOfferRequestDestroy, nil); err != nil {
		return err
	}
	return o.Context().Unregister(o.ID())
}

func (o *ClientDataOffer) Dispatch(ev wl.Event) error {
	switch ev.Opcode {
	case dataOfferEventOffer:
		if o.OnOffer != nil {
			o.OnOffer(ev.String(0))
		}
	case dataOfferEventSourceActions:
		if o.OnSourceActions != nil {
			o.OnSourceActions(ev.Uint(0))
		}
	case dataOfferEventAction:
		if o.OnAction != nil {
			o.OnAction(ev.Uint(0))
		}
	}
	return nil
}

type ServerDataOffer struct {
	wl.Resource

	OnAccept     func(serial uint32, mimeType string)
	OnReceive    func(mimeType string, fd int)
	OnFinish     func()
	OnSetActions func(dndActions, preferredAction uint32)
	OnDestroy    func()
}

func NewServerDataOffer(ctx *wl.Context, id wl.ObjectID, version uint32) *ServerDataOffer {
	return &ServerDataOffer{Resource: wl.NewResource(ctx, id, DataOfferInterface, version)}
}

func (o *ServerDataOffer) SendOffer(mimeType string) error {
	return o.Resource.SendEvent(dataOfferEventOffer, []wire.Arg{{Type: wire.ArgString, String: mimeType}})
}

func (o *ServerDataOffer) SendSourceActions(sourceActions uint32) error {
	return o.Resource.SendEvent(dataOfferEventSourceActions, []wire.Arg{{Type: wire.ArgUint, Uint: sourceActions}})
}

func (o *ServerDataOffer) SendAction(dndAction uint32) error {
	return o.Resource.SendEvent(dataOfferEventAction, []wire.Arg{{Type: wire.ArgUint, Uint: dndAction}})
}

func (o *ServerDataOffer) Dispatch(ev wl.Event) error {
	switch ev.Opcode {
	case dataOfferRequestAccept:
		if o.OnAccept != nil {
			o.OnAccept(ev.Uint(0), ev.String(1))
		}
	case dataOfferRequestReceive:
		if o.OnReceive != nil {
			o.OnReceive(ev.String(0), ev.FD(1))
		}
	case dataOfferRequestDestroy:
		if o.OnDestroy != nil {
			o.OnDestroy()
		}
		return o.Context().Unregister(o.ID())
	case dataOfferRequestFinish:
		if o.OnFinish != nil {
			o.OnFinish()
		}
	case dataOfferRequestSetActions:
		if o.OnSetActions != nil {
			o.OnSetActions(ev.Uint(0), ev.Uint(1))
		}
	}
	return nil
}

var DataDeviceInterface = &wl.Interface{
	Name:    "wl_data_device",
	Version: 3,
	Requests: []wl.Signature{
		{Name: "start_drag", Args: []wire.ArgType{wire.ArgObject, wire.ArgObject, wire.ArgObject, wire.ArgUint}},
		{Name: "set_selection", Args: []wire.ArgType{wire.ArgObject, wire.ArgUint}},
		{Name: "release", Args: nil},
	},
	Events: []wl.Signature{
		{Name: "data_offer", Args: []wire.ArgType{wire.ArgNewID}},
		{Name: "enter", Args: []wire.ArgType{wire.ArgUint, wire.ArgObject, wire.ArgFixed, wire.ArgFixed, wire.ArgObject}},
		{Name: "leave", Args: nil},
		{Name: "motion", Args: []wire.ArgType{wire.ArgUint, wire.ArgFixed, wire.ArgFixed}},
		{Name: "drop", Args: nil},
		{Name: "selection", Args: []wire.ArgType{wire.ArgObject}},
	},
}

const (
	dataDeviceRequestStartDrag    uint16 = 0
	dataDeviceRequestSetSelection uint16 = 1
	dataDeviceRequestRelease      uint16 = 2

	dataDeviceEventDataOffer uint16 = 0
	dataDeviceEventEnter     uint16 = 1
	dataDeviceEventLeave     uint16 = 2
	dataDeviceEventMotion    uint16 = 3
	dataDeviceEventDrop      uint16 = 4
	dataDeviceEventSelection uint16 = 5
)

type ClientDataDevice struct {
	wl.Proxy

	OnDataOffer func(id wl.ObjectID) *ClientDataOffer
	OnEnter     func(serial uint32, surface wl.ObjectID, x, y wire.Fixed, offer wl.ObjectID)
	OnLeave     func()
	OnMotion    func(time uint32, x, y wire.Fixed)
	OnDrop      func()
	OnSelection func(offer wl.ObjectID)
}

func NewClientDataDevice(ctx *wl.Context, id wl.ObjectID, version uint32) *ClientDataDevice {
	return &ClientDataDevice{Proxy: wl.NewProxy(ctx, id, DataDeviceInterface, version)}
}

func (d *ClientDataDevice) StartDrag(source, origin, icon wl.ObjectID, serial uint32) error {
	return d.SendRequest(dataDeviceRequestStartDrag, []wire.Arg{
		{Type: wire.ArgObject, Object: source}, {Type: wire.ArgObject, Object: origin},
		{Type: wire.ArgObject, Object: icon}, {Type: wire.ArgUint, Uint: serial},
	})
}

func (d *ClientDataDevice) SetSelection(source wl.ObjectID, serial uint32) error {
	return d.SendRequest(dataDeviceRequestSetSelection, []wire.Arg{{Type: wire.ArgObject, Object: source}, {Type: wire.ArgUint, Uint: serial}})
}

func (d *ClientDataDevice) Release() error {
	if err := d.SendRequest(dataDeviceRequestRelease, nil); err != nil {
		return err
	}
	return d.Context().Unregister(d.ID())
}

// Dispatch registers a fresh ClientDataOffer for every data_offer event
// before forwarding the other events, mirroring the way the real protocol
// always sends data_offer immediately before the enter/selection event
// that references it.
func (d *ClientDataDevice) Dispatch(ev wl.Event) error {
	switch ev.Opcode {
	case dataDeviceEventDataOffer:
		id := ev.NewID(0)
		offer := NewClientDataOffer(d.Context(), id, d.Version())
		if err := d.Context().Register(id, offer); err != nil {
			return err
		}
		if d.OnDataOffer != nil {
			d.OnDataOffer(id)
		}
	case dataDeviceEventEnter:
		if d.OnEnter != nil {
			d.OnEnter(ev.Uint(0), ev.Object(1), ev.Fixed(2), ev.Fixed(3), ev.Object(4))
		}
	case dataDeviceEventLeave:
		if d.OnLeave != nil {
			d.OnLeave()
		}
	case dataDeviceEventMotion:
		if d.OnMotion != nil {
			d.OnMotion(ev.Uint(0), ev.Fixed(1), ev.Fixed(2))
		}
	case dataDeviceEventDrop:
		if d.OnDrop != nil {
			d.OnDrop()
		}
	case dataDeviceEventSelection:
		if d.OnSelection != nil {
			d.OnSelection(ev.Object(0))
		}
	}
	return nil
}

type ServerDataDevice struct {
	wl.Resource

	OnStartDrag    func(source, origin, icon wl.ObjectID, serial uint32)
	OnSetSelection func(source wl.ObjectID, serial uint32)
	OnRelease      func()
}

func NewServerDataDevice(ctx *wl.Context, id wl.ObjectID, version uint32) *ServerDataDevice {
	return &ServerDataDevice{Resource: wl.NewResource(ctx, id, DataDeviceInterface, version)}
}

func (d *ServerDataDevice) SendDataOffer(offerID wl.ObjectID) error {
	return d.Resource.SendEvent(dataDeviceEventDataOffer, []wire.Arg{{Type: wire.ArgNewID, NewID: offerID}})
}

func (d *ServerDataDevice) SendEnter(serial uint32, surface wl.ObjectID, x, y wire.Fixed, offer wl.ObjectID) error {
	return d.Resource.SendEvent(dataDeviceEventEnter, []wire.Arg{
		{Type: wire.ArgUint, Uint: serial}, {Type: wire.ArgObject, Object: surface},
		{Type: wire.ArgFixed, Fixed: x}, {Type: wire.ArgFixed, Fixed: y}, {Type: wire.ArgObject, Object: offer},
	})
}

func (d *ServerDataDevice) SendLeave() error { return d.Resource.SendEvent(dataDeviceEventLeave, nil) }

func (d *ServerDataDevice) SendMotion(time uint32, x, y wire.Fixed) error {
	return d.Resource.SendEvent(dataDeviceEventMotion, []wire.Arg{
		{Type: wire.ArgUint, Uint: time}, {Type: wire.ArgFixed, Fixed: x}, {Type: wire.ArgFixed, Fixed: y},
	})
}

func (d *ServerDataDevice) SendDrop() error { return d.Resource.SendEvent(dataDeviceEventDrop, nil) }

func (d *ServerDataDevice) SendSelection(offer wl.ObjectID) error {
	return d.Resource.SendEvent(dataDeviceEventSelection, []wire.Arg{{Type: wire.ArgObject, Object: offer}})
}

func (d *ServerDataDevice) Dispatch(ev wl.Event) error {
	switch ev.Opcode {
	case dataDeviceRequestStartDrag:
		if d.OnStartDrag != nil {
			d.OnStartDrag(ev.Object(0), ev.Object(1), ev.Object(2), ev.Uint(3))
		}
	case dataDeviceRequestSetSelection:
		if d.OnSetSelection != nil {
			d.OnSetSelection(ev.Object(0), ev.Uint(1))
		}
	case dataDeviceRequestRelease:
		if d.OnRelease != nil {
			d.OnRelease()
		}
		return d.Context().Unregister(d.ID())
	}
	return nil
}
