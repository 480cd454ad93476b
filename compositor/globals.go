package compositor

import (
	"github.com/bnema/wlcore/protocol/core"
	"github.com/bnema/wlcore/wl"
	"github.com/bnema/wlcore/wllog"
)

// global is one advertised wl_registry entry: the name the client binds
// by, the interface and version it was advertised at, and the
// constructor that turns a client's bind request into a registered
// resource.
type global struct {
	name    uint32
	iface   string
	version uint32
	bind    bindFunc
}

// bindFunc constructs and returns the concrete resource for a bind
// request; wireRegistry's OnBind registers it. Errors propagate as fatal Dispatch errors (see
// Context.dispatchAvailable).
type bindFunc func(ctx *wl.Context, id wl.ObjectID, version uint32) (wl.WireObject, error)

// globalRegistry maps a wl_* interface name to the bindFunc this package
// knows how to satisfy. wlconfig.Default lists exactly this set; a config
// file naming anything else is dropped at NewServer time with a warning.
var globalRegistry = map[string]bindFunc{
	"wl_compositor":          bindCompositor,
	"wl_subcompositor":       bindSubcompositor,
	"wl_shm":                 bindShm,
	"wl_seat":                bindSeat,
	"wl_output":              bindOutput,
	"wl_data_device_manager": bindDataDeviceManager,
	"wl_shell":               bindShell,
}

func bindCompositor(ctx *wl.Context, id wl.ObjectID, version uint32) (wl.WireObject, error) {
	comp := core.NewServerCompositor(ctx, id, version)
	comp.OnCreateSurface = func(surfaceID wl.ObjectID) error {
		surf := core.NewServerSurface(ctx, surfaceID, version)
		wireSurface(surf)
		return ctx.Register(surfaceID, surf)
	}
	comp.OnCreateRegion = func(regionID wl.ObjectID) error {
		region := core.NewServerRegion(ctx, regionID, version)
		return ctx.Register(regionID, region)
	}
	return comp, nil
}

// wireSurface attaches logging-only default handlers — a real compositor
// replaces these with scene-graph/renderer hooks.
func wireSurface(surf *core.ServerSurface) {
	surf.OnCommit = func() {
		wllog.Debug().Uint32("surface", surf.ID()).Msg("compositor: surface committed")
	}
	surf.OnFrame = func(callbackID wl.ObjectID) error {
		cb := wl.NewServerCallback(surf.Context(), callbackID)
		if err := surf.Context().Register(callbackID, cb); err != nil {
			return err
		}
		if err := cb.SendDone(surf.Context().NextSerial()); err != nil {
			return err
		}
		return surf.Context().Unregister(callbackID)
	}
}

func bindSubcompositor(ctx *wl.Context, id wl.ObjectID, version uint32) (wl.WireObject, error) {
	sub := core.NewServerSubcompositor(ctx, id, version)
	sub.OnGetSubsurface = func(subsurfaceID, surfaceID, parentID wl.ObjectID) error {
		subsurf := core.NewServerSubsurface(ctx, subsurfaceID, version)
		return ctx.Register(subsurfaceID, subsurf)
	}
	return sub, nil
}

// shmSupportedFormats is sent to every client right after it binds wl_shm,
// advertising the two formats the protocol requires every compositor to
// support.
var shmSupportedFormats = []uint32{core.ShmFormatARGB8888, core.ShmFormatXRGB8888}

func bindShm(ctx *wl.Context, id wl.ObjectID, version uint32) (wl.WireObject, error) {
	shm := core.NewServerShm(ctx, id, version)
	shm.OnCreatePool = func(poolID wl.ObjectID, fd int, size int32) error {
		pool, err := core.NewServerShmPool(ctx, poolID, version, fd, size)
		if err != nil {
			return err
		}
		return ctx.Register(poolID, pool)
	}
	for _, f := range shmSupportedFormats {
		if err := shm.SendFormat(f); err != nil {
			return nil, err
		}
	}
	return shm, nil
}

func bindSeat(ctx *wl.Context, id wl.ObjectID, version uint32) (wl.WireObject, error) {
	seat := core.NewServerSeat(ctx, id, version)
	seat.OnGetPointer = func(pointerID wl.ObjectID) error {
		return ctx.Register(pointerID, core.NewServerPointer(ctx, pointerID, version))
	}
	seat.OnGetKeyboard = func(keyboardID wl.ObjectID) error {
		return ctx.Register(keyboardID, core.NewServerKeyboard(ctx, keyboardID, version))
	}
	seat.OnGetTouch = func(touchID wl.ObjectID) error {
		return ctx.Register(touchID, core.NewServerTouch(ctx, touchID, version))
	}
	caps := core.SeatCapabilityPointer | core.SeatCapabilityKeyboard | core.SeatCapabilityTouch
	if err := seat.SendCapabilities(caps); err != nil {
		return nil, err
	}
	if version >= 2 {
		if err := seat.SendName("wlcore-seat0"); err != nil {
			return nil, err
		}
	}
	return seat, nil
}

// The headlessOutput* constants describe the single fixed mode a headless
// compositor reports: there is no real display to query.
const (
	headlessOutputWidth  = 1920
	headlessOutputHeight = 1080
	headlessRefreshMilliHz = 60000
)

func bindOutput(ctx *wl.Context, id wl.ObjectID, version uint32) (wl.WireObject, error) {
	out := core.NewServerOutput(ctx, id, version)
	if err := out.SendGeometry(0, 0, 0, 0, 0, "wlcore", "headless", 0); err != nil {
		return nil, err
	}
	if err := out.SendMode(core.OutputModeCurrent, headlessOutputWidth, headlessOutputHeight, headlessRefreshMilliHz); err != nil {
		return nil, err
	}
	if version >= 2 {
		if err := out.SendDone(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func bindDataDeviceManager(ctx *wl.Context, id wl.ObjectID, version uint32) (wl.WireObject, error) {
	mgr := core.NewServerDataDeviceManager(ctx, id, version)
	mgr.OnCreateDataSource = func(sourceID wl.ObjectID) error {
		return ctx.Register(sourceID, core.NewServerDataSource(ctx, sourceID, version))
	}
	mgr.OnGetDataDevice = func(deviceID, seatID wl.ObjectID) error {
		return ctx.Register(deviceID, core.NewServerDataDevice(ctx, deviceID, version))
	}
	return mgr, nil
}

func bindShell(ctx *wl.Context, id wl.ObjectID, version uint32) (wl.WireObject, error) {
	shell := core.NewServerShell(ctx, id, version)
	shell.OnGetShellSurface = func(shellSurfaceID, surfaceID wl.ObjectID) error {
		shsurf := core.NewServerShellSurface(ctx, shellSurfaceID, version)
		shsurf.OnPong = func(serial uint32) {
			wllog.Debug().Uint32("shell_surface", shellSurfaceID).Msg("compositor: pong received")
		}
		return ctx.Register(shellSurfaceID, shsurf)
	}
	return shell, nil
}
