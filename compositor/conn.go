package compositor

import (
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bnema/wlcore/internal/sockconn"
	"github.com/bnema/wlcore/wl"
	"github.com/bnema/wlcore/wlerr"
	"github.com/bnema/wlcore/wllog"
)

var errUnknownGlobalName = errors.New("bind: unknown global name")

// handleConn owns one accepted connection end to end: it builds the
// Context, wires the well-known Display object, and pumps until the
// transport dies or a fatal protocol error occurs — at which point it
// reports a Display.error (when there's still a connection to report it
// on) and tears down.
func (s *Server) handleConn(id uuid.UUID, conn *sockconn.Conn) {
	log := wllog.Logger().With().Str("conn_id", id.String()).Logger()
	defer conn.Close()

	ctx := wl.NewContext(wl.RoleServer, conn)
	display := wl.NewServerDisplay(ctx)
	display.OnGetRegistry = func(reg *wl.ServerRegistry) {
		s.wireRegistry(ctx, reg)
	}
	if err := ctx.Register(wl.DisplayObjectID, display); err != nil {
		log.Error().Err(err).Msg("compositor: registering display object")
		return
	}

	log.Info().Msg("compositor: client connected")
	for {
		if err := ctx.Pump(); err != nil {
			reportFatal(display, err, log)
			return
		}
	}
}

// wireRegistry answers bind requests against this server's current global
// list and advertises every global already known at get_registry time.
// Globals added afterward are out of scope for this package (no
// global_remove/late-global support).
func (s *Server) wireRegistry(ctx *wl.Context, reg *wl.ServerRegistry) {
	globals := s.globalsSnapshot()
	for _, g := range globals {
		if err := reg.SendGlobal(g.name, g.iface, g.version); err != nil {
			wllog.Error().Err(err).Str("interface", g.iface).Msg("compositor: advertising global")
			return
		}
	}
	reg.OnBind = func(name uint32, iface string, version uint32, newID wl.ObjectID) error {
		for _, g := range globals {
			if g.name != name {
				continue
			}
			obj, err := g.bind(ctx, newID, version)
			if err != nil {
				return err
			}
			return ctx.Register(newID, obj)
		}
		return &wlerr.Malformed{Err: errUnknownGlobalName}
	}
}

// reportFatal surfaces a connection-fatal error: a malformed frame or
// protocol violation gets a Display.error first (there's still a
// connection to send it on); a transport loss has none.
func reportFatal(display *wl.ServerDisplay, err error, log zerolog.Logger) {
	var coded wlerr.Coded
	if errors.As(err, &coded) {
		if sendErr := display.SendError(wl.DisplayObjectID, coded.Code(), coded.Error()); sendErr != nil {
			log.Error().Err(sendErr).Msg("compositor: sending Display.error")
		} else if flushErr := display.Context().Flush(); flushErr != nil {
			log.Error().Err(flushErr).Msg("compositor: flushing Display.error")
		}
	}
	log.Warn().Err(err).Msg("compositor: connection terminated")
}
