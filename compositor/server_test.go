package compositor

import (
	"testing"

	"github.com/google/uuid"
	"golang.org/x/sys/unix"

	"github.com/bnema/wlcore/internal/sockconn"
	"github.com/bnema/wlcore/protocol/core"
	"github.com/bnema/wlcore/wl"
	"github.com/bnema/wlcore/wlconfig"
)

// TestHandleConnBindAndCreateSurface drives a real Server.handleConn
// against a hand-built client-side Context over a socketpair, exercising
// get_registry, bind(wl_compositor), and create_surface end to end
// without a listening socket.
func TestHandleConnBindAndCreateSurface(t *testing.T) {
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	if err != nil {
		t.Fatalf("Socketpair: %v", err)
	}
	serverConn, err := sockconn.FromFD(fds[0])
	if err != nil {
		t.Fatalf("FromFD(server): %v", err)
	}
	clientConn, err := sockconn.FromFD(fds[1])
	if err != nil {
		t.Fatalf("FromFD(client): %v", err)
	}
	t.Cleanup(func() { clientConn.Close() })

	srv := NewServer(wlconfig.Default())
	go srv.handleConn(uuid.New(), serverConn)

	ctx := wl.NewContext(wl.RoleClient, clientConn)
	display := wl.NewClientDisplay(ctx)
	if err := ctx.Register(wl.DisplayObjectID, display); err != nil {
		t.Fatalf("Register display: %v", err)
	}

	reg, err := display.GetRegistry()
	if err != nil {
		t.Fatalf("GetRegistry: %v", err)
	}
	var compositorName uint32
	var haveCompositor bool
	reg.OnGlobal = func(name uint32, iface string, version uint32) {
		if iface == "wl_compositor" {
			compositorName, haveCompositor = name, true
		}
	}
	if err := ctx.RunTill(func() bool { return haveCompositor }); err != nil {
		t.Fatalf("waiting for wl_compositor global: %v", err)
	}

	compID, err := ctx.Alloc()
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	comp := core.NewClientCompositor(ctx, compID, 1)
	if err := reg.Bind(compositorName, "wl_compositor", 1, comp); err != nil {
		t.Fatalf("Bind: %v", err)
	}

	surf, err := comp.CreateSurface()
	if err != nil {
		t.Fatalf("CreateSurface: %v", err)
	}

	// A successful roundtrip after create_surface proves the server
	// resolved wl_compositor's bind, dispatched create_surface without an
	// UnknownObject/InvalidMethod error, and registered the resulting
	// wl_surface resource under the client-chosen id.
	if err := ctx.Roundtrip(); err != nil {
		t.Fatalf("Roundtrip: %v", err)
	}

	if err := surf.Destroy(); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	if err := ctx.Roundtrip(); err != nil {
		t.Fatalf("Roundtrip after destroy: %v", err)
	}
}
