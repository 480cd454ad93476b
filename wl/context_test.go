package wl

import (
	"runtime"
	"testing"

	"github.com/bnema/wlcore/internal/sockconn"
	"golang.org/x/sys/unix"
)

func pairContexts(t *testing.T) (client *Context, server *Context, closeFn func()) {
	t.Helper()
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	if err != nil {
		t.Fatalf("Socketpair: %v", err)
	}
	cconn, err := sockconn.FromFD(fds[0])
	if err != nil {
		t.Fatal(err)
	}
	sconn, err := sockconn.FromFD(fds[1])
	if err != nil {
		t.Fatal(err)
	}
	client = NewContext(RoleClient, cconn)
	server = NewContext(RoleServer, sconn)
	return client, server, func() {
		cconn.Close()
		sconn.Close()
	}
}

// pumpBoth alternates Pump on both sides until done reports true, or a
// fatal error surfaces from either — used to drive a two-party exchange in
// a single test goroutine without a real event loop.
func pumpBoth(t *testing.T, client, server *Context, done func() bool) {
	t.Helper()
	for i := 0; i < 10000 && !done(); i++ {
		if err := client.Pump(); err != nil {
			t.Fatalf("client.Pump: %v", err)
		}
		if err := server.Pump(); err != nil {
			t.Fatalf("server.Pump: %v", err)
		}
		runtime.Gosched()
	}
	if !done() {
		t.Fatal("pumpBoth: did not complete within iteration budget")
	}
}

func TestSyncRoundtrip(t *testing.T) {
	client, server, closeFn := pairContexts(t)
	defer closeFn()

	serverDisplay := NewServerDisplay(server)
	if err := server.Register(DisplayObjectID, serverDisplay); err != nil {
		t.Fatal(err)
	}

	clientDisplay := NewClientDisplay(client)
	if err := client.Register(DisplayObjectID, clientDisplay); err != nil {
		t.Fatal(err)
	}

	done := false
	cbID, err := client.Alloc()
	if err != nil {
		t.Fatal(err)
	}
	cb := NewClientCallback(client, cbID)
	cb.OnDone = func(uint32) { done = true }
	if err := client.Register(cbID, cb); err != nil {
		t.Fatal(err)
	}
	if err := client.displaySync(cbID); err != nil {
		t.Fatal(err)
	}

	pumpBoth(t, client, server, func() bool { return done })

	if client.table.Live(cbID) {
		t.Fatal("callback object should have been released after delete_id")
	}
}

func TestRegistryBootstrap(t *testing.T) {
	client, server, closeFn := pairContexts(t)
	defer closeFn()

	serverDisplay := NewServerDisplay(server)
	serverDisplay.OnGetRegistry = func(reg *ServerRegistry) {
		if err := reg.SendGlobal(1, "wl_compositor", 1); err != nil {
			t.Fatal(err)
		}
		if err := reg.SendGlobal(2, "wl_shm", 1); err != nil {
			t.Fatal(err)
		}
	}
	if err := server.Register(DisplayObjectID, serverDisplay); err != nil {
		t.Fatal(err)
	}

	clientDisplay := NewClientDisplay(client)
	if err := client.Register(DisplayObjectID, clientDisplay); err != nil {
		t.Fatal(err)
	}

	var globals []string
	reg, err := clientDisplay.GetRegistry()
	if err != nil {
		t.Fatal(err)
	}
	reg.OnGlobal = func(name uint32, iface string, version uint32) {
		globals = append(globals, iface)
	}

	done := false
	syncID, err := client.Alloc()
	if err != nil {
		t.Fatal(err)
	}
	cb := NewClientCallback(client, syncID)
	cb.OnDone = func(uint32) { done = true }
	if err := client.Register(syncID, cb); err != nil {
		t.Fatal(err)
	}
	if err := client.displaySync(syncID); err != nil {
		t.Fatal(err)
	}

	pumpBoth(t, client, server, func() bool { return done })

	if len(globals) != 2 || globals[0] != "wl_compositor" || globals[1] != "wl_shm" {
		t.Fatalf("globals = %v, want [wl_compositor wl_shm]", globals)
	}
}
