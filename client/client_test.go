package client

import (
	"path/filepath"
	"testing"

	"github.com/bnema/wlcore/compositor"
	"github.com/bnema/wlcore/wlconfig"
)

// TestConnectAndPaintFrame runs a real compositor.Server against a
// temporary socket directory and drives a real client.Client against it:
// connect, bind the core globals, create a surface, paint a frame through
// an shm buffer, and wait for its frame callback — the same path
// cmd/wlclient and tests/inject exercise manually.
func TestConnectAndPaintFrame(t *testing.T) {
	dir := t.TempDir()
	srv := compositor.NewServer(wlconfig.Config{SocketDir: dir, Globals: wlconfig.Default().Globals})
	if err := srv.Listen(); err != nil {
		t.Fatalf("Listen: %v", err)
	}
	t.Cleanup(func() { srv.Close() })
	go srv.Serve()

	path := filepath.Join(dir, srv.DisplayName())
	c, err := Connect(path)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if c.Compositor == nil || c.Shm == nil {
		t.Fatal("client did not bind wl_compositor/wl_shm")
	}

	surf, err := c.Compositor.CreateSurface()
	if err != nil {
		t.Fatalf("CreateSurface: %v", err)
	}

	const width, height, stride = 4, 4, 4 * 4
	buf, pixels, err := c.NewShmBuffer(width, height, stride, 0)
	if err != nil {
		t.Fatalf("NewShmBuffer: %v", err)
	}
	if len(pixels) != width*height*4 {
		t.Fatalf("pixels len = %d, want %d", len(pixels), width*height*4)
	}
	for i := range pixels {
		pixels[i] = 0xff
	}

	if err := surf.Attach(buf.ID(), 0, 0); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if err := surf.Damage(0, 0, width, height); err != nil {
		t.Fatalf("Damage: %v", err)
	}
	cb, err := surf.Frame()
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if err := surf.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	done := false
	cb.OnDone = func(uint32) { done = true }
	if err := c.Ctx.RunTill(func() bool { return done }); err != nil {
		t.Fatalf("waiting for frame callback: %v", err)
	}
}
