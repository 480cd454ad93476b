package core

import (
	"testing"

	"golang.org/x/sys/unix"

	"github.com/bnema/wlcore/internal/sockconn"
	"github.com/bnema/wlcore/wl"
)

func newTestPool(t *testing.T, size int32) (*ServerShmPool, int) {
	t.Helper()
	fd, err := unix.MemfdCreate("shm-pool-test", 0)
	if err != nil {
		t.Fatalf("MemfdCreate: %v", err)
	}
	if err := unix.Ftruncate(fd, int64(size)); err != nil {
		t.Fatalf("Ftruncate: %v", err)
	}
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	if err != nil {
		t.Fatalf("Socketpair: %v", err)
	}
	conn, err := sockconn.FromFD(fds[0])
	if err != nil {
		t.Fatalf("FromFD: %v", err)
	}
	t.Cleanup(func() { conn.Close(); unix.Close(fds[1]) })
	ctx := wl.NewContext(wl.RoleServer, conn)
	pool, err := NewServerShmPool(ctx, 2, 1, fd, size)
	if err != nil {
		t.Fatalf("NewServerShmPool: %v", err)
	}
	return pool, fd
}

// TestShmPoolTeardownWaitsForBuffers is the open-question resolution:
// destroy() alone must not unmap while a buffer created from the pool is
// still live.
func TestShmPoolTeardownWaitsForBuffers(t *testing.T) {
	pool, _ := newTestPool(t, 4096)
	buf := pool.createBuffer(pool.Context(), 3, 0, 64, 16, 256, ShmFormatARGB8888)

	pool.destroy()
	if pool.Bytes() == nil {
		t.Fatal("pool unmapped while a buffer was still live")
	}
	if buf.Pixels() == nil {
		t.Fatal("buffer lost its mapping before being released")
	}

	pool.releaseBuffer()
	if pool.Bytes() != nil {
		t.Fatal("pool still mapped after destroy + last buffer released")
	}
	if buf.Pixels() != nil {
		t.Fatal("buffer still returns pixels after its pool unmapped")
	}
}

// TestShmPoolTeardownWaitsForDestroy checks the other half: releasing
// every buffer without a destroy must not unmap the pool either, since
// the client may still create_buffer against it later.
func TestShmPoolTeardownWaitsForDestroy(t *testing.T) {
	pool, _ := newTestPool(t, 4096)
	pool.createBuffer(pool.Context(), 3, 0, 64, 16, 256, ShmFormatARGB8888)
	pool.releaseBuffer()

	if pool.Bytes() == nil {
		t.Fatal("pool unmapped before destroy was ever sent")
	}

	pool.destroy()
	if pool.Bytes() != nil {
		t.Fatal("pool still mapped after both teardown conditions hold")
	}
}

// TestShmPoolResize checks the resize open-question resolution: the old
// mapping is gone and a fresh one of the new size replaces it.
func TestShmPoolResize(t *testing.T) {
	pool, fd := newTestPool(t, 4096)
	if err := unix.Ftruncate(fd, 8192); err != nil {
		t.Fatalf("Ftruncate: %v", err)
	}
	if err := pool.resize(8192); err != nil {
		t.Fatalf("resize: %v", err)
	}
	if len(pool.Bytes()) != 8192 {
		t.Fatalf("pool size after resize = %d, want 8192", len(pool.Bytes()))
	}

	pool.destroy()
	if err := pool.resize(16384); err == nil {
		t.Fatal("resize on a destroyed pool: expected error, got nil")
	}
}
