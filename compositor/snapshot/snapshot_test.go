package snapshot

import (
	"testing"
	"time"

	"golang.org/x/sys/unix"

	"github.com/bnema/wlcore/internal/sockconn"
	"github.com/bnema/wlcore/protocol/core"
	"github.com/bnema/wlcore/wl"
)

func newTestContext(t *testing.T) *wl.Context {
	t.Helper()
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	if err != nil {
		t.Fatalf("Socketpair: %v", err)
	}
	conn, err := sockconn.FromFD(fds[0])
	if err != nil {
		t.Fatalf("FromFD: %v", err)
	}
	t.Cleanup(func() { conn.Close(); unix.Close(fds[1]) })
	return wl.NewContext(wl.RoleServer, conn)
}

func TestCaptureReflectsObjectTable(t *testing.T) {
	ctx := newTestContext(t)
	display := wl.NewServerDisplay(ctx)
	if err := ctx.Register(wl.DisplayObjectID, display); err != nil {
		t.Fatalf("Register display: %v", err)
	}
	comp := core.NewServerCompositor(ctx, 2, 4)
	if err := ctx.Register(2, comp); err != nil {
		t.Fatalf("Register compositor: %v", err)
	}

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	doc := Capture("conn-1", ctx, at)

	if doc.ConnID != "conn-1" {
		t.Fatalf("ConnID = %q, want conn-1", doc.ConnID)
	}
	if doc.CapturedAt != at.Format(time.RFC3339Nano) {
		t.Fatalf("CapturedAt = %q", doc.CapturedAt)
	}
	if len(doc.Objects) != 2 {
		t.Fatalf("len(Objects) = %d, want 2", len(doc.Objects))
	}

	var foundCompositor bool
	for _, e := range doc.Objects {
		if e.ID == 2 {
			foundCompositor = true
			if e.Interface != "wl_compositor" || e.Version != 4 {
				t.Fatalf("compositor entry = %+v", e)
			}
		}
	}
	if !foundCompositor {
		t.Fatal("snapshot missing the registered wl_compositor object")
	}
}

func TestEncodeDecodeRoundtrip(t *testing.T) {
	doc := Document{
		ConnID:     "conn-2",
		CapturedAt: time.Now().UTC().Format(time.RFC3339Nano),
		Objects: []Entry{
			{ID: 1, Interface: "wl_display", Version: 1},
			{ID: 2, Interface: "wl_compositor", Version: 4},
		},
	}

	data, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.ConnID != doc.ConnID || len(got.Objects) != len(doc.Objects) {
		t.Fatalf("roundtrip mismatch: got %+v, want %+v", got, doc)
	}
	for i, e := range doc.Objects {
		if got.Objects[i] != e {
			t.Fatalf("entry %d: got %+v, want %+v", i, got.Objects[i], e)
		}
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := Decode([]byte{0xff, 0xff, 0xff}); err == nil {
		t.Fatal("Decode on garbage bytes: expected error, got nil")
	}
}
