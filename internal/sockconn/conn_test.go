package sockconn

import (
	"os"
	"testing"

	"golang.org/x/sys/unix"
)

func pair(t *testing.T) (*Conn, *Conn) {
	t.Helper()
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	if err != nil {
		t.Fatalf("Socketpair: %v", err)
	}
	a, err := FromFD(fds[0])
	if err != nil {
		t.Fatalf("FromFD: %v", err)
	}
	b, err := FromFD(fds[1])
	if err != nil {
		t.Fatalf("FromFD: %v", err)
	}
	return a, b
}

func drain(t *testing.T, c *Conn, want int) {
	t.Helper()
	for len(c.InboundBytes()) < want {
		err := c.RecvOnce()
		if err != nil && err != ErrWouldBlock {
			t.Fatalf("RecvOnce: %v", err)
		}
	}
}

func TestFlushAndRecvBytes(t *testing.T) {
	a, b := pair(t)
	defer a.Close()
	defer b.Close()

	msg := []byte("hello, wayland")
	a.Enqueue(msg, nil)
	if err := a.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	drain(t, b, len(msg))
	if string(b.InboundBytes()) != string(msg) {
		t.Fatalf("received %q, want %q", b.InboundBytes(), msg)
	}
}

func TestFDRoundTrip(t *testing.T) {
	a, b := pair(t)
	defer a.Close()
	defer b.Close()

	tmp, err := os.CreateTemp("", "sockconn-fd-*")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.WriteString("payload"); err != nil {
		t.Fatal(err)
	}
	fd := int(tmp.Fd())

	a.Enqueue([]byte("x"), []int{fd})
	if err := a.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	for len(b.InboundFDs()) == 0 {
		if err := b.RecvOnce(); err != nil && err != ErrWouldBlock {
			t.Fatalf("RecvOnce: %v", err)
		}
	}
	got := b.InboundFDs()[0]
	var st unix.Stat_t
	if err := unix.Fstat(got, &st); err != nil {
		t.Fatalf("Fstat received fd: %v", err)
	}
	if st.Size < int64(len("payload")) {
		t.Fatalf("received fd size %d, want >= %d", st.Size, len("payload"))
	}
	unix.Close(got)
}

func TestConsumeFramePreservesSuffix(t *testing.T) {
	a, b := pair(t)
	defer a.Close()
	defer b.Close()

	a.Enqueue([]byte("AAAABBBB"), nil)
	if err := a.Flush(); err != nil {
		t.Fatal(err)
	}
	drain(t, b, 8)
	b.ConsumeFrame(4, 0)
	if string(b.InboundBytes()) != "BBBB" {
		t.Fatalf("InboundBytes after partial consume = %q, want %q", b.InboundBytes(), "BBBB")
	}
}
