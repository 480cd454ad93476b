package debugws

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dialInspector(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/inspect"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestBroadcastDeliversToConnectedClients(t *testing.T) {
	ins := NewInspector()
	srv := httptest.NewServer(ins)
	t.Cleanup(srv.Close)

	conn := dialInspector(t, srv)

	// Give ServeHTTP a moment to register the connection before the
	// broadcast, since the upgrade and the registration both happen on
	// the server goroutine handling this request.
	deadline := time.Now().Add(time.Second)
	for {
		ins.mu.Lock()
		n := len(ins.clients)
		ins.mu.Unlock()
		if n == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("inspector never registered the dialed client")
		}
		time.Sleep(time.Millisecond)
	}

	want := []byte("snapshot-payload")
	ins.Broadcast(want)

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, got, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if string(got) != string(want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestServeHTTPDropsDisconnectedClient(t *testing.T) {
	ins := NewInspector()
	srv := httptest.NewServer(ins)
	t.Cleanup(srv.Close)

	conn := dialInspector(t, srv)
	deadline := time.Now().Add(time.Second)
	for {
		ins.mu.Lock()
		n := len(ins.clients)
		ins.mu.Unlock()
		if n == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("inspector never registered the dialed client")
		}
		time.Sleep(time.Millisecond)
	}

	conn.Close()
	deadline = time.Now().Add(time.Second)
	for {
		ins.mu.Lock()
		n := len(ins.clients)
		ins.mu.Unlock()
		if n == 0 {
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("inspector never noticed the client disconnecting")
		}
		time.Sleep(time.Millisecond)
	}
}
