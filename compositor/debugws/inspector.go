// Package debugws serves a websocket endpoint that streams
// compositor/snapshot documents to a connected inspector (a browser tab
// or a small CLI tool), for watching a running compositor's object tables
// without attaching a debugger.
package debugws

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/bnema/wlcore/wllog"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The inspector is a same-host debugging aid, not a public endpoint;
	// origin checking is deliberately permissive.
	CheckOrigin: func(*http.Request) bool { return true },
}

// Inspector fans out encoded snapshot.Document bytes to every connected
// websocket client.
type Inspector struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func NewInspector() *Inspector {
	return &Inspector{clients: make(map[*websocket.Conn]struct{})}
}

// ServeHTTP upgrades the request to a websocket and registers it as a
// snapshot subscriber until it disconnects.
func (ins *Inspector) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		wllog.Error().Err(err).Msg("debugws: upgrade failed")
		return
	}
	ins.mu.Lock()
	ins.clients[conn] = struct{}{}
	ins.mu.Unlock()

	defer func() {
		ins.mu.Lock()
		delete(ins.clients, conn)
		ins.mu.Unlock()
		conn.Close()
	}()

	// The inspector protocol is push-only; read and discard to notice the
	// client going away (gorilla requires draining the read side to
	// detect a close frame).
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Broadcast pushes an already-encoded snapshot document to every
// currently connected client, in turn. Each write blocks until it
// completes or fails; a client whose write fails is logged, closed and
// dropped.
func (ins *Inspector) Broadcast(data []byte) {
	ins.mu.Lock()
	defer ins.mu.Unlock()
	for conn := range ins.clients {
		if err := conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
			wllog.Warn().Err(err).Msg("debugws: dropping slow or disconnected client")
			conn.Close()
			delete(ins.clients, conn)
		}
	}
}
