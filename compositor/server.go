// Package compositor implements a minimal, headless Wayland compositor
// built on wl.Context and the protocol/core stubs: a listening socket,
// stale-socket cleanup with lowest-free wayland-N selection on startup,
// and one Context per accepted connection.
//
// It intentionally renders nothing — there is no output backend here,
// only the protocol-facing half of a compositor (global advertisement,
// object lifecycle, shm buffer bookkeeping, input event plumbing). A real
// renderer would observe ServerSurface.OnCommit and ServerBuffer.Pixels.
package compositor

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sys/unix"

	"github.com/bnema/wlcore/internal/sockconn"
	"github.com/bnema/wlcore/wl"
	"github.com/bnema/wlcore/wlconfig"
	"github.com/bnema/wlcore/wllog"
)

// maxDisplaySlots bounds the wayland-N search: Listen fails once slots
// 0..maxDisplaySlots-1 are all taken.
const maxDisplaySlots = 32

// Server listens for client connections and drives one wl.Context per
// connection. Its zero value is not usable; construct with NewServer.
type Server struct {
	cfg wlconfig.Config

	mu       sync.RWMutex
	globals  []global
	nextName uint32

	listenFD   int
	socketPath string
	displayName string
}

// NewServer builds a Server advertising cfg's configured globals (see
// wlconfig.Default for the built-in set). Globals naming an interface this
// package doesn't implement are dropped, with a warning logged.
func NewServer(cfg wlconfig.Config) *Server {
	s := &Server{cfg: cfg, nextName: 1}
	for _, g := range cfg.Globals {
		ctor, ok := globalRegistry[g.Interface]
		if !ok {
			wllog.Warn().Str("interface", g.Interface).Msg("compositor: no implementation for configured global, dropping")
			continue
		}
		s.globals = append(s.globals, global{
			name:    s.nextName,
			iface:   g.Interface,
			version: g.Version,
			bind:    ctor,
		})
		s.nextName++
	}
	return s
}

// socketDir resolves where the wayland-N socket is created: cfg override,
// else $XDG_RUNTIME_DIR.
func (s *Server) socketDir() (string, error) {
	if s.cfg.SocketDir != "" {
		return s.cfg.SocketDir, nil
	}
	dir := os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		return "", fmt.Errorf("compositor: XDG_RUNTIME_DIR not set and no socket_dir configured")
	}
	return dir, nil
}

// Listen picks the lowest free wayland-N slot in the socket directory,
// removing a stale (unconnectable) socket left over from a crashed prior
// run at that slot before binding it, and exports WAYLAND_DISPLAY for
// this process's own children.
func (s *Server) Listen() error {
	dir, err := s.socketDir()
	if err != nil {
		return err
	}
	for n := 0; n < maxDisplaySlots; n++ {
		name := fmt.Sprintf("wayland-%d", n)
		path := filepath.Join(dir, name)
		if err := removeStaleSocket(path); err != nil {
			return err
		}
		fd, err := bindListen(path)
		if err != nil {
			if err == unix.EADDRINUSE {
				continue
			}
			return err
		}
		if err := os.Chmod(path, 0o666); err != nil {
			unix.Close(fd)
			return fmt.Errorf("compositor: chmod %s: %w", path, err)
		}
		s.listenFD = fd
		s.socketPath = path
		s.displayName = name
		os.Setenv("WAYLAND_DISPLAY", name)
		wllog.Info().Str("socket", path).Msg("compositor: listening")
		return nil
	}
	return fmt.Errorf("compositor: no free wayland-N slot under %s (tried 0..%d)", dir, maxDisplaySlots-1)
}

// removeStaleSocket deletes path if it exists but nothing is listening on
// it (a prior compositor crashed without cleaning up); a socket that's
// actually live is left alone and bindListen will report EADDRINUSE.
func removeStaleSocket(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	probe, err := unix.Socket(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	if err != nil {
		return fmt.Errorf("compositor: probing %s: %w", path, err)
	}
	defer unix.Close(probe)
	connErr := unix.Connect(probe, &unix.SockaddrUnix{Name: path})
	if connErr == nil {
		return nil
	}
	return os.Remove(path)
}

func bindListen(path string) (int, error) {
	fd, err := unix.Socket(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	if err != nil {
		return -1, fmt.Errorf("compositor: socket: %w", err)
	}
	if err := unix.Bind(fd, &unix.SockaddrUnix{Name: path}); err != nil {
		unix.Close(fd)
		if err == unix.EADDRINUSE {
			return -1, unix.EADDRINUSE
		}
		return -1, fmt.Errorf("compositor: bind %s: %w", path, err)
	}
	if err := unix.Listen(fd, 16); err != nil {
		unix.Close(fd)
		return -1, fmt.Errorf("compositor: listen %s: %w", path, err)
	}
	return fd, nil
}

// DisplayName returns the wayland-N name this server bound, e.g. for
// passing to child processes that don't inherit the environment.
func (s *Server) DisplayName() string { return s.displayName }

// Serve accepts connections until the listener is closed, handling each
// on its own goroutine. It returns nil when Close causes accept to fail
// with EBADF/EINVAL, and any other accept error otherwise.
func (s *Server) Serve() error {
	for {
		connFD, _, err := unix.Accept(s.listenFD)
		if err != nil {
			if err == unix.EBADF || err == unix.EINVAL {
				return nil
			}
			return fmt.Errorf("compositor: accept: %w", err)
		}
		conn, err := sockconn.FromFD(connFD)
		if err != nil {
			wllog.Error().Err(err).Msg("compositor: adopting accepted connection")
			unix.Close(connFD)
			continue
		}
		connID := uuid.New()
		go s.handleConn(connID, conn)
	}
}

// Close stops accepting new connections and removes the socket file.
func (s *Server) Close() error {
	if s.listenFD == 0 {
		return nil
	}
	unix.Close(s.listenFD)
	if s.socketPath != "" {
		os.Remove(s.socketPath)
	}
	return nil
}

// globalsSnapshot returns a copy of the global list taken under a read
// lock, for wireRegistry to advertise to a fresh registry and answer its
// bind requests from.
func (s *Server) globalsSnapshot() []global {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]global, len(s.globals))
	copy(out, s.globals)
	return out
}
