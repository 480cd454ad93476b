// Package wlcore is a Wayland wire-protocol core: a framed, typed
// transport over Unix sockets with file descriptor passing, an object
// table, a single-threaded dispatcher, and a registry/sync bootstrap
// sequence, plus a scanner that turns protocol XML into the same typed
// stubs protocol/core hand-writes for the core interfaces.
//
// # Layout
//
// • wire: the 8-byte frame header and typed argument codec (no I/O).
// • internal/sockconn: a Unix socket connection with SCM_RIGHTS fd passing.
// • internal/objtab: the per-connection live object table.
// • wl: the dispatcher (Context), the built-in Display/Registry/Callback
//   objects, and the Proxy/Resource bases generated stubs embed.
// • protocol/core: generated-shaped stubs for the core globals
//   (Compositor, Surface, Shm, Seat, Output, Shell, ...).
// • scanner: the protocol-XML-to-Go generator.
// • compositor, client: minimal server and client built on the above,
//   exercising the whole stack end to end without any pixel rendering.
//
// # Scope
//
// This module implements the protocol plumbing only: no rendering, no
// XKB keymap interpretation, no GPU buffer formats, no cross-machine
// transport. A real compositor or client embeds this core and adds those
// concerns itself.
package wlcore
