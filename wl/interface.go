package wl

import "github.com/bnema/wlcore/wire"

// ObjectID is a 32-bit Wayland object identifier. ID 0 denotes "null" in
// argument position; ID 1 is always the Display on every connection.
type ObjectID = uint32

// Signature describes one request or event: its name (for diagnostics and
// for the scanner's generated name tables) and its argument types in wire
// order.
type Signature struct {
	Name string
	Args []wire.ArgType
}

// EnumEntry is one named value of a protocol enum, e.g. "argb8888" = 0 in
// wl_shm.format.
type EnumEntry struct {
	Name  string
	Value uint32
}

// EnumDescriptor is one protocol enum and its named values, such as
// wl_shm's "format" or wl_seat's "capability".
type EnumDescriptor struct {
	Name    string
	Entries []EnumEntry
}

// Interface is the static descriptor the scanner emits for every protocol
// interface: its name, version, ordered request/event signatures, and its
// enums. The opcode of a request or event is its index into the
// corresponding slice.
type Interface struct {
	Name     string
	Version  uint32
	Requests []Signature
	Events   []Signature
	Enums    []EnumDescriptor
}

// RequestSignature returns the argument types for the request at opcode,
// or false if the interface has no such request.
func (i *Interface) RequestSignature(opcode uint16) ([]wire.ArgType, bool) {
	if int(opcode) >= len(i.Requests) {
		return nil, false
	}
	return i.Requests[opcode].Args, true
}

// EventSignature returns the argument types for the event at opcode, or
// false if the interface has no such event.
func (i *Interface) EventSignature(opcode uint16) ([]wire.ArgType, bool) {
	if int(opcode) >= len(i.Events) {
		return nil, false
	}
	return i.Events[opcode].Args, true
}
