// Package wlerr defines the protocol error taxonomy: the small set of
// fatal conditions a connection can hit, and the numeric codes they carry
// in a Display.error event.
package wlerr

import "fmt"

// Display-global error codes, matching the wl_display.error event's code
// argument.
const (
	CodeInvalidObject uint32 = 0
	CodeInvalidMethod uint32 = 1
	CodeNoMemory      uint32 = 2
)

// Malformed reports that a frame violates the wire format itself: bad
// length, non-4-byte-aligned size, invalid UTF-8, or a missing FD.
type Malformed struct {
	Err error
}

func (e *Malformed) Error() string { return fmt.Sprintf("malformed frame: %v", e.Err) }
func (e *Malformed) Unwrap() error { return e.Err }
func (e *Malformed) Code() uint32  { return CodeInvalidMethod }

// UnknownObject reports that a frame targets an object ID not present in
// the table.
type UnknownObject struct {
	ID uint32
}

func (e *UnknownObject) Error() string { return fmt.Sprintf("unknown object id %d", e.ID) }
func (e *UnknownObject) Code() uint32   { return CodeInvalidObject }

// InvalidMethod reports an opcode with no corresponding signature on the
// target object's interface.
type InvalidMethod struct {
	ObjectID uint32
	Opcode   uint16
}

func (e *InvalidMethod) Error() string {
	return fmt.Sprintf("invalid method opcode %d on object %d", e.Opcode, e.ObjectID)
}
func (e *InvalidMethod) Code() uint32 { return CodeInvalidMethod }

// InterfaceError is an object-local error raised by a handler (e.g.
// Shm.INVALID_FORMAT); it is reported to the peer via Display.error with
// the interface's own numeric code.
type InterfaceError struct {
	ObjectID uint32
	Code_    uint32
	Message  string
}

func (e *InterfaceError) Error() string {
	return fmt.Sprintf("object %d: error %d: %s", e.ObjectID, e.Code_, e.Message)
}
func (e *InterfaceError) Code() uint32 { return e.Code_ }

// TransportLost reports a fatal transport failure (broken pipe, reset,
// bad descriptor). No Display.error is sent for this case — there is no
// connection left to send it on.
type TransportLost struct {
	Err error
}

func (e *TransportLost) Error() string { return fmt.Sprintf("transport lost: %v", e.Err) }
func (e *TransportLost) Unwrap() error { return e.Err }

// ResourceExhausted reports that the object table or the OS ran out of
// room to satisfy a request (e.g. the ID space, or a failed allocation).
type ResourceExhausted struct {
	Err error
}

func (e *ResourceExhausted) Error() string { return fmt.Sprintf("resource exhausted: %v", e.Err) }
func (e *ResourceExhausted) Unwrap() error { return e.Err }
func (e *ResourceExhausted) Code() uint32  { return CodeNoMemory }

// Coded is implemented by every error above that maps to a Display.error
// event code; compositor's reportFatal uses it to decide what to send.
type Coded interface {
	error
	Code() uint32
}

// Fatal reports whether err represents one of the connection-fatal kinds
// defined in this package.
func Fatal(err error) bool {
	switch err.(type) {
	case *Malformed, *UnknownObject, *InvalidMethod, *InterfaceError, *TransportLost, *ResourceExhausted:
		return true
	default:
		return false
	}
}
