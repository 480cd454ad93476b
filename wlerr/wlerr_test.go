package wlerr

import (
	"errors"
	"testing"
)

func TestCodes(t *testing.T) {
	cases := []struct {
		name string
		err  Coded
		want uint32
	}{
		{"Malformed", &Malformed{Err: errors.New("short frame")}, CodeInvalidMethod},
		{"UnknownObject", &UnknownObject{ID: 7}, CodeInvalidObject},
		{"InvalidMethod", &InvalidMethod{ObjectID: 7, Opcode: 3}, CodeInvalidMethod},
		{"InterfaceError", &InterfaceError{ObjectID: 7, Code_: 9, Message: "bad format"}, 9},
		{"ResourceExhausted", &ResourceExhausted{Err: errors.New("out of ids")}, CodeNoMemory},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.err.Code(); got != c.want {
				t.Fatalf("Code() = %d, want %d", got, c.want)
			}
			if c.err.Error() == "" {
				t.Fatal("Error() returned empty string")
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	inner := errors.New("broken pipe")
	err := &TransportLost{Err: inner}
	if !errors.Is(err, inner) {
		t.Fatal("TransportLost does not unwrap to its inner error")
	}
}

func TestFatal(t *testing.T) {
	fatalCases := []error{
		&Malformed{Err: errors.New("x")},
		&UnknownObject{ID: 1},
		&InvalidMethod{ObjectID: 1, Opcode: 1},
		&InterfaceError{ObjectID: 1, Code_: 1, Message: "x"},
		&TransportLost{Err: errors.New("x")},
		&ResourceExhausted{Err: errors.New("x")},
	}
	for _, err := range fatalCases {
		if !Fatal(err) {
			t.Fatalf("Fatal(%T) = false, want true", err)
		}
	}

	if Fatal(errors.New("some other error")) {
		t.Fatal("Fatal on an unrelated error: expected false, got true")
	}
}
