package wire

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncodeHeaderNoPayload(t *testing.T) {
	// Scenario 1: request on object 1, opcode 0, no payload.
	buf, fds, err := Encode(1, 0, nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(fds) != 0 {
		t.Fatalf("expected no fds, got %v", fds)
	}
	want := []byte{0x01, 0x00, 0x00, 0x00, 0x08, 0x00, 0x00, 0x00}
	if !bytes.Equal(buf, want) {
		t.Fatalf("Encode() = % x, want % x", buf, want)
	}
}

func TestEncodeStringPadding(t *testing.T) {
	// Scenario 2: string "None" (len 5 incl. NUL) pads to 8 bytes.
	buf, _, err := Encode(1, 0, []Arg{{Type: ArgString, String: "None"}})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	payload := buf[HeaderSize:]
	wantLen := []byte{0x05, 0x00, 0x00, 0x00}
	if !bytes.Equal(payload[:4], wantLen) {
		t.Fatalf("length prefix = % x, want % x", payload[:4], wantLen)
	}
	wantBody := []byte("None\x00\x00\x00\x00")
	if !bytes.Equal(payload[4:], wantBody) {
		t.Fatalf("body = % x, want % x", payload[4:], wantBody)
	}
	if len(payload)%4 != 0 {
		t.Fatalf("payload length %d not a multiple of 4", len(payload))
	}
}

func TestDecodeHeaderNeedMore(t *testing.T) {
	_, err := DecodeHeader([]byte{1, 2, 3})
	if !errors.Is(err, ErrNeedMore) {
		t.Fatalf("DecodeHeader short buf = %v, want ErrNeedMore", err)
	}
}

func TestDecodeHeaderRejectsBadSize(t *testing.T) {
	buf := make([]byte, 8)
	EncodeHeader(buf, Header{TargetID: 1, Opcode: 0, Size: 5})
	if _, err := DecodeHeader(buf); err == nil {
		t.Fatal("expected error for non-multiple-of-4 size")
	}

	EncodeHeader(buf, Header{TargetID: 1, Opcode: 0, Size: 4})
	if _, err := DecodeHeader(buf); err == nil {
		t.Fatal("expected error for size smaller than header")
	}
}

func TestRoundTripArgs(t *testing.T) {
	args := []Arg{
		{Type: ArgUint, Uint: 42},
		{Type: ArgInt, Int: -7},
		{Type: ArgFixed, Fixed: NewFixed(3.5)},
		{Type: ArgString, String: "hello"},
		{Type: ArgArray, Array: []byte{1, 2, 3}},
		{Type: ArgObject, Object: 9},
		{Type: ArgNewID, NewID: 10},
	}
	buf, _, err := Encode(1, 3, args)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	hdr, err := DecodeHeader(buf)
	if err != nil {
		t.Fatalf("DecodeHeader: %v", err)
	}
	if int(hdr.Size) != len(buf) {
		t.Fatalf("header size %d != frame length %d", hdr.Size, len(buf))
	}
	sig := []ArgType{ArgUint, ArgInt, ArgFixed, ArgString, ArgArray, ArgObject, ArgNewID}
	decoded, _, err := DecodeArgs(buf[HeaderSize:], sig, nil)
	if err != nil {
		t.Fatalf("DecodeArgs: %v", err)
	}
	if len(decoded) != len(args) {
		t.Fatalf("decoded %d args, want %d", len(decoded), len(args))
	}
	if decoded[0].Uint != 42 || decoded[1].Int != -7 || decoded[2].Fixed.Float64() != 3.5 ||
		decoded[3].String != "hello" || !bytes.Equal(decoded[4].Array, []byte{1, 2, 3}) ||
		decoded[5].Object != 9 || decoded[6].NewID != 10 {
		t.Fatalf("decoded args mismatch: %+v", decoded)
	}
}

func TestDecodeArgsConsumesFDsInOrder(t *testing.T) {
	sig := []ArgType{ArgFD, ArgUint, ArgFD}
	payload, _, err := Encode(1, 0, []Arg{
		{Type: ArgFD, Fd: 11},
		{Type: ArgUint, Uint: 99},
		{Type: ArgFD, Fd: 22},
	})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	args, remaining, err := DecodeArgs(payload[HeaderSize:], sig, []int{11, 22, 33})
	if err != nil {
		t.Fatalf("DecodeArgs: %v", err)
	}
	if args[0].Fd != 11 || args[2].Fd != 22 {
		t.Fatalf("fds out of order: %+v", args)
	}
	if len(remaining) != 1 || remaining[0] != 33 {
		t.Fatalf("remaining fd queue = %v, want [33]", remaining)
	}
}

func TestDecodeArgsMissingFD(t *testing.T) {
	_, _, err := DecodeArgs([]byte{}, []ArgType{ArgFD}, nil)
	var merr *MalformedError
	if !errors.As(err, &merr) {
		t.Fatalf("expected MalformedError, got %v", err)
	}
}

func TestDecodeArgsInvalidUTF8(t *testing.T) {
	payload := append([]byte{3, 0, 0, 0}, 0xff, 0xfe, 0)
	_, _, err := DecodeArgs(payload, []ArgType{ArgString}, nil)
	if err == nil {
		t.Fatal("expected error for invalid UTF-8 string")
	}
}
