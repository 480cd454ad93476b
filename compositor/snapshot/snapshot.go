// Package snapshot encodes a compositor connection's live object table as
// a msgpack document, for the debugws inspector and offline tooling to
// consume without depending on the wl package's internals directly.
package snapshot

import (
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/bnema/wlcore/wl"
)

// Entry mirrors wl.ObjectSnapshot with msgpack struct tags; kept as a
// separate type so the wire shape of a snapshot doesn't change just
// because wl.ObjectSnapshot's field order does.
type Entry struct {
	ID        uint32 `msgpack:"id"`
	Interface string `msgpack:"interface"`
	Version   uint32 `msgpack:"version"`
}

// Document is one point-in-time capture of a connection's object table.
type Document struct {
	ConnID     string    `msgpack:"conn_id"`
	CapturedAt string    `msgpack:"captured_at"`
	Objects    []Entry   `msgpack:"objects"`
}

// Capture builds a Document from ctx's current object table. takenAt is
// supplied by the caller so a batch of snapshots across several
// connections can share one consistent timestamp.
func Capture(connID string, ctx *wl.Context, takenAt time.Time) Document {
	objs := ctx.Snapshot()
	entries := make([]Entry, len(objs))
	for i, o := range objs {
		entries[i] = Entry{ID: o.ID, Interface: o.Interface, Version: o.Version}
	}
	return Document{
		ConnID:     connID,
		CapturedAt: takenAt.Format(time.RFC3339Nano),
		Objects:    entries,
	}
}

// Encode msgpack-serializes a Document for transmission over the debugws
// inspector channel.
func Encode(doc Document) ([]byte, error) {
	data, err := msgpack.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("snapshot: encoding: %w", err)
	}
	return data, nil
}

// Decode is the inverse of Encode, used by offline tooling reading a
// captured snapshot back.
func Decode(data []byte) (Document, error) {
	var doc Document
	if err := msgpack.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("snapshot: decoding: %w", err)
	}
	return doc, nil
}
