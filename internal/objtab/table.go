// Package objtab implements the per-connection object table: the mapping
// from 32-bit Wayland object IDs to live protocol objects, with ID
// allocation and free-list recycling as described by the protocol core.
package objtab

import (
	"fmt"
)

// ServerIDBase is the first ID in the server-allocated range
// (0xFF000000..0xFFFFFFFF).
const ServerIDBase = 0xFF000000

// ClientIDMax is the last ID in the client-allocated range.
const ClientIDMax = 0xFEFFFFFF

// Table is a connection's object table: a map from ID to object, a
// reclaimed-ID free list, and a monotonic counter for fresh IDs. It is not
// safe for concurrent use — each Context owns exactly one Table and drives
// it from a single goroutine.
type Table struct {
	objects  map[uint32]any
	freeList []uint32
	next     uint32
	max      uint32
}

// NewClientTable returns a table suitable for the client side of a
// connection: ID 1 is reserved for the Display object, so allocation starts
// at 2.
func NewClientTable() *Table {
	return &Table{
		objects: make(map[uint32]any),
		next:    2,
		max:     ClientIDMax,
	}
}

// NewServerTable returns a table suitable for the server side of a
// connection. Server-allocated IDs (delete_id targets the server creates on
// its own initiative, e.g. per-connection Callback objects for requests the
// client didn't new_id itself) start at ServerIDBase; client-allocated IDs
// below that are accepted via Register as the client introduces them.
func NewServerTable() *Table {
	return &Table{
		objects: make(map[uint32]any),
		next:    ServerIDBase,
		max:     0xFFFFFFFF,
	}
}

// Alloc returns an ID for a new object: a recycled ID from the free list if
// one is available, otherwise the next unused counter value. It does not
// register the ID — callers must still call Register.
func (t *Table) Alloc() (uint32, error) {
	if n := len(t.freeList); n > 0 {
		id := t.freeList[n-1]
		t.freeList = t.freeList[:n-1]
		return id, nil
	}
	if t.next > t.max {
		return 0, fmt.Errorf("objtab: id space exhausted")
	}
	id := t.next
	t.next++
	return id, nil
}

// Register inserts obj under id. It is a protocol error to register an ID
// that is already live.
func (t *Table) Register(id uint32, obj any) error {
	if id == 0 {
		return fmt.Errorf("objtab: cannot register null id")
	}
	if _, live := t.objects[id]; live {
		return fmt.Errorf("objtab: id %d is already live", id)
	}
	t.objects[id] = obj
	return nil
}

// Resolve looks up the live object registered under id.
func (t *Table) Resolve(id uint32) (any, bool) {
	obj, ok := t.objects[id]
	return obj, ok
}

// Release removes id from the table and returns it to the free list. It is
// a protocol error to release an ID that is not currently live — the first
// release of a given ID succeeds exactly once.
func (t *Table) Release(id uint32) error {
	if _, live := t.objects[id]; !live {
		return fmt.Errorf("objtab: release of id %d which is not live", id)
	}
	delete(t.objects, id)
	t.freeList = append(t.freeList, id)
	return nil
}

// Live reports whether id currently names a live object.
func (t *Table) Live(id uint32) bool {
	_, ok := t.objects[id]
	return ok
}

// Len returns the number of currently live objects.
func (t *Table) Len() int {
	return len(t.objects)
}

// Each calls fn once for every live (id, object) pair, in unspecified order.
// Used by Context.Snapshot to list every live object.
func (t *Table) Each(fn func(id uint32, obj any)) {
	for id, obj := range t.objects {
		fn(id, obj)
	}
}
