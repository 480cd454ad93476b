package objtab

import "testing"

func TestAllocSequential(t *testing.T) {
	tb := NewClientTable()
	for i, want := range []uint32{2, 3, 4} {
		got, err := tb.Alloc()
		if err != nil {
			t.Fatalf("Alloc #%d: %v", i, err)
		}
		if got != want {
			t.Fatalf("Alloc #%d = %d, want %d", i, got, want)
		}
	}
}

func TestIDRecycling(t *testing.T) {
	// Scenario 6: create then destroy id=5, next create_surface call
	// returns 5 before consuming a fresh integer.
	tb := NewClientTable()
	var id uint32
	for id != 5 {
		var err error
		id, err = tb.Alloc()
		if err != nil {
			t.Fatal(err)
		}
		if err := tb.Register(id, "surface"); err != nil {
			t.Fatal(err)
		}
	}
	if err := tb.Release(5); err != nil {
		t.Fatalf("Release(5): %v", err)
	}
	next, err := tb.Alloc()
	if err != nil {
		t.Fatal(err)
	}
	if next != 5 {
		t.Fatalf("Alloc after release = %d, want 5 (recycled)", next)
	}
}

func TestRegisterDuplicateIsError(t *testing.T) {
	tb := NewClientTable()
	if err := tb.Register(2, "a"); err != nil {
		t.Fatal(err)
	}
	if err := tb.Register(2, "b"); err == nil {
		t.Fatal("expected error registering a live id twice")
	}
}

func TestReleaseTwiceIsError(t *testing.T) {
	tb := NewClientTable()
	tb.Register(2, "a")
	if err := tb.Release(2); err != nil {
		t.Fatalf("first release: %v", err)
	}
	if err := tb.Release(2); err == nil {
		t.Fatal("expected error on second release of same id")
	}
}

func TestResolveUnknown(t *testing.T) {
	tb := NewClientTable()
	if _, ok := tb.Resolve(999); ok {
		t.Fatal("expected Resolve of unregistered id to fail")
	}
}

func TestServerTableStartsInServerRange(t *testing.T) {
	tb := NewServerTable()
	id, err := tb.Alloc()
	if err != nil {
		t.Fatal(err)
	}
	if id < ServerIDBase {
		t.Fatalf("server table allocated %d, want >= %d", id, ServerIDBase)
	}
}

func TestLiveDisjointFromFreeList(t *testing.T) {
	tb := NewClientTable()
	ids := make([]uint32, 0, 5)
	for i := 0; i < 5; i++ {
		id, _ := tb.Alloc()
		tb.Register(id, i)
		ids = append(ids, id)
	}
	tb.Release(ids[2])
	for _, id := range tb.freeList {
		if tb.Live(id) {
			t.Fatalf("id %d is both live and in the free list", id)
		}
	}
}
