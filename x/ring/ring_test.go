package ring

import "testing"

type ev struct {
	kind  uint8
	value uint32
}

func TestFIFOUpToCapacity(t *testing.T) {
	r := New[ev](10)
	if r.Cap() != 9 {
		t.Fatalf("cap got=%d want=9", r.Cap())
	}
	for i := 0; i < r.Cap(); i++ {
		if dropped := r.Push(ev{kind: 1, value: uint32(i)}); dropped {
			t.Fatalf("unexpected drop at %d", i)
		}
		if r.Len() != i+1 {
			t.Fatalf("len got=%d want=%d", r.Len(), i+1)
		}
	}
	for i := 0; i < 9; i++ {
		v, ok := r.Pop()
		if !ok || v.value != uint32(i) {
			t.Fatalf("pop %d got=%+v ok=%v", i, v, ok)
		}
	}
	if r.Len() != 0 {
		t.Fatalf("len after drain got=%d", r.Len())
	}
}

func TestPushIntoFullDropsOldest(t *testing.T) {
	r := New[ev](10)
	for i := 0; i < 9; i++ {
		r.Push(ev{kind: 1, value: uint32(i)})
	}
	if !r.Full() {
		t.Fatal("expected full ring")
	}
	if dropped := r.Push(ev{kind: 1, value: 100}); !dropped {
		t.Fatal("expected drop on full push")
	}
	if r.Len() != 9 {
		t.Fatalf("len got=%d want=9", r.Len())
	}
	// values 1..8 (the newest N-2 of the old ones) then 100
	for want := uint32(1); want <= 8; want++ {
		v, _ := r.Pop()
		if v.value != want {
			t.Fatalf("got=%d want=%d", v.value, want)
		}
	}
	if v, _ := r.Pop(); v.value != 100 {
		t.Fatalf("newest got=%d want=100", v.value)
	}
}

func TestPopEmptyLeavesCursors(t *testing.T) {
	r := New[ev](4)
	r.Push(ev{kind: 2, value: 7})
	r.Pop()
	s0, e0 := r.Cursors()
	v, ok := r.Pop()
	if ok || v != (ev{}) {
		t.Fatalf("empty pop got=%+v ok=%v", v, ok)
	}
	if _, ok := r.Peek(); ok {
		t.Fatal("peek on empty ring reported ok")
	}
	s1, e1 := r.Cursors()
	if s0 != s1 || e0 != e1 {
		t.Fatalf("cursors moved: (%d,%d) -> (%d,%d)", s0, e0, s1, e1)
	}
}

func TestWrapAroundLength(t *testing.T) {
	r := New[int](5)
	for round := 0; round < 20; round++ {
		r.Push(round)
		r.Push(round + 1000)
		if r.Len() != 2 {
			t.Fatalf("round %d len got=%d", round, r.Len())
		}
		if v, _ := r.Pop(); v != round {
			t.Fatalf("round %d got=%d", round, v)
		}
		if v, _ := r.Peek(); v != round+1000 {
			t.Fatalf("round %d peek got=%d", round, v)
		}
		r.Pop()
	}
}

func TestReset(t *testing.T) {
	r := New[int](3)
	r.Push(1)
	r.Push(2)
	r.Reset()
	if s, e := r.Cursors(); s != 0 || e != 0 || r.Len() != 0 {
		t.Fatalf("after reset start=%d end=%d len=%d", s, e, r.Len())
	}
}

func TestNewPanicsOnBadSize(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for size 1")
		}
	}()
	New[int](1)
}
