package types

import "testing"

func TestEventWireBigEndian(t *testing.T) {
	var buf [EventSize]byte
	got := Event{Kind: KindNEC, Value: 0x00FF30CF}.PutWire(buf[:])
	want := []byte{0x03, 0x00, 0xFF, 0x30, 0xCF}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("byte %d got=%#02x want=%#02x", i, got[i], want[i])
		}
	}
	back, ok := EventFromWire(got)
	if !ok || back != (Event{Kind: KindNEC, Value: 0x00FF30CF}) {
		t.Fatalf("parse got=%+v ok=%v", back, ok)
	}
	if _, ok := EventFromWire(got[:4]); ok {
		t.Fatal("short input accepted")
	}
}

func TestSentinel(t *testing.T) {
	if !(Event{}).IsZero() {
		t.Fatal("zero event should be the sentinel")
	}
	if (Event{Kind: KindNEC}).IsZero() {
		t.Fatal("real kind reported as sentinel")
	}
}

func TestNames(t *testing.T) {
	if RegRead.String() != "READ" || Register(0x7F).String() != "UNKNOWN" {
		t.Fatal("register names")
	}
	if KindSamsung.String() != "samsung" || Kind(99).String() != "unknown" {
		t.Fatal("kind names")
	}
}
