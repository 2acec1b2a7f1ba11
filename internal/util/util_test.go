package util

import (
	"context"
	"testing"
	"time"
)

type sample struct {
	Pin  int    `json:"pin"`
	Name string `json:"name"`
}

func TestDecodeJSON_Shapes(t *testing.T) {
	cases := []any{
		[]byte(`{"pin":3,"name":"a"}`),
		`{"pin":3,"name":"a"}`,
		map[string]any{"pin": 3, "name": "a"},
		sample{Pin: 3, Name: "a"},
		&sample{Pin: 3, Name: "a"},
	}
	for i, c := range cases {
		var got sample
		if err := DecodeJSON(c, &got); err != nil {
			t.Fatalf("case %d: %v", i, err)
		}
		if got.Pin != 3 || got.Name != "a" {
			t.Fatalf("case %d: got %+v", i, got)
		}
	}
}

func TestDecodeJSON_Errors(t *testing.T) {
	var s sample
	if err := DecodeJSON(nil, &s); err == nil {
		t.Fatal("expected error for nil payload")
	}
	if err := DecodeJSON("{not json", &s); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestResetTimer(t *testing.T) {
	tm := time.NewTimer(time.Millisecond)
	time.Sleep(5 * time.Millisecond) // fired, undrained
	ResetTimer(tm, 20*time.Millisecond)
	select {
	case <-tm.C:
		t.Fatal("stale fire leaked through reset")
	case <-time.After(5 * time.Millisecond):
	}
	select {
	case <-tm.C:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("timer never fired after reset")
	}
}

func TestBackoff_DoublesUpToMax(t *testing.T) {
	next := Backoff(250*time.Millisecond, time.Second)
	want := []time.Duration{250 * time.Millisecond, 500 * time.Millisecond, time.Second, time.Second}
	for i, w := range want {
		if d := next(); d != w {
			t.Fatalf("step %d = %v, want %v", i, d, w)
		}
	}

	next = Backoff(0, 0)
	if d := next(); d != 100*time.Millisecond {
		t.Fatalf("defaulted min = %v", d)
	}
	if d := next(); d != 100*time.Millisecond {
		t.Fatalf("max below min not clamped: %v", d)
	}
}

func TestSleep(t *testing.T) {
	if !Sleep(context.Background(), time.Millisecond) {
		t.Fatal("uncancelled sleep reported cancellation")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	if Sleep(ctx, time.Minute) {
		t.Fatal("cancelled sleep reported elapsed")
	}
	if time.Since(start) > time.Second {
		t.Fatal("cancelled sleep did not return promptly")
	}
}
