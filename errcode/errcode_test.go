package errcode

import (
	"errors"
	"testing"
)

func TestCodesAreStableStrings(t *testing.T) {
	cases := map[string]Code{
		"no_response":          NoResponse,
		"unknown_address":      UnknownAddress,
		"unsupported_register": UnsupportedRegister,
		"queue_empty":          QueueEmpty,
		"invalid_config":       InvalidConfig,
	}
	for want, c := range cases {
		if c.Error() != want {
			t.Fatalf("code %q mismatch: got %q", want, c.Error())
		}
	}
}

func TestOf(t *testing.T) {
	if Of(nil) != OK {
		t.Fatal("nil should map to OK")
	}
	if Of(NoResponse) != NoResponse {
		t.Fatal("bare code not preserved")
	}
	cause := errors.New("bus stuck")
	e := Wrap(Timeout, "read", cause)
	if Of(e) != Timeout {
		t.Fatalf("wrapped code got=%q", Of(e))
	}
	if !errors.Is(e, cause) {
		t.Fatal("cause not reachable through Unwrap")
	}
	if e.Error() != "read: timeout: bus stuck" {
		t.Fatalf("message got=%q", e.Error())
	}
	if Of(errors.New("x")) != Error {
		t.Fatal("foreign error should map to Error")
	}
}
