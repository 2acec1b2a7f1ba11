package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestCopyLines(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("00:01.000 INF boot device=pico\r\n00:01.002 INF started\npartial")
	err := copyLines(in, &out)
	if !errors.Is(err, io.EOF) {
		t.Fatalf("err = %v, want EOF", err)
	}
	want := "00:01.000 INF boot device=pico\n00:01.002 INF started\npartial\n"
	if out.String() != want {
		t.Fatalf("out = %q, want %q", out.String(), want)
	}
}

// pipePort is a port whose reads block until data arrives or it is closed.
type pipePort struct {
	*io.PipeReader
	closes atomic.Int32
}

func (p *pipePort) Close() error {
	p.closes.Add(1)
	return p.PipeReader.Close()
}

func TestFollow_ClosesOnceWhenPortFails(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r, w := io.Pipe()
	port := &pipePort{PipeReader: r}
	go func() {
		_, _ = w.Write([]byte("line\n"))
		w.CloseWithError(errors.New("unplugged"))
	}()

	var out bytes.Buffer
	if err := follow(ctx, port, &out); err == nil || err.Error() != "unplugged" {
		t.Fatalf("err = %v, want unplugged", err)
	}
	if out.String() != "line\n" {
		t.Fatalf("out = %q", out.String())
	}

	// The watcher has exited: cancelling now must not close again.
	cancel()
	time.Sleep(10 * time.Millisecond)
	if n := port.closes.Load(); n != 1 {
		t.Fatalf("closes = %d, want 1", n)
	}
}

func TestFollow_CancelUnblocksRead(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r, _ := io.Pipe()
	port := &pipePort{PipeReader: r}

	errc := make(chan error, 1)
	go func() { errc <- follow(ctx, port, io.Discard) }()
	cancel()

	select {
	case <-errc:
	case <-time.After(time.Second):
		t.Fatal("follow still blocked after cancel")
	}
	if n := port.closes.Load(); n != 1 {
		t.Fatalf("closes = %d, want 1", n)
	}
}
