// Command ir2i2c-console follows the bridge's log UART from a host through
// a USB serial adapter. The bridge restarts on RESET and on watchdog expiry;
// the console keeps retrying the port so the log survives adapter replugs.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"ir2i2c/internal/util"

	"github.com/jacobsa/go-serial/serial"
	"github.com/lmittmann/tint"
)

var (
	tty   = flag.String("tty", "/dev/ttyUSB0", "serial device wired to the bridge's log UART")
	baud  = flag.Uint("baud", 115200, "serial baud rate")
	retry    = flag.Duration("retry", 250*time.Millisecond, "first delay before reopening a lost port")
	retryMax = flag.Duration("retry-max", 5*time.Second, "longest delay between reopen attempts")
)

func main() {
	flag.Parse()
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{TimeFormat: time.TimeOnly})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	backoff := util.Backoff(*retry, *retryMax)
	for {
		port, err := serial.Open(serial.OpenOptions{
			PortName:        *tty,
			BaudRate:        *baud,
			DataBits:        8,
			StopBits:        1,
			MinimumReadSize: 1,
		})
		if err == nil {
			slog.Info("connected", "tty", *tty, "baud", *baud)
			backoff = util.Backoff(*retry, *retryMax)
			err = follow(ctx, port, os.Stdout)
		}
		if ctx.Err() != nil {
			return
		}
		delay := backoff()
		slog.Warn("port lost", "tty", *tty, "error", err, "retry_in", delay)
		if !util.Sleep(ctx, delay) {
			return
		}
	}
}

// follow copies log lines from port to w until the port fails or ctx is
// cancelled, and closes port exactly once either way.
func follow(ctx context.Context, port io.ReadCloser, w io.Writer) error {
	done := make(chan struct{})
	stopped := make(chan struct{})
	closed := false
	go func() {
		defer close(stopped)
		select {
		case <-ctx.Done():
			// Unblocks the pending read.
			port.Close()
			closed = true
		case <-done:
		}
	}()

	err := copyLines(port, w)
	close(done)
	<-stopped
	if !closed {
		port.Close()
	}
	return err
}

// copyLines forwards complete lines; a partial line at EOF is flushed too.
func copyLines(r io.Reader, w io.Writer) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 256), 4096)
	for sc.Scan() {
		if _, err := fmt.Fprintln(w, sc.Text()); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return io.EOF
}
