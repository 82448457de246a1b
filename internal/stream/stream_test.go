package stream

import (
	"context"
	"net"
	"testing"
	"time"
)

func recvLine(t *testing.T, r *Reader) string {
	t.Helper()
	select {
	case line, ok := <-r.Lines():
		if !ok {
			t.Fatal("Lines closed unexpectedly")
		}
		return line
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for line")
	}
	return ""
}

func TestReader_Lines(t *testing.T) {
	server, client := net.Pipe()
	r := New(context.Background(), client)
	defer r.Stop()

	go func() {
		server.Write([]byte("begin\nplayer 1 2 Bob\r\nend\n"))
	}()

	for _, want := range []string{"begin", "player 1 2 Bob", "end"} {
		if got := recvLine(t, r); got != want {
			t.Errorf("line = %q, want %q", got, want)
		}
	}
}

func TestReader_PeerCloseEndsStream(t *testing.T) {
	server, client := net.Pipe()
	r := New(context.Background(), client)
	defer r.Stop()

	go func() {
		server.Write([]byte("hello\n"))
		server.Close()
	}()

	if got := recvLine(t, r); got != "hello" {
		t.Errorf("line = %q, want hello", got)
	}

	select {
	case _, ok := <-r.Lines():
		if ok {
			t.Error("expected Lines to close after peer close")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Lines did not close after peer close")
	}

	// A graceful close is not an error.
	select {
	case err, ok := <-r.Errors():
		if ok {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Errors did not close")
	}
}

func TestReader_StopUnblocksRead(t *testing.T) {
	_, client := net.Pipe()
	r := New(context.Background(), client)

	done := make(chan error, 1)
	go func() { done <- r.Stop() }()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return while read was pending")
	}

	select {
	case _, ok := <-r.Lines():
		if ok {
			t.Error("expected Lines to close after Stop")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Lines did not close after Stop")
	}
}

func TestReader_StopTwice(t *testing.T) {
	_, client := net.Pipe()
	r := New(context.Background(), client)
	if err := r.Stop(); err != nil {
		t.Fatalf("first Stop() error = %v", err)
	}
	if err := r.Stop(); err != nil {
		t.Fatalf("second Stop() error = %v", err)
	}
}
