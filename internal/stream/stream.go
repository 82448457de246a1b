// Package stream reads newline-delimited records from a live monitor
// connection.
package stream

import (
	"bufio"
	"context"
	"sync"
)

// readerErrBuffer is the buffer size for the error channel. A small buffer
// prevents error loss during brief moments when the consumer is busy.
const readerErrBuffer = 4

// maxLineBytes bounds a single record; monitor records are short, email
// bodies arrive as separate lines.
const maxLineBytes = 512 * 1024

// Conn is the subset of net.Conn the reader needs. Closing it unblocks a
// pending Read, which is how Stop interrupts a reader waiting on the server.
type Conn interface {
	Read(p []byte) (int, error)
	Close() error
}

// Reader turns a Conn into a channel of lines. Lines are delivered without
// their trailing newline or carriage return. The Lines channel closes on
// end-of-stream or read error; a read error is reported on Errors first.
type Reader struct {
	conn   Conn
	ctx    context.Context
	cancel context.CancelFunc
	lines  chan string
	errs   chan error
	doneCh chan struct{}

	mu      sync.Mutex
	stopped bool
}

// New creates a Reader and starts its read goroutine. The provided context
// controls the reader's lifecycle.
func New(ctx context.Context, conn Conn) *Reader {
	ctx, cancel := context.WithCancel(ctx)
	r := &Reader{
		conn:   conn,
		ctx:    ctx,
		cancel: cancel,
		lines:  make(chan string),
		errs:   make(chan error, readerErrBuffer),
		doneCh: make(chan struct{}),
	}
	go r.run()
	return r
}

// Lines returns the channel of received lines. It closes when the
// connection ends.
func (r *Reader) Lines() <-chan string {
	return r.lines
}

// Errors returns the channel carrying the terminal read error, if any.
// A clean end-of-stream produces no error.
func (r *Reader) Errors() <-chan error {
	return r.errs
}

// Stop closes the connection and waits for the read goroutine to exit.
// Safe to call multiple times.
func (r *Reader) Stop() error {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return nil
	}
	r.stopped = true
	r.mu.Unlock()

	r.cancel()
	err := r.conn.Close() // unblocks a pending Read
	<-r.doneCh
	return err
}

func (r *Reader) run() {
	defer close(r.doneCh)
	defer close(r.lines)
	defer close(r.errs)

	scanner := bufio.NewScanner(r.conn)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, maxLineBytes)

	for scanner.Scan() {
		select {
		case r.lines <- scanner.Text():
		case <-r.ctx.Done():
			return
		}
	}
	if err := scanner.Err(); err != nil && r.ctx.Err() == nil {
		select {
		case r.errs <- err:
		default:
		}
	}
}
