// Package capture follows a growing capture file of monitor output, for
// replaying streams recorded from a live server.
package capture

import (
	"context"
	"fmt"
	"sync"

	"github.com/nxadm/tail"
)

// followErrBuffer is the buffer size for the error channel. A small buffer
// prevents error loss during brief moments when the consumer is busy
// processing lines.
const followErrBuffer = 16

// Follower tails a capture file and emits its lines as they are written.
type Follower struct {
	t      *tail.Tail
	ctx    context.Context
	cancel context.CancelFunc
	lines  chan string
	errors chan error
	doneCh chan struct{}

	mu      sync.Mutex
	stopped bool
}

// Config holds configuration for following a capture file.
type Config struct {
	// Follow continues reading as the file grows (tail -f).
	Follow bool

	// ReOpen reopens the file when it's truncated or recreated (tail -F).
	ReOpen bool

	// Poll uses polling instead of inotify (more compatible but less efficient).
	Poll bool

	// FromStart reads from the beginning of the file instead of the end.
	FromStart bool
}

// DefaultConfig returns the default configuration for capture replay:
// read the whole file, then keep following it.
func DefaultConfig() Config {
	return Config{
		Follow:    true,
		ReOpen:    false,
		Poll:      false,
		FromStart: true,
	}
}

// New creates a Follower for the specified file.
// The provided context controls the follower's lifecycle.
func New(ctx context.Context, filepath string, cfg Config) (*Follower, error) {
	location := &tail.SeekInfo{Offset: 0, Whence: 2} // End of file
	if cfg.FromStart {
		location = &tail.SeekInfo{Offset: 0, Whence: 0}
	}

	t, err := tail.TailFile(filepath, tail.Config{
		Follow:    cfg.Follow,
		ReOpen:    cfg.ReOpen,
		Poll:      cfg.Poll,
		MustExist: true,
		Location:  location,
	})
	if err != nil {
		return nil, fmt.Errorf("opening capture: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)

	f := &Follower{
		t:      t,
		ctx:    ctx,
		cancel: cancel,
		lines:  make(chan string),
		errors: make(chan error, followErrBuffer),
		doneCh: make(chan struct{}),
	}

	go f.run()

	return f, nil
}

// Lines returns a channel that receives capture lines.
func (f *Follower) Lines() <-chan string {
	return f.lines
}

// Errors returns a channel that receives errors from tailing.
// Errors are sent non-blocking; if the buffer is full they are dropped.
func (f *Follower) Errors() <-chan error {
	return f.errors
}

// Stop stops following and closes all channels.
// Safe to call multiple times.
func (f *Follower) Stop() error {
	f.mu.Lock()
	if f.stopped {
		f.mu.Unlock()
		return nil
	}
	f.stopped = true
	f.mu.Unlock()

	f.cancel()
	<-f.doneCh // Wait for run() to finish
	return f.t.Stop()
}

func (f *Follower) run() {
	defer close(f.doneCh)
	defer close(f.lines)
	defer close(f.errors)

	for {
		select {
		case <-f.ctx.Done():
			return
		case line, ok := <-f.t.Lines:
			if !ok {
				return
			}
			if line.Err != nil {
				select {
				case f.errors <- fmt.Errorf("tail: %w", line.Err):
				case <-f.ctx.Done():
					return
				default:
				}
				continue
			}
			select {
			case f.lines <- line.Text:
			case <-f.ctx.Done():
				return
			}
		}
	}
}
