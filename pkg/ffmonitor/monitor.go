package ffmonitor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"github.com/OpenFusionProject/ffmonitor/internal/parser"
	"github.com/OpenFusionProject/ffmonitor/internal/stream"
)

// Monitor is a handle to a live monitor connection. Exactly one worker
// goroutine per Monitor owns the socket and drives the read/parse/deliver
// loop; the handle is safe for concurrent use.
//
// A dropped connection is terminal: the worker exits and the Monitor never
// reconnects. Create a new Monitor to connect again.
type Monitor struct {
	log      *slog.Logger
	reader   *stream.Reader
	callback NotificationCallback
	filter   *compiledFilter
	queueCap int
	doneCh   chan struct{} // closed when the worker exits

	mu        sync.Mutex
	queue     []MonitorUpdate
	last      MonitorUpdate
	hasLast   bool
	connected bool
	closed    bool
}

// New connects to a monitor port and spawns the worker in buffered mode:
// each tick's update is appended to an internal FIFO drained by Poll.
//
// The connect is synchronous; a dial failure is returned here and no
// goroutine is started. The queue is unbounded unless WithQueueCapacity is
// set, so callers are expected to Poll frequently.
func New(address string, opts ...Option) (*Monitor, error) {
	return newMonitor(address, nil, opts)
}

// NewWithCallback connects to a monitor port and spawns the worker in
// callback mode: updates are not buffered, and cb receives Connected,
// Updated and Disconnected notifications synchronously on the worker
// goroutine. Poll always reports nothing ready in this mode.
func NewWithCallback(address string, cb NotificationCallback, opts ...Option) (*Monitor, error) {
	if cb == nil {
		return nil, errors.New("ffmonitor: callback must not be nil")
	}
	return newMonitor(address, cb, opts)
}

func newMonitor(address string, cb NotificationCallback, opts []Option) (*Monitor, error) {
	cfg := applyOptions(opts)
	log := cfg.logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	log.Info("connecting to monitor", "address", address)
	conn, err := net.DialTimeout("tcp", address, cfg.dialTimeout)
	if err != nil {
		return nil, fmt.Errorf("connecting to monitor at %s: %w", address, err)
	}

	m := &Monitor{
		log:       log,
		callback:  cb,
		filter:    cfg.filter,
		queueCap:  cfg.queueCapacity,
		doneCh:    make(chan struct{}),
		connected: true,
	}
	m.reader = stream.New(context.Background(), conn)
	go m.run()
	return m, nil
}

// IsConnected reports whether the underlying connection is still alive.
func (m *Monitor) IsConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connected
}

// Poll removes and returns the oldest buffered update. It never blocks: the
// second return value is false when nothing is ready, including permanently
// after the connection has ended and the queue has been drained.
func (m *Monitor) Poll() (MonitorUpdate, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.queue) == 0 {
		return MonitorUpdate{}, false
	}
	update := m.queue[0]
	m.queue[0] = MonitorUpdate{}
	m.queue = m.queue[1:]
	return update, true
}

// LastUpdate returns the most recent update seen on this connection,
// regardless of delivery mode. The second return value is false before the
// first tick arrives.
func (m *Monitor) LastUpdate() (MonitorUpdate, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last, m.hasLast
}

// Close shuts the connection down and waits for the worker goroutine to
// exit. In callback mode the terminal Disconnected notification fires
// before Close returns. Safe to call multiple times.
func (m *Monitor) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		<-m.doneCh
		return nil
	}
	m.closed = true
	m.mu.Unlock()

	err := m.reader.Stop() // closes the socket, unblocking a pending read
	<-m.doneCh
	return err
}

// run is the worker loop: it owns the socket for the lifetime of the
// connection and is the only goroutine that mutates the queue's tail.
func (m *Monitor) run() {
	defer close(m.doneCh)

	m.notify(MonitorNotification{Kind: NotificationConnected})

	framer := parser.NewFramer(m.log)
	for line := range m.reader.Lines() {
		events, ok := framer.Feed(line)
		if !ok {
			continue
		}
		m.deliver(NewMonitorUpdate(m.filter.apply(events)))
	}

	// The error channel is closed by the time Lines drains, so this
	// receive never blocks.
	if err, ok := <-m.reader.Errors(); ok && err != nil {
		m.log.Warn("monitor connection lost", "error", err)
	} else {
		m.log.Info("monitor connection closed")
	}

	m.mu.Lock()
	m.connected = false
	m.mu.Unlock()
	m.notify(MonitorNotification{Kind: NotificationDisconnected})
}

// deliver hands one tick's update to the configured sink.
func (m *Monitor) deliver(update MonitorUpdate) {
	m.mu.Lock()
	m.last = update
	m.hasLast = true
	if m.callback == nil {
		if m.queueCap > 0 && len(m.queue) >= m.queueCap {
			m.log.Debug("update queue full, dropping oldest", "capacity", m.queueCap)
			copy(m.queue, m.queue[1:])
			m.queue = m.queue[:len(m.queue)-1]
		}
		m.queue = append(m.queue, update)
	}
	m.mu.Unlock()

	// Don't buffer when the user is handling updates.
	if m.callback != nil {
		m.callback(MonitorNotification{Kind: NotificationUpdated, Update: update})
	}
}

func (m *Monitor) notify(n MonitorNotification) {
	if m.callback != nil {
		m.callback(n)
	}
}
