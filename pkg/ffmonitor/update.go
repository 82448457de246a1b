package ffmonitor

import (
	"strings"

	"github.com/OpenFusionProject/ffmonitor/pkg/ffmonitor/event"
)

// MonitorUpdate is an immutable snapshot of one monitor tick: the events the
// server pushed between one begin/end pair, in arrival order. A tick with no
// events is a valid, expected state.
type MonitorUpdate struct {
	events []event.Event
}

// NewMonitorUpdate builds an update from events, preserving their order.
// The slice is copied.
func NewMonitorUpdate(events []event.Event) MonitorUpdate {
	u := MonitorUpdate{}
	if len(events) > 0 {
		u.events = make([]event.Event, len(events))
		copy(u.events, events)
	}
	return u
}

// AddEvent appends an event to the update. Useful for building synthetic
// updates, for example to feed a test server.
func (u *MonitorUpdate) AddEvent(ev event.Event) {
	u.events = append(u.events, ev)
}

// Events returns the tick's events in arrival order. The returned slice is
// a copy; mutating it does not affect the update.
func (u MonitorUpdate) Events() []event.Event {
	if len(u.events) == 0 {
		return nil
	}
	events := make([]event.Event, len(u.events))
	copy(events, u.events)
	return events
}

// Len returns the number of events in the update.
func (u MonitorUpdate) Len() int {
	return len(u.events)
}

// PlayerCount returns the session population the server reported in this
// tick, which on the wire is the number of player records it carries.
func (u MonitorUpdate) PlayerCount() int {
	count := 0
	for _, ev := range u.events {
		if ev.Type() == event.Player {
			count++
		}
	}
	return count
}

// String re-emits the update as a wire tick, parseable back into an equal
// update.
func (u MonitorUpdate) String() string {
	var b strings.Builder
	b.WriteString("begin\n")
	for _, ev := range u.events {
		b.WriteString(ev.String())
		b.WriteByte('\n')
	}
	b.WriteString("end")
	return b.String()
}
