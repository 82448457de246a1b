package ffmonitor

// NotificationKind discriminates the lifecycle notifications delivered to a
// callback-mode Monitor.
type NotificationKind int

const (
	// NotificationConnected fires once, before the first tick is read.
	NotificationConnected NotificationKind = iota

	// NotificationUpdated carries one tick's MonitorUpdate.
	NotificationUpdated

	// NotificationDisconnected fires exactly once when the connection ends,
	// whether from a server-side close, a read error, or Close.
	NotificationDisconnected
)

func (k NotificationKind) String() string {
	switch k {
	case NotificationConnected:
		return "connected"
	case NotificationUpdated:
		return "updated"
	case NotificationDisconnected:
		return "disconnected"
	}
	return "unknown"
}

// MonitorNotification is one message from the monitor worker to a
// callback-mode consumer. Update is populated only for NotificationUpdated.
type MonitorNotification struct {
	Kind   NotificationKind
	Update MonitorUpdate
}

// NotificationCallback receives notifications synchronously on the worker
// goroutine. It must not block for long: the worker does not read further
// protocol data until the callback returns.
type NotificationCallback func(MonitorNotification)
