// Package ffmonitor is a client for the monitor port exposed by OpenFusion
// game servers.
//
// The monitor port pushes a line-oriented text stream of "ticks": blocks of
// records framed by begin/end lines, carrying player positions, chat
// messages, broadcasts, emails and name-change requests. This package owns
// the connection on a background goroutine, parses each tick into a
// MonitorUpdate, and hands the updates to the consumer in one of two modes.
//
// # Buffered mode
//
// New connects and queues each update; drain the queue with Poll:
//
//	monitor, err := ffmonitor.New("127.0.0.1:8003")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer monitor.Close()
//
//	for {
//	    for update, ok := monitor.Poll(); ok; update, ok = monitor.Poll() {
//	        fmt.Printf("players: %d\n", update.PlayerCount())
//	        for _, ev := range update.Events() {
//	            switch ev := ev.(type) {
//	            case ffmonitor.ChatEvent:
//	                fmt.Printf("\t[%s] %s: %s\n", ev.Kind, ev.From, ev.Message)
//	            case ffmonitor.PlayerEvent:
//	                fmt.Printf("\t%s at (%d, %d)\n", ev.Name, ev.X, ev.Y)
//	            }
//	        }
//	    }
//	    if !monitor.IsConnected() {
//	        return
//	    }
//	    time.Sleep(500 * time.Millisecond)
//	}
//
// # Callback mode
//
// NewWithCallback invokes a callback on the worker goroutine instead of
// buffering. The callback also receives Connected and Disconnected
// notifications, and must return promptly: parsing stalls until it does.
//
//	monitor, err := ffmonitor.NewWithCallback("127.0.0.1:8003",
//	    func(n ffmonitor.MonitorNotification) {
//	        if n.Kind == ffmonitor.NotificationUpdated {
//	            fmt.Printf("players: %d\n", n.Update.PlayerCount())
//	        }
//	    })
//
// A dropped connection is terminal in both modes: Poll drains whatever is
// queued and then permanently reports nothing ready, and callback mode
// receives exactly one Disconnected notification. There is no automatic
// reconnection; create a new Monitor to connect again.
//
// Malformed records in the stream are skipped, never fatal. ParseStream and
// ParseFile apply the same parser to captured monitor output offline.
package ffmonitor
