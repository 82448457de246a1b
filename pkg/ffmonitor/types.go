package ffmonitor

import "github.com/OpenFusionProject/ffmonitor/pkg/ffmonitor/event"

// Re-export event types for convenience.
// Users can import just "github.com/OpenFusionProject/ffmonitor/pkg/ffmonitor"
// and use ffmonitor.Event, ffmonitor.EventPlayer, etc.

// Event represents a single parsed monitor record.
type Event = event.Event

// EventType represents the kind of a monitor event.
type EventType = event.Type

// Event type constants.
const (
	EventPlayer      = event.Player
	EventChat        = event.Chat
	EventBroadcast   = event.Broadcast
	EventEmail       = event.Email
	EventNameRequest = event.NameRequest
)

// Concrete event variants; dispatch with a type switch.
type (
	PlayerEvent      = event.PlayerEvent
	ChatEvent        = event.ChatEvent
	BroadcastEvent   = event.BroadcastEvent
	EmailEvent       = event.EmailEvent
	NameRequestEvent = event.NameRequestEvent
)
