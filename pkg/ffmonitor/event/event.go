// Package event defines the event types carried by a monitor stream.
//
// This package is separated from the main ffmonitor package to avoid import
// cycles between pkg/ffmonitor and internal/parser.
package event

import (
	"fmt"
	"sort"
	"strings"
)

// Type identifies the kind of a monitor event. The values match the leading
// keyword of the event's wire record.
type Type string

const (
	// Player is a position report for one in-world player.
	Player Type = "player"

	// Chat is a chat message relayed by the server.
	Chat Type = "chat"

	// Broadcast is a server-wide announcement.
	Broadcast Type = "bcast"

	// Email is an in-game email notification, including its body.
	Email Type = "email"

	// NameRequest is a pending player name-change request.
	NameRequest Type = "namereq"
)

// allTypes is the canonical list of all event types.
// Add new event types here when extending the parser.
var allTypes = []Type{Player, Chat, Broadcast, Email, NameRequest}

// TypeNames returns a sorted list of all valid event type names.
// This is the single source of truth for event type enumeration.
func TypeNames() []string {
	names := make([]string, len(allTypes))
	for i, t := range allTypes {
		names[i] = string(t)
	}
	sort.Strings(names)
	return names
}

// typeByName maps lowercase string names to Type for efficient lookup.
// Built once from allTypes at package initialization.
var typeByName = func() map[string]Type {
	m := make(map[string]Type, len(allTypes))
	for _, t := range allTypes {
		m[string(t)] = t
	}
	return m
}()

// ParseType converts a string to Type if valid.
// It is case-insensitive and trims leading/trailing whitespace.
// Returns the type and true if found, zero value and false otherwise.
func ParseType(name string) (Type, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	t, ok := typeByName[name]
	return t, ok
}

// Event is the closed set of records a monitor stream can carry.
// The concrete types are PlayerEvent, ChatEvent, BroadcastEvent, EmailEvent
// and NameRequestEvent; dispatch with a type switch.
//
// String returns the event's wire record, parseable back into an equal event.
type Event interface {
	fmt.Stringer

	// Type reports the event kind without a type switch.
	Type() Type

	sealed()
}

// PlayerEvent reports the position of one in-world player.
type PlayerEvent struct {
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Name string `json:"name"`
}

func (PlayerEvent) Type() Type { return Player }
func (PlayerEvent) sealed()    {}

func (e PlayerEvent) String() string {
	return fmt.Sprintf("player %d %d %s", e.X, e.Y, e.Name)
}

// ChatKind is the channel a chat message was sent on. Known values are the
// lowercase wire tokens; unrecognized tokens are carried through verbatim.
type ChatKind string

const (
	FreeChat      ChatKind = "freechat"
	MenuChat      ChatKind = "menuchat"
	BuddyChat     ChatKind = "buddychat"
	BuddyMenuChat ChatKind = "buddymenuchat"
	GroupChat     ChatKind = "groupchat"
	GroupMenuChat ChatKind = "groupmenuchat"
	TradeChat     ChatKind = "tradechat"
)

var knownChatKinds = map[ChatKind]struct{}{
	FreeChat:      {},
	MenuChat:      {},
	BuddyChat:     {},
	BuddyMenuChat: {},
	GroupChat:     {},
	GroupMenuChat: {},
	TradeChat:     {},
}

// ParseChatKind normalizes a wire token to a ChatKind. Unknown tokens are
// preserved as-is so they survive a round trip.
func ParseChatKind(s string) ChatKind {
	k := ChatKind(strings.ToLower(s))
	if _, ok := knownChatKinds[k]; ok {
		return k
	}
	return ChatKind(s)
}

// Known reports whether the kind is one of the recognized chat channels.
func (k ChatKind) Known() bool {
	_, ok := knownChatKinds[k]
	return ok
}

// ChatEvent is a chat message. To is empty for open-channel messages and
// names the recipient for directed ones.
type ChatEvent struct {
	Kind    ChatKind `json:"kind"`
	From    string   `json:"from"`
	To      string   `json:"to,omitempty"`
	Message string   `json:"message"`
}

func (ChatEvent) Type() Type { return Chat }
func (ChatEvent) sealed()    {}

func (e ChatEvent) String() string {
	if e.To != "" {
		return fmt.Sprintf("chat [%s] %s (to %s): %s", e.Kind, e.From, e.To, e.Message)
	}
	return fmt.Sprintf("chat [%s] %s: %s", e.Kind, e.From, e.Message)
}

// BroadcastScope is the audience of a broadcast announcement.
type BroadcastScope int

const (
	ScopeLocal BroadcastScope = iota
	ScopeChannel
	ScopeShard
	ScopeGlobal
)

// ParseBroadcastScope validates a wire scope code.
func ParseBroadcastScope(code int) (BroadcastScope, error) {
	if code < int(ScopeLocal) || code > int(ScopeGlobal) {
		return 0, fmt.Errorf("unknown broadcast scope %d", code)
	}
	return BroadcastScope(code), nil
}

func (s BroadcastScope) String() string {
	switch s {
	case ScopeLocal:
		return "local"
	case ScopeChannel:
		return "channel"
	case ScopeShard:
		return "shard"
	case ScopeGlobal:
		return "global"
	}
	return fmt.Sprintf("scope(%d)", int(s))
}

// BroadcastEvent is a timed server announcement.
type BroadcastEvent struct {
	Scope            BroadcastScope `json:"scope"`
	AnnouncementType int            `json:"announcement_type"`
	DurationSecs     int            `json:"duration_secs"`
	From             string         `json:"from"`
	Message          string         `json:"message"`
}

func (BroadcastEvent) Type() Type { return Broadcast }
func (BroadcastEvent) sealed()    {}

func (e BroadcastEvent) String() string {
	return fmt.Sprintf("bcast %d %d %d %s: %s",
		int(e.Scope), e.AnnouncementType, e.DurationSecs, e.From, e.Message)
}

// NoSubject is the wire placeholder for an email without a subject line.
const NoSubject = "No subject."

// EmailEvent is an in-game email. Subject is empty when the sender gave
// none; Body holds the message lines without their wire indentation.
type EmailEvent struct {
	From    string   `json:"from"`
	To      string   `json:"to"`
	Subject string   `json:"subject,omitempty"`
	Body    []string `json:"body"`
}

func (EmailEvent) Type() Type { return Email }
func (EmailEvent) sealed()    {}

func (e EmailEvent) String() string {
	subject := e.Subject
	if subject == "" {
		subject = NoSubject
	}
	var b strings.Builder
	fmt.Fprintf(&b, "email [Email] %s (to %s): <%s>", e.From, e.To, subject)
	for _, line := range e.Body {
		b.WriteString("\n\t")
		b.WriteString(line)
	}
	b.WriteString("\nendemail")
	return b.String()
}

// NameRequestEvent is a pending name-change request awaiting approval.
type NameRequestEvent struct {
	PlayerUID     uint64 `json:"player_uid"`
	RequestedName string `json:"requested_name"`
}

func (NameRequestEvent) Type() Type { return NameRequest }
func (NameRequestEvent) sealed()    {}

func (e NameRequestEvent) String() string {
	return fmt.Sprintf("namereq %d %s", e.PlayerUID, e.RequestedName)
}
