// Package parser turns monitor wire records into events.
//
// One record is one line, except email records which span a header line,
// tab-indented body lines, and a closing "endemail" line.
package parser

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/OpenFusionProject/ffmonitor/pkg/ffmonitor/event"
)

var (
	playerRe = regexp.MustCompile(`^player (-?\d+) (-?\d+) (.+)$`)
	chatRe   = regexp.MustCompile(`^chat \[(.+?)\] (.+?)(?: \(to (.+)\))?: (.*)$`)
	bcastRe  = regexp.MustCompile(`^bcast (\d+) (\d+) (\d+) (.+?): (.*)$`)
	emailRe  = regexp.MustCompile(`^email \[Email\] (.+?) \(to (.+?)\): <(.+)>$`)
	nameRe   = regexp.MustCompile(`^namereq (\d+) (.+)$`)
)

// ParseError reports a record that did not match its wire grammar.
type ParseError struct {
	Line string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %q: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func malformed(line string, err error) error {
	return &ParseError{Line: line, Err: err}
}

// ParsePlayer parses a "player <x> <y> <name>" record.
func ParsePlayer(line string) (event.PlayerEvent, error) {
	m := playerRe.FindStringSubmatch(line)
	if m == nil {
		return event.PlayerEvent{}, malformed(line, errMalformed)
	}
	x, err := strconv.Atoi(m[1])
	if err != nil {
		return event.PlayerEvent{}, malformed(line, fmt.Errorf("invalid x coordinate: %w", err))
	}
	y, err := strconv.Atoi(m[2])
	if err != nil {
		return event.PlayerEvent{}, malformed(line, fmt.Errorf("invalid y coordinate: %w", err))
	}
	return event.PlayerEvent{X: x, Y: y, Name: m[3]}, nil
}

// ParseChat parses a "chat [<kind>] <from>[ (to <to>)]: <message>" record.
func ParseChat(line string) (event.ChatEvent, error) {
	m := chatRe.FindStringSubmatch(line)
	if m == nil {
		return event.ChatEvent{}, malformed(line, errMalformed)
	}
	return event.ChatEvent{
		Kind:    event.ParseChatKind(m[1]),
		From:    m[2],
		To:      m[3],
		Message: m[4],
	}, nil
}

// ParseBroadcast parses a "bcast <scope> <type> <duration> <from>: <message>" record.
func ParseBroadcast(line string) (event.BroadcastEvent, error) {
	m := bcastRe.FindStringSubmatch(line)
	if m == nil {
		return event.BroadcastEvent{}, malformed(line, errMalformed)
	}
	code, err := strconv.Atoi(m[1])
	if err != nil {
		return event.BroadcastEvent{}, malformed(line, err)
	}
	scope, err := event.ParseBroadcastScope(code)
	if err != nil {
		return event.BroadcastEvent{}, malformed(line, err)
	}
	announcement, err := strconv.Atoi(m[2])
	if err != nil {
		return event.BroadcastEvent{}, malformed(line, err)
	}
	duration, err := strconv.Atoi(m[3])
	if err != nil {
		return event.BroadcastEvent{}, malformed(line, err)
	}
	return event.BroadcastEvent{
		Scope:            scope,
		AnnouncementType: announcement,
		DurationSecs:     duration,
		From:             m[4],
		Message:          m[5],
	}, nil
}

// ParseEmail parses an email header record plus its already-collected body
// lines. Body lines must have their leading indentation stripped.
func ParseEmail(header string, body []string) (event.EmailEvent, error) {
	m := emailRe.FindStringSubmatch(header)
	if m == nil {
		return event.EmailEvent{}, malformed(header, errMalformed)
	}
	subject := m[3]
	if subject == event.NoSubject {
		subject = ""
	}
	return event.EmailEvent{From: m[1], To: m[2], Subject: subject, Body: body}, nil
}

// ParseNameRequest parses a "namereq <uid> <name>" record.
func ParseNameRequest(line string) (event.NameRequestEvent, error) {
	m := nameRe.FindStringSubmatch(line)
	if m == nil {
		return event.NameRequestEvent{}, malformed(line, errMalformed)
	}
	uid, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return event.NameRequestEvent{}, malformed(line, fmt.Errorf("invalid player uid: %w", err))
	}
	return event.NameRequestEvent{PlayerUID: uid, RequestedName: m[2]}, nil
}
