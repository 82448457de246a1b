package parser

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/OpenFusionProject/ffmonitor/pkg/ffmonitor/event"
)

var errMalformed = errors.New("record does not match wire grammar")

// Wire framing keywords.
const (
	frameBegin = "begin"
	frameEnd   = "end"
	emailEnd   = "endemail"
)

// Framer segments a monitor line stream into ticks. Lines between "begin"
// and "end" are buffered; when "end" arrives the buffered records are parsed
// into events in arrival order. Malformed records are logged and skipped,
// never fatal.
type Framer struct {
	log   *slog.Logger
	onErr func(*ParseError)
	lines []string
}

// NewFramer creates a Framer. A nil logger discards parse warnings.
func NewFramer(log *slog.Logger) *Framer {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Framer{log: log}
}

// OnError registers fn to receive each malformed or unrecognized record, in
// addition to the warn log. The record is still skipped.
func (f *Framer) OnError(fn func(*ParseError)) {
	f.onErr = fn
}

// Feed consumes one line, without its trailing newline. When the line
// completes a tick, Feed returns the tick's events (an empty, non-nil slice
// for an event-free tick) and true.
func (f *Framer) Feed(line string) ([]event.Event, bool) {
	switch line {
	case frameBegin:
		f.lines = f.lines[:0]
		return nil, false
	case frameEnd:
		return f.drain(), true
	default:
		f.lines = append(f.lines, line)
		return nil, false
	}
}

func firstToken(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// drain parses the buffered records of one tick. A tick with no events is a
// valid, expected state: drain always returns a non-nil slice.
func (f *Framer) drain() []event.Event {
	events := make([]event.Event, 0, len(f.lines))
	for len(f.lines) > 0 {
		line := f.lines[0]
		f.lines = f.lines[1:]

		var (
			ev  event.Event
			err error
		)
		switch tok := firstToken(line); tok {
		case "player":
			ev, err = ParsePlayer(line)
		case "chat":
			ev, err = ParseChat(line)
		case "bcast":
			ev, err = ParseBroadcast(line)
		case "namereq":
			ev, err = ParseNameRequest(line)
		case "email":
			ev, err = f.drainEmail(line)
		case "":
			f.log.Warn("empty line in monitor tick")
			continue
		default:
			f.log.Warn("unknown record in monitor tick", "token", tok, "line", line)
			f.fail(malformed(line, errors.New("unknown record type")))
			continue
		}
		if err != nil {
			f.log.Warn("bad record in monitor tick", "error", err)
			f.fail(err)
			continue
		}
		events = append(events, ev)
	}
	f.lines = nil
	return events
}

// drainEmail consumes the tab-indented body lines and the closing endemail
// record that follow an email header.
func (f *Framer) drainEmail(header string) (event.Event, error) {
	var body []string
	for len(f.lines) > 0 && strings.HasPrefix(f.lines[0], "\t") {
		body = append(body, strings.TrimLeft(f.lines[0], "\t "))
		f.lines = f.lines[1:]
	}
	if len(f.lines) == 0 || !strings.HasPrefix(f.lines[0], emailEnd) {
		return nil, malformed(header, errors.New("email record not terminated by endemail"))
	}
	f.lines = f.lines[1:]
	return ParseEmail(header, body)
}

func (f *Framer) fail(err error) {
	if f.onErr == nil {
		return
	}
	var perr *ParseError
	if errors.As(err, &perr) {
		f.onErr(perr)
	}
}
