package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/OpenFusionProject/ffmonitor/pkg/ffmonitor"
)

// ValidFormats maps output format names to validity.
var ValidFormats = map[string]bool{
	"jsonl":  true,
	"pretty": true,
}

// OutputUpdate writes one monitor update in the requested format.
func OutputUpdate(format string, update ffmonitor.MonitorUpdate, w io.Writer) error {
	switch format {
	case "jsonl":
		return OutputJSON(update, w)
	case "pretty":
		return OutputPretty(update, w)
	}
	return fmt.Errorf("unknown format %q", format)
}

// jsonEvent wraps an event with its type tag so JSONL consumers can
// dispatch without probing fields.
func jsonEvent(ev ffmonitor.Event) any {
	switch ev := ev.(type) {
	case ffmonitor.PlayerEvent:
		return struct {
			Type ffmonitor.EventType `json:"type"`
			ffmonitor.PlayerEvent
		}{ev.Type(), ev}
	case ffmonitor.ChatEvent:
		return struct {
			Type ffmonitor.EventType `json:"type"`
			ffmonitor.ChatEvent
		}{ev.Type(), ev}
	case ffmonitor.BroadcastEvent:
		return struct {
			Type ffmonitor.EventType `json:"type"`
			ffmonitor.BroadcastEvent
		}{ev.Type(), ev}
	case ffmonitor.EmailEvent:
		return struct {
			Type ffmonitor.EventType `json:"type"`
			ffmonitor.EmailEvent
		}{ev.Type(), ev}
	case ffmonitor.NameRequestEvent:
		return struct {
			Type ffmonitor.EventType `json:"type"`
			ffmonitor.NameRequestEvent
		}{ev.Type(), ev}
	}
	return nil
}

// OutputJSON writes the update as a single JSON line:
// {"player_count":N,"events":[...]}.
func OutputJSON(update ffmonitor.MonitorUpdate, w io.Writer) error {
	events := update.Events()
	wrapped := make([]any, 0, len(events))
	for _, ev := range events {
		wrapped = append(wrapped, jsonEvent(ev))
	}

	payload := struct {
		PlayerCount int   `json:"player_count"`
		Events      []any `json:"events"`
	}{update.PlayerCount(), wrapped}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// OutputPretty writes the update as indented human-readable text.
func OutputPretty(update ffmonitor.MonitorUpdate, w io.Writer) error {
	events := update.Events()
	if _, err := fmt.Fprintf(w, "%d players, %d events\n", update.PlayerCount(), len(events)); err != nil {
		return err
	}
	for _, ev := range events {
		if _, err := fmt.Fprintf(w, "\t%s\n", prettyEvent(ev)); err != nil {
			return err
		}
	}
	return nil
}

// prettyEvent renders one event as a short human-readable line.
func prettyEvent(ev ffmonitor.Event) string {
	switch ev := ev.(type) {
	case ffmonitor.PlayerEvent:
		return fmt.Sprintf("player %s at (%d, %d)", ev.Name, ev.X, ev.Y)
	case ffmonitor.ChatEvent:
		if ev.To != "" {
			return fmt.Sprintf("[%s] %s -> %s: %s", ev.Kind, ev.From, ev.To, ev.Message)
		}
		return fmt.Sprintf("[%s] %s: %s", ev.Kind, ev.From, ev.Message)
	case ffmonitor.BroadcastEvent:
		return fmt.Sprintf("[bcast/%s] %s (%ds): %s", ev.Scope, ev.From, ev.DurationSecs, ev.Message)
	case ffmonitor.EmailEvent:
		subject := ev.Subject
		if subject == "" {
			subject = "(no subject)"
		}
		return fmt.Sprintf("email %s -> %s: %s (%d lines)", ev.From, ev.To, subject, len(ev.Body))
	case ffmonitor.NameRequestEvent:
		return fmt.Sprintf("name request %d: %s", ev.PlayerUID, ev.RequestedName)
	}
	return strings.TrimSpace(ev.String())
}
