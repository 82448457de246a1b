package main

import (
	"testing"

	"github.com/OpenFusionProject/ffmonitor/pkg/ffmonitor"
	"github.com/OpenFusionProject/ffmonitor/pkg/ffmonitor/event"
)

func TestNormalizeEventTypes(t *testing.T) {
	got, err := NormalizeEventTypes([]string{"Player", " chat ", "player"})
	if err != nil {
		t.Fatalf("NormalizeEventTypes() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d types, want 2 (duplicate dropped)", len(got))
	}
	if got[0] != event.Player || got[1] != event.Chat {
		t.Errorf("NormalizeEventTypes() = %v", got)
	}
}

func TestNormalizeEventTypes_Empty(t *testing.T) {
	got, err := NormalizeEventTypes(nil)
	if err != nil || got != nil {
		t.Errorf("NormalizeEventTypes(nil) = (%v, %v), want (nil, nil)", got, err)
	}
}

func TestNormalizeEventTypes_Unknown(t *testing.T) {
	if _, err := NormalizeEventTypes([]string{"teleport"}); err == nil {
		t.Error("expected error for unknown event type")
	}
	if _, err := NormalizeEventTypes([]string{"  "}); err == nil {
		t.Error("expected error for blank event type")
	}
}

func TestRejectOverlap(t *testing.T) {
	if err := RejectOverlap(
		[]ffmonitor.EventType{event.Chat},
		[]ffmonitor.EventType{event.Player},
	); err != nil {
		t.Errorf("RejectOverlap() unexpected error: %v", err)
	}
	if err := RejectOverlap(
		[]ffmonitor.EventType{event.Chat},
		[]ffmonitor.EventType{event.Chat},
	); err == nil {
		t.Error("RejectOverlap() expected error for overlapping type")
	}
}
