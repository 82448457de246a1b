package ffmonitor

import (
	"testing"

	"github.com/OpenFusionProject/ffmonitor/pkg/ffmonitor/event"
)

func TestCompiledFilter_Allows(t *testing.T) {
	tests := []struct {
		name    string
		include []EventType
		exclude []EventType
		check   EventType
		want    bool
	}{
		{
			name:  "nil filter allows everything",
			check: event.Player,
			want:  true,
		},
		{
			name:    "include list allows listed",
			include: []EventType{event.Chat},
			check:   event.Chat,
			want:    true,
		},
		{
			name:    "include list rejects unlisted",
			include: []EventType{event.Chat},
			check:   event.Player,
			want:    false,
		},
		{
			name:    "exclude rejects listed",
			exclude: []EventType{event.Player},
			check:   event.Player,
			want:    false,
		},
		{
			name:    "exclude takes precedence over include",
			include: []EventType{event.Chat},
			exclude: []EventType{event.Chat},
			check:   event.Chat,
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCompiledFilter(tt.include, tt.exclude)
			if got := f.Allows(tt.check); got != tt.want {
				t.Errorf("Allows(%v) = %v, want %v", tt.check, got, tt.want)
			}
		})
	}
}

func TestCompiledFilter_EmptyIsNil(t *testing.T) {
	if f := newCompiledFilter(nil, nil); f != nil {
		t.Error("newCompiledFilter(nil, nil) should be nil")
	}
}

func TestCompiledFilter_Apply(t *testing.T) {
	events := []Event{
		event.PlayerEvent{X: 1, Y: 1, Name: "A"},
		event.ChatEvent{Kind: event.FreeChat, From: "A", Message: "hi"},
	}

	var nilFilter *compiledFilter
	if got := nilFilter.apply(events); len(got) != 2 {
		t.Errorf("nil filter kept %d events, want 2", len(got))
	}

	f := newCompiledFilter([]EventType{event.Chat}, nil)
	got := f.apply(events)
	if len(got) != 1 {
		t.Fatalf("kept %d events, want 1", len(got))
	}
	if got[0].Type() != event.Chat {
		t.Errorf("kept %v, want chat", got[0].Type())
	}
	// The input slice is untouched.
	if len(events) != 2 {
		t.Errorf("input slice mutated to %d events", len(events))
	}
}
