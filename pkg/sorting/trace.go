package sorting

import (
	"fmt"
	"strings"
)

// EventKind distinguishes the two kinds of instrumentation.
type EventKind int

const (
	EventEmit EventKind = iota
	EventPause
)

// Event is one recorded instrumentation call.
type Event struct {
	Kind      EventKind
	Highlight Highlight // set for EventEmit
	Units     int       // set for EventPause
}

func (e Event) String() string {
	if e.Kind == EventPause {
		return fmt.Sprintf("pause %d", e.Units)
	}
	h := e.Highlight
	return fmt.Sprintf("emit %d %d %d", h.Primary, h.Secondary, h.Tertiary)
}

// Recorder is a Tracer that keeps every call in order. It never pauses.
// Not safe for concurrent use.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Emit(h Highlight) {
	r.Events = append(r.Events, Event{Kind: EventEmit, Highlight: h})
}

func (r *Recorder) Pause(units int) error {
	r.Events = append(r.Events, Event{Kind: EventPause, Units: units})
	return nil
}

// Count returns how many events of kind k were recorded.
func (r *Recorder) Count(k EventKind) int {
	n := 0
	for _, e := range r.Events {
		if e.Kind == k {
			n++
		}
	}
	return n
}

// String renders the trace one event per line.
func (r *Recorder) String() string {
	var b strings.Builder
	for _, e := range r.Events {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	return b.String()
}
