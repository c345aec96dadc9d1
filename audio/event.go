// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// EventType discriminates Event.
type EventType uint8

const (
	EventUnknown EventType = iota
	EventFatalError
	EventNonFatalError
	EventRequestSample
	EventSample
	EventStreamStarted
	EventNewStream
	EventEndOfStream
)

var eventNames = [...]string{
	EventUnknown:       "unknown",
	EventFatalError:    "fatal-error",
	EventNonFatalError: "non-fatal-error",
	EventRequestSample: "request-sample",
	EventSample:        "sample",
	EventStreamStarted: "stream-started",
	EventNewStream:     "new-stream",
	EventEndOfStream:   "end-of-stream",
}

func (t EventType) String() string {
	if int(t) >= len(eventNames) {
		return fmt.Sprintf("event(%d)", t)
	}
	return eventNames[t]
}

// Attributes carries optional event metadata.
type Attributes map[string]any

// Event is the unit of communication between stages. Sample is set only for
// EventSample; Err is the result the producer attached (nil on success).
type Event struct {
	Type       EventType
	Sample     *Sample
	Err        error
	Attributes Attributes
}

// NewEvent builds an event without a payload.
func NewEvent(t EventType, err error, attrs Attributes) *Event {
	return &Event{Type: t, Err: err, Attributes: attrs}
}

// NewSampleEvent wraps s in an EventSample.
func NewSampleEvent(s *Sample) *Event {
	return &Event{Type: EventSample, Sample: s}
}

// EventGenerator is implemented by every stage that owns an event queue.
type EventGenerator interface {
	// DequeueEvent never blocks; it returns a nil event when nothing is pending.
	DequeueEvent() (*Event, error)
	EnqueueEvent(ev *Event) error
}

// EventQueue is an unbounded FIFO of events. Once shut down both directions
// fail with ErrShutdown.
type EventQueue struct {
	events   []*Event
	shutdown bool
}

var _ EventGenerator = (*EventQueue)(nil)

func (q *EventQueue) EnqueueEvent(ev *Event) error {
	if q.shutdown {
		return ErrShutdown
	}
	if ev == nil {
		return fmt.Errorf("enqueue nil event: %w", ErrPrecondition)
	}
	q.events = append(q.events, ev)
	return nil
}

func (q *EventQueue) DequeueEvent() (*Event, error) {
	if q.shutdown {
		return nil, ErrShutdown
	}
	if len(q.events) == 0 {
		return nil, nil
	}
	ev := q.events[0]
	q.events[0] = nil
	q.events = q.events[1:]
	if len(q.events) == 0 {
		q.events = nil
	}
	return ev, nil
}

func (q *EventQueue) Len() int { return len(q.events) }

// Shutdown discards pending events and rejects further use.
func (q *EventQueue) Shutdown() {
	q.shutdown = true
	q.events = nil
}
