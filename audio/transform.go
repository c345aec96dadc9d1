// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Direction tells whether a TransformStream feeds or drains a transform.
type Direction uint8

const (
	Input Direction = iota
	Output
)

func (d Direction) String() string {
	if d == Output {
		return "output"
	}
	return "input"
}

// Message is an out of band instruction to a transform.
type Message uint8

const (
	// MessageFlush discards any pending input.
	MessageFlush Message = iota
	// MessageDrain asks the transform to emit everything it holds.
	MessageDrain
	MessageStartOfStream
	MessageEndOfStream
)

// Transform converts samples between stream types.
type Transform interface {
	InputStreams() []*TransformStream
	OutputStreams() []*TransformStream

	InputStreamLimits() (min, max int)
	OutputStreamLimits() (min, max int)

	AddStream(ts *TransformStream) error

	ProcessMessage(msg Message) error
	ProcessEvent(ts *TransformStream, ev *Event) error
	ProcessInput(ts *TransformStream, s *Sample) error
	ProcessOutput(ts *TransformStream) (*Sample, error)

	// Shutdown is terminal and idempotent.
	Shutdown() error
}

// TransformStream is one endpoint of a Transform. It is created by the
// transform and keeps a reference back to it.
type TransformStream struct {
	ID         int
	Direction  Direction
	StreamType StreamType

	transform Transform
}

// NewTransformStream is called by Transform implementations when they build
// their endpoints.
func NewTransformStream(t Transform, id int, dir Direction) *TransformStream {
	return &TransformStream{ID: id, Direction: dir, transform: t}
}

// Transform returns the owning transform.
func (ts *TransformStream) Transform() Transform { return ts.transform }

// Add registers the stream with its transform.
func (ts *TransformStream) Add() error {
	return ts.transform.AddStream(ts)
}

func (ts *TransformStream) ProcessEvent(ev *Event) error {
	return ts.transform.ProcessEvent(ts, ev)
}

func (ts *TransformStream) ProcessInput(s *Sample) error {
	if ts.Direction != Input {
		return fmt.Errorf("process input on %s stream %d: %w", ts.Direction, ts.ID, ErrPrecondition)
	}
	return ts.transform.ProcessInput(ts, s)
}

func (ts *TransformStream) ProcessOutput() (*Sample, error) {
	if ts.Direction != Output {
		return nil, fmt.Errorf("process output on %s stream %d: %w", ts.Direction, ts.ID, ErrPrecondition)
	}
	return ts.transform.ProcessOutput(ts)
}
