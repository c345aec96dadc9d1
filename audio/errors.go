// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
)

// Kind is the numeric class of a pipeline error.
type Kind int

const (
	KindNone Kind = iota
	KindMalformed
	KindUnsupportedFormat
	KindInvalidState
	KindShutdown
	KindEndOfStream
	KindNotAccepting
	KindPrecondition
	KindInvalidIndex
	KindUnknown
)

var kindNames = [...]string{
	KindNone:              "none",
	KindMalformed:         "malformed",
	KindUnsupportedFormat: "unsupported format",
	KindInvalidState:      "invalid state",
	KindShutdown:          "shutdown",
	KindEndOfStream:       "end of stream",
	KindNotAccepting:      "not accepting",
	KindPrecondition:      "precondition violated",
	KindInvalidIndex:      "invalid index",
	KindUnknown:           "unknown",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Class errors. Every error returned by a pipeline stage wraps exactly one of these.
var (
	// ErrMalformed reports a structural violation of a container.
	ErrMalformed = errors.New("malformed container")

	// ErrUnsupportedFormat reports a stream format the stage cannot handle.
	ErrUnsupportedFormat = errors.New("unsupported stream format")

	// ErrInvalidState reports an operation that is not permitted in the current state.
	ErrInvalidState = errors.New("operation not permitted in current state")

	// ErrShutdown is returned by every operation after Shutdown.
	ErrShutdown = errors.New("stage is shut down")

	// ErrEndOfStream is returned when a stream has already delivered its last sample.
	ErrEndOfStream = errors.New("end of stream")

	// ErrNotAccepting is the transform backpressure error: call ProcessOutput first.
	ErrNotAccepting = errors.New("not accepting input at this time")

	// ErrPrecondition reports a violated caller invariant (misconfigured transform,
	// stream used on the wrong stage, double registration).
	ErrPrecondition = errors.New("precondition violated")

	// ErrInvalidIndex reports an out of range stream index.
	ErrInvalidIndex = errors.New("invalid stream index")
)

var kindErrors = []struct {
	kind Kind
	err  error
}{
	{KindMalformed, ErrMalformed},
	{KindUnsupportedFormat, ErrUnsupportedFormat},
	{KindInvalidState, ErrInvalidState},
	{KindShutdown, ErrShutdown},
	{KindEndOfStream, ErrEndOfStream},
	{KindNotAccepting, ErrNotAccepting},
	{KindPrecondition, ErrPrecondition},
	{KindInvalidIndex, ErrInvalidIndex},
}

// KindOf returns the class of err. A nil error is KindNone and an error outside
// the taxonomy (an I/O failure, for example) is KindUnknown.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	for _, ke := range kindErrors {
		if errors.Is(err, ke.err) {
			return ke.kind
		}
	}
	return KindUnknown
}

// IsRecoverable reports whether a caller may continue after err: the expected end
// of a stream, or transform backpressure.
func IsRecoverable(err error) bool {
	switch KindOf(err) {
	case KindEndOfStream, KindNotAccepting:
		return true
	}
	return false
}
