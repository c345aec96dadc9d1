// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"fmt"

	"github.com/ik5/audpipe/audio"
)

var (
	// ErrBusy is returned by ProcessInput while a sample waits for
	// ProcessOutput. It is recoverable.
	ErrBusy = fmt.Errorf("pcm: sample pending, call ProcessOutput first: %w", audio.ErrNotAccepting)

	// ErrNoSample is returned by ProcessOutput when no input was accepted.
	ErrNoSample = fmt.Errorf("pcm: no input sample: %w", audio.ErrInvalidState)
)

// Configuration errors. The caller is expected to set matching stream types
// and add both streams before processing, so all of these wrap
// audio.ErrPrecondition.
var (
	ErrForeignStream   = fmt.Errorf("pcm: stream does not belong to this transform: %w", audio.ErrPrecondition)
	ErrStreamNotAdded  = fmt.Errorf("pcm: stream not added: %w", audio.ErrPrecondition)
	ErrStreamAdded     = fmt.Errorf("pcm: stream added twice: %w", audio.ErrPrecondition)
	ErrNotPCM          = fmt.Errorf("pcm: stream type is not PCM audio: %w", audio.ErrPrecondition)
	ErrFormatMismatch  = fmt.Errorf("pcm: input and output differ in rate or channels: %w", audio.ErrPrecondition)
	ErrNotLittleEndian = fmt.Errorf("pcm: only little-endian samples are supported: %w", audio.ErrPrecondition)
	ErrCompanded       = fmt.Errorf("pcm: a-law and mu-law are not implemented: %w", audio.ErrPrecondition)
	ErrSampleType      = fmt.Errorf("pcm: unsupported sample type: %w", audio.ErrPrecondition)
	ErrUnknownMessage  = fmt.Errorf("pcm: unknown message: %w", audio.ErrPrecondition)
)
