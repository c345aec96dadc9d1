// SPDX-License-Identifier: EPL-2.0

package riff

import (
	"fmt"

	"github.com/ik5/audpipe/audio"
)

// Structural errors. All of them wrap audio.ErrMalformed.
var (
	ErrOddOffset         = fmt.Errorf("riff: container offset is not 2-byte aligned: %w", audio.ErrMalformed)
	ErrIDMismatch        = fmt.Errorf("riff: unexpected container id: %w", audio.ErrMalformed)
	ErrEndOfContainer    = fmt.Errorf("riff: end of container: %w", audio.ErrMalformed)
	ErrChunkOverflow     = fmt.Errorf("riff: chunk exceeds container: %w", audio.ErrMalformed)
	ErrChunkUnderrun     = fmt.Errorf("riff: read past end of chunk: %w", audio.ErrMalformed)
	ErrOffsetOutOfBounds = fmt.Errorf("riff: offset outside chunk: %w", audio.ErrMalformed)
)
