// SPDX-License-Identifier: EPL-2.0

package au

import (
	"fmt"

	"github.com/ik5/audpipe/audio"
)

var (
	ErrStreamIndex   = fmt.Errorf("au: sink has a single stream at index 0: %w", audio.ErrInvalidIndex)
	ErrStreamTypeSet = fmt.Errorf("au: stream type already set: %w", audio.ErrInvalidState)
	ErrNoStreamType  = fmt.Errorf("au: stream type not set: %w", audio.ErrInvalidState)
	ErrFinalized     = fmt.Errorf("au: sink already finalized: %w", audio.ErrInvalidState)

	ErrNotPCM       = fmt.Errorf("au: sink accepts PCM audio only: %w", audio.ErrUnsupportedFormat)
	ErrLittleEndian = fmt.Errorf("au: little-endian samples: %w", audio.ErrUnsupportedFormat)
	ErrEncoding     = fmt.Errorf("au: no encoding for sample type: %w", audio.ErrUnsupportedFormat)
	ErrLayout       = fmt.Errorf("au: invalid channel count or sample rate: %w", audio.ErrUnsupportedFormat)
)
