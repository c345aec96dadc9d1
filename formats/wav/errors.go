// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"

	goriff "github.com/go-audio/riff"
	"github.com/ik5/audpipe/audio"
)

// Header errors.
var (
	ErrNotWAVE         = fmt.Errorf("wav: RIFF form is not WAVE: %w: %w", goriff.ErrFmtNotSupported, audio.ErrMalformed)
	ErrFormatTooSmall  = fmt.Errorf("wav: format block too small: %w", audio.ErrMalformed)
	ErrDuplicateFormat = fmt.Errorf("wav: format block parsed twice: %w", audio.ErrMalformed)
	ErrNoFormat        = fmt.Errorf("wav: data chunk before format block: %w", audio.ErrMalformed)
	ErrNoData          = fmt.Errorf("wav: no data chunk: %w", audio.ErrMalformed)
)

// Validation errors returned by Source.Open. Any of them shuts the source down.
var (
	ErrUnsupportedTag = fmt.Errorf("wav: unsupported format tag: %w", audio.ErrUnsupportedFormat)
	ErrChannels       = fmt.Errorf("wav: only mono and stereo are supported: %w", audio.ErrUnsupportedFormat)
	ErrBitDepth       = fmt.Errorf("wav: unsupported bits per sample: %w", audio.ErrUnsupportedFormat)
	ErrBlockAlign     = fmt.Errorf("wav: block align does not match channels and bit depth: %w", audio.ErrMalformed)
	ErrAvgBytes       = fmt.Errorf("wav: average bytes per second does not match sample rate: %w", audio.ErrMalformed)
	ErrSubFormat      = fmt.Errorf("wav: unsupported extensible sub-format: %w", audio.ErrUnsupportedFormat)
)

// Source and stream state errors.
var (
	ErrAlreadyOpen  = fmt.Errorf("wav: source already opened: %w", audio.ErrInvalidState)
	ErrNotOpen      = fmt.Errorf("wav: source not opened: %w", audio.ErrInvalidState)
	ErrStreamExists = fmt.Errorf("wav: stream already created: %w", audio.ErrInvalidState)
	ErrEmptyRead    = fmt.Errorf("wav: format block yields an empty read: %w", audio.ErrMalformed)
)

// Sink errors.
var (
	ErrStreamIndex     = fmt.Errorf("wav: sink has a single stream at index 0: %w", audio.ErrInvalidIndex)
	ErrStreamTypeSet   = fmt.Errorf("wav: stream type already set: %w", audio.ErrInvalidState)
	ErrNoStreamType    = fmt.Errorf("wav: stream type not set: %w", audio.ErrInvalidState)
	ErrNotPCM          = fmt.Errorf("wav: sink accepts PCM audio only: %w", audio.ErrUnsupportedFormat)
	ErrBigEndian       = fmt.Errorf("wav: big-endian samples: %w", audio.ErrUnsupportedFormat)
	ErrTooManyChannels = fmt.Errorf("wav: more than two channels: %w", audio.ErrUnsupportedFormat)
	ErrSampleWidth     = fmt.Errorf("wav: sample width needs WAVE_FORMAT_EXTENSIBLE: %w", audio.ErrUnsupportedFormat)
	ErrFinalized       = fmt.Errorf("wav: sink already finalized: %w", audio.ErrInvalidState)
	ErrTooLarge        = fmt.Errorf("wav: data exceeds 4 GiB: %w", audio.ErrMalformed)
)
