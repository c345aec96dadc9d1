// SPDX-License-Identifier: EPL-2.0

package audpipe

import (
	"errors"
	"fmt"
	"io"
	"time"

	gowav "github.com/go-audio/wav"
)

// ErrVerify is returned when a WAV file does not decode as expected.
var ErrVerify = errors.New("wav verification failed")

// WAVInfo is what an independent decoder reads back from a WAV file.
type WAVInfo struct {
	FormatTag  uint16
	Channels   int
	SampleRate int
	BitDepth   int
	DataSize   int64
	Duration   time.Duration
}

func (i *WAVInfo) String() string {
	return fmt.Sprintf("tag=%d %dHz/%dch %d-bit data=%d bytes duration=%s",
		i.FormatTag, i.SampleRate, i.Channels, i.BitDepth, i.DataSize, i.Duration)
}

// Verify decodes the header and locates the data chunk of a WAV file with
// github.com/go-audio/wav, which shares no code with this module's parser.
func Verify(rs io.ReadSeeker) (*WAVInfo, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("verify: rewind: %w", err)
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		if err := dec.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrVerify, err)
		}
		return nil, fmt.Errorf("%w: invalid header", ErrVerify)
	}

	info := &WAVInfo{
		FormatTag:  dec.WavAudioFormat,
		Channels:   int(dec.NumChans),
		SampleRate: int(dec.SampleRate),
		BitDepth:   int(dec.BitDepth),
	}

	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrVerify, err)
	}
	info.DataSize = dec.PCMLen()

	if d, err := dec.Duration(); err == nil {
		info.Duration = d
	}
	return info, nil
}
