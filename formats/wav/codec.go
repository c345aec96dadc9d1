// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"io"

	"github.com/ik5/audpipe/audio"
)

// Decoder opens WAV sources for an audio.Registry.
type Decoder struct{}

func (Decoder) Decode(rs io.ReadSeeker) (audio.Source, audio.Stream, error) {
	src := NewSource()
	if err := src.Open(rs); err != nil {
		_ = src.Shutdown()
		return nil, nil, err
	}
	stream, err := src.CreateStream()
	if err != nil {
		_ = src.Shutdown()
		return nil, nil, err
	}
	return src, stream, nil
}

// Encoder creates WAV sinks for an audio.Registry.
type Encoder struct{}

func (Encoder) Encode(w io.WriteSeeker) (audio.Sink, error) {
	return NewSink(w), nil
}
