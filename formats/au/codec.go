// SPDX-License-Identifier: EPL-2.0

package au

import (
	"io"

	"github.com/ik5/audpipe/audio"
)

// Encoder creates .snd sinks for an audio.Registry.
type Encoder struct{}

func (Encoder) Encode(w io.WriteSeeker) (audio.Sink, error) {
	return NewSink(w), nil
}
