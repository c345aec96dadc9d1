// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"io"

	"github.com/ik5/audpipe/audio"
)

// Decoder opens AIFF sources for an audio.Registry. The zero value produces
// little-endian samples.
type Decoder struct {
	Endian audio.Endian
}

func (d Decoder) Decode(rs io.ReadSeeker) (audio.Source, audio.Stream, error) {
	src := NewSource(d.Endian)
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
