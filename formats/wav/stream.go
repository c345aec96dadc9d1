// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"

	"github.com/ik5/audpipe/audio"
	"github.com/ik5/audpipe/utils"
)

// Stream delivers the data chunk in samples of about one second, rounded up
// to a whole number of frames.
type Stream struct {
	audio.StreamCore

	source     *Source
	descriptor *audio.StreamDescriptor
	position   int64
}

var _ audio.Stream = (*Stream)(nil)

func (s *Stream) Descriptor() (*audio.StreamDescriptor, error) {
	if err := s.CheckShutdown(); err != nil {
		return nil, err
	}
	return s.descriptor, nil
}

// RequestSample reads the next sample. It is queued as an event right away
// unless the source is paused, in which case it waits for Start. The sample
// that leaves less than one frame in the data chunk is flagged EndOfStream and
// followed by an EndOfStream event.
func (s *Stream) RequestSample() error {
	if err := s.CheckRequest(); err != nil {
		return err
	}
	p := s.source.parser
	if p == nil {
		return ErrNotOpen
	}
	f, _ := p.Format()

	block := uint64(f.BlockAlign)
	size := utils.BlockAlign(uint64(f.AvgBytesPerSec), block)
	left := uint64(p.DataRemaining())
	if size > left {
		size = left
	}
	if size == 0 && left > 0 {
		return fmt.Errorf("%w: %d data bytes left", ErrEmptyRead, left)
	}

	buf := audio.NewMemoryBuffer(int(size))
	err := buf.Map(func(data []byte) error {
		_, err := p.ReadData(data)
		return err
	})
	if err != nil {
		return err
	}

	sample := audio.NewSample(s.descriptor.StreamType)
	sample.AddBuffer(buf)
	sample.Time = bytesToDuration(s.position, f.AvgBytesPerSec)
	sample.Duration = bytesToDuration(int64(size), f.AvgBytesPerSec)
	sample.EndOfStream = uint64(p.DataRemaining()) < block
	s.position += int64(size)

	return s.Submit(sample, s.source.State() == audio.Paused)
}
