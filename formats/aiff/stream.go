// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/audpipe/audio"
)

// Stream delivers one second of sound data per sample.
type Stream struct {
	audio.StreamCore

	source     *Source
	descriptor *audio.StreamDescriptor
	intBuf     *goaudio.IntBuffer
	read       int64
}

var _ audio.Stream = (*Stream)(nil)

func (s *Stream) Descriptor() (*audio.StreamDescriptor, error) {
	if err := s.CheckShutdown(); err != nil {
		return nil, err
	}
	return s.descriptor, nil
}

// RequestSample decodes the next second of audio. The sample that reaches the
// frame count announced by the COMM chunk, or the end of the file, is flagged
// EndOfStream.
func (s *Stream) RequestSample() error {
	if err := s.CheckRequest(); err != nil {
		return err
	}
	src := s.source
	if src.dec == nil {
		return ErrNotOpen
	}

	channels := src.format.Channels
	want := src.format.SampleRate * channels
	if s.intBuf == nil {
		s.intBuf = &goaudio.IntBuffer{
			Data:           make([]int, want),
			Format:         src.dec.Format(),
			SourceBitDepth: src.bitDepth,
		}
	}
	s.intBuf.Data = s.intBuf.Data[:want]

	n, err := src.dec.PCMBuffer(s.intBuf)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("aiff: read sound data: %w", err)
	}
	n -= n % channels
	frames := int64(n / channels)

	sample := audio.NewSample(s.descriptor.StreamType)
	sample.AddBuffer(audio.MemoryBufferFrom(encode(s.intBuf.Data[:n], src.bitDepth, src.endian)))
	sample.Time = framesToDuration(s.read, src.format.SampleRate)
	sample.Duration = framesToDuration(frames, src.format.SampleRate)
	s.read += frames
	sample.EndOfStream = n < want || (src.frames > 0 && s.read >= src.frames)

	return s.Submit(sample, src.State() == audio.Paused)
}

// encode stores values as signed integers of the given width.
func encode(values []int, bitDepth int, endian audio.Endian) []byte {
	var order binary.ByteOrder = binary.LittleEndian
	if endian == audio.BigEndian {
		order = binary.BigEndian
	}

	width := bitDepth / 8
	out := make([]byte, len(values)*width)
	for i, v := range values {
		b := out[i*width : (i+1)*width]
		switch bitDepth {
		case 8:
			b[0] = byte(int8(v))
		case 16:
			order.PutUint16(b, uint16(int16(v)))
		case 24:
			u := uint32(v)
			if endian == audio.BigEndian {
				b[0], b[1], b[2] = byte(u>>16), byte(u>>8), byte(u)
			} else {
				b[0], b[1], b[2] = byte(u), byte(u>>8), byte(u>>16)
			}
		case 32:
			order.PutUint32(b, uint32(int32(v)))
		}
	}
	return out
}

func framesToDuration(frames int64, rate int) time.Duration {
	if rate <= 0 {
		return 0
	}
	return time.Duration(frames) * time.Second / time.Duration(rate)
}
