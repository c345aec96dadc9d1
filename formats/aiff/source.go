// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/ik5/audpipe/audio"
)

// aiffReader is an interface for aiff.Decoder to allow testing
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source exposes the sound data of an AIFF file as a single PCM stream.
type Source struct {
	audio.SourceCore

	dec      aiffReader
	format   audio.AudioFormat
	bitDepth int
	frames   int64
	endian   audio.Endian
	stream   *Stream
}

var _ audio.Source = (*Source)(nil)

// NewSource returns a source whose samples are stored in the given byte order.
func NewSource(endian audio.Endian) *Source {
	return &Source{endian: endian}
}

// Open reads the FORM and COMM chunks of rs.
func (s *Source) Open(rs io.ReadSeeker) error {
	if err := s.CheckShutdown(); err != nil {
		return err
	}
	if s.dec != nil {
		return ErrAlreadyOpen
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return ErrNotAiffFile
	}
	dec.ReadInfo()

	return s.open(dec, int(dec.BitDepth), int64(dec.NumSampleFrames))
}

func (s *Source) open(dec aiffReader, bitDepth int, frames int64) error {
	if s.dec != nil {
		return ErrAlreadyOpen
	}

	f := dec.Format()
	if f == nil || f.NumChannels < 1 || f.SampleRate <= 0 {
		_ = s.Shutdown()
		return ErrUnsupportedAiffLayout
	}
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		_ = s.Shutdown()
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	s.dec = dec
	s.format = audio.AudioFormatFrom(f)
	s.bitDepth = bitDepth
	s.frames = frames
	return nil
}

// StreamType is the type of the samples the stream produces.
func (s *Source) StreamType() audio.StreamType {
	return audio.NewPCMStream(audio.Signed(s.bitDepth), s.endian, s.format)
}

// CreateStream adds the sound data stream, selected, to the presentation
// descriptor.
func (s *Source) CreateStream() (*Stream, error) {
	if err := s.CheckShutdown(); err != nil {
		return nil, err
	}
	if s.dec == nil {
		return nil, ErrNotOpen
	}
	if s.stream != nil {
		return nil, ErrStreamExists
	}

	sd := &audio.StreamDescriptor{Selected: true, ID: 0, StreamType: s.StreamType()}
	s.Descriptors().Add(sd)
	s.stream = &Stream{source: s, descriptor: sd}
	return s.stream, nil
}

func (s *Source) Characteristics() (audio.SourceCharacteristics, error) {
	if err := s.CheckShutdown(); err != nil {
		return audio.SourceCharacteristics{}, err
	}
	return audio.SourceCharacteristics{Live: false, Seek: false, Pause: true}, nil
}

func (s *Source) Start() error {
	return s.StartStream(s.core())
}

func (s *Source) Stop() error {
	return s.StopStream(s.core())
}

func (s *Source) Shutdown() error {
	s.ShutdownSource(s.core())
	s.dec = nil
	s.stream = nil
	return nil
}

func (s *Source) core() *audio.StreamCore {
	if s.stream == nil {
		return nil
	}
	return &s.stream.StreamCore
}
