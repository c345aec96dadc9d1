// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	"github.com/ik5/audpipe/audio"
)

// Source reads a single PCM stream from a WAV file.
type Source struct {
	audio.SourceCore

	parser *Parser
	stream *Stream
}

var _ audio.Source = (*Source)(nil)

func NewSource() *Source {
	return &Source{}
}

// Open parses the header of rs and validates the format block. It may be
// called once. A header that fails to parse, or a format the source cannot
// play, shuts it down.
func (s *Source) Open(rs io.ReadSeeker) error {
	if err := s.CheckShutdown(); err != nil {
		return err
	}
	if s.parser != nil {
		return ErrAlreadyOpen
	}

	p, err := NewParser(rs)
	if err != nil {
		_ = s.Shutdown()
		return err
	}
	s.parser = p

	if err := p.ParseHeader(); err != nil {
		_ = s.Shutdown()
		return err
	}

	f, _ := p.Format()
	if err := validate(f); err != nil {
		_ = s.Shutdown()
		return err
	}
	return nil
}

func validate(f *Format) error {
	if f.Extensible == nil {
		switch f.FormatTag {
		case FormatPCM, FormatIEEEFloat, FormatALaw, FormatMuLaw:
		default:
			return fmt.Errorf("%w: 0x%04x", ErrUnsupportedTag, f.FormatTag)
		}
	}

	if f.Channels != 1 && f.Channels != 2 {
		return fmt.Errorf("%w: %d channels", ErrChannels, f.Channels)
	}

	if f.Extensible == nil {
		switch f.BitsPerSample {
		case 8, 16:
		case 32, 64:
			if f.FormatTag != FormatIEEEFloat {
				return fmt.Errorf("%w: %d-bit integer", ErrBitDepth, f.BitsPerSample)
			}
		default:
			return fmt.Errorf("%w: %d", ErrBitDepth, f.BitsPerSample)
		}
	}

	if want := f.Channels * (f.BitsPerSample / 8); f.BlockAlign != want || f.BlockAlign == 0 {
		return fmt.Errorf("%w: %d, want %d", ErrBlockAlign, f.BlockAlign, want)
	}
	if f.SamplesPerSec == 0 {
		return fmt.Errorf("%w: zero sample rate", ErrAvgBytes)
	}
	if want := uint64(f.SamplesPerSec) * uint64(f.BlockAlign); uint64(f.AvgBytesPerSec) != want {
		return fmt.Errorf("%w: %d, want %d", ErrAvgBytes, f.AvgBytesPerSec, want)
	}
	return nil
}

// CreateStream builds the stream described by the format block and adds it,
// selected, to the presentation descriptor.
func (s *Source) CreateStream() (*Stream, error) {
	if err := s.CheckShutdown(); err != nil {
		return nil, err
	}
	if s.parser == nil {
		return nil, ErrNotOpen
	}
	if s.stream != nil {
		return nil, ErrStreamExists
	}
	f, ok := s.parser.Format()
	if !ok {
		return nil, ErrNotOpen
	}

	st, err := f.SampleType()
	if err != nil {
		return nil, err
	}

	sd := &audio.StreamDescriptor{
		Selected:   true,
		ID:         0,
		StreamType: audio.NewPCMStream(st, audio.LittleEndian, f.AudioFormat()),
	}
	s.Descriptors().Add(sd)
	s.stream = &Stream{source: s, descriptor: sd}
	return s.stream, nil
}

// Parser returns the header parser, nil before Open and after Shutdown.
func (s *Source) Parser() *Parser { return s.parser }

func (s *Source) Characteristics() (audio.SourceCharacteristics, error) {
	if err := s.CheckShutdown(); err != nil {
		return audio.SourceCharacteristics{}, err
	}
	return audio.SourceCharacteristics{Live: false, Seek: true, Pause: true}, nil
}

func (s *Source) Start() error {
	return s.StartStream(s.core())
}

func (s *Source) Stop() error {
	return s.StopStream(s.core())
}

func (s *Source) Shutdown() error {
	s.ShutdownSource(s.core())
	s.parser = nil
	s.stream = nil
	return nil
}

func (s *Source) core() *audio.StreamCore {
	if s.stream == nil {
		return nil
	}
	return &s.stream.StreamCore
}
