// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"

	goaudio "github.com/go-audio/audio"
)

// Endian is the byte order of stored samples.
type Endian uint8

const (
	LittleEndian Endian = iota
	BigEndian
)

func (e Endian) String() string {
	if e == BigEndian {
		return "be"
	}
	return "le"
}

// SampleKind discriminates SampleType.
type SampleKind uint8

const (
	SampleFloat SampleKind = iota + 1
	SampleSigned
	SampleUnsigned
	SampleALaw
	SampleMuLaw
)

// SampleType is the encoding of a single channel value. Bits is the storage
// width and is only meaningful for the float and integer kinds.
type SampleType struct {
	Kind SampleKind
	Bits int
}

func Float(bits int) SampleType    { return SampleType{Kind: SampleFloat, Bits: bits} }
func Signed(bits int) SampleType   { return SampleType{Kind: SampleSigned, Bits: bits} }
func Unsigned(bits int) SampleType { return SampleType{Kind: SampleUnsigned, Bits: bits} }

var (
	ALaw  = SampleType{Kind: SampleALaw}
	MuLaw = SampleType{Kind: SampleMuLaw}
)

// IsLaw reports whether t is one of the companded kinds.
func (t SampleType) IsLaw() bool {
	return t.Kind == SampleALaw || t.Kind == SampleMuLaw
}

// StorageBits returns the stored width in bits; companded kinds are 8 bits wide.
func (t SampleType) StorageBits() int {
	if t.IsLaw() {
		return 8
	}
	return t.Bits
}

// Bytes returns the number of bytes one value occupies, rounded up.
func (t SampleType) Bytes() int {
	return (t.StorageBits() + 7) >> 3
}

func (t SampleType) String() string {
	switch t.Kind {
	case SampleFloat:
		return fmt.Sprintf("f%d", t.Bits)
	case SampleSigned:
		return fmt.Sprintf("s%d", t.Bits)
	case SampleUnsigned:
		return fmt.Sprintf("u%d", t.Bits)
	case SampleALaw:
		return "alaw"
	case SampleMuLaw:
		return "mulaw"
	}
	return "invalid"
}

// PCMFormat describes uncompressed sample storage.
type PCMFormat struct {
	SampleType SampleType
	Endian     Endian
}

func (f PCMFormat) String() string {
	return f.SampleType.String() + f.Endian.String()
}

// SubtypeKind discriminates AudioSubtype. Only PCM exists today.
type SubtypeKind uint8

const (
	SubtypePCM SubtypeKind = iota + 1
)

// AudioSubtype is the codec family of an audio stream.
type AudioSubtype struct {
	Kind SubtypeKind
	PCM  PCMFormat
}

// PCMStream returns the PCM audio subtype.
func PCMStream(f PCMFormat) AudioSubtype {
	return AudioSubtype{Kind: SubtypePCM, PCM: f}
}

// AudioFormat holds the properties a transform may not change.
type AudioFormat struct {
	SampleRate int
	Channels   int
}

// Format converts f to the go-audio representation.
func (f AudioFormat) Format() *goaudio.Format {
	return &goaudio.Format{NumChannels: f.Channels, SampleRate: f.SampleRate}
}

// AudioFormatFrom converts a go-audio format. A nil format yields the zero value.
func AudioFormatFrom(f *goaudio.Format) AudioFormat {
	if f == nil {
		return AudioFormat{}
	}
	return AudioFormat{SampleRate: f.SampleRate, Channels: f.NumChannels}
}

func (f AudioFormat) String() string {
	return fmt.Sprintf("%dHz/%dch", f.SampleRate, f.Channels)
}

// StreamKind discriminates StreamType.
type StreamKind uint8

const (
	// BinaryStream is the zero value and doubles as "not negotiated yet".
	BinaryStream StreamKind = iota
	AudioStream
)

// StreamType is a comparable capability descriptor.
type StreamType struct {
	Kind    StreamKind
	Subtype AudioSubtype
	Format  AudioFormat
}

// NewAudioStream builds an audio stream type.
func NewAudioStream(subtype AudioSubtype, format AudioFormat) StreamType {
	return StreamType{Kind: AudioStream, Subtype: subtype, Format: format}
}

// NewPCMStream is shorthand for an audio stream of PCM samples.
func NewPCMStream(st SampleType, endian Endian, format AudioFormat) StreamType {
	return NewAudioStream(PCMStream(PCMFormat{SampleType: st, Endian: endian}), format)
}

// IsSet reports whether t has been negotiated.
func (t StreamType) IsSet() bool {
	return t.Kind != BinaryStream
}

// PCM returns the PCM and audio formats when t is a PCM audio stream.
func (t StreamType) PCM() (PCMFormat, AudioFormat, bool) {
	if t.Kind != AudioStream || t.Subtype.Kind != SubtypePCM {
		return PCMFormat{}, AudioFormat{}, false
	}
	return t.Subtype.PCM, t.Format, true
}

// WithSampleType returns a copy of a PCM stream type with another sample type.
func (t StreamType) WithSampleType(st SampleType) StreamType {
	if t.Kind != AudioStream || t.Subtype.Kind != SubtypePCM {
		return t
	}
	t.Subtype.PCM.SampleType = st
	return t
}

func (t StreamType) String() string {
	pcm, format, ok := t.PCM()
	if !ok {
		return "binary"
	}
	return "pcm " + pcm.String() + " " + format.String()
}
