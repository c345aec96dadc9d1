// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/ik5/audpipe/audio"
	"github.com/ik5/audpipe/formats/riff"
	"github.com/ik5/audpipe/utils"
)

// Format tags.
const (
	FormatPCM        uint16 = 0x0001
	FormatIEEEFloat  uint16 = 0x0003
	FormatALaw       uint16 = 0x0006
	FormatMuLaw      uint16 = 0x0007
	FormatExtensible uint16 = 0xFFFE
)

const (
	minFormatSize           = 16
	minExtensibleFormatSize = 40
)

// Sub-format GUIDs of WAVE_FORMAT_EXTENSIBLE. Only the first two bytes differ.
var (
	SubFormatPCM       = uuid.MustParse("00000001-0000-0010-8000-00aa00389b71")
	SubFormatIEEEFloat = uuid.MustParse("00000003-0000-0010-8000-00aa00389b71")
	SubFormatALaw      = uuid.MustParse("00000006-0000-0010-8000-00aa00389b71")
	SubFormatMuLaw     = uuid.MustParse("00000007-0000-0010-8000-00aa00389b71")
)

// WaveFormat is the WAVEFORMATEX block. Size is zero when the file omits it.
type WaveFormat struct {
	FormatTag      uint16
	Channels       uint16
	SamplesPerSec  uint32
	AvgBytesPerSec uint32
	BlockAlign     uint16
	BitsPerSample  uint16
	Size           uint16
}

// WaveFormatExtensible holds the fields following WaveFormat when the tag is
// FormatExtensible.
type WaveFormatExtensible struct {
	ValidBitsPerSample uint16
	ChannelMask        uint32
	SubFormat          uuid.UUID
}

// SubFormatTag is the format tag carried in the first two bytes of the GUID.
func (e WaveFormatExtensible) SubFormatTag() uint16 {
	return uint16(binary.BigEndian.Uint32(e.SubFormat[0:4]))
}

// Format is a parsed format block.
type Format struct {
	WaveFormat
	Extensible *WaveFormatExtensible
}

// Tag returns the effective format tag, looking through the extensible
// wrapper.
func (f *Format) Tag() uint16 {
	if f.Extensible != nil {
		return f.Extensible.SubFormatTag()
	}
	return f.FormatTag
}

// SampleType maps the format block to a sample type. 8-bit PCM is unsigned,
// offset by 128, as RIFF stores it; wider PCM is signed. Sink writes
// audio.Unsigned(8) back under the PCM tag, so 8-bit files round trip.
func (f *Format) SampleType() (audio.SampleType, error) {
	bits := int(f.BitsPerSample)
	switch f.Tag() {
	case FormatPCM:
		if bits == 8 {
			return audio.Unsigned(8), nil
		}
		return audio.Signed(bits), nil
	case FormatIEEEFloat:
		return audio.Float(bits), nil
	case FormatALaw:
		if bits != 8 {
			return audio.SampleType{}, fmt.Errorf("%w: a-law with %d bits", ErrBitDepth, bits)
		}
		return audio.ALaw, nil
	case FormatMuLaw:
		if bits != 8 {
			return audio.SampleType{}, fmt.Errorf("%w: mu-law with %d bits", ErrBitDepth, bits)
		}
		return audio.MuLaw, nil
	}
	if f.Extensible != nil {
		return audio.SampleType{}, fmt.Errorf("%w: %s", ErrSubFormat, f.Extensible.SubFormat)
	}
	return audio.SampleType{}, fmt.Errorf("%w: 0x%04x", ErrUnsupportedTag, f.FormatTag)
}

// AudioFormat returns the rate and channel count.
func (f *Format) AudioFormat() audio.AudioFormat {
	return audio.AudioFormat{SampleRate: int(f.SamplesPerSec), Channels: int(f.Channels)}
}

// Parser interprets the header of a RIFF/WAVE file. After ParseHeader it sits
// at the start of the data chunk payload.
type Parser struct {
	riff   *riff.Parser
	format *Format
	data   bool
	size   int64
}

// NewParser reads the RIFF header at the start of rs.
func NewParser(rs io.ReadSeeker) (*Parser, error) {
	rp, err := riff.New(rs, riff.RIFF, 0)
	if err != nil {
		return nil, err
	}
	if rp.Form() != riff.WAVE {
		return nil, fmt.Errorf("%w: %q", ErrNotWAVE, rp.Form())
	}
	return &Parser{riff: rp}, nil
}

// ParseHeader walks the chunks until it has read the format block and reached
// the data chunk. Unknown chunks are skipped.
func (p *Parser) ParseHeader() error {
	if p.data {
		return nil
	}
	for {
		switch p.riff.Chunk().ID {
		case riff.Fmt:
			if err := p.readFormat(); err != nil {
				return err
			}
		case riff.Data:
			if p.format == nil {
				return ErrNoFormat
			}
			p.data = true
			p.size = int64(p.riff.Chunk().Size)
			return nil
		}

		if err := p.riff.MoveToNextChunk(); err != nil {
			if errors.Is(err, riff.ErrEndOfContainer) {
				return ErrNoData
			}
			return err
		}
	}
}

func (p *Parser) readFormat() error {
	if p.format != nil {
		return ErrDuplicateFormat
	}

	size := p.riff.Chunk().Size
	if size < minFormatSize {
		return fmt.Errorf("%w: %d bytes, need %d", ErrFormatTooSmall, size, minFormatSize)
	}

	r := chunkReader{p.riff}
	tag, err := utils.ReadUint16LE(r)
	if err != nil {
		return err
	}
	if tag == FormatExtensible && size < minExtensibleFormatSize {
		return fmt.Errorf("%w: %d bytes, need %d", ErrFormatTooSmall, size, minExtensibleFormatSize)
	}

	f := &Format{WaveFormat: WaveFormat{FormatTag: tag}}
	if f.Channels, err = utils.ReadUint16LE(r); err != nil {
		return err
	}
	if f.SamplesPerSec, err = utils.ReadUint32LE(r); err != nil {
		return err
	}
	if f.AvgBytesPerSec, err = utils.ReadUint32LE(r); err != nil {
		return err
	}
	if f.BlockAlign, err = utils.ReadUint16LE(r); err != nil {
		return err
	}
	if f.BitsPerSample, err = utils.ReadUint16LE(r); err != nil {
		return err
	}
	// plain PCM files may stop at 16 bytes
	if size > 17 {
		if f.Size, err = utils.ReadUint16LE(r); err != nil {
			return err
		}
	}

	if tag == FormatExtensible {
		ext := &WaveFormatExtensible{}
		if ext.ValidBitsPerSample, err = utils.ReadUint16LE(r); err != nil {
			return err
		}
		if ext.ChannelMask, err = utils.ReadUint32LE(r); err != nil {
			return err
		}
		var guid [16]byte
		if _, err := p.riff.ReadDataFromChunk(guid[:]); err != nil {
			return err
		}
		ext.SubFormat = guidFromWire(guid)
		f.Extensible = ext
	}

	p.format = f
	return nil
}

// Format returns the parsed format block.
func (p *Parser) Format() (*Format, bool) {
	return p.format, p.format != nil
}

// Duration of the data chunk. Zero until the data chunk is reached.
func (p *Parser) Duration() time.Duration {
	if !p.data || p.format == nil {
		return 0
	}
	return bytesToDuration(p.size, p.format.AvgBytesPerSec)
}

// DataSize is the declared size of the data chunk.
func (p *Parser) DataSize() int64 { return p.size }

// DataRemaining is the number of data bytes not read yet.
func (p *Parser) DataRemaining() int64 {
	if !p.data {
		return 0
	}
	return p.riff.BytesRemaining()
}

// ReadData fills buf from the data chunk.
func (p *Parser) ReadData(buf []byte) (int, error) {
	if !p.data {
		return 0, ErrNoData
	}
	return p.riff.ReadDataFromChunk(buf)
}

// RIFF exposes the underlying chunk cursor.
func (p *Parser) RIFF() *riff.Parser { return p.riff }

// chunkReader reads at most the bytes left in the current chunk.
type chunkReader struct {
	p *riff.Parser
}

func (r chunkReader) Read(b []byte) (int, error) {
	left := r.p.BytesRemaining()
	if left == 0 {
		return 0, io.EOF
	}
	if int64(len(b)) > left {
		b = b[:left]
	}
	return r.p.ReadDataFromChunk(b)
}

// guidFromWire converts the mixed-endian GUID layout stored in the file.
func guidFromWire(b [16]byte) uuid.UUID {
	var u uuid.UUID
	binary.BigEndian.PutUint32(u[0:4], binary.LittleEndian.Uint32(b[0:4]))
	binary.BigEndian.PutUint16(u[4:6], binary.LittleEndian.Uint16(b[4:6]))
	binary.BigEndian.PutUint16(u[6:8], binary.LittleEndian.Uint16(b[6:8]))
	copy(u[8:], b[8:])
	return u
}

func bytesToDuration(n int64, avgBytesPerSec uint32) time.Duration {
	if avgBytesPerSec == 0 {
		return 0
	}
	return time.Duration(n * int64(time.Second) / int64(avgBytesPerSec))
}
