// SPDX-License-Identifier: EPL-2.0

package audiotest

import "encoding/binary"

// Format tags used by the fixtures.
const (
	TagPCM        = 0x0001
	TagIEEEFloat  = 0x0003
	TagALaw       = 0x0006
	TagMuLaw      = 0x0007
	TagExtensible = 0xFFFE
)

// Chunk is a raw chunk inserted around the fmt and data chunks.
type Chunk struct {
	ID   string
	Data []byte
}

// WAV describes a fixture file. Zero BlockAlign and AvgBytesPerSec are derived
// from the other fields.
type WAV struct {
	FormatTag     uint16
	Channels      int
	SampleRate    int
	BitsPerSample int

	BlockAlign     int
	AvgBytesPerSec int

	// SubFormat is the tag stored in the first two bytes of the extensible
	// sub-format GUID. Setting it makes the fixture extensible.
	SubFormat uint16
	// The extra size field follows the 16 byte block unless OmitExtraSize is set.
	OmitExtraSize bool

	Before  []Chunk // before fmt
	Between []Chunk // between fmt and data
	Data    []byte
}

// PCM16 is a canonical 16-bit PCM fixture.
func PCM16(sampleRate, channels int, data []byte) WAV {
	return WAV{
		FormatTag:     TagPCM,
		Channels:      channels,
		SampleRate:    sampleRate,
		BitsPerSample: 16,
		Data:          data,
	}
}

// Bytes encodes the fixture.
func (w WAV) Bytes() []byte {
	blockAlign := w.BlockAlign
	if blockAlign == 0 {
		blockAlign = w.Channels * w.BitsPerSample / 8
	}
	avg := w.AvgBytesPerSec
	if avg == 0 {
		avg = w.SampleRate * blockAlign
	}

	tag := w.FormatTag
	if w.SubFormat != 0 {
		tag = TagExtensible
	}

	var fmtBlock []byte
	fmtBlock = binary.LittleEndian.AppendUint16(fmtBlock, tag)
	fmtBlock = binary.LittleEndian.AppendUint16(fmtBlock, uint16(w.Channels))
	fmtBlock = binary.LittleEndian.AppendUint32(fmtBlock, uint32(w.SampleRate))
	fmtBlock = binary.LittleEndian.AppendUint32(fmtBlock, uint32(avg))
	fmtBlock = binary.LittleEndian.AppendUint16(fmtBlock, uint16(blockAlign))
	fmtBlock = binary.LittleEndian.AppendUint16(fmtBlock, uint16(w.BitsPerSample))
	switch {
	case w.SubFormat != 0:
		fmtBlock = binary.LittleEndian.AppendUint16(fmtBlock, 22)
		fmtBlock = binary.LittleEndian.AppendUint16(fmtBlock, uint16(w.BitsPerSample))
		fmtBlock = binary.LittleEndian.AppendUint32(fmtBlock, channelMask(w.Channels))
		fmtBlock = binary.LittleEndian.AppendUint16(fmtBlock, w.SubFormat)
		fmtBlock = append(fmtBlock, guidSuffix[:]...)
	case !w.OmitExtraSize:
		fmtBlock = binary.LittleEndian.AppendUint16(fmtBlock, 0)
	}

	var body []byte
	body = append(body, "WAVE"...)
	for _, c := range w.Before {
		body = AppendChunk(body, c.ID, c.Data)
	}
	body = AppendChunk(body, "fmt ", fmtBlock)
	for _, c := range w.Between {
		body = AppendChunk(body, c.ID, c.Data)
	}
	body = AppendChunk(body, "data", w.Data)

	out := append([]byte("RIFF"), binary.LittleEndian.AppendUint32(nil, uint32(len(body)))...)
	return append(out, body...)
}

// AppendChunk appends an unpadded chunk.
func AppendChunk(dst []byte, id string, data []byte) []byte {
	dst = append(dst, id...)
	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(data)))
	return append(dst, data...)
}

// KSDATAFORMAT_SUBTYPE GUID bytes following the two tag bytes.
var guidSuffix = [14]byte{0x00, 0x00, 0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0xAA, 0x00, 0x38, 0x9B, 0x71}

func channelMask(channels int) uint32 {
	if channels == 2 {
		return 0x3
	}
	return 0x4
}
