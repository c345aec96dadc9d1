// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/ik5/audpipe/audio"
	"github.com/ik5/audpipe/formats/riff"
	"github.com/ik5/audpipe/utils"
)

// HeaderSize is the size of the header Finalize writes: the RIFF header, an
// 18 byte fmt chunk and the data chunk header.
const HeaderSize = riff.ListHeaderSize + riff.ChunkHeaderSize + fmtSize + riff.ChunkHeaderSize

const fmtSize = 18

// Sink writes one PCM stream to a WAV file. Samples are written when the sink
// is finalized, after which the header is written over the reserved space at
// the start of the file.
type Sink struct {
	w        io.WriteSeeker
	stream   *StreamSink
	shutdown bool
}

var _ audio.Sink = (*Sink)(nil)

func NewSink(w io.WriteSeeker) *Sink {
	s := &Sink{w: w}
	s.stream = &StreamSink{sink: s}
	return s
}

func (s *Sink) checkShutdown() error {
	if s.shutdown {
		return audio.ErrShutdown
	}
	return nil
}

func (s *Sink) Characteristics() (audio.SinkCharacteristics, error) {
	if err := s.checkShutdown(); err != nil {
		return audio.SinkCharacteristics{}, err
	}
	return audio.SinkCharacteristics{FixedStreams: true, Rateless: true}, nil
}

func (s *Sink) StreamSinkFromIndex(index int) (audio.StreamSink, error) {
	if err := s.checkShutdown(); err != nil {
		return nil, err
	}
	if index != 0 {
		return nil, fmt.Errorf("%w: %d", ErrStreamIndex, index)
	}
	return s.stream, nil
}

// Finalize writes every queued sample and then the header.
func (s *Sink) Finalize() error {
	if err := s.checkShutdown(); err != nil {
		return err
	}
	return s.stream.finalize()
}

func (s *Sink) Shutdown() error {
	if s.shutdown {
		return nil
	}
	s.shutdown = true
	s.stream.shutdownStream()
	return nil
}

// BytesWritten is the size of the data chunk written so far.
func (s *Sink) BytesWritten() uint64 { return s.stream.written }

// StreamSink is the only stream of a Sink.
type StreamSink struct {
	sink       *Sink
	streamType audio.StreamType
	events     audio.EventQueue
	samples    audio.SampleQueue
	written    uint64
	finalized  bool
	shutdown   bool
}

var _ audio.StreamSink = (*StreamSink)(nil)

func (ss *StreamSink) Sink() audio.Sink { return ss.sink }

func (ss *StreamSink) checkShutdown() error {
	if ss.shutdown {
		return audio.ErrShutdown
	}
	return nil
}

// SetStreamType accepts any PCM audio type once and reserves the header.
// Whether the type can be stored is checked by Finalize.
func (ss *StreamSink) SetStreamType(t audio.StreamType) error {
	if err := ss.checkShutdown(); err != nil {
		return err
	}
	if ss.streamType.IsSet() {
		return ErrStreamTypeSet
	}
	if _, _, ok := t.PCM(); !ok {
		return fmt.Errorf("%w: %s", ErrNotPCM, t)
	}
	if _, err := ss.sink.w.Seek(HeaderSize, io.SeekStart); err != nil {
		return fmt.Errorf("wav: reserve header: %w", err)
	}
	ss.streamType = t
	return nil
}

// StreamType returns the accepted type, the zero value until SetStreamType.
func (ss *StreamSink) StreamType() audio.StreamType { return ss.streamType }

// EnqueueEvent queues Sample events for writing; other events go to the
// sink's event queue.
func (ss *StreamSink) EnqueueEvent(ev *audio.Event) error {
	if err := ss.checkShutdown(); err != nil {
		return err
	}
	if ss.finalized {
		return ErrFinalized
	}
	if ev == nil || ev.Type != audio.EventSample {
		return ss.events.EnqueueEvent(ev)
	}
	if ev.Sample == nil {
		return fmt.Errorf("wav: sample event without sample: %w", audio.ErrPrecondition)
	}
	ss.samples.Enqueue(ev.Sample)
	return nil
}

func (ss *StreamSink) DequeueEvent() (*audio.Event, error) {
	if err := ss.checkShutdown(); err != nil {
		return nil, err
	}
	return ss.events.DequeueEvent()
}

func (ss *StreamSink) EnqueueStreamSinkEvent(ev *audio.Event) error {
	return ss.EnqueueEvent(ev)
}

func (ss *StreamSink) DequeueStreamSinkEvent() (*audio.Event, error) {
	return ss.DequeueEvent()
}

func (ss *StreamSink) finalize() error {
	if err := ss.checkShutdown(); err != nil {
		return err
	}
	if ss.finalized {
		return ErrFinalized
	}
	if !ss.streamType.IsSet() {
		return ErrNoStreamType
	}

	h, err := newHeader(ss.streamType)
	if err != nil {
		return err
	}

	for s := ss.samples.Dequeue(); s != nil; s = ss.samples.Dequeue() {
		if err := ss.writeSample(s); err != nil {
			return err
		}
	}

	if ss.written > math.MaxUint32-(HeaderSize-riff.ChunkHeaderSize) {
		return fmt.Errorf("%w: %d bytes", ErrTooLarge, ss.written)
	}
	h.dataSize = uint32(ss.written)

	w := ss.sink.w
	if _, err := w.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("wav: seek to header: %w", err)
	}
	if _, err := w.Write(h.bytes()); err != nil {
		return fmt.Errorf("wav: write header: %w", err)
	}
	if _, err := w.Seek(HeaderSize+int64(ss.written), io.SeekStart); err != nil {
		return fmt.Errorf("wav: seek to end: %w", err)
	}
	ss.finalized = true
	return nil
}

func (ss *StreamSink) writeSample(s *audio.Sample) error {
	for _, b := range s.Buffers {
		err := b.Map(func(data []byte) error {
			n, err := ss.sink.w.Write(data)
			ss.written += uint64(n)
			if err != nil {
				return fmt.Errorf("wav: write data: %w", err)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (ss *StreamSink) shutdownStream() {
	ss.shutdown = true
	ss.samples.Clear()
	ss.events.Shutdown()
}

type header struct {
	tag        uint16
	channels   uint16
	sampleRate uint32
	avgBytes   uint32
	blockAlign uint16
	bits       uint16
	dataSize   uint32
}

func newHeader(t audio.StreamType) (*header, error) {
	pcm, format, _ := t.PCM()
	if pcm.Endian == audio.BigEndian {
		return nil, ErrBigEndian
	}
	if format.Channels > 2 {
		return nil, fmt.Errorf("%w: %d", ErrTooManyChannels, format.Channels)
	}

	st := pcm.SampleType
	var tag uint16
	switch st.Kind {
	case audio.SampleSigned, audio.SampleUnsigned:
		tag = FormatPCM
	case audio.SampleFloat:
		tag = FormatIEEEFloat
	case audio.SampleALaw:
		tag = FormatALaw
	case audio.SampleMuLaw:
		tag = FormatMuLaw
	default:
		return nil, fmt.Errorf("%w: %s", ErrNotPCM, st)
	}

	bits, size := st.StorageBits(), st.Bytes()
	if tag == FormatIEEEFloat {
		if bits != 32 && bits != 64 {
			return nil, fmt.Errorf("%w: %s", ErrSampleWidth, st)
		}
	} else if bits <= 0 || 8*size != bits || bits > 16 {
		return nil, fmt.Errorf("%w: %s", ErrSampleWidth, st)
	}

	blockAlign := uint64(size) * uint64(format.Channels)
	avg := blockAlign * uint64(format.SampleRate)
	if format.SampleRate < 0 || avg > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d bytes per second", ErrTooLarge, avg)
	}

	return &header{
		tag:        tag,
		channels:   uint16(format.Channels),
		sampleRate: uint32(format.SampleRate),
		avgBytes:   uint32(avg),
		blockAlign: uint16(blockAlign),
		bits:       uint16(bits),
	}, nil
}

// bytes renders the 46 byte header. The RIFF size covers everything after
// the first 8 bytes.
func (h *header) bytes() []byte {
	var b bytes.Buffer
	b.Grow(HeaderSize)
	_ = utils.WriteUint32BE(&b, uint32(riff.RIFF))
	_ = utils.WriteUint32LE(&b, h.dataSize+HeaderSize-riff.ChunkHeaderSize)
	_ = utils.WriteUint32BE(&b, uint32(riff.WAVE))

	_ = utils.WriteUint32BE(&b, uint32(riff.Fmt))
	_ = utils.WriteUint32LE(&b, fmtSize)
	_ = utils.WriteUint16LE(&b, h.tag)
	_ = utils.WriteUint16LE(&b, h.channels)
	_ = utils.WriteUint32LE(&b, h.sampleRate)
	_ = utils.WriteUint32LE(&b, h.avgBytes)
	_ = utils.WriteUint16LE(&b, h.blockAlign)
	_ = utils.WriteUint16LE(&b, h.bits)
	_ = utils.WriteUint16LE(&b, 0)

	_ = utils.WriteUint32BE(&b, uint32(riff.Data))
	_ = utils.WriteUint32LE(&b, h.dataSize)
	return b.Bytes()
}
