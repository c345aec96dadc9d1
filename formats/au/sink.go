// SPDX-License-Identifier: EPL-2.0

package au

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/ik5/audpipe/audio"
	"github.com/ik5/audpipe/formats/riff"
	"github.com/ik5/audpipe/utils"
)

// HeaderSize is the size of the header written by SetStreamType. No
// annotation field is emitted.
const HeaderSize = 24

// UnknownSize is stored in the data size field until Finalize knows better,
// and kept when the writer cannot seek or the data does not fit.
const UnknownSize = 0xFFFFFFFF

// dataSizeOffset is where Finalize patches the data size.
const dataSizeOffset = 8

// Magic is the ".snd" file identifier.
var Magic = riff.FromString(".snd")

// Encoding codes of the sample types a Sink can store.
const (
	EncodingMuLaw    uint32 = 1
	EncodingLinear8  uint32 = 2
	EncodingLinear16 uint32 = 3
	EncodingLinear24 uint32 = 4
	EncodingLinear32 uint32 = 5
	EncodingFloat    uint32 = 6
	EncodingDouble   uint32 = 7
	EncodingALaw     uint32 = 27
)

// Encoding returns the .snd encoding code for st.
func Encoding(st audio.SampleType) (uint32, error) {
	switch st {
	case audio.MuLaw:
		return EncodingMuLaw, nil
	case audio.Signed(8):
		return EncodingLinear8, nil
	case audio.Signed(16):
		return EncodingLinear16, nil
	case audio.Signed(24):
		return EncodingLinear24, nil
	case audio.Signed(32):
		return EncodingLinear32, nil
	case audio.Float(32):
		return EncodingFloat, nil
	case audio.Float(64):
		return EncodingDouble, nil
	case audio.ALaw:
		return EncodingALaw, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrEncoding, st)
}

// Sink writes one big-endian PCM stream to a Sun .snd file. The header is
// written as soon as the stream type is known; samples are written when the
// sink is finalized.
type Sink struct {
	w        io.Writer
	stream   *StreamSink
	shutdown bool
}

var _ audio.Sink = (*Sink)(nil)

// NewSink returns a sink writing to w. When w is also an io.Seeker the data
// size is patched into the header by Finalize.
func NewSink(w io.Writer) *Sink {
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

// BytesWritten is the amount of sample data written so far.
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

// SetStreamType validates t and writes the header.
func (ss *StreamSink) SetStreamType(t audio.StreamType) error {
	if err := ss.checkShutdown(); err != nil {
		return err
	}
	if ss.streamType.IsSet() {
		return ErrStreamTypeSet
	}

	pcm, format, ok := t.PCM()
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotPCM, t)
	}
	if pcm.Endian != audio.BigEndian {
		return ErrLittleEndian
	}
	enc, err := Encoding(pcm.SampleType)
	if err != nil {
		return err
	}
	if format.Channels < 1 || format.SampleRate < 1 || uint64(format.SampleRate) > math.MaxUint32 {
		return fmt.Errorf("%w: %s", ErrLayout, format)
	}

	var b bytes.Buffer
	b.Grow(HeaderSize)
	_ = utils.WriteUint32BE(&b, uint32(Magic))
	_ = utils.WriteUint32BE(&b, HeaderSize)
	_ = utils.WriteUint32BE(&b, UnknownSize)
	_ = utils.WriteUint32BE(&b, enc)
	_ = utils.WriteUint32BE(&b, uint32(format.SampleRate))
	_ = utils.WriteUint32BE(&b, uint32(format.Channels))
	if _, err := ss.sink.w.Write(b.Bytes()); err != nil {
		return fmt.Errorf("au: write header: %w", err)
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
		return fmt.Errorf("au: sample event without sample: %w", audio.ErrPrecondition)
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

	for s := ss.samples.Dequeue(); s != nil; s = ss.samples.Dequeue() {
		if err := ss.writeSample(s); err != nil {
			return err
		}
	}
	ss.finalized = true

	ws, ok := ss.sink.w.(io.Seeker)
	if !ok || ss.written >= UnknownSize {
		return nil
	}
	if _, err := ws.Seek(dataSizeOffset, io.SeekStart); err != nil {
		return fmt.Errorf("au: seek to data size: %w", err)
	}
	if err := utils.WriteUint32BE(ss.sink.w, uint32(ss.written)); err != nil {
		return fmt.Errorf("au: write data size: %w", err)
	}
	if _, err := ws.Seek(HeaderSize+int64(ss.written), io.SeekStart); err != nil {
		return fmt.Errorf("au: seek to end: %w", err)
	}
	return nil
}

func (ss *StreamSink) writeSample(s *audio.Sample) error {
	for _, b := range s.Buffers {
		err := b.Map(func(data []byte) error {
			n, err := ss.sink.w.Write(data)
			ss.written += uint64(n)
			if err != nil {
				return fmt.Errorf("au: write data: %w", err)
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
