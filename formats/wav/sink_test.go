// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/ik5/audpipe/audio"
	"github.com/ik5/audpipe/internal/audiotest"
)

func newStreamSink(t *testing.T, f *audiotest.MemFile, st audio.StreamType) (*Sink, audio.StreamSink) {
	t.Helper()
	sink := NewSink(f)
	ss, err := sink.StreamSinkFromIndex(0)
	if err != nil {
		t.Fatalf("StreamSinkFromIndex(0) error = %v", err)
	}
	if err := ss.SetStreamType(st); err != nil {
		t.Fatalf("SetStreamType() error = %v", err)
	}
	return sink, ss
}

func sampleEvent(st audio.StreamType, chunks ...[]byte) *audio.Event {
	s := audio.NewSample(st)
	for _, c := range chunks {
		s.AddBuffer(audio.MemoryBufferFrom(c))
	}
	return audio.NewSampleEvent(s)
}

func TestSink_Header(t *testing.T) {
	t.Parallel()

	st := audio.NewPCMStream(audio.Signed(16), audio.LittleEndian, audio.AudioFormat{SampleRate: 22050, Channels: 2})
	f := audiotest.NewMemFile(nil)
	sink, ss := newStreamSink(t, f, st)

	if err := ss.EnqueueStreamSinkEvent(sampleEvent(st, []byte{1, 2, 3, 4}, []byte{5, 6, 7, 8})); err != nil {
		t.Fatal(err)
	}
	if err := ss.EnqueueStreamSinkEvent(sampleEvent(st, []byte{9, 10, 11, 12})); err != nil {
		t.Fatal(err)
	}
	if err := sink.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	var want []byte
	le16 := binary.LittleEndian.AppendUint16
	le32 := binary.LittleEndian.AppendUint32
	want = append(want, "RIFF"...)
	want = le32(want, 12+38)
	want = append(want, "WAVEfmt "...)
	want = le32(want, 18)
	want = le16(want, FormatPCM)
	want = le16(want, 2)
	want = le32(want, 22050)
	want = le32(want, 88200)
	want = le16(want, 4)
	want = le16(want, 16)
	want = le16(want, 0)
	want = append(want, "data"...)
	want = le32(want, 12)
	want = append(want, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12)

	if !bytes.Equal(f.Bytes(), want) {
		t.Errorf("file =\n%v\nwant\n%v", f.Bytes(), want)
	}
	if sink.BytesWritten() != 12 {
		t.Errorf("BytesWritten() = %d, want 12", sink.BytesWritten())
	}
	if HeaderSize != 46 {
		t.Errorf("HeaderSize = %d, want 46", HeaderSize)
	}
}

func TestSink_HeaderTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		st   audio.SampleType
		tag  uint16
		bits uint16
	}{
		{"u8", audio.Unsigned(8), FormatPCM, 8},
		{"f32", audio.Float(32), FormatIEEEFloat, 32},
		{"f64", audio.Float(64), FormatIEEEFloat, 64},
		{"alaw", audio.ALaw, FormatALaw, 8},
		{"mulaw", audio.MuLaw, FormatMuLaw, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := audiotest.NewMemFile(nil)
			sink, _ := newStreamSink(t, f, audio.NewPCMStream(tt.st, audio.LittleEndian, audio.AudioFormat{SampleRate: 8000, Channels: 1}))
			if err := sink.Finalize(); err != nil {
				t.Fatal(err)
			}
			b := f.Bytes()
			if len(b) != HeaderSize {
				t.Fatalf("file is %d bytes, want %d", len(b), HeaderSize)
			}
			if tag := binary.LittleEndian.Uint16(b[20:]); tag != tt.tag {
				t.Errorf("tag = %#x, want %#x", tag, tt.tag)
			}
			if bits := binary.LittleEndian.Uint16(b[34:]); bits != tt.bits {
				t.Errorf("bits = %d, want %d", bits, tt.bits)
			}
		})
	}
}

func TestSink_FinalizeRejects(t *testing.T) {
	t.Parallel()

	mono := audio.AudioFormat{SampleRate: 8000, Channels: 1}
	tests := []struct {
		name string
		st   audio.StreamType
		want error
	}{
		{"big endian", audio.NewPCMStream(audio.Signed(16), audio.BigEndian, mono), ErrBigEndian},
		{"surround", audio.NewPCMStream(audio.Signed(16), audio.LittleEndian, audio.AudioFormat{SampleRate: 8000, Channels: 6}), ErrTooManyChannels},
		{"s24", audio.NewPCMStream(audio.Signed(24), audio.LittleEndian, mono), ErrSampleWidth},
		{"s12", audio.NewPCMStream(audio.Signed(12), audio.LittleEndian, mono), ErrSampleWidth},
		{"f16", audio.NewPCMStream(audio.Float(16), audio.LittleEndian, mono), ErrSampleWidth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sink, _ := newStreamSink(t, audiotest.NewMemFile(nil), tt.st)
			err := sink.Finalize()
			if !errors.Is(err, tt.want) {
				t.Errorf("Finalize() error = %v, want %v", err, tt.want)
			}
			if audio.KindOf(err) != audio.KindUnsupportedFormat {
				t.Errorf("KindOf() = %v", audio.KindOf(err))
			}
		})
	}
}

func TestSink_StreamSink(t *testing.T) {
	t.Parallel()

	sink := NewSink(audiotest.NewMemFile(nil))
	if _, err := sink.StreamSinkFromIndex(1); !errors.Is(err, audio.ErrInvalidIndex) {
		t.Errorf("StreamSinkFromIndex(1) error = %v, want ErrInvalidIndex", err)
	}
	ss, err := sink.StreamSinkFromIndex(0)
	if err != nil {
		t.Fatal(err)
	}
	if ss.Sink() != audio.Sink(sink) {
		t.Error("Sink() does not return the owning sink")
	}

	c, err := sink.Characteristics()
	if err != nil || c != (audio.SinkCharacteristics{FixedStreams: true, Rateless: true}) {
		t.Errorf("Characteristics() = %+v, %v", c, err)
	}

	if err := sink.Finalize(); !errors.Is(err, ErrNoStreamType) {
		t.Errorf("Finalize() without type error = %v, want ErrNoStreamType", err)
	}
	if err := ss.SetStreamType(audio.StreamType{}); !errors.Is(err, ErrNotPCM) {
		t.Errorf("SetStreamType(binary) error = %v, want ErrNotPCM", err)
	}

	st := audio.NewPCMStream(audio.Signed(16), audio.LittleEndian, audio.AudioFormat{SampleRate: 8000, Channels: 1})
	if err := ss.SetStreamType(st); err != nil {
		t.Fatal(err)
	}
	if err := ss.SetStreamType(st); !errors.Is(err, ErrStreamTypeSet) {
		t.Errorf("second SetStreamType() error = %v, want ErrStreamTypeSet", err)
	}

	// non-sample events land on the generic queue
	if err := ss.EnqueueStreamSinkEvent(audio.NewEvent(audio.EventEndOfStream, nil, nil)); err != nil {
		t.Fatal(err)
	}
	ev, err := ss.DequeueStreamSinkEvent()
	if err != nil || ev == nil || ev.Type != audio.EventEndOfStream {
		t.Errorf("DequeueStreamSinkEvent() = %v, %v", ev, err)
	}
	if err := ss.EnqueueStreamSinkEvent(&audio.Event{Type: audio.EventSample}); !errors.Is(err, audio.ErrPrecondition) {
		t.Errorf("empty sample event error = %v, want ErrPrecondition", err)
	}

	if err := sink.Finalize(); err != nil {
		t.Fatal(err)
	}
	if err := sink.Finalize(); !errors.Is(err, ErrFinalized) {
		t.Errorf("second Finalize() error = %v, want ErrFinalized", err)
	}
	if err := ss.EnqueueStreamSinkEvent(sampleEvent(st, []byte{0, 0})); !errors.Is(err, ErrFinalized) {
		t.Errorf("enqueue after Finalize() error = %v, want ErrFinalized", err)
	}
}

func TestSink_Shutdown(t *testing.T) {
	t.Parallel()

	st := audio.NewPCMStream(audio.Signed(16), audio.LittleEndian, audio.AudioFormat{SampleRate: 8000, Channels: 1})
	f := audiotest.NewMemFile(nil)
	sink, ss := newStreamSink(t, f, st)
	if err := ss.EnqueueStreamSinkEvent(sampleEvent(st, []byte{1, 2})); err != nil {
		t.Fatal(err)
	}

	if err := sink.Shutdown(); err != nil {
		t.Fatal(err)
	}
	if err := sink.Shutdown(); err != nil {
		t.Errorf("second Shutdown() error = %v", err)
	}

	errs := []error{
		sink.Finalize(),
		ss.SetStreamType(st),
		ss.EnqueueStreamSinkEvent(sampleEvent(st, []byte{1, 2})),
	}
	_, err := sink.StreamSinkFromIndex(0)
	errs = append(errs, err)
	_, err = sink.Characteristics()
	errs = append(errs, err)
	_, err = ss.DequeueStreamSinkEvent()
	errs = append(errs, err)

	for i, err := range errs {
		if !errors.Is(err, audio.ErrShutdown) {
			t.Errorf("call %d after Shutdown error = %v, want ErrShutdown", i, err)
		}
	}
	if f.Len() != 0 {
		t.Errorf("shut down sink wrote %d bytes", f.Len())
	}
}

// Writing samples through a sink and reading them back yields the same bytes
// and stream type.
func TestSink_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		wav  audiotest.WAV
	}{
		{"u8 mono", audiotest.WAV{FormatTag: audiotest.TagPCM, Channels: 1, SampleRate: 11025, BitsPerSample: 8, Data: audiotest.U8(1, 20000, audiotest.Sine(11025, 300))}},
		{"s16 stereo", audiotest.PCM16(44100, 2, audiotest.S16(2, 50000, audiotest.Sine(44100, 1000)))},
		{"s16 full range", audiotest.PCM16(8000, 1, audiotest.Ramp())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, stream := openSource(t, tt.wav.Bytes())
			sd, _ := stream.Descriptor()

			out := audiotest.NewMemFile(nil)
			sink, ss := newStreamSink(t, out, sd.StreamType)
			for {
				err := stream.RequestSample()
				if errors.Is(err, audio.ErrEndOfStream) {
					break
				}
				if err != nil {
					t.Fatal(err)
				}
				for _, ev := range drain(t, stream) {
					if ev.Type == audio.EventSample {
						if err := ss.EnqueueStreamSinkEvent(ev); err != nil {
							t.Fatal(err)
						}
					}
				}
			}
			if err := sink.Finalize(); err != nil {
				t.Fatal(err)
			}

			src2, stream2 := openSource(t, out.Bytes())
			sd2, _ := stream2.Descriptor()
			if sd2.StreamType != sd.StreamType {
				t.Errorf("stream type = %s, want %s", sd2.StreamType, sd.StreamType)
			}
			p := src2.Parser()
			got := make([]byte, p.DataRemaining())
			if _, err := p.ReadData(got); err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(got, tt.wav.Data) {
				t.Errorf("data differs: %d bytes, want %d", len(got), len(tt.wav.Data))
			}
		})
	}
}
