// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"io"
	"slices"
	"testing"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/audpipe/audio"
)

// mockAiffReader simulates the aiff.Decoder for testing
type mockAiffReader struct {
	sampleRate   int
	channels     int
	samples      []int
	offset       int
	returnErrors bool
}

func (m *mockAiffReader) Format() *goaudio.Format {
	return &goaudio.Format{
		SampleRate:  m.sampleRate,
		NumChannels: m.channels,
	}
}

func (m *mockAiffReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if m.returnErrors {
		return 0, io.ErrUnexpectedEOF
	}

	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}

	n := copy(buf.Data, m.samples[m.offset:])
	m.offset += n

	if m.offset >= len(m.samples) {
		return n, io.EOF
	}

	return n, nil
}

func openMock(t testing.TB, m *mockAiffReader, bitDepth int, endian audio.Endian) (*Source, *Stream) {
	t.Helper()

	src := NewSource(endian)
	if err := src.open(m, bitDepth, int64(len(m.samples)/m.channels)); err != nil {
		t.Fatalf("open() error = %v", err)
	}
	stream, err := src.CreateStream()
	if err != nil {
		t.Fatalf("CreateStream() error = %v", err)
	}
	return src, stream
}

func drain(t *testing.T, g audio.EventGenerator) []*audio.Event {
	t.Helper()

	var out []*audio.Event
	for {
		ev, err := g.DequeueEvent()
		if err != nil {
			t.Fatalf("DequeueEvent() error = %v", err)
		}
		if ev == nil {
			return out
		}
		out = append(out, ev)
	}
}

func eventTypes(evs []*audio.Event) []audio.EventType {
	out := make([]audio.EventType, len(evs))
	for i, ev := range evs {
		out[i] = ev.Type
	}
	return out
}

func sampleBytes(t *testing.T, s *audio.Sample) []byte {
	t.Helper()

	var out []byte
	for _, b := range s.Buffers {
		data, err := audio.Bytes(b)
		if err != nil {
			t.Fatal(err)
		}
		out = append(out, data...)
	}
	return out
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := map[string][]byte{
		"garbage": []byte("This is not AIFF data"),
		"empty":   {},
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, _, err := Decoder{}.Decode(bytes.NewReader(data))
			if !errors.Is(err, ErrNotAiffFile) {
				t.Errorf("Decode() error = %v, want ErrNotAiffFile", err)
			}
			if audio.KindOf(err) != audio.KindMalformed {
				t.Errorf("KindOf() = %v, want malformed", audio.KindOf(err))
			}
		})
	}
}

func TestSource_OpenValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		reader   *mockAiffReader
		bitDepth int
		want     error
	}{
		{"12-bit", &mockAiffReader{sampleRate: 44100, channels: 1}, 12, ErrUnsupportedBitDepth},
		{"no channels", &mockAiffReader{sampleRate: 44100}, 16, ErrUnsupportedAiffLayout},
		{"no rate", &mockAiffReader{channels: 2}, 16, ErrUnsupportedAiffLayout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := NewSource(audio.LittleEndian)
			err := src.open(tt.reader, tt.bitDepth, 0)
			if !errors.Is(err, tt.want) {
				t.Fatalf("open() error = %v, want %v", err, tt.want)
			}
			if !src.IsShutdown() {
				t.Error("source not shut down after rejected format")
			}
		})
	}
}

func TestSource_StreamType(t *testing.T) {
	t.Parallel()

	src, stream := openMock(t, &mockAiffReader{sampleRate: 44100, channels: 2, samples: make([]int, 8)}, 24, audio.LittleEndian)

	sd, err := stream.Descriptor()
	if err != nil {
		t.Fatal(err)
	}
	if got := sd.StreamType.String(); got != "pcm s24le 44100Hz/2ch" {
		t.Errorf("stream type = %q", got)
	}

	pd, _ := src.PresentationDescriptor()
	if pd.Count() != 1 || !sd.Selected {
		t.Errorf("presentation descriptor has %d streams", pd.Count())
	}

	if _, err := src.CreateStream(); !errors.Is(err, ErrStreamExists) {
		t.Errorf("second CreateStream() error = %v", err)
	}
	if err := src.open(&mockAiffReader{}, 16, 0); !errors.Is(err, ErrAlreadyOpen) {
		t.Errorf("second open() error = %v", err)
	}

	c, _ := src.Characteristics()
	if c.Live || c.Seek || !c.Pause {
		t.Errorf("Characteristics() = %+v", c)
	}
}

func TestStream_RequestSample(t *testing.T) {
	t.Parallel()

	// 2.5 seconds of 8 kHz mono.
	samples := make([]int, 20000)
	for i := range samples {
		samples[i] = i % 100
	}
	src, stream := openMock(t, &mockAiffReader{sampleRate: 8000, channels: 1, samples: samples}, 16, audio.LittleEndian)

	if err := src.Start(); err != nil {
		t.Fatal(err)
	}

	var (
		got  []*audio.Sample
		evts []audio.EventType
	)
	for range 3 {
		if err := stream.RequestSample(); err != nil {
			t.Fatal(err)
		}
		for _, ev := range drain(t, stream) {
			evts = append(evts, ev.Type)
			if ev.Sample != nil {
				got = append(got, ev.Sample)
			}
		}
	}

	want := []audio.EventType{
		audio.EventStreamStarted,
		audio.EventSample, audio.EventSample, audio.EventSample,
		audio.EventEndOfStream,
	}
	if !slices.Equal(evts, want) {
		t.Fatalf("events = %v, want %v", evts, want)
	}

	if len(got) != 3 || got[0].ByteLen() != 16000 || got[2].ByteLen() != 8000 {
		t.Fatalf("sample sizes = %d, %d, %d", got[0].ByteLen(), got[1].ByteLen(), got[2].ByteLen())
	}
	if got[1].Time != time.Second || got[2].Duration != 500*time.Millisecond {
		t.Errorf("timing = %v / %v", got[1].Time, got[2].Duration)
	}
	if got[0].EndOfStream || !got[2].EndOfStream {
		t.Error("EndOfStream flag on wrong sample")
	}

	if err := stream.RequestSample(); !errors.Is(err, audio.ErrEndOfStream) {
		t.Errorf("RequestSample() after EOS = %v", err)
	}
}

func TestStream_ExactLength(t *testing.T) {
	t.Parallel()

	// The frame count ends the stream without a trailing empty sample.
	_, stream := openMock(t, &mockAiffReader{sampleRate: 100, channels: 2, samples: make([]int, 200)}, 16, audio.LittleEndian)

	if err := stream.RequestSample(); err != nil {
		t.Fatal(err)
	}
	evs := drain(t, stream)
	want := []audio.EventType{audio.EventSample, audio.EventEndOfStream}
	if !slices.Equal(eventTypes(evs), want) {
		t.Errorf("events = %v, want %v", eventTypes(evs), want)
	}
}

func TestStream_Encoding(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bitDepth int
		endian   audio.Endian
		input    []int
		want     []byte
	}{
		{8, audio.LittleEndian, []int{-128, 127}, []byte{0x80, 0x7f}},
		{16, audio.LittleEndian, []int{-2, 0x1234}, []byte{0xfe, 0xff, 0x34, 0x12}},
		{16, audio.BigEndian, []int{-2, 0x1234}, []byte{0xff, 0xfe, 0x12, 0x34}},
		{24, audio.LittleEndian, []int{-8388608, 0x123456}, []byte{0x00, 0x00, 0x80, 0x56, 0x34, 0x12}},
		{24, audio.BigEndian, []int{-1, 0x123456}, []byte{0xff, 0xff, 0xff, 0x12, 0x34, 0x56}},
		{32, audio.LittleEndian, []int{-1, 0x12345678}, []byte{0xff, 0xff, 0xff, 0xff, 0x78, 0x56, 0x34, 0x12}},
	}

	for _, tt := range tests {
		t.Run(audio.PCMFormat{SampleType: audio.Signed(tt.bitDepth), Endian: tt.endian}.String(), func(t *testing.T) {
			t.Parallel()

			_, stream := openMock(t, &mockAiffReader{sampleRate: 44100, channels: 1, samples: tt.input}, tt.bitDepth, tt.endian)
			if err := stream.RequestSample(); err != nil {
				t.Fatal(err)
			}
			evs := drain(t, stream)
			if len(evs) == 0 || evs[0].Sample == nil {
				t.Fatalf("events = %v", eventTypes(evs))
			}
			if got := sampleBytes(t, evs[0].Sample); !bytes.Equal(got, tt.want) {
				t.Errorf("bytes = % x, want % x", got, tt.want)
			}
		})
	}
}

func TestStream_ReadError(t *testing.T) {
	t.Parallel()

	_, stream := openMock(t, &mockAiffReader{sampleRate: 44100, channels: 1, samples: []int{1, 2}, returnErrors: true}, 16, audio.LittleEndian)

	err := stream.RequestSample()
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("RequestSample() error = %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestSource_PauseDefersSamples(t *testing.T) {
	t.Parallel()

	src, stream := openMock(t, &mockAiffReader{sampleRate: 10, channels: 1, samples: make([]int, 5)}, 16, audio.LittleEndian)

	_ = src.Start()
	_ = src.Pause()
	drain(t, stream)

	if err := stream.RequestSample(); err != nil {
		t.Fatal(err)
	}
	if evs := drain(t, stream); len(evs) != 0 {
		t.Fatalf("paused stream emitted %v", eventTypes(evs))
	}

	_ = src.Start()
	want := []audio.EventType{audio.EventStreamStarted, audio.EventSample, audio.EventEndOfStream}
	if got := eventTypes(drain(t, stream)); !slices.Equal(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
}

func TestSource_Shutdown(t *testing.T) {
	t.Parallel()

	src, stream := openMock(t, &mockAiffReader{sampleRate: 10, channels: 1, samples: make([]int, 5)}, 16, audio.LittleEndian)

	if err := src.Shutdown(); err != nil {
		t.Fatal(err)
	}
	if err := src.Shutdown(); err != nil {
		t.Errorf("second Shutdown() error = %v", err)
	}
	if err := src.Start(); !errors.Is(err, audio.ErrShutdown) {
		t.Errorf("Start() error = %v", err)
	}
	if err := stream.RequestSample(); !errors.Is(err, audio.ErrShutdown) {
		t.Errorf("RequestSample() error = %v", err)
	}
	if _, err := src.CreateStream(); !errors.Is(err, audio.ErrShutdown) {
		t.Errorf("CreateStream() error = %v", err)
	}
}

func TestErrors_Kinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		kind audio.Kind
	}{
		{ErrNotAiffFile, audio.KindMalformed},
		{ErrUnsupportedBitDepth, audio.KindUnsupportedFormat},
		{ErrUnsupportedAiffLayout, audio.KindUnsupportedFormat},
		{ErrAlreadyOpen, audio.KindInvalidState},
		{ErrNotOpen, audio.KindInvalidState},
		{ErrStreamExists, audio.KindInvalidState},
	}

	for _, tt := range tests {
		if got := audio.KindOf(tt.err); got != tt.kind {
			t.Errorf("KindOf(%v) = %v, want %v", tt.err, got, tt.kind)
		}
	}
}

func BenchmarkStream_RequestSample(b *testing.B) {
	samples := make([]int, 44100*2)
	for i := range samples {
		samples[i] = i * 100
	}
	m := &mockAiffReader{sampleRate: 44100, channels: 2, samples: samples}

	b.ReportAllocs()
	for b.Loop() {
		m.offset = 0
		_, stream := openMock(b, m, 16, audio.LittleEndian)
		_ = stream.RequestSample()
	}
}
