// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"fmt"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/audpipe/audio"
)

const (
	inputID  = 0
	outputID = 1
)

// Transform converts samples between PCM sample types. It holds at most one
// input sample: ProcessInput fails with ErrBusy until ProcessOutput has
// consumed it.
type Transform struct {
	input  *audio.TransformStream
	output *audio.TransformStream
	added  [2]bool

	pending  *audio.Sample
	scratch  goaudio.FloatBuffer
	shutdown bool
}

var _ audio.Transform = (*Transform)(nil)

// New returns a transform with its input (id 0) and output (id 1) streams.
// Set both stream types and Add both streams before processing.
func New() *Transform {
	t := &Transform{}
	t.input = audio.NewTransformStream(t, inputID, audio.Input)
	t.output = audio.NewTransformStream(t, outputID, audio.Output)
	return t
}

func (t *Transform) checkShutdown() error {
	if t.shutdown {
		return audio.ErrShutdown
	}
	return nil
}

func (t *Transform) InputStreams() []*audio.TransformStream {
	return []*audio.TransformStream{t.input}
}

func (t *Transform) OutputStreams() []*audio.TransformStream {
	return []*audio.TransformStream{t.output}
}

func (t *Transform) InputStreamLimits() (min, max int)  { return 1, 1 }
func (t *Transform) OutputStreamLimits() (min, max int) { return 1, 1 }

func (t *Transform) AddStream(ts *audio.TransformStream) error {
	if err := t.checkShutdown(); err != nil {
		return err
	}
	if err := t.owns(ts); err != nil {
		return err
	}
	if t.added[ts.ID] {
		return fmt.Errorf("%w: %d", ErrStreamAdded, ts.ID)
	}
	t.added[ts.ID] = true
	return nil
}

func (t *Transform) owns(ts *audio.TransformStream) error {
	switch {
	case ts == nil:
		return ErrForeignStream
	case ts == t.input && ts.ID == inputID, ts == t.output && ts.ID == outputID:
		return nil
	}
	return ErrForeignStream
}

// stream checks that ts is this transform's stream with the given id and that
// it was added.
func (t *Transform) stream(ts *audio.TransformStream, id int) error {
	if err := t.owns(ts); err != nil {
		return err
	}
	if ts.ID != id {
		return fmt.Errorf("%w: stream %d used as %d", ErrForeignStream, ts.ID, id)
	}
	if !t.added[id] {
		return fmt.Errorf("%w: %d", ErrStreamNotAdded, id)
	}
	return nil
}

// ProcessMessage handles Flush by dropping the pending sample. The other
// messages need no work since no state spans samples.
func (t *Transform) ProcessMessage(msg audio.Message) error {
	if err := t.checkShutdown(); err != nil {
		return err
	}
	switch msg {
	case audio.MessageFlush:
		t.pending = nil
	case audio.MessageDrain, audio.MessageStartOfStream, audio.MessageEndOfStream:
	default:
		return fmt.Errorf("%w: %d", ErrUnknownMessage, msg)
	}
	return nil
}

// ProcessEvent feeds Sample events to ProcessInput and ignores the rest.
func (t *Transform) ProcessEvent(ts *audio.TransformStream, ev *audio.Event) error {
	if err := t.checkShutdown(); err != nil {
		return err
	}
	if ev == nil {
		return fmt.Errorf("pcm: nil event: %w", audio.ErrPrecondition)
	}
	if ev.Type != audio.EventSample {
		return nil
	}
	return t.ProcessInput(ts, ev.Sample)
}

func (t *Transform) ProcessInput(ts *audio.TransformStream, s *audio.Sample) error {
	if err := t.checkShutdown(); err != nil {
		return err
	}
	if err := t.stream(ts, inputID); err != nil {
		return err
	}
	if s == nil {
		return fmt.Errorf("pcm: nil sample: %w", audio.ErrPrecondition)
	}
	if t.pending != nil {
		return ErrBusy
	}
	t.pending = s
	return nil
}

// ProcessOutput converts the pending sample buffer by buffer into freshly
// allocated buffers of the output type. The pending sample is kept when
// conversion fails.
func (t *Transform) ProcessOutput(ts *audio.TransformStream) (*audio.Sample, error) {
	if err := t.checkShutdown(); err != nil {
		return nil, err
	}
	if err := t.stream(ts, outputID); err != nil {
		return nil, err
	}
	if t.pending == nil {
		return nil, ErrNoSample
	}

	in, out, err := t.codecs()
	if err != nil {
		return nil, err
	}

	src := t.pending
	dst := audio.NewSample(t.output.StreamType)
	dst.EndOfStream = src.EndOfStream
	dst.Time = src.Time
	dst.Duration = src.Duration

	for _, b := range src.Buffers {
		converted, err := t.convert(b, in, out)
		if err != nil {
			return nil, err
		}
		dst.AddBuffer(converted)
	}

	t.pending = nil
	return dst, nil
}

func (t *Transform) codecs() (codec, codec, error) {
	inPCM, inFormat, ok := t.input.StreamType.PCM()
	if !ok {
		return codec{}, codec{}, fmt.Errorf("%w: input %s", ErrNotPCM, t.input.StreamType)
	}
	outPCM, outFormat, ok := t.output.StreamType.PCM()
	if !ok {
		return codec{}, codec{}, fmt.Errorf("%w: output %s", ErrNotPCM, t.output.StreamType)
	}
	if inFormat != outFormat {
		return codec{}, codec{}, fmt.Errorf("%w: %s to %s", ErrFormatMismatch, inFormat, outFormat)
	}
	if inPCM.Endian != audio.LittleEndian || outPCM.Endian != audio.LittleEndian {
		return codec{}, codec{}, ErrNotLittleEndian
	}
	if inPCM.SampleType.IsLaw() || outPCM.SampleType.IsLaw() {
		return codec{}, codec{}, ErrCompanded
	}

	in, ok := codecs[inPCM.SampleType]
	if !ok {
		return codec{}, codec{}, fmt.Errorf("%w: input %s", ErrSampleType, inPCM.SampleType)
	}
	out, ok := codecs[outPCM.SampleType]
	if !ok {
		return codec{}, codec{}, fmt.Errorf("%w: output %s", ErrSampleType, outPCM.SampleType)
	}
	// NumFrames in convert reads the channel count from here.
	t.scratch.Format = inFormat.Format()
	return in, out, nil
}

// convert goes through the float64 intermediate. A trailing partial frame is
// dropped.
func (t *Transform) convert(b audio.Buffer, in, out codec) (audio.Buffer, error) {
	n := b.Len() / in.size
	if cap(t.scratch.Data) < n {
		t.scratch.Data = make([]float64, n)
	}
	t.scratch.Data = t.scratch.Data[:n]
	n = t.scratch.NumFrames() * max(t.scratch.Format.NumChannels, 1)
	t.scratch.Data = t.scratch.Data[:n]

	err := b.Map(func(data []byte) error {
		in.decode(t.scratch.Data, data)
		return nil
	})
	if err != nil {
		return nil, err
	}

	dst := audio.NewMemoryBuffer(n * out.size)
	err = dst.Map(func(data []byte) error {
		out.encode(data, t.scratch.Data)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dst, nil
}

// Shutdown drops the pending sample. Every later call fails with
// audio.ErrShutdown.
func (t *Transform) Shutdown() error {
	t.shutdown = true
	t.pending = nil
	t.scratch.Data = nil
	return nil
}
