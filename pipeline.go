// SPDX-License-Identifier: EPL-2.0

package audpipe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ik5/audpipe/audio"
	"github.com/ik5/audpipe/transforms/pcm"
)

// Stats summarizes a pipeline run.
type Stats struct {
	// Samples is the number of samples delivered by the stream.
	Samples int
	// BytesIn and BytesOut count sample data before and after the transform.
	BytesIn  uint64
	BytesOut uint64
	// Duration is the presentation time covered by the delivered samples.
	Duration time.Duration
}

// Pipeline pulls every sample out of Stream, converts it when SampleType
// asks for another sample type, and writes it to Sink.
//
// The stages are owned by the pipeline once Run is called: Run stops and
// shuts every one of them down before returning.
type Pipeline struct {
	Source audio.Source
	Stream audio.Stream
	Sink   audio.Sink

	// SampleType is the sample type to write. The zero value keeps the
	// stream's.
	SampleType audio.SampleType
	// Transform converts samples when SampleType differs from the stream's.
	// A pcm.Transform is created when nil.
	Transform audio.Transform

	Logger *slog.Logger
}

type run struct {
	*Pipeline

	log   *slog.Logger
	in    *audio.TransformStream
	out   *audio.TransformStream
	sink  audio.StreamSink
	stats Stats
}

// Run drives the pipeline until the stream ends, ctx is done or a stage
// fails. The sink is finalized only when the stream ended.
func (p *Pipeline) Run(ctx context.Context) (Stats, error) {
	if p.Source == nil || p.Stream == nil || p.Sink == nil {
		return Stats{}, fmt.Errorf("pipeline: source, stream and sink are required: %w", audio.ErrPrecondition)
	}

	r := &run{Pipeline: p, log: p.Logger}
	if r.log == nil {
		r.log = slog.Default()
	}
	defer r.shutdown()

	if err := r.setup(); err != nil {
		return r.stats, err
	}
	if err := r.pump(ctx); err != nil {
		return r.stats, err
	}

	if r.in != nil {
		if err := r.Transform.ProcessMessage(audio.MessageEndOfStream); err != nil {
			return r.stats, err
		}
	}
	if err := p.Sink.Finalize(); err != nil {
		return r.stats, fmt.Errorf("pipeline: finalize sink: %w", err)
	}
	if err := p.Source.Stop(); err != nil {
		return r.stats, fmt.Errorf("pipeline: stop source: %w", err)
	}

	r.log.Info("pipeline finished",
		"samples", r.stats.Samples,
		"bytes_in", r.stats.BytesIn,
		"bytes_out", r.stats.BytesOut,
		"duration", r.stats.Duration)
	return r.stats, nil
}

// setup negotiates stream types from the stream descriptor to the sink.
func (r *run) setup() error {
	sd, err := r.Stream.Descriptor()
	if err != nil {
		return fmt.Errorf("pipeline: stream descriptor: %w", err)
	}
	inType := sd.StreamType
	outType := inType

	pcmIn, _, ok := inType.PCM()
	if !ok {
		return fmt.Errorf("pipeline: stream is %s: %w", inType, audio.ErrUnsupportedFormat)
	}
	if r.SampleType.Kind != 0 && r.SampleType != pcmIn.SampleType {
		outType = inType.WithSampleType(r.SampleType)
		if err := r.setupTransform(inType, outType); err != nil {
			return err
		}
	}

	r.sink, err = r.Sink.StreamSinkFromIndex(0)
	if err != nil {
		return fmt.Errorf("pipeline: stream sink: %w", err)
	}
	if err := r.sink.SetStreamType(outType); err != nil {
		return fmt.Errorf("pipeline: sink stream type: %w", err)
	}

	r.log.Info("pipeline configured", "input", inType.String(), "output", outType.String(), "transform", r.in != nil)
	return nil
}

func (r *run) setupTransform(inType, outType audio.StreamType) error {
	if r.Transform == nil {
		r.Transform = pcm.New()
	}
	ins, outs := r.Transform.InputStreams(), r.Transform.OutputStreams()
	if len(ins) == 0 || len(outs) == 0 {
		return fmt.Errorf("pipeline: transform has no streams: %w", audio.ErrPrecondition)
	}
	r.in, r.out = ins[0], outs[0]
	r.in.StreamType = inType
	r.out.StreamType = outType
	for _, ts := range []*audio.TransformStream{r.in, r.out} {
		if err := ts.Add(); err != nil {
			return fmt.Errorf("pipeline: add %s stream: %w", ts.Direction, err)
		}
	}
	return r.Transform.ProcessMessage(audio.MessageStartOfStream)
}

// pump requests samples until the stream reports its end.
func (r *run) pump(ctx context.Context) error {
	if err := r.Source.Start(); err != nil {
		return fmt.Errorf("pipeline: start source: %w", err)
	}
	if err := r.drainSource(); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := r.Stream.RequestSample()
		if errors.Is(err, audio.ErrEndOfStream) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("pipeline: request sample: %w", err)
		}

		done, err := r.drainStream()
		if err != nil || done {
			return err
		}
	}
}

func (r *run) drainSource() error {
	for {
		ev, err := r.Source.DequeueEvent()
		if err != nil {
			return fmt.Errorf("pipeline: source event: %w", err)
		}
		if ev == nil {
			return nil
		}
		r.log.Debug("source event", "type", ev.Type.String())
		if ev.Type == audio.EventFatalError {
			return fmt.Errorf("pipeline: source failed: %w", ev.Err)
		}
	}
}

// drainStream handles every queued stream event and reports whether the
// stream ended.
func (r *run) drainStream() (bool, error) {
	for {
		ev, err := r.Stream.DequeueEvent()
		if err != nil {
			return false, fmt.Errorf("pipeline: stream event: %w", err)
		}
		if ev == nil {
			return false, nil
		}

		r.log.Debug("stream event", "type", ev.Type.String())
		switch ev.Type {
		case audio.EventSample:
			if err := r.deliver(ev.Sample); err != nil {
				return false, err
			}
		case audio.EventEndOfStream:
			return true, nil
		case audio.EventFatalError:
			return false, fmt.Errorf("pipeline: stream failed: %w", ev.Err)
		case audio.EventNonFatalError:
			r.log.Warn("stream error", "err", ev.Err)
		}
	}
}

func (r *run) deliver(s *audio.Sample) error {
	if s == nil {
		return fmt.Errorf("pipeline: sample event without sample: %w", audio.ErrPrecondition)
	}
	r.stats.Samples++
	r.stats.BytesIn += uint64(s.ByteLen())
	r.stats.Duration += s.Duration

	if r.in != nil {
		if err := r.in.ProcessInput(s); err != nil {
			return fmt.Errorf("pipeline: transform input: %w", err)
		}
		out, err := r.out.ProcessOutput()
		if err != nil {
			return fmt.Errorf("pipeline: transform output: %w", err)
		}
		s = out
	}

	r.stats.BytesOut += uint64(s.ByteLen())
	r.log.Debug("sample", "time", s.Time, "bytes", s.ByteLen(), "eos", s.EndOfStream)
	return r.sink.EnqueueStreamSinkEvent(audio.NewSampleEvent(s))
}

func (r *run) shutdown() {
	if r.Transform != nil {
		_ = r.Transform.Shutdown()
	}
	_ = r.Sink.Shutdown()
	_ = r.Source.Shutdown()
}
