// SPDX-License-Identifier: EPL-2.0

// Package audpipe converts audio files through a pull based pipeline of
// sources, transforms and sinks.
//
// The building blocks live in subpackages:
//   - audio: samples, events, stream types, stage interfaces, errors
//   - formats/riff: RIFF chunk walker
//   - formats/wav: WAV source, stream and sink
//   - formats/aiff: AIFF source and stream (via github.com/go-audio/aiff)
//   - formats/au: Sun .snd sink
//   - transforms/pcm: sample type conversion between s16, f32 and f64
//   - config: YAML conversion settings
//
// This package wires them together.
//
// # Quick Start
//
// ConvertFile picks the containers by file extension:
//
//	stats, err := audpipe.ConvertFile(ctx, "in.wav", "out.wav", audpipe.ConvertOptions{
//	    SampleType: audio.Float(32),
//	    Verify:     true,
//	})
//
// # Pipelines
//
// For more control, build a Pipeline from stages you opened yourself:
//
//	src, stream, _ := wav.Decoder{}.Decode(in)
//	p := &audpipe.Pipeline{
//	    Source:     src,
//	    Stream:     stream,
//	    Sink:       wav.NewSink(out),
//	    SampleType: audio.Float(32),
//	}
//	stats, err := p.Run(ctx)
//
// Run starts the source, requests samples until the stream ends, passes each
// one through a pcm.Transform when the sample type changes and finalizes the
// sink. It logs through log/slog: setup at Info, every event at Debug.
//
// # Verification
//
// Verify re-reads a WAV file with github.com/go-audio/wav, an implementation
// independent from formats/wav, and CheckWAV compares the result with the
// Stats of the run that wrote it.
package audpipe
