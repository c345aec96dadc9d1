// SPDX-License-Identifier: EPL-2.0

// Package audio defines the building blocks of a pull based media pipeline.
//
// A pipeline has three kinds of stages:
//
//   - a Source parses a container and exposes its content as one or more
//     Stream values
//   - a Transform converts samples from one StreamType to another
//   - a Sink writes samples into a container through a StreamSink per stream
//
// Stages never call each other. Every stage owns an EventQueue and the caller
// moves events from one queue to the next:
//
//	stream.RequestSample()
//	ev, _ := stream.DequeueEvent() // EventSample
//	_ = ts.ProcessInput(ev.Sample)
//	out, _ := outTS.ProcessOutput()
//	_ = streamSink.EnqueueStreamSinkEvent(audio.NewSampleEvent(out))
//
// # Samples and Buffers
//
// A Sample is an ordered list of Buffer values tagged with the StreamType the
// bytes are encoded in. Buffers are shared between stages; Map grants access to
// the bytes for the duration of the callback only.
//
// # State
//
// Sources move between Stopped, Started and Paused. Samples requested while
// paused are held back and delivered when the source starts again. StreamCore
// and SourceCore implement this machinery and are meant to be embedded by
// container implementations.
//
// # Errors
//
// Every error returned by a stage wraps one of the class errors (ErrMalformed,
// ErrShutdown, ...). Use errors.Is or KindOf to classify them and IsRecoverable
// to decide whether the pipeline may continue.
//
// # Registry
//
// Registry maps a format key to a Decoder and an Encoder so callers can pick
// containers at runtime:
//
//	reg := audio.NewRegistry()
//	reg.RegisterDecoder("wav", wav.Decoder{})
//	dec, ok := reg.Decoder("wav")
package audio
