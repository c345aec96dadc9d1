// SPDX-License-Identifier: EPL-2.0

// Package pcm converts little-endian PCM samples between 16-bit signed
// integers and 32 or 64 bit floats.
//
// Values pass through a float64 go-audio FloatBuffer carrying the stream's
// channel count; a trailing partial frame in a buffer is dropped. Integers
// are scaled by 32768 in both directions, so full scale negative maps to
// exactly -1.0 and +32767 maps to 32767/32768; converting back rounds to the
// nearest integer and clamps.
//
// The transform has one input and one output stream and never changes the
// sample rate or channel count:
//
//	t := pcm.New()
//	in, out := t.InputStreams()[0], t.OutputStreams()[0]
//	in.StreamType = srcType
//	out.StreamType = srcType.WithSampleType(audio.Float(32))
//	_ = in.Add()
//	_ = out.Add()
//
//	if err := in.ProcessInput(sample); err != nil {
//	    return err
//	}
//	converted, err := out.ProcessOutput()
package pcm
