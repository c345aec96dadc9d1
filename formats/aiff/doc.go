// SPDX-License-Identifier: EPL-2.0

// Package aiff provides an AIFF (Audio Interchange File Format) source.
//
// This package uses github.com/go-audio/aiff to parse the FORM, COMM and SSND
// chunks and exposes the sound data as a single PCM stream.
//
// # Supported Formats
//
//   - uncompressed AIFF (AIFF-C compression types are not supported)
//   - 8, 16, 24 and 32-bit signed samples
//   - any channel count and sample rate
//
// # Decoding AIFF Files
//
//	f, _ := os.Open("audio.aif")
//	src, stream, err := aiff.Decoder{}.Decode(f)
//	if err != nil {
//	    // Handle error
//	}
//
//	_ = src.Start()
//	_ = stream.RequestSample()
//	ev, _ := stream.DequeueEvent() // audio.EventStreamStarted
//	ev, _ = stream.DequeueEvent()  // audio.EventSample, one second of audio
//
// # Byte Order
//
// AIFF stores samples big-endian. The stream re-encodes them in the byte order
// passed to NewSource (Decoder.Endian), little-endian by default so the
// samples can feed a WAV sink or the PCM transform directly.
//
// # Error Handling
//
//   - ErrNotAiffFile: the input is not a valid AIFF file
//   - ErrUnsupportedBitDepth: the sample size is not a whole byte count up to 32 bits
//   - ErrUnsupportedAiffLayout: no channels or no sample rate
//
// All of them wrap one of the audio package class errors:
//
//	if errors.Is(err, audio.ErrUnsupportedFormat) {
//	    fmt.Println("cannot play this file")
//	}
package aiff
