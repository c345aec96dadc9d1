// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes RIFF/WAVE files as pipeline stages.
//
// # Reading
//
// A Source parses and validates the header, then creates the single Stream
// of the file. The stream produces samples of about one second of audio on
// request:
//
//	src := wav.NewSource()
//	if err := src.Open(file); err != nil {
//	    return err
//	}
//	stream, err := src.CreateStream()
//	if err != nil {
//	    return err
//	}
//	for {
//	    if err := stream.RequestSample(); errors.Is(err, audio.ErrEndOfStream) {
//	        break
//	    }
//	    ev, _ := stream.DequeueEvent()
//	    // ev.Type is EventSample, followed by EventEndOfStream after the last one
//	}
//
// The source accepts mono and stereo files with the following layouts:
//   - PCM 8 and 16 bit (8 bit is unsigned)
//   - IEEE float 32 and 64 bit
//   - A-law and mu-law, 8 bit
//   - WAVE_FORMAT_EXTENSIBLE with any of the above sub-formats
//
// The block align and byte rate fields must agree with the channel count and
// bit depth; files that disagree are rejected and the source shuts down.
//
// # Writing
//
// A Sink holds one StreamSink. Samples enqueued on it are written when the
// sink is finalized, and the 46 byte header is then written over the space
// reserved by SetStreamType:
//
//	sink := wav.NewSink(out)
//	ss, _ := sink.StreamSinkFromIndex(0)
//	_ = ss.SetStreamType(streamType)
//	_ = ss.EnqueueStreamSinkEvent(ev)
//	err := sink.Finalize()
//
// The sink writes a plain WAVEFORMATEX block: integer samples up to 16 bits,
// float samples of 32 or 64 bits, A-law and mu-law. Big-endian samples and
// more than two channels are rejected.
//
// # Errors
//
// Every error wraps one of the class errors of package audio, so callers can
// test errors.Is(err, audio.ErrMalformed) or use audio.KindOf. The sentinels
// in this package identify the exact cause.
package wav
