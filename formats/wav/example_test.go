// SPDX-License-Identifier: EPL-2.0

package wav_test

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ik5/audpipe/audio"
	"github.com/ik5/audpipe/formats/wav"
	"github.com/ik5/audpipe/internal/audiotest"
)

// Example_decoding reads a WAV file sample by sample.
func Example_decoding() {
	// one second of 16 kHz mono
	data := audiotest.PCM16(16000, 1, make([]byte, 32000)).Bytes()

	src := wav.NewSource()
	if err := src.Open(bytes.NewReader(data)); err != nil {
		fmt.Printf("Open error: %v\n", err)
		return
	}
	stream, err := src.CreateStream()
	if err != nil {
		fmt.Printf("CreateStream error: %v\n", err)
		return
	}

	sd, _ := stream.Descriptor()
	fmt.Printf("Stream: %s\n", sd.StreamType)
	fmt.Printf("Duration: %v\n", src.Parser().Duration())

	for {
		if err := stream.RequestSample(); errors.Is(err, audio.ErrEndOfStream) {
			break
		}
		for ev, _ := stream.DequeueEvent(); ev != nil; ev, _ = stream.DequeueEvent() {
			if ev.Type == audio.EventSample {
				fmt.Printf("%s: %d bytes\n", ev.Type, ev.Sample.ByteLen())
			} else {
				fmt.Println(ev.Type)
			}
		}
	}
	// Output:
	// Stream: pcm s16le 16000Hz/1ch
	// Duration: 1s
	// sample: 32000 bytes
	// end-of-stream
}

// Example_encoding writes a WAV file and shows its header.
func Example_encoding() {
	st := audio.NewPCMStream(audio.Float(32), audio.LittleEndian, audio.AudioFormat{SampleRate: 8000, Channels: 2})

	out := audiotest.NewMemFile(nil)
	sink := wav.NewSink(out)
	ss, _ := sink.StreamSinkFromIndex(0)
	if err := ss.SetStreamType(st); err != nil {
		fmt.Printf("SetStreamType error: %v\n", err)
		return
	}

	s := audio.NewSample(st)
	s.AddBuffer(audio.NewMemoryBuffer(800))
	_ = ss.EnqueueStreamSinkEvent(audio.NewSampleEvent(s))

	if err := sink.Finalize(); err != nil {
		fmt.Printf("Finalize error: %v\n", err)
		return
	}

	fmt.Printf("File size: %d bytes\n", out.Len())
	fmt.Printf("Data: %d bytes\n", sink.BytesWritten())
	// Output:
	// File size: 846 bytes
	// Data: 800 bytes
}
