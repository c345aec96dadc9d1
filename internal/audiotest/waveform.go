// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"encoding/binary"
	"math"
)

// Waveform returns the value in [-1, 1] of a frame on one channel.
type Waveform func(frame, channel int) float64

// Sine is a sine wave at frequency Hz.
func Sine(sampleRate int, frequency float64) Waveform {
	return func(frame, _ int) float64 {
		t := float64(frame) / float64(sampleRate)
		return math.Sin(2 * math.Pi * frequency * t)
	}
}

// Constant always returns v.
func Constant(v float64) Waveform {
	return func(int, int) float64 { return v }
}

// S16 renders frames of interleaved little-endian 16-bit PCM.
func S16(channels, frames int, w Waveform) []byte {
	out := make([]byte, 0, channels*frames*2)
	for i := range frames {
		for ch := range channels {
			v := int16(math.Round(w(i, ch) * math.MaxInt16))
			out = binary.LittleEndian.AppendUint16(out, uint16(v))
		}
	}
	return out
}

// Ramp returns every int16 value once, from -32768 to 32767, as little-endian
// PCM.
func Ramp() []byte {
	out := make([]byte, 0, 65536*2)
	for v := math.MinInt16; v <= math.MaxInt16; v++ {
		out = binary.LittleEndian.AppendUint16(out, uint16(int16(v)))
	}
	return out
}

// U8 renders frames of interleaved unsigned 8-bit PCM.
func U8(channels, frames int, w Waveform) []byte {
	out := make([]byte, 0, channels*frames)
	for i := range frames {
		for ch := range channels {
			out = append(out, byte(128+int(math.Round(w(i, ch)*127))))
		}
	}
	return out
}
