// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"encoding/binary"
	"math"

	"github.com/ik5/audpipe/audio"
	"github.com/ik5/audpipe/utils"
)

// codec moves one native little-endian representation to and from the
// normalized float64 intermediate.
type codec struct {
	size   int
	decode func(dst []float64, src []byte)
	encode func(dst []byte, src []float64)
}

var codecs = map[audio.SampleType]codec{
	audio.Signed(16): {2, decodeS16, encodeS16},
	audio.Float(32):  {4, decodeF32, encodeF32},
	audio.Float(64):  {8, decodeF64, encodeF64},
}

// Supported reports whether st can be converted.
func Supported(st audio.SampleType) bool {
	_, ok := codecs[st]
	return ok
}

func decodeS16(dst []float64, src []byte) {
	for i := range dst {
		dst[i] = utils.Int16ToFloat64(int16(binary.LittleEndian.Uint16(src[2*i:])))
	}
}

func encodeS16(dst []byte, src []float64) {
	for i, v := range src {
		binary.LittleEndian.PutUint16(dst[2*i:], uint16(utils.Float64ToInt16(v)))
	}
}

func decodeF32(dst []float64, src []byte) {
	for i := range dst {
		dst[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(src[4*i:])))
	}
}

func encodeF32(dst []byte, src []float64) {
	for i, v := range src {
		binary.LittleEndian.PutUint32(dst[4*i:], math.Float32bits(float32(v)))
	}
}

func decodeF64(dst []float64, src []byte) {
	for i := range dst {
		dst[i] = math.Float64frombits(binary.LittleEndian.Uint64(src[8*i:]))
	}
}

func encodeF64(dst []byte, src []float64) {
	for i, v := range src {
		binary.LittleEndian.PutUint64(dst[8*i:], math.Float64bits(v))
	}
}
