// SPDX-License-Identifier: EPL-2.0

package riff

import (
	"encoding/binary"

	goriff "github.com/go-audio/riff"
)

// FourCC is a four character code in its big-endian numeric form, so that
// FourCC("RIFF") reads as 0x52494646.
type FourCC uint32

// FromBytes packs a four byte tag.
func FromBytes(b [4]byte) FourCC {
	return FourCC(binary.BigEndian.Uint32(b[:]))
}

// FromString packs the first four bytes of s, padding short tags with spaces.
func FromString(s string) FourCC {
	b := [4]byte{' ', ' ', ' ', ' '}
	copy(b[:], s)
	return FromBytes(b)
}

// Bytes unpacks c.
func (c FourCC) Bytes() [4]byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(c))
	return b
}

func (c FourCC) String() string {
	b := c.Bytes()
	return string(b[:])
}

// Known tags. The RIFF, WAVE, fmt and data codes come from go-audio/riff.
var (
	RIFF = FromBytes(goriff.RiffID)
	WAVE = FromBytes(goriff.WavFormatID)
	Fmt  = FromBytes(goriff.FmtID)
	Data = FromBytes(goriff.DataFormatID)
	LIST = FromString("LIST")
	JUNK = FromString("JUNK")
	Fact = FromString("fact")
)
