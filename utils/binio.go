// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Typed reads and writes built on the plain io capabilities. Short reads are
// reported as io.ErrUnexpectedEOF.

func ReadUint16LE(r io.Reader) (uint16, error) {
	var b [2]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, eof(err)
	}
	return binary.LittleEndian.Uint16(b[:]), nil
}

func ReadUint32LE(r io.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, eof(err)
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

func ReadUint32BE(r io.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, eof(err)
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

func WriteUint16LE(w io.Writer, v uint16) error {
	return write(w, binary.LittleEndian.AppendUint16(nil, v))
}

func WriteUint32LE(w io.Writer, v uint32) error {
	return write(w, binary.LittleEndian.AppendUint32(nil, v))
}

func WriteUint32BE(w io.Writer, v uint32) error {
	return write(w, binary.BigEndian.AppendUint32(nil, v))
}

func write(w io.Writer, b []byte) error {
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func eof(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return fmt.Errorf("%w", err)
}
