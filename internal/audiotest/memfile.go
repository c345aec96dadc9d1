// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"errors"
	"fmt"
	"io"
)

// MemFile is an in-memory io.ReadWriteSeeker. Writes past the end grow the
// file, filling any gap with zeros.
type MemFile struct {
	data   []byte
	offset int64
}

// NewMemFile returns a file holding a copy of data.
func NewMemFile(data []byte) *MemFile {
	return &MemFile{data: append([]byte(nil), data...)}
}

func (f *MemFile) Read(p []byte) (int, error) {
	if f.offset >= int64(len(f.data)) {
		return 0, io.EOF
	}
	n := copy(p, f.data[f.offset:])
	f.offset += int64(n)
	return n, nil
}

func (f *MemFile) Write(p []byte) (int, error) {
	end := f.offset + int64(len(p))
	if end > int64(len(f.data)) {
		f.data = append(f.data, make([]byte, end-int64(len(f.data)))...)
	}
	copy(f.data[f.offset:], p)
	f.offset = end
	return len(p), nil
}

func (f *MemFile) Seek(offset int64, whence int) (int64, error) {
	var n int64
	switch whence {
	case io.SeekStart:
		n = offset
	case io.SeekCurrent:
		n = f.offset + offset
	case io.SeekEnd:
		n = int64(len(f.data)) + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}
	if n < 0 {
		return 0, errors.New("negative position")
	}
	f.offset = n
	return n, nil
}

// Bytes returns the file contents without copying.
func (f *MemFile) Bytes() []byte { return f.data }

func (f *MemFile) Len() int { return len(f.data) }
