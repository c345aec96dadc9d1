// SPDX-License-Identifier: EPL-2.0

package audio

// Buffer is an opaque mutable byte region. Map grants access to the bytes for
// the duration of fn only.
type Buffer interface {
	// Len is the number of valid bytes.
	Len() int
	// Cap is the number of allocated bytes.
	Cap() int
	Map(fn func(data []byte) error) error
}

// MemoryBuffer is a heap backed Buffer.
type MemoryBuffer struct {
	data []byte
}

var _ Buffer = (*MemoryBuffer)(nil)

// NewMemoryBuffer allocates a zeroed buffer of n bytes.
func NewMemoryBuffer(n int) *MemoryBuffer {
	return &MemoryBuffer{data: make([]byte, n)}
}

// MemoryBufferFrom wraps data without copying.
func MemoryBufferFrom(data []byte) *MemoryBuffer {
	return &MemoryBuffer{data: data}
}

func (b *MemoryBuffer) Len() int { return len(b.data) }
func (b *MemoryBuffer) Cap() int { return cap(b.data) }

func (b *MemoryBuffer) Map(fn func(data []byte) error) error {
	return fn(b.data)
}

// Bytes returns a copy of the buffer contents.
func Bytes(b Buffer) ([]byte, error) {
	out := make([]byte, 0, b.Len())
	err := b.Map(func(data []byte) error {
		out = append(out, data...)
		return nil
	})
	return out, err
}
