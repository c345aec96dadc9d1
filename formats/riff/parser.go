// SPDX-License-Identifier: EPL-2.0

package riff

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audpipe/audio"
	"github.com/ik5/audpipe/utils"
)

const (
	// ChunkHeaderSize is the id and size prefix of every chunk.
	ChunkHeaderSize = 8
	// ListHeaderSize adds the list type to a chunk header.
	ListHeaderSize = 12
)

// Chunk is the header of one chunk.
type Chunk struct {
	ID   FourCC
	Size uint32
}

// IsList reports whether the chunk is a LIST container.
func (c Chunk) IsList() bool { return c.ID == LIST }

// actualSize is the header plus payload. Odd sized payloads are not padded.
func (c Chunk) actualSize() int64 {
	return ChunkHeaderSize + int64(c.Size)
}

// Parser walks the chunks of one RIFF style container without buffering it.
// After New the cursor sits on the first inner chunk.
//
// The reader is borrowed; the parser only seeks to absolute offsets so several
// parsers must not share a reader concurrently.
type Parser struct {
	rs io.ReadSeeker

	id        FourCC
	form      FourCC
	offset    int64
	size      int64
	chunk     Chunk
	chunkOff  int64
	remaining int64
}

// New reads the container header at offset and positions the parser on the
// first chunk. offset must be even and the tag found there must equal id.
func New(rs io.ReadSeeker, id FourCC, offset int64) (*Parser, error) {
	if offset < 0 {
		return nil, fmt.Errorf("riff: negative offset %d: %w", offset, audio.ErrMalformed)
	}
	if offset%2 != 0 {
		return nil, ErrOddOffset
	}

	p := &Parser{rs: rs, id: id, offset: offset}
	if err := p.readContainerHeader(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) readContainerHeader() error {
	if _, err := p.rs.Seek(p.offset, io.SeekStart); err != nil {
		return fmt.Errorf("riff: seek to container: %w", err)
	}

	got, err := utils.ReadUint32BE(p.rs)
	if err != nil {
		return headerErr(err)
	}
	if FourCC(got) != p.id {
		return fmt.Errorf("%w: want %q, got %q", ErrIDMismatch, p.id, FourCC(got))
	}
	size, err := utils.ReadUint32LE(p.rs)
	if err != nil {
		return headerErr(err)
	}
	form, err := utils.ReadUint32BE(p.rs)
	if err != nil {
		return headerErr(err)
	}

	p.form = FourCC(form)
	p.size = int64(size) + ChunkHeaderSize
	return p.enterChunk(p.offset + ListHeaderSize)
}

// enterChunk reads the chunk header at off and checks it fits the container.
// The cursor only moves to the new chunk when both succeed.
func (p *Parser) enterChunk(off int64) error {
	left := p.size - (off - p.offset)
	if left < ChunkHeaderSize {
		return ErrEndOfContainer
	}
	c, err := p.readChunkHeader(off)
	if err != nil {
		return err
	}
	if left < c.actualSize() {
		return fmt.Errorf("%w: %q declares %d bytes, %d left", ErrChunkOverflow, c.ID, c.Size, left-ChunkHeaderSize)
	}
	p.chunk = c
	p.chunkOff = off
	p.remaining = int64(c.Size)
	return nil
}

func (p *Parser) readChunkHeader(off int64) (Chunk, error) {
	if _, err := p.rs.Seek(off, io.SeekStart); err != nil {
		return Chunk{}, fmt.Errorf("riff: seek to chunk: %w", err)
	}
	id, err := utils.ReadUint32BE(p.rs)
	if err != nil {
		return Chunk{}, headerErr(err)
	}
	size, err := utils.ReadUint32LE(p.rs)
	if err != nil {
		return Chunk{}, headerErr(err)
	}
	return Chunk{ID: FourCC(id), Size: size}, nil
}

// MoveToNextChunk skips whatever is left of the current chunk and reads the
// next header. It returns ErrEndOfContainer once the container is exhausted;
// on any error the cursor stays on the current chunk.
func (p *Parser) MoveToNextChunk() error {
	next := p.chunkOff + p.chunk.actualSize()
	if next-p.offset >= p.size {
		return ErrEndOfContainer
	}
	if err := p.enterChunk(next); err != nil {
		_ = p.restore()
		return err
	}
	return nil
}

// restore puts the reader back where the current chunk's reads left off.
func (p *Parser) restore() error {
	pos := p.chunkOff + ChunkHeaderSize + int64(p.chunk.Size) - p.remaining
	_, err := p.rs.Seek(pos, io.SeekStart)
	return err
}

// MoveToChunkOffset positions the cursor offset bytes into the current chunk's
// payload.
func (p *Parser) MoveToChunkOffset(offset int64) error {
	if offset < 0 || offset > int64(p.chunk.Size) {
		return fmt.Errorf("%w: %d of %d", ErrOffsetOutOfBounds, offset, p.chunk.Size)
	}
	if _, err := p.rs.Seek(p.chunkOff+ChunkHeaderSize+offset, io.SeekStart); err != nil {
		return fmt.Errorf("riff: seek in chunk: %w", err)
	}
	p.remaining = int64(p.chunk.Size) - offset
	return nil
}

func (p *Parser) MoveToStartOfChunk() error {
	return p.MoveToChunkOffset(0)
}

// ReadDataFromChunk fills buf from the current chunk. Asking for more than
// BytesRemaining fails without reading. A short read returns the count and
// io.ErrUnexpectedEOF.
func (p *Parser) ReadDataFromChunk(buf []byte) (int, error) {
	if int64(len(buf)) > p.remaining {
		return 0, fmt.Errorf("%w: want %d, %d left", ErrChunkUnderrun, len(buf), p.remaining)
	}
	n, err := io.ReadFull(p.rs, buf)
	p.remaining -= int64(n)
	if err != nil {
		return n, fmt.Errorf("riff: read %q: %w", p.chunk.ID, err)
	}
	return n, nil
}

// ID is the container tag, RIFF for WAV files.
func (p *Parser) ID() FourCC { return p.id }

// Form is the list type following the container size, WAVE for WAV files.
func (p *Parser) Form() FourCC { return p.form }

// ContainerSize includes the 8 byte container header.
func (p *Parser) ContainerSize() int64 { return p.size }

func (p *Parser) ContainerOffset() int64 { return p.offset }

func (p *Parser) Chunk() Chunk { return p.chunk }

// ChunkOffset is the absolute offset of the current chunk's header.
func (p *Parser) ChunkOffset() int64 { return p.chunkOff }

func (p *Parser) BytesRemaining() int64 { return p.remaining }

// Truncated headers are structural errors, not I/O ones.
func headerErr(err error) error {
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return fmt.Errorf("riff: truncated header: %w", audio.ErrMalformed)
	}
	return fmt.Errorf("riff: %w", err)
}
