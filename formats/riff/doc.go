// SPDX-License-Identifier: EPL-2.0

// Package riff walks chunk based RIFF containers over an io.ReadSeeker.
//
// A Parser is rooted at a container header (RIFF or LIST) and moves from chunk
// to chunk by absolute seeks, so only the current chunk header is held in
// memory:
//
//	p, err := riff.New(file, riff.RIFF, 0)
//	if err != nil {
//	    return err
//	}
//	for {
//	    fmt.Println(p.Chunk().ID, p.Chunk().Size)
//	    if err := p.MoveToNextChunk(); errors.Is(err, riff.ErrEndOfContainer) {
//	        break
//	    } else if err != nil {
//	        return err
//	    }
//	}
//
// Chunks with an odd payload size are not padded to an even boundary when
// advancing. Files produced by writers that insert the pad byte will fail with
// ErrChunkOverflow or a garbage chunk id after such a chunk.
package riff
