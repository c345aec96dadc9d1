// SPDX-License-Identifier: EPL-2.0

package audio

import "time"

// Sample is one unit of media data: an ordered list of shared buffers tagged
// with the stream type they were produced for.
type Sample struct {
	StreamType StreamType
	Buffers    []Buffer

	// EndOfStream marks the last sample of a stream.
	EndOfStream bool

	// Time is the presentation offset of the first frame, Duration the span the
	// sample covers. Both are zero when the producer cannot tell.
	Time     time.Duration
	Duration time.Duration
}

// NewSample returns an empty sample for the stream type t.
func NewSample(t StreamType) *Sample {
	return &Sample{StreamType: t}
}

func (s *Sample) AddBuffer(b Buffer) {
	s.Buffers = append(s.Buffers, b)
}

// Len returns the number of buffers.
func (s *Sample) Len() int { return len(s.Buffers) }

func (s *Sample) Buffer(i int) Buffer { return s.Buffers[i] }

// RemoveAllBuffers drops the buffer references so the sample can be refilled.
func (s *Sample) RemoveAllBuffers() {
	clear(s.Buffers)
	s.Buffers = s.Buffers[:0]
}

// ByteLen is the sum of the buffer lengths.
func (s *Sample) ByteLen() int {
	n := 0
	for _, b := range s.Buffers {
		n += b.Len()
	}
	return n
}

// SampleQueue is an unbounded FIFO of samples.
type SampleQueue struct {
	samples []*Sample
}

func (q *SampleQueue) Enqueue(s *Sample) {
	q.samples = append(q.samples, s)
}

// Dequeue returns nil when the queue is empty.
func (q *SampleQueue) Dequeue() *Sample {
	if len(q.samples) == 0 {
		return nil
	}
	s := q.samples[0]
	q.samples[0] = nil
	q.samples = q.samples[1:]
	if len(q.samples) == 0 {
		q.samples = nil
	}
	return s
}

func (q *SampleQueue) Len() int { return len(q.samples) }

// Clear drops every queued sample.
func (q *SampleQueue) Clear() {
	q.samples = nil
}
