// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"sync"
)

// State is the playback state of a Source.
type State uint8

const (
	Stopped State = iota
	Started
	Paused
)

func (s State) String() string {
	switch s {
	case Started:
		return "started"
	case Paused:
		return "paused"
	}
	return "stopped"
}

// SourceCharacteristics advertises what a source supports.
type SourceCharacteristics struct {
	Live  bool
	Seek  bool
	Pause bool
}

// Source produces streams from a container.
type Source interface {
	EventGenerator

	PresentationDescriptor() (*PresentationDescriptor, error)
	Characteristics() (SourceCharacteristics, error)

	Start() error
	Pause() error
	Stop() error
	// Shutdown is terminal and idempotent.
	Shutdown() error
}

// Stream is one logical channel of a Source. RequestSample asks the stream to
// produce data; results arrive on the stream's own event queue.
type Stream interface {
	EventGenerator

	Descriptor() (*StreamDescriptor, error)
	RequestSample() error
}

// SinkCharacteristics advertises how a sink accepts streams.
type SinkCharacteristics struct {
	FixedStreams bool
	Rateless     bool
}

// Sink consumes streams into a container.
type Sink interface {
	Characteristics() (SinkCharacteristics, error)
	StreamSinkFromIndex(index int) (StreamSink, error)
	// Finalize flushes queued samples and completes the container.
	Finalize() error
	// Shutdown is terminal and idempotent.
	Shutdown() error
}

// StreamSink accepts the events of one stream.
type StreamSink interface {
	EventGenerator

	Sink() Sink
	// SetStreamType may be called once.
	SetStreamType(t StreamType) error
	EnqueueStreamSinkEvent(ev *Event) error
	DequeueStreamSinkEvent() (*Event, error)
}

// Decoder opens a Source over r and creates its stream.
type Decoder interface {
	Decode(r io.ReadSeeker) (Source, Stream, error)
}

// Encoder creates a Sink writing to w.
type Encoder interface {
	Encode(w io.WriteSeeker) (Sink, error)
}

// Registry maps format keys (e.g., "wav", "aiff", "au") to decoders and encoders.
type Registry struct {
	decoders map[string]Decoder
	encoders map[string]Encoder
	mtx      *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		decoders: make(map[string]Decoder),
		encoders: make(map[string]Encoder),
		mtx:      &sync.Mutex{},
	}
}

func (r *Registry) RegisterDecoder(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.decoders[format] = d
}

func (r *Registry) RegisterEncoder(format string, e Encoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.encoders[format] = e
}

func (r *Registry) Decoder(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	d, ok := r.decoders[format]
	return d, ok
}

func (r *Registry) Encoder(format string) (Encoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	e, ok := r.encoders[format]
	return e, ok
}
