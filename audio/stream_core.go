// SPDX-License-Identifier: EPL-2.0

package audio

// StreamCore is the delivery machinery shared by source streams: the stream's
// event queue, samples deferred while the source is paused, and the
// end-of-stream and shutdown flags. Embed it and call Submit with every sample
// the stream produces.
type StreamCore struct {
	events   EventQueue
	deferred SampleQueue
	eos      bool
	shutdown bool
}

func (c *StreamCore) DequeueEvent() (*Event, error) {
	return c.events.DequeueEvent()
}

func (c *StreamCore) EnqueueEvent(ev *Event) error {
	return c.events.EnqueueEvent(ev)
}

// CheckShutdown returns ErrShutdown once the stream is shut down.
func (c *StreamCore) CheckShutdown() error {
	if c.shutdown {
		return ErrShutdown
	}
	return nil
}

// CheckRequest validates a RequestSample call.
func (c *StreamCore) CheckRequest() error {
	if err := c.CheckShutdown(); err != nil {
		return err
	}
	if c.eos {
		return ErrEndOfStream
	}
	return nil
}

// EndOfStream reports whether the last sample was produced.
func (c *StreamCore) EndOfStream() bool { return c.eos }

// Submit delivers s now, or defers it when paused. A sample flagged
// EndOfStream closes the stream for further requests immediately; its
// EndOfStream event follows the sample's own delivery.
func (c *StreamCore) Submit(s *Sample, paused bool) error {
	if s.EndOfStream {
		c.eos = true
	}
	if paused {
		c.deferred.Enqueue(s)
		return nil
	}
	return c.deliver(s)
}

func (c *StreamCore) deliver(s *Sample) error {
	if err := c.events.EnqueueEvent(NewSampleEvent(s)); err != nil {
		return err
	}
	if s.EndOfStream {
		return c.events.EnqueueEvent(NewEvent(EventEndOfStream, nil, nil))
	}
	return nil
}

// Deferred is the number of samples waiting for the source to resume.
func (c *StreamCore) Deferred() int { return c.deferred.Len() }

// DeliverDeferred delivers every sample held back while paused.
func (c *StreamCore) DeliverDeferred() error {
	for s := c.deferred.Dequeue(); s != nil; s = c.deferred.Dequeue() {
		if err := c.deliver(s); err != nil {
			return err
		}
	}
	return nil
}

// FlushDeferred drops deferred samples. If the last sample was among them the
// EndOfStream event is still sent.
func (c *StreamCore) FlushDeferred() error {
	last := false
	for s := c.deferred.Dequeue(); s != nil; s = c.deferred.Dequeue() {
		last = last || s.EndOfStream
	}
	if last {
		return c.events.EnqueueEvent(NewEvent(EventEndOfStream, nil, nil))
	}
	return nil
}

// NotifyStarted queues a StreamStarted event.
func (c *StreamCore) NotifyStarted() error {
	return c.events.EnqueueEvent(NewEvent(EventStreamStarted, nil, nil))
}

// ShutdownStream drops pending work; every later call fails with ErrShutdown.
func (c *StreamCore) ShutdownStream() {
	c.shutdown = true
	c.deferred.Clear()
	c.events.Shutdown()
}
