// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// SourceCore implements the playback state machine shared by container
// sources. The stream passed to its methods may be nil when none was created
// yet.
type SourceCore struct {
	pd        PresentationDescriptor
	events    EventQueue
	state     State
	announced bool
	shutdown  bool
}

func (c *SourceCore) DequeueEvent() (*Event, error) {
	return c.events.DequeueEvent()
}

func (c *SourceCore) EnqueueEvent(ev *Event) error {
	return c.events.EnqueueEvent(ev)
}

func (c *SourceCore) CheckShutdown() error {
	if c.shutdown {
		return ErrShutdown
	}
	return nil
}

// IsShutdown reports whether Shutdown ran.
func (c *SourceCore) IsShutdown() bool { return c.shutdown }

// State returns the current playback state.
func (c *SourceCore) State() State { return c.state }

// Descriptors gives the owning source access to its presentation descriptor.
func (c *SourceCore) Descriptors() *PresentationDescriptor { return &c.pd }

func (c *SourceCore) PresentationDescriptor() (*PresentationDescriptor, error) {
	if err := c.CheckShutdown(); err != nil {
		return nil, err
	}
	return &c.pd, nil
}

// StartStream moves to Started. The first start announces the stream on the
// source queue; every start notifies the stream and releases deferred samples.
func (c *SourceCore) StartStream(stream *StreamCore) error {
	if err := c.CheckShutdown(); err != nil {
		return err
	}
	c.state = Started
	if stream == nil {
		return nil
	}
	if !c.announced {
		c.announced = true
		if err := c.events.EnqueueEvent(NewEvent(EventNewStream, nil, nil)); err != nil {
			return err
		}
	}
	if err := stream.NotifyStarted(); err != nil {
		return err
	}
	return stream.DeliverDeferred()
}

// Pause is only valid while started.
func (c *SourceCore) Pause() error {
	if err := c.CheckShutdown(); err != nil {
		return err
	}
	if c.state != Started {
		return fmt.Errorf("pause while %s: %w", c.state, ErrInvalidState)
	}
	c.state = Paused
	return nil
}

// StopStream moves to Stopped from any state and drops deferred samples.
func (c *SourceCore) StopStream(stream *StreamCore) error {
	if err := c.CheckShutdown(); err != nil {
		return err
	}
	c.state = Stopped
	if stream == nil {
		return nil
	}
	return stream.FlushDeferred()
}

// ShutdownSource is idempotent. It shuts the stream down with the source.
func (c *SourceCore) ShutdownSource(stream *StreamCore) {
	if c.shutdown {
		return
	}
	c.shutdown = true
	c.state = Stopped
	c.events.Shutdown()
	if stream != nil {
		stream.ShutdownStream()
	}
}
