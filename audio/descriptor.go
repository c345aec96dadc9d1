// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// StreamDescriptor describes one stream a source offers.
type StreamDescriptor struct {
	Selected   bool
	ID         int
	StreamType StreamType
}

// PresentationDescriptor lists the streams of a source in creation order.
type PresentationDescriptor struct {
	streams []*StreamDescriptor
}

func (pd *PresentationDescriptor) Add(sd *StreamDescriptor) {
	pd.streams = append(pd.streams, sd)
}

func (pd *PresentationDescriptor) Count() int { return len(pd.streams) }

func (pd *PresentationDescriptor) Stream(i int) (*StreamDescriptor, error) {
	if i < 0 || i >= len(pd.streams) {
		return nil, fmt.Errorf("stream %d of %d: %w", i, len(pd.streams), ErrInvalidIndex)
	}
	return pd.streams[i], nil
}

func (pd *PresentationDescriptor) Select(i int) error {
	sd, err := pd.Stream(i)
	if err != nil {
		return err
	}
	sd.Selected = true
	return nil
}

func (pd *PresentationDescriptor) Deselect(i int) error {
	sd, err := pd.Stream(i)
	if err != nil {
		return err
	}
	sd.Selected = false
	return nil
}

// Selected returns the selected streams in order.
func (pd *PresentationDescriptor) Selected() []*StreamDescriptor {
	var out []*StreamDescriptor
	for _, sd := range pd.streams {
		if sd.Selected {
			out = append(out, sd)
		}
	}
	return out
}
