// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"context"
	"fmt"
	"time"
)

// Descriptor is a snapshot of one discoverable stream. It is a value and is
// never mutated after discovery.
type Descriptor struct {
	Name         string
	Type         string
	SourceID     string
	ChannelCount int
	NominalRate  float64
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%s (%s, %d ch, %.1f Hz)", d.Name, d.Type, d.ChannelCount, d.NominalRate)
}

// Resolver lists the streams currently advertised on the network.
type Resolver interface {
	// Refresh returns a snapshot of known descriptors in discovery order.
	// It may be empty and performs no validation.
	Refresh() []Descriptor
}

// Inlet is an open connection to one remote stream.
type Inlet interface {
	// Descriptor returns the stream this inlet was opened for.
	Descriptor() Descriptor

	// Pull copies up to maxFrames interleaved frames into samples, and one
	// capture timestamp per frame into timestamps. samples must hold
	// maxFrames*ChannelCount values. A zero timeout never waits.
	//
	// Pull returns ErrStreamLost once the source has gone away and every
	// buffered frame has been handed out. Any other error is a transport
	// fault.
	Pull(samples []float32, timestamps []float64, maxFrames int, timeout time.Duration) (int, error)

	// Close releases the connection. It is safe to call more than once.
	Close() error
}

// Transport is the network collaborator: discovery plus connection setup.
type Transport interface {
	Resolver

	// Open connects to d, giving up after timeout or when ctx ends.
	Open(ctx context.Context, d Descriptor, timeout time.Duration) (Inlet, error)
}
