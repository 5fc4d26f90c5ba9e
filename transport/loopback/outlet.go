// SPDX-License-Identifier: EPL-2.0

package loopback

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/ik5/audbridge/stream"
)

// Outlet publishes one stream. Push and Close may be called from any
// goroutine.
type Outlet struct {
	desc         stream.Descriptor
	net          *Network
	bufferFrames int

	mu     sync.Mutex
	inlets map[*inlet]struct{}
	closed bool
	pushed uint64

	dropped atomic.Uint64
}

// Descriptor returns the advertised stream, including its source ID.
func (o *Outlet) Descriptor() stream.Descriptor { return o.desc }

// Push delivers whole interleaved frames to every connected inlet. Frames
// pushed while nobody is connected are discarded.
func (o *Outlet) Push(samples []float32) error {
	ch := o.desc.ChannelCount
	if len(samples)%ch != 0 {
		return fmt.Errorf("%w: %d samples, %d channels", ErrPartialFrame, len(samples), ch)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return ErrOutletClosed
	}

	frames := len(samples) / ch
	first := o.pushed
	o.pushed += uint64(frames)

	for in := range o.inlets {
		o.dropped.Add(in.deliver(samples, first, o.desc.NominalRate))
	}

	return nil
}

// Close withdraws the stream from discovery. Connected inlets report
// stream.ErrStreamLost once drained. Safe to call more than once.
func (o *Outlet) Close() error {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return nil
	}

	o.closed = true
	inlets := o.inlets
	o.inlets = nil
	o.mu.Unlock()

	o.net.remove(o)

	for in := range inlets {
		in.lose()
	}

	o.net.logger.WithField("stream", o.desc.Name).Info("Outlet closed")

	return nil
}

// Consumers reports how many inlets are connected.
func (o *Outlet) Consumers() int {
	o.mu.Lock()
	defer o.mu.Unlock()

	return len(o.inlets)
}

// Dropped reports frames discarded because an inlet queue was full.
func (o *Outlet) Dropped() uint64 { return o.dropped.Load() }

func (o *Outlet) attach() *inlet {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return nil
	}

	in := &inlet{
		desc:   o.desc,
		outlet: o,
		limit:  o.bufferFrames,
		notify: make(chan struct{}, 1),
	}
	o.inlets[in] = struct{}{}

	return in
}

func (o *Outlet) detach(in *inlet) {
	o.mu.Lock()
	defer o.mu.Unlock()

	delete(o.inlets, in)
}
