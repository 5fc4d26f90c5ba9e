// SPDX-License-Identifier: EPL-2.0

package loopback

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ik5/audbridge/stream"
)

// DefaultBufferFrames bounds each inlet queue when NewOutlet is given zero.
const DefaultBufferFrames = 44100 * 6

// openPoll is how often Open looks for an outlet that is not advertised yet.
const openPoll = 5 * time.Millisecond

// Network is the discovery domain shared by outlets and inlets.
type Network struct {
	logger logrus.FieldLogger

	mu      sync.Mutex
	outlets []*Outlet
}

var _ stream.Transport = (*Network)(nil)

// NewNetwork returns an empty network.
func NewNetwork(logger logrus.FieldLogger) *Network {
	return &Network{logger: logger}
}

// NewOutlet advertises d and returns its outlet. An empty SourceID is
// replaced by a random one. bufferFrames bounds each inlet queue;
// zero selects DefaultBufferFrames.
func (n *Network) NewOutlet(d stream.Descriptor, bufferFrames int) (*Outlet, error) {
	if d.Name == "" || d.ChannelCount < 1 || d.NominalRate <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDescriptor, d)
	}

	if d.SourceID == "" {
		d.SourceID = uuid.NewString()
	}

	if bufferFrames <= 0 {
		bufferFrames = DefaultBufferFrames
	}

	o := &Outlet{
		desc:         d,
		net:          n,
		bufferFrames: bufferFrames,
		inlets:       make(map[*inlet]struct{}),
	}

	n.mu.Lock()
	n.outlets = append(n.outlets, o)
	n.mu.Unlock()

	n.logger.WithFields(logrus.Fields{
		"stream":    d.Name,
		"source_id": d.SourceID,
		"channels":  d.ChannelCount,
		"rate":      d.NominalRate,
	}).Info("Outlet advertised")

	return o, nil
}

// Refresh returns the advertised streams in creation order.
func (n *Network) Refresh() []stream.Descriptor {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]stream.Descriptor, 0, len(n.outlets))
	for _, o := range n.outlets {
		out = append(out, o.desc)
	}

	return out
}

// Open connects to the outlet advertising d.SourceID, waiting up to
// timeout for it to appear. It fails with stream.ErrTimeout.
func (n *Network) Open(ctx context.Context, d stream.Descriptor, timeout time.Duration) (stream.Inlet, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(openPoll)
	defer ticker.Stop()

	for {
		if o := n.lookup(d.SourceID); o != nil {
			if in := o.attach(); in != nil {
				return in, nil
			}
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s: %w", stream.ErrTimeout, d.Name, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (n *Network) lookup(sourceID string) *Outlet {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, o := range n.outlets {
		if o.desc.SourceID == sourceID {
			return o
		}
	}

	return nil
}

func (n *Network) remove(o *Outlet) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.outlets = slices.DeleteFunc(n.outlets, func(x *Outlet) bool { return x == o })
}
