// SPDX-License-Identifier: EPL-2.0

package bridge

import (
	"sync/atomic"

	"github.com/ik5/audbridge/stream"
)

type counters struct {
	faults         [faultCount]atomic.Uint64
	connects       atomic.Uint64
	disconnects    atomic.Uint64
	framesIn       atomic.Uint64
	framesOut      atomic.Uint64
	underrunFrames atomic.Uint64
}

func (c *counters) fault(f Fault) {
	c.faults[f].Add(1)
}

// Stats is a point-in-time snapshot for monitoring. Values may be slightly
// stale relative to each other.
type Stats struct {
	State    State
	Active   bool
	Stream   stream.Descriptor
	Buffered int
	Capacity int

	Connects    uint64
	Disconnects uint64
	Faults      map[Fault]uint64

	// FramesIn counts frames stored by the filler, FramesOut frames played
	// from the ring, UnderrunFrames silent frames rendered while active.
	FramesIn       uint64
	FramesOut      uint64
	UnderrunFrames uint64

	DiscoveryRuns     uint64
	FillRuns          uint64
	CoalescedRequests uint64
	RenderBlocks      uint64
}

// Fault returns the count for one fault kind.
func (s Stats) Fault(f Fault) uint64 { return s.Faults[f] }
