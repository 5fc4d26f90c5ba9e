// SPDX-License-Identifier: EPL-2.0

package loopback

import (
	"sync"
	"time"

	"github.com/ik5/audbridge/stream"
)

type inlet struct {
	desc   stream.Descriptor
	outlet *Outlet
	limit  int

	mu     sync.Mutex
	queue  []float32
	stamps []float64
	lost   bool
	closed bool

	notify chan struct{}
}

// deliver queues frames and returns how many old frames had to be dropped.
// first is the stream index of the first frame.
func (in *inlet) deliver(samples []float32, first uint64, rate float64) uint64 {
	ch := in.desc.ChannelCount
	frames := len(samples) / ch

	in.mu.Lock()

	in.queue = append(in.queue, samples...)
	for i := range frames {
		in.stamps = append(in.stamps, float64(first+uint64(i))/rate)
	}

	var dropped uint64
	if excess := len(in.stamps) - in.limit; excess > 0 {
		in.queue = in.queue[excess*ch:]
		in.stamps = in.stamps[excess:]
		dropped = uint64(excess)
	}

	in.mu.Unlock()

	in.wake()

	return dropped
}

func (in *inlet) lose() {
	in.mu.Lock()
	in.lost = true
	in.mu.Unlock()

	in.wake()
}

func (in *inlet) wake() {
	select {
	case in.notify <- struct{}{}:
	default:
	}
}

func (in *inlet) Descriptor() stream.Descriptor { return in.desc }

func (in *inlet) Pull(samples []float32, timestamps []float64, maxFrames int, timeout time.Duration) (int, error) {
	ch := in.desc.ChannelCount
	maxFrames = min(maxFrames, len(samples)/ch, len(timestamps))

	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}

	for {
		n, done, err := in.take(samples, timestamps, maxFrames)
		if done {
			return n, err
		}

		wait := time.Until(deadline)
		if timeout <= 0 || wait <= 0 {
			return 0, nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-in.notify:
		case <-timer.C:
		}
		timer.Stop()
	}
}

// take copies what is queued. done is false when there was nothing to hand
// out and the stream is still alive.
func (in *inlet) take(samples []float32, timestamps []float64, maxFrames int) (int, bool, error) {
	in.mu.Lock()
	defer in.mu.Unlock()

	if in.closed {
		return 0, true, stream.ErrClosed
	}

	ch := in.desc.ChannelCount
	n := min(maxFrames, len(in.stamps))
	if n > 0 {
		copy(samples, in.queue[:n*ch])
		copy(timestamps, in.stamps[:n])
		in.queue = in.queue[n*ch:]
		in.stamps = in.stamps[n:]

		return n, true, nil
	}

	if in.lost {
		return 0, true, stream.ErrStreamLost
	}

	return 0, maxFrames <= 0, nil
}

func (in *inlet) Close() error {
	in.mu.Lock()
	if in.closed {
		in.mu.Unlock()
		return nil
	}

	in.closed = true
	in.queue = nil
	in.stamps = nil
	in.mu.Unlock()

	in.outlet.detach(in)

	return nil
}
