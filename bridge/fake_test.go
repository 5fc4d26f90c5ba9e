// SPDX-License-Identifier: EPL-2.0

package bridge

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ik5/audbridge/device"
	"github.com/ik5/audbridge/stream"
)

// fakeInlet serves queued frames and can be told to fail.
type fakeInlet struct {
	desc stream.Descriptor

	mu       sync.Mutex
	queue    []float32
	pullErr  error
	closed   int
	pulls    int
	lastWant int
}

func (in *fakeInlet) Descriptor() stream.Descriptor { return in.desc }

func (in *fakeInlet) push(frames ...float32) {
	in.mu.Lock()
	defer in.mu.Unlock()

	in.queue = append(in.queue, frames...)
}

func (in *fakeInlet) fail(err error) {
	in.mu.Lock()
	defer in.mu.Unlock()

	in.pullErr = err
}

func (in *fakeInlet) Pull(samples []float32, timestamps []float64, maxFrames int, _ time.Duration) (int, error) {
	in.mu.Lock()
	defer in.mu.Unlock()

	in.pulls++
	in.lastWant = maxFrames

	if in.closed > 0 {
		return 0, stream.ErrClosed
	}

	if in.pullErr != nil {
		return 0, in.pullErr
	}

	ch := in.desc.ChannelCount
	n := min(maxFrames, len(in.queue)/ch, len(samples)/ch, len(timestamps))
	copy(samples, in.queue[:n*ch])
	in.queue = in.queue[n*ch:]

	return n, nil
}

func (in *fakeInlet) Close() error {
	in.mu.Lock()
	defer in.mu.Unlock()

	in.closed++
	return nil
}

// fakeTransport hands out one fakeInlet per Open.
type fakeTransport struct {
	mu      sync.Mutex
	catalog []stream.Descriptor
	openErr error
	inlets  []*fakeInlet
}

func (t *fakeTransport) Refresh() []stream.Descriptor {
	t.mu.Lock()
	defer t.mu.Unlock()

	return append([]stream.Descriptor(nil), t.catalog...)
}

func (t *fakeTransport) Open(_ context.Context, d stream.Descriptor, _ time.Duration) (stream.Inlet, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.openErr != nil {
		return nil, t.openErr
	}

	in := &fakeInlet{desc: d}
	t.inlets = append(t.inlets, in)

	return in, nil
}

func (t *fakeTransport) setCatalog(ds ...stream.Descriptor) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.catalog = ds
}

func (t *fakeTransport) last() *fakeInlet {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.inlets) == 0 {
		return nil
	}

	return t.inlets[len(t.inlets)-1]
}

func (t *fakeTransport) opens() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.inlets)
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func audioStream(channels int, rate float64) stream.Descriptor {
	return stream.Descriptor{
		Name:         DefaultStreamName,
		Type:         "audio",
		SourceID:     "test-source",
		ChannelCount: channels,
		NominalRate:  rate,
	}
}

// newTestBridge returns a bridge at 44.1kHz, 16-frame blocks.
func newTestBridge(t testing.TB, tr *fakeTransport, outs int, mutate ...func(*Config)) *Bridge {
	t.Helper()

	cfg := DefaultConfig()
	for _, m := range mutate {
		m(&cfg)
	}

	b, err := New(cfg, device.Format{SampleRate: 44100, Frames: 16, OutChannels: outs}, tr, quietLogger())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	return b
}

// frames builds count interleaved frames where channel c of frame f is
// f+1 + c/10.
func frames(count, channels int) []float32 {
	out := make([]float32, 0, count*channels)
	for f := range count {
		for c := range channels {
			out = append(out, float32(f+1)+float32(c)/10)
		}
	}

	return out
}
