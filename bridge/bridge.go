// SPDX-License-Identifier: EPL-2.0

package bridge

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ik5/audbridge/device"
	"github.com/ik5/audbridge/ring"
	"github.com/ik5/audbridge/stream"
)

// Bridge connects a discoverable network stream to a periodic audio render
// callback. It owns the resolver, selector, inlet lifecycle, ring buffer
// and activation flag; there is no package-level state.
//
// Render is the real-time entry point. Discover and Fill are the deferred
// entry points; Run drives them from Render's requests.
type Bridge struct {
	cfg       Config
	format    device.Format
	logger    logrus.FieldLogger
	transport stream.Transport
	selector  stream.Selector

	ring      *ring.Buffer
	active    atomic.Bool
	renderSeq atomic.Uint64
	blocks    atomic.Uint64
	life      *lifecycle
	filler    *filler
	stats     counters

	// render-side only
	discoverEvery cadence
	fillEvery     cadence

	discoverTask *auxTask
	fillTask     *auxTask
	running      atomic.Bool
}

// New builds a bridge for hardware running at format.
func New(cfg Config, format device.Format, transport stream.Transport, logger logrus.FieldLogger) (*Bridge, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := format.Validate(); err != nil {
		return nil, fmt.Errorf("bridge: %w", err)
	}

	if transport == nil {
		return nil, fmt.Errorf("%w: nil transport", ErrInvalidConfig)
	}

	rb, err := ring.New(cfg.Capacity, MaxChannels)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	b := &Bridge{
		cfg:       cfg,
		format:    format,
		logger:    logger,
		transport: transport,
		selector: stream.Selector{
			Name:      cfg.StreamName,
			LocalRate: format.SampleRate,
			Tolerance: cfg.Tolerance,
		},
		ring: rb,
		discoverEvery: newCadence(
			discoveryPeriod(format.SampleRate, format.Frames, cfg.DiscoveryPerSecond), true),
		fillEvery: newCadence(cfg.FillEveryBlocks, false),
	}

	b.life = &lifecycle{
		transport:      transport,
		ring:           rb,
		active:         &b.active,
		quiesce:        b.waitRenderIdle,
		openTimeout:    cfg.OpenTimeout,
		quiesceTimeout: cfg.QuiesceTimeout,
		logger:         logger,
		stats:          &b.stats,
	}

	b.filler = newFiller(b.life, rb, cfg.PullLimit, cfg.StatusInterval, logger, &b.stats)

	b.discoverTask = newAuxTask("resolve-streams", b.Discover)
	b.fillTask = newAuxTask("fill-audio-buffer", func(context.Context) { b.Fill() })

	return b, nil
}

// Run serves the deferred discovery and fill tasks until ctx ends, then
// tears the inlet down. Render may be called before, during and after Run;
// outside Run its requests are simply not served.
func (b *Bridge) Run(ctx context.Context) error {
	if !b.running.CompareAndSwap(false, true) {
		return ErrRunning
	}
	defer b.running.Store(false)

	b.logger.WithFields(logrus.Fields{
		"stream":      b.cfg.StreamName,
		"sample_rate": b.format.SampleRate,
		"block":       b.format.Frames,
		"outputs":     b.format.OutChannels,
	}).Info("Bridge started")

	var wg sync.WaitGroup
	for _, t := range []*auxTask{b.discoverTask, b.fillTask} {
		wg.Go(func() { t.run(ctx) })
	}

	b.discoverTask.schedule()

	<-ctx.Done()
	wg.Wait()
	b.Close()

	b.logger.Info("Bridge stopped")

	return nil
}

// Close drops the current connection. The bridge falls back to silence and
// may connect again on the next discovery.
func (b *Bridge) Close() {
	b.life.teardown()
}

// Discover refreshes the catalog and, when no stream is bound, connects to
// the first compatible one. Deferred context only.
func (b *Bridge) Discover(ctx context.Context) {
	catalog := b.transport.Refresh()
	if len(catalog) == 0 {
		b.stats.fault(FaultDiscoveryEmpty)
		b.logger.Debug("No streams found")
		return
	}

	if b.active.Load() {
		return
	}

	for _, d := range catalog {
		err := b.selector.Check(d)
		if errors.Is(err, stream.ErrNameMismatch) {
			continue
		}

		if err != nil {
			b.stats.fault(FaultRateMismatch)
			b.logger.WithFields(logrus.Fields{
				"stream":      d.Name,
				"source_id":   d.SourceID,
				"stream_rate": d.NominalRate,
				"local_rate":  b.format.SampleRate,
			}).Warn("Audio stream found but sample rate mismatch")
			continue
		}

		err = b.life.tryConnect(ctx, d)
		if errors.Is(err, ErrChannelCount) {
			continue
		}

		// connected, or failed to open: either way this cycle is done
		return
	}
}

// Fill moves one bounded chunk from the inlet into the ring and returns the
// number of frames stored. Deferred context only.
func (b *Bridge) Fill() int {
	return b.filler.fill()
}

// Render writes one block of output. It never blocks, allocates or logs.
// Underrun and inactivity produce silence.
func (b *Bridge) Render(ctx device.Context) {
	b.renderSeq.Add(1)
	defer b.renderSeq.Add(1)

	if b.discoverEvery.tick() {
		b.discoverTask.schedule()
	}

	if b.active.Load() && b.fillEvery.tick() {
		b.fillTask.schedule()
	}

	frames, outs := ctx.Frames(), ctx.OutChannels()

	var played, silent uint64
	for n := range frames {
		active := b.active.Load()

		var frame []float32
		if active {
			frame = b.ring.Front()
		}

		if frame == nil {
			for ch := range outs {
				ctx.Write(n, ch, 0)
			}

			if active {
				silent++
			}
			continue
		}

		bound := min(len(frame), outs)
		for ch := range bound {
			ctx.Write(n, ch, frame[ch])
		}

		for ch := bound; ch < outs; ch++ {
			ctx.Write(n, ch, 0)
		}

		b.ring.Advance()
		played++
	}

	b.stats.framesOut.Add(played)
	if silent > 0 {
		b.stats.underrunFrames.Add(silent)
	}
	b.blocks.Add(1)
}

// waitRenderIdle returns once no render block that might have seen the
// stream active is still running. Deferred context only.
func (b *Bridge) waitRenderIdle(timeout time.Duration) error {
	seq := b.renderSeq.Load()
	if seq%2 == 0 {
		return nil
	}

	deadline := time.Now().Add(timeout)
	for b.renderSeq.Load() == seq {
		if time.Now().After(deadline) {
			return ErrRenderBusy
		}

		time.Sleep(50 * time.Microsecond)
	}

	return nil
}

// Active reports the activation flag.
func (b *Bridge) Active() bool { return b.active.Load() }

// State reports the inlet lifecycle state.
func (b *Bridge) State() State { return b.life.State() }

// Stats returns a monitoring snapshot.
func (b *Bridge) Stats() Stats {
	desc, _ := b.life.bound()

	s := Stats{
		State:    b.life.State(),
		Active:   b.active.Load(),
		Stream:   desc,
		Capacity: b.ring.Capacity(),

		Connects:    b.stats.connects.Load(),
		Disconnects: b.stats.disconnects.Load(),
		Faults:      make(map[Fault]uint64, int(faultCount)),

		FramesIn:       b.stats.framesIn.Load(),
		FramesOut:      b.stats.framesOut.Load(),
		UnderrunFrames: b.stats.underrunFrames.Load(),

		DiscoveryRuns:     b.discoverTask.runs.Load(),
		FillRuns:          b.fillTask.runs.Load(),
		CoalescedRequests: b.discoverTask.coalesced.Load() + b.fillTask.coalesced.Load(),
		RenderBlocks:      b.blocks.Load(),
	}

	if s.Active {
		s.Buffered = b.ring.Available()
	}

	for f := range faultCount {
		s.Faults[f] = b.stats.faults[f].Load()
	}

	return s
}
