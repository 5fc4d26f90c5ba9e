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

	"github.com/ik5/audbridge/ring"
	"github.com/ik5/audbridge/stream"
)

// State is the inlet lifecycle state.
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateActive
	StateLost
	StateError
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateActive:
		return "active"
	case StateLost:
		return "lost"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// lifecycle owns the single inlet handle. Every method runs on the deferred
// side; mu serialises discovery, fill and shutdown. The render loop only
// ever reads active.
type lifecycle struct {
	mu sync.Mutex

	transport      stream.Transport
	ring           *ring.Buffer
	active         *atomic.Bool
	quiesce        func(timeout time.Duration) error
	openTimeout    time.Duration
	quiesceTimeout time.Duration
	logger         logrus.FieldLogger
	stats          *counters

	// owning slot, nil while disconnected
	inlet    stream.Inlet
	desc     stream.Descriptor
	channels int
	rate     float64

	state atomic.Int32
}

func (l *lifecycle) State() State { return State(l.state.Load()) }

func (l *lifecycle) setState(s State) {
	prev := State(l.state.Swap(int32(s)))
	if prev != s {
		l.logger.WithFields(logrus.Fields{"from": prev, "to": s}).Debug("Inlet state change")
	}
}

// tryConnect validates d, opens an inlet for it and activates the bridge.
// It returns nil once the stream is active.
func (l *lifecycle) tryConnect(ctx context.Context, d stream.Descriptor) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	log := l.logger.WithFields(logrus.Fields{"stream": d.Name, "source_id": d.SourceID})

	if d.ChannelCount < 1 || d.ChannelCount > l.ring.MaxChannels() {
		l.stats.fault(FaultChannelCount)
		log.WithFields(logrus.Fields{"channels": d.ChannelCount, "max": l.ring.MaxChannels()}).
			Warn("Invalid channel count")

		return fmt.Errorf("%w: %d (max %d)", ErrChannelCount, d.ChannelCount, l.ring.MaxChannels())
	}

	l.teardownLocked()
	l.setState(StateConnecting)

	openCtx, cancel := context.WithTimeout(ctx, l.openTimeout)
	defer cancel()

	in, err := l.transport.Open(openCtx, d, l.openTimeout)
	if err == nil {
		err = l.validate(in, d)
	}

	if err == nil {
		// active is already false; wait out a block that started before
		// it was cleared so the reset cannot race a read.
		err = l.quiesce(l.quiesceTimeout)
	}

	if err == nil {
		err = l.ring.Reset(d.ChannelCount)
	}

	if err != nil {
		if in != nil {
			_ = in.Close()
		}

		l.stats.fault(FaultConnect)
		l.setState(StateError)
		log.WithError(err).Error("Error creating audio inlet")
		l.setState(StateDisconnected)

		return fmt.Errorf("connect %s: %w", d.Name, err)
	}

	l.inlet = in
	l.desc = d
	l.channels = d.ChannelCount
	l.rate = d.NominalRate
	l.active.Store(true)
	l.setState(StateActive)
	l.stats.connects.Add(1)

	log.WithFields(logrus.Fields{"channels": l.channels, "rate": l.rate}).Info("Connected to audio stream")

	return nil
}

// validate checks the opened inlet still describes what was selected.
func (l *lifecycle) validate(in stream.Inlet, d stream.Descriptor) error {
	got := in.Descriptor()
	if got.ChannelCount != d.ChannelCount {
		return fmt.Errorf("%w: inlet reports %d channels, catalog %d", ErrChannelCount, got.ChannelCount, d.ChannelCount)
	}

	return nil
}

// markLostLocked deactivates after a pull error and drops the handle.
// Caller holds mu.
func (l *lifecycle) markLostLocked(err error) {
	fault := FaultTransfer
	if errors.Is(err, stream.ErrStreamLost) {
		fault = FaultStreamLost
	}

	l.stats.fault(fault)
	l.active.Store(false)
	l.setState(StateLost)

	l.logger.WithError(err).WithFields(logrus.Fields{
		"stream": l.desc.Name,
		"fault":  fault,
	}).Warn("Audio stream lost")

	l.releaseLocked()
}

// teardown closes the current inlet if any. Idempotent.
func (l *lifecycle) teardown() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.teardownLocked()
}

func (l *lifecycle) teardownLocked() {
	l.active.Store(false)

	if l.inlet == nil {
		l.setState(StateDisconnected)
		return
	}

	l.logger.WithField("stream", l.desc.Name).Info("Closing audio inlet")
	l.releaseLocked()
}

// releaseLocked closes and forgets the handle. active must already be false.
func (l *lifecycle) releaseLocked() {
	if l.inlet != nil {
		if err := l.inlet.Close(); err != nil {
			l.logger.WithError(err).Debug("Inlet close failed")
		}

		l.stats.disconnects.Add(1)
	}

	l.inlet = nil
	l.desc = stream.Descriptor{}
	l.channels = 0
	l.rate = 0
	l.setState(StateDisconnected)
}

// bound returns the active stream, if any.
func (l *lifecycle) bound() (stream.Descriptor, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.desc, l.inlet != nil
}
