// SPDX-License-Identifier: EPL-2.0

package sender

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ik5/audbridge/audio"
	"github.com/ik5/audbridge/stream"
	"github.com/ik5/audbridge/transport/loopback"
)

// pollInterval is how long Run sleeps when no chunk is due.
const pollInterval = time.Millisecond

// OpenFunc opens the file to stream. It is called again on every loop.
type OpenFunc func() (audio.Source, error)

// Sender publishes one file as a stream.
type Sender struct {
	cfg    Config
	net    *loopback.Network
	open   OpenFunc
	logger logrus.FieldLogger

	src    audio.Source
	outlet *loopback.Outlet
	buf    []float32

	framesSent atomic.Uint64
	loops      atomic.Uint64
}

func New(cfg Config, net *loopback.Network, open OpenFunc, logger logrus.FieldLogger) (*Sender, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if net == nil || open == nil {
		return nil, fmt.Errorf("%w: network and open func are required", ErrInvalidConfig)
	}

	return &Sender{
		cfg:    cfg,
		net:    net,
		open:   open,
		logger: logger,
	}, nil
}

// Start opens the file and advertises the stream. Consumers may connect
// as soon as it returns.
func (s *Sender) Start() error {
	src, err := s.openSource()
	if err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"channels":    src.Channels(),
		"sample_rate": src.SampleRate(),
	}).Info("Opened audio file")

	outlet, err := s.net.NewOutlet(stream.Descriptor{
		Name:         s.cfg.Name,
		Type:         s.cfg.Type,
		SourceID:     s.cfg.SourceID,
		ChannelCount: src.Channels(),
		NominalRate:  float64(src.SampleRate()),
	}, s.cfg.BufferFrames)
	if err != nil {
		src.Close()
		return fmt.Errorf("advertise %s: %w", s.cfg.Name, err)
	}

	s.src = src
	s.outlet = outlet
	s.buf = make([]float32, s.cfg.ChunkFrames*src.Channels())

	return nil
}

func (s *Sender) openSource() (audio.Source, error) {
	raw, err := s.open()
	if err != nil {
		return nil, fmt.Errorf("open audio: %w", err)
	}

	src, err := audio.Conform(raw, s.cfg.SampleRate, s.cfg.MaxChannels)
	if err != nil {
		raw.Close()
		return nil, fmt.Errorf("conform audio: %w", err)
	}

	return src, nil
}

// Descriptor is the advertised stream. Valid after Start.
func (s *Sender) Descriptor() stream.Descriptor {
	if s.outlet == nil {
		return stream.Descriptor{}
	}

	return s.outlet.Descriptor()
}

// FramesSent counts frames pushed since Start, across loops.
func (s *Sender) FramesSent() uint64 { return s.framesSent.Load() }

// Loops counts completed passes over the file.
func (s *Sender) Loops() uint64 { return s.loops.Load() }

// Run streams until the file ends (without Loop) or ctx is done. Either
// way the outlet and the file are closed on return.
func (s *Sender) Run(ctx context.Context) error {
	if s.outlet == nil {
		return ErrNotStarted
	}

	defer s.shutdown()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	rate := float64(s.src.SampleRate())
	ch := s.src.Channels()
	chunk := int64(s.cfg.ChunkFrames)

	s.logger.WithField("stream", s.cfg.Name).Info("Streaming audio file")

	start := time.Now()
	var sent int64

	for {
		required := int64(rate*time.Since(start).Seconds()) - sent
		if required < chunk {
			select {
			case <-ctx.Done():
				s.logger.Info("Streaming interrupted")
				return nil
			case <-ticker.C:
			}
			continue
		}

		n, err := s.src.ReadFrames(s.buf)
		if n > 0 {
			if perr := s.outlet.Push(s.buf[:n*ch]); perr != nil {
				return fmt.Errorf("push: %w", perr)
			}

			sent += int64(n)
			s.framesSent.Add(uint64(n))
		}

		if errors.Is(err, io.EOF) {
			s.loops.Add(1)

			if !s.cfg.Loop {
				s.logger.Info("End of audio file reached")
				return nil
			}

			if err := s.rewind(); err != nil {
				return err
			}

			s.logger.Debug("Restarting audio file playback")
			start, sent = time.Now(), 0
			continue
		}

		if err != nil {
			return fmt.Errorf("read: %w", err)
		}
	}
}

func (s *Sender) rewind() error {
	next, err := s.openSource()
	if err != nil {
		return err
	}

	if next.SampleRate() != s.src.SampleRate() || next.Channels() != s.src.Channels() {
		next.Close()
		return fmt.Errorf("%w: %d Hz %d ch", ErrSourceChanged, next.SampleRate(), next.Channels())
	}

	s.src.Close()
	s.src = next

	return nil
}

func (s *Sender) shutdown() {
	if err := s.outlet.Close(); err != nil {
		s.logger.WithError(err).Warn("Closing outlet")
	}

	if err := s.src.Close(); err != nil {
		s.logger.WithError(err).Warn("Closing audio file")
	}

	s.logger.WithField("frames", s.framesSent.Load()).Info("Streaming stopped")
}
