// SPDX-License-Identifier: EPL-2.0

package audbridge

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ik5/audbridge/bridge"
	"github.com/ik5/audbridge/config"
	"github.com/ik5/audbridge/device"
	"github.com/ik5/audbridge/device/capture"
	"github.com/ik5/audbridge/device/otoout"
	"github.com/ik5/audbridge/sender"
	"github.com/ik5/audbridge/transport/loopback"
)

// driver calls the bridge's Render once per block until ctx ends.
type driver interface {
	Run(ctx context.Context) error
}

// Session is one bridge on one output device, fed by an optional local
// sender over a loopback network.
type Session struct {
	cfg    config.Config
	logger logrus.FieldLogger

	network  *loopback.Network
	bridge   *bridge.Bridge
	sender   *sender.Sender
	recorder *capture.Recorder
	driver   driver
}

// NewSession builds every component from cfg. open may be nil, in which
// case the bridge waits for streams advertised on Network by others.
func NewSession(cfg config.Config, open sender.OpenFunc, logger logrus.FieldLogger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		cfg:     cfg,
		logger:  logger,
		network: loopback.NewNetwork(logger.WithField("component", "loopback")),
	}

	br, err := bridge.New(cfg.Bridge, cfg.Device.Format, s.network, logger.WithField("component", "bridge"))
	if err != nil {
		return nil, err
	}
	s.bridge = br

	if open != nil {
		s.sender, err = sender.New(cfg.Sender, s.network, open, logger.WithField("component", "sender"))
		if err != nil {
			return nil, err
		}
	}

	var sink device.Sink
	if cfg.Device.CapturePath != "" {
		s.recorder, err = capture.Create(cfg.Device.CapturePath, cfg.Device.Format, cfg.Device.CaptureBitDepth,
			logger.WithField("component", "capture"))
		if err != nil {
			return nil, err
		}
		sink = s.recorder
	}

	dlog := logger.WithField("component", "device")
	switch cfg.Device.Output {
	case config.OutputClock:
		s.driver, err = device.NewClock(cfg.Device.Format, br, sink, dlog)
	case config.OutputOto:
		s.driver, err = otoout.New(cfg.Device.Format, br, sink, dlog)
	default:
		err = fmt.Errorf("%w: unknown output %q", config.ErrInvalid, cfg.Device.Output)
	}

	if err != nil {
		if s.recorder != nil {
			s.recorder.Close()
		}
		return nil, err
	}

	return s, nil
}

// Network is the loopback network the bridge discovers streams on.
func (s *Session) Network() *loopback.Network { return s.network }

// Bridge exposes the bridge for monitoring.
func (s *Session) Bridge() *bridge.Bridge { return s.bridge }

// Sender is nil when the session was built without a file.
func (s *Session) Sender() *sender.Sender { return s.sender }

// Run starts the sender, then runs the bridge, the sender and the device
// until ctx ends or one of them fails. A sender reaching the end of its
// file is not a failure. The capture file, if any, is finalized on return.
func (s *Session) Run(ctx context.Context) error {
	if s.sender != nil {
		if err := s.sender.Start(); err != nil {
			return s.finish(err)
		}
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return s.bridge.Run(ctx) })
	g.Go(func() error { return s.driver.Run(ctx) })

	if s.sender != nil {
		g.Go(func() error { return s.sender.Run(ctx) })
	}

	return s.finish(g.Wait())
}

func (s *Session) finish(err error) error {
	if s.recorder != nil {
		err = errors.Join(err, s.recorder.Close())
	}

	stats := s.bridge.Stats()
	s.logger.WithFields(logrus.Fields{
		"connects":   stats.Connects,
		"frames_in":  stats.FramesIn,
		"frames_out": stats.FramesOut,
		"underruns":  stats.UnderrunFrames,
	}).Info("Session finished")

	return err
}
