// SPDX-License-Identifier: EPL-2.0

// Package otoout plays the bridge through the system audio device with
// oto. The device pulls audio, and each pull renders as many blocks as it
// needs, so the sound card rather than a ticker paces the renderer.
//
// oto plays mono or stereo only: outputs beyond the second are rendered
// but not played. Only one oto context may exist per process.
package otoout

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/sirupsen/logrus"

	"github.com/ik5/audbridge/device"
)

// errPoll is how often Run checks the player for a failure.
const errPoll = 100 * time.Millisecond

// Output owns the oto context and one player.
type Output struct {
	ctx    *oto.Context
	reader *Reader
	format device.Format
	logger logrus.FieldLogger
}

// New opens the audio device at f's rate. sink may be nil.
func New(f device.Format, r device.Renderer, sink device.Sink, logger logrus.FieldLogger) (*Output, error) {
	channels := min(f.OutChannels, 2)

	reader, err := NewReader(f, r, sink, channels)
	if err != nil {
		return nil, err
	}

	period := time.Duration(float64(f.Frames) / f.SampleRate * float64(time.Second))

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   int(math.Round(f.SampleRate)),
		ChannelCount: channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   2 * period,
	})
	if err != nil {
		return nil, fmt.Errorf("otoout: %w", err)
	}
	<-ready

	return &Output{ctx: ctx, reader: reader, format: f, logger: logger}, nil
}

// Run plays until ctx ends or the player fails.
func (o *Output) Run(ctx context.Context) error {
	player := o.ctx.NewPlayer(o.reader)
	defer player.Close()

	player.SetBufferSize(2 * len(o.reader.out))
	player.Play()

	o.logger.WithFields(logrus.Fields{
		"sample_rate": o.format.SampleRate,
		"block":       o.format.Frames,
		"channels":    o.reader.channels,
	}).Info("Audio output started")

	ticker := time.NewTicker(errPoll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			player.Pause()
			o.logger.WithField("blocks", o.reader.Blocks()).Info("Audio output stopped")
			return nil
		case <-ticker.C:
			if err := player.Err(); err != nil {
				return fmt.Errorf("otoout: player: %w", err)
			}

			if err := o.ctx.Err(); err != nil {
				return fmt.Errorf("otoout: device: %w", err)
			}
		}
	}
}
