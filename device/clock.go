// SPDX-License-Identifier: EPL-2.0

package device

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Clock simulates audio hardware: it calls a Renderer once per block at the
// block period, on a single goroutine, and passes each block to an optional
// Sink.
type Clock struct {
	block    *Block
	renderer Renderer
	sink     Sink
	logger   logrus.FieldLogger
	ticks    uint64
}

// NewClock prepares a clock for f. sink may be nil.
func NewClock(f Format, r Renderer, sink Sink, logger logrus.FieldLogger) (*Clock, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	return &Clock{
		block:    NewBlock(f),
		renderer: r,
		sink:     sink,
		logger:   logger,
	}, nil
}

// Period is the wall-clock duration of one block.
func (c *Clock) Period() time.Duration {
	f := c.block.Format()
	return time.Duration(float64(f.Frames) / f.SampleRate * float64(time.Second))
}

// Ticks is the number of blocks rendered so far.
func (c *Clock) Ticks() uint64 { return c.ticks }

// Step renders n blocks back to back without waiting.
func (c *Clock) Step(n int) error {
	for range n {
		if err := c.tick(); err != nil {
			return err
		}
	}

	return nil
}

// Run renders one block per period until ctx ends.
func (c *Clock) Run(ctx context.Context) error {
	ticker := time.NewTicker(c.Period())
	defer ticker.Stop()

	c.logger.WithField("period", c.Period()).Info("Audio clock started")

	for {
		select {
		case <-ctx.Done():
			c.logger.WithField("blocks", c.ticks).Info("Audio clock stopped")
			return nil
		case <-ticker.C:
			if err := c.tick(); err != nil {
				return err
			}
		}
	}
}

func (c *Clock) tick() error {
	c.block.Clear()
	c.renderer.Render(c.block)
	c.ticks++

	if c.sink == nil {
		return nil
	}

	if err := c.sink.WriteBlock(c.block); err != nil {
		return fmt.Errorf("sink: %w", err)
	}

	return nil
}
