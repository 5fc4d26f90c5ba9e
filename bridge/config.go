// SPDX-License-Identifier: EPL-2.0

package bridge

import (
	"fmt"
	"time"
)

const (
	// DefaultStreamName is the stream name the bridge binds to.
	DefaultStreamName = "audio"

	// DefaultCapacity is the ring size in frames.
	DefaultCapacity = 8192

	// MaxChannels is the widest stream the ring can carry.
	MaxChannels = 8

	// DefaultTolerance is the accepted fractional rate deviation (0.1%).
	DefaultTolerance = 0.001

	// DefaultPullLimit bounds the frames taken from the inlet per fill.
	DefaultPullLimit = 512

	// DefaultFillEveryBlocks is the render-block interval between fills.
	DefaultFillEveryBlocks = 8

	// DefaultDiscoveryPerSecond is how often the catalog is refreshed.
	DefaultDiscoveryPerSecond = 2

	// DefaultStatusInterval is the number of productive fills between
	// occupancy reports.
	DefaultStatusInterval = 1000

	// DefaultOpenTimeout bounds opening an inlet.
	DefaultOpenTimeout = time.Second

	// DefaultQuiesceTimeout bounds the wait for an in-flight render block
	// before the ring is reset.
	DefaultQuiesceTimeout = 100 * time.Millisecond
)

// Config holds the bridge constants. The zero value is not usable; start
// from DefaultConfig.
type Config struct {
	StreamName         string        `yaml:"stream_name"`
	Capacity           int           `yaml:"capacity"`
	Tolerance          float64       `yaml:"tolerance"`
	PullLimit          int           `yaml:"pull_limit"`
	FillEveryBlocks    int           `yaml:"fill_every_blocks"`
	DiscoveryPerSecond int           `yaml:"discovery_per_second"`
	StatusInterval     int           `yaml:"status_interval"`
	OpenTimeout        time.Duration `yaml:"open_timeout"`
	QuiesceTimeout     time.Duration `yaml:"quiesce_timeout"`
}

// DefaultConfig returns the stock bridge settings.
func DefaultConfig() Config {
	return Config{
		StreamName:         DefaultStreamName,
		Capacity:           DefaultCapacity,
		Tolerance:          DefaultTolerance,
		PullLimit:          DefaultPullLimit,
		FillEveryBlocks:    DefaultFillEveryBlocks,
		DiscoveryPerSecond: DefaultDiscoveryPerSecond,
		StatusInterval:     DefaultStatusInterval,
		OpenTimeout:        DefaultOpenTimeout,
		QuiesceTimeout:     DefaultQuiesceTimeout,
	}
}

// Validate checks every field.
func (c Config) Validate() error {
	switch {
	case c.StreamName == "":
		return fmt.Errorf("%w: stream name is empty", ErrInvalidConfig)
	case c.Capacity < 2 || c.Capacity&(c.Capacity-1) != 0:
		return fmt.Errorf("%w: capacity %d is not a power of two", ErrInvalidConfig, c.Capacity)
	case c.Tolerance <= 0 || c.Tolerance >= 1:
		return fmt.Errorf("%w: tolerance %v out of (0, 1)", ErrInvalidConfig, c.Tolerance)
	case c.PullLimit < 1:
		return fmt.Errorf("%w: pull limit %d", ErrInvalidConfig, c.PullLimit)
	case c.FillEveryBlocks < 1:
		return fmt.Errorf("%w: fill interval %d", ErrInvalidConfig, c.FillEveryBlocks)
	case c.DiscoveryPerSecond < 1:
		return fmt.Errorf("%w: discovery rate %d", ErrInvalidConfig, c.DiscoveryPerSecond)
	case c.StatusInterval < 1:
		return fmt.Errorf("%w: status interval %d", ErrInvalidConfig, c.StatusInterval)
	case c.OpenTimeout <= 0:
		return fmt.Errorf("%w: open timeout %v", ErrInvalidConfig, c.OpenTimeout)
	case c.QuiesceTimeout <= 0:
		return fmt.Errorf("%w: quiesce timeout %v", ErrInvalidConfig, c.QuiesceTimeout)
	}

	return nil
}
