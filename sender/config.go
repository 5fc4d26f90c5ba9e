// SPDX-License-Identifier: EPL-2.0

package sender

import "fmt"

const (
	DefaultName        = "audio"
	DefaultType        = "audio"
	DefaultChunkFrames = 256
	DefaultMaxChannels = 8
)

// Config describes the published stream.
type Config struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
	// SourceID is advertised as is; empty selects a random one.
	SourceID    string `yaml:"source_id"`
	ChunkFrames int    `yaml:"chunk_frames"`
	Loop        bool   `yaml:"loop"`
	// BufferFrames bounds each consumer queue; zero keeps the transport default.
	BufferFrames int `yaml:"buffer_frames"`
	// SampleRate resamples the file; zero keeps its own rate.
	SampleRate int `yaml:"sample_rate"`
	// Files wider than MaxChannels are mixed down to mono.
	MaxChannels int `yaml:"max_channels"`
}

func DefaultConfig() Config {
	return Config{
		Name:        DefaultName,
		Type:        DefaultType,
		ChunkFrames: DefaultChunkFrames,
		MaxChannels: DefaultMaxChannels,
	}
}

func (c Config) Validate() error {
	switch {
	case c.Name == "":
		return fmt.Errorf("%w: stream name is empty", ErrInvalidConfig)
	case c.ChunkFrames < 1:
		return fmt.Errorf("%w: chunk of %d frames", ErrInvalidConfig, c.ChunkFrames)
	case c.BufferFrames < 0:
		return fmt.Errorf("%w: buffer of %d frames", ErrInvalidConfig, c.BufferFrames)
	case c.SampleRate < 0:
		return fmt.Errorf("%w: sample rate %d", ErrInvalidConfig, c.SampleRate)
	case c.MaxChannels < 1:
		return fmt.Errorf("%w: max channels %d", ErrInvalidConfig, c.MaxChannels)
	}

	return nil
}
