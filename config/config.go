// SPDX-License-Identifier: EPL-2.0

// Package config gathers the settings of every audbridge component and
// reads them from an optional YAML file. Fields missing from the file keep
// their defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ik5/audbridge/bridge"
	"github.com/ik5/audbridge/device"
	"github.com/ik5/audbridge/sender"
)

// Output drivers.
const (
	OutputOto   = "oto"
	OutputClock = "clock"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the full audbridge configuration.
type Config struct {
	LogLevel string        `yaml:"log_level"`
	Bridge   bridge.Config `yaml:"bridge"`
	Device   Device        `yaml:"device"`
	Sender   sender.Config `yaml:"sender"`
}

// Device selects and shapes the audio output.
type Device struct {
	device.Format `yaml:",inline"`

	// Output is OutputOto for the sound card or OutputClock for a
	// simulated device that only records.
	Output          string `yaml:"output"`
	CapturePath     string `yaml:"capture_path"`
	CaptureBitDepth int    `yaml:"capture_bit_depth"`
}

// Default returns a configuration that plays a stereo 44.1kHz stream in
// 16-frame blocks.
func Default() Config {
	return Config{
		LogLevel: logrus.InfoLevel.String(),
		Bridge:   bridge.DefaultConfig(),
		Device: Device{
			Format: device.Format{
				SampleRate:  44100,
				Frames:      16,
				OutChannels: 2,
			},
			Output:          OutputOto,
			CaptureBitDepth: 16,
		},
		Sender: sender.DefaultConfig(),
	}
}

// Load overlays the YAML file at path on Default and validates the result.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	if err := cfg.decode(data); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}

// Validate checks every section.
func (c Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	if err := c.Bridge.Validate(); err != nil {
		return fmt.Errorf("%w: bridge: %w", ErrInvalid, err)
	}

	if err := c.Device.Validate(); err != nil {
		return fmt.Errorf("%w: device: %w", ErrInvalid, err)
	}

	if err := c.Sender.Validate(); err != nil {
		return fmt.Errorf("%w: sender: %w", ErrInvalid, err)
	}

	if c.Sender.MaxChannels > bridge.MaxChannels {
		return fmt.Errorf("%w: sender max channels %d above bridge limit %d",
			ErrInvalid, c.Sender.MaxChannels, bridge.MaxChannels)
	}

	return nil
}

func (d Device) Validate() error {
	if err := d.Format.Validate(); err != nil {
		return err
	}

	switch d.Output {
	case OutputOto, OutputClock:
	default:
		return fmt.Errorf("unknown output %q", d.Output)
	}

	switch d.CaptureBitDepth {
	case 8, 16, 24, 32:
	default:
		return fmt.Errorf("capture bit depth %d", d.CaptureBitDepth)
	}

	return nil
}
