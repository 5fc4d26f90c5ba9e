// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ik5/audbridge/bridge"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "audbridge.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestDefault_Valid(t *testing.T) {
	t.Parallel()

	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
}

func TestLoad_EmptyPath(t *testing.T) {
	t.Parallel()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Bridge != bridge.DefaultConfig() {
		t.Errorf("Bridge = %+v, want defaults", cfg.Bridge)
	}
}

func TestLoad_Overlay(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
log_level: debug
bridge:
  stream_name: eeg-audio
  capacity: 4096
  open_timeout: 250ms
device:
  sample_rate: 48000
  block_frames: 128
  output: clock
  capture_path: /tmp/out.wav
sender:
  loop: true
  chunk_frames: 512
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}

	if cfg.Bridge.StreamName != "eeg-audio" || cfg.Bridge.Capacity != 4096 {
		t.Errorf("Bridge = %+v", cfg.Bridge)
	}

	if cfg.Bridge.OpenTimeout != 250*time.Millisecond {
		t.Errorf("OpenTimeout = %v, want 250ms", cfg.Bridge.OpenTimeout)
	}

	if cfg.Bridge.PullLimit != bridge.DefaultPullLimit {
		t.Errorf("PullLimit = %d, want default kept", cfg.Bridge.PullLimit)
	}

	if cfg.Device.SampleRate != 48000 || cfg.Device.Frames != 128 || cfg.Device.OutChannels != 2 {
		t.Errorf("Device.Format = %+v", cfg.Device.Format)
	}

	if cfg.Device.Output != OutputClock || cfg.Device.CapturePath != "/tmp/out.wav" {
		t.Errorf("Device = %+v", cfg.Device)
	}

	if !cfg.Sender.Loop || cfg.Sender.ChunkFrames != 512 || cfg.Sender.Name != "audio" {
		t.Errorf("Sender = %+v", cfg.Sender)
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Device != Default().Device {
		t.Errorf("Device = %+v, want defaults", cfg.Device)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		invalid bool
	}{
		{"unknown field", "bridge:\n  capacty: 1024\n", false},
		{"bad yaml", "bridge: [\n", false},
		{"capacity not power of two", "bridge:\n  capacity: 1000\n", true},
		{"bad log level", "log_level: loud\n", true},
		{"unknown output", "device:\n  output: alsa\n", true},
		{"capture depth", "device:\n  capture_bit_depth: 12\n", true},
		{"zero block", "device:\n  block_frames: 0\n", true},
		{"sender too wide", "sender:\n  max_channels: 16\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("Load() succeeded")
			}

			if got := errors.Is(err, ErrInvalid); got != tt.invalid {
				t.Fatalf("errors.Is(ErrInvalid) = %v for %v", got, err)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Load() error = %v, want os.ErrNotExist", err)
	}
}
