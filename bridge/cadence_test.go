// SPDX-License-Identifier: EPL-2.0

package bridge

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCadence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		period    int
		immediate bool
		ticks     int
		wantFires []int
	}{
		{"immediate", 3, true, 8, []int{1, 4, 7}},
		{"deferred", 3, false, 8, []int{3, 6}},
		{"every tick", 1, false, 3, []int{1, 2, 3}},
		{"zero period clamps to one", 0, false, 2, []int{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newCadence(tt.period, tt.immediate)

			var fires []int
			for i := 1; i <= tt.ticks; i++ {
				if c.tick() {
					fires = append(fires, i)
				}
			}

			if len(fires) != len(tt.wantFires) {
				t.Fatalf("fired at %v, want %v", fires, tt.wantFires)
			}

			for i := range fires {
				if fires[i] != tt.wantFires[i] {
					t.Fatalf("fired at %v, want %v", fires, tt.wantFires)
				}
			}
		})
	}
}

func TestDiscoveryPeriod(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rate      float64
		block     int
		perSecond int
		want      int
	}{
		{44100, 16, 2, 1378},
		{48000, 480, 2, 50},
		{8000, 100, 2, 40},
		{8000, 8000, 4, 1},
		{44100, 0, 2, 1},
		{44100, 16, 0, 1},
	}

	for _, tt := range tests {
		if got := discoveryPeriod(tt.rate, tt.block, tt.perSecond); got != tt.want {
			t.Errorf("discoveryPeriod(%v, %d, %d) = %d, want %d", tt.rate, tt.block, tt.perSecond, got, tt.want)
		}
	}
}

func TestAuxTask_Coalesces(t *testing.T) {
	t.Parallel()

	task := newAuxTask("test", func(context.Context) {})

	for range 5 {
		task.schedule()
	}

	if got := task.requested.Load(); got != 5 {
		t.Errorf("requested = %d, want 5", got)
	}

	if got := task.coalesced.Load(); got != 4 {
		t.Errorf("coalesced = %d, want 4", got)
	}
}

func TestAuxTask_Run(t *testing.T) {
	t.Parallel()

	ran := make(chan struct{}, 4)
	task := newAuxTask("test", func(context.Context) { ran <- struct{}{} })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		task.run(ctx)
		close(done)
	}()

	task.schedule()

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("task did not run")
	}

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("run did not return after cancel")
	}

	if task.runs.Load() != 1 {
		t.Errorf("runs = %d, want 1", task.runs.Load())
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty name", func(c *Config) { c.StreamName = "" }},
		{"capacity not power of two", func(c *Config) { c.Capacity = 3000 }},
		{"capacity one", func(c *Config) { c.Capacity = 1 }},
		{"zero tolerance", func(c *Config) { c.Tolerance = 0 }},
		{"tolerance of one", func(c *Config) { c.Tolerance = 1 }},
		{"zero pull limit", func(c *Config) { c.PullLimit = 0 }},
		{"zero fill interval", func(c *Config) { c.FillEveryBlocks = 0 }},
		{"zero discovery rate", func(c *Config) { c.DiscoveryPerSecond = 0 }},
		{"zero status interval", func(c *Config) { c.StatusInterval = 0 }},
		{"zero open timeout", func(c *Config) { c.OpenTimeout = 0 }},
		{"negative quiesce timeout", func(c *Config) { c.QuiesceTimeout = -time.Millisecond }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(&cfg)

			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestStringers(t *testing.T) {
	t.Parallel()

	if got := FaultStreamLost.String(); got != "stream_lost" {
		t.Errorf("FaultStreamLost.String() = %q", got)
	}

	if got := Fault(99).String(); got != "unknown" {
		t.Errorf("Fault(99).String() = %q", got)
	}

	if got := StateActive.String(); got != "active" {
		t.Errorf("StateActive.String() = %q", got)
	}
}
