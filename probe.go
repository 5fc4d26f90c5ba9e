// SPDX-License-Identifier: EPL-2.0

package audbridge

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/ik5/audbridge/audio"
	"github.com/ik5/audbridge/bridge"
	"github.com/ik5/audbridge/stream"
)

// Report describes a decoded file and whether a bridge would bind to it
// as is.
type Report struct {
	SampleRate int
	Channels   int
	Frames     int
	Duration   time.Duration
	Peak       float32

	// Rejection is nil when a bridge configured with the probe's selector
	// would accept a stream with this format. It wraps
	// stream.ErrRateMismatch or bridge.ErrChannelCount otherwise.
	Rejection error
}

// Probe reads src to the end and checks its format against sel. It does not
// close src.
func Probe(src audio.Source, sel stream.Selector) (Report, error) {
	r := Report{SampleRate: src.SampleRate(), Channels: src.Channels()}

	if r.Channels < 1 {
		return r, fmt.Errorf("probe: %w: %d channels", bridge.ErrChannelCount, r.Channels)
	}

	buf := make([]float32, DefaultConvertBuffer*r.Channels)
	for {
		n, err := src.ReadFrames(buf)
		for _, v := range buf[:n*r.Channels] {
			r.Peak = max(r.Peak, float32(math.Abs(float64(v))))
		}
		r.Frames += n

		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return r, fmt.Errorf("probe: %w", err)
		}
	}

	if r.SampleRate > 0 {
		r.Duration = time.Duration(r.Frames) * time.Second / time.Duration(r.SampleRate)
	}

	err := sel.Check(stream.Descriptor{
		Name:         sel.Name,
		ChannelCount: r.Channels,
		NominalRate:  float64(r.SampleRate),
	})
	switch {
	case err != nil:
		r.Rejection = err
	case r.Channels > bridge.MaxChannels:
		r.Rejection = fmt.Errorf("%w: %d channels, at most %d", bridge.ErrChannelCount, r.Channels, bridge.MaxChannels)
	}

	return r, nil
}
