// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
)

// Conform adapts src for a consumer that runs at rate and accepts at most
// maxChannels channels: sources wider than that are mixed down to mono and
// sources at another rate are resampled. A zero rate keeps the source rate.
func Conform(src Source, rate, maxChannels int) (Source, error) {
	if maxChannels > 0 && src.Channels() > maxChannels {
		src = NewMonoMixer(src)
	}

	if rate > 0 && rate != src.SampleRate() {
		r, err := NewResampler(src, rate)
		if err != nil {
			return nil, err
		}

		src = r
	}

	return src, nil
}

// ReadAll drains src, bufFrames at a time, and returns every interleaved
// sample it produced. It does not close src.
func ReadAll(src Source, bufFrames int) ([]float32, error) {
	ch := src.Channels()
	buf := make([]float32, max(bufFrames, 1)*ch)

	var out []float32
	for {
		n, err := src.ReadFrames(buf)
		out = append(out, buf[:n*ch]...)

		if err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return out, err
		}
	}
}
