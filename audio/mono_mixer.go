// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// MonoMixer averages every frame of src into a single channel.
type MonoMixer struct {
	src Source
	tmp []float32
}

func NewMonoMixer(src Source) *MonoMixer {
	return &MonoMixer{
		src: src,
		tmp: make([]float32, 4096),
	}
}

func (m *MonoMixer) SampleRate() int { return m.src.SampleRate() }
func (m *MonoMixer) Channels() int   { return 1 }

func (m *MonoMixer) Close() error {
	err := m.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (m *MonoMixer) ReadFrames(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	channels := m.src.Channels()
	if channels == 1 {
		return m.src.ReadFrames(dst)
	}

	samplesNeeded := len(dst) * channels

	// grow, never shrink
	if cap(m.tmp) < samplesNeeded {
		m.tmp = make([]float32, max(samplesNeeded, 8192))
	}
	m.tmp = m.tmp[:samplesNeeded]

	frames, err := m.src.ReadFrames(m.tmp)
	if frames == 0 {
		return 0, err
	}

	switch channels {
	case 2:
		for f := range frames {
			idx := f << 1
			dst[f] = (m.tmp[idx] + m.tmp[idx+1]) * 0.5
		}
	case 4:
		for f := range frames {
			idx := f << 2
			dst[f] = (m.tmp[idx] + m.tmp[idx+1] + m.tmp[idx+2] + m.tmp[idx+3]) * 0.25
		}
	default:
		inv := float32(1) / float32(channels)
		for f := range frames {
			sum := float32(0)
			base := f * channels
			for c := range channels {
				sum += m.tmp[base+c]
			}
			dst[f] = sum * inv
		}
	}

	return frames, err
}
