// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	gowav "github.com/go-audio/wav"

	"github.com/ik5/audbridge/audio"
	"github.com/ik5/audbridge/formats/internal/pcm"
)

// pcmFormat is the WAVE format tag for linear PCM.
const pcmFormat = 1

type Decoder struct{}

// Decode reads linear PCM WAV at 8, 16, 24 or 32 bits. Inputs that cannot
// seek are buffered in memory first.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := pcm.Seekable(r)
	if err != nil {
		return nil, fmt.Errorf("reading wav data: %w", err)
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	if dec.WavAudioFormat != pcmFormat {
		return nil, fmt.Errorf("%w: format tag %d", ErrUnsupportedEncoding, dec.WavAudioFormat)
	}

	switch dec.BitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d bits", ErrUnsupportedEncoding, dec.BitDepth)
	}

	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, err)
	}

	format := dec.Format()
	if format.NumChannels < 1 || format.SampleRate < 1 {
		return nil, ErrUnsupportedWavLayout
	}

	return pcm.NewSource(dec, format, int(dec.BitDepth), true), nil
}
