// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"

	"github.com/ik5/audbridge/audio"
	"github.com/ik5/audbridge/formats/internal/pcm"
)

type Decoder struct{}

// Decode reads 8, 16, 24 or 32-bit AIFF. go-audio needs to seek, so other
// readers are buffered in memory first.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := pcm.Seekable(r)
	if err != nil {
		return nil, fmt.Errorf("reading aiff data: %w", err)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	dec.ReadInfo()

	bitDepth := int(dec.BitDepth)
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d bits", ErrUnsupportedBitDepth, bitDepth)
	}

	format := dec.Format()
	if format == nil || format.NumChannels < 1 || format.SampleRate < 1 {
		return nil, ErrUnsupportedAiffLayout
	}

	// AIFF stores 8-bit samples signed
	return pcm.NewSource(dec, format, bitDepth, false), nil
}
