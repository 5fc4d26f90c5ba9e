// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/audbridge/internal/dsp"
)

// Writer encodes interleaved float frames to a PCM WAV file. Close must be
// called to finalize the header; it does not close the underlying writer.
type Writer struct {
	enc      *gowav.Encoder
	buf      *goaudio.IntBuffer
	channels int
	bitDepth int
	frames   int
}

// NewWriter starts a WAV stream on ws. bitDepth is 8, 16, 24 or 32.
func NewWriter(ws io.WriteSeeker, sampleRate, channels, bitDepth int) (*Writer, error) {
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d bits", ErrUnsupportedEncoding, bitDepth)
	}

	if sampleRate < 1 || channels < 1 {
		return nil, fmt.Errorf("%w: %d Hz, %d channels", ErrUnsupportedWavLayout, sampleRate, channels)
	}

	return &Writer{
		enc: gowav.NewEncoder(ws, sampleRate, bitDepth, channels, pcmFormat),
		buf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
			SourceBitDepth: bitDepth,
		},
		channels: channels,
		bitDepth: bitDepth,
	}, nil
}

// WriteFrames clamps and encodes whole frames from samples.
func (w *Writer) WriteFrames(samples []float32) error {
	if len(samples)%w.channels != 0 {
		return fmt.Errorf("%w: %d samples, %d channels", ErrPartialFrame, len(samples), w.channels)
	}

	if cap(w.buf.Data) < len(samples) {
		w.buf.Data = make([]int, len(samples))
	}
	w.buf.Data = w.buf.Data[:len(samples)]

	for i, s := range samples {
		v := dsp.FloatToInt(s, w.bitDepth)
		if w.bitDepth == 8 {
			v += 128
		}
		w.buf.Data[i] = v
	}

	if err := w.enc.Write(w.buf); err != nil {
		return fmt.Errorf("%w", err)
	}

	w.frames += len(samples) / w.channels

	return nil
}

// Frames reports how many frames have been written.
func (w *Writer) Frames() int { return w.frames }

func (w *Writer) Close() error {
	if err := w.enc.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}
