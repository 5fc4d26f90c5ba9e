// SPDX-License-Identifier: EPL-2.0

package audbridge

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audbridge/audio"
	"github.com/ik5/audbridge/formats/wav"
)

const (
	DefaultConvertBitDepth = 16
	DefaultConvertBuffer   = 4096
)

// ConvertOptions shapes the WAV written by Convert. Zero values keep the
// source rate and channels, write 16-bit samples and read 4096 frames at
// a time.
type ConvertOptions struct {
	SampleRate   int
	MaxChannels  int
	BitDepth     int
	BufferFrames int
}

// Convert streams src through audio.Conform into a PCM WAV on ws and
// returns the number of frames written. It does not close src or ws.
//
// This is the same pipeline the sender uses, so a converted file streams
// exactly as its source would.
func Convert(src audio.Source, ws io.WriteSeeker, opts ConvertOptions) (int, error) {
	if opts.BitDepth == 0 {
		opts.BitDepth = DefaultConvertBitDepth
	}

	if opts.BufferFrames <= 0 {
		opts.BufferFrames = DefaultConvertBuffer
	}

	conformed, err := audio.Conform(src, opts.SampleRate, opts.MaxChannels)
	if err != nil {
		return 0, fmt.Errorf("convert: %w", err)
	}

	w, err := wav.NewWriter(ws, conformed.SampleRate(), conformed.Channels(), opts.BitDepth)
	if err != nil {
		return 0, fmt.Errorf("convert: %w", err)
	}

	ch := conformed.Channels()
	buf := make([]float32, opts.BufferFrames*ch)

	for {
		n, rerr := conformed.ReadFrames(buf)
		if n > 0 {
			if err := w.WriteFrames(buf[:n*ch]); err != nil {
				return w.Frames(), fmt.Errorf("convert: %w", err)
			}
		}

		if errors.Is(rerr, io.EOF) {
			break
		}

		if rerr != nil {
			return w.Frames(), fmt.Errorf("convert: %w", rerr)
		}
	}

	if err := w.Close(); err != nil {
		return w.Frames(), fmt.Errorf("convert: %w", err)
	}

	return w.Frames(), nil
}
